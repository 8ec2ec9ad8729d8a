package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/NoNoBzH22/CineVault-Lite/internal/models"
	"github.com/NoNoBzH22/CineVault-Lite/internal/shared"
)

// SnapshotRepository implements models.Repository[*models.PersistedSnapshot]
// for playlist snapshot caching.
type SnapshotRepository struct {
	db *sql.DB
}

// NewSnapshotRepository creates a new SnapshotRepository with the given database connection
func NewSnapshotRepository(db *sql.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// Create inserts a new snapshot into the database with generated ID and sequence
func (r *SnapshotRepository) Create(snapshot *models.PersistedSnapshot) error {
	sequence, err := NextSequence(r.db, "snapshots")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	id := shared.GenerateID()
	snapshot.SetID(id)
	snapshot.SetSequence(sequence)

	if err := snapshot.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO snapshots (id, sequence, source_url, name, track_count, payload, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query,
		id,
		sequence,
		snapshot.SourceURL(),
		snapshot.Name(),
		snapshot.TrackCount(),
		snapshot.Payload(),
		snapshot.CreatedAt(),
		snapshot.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert snapshot: %w", err)
	}

	return nil
}

// Get retrieves a snapshot by ID, excluding soft-deleted snapshots
func (r *SnapshotRepository) Get(id string) (*models.PersistedSnapshot, error) {
	query := `
		SELECT id, sequence, source_url, name, track_count, payload, created_at, updated_at, deleted_at
		FROM snapshots
		WHERE id = ? AND deleted_at IS NULL
	`

	return r.scanOne(r.db.QueryRow(query, id))
}

// GetBySourceURL retrieves the most recent snapshot for a source URL
func (r *SnapshotRepository) GetBySourceURL(sourceURL string) (*models.PersistedSnapshot, error) {
	query := `
		SELECT id, sequence, source_url, name, track_count, payload, created_at, updated_at, deleted_at
		FROM snapshots
		WHERE source_url = ? AND deleted_at IS NULL
		ORDER BY sequence DESC
		LIMIT 1
	`

	return r.scanOne(r.db.QueryRow(query, sourceURL))
}

// Update modifies an existing snapshot in the database
func (r *SnapshotRepository) Update(snapshot *models.PersistedSnapshot) error {
	if err := snapshot.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now()
	snapshot.SetUpdatedAt(now)

	query := `
		UPDATE snapshots
		SET name = ?, track_count = ?, payload = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query,
		snapshot.Name(),
		snapshot.TrackCount(),
		snapshot.Payload(),
		now,
		snapshot.ID(),
	)
	if err != nil {
		return fmt.Errorf("failed to update snapshot: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("snapshot not found or already deleted: %s", snapshot.ID())
	}

	return nil
}

// Delete soft-deletes a snapshot by ID
func (r *SnapshotRepository) Delete(id string) error {
	now := time.Now()

	query := `
		UPDATE snapshots
		SET deleted_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, now, id)
	if err != nil {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("snapshot not found or already deleted: %s", id)
	}

	return nil
}

// List retrieves all snapshots matching the given criteria, excluding soft-deleted snapshots
func (r *SnapshotRepository) List(criteria map[string]any) ([]*models.PersistedSnapshot, error) {
	query := `
		SELECT id, sequence, source_url, name, track_count, payload, created_at, updated_at, deleted_at
		FROM snapshots
		WHERE deleted_at IS NULL
	`

	args := []any{}

	if sourceURL, ok := criteria["source_url"].(string); ok && sourceURL != "" {
		query += " AND source_url = ?"
		args = append(args, sourceURL)
	}

	if name, ok := criteria["name"].(string); ok && name != "" {
		query += " AND name = ?"
		args = append(args, name)
	}

	query += " ORDER BY sequence ASC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshots: %w", err)
	}
	defer rows.Close()

	var snapshots []*models.PersistedSnapshot
	for rows.Next() {
		snapshot, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		snapshots = append(snapshots, snapshot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return snapshots, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanFields reads one snapshot row from a scanner.
func (r *SnapshotRepository) scanFields(s rowScanner) (*models.PersistedSnapshot, error) {
	var (
		id         string
		sequence   int
		sourceURL  string
		name       string
		trackCount int
		payload    string
		createdAt  time.Time
		updatedAt  time.Time
		deletedAt  sql.NullTime
	)

	err := s.Scan(&id, &sequence, &sourceURL, &name, &trackCount, &payload, &createdAt, &updatedAt, &deletedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("snapshot not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan snapshot: %w", err)
	}

	snapshot := models.NewPersistedSnapshot(sequence, sourceURL, name, trackCount, payload)
	snapshot.SetID(id)
	snapshot.SetCreatedAt(createdAt)
	snapshot.SetUpdatedAt(updatedAt)
	if deletedAt.Valid {
		snapshot.SetDeletedAt(&deletedAt.Time)
	}

	return snapshot, nil
}

func (r *SnapshotRepository) scanOne(row *sql.Row) (*models.PersistedSnapshot, error) {
	return r.scanFields(row)
}

func (r *SnapshotRepository) scanRow(rows *sql.Rows) (*models.PersistedSnapshot, error) {
	return r.scanFields(rows)
}
