package models

import (
	"fmt"
	"time"
)

// PersistedSnapshot is a cached copy of a fetched catalog playlist.
//
// Snapshots record what the remote catalog returned for a URL at a point in
// time. They are upstream payload caches only; match results are never
// persisted.
type PersistedSnapshot struct {
	id         string
	sequence   int
	sourceURL  string
	name       string
	trackCount int
	payload    string
	createdAt  time.Time
	updatedAt  time.Time
	deletedAt  *time.Time
}

// NewPersistedSnapshot creates a snapshot for the given source URL with the serialized playlist payload.
func NewPersistedSnapshot(sequence int, sourceURL, name string, trackCount int, payload string) *PersistedSnapshot {
	now := time.Now()
	return &PersistedSnapshot{
		sequence:   sequence,
		sourceURL:  sourceURL,
		name:       name,
		trackCount: trackCount,
		payload:    payload,
		createdAt:  now,
		updatedAt:  now,
	}
}

func (s *PersistedSnapshot) ID() string            { return s.id }
func (s *PersistedSnapshot) Sequence() int         { return s.sequence }
func (s *PersistedSnapshot) SourceURL() string     { return s.sourceURL }
func (s *PersistedSnapshot) Name() string          { return s.name }
func (s *PersistedSnapshot) TrackCount() int       { return s.trackCount }
func (s *PersistedSnapshot) Payload() string       { return s.payload }
func (s *PersistedSnapshot) CreatedAt() time.Time  { return s.createdAt }
func (s *PersistedSnapshot) UpdatedAt() time.Time  { return s.updatedAt }
func (s *PersistedSnapshot) DeletedAt() *time.Time { return s.deletedAt }

func (s *PersistedSnapshot) SetID(id string)           { s.id = id }
func (s *PersistedSnapshot) SetSequence(seq int)       { s.sequence = seq }
func (s *PersistedSnapshot) SetCreatedAt(t time.Time)  { s.createdAt = t }
func (s *PersistedSnapshot) SetUpdatedAt(t time.Time)  { s.updatedAt = t }
func (s *PersistedSnapshot) SetDeletedAt(t *time.Time) { s.deletedAt = t }
func (s *PersistedSnapshot) SetPayload(payload string) { s.payload = payload }
func (s *PersistedSnapshot) SetTrackCount(count int)   { s.trackCount = count }
func (s *PersistedSnapshot) SetName(name string)       { s.name = name }

// Validate checks that required snapshot fields are present.
func (s *PersistedSnapshot) Validate() error {
	if s.sourceURL == "" {
		return fmt.Errorf("snapshot source URL is required")
	}
	if s.name == "" {
		return fmt.Errorf("snapshot name is required")
	}
	if s.payload == "" {
		return fmt.Errorf("snapshot payload is required")
	}
	return nil
}
