// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"os"
	"testing"

	"github.com/NoNoBzH22/CineVault-Lite/internal/models"
	"github.com/NoNoBzH22/CineVault-Lite/internal/services"
)

// MockCatalog is a test double for [services.CatalogSource]
type MockCatalog struct {
	Export       *models.PlaylistExport
	Err          error
	ResolvedURLs []string
}

func (m *MockCatalog) ResolvePlaylist(ctx context.Context, url string) (*models.PlaylistExport, error) {
	m.ResolvedURLs = append(m.ResolvedURLs, url)
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Export, nil
}

func (m *MockCatalog) Name() string { return "mock catalog" }

// CreatedPlaylist records a CreatePlaylist call on a [MockLibrary]
type CreatedPlaylist struct {
	Name    string
	Section models.LibrarySection
	Tracks  []models.LibraryTrack
}

// MockLibrary is a test double for [services.Library]
type MockLibrary struct {
	Section       *models.LibrarySection
	SectionErr    error
	TrackResults  map[string][]models.LibraryTrack
	ArtistResults map[string][]models.LibraryArtist
	ArtistCatalog map[string][]models.LibraryTrack
	Existing      *models.LibraryPlaylist
	DeleteErr     error
	CreateErr     error

	Created []CreatedPlaylist
	Deleted []models.LibraryPlaylist
}

func (m *MockLibrary) MusicSection(ctx context.Context, names []string) (*models.LibrarySection, error) {
	if m.SectionErr != nil {
		return nil, m.SectionErr
	}
	if m.Section != nil {
		return m.Section, nil
	}
	return &models.LibrarySection{Key: "1", Title: "Music"}, nil
}

func (m *MockLibrary) SearchTracks(ctx context.Context, section models.LibrarySection, query string, limit int) ([]models.LibraryTrack, error) {
	return m.TrackResults[query], nil
}

func (m *MockLibrary) SearchArtists(ctx context.Context, section models.LibrarySection, query string, limit int) ([]models.LibraryArtist, error) {
	return m.ArtistResults[query], nil
}

func (m *MockLibrary) ArtistTracks(ctx context.Context, artist models.LibraryArtist) ([]models.LibraryTrack, error) {
	return m.ArtistCatalog[artist.RatingKey], nil
}

func (m *MockLibrary) FindPlaylist(ctx context.Context, name string) (*models.LibraryPlaylist, error) {
	if m.Existing != nil && m.Existing.Name == name {
		return m.Existing, nil
	}
	return nil, nil
}

func (m *MockLibrary) DeletePlaylist(ctx context.Context, playlist models.LibraryPlaylist) error {
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	m.Deleted = append(m.Deleted, playlist)
	return nil
}

func (m *MockLibrary) CreatePlaylist(ctx context.Context, name string, section models.LibrarySection, tracks []models.LibraryTrack) (*models.LibraryPlaylist, error) {
	if m.CreateErr != nil {
		return nil, m.CreateErr
	}
	m.Created = append(m.Created, CreatedPlaylist{Name: name, Section: section, Tracks: tracks})
	return &models.LibraryPlaylist{RatingKey: "created", Name: name, ItemCount: len(tracks)}, nil
}

func (m *MockLibrary) Name() string { return "mock library" }

// MockSwitcher is a test double for [services.UserSwitcher]
type MockSwitcher struct {
	Users      []models.LibraryUser
	UsersErr   error
	Target     services.Library
	SwitchedTo []string
}

func (m *MockSwitcher) ListUsers(ctx context.Context) ([]models.LibraryUser, error) {
	if m.UsersErr != nil {
		return nil, m.UsersErr
	}
	return m.Users, nil
}

func (m *MockSwitcher) SwitchUser(ctx context.Context, userID string) (services.Library, error) {
	m.SwitchedTo = append(m.SwitchedTo, userID)
	return m.Target, nil
}

// MemorySnapshots records snapshot writes in memory
type MemorySnapshots struct {
	Snapshots []*models.PersistedSnapshot
	Err       error
}

func (m *MemorySnapshots) Create(snapshot *models.PersistedSnapshot) error {
	if m.Err != nil {
		return m.Err
	}
	m.Snapshots = append(m.Snapshots, snapshot)
	return nil
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

func MustGetwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return wd
}

func MustChdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory to %s: %v", dir, err)
	}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}
