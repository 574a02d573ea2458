package cache

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/midwife-middleware/showbook/catalog"
)

// Common errors
var (
	// ErrCorrupt indicates an artifact that cannot be parsed into a valid snapshot
	ErrCorrupt = errors.New("cache artifact is corrupt")
)

// Store persists catalog snapshots as JSON artifacts in a directory.
type Store struct {
	dir    string
	logger zerolog.Logger
}

// NewStore creates a snapshot store rooted at dir.
func NewStore(dir string, logger zerolog.Logger) *Store {
	return &Store{dir: dir, logger: logger}
}

// FileName returns the artifact name for a region and fetch date,
// e.g. catalog-US-2026-08-30.json.
func FileName(region, fetchDate string) string {
	return fmt.Sprintf("catalog-%s-%s.json", region, fetchDate)
}

// Save serializes the snapshot to its artifact path and returns that
// path. The write goes to a temp file in the same directory followed
// by a rename, so an interrupted run never clobbers a previous valid
// artifact.
func (s *Store) Save(snap *catalog.Snapshot) (string, error) {
	if snap == nil || snap.Region == "" || snap.FetchDate == "" {
		return "", fmt.Errorf("snapshot must carry region and fetch date")
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode snapshot: %w", err)
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create cache dir: %w", err)
	}

	path := filepath.Join(s.dir, FileName(snap.Region, snap.FetchDate))
	if err := writeFileAtomic(s.dir, path, data); err != nil {
		return "", fmt.Errorf("failed to write cache artifact: %w", err)
	}

	s.logger.Info().
		Str("path", path).
		Int("titles", snap.TotalTitles()).
		Msg("Cached catalog snapshot")
	return path, nil
}

// Load reads an artifact back into a snapshot. A file that does not
// decode, or that decodes into an invalid snapshot shape, fails with
// an error wrapping ErrCorrupt.
func (s *Store) Load(path string) (*catalog.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read cache artifact: %w", err)
	}

	var snap catalog.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, path, err)
	}
	if err := validate(&snap); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, path, err)
	}
	return &snap, nil
}

// validate checks the decoded snapshot shape.
func validate(snap *catalog.Snapshot) error {
	if snap.Region == "" {
		return errors.New("missing region")
	}
	if snap.FetchDate == "" {
		return errors.New("missing fetch date")
	}
	if snap.Providers == nil {
		return errors.New("missing providers map")
	}
	for providerID, titles := range snap.Providers {
		for i, t := range titles {
			if t.Name == "" {
				return fmt.Errorf("provider %d title %d: missing name", providerID, i)
			}
			if t.Kind != catalog.KindMovie && t.Kind != catalog.KindShow {
				return fmt.Errorf("provider %d title %d: unknown kind %q", providerID, i, t.Kind)
			}
		}
	}
	return nil
}

// writeFileAtomic writes data to path via a sibling temp file and
// rename. The temp file lives in dir so the rename stays on one
// filesystem.
func writeFileAtomic(dir, path string, data []byte) error {
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		tmp.Close()
		os.Remove(tmpName)
	}()

	if _, err := tmp.Write(data); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
