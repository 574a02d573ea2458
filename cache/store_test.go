package cache

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/midwife-middleware/showbook/catalog"
)

func sampleSnapshot() *catalog.Snapshot {
	return &catalog.Snapshot{
		Region:    "US",
		FetchDate: "2026-08-30",
		Providers: map[int][]catalog.Title{
			8: {
				{Name: "Matrix, The", Kind: catalog.KindMovie, ProviderID: 8, Year: "1999"},
				{Name: "Severance", Kind: catalog.KindShow, ProviderID: 8, Year: "2022"},
			},
			15: {
				{Name: "Shogun", Kind: catalog.KindShow, ProviderID: 15},
			},
		},
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store := NewStore(t.TempDir(), zerolog.Nop())
	snap := sampleSnapshot()

	path, err := store.Save(snap)
	require.NoError(t, err)
	assert.Equal(t, "catalog-US-2026-08-30.json", filepath.Base(path))

	loaded, err := store.Load(path)
	require.NoError(t, err)
	assert.Equal(t, snap, loaded)
}

func TestSaveOverwritesPreviousArtifact(t *testing.T) {
	store := NewStore(t.TempDir(), zerolog.Nop())
	snap := sampleSnapshot()

	first, err := store.Save(snap)
	require.NoError(t, err)

	snap.Providers[8] = snap.Providers[8][:1]
	second, err := store.Save(snap)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	loaded, err := store.Load(second)
	require.NoError(t, err)
	assert.Len(t, loaded.Providers[8], 1)
}

func TestSaveRejectsIncompleteSnapshot(t *testing.T) {
	store := NewStore(t.TempDir(), zerolog.Nop())

	_, err := store.Save(&catalog.Snapshot{Region: "US"})
	assert.Error(t, err)

	_, err = store.Save(nil)
	assert.Error(t, err)
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir, zerolog.Nop())

	_, err := store.Save(sampleSnapshot())
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "catalog-US-2026-08-30.json", entries[0].Name())
}

func TestLoadCorruptArtifacts(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "not JSON", content: "not json at all"},
		{name: "wrong shape", content: `{"region":123}`},
		{name: "missing region", content: `{"fetch_date":"2026-08-30","providers":{}}`},
		{name: "missing fetch date", content: `{"region":"US","providers":{}}`},
		{name: "missing providers", content: `{"region":"US","fetch_date":"2026-08-30"}`},
		{name: "title without name", content: `{"region":"US","fetch_date":"2026-08-30","providers":{"8":[{"kind":"movie"}]}}`},
		{name: "title with unknown kind", content: `{"region":"US","fetch_date":"2026-08-30","providers":{"8":[{"name":"Heat","kind":"podcast"}]}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, "catalog-US-2026-08-30.json")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			store := NewStore(dir, zerolog.Nop())
			_, err := store.Load(path)
			assert.ErrorIs(t, err, ErrCorrupt)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	store := NewStore(t.TempDir(), zerolog.Nop())
	_, err := store.Load(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	// A missing file is not corruption; the caller may choose to fetch.
	assert.NotErrorIs(t, err, ErrCorrupt)
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "catalog-GB-2026-01-02.json", FileName("GB", "2026-01-02"))
}
