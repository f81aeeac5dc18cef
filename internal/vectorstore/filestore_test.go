package vectorstore

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEntries() []Entry {
	return []Entry{
		{ID: "a", Text: "admission dates", Metadata: map[string]any{"page_number": 1}, Vector: []float32{1, 0, 0}},
		{ID: "b", Text: "fee structure", Metadata: map[string]any{"page_number": 2}, Vector: []float32{0, 1, 0}},
		{ID: "c", Text: "hostel rules", Metadata: map[string]any{"page_number": 3}, Vector: []float32{0.9, 0.1, 0}},
	}
}

func TestFileStoreSearchRanking(t *testing.T) {
	store := NewFileStore()
	require.NoError(t, store.Add(testEntries()))

	results, err := store.Search([]float32{1, 0, 0}, 2)

	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "a", results[0].Entry.ID)
	assert.Equal(t, "c", results[1].Entry.ID)
	assert.Greater(t, results[0].Score, results[1].Score)
}

func TestFileStoreSearchClampsTopK(t *testing.T) {
	store := NewFileStore()
	require.NoError(t, store.Add(testEntries()))

	results, err := store.Search([]float32{1, 0, 0}, 10)

	require.NoError(t, err)
	assert.Len(t, results, 3)
}

func TestFileStoreSearchEmpty(t *testing.T) {
	store := NewFileStore()

	results, err := store.Search([]float32{1, 0, 0}, 5)

	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestFileStoreAddRejectsEmptyVector(t *testing.T) {
	store := NewFileStore()

	err := store.Add([]Entry{{ID: "x", Text: "no vector"}})

	assert.Error(t, err)
	assert.Zero(t, store.Count())
}

func TestFileStoreSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storage", "index.json")

	store := NewFileStore()
	require.NoError(t, store.Add(testEntries()))
	require.NoError(t, store.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, loaded.Count())

	results, err := loaded.Search([]float32{0, 1, 0}, 1)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "b", results[0].Entry.ID)
	// JSON round-trips numbers as float64
	assert.EqualValues(t, 2, results[0].Entry.Metadata["page_number"])
}

func TestFileStoreSaveReplacesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.json")

	first := NewFileStore()
	require.NoError(t, first.Add(testEntries()))
	require.NoError(t, first.Save(path))

	second := NewFileStore()
	require.NoError(t, second.Add(testEntries()[:1]))
	require.NoError(t, second.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1, loaded.Count())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.json"))

	assert.Error(t, err)
}
