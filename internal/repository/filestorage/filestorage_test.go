package filestorage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/Popolzen/url2/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// === Helpers ===

func createTempFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "presets.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func readPresets(t *testing.T, path string) []model.Preset {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var presets []model.Preset
	require.NoError(t, json.Unmarshal(data, &presets))
	return presets
}

// === NewPresetRepository ===

func TestNewPresetRepository_EmptyFile(t *testing.T) {
	path := createTempFile(t, "")

	repo := NewPresetRepository(path)

	presets, err := repo.List()
	require.NoError(t, err)
	assert.Empty(t, presets)
	assert.Equal(t, path, repo.path)
}

func TestNewPresetRepository_WithExistingData(t *testing.T) {
	data := []model.Preset{
		{ID: "1", Name: "utm", Params: map[string]string{"utm_source": "mail"}},
		{ID: "2", Name: "ref", Params: map[string]string{"ref": "blog"}},
	}
	content, _ := json.Marshal(data)
	path := createTempFile(t, string(content))

	repo := NewPresetRepository(path)

	p, err := repo.Get("1")
	require.NoError(t, err)
	assert.Equal(t, "mail", p.Params["utm_source"])

	p, err = repo.Get("2")
	require.NoError(t, err)
	assert.Equal(t, "ref", p.Name)
}

func TestNewPresetRepository_AssignsMissingIDs(t *testing.T) {
	path := createTempFile(t, `[{"name":"noid","params":{"a":"1"}}]`)

	repo := NewPresetRepository(path)

	presets, err := repo.List()
	require.NoError(t, err)
	require.Len(t, presets, 1)
	assert.NotEmpty(t, presets[0].ID)
}

func TestNewPresetRepository_InvalidJSON(t *testing.T) {
	path := createTempFile(t, "invalid json {{{")

	repo := NewPresetRepository(path)

	presets, _ := repo.List()
	assert.NotNil(t, repo)
	assert.Empty(t, presets)
}

func TestNewPresetRepository_NonexistentFile(t *testing.T) {
	repo := NewPresetRepository(filepath.Join(t.TempDir(), "missing.json"))

	presets, _ := repo.List()
	assert.NotNil(t, repo)
	assert.Empty(t, presets)
}

// === Store ===

func TestStore_PersistsToFile(t *testing.T) {
	path := createTempFile(t, "")

	repo := NewPresetRepository(path)
	err := repo.Store(model.Preset{ID: "id-1", Name: "persisted", Params: map[string]string{"k": "v"}})
	require.NoError(t, err)

	presets := readPresets(t, path)
	require.Len(t, presets, 1)
	assert.Equal(t, "persisted", presets[0].Name)
	assert.Equal(t, "v", presets[0].Params["k"])
}

func TestStore_DuplicateNameNotPersisted(t *testing.T) {
	path := createTempFile(t, "")

	repo := NewPresetRepository(path)
	require.NoError(t, repo.Store(model.Preset{ID: "id-1", Name: "utm"}))

	err := repo.Store(model.Preset{ID: "id-2", Name: "utm"})
	assert.ErrorIs(t, err, model.ErrPresetExists)
	assert.Len(t, readPresets(t, path), 1)
}

func TestStore_Reload(t *testing.T) {
	path := createTempFile(t, "")

	repo := NewPresetRepository(path)
	repo.Store(model.Preset{ID: "a", Name: "first", Params: map[string]string{"x": "1"}})
	repo.Store(model.Preset{ID: "b", Name: "second"})
	require.NoError(t, repo.Close())

	reloaded := NewPresetRepository(path)
	presets, err := reloaded.List()
	require.NoError(t, err)
	require.Len(t, presets, 2)
	assert.Equal(t, "first", presets[0].Name)
	assert.Equal(t, "1", presets[0].Params["x"])
}

func TestStore_UnwritablePath(t *testing.T) {
	repo := NewPresetRepository(filepath.Join(t.TempDir(), "missing-dir", "presets.json"))

	err := repo.Store(model.Preset{ID: "a", Name: "first"})
	assert.Error(t, err)
}
