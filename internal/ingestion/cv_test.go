package ingestion

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCombineCVSources_JoinsInOrder(t *testing.T) {
	combined, err := CombineCVSources([]CVSource{
		{ID: "cv_1", Text: "First CV body."},
		{ID: "cv_2", Text: "Second CV body."},
	})
	require.NoError(t, err)
	assert.Equal(t, "First CV body.\n\nSecond CV body.", combined)
}

func TestCombineCVSources_SkipsBlankTexts(t *testing.T) {
	combined, err := CombineCVSources([]CVSource{
		{ID: "cv_1", Text: "Body."},
		{ID: "cv_2", Text: "   "},
	})
	require.NoError(t, err)
	assert.Equal(t, "Body.", combined)
}

func TestCombineCVSources_DuplicateID(t *testing.T) {
	_, err := CombineCVSources([]CVSource{
		{ID: "cv_1", Text: "a"},
		{ID: "cv_1", Text: "b"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate cv source id")
}

func TestCombineCVSources_EmptyID(t *testing.T) {
	_, err := CombineCVSources([]CVSource{{ID: "  ", Text: "a"}})
	assert.Error(t, err)
}

func TestCombineCVSources_Empty(t *testing.T) {
	combined, err := CombineCVSources(nil)
	require.NoError(t, err)
	assert.Equal(t, "", combined)
}

func TestLoadCVFile_CleansAndDescribes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cv.txt")
	require.NoError(t, os.WriteFile(path,
		[]byte("## Experience\r\nPython    developer\n\n\n\n- Docker\n"), 0644))

	source, metadata, err := LoadCVFile(path, "cv_1")
	require.NoError(t, err)

	assert.Equal(t, "cv_1", source.ID)
	assert.Equal(t, "## Experience\nPython developer\n\n- Docker", source.Text)

	require.NotNil(t, metadata)
	assert.Equal(t, "cv_1", metadata.SourceID)
	assert.Equal(t, path, metadata.Path)
	assert.Equal(t, 6, metadata.WordCount)
	assert.NotEmpty(t, metadata.Timestamp)
	assert.Len(t, metadata.Hash, 64)
}

func TestLoadCVFile_Missing(t *testing.T) {
	_, _, err := LoadCVFile(filepath.Join(t.TempDir(), "absent.txt"), "cv_1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestLoadCVFiles_PositionalIDs(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "a.txt")
	second := filepath.Join(dir, "b.txt")
	require.NoError(t, os.WriteFile(first, []byte("alpha"), 0644))
	require.NoError(t, os.WriteFile(second, []byte("beta"), 0644))

	sources, metadatas, err := LoadCVFiles([]string{first, second})
	require.NoError(t, err)
	require.Len(t, sources, 2)
	require.Len(t, metadatas, 2)

	assert.Equal(t, "cv_1", sources[0].ID)
	assert.Equal(t, "cv_2", sources[1].ID)
	assert.Equal(t, "alpha", sources[0].Text)
}

func TestHashStableAcrossReingestion(t *testing.T) {
	a := NewSourceMetadata("cv_1", "", "same text")
	b := NewSourceMetadata("cv_1", "", "same text")
	assert.Equal(t, a.Hash, b.Hash)

	c := NewSourceMetadata("cv_1", "", "different text")
	assert.NotEqual(t, a.Hash, c.Hash)
}
