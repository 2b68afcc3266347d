package ingestion

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_Text(t *testing.T) {
	jd, err := Normalize("Golang   engineer\r\n\r\n\r\nRemote", "")
	require.NoError(t, err)

	assert.Equal(t, FormatText, jd.Format)
	assert.Equal(t, "Golang engineer\n\nRemote", jd.Text)
	assert.Len(t, jd.Hash, 64)
}

func TestNormalize_DetectsHTML(t *testing.T) {
	jd, err := Normalize(`<div class="job-description"><p>Golang engineer</p></div>`, "")
	require.NoError(t, err)

	assert.Equal(t, FormatHTML, jd.Format)
	assert.Equal(t, "Golang engineer", jd.Text)
}

func TestNormalize_ExplicitFormatWins(t *testing.T) {
	jd, err := Normalize("<p>kept verbatim</p>", FormatText)
	require.NoError(t, err)
	assert.Equal(t, "<p>kept verbatim</p>", jd.Text)
}

func TestNormalize_UnsupportedFormat(t *testing.T) {
	_, err := Normalize("x", "pdf")
	require.Error(t, err)

	var ingestErr *Error
	require.True(t, errors.As(err, &ingestErr))
	assert.Equal(t, "pdf", ingestErr.Source)
}

func TestNormalize_HashIsStable(t *testing.T) {
	a, err := Normalize("Backend engineer", "")
	require.NoError(t, err)
	b, err := Normalize("  Backend   engineer  ", "")
	require.NoError(t, err)
	assert.Equal(t, a.Hash, b.Hash)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()

	textPath := filepath.Join(dir, "job.txt")
	require.NoError(t, os.WriteFile(textPath, []byte("Python   developer"), 0644))

	htmlPath := filepath.Join(dir, "job.HTML")
	require.NoError(t, os.WriteFile(htmlPath, []byte(jobPage), 0644))

	jd, err := LoadFile(textPath)
	require.NoError(t, err)
	assert.Equal(t, "Python developer", jd.Text)
	assert.Equal(t, FormatText, jd.Format)
	assert.Equal(t, textPath, jd.Source)

	jd, err = LoadFile(htmlPath)
	require.NoError(t, err)
	assert.Equal(t, FormatHTML, jd.Format)
	assert.Contains(t, jd.Text, "Senior Backend Engineer")
}

func TestLoadFile_NotFound(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file not found")
	assert.True(t, errors.Is(err, os.ErrNotExist))
}
