package fb2

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSave(t *testing.T) {
	doc := sample(t)
	dir := t.TempDir()

	written, err := doc.Save(SaveOptions{
		Dir:        dir,
		NameFormat: "{author_lf} - {title}",
		Formats:    []string{"fb2", "zip"},
		Now:        time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.Len(t, written, 2)

	assert.Equal(t, filepath.Join(dir, "Петров Иван - Темный лес.fb2"), written[0])
	assert.Equal(t, filepath.Join(dir, "Петров Иван - Темный лес.fb2.zip"), written[1])

	data, err := os.ReadFile(written[0])
	require.NoError(t, err)
	assert.Equal(t, doc.Bytes(), data)

	info, err := os.Stat(written[1])
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestSaveUnknownFormat(t *testing.T) {
	doc := sample(t)

	_, err := doc.Save(SaveOptions{Dir: t.TempDir(), Formats: []string{"epub"}})

	assert.ErrorContains(t, err, "unknown output format")
}
