package fb2

import (
	"archive/zip"
	"bytes"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZipBytes(t *testing.T) {
	payload := []byte("<FictionBook>тело</FictionBook>")
	data, err := ZipBytes("Тёмный лес.fb2", payload, time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	require.Len(t, r.File, 1)
	assert.Equal(t, "temnyy_les.fb2", r.File[0].Name)

	f, err := r.File[0].Open()
	require.NoError(t, err)
	defer f.Close()
	got, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestZipBytesEmptyName(t *testing.T) {
	data, err := ZipBytes("???", []byte("x"), time.Now())
	require.NoError(t, err)

	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	require.Len(t, r.File, 1)
	assert.Equal(t, "book.fb2", r.File[0].Name)
}
