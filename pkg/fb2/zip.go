package fb2

import (
	"archive/zip"
	"bytes"
	"compress/flate"
	"fmt"
	"io"
	"time"
)

// ZipBytes packs payload into a single-member zip built fully in memory.
// The member name gets transliterated to stay readable on readers that
// cannot handle cyrillic archive entries.
func ZipBytes(innerName string, payload []byte, modified time.Time) ([]byte, error) {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	w.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, 7)
	})

	member := TransliterateFile(innerName)
	if member == "" {
		member = "book.fb2"
	}
	f, err := w.CreateHeader(&zip.FileHeader{
		Name:     member,
		Method:   zip.Deflate,
		Modified: modified,
	})
	if err != nil {
		return nil, fmt.Errorf("fb2: creating zip member: %w", err)
	}
	if _, err := f.Write(payload); err != nil {
		return nil, fmt.Errorf("fb2: writing zip member: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("fb2: closing zip: %w", err)
	}
	return buf.Bytes(), nil
}
