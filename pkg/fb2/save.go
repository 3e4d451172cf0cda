package fb2

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// SaveOptions controls where and in which formats the document lands.
type SaveOptions struct {
	Dir        string
	NameFormat string
	Formats    []string // "fb2" and/or "zip"
	Now        time.Time
}

// Save writes the document in every requested format and returns the
// written paths. The zip format packs the fb2 payload as name.fb2.zip
// with a transliterated member name.
func (d *Document) Save(opts SaveOptions) ([]string, error) {
	if len(opts.Formats) == 0 {
		opts.Formats = []string{"fb2"}
	}
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}
	base := d.FileName(opts.NameFormat, opts.Now)
	if base == "" {
		base = "book"
	}

	payload := d.Bytes()
	var written []string
	for _, format := range opts.Formats {
		var path string
		var data []byte
		switch format {
		case "fb2":
			path = filepath.Join(opts.Dir, base+".fb2")
			data = payload
		case "zip":
			zipped, err := ZipBytes(base+".fb2", payload, opts.Now)
			if err != nil {
				return written, err
			}
			path = filepath.Join(opts.Dir, base+".fb2.zip")
			data = zipped
		default:
			return written, fmt.Errorf("fb2: unknown output format %q", format)
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return written, fmt.Errorf("fb2: writing %s: %w", path, err)
		}
		written = append(written, path)
	}
	return written, nil
}
