package fb2

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/draw"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"regexp"
	"strings"

	xdraw "golang.org/x/image/draw"
)

// E-reader screens the output targets. Larger images get shrunk to fit.
const (
	maxImageWidth  = 640
	maxImageHeight = 480
	jpegQuality    = 70
)

// Pale paper tone used when flattening transparency.
var flattenBackground = color.RGBA{R: 239, G: 238, B: 238, A: 255}

var reBinary = regexp.MustCompile(`(?s)(<binary\b[^>]*>)(.*?)(</binary>)`)
var reContentType = regexp.MustCompile(`content-type="([^"]*)"`)

// OptimizeImages recompresses every embedded raster image: transparency
// flattened onto a paper tone, oversize images scaled down and everything
// re-encoded as JPEG. Returns how many binaries were rewritten. Binaries
// that fail to decode stay untouched.
func (d *Document) OptimizeImages() (int, error) {
	rewritten := 0
	d.text = reBinary.ReplaceAllStringFunc(d.text, func(m string) string {
		parts := reBinary.FindStringSubmatch(m)
		open, payload, closing := parts[1], parts[2], parts[3]
		ct := reContentType.FindStringSubmatch(open)
		if ct == nil || !strings.HasPrefix(ct[1], "image/") {
			return m
		}
		raw, err := base64.StdEncoding.DecodeString(collapseBase64(payload))
		if err != nil {
			return m
		}
		jpg, changed := recompress(raw)
		if !changed {
			return m
		}
		rewritten++
		open = reContentType.ReplaceAllString(open, `content-type="image/jpg"`)
		return open + "\n" + wrapBase64(base64.StdEncoding.EncodeToString(jpg)) + "\n" + closing
	})
	return rewritten, nil
}

// recompress converts raw image bytes to a bounded JPEG. The second return
// is false when the bytes are not a decodable image.
func recompress(raw []byte) ([]byte, bool) {
	src, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, false
	}

	flat := flatten(src)
	bounds := flat.Bounds()
	if w, h := fitWithin(bounds.Dx(), bounds.Dy()); w != bounds.Dx() || h != bounds.Dy() {
		scaled := image.NewRGBA(image.Rect(0, 0, w, h))
		xdraw.CatmullRom.Scale(scaled, scaled.Bounds(), flat, bounds, xdraw.Over, nil)
		flat = scaled
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, flat, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, false
	}
	return buf.Bytes(), true
}

// flatten composites the image over the paper tone so JPEG has no alpha
// to lose.
func flatten(src image.Image) *image.RGBA {
	bounds := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(flattenBackground), image.Point{}, draw.Src)
	draw.Draw(dst, dst.Bounds(), src, bounds.Min, draw.Over)
	return dst
}

// fitWithin shrinks dimensions to the screen box, keeping aspect ratio.
// Images already inside the box keep their size.
func fitWithin(w, h int) (int, int) {
	if w <= maxImageWidth && h <= maxImageHeight {
		return w, h
	}
	rw := float64(maxImageWidth) / float64(w)
	rh := float64(maxImageHeight) / float64(h)
	r := rw
	if rh < r {
		r = rh
	}
	nw, nh := int(float64(w)*r), int(float64(h)*r)
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}
	return nw, nh
}

func collapseBase64(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\r':
			return -1
		}
		return r
	}, s)
}

// wrapBase64 folds the payload at 76 columns so the XML stays diffable.
func wrapBase64(s string) string {
	const width = 76
	var b strings.Builder
	b.Grow(len(s) + len(s)/width + 1)
	for len(s) > width {
		b.WriteString(s[:width])
		b.WriteByte('\n')
		s = s[width:]
	}
	b.WriteString(s)
	return b.String()
}
