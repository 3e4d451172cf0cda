package fb2

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

var textCleaner = strings.NewReplacer(
	"Ё", "Е",
	"ё", "е",
	"…", "...",
	" ", " ",
	" ", " ",
	" ", " ",
)

// NormalizeText cleans a metadata string: NFC form, yo folded to ye,
// ellipsis expanded, exotic spaces flattened and runs collapsed. With
// stripDot set a single trailing period goes too, which keeps chapter
// titles hashtag-friendly.
func NormalizeText(s string, stripDot bool) string {
	s = norm.NFC.String(s)
	s = collapseSpaces(textCleaner.Replace(s))
	if stripDot && strings.HasSuffix(s, ".") && !strings.HasSuffix(s, "...") {
		s = strings.TrimSuffix(s, ".")
	}
	return s
}

var fileUnsafe = strings.NewReplacer(
	"/", "_",
	"\\", "_",
	":", "",
	"*", "",
	"?", "",
	"\"", "'",
	"<", "",
	">", "",
	"|", "",
	"\x00", "",
)

// FileSafe makes a string usable as a file name on common filesystems.
func FileSafe(s string) string {
	s = fileUnsafe.Replace(NormalizeText(s, false))
	return strings.Trim(collapseSpaces(s), ". ")
}
