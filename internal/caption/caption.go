// Package caption renders the announcement text posted alongside a
// processed book: title, authors, series and a hashtag trail.
package caption

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/pure-fb2/purefb2/pkg/fb2"
)

// Options tweak the rendered caption.
type Options struct {
	// Donated marks books released from a paid source.
	Donated bool
	// ModifiedTime annotates unfinished books with the time of their
	// latest chapter.
	ModifiedTime string
}

// Build renders the caption for a document.
func Build(doc *fb2.Document, opts Options) string {
	var tags []string

	var b strings.Builder
	b.WriteString(doc.Title())
	b.WriteString("\nАвтор: ")
	b.WriteString(strings.Join(doc.AuthorsPlain(), ", "))
	b.WriteString("\n")

	for _, a := range doc.Authors() {
		tags = append(tags, hashtag(a.Last+a.First))
	}

	if seq := doc.Sequence(); seq.Name != "" {
		fmt.Fprintf(&b, "Серия: %s № %d\n", seq.Name, seq.Number)
		tags = append(tags, hashtag(seq.Name))
	}

	if doc.Finished() {
		tags = append(tags, "книгазавершена")
	} else {
		fmt.Fprintf(&b, "\nПо: %s", doc.LastChapterTitle())
		if opts.ModifiedTime != "" {
			fmt.Fprintf(&b, " (от %s)", opts.ModifiedTime)
		}
		b.WriteString("\n")
	}

	if opts.Donated {
		tags = append(tags, "дон")
	}

	b.WriteString("\n#")
	b.WriteString(strings.Join(tags, " #"))
	return b.String()
}

// hashtag lowercases a name and strips everything a hashtag cannot carry.
func hashtag(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
