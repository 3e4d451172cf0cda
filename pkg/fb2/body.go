package fb2

import (
	"regexp"
	"strings"

	"github.com/pure-fb2/purefb2/pkg/typograph"
)

var (
	reBody         = regexp.MustCompile(`(?s)<body[^>]*>.*?</body>`)
	reSectionOpen  = regexp.MustCompile(`<section[^>]*>|</section>`)
	reSectionTitle = regexp.MustCompile(`(?s)^\s*<title>(.*?)</title>`)
	reTag          = regexp.MustCompile(`<[^>]*>`)
)

// Bodies returns the raw serialized body regions, notes included.
func (d *Document) Bodies() []string {
	return reBody.FindAllString(d.text, -1)
}

// NormalizeBodies runs the typography engine over every body and splices
// the results back. Author rule selection uses the first title-info author.
// The returned count is the total of unclosed quotation marks across
// bodies.
func (d *Document) NormalizeBodies(tg *typograph.Typograph) (int, error) {
	author := ""
	if authors := d.Authors(); len(authors) > 0 {
		author = authors[0].Plain()
	}
	unclosed := 0
	var firstErr error
	d.text = reBody.ReplaceAllStringFunc(d.text, func(body string) string {
		if firstErr != nil {
			return body
		}
		res, err := tg.NormalizeFor(body, author)
		if err != nil {
			firstErr = err
			return body
		}
		unclosed += res.UnclosedQuotes
		return res.Text
	})
	return unclosed, firstErr
}

// Chapter is one section title inside the main body.
type Chapter struct {
	Title string
	Depth int
}

// Chapters scans the first body and returns every titled section in
// document order, with nesting depth starting at 1.
func (d *Document) Chapters() []Chapter {
	bodies := d.Bodies()
	if len(bodies) == 0 {
		return nil
	}
	body := bodies[0]

	var chapters []Chapter
	depth := 0
	for _, loc := range reSectionOpen.FindAllStringIndex(body, -1) {
		tag := body[loc[0]:loc[1]]
		if strings.HasPrefix(tag, "</") {
			if depth > 0 {
				depth--
			}
			continue
		}
		depth++
		if m := reSectionTitle.FindStringSubmatch(body[loc[1]:]); m != nil {
			chapters = append(chapters, Chapter{
				Title: NormalizeText(reTag.ReplaceAllString(m[1], " "), true),
				Depth: depth,
			})
		}
	}
	return chapters
}

// LastChapterTitle returns the title of the last section of the main body,
// skipping a trailing promo section when present.
func (d *Document) LastChapterTitle() string {
	chapters := d.Chapters()
	for i := len(chapters) - 1; i >= 0; i-- {
		if strings.EqualFold(chapters[i].Title, "Nota bene") {
			continue
		}
		return chapters[i].Title
	}
	return ""
}

// Closing chapter titles that mark a completed book.
var finishedTitles = []string{
	"эпилог",
	"послесловие",
	"примечания",
}

// Finished reports whether the book looks complete, judged by its last
// chapter title.
func (d *Document) Finished() bool {
	last := strings.ToLower(d.LastChapterTitle())
	for _, t := range finishedTitles {
		if strings.Contains(last, t) {
			return true
		}
	}
	return false
}
