package fb2

import (
	"regexp"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
)

var reAnnotation = regexp.MustCompile(`(?s)<annotation[^>]*>(.*?)</annotation>`)

// Annotation returns the raw inner markup of the title-info annotation.
func (d *Document) Annotation() string {
	m := reAnnotation.FindStringSubmatch(d.text)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// fb2ToHTML maps FB2 inline markup onto the HTML the markdown converter
// understands.
var fb2ToHTML = strings.NewReplacer(
	"<emphasis>", "<em>",
	"</emphasis>", "</em>",
	"<strikethrough>", "<s>",
	"</strikethrough>", "</s>",
	"<subtitle>", "<h3>",
	"</subtitle>", "</h3>",
	"<empty-line/>", "<br>",
	` l:href="`, ` href="`,
	` xlink:href="`, ` href="`,
)

// AnnotationMarkdown converts the annotation into plain markdown, handy
// for captions and previews.
func (d *Document) AnnotationMarkdown() (string, error) {
	raw := d.Annotation()
	if raw == "" {
		return "", nil
	}
	markdown, err := htmltomarkdown.ConvertString(fb2ToHTML.Replace(raw))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(markdown), nil
}
