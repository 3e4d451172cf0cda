package fb2

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
)

// PromoVars feeds the promo template placeholders.
type PromoVars struct {
	AuthorName string
	AuthorHome string
	SrcURL     string
	BookTitle  string
}

// The promo section carries this title, both when rendered and when an
// older copy has to be located and removed.
const promoTitle = "Nota bene"

// htmlToFB2 rewrites goldmark's HTML output into FB2 body markup.
var htmlToFB2 = strings.NewReplacer(
	"<h1>", "<title><p>",
	"</h1>", "</p></title>",
	"<h2>", "<subtitle>",
	"</h2>", "</subtitle>",
	"<h3>", "<subtitle>",
	"</h3>", "</subtitle>",
	"<em>", "<emphasis>",
	"</em>", "</emphasis>",
	"<i>", "<emphasis>",
	"</i>", "</emphasis>",
	"<b>", "<strong>",
	"</b>", "</strong>",
	"<hr>", "<empty-line/>",
	"<hr />", "<empty-line/>",
	` href="`, ` l:href="`,
)

// RenderPromo turns a markdown promo template into a ready FB2 section.
// Placeholders {author_name}, {author_home}, {src_url} and {book_title}
// expand before the markdown conversion.
func RenderPromo(markdown string, vars PromoVars) (string, error) {
	markdown = strings.NewReplacer(
		"{author_name}", vars.AuthorName,
		"{author_home}", vars.AuthorHome,
		"{src_url}", vars.SrcURL,
		"{book_title}", vars.BookTitle,
	).Replace(markdown)

	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("fb2: rendering promo markdown: %w", err)
	}
	body := strings.TrimSpace(htmlToFB2.Replace(buf.String()))
	if !strings.Contains(body, "<title>") {
		body = "<title><p>" + promoTitle + "</p></title>\n" + body
	}
	return "<section>\n" + body + "\n</section>", nil
}

var rePromoSection = regexp.MustCompile(
	`(?s)\s*<section>\s*<title>\s*<p>\s*` + promoTitle + `.*?</section>`)

// RemovePromo strips a previously injected promo section from the main
// body, so reprocessing never stacks them.
func (d *Document) RemovePromo() {
	d.editFirstBody(func(body string) string {
		return rePromoSection.ReplaceAllString(body, "")
	})
}

// InsertPromo appends the rendered section at the end of the main body,
// replacing any stale copy first.
func (d *Document) InsertPromo(section string) {
	d.RemovePromo()
	d.editFirstBody(func(body string) string {
		i := strings.LastIndex(body, "</body>")
		if i < 0 {
			return body
		}
		return body[:i] + section + "\n" + body[i:]
	})
}

// editFirstBody applies fn to the first body region only.
func (d *Document) editFirstBody(fn func(string) string) {
	loc := reBody.FindStringIndex(d.text)
	if loc == nil {
		return
	}
	d.text = d.text[:loc[0]] + fn(d.text[loc[0]:loc[1]]) + d.text[loc[1]:]
}
