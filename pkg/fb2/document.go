// Package fb2 reads, rewrites and repackages FictionBook (FB2) e-books.
//
// The document is kept as serialized XML text. Metadata reads go through
// encoding/xml on the description region; metadata writes and body rewrites
// are targeted string surgery on the serialized form, which keeps everything
// the rewriter does not touch byte-exact.
package fb2

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
)

// ErrNotFB2 is returned for input that does not look like a FictionBook
// document.
var ErrNotFB2 = errors.New("fb2: not a FictionBook document")

// Author is one title-info author entry.
type Author struct {
	First    string
	Middle   string
	Last     string
	HomePage string
}

// Plain returns "First Last" with collapsed spaces.
func (a Author) Plain() string {
	return collapseSpaces(a.First + " " + a.Last)
}

// Full returns "First Middle Last" with collapsed spaces.
func (a Author) Full() string {
	return collapseSpaces(a.First + " " + a.Middle + " " + a.Last)
}

// Sequence is the book series reference.
type Sequence struct {
	Name   string
	Number int
}

// Document is one FB2 file held as text.
type Document struct {
	text string
}

// Parse wraps raw FB2 bytes into a Document.
func Parse(data []byte) (*Document, error) {
	text := string(data)
	if !strings.Contains(text, "<FictionBook") {
		return nil, ErrNotFB2
	}
	return &Document{text: text}, nil
}

// Open reads and parses an FB2 file.
func Open(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("fb2: reading %s: %w", path, err)
	}
	return Parse(data)
}

// String returns the current serialized document.
func (d *Document) String() string {
	return d.text
}

// Bytes returns the current serialized document.
func (d *Document) Bytes() []byte {
	return []byte(d.text)
}

// description mirrors the metadata subset the toolchain reads.
type description struct {
	TitleInfo struct {
		Genres    []string    `xml:"genre"`
		Authors   []xmlAuthor `xml:"author"`
		BookTitle string      `xml:"book-title"`
		Sequence  *xmlSeq     `xml:"sequence"`
		Date      struct {
			Value string `xml:"value,attr"`
			Text  string `xml:",chardata"`
		} `xml:"date"`
	} `xml:"title-info"`
	DocumentInfo struct {
		SrcURL      []string `xml:"src-url"`
		ProgramUsed string   `xml:"program-used"`
	} `xml:"document-info"`
}

type xmlAuthor struct {
	First    string `xml:"first-name"`
	Middle   string `xml:"middle-name"`
	Last     string `xml:"last-name"`
	HomePage string `xml:"home-page"`
}

type xmlSeq struct {
	Name   string `xml:"name,attr"`
	Number string `xml:"number,attr"`
}

var reDescription = regexp.MustCompile(`(?s)<description>.*?</description>`)

func (d *Document) decodeDescription() *description {
	var desc description
	region := reDescription.FindString(d.text)
	if region == "" {
		return &desc
	}
	// Attribute namespaces in the region are irrelevant to the fields read
	// here; decode errors degrade to empty metadata.
	dec := xml.NewDecoder(strings.NewReader(region))
	_ = dec.Decode(&desc)
	return &desc
}

// Title returns the normalized book title.
func (d *Document) Title() string {
	return NormalizeText(d.decodeDescription().TitleInfo.BookTitle, true)
}

// RawTitle returns the book title exactly as stored.
func (d *Document) RawTitle() string {
	return d.decodeDescription().TitleInfo.BookTitle
}

// Authors returns the title-info authors with normalized name parts.
func (d *Document) Authors() []Author {
	var out []Author
	for _, a := range d.decodeDescription().TitleInfo.Authors {
		out = append(out, Author{
			First:    NormalizeText(a.First, true),
			Middle:   NormalizeText(a.Middle, true),
			Last:     NormalizeText(a.Last, true),
			HomePage: strings.TrimSpace(a.HomePage),
		})
	}
	return out
}

// AuthorsPlain returns "First Last" for every author.
func (d *Document) AuthorsPlain() []string {
	var out []string
	for _, a := range d.Authors() {
		out = append(out, a.Plain())
	}
	return out
}

// AuthorName returns the first author as "First Last", or "Last First" when
// lastFirst is set.
func (d *Document) AuthorName(lastFirst bool) string {
	authors := d.Authors()
	if len(authors) == 0 {
		return ""
	}
	a := authors[0]
	if lastFirst {
		return collapseSpaces(a.Last + " " + a.First)
	}
	return a.Plain()
}

// HasAuthor reports whether the full name matches any title-info author,
// case-insensitively and ignoring extra whitespace.
func (d *Document) HasAuthor(name string) bool {
	name = strings.ToLower(collapseSpaces(name))
	for _, a := range d.Authors() {
		if strings.ToLower(a.Full()) == name {
			return true
		}
	}
	return false
}

// Genres returns the title-info genre codes.
func (d *Document) Genres() []string {
	return d.decodeDescription().TitleInfo.Genres
}

// Sequence returns the series reference, zero-valued when absent.
func (d *Document) Sequence() Sequence {
	seq := d.decodeDescription().TitleInfo.Sequence
	if seq == nil {
		return Sequence{}
	}
	num, _ := strconv.Atoi(strings.TrimSpace(seq.Number))
	return Sequence{Name: NormalizeText(seq.Name, false), Number: num}
}

// Date returns the title-info date, preferring the value attribute.
func (d *Document) Date() string {
	date := d.decodeDescription().TitleInfo.Date
	if v := strings.TrimSpace(date.Value); v != "" {
		return v
	}
	return strings.TrimSpace(date.Text)
}

// SrcURL returns the document-info source URL.
func (d *Document) SrcURL() string {
	urls := d.decodeDescription().DocumentInfo.SrcURL
	if len(urls) == 0 {
		return ""
	}
	return strings.TrimSpace(urls[0])
}

// -- metadata writes ------------------------------------------------------

var (
	reBookTitle = regexp.MustCompile(`(?s)(<book-title>).*?(</book-title>)`)
	reSequence  = regexp.MustCompile(`<sequence\s[^>]*?/?>`)
	reGenre     = regexp.MustCompile(`\s*<genre>[^<]*</genre>`)
	reAuthorTag = regexp.MustCompile(`(?s)\s*<author>.*?</author>`)
	reTitleDate = regexp.MustCompile(`\s*(?:<date[^>]*>[^<]*</date>|<date[^>]*/>)`)
	reCustom    = regexp.MustCompile(`(?s)\s*<custom-info[^>]*>.*?</custom-info>|\s*<custom-info[^>]*/>`)
)

// SetTitle replaces the book-title content.
func (d *Document) SetTitle(title string) {
	d.editRegion("<title-info>", "</title-info>", func(region string) string {
		return replaceFirst(reBookTitle, region, "${1}"+escapeXML(title)+"${2}")
	})
}

// SetSequence rewrites the sequence tag attributes, if the tag exists.
func (d *Document) SetSequence(seq Sequence) {
	d.editRegion("<title-info>", "</title-info>", func(region string) string {
		tag := fmt.Sprintf(`<sequence name="%s" number="%02d"/>`, escapeXML(seq.Name), seq.Number)
		return replaceFirst(reSequence, region, tag)
	})
}

// SetGenres replaces all title-info genres.
func (d *Document) SetGenres(genres []string) {
	if len(genres) == 0 {
		return
	}
	d.editRegion("<title-info>", "</title-info>", func(region string) string {
		region = reGenre.ReplaceAllString(region, "")
		var b strings.Builder
		for _, g := range genres {
			b.WriteString("\n<genre>")
			b.WriteString(escapeXML(g))
			b.WriteString("</genre>")
		}
		return insertAfter(region, "<title-info>", b.String())
	})
}

// SetAuthors replaces all title-info authors. The new authors land right
// after the book title.
func (d *Document) SetAuthors(authors []Author) {
	if len(authors) == 0 {
		return
	}
	d.editRegion("<title-info>", "</title-info>", func(region string) string {
		region = reAuthorTag.ReplaceAllString(region, "")
		var b strings.Builder
		for _, a := range authors {
			b.WriteString("\n<author>")
			writeTag(&b, "first-name", a.First)
			writeTag(&b, "middle-name", a.Middle)
			writeTag(&b, "last-name", a.Last)
			writeTag(&b, "home-page", a.HomePage)
			b.WriteString("</author>")
		}
		return insertAfter(region, "</book-title>", b.String())
	})
}

// SetDate rewrites the title-info date.
func (d *Document) SetDate(value string) {
	if value == "" {
		return
	}
	d.editRegion("<title-info>", "</title-info>", func(region string) string {
		region = reTitleDate.ReplaceAllString(region, "")
		tag := fmt.Sprintf(`<date value="%s">%s</date>`, escapeXML(value), escapeXML(value))
		return insertBefore(region, "</title-info>", "\n"+tag)
	})
}

// RefreshDocumentInfo rewrites the document-info block: the processing
// author, the processing date and the program-used chain, which always
// gains PureFB2 exactly once.
func (d *Document) RefreshDocumentInfo(authorName, authorHome, date string) {
	if authorName == "" {
		authorName = "PureFb2"
	}
	d.editRegion("<document-info>", "</document-info>", func(region string) string {
		programs := []string{}
		if m := regexp.MustCompile(`<program-used>([^<]*)</program-used>`).FindStringSubmatch(region); m != nil {
			for _, p := range strings.Split(m[1], ",") {
				if p = strings.TrimSpace(p); p != "" && !strings.EqualFold(p, "PureFB2") {
					programs = append(programs, p)
				}
			}
		}
		programs = append(programs, "PureFB2")

		region = reAuthorTag.ReplaceAllString(region, "")
		region = reTitleDate.ReplaceAllString(region, "")
		region = regexp.MustCompile(`\s*<program-used>[^<]*</program-used>`).ReplaceAllString(region, "")

		var b strings.Builder
		b.WriteString("\n<author>")
		writeTag(&b, "first-name", authorName)
		writeTag(&b, "home-page", authorHome)
		b.WriteString("</author>")
		fmt.Fprintf(&b, "\n<date value=%q>%s</date>", escapeXML(date), escapeXML(date))
		fmt.Fprintf(&b, "\n<program-used>%s</program-used>", escapeXML(strings.Join(programs, ", ")))
		return insertAfter(region, "<document-info>", b.String())
	})
}

// SetCustomInfo replaces all custom-info entries in the description.
// Entries keep their given order; names go into the info-type attribute.
func (d *Document) SetCustomInfo(entries [][2]string) {
	d.editRegion("<description>", "</description>", func(region string) string {
		region = reCustom.ReplaceAllString(region, "")
		if len(entries) == 0 {
			return region
		}
		var b strings.Builder
		for _, e := range entries {
			fmt.Fprintf(&b, "\n<custom-info info-type=%q>%s</custom-info>", escapeXML(e[0]), escapeXML(e[1]))
		}
		return insertBefore(region, "</description>", b.String())
	})
}

// -- low-level text surgery -----------------------------------------------

// editRegion applies fn to the first open..close region of the document.
func (d *Document) editRegion(open, close string, fn func(string) string) {
	start := strings.Index(d.text, open)
	if start < 0 {
		return
	}
	end := strings.Index(d.text[start:], close)
	if end < 0 {
		return
	}
	end += start + len(close)
	d.text = d.text[:start] + fn(d.text[start:end]) + d.text[end:]
}

func replaceFirst(re *regexp.Regexp, text, replacement string) string {
	done := false
	return re.ReplaceAllStringFunc(text, func(m string) string {
		if done {
			return m
		}
		done = true
		return re.ReplaceAllString(m, replacement)
	})
}

func insertAfter(text, marker, insert string) string {
	i := strings.Index(text, marker)
	if i < 0 {
		return text
	}
	i += len(marker)
	return text[:i] + insert + text[i:]
}

func insertBefore(text, marker, insert string) string {
	i := strings.Index(text, marker)
	if i < 0 {
		return text
	}
	return text[:i] + insert + text[i:]
}

func writeTag(b *strings.Builder, name, value string) {
	if value == "" {
		return
	}
	b.WriteString("<" + name + ">")
	b.WriteString(escapeXML(value))
	b.WriteString("</" + name + ">")
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

var reSpaces = regexp.MustCompile(`\s+`)

func collapseSpaces(s string) string {
	return strings.TrimSpace(reSpaces.ReplaceAllString(s, " "))
}
