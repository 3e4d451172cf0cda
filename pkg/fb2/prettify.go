package fb2

import (
	"regexp"
	"strings"

	"github.com/pure-fb2/purefb2/pkg/typograph"
)

// prettifyRules stitches a generically re-indented document back into the
// usual fb2 layout: block tags on their own lines, inline markup kept in
// the text flow. The order is load-bearing, text inlining must run before
// the inline-tag joins.
var prettifyRules = []typograph.Rule{
	// text content moves back onto its element's line
	{Pattern: regexp.MustCompile(`(?s)>\n\s*([^<>\s].*?)\n\s*</`), Replacement: ">${1}</", Mode: typograph.Once},
	// whitespace-only lines and blank-line runs
	{Pattern: regexp.MustCompile(`(?m)^[ \t]+$`), Replacement: "", Mode: typograph.Once},
	{Pattern: regexp.MustCompile(`\n{2,}`), Replacement: "\n", Mode: typograph.Once},
	// an element with nothing inside closes on the same line
	{Pattern: regexp.MustCompile(`(?s)(<[^/]*?>)\s*(</)`), Replacement: "${1}${2}", Mode: typograph.Once},
	// opening inline tags join the surrounding text
	{Pattern: regexp.MustCompile(`(?s)\s*(<(?:strong|emphasis)>)\s*`), Replacement: " ${1}", Mode: typograph.Once},
	{Pattern: regexp.MustCompile(`(?s)\s*(<a [^<>]*?>)\s*`), Replacement: " ${1}", Mode: typograph.Once},
	// a closing inline tag abuts the tag that follows it
	{Pattern: regexp.MustCompile(`(?s)\s*(</(?:strong|a|emphasis)>)\s*<`), Replacement: "${1}<", Mode: typograph.UntilFixpoint},
	// but keeps one space before a following word
	{Pattern: regexp.MustCompile(`(?s)\s*(</(?:strong|a|emphasis)>)([0-9a-zA-Zа-яёґіїєА-ЯЁҐІЇЄ])`), Replacement: "${1} ${2}", Mode: typograph.Once},
	// no spaces between nested open tags, nor between nested close tags
	{Pattern: regexp.MustCompile(`(<[^/]*?>) <`), Replacement: "${1}<", Mode: typograph.UntilFixpoint},
	{Pattern: regexp.MustCompile(`(</\w+>) </`), Replacement: "${1}</", Mode: typograph.UntilFixpoint},
	// entity quotes read better literal in text content
	{Pattern: regexp.MustCompile(`&quot;`), Replacement: `"`, Mode: typograph.Once},
}

// Prettify re-indents the whole document and restores the inline elements
// into the text flow. The XML declaration gains an utf-8 encoding attribute
// when it carries none.
func (d *Document) Prettify(indent int) error {
	if indent < 1 {
		indent = 1
	}
	text, err := typograph.Apply(prettyIndent(d.text, indent), prettifyRules)
	if err != nil {
		return err
	}
	d.text = ensureEncodingDecl(strings.TrimRight(text, "\n"))
	return nil
}

// prettyIndent puts every tag and every text run on its own line, indented
// by element depth. The inline stitching rules undo the over-splitting.
func prettyIndent(text string, indent int) string {
	pad := strings.Repeat(" ", indent)
	var b strings.Builder
	b.Grow(len(text) + len(text)/8)

	depth := 0
	writeLine := func(level int, s string) {
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		for i := 0; i < level; i++ {
			b.WriteString(pad)
		}
		b.WriteString(s)
	}

	for i := 0; i < len(text); {
		if text[i] != '<' {
			next := strings.IndexByte(text[i:], '<')
			var chunk string
			if next < 0 {
				chunk, i = text[i:], len(text)
			} else {
				chunk, i = text[i:i+next], i+next
			}
			if t := strings.TrimSpace(chunk); t != "" {
				writeLine(depth, t)
			}
			continue
		}

		end := strings.IndexByte(text[i:], '>')
		if end < 0 {
			writeLine(depth, text[i:])
			break
		}
		tag := text[i : i+end+1]
		i += end + 1

		switch {
		case strings.HasPrefix(tag, "</"):
			if depth > 0 {
				depth--
			}
			writeLine(depth, tag)
		case strings.HasPrefix(tag, "<?"), strings.HasPrefix(tag, "<!"), strings.HasSuffix(tag, "/>"):
			writeLine(depth, tag)
		default:
			writeLine(depth, tag)
			depth++
		}
	}
	return b.String()
}

var reXMLDecl = regexp.MustCompile(`^<\?xml[^?]*\?>`)

func ensureEncodingDecl(text string) string {
	decl := reXMLDecl.FindString(text)
	if decl == "" || strings.Contains(decl, "encoding=") {
		return text
	}
	fixed := strings.TrimRight(strings.TrimSuffix(decl, "?>"), " ") + ` encoding="utf-8"?>`
	return fixed + text[len(decl):]
}
