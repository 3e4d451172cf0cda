package typograph

import "strings"

// ResolveQuotes rewrites ambiguous quotation delimiters to the canonical
// glyph pair for their nesting depth. It is a single left-to-right scan with
// one state variable: the count of currently open quotes.
//
// Markup tags are copied through without affecting the scan: the character
// context used to classify an ambiguous delimiter is the last content
// character, not the tag bracket next to it. Quotes inside tag attributes
// never reach the resolver at all; the escape guard runs first.
//
// Delimiters that are canonical for the profile are not in its input set, so
// resolving already resolved text changes nothing. A closing delimiter at
// depth 0 still emits the level-0 close glyph; manuscripts are not
// guaranteed balanced and the resolver never fails. The returned count is
// the number of quotes left open at the end of the scan; a non-zero value is
// a warning for the caller, not an error.
func ResolveQuotes(text string, profile *Profile) (string, int) {
	if !strings.ContainsAny(text, profile.inputChars()) {
		return text, 0
	}

	var b strings.Builder
	b.Grow(len(text))

	depth := 0
	levels := len(profile.QuoteLevels)
	prev := rune(0)
	inTag := false
	var tag strings.Builder

	for _, r := range text {
		if inTag {
			b.WriteRune(r)
			if r == '>' {
				inTag = false
				// a paragraph-level opener starts a fresh content run,
				// so a quote right after it is an opening quote even
				// when the previous paragraph ended mid-word
				if blockOpener(tag.String()) {
					prev = 0
				}
			} else {
				tag.WriteRune(r)
			}
			continue
		}
		if r == '<' {
			inTag = true
			tag.Reset()
			b.WriteRune(r)
			continue
		}

		role, ok := profile.quoteInputs[r]
		if !ok {
			b.WriteRune(r)
			prev = r
			continue
		}
		if role == quoteAmbiguous {
			if opensAt(prev, profile) {
				role = quoteOpens
			} else {
				role = quoteCloses
			}
		}
		switch role {
		case quoteOpens:
			glyph := profile.QuoteLevels[depth%levels].Open
			b.WriteRune(glyph)
			prev = glyph
			depth++
		case quoteCloses:
			if depth > 0 {
				depth--
			}
			glyph := profile.QuoteLevels[depth%levels].Close
			b.WriteRune(glyph)
			prev = glyph
		}
	}

	return b.String(), depth
}

// opensAt decides the direction of an ambiguous delimiter from the content
// rune preceding it: a quote at the start of a body, after whitespace, a
// dash, an opening bracket or another opening quote is itself opening.
func opensAt(prev rune, profile *Profile) bool {
	if prev == 0 {
		return true
	}
	if isSpaceVariant(prev) || isDashVariant(prev) {
		return true
	}
	switch prev {
	case '(', '[', '{', '\x00':
		return true
	}
	return profile.isOpenGlyph(prev)
}

// blockOpener reports whether a scanned tag body names a paragraph-level
// opening tag. Attributes and self-closing slashes are ignored; closing
// tags never qualify.
func blockOpener(tag string) bool {
	if strings.HasPrefix(tag, "/") {
		return false
	}
	if i := strings.IndexAny(tag, " \t/"); i >= 0 {
		tag = tag[:i]
	}
	switch tag {
	case "p", "title", "subtitle", "v", "text-author":
		return true
	}
	return false
}

func (p *Profile) inputChars() string {
	var b strings.Builder
	for r := range p.quoteInputs {
		b.WriteRune(r)
	}
	return b.String()
}
