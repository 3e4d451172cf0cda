package typograph

import (
	"regexp"
	"strconv"
	"strings"
)

// Escape placeholders embed a NUL sentinel so they can never collide with
// document text or with any pattern used by the quote resolver or the
// rewrite rules: FB2 bodies are XML and cannot contain NUL, and no rule
// pattern matches it. Uniqueness comes from a per-call counter, not from
// content hashing.
const placeholderSentinel = "\x00"

func placeholder(id int) string {
	return placeholderSentinel + "pfb" + strconv.Itoa(id) + placeholderSentinel
}

// EscapeToken is one protected span: the id embedded in the placeholder and
// the exact original text it stands for.
type EscapeToken struct {
	ID       int
	Original string
}

// EscapeMap records protected spans in encounter order for a single
// Protect/Restore round trip.
type EscapeMap struct {
	tokens []EscapeToken
}

// Len returns the number of protected spans.
func (m *EscapeMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.tokens)
}

func (m *EscapeMap) add(original string) string {
	id := len(m.tokens)
	m.tokens = append(m.tokens, EscapeToken{ID: id, Original: original})
	return placeholder(id)
}

// tagAttrs matches a markup tag that carries attributes. Group 1 is the tag
// name with the leading angle bracket, group 2 the raw attribute run, group
// 3 the closing bracket. Attribute values hold quotes, dashes and dots that
// the text rules must never touch, so only the attribute run is replaced;
// the tag skeleton stays visible to the structural rewrite rules.
var tagAttrs = regexp.MustCompile(`(<[A-Za-z][A-Za-z0-9:-]*)(\s[^<>]*[^<>\s/])(\s*/?>)`)

// Guard protects opaque spans from the rewrite pipeline.
//
// Two kinds of spans are protected: the attribute run of any markup tag, and
// an optional whitelist of literal phrases that must pass through the whole
// pipeline byte-exact. Guard itself is stateless; all per-call state lives
// in the returned EscapeMap, so one Guard may serve concurrent calls.
type Guard struct {
	phrases []string
}

// NewGuard returns a Guard with an optional list of protected literal
// phrases.
func NewGuard(phrases ...string) *Guard {
	return &Guard{phrases: phrases}
}

// Protect replaces every protected span in text with a unique placeholder
// and records the original spans in the returned map. Phrases are protected
// before tag attributes, so a phrase containing markup is shielded whole.
func (g *Guard) Protect(text string) (string, *EscapeMap) {
	m := &EscapeMap{}

	for _, phrase := range g.phrases {
		if phrase == "" {
			continue
		}
		var b strings.Builder
		for {
			i := strings.Index(text, phrase)
			if i < 0 {
				break
			}
			b.WriteString(text[:i])
			b.WriteString(m.add(phrase))
			text = text[i+len(phrase):]
		}
		if b.Len() > 0 {
			b.WriteString(text)
			text = b.String()
		}
	}

	text = replaceSubmatch(tagAttrs, text, 2, func(attrs string) string {
		return m.add(attrs)
	})

	return text, m
}

// Restore substitutes every placeholder back with its original text, keyed
// by id. Restoration runs in reverse encounter order so spans protected
// inside other spans unfold correctly. A placeholder missing from text means
// a rewrite rule consumed it; that is reported, never silently dropped.
func Restore(text string, m *EscapeMap) (string, error) {
	if m == nil {
		return text, nil
	}
	for i := len(m.tokens) - 1; i >= 0; i-- {
		tok := m.tokens[i]
		ph := placeholder(tok.ID)
		j := strings.Index(text, ph)
		if j < 0 {
			return "", &UnresolvedPlaceholderError{ID: tok.ID}
		}
		text = text[:j] + tok.Original + text[j+len(ph):]
	}
	return text, nil
}

// replaceSubmatch rewrites every match of re in text, substituting only the
// given capture group through fn and keeping the rest of the match intact.
func replaceSubmatch(re *regexp.Regexp, text string, group int, fn func(string) string) string {
	matches := re.FindAllStringSubmatchIndex(text, -1)
	if matches == nil {
		return text
	}
	var b strings.Builder
	last := 0
	for _, m := range matches {
		lo, hi := m[2*group], m[2*group+1]
		if lo < 0 {
			continue
		}
		b.WriteString(text[last:lo])
		b.WriteString(fn(text[lo:hi]))
		last = hi
	}
	b.WriteString(text[last:])
	return b.String()
}
