// Package typograph normalizes the body text of FB2 documents: dashes,
// ellipses, punctuation clusters, nested quotation marks, empty paragraphs,
// image placement and scene-break markers.
package typograph

// Space variants recognized by the pipeline.
const (
	WHSP  = " " // SPACE
	NBSP  = " " // NO-BREAK SPACE
	NNBSP = " " // NARROW NO-BREAK SPACE
	THNSP = " " // THIN SPACE
)

// Dash variants.
const (
	HMinus = "-" // HYPHEN-MINUS
	Minus  = "−" // MINUS SIGN
	FDash  = "‒" // FIGURE DASH
	NDash  = "–" // EN DASH
	MDash  = "—" // EM DASH
)

// Quotation glyphs.
const (
	LSQuo = "‘" // left single curly quote
	RSQuo = "’" // right single curly quote / apostrophe
	LDQuo = "“" // left double curly quote
	RDQuo = "”" // right double curly quote
	DLQuo = "„" // double low curly quote
	LAQuo = "«" // left angle quote
	RAQuo = "»" // right angle quote
)

// Character classes shared by the rewrite rules. These are regexp character
// classes, not plain strings.
const (
	AnySpace = "[" + WHSP + NBSP + NNBSP + THNSP + "]"
	AnyDash  = "[" + HMinus + Minus + FDash + NDash + MDash + "]"
)

// MDashPair is the canonical dialogue-dash pairing: a no-break space keeps
// the dash attached to the preceding word, a plain space follows it.
const MDashPair = NBSP + MDash + WHSP

// QuotePair is one open/close glyph pair for a nesting level.
type QuotePair struct {
	Open  rune
	Close rune
}

// quoteRole classifies an input delimiter for the quote resolver.
type quoteRole int

const (
	quoteAmbiguous quoteRole = iota // direction decided from context
	quoteOpens
	quoteCloses
)

// Profile is an immutable per-language glyph profile. Construct one with
// Russian or English; a Profile is never mutated after construction and may
// be shared between concurrent Normalize calls.
type Profile struct {
	Name string

	// QuoteLevels holds the canonical glyph pair per nesting depth; depth d
	// uses QuoteLevels[d % len(QuoteLevels)].
	QuoteLevels []QuotePair

	// quoteInputs maps input delimiters to their role. Canonical glyphs of
	// this profile are deliberately absent so that resolving already
	// resolved text is a no-op.
	quoteInputs map[rune]quoteRole
}

// Russian returns the profile for Russian typography: «outer» quotes with
// „inner“ quotes.
func Russian() *Profile {
	return &Profile{
		Name: "ru",
		QuoteLevels: []QuotePair{
			{Open: '«', Close: '»'},
			{Open: '„', Close: '“'},
		},
		quoteInputs: map[rune]quoteRole{
			'"': quoteAmbiguous,
			'”': quoteCloses,
		},
	}
}

// English returns the profile for English typography: “outer” quotes with
// ‘inner’ quotes.
func English() *Profile {
	return &Profile{
		Name: "en",
		QuoteLevels: []QuotePair{
			{Open: '“', Close: '”'},
			{Open: '‘', Close: '’'},
		},
		quoteInputs: map[rune]quoteRole{
			'"': quoteAmbiguous,
			'«': quoteOpens,
			'»': quoteCloses,
			'„': quoteOpens,
		},
	}
}

// isSpaceVariant reports whether r is one of the whitespace variants the
// pipeline treats as a space.
func isSpaceVariant(r rune) bool {
	switch r {
	case ' ', ' ', ' ', ' ', '\t', '\n', '\r':
		return true
	}
	return false
}

// isDashVariant reports whether r is one of the dash variants.
func isDashVariant(r rune) bool {
	switch r {
	case '-', '−', '‒', '–', '—':
		return true
	}
	return false
}

// isOpenGlyph reports whether r is an opening quote glyph of the profile.
func (p *Profile) isOpenGlyph(r rune) bool {
	for _, q := range p.QuoteLevels {
		if q.Open == r {
			return true
		}
	}
	return false
}
