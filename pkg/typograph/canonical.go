package typograph

import "strings"

// This file encodes the canonical rewrite rule families in their required
// relative order. Go's regexp has no lookaround, so rules the source
// tradition wrote with lookbehind/lookahead are expressed with explicit
// boundary capture groups that are re-emitted by the replacement. A
// boundary-consuming rule can miss a second run that shares its boundary
// character with the first match, so those rules run UntilFixpoint; the
// sweep that changes nothing terminates them.
const inlineTag = "(?:strong|emphasis|strikethrough|sup|sub|code)"

const (
	openQuotes  = "[«„“‘]"
	closeQuotes = "[»“”’]"
)

// uppercase letters that mark dialogue continuation after a dash, plus
// punctuation and quote glyphs that do the same.
const dashFollowers = `[<A-ZА-ЯЁҐІЇЄ\.,'"«„“]`

// CanonicalRules builds the canonical rule list. The result is freely
// shareable: Apply never mutates rules.
func CanonicalRules() []Rule {
	rules := make([]Rule, 0, 48)

	// 1. Dash normalization. A standalone double dash becomes an em dash;
	// a dash used as a dialogue or parenthetical marker gets the fixed
	// no-break pairing.
	rules = append(rules,
		fixpoint("(^|"+notDash+")"+AnyDash+"{2}("+notDash+"|$)", "${1}"+MDash+"${2}"),
		once(AnySpace+AnyDash+AnySpace, MDashPair),
		once("<p>"+AnyDash+AnySpace, "<p>"+MDash+NBSP),
		once(">"+AnyDash+"("+dashFollowers+")", ">"+MDash+NBSP+"${1}"),
		once(AnySpace+AnyDash+"("+dashFollowers+")", MDash+NBSP+"${1}"),
	)

	// 2. Empty inline markup collapses to a single space. Nested one level
	// deep in either wrapping order; collapsing an inner pair can expose
	// an outer one, hence the fixpoint.
	rules = append(rules, fixpoint(emptyInlinePattern(), " "))

	// 3. A quote abutting an inline-markup boundary moves inside it, so
	// emphasis wraps the quote instead of touching it.
	rules = append(rules,
		fixpoint("("+openQuotes+")(<"+inlineTag+">)", "${2}${1}"),
		fixpoint("(</"+inlineTag+">)("+closeQuotes+")", "${2}${1}"),
	)

	// 4. Whitespace-variant runs collapse to one plain space.
	rules = append(rules, once(AnySpace+"{2,}", WHSP))

	// 5. Ellipsis and punctuation clusters.
	rules = append(rules,
		// 2-5 dots become an ellipsis; longer runs are authorial and stay.
		fixpoint(`(^|[^.?!])\.{2,5}($|[^.])`, "${1}…${2}"),
		// an ellipsis absorbs an adjacent comma
		once(`(?:,…|…,)`, "…"),
		fixpoint(`(^|[^?])\?{3,5}($|[^?])`, "${1}???${2}"),
		fixpoint(`(^|[^?])\?\?($|[^?])`, "${1}⁇${2}"),
		fixpoint(`(^|[^!])!{3,5}($|[^!])`, "${1}!!!${2}"),
		fixpoint(`(^|[^!])!!($|[^!])`, "${1}‼${2}"),
		fixpoint(`(^|[^?!])!\?($|[^?!])`, "${1}⁉${2}"),
		fixpoint(`(^|[^?!])\?!($|[^?!])`, "${1}⁈${2}"),
		// terminal punctuation before suspension points keeps two dots,
		// the third one sits under the mark itself
		once(`\?…`, "?.."),
		once(`!…`, "!.."),
		once(`!\?…`, "!?."),
		once(`\?!…`, "?!."),
		once(`\?\?…`, "??."),
		once(`!!…`, "!!."),
		once(`⁈!`, "?!!"),
		once(`⁉\?`, "!??"),
	)

	// 6. Paragraph boundary trimming.
	rules = append(rules,
		once(`<p>`+anyWhite+"+", "<p>"),
		once(anyWhite+"*</p>"+AnySpace+"*", "</p>"),
	)

	// 7. Whitespace-only and self-closed paragraphs become the canonical
	// empty line.
	rules = append(rules, once(`(?:<p>`+anyWhite+`*</p>|<p\s*/>)`, "<empty-line/>"))

	// 8. Empty-line runs collapse to one.
	rules = append(rules, once(`(?:<empty-line/>\s*){2,}`, "<empty-line/>\n"))

	// 9. Titles and sections never start or end with a blank line.
	rules = append(rules, once(`(?:<empty-line/>\s*)?(</?(?:title|section)>)(?:\s*<empty-line/>)?`, "${1}"))

	// 10. Images embedded in running text are hoisted to paragraph level;
	// surrounding empty lines are absorbed. The stray <p></p> halves this
	// leaves behind are swept up by the cleanup family below.
	rules = append(rules, once(
		`(?:<empty-line/>\s*)?(<p>)?[ \t]*(<image[^<>]*>)[ \t]*(</p>)?(?:\s*<empty-line/>)?`,
		"${1}</p>${2}<p>${3}"))

	// 11. Paragraph markers erroneously wrapping a structural boundary
	// collapse away.
	rules = append(rules,
		fixpoint(`<p>(\s*)<((?:p|title|annotation|section|subtitle|poem|cite|text-author)|(?:/section|/title))>`, "${1}<${2}>"),
		fixpoint(`<((?:/p|/title|/annotation|/subtitle|/poem|/cite|/text-author)|(?:section|title))>(\s*)</p>`, "<${1}>${2}"),
		fixpoint(`<p>(\s*)</p>`, "${1}"),
	)

	// A section whose sole content is an image is followed by a synthetic
	// empty line; some renderers reject an image-only section. Runs after
	// the cleanup family so a hoisted image is already bare.
	rules = append(rules, once(`(<section>\s*)(<image[^<>]*>)(\s*</section>)`, "${1}${2}<empty-line/>${3}"))

	// 12. Ad-hoc scene-break markers become the canonical subtitle.
	rules = append(rules,
		once(subtitlePattern("p"), "<subtitle>* * *</subtitle>"),
		once(subtitlePattern("subtitle"), "<subtitle>* * *</subtitle>"),
	)

	return rules
}

// notDash is the negated dash class used for dash-run boundaries.
const notDash = "[^" + HMinus + Minus + FDash + NDash + MDash + "]"

// anyWhite covers \s plus the non-ASCII space variants.
const anyWhite = `[\s` + NBSP + NNBSP + THNSP + "]"

// emptyInlinePattern matches empty inline pairs, the strong/emphasis nesting
// in either order, and self-closed inline markers. Mismatched wrapping
// orders are deliberately treated the same.
func emptyInlinePattern() string {
	alts := []string{
		`<emphasis>\s*<strong>\s*</strong>\s*</emphasis>`,
		`<strong>\s*<emphasis>\s*</emphasis>\s*</strong>`,
	}
	for _, tag := range []string{"strong", "emphasis", "strikethrough", "sup", "sub", "code"} {
		alts = append(alts, "<"+tag+`>\s*</`+tag+">")
	}
	alts = append(alts, "<"+inlineTag+`\s*/>`)
	return "(?:" + strings.Join(alts, "|") + ")"
}

// subtitlePattern matches a p or subtitle element whose whole content is a
// run of separator glyphs, optionally wrapped in strong/emphasis one or two
// levels deep in any order, together with any adjacent empty lines.
func subtitlePattern(tag string) string {
	// the hyphen-minus sits last in the class so it stays a literal
	const sep = "(?:[*_~" + Minus + FDash + NDash + MDash + HMinus + "] ?)"
	inner := "(?:" + strings.Join([]string{
		"<strong> ?<emphasis> ?" + sep + "+ ?</emphasis> ?</strong>",
		"<emphasis> ?<strong> ?" + sep + "+ ?</strong> ?</emphasis>",
		"<strong> ?" + sep + "+ ?</strong>",
		"<emphasis> ?" + sep + "+ ?</emphasis>",
		sep + "+",
	}, "|") + ")"
	return `(?:<empty-line ?/>\s*)*<` + tag + `> ?` + inner + ` ?</` + tag + `>(?:\s*<empty-line ?/>)*`
}
