package typograph

import (
	"regexp"
	"strings"
)

// Result is the outcome of normalizing one body unit. UnclosedQuotes counts
// quotation spans still open at the end of the body; non-zero is a warning,
// the text is still usable.
type Result struct {
	Text           string
	UnclosedQuotes int
}

// Typograph sequences the escape guard, the quote resolver and the rewrite
// pipeline over one body unit at a time. It holds only immutable
// configuration, so a single Typograph may normalize independent bodies
// concurrently.
type Typograph struct {
	profile   *Profile
	guard     *Guard
	canonical []Rule
	authors   map[string][]Rule
}

// Option configures a Typograph.
type Option func(*Typograph)

// WithProtectedPhrases whitelists literal phrases that must pass through the
// pipeline untouched.
func WithProtectedPhrases(phrases ...string) Option {
	return func(t *Typograph) {
		t.guard = NewGuard(phrases...)
	}
}

// WithAuthorRules registers a rule set applied ahead of the canonical rules
// when the body's attributed author matches name. Author rules run first so
// canonicalization sees already author-normalized text.
func WithAuthorRules(name string, rules []Rule) Option {
	return func(t *Typograph) {
		t.authors[authorKey(name)] = rules
	}
}

// New builds a Typograph for the given language profile.
func New(profile *Profile, opts ...Option) *Typograph {
	t := &Typograph{
		profile:   profile,
		guard:     NewGuard(),
		canonical: CanonicalRules(),
		authors:   make(map[string][]Rule),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Normalize runs the full pipeline over one body unit.
func (t *Typograph) Normalize(body string) (Result, error) {
	return t.NormalizeFor(body, "")
}

// NormalizeFor normalizes one body unit attributed to the named author.
// The sequence is fixed: protect, resolve quotes, rewrite, restore. The only
// failure modes are the propagated UnresolvedPlaceholderError and
// RewriteDivergenceError; unbalanced quotes are reported in the Result.
func (t *Typograph) NormalizeFor(body, author string) (Result, error) {
	guarded, escapes := t.guard.Protect(body)

	guarded, unclosed := ResolveQuotes(guarded, t.profile)

	rules := t.canonical
	if extra, ok := t.authors[authorKey(author)]; ok && len(extra) > 0 {
		rules = make([]Rule, 0, len(extra)+len(t.canonical))
		rules = append(rules, extra...)
		rules = append(rules, t.canonical...)
	}

	rewritten, err := Apply(guarded, rules)
	if err != nil {
		return Result{}, err
	}

	restored, err := Restore(rewritten, escapes)
	if err != nil {
		return Result{}, err
	}

	return Result{Text: restored, UnclosedQuotes: unclosed}, nil
}

var spaceRun = regexp.MustCompile(`\s+`)

// authorKey folds an author display name for rule-set lookup: lowercase with
// collapsed whitespace.
func authorKey(name string) string {
	return strings.ToLower(spaceRun.ReplaceAllString(strings.TrimSpace(name), " "))
}
