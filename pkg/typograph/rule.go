package typograph

import "regexp"

// Mode selects how often a rule sweeps the text.
type Mode int

const (
	// Once applies the rule in a single sweep, replacing all
	// non-overlapping matches left to right.
	Once Mode = iota

	// UntilFixpoint reapplies the rule until a full sweep changes nothing.
	// Rules whose replacement can expose new matches (collapsing nested
	// empty tags, moving quotes across tag boundaries, boundary-anchored
	// punctuation runs) use this mode.
	UntilFixpoint
)

// Rule is one ordered pattern/replacement step of the rewrite pipeline.
// Rule order is load-bearing: a later rule may rely on a precondition
// established by an earlier one.
type Rule struct {
	Pattern     *regexp.Regexp
	Replacement string
	Mode        Mode
}

// NewRule compiles a rule. The pattern must be valid RE2 syntax.
func NewRule(pattern, replacement string, mode Mode) (Rule, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return Rule{}, err
	}
	return Rule{Pattern: re, Replacement: replacement, Mode: mode}, nil
}

func once(pattern, replacement string) Rule {
	return Rule{Pattern: regexp.MustCompile(pattern), Replacement: replacement, Mode: Once}
}

func fixpoint(pattern, replacement string) Rule {
	return Rule{Pattern: regexp.MustCompile(pattern), Replacement: replacement, Mode: UntilFixpoint}
}

// Apply runs the rules strictly in order and returns the rewritten text.
// Fixpoint iteration is capped relative to the input length; a rule still
// producing changes past the cap oscillates and yields a
// RewriteDivergenceError naming the rule index.
func Apply(text string, rules []Rule) (string, error) {
	for i, rule := range rules {
		switch rule.Mode {
		case Once:
			text = rule.Pattern.ReplaceAllString(text, rule.Replacement)
		case UntilFixpoint:
			limit := len(text) + 16
			iter := 0
			for {
				next := rule.Pattern.ReplaceAllString(text, rule.Replacement)
				if next == text {
					break
				}
				text = next
				iter++
				if iter > limit {
					return "", &RewriteDivergenceError{RuleIndex: i, Iterations: iter}
				}
			}
		}
	}
	return text, nil
}
