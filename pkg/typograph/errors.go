package typograph

import "fmt"

// UnresolvedPlaceholderError reports an escape placeholder that was consumed
// by a rewrite rule instead of surviving to the restore stage. This is an
// invariant violation and aborts normalization of the affected body.
type UnresolvedPlaceholderError struct {
	ID int
}

func (e *UnresolvedPlaceholderError) Error() string {
	return fmt.Sprintf("typograph: escape placeholder %d missing from rewritten text", e.ID)
}

// RewriteDivergenceError reports a fixpoint rule that kept producing matches
// past the iteration cap.
type RewriteDivergenceError struct {
	RuleIndex  int
	Iterations int
}

func (e *RewriteDivergenceError) Error() string {
	return fmt.Sprintf("typograph: rule %d did not converge after %d iterations", e.RuleIndex, e.Iterations)
}
