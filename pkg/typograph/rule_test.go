package typograph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyOnce(t *testing.T) {
	r, err := NewRule("b+", "B", Once)
	require.NoError(t, err)

	got, err := Apply("abba abb", []Rule{r})
	require.NoError(t, err)
	assert.Equal(t, "aBa aB", got)
}

func TestApplyOrder(t *testing.T) {
	// Order encodes dependency: the second rule only matches what the
	// first one produced.
	rules := []Rule{
		once("x", "y"),
		once("yy", "z"),
	}
	got, err := Apply("xx", rules)
	require.NoError(t, err)
	assert.Equal(t, "z", got)
}

func TestApplyFixpointConverges(t *testing.T) {
	// Collapsing an inner pair exposes the outer pair.
	r := fixpoint(`\(\)`, "")
	got, err := Apply("a((()))b", []Rule{r})
	require.NoError(t, err)
	assert.Equal(t, "ab", got)
}

func TestApplyFixpointStableReplacement(t *testing.T) {
	// A rule whose replacement equals the match terminates immediately.
	r := fixpoint(`\?{3}`, "???")
	got, err := Apply("what???", []Rule{r})
	require.NoError(t, err)
	assert.Equal(t, "what???", got)
}

func TestApplyDivergenceGuard(t *testing.T) {
	// The replacement re-introduces (and grows) its own pattern; the
	// iteration cap must stop it and name the offending rule.
	rules := []Rule{
		once("noop", "noop"),
		fixpoint("a", "aa"),
	}
	_, err := Apply("a", rules)

	var derr *RewriteDivergenceError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, 1, derr.RuleIndex)
	assert.Greater(t, derr.Iterations, 0)
}

func TestNewRuleRejectsBadPattern(t *testing.T) {
	_, err := NewRule("(", "", Once)
	assert.Error(t, err)
}
