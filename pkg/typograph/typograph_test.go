package typograph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeFullPipeline(t *testing.T) {
	tg := New(Russian())

	in := `<p> Привет -- мир... "Он сказал "да"" </p><p></p><p></p>`
	res, err := tg.Normalize(in)
	require.NoError(t, err)

	assert.Equal(t, "<p>Привет — мир… «Он сказал „да“»</p><empty-line/>\n", res.Text)
	assert.Equal(t, 0, res.UnclosedQuotes)
}

func TestNormalizeIdempotent(t *testing.T) {
	tg := New(Russian())

	bodies := []string{
		`<p> Привет -- мир... "Он сказал "да"" </p><p></p><p></p>`,
		`<p>before <image id="x"/> after</p>`,
		`<empty-line/><p><strong>* * *</strong></p><empty-line/>`,
		`<p>- Что?? - спросил он...</p>`,
		`<section><title><p>Глава 1</p></title><p>текст "в кавычках"</p></section>`,
	}

	for _, body := range bodies {
		first, err := tg.Normalize(body)
		require.NoError(t, err)
		second, err := tg.Normalize(first.Text)
		require.NoError(t, err)
		assert.Equal(t, first.Text, second.Text, "normalize must be idempotent for %q", body)
	}
}

func TestNormalizeKeepsAttributesExact(t *testing.T) {
	tg := New(Russian())

	in := `<p>см. <a l:href="https://example.com/a--b...">ссылку "тут"</a></p>`
	res, err := tg.Normalize(in)
	require.NoError(t, err)

	// The href holds dashes, dots and quotes that the rules must not touch.
	assert.Contains(t, res.Text, `l:href="https://example.com/a--b..."`)
	// Visible text is still normalized.
	assert.Contains(t, res.Text, "«тут»")
}

func TestNormalizeReportsUnclosedQuotes(t *testing.T) {
	tg := New(Russian())

	res, err := tg.Normalize(`<p>"незакрытая цитата</p>`)
	require.NoError(t, err)
	assert.Equal(t, 1, res.UnclosedQuotes)
	assert.Contains(t, res.Text, "«незакрытая")
}

func TestNormalizeProtectedPhrases(t *testing.T) {
	tg := New(Russian(), WithProtectedPhrases("т..е.."))

	res, err := tg.Normalize("<p>т..е.. вот так..</p>")
	require.NoError(t, err)
	assert.Equal(t, "<p>т..е.. вот так…</p>", res.Text)
}

func TestNormalizeForAuthorRules(t *testing.T) {
	star, err := NewRule(`\*\*\*+`, "</p>\n<subtitle>* * *</subtitle>\n<p>", Once)
	require.NoError(t, err)

	tg := New(Russian(), WithAuthorRules("Алекс Котов", []Rule{star}))

	in := "<p>конец сцены*** начало</p>"

	// Matching author: the ad-hoc separator is split out ahead of the
	// canonical families, which then tidy the leftover paragraphs.
	res, err := tg.NormalizeFor(in, "алекс  котов")
	require.NoError(t, err)
	assert.Contains(t, res.Text, "<subtitle>* * *</subtitle>")

	// Other authors get only the canonical rules.
	res, err = tg.NormalizeFor(in, "Кто-То Другой")
	require.NoError(t, err)
	assert.NotContains(t, res.Text, "<subtitle>")
}

func TestNormalizeDivergencePropagates(t *testing.T) {
	grow, err := NewRule("я", "яя", UntilFixpoint)
	require.NoError(t, err)

	tg := New(Russian(), WithAuthorRules("Bad Author", []Rule{grow}))

	_, err = tg.NormalizeFor("<p>я</p>", "Bad Author")
	var derr *RewriteDivergenceError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, 0, derr.RuleIndex)
}

func TestNormalizeConcurrent(t *testing.T) {
	// One Typograph, many bodies: the engine holds no per-call state.
	tg := New(Russian())
	body := `<p>text -- "quote"</p>`

	want, err := tg.Normalize(body)
	require.NoError(t, err)

	done := make(chan Result, 16)
	for i := 0; i < 16; i++ {
		go func() {
			res, err := tg.Normalize(body)
			require.NoError(t, err)
			done <- res
		}()
	}
	for i := 0; i < 16; i++ {
		assert.Equal(t, want.Text, (<-done).Text)
	}
}
