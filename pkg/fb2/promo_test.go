package fb2

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const promoTemplate = "# Nota bene\n\n" +
	"Книга *скачана* со страницы [{book_title}]({src_url}).\n\n" +
	"## Понравилась книга?\n\n" +
	"Поддержите автора: [{author_name}]({author_home})\n"

func TestRenderPromo(t *testing.T) {
	section, err := RenderPromo(promoTemplate, PromoVars{
		AuthorName: "Иван Петров",
		AuthorHome: "https://author.today/u/ivan",
		SrcURL:     "https://author.today/work/12345",
		BookTitle:  "Темный лес",
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(section, "<section>"))
	assert.True(t, strings.HasSuffix(section, "</section>"))
	assert.Contains(t, section, "<title><p>Nota bene</p></title>")
	assert.Contains(t, section, "<subtitle>Понравилась книга?</subtitle>")
	assert.Contains(t, section, "<emphasis>скачана</emphasis>")
	assert.Contains(t, section, `l:href="https://author.today/work/12345"`)
	assert.Contains(t, section, ">Иван Петров</a>")
	assert.NotContains(t, section, "{author_name}")
	assert.NotContains(t, section, "<h1>")
}

func TestRenderPromoAddsTitle(t *testing.T) {
	section, err := RenderPromo("Просто текст без заголовка.", PromoVars{})
	require.NoError(t, err)

	assert.Contains(t, section, "<title><p>Nota bene</p></title>")
}

func TestInsertPromoReplacesStaleCopy(t *testing.T) {
	doc := sample(t)
	section, err := RenderPromo(promoTemplate, PromoVars{AuthorName: "Иван Петров"})
	require.NoError(t, err)

	doc.InsertPromo(section)
	doc.InsertPromo(section)

	assert.Equal(t, 1, strings.Count(doc.String(), "<title><p>Nota bene</p></title>"))

	// The promo lands at the end of the main body.
	text := doc.String()
	assert.Greater(t, strings.Index(text, "Nota bene"), strings.Index(text, "Эпилог"))
}

func TestRemovePromo(t *testing.T) {
	doc := sample(t)
	section, err := RenderPromo(promoTemplate, PromoVars{})
	require.NoError(t, err)
	doc.InsertPromo(section)

	doc.RemovePromo()

	assert.NotContains(t, doc.String(), "Nota bene")
	assert.Contains(t, doc.String(), "Эпилог")
}
