package caption

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pure-fb2/purefb2/pkg/fb2"
)

func parse(t *testing.T, lastChapter string) *fb2.Document {
	t.Helper()
	doc, err := fb2.Parse([]byte(`<FictionBook><description><title-info>` +
		`<author><first-name>Иван</first-name><last-name>Петров</last-name></author>` +
		`<book-title>Тёмный лес</book-title>` +
		`<sequence name="Лес" number="2"/>` +
		`</title-info></description>` +
		`<body>` +
		`<section><title><p>Глава 1</p></title><p>Текст</p></section>` +
		`<section><title><p>` + lastChapter + `</p></title><p>Конец</p></section>` +
		`</body></FictionBook>`))
	require.NoError(t, err)
	return doc
}

func TestBuildFinishedBook(t *testing.T) {
	got := Build(parse(t, "Эпилог"), Options{})

	assert.Equal(t, "Темный лес\n"+
		"Автор: Иван Петров\n"+
		"Серия: Лес № 2\n"+
		"\n#петровиван #лес #книгазавершена", got)
}

func TestBuildOngoingBook(t *testing.T) {
	got := Build(parse(t, "Глава 41."), Options{ModifiedTime: "2026-08-29 10:15"})

	assert.Contains(t, got, "По: Глава 41 (от 2026-08-29 10:15)")
	assert.NotContains(t, got, "книгазавершена")
}

func TestBuildDonated(t *testing.T) {
	got := Build(parse(t, "Эпилог"), Options{Donated: true})

	assert.Contains(t, got, "#книгазавершена #дон")
}

func TestHashtag(t *testing.T) {
	assert.Equal(t, "петровиван", hashtag("Петров Иван"))
	assert.Equal(t, "лес2", hashtag("Лес-2!"))
}
