package process

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pure-fb2/purefb2/api"
	"github.com/pure-fb2/purefb2/internal/config"
	"github.com/pure-fb2/purefb2/internal/view"
	"github.com/pure-fb2/purefb2/pkg/fb2"
)

const testBook = `<?xml version="1.0" encoding="utf-8"?>
<FictionBook xmlns="http://www.gribuser.ru/xml/fictionbook/2.0" xmlns:l="http://www.w3.org/1999/xlink">
<description>
<title-info>
<genre>sf</genre>
<author><first-name>Иван</first-name><last-name>Петров</last-name></author>
<book-title>Лес</book-title>
<sequence name="Лес" number="1"/>
</title-info>
<document-info>
<program-used>FBE 2.6</program-used>
<src-url>https://author.today/work/12345</src-url>
</document-info>
</description>
<body>
<section><title><p>Глава 1</p></title><p>Он сказал -- "да"...</p></section>
</body>
</FictionBook>`

func writeBook(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "book.fb2")
	require.NoError(t, os.WriteFile(path, []byte(testBook), 0o644))
	return dir, path
}

func testRenderer() (*view.Renderer, *bytes.Buffer) {
	var buf bytes.Buffer
	r := view.NewRenderer(view.FormatPlain, true)
	r.SetWriter(&buf)
	return r, &buf
}

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.AuthorToday = false
	cfg.Document.AuthorName = "Цокольный этаж"
	cfg.Document.AuthorHome = "https://example.com"
	cfg.Document.Promo = "# Nota bene\n\nКнига [{book_title}]({src_url}) обработана {author_name}."
	return cfg
}

func TestRunLocalPipeline(t *testing.T) {
	dir, path := writeBook(t)
	cfg := testConfig()
	renderer, out := testRenderer()

	opts := &Options{
		Now:     time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC),
		Caption: true,
		Donated: true,
	}
	require.NoError(t, Run(context.Background(), cfg, renderer, []string{path}, opts))

	written := filepath.Join(dir, "Петров Иван - Лес.fb2")
	data, err := os.ReadFile(written)
	require.NoError(t, err)
	text := string(data)

	// Typography ran over the body.
	assert.Contains(t, text, "Он сказал — «да»…")
	// Promo appended with expanded placeholders.
	assert.Contains(t, text, "<title><p>Nota bene</p></title>")
	assert.Contains(t, text, `l:href="https://author.today/work/12345"`)
	// Processing credit recorded.
	assert.Contains(t, text, "<program-used>FBE 2.6, PureFB2</program-used>")
	assert.Contains(t, text, `<custom-info info-type="status">ongoing</custom-info>`)
	assert.Contains(t, text, `<custom-info info-type="donated">true</custom-info>`)

	assert.Contains(t, out.String(), "wrote "+written)
	assert.Contains(t, out.String(), "#петровиван")
	assert.Contains(t, out.String(), "#дон")
}

func TestRunPrettify(t *testing.T) {
	dir, path := writeBook(t)
	cfg := testConfig()
	renderer, _ := testRenderer()

	opts := &Options{
		Now:      time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC),
		Prettify: true,
	}
	require.NoError(t, Run(context.Background(), cfg, renderer, []string{path}, opts))

	data, err := os.ReadFile(filepath.Join(dir, "Петров Иван - Лес.fb2"))
	require.NoError(t, err)
	text := string(data)

	// one indent level per element depth, inline content kept in flow
	assert.Contains(t, text, "\n <body>")
	assert.Contains(t, text, "\n  <section>")
	assert.Contains(t, text, "Он сказал — «да»…")
	assert.True(t, strings.HasPrefix(text, `<?xml version="1.0" encoding="utf-8"?>`))
}

func TestRunWithMetadataRefresh(t *testing.T) {
	dir, path := writeBook(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/work/12345/meta-info", r.URL.Path)
		w.Write([]byte(`{
			"id": 12345,
			"title": "Тёмный лес.",
			"authorFIO": "Анна Сидорова",
			"authorUserName": "AnnaS",
			"seriesId": 7,
			"seriesOrder": 2,
			"seriesTitle": "Лес",
			"genreId": 20,
			"firstSubGenreId": 2,
			"isFinished": false,
			"lastUpdateTime": "2026-08-01T10:00:00Z"
		}`))
	}))
	defer server.Close()

	cfg := testConfig()
	cfg.AuthorToday = true
	renderer, _ := testRenderer()

	opts := &Options{
		Client: api.NewClientWithBaseURL(server.URL),
		Now:    time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC),
	}
	require.NoError(t, Run(context.Background(), cfg, renderer, []string{path}, opts))

	written := filepath.Join(dir, "Сидорова Анна - Темный лес.fb2")
	data, err := os.ReadFile(written)
	require.NoError(t, err)

	doc, err := fb2.Parse(data)
	require.NoError(t, err)
	assert.Equal(t, "Темный лес", doc.Title())
	assert.Equal(t, []string{"Анна Сидорова"}, doc.AuthorsPlain())
	assert.Equal(t, "https://author.today/u/annas/works", doc.Authors()[0].HomePage)
	assert.Equal(t, []string{"sf_litrpg", "fantasy"}, doc.Genres())
	assert.Equal(t, fb2.Sequence{Name: "Лес", Number: 2}, doc.Sequence())
}

func TestRunSurvivesMetadataFailure(t *testing.T) {
	dir, path := writeBook(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"message": "boom"}`))
	}))
	defer server.Close()

	cfg := testConfig()
	cfg.AuthorToday = true
	renderer, out := testRenderer()

	opts := &Options{Client: api.NewClientWithBaseURL(server.URL)}
	require.NoError(t, Run(context.Background(), cfg, renderer, []string{path}, opts))

	assert.Contains(t, out.String(), "metadata refresh failed")
	// Local metadata kept.
	_, err := os.Stat(filepath.Join(dir, "Петров Иван - Лес.fb2"))
	assert.NoError(t, err)
}

func TestRunNoPromoRemovesStaleSection(t *testing.T) {
	dir, path := writeBook(t)

	// Seed the book with an old promo section.
	doc, err := fb2.Open(path)
	require.NoError(t, err)
	section, err := fb2.RenderPromo("# Nota bene\n\nСтарый текст.", fb2.PromoVars{})
	require.NoError(t, err)
	doc.InsertPromo(section)
	require.NoError(t, os.WriteFile(path, doc.Bytes(), 0o644))

	cfg := testConfig()
	renderer, _ := testRenderer()

	opts := &Options{NoPromo: true, NoTypography: true, NoImages: true}
	require.NoError(t, Run(context.Background(), cfg, renderer, []string{path}, opts))

	data, err := os.ReadFile(filepath.Join(dir, "Петров Иван - Лес.fb2"))
	require.NoError(t, err)
	assert.NotContains(t, string(data), "Nota bene")
}

func TestRenameAuthors(t *testing.T) {
	doc, err := fb2.Parse([]byte(testBook))
	require.NoError(t, err)

	renameAuthors(doc, map[string]string{"иван петров": "Вася Пупкин"})

	assert.Equal(t, []string{"Вася Пупкин"}, doc.AuthorsPlain())
}

func TestSplitName(t *testing.T) {
	assert.Equal(t, fb2.Author{First: "Анна"}, splitName("Анна"))
	assert.Equal(t, fb2.Author{First: "Анна", Last: "Берг"}, splitName("Анна Берг"))
	assert.Equal(t, fb2.Author{First: "Анна", Middle: "Мария фон", Last: "Берг"}, splitName("Анна Мария фон Берг"))
}

func TestOutputFormats(t *testing.T) {
	cfg := config.Default()
	cfg.OutFormats = []string{"fb2", "zip"}

	assert.Equal(t, []string{"fb2", "zip"}, outputFormats(cfg, &Options{}))
	assert.Equal(t, []string{"zip"}, outputFormats(cfg, &Options{Formats: []string{"zip"}}))
}
