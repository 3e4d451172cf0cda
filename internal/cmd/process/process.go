// Package process provides the purefb2 process command, the main
// pipeline: metadata refresh, typography, images, promo and output.
package process

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pure-fb2/purefb2/api"
	"github.com/pure-fb2/purefb2/internal/caption"
	"github.com/pure-fb2/purefb2/internal/config"
	"github.com/pure-fb2/purefb2/internal/view"
	"github.com/pure-fb2/purefb2/pkg/fb2"
	"github.com/pure-fb2/purefb2/pkg/typograph"
)

// Options collects the process command flags.
type Options struct {
	OutputDir    string
	Formats      []string
	NoTypography bool
	NoImages     bool
	NoPromo      bool
	NoMeta       bool
	Prettify     bool
	Donated      bool
	Caption      bool

	// Client overrides the metadata client, tests point it at a local
	// server. Nil means the public API.
	Client *api.Client
	// Now pins the clock for reproducible file names.
	Now time.Time
}

// NewCmdProcess creates the process command.
func NewCmdProcess() *cobra.Command {
	opts := &Options{}

	cmd := &cobra.Command{
		Use:   "process <file.fb2>...",
		Short: "Clean up and repackage FB2 books",
		Long: `Process one or more FB2 files: refresh metadata from Author.Today,
normalize body typography, recompress images, append the promo section
and write the results in the configured formats.`,
		Example: `  # Process a single book with the configured defaults
  purefb2 process book.fb2

  # Typography only, keep images and metadata as they are
  purefb2 process --no-images --no-meta book.fb2

  # Write fb2.zip next to the sources and print the caption
  purefb2 process --format zip --caption *.fb2`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			if configPath == "" {
				configPath = config.DefaultConfigPath()
			}
			noColor, _ := cmd.Flags().GetBool("no-color")

			cfg, err := config.LoadWithEnv(configPath)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid config: %w (run 'purefb2 init' to configure)", err)
			}

			renderer := view.NewRenderer(view.FormatPlain, noColor)
			return Run(cmd.Context(), cfg, renderer, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.OutputDir, "out", "o", "", "output directory (default: next to the source file)")
	cmd.Flags().StringSliceVar(&opts.Formats, "format", nil, "output formats: fb2, zip (default: from config)")
	cmd.Flags().BoolVar(&opts.NoTypography, "no-typography", false, "skip body typography normalization")
	cmd.Flags().BoolVar(&opts.NoImages, "no-images", false, "skip image recompression")
	cmd.Flags().BoolVar(&opts.NoPromo, "no-promo", false, "skip the promo section")
	cmd.Flags().BoolVar(&opts.NoMeta, "no-meta", false, "skip the Author.Today metadata refresh")
	cmd.Flags().BoolVar(&opts.Prettify, "prettify", false, "re-indent the document before writing")
	cmd.Flags().BoolVar(&opts.Donated, "donated", false, "mark the book as donated in the caption")
	cmd.Flags().BoolVar(&opts.Caption, "caption", false, "print the announcement caption after processing")

	return cmd
}

// Run processes every given file in order. Per-file failures stop the run.
func Run(ctx context.Context, cfg *config.Config, renderer *view.Renderer, files []string, opts *Options) error {
	tg, err := cfg.Typograph()
	if err != nil {
		return err
	}

	client := opts.Client
	if client == nil {
		client = api.NewClient()
	}
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}

	for _, path := range files {
		if err := processFile(ctx, cfg, renderer, tg, client, path, opts); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}
	return nil
}

func processFile(ctx context.Context, cfg *config.Config, renderer *view.Renderer, tg *typograph.Typograph, client *api.Client, path string, opts *Options) error {
	doc, err := fb2.Open(path)
	if err != nil {
		return err
	}

	var meta *api.WorkMetaInfo
	if cfg.AuthorToday && !opts.NoMeta {
		meta = fetchMeta(ctx, renderer, client, doc.SrcURL())
	}
	if meta != nil {
		applyMeta(doc, meta, cfg)
	}
	renameAuthors(doc, cfg.AuthorsRename)

	if !opts.NoTypography {
		unclosed, err := doc.NormalizeBodies(tg)
		if err != nil {
			return err
		}
		if unclosed > 0 {
			renderer.Warning(fmt.Sprintf("%d unclosed quote(s) left in place", unclosed))
		}
	}

	if !opts.NoImages {
		if _, err := doc.OptimizeImages(); err != nil {
			return err
		}
	}

	if cfg.Document.Promo != "" && !opts.NoPromo {
		section, err := fb2.RenderPromo(cfg.Document.Promo, fb2.PromoVars{
			AuthorName: cfg.Document.AuthorName,
			AuthorHome: cfg.Document.AuthorHome,
			SrcURL:     doc.SrcURL(),
			BookTitle:  doc.Title(),
		})
		if err != nil {
			return err
		}
		doc.InsertPromo(section)
	} else {
		doc.RemovePromo()
	}

	doc.RefreshDocumentInfo(cfg.Document.AuthorName, cfg.Document.AuthorHome, opts.Now.Format("2006-01-02 15:04"))

	status := "ongoing"
	if finished(doc, meta) {
		status = "finished"
	}
	tags := [][2]string{{"status", status}}
	if opts.Donated {
		tags = append(tags, [2]string{"donated", "true"})
	}
	doc.SetCustomInfo(tags)

	if opts.Prettify {
		if err := doc.Prettify(1); err != nil {
			return err
		}
	}

	written, err := doc.Save(fb2.SaveOptions{
		Dir:        outputDir(cfg, opts, path),
		NameFormat: cfg.NameFormat,
		Formats:    outputFormats(cfg, opts),
		Now:        opts.Now,
	})
	if err != nil {
		return err
	}
	for _, w := range written {
		renderer.Success("wrote " + w)
	}

	if opts.Caption {
		renderer.RenderText("")
		renderer.RenderText(caption.Build(doc, caption.Options{
			Donated:      opts.Donated,
			ModifiedTime: modifiedTime(doc, meta),
		}))
	}
	return nil
}

// fetchMeta resolves the source URL against the metadata API. Books from
// other sources and network failures degrade to local metadata.
func fetchMeta(ctx context.Context, renderer *view.Renderer, client *api.Client, srcURL string) *api.WorkMetaInfo {
	if _, ok := api.ParseWorkURL(srcURL); !ok {
		return nil
	}
	meta, err := client.GetWorkMetaInfoByURL(ctx, srcURL)
	if err != nil {
		renderer.Warning("metadata refresh failed: " + err.Error())
		return nil
	}
	return meta
}

func applyMeta(doc *fb2.Document, meta *api.WorkMetaInfo, cfg *config.Config) {
	if meta.Title != "" {
		doc.SetTitle(fb2.NormalizeText(meta.Title, true))
	}

	var authors []fb2.Author
	for _, a := range meta.Authors() {
		authors = append(authors, fb2.Author{
			First:    a.First,
			Middle:   a.Middle,
			Last:     a.Last,
			HomePage: a.HomePage,
		})
	}
	doc.SetAuthors(authors)

	lang := cfg.GenreLanguage
	if lang == "" {
		lang = "en"
	}
	doc.SetGenres(meta.GenreCodes(lang))

	if meta.SeriesTitle != "" {
		doc.SetSequence(fb2.Sequence{
			Name:   fb2.NormalizeText(meta.SeriesTitle, false),
			Number: meta.SeriesOrder,
		})
	}
	if updated := meta.TimeUpdated(); updated != "" {
		doc.SetDate(updated)
	}
}

// renameAuthors applies the configured author renames, matching on the
// "First Last" form case-insensitively.
func renameAuthors(doc *fb2.Document, renames map[string]string) {
	if len(renames) == 0 {
		return
	}
	authors := doc.Authors()
	changed := false
	for i, a := range authors {
		for from, to := range renames {
			if !strings.EqualFold(strings.TrimSpace(from), a.Plain()) {
				continue
			}
			renamed := splitName(to)
			renamed.HomePage = a.HomePage
			authors[i] = renamed
			changed = true
		}
	}
	if changed {
		doc.SetAuthors(authors)
	}
}

// splitName breaks a display name the same way the metadata API names are
// split: two words are first and last, middles fold together.
func splitName(name string) fb2.Author {
	parts := strings.Fields(name)
	var a fb2.Author
	switch len(parts) {
	case 0:
	case 1:
		a.First = parts[0]
	case 2:
		a.First, a.Last = parts[0], parts[1]
	default:
		a.First = parts[0]
		a.Middle = strings.Join(parts[1:len(parts)-1], " ")
		a.Last = parts[len(parts)-1]
	}
	return a
}

func outputDir(cfg *config.Config, opts *Options, path string) string {
	if opts.OutputDir != "" {
		return opts.OutputDir
	}
	if cfg.OutputDir != "" {
		return cfg.OutputDir
	}
	return filepath.Dir(path)
}

func outputFormats(cfg *config.Config, opts *Options) []string {
	if len(opts.Formats) > 0 {
		return opts.Formats
	}
	return cfg.OutFormats
}

// finished prefers the API flag when metadata was fetched, the chapter-title
// heuristic otherwise.
func finished(doc *fb2.Document, meta *api.WorkMetaInfo) bool {
	if meta != nil {
		return meta.IsFinished
	}
	return doc.Finished()
}

func modifiedTime(doc *fb2.Document, meta *api.WorkMetaInfo) string {
	if meta != nil {
		if t := meta.TimeModified(); t != "" {
			return t
		}
	}
	return doc.Date()
}
