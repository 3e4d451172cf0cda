// Package init provides the init command for purefb2.
package init

import (
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/pure-fb2/purefb2/internal/config"
)

// NewCmdInit creates the init command.
func NewCmdInit() *cobra.Command {
	var outputDir string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize purefb2 configuration",
		Long: `Initialize purefb2 interactively.

This command walks through the output settings, the Author.Today
metadata refresh and the promo section, then saves the configuration
to ~/.config/purefb2/config.yml.`,
		Example: `  # Interactive setup
  purefb2 init

  # Pre-populate the output directory
  purefb2 init --out ~/books`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runInit(outputDir)
		},
	}

	cmd.Flags().StringVar(&outputDir, "out", "", "default output directory")

	return cmd
}

func runInit(prefillOutputDir string) error {
	configPath := config.DefaultConfigPath()

	if _, err := os.Stat(configPath); err == nil {
		var overwrite bool
		err := huh.NewConfirm().
			Title("Configuration already exists").
			Description(fmt.Sprintf("Overwrite %s?", configPath)).
			Value(&overwrite).
			Run()
		if err != nil {
			return err
		}
		if !overwrite {
			fmt.Println("Initialization cancelled.")
			return nil
		}
	}

	cfg := config.Default()
	if prefillOutputDir != "" {
		cfg.OutputDir = prefillOutputDir
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Output directory").
				Description("Where processed books are written (empty: next to the source)").
				Placeholder("~/books").
				Value(&cfg.OutputDir),

			huh.NewInput().
				Title("File name format").
				Description("Placeholders: {author}, {author_lf}, {title}, {seq_name}, {seq_num}").
				Value(&cfg.NameFormat).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("name format is required")
					}
					return nil
				}),

			huh.NewMultiSelect[string]().
				Title("Output formats").
				Options(
					huh.NewOption("fb2", "fb2").Selected(true),
					huh.NewOption("fb2.zip", "zip"),
				).
				Value(&cfg.OutFormats).
				Validate(func(formats []string) error {
					if len(formats) == 0 {
						return fmt.Errorf("pick at least one format")
					}
					return nil
				}),

			huh.NewConfirm().
				Title("Refresh metadata from Author.Today?").
				Value(&cfg.AuthorToday),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Processing credit name").
				Description("Recorded in document-info as the processing author").
				Value(&cfg.Document.AuthorName),

			huh.NewInput().
				Title("Processing credit home page (optional)").
				Placeholder("https://example.com").
				Value(&cfg.Document.AuthorHome),

			huh.NewText().
				Title("Promo section (markdown, optional)").
				Description("Appended to each book; {author_name}, {author_home}, {src_url}, {book_title} expand").
				Value(&cfg.Document.Promo),
		),
	)

	if err := form.Run(); err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if err := cfg.Save(configPath); err != nil {
		return err
	}

	fmt.Printf("\nConfiguration saved to %s\n", configPath)
	fmt.Println("\nYou're all set! Try running:")
	fmt.Println("  purefb2 info book.fb2")
	fmt.Println("  purefb2 process book.fb2")

	return nil
}
