package configcmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/pure-fb2/purefb2/internal/config"
)

// NewCmdShow creates the config show command.
func NewCmdShow() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Display current configuration",
		Long:  `Display the current purefb2 configuration with value source indicators.`,
		Example: `  # Show current config
  purefb2 config show`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			noColor, _ := cmd.Flags().GetBool("no-color")
			return runShow(noColor)
		},
	}

	return cmd
}

func runShow(noColor bool) error {
	if noColor {
		color.NoColor = true
	}

	configPath := config.DefaultConfigPath()

	// Load file config (may not exist)
	fileCfg, fileErr := config.Load(configPath)
	if fileErr != nil {
		fileCfg = config.Default()
	}

	// Load full config with env overrides
	cfg, _ := config.LoadWithEnv(configPath)

	bold := color.New(color.Bold)
	dim := color.New(color.Faint)

	printField := func(label, value, fileValue string, envVars ...string) {
		_, _ = bold.Printf("%-16s", label+":")
		if value == "" {
			_, _ = dim.Println("-")
			return
		}

		fmt.Print(value)

		source := "config"
		if fileErr != nil {
			source = "default"
		}
		for _, envVar := range envVars {
			if v := os.Getenv(envVar); v != "" && v == value {
				source = envVar
				break
			}
		}
		if fileValue != value && source == "config" {
			source = "env"
		}

		_, _ = dim.Printf("  (source: %s)\n", source)
	}

	printField("Out formats", strings.Join(cfg.OutFormats, ", "), strings.Join(fileCfg.OutFormats, ", "), "PUREFB2_OUT_FORMATS")
	printField("Name format", cfg.NameFormat, fileCfg.NameFormat, "PUREFB2_NAME_FORMAT")
	printField("Output dir", cfg.OutputDir, fileCfg.OutputDir, "PUREFB2_OUTPUT_DIR")
	printField("Author.Today", fmt.Sprintf("%t", cfg.AuthorToday), fmt.Sprintf("%t", fileCfg.AuthorToday), "PUREFB2_AUTHOR_TODAY")
	printField("Genre language", cfg.GenreLanguage, fileCfg.GenreLanguage)
	printField("Credit name", cfg.Document.AuthorName, fileCfg.Document.AuthorName)
	printField("Credit home", cfg.Document.AuthorHome, fileCfg.Document.AuthorHome)

	_, _ = bold.Printf("%-16s", "Promo:")
	if cfg.Document.Promo == "" {
		_, _ = dim.Println("-")
	} else {
		fmt.Printf("%d chars\n", len(cfg.Document.Promo))
	}
	_, _ = bold.Printf("%-16s", "Author rules:")
	fmt.Printf("%d set(s)\n", len(cfg.AuthorRules))

	fmt.Println()
	_, _ = dim.Printf("Config file: %s\n", configPath)
	if fileErr != nil {
		_, _ = dim.Println("(file not found)")
	}

	return nil
}
