package configcmd

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/pure-fb2/purefb2/api"
	"github.com/pure-fb2/purefb2/internal/config"
)

// The public demo work used for connectivity checks.
const probeWorkID = 12345

// NewCmdTest creates the config test command.
func NewCmdTest() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "test",
		Short: "Test the configuration and the metadata API",
		Long:  `Validate the current configuration and check that the Author.Today API is reachable.`,
		Example: `  # Test configuration
  purefb2 config test`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			noColor, _ := cmd.Flags().GetBool("no-color")
			return runTest(cmd.Context(), noColor, nil)
		},
	}

	return cmd
}

func runTest(ctx context.Context, noColor bool, client *api.Client) error {
	if noColor {
		color.NoColor = true
	}

	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)

	cfg, err := config.LoadWithEnv(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w (run 'purefb2 init' to configure)", err)
	}
	if err := cfg.Validate(); err != nil {
		red.Println("✗ Invalid configuration:", err)
		fmt.Println("\nReconfigure with: purefb2 init")
		return err
	}
	green.Println("✓ Configuration valid")

	if _, err := cfg.Typograph(); err != nil {
		red.Println("✗ Author rules failed to compile:", err)
		return err
	}
	green.Println("✓ Author rules compile")

	if !cfg.AuthorToday {
		fmt.Println("\nAuthor.Today refresh is disabled, skipping the API check.")
		return nil
	}

	if client == nil {
		client = api.NewClient()
	}
	fmt.Println("\nChecking the Author.Today API...")
	if _, err := client.GetWorkMetaInfo(ctx, probeWorkID); err != nil {
		red.Println("✗ API check failed:", err)
		fmt.Println("\nBooks can still be processed with --no-meta.")
		return err
	}
	green.Println("✓ Author.Today API reachable")

	return nil
}
