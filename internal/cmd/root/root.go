// Package root provides the root command for the purefb2 CLI.
package root

import (
	"github.com/spf13/cobra"

	"github.com/pure-fb2/purefb2/internal/cmd/completion"
	"github.com/pure-fb2/purefb2/internal/cmd/configcmd"
	"github.com/pure-fb2/purefb2/internal/cmd/info"
	initcmd "github.com/pure-fb2/purefb2/internal/cmd/init"
	"github.com/pure-fb2/purefb2/internal/cmd/process"
	"github.com/pure-fb2/purefb2/internal/version"
)

// NewCmdRoot creates the root command for purefb2.
func NewCmdRoot() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "purefb2",
		Short: "A typography and metadata cleaner for FB2 e-books",
		Long: `purefb2 cleans up FictionBook (FB2) files: it normalizes body
typography (dashes, quotes, ellipses, scene breaks), refreshes book
metadata from Author.Today, recompresses images and repackages the
result as fb2 or fb2.zip.

Get started by running: purefb2 init`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version.Version,
	}

	// Global flags
	cmd.PersistentFlags().StringP("config", "c", "", "config file (default: ~/.config/purefb2/config.yml)")
	cmd.PersistentFlags().Bool("no-color", false, "disable colored output")

	// Set version template
	cmd.SetVersionTemplate("purefb2 version {{.Version}} (commit: " + version.Commit + ", built: " + version.Date + ")\n")

	// Subcommands
	cmd.AddCommand(initcmd.NewCmdInit())
	cmd.AddCommand(process.NewCmdProcess())
	cmd.AddCommand(info.NewCmdInfo())
	cmd.AddCommand(configcmd.NewCmdConfig())
	cmd.AddCommand(completion.NewCmdCompletion())

	return cmd
}
