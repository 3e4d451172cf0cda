package completion

import (
	"github.com/spf13/cobra"
)

// NewCmdFish creates the fish completion command.
func NewCmdFish() *cobra.Command {
	return &cobra.Command{
		Use:   "fish",
		Short: "Generate fish completion script",
		Long: `Generate fish completion script for purefb2.

To load completions in your current shell session:

  purefb2 completion fish | source

To load completions for every new session:

  purefb2 completion fish > ~/.config/fish/completions/purefb2.fish`,
		Example: `  # Load in current session
  purefb2 completion fish | source

  # Install permanently
  purefb2 completion fish > ~/.config/fish/completions/purefb2.fish`,
		Args:                  cobra.NoArgs,
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Root().GenFishCompletion(cmd.OutOrStdout(), true)
		},
	}
}
