package completion

import (
	"github.com/spf13/cobra"
)

// NewCmdBash creates the bash completion command.
func NewCmdBash() *cobra.Command {
	return &cobra.Command{
		Use:   "bash",
		Short: "Generate bash completion script",
		Long: `Generate bash completion script for purefb2.

To load completions in your current shell session:

  source <(purefb2 completion bash)

To load completions for every new session:

  # Linux
  purefb2 completion bash > /etc/bash_completion.d/purefb2

  # macOS (requires bash-completion)
  purefb2 completion bash > $(brew --prefix)/etc/bash_completion.d/purefb2`,
		Example: `  # Load in current session
  source <(purefb2 completion bash)

  # Install permanently (Linux)
  purefb2 completion bash | sudo tee /etc/bash_completion.d/purefb2 > /dev/null

  # Install permanently (macOS with Homebrew)
  purefb2 completion bash > $(brew --prefix)/etc/bash_completion.d/purefb2`,
		Args:                  cobra.NoArgs,
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Root().GenBashCompletion(cmd.OutOrStdout())
		},
	}
}
