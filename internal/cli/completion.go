/*
Copyright © 2026 Ontoflow Authors
*/
package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion script",
	Long: `Generate shell completion script for onto.

To load completions:

Bash:
  $ source <(onto completion bash)
  # To load completions for each session, add to ~/.bashrc:
  $ echo 'source <(onto completion bash)' >> ~/.bashrc

Zsh:
  $ source <(onto completion zsh)
  # To load completions for each session, add to ~/.zshrc:
  $ echo 'source <(onto completion zsh)' >> ~/.zshrc

Fish:
  $ onto completion fish | source
  # To load completions for each session:
  $ onto completion fish > ~/.config/fish/completions/onto.fish
`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	Run: func(cmd *cobra.Command, args []string) {
		switch args[0] {
		case "bash":
			cmd.Root().GenBashCompletion(os.Stdout)
		case "zsh":
			cmd.Root().GenZshCompletion(os.Stdout)
		case "fish":
			cmd.Root().GenFishCompletion(os.Stdout, true)
		case "powershell":
			cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
		}
	},
}

func init() {
	rootCmd.AddCommand(completionCmd)
}
