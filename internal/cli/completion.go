package cli

import (
	"os"

	"github.com/spf13/cobra"
)

// panelExtensions are the file extensions offered when completing panel file
// arguments.
var panelExtensions = []string{"toml", "yaml", "yml", "json"}

// completePanelFiles completes panel file arguments by extension.
func completePanelFiles(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return panelExtensions, cobra.ShellCompDirectiveFilterFileExt
}

// completeFormats completes the comma separated --format flag.
func completeFormats(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return []string{"svg", "png", "html", "json"}, cobra.ShellCompDirectiveNoFileComp
}

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for bigvalue.

Bash:
  $ source <(bigvalue completion bash)

Zsh:
  $ bigvalue completion zsh > "${fpath[1]}/_bigvalue"

Fish:
  $ bigvalue completion fish > ~/.config/fish/completions/bigvalue.fish

PowerShell:
  PS> bigvalue completion powershell | Out-String | Invoke-Expression

Panel file arguments complete to .toml, .yaml and .json files.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(os.Stdout, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}

	return cmd
}
