package jnodes

import (
	"github.com/spf13/cobra"
)

func newCmdCompletion() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "generate completion script",
		Long: `To load completions:

Bash:

  $ source <(jnodes completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ jnodes completion bash > /etc/bash_completion.d/jnodes
  # macOS:
  $ jnodes completion bash > /usr/local/etc/bash_completion.d/jnodes

Zsh:

  # If shell completion is not already enabled in your environment,
  # you will need to enable it.  You can execute the following once:

  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ jnodes completion zsh > "${fpath[1]}/_jnodes"

  # You will need to start a new shell for this setup to take effect.

fish:

  $ jnodes completion fish | source

  # To load completions for each session, execute once:
  $ jnodes completion fish > ~/.config/fish/completions/jnodes.fish

PowerShell:

  PS> jnodes completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> jnodes completion powershell > jnodes.ps1
  # and source this file from your PowerShell profile.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.ExactValidArgs(1),
		// skip the config and logger setup of the root command
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(w)
			case "zsh":
				return cmd.Root().GenZshCompletion(w)
			case "fish":
				return cmd.Root().GenFishCompletion(w, true)
			default:
				return cmd.Root().GenPowerShellCompletionWithDesc(w)
			}
		},
	}
}
