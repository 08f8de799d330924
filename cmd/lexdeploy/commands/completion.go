package commands

import (
	"io"
	"slices"
	"strings"

	"github.com/spf13/cobra"
)

// completionWriter renders the completion script of root for one shell.
type completionWriter func(root *cobra.Command, w io.Writer, descriptions bool) error

var completionWriters = map[string]completionWriter{
	"bash": func(root *cobra.Command, w io.Writer, descriptions bool) error {
		return root.GenBashCompletionV2(w, descriptions)
	},
	"zsh": func(root *cobra.Command, w io.Writer, descriptions bool) error {
		if descriptions {
			return root.GenZshCompletion(w)
		}
		return root.GenZshCompletionNoDesc(w)
	},
	"fish": func(root *cobra.Command, w io.Writer, descriptions bool) error {
		return root.GenFishCompletion(w, descriptions)
	},
	"powershell": func(root *cobra.Command, w io.Writer, descriptions bool) error {
		if descriptions {
			return root.GenPowerShellCompletionWithDesc(w)
		}
		return root.GenPowerShellCompletion(w)
	},
}

func completionShells() []string {
	shells := make([]string, 0, len(completionWriters))
	for shell := range completionWriters {
		shells = append(shells, shell)
	}
	slices.Sort(shells)
	return shells
}

// Completion returns the completion command. The script is written to the
// command's output so it can be piped or redirected.
func Completion() *cobra.Command {
	var noDescriptions bool
	shells := completionShells()

	cmd := &cobra.Command{
		Use:   "completion <" + strings.Join(shells, "|") + ">",
		Short: "Print a shell completion script for lexdeploy",
		Long: `Print a completion script that teaches your shell the lexdeploy
subcommands and flags.

Try it in the current shell:
  source <(lexdeploy completion bash)
  lexdeploy completion fish | source

Install it for new shells:
  lexdeploy completion bash > ~/.local/share/bash-completion/completions/lexdeploy
  lexdeploy completion zsh > "${fpath[1]}/_lexdeploy"
  lexdeploy completion fish > ~/.config/fish/completions/lexdeploy.fish
  lexdeploy completion powershell >> $PROFILE`,
		DisableFlagsInUseLine: true,
		ValidArgs:             shells,
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return completionWriters[args[0]](cmd.Root(), cmd.OutOrStdout(), !noDescriptions)
		},
	}

	cmd.Flags().BoolVar(&noDescriptions, "no-descriptions", false, "Leave command and flag descriptions out of the completions")

	return cmd
}
