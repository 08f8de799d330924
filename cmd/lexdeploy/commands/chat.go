package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/lexdeploy/cmd/lexdeploy/handlers"
)

// Chat returns the chat command.
func Chat() *cobra.Command {
	var (
		configPath string
		opts       handlers.ChatOptions
	)

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Talk to the provisioned bot from the terminal",
		Long: `Chat opens an interactive session with the bot alias recorded by the
last provision run. Each line is sent as one utterance; type 'exit' or
'quit' to leave.

Example:
  lexdeploy chat
  lexdeploy chat --record bot-config.json --session-id demo`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Chat(cmd.Context(), configPath, opts)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to bot configuration file (default: lexdeploy.yaml)")
	cmd.Flags().StringVar(&opts.RecordPath, "record", "", "Path to the provision output file (default: output.path from the configuration)")
	cmd.Flags().StringVar(&opts.SessionID, "session-id", "", "Conversation session id (default: random)")

	return cmd
}
