package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/lexdeploy/cmd/lexdeploy/handlers"
)

// Destroy returns the destroy command.
//
// The destroy command removes the provisioned resources in reverse
// dependency order.
func Destroy() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "destroy",
		Short: "Delete the bot and all associated resources",
		Long: `Destroy removes every resource created by provision:
  - Lex invoke permission
  - Bot alias and bot (including versions, locales, intents and slots)
  - Lambda function
  - IAM role

Resources that no longer exist are skipped. The local output file and its
S3 copy are removed afterwards.

Example:
  lexdeploy destroy -c lexdeploy.yaml

WARNING: This operation is irreversible.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Destroy(cmd.Context(), configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to bot configuration file (required)")
	_ = cmd.MarkFlagRequired("config")

	return cmd
}
