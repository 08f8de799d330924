package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/lexdeploy/cmd/lexdeploy/handlers"
)

// Provision returns the provision command.
//
// The provision command creates whatever the configured bot blueprint is
// missing and writes the resulting bot and alias ids to the output file.
func Provision() *cobra.Command {
	var (
		configPath string
		opts       handlers.ProvisionOptions
	)

	cmd := &cobra.Command{
		Use:   "provision",
		Short: "Create the bot and everything it depends on",
		Long: `Provision creates every resource the bot needs, in dependency order:
  - IAM role
  - Lambda function and its Lex invoke permission
  - Bot, locale, intents and slots
  - Locale build, bot version and alias
  - Alias-scoped invoke permission

Resources that already exist are reused as they are, so running provision
again is safe. Edits to an existing role, function, bot, intent or slot are
not applied; delete the resource (or run destroy) to recreate it. A new bot
version is published, and the alias repointed, only when the DRAFT locale
changed and had to be rebuilt, for example after adding an intent or slot
or reordering slots.

On success the bot id and alias id are written to the output file
(bot-config.json by default) and, when output.bucket is set, to S3.

Example:
  lexdeploy provision -c lexdeploy.yaml
  lexdeploy provision --dry-run`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Provision(cmd.Context(), configPath, opts)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to bot configuration file (default: lexdeploy.yaml)")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "Print the execution plan without calling AWS")
	cmd.Flags().StringVarP(&opts.OutputPath, "output", "o", "", "Override the output file from the configuration")

	return cmd
}
