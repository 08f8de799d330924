// Package commands defines the CLI command structure and flag bindings.
//
// This package contains cobra command definitions that handle argument parsing,
// flag binding, and validation. Command execution is delegated to handler
// functions in the handlers package.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/lexdeploy/cmd/lexdeploy/handlers"
)

// Root returns the root command for the lexdeploy CLI.
//
// Before any subcommand runs, variables from a .env file in the working
// directory are loaded and the process logger is configured.
func Root() *cobra.Command {
	var logLevel, logFormat string

	cmd := &cobra.Command{
		Use:           "lexdeploy",
		Short:         "Provision a Lex V2 bot with its Lambda fulfillment on AWS",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return handlers.Setup(logLevel, logFormat)
		},
	}

	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (default from LEXDEPLOY_LOG_LEVEL or info)")
	cmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Log format: auto, tint, text, json (default from LEXDEPLOY_LOG_FORMAT or auto)")

	cmd.AddCommand(Provision())
	cmd.AddCommand(Chat())
	cmd.AddCommand(Destroy())
	cmd.AddCommand(Version())
	cmd.AddCommand(Completion())

	return cmd
}
