// Package main is the entry point for the lexdeploy CLI.
//
// lexdeploy provisions a conversational bot on AWS: an IAM role, a Lambda
// fulfillment function, and a Lex V2 bot with its locale, intents, slots,
// version and alias. Every run converges on the declared blueprint and
// reuses whatever already exists.
//
// Commands: provision, chat, destroy, version, completion.
//
// For detailed usage information, run:
//
//	lexdeploy --help
package main

import (
	"fmt"
	"os"

	"github.com/imamik/lexdeploy/cmd/lexdeploy/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
