// Package bot declares the provisioning chain of a Lex V2 bot deployment.
//
// The chain is built from the blueprint in config.Config:
//
//	role → function → permission → bot → locale → intents → slots →
//	build → version → alias → alias-permission
//
// Every step reuses an existing resource of the same name, so re-running a
// deployment resumes where a previous run stopped. The only step with a side
// effect on every run is alias-permission, which re-scopes the function's
// invoke permission to the alias.
package bot
