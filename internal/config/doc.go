// Package config defines the configuration model for a provisioning run.
//
// The [Config] struct describes the desired resources: the execution role,
// the Lambda function, and the bot blueprint (locale, intents, slots, alias).
// It is read from a YAML file, completed with defaults matching the stock
// echo bot, and validated before any remote call is made. Polling budgets
// live separately in [Timeouts] and come from environment variables.
package config
