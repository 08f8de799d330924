package config

import (
	"os"
	"strconv"
	"time"
)

// Timeouts holds the polling budget of every asynchronous resource kind and
// the overall run deadline. Values can be customized via environment
// variables.
type Timeouts struct {
	Run time.Duration // Deadline for the whole provisioning run

	FunctionReady time.Duration // Lambda function reaching Active
	FunctionPoll  time.Duration
	BotReady      time.Duration // Bot reaching Available
	BotPoll       time.Duration
	LocaleReady   time.Duration // Locale reaching Built or NotBuilt after creation
	LocalePoll    time.Duration
	Build         time.Duration // Locale build reaching Built
	BuildPoll     time.Duration
	VersionReady  time.Duration // Bot version materializing as Available
	VersionPoll   time.Duration
	AliasReady    time.Duration // Alias reaching Available
	AliasPoll     time.Duration
}

// LoadTimeouts loads timeout configuration from environment variables.
// If an environment variable is not set or invalid, a default value is used.
//
// Environment Variables:
//   - LEXDEPLOY_TIMEOUT_RUN (default: 45m)
//   - LEXDEPLOY_TIMEOUT_FUNCTION (default: 2m), LEXDEPLOY_POLL_FUNCTION (default: 2s)
//   - LEXDEPLOY_TIMEOUT_BOT (default: 5m), LEXDEPLOY_POLL_BOT (default: 10s)
//   - LEXDEPLOY_TIMEOUT_LOCALE (default: 5m), LEXDEPLOY_POLL_LOCALE (default: 10s)
//   - LEXDEPLOY_TIMEOUT_BUILD (default: 20m), LEXDEPLOY_POLL_BUILD (default: 30s)
//   - LEXDEPLOY_TIMEOUT_VERSION (default: 50s), LEXDEPLOY_POLL_VERSION (default: 5s)
//   - LEXDEPLOY_VERSION_ATTEMPTS overrides LEXDEPLOY_TIMEOUT_VERSION with
//     attempts × poll interval
//   - LEXDEPLOY_TIMEOUT_ALIAS (default: 2m), LEXDEPLOY_POLL_ALIAS (default: 5s)
func LoadTimeouts() *Timeouts {
	t := &Timeouts{
		Run:           parseDuration("LEXDEPLOY_TIMEOUT_RUN", 45*time.Minute),
		FunctionReady: parseDuration("LEXDEPLOY_TIMEOUT_FUNCTION", 2*time.Minute),
		FunctionPoll:  parseDuration("LEXDEPLOY_POLL_FUNCTION", 2*time.Second),
		BotReady:      parseDuration("LEXDEPLOY_TIMEOUT_BOT", 5*time.Minute),
		BotPoll:       parseDuration("LEXDEPLOY_POLL_BOT", 10*time.Second),
		LocaleReady:   parseDuration("LEXDEPLOY_TIMEOUT_LOCALE", 5*time.Minute),
		LocalePoll:    parseDuration("LEXDEPLOY_POLL_LOCALE", 10*time.Second),
		Build:         parseDuration("LEXDEPLOY_TIMEOUT_BUILD", 20*time.Minute),
		BuildPoll:     parseDuration("LEXDEPLOY_POLL_BUILD", 30*time.Second),
		VersionReady:  parseDuration("LEXDEPLOY_TIMEOUT_VERSION", 50*time.Second),
		VersionPoll:   parseDuration("LEXDEPLOY_POLL_VERSION", 5*time.Second),
		AliasReady:    parseDuration("LEXDEPLOY_TIMEOUT_ALIAS", 2*time.Minute),
		AliasPoll:     parseDuration("LEXDEPLOY_POLL_ALIAS", 5*time.Second),
	}

	// A retry count is a timeout in disguise.
	if attempts := parseInt("LEXDEPLOY_VERSION_ATTEMPTS", 0); attempts > 0 {
		t.VersionReady = AttemptsToTimeout(attempts, t.VersionPoll)
	}

	return t
}

// AttemptsToTimeout converts a bounded retry count into the equivalent
// polling timeout.
func AttemptsToTimeout(attempts int, interval time.Duration) time.Duration {
	return time.Duration(attempts) * interval
}

// parseDuration parses a duration from an environment variable.
// If the variable is not set or parsing fails, the default value is returned.
func parseDuration(envVar string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	d, err := time.ParseDuration(val)
	if err != nil || d <= 0 {
		return defaultVal
	}

	return d
}

// parseInt parses an integer from an environment variable.
// If the variable is not set or parsing fails, the default value is returned.
func parseInt(envVar string, defaultVal int) int {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}

	return i
}
