// Package logging configures the process-wide slog logger.
//
// Terminals get colored output through tint; pipes and files get JSON so
// CI logs stay machine readable. LEXDEPLOY_LOG_FORMAT and
// LEXDEPLOY_LOG_LEVEL override the detection.
package logging
