package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
)

// Output formats.
const (
	JSON = "json"
	Text = "text"
	Tint = "tint"
	Auto = "auto"
)

// Environment variables read by FromEnv.
const (
	EnvFormat = "LEXDEPLOY_LOG_FORMAT"
	EnvLevel  = "LEXDEPLOY_LOG_LEVEL"
)

// Options selects the handler built by New.
type Options struct {
	Format string
	Level  string
	// AddSource adds file:line to every record.
	AddSource bool
}

// FromEnv reads Options from the environment. Unset values default to
// auto-detected format at info level.
func FromEnv() Options {
	opts := Options{
		Format: strings.ToLower(os.Getenv(EnvFormat)),
		Level:  os.Getenv(EnvLevel),
	}
	if opts.Format == "" {
		opts.Format = Auto
	}
	if opts.Level == "" {
		opts.Level = "info"
	}
	return opts
}

// New builds a logger writing to w.
func New(w io.Writer, opts Options) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(opts.Level)); err != nil {
		return nil, fmt.Errorf("could not parse log level: %w", err)
	}

	format := opts.Format
	if format == "" || format == Auto {
		format = detect(w)
	}

	handlerOptions := &slog.HandlerOptions{
		AddSource: opts.AddSource,
		Level:     level,
	}

	var handler slog.Handler
	switch format {
	case JSON:
		handler = slog.NewJSONHandler(w, handlerOptions)
	case Text:
		handler = slog.NewTextHandler(w, handlerOptions)
	case Tint:
		handler = tint.NewHandler(w, &tint.Options{
			AddSource:  opts.AddSource,
			Level:      level,
			TimeFormat: time.Kitchen,
			NoColor:    !isTerminal(w),
		})
	default:
		return nil, fmt.Errorf("unknown logging format: %s", opts.Format)
	}

	return slog.New(handler), nil
}

// Initialize installs a logger writing to stderr as the slog default.
func Initialize(opts Options) (*slog.Logger, error) {
	logger, err := New(os.Stderr, opts)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(logger)
	return logger, nil
}

func detect(w io.Writer) string {
	if isTerminal(w) {
		return Tint
	}
	return JSON
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
