package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigFile is read when no path is given.
	DefaultConfigFile = "lexdeploy.yaml"

	// EnvConfigPath overrides DefaultConfigFile.
	EnvConfigPath = "LEXDEPLOY_CONFIG"
)

// ResolvePath returns the configuration file to read: the explicit path if
// set, then $LEXDEPLOY_CONFIG, then lexdeploy.yaml in the working directory.
func ResolvePath(path string) string {
	if path != "" {
		return path
	}
	if env := os.Getenv(EnvConfigPath); env != "" {
		return env
	}
	return DefaultConfigFile
}

// Load reads the configuration at path (see ResolvePath). A missing default
// file is not an error: the stock echo bot is used. A missing explicit file
// is.
func Load(path string) (*Config, error) {
	resolved := ResolvePath(path)

	// #nosec G304
	data, err := os.ReadFile(resolved)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && path == "" && os.Getenv(EnvConfigPath) == "" {
			return Parse(nil)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return Parse(data)
}

// Parse decodes YAML configuration, applies environment overrides and
// defaults, and validates the result.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal yaml: %w", err)
	}

	if len(cfg.Bot.Intents) == 0 {
		cfg.Bot.Intents = Default().Bot.Intents
	}

	cfg.applyEnv()
	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// applyEnv takes the region from the standard AWS variables when the file
// does not pin one.
func (c *Config) applyEnv() {
	if c.Region != "" {
		return
	}
	for _, key := range []string{"AWS_REGION", "AWS_DEFAULT_REGION"} {
		if v := os.Getenv(key); v != "" {
			c.Region = v
			return
		}
	}
}
