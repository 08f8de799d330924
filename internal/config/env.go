package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads variables from a .env file in the working directory
// without overriding variables already set. A missing file is not an error;
// the returned bool reports whether one was read.
func LoadDotEnv(files ...string) (bool, error) {
	err := godotenv.Load(files...)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("failed to load .env: %w", err)
}
