package bundle

import (
	"archive/zip"
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/imamik/lexdeploy/internal/config"
)

// EchoHandlerFile is the module file of the built-in echo handler.
const EchoHandlerFile = "lambda_function.py"

//go:embed handler/lambda_function.py
var echoHandler []byte

// epoch is the modification time of every archived entry.
var epoch = time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)

// Source produces the deployment zip of the fulfillment function.
type Source interface {
	Bundle(ctx context.Context) ([]byte, error)
}

// File is a prebuilt deployment zip on disk.
type File struct {
	Path string
}

// Bundle reads the zip.
func (f File) Bundle(_ context.Context) ([]byte, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read bundle %s: %w", f.Path, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("bundle %s is empty", f.Path)
	}
	return data, nil
}

// Echo packages the built-in handler that replies "You said: <input>".
type Echo struct{}

// Bundle builds the zip.
func (Echo) Bundle(_ context.Context) ([]byte, error) {
	return Zip(map[string][]byte{EchoHandlerFile: echoHandler})
}

// ForFunction returns the source configured for the function: the file at
// BundlePath, or the echo handler.
func ForFunction(cfg config.FunctionConfig) Source {
	if cfg.BundlePath != "" {
		return File{Path: cfg.BundlePath}
	}
	return Echo{}
}

// Zip archives files with deflate compression. Entries are written in
// lexical order with a fixed modification time.
func Zip(files map[string][]byte) ([]byte, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("no files to archive")
	}

	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	slices.Sort(names)

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for _, name := range names {
		header := &zip.FileHeader{
			Name:     name,
			Method:   zip.Deflate,
			Modified: epoch,
		}
		header.SetMode(0o644)
		entry, err := w.CreateHeader(header)
		if err != nil {
			return nil, fmt.Errorf("failed to add %s: %w", name, err)
		}
		if _, err := entry.Write(files[name]); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", name, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize archive: %w", err)
	}
	return buf.Bytes(), nil
}
