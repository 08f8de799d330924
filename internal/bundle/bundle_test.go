package bundle

import (
	"archive/zip"
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/lexdeploy/internal/config"
)

func readZip(t *testing.T, data []byte) map[string]string {
	t.Helper()
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	out := make(map[string]string)
	for _, f := range r.File {
		rc, err := f.Open()
		require.NoError(t, err)
		content, err := io.ReadAll(rc)
		require.NoError(t, err)
		require.NoError(t, rc.Close())
		out[f.Name] = string(content)
	}
	return out
}

func TestEcho_Bundle(t *testing.T) {
	t.Parallel()

	data, err := Echo{}.Bundle(context.Background())
	require.NoError(t, err)

	files := readZip(t, data)
	require.Len(t, files, 1)
	assert.Contains(t, files[EchoHandlerFile], "def lambda_handler(event, context):")
	assert.Contains(t, files[EchoHandlerFile], "You said: {message}")
}

func TestEcho_Deterministic(t *testing.T) {
	t.Parallel()

	first, err := Echo{}.Bundle(context.Background())
	require.NoError(t, err)
	second, err := Echo{}.Bundle(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestZip_OrderIndependent(t *testing.T) {
	t.Parallel()

	a, err := Zip(map[string][]byte{"b.py": []byte("b"), "a.py": []byte("a")})
	require.NoError(t, err)
	b, err := Zip(map[string][]byte{"a.py": []byte("a"), "b.py": []byte("b")})
	require.NoError(t, err)
	assert.Equal(t, a, b)

	r, err := zip.NewReader(bytes.NewReader(a), int64(len(a)))
	require.NoError(t, err)
	require.Len(t, r.File, 2)
	assert.Equal(t, "a.py", r.File[0].Name)
	assert.Equal(t, zip.Deflate, r.File[0].Method)
}

func TestZip_Empty(t *testing.T) {
	t.Parallel()

	_, err := Zip(nil)
	assert.Error(t, err)
}

func TestFile_Bundle(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "bundle.zip")
	require.NoError(t, os.WriteFile(path, []byte("PK\x03\x04"), 0o600))

	data, err := File{Path: path}.Bundle(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []byte("PK\x03\x04"), data)

	_, err = File{Path: filepath.Join(dir, "missing.zip")}.Bundle(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read bundle")

	empty := filepath.Join(dir, "empty.zip")
	require.NoError(t, os.WriteFile(empty, nil, 0o600))
	_, err = File{Path: empty}.Bundle(context.Background())
	assert.ErrorContains(t, err, "is empty")
}

func TestForFunction(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Echo{}, ForFunction(config.FunctionConfig{}))
	assert.Equal(t, File{Path: "dist/handler.zip"}, ForFunction(config.FunctionConfig{BundlePath: "dist/handler.zip"}))
}
