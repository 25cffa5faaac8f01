package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func captureServe(t *testing.T) **ServeConfig {
	t.Helper()
	var captured *ServeConfig
	serveRunner = func(_ context.Context, cfg *ServeConfig) error {
		captured = cfg
		return nil
	}
	t.Cleanup(func() { serveRunner = runServe })
	return &captured
}

func TestServe_Flags(t *testing.T) {
	captured := captureServe(t)

	_, err := execute(t, "--verbose", "serve", "--addr", ":9090", "--log-format", "json", "--shutdown-timeout", "3s", "--rate", "5", "--burst", "20")
	require.NoError(t, err)

	cfg := *captured
	require.NotNil(t, cfg)
	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 5.0, cfg.Rate)
	assert.Equal(t, 20, cfg.Burst)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "/docs", cfg.Doc.SwaggerPath)
	assert.Equal(t, "Users API", cfg.Doc.Title)
}

func TestServe_ConfigFile(t *testing.T) {
	captured := captureServe(t)
	path := filepath.Join(t.TempDir(), "openapi.yaml")
	require.NoError(t, os.WriteFile(path, []byte("title: Custom\nprefix: /v1\n"), 0o600))

	_, err := execute(t, "-c", path, "serve")
	require.NoError(t, err)

	cfg := *captured
	require.NotNil(t, cfg)
	assert.Equal(t, "Custom", cfg.Doc.Title)
	assert.Equal(t, "/v1", cfg.Doc.Prefix)
	assert.Equal(t, "/docs", cfg.Doc.SwaggerPath)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestServe_InvalidLogFormat(t *testing.T) {
	captureServe(t)

	_, err := execute(t, "serve", "--log-format", "xml")
	assert.True(t, errors.Is(err, ErrUsage))
}

func TestUnknownFlag(t *testing.T) {
	_, err := execute(t, "spec", "--bogus")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUsage))
	assert.Contains(t, err.Error(), "Usage:")
}

func TestSpec_JSON(t *testing.T) {
	out, err := execute(t, "spec")
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "3.0.3", doc["openapi"])
	paths, ok := doc["paths"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, paths, "/users/")
	assert.Contains(t, paths, "/users/{id}/")
}

func TestSpec_YAML(t *testing.T) {
	out, err := execute(t, "spec", "--format", "yaml")
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "3.0.3", doc["openapi"])
	info, ok := doc["info"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Users API", info["title"])
}

func TestSpec_Swagger2(t *testing.T) {
	path := filepath.Join(t.TempDir(), "openapi.yaml")
	require.NoError(t, os.WriteFile(path, []byte("openapi_version: \"2.0\"\n"), 0o600))

	out, err := execute(t, "--config", path, "spec")
	require.NoError(t, err)
	assert.Contains(t, out, `"swagger":"2.0"`)
}

func TestSpec_InvalidFormat(t *testing.T) {
	_, err := execute(t, "spec", "--format", "toml")
	assert.True(t, errors.Is(err, ErrUsage))
}
