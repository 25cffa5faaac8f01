package logging_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gobd/apispec/internal/logging"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, logging.ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, logging.ParseLevel("warn"))
	assert.Equal(t, slog.LevelError, logging.ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, logging.ParseLevel("bogus"))
}

func TestNew_JSONToFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "logs", "app.log")
	var out bytes.Buffer
	logger, err := logging.New(logging.Config{Format: "json", Filename: file, MaxSize: 1}, &out)
	require.NoError(t, err)

	logger.Info("hello", "k", "v")

	b, err := os.ReadFile(file)
	require.NoError(t, err)
	var rec map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(b), &rec))
	assert.Equal(t, "hello", rec["msg"])
	assert.Equal(t, "v", rec["k"])
	assert.Empty(t, out.String())
}

func TestNew_TextLevel(t *testing.T) {
	var out bytes.Buffer
	logger, err := logging.New(logging.Config{Level: "warn"}, &out)
	require.NoError(t, err)

	logger.Info("dropped")
	logger.Warn("kept")
	assert.NotContains(t, out.String(), "dropped")
	assert.Contains(t, out.String(), "kept")
}

func TestRequests(t *testing.T) {
	var out bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&out, nil))
	h := logging.Requests(logger)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nope", nil))

	var rec map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(out.Bytes()), &rec))
	assert.Equal(t, "WARN", rec["level"])
	assert.Equal(t, "/nope", rec["path"])
	assert.Equal(t, float64(http.StatusNotFound), rec["status"])
}
