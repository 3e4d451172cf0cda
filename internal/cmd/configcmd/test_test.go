package configcmd

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pure-fb2/purefb2/api"
	"github.com/pure-fb2/purefb2/internal/config"
)

func saveConfig(t *testing.T, cfg *config.Config) {
	t.Helper()
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)
	require.NoError(t, cfg.Save(filepath.Join(tmpDir, "purefb2", "config.yml")))
}

func TestRunTest_APIDisabled(t *testing.T) {
	cfg := config.Default()
	cfg.AuthorToday = false
	saveConfig(t, cfg)
	t.Setenv("PUREFB2_AUTHOR_TODAY", "")

	err := runTest(context.Background(), true, nil)
	require.NoError(t, err)
}

func TestRunTest_APIReachable(t *testing.T) {
	saveConfig(t, config.Default())
	t.Setenv("PUREFB2_AUTHOR_TODAY", "")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/work/12345/meta-info", r.URL.Path)
		w.Write([]byte(`{"id": 12345, "title": "x"}`))
	}))
	defer server.Close()

	err := runTest(context.Background(), true, api.NewClientWithBaseURL(server.URL))
	require.NoError(t, err)
}

func TestRunTest_APIUnreachable(t *testing.T) {
	saveConfig(t, config.Default())
	t.Setenv("PUREFB2_AUTHOR_TODAY", "")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"message": "down"}`))
	}))
	defer server.Close()

	err := runTest(context.Background(), true, api.NewClientWithBaseURL(server.URL))
	require.Error(t, err)
}

func TestRunTest_InvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.OutFormats = nil
	saveConfig(t, cfg)
	t.Setenv("PUREFB2_OUT_FORMATS", "")

	err := runTest(context.Background(), true, nil)
	require.Error(t, err)
}
