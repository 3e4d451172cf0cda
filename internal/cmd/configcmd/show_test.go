package configcmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pure-fb2/purefb2/internal/config"
)

func TestRunShow_WithConfigFile(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	cfg := config.Default()
	cfg.OutputDir = "/books"
	cfg.Document.Promo = "# Nota bene\n\nТекст."
	xdgDir := filepath.Join(tmpDir, "purefb2")
	require.NoError(t, os.MkdirAll(xdgDir, 0755))
	require.NoError(t, cfg.Save(filepath.Join(xdgDir, "config.yml")))

	err := runShow(true)
	require.NoError(t, err)
}

func TestRunShow_NoConfigFile(t *testing.T) {
	for _, v := range []string{"PUREFB2_OUTPUT_DIR", "PUREFB2_NAME_FORMAT", "PUREFB2_OUT_FORMATS", "PUREFB2_AUTHOR_TODAY"} {
		t.Setenv(v, "")
	}
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	err := runShow(true)
	require.NoError(t, err)
}
