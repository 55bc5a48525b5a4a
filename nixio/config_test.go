package nixio

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnode/neonix/nix"
)

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	content := []byte("path: /data/session.nix\nmode: readwrite\nsync_writes: true\nlog_level: debug\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "neonix.yaml"), content, 0o644))

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "/data/session.nix", cfg.Path)
	assert.Equal(t, nix.ReadWrite, cfg.FileMode())
	assert.True(t, cfg.SyncWrites)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
	require.NoError(t, cfg.Validate())
}

func TestLoadConfigDirectFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("in_memory: true\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.True(t, cfg.InMemory)
	require.NoError(t, cfg.Validate())
}

func TestLoadConfigMissing(t *testing.T) {
	_, err := LoadConfig(t.TempDir())
	assert.Error(t, err)
}

func TestConfigValidate(t *testing.T) {
	cases := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"defaults with path", Config{Path: "/tmp/x.nix"}, false},
		{"in-memory without path", Config{InMemory: true}, false},
		{"no path", Config{}, true},
		{"bad mode", Config{Path: "x", Mode: "append"}, true},
		{"bad level", Config{Path: "x", LogLevel: "trace"}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfigDefaults(t *testing.T) {
	cfg := Config{Path: "x"}
	assert.Equal(t, nix.Overwrite, cfg.FileMode())
	assert.Equal(t, slog.LevelInfo, cfg.SlogLevel())
	assert.Empty(t, cfg.FileOptions())
}

func TestConfigOpenFile(t *testing.T) {
	cfg := Config{InMemory: true}
	f, err := cfg.OpenFile()
	require.NoError(t, err)
	defer f.Close()

	_, err = f.CreateBlock("b", "neo.block")
	assert.NoError(t, err)
}
