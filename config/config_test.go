package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, warnings := Load(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	assert.Empty(t, warnings)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverlaysPresentFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cssterm.toml")
	require.NoError(t, os.WriteFile(path, []byte("target_fps = 30\nmouse = false\n"), 0o644))

	cfg, warnings := Load(path)

	assert.Empty(t, warnings)
	assert.Equal(t, 30, cfg.TargetFPS)
	assert.False(t, cfg.Mouse)
	assert.Equal(t, Default().BracketedPaste, cfg.BracketedPaste, "fields absent from the file keep their default")
}

func TestLoadInvalidFPSFallsBackWithWarning(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cssterm.toml")
	require.NoError(t, os.WriteFile(path, []byte("target_fps = 9999\n"), 0o644))

	cfg, warnings := Load(path)

	assert.Equal(t, Default().TargetFPS, cfg.TargetFPS)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0].Error(), "target_fps")
}

func TestLoadMalformedTOMLFallsBackToDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cssterm.toml")
	require.NoError(t, os.WriteFile(path, []byte("this is not [valid toml"), 0o644))

	cfg, warnings := Load(path)

	assert.Equal(t, Default(), cfg)
	require.Len(t, warnings, 1)
}
