package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mna/pybind/diag"
)

func TestLoadEnv_AppliesDefaults(t *testing.T) {
	os.Unsetenv("PYBIND_LOG_LEVEL")
	os.Unsetenv("PYBIND_LANGUAGE_VERSION")
	os.Unsetenv("PYBIND_STUB_PATH")

	cfg, err := LoadEnv()
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "3.12", cfg.LanguageVersion)
	assert.Empty(t, cfg.StubSearchPaths)
}

func TestLoadEnv_ReadsOverrides(t *testing.T) {
	t.Setenv("PYBIND_LOG_LEVEL", "debug")
	t.Setenv("PYBIND_STUB_PATH", "/a/stubs:/b/stubs")

	cfg, err := LoadEnv()
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, []string{"/a/stubs", "/b/stubs"}, cfg.StubSearchPaths)
}

func TestLoadRuleSeverity_MissingFileIsNotAnError(t *testing.T) {
	sev, err := LoadRuleSeverity(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Nil(t, sev)
}

func TestLoadRuleSeverity_ParsesOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pybind.yaml")
	require.NoError(t, os.WriteFile(path, []byte("rules:\n  reportUnusedImport: warning\n  reportUndefined: error\n"), 0o644))

	sev, err := LoadRuleSeverity(path)
	require.NoError(t, err)
	assert.Equal(t, diag.SeverityWarning, sev["reportUnusedImport"])
	assert.Equal(t, diag.SeverityError, sev["reportUndefined"])
}
