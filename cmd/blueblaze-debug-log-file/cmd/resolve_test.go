package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bberrors "github.com/blueblazeassociates/blueblaze-debug-log-file/internal/errors"
	"github.com/blueblazeassociates/blueblaze-debug-log-file/internal/resolver"
)

func TestResolveCmd_Directory(t *testing.T) {
	// Given: a writable directory
	isolateEnv(t)
	dir := t.TempDir()

	// When: resolving it
	stdout, stderr, err := execute(t, "resolve", dir)

	// Then: debug.log inside it is reported and nothing is created
	require.NoError(t, err)
	assert.Contains(t, stdout, filepath.Join(dir, "debug.log"))
	assert.Contains(t, stdout, "directory")
	assert.Empty(t, stderr)
	assert.NoFileExists(t, filepath.Join(dir, "debug.log"))
}

func TestResolveCmd_JSON(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	link := filepath.Join(t.TempDir(), "logs")
	require.NoError(t, os.Symlink(dir, link))

	stdout, _, err := execute(t, "resolve", link, "--json")
	require.NoError(t, err)

	var report map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &report))
	assert.Equal(t, "directory", report["kind"])
	assert.Equal(t, true, report["symlink"])
	assert.Equal(t, dir, report["resolved"])
	assert.Equal(t, filepath.Join(dir, "debug.log"), report["path"])
	assert.NotContains(t, report, "error")
	assert.NotContains(t, report, "warning")
}

func TestResolveCmd_JSONWarnsForUnknownTarget(t *testing.T) {
	// Given: a path that does not exist yet
	isolateEnv(t)
	target := filepath.Join(t.TempDir(), "later.log")

	// When: resolving it as JSON
	stdout, _, err := execute(t, "resolve", target, "--json")

	// Then: it succeeds with an informational warning
	require.NoError(t, err)
	var report map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &report))
	assert.Equal(t, "unknown", report["kind"])
	assert.Equal(t, target, report["path"])
	warning, ok := report["warning"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, bberrors.ErrCodeIndeterminateTarget, warning["code"])
	assert.Equal(t, "INFO", warning["severity"])
	assert.NotContains(t, report, "error")
}

func TestResolveCmd_UsesFallbackEnv(t *testing.T) {
	// Given: no argument and the fallback set in the environment
	isolateEnv(t)
	target := filepath.Join(t.TempDir(), "site.log")
	t.Setenv(resolver.FallbackName, target)

	// When: resolving with no path
	stdout, _, err := execute(t, "resolve")

	// Then: the fallback is selected and applied as given
	require.NoError(t, err)
	assert.Contains(t, stdout, resolver.FallbackName)
	assert.Contains(t, stdout, target)
	assert.Contains(t, stdout, "uncertain")
}

func TestResolveCmd_ConfigMissing(t *testing.T) {
	isolateEnv(t)

	stdout, _, err := execute(t, "resolve", "--json")

	require.Error(t, err)
	assert.Equal(t, bberrors.ErrCodeConfigMissing, bberrors.GetCode(err))

	var report map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &report))
	errObj, ok := report["error"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, bberrors.ErrCodeConfigMissing, errObj["code"])
}

func TestResolveCmd_UsesConfigFile(t *testing.T) {
	// Given: an explicit config naming a directory
	isolateEnv(t)
	dir := t.TempDir()
	cfgPath := filepath.Join(t.TempDir(), "site.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("log_file: "+dir+"\n"), 0o644))

	// When: resolving with --config
	stdout, _, err := execute(t, "resolve", "--config", cfgPath)

	// Then: the configured directory is used
	require.NoError(t, err)
	assert.Contains(t, stdout, filepath.Join(dir, "debug.log"))
}
