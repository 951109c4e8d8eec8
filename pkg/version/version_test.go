package version

import (
	"encoding/json"
	"regexp"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersion_FollowsSemverOrDev(t *testing.T) {
	require.NotEmpty(t, Version)
	if Version == "dev" {
		return
	}
	semverRegex := regexp.MustCompile(`^\d+\.\d+\.\d+(-[a-zA-Z0-9.]+)?$`)
	assert.Regexp(t, semverRegex, Version)
}

func TestString_NamesProgramAndBuild(t *testing.T) {
	// Given: ldflags-style build values
	restore := setBuild(t, "1.4.0", "abc1234", "2026-01-02T03:04:05Z")
	defer restore()

	// When: formatting the full version
	str := String()

	// Then: every build value appears after the program name
	assert.True(t, strings.HasPrefix(str, Name+" 1.4.0 "), str)
	assert.Contains(t, str, "commit: abc1234")
	assert.Contains(t, str, "built: 2026-01-02T03:04:05Z")
	assert.Contains(t, str, "go: "+GoVersion)
}

func TestShort_IsBareVersion(t *testing.T) {
	restore := setBuild(t, "2.0.0-rc.1", "unknown", "unknown")
	defer restore()

	assert.Equal(t, "2.0.0-rc.1", Short())
}

func TestGetInfo_JSONFieldNames(t *testing.T) {
	restore := setBuild(t, "1.0.0", "deadbee", "today")
	defer restore()

	data, err := json.Marshal(GetInfo())
	require.NoError(t, err)

	var parsed map[string]string
	require.NoError(t, json.Unmarshal(data, &parsed))
	assert.Equal(t, map[string]string{
		"version":    "1.0.0",
		"commit":     "deadbee",
		"date":       "today",
		"go_version": runtime.Version(),
		"os":         runtime.GOOS,
		"arch":       runtime.GOARCH,
	}, parsed)
}

// setBuild swaps the ldflags variables and returns a func restoring them.
func setBuild(t *testing.T, version, commit, date string) func() {
	t.Helper()
	oldVersion, oldCommit, oldDate := Version, Commit, Date
	Version, Commit, Date = version, commit, date
	return func() {
		Version, Commit, Date = oldVersion, oldCommit, oldDate
	}
}
