package state_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kimocks-netizen/docproc-client/internal/state"
)

func TestDarkModeRoundTrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	assert.False(t, state.LoadDarkMode(), "default is light")

	require.NoError(t, state.SaveDarkMode(true))
	assert.True(t, state.LoadDarkMode())

	require.NoError(t, state.SaveDarkMode(false))
	assert.False(t, state.LoadDarkMode())
}

func TestLoadDarkMode_GarbageFileMeansDefault(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "docproc"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "docproc", "darkmode"), []byte("not-a-bool"), 0o644))

	assert.False(t, state.LoadDarkMode())
}
