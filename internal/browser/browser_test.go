package browser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPickUserAgentFromPool(t *testing.T) {
	for i := 0; i < 50; i++ {
		require.Contains(t, userAgents, PickUserAgent())
	}
}

func TestRemoveProfileDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "profile-x")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "Default"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Default", "Cookies"), []byte("x"), 0o644))

	removeProfileDir(dir)

	_, err := os.Stat(dir)
	require.True(t, os.IsNotExist(err))
}

func TestRemoveProfileDirEmptyIsNoop(t *testing.T) {
	removeProfileDir("")
}
