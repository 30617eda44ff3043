package filex

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureParentDir_CreatesNestedDirectories(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "a", "b", "garage.db")

	require.NoError(t, EnsureParentDir(path))

	fi, err := os.Stat(filepath.Join(tmp, "a", "b"))
	require.NoError(t, err)
	assert.True(t, fi.IsDir())
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestEnsureParentDir_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "client.log")
	require.NoError(t, EnsureParentDir(path))
	require.NoError(t, EnsureParentDir(path))
}

func TestEnsureParentDir_SkipsSpecialPaths(t *testing.T) {
	for _, p := range []string{"", ":memory:", "file:garage?mode=memory", "garage.db"} {
		assert.NoError(t, EnsureParentDir(p), p)
	}
}

func TestEnsureParentDir_Error(t *testing.T) {
	tmp := t.TempDir()
	blocker := filepath.Join(tmp, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	err := EnsureParentDir(filepath.Join(blocker, "sub", "garage.db"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mkdir")
}
