package workspace

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAcquireReturnsFreshDirectories(t *testing.T) {
	w := New(t.TempDir())

	dir1, err := w.Acquire()
	require.NoError(t, err)
	dir2, err := w.Acquire()
	require.NoError(t, err)

	require.NotEqual(t, dir1, dir2)
	require.DirExists(t, dir1)
	require.DirExists(t, dir2)
}

func TestReleaseRemovesAcquiredDirectory(t *testing.T) {
	w := New(t.TempDir())

	dir, err := w.Acquire()
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "file"), []byte("content"), 0o600))

	require.NoError(t, w.Release(dir))
	_, err = os.Stat(dir)
	require.True(t, os.IsNotExist(err))
}

func TestReleaseRejectsForeignDirectory(t *testing.T) {
	w := New(t.TempDir())

	foreign := t.TempDir()
	require.Error(t, w.Release(foreign))
	require.DirExists(t, foreign)
}
