package platform

import (
	"errors"
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Stebalien/tempfile/internal/common"
)

func TestRemoveDirRecursive(t *testing.T) {
	fsys := common.NewMockFileSystem()
	root := filepath.Join("/tmp", "scratch")
	fsys.AddFile(filepath.Join(root, "a.txt"), []byte("a"))
	fsys.AddFile(filepath.Join(root, "sub", "b.txt"), []byte("b"))
	fsys.AddFile(filepath.Join(root, "sub", "deeper", "c.txt"), []byte("c"))
	fsys.AddDir(filepath.Join(root, "empty"))

	require.NoError(t, RemoveDir(fsys, root, true))
	assert.False(t, fsys.Exists(root), "tree root should be gone")
	assert.False(t, fsys.Exists(filepath.Join(root, "sub")), "subdirectory should be gone")
}

func TestRemoveDirRecursiveAbortsOnFirstFailure(t *testing.T) {
	fsys := common.NewMockFileSystem()
	root := filepath.Join("/tmp", "scratch")
	injected := errors.New("permission denied")

	// Entries are walked in sorted order: a.txt removes fine, b.txt fails,
	// c.txt and the directory itself must be left untouched.
	fsys.AddFile(filepath.Join(root, "a.txt"), []byte("a"))
	fsys.AddFile(filepath.Join(root, "b.txt"), []byte("b"))
	fsys.AddFile(filepath.Join(root, "c.txt"), []byte("c"))
	fsys.RemoveErrors[filepath.Join(root, "b.txt")] = injected

	err := RemoveDir(fsys, root, true)
	require.Error(t, err)
	assert.ErrorIs(t, err, injected)

	assert.Equal(t, []string{filepath.Join(root, "a.txt")}, fsys.Removed,
		"removal should stop at the first failing entry, not continue with siblings")
	assert.True(t, fsys.Exists(filepath.Join(root, "c.txt")))
	assert.True(t, fsys.Exists(root))
}

func TestRemoveDirNonRecursive(t *testing.T) {
	fsys := common.NewMockFileSystem()
	root := filepath.Join("/tmp", "scratch")

	t.Run("refuses non-empty directory", func(t *testing.T) {
		fsys.AddFile(filepath.Join(root, "a.txt"), []byte("a"))
		require.Error(t, RemoveDir(fsys, root, false))
		assert.True(t, fsys.Exists(root))
		assert.True(t, fsys.Exists(filepath.Join(root, "a.txt")))
	})

	t.Run("removes empty directory", func(t *testing.T) {
		empty := filepath.Join("/tmp", "empty")
		fsys.AddDir(empty)
		require.NoError(t, RemoveDir(fsys, empty, false))
		assert.False(t, fsys.Exists(empty))
	})
}

func TestRemoveDirMissing(t *testing.T) {
	fsys := common.NewMockFileSystem()
	err := RemoveDir(fsys, filepath.Join("/tmp", "nope"), true)
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}
