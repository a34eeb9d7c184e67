package tempfile

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// populateTree fills dir with nested files and subdirectories.
func populateTree(t *testing.T, dir string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub", "deeper"), 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("a"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sub", "b.txt"), []byte("b"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sub", "deeper", "c.txt"), []byte("c"), 0o600))
}

func TestDirLifecycle(t *testing.T) {
	base := safeTempDir(t)

	d, err := NewDirIn(base)
	require.NoError(t, err)

	info, err := os.Lstat(d.Path())
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	if runtime.GOOS != "windows" {
		assert.Equal(t, os.FileMode(0o700), info.Mode().Perm())
	}

	populateTree(t, d.Path())
	path := d.Path()
	require.NoError(t, d.Close())

	_, err = os.Lstat(path)
	assert.True(t, os.IsNotExist(err), "Close should remove the whole tree")

	assert.ErrorIs(t, d.Close(), ErrClosed)
}

func TestDirCleanup(t *testing.T) {
	base := safeTempDir(t)

	d, err := NewDirIn(base)
	require.NoError(t, err)
	populateTree(t, d.Path())
	path := d.Path()
	d.Cleanup()

	_, err = os.Lstat(path)
	assert.True(t, os.IsNotExist(err))

	// Idempotent after any terminal transition.
	d.Cleanup()
}

func TestDirDetach(t *testing.T) {
	base := safeTempDir(t)

	d, err := NewDirIn(base)
	require.NoError(t, err)
	path, err := d.Detach()
	require.NoError(t, err)

	d.Cleanup() // disarmed, must not delete
	info, err := os.Lstat(path)
	require.NoError(t, err, "detached directory should stay on disk")
	assert.True(t, info.IsDir())
}

func TestRemoveDirNonRecursiveGuard(t *testing.T) {
	base := safeTempDir(t)

	d, err := NewDirIn(base)
	require.NoError(t, err)
	populateTree(t, d.Path())
	path, err := d.Detach()
	require.NoError(t, err)

	// Non-recursive removal of a non-empty directory must fail and leave
	// the tree untouched.
	require.Error(t, RemoveDir(path, false))
	_, err = os.Lstat(filepath.Join(path, "sub", "deeper", "c.txt"))
	assert.NoError(t, err)

	require.NoError(t, RemoveDir(path, true))
	_, err = os.Lstat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestDirBuilderNaming(t *testing.T) {
	base := safeTempDir(t)

	d, err := NewBuilder().Prefix("work-").Suffix(".d").DirIn(base)
	require.NoError(t, err)
	defer d.Cleanup()

	name := filepath.Base(d.Path())
	assert.Regexp(t, `^work-[0-9A-Za-z]{6}\.d$`, name)
}
