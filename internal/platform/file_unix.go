//go:build unix

package platform

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"syscall"

	"golang.org/x/sys/unix"
)

// isAddrInUse reports whether err is the Unix address-in-use errno, raised
// when a bind-style resource (e.g. a Unix domain socket) collides with an
// existing one at the candidate path.
func isAddrInUse(err error) bool {
	return errors.Is(err, syscall.EADDRINUSE)
}

// CreateNamed atomically creates the file at path, failing if an entry
// already exists there. The handle is opened read+write with close-on-exec
// set so child processes do not inherit it. perm applies only to the newly
// created file; appendMode additionally sets O_APPEND on the handle.
func CreateNamed(path string, perm os.FileMode, appendMode bool) (*os.File, error) {
	flags := unix.O_RDWR | unix.O_CREAT | unix.O_EXCL | unix.O_CLOEXEC
	if appendMode {
		flags |= unix.O_APPEND
	}
	fd, err := unix.Open(path, flags, uint32(perm.Perm()))
	if err != nil {
		return nil, &fs.PathError{Op: "open", Path: path, Err: err}
	}
	return os.NewFile(uintptr(fd), path), nil
}

// Reopen obtains a second, independent handle (its own seek offset) to the
// content behind f by going back through the path namespace. Because the
// path may have been swapped since f was created, the identity of the new
// handle is verified against f; a mismatch returns ErrReplaced.
func Reopen(f *os.File, path string) (*os.File, error) {
	reopened, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, err
	}
	if err := CheckSameFile(f, reopened); err != nil {
		_ = reopened.Close()
		return nil, err
	}
	return reopened, nil
}

// Share obtains an independent handle to the same (possibly unnamed)
// content as f via the fd filesystem. The identity check guards against
// /dev/fd races the same way Reopen guards against path swaps.
func Share(f *os.File) (*os.File, error) {
	shared, err := os.OpenFile(fmt.Sprintf("/dev/fd/%d", f.Fd()), os.O_RDWR, 0)
	if err != nil {
		return nil, err
	}
	if err := CheckSameFile(f, shared); err != nil {
		_ = shared.Close()
		return nil, err
	}
	return shared, nil
}

// Persist moves the temporary file at oldPath to newPath. With overwrite
// set this is a single atomic rename that replaces any existing entry.
// Without it, persistNoClobber is used, which fails without modifying
// newPath if an entry already exists there.
func Persist(oldPath, newPath string, overwrite bool) error {
	if overwrite {
		return os.Rename(oldPath, newPath)
	}
	return persistNoClobber(oldPath, newPath)
}

// linkUnlink is the portable no-clobber sequence: hard-link the temporary
// file at its target, then drop the original link. This is not atomic
// end-to-end; if the process dies between the two calls the original
// temporary file is left behind. The unlink error is deliberately ignored:
// the file was persisted, the stale link is only a leak.
func linkUnlink(oldPath, newPath string) error {
	if err := unix.Link(oldPath, newPath); err != nil {
		return &os.LinkError{Op: "link", Old: oldPath, New: newPath, Err: err}
	}
	_ = unix.Unlink(oldPath)
	return nil
}
