//go:build linux

package platform

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"sync"
	"syscall"

	"golang.org/x/sys/unix"
)

// tmpfileAvailable probes once whether the kernel supports O_TMPFILE
// (Linux >= 3.11 with filesystem support). The probe opens a real unnamed
// file in the default temporary directory and throws it away.
var tmpfileAvailable = sync.OnceValue(func() bool {
	fd, err := unix.Open(os.TempDir(), unix.O_TMPFILE|unix.O_RDWR|unix.O_CLOEXEC, 0o600)
	if err != nil {
		slog.Debug("O_TMPFILE unavailable, anonymous files fall back to unlinked named files",
			slog.Any("error", err))
		return false
	}
	_ = unix.Close(fd)
	return true
})

// CreateAnonymousDirect creates a file in dir whose name is never linked
// into the directory tree, using O_TMPFILE. The second return value is
// false when the kernel or the filesystem holding dir lacks O_TMPFILE
// support, in which case the caller must fall back to creating a named
// file and unlinking it.
func CreateAnonymousDirect(dir string, perm os.FileMode) (*os.File, bool, error) {
	if !tmpfileAvailable() {
		return nil, false, nil
	}
	fd, err := unix.Open(dir, unix.O_TMPFILE|unix.O_RDWR|unix.O_EXCL|unix.O_CLOEXEC, uint32(perm.Perm()))
	if err != nil {
		// The probe directory may support O_TMPFILE while dir's
		// filesystem does not.
		if errors.Is(err, syscall.EOPNOTSUPP) || errors.Is(err, syscall.EISDIR) || errors.Is(err, syscall.EINVAL) {
			return nil, false, nil
		}
		return nil, true, &fs.PathError{Op: "open", Path: dir, Err: err}
	}
	return os.NewFile(uintptr(fd), dir), true, nil
}

// persistNoClobber prefers renameat2 with RENAME_NOREPLACE, which makes the
// no-clobber persist a single atomic call. Kernels or filesystems without
// it get the portable link+unlink sequence with its documented weaker
// guarantee.
func persistNoClobber(oldPath, newPath string) error {
	err := unix.Renameat2(unix.AT_FDCWD, oldPath, unix.AT_FDCWD, newPath, unix.RENAME_NOREPLACE)
	if err == nil {
		return nil
	}
	if errors.Is(err, syscall.ENOSYS) || errors.Is(err, syscall.EINVAL) {
		return linkUnlink(oldPath, newPath)
	}
	return &os.LinkError{Op: "rename", Old: oldPath, New: newPath, Err: err}
}
