// Package platform is the only package that issues raw OS calls on behalf of
// the tempfile library. It realizes four capabilities with a uniform
// contract and per-OS implementations selected by build tags: atomic
// exclusive creation of named files, anonymous file creation (content never
// reachable by name, or unreachable before any other process could use it),
// reopening an independent handle to the same content, and atomic
// rename/replace for persisting a temporary file.
//
// Collision-class failures (name already exists, address in use) are
// reported as-is; the retry loop that absorbs them lives in the root
// package, not here.
package platform

import (
	"fmt"
	"io/fs"
	"os"
)

// ErrReplaced indicates that a reopened handle does not refer to the same
// underlying file object as the original, i.e. the path was swapped
// underneath the resource. It matches fs.ErrNotExist: from the resource's
// point of view the original file is gone.
var ErrReplaced = fmt.Errorf("original temporary file has been replaced: %w", fs.ErrNotExist)

// IsRetryable reports whether err belongs to the collision class that a
// creation retry loop may absorb: the candidate name already exists, or the
// platform's address-in-use error for bind-style resources such as Unix
// domain sockets. Anything else indicates a real failure and must surface.
func IsRetryable(err error) bool {
	return errorIsExist(err) || isAddrInUse(err)
}

func errorIsExist(err error) bool {
	return err != nil && os.IsExist(err)
}

// Mkdir creates a new directory with exclusive semantics: it fails if an
// entry already exists at path. The existence check and creation are a
// single OS call.
func Mkdir(path string, perm os.FileMode) error {
	return os.Mkdir(path, perm)
}

// CheckSameFile verifies that two open handles refer to the same underlying
// OS file object (device and inode on Unix, volume and file index on
// Windows). A mismatch returns ErrReplaced.
func CheckSameFile(orig, reopened *os.File) error {
	origInfo, err := orig.Stat()
	if err != nil {
		return fmt.Errorf("stat original handle: %w", err)
	}
	reopenedInfo, err := reopened.Stat()
	if err != nil {
		return fmt.Errorf("stat reopened handle: %w", err)
	}
	if !os.SameFile(origInfo, reopenedInfo) {
		return ErrReplaced
	}
	return nil
}
