//go:build windows

package platform

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/oklog/ulid/v2"
	"golang.org/x/sys/windows"
)

// Temporary files are created hidden and marked FILE_ATTRIBUTE_TEMPORARY so
// the system avoids flushing them when memory allows. Shares are wide open
// (including delete) so reopened handles and concurrent readers work.
const (
	tempAccess    = windows.FILE_GENERIC_READ | windows.FILE_GENERIC_WRITE
	tempShareMode = windows.FILE_SHARE_READ | windows.FILE_SHARE_WRITE | windows.FILE_SHARE_DELETE
	tempAttrs     = windows.FILE_ATTRIBUTE_HIDDEN | windows.FILE_ATTRIBUTE_TEMPORARY
)

var (
	kernel32       = windows.NewLazySystemDLL("kernel32.dll")
	procReOpenFile = kernel32.NewProc("ReOpenFile")
)

// isAddrInUse reports whether err is the Winsock address-in-use error.
func isAddrInUse(err error) bool {
	return errors.Is(err, windows.WSAEADDRINUSE)
}

func winCreate(path string, access, shareMode, disposition, flags uint32) (*os.File, error) {
	pathp, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return nil, &fs.PathError{Op: "open", Path: path, Err: err}
	}
	h, err := windows.CreateFile(pathp, access, shareMode, nil, disposition, flags, 0)
	if err != nil {
		return nil, &fs.PathError{Op: "open", Path: path, Err: err}
	}
	return os.NewFile(uintptr(h), path), nil
}

// CreateNamed atomically creates the file at path with CREATE_NEW
// semantics, failing if an entry already exists there. perm is accepted for
// interface uniformity; Windows access control is attribute/ACL based and
// the Unix permission bits do not apply. appendMode narrows write access to
// FILE_APPEND_DATA so every write lands at the end of the file.
func CreateNamed(path string, perm os.FileMode, appendMode bool) (*os.File, error) {
	access := uint32(tempAccess)
	if appendMode {
		access = windows.FILE_GENERIC_READ | windows.FILE_APPEND_DATA
	}
	return winCreate(path, access, tempShareMode, windows.CREATE_NEW, tempAttrs)
}

// CreateAnonymousDirect creates a delete-on-close file in dir under a
// fresh ULID name. The name is technically visible in the namespace until
// the last handle closes, but the OS guarantees reclamation regardless of
// how the process exits, which is the property anonymous files exist for.
// The ULID name space makes a collision improbable enough that no retry
// loop is needed; a collision surfaces as an error.
func CreateAnonymousDirect(dir string, perm os.FileMode) (*os.File, bool, error) {
	path := filepath.Join(dir, "."+ulid.Make().String()+".tmp")
	f, err := winCreate(path, tempAccess, tempShareMode, windows.CREATE_NEW,
		tempAttrs|windows.FILE_FLAG_DELETE_ON_CLOSE)
	return f, true, err
}

func reopenHandle(f *os.File) (*os.File, error) {
	h, _, err := procReOpenFile.Call(f.Fd(), uintptr(tempAccess), uintptr(tempShareMode), 0)
	if windows.Handle(h) == windows.InvalidHandle {
		return nil, err
	}
	return os.NewFile(h, f.Name()), nil
}

// Reopen obtains a second, independent handle to the content behind f.
// ReOpenFile works on the handle rather than through the path namespace, so
// it cannot be fooled by the path having been swapped; no identity check is
// required.
func Reopen(f *os.File, path string) (*os.File, error) {
	return reopenHandle(f)
}

// Share obtains an independent handle to the same content as f. Like
// Reopen, it never consults the namespace.
func Share(f *os.File) (*os.File, error) {
	return reopenHandle(f)
}

// Persist moves the temporary file at oldPath to newPath. The temporary
// attributes must be cleared first: a persisted file claiming to be
// FILE_ATTRIBUTE_TEMPORARY would not carry the usual durability guarantees.
// On failure the attributes are restored on a best-effort basis so the
// still-temporary file keeps its efficient treatment.
func Persist(oldPath, newPath string, overwrite bool) error {
	oldp, err := windows.UTF16PtrFromString(oldPath)
	if err != nil {
		return &os.LinkError{Op: "rename", Old: oldPath, New: newPath, Err: err}
	}
	newp, err := windows.UTF16PtrFromString(newPath)
	if err != nil {
		return &os.LinkError{Op: "rename", Old: oldPath, New: newPath, Err: err}
	}

	if err := windows.SetFileAttributes(oldp, windows.FILE_ATTRIBUTE_NORMAL); err != nil {
		return &os.LinkError{Op: "rename", Old: oldPath, New: newPath, Err: err}
	}

	var flags uint32
	if overwrite {
		flags |= windows.MOVEFILE_REPLACE_EXISTING
	}
	if err := windows.MoveFileEx(oldp, newp, flags); err != nil {
		_ = windows.SetFileAttributes(oldp, tempAttrs)
		return &os.LinkError{Op: "rename", Old: oldPath, New: newPath, Err: err}
	}
	return nil
}
