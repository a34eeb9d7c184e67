package tempfile

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/Stebalien/tempfile/internal/platform"
)

// NamedFile is a temporary file that keeps a filesystem path alive for the
// lifetime of the resource.
//
// While the resource is open, the path refers to this file's content unless
// something external (a temporary file cleaner, an attacker) interferes;
// Reopen detects that interference. The file is NOT removed by the OS:
// callers must end the resource with exactly one of Close, Cleanup,
// Persist, PersistNoClobber or Keep. Each of these is terminal and disarms
// the others, so double deletion cannot happen.
//
// Prefer Anonymous unless something must see the file by name.
type NamedFile struct {
	file *os.File
	path string
}

// NewNamed creates a named temporary file in the default temporary
// directory with the default naming configuration.
func NewNamed() (*NamedFile, error) {
	return NewBuilder().Named()
}

// NewNamedIn creates a named temporary file in dir with the default naming
// configuration.
func NewNamedIn(dir string) (*NamedFile, error) {
	return NewBuilder().NamedIn(dir)
}

// PersistError is returned when persisting a temporary file fails. It
// carries the original, still-armed resource back to the caller so neither
// the handle nor the data is lost: the caller can retry with another
// target, inspect the file, or fall back to Close.
type PersistError struct {
	// Err is the underlying error.
	Err error
	// File is the temporary file that could not be persisted.
	File *NamedFile
}

// Error implements the error interface.
func (e *PersistError) Error() string {
	return fmt.Sprintf("failed to persist temporary file: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *PersistError) Unwrap() error {
	return e.Err
}

// Path returns the temporary file's path. The path is only trustworthy
// while the resource is open and no external actor has removed or replaced
// it.
func (f *NamedFile) Path() string {
	return f.path
}

// File returns the underlying open file. The NamedFile retains ownership;
// do not close it directly.
func (f *NamedFile) File() *os.File {
	return f.file
}

// Read reads from the file at the current offset.
func (f *NamedFile) Read(p []byte) (int, error) {
	if f.file == nil {
		return 0, ErrClosed
	}
	return f.file.Read(p)
}

// ReadAt reads from the file at the given offset.
func (f *NamedFile) ReadAt(p []byte, off int64) (int, error) {
	if f.file == nil {
		return 0, ErrClosed
	}
	return f.file.ReadAt(p, off)
}

// Write writes to the file at the current offset.
func (f *NamedFile) Write(p []byte) (int, error) {
	if f.file == nil {
		return 0, ErrClosed
	}
	return f.file.Write(p)
}

// WriteAt writes to the file at the given offset.
func (f *NamedFile) WriteAt(p []byte, off int64) (int, error) {
	if f.file == nil {
		return 0, ErrClosed
	}
	return f.file.WriteAt(p, off)
}

// Seek sets the offset for the next Read or Write.
func (f *NamedFile) Seek(offset int64, whence int) (int64, error) {
	if f.file == nil {
		return 0, ErrClosed
	}
	return f.file.Seek(offset, whence)
}

// Truncate changes the size of the file.
func (f *NamedFile) Truncate(size int64) error {
	if f.file == nil {
		return ErrClosed
	}
	return f.file.Truncate(size)
}

// Stat returns the FileInfo of the open handle. Unlike an os.Stat of
// Path(), this cannot be fooled by the path having been swapped.
func (f *NamedFile) Stat() (fs.FileInfo, error) {
	if f.file == nil {
		return nil, ErrClosed
	}
	return f.file.Stat()
}

// Sync flushes the file's contents to stable storage.
func (f *NamedFile) Sync() error {
	if f.file == nil {
		return ErrClosed
	}
	return f.file.Sync()
}

// Reopen obtains a second handle to the file with an independent seek
// offset, e.g. for handing to another goroutine so that no handle is
// shared. Reopening must go through the path namespace, so the identity of
// the new handle is verified against the original; if the path was deleted
// and replaced underneath the resource, Reopen fails with ErrReplaced
// instead of silently returning a handle to the wrong content.
func (f *NamedFile) Reopen() (*os.File, error) {
	if f.file == nil {
		return nil, ErrClosed
	}
	return platform.Reopen(f.file, f.path)
}

// take moves the resource into a terminal state, returning its parts.
func (f *NamedFile) take() (*os.File, string, error) {
	if f.file == nil {
		return nil, "", ErrClosed
	}
	file, path := f.file, f.path
	f.file = nil
	return file, path, nil
}

// Close closes the handle and removes the temporary file, surfacing any
// removal error. Use this instead of Cleanup when a failure to delete must
// be observable.
func (f *NamedFile) Close() error {
	file, path, err := f.take()
	if err != nil {
		return err
	}
	return errors.Join(file.Close(), os.Remove(path))
}

// Cleanup closes the handle and removes the temporary file on a
// best-effort basis, logging failures instead of returning them. It is
// safe to call after any terminal transition, which makes it the right
// thing to defer immediately after creation:
//
//	f, err := tempfile.NewNamed()
//	if err != nil { ... }
//	defer f.Cleanup()
func (f *NamedFile) Cleanup() {
	file, path, err := f.take()
	if err != nil {
		return
	}
	_ = file.Close()
	if err := os.Remove(path); err != nil {
		slog.Warn("failed to remove temporary file", slog.Any("error", err), slog.String("path", path))
	}
}

// Persist atomically renames the temporary file to newPath, replacing
// anything already there, and converts the resource into a plain open file
// with no further cleanup obligation. The handle keeps its current offset.
//
// On failure the returned error is a *PersistError carrying the resource
// back; nothing is lost and cleanup stays armed.
//
// Only use this if a temporary file cleaner cannot have deleted the file in
// the meantime, and note that files cannot be persisted across filesystems.
func (f *NamedFile) Persist(newPath string) (*os.File, error) {
	return f.persist(newPath, true)
}

// PersistNoClobber is Persist except that it fails, without modifying
// newPath, if an entry already exists there.
//
// Where the platform offers an atomic no-replace rename it is used; the
// portable fallback is a hard-link-then-unlink sequence that is not atomic
// end-to-end and can leave the original temporary link behind if the
// process is interrupted between the two steps.
func (f *NamedFile) PersistNoClobber(newPath string) (*os.File, error) {
	return f.persist(newPath, false)
}

func (f *NamedFile) persist(newPath string, overwrite bool) (*os.File, error) {
	if f.file == nil {
		return nil, ErrClosed
	}
	if err := platform.Persist(f.path, newPath, overwrite); err != nil {
		return nil, &PersistError{Err: err, File: f}
	}
	file, _, _ := f.take()
	return file, nil
}

// Keep disarms cleanup and releases the file and its path to the caller.
// The file stays on disk under its temporary name.
func (f *NamedFile) Keep() (*os.File, string, error) {
	return f.take()
}
