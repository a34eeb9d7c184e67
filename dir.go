package tempfile

import (
	"log/slog"

	"github.com/Stebalien/tempfile/internal/common"
	"github.com/Stebalien/tempfile/internal/platform"
)

// Dir is a temporary directory owned exclusively by this resource: it was
// freshly created under a random name with exclusive semantics, so nothing
// else can have put content there first.
//
// Like NamedFile, cleanup does not survive a crash: callers end the
// resource with exactly one of Close, Cleanup or Detach.
type Dir struct {
	path string
	fsys common.FileSystem
}

// NewDir creates a temporary directory under the default temporary
// directory with the default naming configuration.
func NewDir() (*Dir, error) {
	return NewBuilder().Dir()
}

// NewDirIn creates a temporary directory under dir with the default naming
// configuration.
func NewDirIn(dir string) (*Dir, error) {
	return NewBuilder().DirIn(dir)
}

// Path returns the temporary directory's path.
func (d *Dir) Path() string {
	return d.path
}

// Close recursively removes the temporary directory and all of its
// contents, surfacing the first removal failure. The walk is strict: on a
// per-entry failure it aborts instead of continuing with siblings, so a
// partially removed tree together with an error is a possible outcome.
func (d *Dir) Close() error {
	path, err := d.take()
	if err != nil {
		return err
	}
	return platform.RemoveDir(d.fsys, path, true)
}

// Cleanup recursively removes the temporary directory on a best-effort
// basis, logging failures instead of returning them. Safe to call after
// Close or Detach, which makes it the right thing to defer immediately
// after creation.
func (d *Dir) Cleanup() {
	path, err := d.take()
	if err != nil {
		return
	}
	if err := platform.RemoveDir(d.fsys, path, true); err != nil {
		slog.Warn("failed to remove temporary directory", slog.Any("error", err), slog.String("path", path))
	}
}

// Detach disables automatic cleanup and returns the bare path. The
// directory and its contents stay on disk.
func (d *Dir) Detach() (string, error) {
	return d.take()
}

func (d *Dir) take() (string, error) {
	if d.path == "" {
		return "", ErrClosed
	}
	path := d.path
	d.path = ""
	return path, nil
}

// RemoveDir removes the directory at path. Without recurse, only an empty
// directory is removed and a non-empty one fails untouched. With recurse,
// the whole tree is removed with the same strict abort-on-first-error
// policy as Dir.Close.
func RemoveDir(path string, recurse bool) error {
	return platform.RemoveDir(common.NewDefaultFileSystem(), path, recurse)
}
