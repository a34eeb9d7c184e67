package tempfile

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/Stebalien/tempfile/internal/platform"
)

// Anonymous creates an anonymous temporary file in the default temporary
// directory.
//
// The returned file has no reachable name: on Linux it is created with
// O_TMPFILE and never linked into the directory tree, on other Unix
// systems its only link is removed before the function returns, and on
// Windows it is marked delete-on-close. The OS reclaims it when the last
// handle closes, so no cleanup call is needed and nothing is leaked even if
// the process dies. This is the variant that is safe in the presence of a
// pathological temporary file cleaner.
func Anonymous() (*os.File, error) {
	return AnonymousIn(TempDir())
}

// AnonymousIn creates an anonymous temporary file in dir. See Anonymous.
func AnonymousIn(dir string) (*os.File, error) {
	return anonymousIn(dir, DefaultPrefix(), "", defaultRandLen, 0o600)
}

func anonymousIn(dir, prefix, suffix string, randLen int, perm os.FileMode) (*os.File, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, &fs.PathError{Op: "open", Path: dir, Err: err}
	}

	if f, ok, err := platform.CreateAnonymousDirect(absDir, perm); ok {
		return f, err
	}

	// No direct primitive: create a named file and immediately remove its
	// only link. The content stays alive while the handle is open.
	return createHelper(absDir, prefix, suffix, randLen, func(path string) (*os.File, error) {
		f, err := platform.CreateNamed(path, perm, false)
		if err != nil {
			return nil, err
		}
		if err := os.Remove(path); err != nil {
			// A file we cannot unlink would be a named file in
			// disguise, silently lacking the no-leak guarantee.
			_ = f.Close()
			return nil, err
		}
		return f, nil
	})
}

// Share obtains an additional independent handle (its own seek offset) to
// the content behind f, which may be an anonymous file with no usable name.
// On Unix this goes through the fd filesystem and requires /dev/fd to be
// available; the new handle's identity is verified against f and a
// mismatch returns ErrReplaced.
func Share(f *os.File) (*os.File, error) {
	return platform.Share(f)
}
