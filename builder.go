package tempfile

import (
	"os"

	"github.com/Stebalien/tempfile/internal/common"
	"github.com/Stebalien/tempfile/internal/platform"
)

// Builder assembles the name-generation parameters for new temporary files
// and directories. The zero value is not usable; start with NewBuilder,
// which snapshots the process-wide default prefix.
type Builder struct {
	prefix     string
	suffix     string
	randLen    int
	perm       os.FileMode
	appendMode bool
}

// NewBuilder returns a Builder with the default configuration: the
// process-wide default prefix, no suffix, six random characters, owner-only
// permissions and no append mode.
func NewBuilder() *Builder {
	return &Builder{
		prefix:  DefaultPrefix(),
		randLen: defaultRandLen,
		perm:    0o600,
	}
}

// Prefix sets the fixed part of generated names preceding the random run.
// It must not contain a path separator.
func (b *Builder) Prefix(prefix string) *Builder {
	b.prefix = prefix
	return b
}

// Suffix sets the fixed part of generated names following the random run,
// e.g. ".json". It must not contain a path separator.
func (b *Builder) Suffix(suffix string) *Builder {
	b.suffix = suffix
	return b
}

// RandLen sets the number of random alphanumeric characters in generated
// names. Zero is legal and means the name is exactly prefix+suffix; a
// collision is then reported immediately instead of retried, since there is
// no entropy to change the outcome.
func (b *Builder) RandLen(n int) *Builder {
	b.randLen = n
	return b
}

// Perm sets the permission bits for newly created files and directories.
// The default is 0o600 for files; directories use 0o700 regardless of the
// file permission unless Perm was called.
func (b *Builder) Perm(perm os.FileMode) *Builder {
	b.perm = perm
	return b
}

// Append makes created files append-mode: every write lands at the current
// end of file regardless of seek position.
func (b *Builder) Append(enable bool) *Builder {
	b.appendMode = enable
	return b
}

// Named creates a named temporary file in the default directory.
func (b *Builder) Named() (*NamedFile, error) {
	return b.NamedIn(TempDir())
}

// NamedIn creates a named temporary file in dir.
func (b *Builder) NamedIn(dir string) (*NamedFile, error) {
	return createHelper(dir, b.prefix, b.suffix, b.randLen, func(path string) (*NamedFile, error) {
		f, err := platform.CreateNamed(path, b.perm, b.appendMode)
		if err != nil {
			return nil, err
		}
		return &NamedFile{file: f, path: path}, nil
	})
}

// Anonymous creates an anonymous temporary file in the default directory.
func (b *Builder) Anonymous() (*os.File, error) {
	return b.AnonymousIn(TempDir())
}

// AnonymousIn creates an anonymous temporary file in dir. See Anonymous
// (top level) for the guarantees.
func (b *Builder) AnonymousIn(dir string) (*os.File, error) {
	return anonymousIn(dir, b.prefix, b.suffix, b.randLen, b.perm)
}

// Dir creates a temporary directory under the default directory.
func (b *Builder) Dir() (*Dir, error) {
	return b.DirIn(TempDir())
}

// DirIn creates a temporary directory under dir. The directory is owned
// exclusively by the returned resource: it was freshly created under a
// random name with exclusive semantics.
func (b *Builder) DirIn(dir string) (*Dir, error) {
	perm := b.perm
	if perm == 0o600 {
		perm = 0o700
	}
	return createHelper(dir, b.prefix, b.suffix, b.randLen, func(path string) (*Dir, error) {
		if err := platform.Mkdir(path, perm); err != nil {
			return nil, err
		}
		return &Dir{path: path, fsys: common.NewDefaultFileSystem()}, nil
	})
}

// Make runs create at freshly generated candidate paths under dir, using
// the builder's naming configuration and retry policy, until it succeeds.
// It exists for temporary resources the library does not model itself, e.g.
// binding a Unix domain socket at a temporary path: bind collisions
// (address in use) are treated like name collisions and retried with a new
// name.
//
// The final path is returned alongside the resource; cleaning it up is the
// caller's responsibility.
func Make[R any](b *Builder, dir string, create func(path string) (R, error)) (R, string, error) {
	var path string
	res, err := createHelper(dir, b.prefix, b.suffix, b.randLen, func(candidate string) (R, error) {
		r, err := create(candidate)
		if err == nil {
			path = candidate
		}
		return r, err
	})
	return res, path, err
}
