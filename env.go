package tempfile

import (
	"fmt"
	"os"
	"sync"
)

// fallbackPrefix is the default name prefix when no override is set. The
// leading dot keeps temporary files out of casual directory listings on
// Unix.
const fallbackPrefix = ".tmp"

// The two process-wide defaults are deliberately write-once: the first
// caller wins and every later attempt fails loudly, so one part of a
// program cannot silently change temporary file behavior for another.
var defaults struct {
	sync.Mutex
	dir       string
	dirSet    bool
	prefix    string
	prefixSet bool
	osTemp    string // cached os.TempDir result
}

// OverrideTempDir overrides the default temporary directory for the entire
// process. It returns the effective default: the given dir if this was the
// first call, otherwise the previously set value together with
// ErrAlreadySet.
//
// The directory is not checked for existence or writability. Libraries
// should not call this; they should use the *In constructors instead.
func OverrideTempDir(dir string) (string, error) {
	defaults.Lock()
	defer defaults.Unlock()
	if defaults.dirSet {
		return defaults.dir, fmt.Errorf("%w: temporary directory is %q", ErrAlreadySet, defaults.dir)
	}
	defaults.dir = dir
	defaults.dirSet = true
	return dir, nil
}

// TempDir returns the default directory for new temporary files and
// directories: the override if one was set, otherwise the OS-reported
// temporary directory.
//
// The OS lookup is cached on first use, so later changes to the TMPDIR
// style environment variables have no effect.
func TempDir() string {
	defaults.Lock()
	defer defaults.Unlock()
	if defaults.dirSet {
		return defaults.dir
	}
	if defaults.osTemp == "" {
		defaults.osTemp = os.TempDir()
	}
	return defaults.osTemp
}

// OverrideDefaultPrefix overrides the default name prefix for new temporary
// files for the entire process. Calling it with an application-specific
// prefix makes it easy to attribute stray temporary files. The write-once
// semantics match OverrideTempDir: the first caller wins, later callers get
// the winning value and ErrAlreadySet.
func OverrideDefaultPrefix(prefix string) (string, error) {
	defaults.Lock()
	defer defaults.Unlock()
	if defaults.prefixSet {
		return defaults.prefix, fmt.Errorf("%w: default prefix is %q", ErrAlreadySet, defaults.prefix)
	}
	defaults.prefix = prefix
	defaults.prefixSet = true
	return prefix, nil
}

// DefaultPrefix returns the prefix used for new temporary files when none
// is set explicitly on a Builder.
func DefaultPrefix() string {
	defaults.Lock()
	defer defaults.Unlock()
	if defaults.prefixSet {
		return defaults.prefix
	}
	return fallbackPrefix
}
