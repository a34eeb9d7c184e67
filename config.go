package tempfile

import (
	"errors"
	"fmt"

	"github.com/pelletier/go-toml/v2"

	"github.com/Stebalien/tempfile/internal/common"
)

// Defaults is the on-disk shape of a process defaults file.
type Defaults struct {
	// Dir overrides the default temporary directory.
	Dir string `toml:"dir"`

	// Prefix overrides the default temporary file name prefix.
	Prefix string `toml:"prefix"`
}

// LoadDefaults reads a TOML defaults file and applies it through the
// write-once process overrides. A typical file:
//
//	dir = "/var/tmp/myapp"
//	prefix = ".myapp"
//
// Empty or absent keys are left alone. Because the overrides are
// write-once, loading a defaults file after either override has been set
// fails with ErrAlreadySet.
func LoadDefaults(path string) error {
	return loadDefaultsWithFS(path, common.NewDefaultFileSystem())
}

// loadDefaultsWithFS is the internal implementation that accepts a
// FileSystem for testing.
func loadDefaultsWithFS(path string, fsys common.FileSystem) error {
	content, err := fsys.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read defaults file: %w", err)
	}

	var d Defaults
	if err := toml.Unmarshal(content, &d); err != nil {
		return fmt.Errorf("failed to parse defaults file %s: %w", path, err)
	}

	var errs []error
	if d.Dir != "" {
		if _, err := OverrideTempDir(d.Dir); err != nil {
			errs = append(errs, err)
		}
	}
	if d.Prefix != "" {
		if _, err := OverrideDefaultPrefix(d.Prefix); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
