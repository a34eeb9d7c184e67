package platform

import (
	"fmt"
	"path/filepath"

	"github.com/Stebalien/tempfile/internal/common"
)

// RemoveDir removes the directory at path. Without recurse, only an empty
// directory may be removed; a non-empty one fails with the OS error and the
// tree is left untouched. With recurse, the tree is walked depth-first,
// files first, each subdirectory removed once empty and the top directory
// last.
//
// The recursive walk is strict, not best-effort: the first per-entry
// failure aborts the whole removal and surfaces. A partially deleted tree
// is an accepted outcome; silently skipping a failing entry could mask a
// security-relevant condition such as permission-denied on a file planted
// by someone else.
func RemoveDir(fsys common.FileSystem, path string, recurse bool) error {
	if !recurse {
		return fsys.Remove(path)
	}
	return removeTree(fsys, path)
}

func removeTree(fsys common.FileSystem, dir string) error {
	entries, err := fsys.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read temporary directory: %w", err)
	}
	for _, entry := range entries {
		child := filepath.Join(dir, entry.Name())
		if entry.IsDir() {
			if err := removeTree(fsys, child); err != nil {
				return err
			}
			continue
		}
		if err := fsys.Remove(child); err != nil {
			return fmt.Errorf("remove temporary directory entry: %w", err)
		}
	}
	if err := fsys.Remove(dir); err != nil {
		return fmt.Errorf("remove temporary directory: %w", err)
	}
	return nil
}
