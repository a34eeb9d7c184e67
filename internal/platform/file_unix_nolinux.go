//go:build unix && !linux

package platform

import "os"

// CreateAnonymousDirect always reports that no direct anonymous-file
// primitive exists on this platform; the caller falls back to creating a
// named file and unlinking it immediately.
func CreateAnonymousDirect(dir string, perm os.FileMode) (*os.File, bool, error) {
	return nil, false, nil
}

// persistNoClobber uses the portable link+unlink sequence.
func persistNoClobber(oldPath, newPath string) error {
	return linkUnlink(oldPath, newPath)
}
