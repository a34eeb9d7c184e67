// Package common provides shared interfaces and utilities used across the
// tempfile packages.
package common

import (
	"io/fs"
	"os"
)

// FileSystem defines the interface for the file system operations the
// library performs outside the platform primitive layer. It exists so the
// strict removal walker and the defaults loader can be exercised against a
// mock in tests.
type FileSystem interface {
	// ReadDir reads the named directory and returns its entries sorted by
	// filename.
	ReadDir(name string) ([]os.DirEntry, error)

	// Remove removes a single file or empty directory.
	Remove(name string) error

	// Lstat returns file information without following symlinks.
	Lstat(name string) (fs.FileInfo, error)

	// ReadFile reads the named file and returns its contents.
	ReadFile(name string) ([]byte, error)
}

// DefaultFileSystem implements FileSystem using standard os package functions
type DefaultFileSystem struct{}

// NewDefaultFileSystem creates a new DefaultFileSystem
func NewDefaultFileSystem() *DefaultFileSystem {
	return &DefaultFileSystem{}
}

// ReadDir reads the named directory using os.ReadDir
func (*DefaultFileSystem) ReadDir(name string) ([]os.DirEntry, error) {
	return os.ReadDir(name)
}

// Remove removes a single file or empty directory using os.Remove
func (*DefaultFileSystem) Remove(name string) error {
	return os.Remove(name)
}

// Lstat returns file information using os.Lstat
func (*DefaultFileSystem) Lstat(name string) (fs.FileInfo, error) {
	return os.Lstat(name)
}

// ReadFile reads the named file using os.ReadFile
func (*DefaultFileSystem) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}
