package common

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// MockFileSystem implements FileSystem for testing. It models a flat set of
// paths and lets tests inject per-path failures, which is how the strict
// abort-on-first-error removal policy is exercised without real permission
// tricks.
type MockFileSystem struct {
	files map[string][]byte
	dirs  map[string]bool

	// RemoveErrors maps a path to the error Remove should return for it.
	RemoveErrors map[string]error

	// Removed records every path successfully removed, in order.
	Removed []string
}

// NewMockFileSystem creates an empty MockFileSystem
func NewMockFileSystem() *MockFileSystem {
	return &MockFileSystem{
		files:        make(map[string][]byte),
		dirs:         make(map[string]bool),
		RemoveErrors: make(map[string]error),
	}
}

// AddFile registers a file with the given content, creating parent
// directories implicitly.
func (m *MockFileSystem) AddFile(path string, content []byte) {
	m.files[filepath.Clean(path)] = content
	m.AddDir(filepath.Dir(path))
}

// AddDir registers a directory and all of its parents.
func (m *MockFileSystem) AddDir(path string) {
	path = filepath.Clean(path)
	for path != "" && path != string(filepath.Separator) && path != "." {
		m.dirs[path] = true
		path = filepath.Dir(path)
	}
}

// ReadDir returns the immediate children of the named directory.
func (m *MockFileSystem) ReadDir(name string) ([]os.DirEntry, error) {
	name = filepath.Clean(name)
	if !m.dirs[name] {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}
	var entries []os.DirEntry
	seen := make(map[string]bool)
	for path := range m.files {
		if filepath.Dir(path) == name {
			entries = append(entries, mockDirEntry{name: filepath.Base(path), dir: false})
		}
	}
	for path := range m.dirs {
		if filepath.Dir(path) == name && !seen[filepath.Base(path)] {
			seen[filepath.Base(path)] = true
			entries = append(entries, mockDirEntry{name: filepath.Base(path), dir: true})
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })
	return entries, nil
}

// Remove removes the named file or empty directory, honoring any injected
// error registered in RemoveErrors.
func (m *MockFileSystem) Remove(name string) error {
	name = filepath.Clean(name)
	if err, ok := m.RemoveErrors[name]; ok {
		return err
	}
	if _, ok := m.files[name]; ok {
		delete(m.files, name)
		m.Removed = append(m.Removed, name)
		return nil
	}
	if m.dirs[name] {
		for path := range m.files {
			if strings.HasPrefix(path, name+string(filepath.Separator)) {
				return &fs.PathError{Op: "remove", Path: name, Err: fs.ErrInvalid}
			}
		}
		for path := range m.dirs {
			if filepath.Dir(path) == name {
				return &fs.PathError{Op: "remove", Path: name, Err: fs.ErrInvalid}
			}
		}
		delete(m.dirs, name)
		m.Removed = append(m.Removed, name)
		return nil
	}
	return &fs.PathError{Op: "remove", Path: name, Err: fs.ErrNotExist}
}

// Lstat returns file information for the named path.
func (m *MockFileSystem) Lstat(name string) (fs.FileInfo, error) {
	name = filepath.Clean(name)
	if content, ok := m.files[name]; ok {
		return mockFileInfo{name: filepath.Base(name), size: int64(len(content))}, nil
	}
	if m.dirs[name] {
		return mockFileInfo{name: filepath.Base(name), dir: true}, nil
	}
	return nil, &fs.PathError{Op: "lstat", Path: name, Err: fs.ErrNotExist}
}

// ReadFile returns the registered content of the named file.
func (m *MockFileSystem) ReadFile(name string) ([]byte, error) {
	name = filepath.Clean(name)
	content, ok := m.files[name]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}
	return content, nil
}

// Exists reports whether the path is a known file or directory.
func (m *MockFileSystem) Exists(name string) bool {
	name = filepath.Clean(name)
	if _, ok := m.files[name]; ok {
		return true
	}
	return m.dirs[name]
}

type mockDirEntry struct {
	name string
	dir  bool
}

func (e mockDirEntry) Name() string { return e.name }
func (e mockDirEntry) IsDir() bool  { return e.dir }

func (e mockDirEntry) Type() fs.FileMode {
	if e.dir {
		return fs.ModeDir
	}
	return 0
}

func (e mockDirEntry) Info() (fs.FileInfo, error) {
	return mockFileInfo{name: e.name, dir: e.dir}, nil
}

type mockFileInfo struct {
	name string
	size int64
	dir  bool
}

func (i mockFileInfo) Name() string       { return i.name }
func (i mockFileInfo) Size() int64        { return i.size }
func (i mockFileInfo) ModTime() time.Time { return time.Time{} }
func (i mockFileInfo) IsDir() bool        { return i.dir }
func (i mockFileInfo) Sys() any           { return nil }

func (i mockFileInfo) Mode() fs.FileMode {
	if i.dir {
		return fs.ModeDir | 0o755
	}
	return 0o600
}
