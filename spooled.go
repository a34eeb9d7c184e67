package tempfile

import (
	"errors"
	"io"
	"os"
)

// SpooledFile behaves like an anonymous temporary file but keeps its data
// in memory until the cumulative size would exceed a configured threshold.
// The first write pushing it past the threshold rolls the buffer over into
// a real anonymous temporary file, exactly once; the transition preserves
// both content and the current offset, so readers cannot tell whether a
// rollover happened.
//
// A SpooledFile is not safe for concurrent use.
type SpooledFile struct {
	maxSize int64
	dir     string

	// In-memory state until rollover, then nil.
	buf []byte
	pos int64

	// Disk state after rollover.
	file *os.File

	closed bool
}

// NewSpooled returns a SpooledFile that spills to the default temporary
// directory once more than maxSize bytes are written.
func NewSpooled(maxSize int64) *SpooledFile {
	return NewSpooledIn(TempDir(), maxSize)
}

// NewSpooledIn is NewSpooled with an explicit spill directory.
func NewSpooledIn(dir string, maxSize int64) *SpooledFile {
	return &SpooledFile{maxSize: maxSize, dir: dir}
}

// RolledOver reports whether the data has been moved to a file on disk.
func (s *SpooledFile) RolledOver() bool {
	return s.file != nil
}

// rollover moves the in-memory buffer into an anonymous temporary file and
// positions the file at the current offset.
func (s *SpooledFile) rollover() error {
	f, err := AnonymousIn(s.dir)
	if err != nil {
		return err
	}
	if _, err := f.Write(s.buf); err != nil {
		_ = f.Close()
		return err
	}
	if _, err := f.Seek(s.pos, io.SeekStart); err != nil {
		_ = f.Close()
		return err
	}
	s.file = f
	s.buf = nil
	return nil
}

// Read reads from the current offset.
func (s *SpooledFile) Read(p []byte) (int, error) {
	if s.closed {
		return 0, ErrClosed
	}
	if s.file != nil {
		return s.file.Read(p)
	}
	if s.pos >= int64(len(s.buf)) {
		return 0, io.EOF
	}
	n := copy(p, s.buf[s.pos:])
	s.pos += int64(n)
	return n, nil
}

// Write writes at the current offset, rolling over to disk first if the
// write would push the cumulative size past the threshold.
func (s *SpooledFile) Write(p []byte) (int, error) {
	if s.closed {
		return 0, ErrClosed
	}
	if s.file == nil && s.pos+int64(len(p)) > s.maxSize {
		if err := s.rollover(); err != nil {
			return 0, err
		}
	}
	if s.file != nil {
		return s.file.Write(p)
	}

	// Writing past the end zero-fills the gap, matching file semantics.
	if end := s.pos + int64(len(p)); end > int64(len(s.buf)) {
		s.buf = append(s.buf, make([]byte, end-int64(len(s.buf)))...)
	}
	n := copy(s.buf[s.pos:], p)
	s.pos += int64(n)
	return n, nil
}

// Seek sets the offset for the next Read or Write.
func (s *SpooledFile) Seek(offset int64, whence int) (int64, error) {
	if s.closed {
		return 0, ErrClosed
	}
	if s.file != nil {
		return s.file.Seek(offset, whence)
	}
	var abs int64
	switch whence {
	case io.SeekStart:
		abs = offset
	case io.SeekCurrent:
		abs = s.pos + offset
	case io.SeekEnd:
		abs = int64(len(s.buf)) + offset
	default:
		return 0, errors.New("invalid whence")
	}
	if abs < 0 {
		return 0, errors.New("negative seek position")
	}
	s.pos = abs
	return abs, nil
}

// Len returns the current size of the buffered or spilled data.
func (s *SpooledFile) Len() (int64, error) {
	if s.closed {
		return 0, ErrClosed
	}
	if s.file == nil {
		return int64(len(s.buf)), nil
	}
	info, err := s.file.Stat()
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

// Close releases the buffer or the underlying file. The on-disk file, if
// any, is anonymous, so the OS reclaims its content; no path cleanup is
// needed.
func (s *SpooledFile) Close() error {
	if s.closed {
		return ErrClosed
	}
	s.closed = true
	s.buf = nil
	if s.file != nil {
		return s.file.Close()
	}
	return nil
}
