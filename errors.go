package tempfile

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/Stebalien/tempfile/internal/namegen"
	"github.com/Stebalien/tempfile/internal/platform"
)

// Error definitions for static error handling
var (
	// ErrExhausted is returned when the creation retry budget runs out
	// without finding a free name. Unlike a single transient collision,
	// which is retried internally, this signals systemic namespace
	// exhaustion. It matches fs.ErrExist.
	ErrExhausted = fmt.Errorf("too many temporary files exist: %w", fs.ErrExist)

	// ErrReplaced indicates that the file behind a temporary path is no
	// longer the one this resource created: a reopen failed its identity
	// check. It matches fs.ErrNotExist and is the direct detection signal
	// for a temporary file cleaner (or an attacker) having swapped the
	// path.
	ErrReplaced = platform.ErrReplaced

	// ErrInvalidName indicates a malformed candidate name (empty, embedded
	// NUL, or more than one path component). This is a configuration bug
	// and is never retried.
	ErrInvalidName = namegen.ErrInvalidName

	// ErrAlreadySet is returned when a process-wide default (temporary
	// directory or name prefix) has already been set by an earlier caller.
	ErrAlreadySet = errors.New("process-wide default already set")

	// ErrClosed is returned by operations on a resource that has already
	// reached a terminal state (closed, cleaned up, persisted, or kept).
	ErrClosed = fmt.Errorf("temporary resource already released: %w", fs.ErrClosed)
)
