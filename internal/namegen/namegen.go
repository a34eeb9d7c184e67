// Package namegen generates randomized candidate filenames for temporary
// files and directories. Generation is pure with respect to the filesystem:
// no I/O happens here, callers decide what to do with a candidate.
package namegen

import (
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	mrand "math/rand/v2"
	"os"
	"strings"
	"sync"
)

// Error definitions for static error handling
var (
	// ErrInvalidName indicates that a candidate name would not resolve to a
	// single, non-empty path component.
	ErrInvalidName = errors.New("invalid temporary file name")
)

// alphabet is the 62-symbol set candidate names are drawn from.
const alphabet = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// reseedInterval bounds how many names a single seed may produce. Reseeding
// from the system entropy source guards against correlated streams when
// process state is duplicated (fork, snapshot/restore).
const reseedInterval = 1024

var source = struct {
	sync.Mutex
	rng  *mrand.ChaCha8
	left int
}{}

func newChaCha8() *mrand.ChaCha8 {
	var seed [32]byte
	if _, err := rand.Read(seed[:]); err != nil {
		// crypto/rand never fails on supported platforms; if it somehow
		// does, a time-independent constant seed would be dangerous, so
		// crash loudly instead of generating predictable names.
		panic(fmt.Sprintf("namegen: cannot read system entropy: %v", err))
	}
	return mrand.NewChaCha8(seed)
}

// randomChars returns n characters drawn independently and uniformly from
// the alphabet.
func randomChars(n int) string {
	buf := make([]byte, n)

	source.Lock()
	defer source.Unlock()
	if source.rng == nil || source.left <= 0 {
		source.rng = newChaCha8()
		source.left = reseedInterval
	}
	source.left--

	var raw [8]byte
	for i := range buf {
		if i%8 == 0 {
			binary.LittleEndian.PutUint64(raw[:], source.rng.Uint64())
		}
		buf[i] = alphabet[int(raw[i%8])%len(alphabet)]
	}
	return string(buf)
}

// Name produces a candidate filename of the form prefix + randLen random
// alphanumeric characters + suffix. randLen == 0 is legal and means the
// candidate is exactly prefix+suffix; callers must then attempt creation
// only once since there is no entropy to vary the outcome.
//
// The result is validated to be a single, non-empty path component with no
// interior NUL byte. A violation is a configuration bug in the caller and
// is reported as ErrInvalidName, never retried.
func Name(prefix, suffix string, randLen int) (string, error) {
	if randLen < 0 {
		return "", fmt.Errorf("%w: negative random length %d", ErrInvalidName, randLen)
	}
	name := prefix + randomChars(randLen) + suffix
	if err := Validate(name); err != nil {
		return "", err
	}
	return name, nil
}

// Validate checks that name is usable as a temporary file name: non-empty,
// free of interior NUL bytes, and exactly one path component.
func Validate(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: empty name", ErrInvalidName)
	case strings.ContainsRune(name, 0):
		return fmt.Errorf("%w: name contains NUL byte", ErrInvalidName)
	case strings.ContainsRune(name, os.PathSeparator) || strings.ContainsRune(name, '/'):
		return fmt.Errorf("%w: name %q contains a path separator", ErrInvalidName, name)
	case name == "." || name == "..":
		return fmt.Errorf("%w: name %q is a relative path component", ErrInvalidName, name)
	}
	return nil
}
