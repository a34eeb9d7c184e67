package tempfile

import (
	"fmt"
	"path/filepath"

	"github.com/Stebalien/tempfile/internal/namegen"
	"github.com/Stebalien/tempfile/internal/platform"
)

// numRetries bounds the creation retry loop. It is large enough to be
// effectively unbounded in practice while still guaranteeing termination
// when the namespace is genuinely exhausted.
const numRetries = 1 << 30

// defaultRandLen is the number of random characters in generated names when
// a Builder does not say otherwise.
const defaultRandLen = 6

// createHelper is the single place collision races are absorbed. It
// repeatedly generates a candidate name under dir and hands the full path
// to create until create succeeds, a non-collision error occurs, or the
// retry budget runs out.
//
// dir is made absolute first: a relative base captured before the process
// changes its working directory would silently point somewhere else later.
//
// With randLen == 0 the candidate name has no entropy, so exactly one
// attempt is made; a collision then reports ErrExhausted immediately.
func createHelper[R any](dir, prefix, suffix string, randLen int, create func(path string) (R, error)) (R, error) {
	var zero R

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return zero, fmt.Errorf("resolve temporary directory %s: %w", dir, err)
	}

	attempts := numRetries
	if randLen == 0 {
		attempts = 1
	}
	for range attempts {
		name, err := namegen.Name(prefix, suffix, randLen)
		if err != nil {
			return zero, err
		}
		res, err := create(filepath.Join(absDir, name))
		if err == nil {
			return res, nil
		}
		if platform.IsRetryable(err) {
			continue
		}
		return zero, err
	}
	return zero, ErrExhausted
}
