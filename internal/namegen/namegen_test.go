package namegen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestName(t *testing.T) {
	tests := []struct {
		name    string
		prefix  string
		suffix  string
		randLen int
		wantErr error
	}{
		{
			name:    "default shape",
			prefix:  ".tmp",
			suffix:  "",
			randLen: 6,
		},
		{
			name:    "prefix and suffix",
			prefix:  "build-",
			suffix:  ".json",
			randLen: 10,
		},
		{
			name:    "zero random length uses exactly prefix plus suffix",
			prefix:  "fixed",
			suffix:  ".lock",
			randLen: 0,
		},
		{
			name:    "separator in prefix",
			prefix:  "a/b",
			randLen: 6,
			wantErr: ErrInvalidName,
		},
		{
			name:    "NUL in suffix",
			suffix:  "x\x00y",
			randLen: 6,
			wantErr: ErrInvalidName,
		},
		{
			name:    "empty name with zero random length",
			prefix:  "",
			suffix:  "",
			randLen: 0,
			wantErr: ErrInvalidName,
		},
		{
			name:    "negative random length",
			prefix:  ".tmp",
			randLen: -1,
			wantErr: ErrInvalidName,
		},
		{
			name:    "dot dot name",
			prefix:  "..",
			randLen: 0,
			wantErr: ErrInvalidName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Name(tt.prefix, tt.suffix, tt.randLen)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(got, tt.prefix), "name %q should start with prefix %q", got, tt.prefix)
			assert.True(t, strings.HasSuffix(got, tt.suffix), "name %q should end with suffix %q", got, tt.suffix)
			assert.Len(t, got, len(tt.prefix)+tt.randLen+len(tt.suffix))

			random := got[len(tt.prefix) : len(got)-len(tt.suffix)]
			for _, c := range random {
				assert.Contains(t, alphabet, string(c), "random part contains non-alphanumeric %q", c)
			}
		})
	}
}

func TestNameUniqueness(t *testing.T) {
	// With 12 random characters, 62^12 possibilities, 1000 draws colliding
	// would indicate a broken generator rather than bad luck.
	seen := make(map[string]struct{})
	for range 1000 {
		name, err := Name(".tmp", "", 12)
		require.NoError(t, err)
		_, dup := seen[name]
		require.False(t, dup, "generated duplicate name %q", name)
		seen[name] = struct{}{}
	}
}

func TestNameReseeds(t *testing.T) {
	// Drawing past the reseed interval must keep producing valid, distinct
	// names with a fresh seed.
	first, err := Name("a", "", 12)
	require.NoError(t, err)
	for range reseedInterval + 1 {
		_, err := Name("a", "", 12)
		require.NoError(t, err)
	}
	again, err := Name("a", "", 12)
	require.NoError(t, err)
	assert.NotEqual(t, first, again)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate("plain-name.txt"))
	assert.ErrorIs(t, Validate(""), ErrInvalidName)
	assert.ErrorIs(t, Validate("a/b"), ErrInvalidName)
	assert.ErrorIs(t, Validate("nul\x00byte"), ErrInvalidName)
	assert.ErrorIs(t, Validate("."), ErrInvalidName)
	assert.ErrorIs(t, Validate(".."), ErrInvalidName)
}
