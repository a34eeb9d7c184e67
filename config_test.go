package tempfile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Stebalien/tempfile/internal/common"
)

func TestLoadDefaults(t *testing.T) {
	tests := []struct {
		name       string
		content    string
		setup      func(t *testing.T)
		wantErr    bool
		errIs      error
		wantDir    string
		wantPrefix string
	}{
		{
			name:       "both keys applied",
			content:    "dir = \"/var/tmp/myapp\"\nprefix = \".myapp\"\n",
			wantDir:    "/var/tmp/myapp",
			wantPrefix: ".myapp",
		},
		{
			name:       "prefix only leaves dir alone",
			content:    "prefix = \".only\"\n",
			wantPrefix: ".only",
		},
		{
			name:    "malformed toml",
			content: "dir = [unclosed\n",
			wantErr: true,
		},
		{
			name:    "override already taken",
			content: "dir = \"/var/tmp/late\"\n",
			setup: func(t *testing.T) {
				_, err := OverrideTempDir("/var/tmp/early")
				require.NoError(t, err)
			},
			wantErr: true,
			errIs:   ErrAlreadySet,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetDefaults()
			t.Cleanup(resetDefaults)
			if tt.setup != nil {
				tt.setup(t)
			}

			fsys := common.NewMockFileSystem()
			fsys.AddFile("/etc/tempfile.toml", []byte(tt.content))

			err := loadDefaultsWithFS("/etc/tempfile.toml", fsys)
			if tt.wantErr {
				require.Error(t, err)
				if tt.errIs != nil {
					assert.ErrorIs(t, err, tt.errIs)
				}
				return
			}
			require.NoError(t, err)
			if tt.wantDir != "" {
				assert.Equal(t, tt.wantDir, TempDir())
			}
			if tt.wantPrefix != "" {
				assert.Equal(t, tt.wantPrefix, DefaultPrefix())
			}
		})
	}
}

func TestLoadDefaultsMissingFile(t *testing.T) {
	resetDefaults()
	t.Cleanup(resetDefaults)

	err := loadDefaultsWithFS("/etc/nope.toml", common.NewMockFileSystem())
	require.Error(t, err)
}
