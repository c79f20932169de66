package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNameList(t *testing.T) {
	tests := []struct {
		name   string
		format string
		data   string
		want   []string
	}{
		{
			name:   "yaml sequence",
			format: "yaml",
			data:   "- readdir\n- apcu_delete\n",
			want:   []string{"readdir", "apcu_delete"},
		},
		{
			name:   "yaml keyed",
			format: "yaml",
			data:   "functions:\n  - readdir\n  - ''\n",
			want:   []string{"readdir"},
		},
		{
			name:   "empty yaml",
			format: "yaml",
			data:   "",
			want:   nil,
		},
		{
			name:   "json array",
			format: "json",
			data:   `["readdir", "apcu_delete"]`,
			want:   []string{"readdir", "apcu_delete"},
		},
		{
			name:   "json keyed",
			format: "json",
			data:   `{"functions": ["readdir"]}`,
			want:   []string{"readdir"},
		},
		{
			name:   "toml",
			format: "toml",
			data:   "functions = [\"readdir\", \"apcu_delete\"]\n",
			want:   []string{"readdir", "apcu_delete"},
		},
		{
			name:   "plain text with comments",
			format: "text",
			data:   "# ignored functions\nreaddir\n\n  apcu_delete  # returns false on a missing key\n",
			want:   []string{"readdir", "apcu_delete"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseNameList([]byte(tt.data), tt.format)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadNameListPHP(t *testing.T) {
	got, err := LoadNameList(filepath.Join("testdata", "ignoredFunctions.php"))
	require.NoError(t, err)
	assert.Equal(t, []string{
		"array_key_exists",
		"is_executable",
		"oci_lob_copy",
		"readdir",
		"apcu_delete",
	}, got)
}

func TestParsePHPList(t *testing.T) {
	t.Run("array() syntax", func(t *testing.T) {
		got, err := ParsePHPList([]byte("<?php\n/* legacy */\nreturn array('a', 'b');\n"))
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, got)
	})

	t.Run("escapes", func(t *testing.T) {
		got, err := ParsePHPList([]byte(`<?php return ['it\'s', "tab\there", 'back\\slash', 'raw\n'];`))
		require.NoError(t, err)
		assert.Equal(t, []string{"it's", "tab\there", `back\slash`, `raw\n`}, got)
	})

	t.Run("empty", func(t *testing.T) {
		got, err := ParsePHPList([]byte("<?php\nreturn [];\n"))
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	errorCases := map[string]string{
		"no return":       "<?php\n$x = ['a'];",
		"keyed entry":     "<?php return ['a' => 'b'];",
		"unterminated":    "<?php return ['a',",
		"bad element":     "<?php return [FOO];",
		"open string":     "<?php return ['a];",
		"missing comma":   "<?php return ['a' 'b'];",
		"array no parens": "<?php return array 'a';",
	}
	for name, src := range errorCases {
		t.Run(name, func(t *testing.T) {
			_, err := ParsePHPList([]byte(src))
			assert.Error(t, err)
		})
	}
}

func TestLoadNameListMissingFile(t *testing.T) {
	_, err := LoadNameList(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
