package scanner

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alia5/safegen/internal/codegen/meta"
)

func TestLoadTableYAML(t *testing.T) {
	res, err := LoadTable(filepath.Join("testdata", "functions.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 4, res.Table.Len())
	assert.Equal(t, []string{"strlen"}, res.Skipped)

	fgc, ok := res.Table.Lookup("file_get_contents")
	require.True(t, ok)
	assert.Equal(t, "filesystem", fgc.Module)
	require.Len(t, fgc.Params, 5)
	assert.Equal(t, "false", fgc.Params[1].Default)
	assert.True(t, fgc.Params[2].HasDefault(), "default: null must mark the parameter optional")
	assert.Equal(t, "null", fgc.Params[2].DefaultExpr())
	assert.Equal(t, "0", fgc.Params[3].Default)
	assert.Equal(t, "null", fgc.Params[4].DefaultExpr())
	assert.Equal(t, 4, fgc.OptionalTail())

	flock, ok := res.Table.Lookup("flock")
	require.True(t, ok)
	assert.True(t, flock.Params[2].ByRef)

	sprintf, ok := res.Table.Lookup("sprintf")
	require.True(t, ok)
	assert.True(t, sprintf.Params[1].Variadic)
}

func TestParseTableJSON(t *testing.T) {
	data := []byte(`{
		"functions": [
			{
				"name": "widget_open",
				"module": "Widget",
				"params": [
					{"name": "path", "type": "string"},
					{"name": "mode", "type": "int", "default": 0},
					{"name": "ctx", "default": null},
					{"name": "sep", "type": "string", "default": "\",\""}
				]
			}
		]
	}`)
	res, err := ParseTable(data, "json")
	require.NoError(t, err)

	spec, ok := res.Table.Lookup("widget_open")
	require.True(t, ok)
	assert.Equal(t, "0", spec.Params[1].Default)
	assert.True(t, spec.Params[2].Optional)
	assert.Equal(t, `","`, spec.Params[3].Default)
}

func TestParseTableTOML(t *testing.T) {
	data := []byte(`
[[functions]]
name = "widget_open"
module = "Widget"
sentinel = "null"

  [[functions.params]]
  name = "path"
  type = "string"

  [[functions.params]]
  name = "mode"
  type = "int"
  default = "0"
`)
	res, err := ParseTable(data, "toml")
	require.NoError(t, err)

	spec, ok := res.Table.Lookup("widget_open")
	require.True(t, ok)
	assert.Equal(t, meta.SentinelNull, spec.Sentinel)
	require.Len(t, spec.Params, 2)
	assert.Equal(t, "0", spec.Params[1].Default)
}

func TestParseTableRejectsDuplicates(t *testing.T) {
	data := []byte(`
functions:
  - {name: widget_open, module: Widget}
  - {name: widget_open, module: Gadget}
`)
	_, err := ParseTable(data, "yaml")
	require.Error(t, err)
	assert.True(t, errors.Is(err, meta.ErrDuplicateFunction))
}

func TestParseTableRejectsCollidingModules(t *testing.T) {
	data := []byte(`
functions:
  - {name: widget_open, module: Widget, return: {type: "resource|false"}}
  - {name: widget_close, module: widget, return: {type: bool}}
`)
	_, err := ParseTable(data, "yaml")
	require.Error(t, err)
	assert.True(t, errors.Is(err, meta.ErrInvalidSpec))
	assert.Contains(t, err.Error(), "widget.php")
}

func TestLoadTableErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := LoadTable(filepath.Join(t.TempDir(), "missing.yaml"))
		require.Error(t, err)
		assert.True(t, errors.Is(err, os.ErrNotExist))
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "broken.yaml")
		require.NoError(t, os.WriteFile(path, []byte("functions: [\n"), 0o644))
		_, err := LoadTable(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), path)
	})

	t.Run("unknown extension", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "table.txt")
		require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
		_, err := LoadTable(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported format")
	})
}
