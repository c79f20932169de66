package meta

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func widgetOpen() FunctionSpec {
	return FunctionSpec{
		Name:   "widget_open",
		Module: "Widget",
		Params: []ParameterSpec{
			{Name: "path", Type: "string"},
			{Name: "mode", Type: "int", Default: "0"},
		},
	}
}

func TestNewTable(t *testing.T) {
	tests := []struct {
		name    string
		specs   []FunctionSpec
		wantErr error
	}{
		{
			name:  "single valid spec",
			specs: []FunctionSpec{widgetOpen()},
		},
		{
			name: "duplicate name",
			specs: []FunctionSpec{
				widgetOpen(),
				{Name: "widget_open", Module: "Gadget"},
			},
			wantErr: ErrDuplicateFunction,
		},
		{
			name: "duplicate name with different case",
			specs: []FunctionSpec{
				widgetOpen(),
				{Name: "Widget_Open", Module: "Widget"},
			},
			wantErr: ErrDuplicateFunction,
		},
		{
			name:    "missing module",
			specs:   []FunctionSpec{{Name: "orphan"}},
			wantErr: ErrInvalidSpec,
		},
		{
			name: "variadic not last",
			specs: []FunctionSpec{{
				Name:   "broken",
				Module: "Strings",
				Params: []ParameterSpec{
					{Name: "values", Variadic: true},
					{Name: "format", Type: "string"},
				},
			}},
			wantErr: ErrInvalidSpec,
		},
		{
			name: "variadic with default",
			specs: []FunctionSpec{{
				Name:   "broken",
				Module: "Strings",
				Params: []ParameterSpec{{Name: "values", Variadic: true, Default: "[]"}},
			}},
			wantErr: ErrInvalidSpec,
		},
		{
			name: "parameter declared twice",
			specs: []FunctionSpec{{
				Name:   "broken",
				Module: "Strings",
				Params: []ParameterSpec{{Name: "a"}, {Name: "a"}},
			}},
			wantErr: ErrInvalidSpec,
		},
		{
			name: "modules differing only in case share a wrapper file",
			specs: []FunctionSpec{
				widgetOpen(),
				{Name: "widget_close", Module: "widget"},
			},
			wantErr: ErrInvalidSpec,
		},
		{
			name: "modules sharing an exception class",
			specs: []FunctionSpec{
				{Name: "oci_connect", Module: "oci-8"},
				{Name: "oci_close", Module: "oci8"},
			},
			wantErr: ErrInvalidSpec,
		},
		{
			name: "same module across records",
			specs: []FunctionSpec{
				widgetOpen(),
				{Name: "widget_close", Module: "Widget"},
			},
		},
		{
			name:    "module with a path separator",
			specs:   []FunctionSpec{{Name: "broken", Module: "../Widget"}},
			wantErr: ErrInvalidSpec,
		},
		{
			name:    "module starting with a digit",
			specs:   []FunctionSpec{{Name: "broken", Module: "8ball"}},
			wantErr: ErrInvalidSpec,
		},
		{
			name:  "non-ASCII module",
			specs: []FunctionSpec{{Name: "eclair_bake", Module: "Éclair"}},
		},
		{
			name:    "unknown sentinel",
			specs:   []FunctionSpec{{Name: "broken", Module: "Strings", Sentinel: "zero"}},
			wantErr: ErrInvalidSpec,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := NewTable(tt.specs)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				assert.Nil(t, table)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, len(tt.specs), table.Len())
		})
	}
}

func TestNewTableReportsEveryProblem(t *testing.T) {
	_, err := NewTable([]FunctionSpec{
		{Name: "", Module: "A"},
		{Name: "b"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty function name")
	assert.Contains(t, err.Error(), "empty module")
}

func TestTableLookupAndWithout(t *testing.T) {
	table, err := NewTable([]FunctionSpec{
		widgetOpen(),
		{Name: "gadget_spin", Module: "Gadget"},
	})
	require.NoError(t, err)

	spec, ok := table.Lookup("WIDGET_OPEN")
	require.True(t, ok)
	assert.Equal(t, "Widget", spec.Module)

	_, ok = table.Lookup("nope")
	assert.False(t, ok)

	left := table.Without([]string{"widget_open"})
	require.Len(t, left, 1)
	assert.Equal(t, "gadget_spin", left[0].Name)

	left = table.Without([]string{"Widget_Open", "GADGET_SPIN"})
	assert.Empty(t, left)
}

func TestNewTableModuleCollisionMessage(t *testing.T) {
	_, err := NewTable([]FunctionSpec{
		widgetOpen(),
		{Name: "widget_close", Module: "widget"},
		{Name: "widget_read", Module: "widget"},
		{Name: "oci_connect", Module: "oci-8"},
		{Name: "oci_close", Module: "oci8"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `module "widget" maps to the same wrapper file widget.php as module "Widget"`)
	assert.Contains(t, err.Error(), `module "oci8" maps to the same exception class Oci8Exception as module "oci-8"`)
	assert.Equal(t, 1, strings.Count(err.Error(), `module "widget"`), "one report per colliding module")
}

func TestOptionalTail(t *testing.T) {
	tests := []struct {
		name     string
		params   []ParameterSpec
		optional int
	}{
		{"no params", nil, 0},
		{"all required", []ParameterSpec{{Name: "a"}, {Name: "b"}}, 0},
		{"one default", []ParameterSpec{{Name: "a"}, {Name: "b", Default: "0"}}, 1},
		{"optional null", []ParameterSpec{{Name: "a"}, {Name: "b", Optional: true}}, 1},
		{"variadic tail", []ParameterSpec{{Name: "format"}, {Name: "values", Variadic: true}}, 1},
		{
			"default before required is not omittable",
			[]ParameterSpec{{Name: "a", Default: "1"}, {Name: "b"}, {Name: "c", Default: "2"}},
			1,
		},
		{
			"three trailing",
			[]ParameterSpec{{Name: "a"}, {Name: "b", Default: "false"}, {Name: "c", Optional: true}, {Name: "d", Default: "0"}},
			3,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := FunctionSpec{Name: "f", Module: "m", Params: tt.params}
			assert.Equal(t, tt.optional, f.OptionalTail())
			assert.Equal(t, len(tt.params)-tt.optional, f.RequiredCount())
		})
	}
}

func TestEffectiveSentinel(t *testing.T) {
	tests := []struct {
		name   string
		spec   FunctionSpec
		want   Sentinel
		wantOK bool
	}{
		{"explicit null", FunctionSpec{Sentinel: SentinelNull, Return: ReturnSpec{Type: "array"}}, SentinelNull, true},
		{"union with false", FunctionSpec{Return: ReturnSpec{Type: "string|false"}}, SentinelFalse, true},
		{"plain bool", FunctionSpec{Return: ReturnSpec{Type: "bool"}}, SentinelFalse, true},
		{"no return type", FunctionSpec{}, SentinelFalse, true},
		{"plain int", FunctionSpec{Return: ReturnSpec{Type: "int"}}, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.spec.EffectiveSentinel()
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSplitUnion(t *testing.T) {
	assert.Nil(t, SplitUnion(""))
	assert.Equal(t, []string{"string", "false"}, SplitUnion("string|false"))
	assert.Equal(t, []string{"int", "null"}, SplitUnion("?int"))
	assert.Equal(t, []string{"string", "int"}, SplitUnion(" string | int "))
}

func TestModulesKeepFirstAppearance(t *testing.T) {
	specs := []FunctionSpec{
		{Name: "a", Module: "Widget"},
		{Name: "b", Module: "Gadget"},
		{Name: "c", Module: "Widget"},
	}
	assert.Equal(t, []string{"Widget", "Gadget"}, Modules(specs))

	groups := GroupByModule(specs)
	require.Len(t, groups["Widget"], 2)
	assert.Equal(t, "a", groups["Widget"][0].Name)
	assert.Equal(t, "c", groups["Widget"][1].Name)
}
