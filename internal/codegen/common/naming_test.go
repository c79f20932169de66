package common

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestToExceptionName(t *testing.T) {
	tests := map[string]string{
		"Widget":     "WidgetException",
		"filesystem": "FilesystemException",
		"oci-8":      "Oci8Exception",
		"var-dump-x": "VardumpxException",
		"":           "Exception",
		"éclair":     "ÉclairException",
	}
	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			assert.Equal(t, want, ToExceptionName(in))
		})
	}
}

func TestModuleFileName(t *testing.T) {
	assert.Equal(t, "widget.php", ModuleFileName("Widget"))
	assert.Equal(t, "filesystem.php", ModuleFileName("filesystem"))
	assert.Equal(t, "mbstring.php", ModuleFileName("Mbstring"))
	assert.Equal(t, ".php", ModuleFileName(""))
}

func TestUpperFirst(t *testing.T) {
	assert.Equal(t, "Widget", UpperFirst("widget"))
	assert.Equal(t, "Éclair", UpperFirst("éclair"))
	assert.Equal(t, "", UpperFirst(""))
	assert.Equal(t, "\xffoo", UpperFirst("\xffoo"))
	for _, in := range []string{"éclair", "ñandu", "ωmega"} {
		assert.True(t, utf8.ValidString(ToExceptionName(in)), in)
	}
}

func TestLowerFirst(t *testing.T) {
	assert.Equal(t, "éclair", LowerFirst("Éclair"))
	assert.Equal(t, "", LowerFirst(""))
}
