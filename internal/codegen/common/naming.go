package common

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-openapi/inflect"
)

// ExceptionSuffix is appended to every generated exception class name.
const ExceptionSuffix = "Exception"

// ToExceptionName converts a module name to its exception class name:
// capitalise, drop dashes, append "Exception".
// Example: "filesystem" -> "FilesystemException", "oci-8" -> "Oci8Exception".
func ToExceptionName(module string) string {
	if module == "" {
		return ExceptionSuffix
	}
	return strings.ReplaceAll(UpperFirst(module), "-", "") + ExceptionSuffix
}

// UpperFirst uppercases the first rune of s.
func UpperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	switch {
	case size == 0:
		return s
	case r < utf8.RuneSelf:
		return inflect.Capitalize(s)
	case r == utf8.RuneError:
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// ModuleFileName returns the wrapper file name for a module: first letter
// lowercased, ".php" appended. Example: "Widget" -> "widget.php".
func ModuleFileName(module string) string {
	return LowerFirst(module) + ".php"
}

// LowerFirst lowercases the first rune of s.
func LowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}
