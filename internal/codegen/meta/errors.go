package meta

import (
	"errors"
	"strings"
)

var (
	// ErrInvalidSpec indicates a malformed function record.
	ErrInvalidSpec = errors.New("safegen: invalid function spec")
	// ErrDuplicateFunction indicates two records share a function name.
	ErrDuplicateFunction = errors.New("safegen: duplicate function")
)

// SpecError reports a problem with one function record.
type SpecError struct {
	Function string
	Param    string
	Message  string
	Kind     error // ErrInvalidSpec or ErrDuplicateFunction
}

func (e *SpecError) Error() string {
	var b strings.Builder
	b.WriteString("safegen: function spec")
	if e.Function != "" {
		b.WriteString(" ")
		b.WriteString(e.Function)
	}
	if e.Param != "" {
		b.WriteString(" parameter $")
		b.WriteString(e.Param)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	return b.String()
}

// Is reports whether target is the sentinel this error belongs to.
func (e *SpecError) Is(target error) bool {
	if e.Kind == nil {
		return target == ErrInvalidSpec
	}
	return target == e.Kind
}

func invalid(function, param, message string) *SpecError {
	return &SpecError{Function: function, Param: param, Message: message, Kind: ErrInvalidSpec}
}
