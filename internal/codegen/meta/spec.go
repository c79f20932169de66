// Package meta describes the PHP functions safegen knows how to wrap.
package meta

import (
	"strings"
)

// Sentinel is the value a PHP primitive returns to signal failure.
type Sentinel string

const (
	SentinelFalse Sentinel = "false"
	SentinelNull  Sentinel = "null"
)

// FunctionSpec describes one wrappable PHP primitive.
type FunctionSpec struct {
	Name     string          `json:"name" yaml:"name" toml:"name"`             // e.g. "file_get_contents"
	Module   string          `json:"module" yaml:"module" toml:"module"`       // e.g. "filesystem"
	Doc      []string        `json:"doc" yaml:"doc" toml:"doc"`                // docblock description lines
	Params   []ParameterSpec `json:"params" yaml:"params" toml:"params"`       // ordered parameter list
	Return   ReturnSpec      `json:"return" yaml:"return" toml:"return"`       // declared return type
	Sentinel Sentinel        `json:"sentinel" yaml:"sentinel" toml:"sentinel"` // empty means inferred from Return.Type
}

// ReturnSpec describes the declared return type of a primitive.
type ReturnSpec struct {
	Type     string `json:"type" yaml:"type" toml:"type"`             // PHP type, possibly a union ("string|false")
	Nullable bool   `json:"nullable" yaml:"nullable" toml:"nullable"` // successful results may be null
	Doc      string `json:"doc" yaml:"doc" toml:"doc"`
}

// ParameterSpec describes one parameter of a primitive.
type ParameterSpec struct {
	Name     string `json:"name" yaml:"name" toml:"name"`             // without the leading '$'
	Type     string `json:"type" yaml:"type" toml:"type"`             // PHP type, possibly a union or "resource"/"mixed"
	Optional bool   `json:"optional" yaml:"optional" toml:"optional"` // has a default; an empty Default means null
	Default  string `json:"default" yaml:"default" toml:"default"`    // PHP expression, e.g. "0", "\",\"", "ENT_QUOTES"
	ByRef    bool   `json:"ref" yaml:"ref" toml:"ref"`
	Variadic bool   `json:"variadic" yaml:"variadic" toml:"variadic"`
	Doc      string `json:"doc" yaml:"doc" toml:"doc"`
}

// HasDefault reports whether the parameter may be omitted by a default value.
func (p ParameterSpec) HasDefault() bool {
	return p.Optional || p.Default != ""
}

// DefaultExpr returns the PHP default expression, "null" when none was given.
func (p ParameterSpec) DefaultExpr() string {
	if p.Default == "" {
		return "null"
	}
	return p.Default
}

// IsOptional reports whether callers may leave the parameter out.
func (p ParameterSpec) IsOptional() bool {
	return p.Variadic || p.HasDefault()
}

// OptionalTail returns the length of the trailing run of optional parameters.
// Only this run can be omitted at a PHP call site.
func (f FunctionSpec) OptionalTail() int {
	n := 0
	for i := len(f.Params) - 1; i >= 0; i-- {
		if !f.Params[i].IsOptional() {
			break
		}
		n++
	}
	return n
}

// RequiredCount returns the number of parameters every call must pass.
func (f FunctionSpec) RequiredCount() int {
	return len(f.Params) - f.OptionalTail()
}

// EffectiveSentinel resolves the failure sentinel. An explicit Sentinel wins;
// otherwise a return type carrying false (or plain bool, or no declared type)
// means false. ok is false when the return type cannot carry a sentinel.
func (f FunctionSpec) EffectiveSentinel() (Sentinel, bool) {
	if f.Sentinel != "" {
		return f.Sentinel, true
	}
	members := SplitUnion(f.Return.Type)
	if len(members) == 0 {
		return SentinelFalse, true
	}
	for _, m := range members {
		if m == "false" || m == "bool" {
			return SentinelFalse, true
		}
	}
	return "", false
}

// SplitUnion splits a PHP type descriptor into its members.
// "?int" is reported as ["int", "null"].
func SplitUnion(t string) []string {
	t = strings.TrimSpace(t)
	if t == "" {
		return nil
	}
	nullable := strings.HasPrefix(t, "?")
	t = strings.TrimPrefix(t, "?")

	var out []string
	for _, part := range strings.Split(t, "|") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	if nullable {
		out = append(out, "null")
	}
	return out
}
