package php

import (
	"strings"

	"github.com/Alia5/safegen/internal/codegen/meta"
)

// builtinHints are the scalar and pseudo types PHP accepts in a signature.
var builtinHints = map[string]bool{
	"string":   true,
	"int":      true,
	"float":    true,
	"bool":     true,
	"array":    true,
	"callable": true,
	"iterable": true,
	"object":   true,
	"self":     true,
}

// isHintable reports whether t can appear as a type declaration.
// resource and mixed only exist in documentation; class names can be hinted.
func isHintable(t string) bool {
	if builtinHints[t] {
		return true
	}
	if t == "" {
		return false
	}
	c := t[0]
	return c == '\\' || (c >= 'A' && c <= 'Z')
}

func without(members []string, drop string) []string {
	out := members[:0:0]
	for _, m := range members {
		if m != drop {
			out = append(out, m)
		}
	}
	return out
}

func contains(members []string, m string) bool {
	for _, x := range members {
		if x == m {
			return true
		}
	}
	return false
}

// paramHint returns the signature type for p, or "" when it cannot be declared.
func paramHint(p meta.ParameterSpec) string {
	members := meta.SplitUnion(p.Type)
	nullable := contains(members, "null")
	base := without(members, "null")
	if len(base) != 1 || !isHintable(base[0]) {
		return ""
	}
	if nullable || (p.HasDefault() && p.DefaultExpr() == "null") {
		return "?" + base[0]
	}
	return base[0]
}

// paramDocType returns the docblock type for p.
func paramDocType(p meta.ParameterSpec) string {
	if strings.TrimSpace(p.Type) == "" {
		return "mixed"
	}
	return strings.Join(meta.SplitUnion(p.Type), "|")
}

// returnShape describes what the wrapper returns once the sentinel is gone.
type returnShape struct {
	Void bool   // nothing but success/failure was returned
	Hint string // signature return type, "" for none
	Doc  string // docblock @return type, "" to omit
}

func resolveReturn(f meta.FunctionSpec, sentinel meta.Sentinel) returnShape {
	members := meta.SplitUnion(f.Return.Type)
	if len(members) == 0 {
		return returnShape{}
	}
	if len(members) == 1 && members[0] == "void" {
		return returnShape{Void: true, Hint: "void"}
	}

	rest := without(members, string(sentinel))
	nullable := f.Return.Nullable
	if sentinel == meta.SentinelFalse {
		if contains(rest, "null") {
			nullable = true
			rest = without(rest, "null")
		}
		// A bool result reduced by its false value only ever says "true".
		if len(rest) == 1 && (rest[0] == "bool" || rest[0] == "true") {
			return returnShape{Void: true, Hint: "void"}
		}
	} else {
		nullable = false
	}
	if len(rest) == 0 {
		return returnShape{Void: true, Hint: "void"}
	}

	doc := strings.Join(rest, "|")
	if nullable {
		doc += "|null"
	}
	shape := returnShape{Doc: doc}
	if len(rest) == 1 && isHintable(rest[0]) {
		shape.Hint = rest[0]
		if nullable {
			shape.Hint = "?" + rest[0]
		}
	}
	return shape
}

// guardExpr renders a default for use on the right of "!==".
// Anything that is not a single token is parenthesised.
func guardExpr(expr string) string {
	expr = strings.TrimSpace(expr)
	if n := len(expr); n >= 2 {
		if q := expr[0]; (q == '\'' || q == '"') && expr[n-1] == q {
			return expr
		}
	}
	if strings.ContainsAny(expr, " \t|&^+*/%<>?:!=,") {
		return "(" + expr + ")"
	}
	return expr
}
