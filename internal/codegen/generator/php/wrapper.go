package php

import (
	"fmt"
	"strings"

	"github.com/Alia5/safegen/internal/codegen/common"
	"github.com/Alia5/safegen/internal/codegen/meta"
)

// CallVariant is one way of invoking the primitive: with the first Args
// parameters. Guard is the PHP condition selecting it; the last variant has
// no guard and is the fallback.
type CallVariant struct {
	Args  int
	Guard string
}

// CallVariants lists the call arities for f from most arguments to fewest.
// PHP can only omit a trailing run of optional arguments, so a wrapper with k
// optional trailing parameters needs k+1 variants: each one is chosen when its
// last optional argument differs from the default.
func CallVariants(f meta.FunctionSpec) []CallVariant {
	total := len(f.Params)
	required := f.RequiredCount()

	variants := make([]CallVariant, 0, total-required+1)
	for n := total; n > required; n-- {
		p := f.Params[n-1]
		guard := fmt.Sprintf("$%s !== %s", p.Name, guardExpr(p.DefaultExpr()))
		if p.Variadic {
			guard = fmt.Sprintf("$%s !== []", p.Name)
		}
		variants = append(variants, CallVariant{Args: n, Guard: guard})
	}
	return append(variants, CallVariant{Args: required})
}

// EmitWrapper renders the PHP source of the wrapper for f: docblock,
// signature mirroring the primitive, and a body that clears the last error,
// calls the primitive, and throws the module exception when the result is
// identical to the failure sentinel.
func EmitWrapper(f meta.FunctionSpec) string {
	sentinel, ok := f.EffectiveSentinel()
	if !ok {
		sentinel = meta.SentinelFalse
	}
	exception := common.ToExceptionName(f.Module)
	ret := resolveReturn(f, sentinel)

	var b strings.Builder
	writeDocBlock(&b, f, ret, exception)

	b.WriteString("function ")
	b.WriteString(f.Name)
	b.WriteString("(")
	b.WriteString(signatureParams(f.Params))
	b.WriteString(")")
	if ret.Hint != "" {
		b.WriteString(": ")
		b.WriteString(ret.Hint)
	}
	b.WriteString("\n{\n")
	b.WriteString("    error_clear_last();\n")

	variants := CallVariants(f)
	if len(variants) == 1 {
		fmt.Fprintf(&b, "    $result = %s;\n", callExpr(f, variants[0].Args))
	} else {
		for i, v := range variants {
			switch {
			case i == 0:
				fmt.Fprintf(&b, "    if (%s) {\n", v.Guard)
			case v.Guard != "":
				fmt.Fprintf(&b, "    } elseif (%s) {\n", v.Guard)
			default:
				b.WriteString("    } else {\n")
			}
			fmt.Fprintf(&b, "        $result = %s;\n", callExpr(f, v.Args))
		}
		b.WriteString("    }\n")
	}

	fmt.Fprintf(&b, "    if ($result === %s) {\n", sentinel)
	fmt.Fprintf(&b, "        throw %s::createFromPhpError();\n", exception)
	b.WriteString("    }\n")
	if !ret.Void {
		b.WriteString("    return $result;\n")
	}
	b.WriteString("}\n")
	return b.String()
}

func signatureParams(params []meta.ParameterSpec) string {
	parts := make([]string, 0, len(params))
	for _, p := range params {
		var s strings.Builder
		if hint := paramHint(p); hint != "" {
			s.WriteString(hint)
			s.WriteByte(' ')
		}
		if p.ByRef {
			s.WriteByte('&')
		}
		if p.Variadic {
			s.WriteString("...")
		}
		s.WriteByte('$')
		s.WriteString(p.Name)
		if p.HasDefault() {
			s.WriteString(" = ")
			s.WriteString(p.DefaultExpr())
		}
		parts = append(parts, s.String())
	}
	return strings.Join(parts, ", ")
}

// callExpr calls the global primitive with the first n parameters.
func callExpr(f meta.FunctionSpec, n int) string {
	args := make([]string, 0, n)
	for _, p := range f.Params[:n] {
		if p.Variadic {
			args = append(args, "...$"+p.Name)
			continue
		}
		args = append(args, "$"+p.Name)
	}
	return `\` + f.Name + "(" + strings.Join(args, ", ") + ")"
}

func writeDocBlock(b *strings.Builder, f meta.FunctionSpec, ret returnShape, exception string) {
	b.WriteString("/**\n")
	for _, line := range f.Doc {
		writeDocLine(b, line)
	}
	if len(f.Doc) > 0 {
		b.WriteString(" *\n")
	}
	for _, p := range f.Params {
		writeDocLine(b, strings.TrimRight(fmt.Sprintf("@param %s $%s %s", paramDocType(p), p.Name, p.Doc), " "))
	}
	if ret.Doc != "" {
		writeDocLine(b, strings.TrimRight(fmt.Sprintf("@return %s %s", ret.Doc, f.Return.Doc), " "))
	}
	writeDocLine(b, "@throws "+exception)
	b.WriteString(" *\n")
	b.WriteString(" */\n")
}

func writeDocLine(b *strings.Builder, text string) {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(strings.ReplaceAll(line, "*/", `*\/`), " \t")
		if line == "" {
			b.WriteString(" *\n")
			continue
		}
		b.WriteString(" * ")
		b.WriteString(line)
		b.WriteString("\n")
	}
}
