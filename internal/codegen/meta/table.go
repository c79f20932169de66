package meta

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/Alia5/safegen/internal/codegen/common"
)

// Table is the validated, immutable set of wrappable functions.
type Table struct {
	specs  []FunctionSpec
	byName map[string]int // lowercased name -> index; PHP function names are case-insensitive
}

// NewTable validates specs and builds a table that keeps their order.
// All problems are reported together.
func NewTable(specs []FunctionSpec) (*Table, error) {
	t := &Table{
		specs:  make([]FunctionSpec, 0, len(specs)),
		byName: make(map[string]int, len(specs)),
	}

	var errs []error
	for _, s := range specs {
		if err := s.Validate(); err != nil {
			errs = append(errs, err)
			continue
		}
		key := strings.ToLower(s.Name)
		if prev, ok := t.byName[key]; ok {
			errs = append(errs, &SpecError{
				Function: s.Name,
				Message:  fmt.Sprintf("already declared in module %q", t.specs[prev].Module),
				Kind:     ErrDuplicateFunction,
			})
			continue
		}
		t.byName[key] = len(t.specs)
		t.specs = append(t.specs, s)
	}
	errs = append(errs, checkModuleNames(t.specs)...)
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return t, nil
}

// Validate checks a single record.
func (f FunctionSpec) Validate() error {
	if strings.TrimSpace(f.Name) == "" {
		return invalid("", "", "empty function name")
	}
	if strings.TrimSpace(f.Module) == "" {
		return invalid(f.Name, "", "empty module")
	}
	if !validModuleName(f.Module) {
		return invalid(f.Name, "", fmt.Sprintf("module %q must start with a letter and contain only letters, digits, '_' or '-'", f.Module))
	}
	switch f.Sentinel {
	case "", SentinelFalse, SentinelNull:
	default:
		return invalid(f.Name, "", fmt.Sprintf("unknown sentinel %q (use false or null)", f.Sentinel))
	}

	seen := make(map[string]bool, len(f.Params))
	for i, p := range f.Params {
		if p.Name == "" {
			return invalid(f.Name, "", fmt.Sprintf("parameter %d has no name", i+1))
		}
		if seen[p.Name] {
			return invalid(f.Name, p.Name, "declared twice")
		}
		seen[p.Name] = true
		if p.Variadic && i != len(f.Params)-1 {
			return invalid(f.Name, p.Name, "variadic parameter must be last")
		}
		if p.Variadic && p.HasDefault() {
			return invalid(f.Name, p.Name, "variadic parameter cannot have a default")
		}
	}
	return nil
}

func validModuleName(m string) bool {
	for i, r := range m {
		switch {
		case unicode.IsLetter(r):
		case i > 0 && (unicode.IsDigit(r) || r == '_' || r == '-'):
		default:
			return false
		}
	}
	return true
}

// checkModuleNames rejects distinct modules that would write the same wrapper
// file or exception class. PHP class names and common filesystems ignore case,
// so both are compared folded.
func checkModuleNames(specs []FunctionSpec) []error {
	files := make(map[string]string)
	classes := make(map[string]string)
	reported := make(map[string]bool)
	var errs []error
	for _, s := range specs {
		m := s.Module
		file := common.ModuleFileName(m)
		class := common.ToExceptionName(m)
		prev, clash := files[strings.ToLower(file)]
		what := "wrapper file " + file
		if !clash || prev == m {
			prev, clash = classes[strings.ToLower(class)]
			what = "exception class " + class
		}
		if clash && prev != m {
			if !reported[m] {
				reported[m] = true
				errs = append(errs, invalid(s.Name, "", fmt.Sprintf("module %q maps to the same %s as module %q", m, what, prev)))
			}
			continue
		}
		files[strings.ToLower(file)] = m
		classes[strings.ToLower(class)] = m
	}
	return errs
}

// Len returns the number of functions.
func (t *Table) Len() int { return len(t.specs) }

// Specs returns the functions in table order.
func (t *Table) Specs() []FunctionSpec {
	out := make([]FunctionSpec, len(t.specs))
	copy(out, t.specs)
	return out
}

// Lookup finds a function by name, ignoring case.
func (t *Table) Lookup(name string) (FunctionSpec, bool) {
	i, ok := t.byName[strings.ToLower(name)]
	if !ok {
		return FunctionSpec{}, false
	}
	return t.specs[i], true
}

// Without returns the functions whose names are not in excluded, ignoring case.
func (t *Table) Without(excluded []string) []FunctionSpec {
	skip := foldSet(excluded)
	out := make([]FunctionSpec, 0, len(t.specs))
	for _, s := range t.specs {
		if !skip[strings.ToLower(s.Name)] {
			out = append(out, s)
		}
	}
	return out
}

func foldSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[strings.ToLower(n)] = true
	}
	return set
}

// Modules returns module names in first-appearance order.
func Modules(specs []FunctionSpec) []string {
	seen := make(map[string]bool)
	var out []string
	for _, s := range specs {
		if !seen[s.Module] {
			seen[s.Module] = true
			out = append(out, s.Module)
		}
	}
	return out
}

// GroupByModule groups specs by module, keeping the input order within each group.
func GroupByModule(specs []FunctionSpec) map[string][]FunctionSpec {
	out := make(map[string][]FunctionSpec)
	for _, s := range specs {
		out[s.Module] = append(out[s.Module], s)
	}
	return out
}
