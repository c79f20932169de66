// Package php emits the PHP side of the Safe library: guarded wrapper
// functions, per-module exception classes, the function list and the Rector
// rename configuration.
package php

import (
	"bufio"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/Alia5/safegen/internal/codegen/common"
	"github.com/Alia5/safegen/internal/codegen/meta"
)

const (
	// DefaultNamespace is the PHP namespace of the generated library.
	DefaultNamespace = "Safe"

	fallbackMessage  = "An error occured"
	fallbackSeverity = 1
)

// Layout says where each generated artefact lives.
type Layout struct {
	Namespace                string // PHP namespace, "Safe" when empty
	OutputDir                string // module wrapper files
	ExceptionsDir            string // generated exception classes
	HandwrittenExceptionsDir string // optional; a class found here is never generated
}

func (l Layout) namespace() string {
	if l.Namespace == "" {
		return DefaultNamespace
	}
	return strings.Trim(l.Namespace, `\`)
}

// ModulePath returns the wrapper file path for module.
func (l Layout) ModulePath(module string) string {
	return filepath.Join(l.OutputDir, common.ModuleFileName(module))
}

// ExceptionPath returns the generated exception class path for module.
func (l Layout) ExceptionPath(module string) string {
	return filepath.Join(l.ExceptionsDir, common.ToExceptionName(module)+".php")
}

// FileCreator writes generated PHP through an Output.
// Every method stops at the first failure; files written before it stay.
type FileCreator struct {
	out    Output
	layout Layout
	logger *slog.Logger
}

// NewFileCreator returns a FileCreator writing to out.
func NewFileCreator(out Output, layout Layout, logger *slog.Logger) *FileCreator {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &FileCreator{out: out, layout: layout, logger: logger}
}

// WriteModuleFiles writes one file per module containing the wrappers of its
// functions in the given order. Existing files are truncated.
// Returns the modules written, in first-appearance order.
func (c *FileCreator) WriteModuleFiles(specs []meta.FunctionSpec) ([]string, error) {
	groups := meta.GroupByModule(specs)
	modules := meta.Modules(specs)
	for _, module := range modules {
		path := c.layout.ModulePath(module)
		err := c.write(path, func(w *bufio.Writer) error {
			err := modulePreambleTmpl.Execute(w, preambleData{
				Namespace: c.layout.namespace(),
				Exception: common.ToExceptionName(module),
			})
			if err != nil {
				return fmt.Errorf("execute preamble template: %w", err)
			}
			for _, f := range groups[module] {
				if _, err := w.WriteString("\n" + EmitWrapper(f) + "\n"); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
		c.logger.Debug("Wrote module file", "module", module, "functions", len(groups[module]), "file", path)
	}
	return modules, nil
}

// EnsureExceptionClass writes the exception class for module unless one
// already exists in the generated or the hand-written exceptions directory.
// It reports whether a file was created.
func (c *FileCreator) EnsureExceptionClass(module string) (bool, error) {
	name := common.ToExceptionName(module)
	path := c.layout.ExceptionPath(module)

	candidates := []string{path}
	if c.layout.HandwrittenExceptionsDir != "" {
		candidates = append(candidates, filepath.Join(c.layout.HandwrittenExceptionsDir, name+".php"))
	}
	for _, p := range candidates {
		exists, err := c.out.Exists(p)
		if err != nil {
			return false, fmt.Errorf("check %s: %w", p, err)
		}
		if exists {
			c.logger.Debug("Keeping existing exception class", "exception", name, "file", p)
			return false, nil
		}
	}

	err := c.write(path, func(w *bufio.Writer) error {
		return exceptionTmpl.Execute(w, exceptionData{
			Namespace:        c.layout.namespace(),
			Exception:        name,
			FallbackMessage:  fallbackMessage,
			FallbackSeverity: fallbackSeverity,
		})
	})
	if err != nil {
		return false, err
	}
	c.logger.Debug("Generated exception class", "exception", name, "file", path)
	return true, nil
}

// WriteFunctionsList writes names as a PHP "return [...]" list.
func (c *FileCreator) WriteFunctionsList(names []string, path string) error {
	return c.write(path, func(w *bufio.Writer) error {
		w.WriteString(functionsListHeader)
		for _, n := range names {
			w.WriteString("    " + Quote(n) + ",\n")
		}
		_, err := w.WriteString(functionsListFooter)
		return err
	})
}

// WriteRectorConfig writes a RenameFunctionRector configuration mapping every
// name to its namespaced Safe equivalent.
func (c *FileCreator) WriteRectorConfig(names []string, path string) error {
	ns := c.layout.namespace()
	return c.write(path, func(w *bufio.Writer) error {
		w.WriteString(rectorHeader)
		for _, n := range names {
			fmt.Fprintf(w, "            %s => '%s\\%s',\n", Quote(n), ns, n)
		}
		_, err := w.WriteString(rectorFooter)
		return err
	})
}

func (c *FileCreator) write(path string, body func(w *bufio.Writer) error) error {
	f, err := c.out.Create(path)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)
	if err := body(w); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := w.Flush(); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

// Quote renders s as a single-quoted PHP string literal, like var_export.
func Quote(s string) string {
	var b strings.Builder
	b.WriteByte('\'')
	for i := 0; i < len(s); i++ {
		if s[i] == '\'' || s[i] == '\\' {
			b.WriteByte('\\')
		}
		b.WriteByte(s[i])
	}
	b.WriteByte('\'')
	return b.String()
}
