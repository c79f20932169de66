package cmd

import (
	"bufio"
	"io"
	"log/slog"
	"os"

	"github.com/Alia5/safegen/internal/codegen/generator"
	"github.com/Alia5/safegen/internal/codegen/generator/php"
)

// List prints the eligible function names, one per line.
type List struct {
	Paths `embed:""`

	out io.Writer
}

// Run is called by Kong when the list command is executed.
func (l *List) Run(logger *slog.Logger) error {
	gen := generator.New(l.GeneratorConfig(), php.NewMemOutput(nil), logger)
	md, err := gen.ScanAll()
	if err != nil {
		return err
	}

	out := l.out
	if out == nil {
		out = os.Stdout
	}
	w := bufio.NewWriter(out)
	for _, name := range md.Eligible() {
		_, _ = w.WriteString(name)
		_ = w.WriteByte('\n')
	}
	return w.Flush()
}
