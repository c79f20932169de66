package generator

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/Alia5/safegen/internal/codegen/generator/php"
)

// ErrStale is returned by Check when the files on disk differ from what a
// fresh run would write.
var ErrStale = errors.New("generated files are stale")

// Drift lists the outputs that do not match a fresh run.
type Drift struct {
	Checked int
	Stale   []string // present but different
	Missing []string // not on disk
}

// Clean reports whether nothing drifted.
func (d *Drift) Clean() bool {
	return len(d.Stale) == 0 && len(d.Missing) == 0
}

// Check runs the generator into memory and compares every file it would write
// with the copy on disk. Existing exception classes are never rewritten, so
// they are not compared.
func Check(ctx context.Context, cfg Config, logger *slog.Logger) (*Drift, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	mem := php.NewMemOutput(php.DirOutput{})
	if _, err := New(cfg, mem, logger).Run(ctx); err != nil {
		return nil, err
	}

	d := &Drift{}
	for _, path := range mem.Files() {
		want, _ := mem.Content(path)
		got, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			d.Missing = append(d.Missing, path)
			continue
		case err != nil:
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		d.Checked++
		if Digest(want) != Digest(got) {
			d.Stale = append(d.Stale, path)
		}
	}

	if !d.Clean() {
		var parts []string
		if len(d.Stale) > 0 {
			parts = append(parts, "stale: "+strings.Join(d.Stale, ", "))
		}
		if len(d.Missing) > 0 {
			parts = append(parts, "missing: "+strings.Join(d.Missing, ", "))
		}
		return d, fmt.Errorf("%w (%s)", ErrStale, strings.Join(parts, "; "))
	}
	return d, nil
}
