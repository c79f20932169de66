package generator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/Alia5/safegen/internal/codegen/generator/php"
	"github.com/Alia5/safegen/internal/codegen/meta"
	"github.com/Alia5/safegen/internal/codegen/scanner"
	"github.com/Alia5/safegen/internal/log"
)

// Config names the inputs and outputs of one generation run.
type Config struct {
	Table        string // metadata table (yaml, json or toml)
	Exclusions   string // optional name list
	SpecialCases string // optional name list

	Layout        php.Layout
	FunctionsList string // functions list file; empty skips it
	RectorConfig  string // Rector config file; empty skips it
}

// Inputs returns the files a run reads.
func (c Config) Inputs() []string {
	var in []string
	for _, p := range []string{c.Table, c.Exclusions, c.SpecialCases} {
		if p != "" {
			in = append(in, p)
		}
	}
	return in
}

func (c Config) validate() error {
	if c.Table == "" {
		return errors.New("no metadata table configured")
	}
	if c.Layout.OutputDir == "" {
		return errors.New("no output directory configured")
	}
	return nil
}

// Summary reports what a run did.
type Summary struct {
	Modules           []string // in first-appearance order
	Wrappers          int
	ExceptionsCreated []string
	ExceptionsKept    []string
	Eligible          []string
	Skipped           []string // table records without a failure sentinel
	Files             []string // every file written, in write order
}

type Generator struct {
	cfg      Config
	out      php.Output
	logger   *slog.Logger
	writeLog log.WriteLogger
}

// Option customises a Generator.
type Option func(*Generator)

// WithWriteLog records every written file on wl.
func WithWriteLog(wl log.WriteLogger) Option {
	return func(g *Generator) { g.writeLog = wl }
}

// New returns a Generator writing to out.
func New(cfg Config, out php.Output, logger *slog.Logger, opts ...Option) *Generator {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	g := &Generator{
		cfg:      cfg,
		out:      out,
		logger:   logger,
		writeLog: log.NewWrite(nil),
	}
	for _, o := range opts {
		o(g)
	}
	return g
}

// Run loads the inputs and writes the whole library. The first failure stops
// the run; files written before it are left in place.
func (g *Generator) Run(ctx context.Context) (*Summary, error) {
	if err := g.cfg.validate(); err != nil {
		return nil, err
	}

	md, err := g.ScanAll()
	if err != nil {
		return nil, err
	}

	sum := &Summary{Skipped: md.Skipped, Eligible: md.Eligible()}
	rec := &recordingOutput{Output: g.out, onClose: func(path string, size int, digest []byte) {
		sum.Files = append(sum.Files, path)
		g.writeLog.Log(path, size, digest)
	}}
	fc := php.NewFileCreator(rec, g.cfg.Layout, g.logger)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	wrappable := md.Wrappable()
	g.logger.Info("Writing module files", "functions", len(wrappable), "output", g.cfg.Layout.OutputDir)
	sum.Modules, err = fc.WriteModuleFiles(wrappable)
	if err != nil {
		return nil, fmt.Errorf("write module files: %w", err)
	}
	sum.Wrappers = len(wrappable)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	g.logger.Debug("Ensuring exception classes", "modules", len(sum.Modules))
	for _, module := range sum.Modules {
		created, err := fc.EnsureExceptionClass(module)
		if err != nil {
			return nil, fmt.Errorf("exception class for %s: %w", module, err)
		}
		if created {
			sum.ExceptionsCreated = append(sum.ExceptionsCreated, module)
		} else {
			sum.ExceptionsKept = append(sum.ExceptionsKept, module)
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if g.cfg.FunctionsList != "" {
		if err := fc.WriteFunctionsList(sum.Eligible, g.cfg.FunctionsList); err != nil {
			return nil, fmt.Errorf("write functions list: %w", err)
		}
		g.logger.Debug("Wrote functions list", "file", g.cfg.FunctionsList, "names", len(sum.Eligible))
	}
	if g.cfg.RectorConfig != "" {
		if err := fc.WriteRectorConfig(sum.Eligible, g.cfg.RectorConfig); err != nil {
			return nil, fmt.Errorf("write rector config: %w", err)
		}
		g.logger.Debug("Wrote rector config", "file", g.cfg.RectorConfig, "names", len(sum.Eligible))
	}

	g.logger.Info("Generation complete",
		"modules", len(sum.Modules),
		"wrappers", sum.Wrappers,
		"exceptions_created", len(sum.ExceptionsCreated),
		"eligible", len(sum.Eligible))
	return sum, nil
}

// ScanAll loads the metadata table and both name lists.
func (g *Generator) ScanAll() (*meta.Metadata, error) {
	g.logger.Info("Loading function metadata", "table", g.cfg.Table)

	res, err := scanner.LoadTable(g.cfg.Table)
	if err != nil {
		return nil, fmt.Errorf("failed to load metadata: %w", err)
	}
	md := &meta.Metadata{Table: res.Table, Skipped: res.Skipped}
	g.logger.Info("Loaded function table", "functions", res.Table.Len(), "skipped", len(res.Skipped))
	for _, name := range res.Skipped {
		g.logger.Log(context.Background(), log.LevelTrace, "Skipping function without failure sentinel", "function", name)
	}

	if g.cfg.Exclusions != "" {
		md.Excluded, err = scanner.LoadNameList(g.cfg.Exclusions)
		if err != nil {
			return nil, fmt.Errorf("failed to load exclusions: %w", err)
		}
		g.logger.Debug("Loaded exclusions", "file", g.cfg.Exclusions, "count", len(md.Excluded))
	}

	if g.cfg.SpecialCases != "" {
		md.SpecialCases, err = scanner.LoadNameList(g.cfg.SpecialCases)
		if err != nil {
			return nil, fmt.Errorf("failed to load special cases: %w", err)
		}
		g.logger.Debug("Loaded special cases", "file", g.cfg.SpecialCases, "count", len(md.SpecialCases))
	}

	return md, nil
}

// DefaultLayout places exceptions in an Exceptions directory under outputDir.
func DefaultLayout(outputDir string) php.Layout {
	return php.Layout{
		OutputDir:     outputDir,
		ExceptionsDir: filepath.Join(outputDir, "Exceptions"),
	}
}
