package cmd

import (
	"context"
	"log/slog"
	"time"

	"github.com/Alia5/safegen/internal/codegen/generator"
	"github.com/Alia5/safegen/internal/codegen/generator/php"
	"github.com/Alia5/safegen/internal/log"
)

// Watch regenerates whenever an input file changes.
type Watch struct {
	Paths    `embed:""`
	Debounce time.Duration `help:"Quiet period after a change before regenerating" default:"200ms" env:"SAFEGEN_WATCH_DEBOUNCE"`
}

// Run is called by Kong when the watch command is executed. It blocks until
// the process is interrupted.
func (w *Watch) Run(ctx context.Context, logger *slog.Logger, wl log.WriteLogger) error {
	gen := generator.New(w.GeneratorConfig(), php.DirOutput{}, logger, generator.WithWriteLog(wl))
	logger.Info("Watching inputs", "files", w.GeneratorConfig().Inputs(), "debounce", w.Debounce)
	return generator.NewWatcher(gen, w.Debounce, logger).Run(ctx)
}
