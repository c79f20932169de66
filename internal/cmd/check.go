package cmd

import (
	"context"
	"log/slog"

	"github.com/Alia5/safegen/internal/codegen/generator"
)

// Check fails when the files on disk differ from a fresh generation.
type Check struct {
	Paths `embed:""`
}

// Run is called by Kong when the check command is executed.
func (c *Check) Run(ctx context.Context, logger *slog.Logger) error {
	drift, err := generator.Check(ctx, c.GeneratorConfig(), logger)
	if drift != nil {
		for _, p := range drift.Stale {
			logger.Warn("Stale generated file", "file", p)
		}
		for _, p := range drift.Missing {
			logger.Warn("Missing generated file", "file", p)
		}
	}
	if err != nil {
		return err
	}
	logger.Info("Generated files are up to date", "checked", drift.Checked)
	return nil
}
