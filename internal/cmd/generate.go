package cmd

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/Alia5/safegen/internal/codegen/generator"
	"github.com/Alia5/safegen/internal/codegen/generator/php"
	"github.com/Alia5/safegen/internal/log"
)

// Paths are the inputs and outputs shared by every generation command.
type Paths struct {
	Table                 string `help:"Function metadata table (yaml, json or toml)" default:"generator/functions.yaml" env:"SAFEGEN_TABLE"`
	Exclusions            string `help:"Functions that must never be wrapped (php, yaml, json, toml or text list)" default:"" env:"SAFEGEN_EXCLUSIONS"`
	SpecialCases          string `help:"Hand-written functions added to the function list and Rector config" default:"" env:"SAFEGEN_SPECIAL_CASES"`
	Output                string `help:"Directory for generated module files" default:"generated" env:"SAFEGEN_OUTPUT"`
	ExceptionsDir         string `help:"Directory for generated exception classes. Default resolves to <output>/Exceptions" default:"" env:"SAFEGEN_EXCEPTIONS_DIR"`
	HandwrittenExceptions string `help:"Directory of hand-written exception classes that are never generated" default:"lib/Exceptions" env:"SAFEGEN_HANDWRITTEN_EXCEPTIONS"`
	Namespace             string `help:"PHP namespace of the generated library" default:"Safe" env:"SAFEGEN_NAMESPACE"`
	FunctionsList         string `help:"Function list file. Default resolves to <output>/functionsList.php" default:"" env:"SAFEGEN_FUNCTIONS_LIST"`
	RectorConfig          string `help:"Rector configuration file" default:"rector-migrate.php" env:"SAFEGEN_RECTOR_CONFIG"`
}

// GeneratorConfig resolves the defaults that depend on other paths.
func (p Paths) GeneratorConfig() generator.Config {
	layout := generator.DefaultLayout(p.Output)
	if p.ExceptionsDir != "" {
		layout.ExceptionsDir = p.ExceptionsDir
	}
	layout.HandwrittenExceptionsDir = p.HandwrittenExceptions
	layout.Namespace = p.Namespace

	functionsList := p.FunctionsList
	if functionsList == "" {
		functionsList = filepath.Join(p.Output, "functionsList.php")
	}
	return generator.Config{
		Table:         p.Table,
		Exclusions:    p.Exclusions,
		SpecialCases:  p.SpecialCases,
		Layout:        layout,
		FunctionsList: functionsList,
		RectorConfig:  p.RectorConfig,
	}
}

// Generate writes the wrapper library to disk.
type Generate struct {
	Paths `embed:""`
}

// Run is called by Kong when the generate command is executed.
func (g *Generate) Run(ctx context.Context, logger *slog.Logger, wl log.WriteLogger) error {
	cfg := g.GeneratorConfig()
	logger.Info("Starting safegen", "table", cfg.Table, "output", cfg.Layout.OutputDir)

	_, err := generator.New(cfg, php.DirOutput{}, logger, generator.WithWriteLog(wl)).Run(ctx)
	return err
}
