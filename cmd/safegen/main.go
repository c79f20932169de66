package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/Alia5/safegen/internal/codegen/common"
	"github.com/Alia5/safegen/internal/config"
	"github.com/Alia5/safegen/internal/configpaths"
	"github.com/Alia5/safegen/internal/log"

	"github.com/alecthomas/kong"
	kongtoml "github.com/alecthomas/kong-toml"
	kongyaml "github.com/alecthomas/kong-yaml"
)

func main() {

	userCfg := findUserConfig(os.Args[1:])
	candidates := configpaths.Lookup(userCfg)

	version, err := common.GetVersion()
	if err != nil {
		version = common.Version
	}

	var cli config.CLI
	ctx := kong.Parse(&cli,
		kong.Name("safegen"),
		kong.Description("Generate the Safe PHP library: exception-throwing wrappers for functions that signal failure by returning false"),
		kong.UsageOnError(),
		kong.Vars{"version": version},
		// Load configuration from JSON/YAML/TOML in priority order; flags/env override config values.
		kong.Configuration(kong.JSON, candidates.JSON...),
		kong.Configuration(kongyaml.Loader, candidates.YAML...),
		kong.Configuration(kongtoml.Loader, candidates.TOML...),
	)

	logger, closeFiles, err := log.SetupLogger(cli.Log.Level, cli.Log.File, log.Format(cli.Log.Format))
	if err != nil {
		_, _ = os.Stderr.WriteString("failed to setup logger: " + err.Error() + "\n")
		os.Exit(2)
	}
	defer func() {
		for _, c := range closeFiles {
			_ = c.Close()
		}
	}()

	var writeLogger log.WriteLogger
	if cli.Log.WriteFile != "" {
		f, err := os.OpenFile(cli.Log.WriteFile, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
		if err != nil {
			logger.Error("failed to open write log file", "file", cli.Log.WriteFile, "error", err)
			writeLogger = log.NewWrite(nil)
		} else {
			writeLogger = log.NewWrite(f)
			closeFiles = append(closeFiles, f)
		}
	} else if cli.Log.Level == "trace" {
		writeLogger = log.NewWrite(os.Stdout)
	} else {
		writeLogger = log.NewWrite(nil)
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctx.Bind(logger)
	ctx.BindTo(writeLogger, (*log.WriteLogger)(nil))
	ctx.BindTo(runCtx, (*context.Context)(nil))

	err = ctx.Run()
	ctx.FatalIfErrorf(err)
}

func findUserConfig(args []string) string {
	for i := 0; i < len(args); i++ {
		a := args[i]
		if strings.HasPrefix(a, "--config=") {
			return a[len("--config="):]
		}
		if a == "--config" && i+1 < len(args) {
			return args[i+1]
		}
	}
	if v := os.Getenv("SAFEGEN_CONFIG"); v != "" {
		return v
	}
	return ""
}
