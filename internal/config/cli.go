// Package config defines the safegen command line.
package config

import (
	"github.com/alecthomas/kong"

	"github.com/Alia5/safegen/internal/cmd"
)

// Log configures logging for every command.
type Log struct {
	Level     string `help:"Log level: trace, debug, info, warn, error" default:"info" enum:"trace,debug,info,warn,error" env:"SAFEGEN_LOG_LEVEL"`
	File      string `help:"Write logs to this file instead of the console" env:"SAFEGEN_LOG_FILE"`
	Format    string `help:"Console log format: auto, text or json" default:"auto" enum:"auto,text,json" env:"SAFEGEN_LOG_FORMAT"`
	WriteFile string `help:"Record every generated file with its size and BLAKE2b digest" env:"SAFEGEN_LOG_WRITE_FILE"`
}

// CLI is the root command.
type CLI struct {
	Config  string           `help:"Configuration file (json, yaml or toml)" env:"SAFEGEN_CONFIG" placeholder:"PATH"`
	Version kong.VersionFlag `help:"Print version and exit"`
	Log     Log              `embed:"" prefix:"log."`

	Generate cmd.Generate      `cmd:"" default:"withargs" help:"Generate the Safe wrapper library"`
	Check    cmd.Check         `cmd:"" help:"Fail when generated files differ from a fresh run"`
	List     cmd.List          `cmd:"" help:"Print the eligible function names"`
	Watch    cmd.Watch         `cmd:"" help:"Regenerate whenever an input file changes"`
	Cfg      cmd.ConfigCommand `cmd:"" name:"config" help:"Configuration helpers"`
}
