// Package configpaths locates safegen configuration files.
package configpaths

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// AppName is the directory and file base name used for configuration.
const AppName = "safegen"

// globalBase is the file base name inside configuration directories.
const globalBase = "config"

var extensions = []string{".json", ".yaml", ".yml", ".toml"}

// Candidates are configuration files in lookup order, split by the kong
// loader that reads them.
type Candidates struct {
	JSON []string
	YAML []string
	TOML []string
}

// Add routes path to a loader by extension. Unknown extensions are read as JSON.
func (c *Candidates) Add(path string) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		c.YAML = append(c.YAML, path)
	case ".toml":
		c.TOML = append(c.TOML, path)
	default:
		c.JSON = append(c.JSON, path)
	}
}

// location is a directory and the base names tried in it.
type location struct {
	dir   string
	bases []string
}

func searchLocations() []location {
	var locs []location
	if wd, err := os.Getwd(); err == nil {
		locs = append(locs, location{wd, []string{AppName, "." + AppName}})
	}
	if dir, err := ConfigDir(); err == nil {
		locs = append(locs, location{dir, []string{globalBase}})
	}
	if runtime.GOOS != "windows" {
		locs = append(locs, location{filepath.Join("/etc", AppName), []string{globalBase}})
	}
	return locs
}

// Lookup returns every file safegen reads configuration from. userPath, when
// set, comes first; then the working directory, the per-user configuration
// directory and /etc/safegen.
func Lookup(userPath string) Candidates {
	var c Candidates
	if userPath != "" {
		c.Add(userPath)
	}
	for _, loc := range searchLocations() {
		for _, base := range loc.bases {
			for _, ext := range extensions {
				c.Add(filepath.Join(loc.dir, base+ext))
			}
		}
	}
	return c
}

// ConfigDir returns the per-user configuration directory for safegen.
func ConfigDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate user config dir: %w", err)
	}
	return filepath.Join(dir, AppName), nil
}

// GlobalPath returns the per-user configuration file for format.
func GlobalPath(format string) (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, globalBase+"."+Ext(format)), nil
}

// LocalPath returns the configuration file name used in the working directory.
func LocalPath(format string) string {
	return AppName + "." + Ext(format)
}

// Ext returns the file extension for a config format, "json" for unknown formats.
func Ext(format string) string {
	switch format {
	case "yaml", "yml":
		return "yaml"
	case "toml":
		return "toml"
	default:
		return "json"
	}
}

// EnsureDir creates the parent directory of path.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
