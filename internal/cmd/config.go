package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/Alia5/safegen/internal/configpaths"

	toml "github.com/pelletier/go-toml"
	yaml "gopkg.in/yaml.v3"
)

// ConfigCommand groups config-related subcommands.
type ConfigCommand struct {
	Init ConfigInit `cmd:"" help:"Generate a configuration template"`
}

// ConfigInit scaffolds a configuration file for a specific command.
type ConfigInit struct {
	Command string `arg:"" name:"command" help:"Command to generate config for" enum:"generate,watch" default:"generate"`
	Format  string `help:"Output format" enum:"json,yaml,toml" default:"yaml"`
	Output  string `help:"Destination file path. Default resolves to ./safegen.<format>"`
	Global  bool   `help:"Write to the per-user configuration directory instead of the working directory"`
	Force   bool   `help:"Overwrite if the file already exists"`
}

// Run generates a configuration template dynamically via reflection of the command structs and tags.
func (c *ConfigInit) Run() error {
	format := normalizeFormat(c.Format)
	if format == "" {
		return fmt.Errorf("unsupported format: %s", c.Format)
	}

	var root map[string]any
	switch c.Command {
	case "generate", "":
		root = configTemplate(reflect.TypeFor[Generate]())
	case "watch":
		root = configTemplate(reflect.TypeFor[Watch]())
	default:
		return errors.New("unknown command; expected 'generate' or 'watch'")
	}

	dest, err := c.destination(format)
	if err != nil {
		return err
	}

	if !c.Force {
		if _, err := os.Stat(dest); err == nil {
			return errors.New("destination exists; use --force to overwrite")
		}
	}
	if err := configpaths.EnsureDir(dest); err != nil {
		return err
	}

	var data []byte
	switch format {
	case "json":
		data, err = json.MarshalIndent(root, "", "  ")
	case "yaml":
		data, err = yaml.Marshal(root)
	case "toml":
		data, err = toml.Marshal(root)
	}
	if err != nil {
		return err
	}
	if err := os.WriteFile(dest, data, 0o644); err != nil {
		return err
	}
	return nil
}

func (c *ConfigInit) destination(format string) (string, error) {
	switch {
	case c.Output != "":
		return c.Output, nil
	case c.Global:
		return configpaths.GlobalPath(format)
	}
	return configpaths.LocalPath(format), nil
}

func normalizeFormat(f string) string {
	switch strings.ToLower(f) {
	case "json":
		return "json"
	case "yaml", "yml":
		return "yaml"
	case "toml":
		return "toml"
	default:
		return ""
	}
}

// configKey returns the key kong's resolvers look up for a flag: the flag
// name in snake case ("FunctionsList" -> "functions_list").
func configKey(f reflect.StructField) string {
	if name := f.Tag.Get("name"); name != "" {
		return strings.ReplaceAll(name, "-", "_")
	}
	r := []rune(f.Name)
	var b strings.Builder
	for i, c := range r {
		if unicode.IsUpper(c) {
			if i > 0 && (unicode.IsLower(r[i-1]) || (i+1 < len(r) && unicode.IsLower(r[i+1]))) {
				b.WriteByte('_')
			}
			c = unicode.ToLower(c)
		}
		b.WriteRune(c)
	}
	return b.String()
}

// configEntry is one flag of a command as it appears in a configuration file.
type configEntry struct {
	path  []string // nested keys, e.g. ["log", "level"]
	value any
}

// configTemplate lists every flag of a command struct with its default,
// nested the way kong's configuration resolvers look them up.
func configTemplate(t reflect.Type) map[string]any {
	root := map[string]any{}
	for _, e := range configEntries(t, nil) {
		m := root
		for _, k := range e.path[:len(e.path)-1] {
			sub, ok := m[k].(map[string]any)
			if !ok {
				sub = map[string]any{}
				m[k] = sub
			}
			m = sub
		}
		m[e.path[len(e.path)-1]] = e.value
	}
	return root
}

// configEntries walks t like kong does. Positional arguments, subcommands and
// hidden fields have no place in a configuration file and are skipped.
func configEntries(t reflect.Type, prefix []string) []configEntry {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	var out []configEntry
	for i := range t.NumField() {
		f := t.Field(i)
		switch {
		case !f.IsExported(), f.Tag.Get("kong") == "-", hasTag(f, "cmd"), hasTag(f, "arg"):
			continue
		case hasTag(f, "embed"):
			out = append(out, configEntries(f.Type, appendPrefix(prefix, f.Tag.Get("prefix")))...)
			continue
		}
		path := append(slices.Clone(prefix), configKey(f))
		out = append(out, configEntry{path: path, value: flagDefault(f)})
	}
	return out
}

func hasTag(f reflect.StructField, key string) bool {
	_, ok := f.Tag.Lookup(key)
	return ok
}

// appendPrefix adds the segments of a kong prefix ("log.") to path.
func appendPrefix(path []string, prefix string) []string {
	out := slices.Clone(path)
	for _, seg := range strings.Split(prefix, ".") {
		if seg != "" {
			out = append(out, seg)
		}
	}
	return out
}

// flagDefault converts f's default tag to the value a configuration file
// carries for it. Unparsable defaults become the zero value.
func flagDefault(f reflect.StructField) any {
	def := f.Tag.Get("default")
	t := f.Type
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == reflect.TypeFor[time.Duration]() {
		if def == "" {
			return "0s"
		}
		return def
	}
	switch t.Kind() {
	case reflect.Bool:
		b, _ := strconv.ParseBool(def)
		return b
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, _ := strconv.ParseInt(def, 0, 64)
		return n
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, _ := strconv.ParseUint(def, 0, 64)
		return n
	case reflect.Float32, reflect.Float64:
		x, _ := strconv.ParseFloat(def, 64)
		return x
	case reflect.Slice:
		if def == "" {
			return []string{}
		}
		return strings.Split(def, ",")
	}
	return def
}
