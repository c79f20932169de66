package scanner

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml"
	yaml "gopkg.in/yaml.v3"

	"github.com/Alia5/safegen/internal/codegen/meta"
)

// tableDocument is the on-disk shape of a metadata table.
type tableDocument struct {
	Functions []meta.FunctionSpec `json:"functions" yaml:"functions" toml:"functions"`
}

// TableResult is a loaded table plus the records that were dropped because
// they do not return a failure sentinel.
type TableResult struct {
	Table   *meta.Table
	Skipped []string
}

// LoadTable reads a metadata table from a YAML, JSON or TOML file.
func LoadTable(path string) (*TableResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read metadata table: %w", err)
	}
	res, err := ParseTable(data, formatOf(path))
	if err != nil {
		return nil, fmt.Errorf("metadata table %s: %w", path, err)
	}
	return res, nil
}

// ParseTable decodes a metadata table in the given format ("yaml", "json", "toml").
func ParseTable(data []byte, format string) (*TableResult, error) {
	var doc tableDocument
	if err := decode(data, format, &doc); err != nil {
		return nil, err
	}

	var (
		specs   []meta.FunctionSpec
		skipped []string
	)
	for _, s := range doc.Functions {
		if _, ok := s.EffectiveSentinel(); !ok {
			skipped = append(skipped, s.Name)
			continue
		}
		specs = append(specs, s)
	}

	table, err := meta.NewTable(specs)
	if err != nil {
		return nil, err
	}
	return &TableResult{Table: table, Skipped: skipped}, nil
}

func decode(data []byte, format string, v any) error {
	var err error
	switch format {
	case "yaml":
		err = yaml.Unmarshal(data, v)
	case "json":
		err = json.Unmarshal(data, v)
	case "toml":
		err = toml.Unmarshal(data, v)
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
	if err != nil {
		return fmt.Errorf("parse %s: %w", format, err)
	}
	return nil
}

// formatOf maps a file extension to a decoder name.
// Unknown extensions are reported as "text".
func formatOf(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml"
	case ".json":
		return "json"
	case ".toml":
		return "toml"
	case ".php":
		return "php"
	default:
		return "text"
	}
}
