package scanner

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	toml "github.com/pelletier/go-toml"
	yaml "gopkg.in/yaml.v3"
)

// nameListDocument is the keyed form of a name list ("functions: [...]").
type nameListDocument struct {
	Functions []string `json:"functions" yaml:"functions" toml:"functions"`
}

// LoadNameList reads an exclusion or special-case list. The format follows the
// file extension: YAML, JSON, TOML, a PHP "return [...]" file, or plain text
// with one name per line.
func LoadNameList(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read name list: %w", err)
	}
	names, err := ParseNameList(data, formatOf(path))
	if err != nil {
		return nil, fmt.Errorf("name list %s: %w", path, err)
	}
	return names, nil
}

// ParseNameList decodes a name list in the given format.
// Blank entries are dropped; order is preserved.
func ParseNameList(data []byte, format string) ([]string, error) {
	var (
		names []string
		err   error
	)
	switch format {
	case "yaml":
		names, err = parseYAMLList(data)
	case "json":
		names, err = parseJSONList(data)
	case "toml":
		var doc nameListDocument
		if err = toml.Unmarshal(data, &doc); err == nil {
			names = doc.Functions
		}
	case "php":
		names, err = ParsePHPList(data)
	case "text":
		names, err = parseTextList(data)
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", format, err)
	}
	return compact(names), nil
}

func parseYAMLList(data []byte) ([]string, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	if len(root.Content) == 0 {
		return nil, nil
	}
	doc := root.Content[0]
	switch doc.Kind {
	case yaml.SequenceNode:
		var names []string
		err := doc.Decode(&names)
		return names, err
	case yaml.MappingNode:
		var keyed nameListDocument
		err := doc.Decode(&keyed)
		return keyed.Functions, err
	default:
		return nil, fmt.Errorf("expected a sequence or a mapping with a functions key")
	}
}

func parseJSONList(data []byte) ([]string, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil
	}
	if trimmed[0] == '[' {
		var names []string
		err := json.Unmarshal(trimmed, &names)
		return names, err
	}
	var keyed nameListDocument
	err := json.Unmarshal(trimmed, &keyed)
	return keyed.Functions, err
}

func parseTextList(data []byte) ([]string, error) {
	var names []string
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := sc.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		names = append(names, strings.TrimSpace(line))
	}
	return names, sc.Err()
}

func compact(names []string) []string {
	out := names[:0]
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			out = append(out, n)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
