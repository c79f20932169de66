package meta

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// UnmarshalYAML accepts "default: null" (or "~") as an optional parameter
// defaulting to null; yaml.v3 otherwise decodes it as an absent default.
func (p *ParameterSpec) UnmarshalYAML(node *yaml.Node) error {
	type plain ParameterSpec
	var v plain
	if err := node.Decode(&v); err != nil {
		return err
	}
	if node.Kind == yaml.MappingNode {
		for i := 0; i+1 < len(node.Content); i += 2 {
			key, val := node.Content[i], node.Content[i+1]
			if key.Value == "default" && val.ShortTag() == "!!null" {
				v.Optional = true
				v.Default = ""
			}
		}
	}
	*p = ParameterSpec(v)
	return nil
}

// UnmarshalJSON accepts a null, string, number or boolean default.
func (p *ParameterSpec) UnmarshalJSON(data []byte) error {
	type plain ParameterSpec
	var v struct {
		plain
		Default json.RawMessage `json:"default"`
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*p = ParameterSpec(v.plain)

	raw := bytes.TrimSpace(v.Default)
	switch {
	case len(raw) == 0:
	case bytes.Equal(raw, []byte("null")):
		p.Optional = true
		p.Default = ""
	case raw[0] == '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return fmt.Errorf("parameter %s default: %w", p.Name, err)
		}
		p.Default = s
	default:
		p.Default = string(raw)
	}
	return nil
}
