package assertion

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ParseAssertionString parses a compact assertion string of the
// form "type:value" into its components. If no colon is present
// the entire string is the type and value is nil.
//
//	"includes:foo" -> ("includes", "foo")
//	"empty"        -> ("empty", nil)
func ParseAssertionString(
	s string,
) (assertionType string, value any) {
	parts := strings.SplitN(s, ":", 2)
	assertionType = parts[0]

	if len(parts) > 1 {
		value = parts[1]
	}

	return
}

// LoadDefinitions decodes a YAML document with a top-level
// "assertions" list. Entries may use the compact "check" form
// understood by ParseAssertionString instead of type and value.
func LoadDefinitions(data []byte) ([]Definition, error) {
	var raw struct {
		Assertions []struct {
			Definition `yaml:",inline"`
			Check      string `yaml:"check"`
		} `yaml:"assertions"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse assertions: %w", err)
	}

	defs := make([]Definition, 0, len(raw.Assertions))
	for i, entry := range raw.Assertions {
		def := entry.Definition
		if entry.Check != "" {
			def.Type, def.Value = ParseAssertionString(entry.Check)
		}
		if def.Type == "" {
			return nil, fmt.Errorf("assertion %d has no type", i)
		}
		defs = append(defs, def)
	}
	return defs, nil
}

// LoadDefinitionsFile reads LoadDefinitions input from path.
func LoadDefinitionsFile(path string) ([]Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf(
			"failed to read assertions file %s: %w", path, err,
		)
	}
	return LoadDefinitions(data)
}
