package pattern

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// File is the on-disk layout of a pattern table.
//
//	patterns:
//	  order_id: '^ORD-\d{8}$'
//	  order_ref: '<order_id>|<transaction_id>'
type File struct {
	Patterns map[string]string `yaml:"patterns" json:"patterns"`
}

// Load reads a YAML or JSON pattern file and layers it over base.
// Every entry must compile once expanded against the merged registry.
func Load(path string, base *Registry) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read patterns file: %w", err)
	}

	var f File
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		if err := json.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	} else {
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	}

	merged := base.Merge(f.Patterns)
	for name := range f.Patterns {
		if _, err := merged.Pattern(name); err != nil {
			return nil, fmt.Errorf("pattern %s: %w", name, err)
		}
	}
	return merged, nil
}
