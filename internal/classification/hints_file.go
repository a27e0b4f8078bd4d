package classification

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/wegnite/dreisatz-rechner-org-sub000/internal/common"
	"github.com/wegnite/dreisatz-rechner-org-sub000/internal/model"
)

// HintsFile is the on-disk format for additional hints.
type HintsFile struct {
	Hints []Hint `yaml:"hints"`
}

// LoadHintsFile reads and validates a YAML hints file.
func LoadHintsFile(path string) ([]Hint, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from configuration
	if err != nil {
		return nil, fmt.Errorf("failed to read hints file: %w", err)
	}
	return ParseHints(data)
}

// ParseHints decodes YAML hint definitions. Every hint needs a name and a
// pattern; a missing type means antiproportional.
func ParseHints(data []byte) ([]Hint, error) {
	var file HintsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: hints file: %w", common.ErrInvalidConfig, err)
	}

	for i, h := range file.Hints {
		if h.Name == "" {
			return nil, fmt.Errorf("%w: hint %d has no name", common.ErrInvalidConfig, i)
		}
		if h.Pattern == "" {
			return nil, fmt.Errorf("%w: hint %s has no pattern", common.ErrInvalidConfig, h.Name)
		}
		if h.Type == "" {
			file.Hints[i].Type = model.Antiproportional
		} else if !h.Type.Valid() {
			return nil, fmt.Errorf("%w: hint %s has unknown type %q", common.ErrInvalidConfig, h.Name, h.Type)
		}
	}

	return file.Hints, nil
}

// MergeHints appends extra hints to base. An extra hint with the same name as
// a base hint replaces it.
func MergeHints(base, extra []Hint) []Hint {
	byName := make(map[string]int, len(extra))
	for i, h := range extra {
		byName[h.Name] = i
	}

	merged := make([]Hint, 0, len(base)+len(extra))
	for _, h := range base {
		if _, replaced := byName[h.Name]; replaced {
			continue
		}
		merged = append(merged, h)
	}
	return append(merged, extra...)
}
