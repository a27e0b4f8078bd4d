// Package batch solves many questions concurrently and reports the outcomes.
package batch

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/wegnite/dreisatz-rechner-org-sub000/internal/model"
)

// Item is one question of a batch.
type Item struct {
	Question string       `yaml:"question"`
	Locale   model.Locale `yaml:"locale,omitempty"`
}

type itemsFile struct {
	Items []Item `yaml:"items"`
}

// LoadItems reads a batch file. Files ending in .yaml or .yml hold either a
// list of items or an object with an items key; any other file holds one
// question per line, with blank lines and lines starting with # ignored.
func LoadItems(path string) ([]Item, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is given by the user
	if err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(data)
	default:
		return ParseLines(bytes.NewReader(data))
	}
}

// ParseYAML decodes batch items from YAML.
func ParseYAML(data []byte) ([]Item, error) {
	var items []Item
	if err := yaml.Unmarshal(data, &items); err != nil {
		var file itemsFile
		if fileErr := yaml.Unmarshal(data, &file); fileErr != nil {
			return nil, fmt.Errorf("failed to parse batch file: %w", err)
		}
		items = file.Items
	}

	out := items[:0]
	for _, item := range items {
		item.Question = strings.TrimSpace(item.Question)
		if item.Question == "" {
			continue
		}
		out = append(out, item)
	}
	return out, nil
}

// ParseLines reads one question per line.
func ParseLines(r io.Reader) ([]Item, error) {
	var items []Item

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		items = append(items, Item{Question: line})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read questions: %w", err)
	}
	return items, nil
}
