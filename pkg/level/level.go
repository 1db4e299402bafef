// Package level loads the YAML description of a navigable map.
package level

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the level file looked up inside a project directory.
const FileName = "level.yaml"

// Load reads a level from a YAML file.
func Load(path string) (*Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading level file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a level from YAML bytes.
func Parse(data []byte) (*Level, error) {
	var l Level
	if err := yaml.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("parsing level YAML: %w", err)
	}
	return &l, nil
}

// LoadProject loads a level from a project directory.
// It looks for level.yaml in the given directory.
func LoadProject(projectDir string) (*Level, error) {
	return Load(filepath.Join(projectDir, FileName))
}
