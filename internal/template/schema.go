// Package template reads project template files: an ordered list of tasks
// where each task may name the subject of the task it waits on.
package template

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Schema is the top-level YAML template structure.
type Schema struct {
	Name        string       `yaml:"name"`
	Description string       `yaml:"description,omitempty"`
	Tasks       []TaskConfig `yaml:"tasks"`
}

type TaskConfig struct {
	Subject     string            `yaml:"subject"`
	Description string            `yaml:"description,omitempty"`
	Previous    string            `yaml:"previous,omitempty"` // subject of the predecessor
	Checklist   []ChecklistConfig `yaml:"checklist,omitempty"`
}

type ChecklistConfig struct {
	Item    string `yaml:"item"`
	Comment string `yaml:"comment,omitempty"`
}

// LoadSchema reads and parses the template file at path.
func LoadSchema(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseSchema(data)
}

// ParseSchema decodes a template document. Unknown keys are rejected.
func ParseSchema(data []byte) (*Schema, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var schema Schema
	if err := dec.Decode(&schema); err != nil {
		return nil, fmt.Errorf("parsing template: %w", err)
	}
	return &schema, nil
}

// TaskBySubject indexes the schema's tasks by subject.
func (s *Schema) TaskBySubject() map[string]TaskConfig {
	out := make(map[string]TaskConfig, len(s.Tasks))
	for _, t := range s.Tasks {
		out[t.Subject] = t
	}
	return out
}
