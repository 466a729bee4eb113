package model

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads and parses a model description from a YAML file at path.
// Parse errors are wrapped, not returned raw, so the CLI can print a
// single coherent message.
func Load(path string) (Description, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Description{}, fmt.Errorf("reading model description: %w", err)
	}
	var desc Description
	if err := yaml.Unmarshal(data, &desc); err != nil {
		return Description{}, fmt.Errorf("parsing model description: %w", err)
	}
	return desc, nil
}

// LoadAndCompile is the one-call path the CLI uses: read YAML, then
// validate/compile into a ready-to-run kernel.
func LoadAndCompile(path string) (*CompileResult, error) {
	desc, err := Load(path)
	if err != nil {
		return nil, err
	}
	return Compile(desc)
}
