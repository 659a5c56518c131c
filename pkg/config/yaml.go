package config

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// FromYAML parses data over a base configuration, so absent keys keep the
// base value rather than zeroing it.
func FromYAML(data []byte, base Config) (Config, error) {
	cfg := base
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// ToYAML serializes the configuration with two-space indentation.
func (c Config) ToYAML() ([]byte, error) {
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("close encoder: %w", err)
	}
	return buf.Bytes(), nil
}

// Template is the commented starter file written by `richtext init`.
const Template = `# richtext configuration.
# All keys are optional; shown values are the defaults.

# Wrap rendered fragments in a standalone HTML page.
full_page: false

# Infer a language tag for untagged code fences.
detect_language: false

# Page title for full-page output.
title: "Rendered transcript"

# Terminal color: auto, always, never.
color: auto

# Log level: debug, info, warn, error.
log_level: info
`
