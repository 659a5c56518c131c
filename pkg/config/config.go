// Package config defines the richtext CLI configuration and its YAML form.
package config

import "fmt"

// Config holds all CLI-configurable settings. The zero value is not valid;
// use Default.
type Config struct {
	// FullPage wraps the rendered fragment in a standalone HTML page.
	FullPage bool `yaml:"full_page"`

	// DetectLanguage infers a language tag for untagged code fences.
	DetectLanguage bool `yaml:"detect_language"`

	// Title is the page title used in full-page output.
	Title string `yaml:"title"`

	// Color controls terminal output: auto, always, never.
	Color string `yaml:"color"`

	// LogLevel is the stderr log level: debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
}

// Default returns the configuration used when no file, environment, or
// flag overrides anything.
func Default() Config {
	return Config{
		FullPage:       false,
		DetectLanguage: false,
		Title:          "Rendered transcript",
		Color:          "auto",
		LogLevel:       "info",
	}
}

// Validate checks enum-valued fields.
func (c Config) Validate() error {
	switch c.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("invalid color mode %q (want auto, always, or never)", c.Color)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("invalid log level %q (want debug, info, warn, or error)", c.LogLevel)
	}
	return nil
}
