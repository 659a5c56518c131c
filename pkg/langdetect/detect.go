// Package langdetect infers a fence language tag for untagged code blocks.
// It combines cheap structural heuristics with the go-enry classifier and
// returns lowercase tags suitable for a language-<tag> class.
package langdetect

import (
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Fallback is returned when no language can be inferred with confidence.
const Fallback = "text"

// classifierCandidates bounds the enry classifier to languages that
// actually show up in assistant output.
//
//nolint:gochecknoglobals // Immutable candidate set
var classifierCandidates = []string{
	"Go", "Python", "JavaScript", "TypeScript", "Shell", "Ruby",
	"Rust", "Java", "C", "C++", "SQL", "JSON", "YAML", "HTML",
	"CSS", "Dockerfile", "Markdown",
}

// Detect returns a lowercase fence tag for the given code, or Fallback
// when detection is not confident. It never fails; arbitrary input maps
// to some tag.
func Detect(code string) string {
	if strings.TrimSpace(code) == "" {
		return Fallback
	}

	// A shebang names its interpreter outright.
	if lang, safe := enry.GetLanguageByShebang([]byte(code)); safe {
		return toTag(lang)
	}

	if tag := detectByStructure(code); tag != "" {
		return tag
	}

	// Classifier result is used only when enry reports it as safe.
	if lang, safe := enry.GetLanguageByClassifier([]byte(code), classifierCandidates); safe && lang != "" {
		return toTag(lang)
	}

	return Fallback
}

// detectByStructure checks for markers so strongly tied to one language
// that running the classifier would only add noise.
func detectByStructure(code string) string {
	trimmed := strings.TrimSpace(code)

	switch {
	case strings.HasPrefix(trimmed, "package "):
		return "go"
	case strings.Contains(code, "def ") && strings.Contains(code, "):"),
		strings.Contains(code, "__main__"):
		return "python"
	case strings.Contains(code, "fn main()"), strings.Contains(code, "println!"):
		return "rust"
	case strings.HasPrefix(trimmed, "FROM ") && strings.Contains(code, "RUN "):
		return "dockerfile"
	case looksLikeHTML(trimmed):
		return "html"
	case looksLikeJSON(trimmed):
		return "json"
	case looksLikeSQL(trimmed):
		return "sql"
	case looksLikeYAML(code):
		return "yaml"
	case strings.Contains(code, "=>") || strings.Contains(code, "console.log"):
		return "javascript"
	}
	return ""
}

func looksLikeHTML(trimmed string) bool {
	lower := strings.ToLower(trimmed)
	return strings.HasPrefix(lower, "<!doctype html") ||
		strings.HasPrefix(lower, "<html") ||
		strings.Contains(lower, "<body>")
}

func looksLikeJSON(trimmed string) bool {
	if !strings.HasPrefix(trimmed, "{") && !strings.HasPrefix(trimmed, "[") {
		return false
	}
	return strings.Contains(trimmed, `"`)
}

func looksLikeSQL(trimmed string) bool {
	upper := strings.ToUpper(trimmed)
	for _, kw := range []string{"SELECT ", "INSERT ", "UPDATE ", "DELETE ", "CREATE TABLE"} {
		if strings.HasPrefix(upper, kw) {
			return true
		}
	}
	return false
}

// looksLikeYAML counts top-level "key: value" lines; two or more without
// code-ish punctuation is treated as YAML.
func looksLikeYAML(code string) bool {
	keyLines := 0
	for _, line := range strings.Split(code, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.Contains(line, ": ") &&
			!strings.ContainsAny(line, "({") && !strings.HasPrefix(line, `"`) {
			keyLines++
		}
	}
	return keyLines >= 2
}

// toTag maps enry language names onto fence tags.
func toTag(lang string) string {
	switch lang {
	case "Shell":
		return "bash"
	case "C++":
		return "cpp"
	default:
		return strings.ToLower(lang)
	}
}
