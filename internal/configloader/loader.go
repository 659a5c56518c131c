// Package configloader resolves the effective CLI configuration from
// defaults, a discovered or explicit config file, and environment
// variables, in that order of increasing precedence. Command-line flags
// are applied on top by the CLI layer.
package configloader

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/yaklabco/richtext/pkg/config"
)

// FileName is the discovered config file name.
const FileName = ".richtext.yaml"

// EnvPrefix prefixes every recognized environment variable.
const EnvPrefix = "RICHTEXT_"

// Options control where Load looks for configuration.
type Options struct {
	// WorkingDir is searched for FileName. Empty means skip.
	WorkingDir string

	// ExplicitPath, when set, names the config file directly; a missing
	// or unreadable file is then an error rather than a fallthrough.
	ExplicitPath string

	// Environ is the process environment as os.Environ lookups; nil
	// means os.LookupEnv. Tests inject their own.
	Environ func(key string) (string, bool)
}

// Result is the loaded configuration plus provenance for debug logging.
type Result struct {
	Config     config.Config
	LoadedFrom string // config file path, empty when none was read
}

// Load resolves configuration per the precedence above and validates the
// final result.
func Load(opts Options) (Result, error) {
	lookup := opts.Environ
	if lookup == nil {
		lookup = os.LookupEnv
	}

	res := Result{Config: config.Default()}

	path, required, err := resolvePath(opts)
	if err != nil {
		return Result{}, err
	}
	if path != "" {
		data, err := os.ReadFile(path) //nolint:gosec // Path comes from the user's own flags or home
		switch {
		case err == nil:
			cfg, err := config.FromYAML(data, res.Config)
			if err != nil {
				return Result{}, fmt.Errorf("config file %s: %w", path, err)
			}
			res.Config = cfg
			res.LoadedFrom = path
		case required:
			return Result{}, fmt.Errorf("read config file: %w", err)
		}
	}

	if err := applyEnv(&res.Config, lookup); err != nil {
		return Result{}, err
	}

	if err := res.Config.Validate(); err != nil {
		return Result{}, err
	}
	return res, nil
}

// resolvePath picks the config file to try: the explicit path (required),
// else the first FileName found in the working directory or home.
func resolvePath(opts Options) (path string, required bool, err error) {
	if opts.ExplicitPath != "" {
		return opts.ExplicitPath, true, nil
	}
	if opts.WorkingDir != "" {
		candidate := filepath.Join(opts.WorkingDir, FileName)
		if fileExists(candidate) {
			return candidate, false, nil
		}
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// No home directory is not an error; there is just no file.
		return "", false, nil
	}
	candidate := filepath.Join(home, FileName)
	if fileExists(candidate) {
		return candidate, false, nil
	}
	return "", false, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// applyEnv overlays RICHTEXT_* variables onto cfg.
func applyEnv(cfg *config.Config, lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvPrefix + "FULL_PAGE"); ok {
		b, err := parseBool("FULL_PAGE", v)
		if err != nil {
			return err
		}
		cfg.FullPage = b
	}
	if v, ok := lookup(EnvPrefix + "DETECT_LANGUAGE"); ok {
		b, err := parseBool("DETECT_LANGUAGE", v)
		if err != nil {
			return err
		}
		cfg.DetectLanguage = b
	}
	if v, ok := lookup(EnvPrefix + "TITLE"); ok {
		cfg.Title = v
	}
	if v, ok := lookup(EnvPrefix + "COLOR"); ok {
		cfg.Color = v
	}
	if v, ok := lookup(EnvPrefix + "LOG_LEVEL"); ok {
		cfg.LogLevel = v
	}
	return nil
}

func parseBool(name, value string) (bool, error) {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, errors.Join(
			fmt.Errorf("invalid boolean for %s%s: %q", EnvPrefix, name, value), err)
	}
	return b, nil
}
