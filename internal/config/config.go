// Package config defines the resolved configuration consumed by the execution
// engine and the TOML loader that produces it. Merging happens once at load
// time: the engine only ever sees a fully resolved Config.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/zolinthecow/doctests/internal/apperror"
	"github.com/zolinthecow/doctests/internal/runner"
)

// Policy controls what happens to a block whose language has no runner.
type Policy string

const (
	PolicySkip Policy = "skip"
	PolicyFail Policy = "fail"
)

// DefaultTimeout applies when the config file sets none. The timeout is a
// single global value; blocks cannot override it.
const DefaultTimeout = 30 * time.Second

// Config is the resolved configuration. Root and TempRoot are filled in by
// the caller (the CLI), not the config file: Root is wherever the documents
// live, TempRoot is a fresh directory per run.
type Config struct {
	Timeout         time.Duration
	UnknownLanguage Policy
	Runners         runner.Registry
	Env             map[string]string
	Setup           string
	Teardown        string
	Root            string
	TempRoot        string

	// Docs are the glob patterns used to discover documents.
	Docs []string
	// History is an optional SQLite database path; empty disables the
	// run-history store.
	History string
}

// fileConfig is the TOML schema of doctests.toml.
type fileConfig struct {
	Timeout         string                `toml:"timeout"`
	UnknownLanguage string                `toml:"unknown_language"`
	Setup           string                `toml:"setup"`
	Teardown        string                `toml:"teardown"`
	Docs            []string              `toml:"docs"`
	History         string                `toml:"history"`
	Env             map[string]string     `toml:"env"`
	Runners         map[string]fileRunner `toml:"runners"`
}

type fileRunner struct {
	Command string `toml:"command"`
	Ext     string `toml:"ext"`
}

// Default returns the configuration used when no file is present: built-in
// runner table, 30s timeout, skip unknown languages, scan every markdown file.
func Default() Config {
	return Config{
		Timeout:         DefaultTimeout,
		UnknownLanguage: PolicySkip,
		Runners:         runner.Defaults(),
		Env:             map[string]string{},
		Docs:            []string{"**/*.md"},
	}
}

// Load reads a TOML config file and merges it over Default. A missing file
// maps to apperror.ErrNotFound; a file that parses but carries invalid values
// maps to apperror.ErrValidation.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Config{}, apperror.NotFound("config file", path)
		}
		return Config{}, fmt.Errorf("config: reading %s: %w", path, err)
	}

	var fc fileConfig
	if err := toml.Unmarshal(data, &fc); err != nil {
		return Config{}, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	return resolve(fc)
}

// resolve merges a parsed file config over the defaults. It is a pure
// function: the same input always produces the same Config, and no package
// state is touched.
func resolve(fc fileConfig) (Config, error) {
	cfg := Default()

	if fc.Timeout != "" {
		d, err := time.ParseDuration(fc.Timeout)
		if err != nil {
			return Config{}, apperror.ValidationFailed("timeout",
				fmt.Sprintf("invalid timeout %q: %v", fc.Timeout, err))
		}
		if d <= 0 {
			return Config{}, apperror.ValidationFailed("timeout", "timeout must be positive")
		}
		cfg.Timeout = d
	}

	switch Policy(fc.UnknownLanguage) {
	case "":
		// keep default
	case PolicySkip, PolicyFail:
		cfg.UnknownLanguage = Policy(fc.UnknownLanguage)
	default:
		return Config{}, apperror.ValidationFailed("unknown_language",
			fmt.Sprintf("unknown_language must be %q or %q, got %q", PolicySkip, PolicyFail, fc.UnknownLanguage))
	}

	cfg.Setup = fc.Setup
	cfg.Teardown = fc.Teardown
	cfg.History = fc.History
	if len(fc.Docs) > 0 {
		cfg.Docs = fc.Docs
	}
	for k, v := range fc.Env {
		cfg.Env[k] = v
	}

	if len(fc.Runners) > 0 {
		overrides := make(runner.Registry, len(fc.Runners))
		for lang, fr := range fc.Runners {
			if fr.Command == "" {
				return Config{}, apperror.ValidationFailed("runners",
					fmt.Sprintf("runner for %q has no command", lang))
			}
			overrides[lang] = runner.Runner{Command: fr.Command, Ext: fr.Ext}
		}
		cfg.Runners = runner.Merge(cfg.Runners, overrides)
	}

	return cfg, nil
}
