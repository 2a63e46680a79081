// Package config loads the pipeline's lint/diagnostic toggles from a TOML
// file (spec.md's Open Question on configurable warnings), using the same
// library the teacher reaches for its own configuration.
package config

import (
	"os"

	"github.com/BurntSushi/toml"

	"nominalc/internal/env"
)

// Config is the on-disk shape of a nominalc.toml file.
type Config struct {
	Lint LintConfig `toml:"lint"`
}

// LintConfig toggles advisory warnings; ToEnvLint carries the warning
// toggles into env.Lint for attribution.
type LintConfig struct {
	RawTypes      bool `toml:"raw_types"`
	UncheckedCast bool `toml:"unchecked_cast"`
	Deprecation   bool `toml:"deprecation"`
	Legacy8Inference bool `toml:"legacy8_inference"`
}

// Default returns the pipeline's built-in defaults (every warning on,
// legacy pre-diamond inference off) used when no config file is present.
func Default() Config {
	return Config{Lint: LintConfig{RawTypes: true, UncheckedCast: true, Deprecation: true}}
}

// Load reads and parses path, falling back to Default() if path is empty.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// ToEnvLint projects this config's lint toggles onto an env.Lint, the
// struct AttrContext actually threads through attribution.
func (c Config) ToEnvLint() env.Lint {
	return env.Lint{
		RawTypes:      c.Lint.RawTypes,
		UncheckedCast: c.Lint.UncheckedCast,
		Deprecation:   c.Lint.Deprecation,
	}
}
