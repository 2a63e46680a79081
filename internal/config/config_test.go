package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"nominalc/internal/config"
)

func TestLoad_EmptyPathReturnsDefault(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("Load(\"\") returned error: %v", err)
	}
	if cfg != config.Default() {
		t.Errorf("Load(\"\") = %+v, want Default() = %+v", cfg, config.Default())
	}
}

func TestLoad_ParsesTOMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nominalc.toml")
	contents := "[lint]\nraw_types = false\nunchecked_cast = false\ndeprecation = true\nlegacy8_inference = true\n"
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load(%q) returned error: %v", path, err)
	}
	want := config.LintConfig{RawTypes: false, UncheckedCast: false, Deprecation: true, Legacy8Inference: true}
	if cfg.Lint != want {
		t.Errorf("Load(%q).Lint = %+v, want %+v", path, cfg.Lint, want)
	}
}

func TestLoad_MissingFileReturnsError(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	if err == nil {
		t.Errorf("Load of a nonexistent path should return an error")
	}
}

func TestToEnvLint_ProjectsLintToggles(t *testing.T) {
	cfg := config.Config{Lint: config.LintConfig{RawTypes: true, UncheckedCast: false, Deprecation: true}}
	lint := cfg.ToEnvLint()
	if !lint.RawTypes || lint.UncheckedCast || !lint.Deprecation {
		t.Errorf("ToEnvLint() = %+v, did not project Lint toggles correctly", lint)
	}
}
