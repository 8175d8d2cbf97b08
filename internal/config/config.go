// Package config describes the repository layout the release pipeline
// operates on.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// FileName is the optional overlay looked up at the repository root.
const FileName = ".releasectl.toml"

// Config paths are relative to the repository root.
type Config struct {
	EmbedCrate      string `toml:"embed_crate"`
	TemplatePath    string `toml:"template_path"`
	LockOutputPath  string `toml:"lock_output_path"`
	PlaceholderName string `toml:"placeholder_name"`
	DocsSource      string `toml:"docs_source"`
	DocsBuildDir    string `toml:"docs_build_dir"`
}

// Default returns the layout of the PyOxidizer repository.
func Default() Config {
	return Config{
		EmbedCrate:      "pyembed",
		TemplatePath:    filepath.Join("pyoxidizer", "src", "templates", "cargo-extra.toml.hbs"),
		LockOutputPath:  filepath.Join("pyoxidizer", "src", "new-project-cargo.lock"),
		PlaceholderName: "placeholder_project",
		DocsSource:      "docs",
		DocsBuildDir:    filepath.Join("docs", "_build", "html"),
	}
}

// Load overlays the optional repo-root config file onto the defaults and
// validates the result. A missing file is not an error.
func Load(repoRoot string) (Config, error) {
	cfg := Default()
	path := filepath.Join(repoRoot, FileName)
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("config load failed (%s): %w", path, err)
	}

	var raw Config
	if err := toml.Unmarshal(data, &raw); err != nil {
		return Config{}, fmt.Errorf("config parse failed (%s): %w", path, err)
	}
	overlay(&cfg, raw)
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// overlay applies the non-blank fields of raw onto cfg.
func overlay(cfg *Config, raw Config) {
	if strings.TrimSpace(raw.EmbedCrate) != "" {
		cfg.EmbedCrate = raw.EmbedCrate
	}
	if strings.TrimSpace(raw.TemplatePath) != "" {
		cfg.TemplatePath = raw.TemplatePath
	}
	if strings.TrimSpace(raw.LockOutputPath) != "" {
		cfg.LockOutputPath = raw.LockOutputPath
	}
	if strings.TrimSpace(raw.PlaceholderName) != "" {
		cfg.PlaceholderName = raw.PlaceholderName
	}
	if strings.TrimSpace(raw.DocsSource) != "" {
		cfg.DocsSource = raw.DocsSource
	}
	if strings.TrimSpace(raw.DocsBuildDir) != "" {
		cfg.DocsBuildDir = raw.DocsBuildDir
	}
}

// Validate enforces non-blank, repo-relative fields.
func Validate(cfg Config) error {
	fields := []struct {
		name  string
		value string
	}{
		{"embed_crate", cfg.EmbedCrate},
		{"template_path", cfg.TemplatePath},
		{"lock_output_path", cfg.LockOutputPath},
		{"placeholder_name", cfg.PlaceholderName},
		{"docs_source", cfg.DocsSource},
		{"docs_build_dir", cfg.DocsBuildDir},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("config missing %s", f.name)
		}
	}
	for _, p := range []string{
		cfg.EmbedCrate,
		cfg.TemplatePath,
		cfg.LockOutputPath,
		cfg.DocsSource,
		cfg.DocsBuildDir,
	} {
		if filepath.IsAbs(p) {
			return fmt.Errorf("config path %q must be repo-relative", p)
		}
	}
	return nil
}
