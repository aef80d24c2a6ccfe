// Package config loads the Aster driver's own project configuration.
// This is driver config, not part of the compiler core: just the
// settings cmd/aster reads before it ever calls the pipeline.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the Aster driver's project configuration.
type Config struct {
	ProjectName string            `mapstructure:"project_name"`
	Compiler    CompilerConfig    `mapstructure:"compiler"`
	Diagnostics DiagnosticsConfig `mapstructure:"diagnostics"`
}

// CompilerConfig carries the driver-level defaults a project can pin so
// every `aster` invocation in its tree agrees on them without repeating
// flags.
type CompilerConfig struct {
	DefaultLocale       string   `mapstructure:"default_locale"`
	DefaultVocabularies []string `mapstructure:"default_vocabularies"`
}

// DiagnosticsConfig controls how compiler diagnostics are rendered.
type DiagnosticsConfig struct {
	Format string `mapstructure:"format"` // "text" or "json"
}

// Load loads the configuration from aster.yml or aster.yaml in the
// current directory, falling back to defaults when no file is present.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("compiler.default_locale", "en")
	v.SetDefault("compiler.default_vocabularies", []string{})
	v.SetDefault("diagnostics.format", "text")

	v.SetConfigName("aster")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.AutomaticEnv()
	v.SetEnvPrefix("ASTER")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// InProject reports whether the current directory holds an Aster
// project: an aster.yml/aster.yaml, or a rules directory.
func InProject() bool {
	if _, err := os.Stat("aster.yml"); err == nil {
		return true
	}
	if _, err := os.Stat("aster.yaml"); err == nil {
		return true
	}
	if _, err := os.Stat("rules"); err == nil {
		return true
	}
	return false
}

// GetProjectRoot walks upward from the working directory looking for an
// aster.yml/aster.yaml, falling back to a rules/ directory.
func GetProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "aster.yml")); err == nil {
			return dir, nil
		}
		if _, err := os.Stat(filepath.Join(dir, "aster.yaml")); err == nil {
			return dir, nil
		}
		if _, err := os.Stat(filepath.Join(dir, "rules")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("not in an Aster project (no aster.yml found)")
		}
		dir = parent
	}
}

// validateConfig rejects a diagnostics format Aster's formatter package
// doesn't know how to render.
func validateConfig(cfg *Config) error {
	switch strings.ToLower(cfg.Diagnostics.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("diagnostics.format must be \"text\" or \"json\", got: %s", cfg.Diagnostics.Format)
	}
	return nil
}
