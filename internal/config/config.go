// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values fall back to defaults.
type Config struct {
	// Provider is the default LLM provider tag ("claude" or "gemini").
	Provider string `json:"provider,omitempty" validate:"omitempty,oneof=claude gemini"`
	// UserName appears in generated CV file names; sanitized before use.
	UserName string `json:"user_name,omitempty"`
	// TemplatesDir holds cv_template.html, core_info.txt, and reference_cv.txt.
	TemplatesDir string `json:"templates_dir,omitempty"`
	// OutputRoot is where per-application folders are created.
	OutputRoot string `json:"output_root,omitempty"`
	// JDDir is scanned for the most recent job description file when no
	// explicit JD path is given.
	JDDir string `json:"jd_dir,omitempty"`
}

var validate = validator.New()

// Default returns the built-in configuration. The output root lives under the
// user's home directory so generated applications end up in a predictable place.
func Default() *Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return &Config{
		Provider:     "gemini",
		UserName:     "Candidate",
		TemplatesDir: "templates",
		OutputRoot:   filepath.Join(home, "Job Applications"),
		JDDir:        "jds_to_process",
	}
}

// Load reads configuration from a JSON file and fills unset fields from Default.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			if fe.Field() == "Provider" {
				return fmt.Errorf("config error: unsupported provider %q (want claude or gemini)", fe.Value())
			}
			return fmt.Errorf("config error: invalid value for %s", fe.Field())
		}
		return fmt.Errorf("config error: %w", err)
	}
	return nil
}
