package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Settings are the store's ambient knobs: not part of the data model, just
// how the engine behaves. Loaded from root/config.yaml and overridable by
// environment variables, matching the teacher's config.yaml + Viper layering
// (internal/config/yaml_config.go) scaled down to this store's needs.
type Settings struct {
	LogLevel          string `yaml:"log-level" toml:"log-level"`
	PolicyLoadRetries int    `yaml:"policy-load-retries" toml:"policy-load-retries"`
}

// DefaultSettings are used when config.yaml is absent.
func DefaultSettings() Settings {
	return Settings{LogLevel: "info", PolicyLoadRetries: 3}
}

// LoadSettings reads root/config.yaml, or root/config.toml if no YAML file
// is present, and layers BRAIN_* environment variables on top via Viper.
func LoadSettings(root string) (Settings, error) {
	s := DefaultSettings()

	yamlPath := filepath.Join(root, "config.yaml")
	tomlPath := filepath.Join(root, "config.toml")
	switch {
	case fileExists(yamlPath):
		data, err := os.ReadFile(yamlPath) // #nosec G304 - fixed root-relative path
		if err != nil {
			return s, err
		}
		if err := yaml.Unmarshal(data, &s); err != nil {
			return s, err
		}
	case fileExists(tomlPath):
		if _, err := toml.DecodeFile(tomlPath, &s); err != nil { // #nosec G304 - fixed root-relative path
			return s, err
		}
	}

	v := viper.New()
	v.SetEnvPrefix("BRAIN")
	_ = v.BindEnv("log-level", "BRAIN_LOG_LEVEL")
	_ = v.BindEnv("policy-load-retries", "BRAIN_POLICY_LOAD_RETRIES")
	v.SetDefault("log-level", s.LogLevel)
	v.SetDefault("policy-load-retries", s.PolicyLoadRetries)

	if env := os.Getenv("BRAIN_LOG_LEVEL"); env != "" {
		s.LogLevel = v.GetString("log-level")
	}
	if env := os.Getenv("BRAIN_POLICY_LOAD_RETRIES"); env != "" {
		s.PolicyLoadRetries = v.GetInt("policy-load-retries")
	}

	return s, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
