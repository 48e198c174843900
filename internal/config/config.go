// Package config loads application settings from an optional genie.yaml
// file, a .env file and environment variables, in increasing precedence.
package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds the application configuration.
type Config struct {
	APIKey      string `yaml:"-"` // secrets stay out of the yaml file
	Model       string `yaml:"model"`
	BaseURL     string `yaml:"base_url"`
	Headless    bool   `yaml:"headless"`
	UserDataDir string `yaml:"user_data_dir"`
	OutputDir   string `yaml:"output_dir"`
}

// ConfigFile is the optional yaml overlay looked up in the working directory.
const ConfigFile = "genie.yaml"

// Load builds the configuration: defaults, then genie.yaml, then .env and
// environment variables. API_KEY is required.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		// No .env file is fine; plain env vars still apply.
		log.Printf("note: no .env file loaded: %v", err)
	}

	cfg := &Config{
		Model:       "gpt-4o-mini",
		Headless:    true,
		UserDataDir: "user_data",
		OutputDir:   ".",
	}

	if err := applyFile(cfg, ConfigFile); err != nil {
		return nil, err
	}
	applyEnv(cfg)

	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API_KEY is required but not set in environment or .env file")
	}

	return cfg, nil
}

func applyFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	cfg.APIKey = getEnvOrDefault("API_KEY", cfg.APIKey)
	cfg.Model = getEnvOrDefault("MODEL", cfg.Model)
	cfg.BaseURL = getEnvOrDefault("BASE_URL", cfg.BaseURL)
	cfg.UserDataDir = getEnvOrDefault("USER_DATA_DIR", cfg.UserDataDir)
	cfg.OutputDir = getEnvOrDefault("OUTPUT_DIR", cfg.OutputDir)

	if v, exists := os.LookupEnv("HEADLESS"); exists {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Headless = b
		}
	}
}

// getEnvOrDefault retrieves an environment variable or returns a default value.
func getEnvOrDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
