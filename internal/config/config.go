// Package config loads service settings from defaults, an optional TOML
// file, and environment variables, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/pelletier/go-toml"
	"golang.org/x/text/language"

	"github.com/mmynk/moneybalance/internal/validation"
)

// Config holds every tunable of the server and the CLI.
type Config struct {
	Addr      string `toml:"addr"`
	DBPath    string `toml:"db_path"`
	LogLevel  string `toml:"log_level"`
	LogFormat string `toml:"log_format"`
	Locale    string `toml:"locale"`
	ExportDir string `toml:"export_dir"`

	Validation ValidationConfig `toml:"validation"`
}

// ValidationConfig holds the editor limits.
type ValidationConfig struct {
	WeightEpsilon float64 `toml:"weight_epsilon"`
	RateEpsilon   float64 `toml:"rate_epsilon"`
	MinPersons    int     `toml:"min_persons"`
}

// Default returns the built-in settings.
func Default() Config {
	th := validation.DefaultThresholds()
	return Config{
		Addr:      ":8080",
		DBPath:    "./data/moneybalance.db",
		LogLevel:  "info",
		LogFormat: "text",
		Locale:    "en",
		ExportDir: ".",
		Validation: ValidationConfig{
			WeightEpsilon: th.WeightEpsilon,
			RateEpsilon:   th.RateEpsilon,
			MinPersons:    th.MinPersons,
		},
	}
}

// Load returns the defaults overlaid with the TOML file at path (skipped
// when path is empty) and then with environment variables.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	cfg.Addr = getEnv("ADDR", cfg.Addr)
	cfg.DBPath = getEnv("DB_PATH", cfg.DBPath)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = getEnv("LOG_FORMAT", cfg.LogFormat)
	cfg.Locale = getEnv("LOCALE", cfg.Locale)
	cfg.ExportDir = getEnv("EXPORT_DIR", cfg.ExportDir)
	cfg.Validation.MinPersons = getEnvInt("MIN_PERSONS", cfg.Validation.MinPersons)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the service cannot run with.
func (c Config) Validate() error {
	var errs []error
	if c.DBPath == "" {
		errs = append(errs, errors.New("db_path must not be empty"))
	}
	if _, err := language.Parse(c.Locale); err != nil {
		errs = append(errs, fmt.Errorf("invalid locale %q: %w", c.Locale, err))
	}
	if c.Validation.WeightEpsilon <= 0 {
		errs = append(errs, errors.New("validation.weight_epsilon must be positive"))
	}
	if c.Validation.RateEpsilon <= 0 {
		errs = append(errs, errors.New("validation.rate_epsilon must be positive"))
	}
	if c.Validation.MinPersons < 1 {
		errs = append(errs, errors.New("validation.min_persons must be at least 1"))
	}
	return errors.Join(errs...)
}

// Language returns the parsed locale. Load guarantees it parses.
func (c Config) Language() language.Tag {
	tag, err := language.Parse(c.Locale)
	if err != nil {
		return language.English
	}
	return tag
}

// Thresholds returns the validation limits.
func (c Config) Thresholds() validation.Thresholds {
	return validation.Thresholds{
		WeightEpsilon: c.Validation.WeightEpsilon,
		RateEpsilon:   c.Validation.RateEpsilon,
		MinPersons:    c.Validation.MinPersons,
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// getEnvInt is getEnv for integer settings; unparsable values fall back.
func getEnvInt(key string, fallback int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return fallback
}
