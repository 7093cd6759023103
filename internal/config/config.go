package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v10"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file looked up when --config is not given.
const DefaultPath = "stmtconv.yaml"

// Config represents the stmtconv.yaml configuration. Environment variables
// override values read from the file.
type Config struct {
	Log   LogConfig   `yaml:"log"`
	MT940 MT940Config `yaml:"mt940"`
	CSV   CSVConfig   `yaml:"csv"`
}

// LogConfig controls diagnostic output on stderr.
type LogConfig struct {
	Level  string `yaml:"level"  env:"STMTCONV_LOG_LEVEL"`  // debug, info, warn, error
	Format string `yaml:"format" env:"STMTCONV_LOG_FORMAT"` // console, json
}

// MT940Config tunes MT940 parsing.
type MT940Config struct {
	// StrictBalances rejects :6x: tags that are not a known balance instead
	// of dropping them with a warning.
	StrictBalances bool `yaml:"strict_balances" env:"STMTCONV_MT940_STRICT_BALANCES"`
}

// CSVConfig tunes CSV output.
type CSVConfig struct {
	// Timezone is the IANA zone of the creation stamp written when the
	// statement carries none.
	Timezone string `yaml:"timezone" env:"STMTCONV_CSV_TIMEZONE"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Log: LogConfig{
			Level:  "warn",
			Format: "console",
		},
		CSV: CSVConfig{
			Timezone: "Local",
		},
	}
}

// Load reads path over the defaults and then applies environment
// overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("reading config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Validate checks enumerated values and the timezone name. Empty values
// are allowed and fall back to defaults downstream.
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Log),
		validation.Field(&c.CSV),
	)
}

func (l LogConfig) Validate() error {
	return validation.ValidateStruct(&l,
		validation.Field(&l.Level, validation.In("debug", "info", "warn", "error")),
		validation.Field(&l.Format, validation.In("console", "json")),
	)
}

func (c CSVConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Timezone, validation.By(isTimezone)),
	)
}

func isTimezone(value interface{}) error {
	name, _ := value.(string)
	if _, err := time.LoadLocation(name); err != nil {
		return errors.New("must be an IANA time zone name")
	}
	return nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Location resolves the CSV timezone. An empty zone means UTC.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.CSV.Timezone)
	if err != nil {
		return nil, fmt.Errorf("csv timezone: %w", err)
	}
	return loc, nil
}
