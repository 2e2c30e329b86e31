package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const defaultConfigPath = "./config.yaml"

// Load builds the server configuration. Precedence is ENV over the YAML file
// over env-default tags. A .env file in the working directory is loaded into
// the environment first without overriding variables already set.
//
// The YAML path comes from CONFIG_PATH. A missing file is an error only when
// CONFIG_PATH was set; otherwise ENV and defaults are used alone.
func Load() (*Config, error) {
	if err := loadDotenv(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := readFileOrEnv(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}

	return &cfg, nil
}

// LoadSection fills one config section from .env and ENV only. Commands that
// need a single section (migrate, issue-token, validate-content) use it so
// they do not require settings they never touch.
func LoadSection[T any](section *T) error {
	if err := loadDotenv(); err != nil {
		return err
	}
	if err := cleanenv.ReadEnv(section); err != nil {
		return fmt.Errorf("config: read env: %w", err)
	}
	return nil
}

func loadDotenv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("config: read .env: %w", err)
	}
	return nil
}

func readFileOrEnv(cfg *Config) error {
	path, explicit := os.LookupEnv("CONFIG_PATH")
	if !explicit || path == "" {
		path, explicit = defaultConfigPath, false
	}

	_, statErr := os.Stat(path)
	switch {
	case statErr == nil:
		if err := cleanenv.ReadConfig(path, cfg); err != nil {
			return fmt.Errorf("config: read %s: %w", path, err)
		}
	case explicit:
		return fmt.Errorf("config: file %s: %w", path, statErr)
	default:
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return fmt.Errorf("config: read env: %w", err)
		}
	}
	return nil
}
