package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/iamasit07/connect-four/internal/domain"
)

// LoadGameSettings reads game settings from a YAML file. Fields missing from
// the file keep their defaults.
func LoadGameSettings(path string) (domain.Settings, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is caller-provided configuration
	if err != nil {
		return domain.Settings{}, fmt.Errorf("config: load game settings: %w", err)
	}

	return ParseGameSettings(data)
}

// ParseGameSettings decodes and validates YAML game settings.
func ParseGameSettings(data []byte) (domain.Settings, error) {
	settings := domain.DefaultSettings()
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return domain.Settings{}, fmt.Errorf("config: parse game settings: %w", err)
	}

	settings = settings.Normalized()
	if err := settings.Validate(); err != nil {
		return domain.Settings{}, fmt.Errorf("config: %w", err)
	}

	return settings, nil
}
