package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the config file searched for in each location.
const FileName = "drmario.yaml"

// LoadDrMario loads the Dr. Mario configuration.
// Search order: customPath -> ~/.drmario/configs/drmario.yaml -> ./configs/drmario.yaml -> embedded default
//
// Values missing from a file keep their defaults.
func LoadDrMario(customPath string) (DrMarioConfig, error) {
	// Try custom path first
	if customPath != "" {
		cfg, err := LoadFile(customPath)
		if err != nil {
			return DefaultDrMarioConfig(), err
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(FileName); userCfgPath != "" {
		if cfg, err := LoadFile(userCfgPath); err == nil {
			return cfg, nil
		}
	}

	// Try local configs directory
	if cfg, err := LoadFile(filepath.Join("configs", FileName)); err == nil {
		return cfg, nil
	}

	// Use embedded default YAML
	cfg, err := Parse(defaultDrMarioYAML)
	if err != nil {
		return DefaultDrMarioConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// LoadFile reads and validates a single config file.
func LoadFile(path string) (DrMarioConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return DrMarioConfig{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return DrMarioConfig{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML over the defaults and validates the result.
// A file that lists spawn pills replaces the default spawn list.
func Parse(data []byte) (DrMarioConfig, error) {
	cfg := DefaultDrMarioConfig()
	cfg.Pills.Spawn = nil
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DrMarioConfig{}, err
	}
	if cfg.Pills.Spawn == nil {
		cfg.Pills.Spawn = DefaultDrMarioConfig().Pills.Spawn
	}
	if err := cfg.Validate(); err != nil {
		return DrMarioConfig{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".drmario", "configs", filename)
}
