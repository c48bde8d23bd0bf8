package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadTable loads the preset table.
// Search order: customPath -> ~/.flappy/configs/flappy.yaml -> ./configs/flappy.yaml -> embedded default
func LoadTable(customPath string) (Table, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return Table{}, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := ParseTable(data)
		if err != nil {
			return Table{}, fmt.Errorf("config: %s: %w", customPath, err)
		}
		return cfg, nil
	}

	if userCfgPath := userConfigPath("flappy.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := ParseTable(data); err == nil {
				return cfg, nil
			}
		}
	}

	if data, err := os.ReadFile(filepath.Join("configs", "flappy.yaml")); err == nil {
		if cfg, err := ParseTable(data); err == nil {
			return cfg, nil
		}
	}

	cfg, err := ParseTable(defaultTableYAML)
	if err != nil {
		return DefaultTable(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// ParseTable decodes a YAML preset table. Geometry fields and whole presets
// missing from the document keep their built-in values.
func ParseTable(data []byte) (Table, error) {
	cfg := DefaultTable()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Table{}, fmt.Errorf("failed to parse preset table: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Table{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".flappy", "configs", filename)
}
