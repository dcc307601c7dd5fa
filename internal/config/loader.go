package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFile is the file name searched for in the config directories.
const ConfigFile = "sokoban.yaml"

// LoadSokoban loads the Sokoban configuration.
// Search order: customPath -> ~/.sokoban/configs/sokoban.yaml -> ./configs/sokoban.yaml -> embedded default.
// Files are decoded on top of the embedded defaults, so a partial file only
// overrides the keys it sets.
func LoadSokoban(customPath string) (SokobanConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return embeddedDefault(), fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := decode(data)
		if err != nil {
			return embeddedDefault(), fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(ConfigFile); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := decode(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", ConfigFile)); err == nil {
		if cfg, err := decode(data); err == nil {
			return cfg, nil
		}
	}

	return embeddedDefault(), nil
}

// ResolveLevelDir returns the level directory to play from: override when set,
// otherwise levels.dir of the config LoadSokoban(configPath) finds.
// Empty means the built-in set.
func ResolveLevelDir(override, configPath string) string {
	if override != "" {
		return override
	}
	cfg, err := LoadSokoban(configPath)
	if err != nil {
		return ""
	}
	return cfg.Levels.Dir
}

// decode unmarshals data over the embedded defaults.
func decode(data []byte) (SokobanConfig, error) {
	cfg := embeddedDefault()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// embeddedDefault parses the embedded YAML, falling back to the hardcoded defaults.
func embeddedDefault() SokobanConfig {
	var cfg SokobanConfig
	if err := yaml.Unmarshal(defaultSokobanYAML, &cfg); err != nil {
		return DefaultSokobanConfig()
	}
	return cfg
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".sokoban", "configs", filename)
}

// ApplySokobanPreset modifies the config based on a difficulty preset.
// An empty preset leaves the config unchanged.
func ApplySokobanPreset(cfg *SokobanConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Gameplay.Hints = -1
		cfg.Gameplay.UndoEnabled = true
	case DifficultyNormal:
		cfg.Gameplay.Hints = 3
		cfg.Gameplay.UndoEnabled = true
	case DifficultyHard:
		cfg.Gameplay.Hints = 0
		cfg.Gameplay.UndoEnabled = false
	}
}

// Marshal renders a config as YAML, used by `sokoban config`.
func Marshal(cfg SokobanConfig) ([]byte, error) {
	return yaml.Marshal(cfg)
}
