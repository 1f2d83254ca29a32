package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// AppDir is the per-user data directory under the home directory.
const AppDir = ".bubblepop"

// LoadBubblePop loads Bubble Pop configuration.
// Search order: customPath -> ~/.bubblepop/configs/bubblepop.yaml ->
// ./configs/bubblepop.yaml -> embedded default -> hardcoded default.
// Files are applied on top of the defaults, so they may set only some keys.
func LoadBubblePop(customPath string) (BubblePopConfig, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultBubblePopConfig(), fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parse(data)
		if err != nil {
			return DefaultBubblePopConfig(), fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	candidates := []string{userConfigPath("bubblepop.yaml"), filepath.Join("configs", "bubblepop.yaml")}
	for _, path := range candidates {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if cfg, err := parse(data); err == nil {
			return cfg, nil
		}
	}

	if cfg, err := parse(defaultBubblePopYAML); err == nil {
		return cfg, nil
	}
	return DefaultBubblePopConfig(), nil
}

// parse applies data over the defaults and validates the result.
func parse(data []byte) (BubblePopConfig, error) {
	cfg := DefaultBubblePopConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// UserDir returns ~/.bubblepop, or empty if home is unavailable.
func UserDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, AppDir)
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	dir := UserDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "configs", filename)
}

// ApplyBubblePopPreset modifies the config based on a difficulty preset.
func ApplyBubblePopPreset(cfg *BubblePopConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
		return
	}
	cfg.Difficulty.Enabled = true
	cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)

	switch preset {
	case DifficultyEasy:
		cfg.Rules.LaunchCooldown = 6
		cfg.Items = ItemsConfig{Swap: 5, Raise: 5, Rainbow: 5}
		cfg.Difficulty.Enabled = false
	case DifficultyHard:
		cfg.Rules.LaunchCooldown = 3
		cfg.Items = ItemsConfig{Swap: 1, Raise: 1, Rainbow: 1}
	}
}
