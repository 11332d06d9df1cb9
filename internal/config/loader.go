package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// WalkFile is the tuning file name looked up in every config directory.
const WalkFile = "walk.yaml"

// LoadWalk loads Walk the Dog tuning.
// Search order: customPath -> ~/.walkthedog/configs/walk.yaml -> ./configs/walk.yaml -> embedded default
// Keys missing from a file keep their default values.
func LoadWalk(customPath string) (WalkConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultWalkConfig(), fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := parseWalk(data)
		if err != nil {
			return DefaultWalkConfig(), fmt.Errorf("config: %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := UserConfigPath(WalkFile); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parseWalk(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", WalkFile)); err == nil {
		if cfg, err := parseWalk(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parseWalk(defaultWalkYAML)
	if err != nil {
		return DefaultWalkConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// parseWalk overlays YAML onto the defaults and validates the result.
func parseWalk(data []byte) (WalkConfig, error) {
	cfg := DefaultWalkConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// UserConfigPath returns the path to a user config file, or empty if home is unavailable.
func UserConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".walkthedog", "configs", filename)
}

// ResolveWalkPath returns the file LoadWalk would read, or "" when only the
// embedded default applies. Used to decide what to watch.
func ResolveWalkPath(customPath string) string {
	if customPath != "" {
		return customPath
	}
	candidates := []string{UserConfigPath(WalkFile), filepath.Join("configs", WalkFile)}
	for _, p := range candidates {
		if p == "" {
			continue
		}
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}
