package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadTanks loads the tanks configuration.
// Search order: customPath -> ~/.tanks/configs/tanks.yaml -> ./configs/tanks.yaml -> embedded default
// Values missing from a file keep their defaults.
func LoadTanks(customPath string) (TanksConfig, error) {
	cfg := DefaultTanksConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: parse %s: %w", customPath, err)
		}
		return cfg, cfg.Validate()
	}

	// Try user config directory
	if userCfgPath := userConfigPath("tanks.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if c, ok := parseOver(data); ok {
				return c, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/tanks.yaml"); err == nil {
		if c, ok := parseOver(data); ok {
			return c, nil
		}
	}

	// Use embedded default YAML
	if c, ok := parseOver(defaultTanksYAML); ok {
		return c, nil
	}
	return DefaultTanksConfig(), nil // Fallback to hardcoded if embed fails
}

// parseOver unmarshals data on top of the defaults. Files that fail to parse
// or validate are skipped by the search.
func parseOver(data []byte) (TanksConfig, bool) {
	cfg := DefaultTanksConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, false
	}
	return cfg, cfg.Validate() == nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".tanks", "configs", filename)
}

// Validate reports values the game cannot run with.
func (c TanksConfig) Validate() error {
	switch {
	case c.Field.TileSize <= 0 || c.Field.TileCount <= 0:
		return fmt.Errorf("config: field must have a positive tile size and count")
	case c.Player.Size <= 0 || c.Player.Size > c.Field.TileSize:
		return fmt.Errorf("config: player size %g must be in (0, %g]", c.Player.Size, c.Field.TileSize)
	case c.Enemy.Size <= 0 || c.Enemy.Size > c.Field.TileSize:
		return fmt.Errorf("config: enemy size %g must be in (0, %g]", c.Enemy.Size, c.Field.TileSize)
	case len(c.Player.Tiers) != TierCount:
		return fmt.Errorf("config: expected %d player tiers, got %d", TierCount, len(c.Player.Tiers))
	case len(c.Enemy.Tiers) != TierCount:
		return fmt.Errorf("config: expected %d enemy tiers, got %d", TierCount, len(c.Enemy.Tiers))
	case c.Bullet.Width <= 0 || c.Bullet.Height <= 0:
		return fmt.Errorf("config: bullet size must be positive")
	case c.Enemy.MaxAlive <= 0:
		return fmt.Errorf("config: enemy max_alive must be positive")
	}
	for i, t := range append(append([]TanksTier{}, c.Player.Tiers...), c.Enemy.Tiers...) {
		if t.Health <= 0 || t.BulletMax <= 0 {
			return fmt.Errorf("config: tier %d needs positive health and bullet_max", i%TierCount)
		}
	}
	return nil
}

// TierCount is the number of tank tiers per party.
const TierCount = 4

// ApplyTanksPreset modifies the config based on a difficulty preset.
func ApplyTanksPreset(cfg *TanksConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	// Adjust gameplay based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Player.Lives = 5
		cfg.Enemy.MaxAlive = 3
		cfg.Enemy.FireIntervalTicks += 30
	case DifficultyHard:
		cfg.Player.Lives = 2
		cfg.Enemy.MaxAlive = 6
		cfg.Enemy.SpawnDelayTicks = cfg.Enemy.SpawnDelayTicks * 2 / 3
	}
}
