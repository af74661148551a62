package config

import (
	_ "embed"
)

//go:embed defaults/tanks.yaml
var defaultTanksYAML []byte

// DefaultTanksConfig returns the default tanks configuration.
func DefaultTanksConfig() TanksConfig {
	return TanksConfig{
		Field: TanksField{
			TileSize:  64,
			TileCount: 13,
		},
		Player: TanksPlayer{
			Lives:             3,
			Size:              52,
			SpawnShieldTicks:  180,
			RespawnDelayTicks: 60,
			InputHoldTicks:    20,
			FireCooldownTicks: 12,
			Tiers: []TanksTier{
				{MoveSpeed: 3, BulletSpeed: 10, BulletMax: 1, Health: 1},
				{MoveSpeed: 3, BulletSpeed: 15, BulletMax: 1, Health: 1},
				{MoveSpeed: 3, BulletSpeed: 15, BulletMax: 2, Health: 1},
				{MoveSpeed: 3, BulletSpeed: 15, BulletMax: 2, Health: 1, HighWallDamage: true},
			},
		},
		Enemy: TanksEnemy{
			Size:                 52,
			MaxAlive:             4,
			FirstSpawnDelayTicks: 30,
			SpawnDelayTicks:      180, // 3 seconds at 60fps
			FireIntervalTicks:    90,
			FireCooldownTicks:    12,
			TurnChance:           0.015,
			Tiers: []TanksTier{
				{MoveSpeed: 2, BulletSpeed: 8, BulletMax: 1, Health: 1, Points: 100},
				{MoveSpeed: 4, BulletSpeed: 10, BulletMax: 1, Health: 1, Points: 200},
				{MoveSpeed: 2, BulletSpeed: 15, BulletMax: 1, Health: 1, Points: 300},
				{MoveSpeed: 2, BulletSpeed: 10, BulletMax: 1, Health: 4, Points: 400},
			},
		},
		Bullet: TanksBullet{
			Width:  12,
			Height: 16,
		},
		Effects: TanksEffects{
			SpawnTicks:          60,
			SmallExplosionTicks: 12,
			LargeExplosionTicks: 30,
		},
		Powerups: TanksPowerups{
			DurationTicks: 1800, // 30 seconds at 60fps
			FreezeTicks:   600,
			ShieldTicks:   600,
			Points:        500,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 20000,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier:       0.5,
				FireIntervalReduction: 45,
			},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "tanks", "tanks_endless":
		return defaultTanksYAML
	default:
		return nil
	}
}
