// Package config provides YAML-based game configuration loading and
// difficulty management for the tanks game.
package config

// TanksConfig contains all configuration for the tanks game.
type TanksConfig struct {
	Field      TanksField       `yaml:"field"`
	Player     TanksPlayer      `yaml:"player"`
	Enemy      TanksEnemy       `yaml:"enemy"`
	Bullet     TanksBullet      `yaml:"bullet"`
	Effects    TanksEffects     `yaml:"effects"`
	Powerups   TanksPowerups    `yaml:"powerups"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// TanksField defines the playfield grid. Positions are in field pixels.
type TanksField struct {
	TileSize  float64 `yaml:"tile_size"`
	TileCount int     `yaml:"tile_count"`
}

// Size returns the field edge length in pixels.
func (f TanksField) Size() float64 {
	return f.TileSize * float64(f.TileCount)
}

// TanksTier defines one tank tier. Speeds are pixels per tick.
type TanksTier struct {
	MoveSpeed      float64 `yaml:"move_speed"`
	BulletSpeed    float64 `yaml:"bullet_speed"`
	BulletMax      int     `yaml:"bullet_max"`
	HighWallDamage bool    `yaml:"high_wall_damage"` // Destroys steel
	Health         int     `yaml:"health"`
	Points         int     `yaml:"points"` // Awarded for killing an enemy of this tier
}

// TanksPlayer defines the player tank.
type TanksPlayer struct {
	Lives             int         `yaml:"lives"`
	Size              float64     `yaml:"size"`
	SpawnShieldTicks  int         `yaml:"spawn_shield_ticks"`
	RespawnDelayTicks int         `yaml:"respawn_delay_ticks"`
	InputHoldTicks    int         `yaml:"input_hold_ticks"` // Terminals repeat keys instead of reporting releases
	FireCooldownTicks int         `yaml:"fire_cooldown_ticks"`
	Tiers             []TanksTier `yaml:"tiers"`
}

// TanksEnemy defines enemy spawning and AI.
type TanksEnemy struct {
	Size                 float64     `yaml:"size"`
	MaxAlive             int         `yaml:"max_alive"`
	FirstSpawnDelayTicks int         `yaml:"first_spawn_delay_ticks"`
	SpawnDelayTicks      int         `yaml:"spawn_delay_ticks"`
	FireIntervalTicks    int         `yaml:"fire_interval_ticks"`
	FireCooldownTicks    int         `yaml:"fire_cooldown_ticks"` // Minimum gap between two shots of one enemy
	TurnChance           float64     `yaml:"turn_chance"`         // Per tick chance of picking a new direction
	Tiers                []TanksTier `yaml:"tiers"`
}

// TanksBullet defines bullet size (unrotated, facing up).
type TanksBullet struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// TanksEffects defines effect durations in ticks.
type TanksEffects struct {
	SpawnTicks          int `yaml:"spawn_ticks"`
	SmallExplosionTicks int `yaml:"small_explosion_ticks"`
	LargeExplosionTicks int `yaml:"large_explosion_ticks"`
}

// TanksPowerups defines powerup timings.
type TanksPowerups struct {
	DurationTicks int `yaml:"duration_ticks"` // Time a powerup stays on the field
	FreezeTicks   int `yaml:"freeze_ticks"`
	ShieldTicks   int `yaml:"shield_ticks"`
	Points        int `yaml:"points"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier       float64 `yaml:"speed_multiplier"`        // Added to enemy speed at max difficulty
	FireIntervalReduction int     `yaml:"fire_interval_reduction"` // Ticks removed from the AI fire interval at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// ParsePreset validates a preset name. Empty means normal.
func ParsePreset(s string) (DifficultyPreset, bool) {
	switch p := DifficultyPreset(s); p {
	case "":
		return DifficultyNormal, true
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, true
	default:
		return "", false
	}
}
