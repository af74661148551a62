package config

import (
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg := DefaultTanksConfig()
	if err := yaml.Unmarshal(defaultTanksYAML, &cfg); err != nil {
		t.Fatalf("embedded yaml: %v", err)
	}
	def := DefaultTanksConfig()

	if cfg.Field != def.Field {
		t.Errorf("Field = %+v, expected %+v", cfg.Field, def.Field)
	}
	if cfg.Player.Lives != def.Player.Lives || cfg.Enemy.MaxAlive != def.Enemy.MaxAlive {
		t.Error("embedded lives/max_alive differ from hardcoded defaults")
	}
	for i := range def.Enemy.Tiers {
		if cfg.Enemy.Tiers[i] != def.Enemy.Tiers[i] {
			t.Errorf("enemy tier %d = %+v, expected %+v", i, cfg.Enemy.Tiers[i], def.Enemy.Tiers[i])
		}
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v, expected nil", err)
	}

	var bare TanksConfig
	if err := yaml.Unmarshal(defaultTanksYAML, &bare); err != nil {
		t.Fatalf("embedded yaml: %v", err)
	}
	if bare.Player.FireCooldownTicks != def.Player.FireCooldownTicks ||
		bare.Enemy.FireCooldownTicks != def.Enemy.FireCooldownTicks {
		t.Errorf("fire cooldowns = %d/%d, expected %d/%d",
			bare.Player.FireCooldownTicks, bare.Enemy.FireCooldownTicks,
			def.Player.FireCooldownTicks, def.Enemy.FireCooldownTicks)
	}
}

func TestLoadTanksCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tanks.yaml")
	data := []byte("player:\n  lives: 9\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadTanks(path)
	if err != nil {
		t.Fatalf("LoadTanks() error = %v", err)
	}
	if cfg.Player.Lives != 9 {
		t.Errorf("Player.Lives = %d, expected 9", cfg.Player.Lives)
	}
	// Unset values keep their defaults.
	if cfg.Field.TileSize != 64 {
		t.Errorf("Field.TileSize = %g, expected 64", cfg.Field.TileSize)
	}
}

func TestLoadTanksErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadTanks(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("LoadTanks() of a missing file should fail")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("player: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadTanks(bad); err == nil {
		t.Error("LoadTanks() of invalid yaml should fail")
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("player:\n  size: 100\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadTanks(invalid); err == nil {
		t.Error("LoadTanks() should reject a tank larger than a tile")
	}
}

func TestApplyTanksPreset(t *testing.T) {
	tests := []struct {
		preset   DifficultyPreset
		enabled  bool
		initial  float64
		lives    int
		maxAlive int
	}{
		{DifficultyEasy, true, 0.0, 5, 3},
		{DifficultyNormal, true, 0.3, 3, 4},
		{DifficultyHard, true, 0.7, 2, 6},
		{DifficultyFixed, false, 0.0, 3, 4},
	}

	for _, tc := range tests {
		t.Run(string(tc.preset), func(t *testing.T) {
			cfg := DefaultTanksConfig()
			ApplyTanksPreset(&cfg, tc.preset)
			if cfg.Difficulty.Enabled != tc.enabled {
				t.Errorf("Enabled = %v, expected %v", cfg.Difficulty.Enabled, tc.enabled)
			}
			if cfg.Difficulty.InitialLevel != tc.initial {
				t.Errorf("InitialLevel = %g, expected %g", cfg.Difficulty.InitialLevel, tc.initial)
			}
			if cfg.Player.Lives != tc.lives {
				t.Errorf("Lives = %d, expected %d", cfg.Player.Lives, tc.lives)
			}
			if cfg.Enemy.MaxAlive != tc.maxAlive {
				t.Errorf("MaxAlive = %d, expected %d", cfg.Enemy.MaxAlive, tc.maxAlive)
			}
		})
	}
}

func TestParsePreset(t *testing.T) {
	if p, ok := ParsePreset(""); !ok || p != DifficultyNormal {
		t.Errorf("ParsePreset(\"\") = %q, %v, expected normal", p, ok)
	}
	if _, ok := ParsePreset("nightmare"); ok {
		t.Error("ParsePreset(nightmare) should fail")
	}
}

func TestDifficultyManager(t *testing.T) {
	cfg := DefaultTanksConfig().Difficulty
	d := NewDifficultyManager(cfg)

	if got := d.Level(0, 0); got != 0 {
		t.Errorf("Level(0, 0) = %g, expected 0", got)
	}
	if got := d.Level(cfg.Progression.MaxAt*2, 0); got != 1 {
		t.Errorf("Level(past max) = %g, expected 1", got)
	}
	if got := d.Speed(2, cfg.Progression.MaxAt, 0); got != 3 {
		t.Errorf("Speed(2, max) = %g, expected 3", got)
	}
	if got := d.FireInterval(90, cfg.Progression.MaxAt, 0); got != 45 {
		t.Errorf("FireInterval(90, max) = %d, expected 45", got)
	}
	if got := d.FireInterval(20, cfg.Progression.MaxAt, 0); got != 15 {
		t.Errorf("FireInterval(20, max) = %d, expected floor 15", got)
	}

	d.SetEnabled(false)
	d.SetInitialLevel(0.5)
	if got := d.Level(cfg.Progression.MaxAt, 0); got != 0.5 {
		t.Errorf("Level() with progression disabled = %g, expected 0.5", got)
	}
}

func TestDifficultyProgressionTypes(t *testing.T) {
	tests := []struct {
		name     string
		kind     string
		score    int
		ticks    int
		expected float64
	}{
		{"time half", "time", 0, 500, 0.5},
		{"time ignores score", "time", 1000, 0, 0},
		{"score half", "score", 500, 0, 0.5},
		{"none", "none", 1000, 1000, 0},
		{"unknown", "waves", 1000, 1000, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDifficultyManager(DifficultyConfig{
				Enabled:     true,
				Progression: ProgressionConfig{Type: tt.kind, MaxAt: 1000},
			})
			if got := d.Level(tt.score, tt.ticks); got != tt.expected {
				t.Errorf("Level(%d, %d) = %g, expected %g", tt.score, tt.ticks, got, tt.expected)
			}
		})
	}
}

func TestDifficultyInitialLevelClamped(t *testing.T) {
	d := NewDifficultyManager(DifficultyConfig{InitialLevel: 1.7})
	if got := d.Level(0, 0); got != 1 {
		t.Errorf("Level() = %g, expected 1", got)
	}
	d.SetInitialLevel(-3)
	if got := d.Level(0, 0); got != 0 {
		t.Errorf("Level() = %g, expected 0", got)
	}
}
