package maps

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// YAMLMap represents the YAML structure for a map file.
type YAMLMap struct {
	ID      string      `yaml:"id"`
	Name    string      `yaml:"name"`
	Layout  []string    `yaml:"layout"`
	Enemies []YAMLGroup `yaml:"enemies"`
	Drops   []int       `yaml:"drops,omitempty"` // 1-based positions in the enemy queue
}

// YAMLGroup is a run of enemies of one tier.
type YAMLGroup struct {
	Tier  string `yaml:"tier"`
	Count int    `yaml:"count"`
}

// defaultDrops are the queue positions that carry a powerup when a map
// does not list its own.
var defaultDrops = []int{4, 11, 18}

// Parse parses and validates a YAML map.
func Parse(data []byte) (Map, error) {
	var ym YAMLMap
	if err := yaml.Unmarshal(data, &ym); err != nil {
		return Map{}, fmt.Errorf("yaml unmarshal: %w", err)
	}

	m := Map{
		ID:     ym.ID,
		Name:   ym.Name,
		Layout: ym.Layout,
	}
	if m.Name == "" {
		m.Name = ym.ID
	}

	for _, g := range ym.Enemies {
		for range g.Count {
			m.Enemies = append(m.Enemies, Enemy{Tier: Tier(g.Tier)})
		}
	}

	drops := ym.Drops
	if drops == nil {
		drops = defaultDrops
	}
	for _, pos := range drops {
		if pos >= 1 && pos <= len(m.Enemies) {
			m.Enemies[pos-1].Drop = true
		}
	}

	if err := m.validate(); err != nil {
		return Map{}, err
	}
	return m, nil
}
