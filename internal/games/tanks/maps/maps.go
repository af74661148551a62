// Package maps loads tank battlefield maps from YAML files.
//
// A map is a square grid of tile glyphs plus the enemy roster of the level.
// This package only describes terrain; turning it into game objects is the
// game's job.
package maps

import (
	"errors"
	"fmt"
	"strings"
)

// Tile is a single layout glyph.
type Tile byte

const (
	TileEmpty       Tile = '.'
	TileBrick       Tile = 'B'
	TileHalfBrick   Tile = 'b' // Bottom half of the tile
	TileSteel       Tile = 'S'
	TileWater       Tile = 'W'
	TileBase        Tile = 'H'
	TilePlayerSpawn Tile = 'P'
	TileEnemySpawn  Tile = 'E'
)

// Valid returns true for known glyphs.
func (t Tile) Valid() bool {
	switch t {
	case TileEmpty, TileBrick, TileHalfBrick, TileSteel, TileWater,
		TileBase, TilePlayerSpawn, TileEnemySpawn:
		return true
	}
	return false
}

// Cell is a tile coordinate.
type Cell struct {
	Col, Row int
}

// Tier is an enemy tier letter, "a" through "d".
type Tier string

// Index returns the zero-based tier index, or -1 when unknown.
func (t Tier) Index() int {
	switch strings.ToLower(string(t)) {
	case "a":
		return 0
	case "b":
		return 1
	case "c":
		return 2
	case "d":
		return 3
	}
	return -1
}

// Enemy is one queued enemy tank.
type Enemy struct {
	Tier Tier
	Drop bool // Killing it spawns a powerup
}

// ErrInvalidMap is wrapped by every validation failure.
var ErrInvalidMap = errors.New("invalid map")

// Map is a parsed and validated battlefield.
type Map struct {
	ID          string
	Name        string
	Size        int
	Layout      []string
	Enemies     []Enemy
	PlayerSpawn Cell
	EnemySpawns []Cell
	Base        Cell
	FilePath    string
}

// Tile returns the glyph at (col, row). Out of range cells are empty.
func (m *Map) Tile(col, row int) Tile {
	if row < 0 || row >= len(m.Layout) || col < 0 || col >= len(m.Layout[row]) {
		return TileEmpty
	}
	return Tile(m.Layout[row][col])
}

// Count returns how many cells carry the given glyph.
func (m *Map) Count(t Tile) int {
	n := 0
	for _, row := range m.Layout {
		n += strings.Count(row, string(t))
	}
	return n
}

// validate checks the layout and fills the derived fields.
func (m *Map) validate() error {
	if m.ID == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidMap)
	}
	m.Size = len(m.Layout)
	if m.Size == 0 {
		return fmt.Errorf("%w %s: empty layout", ErrInvalidMap, m.ID)
	}

	m.EnemySpawns = nil
	players, bases := 0, 0
	for row, line := range m.Layout {
		if len(line) != m.Size {
			return fmt.Errorf("%w %s: row %d has %d tiles, expected %d", ErrInvalidMap, m.ID, row, len(line), m.Size)
		}
		for col := 0; col < len(line); col++ {
			t := Tile(line[col])
			if !t.Valid() {
				return fmt.Errorf("%w %s: unknown tile %q at %d,%d", ErrInvalidMap, m.ID, t, col, row)
			}
			switch t {
			case TilePlayerSpawn:
				players++
				m.PlayerSpawn = Cell{Col: col, Row: row}
			case TileEnemySpawn:
				m.EnemySpawns = append(m.EnemySpawns, Cell{Col: col, Row: row})
			case TileBase:
				bases++
				m.Base = Cell{Col: col, Row: row}
			}
		}
	}

	switch {
	case players != 1:
		return fmt.Errorf("%w %s: expected 1 player spawn, got %d", ErrInvalidMap, m.ID, players)
	case bases != 1:
		return fmt.Errorf("%w %s: expected 1 base, got %d", ErrInvalidMap, m.ID, bases)
	case len(m.EnemySpawns) == 0:
		return fmt.Errorf("%w %s: no enemy spawn", ErrInvalidMap, m.ID)
	case len(m.Enemies) == 0:
		return fmt.Errorf("%w %s: no enemies", ErrInvalidMap, m.ID)
	}
	for i, e := range m.Enemies {
		if e.Tier.Index() < 0 {
			return fmt.Errorf("%w %s: enemy %d has unknown tier %q", ErrInvalidMap, m.ID, i+1, e.Tier)
		}
	}
	return nil
}
