package tanks

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"

	"github.com/vovakirdan/tui-tanks/internal/scene"
)

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying      GameStateType = "playing"
	StateLevelCleared GameStateType = "level_cleared"
	StateGameOver     GameStateType = "game_over"
	StateWin          GameStateType = "win"
	StatePaused       GameStateType = "paused"
	StatePausedSmall  GameStateType = "paused_small_window"
)

// Snapshot captures the game state for determinism testing and replay.
type Snapshot struct {
	Tick        uint64
	Mode        string
	Map         string
	Stage       int // 1-indexed
	Score       int
	Lives       int
	EnemiesLeft int
	Tanks       int
	Bullets     int
	Objects     int
	PlayerX     float64
	PlayerY     float64
	State       GameStateType
	Digest      uint64 // Hash of every live object's tags and world box
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.won:
		state = StateWin
	case g.gameOver:
		state = StateGameOver
	case g.levelCleared:
		state = StateLevelCleared
	case g.paused:
		state = StatePaused
	}

	s := Snapshot{
		Tick:  g.tick,
		Mode:  string(g.mode),
		Map:   g.MapID(),
		Stage: g.mapIndex + 1,
		Score: g.Score(),
		State: state,
	}
	if g.level != nil {
		s.Lives = g.level.Lives()
		s.EnemiesLeft = g.level.EnemiesLeft()
	}
	if w := g.world; w != nil {
		s.Tanks = len(w.tanks)
		s.Bullets = len(w.bullets)
		s.Objects = w.tree.Len()
		if p := w.Player(); p != nil {
			pos := p.obj.WorldPosition()
			s.PlayerX, s.PlayerY = pos.X, pos.Y
		}
		s.Digest = w.Digest()
	}
	return s
}

// Digest hashes the tags, rotation and world box of every object in tree
// order. Two worlds that ran the same inputs from the same seed have the
// same digest.
func (w *World) Digest() uint64 {
	d := xxhash.New()
	var buf [8]byte
	putF := func(f float64) {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(f))
		_, _ = d.Write(buf[:])
	}
	w.root.Traverse(func(o *scene.Object) bool {
		binary.LittleEndian.PutUint64(buf[:], uint64(o.Tags)<<16|uint64(o.Role)<<8|uint64(o.Rotation))
		_, _ = d.Write(buf[:])
		box := o.WorldBoundingBox()
		putF(box.Min.X)
		putF(box.Min.Y)
		putF(box.Max.X)
		putF(box.Max.Y)
		return true
	})
	binary.LittleEndian.PutUint64(buf[:], uint64(w.score))
	_, _ = d.Write(buf[:])
	return d.Sum64()
}
