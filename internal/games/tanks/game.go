// Package tanks implements a Battle City style tank game on top of the scene
// tree and the collision detector.
package tanks

import (
	"fmt"
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tanks/internal/config"
	"github.com/vovakirdan/tui-tanks/internal/core"
	"github.com/vovakirdan/tui-tanks/internal/games/tanks/maps"
	"github.com/vovakirdan/tui-tanks/internal/registry"
)

// Mode represents the game mode.
type Mode string

const (
	ModeCampaign Mode = "campaign"
	ModeEndless  Mode = "endless"
)

// levelClearDelay is how long the "cleared" overlay stays up (~1.5s at 60 FPS).
const levelClearDelay = 90

// Package-level settings applied on the next Reset.
var (
	configPath       string
	difficultyPreset config.DifficultyPreset
	startMap         string
	mapDir           string
	logger           = log.New(io.Discard)
)

// SetConfigPath sets a custom config file path.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset.
func SetDifficultyPreset(preset config.DifficultyPreset) {
	difficultyPreset = preset
}

// SetStartMap selects the map the next game starts on. Empty means the first.
func SetStartMap(id string) {
	startMap = id
}

// SetMapDir loads maps from a directory instead of the built-in set.
func SetMapDir(dir string) {
	mapDir = dir
}

// SetLogger routes game logs. Nil discards.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

// Game implements the tank game.
type Game struct {
	mode   Mode
	cfg    config.TanksConfig
	maps   []maps.Map
	rng    *rand.Rand
	logger *log.Logger

	selected string // Map chosen for this instance; overrides startMap
	mapIndex int
	cycle    int // Endless loops completed
	world    *World
	level    *Level

	tick       uint64
	score      int // Points from finished levels
	lives      int
	playerTier Tier

	gameOver        bool
	won             bool
	paused          bool
	tooSmall        bool
	levelCleared    bool
	levelClearTicks int
	loadErr         error

	screenW int
	screenH int
}

// New creates a new campaign mode game.
func New() *Game {
	return &Game{mode: ModeCampaign}
}

// NewEndless creates a new endless mode game.
func NewEndless() *Game {
	return &Game{mode: ModeEndless}
}

func init() {
	registry.Register("tanks", func() registry.Game {
		return New()
	})
	registry.Register("tanks_endless", func() registry.Game {
		return NewEndless()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == ModeEndless {
		return "tanks_endless"
	}
	return "tanks"
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeEndless {
		return "Tanks (Endless)"
	}
	return "Tanks"
}

// Reset initializes or restarts the game.
func (g *Game) Reset(rc core.RuntimeConfig) {
	g.logger = logger
	g.rng = rand.New(rand.NewSource(rc.Seed))
	g.screenW = rc.ScreenW
	g.screenH = rc.ScreenH
	g.tooSmall = !fits(rc.ScreenW, rc.ScreenH)

	cfg, err := config.LoadTanks(configPath)
	if err != nil {
		g.logger.Warn("config load failed, using defaults", "path", configPath, "err", err)
		cfg = config.DefaultTanksConfig()
	}
	if difficultyPreset != "" {
		config.ApplyTanksPreset(&cfg, difficultyPreset)
	}
	g.cfg = cfg

	g.maps, g.loadErr = loadMaps()
	g.tick = 0
	g.score = 0
	g.lives = cfg.Player.Lives
	g.playerTier = TierA
	g.cycle = 0
	g.mapIndex = 0
	g.gameOver = false
	g.won = false
	g.paused = false
	g.levelCleared = false
	g.levelClearTicks = 0
	g.world = nil
	g.level = nil

	if g.loadErr != nil {
		g.logger.Error("no maps", "dir", mapDir, "err", g.loadErr)
		return
	}
	want := g.selected
	if want == "" {
		want = startMap
	}
	for i, m := range g.maps {
		if m.ID == want {
			g.mapIndex = i
		}
	}
	g.loadLevel()
}

func loadMaps() ([]maps.Map, error) {
	loader := maps.Builtin()
	if mapDir != "" {
		loader = maps.NewLoader(mapDir)
	}
	all, err := loader.LoadAll()
	if err != nil {
		return nil, err
	}
	if len(all) == 0 {
		return nil, fmt.Errorf("tanks: %w: no maps found", maps.ErrInvalidMap)
	}
	return all, nil
}

// loadLevel builds the world for the current map.
func (g *Game) loadLevel() {
	m := &g.maps[g.mapIndex%len(g.maps)]
	g.world = NewWorld(g.cfg, m, g.rng.Int63(), g.logger)
	g.world.score = g.score
	if g.mode == ModeEndless && g.cycle > 0 {
		g.world.difficulty.SetInitialLevel(g.cfg.Difficulty.InitialLevel + 0.1*float64(g.cycle))
	}
	g.level = NewLevel(g.world, m, g.lives)
	g.level.playerTier = g.playerTier
	g.levelCleared = false
	g.levelClearTicks = 0
	g.logger.Info("level loaded", "map", m.ID, "mode", g.mode, "cycle", g.cycle)
}

// advanceLevel moves to the next map once the clear overlay is done.
func (g *Game) advanceLevel() {
	g.score = g.world.score
	g.lives = g.level.lives
	g.playerTier = g.level.playerTier

	g.mapIndex++
	if g.mapIndex >= len(g.maps) {
		if g.mode == ModeCampaign {
			g.won = true
			return
		}
		g.mapIndex = 0
		g.cycle++
	}
	g.loadLevel()
}

// Step advances the game by one tick.
func (g *Game) Step(input core.InputFrame) core.StepResult {
	g.tick++

	if input.Has(core.ActionRestart) && (g.gameOver || g.won) {
		g.Reset(core.RuntimeConfig{
			Seed:    g.rng.Int63(),
			ScreenW: g.screenW,
			ScreenH: g.screenH,
		})
		return core.StepResult{State: g.State()}
	}

	if input.Has(core.ActionPause) {
		g.paused = !g.paused
	}

	if g.world == nil || g.gameOver || g.won || g.paused || g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if g.levelCleared {
		g.levelClearTicks++
		if g.levelClearTicks >= levelClearDelay {
			g.advanceLevel()
		}
		return core.StepResult{State: g.State()}
	}

	g.world.Step(input)

	switch {
	case g.level.Over():
		g.gameOver = true
	case g.level.Cleared():
		g.levelCleared = true
		g.levelClearTicks = 0
	}
	return core.StepResult{State: g.State()}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.Score(),
		GameOver: g.gameOver || g.won,
		Won:      g.won,
		Paused:   g.paused,
	}
}

// Score returns the points collected so far.
func (g *Game) Score() int {
	if g.world != nil {
		return g.world.score
	}
	return g.score
}

// World returns the world of the current level, or nil before Reset.
func (g *Game) World() *World { return g.world }

// Level returns the script of the current level, or nil before Reset.
func (g *Game) Level() *Level { return g.level }

// SelectMap picks the map this game starts on at the next Reset.
func (g *Game) SelectMap(id string) {
	g.selected = id
}

// Stage returns the 1-indexed stage being played.
func (g *Game) Stage() int {
	return g.mapIndex + 1
}

// MapID returns the current map identifier.
func (g *Game) MapID() string {
	if len(g.maps) == 0 {
		return ""
	}
	return g.maps[g.mapIndex%len(g.maps)].ID
}
