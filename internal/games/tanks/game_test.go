package tanks

import (
	"testing"

	"github.com/vovakirdan/tui-tanks/internal/core"
	"github.com/vovakirdan/tui-tanks/internal/registry"
)

func runGame(seed int64, ticks int) *Game {
	g := New()
	g.Reset(core.RuntimeConfig{Seed: seed, ScreenW: 80, ScreenH: 24})

	input := core.NewInputFrame()
	for i := range ticks {
		input.Clear()
		switch {
		case i%120 < 40:
			input.Set(core.ActionUp)
		case i%120 < 60:
			input.Set(core.ActionRight)
		case i%120 < 90:
			input.Set(core.ActionLeft)
		}
		if i%15 == 0 {
			input.Set(core.ActionFire)
		}
		g.Step(input)
	}
	return g
}

func TestDeterminism(t *testing.T) {
	// Two games with the same seed and inputs end in the same state.
	s1 := runGame(12345, 900).Snapshot()
	s2 := runGame(12345, 900).Snapshot()

	if s1 != s2 {
		t.Errorf("snapshots differ:\n%+v\n%+v", s1, s2)
	}
	if s1.Digest == 0 {
		t.Error("Digest = 0, expected a hash of the world")
	}
	if s1.Tick != 900 {
		t.Errorf("Tick = %d, expected 900", s1.Tick)
	}
}

func TestGameRegistered(t *testing.T) {
	for _, id := range []string{"tanks", "tanks_endless"} {
		g, err := registry.Create(id)
		if err != nil {
			t.Fatalf("Create(%q) error = %v", id, err)
		}
		if g.ID() != id {
			t.Errorf("ID() = %q, expected %q", g.ID(), id)
		}
	}
}

func TestGameReset(t *testing.T) {
	g := New()
	g.Reset(core.RuntimeConfig{Seed: 1, ScreenW: 80, ScreenH: 24})

	if g.World() == nil || g.Level() == nil {
		t.Fatal("Reset() should build the first level")
	}
	if g.MapID() != "01" {
		t.Errorf("MapID() = %q, expected %q", g.MapID(), "01")
	}
	st := g.State()
	if st.Score != 0 || st.GameOver || st.Paused {
		t.Errorf("State() = %+v, expected a fresh game", st)
	}
}

func TestGamePauseAndTooSmall(t *testing.T) {
	g := New()
	g.Reset(core.RuntimeConfig{Seed: 1, ScreenW: 80, ScreenH: 24})

	pause := core.NewInputFrame()
	pause.Set(core.ActionPause)
	g.Step(pause)
	if !g.State().Paused {
		t.Fatal("Paused = false after the pause key")
	}
	tick := g.World().Tick()
	g.Step(core.NewInputFrame())
	if g.World().Tick() != tick {
		t.Error("world advanced while paused")
	}

	small := New()
	small.Reset(core.RuntimeConfig{Seed: 1, ScreenW: 20, ScreenH: 10})
	small.Step(core.NewInputFrame())
	if got := small.Snapshot().State; got != StatePausedSmall {
		t.Errorf("State = %q, expected %q", got, StatePausedSmall)
	}
}

func TestRenderDrawsField(t *testing.T) {
	g := New()
	g.Reset(core.RuntimeConfig{Seed: 1, ScreenW: 80, ScreenH: 24})
	for range 70 {
		g.Step(core.NewInputFrame())
	}

	screen := core.NewScreen(80, 24)
	g.Render(screen)

	counts := map[rune]int{}
	for y := range screen.Height() {
		for x := range screen.Width() {
			counts[screen.Get(x, y)]++
		}
	}
	if counts['▒'] == 0 {
		t.Error("no brick cells drawn")
	}
	if counts['♛'] == 0 {
		t.Error("base not drawn")
	}
	if counts['▲'] != 1 {
		t.Errorf("barrel glyphs = %d, expected the player's only", counts['▲'])
	}
}

func TestViewportFits(t *testing.T) {
	tests := []struct {
		w, h int
		ok   bool
		rows int
	}{
		{80, 24, true, 20},
		{120, 40, true, 26},
		{40, 24, true, 19},
		{20, 10, false, 0},
	}
	for _, tc := range tests {
		vp, ok := newViewport(tc.w, tc.h, 832)
		if ok != tc.ok || vp.rows != tc.rows {
			t.Errorf("newViewport(%d, %d) = %d rows, %v; expected %d rows, %v", tc.w, tc.h, vp.rows, ok, tc.rows, tc.ok)
		}
	}
}

func TestGameSelectMap(t *testing.T) {
	g := New()
	g.SelectMap("02")
	g.Reset(core.RuntimeConfig{Seed: 1, ScreenW: 80, ScreenH: 24})

	if g.MapID() != "02" || g.Stage() != 2 {
		t.Errorf("MapID(), Stage() = %q, %d; expected %q, 2", g.MapID(), g.Stage(), "02")
	}

	g.SelectMap("missing")
	g.Reset(core.RuntimeConfig{Seed: 1, ScreenW: 80, ScreenH: 24})
	if g.MapID() != "01" {
		t.Errorf("MapID() with an unknown map = %q, expected the first map", g.MapID())
	}
}
