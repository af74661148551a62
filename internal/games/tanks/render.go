package tanks

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/vovakirdan/tui-tanks/internal/core"
	"github.com/vovakirdan/tui-tanks/internal/scene"
)

const (
	hudHeight   = 2
	maxViewRows = 26 // One cell per 32px at the default field size
	minViewRows = 13 // One cell per tile
)

// viewport maps field pixels onto screen cells. A cell is twice as tall as
// it is wide, like a terminal glyph.
type viewport struct {
	x, y       int // Screen cell of the field's top-left corner
	cols, rows int
	cellW      float64
	cellH      float64
}

func fits(screenW, screenH int) bool {
	_, ok := newViewport(screenW, screenH, 1)
	return ok
}

func newViewport(screenW, screenH int, fieldSize float64) (viewport, bool) {
	rows := min(maxViewRows, screenH-hudHeight-2)
	if cols := screenW - 2; rows*2 > cols {
		rows = cols / 2
	}
	if rows < minViewRows {
		return viewport{}, false
	}
	cols := rows * 2
	return viewport{
		x:     (screenW-cols)/2,
		y:     hudHeight + 1,
		cols:  cols,
		rows:  rows,
		cellW: fieldSize / float64(cols),
		cellH: fieldSize / float64(rows),
	}, true
}

// span returns the cells whose centers lie inside [lo, hi). A box smaller
// than a cell still gets the cell its center falls in.
func span(lo, hi, cell float64, n int) (int, int) {
	first := int(math.Ceil(lo/cell - 0.5))
	last := int(math.Ceil(hi/cell-0.5)) - 1
	if first > last {
		first = int(math.Floor((lo + hi) / 2 / cell))
		last = first
	}
	return max(first, 0), min(last, n-1)
}

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	g.tooSmall = !fits(dst.Width(), dst.Height())
	g.renderHUD(dst)

	switch {
	case g.loadErr != nil:
		g.renderOverlay(dst, "No maps", g.loadErr.Error())
		return
	case g.tooSmall:
		g.renderOverlay(dst, "Window too small", "Resize to continue")
		return
	case g.world == nil:
		return
	}

	vp, _ := newViewport(dst.Width(), dst.Height(), g.world.fieldSize)
	dst.DrawBox(vp.x-1, vp.y-1, vp.cols+2, vp.rows+2, core.ColorGray)
	g.world.draw(dst, vp)

	switch {
	case g.won:
		g.renderOverlay(dst, "Victory!", fmt.Sprintf("Final Score: %d", g.Score()))
	case g.gameOver:
		g.renderOverlay(dst, "Game Over", "Press R to restart")
	case g.levelCleared:
		g.renderOverlay(dst, fmt.Sprintf("Stage %d cleared!", g.mapIndex+1), g.MapID())
	case g.paused:
		g.renderOverlay(dst, "Paused", "Press P to continue")
	}
}

// draw rasterizes every visible object, lowest layer first and in tree order
// within a layer.
func (w *World) draw(dst *core.Screen, vp viewport) {
	type item struct {
		obj    *scene.Object
		sprite *Sprite
	}
	var items []item
	w.field.Traverse(func(o *scene.Object) bool {
		if s := spriteOf(o); s != nil && !s.Hidden {
			items = append(items, item{o, s})
		}
		return true
	})
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].sprite.Layer < items[j].sprite.Layer
	})

	for _, it := range items {
		box := it.obj.WorldBoundingBox()
		if box.Max.X <= 0 || box.Max.Y <= 0 || box.Min.X >= w.fieldSize || box.Min.Y >= w.fieldSize {
			continue
		}
		x0, x1 := span(box.Min.X, box.Max.X, vp.cellW, vp.cols)
		y0, y1 := span(box.Min.Y, box.Max.Y, vp.cellH, vp.rows)
		for cy := y0; cy <= y1; cy++ {
			for cx := x0; cx <= x1; cx++ {
				dst.SetColored(vp.x+cx, vp.y+cy, it.sprite.Glyph, it.sprite.Color)
			}
		}
		if it.sprite.Accent != 0 {
			c := box.Center()
			cx := core.Clamp(int(c.X/vp.cellW), 0, vp.cols-1)
			cy := core.Clamp(int(c.Y/vp.cellH), 0, vp.rows-1)
			dst.SetColored(vp.x+cx, vp.y+cy, it.sprite.Accent, it.sprite.Color)
		}
	}
}

// renderHUD draws the top status bar.
func (g *Game) renderHUD(dst *core.Screen) {
	var b strings.Builder
	fmt.Fprintf(&b, " %s — Score: %d", g.Title(), g.Score())
	if g.level != nil {
		fmt.Fprintf(&b, "  Stage: %d  Lives: %d  Enemies: %d  Tier: %s",
			g.mapIndex+1, g.level.Lives(), g.level.EnemiesLeft(), g.level.PlayerTier())
	}
	if g.world != nil && g.world.Frozen() {
		b.WriteString("  FROZEN")
	}
	dst.DrawText(0, 0, b.String())
	dst.DrawHLine(0, 1, dst.Width(), '─')
}

// renderOverlay draws a centered overlay message.
func (g *Game) renderOverlay(dst *core.Screen, line1, line2 string) {
	boxW := max(utf8.RuneCountInString(line1), utf8.RuneCountInString(line2)) + 4
	boxH := 5
	boxX := (dst.Width() - boxW) / 2
	boxY := (dst.Height() - boxH) / 2

	dst.DrawRect(boxX, boxY, boxW, boxH, ' ', core.ColorDefault)
	dst.DrawBox(boxX, boxY, boxW, boxH, core.ColorBrightWhite)
	dst.DrawTextCentered(boxY+1, line1)
	dst.DrawTextCentered(boxY+3, line2)
}
