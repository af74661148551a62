package tanks

import (
	"github.com/vovakirdan/tui-tanks/internal/collision"
	"github.com/vovakirdan/tui-tanks/internal/core"
	"github.com/vovakirdan/tui-tanks/internal/games/tanks/maps"
	"github.com/vovakirdan/tui-tanks/internal/scene"
)

// Sub-tile divisions: a brick tile is 4x4 bricks, a steel tile 2x2 blocks.
const (
	brickDivs = 4
	steelDivs = 2
)

// borderThickness is the depth of the walls framing the field.
const borderThickness = 64

// Base is the component of the eagle the player defends.
type Base struct {
	obj       *scene.Object
	destroyed bool
}

// Destroyed reports whether the base has been hit.
func (b *Base) Destroyed() bool { return b.destroyed }

func (b *Base) destroy() bool {
	if b.destroyed {
		return false
	}
	b.destroyed = true
	if s := spriteOf(b.obj); s != nil {
		s.Glyph = '✖'
		s.Color = core.ColorGray
	}
	return true
}

// cellCenter returns the field position of a tile's center.
func cellCenter(c maps.Cell, tile float64) core.Vector {
	return core.Vec((float64(c.Col)+0.5)*tile, (float64(c.Row)+0.5)*tile)
}

// buildTerrain creates one group object per non-empty tile and the wall
// pieces inside it. Walls and the base get inactive colliders: they are
// struck, they never strike.
func (w *World) buildTerrain(m *maps.Map) {
	tile := w.cfg.Field.TileSize
	terrain := w.tree.New(core.Vector{}, core.Dims(w.fieldSize, w.fieldSize))
	w.field.Add(terrain)

	for row := 0; row < m.Size; row++ {
		for col := 0; col < m.Size; col++ {
			t := m.Tile(col, row)
			if t == maps.TileEmpty || t == maps.TilePlayerSpawn || t == maps.TileEnemySpawn {
				continue
			}
			group := w.tree.New(core.Vec(float64(col)*tile, float64(row)*tile), core.Dims(tile, tile))
			terrain.Add(group)

			switch t {
			case maps.TileBrick:
				w.addPieces(group, brickDivs, 0)
			case maps.TileHalfBrick:
				w.addPieces(group, brickDivs, brickDivs/2)
			case maps.TileSteel:
				w.addPieces(group, steelDivs, 0)
			case maps.TileWater:
				w.addWall(group, core.Vector{}, core.Dims(tile, tile), scene.TagWater|scene.TagBlockMove)
			case maps.TileBase:
				w.addBase(group, tile)
			}
		}
	}
}

// addPieces fills a tile group with divs x divs pieces, skipping the first
// fromRow rows.
func (w *World) addPieces(group *scene.Object, divs, fromRow int) {
	piece := w.cfg.Field.TileSize / float64(divs)
	tags := scene.TagWall | scene.TagBrick | scene.TagBlockMove
	if divs == steelDivs {
		tags = scene.TagWall | scene.TagSteel | scene.TagBlockMove
	}
	for r := fromRow; r < divs; r++ {
		for c := 0; c < divs; c++ {
			w.addWall(group, core.Vec(float64(c)*piece, float64(r)*piece), core.Dims(piece, piece), tags)
		}
	}
}

func (w *World) addWall(parent *scene.Object, pos core.Vector, dims core.Dimensions, tags scene.Tags) *scene.Object {
	o := w.tree.New(pos, dims)
	o.Role = RoleWall
	o.Tags = tags
	o.Visual = wallSprite(tags)
	parent.Add(o)
	c := collision.NewBoxCollider(o)
	c.SetActive(false)
	w.system.Register(c)
	return o
}

func wallSprite(tags scene.Tags) *Sprite {
	switch {
	case tags.Has(scene.TagBrick):
		return &Sprite{Glyph: '▒', Color: core.ColorOrange, Layer: layerTerrain}
	case tags.Has(scene.TagSteel):
		return &Sprite{Glyph: '█', Color: core.ColorBrightWhite, Layer: layerTerrain}
	case tags.Has(scene.TagWater):
		return &Sprite{Glyph: '≈', Color: core.ColorBlue, Layer: layerTerrain}
	}
	return nil
}

func (w *World) addBase(group *scene.Object, tile float64) {
	o := w.tree.New(core.Vector{}, core.Dims(tile, tile))
	o.Role = RoleBase
	o.Tags = scene.TagBase | scene.TagBlockMove
	o.Visual = &Sprite{Glyph: '♛', Color: core.ColorBrightMagenta, Layer: layerTerrain}
	group.Add(o)
	c := collision.NewBoxCollider(o)
	c.SetActive(false)
	w.system.Register(c)
	w.base = &Base{obj: o}
}

// buildBorders frames the field with indestructible walls lying just
// outside it.
func (w *World) buildBorders() {
	size, t := w.fieldSize, float64(borderThickness)
	tags := scene.TagWall | scene.TagBorder | scene.TagBlockMove
	w.addWall(w.field, core.Vec(-t, -t), core.Dims(size+2*t, t), tags)
	w.addWall(w.field, core.Vec(-t, size), core.Dims(size+2*t, t), tags)
	w.addWall(w.field, core.Vec(-t, 0), core.Dims(t, size), tags)
	w.addWall(w.field, core.Vec(size, 0), core.Dims(t, size), tags)
}
