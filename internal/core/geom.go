// Package core provides fundamental types and utilities for the tanks game.
// It contains no external dependencies (especially no Bubble Tea) to keep
// simulation logic pure and testable.
package core

import (
	"fmt"
	"math"
)

// Vector is a 2D point or direction in field space.
// Y grows downward, matching screen coordinates.
type Vector struct {
	X, Y float64
}

// Vec is shorthand for Vector{X: x, Y: y}.
func Vec(x, y float64) Vector {
	return Vector{X: x, Y: y}
}

// Add returns v + o.
func (v Vector) Add(o Vector) Vector {
	return Vector{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vector) Sub(o Vector) Vector {
	return Vector{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale returns v multiplied by s.
func (v Vector) Scale(s float64) Vector {
	return Vector{X: v.X * s, Y: v.Y * s}
}

// Clone returns a copy of v. Vectors are values; this exists so call sites
// read the same as the rest of the geometry API.
func (v Vector) Clone() Vector {
	return v
}

// Length returns the euclidean length of v.
func (v Vector) Length() float64 {
	return math.Hypot(v.X, v.Y)
}

// DistanceTo returns the euclidean distance between v and o.
func (v Vector) DistanceTo(o Vector) float64 {
	return v.Sub(o).Length()
}

func (v Vector) String() string {
	return fmt.Sprintf("(%g,%g)", v.X, v.Y)
}

// Dimensions is an unrotated width/height pair.
type Dimensions struct {
	Width, Height float64
}

// Dims is shorthand for Dimensions{Width: w, Height: h}.
func Dims(w, h float64) Dimensions {
	return Dimensions{Width: w, Height: h}
}

// Rotated returns the footprint for the given rotation: width and height are
// swapped when facing Left or Right.
func (d Dimensions) Rotated(r Rotation) Dimensions {
	if r.IsHorizontal() {
		return Dimensions{Width: d.Height, Height: d.Width}
	}
	return d
}

// Vector returns the dimensions as a {width, height} vector.
func (d Dimensions) Vector() Vector {
	return Vector{X: d.Width, Y: d.Height}
}

// BoundingBox is an axis-aligned box. Min is the top-left corner and Max the
// bottom-right one; Min <= Max holds on both axes.
type BoundingBox struct {
	Min, Max Vector
}

// NewBoundingBox creates a box from two corners in any order.
func NewBoundingBox(a, b Vector) BoundingBox {
	return BoundingBox{
		Min: Vector{X: math.Min(a.X, b.X), Y: math.Min(a.Y, b.Y)},
		Max: Vector{X: math.Max(a.X, b.X), Y: math.Max(a.Y, b.Y)},
	}
}

// BoxAt creates a box with its top-left corner at pos and the given size.
func BoxAt(pos Vector, d Dimensions) BoundingBox {
	return BoundingBox{Min: pos, Max: pos.Add(d.Vector())}
}

// Width returns the horizontal extent of the box.
func (b BoundingBox) Width() float64 {
	return b.Max.X - b.Min.X
}

// Height returns the vertical extent of the box.
func (b BoundingBox) Height() float64 {
	return b.Max.Y - b.Min.Y
}

// Intersects returns true if the two boxes overlap.
// Edges that only touch do not count as an overlap, so an object resting
// flush against a wall is not colliding with it.
func (b BoundingBox) Intersects(o BoundingBox) bool {
	if b.Min.X >= o.Max.X || o.Min.X >= b.Max.X {
		return false
	}
	if b.Min.Y >= o.Max.Y || o.Min.Y >= b.Max.Y {
		return false
	}
	return true
}

// Union returns the smallest box containing both b and o.
func (b BoundingBox) Union(o BoundingBox) BoundingBox {
	return BoundingBox{
		Min: Vector{X: math.Min(b.Min.X, o.Min.X), Y: math.Min(b.Min.Y, o.Min.Y)},
		Max: Vector{X: math.Max(b.Max.X, o.Max.X), Y: math.Max(b.Max.Y, o.Max.Y)},
	}
}

// Center returns the center point of the box.
func (b BoundingBox) Center() Vector {
	return Vector{X: (b.Min.X + b.Max.X) / 2, Y: (b.Min.Y + b.Max.Y) / 2}
}

// DistanceCenterToCenter returns the distance between the centers of b and o.
func (b BoundingBox) DistanceCenterToCenter(o BoundingBox) float64 {
	return b.Center().DistanceTo(o.Center())
}

// Contains returns true if the point is inside the box.
// The right and bottom edges are exclusive.
func (b BoundingBox) Contains(p Vector) bool {
	return p.X >= b.Min.X && p.X < b.Max.X && p.Y >= b.Min.Y && p.Y < b.Max.Y
}

// ContainsBox returns true if o lies entirely inside b (edges inclusive).
func (b BoundingBox) ContainsBox(o BoundingBox) bool {
	return o.Min.X >= b.Min.X && o.Max.X <= b.Max.X &&
		o.Min.Y >= b.Min.Y && o.Max.Y <= b.Max.Y
}

// Translate returns the box moved by v.
func (b BoundingBox) Translate(v Vector) BoundingBox {
	return BoundingBox{Min: b.Min.Add(v), Max: b.Max.Add(v)}
}

func (b BoundingBox) String() string {
	return fmt.Sprintf("[%v %v]", b.Min, b.Max)
}

// Rotation is an axis-aligned facing. There is no rotation matrix: a rotation
// only changes the footprint of the object it belongs to.
type Rotation uint8

const (
	Up Rotation = iota
	Down
	Left
	Right
)

// Rotations lists every facing in declaration order.
var Rotations = [...]Rotation{Up, Down, Left, Right}

// IsHorizontal returns true for Left and Right.
func (r Rotation) IsHorizontal() bool {
	return r == Left || r == Right
}

// Vector returns the unit movement direction for the facing.
func (r Rotation) Vector() Vector {
	switch r {
	case Up:
		return Vector{Y: -1}
	case Down:
		return Vector{Y: 1}
	case Left:
		return Vector{X: -1}
	case Right:
		return Vector{X: 1}
	}
	return Vector{}
}

// Opposite returns the reverse facing.
func (r Rotation) Opposite() Rotation {
	switch r {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	default:
		return Left
	}
}

func (r Rotation) String() string {
	switch r {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "unknown"
	}
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
