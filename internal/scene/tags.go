package scene

import "strings"

// Tags is a fixed set of capability labels carried by an object.
// Interaction code matches on tags instead of concrete entity types.
type Tags uint16

const (
	TagWall Tags = 1 << iota
	TagBrick
	TagSteel
	TagBorder
	TagBlockMove
	TagBullet
	TagTank
	TagPlayer
	TagEnemy
	TagBase
	TagPowerup
	TagWater

	TagNone Tags = 0
)

var tagNames = [...]struct {
	tag  Tags
	name string
}{
	{TagWall, "wall"},
	{TagBrick, "brick"},
	{TagSteel, "steel"},
	{TagBorder, "border"},
	{TagBlockMove, "block-move"},
	{TagBullet, "bullet"},
	{TagTank, "tank"},
	{TagPlayer, "player"},
	{TagEnemy, "enemy"},
	{TagBase, "base"},
	{TagPowerup, "powerup"},
	{TagWater, "water"},
}

// Has returns true if every tag in t is present.
func (s Tags) Has(t Tags) bool {
	return s&t == t
}

// HasAll is an alias of Has that reads better with several tags.
func (s Tags) HasAll(t Tags) bool {
	return s.Has(t)
}

// HasAny returns true if at least one tag in t is present.
func (s Tags) HasAny(t Tags) bool {
	return s&t != 0
}

// With returns s with the tags in t added.
func (s Tags) With(t Tags) Tags {
	return s | t
}

// Without returns s with the tags in t removed.
func (s Tags) Without(t Tags) Tags {
	return s &^ t
}

func (s Tags) String() string {
	if s == TagNone {
		return "none"
	}
	var parts []string
	for _, tn := range tagNames {
		if s&tn.tag != 0 {
			parts = append(parts, tn.name)
		}
	}
	return strings.Join(parts, "|")
}
