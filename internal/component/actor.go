package component

import (
	"fringe-client/internal/ecs"
	"fringe-client/internal/itemdb"
	"fringe-client/internal/zindex"
)

const CActor ecs.ComponentType = 2

// Actor is the depth and pose state of a live actor.
type Actor struct {
	Category    zindex.Category
	Alive       zindex.Category // restored when a corpse revives
	Facing      itemdb.Facing
	Dead        bool
	Gender      itemdb.Gender
	AttackRange int // tiles
	YDiff       int // vertical offset while walking between tiles
	SortOffset  int
}

func (Actor) Type() ecs.ComponentType { return CActor }

// SortY is the pixel row the actor sorts by before its category offset.
func (a Actor) SortY(p Position) int {
	return p.Y - a.YDiff - a.SortOffset
}
