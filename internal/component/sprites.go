package component

import (
	"fringe-client/internal/ecs"
	"fringe-client/internal/sprite"
)

const CSprites ecs.ComponentType = 4

// Sprites is an actor's equipment. It is stored by pointer because the
// drawable holds cache references that must not be copied.
type Sprites struct {
	Slots    *sprite.SlotTable
	Drawable *sprite.Drawable
	Result   sprite.Result
}

func (*Sprites) Type() ecs.ComponentType { return CSprites }
