package component

import (
	"fringe-client/internal/ecs"
	"fringe-client/internal/render"
)

const CRenderable ecs.ComponentType = 3

// Renderable is what an actor draws when it has no sprite layers, plus its
// name label.
type Renderable struct {
	Base      *render.Image
	Label     string
	ShowLabel bool
}

func (Renderable) Type() ecs.ComponentType { return CRenderable }
