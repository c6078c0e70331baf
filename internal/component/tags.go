package component

import "fringe-client/internal/ecs"

const CTagLocalPlayer ecs.ComponentType = 8

// TagLocalPlayer marks the actor the camera follows and the attack-range
// highlight is drawn around.
type TagLocalPlayer struct{}

func (TagLocalPlayer) Type() ecs.ComponentType { return CTagLocalPlayer }
