// Package system holds the per-tick behaviours that drive the demo town:
// NPC movement and path finding for the navigation overlay.
package system

import (
	"context"
	"math"
	"math/rand"

	"fringe-client/internal/component"
	"fringe-client/internal/ecs"
	"fringe-client/internal/session"
)

// Behavior selects how a townsperson moves.
type Behavior uint8

const (
	BehaviorWander   Behavior = iota // random steps
	BehaviorFollow                   // approaches the local player when in sight
	BehaviorCowardly                 // keeps away from the local player when in sight
)

// Wanderer moves every live non-player actor one step per call.
type Wanderer struct {
	Sight  int     // tiles
	Chance float64 // probability an idle actor steps on a call
	Rand   *rand.Rand
	// Behaviors overrides BehaviorWander for specific actors.
	Behaviors map[ecs.EntityID]Behavior
}

// Step moves the actors of s and returns how many moved.
func (w *Wanderer) Step(ctx context.Context, s *session.Session) (int, error) {
	world := s.World()
	tile := s.Map().TileSize
	player := s.Player()
	px, py, havePlayer := 0, 0, false
	if p, ok := world.Get(player, component.CPosition).(component.Position); ok {
		px, py = p.Tile(tile)
		havePlayer = true
	}

	moved := 0
	for _, id := range world.Query(component.CActor, component.CPosition) {
		if id == player {
			continue
		}
		a := world.Get(id, component.CActor).(component.Actor)
		if a.Dead {
			continue
		}
		x, y := world.Get(id, component.CPosition).(component.Position).Tile(tile)

		beh := w.Behaviors[id]
		inSight := havePlayer && distance(x, y, px, py) <= float64(w.Sight)
		var ok bool
		var err error
		switch {
		case beh == BehaviorFollow && inSight:
			ok, err = w.approach(ctx, s, id, px-x, py-y)
		case beh == BehaviorCowardly && inSight:
			ok, err = w.approach(ctx, s, id, x-px, y-py)
		default:
			ok, err = w.wander(ctx, s, id)
		}
		if err != nil {
			return moved, err
		}
		if ok {
			moved++
		}
	}
	return moved, nil
}

// approach steps along (dx, dy), horizontal first. An actor already next to
// its target stays put.
func (w *Wanderer) approach(ctx context.Context, s *session.Session, id ecs.EntityID, dx, dy int) (bool, error) {
	if abs(dx)+abs(dy) <= 1 {
		return false, nil
	}
	stepX, stepY := sign(dx), sign(dy)
	if stepX != 0 {
		ok, err := s.Step(ctx, id, stepX, 0)
		if err != nil || ok {
			return ok, err
		}
	}
	if stepY != 0 {
		return s.Step(ctx, id, 0, stepY)
	}
	return false, nil
}

var dirs = [4][2]int{{0, 1}, {-1, 0}, {0, -1}, {1, 0}}

func (w *Wanderer) wander(ctx context.Context, s *session.Session, id ecs.EntityID) (bool, error) {
	if w.Rand.Float64() >= w.Chance {
		return false, nil
	}
	d := dirs[w.Rand.Intn(len(dirs))]
	return s.Step(ctx, id, d[0], d[1])
}

func distance(x1, y1, x2, y2 int) float64 {
	dx := float64(x1 - x2)
	dy := float64(y1 - y2)
	return math.Sqrt(dx*dx + dy*dy)
}

func sign(v int) int {
	if v > 0 {
		return 1
	}
	if v < 0 {
		return -1
	}
	return 0
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
