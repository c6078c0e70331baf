package system

import (
	"context"
	"math/rand"
	"testing"

	"fringe-client/internal/component"
	"fringe-client/internal/ecs"
	"fringe-client/internal/gamemap"
	"fringe-client/internal/itemdb"
	"fringe-client/internal/resource"
	"fringe-client/internal/session"
	"fringe-client/internal/zindex"
)

const tile = 16

func newSession(t *testing.T, w, h int) *session.Session {
	t.Helper()
	m := gamemap.New("sys", w, h, tile)
	cache := resource.NewCache(resource.MemoryLoader{}, resource.Options{}, nil)
	return session.New(m, itemdb.NewTable(), cache, session.Options{}, nil)
}

func spawnAt(t *testing.T, s *session.Session, x, y int, player bool) ecs.EntityID {
	t.Helper()
	id, err := s.SpawnActor(context.Background(), session.ActorSpec{X: x, Y: y, Category: zindex.Standing, LocalPlayer: player})
	if err != nil {
		t.Fatalf("SpawnActor: %v", err)
	}
	return id
}

func tileOf(s *session.Session, id ecs.EntityID) (int, int) {
	return s.World().Get(id, component.CPosition).(component.Position).Tile(tile)
}

func TestFindPath(t *testing.T) {
	m := gamemap.New("p", 5, 3, tile)
	// Wall across the middle column with a gap at the bottom.
	m.Set(2, 0, gamemap.Cell{Blocks: true})
	m.Set(2, 1, gamemap.Cell{Blocks: true})

	path := FindPath(m, gamemap.Point{X: 0, Y: 0}, gamemap.Point{X: 4, Y: 0})
	if len(path) != 9 {
		t.Fatalf("path length = %d, want 9: %v", len(path), path)
	}
	if path[0] != (gamemap.Point{X: 0, Y: 0}) || path[len(path)-1] != (gamemap.Point{X: 4, Y: 0}) {
		t.Errorf("endpoints = %v .. %v", path[0], path[len(path)-1])
	}
	for _, p := range path {
		if !m.IsWalkable(p.X, p.Y) {
			t.Errorf("path crosses blocked tile %v", p)
		}
	}

	m.Set(2, 2, gamemap.Cell{Blocks: true})
	if got := FindPath(m, gamemap.Point{X: 0, Y: 0}, gamemap.Point{X: 4, Y: 0}); got != nil {
		t.Errorf("walled off target should have no path, got %v", got)
	}
	if got := FindPath(m, gamemap.Point{X: 1, Y: 1}, gamemap.Point{X: 1, Y: 1}); len(got) != 1 {
		t.Errorf("path to self = %v, want one tile", got)
	}
}

func TestFollowApproachesPlayer(t *testing.T) {
	s := newSession(t, 10, 3)
	spawnAt(t, s, 0, 1, true)
	npc := spawnAt(t, s, 6, 1, false)

	w := &Wanderer{Sight: 10, Rand: rand.New(rand.NewSource(1)), Behaviors: map[ecs.EntityID]Behavior{npc: BehaviorFollow}}
	for i := 0; i < 10; i++ {
		if _, err := w.Step(context.Background(), s); err != nil {
			t.Fatal(err)
		}
	}
	if x, y := tileOf(s, npc); x != 1 || y != 1 {
		t.Errorf("follower at (%d,%d), want (1,1) next to the player", x, y)
	}
	a := s.World().Get(npc, component.CActor).(component.Actor)
	if a.Facing != itemdb.FacingLeft {
		t.Errorf("follower facing = %d, want left", a.Facing)
	}
}

func TestCowardlyFleesAndStopsAtWall(t *testing.T) {
	s := newSession(t, 6, 1)
	spawnAt(t, s, 0, 0, true)
	npc := spawnAt(t, s, 2, 0, false)

	w := &Wanderer{Sight: 10, Rand: rand.New(rand.NewSource(1)), Behaviors: map[ecs.EntityID]Behavior{npc: BehaviorCowardly}}
	for i := 0; i < 6; i++ {
		if _, err := w.Step(context.Background(), s); err != nil {
			t.Fatal(err)
		}
	}
	if x, _ := tileOf(s, npc); x != 5 {
		t.Errorf("coward at x=%d, want 5 at the map edge", x)
	}
}

func TestWanderSkipsPlayerAndDead(t *testing.T) {
	s := newSession(t, 8, 8)
	player := spawnAt(t, s, 4, 4, true)
	dead, err := s.SpawnActor(context.Background(), session.ActorSpec{X: 2, Y: 2, Category: zindex.Corpse})
	if err != nil {
		t.Fatal(err)
	}

	w := &Wanderer{Chance: 1, Rand: rand.New(rand.NewSource(3))}
	for i := 0; i < 5; i++ {
		n, err := w.Step(context.Background(), s)
		if err != nil {
			t.Fatal(err)
		}
		if n != 0 {
			t.Fatalf("moved %d actors, want 0", n)
		}
	}
	if x, y := tileOf(s, player); x != 4 || y != 4 {
		t.Errorf("player moved to (%d,%d)", x, y)
	}
	if x, y := tileOf(s, dead); x != 2 || y != 2 {
		t.Errorf("corpse moved to (%d,%d)", x, y)
	}
}
