package session

import (
	"context"
	"fmt"
	"slices"

	"fringe-client/internal/component"
	"fringe-client/internal/ecs"
	"fringe-client/internal/gamemap"
	"fringe-client/internal/itemdb"
	"fringe-client/internal/render"
	"fringe-client/internal/sprite"
	"fringe-client/internal/zindex"
)

// ActorSpec describes an actor to spawn. X and Y are tile coordinates.
type ActorSpec struct {
	X, Y        int
	Category    zindex.Category
	Facing      itemdb.Facing
	Gender      itemdb.Gender
	AttackRange int
	Label       string
	Base        *render.Image
	Slots       int // 0 selects DefaultSlots when Equipment is set
	Weapons     []int
	Equipment   map[int]itemdb.ItemID
	LocalPlayer bool
}

// SpawnActor creates an actor, resolves its sprite order and indexes it.
func (s *Session) SpawnActor(ctx context.Context, spec ActorSpec) (ecs.EntityID, error) {
	if err := s.live(); err != nil {
		return ecs.NilEntity, err
	}
	if !s.m.InBounds(spec.X, spec.Y) {
		return ecs.NilEntity, fmt.Errorf("spawn at (%d,%d) outside %dx%d map", spec.X, spec.Y, s.m.Width, s.m.Height)
	}

	id := s.world.CreateEntity()
	s.world.Add(id, component.AtTile(spec.X, spec.Y, s.m.TileSize))
	alive := spec.Category
	if alive == zindex.Corpse {
		alive = zindex.Standing
	}
	s.world.Add(id, component.Actor{
		Category:    spec.Category,
		Alive:       alive,
		Facing:      spec.Facing,
		Dead:        spec.Category == zindex.Corpse,
		Gender:      spec.Gender,
		AttackRange: spec.AttackRange,
	})
	s.world.Add(id, component.Renderable{Base: spec.Base, Label: spec.Label, ShowLabel: spec.Label != ""})

	slots := spec.Slots
	if slots == 0 && len(spec.Equipment) > 0 {
		slots = DefaultSlots
	}
	if slots > 0 {
		tbl := sprite.NewSlotTable(slots)
		for _, w := range spec.Weapons {
			if err := tbl.Set(w, sprite.Slot{Weapon: true}); err != nil {
				s.world.DestroyEntity(id)
				return ecs.NilEntity, err
			}
		}
		for _, slot := range sortedSlots(spec.Equipment) {
			if err := tbl.Equip(slot, spec.Equipment[slot], 0); err != nil {
				s.world.DestroyEntity(id)
				return ecs.NilEntity, err
			}
		}
		s.world.Add(id, &component.Sprites{
			Slots:    tbl,
			Drawable: sprite.NewDrawable(s.cache, s.items, spec.Gender, slots, s.opts.Placeholder, s.logger),
		})
	}
	if spec.LocalPlayer {
		if s.player != ecs.NilEntity {
			s.world.Remove(s.player, component.CTagLocalPlayer)
		}
		s.world.Add(id, component.TagLocalPlayer{})
		s.player = id
	}

	if err := s.RecalcOrder(ctx, id); err != nil {
		return ecs.NilEntity, err
	}
	if err := s.NotifyActorSpawned(id); err != nil {
		return ecs.NilEntity, err
	}
	return id, nil
}

func sortedSlots(m map[int]itemdb.ItemID) []int {
	out := make([]int, 0, len(m))
	for slot := range m {
		out = append(out, slot)
	}
	slices.Sort(out)
	return out
}

// Despawn removes an actor from the index and the world and releases its
// sprite references.
func (s *Session) Despawn(id ecs.EntityID) error {
	if _, _, err := s.actor(id); err != nil {
		return err
	}
	s.index.Remove(id)
	if sp, ok := s.world.Get(id, component.CSprites).(*component.Sprites); ok {
		sp.Drawable.Release()
	}
	if id == s.player {
		s.player = ecs.NilEntity
	}
	s.world.DestroyEntity(id)
	return nil
}

// RecalcOrder re-resolves the sprite layer order and hide mask of id for
// its current facing and death state. Actors without sprites are a no-op.
func (s *Session) RecalcOrder(ctx context.Context, id ecs.EntityID) error {
	a, _, err := s.actor(id)
	if err != nil {
		return err
	}
	sp, ok := s.world.Get(id, component.CSprites).(*component.Sprites)
	if !ok {
		return nil
	}
	sp.Result = s.resolver.Resolve(ctx, sp.Slots, a.Facing, a.Dead)
	sp.Drawable.Apply(sp.Slots, sp.Result)
	return nil
}

func (s *Session) sprites(id ecs.EntityID) (*component.Sprites, error) {
	if _, _, err := s.actor(id); err != nil {
		return nil, err
	}
	sp, ok := s.world.Get(id, component.CSprites).(*component.Sprites)
	if !ok {
		return nil, fmt.Errorf("actor %d has no sprite slots: %w", id, ErrUnknownActor)
	}
	return sp, nil
}

// Equip places item in slot and re-resolves.
func (s *Session) Equip(ctx context.Context, id ecs.EntityID, slot int, item itemdb.ItemID, color uint8) error {
	sp, err := s.sprites(id)
	if err != nil {
		return err
	}
	if err := sp.Slots.Equip(slot, item, color); err != nil {
		return fmt.Errorf("equip actor %d: %w", id, err)
	}
	return s.RecalcOrder(ctx, id)
}

// Unequip empties slot and re-resolves.
func (s *Session) Unequip(ctx context.Context, id ecs.EntityID, slot int) error {
	sp, err := s.sprites(id)
	if err != nil {
		return err
	}
	if err := sp.Slots.Unequip(slot); err != nil {
		return fmt.Errorf("unequip actor %d: %w", id, err)
	}
	return s.RecalcOrder(ctx, id)
}

// SetFacing turns the actor. The order is re-resolved only on change.
func (s *Session) SetFacing(ctx context.Context, id ecs.EntityID, f itemdb.Facing) error {
	a, _, err := s.actor(id)
	if err != nil {
		return err
	}
	if a.Facing == f {
		return nil
	}
	a.Facing = f
	s.world.Add(id, *a)
	return s.RecalcOrder(ctx, id)
}

// SetDead switches the actor between its corpse state and the category it
// had while alive.
func (s *Session) SetDead(ctx context.Context, id ecs.EntityID, dead bool) error {
	a, _, err := s.actor(id)
	if err != nil {
		return err
	}
	if a.Dead == dead {
		return nil
	}
	a.Dead = dead
	if dead {
		if a.Category != zindex.Corpse {
			a.Alive = a.Category
		}
		a.Category = zindex.Corpse
	} else {
		a.Category = a.Alive
	}
	s.world.Add(id, *a)
	return s.RecalcOrder(ctx, id)
}

// MoveTo places the actor on tile (x, y). The depth index picks up the new
// key on the next frame.
func (s *Session) MoveTo(id ecs.EntityID, x, y int) error {
	if _, _, err := s.actor(id); err != nil {
		return err
	}
	if !s.m.InBounds(x, y) {
		return fmt.Errorf("move actor %d to (%d,%d): outside map", id, x, y)
	}
	s.world.Add(id, component.AtTile(x, y, s.m.TileSize))
	return nil
}

// Step moves the actor one tile by (dx, dy) when the target is walkable and
// turns it to face the step. It reports whether the actor moved.
func (s *Session) Step(ctx context.Context, id ecs.EntityID, dx, dy int) (bool, error) {
	_, p, err := s.actor(id)
	if err != nil {
		return false, err
	}
	if f, ok := facingFor(dx, dy); ok {
		if err := s.SetFacing(ctx, id, f); err != nil {
			return false, err
		}
	}
	x, y := p.Tile(s.m.TileSize)
	if !s.m.IsWalkable(x+dx, y+dy) {
		return false, nil
	}
	return true, s.MoveTo(id, x+dx, y+dy)
}

func facingFor(dx, dy int) (itemdb.Facing, bool) {
	switch {
	case dx == 0 && dy > 0:
		return itemdb.FacingDown, true
	case dx < 0 && dy > 0:
		return itemdb.FacingDownLeft, true
	case dx < 0 && dy == 0:
		return itemdb.FacingLeft, true
	case dx < 0 && dy < 0:
		return itemdb.FacingUpLeft, true
	case dx == 0 && dy < 0:
		return itemdb.FacingUp, true
	case dx > 0 && dy < 0:
		return itemdb.FacingUpRight, true
	case dx > 0 && dy == 0:
		return itemdb.FacingRight, true
	case dx > 0 && dy > 0:
		return itemdb.FacingDownRight, true
	}
	return 0, false
}

// SetPath shows path on the temporary marker layer and invalidates the rows
// it touched.
func (s *Session) SetPath(path []gamemap.Point) error {
	if err := s.live(); err != nil {
		return err
	}
	for _, row := range s.m.SetPath(path) {
		s.rows.Invalidate(row)
	}
	return nil
}
