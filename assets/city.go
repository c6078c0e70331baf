package assets

import (
	"context"
	"fmt"
	"image/color"
	"math/rand"

	"fringe-client/internal/ecs"
	"fringe-client/internal/gamemap"
	"fringe-client/internal/generate"
	"fringe-client/internal/itemdb"
	"fringe-client/internal/render"
	"fringe-client/internal/session"
	"fringe-client/internal/zindex"
)

// NPCDef describes a townsperson placed in the demo map.
type NPCDef struct {
	Glyph       string
	Name        string
	Gender      itemdb.Gender
	Facing      itemdb.Facing
	Dead        bool
	AttackRange int
	Outfit      map[int]itemdb.ItemID // nil for creatures drawn from Glyph alone
}

// CityNPCs lists the population of the demo town.
var CityNPCs = []NPCDef{
	{Glyph: "🙏", Name: "Sister Maris", Gender: itemdb.GenderFemale, Facing: itemdb.FacingDown, Outfit: Outfits[1]},
	{Glyph: "👴", Name: "Father Brennan", Gender: itemdb.GenderMale, Facing: itemdb.FacingLeft, Outfit: Outfits[0]},
	{Glyph: "⚔️", Name: "Soldier Greta", Gender: itemdb.GenderFemale, Facing: itemdb.FacingUp, AttackRange: 1, Outfit: Outfits[3]},
	{Glyph: "🛍️", Name: "Merchant Yeva", Gender: itemdb.GenderFemale, Facing: itemdb.FacingRight, Outfit: Outfits[2]},
	{Glyph: "📖", Name: "Scholar Alaric", Gender: itemdb.GenderMale, Facing: itemdb.FacingUpLeft, Outfit: Outfits[1]},
	{Glyph: "🎣", Name: "Old Fisher Bram", Gender: itemdb.GenderMale, Facing: itemdb.FacingDownRight, Outfit: Outfits[0]},
	{Glyph: "🪖", Name: "Fallen Guard", Gender: itemdb.GenderMale, Dead: true, Outfit: Outfits[3]},
	{Glyph: "🐕", Name: "Stray Dog"},
	{Glyph: "🐈", Name: "Town Cat"},
	{Glyph: "🐓", Name: "Market Hen"},
}

// DemoMap lays out a seeded demo map painted with the theme for tile.
func DemoMap(seed int64, tile int) (*gamemap.Map, gamemap.Point) {
	th := NewTheme(tile)
	return generate.Generate(&generate.Config{
		MapID:         fmt.Sprintf("demo-%d", seed),
		MapWidth:      64,
		MapHeight:     40,
		TileSize:      tile,
		MinLeafSize:   8,
		MaxLeafSize:   20,
		MinRoomSize:   4,
		RoomPadding:   1,
		CorridorStyle: generate.CorridorLShaped,
		DecorCount:    14,
		PoolCount:     6,
		WaterTicks:    8,
		Palette: generate.Palette{
			Wall:  th.Wall,
			Floor: th.Floor,
			Decor: th.Decor,
			Water: th.Water,
		},
		Rand: rand.New(rand.NewSource(seed)),
	})
}

// Populate spawns the local player at start and scatters CityNPCs over the
// walkable tiles of the map. It returns the player's entity.
func Populate(ctx context.Context, s *session.Session, start gamemap.Point, rng *rand.Rand) (ecs.EntityID, error) {
	th := NewTheme(s.Map().TileSize)
	player, err := s.SpawnActor(ctx, session.ActorSpec{
		X: start.X, Y: start.Y,
		Category:    zindex.Standing,
		Facing:      itemdb.FacingDown,
		AttackRange: 2,
		Label:       "You",
		Base:        th.PlayerBase,
		Slots:       NumSlots,
		Weapons:     []int{SlotWeapon},
		Equipment:   Outfits[0],
		LocalPlayer: true,
	})
	if err != nil {
		return ecs.NilEntity, fmt.Errorf("spawn player: %w", err)
	}

	free := walkableTiles(s.Map(), start)
	rng.Shuffle(len(free), func(i, j int) { free[i], free[j] = free[j], free[i] })
	for i, npc := range CityNPCs {
		if i >= len(free) {
			break
		}
		if _, err := s.SpawnActor(ctx, npcSpec(npc, free[i], s.Map().TileSize)); err != nil {
			return player, fmt.Errorf("spawn %s: %w", npc.Name, err)
		}
	}
	return player, nil
}

func npcSpec(npc NPCDef, at gamemap.Point, tile int) session.ActorSpec {
	spec := session.ActorSpec{
		X: at.X, Y: at.Y,
		Category:    zindex.Standing,
		Facing:      npc.Facing,
		Gender:      npc.Gender,
		AttackRange: npc.AttackRange,
		Label:       npc.Name,
		Base:        &render.Image{Name: npc.Name, W: tile, H: tile, Glyph: npc.Glyph, Tint: color.RGBA{200, 180, 150, 255}},
	}
	if npc.Dead {
		spec.Category = zindex.Corpse
	}
	if npc.Outfit != nil {
		spec.Slots = NumSlots
		spec.Weapons = []int{SlotWeapon}
		spec.Equipment = npc.Outfit
	}
	return spec
}

func walkableTiles(m *gamemap.Map, skip gamemap.Point) []gamemap.Point {
	var out []gamemap.Point
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			p := gamemap.Point{X: x, Y: y}
			if p != skip && m.IsWalkable(x, y) {
				out = append(out, p)
			}
		}
	}
	return out
}
