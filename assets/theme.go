// Package assets holds the demo content the viewer and tools run on: the
// item catalog, terrain and sprite images, and the town population.
package assets

import (
	"image/color"

	"fringe-client/internal/render"
	"fringe-client/internal/resource"
)

// Glyphs used by the terminal backend.
const (
	GlyphWall    = "🧱"
	GlyphFloor   = "·"
	GlyphTree    = "🌲"
	GlyphRock    = "🪨"
	GlyphWater0  = "🌊"
	GlyphWater1  = "💧"
	GlyphPlayer  = "🧙"
	GlyphMissing = "❓"
)

// Theme is the terrain image set for one tile size. Walls and props are
// taller than a tile so they overlap the rows above them.
type Theme struct {
	Wall        *render.Image
	Floor       *render.Image
	Decor       []*render.Image
	Water       []*render.Image
	PlayerBase  *render.Image
	Placeholder *render.Image
}

// NewTheme builds the terrain images for tile-pixel cells.
func NewTheme(tile int) Theme {
	return Theme{
		Wall:  &render.Image{Name: "wall", W: tile, H: 2 * tile, Glyph: GlyphWall, Tint: color.RGBA{110, 90, 80, 255}},
		Floor: &render.Image{Name: "floor", W: tile, H: tile, Glyph: GlyphFloor, Tint: color.RGBA{60, 60, 50, 255}},
		Decor: []*render.Image{
			{Name: "tree", W: tile, H: 3 * tile, Glyph: GlyphTree, Tint: color.RGBA{40, 140, 60, 255}},
			{Name: "rock", W: tile, H: tile, Glyph: GlyphRock, Tint: color.RGBA{120, 120, 120, 255}},
		},
		Water: []*render.Image{
			{Name: "water0", W: tile, H: tile, Glyph: GlyphWater0, Tint: color.RGBA{40, 90, 200, 255}},
			{Name: "water1", W: tile, H: tile, Glyph: GlyphWater1, Tint: color.RGBA{60, 120, 230, 255}},
		},
		PlayerBase:  &render.Image{Name: "player", W: tile, H: tile + tile/2, Glyph: GlyphPlayer, Tint: color.RGBA{230, 200, 170, 255}},
		Placeholder: &render.Image{Name: "missing", W: tile, H: tile, Glyph: GlyphMissing, Tint: render.ColorPlaceholder},
	}
}

type spriteDef struct {
	path  string
	glyph string
	tint  color.RGBA
	h     int // height in eighths of a tile
}

var spriteDefs = []spriteDef{
	{"sprites/boots.png", "👢", color.RGBA{110, 70, 40, 255}, 3},
	{"sprites/pants.png", "👖", color.RGBA{60, 80, 160, 255}, 6},
	{"sprites/shirt.png", "👕", color.RGBA{200, 200, 200, 255}, 9},
	{"sprites/shirt-f.png", "👚", color.RGBA{220, 160, 200, 255}, 9},
	{"sprites/robe.png", "🥻", color.RGBA{90, 40, 160, 255}, 10},
	{"sprites/gloves.png", "🧤", color.RGBA{130, 90, 50, 255}, 8},
	{"sprites/hair-short.png", "💇", color.RGBA{90, 60, 30, 255}, 12},
	{"sprites/hair-long.png", "👱", color.RGBA{220, 190, 90, 255}, 12},
	{"sprites/hair-tucked.png", "🧑", color.RGBA{220, 190, 90, 255}, 12},
	{"sprites/wizard-hat.png", "🎩", color.RGBA{80, 30, 140, 255}, 16},
	{"sprites/sword.png", "🗡️", color.RGBA{190, 190, 210, 255}, 11},
	{"sprites/shield.png", "🛡️", color.RGBA{150, 110, 60, 255}, 10},
	{"sprites/helmet.png", "⛑️", color.RGBA{160, 160, 170, 255}, 13},
	{"sprites/cape.png", "🧣", color.RGBA{170, 30, 30, 255}, 11},
}

// SpriteLoader serves every catalog sprite as a solid-tint, glyph-bearing
// image. Sprites are one tile wide, so a FileLoader can use it as fallback
// metadata.
func SpriteLoader(tile int) resource.MemoryLoader {
	out := make(resource.MemoryLoader, len(spriteDefs))
	for _, d := range spriteDefs {
		out[d.path] = &render.Image{Name: d.path, W: tile, H: d.h * tile / 8, Glyph: d.glyph, Tint: d.tint}
	}
	return out
}
