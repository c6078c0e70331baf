package gamemap

import (
	"fringe-client/internal/render"
)

// Cell is one fringe-layer tile. A nil Image is an empty cell.
type Cell struct {
	Image    *render.Image
	Disabled bool // present but not drawn; breaks runs like an empty cell
	Blocks   bool
}

// Drawable reports whether the cell paints anything.
func (c Cell) Drawable() bool { return c.Image != nil && !c.Disabled }

// MarkerKind is the type of an overlay marker.
type MarkerKind uint8

const (
	MarkerEmpty MarkerKind = iota
	MarkerHome
	MarkerRoad
	MarkerCross
	MarkerArrowUp
	MarkerArrowDown
	MarkerArrowLeft
	MarkerArrowRight
	MarkerPortal
)

// Marker is an overlay drawn above the row it sits in.
type Marker struct {
	Kind  MarkerKind
	Label string
}

// Empty reports whether the marker draws nothing.
func (mk Marker) Empty() bool { return mk.Kind == MarkerEmpty && mk.Label == "" }

var markerImages = map[MarkerKind]*render.Image{
	MarkerHome:       {Name: "marker/home", Glyph: "🏠", Tint: render.ColorMarkerHome},
	MarkerRoad:       {Name: "marker/road", Glyph: "·", Tint: render.ColorMarkerRoad},
	MarkerCross:      {Name: "marker/cross", Glyph: "✚", Tint: render.ColorMarkerCross},
	MarkerArrowUp:    {Name: "marker/arrow-up", Glyph: "↑", Tint: render.ColorMarkerArrow},
	MarkerArrowDown:  {Name: "marker/arrow-down", Glyph: "↓", Tint: render.ColorMarkerArrow},
	MarkerArrowLeft:  {Name: "marker/arrow-left", Glyph: "←", Tint: render.ColorMarkerArrow},
	MarkerArrowRight: {Name: "marker/arrow-right", Glyph: "→", Tint: render.ColorMarkerArrow},
	MarkerPortal:     {Name: "marker/portal", Glyph: "🌀", Tint: render.ColorMarkerPortal},
}

// MarkerImage returns the image drawn for kind sized to one tile, or nil for
// MarkerEmpty.
func MarkerImage(kind MarkerKind, tileSize int) *render.Image {
	base, ok := markerImages[kind]
	if !ok {
		return nil
	}
	img := *base
	img.W, img.H = tileSize, tileSize
	return &img
}
