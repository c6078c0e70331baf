// Package gamemap is the map data the compositor reads: the fringe tile
// layer, the marker layers drawn over it, and tile animations.
package gamemap

import (
	"slices"

	"fringe-client/internal/render"
)

// Rect is an axis-aligned rectangle in tiles, inclusive on both edges.
type Rect struct {
	X1, Y1, X2, Y2 int
}

// Center returns the center point of the rectangle.
func (r Rect) Center() (int, int) {
	return (r.X1 + r.X2) / 2, (r.Y1 + r.Y2) / 2
}

// Intersects reports whether r overlaps other (inclusive edges).
func (r Rect) Intersects(other Rect) bool {
	return r.X1 <= other.X2 && r.X2 >= other.X1 &&
		r.Y1 <= other.Y2 && r.Y2 >= other.Y1
}

// Point is a tile coordinate.
type Point struct {
	X, Y int
}

// Map holds one map's fringe layer and overlay layers. Tile images are
// rooted at the bottom of their cell and may be taller than a tile.
type Map struct {
	ID            string
	Width, Height int // in tiles
	TileSize      int // pixels per tile edge
	Rooms         []Rect

	cells   []Cell
	special []Marker
	temp    []Marker
	anims   []*animation
	tallest int // tallest image ever placed; never shrinks
}

// New creates an empty map of width×height tiles.
func New(id string, width, height, tileSize int) *Map {
	n := width * height
	return &Map{
		ID:       id,
		Width:    width,
		Height:   height,
		TileSize: tileSize,
		cells:    make([]Cell, n),
		special:  make([]Marker, n),
		temp:     make([]Marker, n),
	}
}

// InBounds reports whether (x, y) is within the map boundaries.
func (m *Map) InBounds(x, y int) bool {
	return x >= 0 && x < m.Width && y >= 0 && y < m.Height
}

func (m *Map) index(x, y int) int { return y*m.Width + x }

// At returns the fringe cell at (x, y), or an empty cell out of bounds.
func (m *Map) At(x, y int) Cell {
	if !m.InBounds(x, y) {
		return Cell{}
	}
	return m.cells[m.index(x, y)]
}

// Set replaces the fringe cell at (x, y).
func (m *Map) Set(x, y int, c Cell) {
	if m.InBounds(x, y) {
		m.cells[m.index(x, y)] = c
		m.grow(c.Image)
	}
}

// SetImage changes the image of the cell at (x, y), keeping its flags.
func (m *Map) SetImage(x, y int, img *render.Image) {
	if m.InBounds(x, y) {
		m.cells[m.index(x, y)].Image = img
		m.grow(img)
	}
}

func (m *Map) grow(img *render.Image) {
	if img != nil && img.H > m.tallest {
		m.tallest = img.H
	}
}

// SetEnabled toggles whether the cell at (x, y) is drawn.
func (m *Map) SetEnabled(x, y int, on bool) {
	if m.InBounds(x, y) {
		m.cells[m.index(x, y)].Disabled = !on
	}
}

// IsWalkable reports whether (x, y) is in bounds and not blocked.
func (m *Map) IsWalkable(x, y int) bool {
	if !m.InBounds(x, y) {
		return false
	}
	return !m.cells[m.index(x, y)].Blocks
}

// ExtraRows returns how many rows below the screen must still be composed
// because the tallest tile rooted there reaches up into view. The height is
// tracked as images are placed, so replacing a tall tile does not lower it.
func (m *Map) ExtraRows() int {
	if m.TileSize <= 0 || m.tallest <= m.TileSize {
		return 0
	}
	return (m.tallest+m.TileSize-1)/m.TileSize - 1
}

// Special returns the static marker at (x, y).
func (m *Map) Special(x, y int) Marker {
	if !m.InBounds(x, y) {
		return Marker{}
	}
	return m.special[m.index(x, y)]
}

// SetSpecial places a static marker.
func (m *Map) SetSpecial(x, y int, mk Marker) {
	if m.InBounds(x, y) {
		m.special[m.index(x, y)] = mk
	}
}

// Temp returns the temporary marker at (x, y).
func (m *Map) Temp(x, y int) Marker {
	if !m.InBounds(x, y) {
		return Marker{}
	}
	return m.temp[m.index(x, y)]
}

// SetPath replaces the temporary layer with road markers along path and
// returns the rows whose markers changed, ascending.
func (m *Map) SetPath(path []Point) []int {
	changed := m.ClearTemp()
	for _, p := range path {
		if !m.InBounds(p.X, p.Y) {
			continue
		}
		m.temp[m.index(p.X, p.Y)] = Marker{Kind: MarkerRoad}
		changed = append(changed, p.Y)
	}
	slices.Sort(changed)
	return slices.Compact(changed)
}

// ClearTemp empties the temporary layer and returns the rows it touched.
func (m *Map) ClearTemp() []int {
	var rows []int
	for i, mk := range m.temp {
		if mk.Kind == MarkerEmpty {
			continue
		}
		m.temp[i] = Marker{}
		rows = append(rows, i/m.Width)
	}
	return slices.Compact(rows)
}
