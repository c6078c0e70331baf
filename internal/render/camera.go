package render

// Viewport is the visible window onto a map, in world pixels.
type Viewport struct {
	ScrollX, ScrollY int // world pixel at the top-left of the screen
	Width, Height    int // visible size in pixels
	Tile             int // tile size in pixels
}

// NewViewport centers the view on world pixel (cx, cy), clamped to the map
// edges. mapW and mapH are in tiles.
func NewViewport(cx, cy, width, height, mapW, mapH, tile int) Viewport {
	maxX := mapW*tile - width
	maxY := mapH*tile - height

	scrollX := clamp(cx-width/2, 0, max(maxX, 0))
	scrollY := clamp(cy-height/2, 0, max(maxY, 0))

	return Viewport{
		ScrollX: scrollX,
		ScrollY: scrollY,
		Width:   width,
		Height:  height,
		Tile:    tile,
	}
}

// Columns returns the half-open visible tile column range.
func (v Viewport) Columns() (start, end int) {
	if v.Tile <= 0 {
		return 0, 0
	}
	start = floorDiv(v.ScrollX, v.Tile)
	end = floorDiv(v.ScrollX+v.Width+v.Tile-1, v.Tile)
	return start, end
}

// Rows returns the half-open tile row range to compose. extra rows below the
// screen are included because tall tiles rooted there reach into view.
func (v Viewport) Rows(extra int) (start, end int) {
	if v.Tile <= 0 {
		return 0, 0
	}
	start = floorDiv(v.ScrollY, v.Tile)
	end = floorDiv(v.ScrollY+v.Height+v.Tile-1, v.Tile) + extra
	return start, end
}

// WorldToScreen converts a world pixel position to a screen pixel position.
func (v Viewport) WorldToScreen(wx, wy int) (int, int) {
	return wx - v.ScrollX, wy - v.ScrollY
}

// ScreenToWorld converts a screen pixel position to world pixels.
func (v Viewport) ScreenToWorld(sx, sy int) (int, int) {
	return sx + v.ScrollX, sy + v.ScrollY
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
