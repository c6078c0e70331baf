package generate

import "fringe-client/internal/gamemap"

// carveCorridor digs a tunnel between (x1,y1) and (x2,y2).
func carveCorridor(m *gamemap.Map, x1, y1, x2, y2 int, cfg *Config) {
	for _, p := range corridorPath(x1, y1, x2, y2, cfg) {
		carve(m, p.X, p.Y, cfg)
	}
}

func corridorPath(x1, y1, x2, y2 int, cfg *Config) []gamemap.Point {
	switch cfg.CorridorStyle {
	case CorridorZShaped:
		return ZPath(x1, y1, x2, y2)
	case CorridorStraight:
		return LPath(x1, y1, x2, y2, true)
	default:
		return LPath(x1, y1, x2, y2, cfg.Rand.Intn(2) == 0)
	}
}

// LPath returns the tiles of an L-shaped walk from (x1,y1) to (x2,y2),
// horizontal leg first when horizontalFirst is set. The corner tile appears
// once.
func LPath(x1, y1, x2, y2 int, horizontalFirst bool) []gamemap.Point {
	if horizontalFirst {
		return join(hLine(x1, x2, y1), vLine(y1, y2, x2))
	}
	return join(vLine(y1, y2, x1), hLine(x1, x2, y2))
}

// ZPath returns a vertical-horizontal-vertical walk through the middle row.
func ZPath(x1, y1, x2, y2 int) []gamemap.Point {
	midY := (y1 + y2) / 2
	return join(join(vLine(y1, midY, x1), hLine(x1, x2, midY)), vLine(midY, y2, x2))
}

// hLine walks from x1 to x2 inclusive in travel order.
func hLine(x1, x2, y int) []gamemap.Point {
	step := 1
	if x2 < x1 {
		step = -1
	}
	var out []gamemap.Point
	for x := x1; ; x += step {
		out = append(out, gamemap.Point{X: x, Y: y})
		if x == x2 {
			return out
		}
	}
}

func vLine(y1, y2, x int) []gamemap.Point {
	step := 1
	if y2 < y1 {
		step = -1
	}
	var out []gamemap.Point
	for y := y1; ; y += step {
		out = append(out, gamemap.Point{X: x, Y: y})
		if y == y2 {
			return out
		}
	}
}

func join(a, b []gamemap.Point) []gamemap.Point {
	if len(a) > 0 && len(b) > 0 && a[len(a)-1] == b[0] {
		b = b[1:]
	}
	return append(a, b...)
}

func carve(m *gamemap.Map, x, y int, cfg *Config) {
	if m.InBounds(x, y) {
		m.Set(x, y, gamemap.Cell{Image: cfg.Palette.Floor})
	}
}
