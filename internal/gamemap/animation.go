package gamemap

import (
	"slices"

	"fringe-client/internal/render"
)

type animation struct {
	x, y   int
	frames []*render.Image
	ticks  int // ticks per frame
	frame  int
	left   int
}

// Animate cycles the fringe cell at (x, y) through frames, advancing one
// frame every ticksPerFrame ticks.
func (m *Map) Animate(x, y int, frames []*render.Image, ticksPerFrame int) {
	if !m.InBounds(x, y) || len(frames) == 0 {
		return
	}
	if ticksPerFrame < 1 {
		ticksPerFrame = 1
	}
	m.anims = append(m.anims, &animation{x: x, y: y, frames: frames, ticks: ticksPerFrame, left: ticksPerFrame})
	for _, f := range frames {
		m.grow(f)
	}
	m.SetImage(x, y, frames[0])
}

// Advance moves every animation forward by ticks and returns, ascending, the
// rows where a cell image changed.
func (m *Map) Advance(ticks int) []int {
	var rows []int
	for _, a := range m.anims {
		before := a.frame
		for t := 0; t < ticks; t++ {
			a.left--
			if a.left <= 0 {
				a.frame = (a.frame + 1) % len(a.frames)
				a.left = a.ticks
			}
		}
		if a.frame == before || a.frames[a.frame] == a.frames[before] {
			continue
		}
		m.SetImage(a.x, a.y, a.frames[a.frame])
		rows = append(rows, a.y)
	}
	slices.Sort(rows)
	return slices.Compact(rows)
}

// Animations returns the number of animated cells.
func (m *Map) Animations() int { return len(m.anims) }
