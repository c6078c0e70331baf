package generate

import (
	"fringe-client/internal/gamemap"
)

// decorate places props and pools in rooms other than the start room, a
// home marker at the start, a portal in the last room and arrows at the
// first room's exits.
func decorate(m *gamemap.Map, cfg *Config, start gamemap.Point) {
	m.SetSpecial(start.X, start.Y, gamemap.Marker{Kind: gamemap.MarkerHome, Label: "Home"})
	if len(m.Rooms) < 2 {
		return
	}
	last := m.Rooms[len(m.Rooms)-1]
	px, py := last.Center()
	m.SetSpecial(px, py, gamemap.Marker{Kind: gamemap.MarkerPortal, Label: "Portal"})
	markExits(m, m.Rooms[0])

	taken := map[gamemap.Point]bool{start: true, {X: px, Y: py}: true}
	rooms := m.Rooms[1:]
	pick := func() (gamemap.Point, bool) {
		for try := 0; try < 20; try++ {
			r := rooms[cfg.Rand.Intn(len(rooms))]
			// Stay off the room edge so props never block a corridor mouth.
			if r.X2-r.X1 < 2 || r.Y2-r.Y1 < 2 {
				continue
			}
			p := gamemap.Point{
				X: r.X1 + 1 + cfg.Rand.Intn(r.X2-r.X1-1),
				Y: r.Y1 + 1 + cfg.Rand.Intn(r.Y2-r.Y1-1),
			}
			if !taken[p] {
				taken[p] = true
				return p, true
			}
		}
		return gamemap.Point{}, false
	}

	if len(cfg.Palette.Decor) > 0 {
		for i := 0; i < cfg.DecorCount; i++ {
			p, ok := pick()
			if !ok {
				break
			}
			img := cfg.Palette.Decor[cfg.Rand.Intn(len(cfg.Palette.Decor))]
			m.Set(p.X, p.Y, gamemap.Cell{Image: img, Blocks: true})
		}
	}
	if len(cfg.Palette.Water) > 0 {
		for i := 0; i < cfg.PoolCount; i++ {
			p, ok := pick()
			if !ok {
				break
			}
			m.Set(p.X, p.Y, gamemap.Cell{Blocks: true})
			m.Animate(p.X, p.Y, cfg.Palette.Water, cfg.WaterTicks)
		}
	}
}

// markExits puts an arrow on every floor tile just outside r's edges.
func markExits(m *gamemap.Map, r gamemap.Rect) {
	for x := r.X1; x <= r.X2; x++ {
		if m.IsWalkable(x, r.Y1-1) {
			m.SetSpecial(x, r.Y1-1, gamemap.Marker{Kind: gamemap.MarkerArrowUp})
		}
		if m.IsWalkable(x, r.Y2+1) {
			m.SetSpecial(x, r.Y2+1, gamemap.Marker{Kind: gamemap.MarkerArrowDown})
		}
	}
	for y := r.Y1; y <= r.Y2; y++ {
		if m.IsWalkable(r.X1-1, y) {
			m.SetSpecial(r.X1-1, y, gamemap.Marker{Kind: gamemap.MarkerArrowLeft})
		}
		if m.IsWalkable(r.X2+1, y) {
			m.SetSpecial(r.X2+1, y, gamemap.Marker{Kind: gamemap.MarkerArrowRight})
		}
	}
}
