// Package generate lays out demo maps: BSP rooms joined by corridors, with
// tall wall tiles on the fringe layer so actors walk behind them.
package generate

import (
	"math/rand"

	"fringe-client/internal/gamemap"
	"fringe-client/internal/render"
)

// CorridorStyle selects the shape of connecting tunnels.
type CorridorStyle uint8

const (
	CorridorLShaped CorridorStyle = iota
	CorridorZShaped
	CorridorStraight
)

// Palette is the set of fringe images a layout is painted with.
type Palette struct {
	Wall  *render.Image // blocks movement
	Floor *render.Image
	Decor []*render.Image // tall, blocking props placed inside rooms
	Water []*render.Image // animation frames of a pool tile
}

// Config drives generation of one map.
type Config struct {
	MapID               string
	MapWidth, MapHeight int
	TileSize            int
	MinLeafSize         int
	MaxLeafSize         int
	MinRoomSize         int
	RoomPadding         int
	CorridorStyle       CorridorStyle
	DecorCount          int
	PoolCount           int
	WaterTicks          int // ticks per water frame
	Palette             Palette
	Rand                *rand.Rand
}

// bspLeaf is a node in the BSP tree.
type bspLeaf struct {
	X, Y, W, H  int
	left, right *bspLeaf
	room        *gamemap.Rect
}

// split divides the leaf into two children, returning false when leaf is too small.
func (l *bspLeaf) split(cfg *Config) bool {
	if l.left != nil || l.right != nil {
		return false
	}
	// Horizontal when taller, vertical when wider.
	splitH := cfg.Rand.Intn(2) == 0
	if l.W > l.H && float64(l.W)/float64(l.H) >= 1.25 {
		splitH = false
	} else if l.H > l.W && float64(l.H)/float64(l.W) >= 1.25 {
		splitH = true
	}

	maxSize := l.H
	if !splitH {
		maxSize = l.W
	}
	if maxSize <= cfg.MinLeafSize*2 {
		return false
	}

	lo := cfg.MinLeafSize
	hi := maxSize - cfg.MinLeafSize
	if lo >= hi {
		return false
	}
	at := lo + cfg.Rand.Intn(hi-lo+1)

	if splitH {
		l.left = &bspLeaf{X: l.X, Y: l.Y, W: l.W, H: at}
		l.right = &bspLeaf{X: l.X, Y: l.Y + at, W: l.W, H: l.H - at}
	} else {
		l.left = &bspLeaf{X: l.X, Y: l.Y, W: at, H: l.H}
		l.right = &bspLeaf{X: l.X + at, Y: l.Y, W: l.W - at, H: l.H}
	}
	return true
}

// createRooms recursively carves rooms inside terminal leaves.
func (l *bspLeaf) createRooms(m *gamemap.Map, cfg *Config) {
	if l.left != nil || l.right != nil {
		if l.left != nil {
			l.left.createRooms(m, cfg)
		}
		if l.right != nil {
			l.right.createRooms(m, cfg)
		}
		return
	}
	pad := cfg.RoomPadding
	minSize := cfg.MinRoomSize

	availW := max(l.W-2*pad, minSize)
	availH := max(l.H-2*pad, minSize)
	rw := min(minSize+cfg.Rand.Intn(max(1, availW-minSize+1)), l.W-2*pad)
	rh := min(minSize+cfg.Rand.Intn(max(1, availH-minSize+1)), l.H-2*pad)
	rw, rh = max(rw, 3), max(rh, 3)

	rx := max(l.X+pad+cfg.Rand.Intn(max(1, l.W-rw-2*pad+1)), 1)
	ry := max(l.Y+pad+cfg.Rand.Intn(max(1, l.H-rh-2*pad+1)), 1)

	// Keep a one-tile wall border around the map.
	if rx+rw >= m.Width {
		rw = m.Width - rx - 1
	}
	if ry+rh >= m.Height {
		rh = m.Height - ry - 1
	}
	if rw < 3 || rh < 3 {
		return
	}

	room := gamemap.Rect{X1: rx, Y1: ry, X2: rx + rw - 1, Y2: ry + rh - 1}
	l.room = &room
	for y := room.Y1; y <= room.Y2; y++ {
		for x := room.X1; x <= room.X2; x++ {
			carve(m, x, y, cfg)
		}
	}
	m.Rooms = append(m.Rooms, room)
}

// getRoom returns a room below this leaf, preferring the left subtree.
func (l *bspLeaf) getRoom() *gamemap.Rect {
	if l.room != nil {
		return l.room
	}
	var lRoom, rRoom *gamemap.Rect
	if l.left != nil {
		lRoom = l.left.getRoom()
	}
	if l.right != nil {
		rRoom = l.right.getRoom()
	}
	if lRoom == nil {
		return rRoom
	}
	return lRoom
}

// connectChildren carves corridors between the two children of a split leaf.
func (l *bspLeaf) connectChildren(m *gamemap.Map, cfg *Config) {
	if l.left == nil || l.right == nil {
		return
	}
	l.left.connectChildren(m, cfg)
	l.right.connectChildren(m, cfg)

	lRoom := l.left.getRoom()
	rRoom := l.right.getRoom()
	if lRoom == nil || rRoom == nil {
		return
	}
	lCX, lCY := lRoom.Center()
	rCX, rCY := rRoom.Center()
	carveCorridor(m, lCX, lCY, rCX, rCY, cfg)
}

// Generate builds a map: walls everywhere, BSP rooms and corridors carved to
// floor, then props, pools and markers. It returns the map and the player
// start tile.
func Generate(cfg *Config) (*gamemap.Map, gamemap.Point) {
	m := gamemap.New(cfg.MapID, cfg.MapWidth, cfg.MapHeight, cfg.TileSize)
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			m.Set(x, y, gamemap.Cell{Image: cfg.Palette.Wall, Blocks: true})
		}
	}

	root := &bspLeaf{X: 0, Y: 0, W: cfg.MapWidth, H: cfg.MapHeight}
	leaves := []*bspLeaf{root}
	splitAny := true
	for splitAny {
		splitAny = false
		var next []*bspLeaf
		for _, leaf := range leaves {
			if leaf.left != nil || leaf.right != nil {
				next = append(next, leaf.left, leaf.right)
				continue
			}
			if leaf.W > cfg.MaxLeafSize || leaf.H > cfg.MaxLeafSize ||
				cfg.Rand.Float64() > 0.25 {
				if leaf.split(cfg) {
					next = append(next, leaf.left, leaf.right)
					splitAny = true
					continue
				}
			}
			next = append(next, leaf)
		}
		leaves = next
	}

	root.createRooms(m, cfg)
	root.connectChildren(m, cfg)

	start := gamemap.Point{X: 1, Y: 1}
	if len(m.Rooms) > 0 {
		start.X, start.Y = m.Rooms[0].Center()
	}
	decorate(m, cfg, start)
	return m, start
}
