package generate

import (
	"math/rand"
	"testing"

	"fringe-client/internal/gamemap"
)

func TestLPath(t *testing.T) {
	tests := []struct {
		name            string
		x1, y1, x2, y2  int
		horizontalFirst bool
		want            []gamemap.Point
	}{
		{"horizontal first", 1, 1, 3, 2, true, []gamemap.Point{{X: 1, Y: 1}, {X: 2, Y: 1}, {X: 3, Y: 1}, {X: 3, Y: 2}}},
		{"vertical first", 1, 1, 3, 2, false, []gamemap.Point{{X: 1, Y: 1}, {X: 1, Y: 2}, {X: 2, Y: 2}, {X: 3, Y: 2}}},
		{"backwards", 3, 2, 1, 2, true, []gamemap.Point{{X: 3, Y: 2}, {X: 2, Y: 2}, {X: 1, Y: 2}}},
		{"single tile", 4, 4, 4, 4, true, []gamemap.Point{{X: 4, Y: 4}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LPath(tt.x1, tt.y1, tt.x2, tt.y2, tt.horizontalFirst)
			if len(got) != len(tt.want) {
				t.Fatalf("LPath = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("LPath = %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestZPathPassesMidRow(t *testing.T) {
	path := ZPath(2, 2, 8, 10)
	if path[0] != (gamemap.Point{X: 2, Y: 2}) || path[len(path)-1] != (gamemap.Point{X: 8, Y: 10}) {
		t.Fatalf("ZPath endpoints = %v .. %v", path[0], path[len(path)-1])
	}
	for x := 2; x <= 8; x++ {
		found := false
		for _, p := range path {
			if p == (gamemap.Point{X: x, Y: 6}) {
				found = true
			}
		}
		if !found {
			t.Errorf("ZPath missing (%d,6)", x)
		}
	}
	// Consecutive steps are 4-adjacent.
	for i := 1; i < len(path); i++ {
		dx := path[i].X - path[i-1].X
		dy := path[i].Y - path[i-1].Y
		if dx*dx+dy*dy != 1 {
			t.Fatalf("step %d jumps from %v to %v", i, path[i-1], path[i])
		}
	}
}

func TestCarveCorridorMakesFloor(t *testing.T) {
	for _, style := range []CorridorStyle{CorridorLShaped, CorridorZShaped, CorridorStraight} {
		cfg := defaultTestConfig(1)
		cfg.CorridorStyle = style
		m := gamemap.New("c", 20, 20, cfg.TileSize)
		for y := 0; y < 20; y++ {
			for x := 0; x < 20; x++ {
				m.Set(x, y, gamemap.Cell{Image: testWall, Blocks: true})
			}
		}
		carveCorridor(m, 2, 3, 15, 12, cfg)
		if !m.IsWalkable(2, 3) || !m.IsWalkable(15, 12) {
			t.Errorf("style %d: endpoints not carved", style)
		}
		if m.At(2, 3).Image != testFloor {
			t.Errorf("style %d: carved tile has image %v", style, m.At(2, 3).Image)
		}
	}
}

func TestCarveOutOfBoundsIgnored(t *testing.T) {
	cfg := defaultTestConfig(1)
	m := gamemap.New("c", 4, 4, cfg.TileSize)
	carveCorridor(m, -2, 1, 6, 1, &Config{CorridorStyle: CorridorStraight, Palette: cfg.Palette, Rand: rand.New(rand.NewSource(1))})
	for x := 0; x < 4; x++ {
		if m.At(x, 1).Image != testFloor {
			t.Errorf("(%d,1) not carved", x)
		}
	}
}
