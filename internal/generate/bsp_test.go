package generate

import (
	"math/rand"
	"testing"

	"fringe-client/internal/gamemap"
	"fringe-client/internal/render"
)

var (
	testWall  = &render.Image{Name: "wall", W: 8, H: 16}
	testFloor = &render.Image{Name: "floor", W: 8, H: 8}
	testTree  = &render.Image{Name: "tree", W: 8, H: 24}
	testWater = []*render.Image{{Name: "water0", W: 8, H: 8}, {Name: "water1", W: 8, H: 8}}
)

func defaultTestConfig(seed int64) *Config {
	return &Config{
		MapID:         "test",
		MapWidth:      60,
		MapHeight:     30,
		TileSize:      8,
		MinLeafSize:   8,
		MaxLeafSize:   20,
		MinRoomSize:   4,
		RoomPadding:   1,
		CorridorStyle: CorridorLShaped,
		WaterTicks:    3,
		Palette: Palette{
			Wall:  testWall,
			Floor: testFloor,
			Decor: []*render.Image{testTree},
			Water: testWater,
		},
		Rand: rand.New(rand.NewSource(seed)),
	}
}

// TestGenerateAllRoomsConnected verifies that every walkable tile is
// reachable from the start via flood fill.
func TestGenerateAllRoomsConnected(t *testing.T) {
	for seed := int64(0); seed < 10; seed++ {
		cfg := defaultTestConfig(seed)
		m, start := Generate(cfg)
		if !m.IsWalkable(start.X, start.Y) {
			t.Fatalf("seed=%d: start %v is not walkable", seed, start)
		}

		visited := make([]bool, m.Width*m.Height)
		queue := []gamemap.Point{start}
		visited[start.Y*m.Width+start.X] = true
		dirs := []gamemap.Point{{X: 1}, {X: -1}, {Y: 1}, {Y: -1}}
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			for _, d := range dirs {
				nx, ny := cur.X+d.X, cur.Y+d.Y
				if !m.IsWalkable(nx, ny) || visited[ny*m.Width+nx] {
					continue
				}
				visited[ny*m.Width+nx] = true
				queue = append(queue, gamemap.Point{X: nx, Y: ny})
			}
		}

		for y := 0; y < m.Height; y++ {
			for x := 0; x < m.Width; x++ {
				if m.IsWalkable(x, y) && !visited[y*m.Width+x] {
					t.Errorf("seed=%d: walkable tile (%d,%d) not reachable from start", seed, x, y)
				}
			}
		}
	}
}

func TestGenerateBorderIsWall(t *testing.T) {
	for seed := int64(0); seed < 5; seed++ {
		m, _ := Generate(defaultTestConfig(seed))
		for x := 0; x < m.Width; x++ {
			for _, y := range []int{0, m.Height - 1} {
				if m.At(x, y).Image != testWall {
					t.Fatalf("seed=%d: border (%d,%d) is not a wall", seed, x, y)
				}
			}
		}
		for y := 0; y < m.Height; y++ {
			for _, x := range []int{0, m.Width - 1} {
				if m.At(x, y).Image != testWall {
					t.Fatalf("seed=%d: border (%d,%d) is not a wall", seed, x, y)
				}
			}
		}
	}
}

func TestGenerateRoomsDoNotOverlap(t *testing.T) {
	m, _ := Generate(defaultTestConfig(42))
	if len(m.Rooms) < 2 {
		t.Fatalf("expected at least 2 rooms, got %d", len(m.Rooms))
	}
	for i := range m.Rooms {
		for j := i + 1; j < len(m.Rooms); j++ {
			if m.Rooms[i].Intersects(m.Rooms[j]) {
				t.Errorf("rooms %d and %d overlap: %+v %+v", i, j, m.Rooms[i], m.Rooms[j])
			}
		}
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	a, sa := Generate(defaultTestConfig(7))
	b, sb := Generate(defaultTestConfig(7))
	if sa != sb {
		t.Fatalf("start differs: %v vs %v", sa, sb)
	}
	for y := 0; y < a.Height; y++ {
		for x := 0; x < a.Width; x++ {
			if a.At(x, y) != b.At(x, y) {
				t.Fatalf("cell (%d,%d) differs", x, y)
			}
		}
	}
}

func TestGenerateMarkers(t *testing.T) {
	m, start := Generate(defaultTestConfig(3))
	if got := m.Special(start.X, start.Y).Kind; got != gamemap.MarkerHome {
		t.Errorf("start marker = %v, want home", got)
	}
	last := m.Rooms[len(m.Rooms)-1]
	px, py := last.Center()
	if got := m.Special(px, py).Kind; got != gamemap.MarkerPortal {
		t.Errorf("last room marker = %v, want portal", got)
	}
}

func TestGenerateDecorAndPools(t *testing.T) {
	cfg := defaultTestConfig(11)
	cfg.DecorCount = 4
	cfg.PoolCount = 2
	m, _ := Generate(cfg)

	trees := 0
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			if m.At(x, y).Image == testTree {
				trees++
				if m.IsWalkable(x, y) {
					t.Errorf("tree at (%d,%d) is walkable", x, y)
				}
			}
		}
	}
	if trees == 0 || trees > cfg.DecorCount {
		t.Errorf("trees = %d, want 1..%d", trees, cfg.DecorCount)
	}
	if n := m.Animations(); n == 0 || n > cfg.PoolCount {
		t.Errorf("animations = %d, want 1..%d", n, cfg.PoolCount)
	}
	if len(m.Advance(cfg.WaterTicks)) == 0 {
		t.Error("advancing one frame should change at least one row")
	}
}
