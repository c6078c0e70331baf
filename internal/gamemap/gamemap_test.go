package gamemap

import (
	"testing"

	"fringe-client/internal/render"
)

func TestInBounds(t *testing.T) {
	m := New("test", 10, 8, 32)
	cases := []struct {
		x, y int
		want bool
	}{
		{0, 0, true},
		{9, 7, true},
		{-1, 0, false},
		{10, 0, false},
		{0, 8, false},
	}
	for _, c := range cases {
		got := m.InBounds(c.x, c.y)
		if got != c.want {
			t.Errorf("InBounds(%d,%d)=%v, want %v", c.x, c.y, got, c.want)
		}
	}
}

func TestIsWalkable(t *testing.T) {
	m := New("test", 5, 5, 32)
	if !m.IsWalkable(2, 2) {
		t.Error("empty cell should be walkable")
	}
	m.Set(2, 2, Cell{Image: &render.Image{Name: "wall"}, Blocks: true})
	if m.IsWalkable(2, 2) {
		t.Error("blocking cell should not be walkable")
	}
	if m.IsWalkable(-1, 0) {
		t.Error("out-of-bounds should not be walkable")
	}
}

func TestDisabledCellIsNotDrawable(t *testing.T) {
	m := New("test", 3, 3, 32)
	m.Set(1, 1, Cell{Image: &render.Image{Name: "grass"}})
	if !m.At(1, 1).Drawable() {
		t.Fatal("cell with image should be drawable")
	}
	m.SetEnabled(1, 1, false)
	if m.At(1, 1).Drawable() {
		t.Fatal("disabled cell should not be drawable")
	}
	if m.At(-5, 0).Drawable() {
		t.Fatal("out of bounds cell should be empty")
	}
}

func TestExtraRows(t *testing.T) {
	m := New("test", 4, 4, 32)
	if m.ExtraRows() != 0 {
		t.Fatal("empty map needs no extra rows")
	}
	m.Set(0, 0, Cell{Image: &render.Image{W: 32, H: 32}})
	if m.ExtraRows() != 0 {
		t.Fatal("tile-high images need no extra rows")
	}
	m.Set(1, 1, Cell{Image: &render.Image{W: 32, H: 80}})
	if got := m.ExtraRows(); got != 2 {
		t.Fatalf("ExtraRows = %d, want 2", got)
	}
}

func TestExtraRowsTracksImageUpdates(t *testing.T) {
	m := New("test", 4, 4, 32)
	m.SetImage(2, 2, &render.Image{W: 32, H: 64})
	if got := m.ExtraRows(); got != 1 {
		t.Fatalf("after SetImage ExtraRows = %d, want 1", got)
	}
	m.Animate(3, 3, []*render.Image{{W: 32, H: 32}, {W: 32, H: 128}}, 2)
	if got := m.ExtraRows(); got != 3 {
		t.Fatalf("after Animate ExtraRows = %d, want 3", got)
	}
	m.Set(3, 3, Cell{Image: &render.Image{W: 32, H: 32}})
	if got := m.ExtraRows(); got != 3 {
		t.Fatalf("ExtraRows shrank to %d after replacing a tall tile", got)
	}
}

func TestSetPathReportsChangedRows(t *testing.T) {
	m := New("test", 6, 6, 32)
	rows := m.SetPath([]Point{{1, 1}, {2, 1}, {2, 2}, {2, 3}, {9, 9}})
	want := []int{1, 2, 3}
	if len(rows) != len(want) {
		t.Fatalf("rows = %v, want %v", rows, want)
	}
	for i := range want {
		if rows[i] != want[i] {
			t.Fatalf("rows = %v, want %v", rows, want)
		}
	}
	if m.Temp(2, 2).Kind != MarkerRoad {
		t.Fatal("path cell should carry a road marker")
	}

	rows = m.SetPath([]Point{{4, 5}})
	if len(rows) != 4 || rows[3] != 5 {
		t.Fatalf("replacing the path should report old and new rows, got %v", rows)
	}
	if !m.Temp(2, 2).Empty() {
		t.Fatal("old path marker should be cleared")
	}
}

func TestAdvanceCyclesFrames(t *testing.T) {
	m := New("test", 4, 4, 32)
	a := &render.Image{Name: "water-0"}
	b := &render.Image{Name: "water-1"}
	m.Animate(1, 2, []*render.Image{a, b}, 3)
	if m.At(1, 2).Image != a {
		t.Fatal("animation should start on its first frame")
	}

	if rows := m.Advance(2); len(rows) != 0 {
		t.Fatalf("no frame change expected yet, got rows %v", rows)
	}
	rows := m.Advance(1)
	if len(rows) != 1 || rows[0] != 2 || m.At(1, 2).Image != b {
		t.Fatalf("expected row 2 to change to frame 1, got %v", rows)
	}
	if rows := m.Advance(6); len(rows) != 0 {
		t.Fatalf("a full cycle lands on the same frame, got rows %v", rows)
	}
}

func TestMarkerImage(t *testing.T) {
	if MarkerImage(MarkerEmpty, 32) != nil {
		t.Fatal("empty marker has no image")
	}
	img := MarkerImage(MarkerPortal, 16)
	if img == nil || img.W != 16 || img.H != 16 || img.Glyph == "" {
		t.Fatalf("portal image = %+v", img)
	}
	// The shared table must not be mutated by sizing.
	if other := MarkerImage(MarkerPortal, 32); other.W != 32 || img.W != 16 {
		t.Fatal("marker images share state")
	}
}

func TestRectCenter(t *testing.T) {
	r := Rect{X1: 0, Y1: 0, X2: 4, Y2: 4}
	cx, cy := r.Center()
	if cx != 2 || cy != 2 {
		t.Errorf("expected center (2,2), got (%d,%d)", cx, cy)
	}
}

func TestRectIntersects(t *testing.T) {
	a := Rect{0, 0, 4, 4}
	b := Rect{3, 3, 7, 7}
	c := Rect{5, 5, 9, 9}
	if !a.Intersects(b) {
		t.Error("a and b should intersect")
	}
	if a.Intersects(c) {
		t.Error("a and c should not intersect")
	}
}
