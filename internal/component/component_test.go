package component

import "testing"

func TestAtTileRoundTrips(t *testing.T) {
	const tile = 32
	for _, tc := range []struct{ x, y int }{{0, 0}, {3, 7}, {10, 1}} {
		p := AtTile(tc.x, tc.y, tile)
		if x, y := p.Tile(tile); x != tc.x || y != tc.y {
			t.Errorf("AtTile(%d,%d).Tile() = (%d,%d)", tc.x, tc.y, x, y)
		}
	}
	if p := AtTile(2, 0, tile); p.X != 80 || p.Y != 32 {
		t.Errorf("AtTile(2,0) = %+v, want bottom-center {80 32}", p)
	}
}

func TestSortY(t *testing.T) {
	a := Actor{YDiff: 4, SortOffset: 2}
	if got := a.SortY(Position{X: 0, Y: 64}); got != 58 {
		t.Errorf("SortY = %d, want 58", got)
	}
}
