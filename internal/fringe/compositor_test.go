package fringe

import (
	"context"
	"fmt"
	"testing"

	"fringe-client/internal/ecs"
	"fringe-client/internal/gamemap"
	"fringe-client/internal/render"
	"fringe-client/internal/tilecache"
	"fringe-client/internal/zindex"
)

const tile = 32

var (
	grass = &render.Image{Name: "grass", W: tile, H: tile}
	tree  = &render.Image{Name: "tree", W: tile, H: 3 * tile}
)

// recordingPainter draws a marker image per actor so the paint sequence can
// be read back from a Batch.
type recordingPainter struct{}

func (recordingPainter) PaintActor(dst render.Canvas, id ecs.EntityID, view render.Viewport) {
	dst.DrawImage(&render.Image{Name: fmt.Sprintf("actor-%d", id)}, 0, 0)
}

func sequence(b *render.Batch) []string {
	var out []string
	for _, c := range b.Commands() {
		switch c.Op {
		case render.OpImage, render.OpPattern:
			out = append(out, c.Img.Name)
		case render.OpText:
			out = append(out, "text:"+c.Text)
		case render.OpFill:
			out = append(out, "fill")
		case render.OpRect:
			out = append(out, "rect")
		}
	}
	return out
}

func scene(m *gamemap.Map, actors *zindex.Index) Scene {
	rows := tilecache.New(m, true, nil)
	rows.Refresh(context.Background(), 0, m.Height, 0, m.Width)
	return Scene{
		Rows:     rows,
		Actors:   actors,
		Painter:  recordingPainter{},
		View:     render.Viewport{Width: m.Width * tile, Height: m.Height * tile, Tile: tile},
		RowStart: 0,
		RowEnd:   m.Height,
	}
}

func TestComposeInterleavesRowsActorsMarkers(t *testing.T) {
	m := gamemap.New("t", 2, 3, tile)
	m.Set(0, 0, gamemap.Cell{Image: grass})
	m.Set(0, 1, gamemap.Cell{Image: tree})
	m.Set(1, 2, gamemap.Cell{Image: grass})
	m.SetSpecial(1, 1, gamemap.Marker{Kind: gamemap.MarkerPortal, Label: "Gate"})

	x := zindex.New()
	x.Insert(1, 2*tile)  // bottom of row 1
	x.Insert(2, tile-1)  // inside row 0
	x.Insert(3, 10*tile) // below the map
	x.Sort()

	b := render.NewBatch(16)
	st := New(0, nil).Compose(context.Background(), b, scene(m, x))

	got := sequence(b)
	want := []string{
		"grass", "actor-2",
		"tree", "actor-1", "marker/portal", "text:Gate",
		"grass", "actor-3",
	}
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Fatalf("sequence = %v\nwant       %v", got, want)
	}
	if st.Actors != 3 || st.Rows != 3 || st.Batches != 3 || st.Markers != 1 {
		t.Fatalf("stats = %+v", st)
	}
}

func TestComposePaintsEveryActorOnceInOrder(t *testing.T) {
	m := gamemap.New("t", 4, 6, tile)
	for y := 0; y < 6; y++ {
		for xx := 0; xx < 4; xx++ {
			m.Set(xx, y, gamemap.Cell{Image: grass})
		}
	}
	x := zindex.New()
	keys := []int{-40, 5, 190, 33, 33, 64, 500, 100, 0}
	for i, k := range keys {
		x.Insert(ecs.EntityID(i+1), k)
	}
	x.Sort()
	var want []string
	for _, e := range x.Entries() {
		want = append(want, fmt.Sprintf("actor-%d", e.ID))
	}

	b := render.NewBatch(64)
	st := New(0, nil).Compose(context.Background(), b, scene(m, x))

	var got []string
	for _, name := range sequence(b) {
		if len(name) > 6 && name[:6] == "actor-" {
			got = append(got, name)
		}
	}
	if st.Actors != x.Len() || len(got) != x.Len() {
		t.Fatalf("painted %d actors (stats %d), index holds %d", len(got), st.Actors, x.Len())
	}
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Fatalf("actor order changed:\n%v\n%v", got, want)
	}
	if st.Tiles != 24 || st.Batches != 6 {
		t.Fatalf("each row should be one 4-tile batch, stats %+v", st)
	}
}

func TestComposeActorsFixShiftsFlush(t *testing.T) {
	m := gamemap.New("t", 1, 3, tile)
	for y := 0; y < 3; y++ {
		m.Set(0, y, gamemap.Cell{Image: grass})
	}
	x := zindex.New()
	x.Insert(1, tile)
	x.Sort()

	b := render.NewBatch(8)
	New(-1, nil).Compose(context.Background(), b, scene(m, x))
	got := sequence(b)
	want := []string{"grass", "grass", "actor-1", "grass"}
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Fatalf("sequence = %v, want %v", got, want)
	}
}

func TestComposeSortsDirtyIndex(t *testing.T) {
	m := gamemap.New("t", 1, 1, tile)
	x := zindex.New()
	x.Insert(1, 50)
	x.Insert(2, 10)

	b := render.NewBatch(4)
	New(0, nil).Compose(context.Background(), b, scene(m, x))
	got := sequence(b)
	if fmt.Sprint(got) != fmt.Sprint([]string{"actor-2", "actor-1"}) {
		t.Fatalf("sequence = %v", got)
	}
}

func TestComposeDrawsHighlightLast(t *testing.T) {
	m := gamemap.New("t", 8, 8, tile)
	s := scene(m, zindex.New())
	s.Highlight = &Highlight{X: 3*tile + tile/2, Y: 4 * tile, Range: 2}

	b := render.NewBatch(4)
	New(0, nil).Compose(context.Background(), b, s)
	cmds := b.Commands()
	if len(cmds) != 2 || cmds[0].Op != render.OpFill || cmds[1].Op != render.OpRect {
		t.Fatalf("expected fill then border, got %v", sequence(b))
	}
	want := render.Rect{X: 3*tile - 2*tile, Y: 3*tile - 2*tile, W: 5 * tile, H: 5 * tile}
	if got := (render.Rect{X: cmds[0].X, Y: cmds[0].Y, W: cmds[0].W, H: cmds[0].H}); got != want {
		t.Fatalf("highlight = %+v, want %+v", got, want)
	}
}

func TestAttackRangeRectWidensShortRange(t *testing.T) {
	view := render.Viewport{ScrollX: tile, ScrollY: 0, Width: 10 * tile, Height: 10 * tile, Tile: tile}
	h := Highlight{X: 5*tile + tile/2, Y: 5 * tile, Range: 1}
	got := AttackRangeRect(view, h)
	want := render.Rect{
		X: 4*tile - tile - tile/2,
		Y: 4*tile - tile - tile/2,
		W: 3*tile + tile,
		H: 3*tile + tile,
	}
	if got != want {
		t.Fatalf("rect = %+v, want %+v", got, want)
	}
}
