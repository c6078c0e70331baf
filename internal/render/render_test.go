package render

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/gdamore/tcell/v2"
)

func newSimScreen(w, h int) tcell.Screen {
	ss := tcell.NewSimulationScreen("UTF-8")
	_ = ss.Init()
	ss.SetSize(w, h)
	return ss
}

var red = color.RGBA{255, 0, 0, 255}

func TestParseKind(t *testing.T) {
	cases := []struct {
		in      string
		want    Kind
		wantErr bool
	}{
		{"", KindTerminal, false},
		{"terminal", KindTerminal, false},
		{"RASTER", KindRaster, false},
		{"opengl", 0, true},
	}
	for _, c := range cases {
		got, err := ParseKind(c.in)
		if (err != nil) != c.wantErr {
			t.Errorf("ParseKind(%q) err=%v", c.in, err)
			continue
		}
		if !c.wantErr && got != c.want {
			t.Errorf("ParseKind(%q)=%v, want %v", c.in, got, c.want)
		}
	}
}

func TestBatchFlushReplaysInOrder(t *testing.T) {
	img := &Image{Name: "grass", W: 32, H: 32}
	b := NewBatch(4)
	b.DrawImage(img, 0, 0)
	b.FillRect(Rect{1, 2, 3, 4}, red)
	b.DrawText(5, 6, "hi", red)

	rec := NewBatch(4)
	b.Flush(rec)

	if b.Len() != 0 {
		t.Fatalf("flush should reset source batch, len=%d", b.Len())
	}
	cmds := rec.Commands()
	if len(cmds) != 3 {
		t.Fatalf("expected 3 replayed commands, got %d", len(cmds))
	}
	if cmds[0].Op != OpImage || cmds[0].Img != img {
		t.Errorf("first command = %+v", cmds[0])
	}
	if cmds[1].Op != OpFill || cmds[1].W != 3 || cmds[1].H != 4 {
		t.Errorf("second command = %+v", cmds[1])
	}
	if cmds[2].Op != OpText || cmds[2].Text != "hi" {
		t.Errorf("third command = %+v", cmds[2])
	}
}

func TestViewportClampsToMap(t *testing.T) {
	// 20x10 tile map of 32px tiles, 320x160 view.
	v := NewViewport(0, 0, 320, 160, 20, 10, 32)
	if v.ScrollX != 0 || v.ScrollY != 0 {
		t.Errorf("top-left clamp: got (%d,%d)", v.ScrollX, v.ScrollY)
	}
	v = NewViewport(20*32, 10*32, 320, 160, 20, 10, 32)
	if v.ScrollX != 20*32-320 || v.ScrollY != 10*32-160 {
		t.Errorf("bottom-right clamp: got (%d,%d)", v.ScrollX, v.ScrollY)
	}
	// Map smaller than the view pins to zero.
	v = NewViewport(50, 50, 1000, 1000, 4, 4, 32)
	if v.ScrollX != 0 || v.ScrollY != 0 {
		t.Errorf("small map: got (%d,%d)", v.ScrollX, v.ScrollY)
	}
}

func TestViewportRowsAndColumns(t *testing.T) {
	v := Viewport{ScrollX: 40, ScrollY: 70, Width: 100, Height: 64, Tile: 32}
	c0, c1 := v.Columns()
	if c0 != 1 || c1 != 5 {
		t.Errorf("columns = [%d,%d), want [1,5)", c0, c1)
	}
	r0, r1 := v.Rows(2)
	if r0 != 2 || r1 != 7 {
		t.Errorf("rows = [%d,%d), want [2,7)", r0, r1)
	}
	sx, sy := v.WorldToScreen(140, 170)
	if sx != 100 || sy != 100 {
		t.Errorf("WorldToScreen = (%d,%d)", sx, sy)
	}
}

func TestRasterFillAndPattern(t *testing.T) {
	c := NewRasterCanvas(64, 32)
	c.Clear(color.RGBA{0, 0, 0, 255})

	tile := &Image{W: 8, H: 8, Tint: red}
	c.DrawPattern(tile, 0, 0, 20, 8)

	got := c.Image().RGBAAt(19, 7)
	if got != red {
		t.Errorf("pixel inside pattern = %v, want red", got)
	}
	if got := c.Image().RGBAAt(20, 0); got.R != 0 {
		t.Errorf("pattern leaked past its width: %v", got)
	}
}

func TestRasterDrawImageScalesPixels(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			src.SetRGBA(x, y, red)
		}
	}
	c := NewRasterCanvas(16, 16)
	c.DrawImage(&Image{W: 8, H: 8, Pixels: src}, 4, 4)
	if got := c.Image().RGBAAt(11, 11); got != red {
		t.Errorf("scaled pixel = %v, want red", got)
	}
	if got := c.Image().RGBAAt(12, 12); got.A != 0 {
		t.Errorf("pixel outside scaled box = %v", got)
	}
}

func TestRasterEncodeWebP(t *testing.T) {
	c := NewRasterCanvas(8, 8)
	c.Clear(red)
	var buf bytes.Buffer
	if err := c.EncodeWebP(&buf); err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("RIFF")) {
		t.Fatalf("expected RIFF header, got %q", buf.Bytes()[:4])
	}
}

func TestScreenCanvasGlyphAnchorsAtBottom(t *testing.T) {
	ss := newSimScreen(20, 10)
	c := NewScreenCanvas(ss, 32, 1)

	// A 32x64 tree whose top-left is at (32, 0) covers rows 0-1; the glyph
	// lands on the bottom row, column 2.
	c.DrawImage(&Image{W: 32, H: 64, Glyph: "T", Tint: red}, 32, 0)
	mainc, _, _, _ := ss.GetContent(2, 1)
	if mainc != 'T' {
		t.Fatalf("expected glyph at (2,1), got %q", mainc)
	}
	if mainc, _, _, _ := ss.GetContent(2, 0); mainc == 'T' {
		t.Fatal("glyph should not be on the top row")
	}
}

func TestScreenCanvasRespectsReservedRows(t *testing.T) {
	ss := newSimScreen(10, 5)
	c := NewScreenCanvas(ss, 32, 2)
	_, h := c.PixelSize()
	if h != 3*32 {
		t.Fatalf("pixel height = %d, want %d", h, 3*32)
	}
	c.DrawText(0, 4*32, "X", red)
	if mainc, _, _, _ := ss.GetContent(0, 4); mainc == 'X' {
		t.Fatal("text drawn into reserved status rows")
	}
	c.DrawStatus(1, "ok", red)
	if mainc, _, _, _ := ss.GetContent(0, 4); mainc != 'o' {
		t.Fatalf("status line not drawn, got %q", mainc)
	}
}

func TestNewCanvas(t *testing.T) {
	ss := newSimScreen(20, 10)
	defer ss.Fini()

	tests := []struct {
		name    string
		kind    Kind
		screen  tcell.Screen
		w, h    int
		wantErr bool
	}{
		{"terminal", KindTerminal, ss, 0, 0, false},
		{"terminal without screen", KindTerminal, nil, 0, 0, true},
		{"raster", KindRaster, nil, 64, 32, false},
		{"raster without size", KindRaster, nil, 0, 32, true},
		{"unknown kind", Kind(9), ss, 64, 32, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewCanvas(tt.kind, tt.screen, 16, 1, tt.w, tt.h)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewCanvas err = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if w, h := c.PixelSize(); w <= 0 || h <= 0 {
				t.Errorf("PixelSize = %dx%d", w, h)
			}
		})
	}
}
