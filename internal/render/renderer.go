package render

import (
	"image/color"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// ScreenCanvas paints draw commands immediately onto a tcell screen.
// One terminal column covers half a tile horizontally and one row covers a
// full tile vertically, so a tile glyph (usually a 2-column emoji) fills
// exactly its tile.
type ScreenCanvas struct {
	screen  tcell.Screen
	cellW   int // pixels per column
	cellH   int // pixels per row
	reserve int // rows kept free at the bottom for the status line
}

// NewScreenCanvas creates a canvas for screen using the given tile size in pixels.
// reserveRows are left untouched at the bottom of the screen.
func NewScreenCanvas(screen tcell.Screen, tileSize, reserveRows int) *ScreenCanvas {
	if tileSize < 2 {
		tileSize = 2
	}
	return &ScreenCanvas{
		screen:  screen,
		cellW:   tileSize / 2,
		cellH:   tileSize,
		reserve: reserveRows,
	}
}

// PixelSize returns the drawable area in pixels.
func (c *ScreenCanvas) PixelSize() (int, int) {
	w, h := c.screen.Size()
	h -= c.reserve
	if h < 0 {
		h = 0
	}
	return w * c.cellW, h * c.cellH
}

// ScreenToCell converts a pixel position to a terminal cell.
func (c *ScreenCanvas) ScreenToCell(x, y int) (int, int) {
	return floorDiv(x, c.cellW), floorDiv(y, c.cellH)
}

func (c *ScreenCanvas) inView(col, row int) bool {
	w, h := c.screen.Size()
	return col >= 0 && col < w && row >= 0 && row < h-c.reserve
}

// DrawImage places the glyph at the cell holding the image's bottom-left
// corner, tinting the foreground and keeping the cell background. A glyphless
// image fills every covered cell with its tint.
func (c *ScreenCanvas) DrawImage(img *Image, x, y int) {
	if img == nil {
		return
	}
	if img.Glyph == "" {
		c.FillRect(Rect{x, y, img.W, img.H}, img.Tint)
		return
	}
	col, row := c.ScreenToCell(x, y+img.H-1)
	c.putGlyph(col, row, img.Glyph, toTcell(img.Tint))
}

// DrawPattern repeats img across the area one image width at a time.
func (c *ScreenCanvas) DrawPattern(img *Image, x, y, w, h int) {
	if img == nil || img.W <= 0 || img.H <= 0 {
		return
	}
	for py := y; py < y+h; py += img.H {
		for px := x; px < x+w; px += img.W {
			c.DrawImage(img, px, py)
		}
	}
}

// FillRect sets the background of every covered cell. Translucent colors
// are not blended; the terminal has no alpha.
func (c *ScreenCanvas) FillRect(r Rect, col color.RGBA) {
	if r.Empty() || col.A == 0 {
		return
	}
	c0, r0 := c.ScreenToCell(r.X, r.Y)
	c1, r1 := c.ScreenToCell(r.X+r.W-1, r.Y+r.H-1)
	bg := toTcell(col)
	for row := r0; row <= r1; row++ {
		for cx := c0; cx <= c1; cx++ {
			if !c.inView(cx, row) {
				continue
			}
			mainc, combc, st, _ := c.screen.GetContent(cx, row)
			if mainc == 0 {
				mainc = ' '
			}
			c.screen.SetContent(cx, row, mainc, combc, st.Background(bg))
		}
	}
}

// DrawRect outlines r with light box-drawing characters.
func (c *ScreenCanvas) DrawRect(r Rect, col color.RGBA) {
	if r.Empty() {
		return
	}
	c0, r0 := c.ScreenToCell(r.X, r.Y)
	c1, r1 := c.ScreenToCell(r.X+r.W-1, r.Y+r.H-1)
	fg := toTcell(col)
	for cx := c0; cx <= c1; cx++ {
		c.setRune(cx, r0, '─', fg)
		c.setRune(cx, r1, '─', fg)
	}
	for row := r0; row <= r1; row++ {
		c.setRune(c0, row, '│', fg)
		c.setRune(c1, row, '│', fg)
	}
	c.setRune(c0, r0, '┌', fg)
	c.setRune(c1, r0, '┐', fg)
	c.setRune(c0, r1, '└', fg)
	c.setRune(c1, r1, '┘', fg)
}

// DrawText writes text starting at the cell holding (x, y), advancing by
// each rune's display width.
func (c *ScreenCanvas) DrawText(x, y int, text string, col color.RGBA) {
	cx, row := c.ScreenToCell(x, y)
	fg := toTcell(col)
	for _, ch := range text {
		w := runewidth.RuneWidth(ch)
		if w == 0 {
			continue
		}
		c.setRune(cx, row, ch, fg)
		if w == 2 {
			c.setRune(cx+1, row, ' ', fg)
		}
		cx += w
	}
}

// DrawStatus writes a plain status line into the reserved rows.
func (c *ScreenCanvas) DrawStatus(line int, text string, col color.RGBA) {
	w, h := c.screen.Size()
	row := h - c.reserve + line
	if row < 0 || row >= h {
		return
	}
	style := tcell.StyleDefault.Foreground(toTcell(col))
	cx := 0
	for _, ch := range text {
		if cx >= w {
			break
		}
		c.screen.SetContent(cx, row, ch, nil, style)
		cx += max(runewidth.RuneWidth(ch), 1)
	}
}

func (c *ScreenCanvas) setRune(col, row int, ch rune, fg tcell.Color) {
	if !c.inView(col, row) {
		return
	}
	_, _, st, _ := c.screen.GetContent(col, row)
	c.screen.SetContent(col, row, ch, nil, st.Foreground(fg))
}

// putGlyph draws a single glyph (ASCII or multi-rune emoji) at cell (col, row).
func (c *ScreenCanvas) putGlyph(col, row int, glyph string, fg tcell.Color) {
	if !c.inView(col, row) {
		return
	}
	runes := []rune(glyph)
	if len(runes) == 0 {
		return
	}
	_, _, st, _ := c.screen.GetContent(col, row)
	style := st.Foreground(fg)
	mainc := runes[0]
	var combc []rune
	if len(runes) > 1 {
		combc = runes[1:]
	}
	c.screen.SetContent(col, row, mainc, combc, style)
	if runewidth.StringWidth(glyph) == 2 && c.inView(col+1, row) {
		// Fill the second column to avoid rendering artifacts.
		c.screen.SetContent(col+1, row, ' ', nil, style)
	}
}

func toTcell(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func floorDiv(a, b int) int {
	if b <= 0 {
		return 0
	}
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
