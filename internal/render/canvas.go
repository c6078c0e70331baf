// Package render defines the draw-command interface the compositor paints
// through, plus its backends: an immediate tcell screen, an RGBA raster and a
// recording batch that replays into either.
package render

import (
	"fmt"
	"image"
	"image/color"
	"strings"
)

// Image is a drawable resource. Pixels feeds the raster backend; Glyph and
// Tint feed the terminal backend. An Image with neither pixels nor glyph
// paints as a solid Tint block.
type Image struct {
	Name   string
	W, H   int
	Glyph  string
	Tint   color.RGBA
	Pixels image.Image
}

// Rect is an axis-aligned pixel rectangle.
type Rect struct {
	X, Y, W, H int
}

// Empty reports whether the rectangle covers no pixels.
func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

// Canvas receives draw commands in paint order (back to front).
type Canvas interface {
	// DrawImage paints img with its top-left corner at (x, y).
	DrawImage(img *Image, x, y int)
	// DrawPattern repeats img horizontally and vertically to fill w×h at (x, y).
	DrawPattern(img *Image, x, y, w, h int)
	FillRect(r Rect, c color.RGBA)
	DrawRect(r Rect, c color.RGBA)
	DrawText(x, y int, text string, c color.RGBA)
}

// Kind selects a backend at startup.
type Kind uint8

const (
	KindTerminal Kind = iota
	KindRaster
)

func (k Kind) String() string {
	switch k {
	case KindTerminal:
		return "terminal"
	case KindRaster:
		return "raster"
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// ParseKind converts a configuration string into a backend kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "terminal", "tcell":
		return KindTerminal, nil
	case "raster", "image":
		return KindRaster, nil
	}
	return 0, fmt.Errorf("unknown render backend %q", s)
}
