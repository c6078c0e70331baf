package render

import (
	"errors"
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// Surface is a canvas that knows its drawable size in pixels.
type Surface interface {
	Canvas
	PixelSize() (int, int)
}

// NewCanvas builds the backend for kind. The terminal backend draws onto
// screen and keeps reserveRows free for status text; the raster backend
// allocates a w×h image and ignores screen.
func NewCanvas(kind Kind, screen tcell.Screen, tileSize, reserveRows, w, h int) (Surface, error) {
	switch kind {
	case KindTerminal:
		if screen == nil {
			return nil, errors.New("terminal backend needs a screen")
		}
		return NewScreenCanvas(screen, tileSize, reserveRows), nil
	case KindRaster:
		if w <= 0 || h <= 0 {
			return nil, fmt.Errorf("raster backend needs a positive size, got %dx%d", w, h)
		}
		return NewRasterCanvas(w, h), nil
	}
	return nil, fmt.Errorf("unsupported backend %s", kind)
}
