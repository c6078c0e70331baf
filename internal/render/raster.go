package render

import (
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/HugoSmits86/nativewebp"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// RasterCanvas paints draw commands into an RGBA image.
type RasterCanvas struct {
	dst *image.RGBA
}

// NewRasterCanvas allocates a w×h canvas.
func NewRasterCanvas(w, h int) *RasterCanvas {
	return &RasterCanvas{dst: image.NewRGBA(image.Rect(0, 0, w, h))}
}

// Image returns the backing image.
func (c *RasterCanvas) Image() *image.RGBA { return c.dst }

// PixelSize returns the canvas dimensions.
func (c *RasterCanvas) PixelSize() (int, int) {
	b := c.dst.Bounds()
	return b.Dx(), b.Dy()
}

// Clear fills the whole canvas with col.
func (c *RasterCanvas) Clear(col color.RGBA) {
	xdraw.Draw(c.dst, c.dst.Bounds(), image.NewUniform(col), image.Point{}, xdraw.Src)
}

// DrawImage scales the image pixels into its declared W×H box, or fills the
// box with the tint when the image has no pixels.
func (c *RasterCanvas) DrawImage(img *Image, x, y int) {
	if img == nil {
		return
	}
	r := image.Rect(x, y, x+img.W, y+img.H)
	if img.Pixels == nil {
		c.FillRect(Rect{x, y, img.W, img.H}, img.Tint)
		return
	}
	src := img.Pixels.Bounds()
	if src.Dx() == img.W && src.Dy() == img.H {
		xdraw.Draw(c.dst, r, img.Pixels, src.Min, xdraw.Over)
		return
	}
	xdraw.NearestNeighbor.Scale(c.dst, r, img.Pixels, src, xdraw.Over, nil)
}

// DrawPattern tiles img over w×h, clipping the last column and row.
func (c *RasterCanvas) DrawPattern(img *Image, x, y, w, h int) {
	if img == nil || img.W <= 0 || img.H <= 0 {
		return
	}
	clip := image.Rect(x, y, x+w, y+h)
	scratch := image.NewRGBA(image.Rect(0, 0, img.W, img.H))
	tmp := &RasterCanvas{dst: scratch}
	tmp.DrawImage(img, 0, 0)
	for py := y; py < y+h; py += img.H {
		for px := x; px < x+w; px += img.W {
			r := image.Rect(px, py, px+img.W, py+img.H).Intersect(clip)
			xdraw.Draw(c.dst, r, scratch, image.Point{X: r.Min.X - px, Y: r.Min.Y - py}, xdraw.Over)
		}
	}
}

// FillRect composites a uniform color over r.
func (c *RasterCanvas) FillRect(r Rect, col color.RGBA) {
	if r.Empty() || col.A == 0 {
		return
	}
	op := xdraw.Over
	if col.A == 0xff {
		op = xdraw.Src
	}
	xdraw.Draw(c.dst, image.Rect(r.X, r.Y, r.X+r.W, r.Y+r.H), image.NewUniform(col), image.Point{}, op)
}

// DrawRect outlines r with a one-pixel border.
func (c *RasterCanvas) DrawRect(r Rect, col color.RGBA) {
	if r.Empty() {
		return
	}
	c.FillRect(Rect{r.X, r.Y, r.W, 1}, col)
	c.FillRect(Rect{r.X, r.Y + r.H - 1, r.W, 1}, col)
	c.FillRect(Rect{r.X, r.Y, 1, r.H}, col)
	c.FillRect(Rect{r.X + r.W - 1, r.Y, 1, r.H}, col)
}

// DrawText renders text with the built-in 7x13 face; (x, y) is the top-left
// of the text box.
func (c *RasterCanvas) DrawText(x, y int, text string, col color.RGBA) {
	face := basicfont.Face7x13
	d := font.Drawer{
		Dst:  c.dst,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.P(x, y+face.Ascent),
	}
	d.DrawString(text)
}

// EncodeWebP writes the canvas as a lossless WebP image.
func (c *RasterCanvas) EncodeWebP(w io.Writer) error {
	if err := nativewebp.Encode(w, c.dst, nil); err != nil {
		return fmt.Errorf("encode webp: %w", err)
	}
	return nil
}
