package render

import "image/color"

// Op identifies a recorded draw command.
type Op uint8

const (
	OpImage Op = iota
	OpPattern
	OpFill
	OpRect
	OpText
)

// Command is one recorded draw call.
type Command struct {
	Op    Op
	Img   *Image
	X, Y  int
	W, H  int
	Color color.RGBA
	Text  string
}

// Batch records draw commands and replays them into another canvas on Flush.
// fringe-snapshot composes each frame into a Batch before rasterizing it;
// tests use it to inspect paint order.
type Batch struct {
	cmds []Command
}

// NewBatch returns an empty batch with room for n commands.
func NewBatch(n int) *Batch {
	return &Batch{cmds: make([]Command, 0, n)}
}

func (b *Batch) DrawImage(img *Image, x, y int) {
	b.cmds = append(b.cmds, Command{Op: OpImage, Img: img, X: x, Y: y})
}

func (b *Batch) DrawPattern(img *Image, x, y, w, h int) {
	b.cmds = append(b.cmds, Command{Op: OpPattern, Img: img, X: x, Y: y, W: w, H: h})
}

func (b *Batch) FillRect(r Rect, c color.RGBA) {
	b.cmds = append(b.cmds, Command{Op: OpFill, X: r.X, Y: r.Y, W: r.W, H: r.H, Color: c})
}

func (b *Batch) DrawRect(r Rect, c color.RGBA) {
	b.cmds = append(b.cmds, Command{Op: OpRect, X: r.X, Y: r.Y, W: r.W, H: r.H, Color: c})
}

func (b *Batch) DrawText(x, y int, text string, c color.RGBA) {
	b.cmds = append(b.cmds, Command{Op: OpText, X: x, Y: y, Text: text, Color: c})
}

// Commands returns the recorded commands. The slice is reused after Reset.
func (b *Batch) Commands() []Command { return b.cmds }

// Len returns the number of recorded commands.
func (b *Batch) Len() int { return len(b.cmds) }

// Reset drops all recorded commands, keeping capacity.
func (b *Batch) Reset() { b.cmds = b.cmds[:0] }

// Flush replays every command into dst in recording order and resets the batch.
func (b *Batch) Flush(dst Canvas) {
	for _, c := range b.cmds {
		switch c.Op {
		case OpImage:
			dst.DrawImage(c.Img, c.X, c.Y)
		case OpPattern:
			dst.DrawPattern(c.Img, c.X, c.Y, c.W, c.H)
		case OpFill:
			dst.FillRect(Rect{c.X, c.Y, c.W, c.H}, c.Color)
		case OpRect:
			dst.DrawRect(Rect{c.X, c.Y, c.W, c.H}, c.Color)
		case OpText:
			dst.DrawText(c.X, c.Y, c.Text, c.Color)
		}
	}
	b.Reset()
}
