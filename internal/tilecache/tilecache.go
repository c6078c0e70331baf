// Package tilecache keeps, per visible terrain row, the run-length batched
// tile draws and overlay markers the compositor paints. Rows are always
// rebuilt whole; there is no partial patching.
package tilecache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"fringe-client/internal/gamemap"
	"fringe-client/internal/render"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

// ErrStaleRow is the assertion raised when an invalidated row is read
// before being rebuilt.
var ErrStaleRow = errors.New("stale row cache read")

var tracer = otel.Tracer("fringe-client/tilecache")

// Batch is one draw of Count horizontally repeated copies of Image. X and Y
// are the world pixel position of the first copy's top-left corner.
type Batch struct {
	Image *render.Image
	X, Y  int
	Count int
	Width int
}

// MarkerDraw is an overlay marker positioned in world pixels.
type MarkerDraw struct {
	Image *render.Image
	X, Y  int
	Label string
}

// Row is the cached content of one terrain row for a column range.
type Row struct {
	Index      int
	Start, End int // half-open column range
	Batches    []Batch
	Markers    []MarkerDraw
	stale      bool
}

// Tiles returns the number of tiles covered by the row's batches.
func (r *Row) Tiles() int {
	n := 0
	for _, b := range r.Batches {
		n += b.Count
	}
	return n
}

// Cache holds rows for a single map.
type Cache struct {
	m       *gamemap.Map
	rows    map[int]*Row
	markers map[gamemap.MarkerKind]*render.Image
	debug   bool
	logger  *slog.Logger
	builds  int
}

// New creates an empty cache for m. With debug set a stale read panics
// instead of being repaired.
func New(m *gamemap.Map, debug bool, logger *slog.Logger) *Cache {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cache{
		m:       m,
		rows:    make(map[int]*Row),
		markers: make(map[gamemap.MarkerKind]*render.Image),
		debug:   debug,
		logger:  logger,
	}
}

// Build rebuilds row for columns [start, end) from the map and stores it.
func (c *Cache) Build(row, start, end int) *Row {
	r := c.build(row, start, end)
	c.rows[row] = r
	c.builds++
	return r
}

func (c *Cache) build(row, start, end int) *Row {
	start = max(start, 0)
	end = min(end, c.m.Width)
	r := &Row{Index: row, Start: start, End: end}
	if row < 0 || row >= c.m.Height {
		return r
	}
	tile := c.m.TileSize

	for x := start; x < end; {
		cell := c.m.At(x, row)
		if !cell.Drawable() {
			x++
			continue
		}
		img := cell.Image
		n := 1
		if img.W == tile {
			for x+n < end {
				next := c.m.At(x+n, row)
				if !next.Drawable() || next.Image != img {
					break
				}
				n++
			}
		}
		w := img.W
		if n > 1 {
			w = n * tile
		}
		r.Batches = append(r.Batches, Batch{
			Image: img,
			X:     x * tile,
			Y:     (row+1)*tile - img.H,
			Count: n,
			Width: w,
		})
		x += n
	}

	for x := start; x < end; x++ {
		r.Markers = c.appendMarker(r.Markers, c.m.Special(x, row), x, row)
	}
	for x := start; x < end; x++ {
		r.Markers = c.appendMarker(r.Markers, c.m.Temp(x, row), x, row)
	}
	return r
}

func (c *Cache) appendMarker(dst []MarkerDraw, mk gamemap.Marker, x, row int) []MarkerDraw {
	if mk.Empty() {
		return dst
	}
	return append(dst, MarkerDraw{
		Image: c.markerImage(mk.Kind),
		X:     x * c.m.TileSize,
		Y:     row * c.m.TileSize,
		Label: mk.Label,
	})
}

func (c *Cache) markerImage(kind gamemap.MarkerKind) *render.Image {
	if img, ok := c.markers[kind]; ok {
		return img
	}
	img := gamemap.MarkerImage(kind, c.m.TileSize)
	c.markers[kind] = img
	return img
}

// Invalidate marks row for rebuild. Rows never built are left alone; the
// next Refresh builds them cold either way.
func (c *Cache) Invalidate(row int) {
	if r, ok := c.rows[row]; ok {
		r.stale = true
	}
}

// Refresh makes rows [rowStart, rowEnd) current for columns
// [colStart, colEnd): missing, stale and range-changed rows are rebuilt and
// rows outside the range are evicted. It returns the number of rebuilds.
func (c *Cache) Refresh(ctx context.Context, rowStart, rowEnd, colStart, colEnd int) int {
	_, span := tracer.Start(ctx, "tilecache.Refresh")
	defer span.End()

	rowStart = max(rowStart, 0)
	rowEnd = min(rowEnd, c.m.Height)
	colStart = max(colStart, 0)
	colEnd = min(colEnd, c.m.Width)

	for idx := range c.rows {
		if idx < rowStart || idx >= rowEnd {
			delete(c.rows, idx)
		}
	}
	n := 0
	for row := rowStart; row < rowEnd; row++ {
		r, ok := c.rows[row]
		if ok && !r.stale && r.Start == colStart && r.End == colEnd {
			continue
		}
		c.Build(row, colStart, colEnd)
		n++
	}
	span.SetAttributes(attribute.Int("rows", rowEnd-rowStart), attribute.Int("rebuilt", n))
	return n
}

// Row returns the cached row. Reading a stale row panics in debug mode and
// is repaired with a synchronous rebuild otherwise.
func (c *Cache) Row(row int) (*Row, bool) {
	r, ok := c.rows[row]
	if !ok {
		return nil, false
	}
	if r.stale {
		if c.debug {
			panic(fmt.Errorf("row %d of map %s: %w", row, c.m.ID, ErrStaleRow))
		}
		c.logger.Warn("stale row read, rebuilding", "map", c.m.ID, "row", row)
		r = c.Build(row, r.Start, r.End)
	}
	return r, true
}

// Len returns the number of cached rows.
func (c *Cache) Len() int { return len(c.rows) }

// Builds returns the number of row builds since creation.
func (c *Cache) Builds() int { return c.builds }

// Clear drops every row.
func (c *Cache) Clear() {
	clear(c.rows)
}
