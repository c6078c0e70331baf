package sprite

import (
	"fmt"
	"log/slog"

	"fringe-client/internal/itemdb"
	"fringe-client/internal/render"
	"fringe-client/internal/resource"
)

type layer struct {
	path    string
	pending *resource.Handle
	shown   *render.Image
}

// Drawable holds the loaded layer images of one entity and paints them in
// resolved order. A layer whose new image is still loading keeps painting
// its previous image.
type Drawable struct {
	cache       *resource.Cache
	rules       itemdb.Lookup
	gender      itemdb.Gender
	logger      *slog.Logger
	placeholder *render.Image

	layers []layer
	result Result
	warned map[string]bool
}

// NewDrawable creates a drawable with n layers. placeholder, when non-nil,
// stands in for layers whose image failed to load.
func NewDrawable(cache *resource.Cache, rules itemdb.Lookup, gender itemdb.Gender, n int, placeholder *render.Image, logger *slog.Logger) *Drawable {
	if logger == nil {
		logger = slog.Default()
	}
	return &Drawable{
		cache:       cache,
		rules:       rules,
		gender:      gender,
		logger:      logger,
		placeholder: placeholder,
		layers:      make([]layer, n),
		warned:      make(map[string]bool),
	}
}

// Apply switches each layer to the sprite the resolution asks for: the
// substitute for substituted slots, nothing for hidden or empty ones. An item
// without a sprite definition paints the placeholder.
func (d *Drawable) Apply(t *SlotTable, res Result) {
	d.result = res
	for i := range d.layers {
		item := t.Item(i)
		if i < len(res.Mask) {
			switch res.Mask[i].State {
			case Hidden:
				item = 0
			case Substituted:
				item = res.Mask[i].Item
			}
		}
		path, found := "", true
		if item != 0 {
			path, found = d.rules.SpritePath(item, d.gender)
		}
		d.setPath(i, path)
		if !found {
			d.missing(i, item)
		}
	}
	d.Refresh()
}

func (d *Drawable) setPath(i int, path string) {
	l := &d.layers[i]
	if path == "" {
		l.shown = nil
	}
	if l.path == path {
		return
	}
	d.cache.Release(l.pending)
	l.pending = nil
	l.path = path
	if path != "" {
		l.pending = d.cache.Acquire(path)
	}
}

// missing paints the placeholder for an equipped item that has no sprite
// definition for this gender.
func (d *Drawable) missing(i int, item itemdb.ItemID) {
	key := fmt.Sprintf("item:%d", item)
	if !d.warned[key] {
		d.warned[key] = true
		d.logger.Warn("sprite definition missing", "slot", i, "item", item)
	}
	d.layers[i].shown = d.placeholder
}

// Refresh picks up images that finished loading since the last call.
func (d *Drawable) Refresh() {
	for i := range d.layers {
		l := &d.layers[i]
		if l.pending == nil {
			continue
		}
		switch l.pending.State() {
		case resource.StateReady:
			l.shown = l.pending.Image()
		case resource.StateFailed:
			if !d.warned[l.path] {
				d.warned[l.path] = true
				d.logger.Warn("sprite layer missing", "slot", i, "path", l.path, "error", l.pending.Err())
			}
			l.shown = d.placeholder
		}
	}
}

// Draw paints the visible layers back to front, anchored bottom-center at
// screen pixel (x, y). It returns the number of images drawn.
func (d *Drawable) Draw(dst render.Canvas, x, y int) int {
	n := 0
	for _, slot := range d.result.Order {
		if slot < 0 || slot >= len(d.layers) {
			continue
		}
		if slot < len(d.result.Mask) && d.result.Mask[slot].State == Hidden {
			continue
		}
		img := d.layers[slot].shown
		if img == nil {
			continue
		}
		dst.DrawImage(img, x-img.W/2, y-img.H)
		n++
	}
	return n
}

// Order returns the paint order of the last applied resolution.
func (d *Drawable) Order() DrawOrder { return d.result.Order }

// Mask returns the hide mask of the last applied resolution.
func (d *Drawable) Mask() HideMask { return d.result.Mask }

// Release drops every cache reference the drawable holds.
func (d *Drawable) Release() {
	for i := range d.layers {
		d.cache.Release(d.layers[i].pending)
		d.layers[i] = layer{}
	}
}
