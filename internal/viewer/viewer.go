// Package viewer runs the interactive terminal loop over a map session: it
// feeds key presses to the session, ticks animations and townspeople, and
// composes a frame onto a tcell screen after every change.
package viewer

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"fringe-client/assets"
	"fringe-client/internal/component"
	"fringe-client/internal/gamemap"
	"fringe-client/internal/itemdb"
	"fringe-client/internal/render"
	"fringe-client/internal/session"
	"fringe-client/internal/system"

	"github.com/gdamore/tcell/v2"
)

// statusRows is the number of screen rows kept for the status line.
const statusRows = 1

// Options tunes the viewer loop.
type Options struct {
	Tick time.Duration
	// NPCEvery is how many animation ticks pass between townspeople steps.
	NPCEvery int
	// SnapshotDir receives WebP frames on 's'; empty disables snapshots.
	SnapshotDir string
}

// Viewer drives one session on one screen.
type Viewer struct {
	screen tcell.Screen
	canvas *render.ScreenCanvas
	sess   *session.Session
	npcs   *system.Wanderer
	opts   Options
	logger *slog.Logger

	target    gamemap.Point
	outfit    int
	pathShown bool
	ticks     int
	snapshots int
	message   string
}

// New creates a viewer. npcs may be nil to keep townspeople still.
func New(screen tcell.Screen, sess *session.Session, npcs *system.Wanderer, opts Options, logger *slog.Logger) *Viewer {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Tick <= 0 {
		opts.Tick = 50 * time.Millisecond
	}
	if opts.NPCEvery <= 0 {
		opts.NPCEvery = 10
	}
	return &Viewer{
		screen: screen,
		canvas: render.NewScreenCanvas(screen, sess.Map().TileSize, statusRows),
		sess:   sess,
		npcs:   npcs,
		opts:   opts,
		logger: logger,
		target: pathTarget(sess.Map()),
	}
}

// pathTarget picks the destination of the navigation overlay: the first
// portal marker, else the center of the last room.
func pathTarget(m *gamemap.Map) gamemap.Point {
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			if m.Special(x, y).Kind == gamemap.MarkerPortal {
				return gamemap.Point{X: x, Y: y}
			}
		}
	}
	if len(m.Rooms) > 0 {
		x, y := m.Rooms[len(m.Rooms)-1].Center()
		return gamemap.Point{X: x, Y: y}
	}
	return gamemap.Point{}
}

// Run loops until ctx is done, the screen is finalized or the user quits.
// The caller owns the screen and must Fini it afterwards.
func (v *Viewer) Run(ctx context.Context) error {
	events := make(chan tcell.Event)
	done := make(chan struct{})
	defer close(done)
	go func() {
		defer close(events)
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	ticker := time.NewTicker(v.opts.Tick)
	defer ticker.Stop()

	v.message = "arrows/hjkl move  e outfit  d dead  r range  p path  t labels  s snapshot  q quit"
	if err := v.Draw(ctx); err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev := ev.(type) {
			case *tcell.EventResize:
				v.screen.Sync()
			case *tcell.EventKey:
				quit, err := v.Apply(ctx, keyToAction(ev))
				if err != nil {
					return err
				}
				if quit {
					return nil
				}
			}
		case <-ticker.C:
			if err := v.Tick(ctx); err != nil {
				return err
			}
		}
		if err := v.Draw(ctx); err != nil {
			return err
		}
	}
}

// Tick advances animations by one tick and moves townspeople every
// NPCEvery ticks.
func (v *Viewer) Tick(ctx context.Context) error {
	v.ticks++
	if err := v.sess.Tick(1); err != nil {
		return err
	}
	if v.npcs == nil || v.ticks%v.opts.NPCEvery != 0 {
		return nil
	}
	_, err := v.npcs.Step(ctx, v.sess)
	return err
}

// Apply performs one action. It reports whether the viewer should quit.
func (v *Viewer) Apply(ctx context.Context, a Action) (bool, error) {
	player := v.sess.Player()
	switch a {
	case ActionQuit:
		return true, nil
	case ActionMoveN, ActionMoveS, ActionMoveE, ActionMoveW,
		ActionMoveNE, ActionMoveNW, ActionMoveSE, ActionMoveSW:
		dx, dy := actionToDelta(a)
		moved, err := v.sess.Step(ctx, player, dx, dy)
		if err != nil {
			return false, err
		}
		if !moved {
			v.message = "Blocked."
		}
		if v.pathShown {
			return false, v.showPath()
		}
	case ActionOutfit:
		v.outfit = (v.outfit + 1) % len(assets.Outfits)
		if err := v.wear(ctx, assets.Outfits[v.outfit]); err != nil {
			return false, err
		}
		v.message = fmt.Sprintf("Outfit %d of %d.", v.outfit+1, len(assets.Outfits))
	case ActionDead:
		actor, ok := v.sess.World().Get(player, component.CActor).(component.Actor)
		if !ok {
			return false, nil
		}
		if err := v.sess.SetDead(ctx, player, !actor.Dead); err != nil {
			return false, err
		}
	case ActionRange:
		v.sess.SetHighlightAttackRange(!v.sess.HighlightAttackRange())
	case ActionPath:
		v.pathShown = !v.pathShown
		if !v.pathShown {
			return false, v.sess.SetPath(nil)
		}
		return false, v.showPath()
	case ActionLabels:
		v.toggleLabels()
	case ActionSnapshot:
		path, err := v.Snapshot(ctx)
		if err != nil {
			v.logger.Warn("snapshot failed", "error", err)
			v.message = "Snapshot failed."
			return false, nil
		}
		v.message = "Saved " + path
	}
	return false, nil
}

// wear swaps the local player's equipment to outfit.
func (v *Viewer) wear(ctx context.Context, outfit map[int]itemdb.ItemID) error {
	player := v.sess.Player()
	for slot := 0; slot < assets.NumSlots; slot++ {
		var err error
		if item, ok := outfit[slot]; ok {
			err = v.sess.Equip(ctx, player, slot, item, 0)
		} else {
			err = v.sess.Unequip(ctx, player, slot)
		}
		if err != nil {
			return fmt.Errorf("wear outfit %d: %w", v.outfit, err)
		}
	}
	return nil
}

func (v *Viewer) showPath() error {
	p, ok := v.sess.World().Get(v.sess.Player(), component.CPosition).(component.Position)
	if !ok {
		return nil
	}
	x, y := p.Tile(v.sess.Map().TileSize)
	path := system.FindPath(v.sess.Map(), gamemap.Point{X: x, Y: y}, v.target)
	if path == nil {
		v.message = "No path."
	}
	return v.sess.SetPath(path)
}

func (v *Viewer) toggleLabels() {
	w := v.sess.World()
	for _, id := range w.Query(component.CRenderable) {
		r := w.Get(id, component.CRenderable).(component.Renderable)
		r.ShowLabel = !r.ShowLabel
		w.Add(id, r)
	}
}

// Draw composes a frame and the status line onto the screen.
func (v *Viewer) Draw(ctx context.Context) error {
	v.screen.Clear()
	w, h := v.canvas.PixelSize()
	stats, err := v.sess.Frame(ctx, v.canvas, w, h)
	if err != nil {
		return err
	}
	status := fmt.Sprintf("rows %d  batches %d  tiles %d  markers %d  actors %d | %s",
		stats.Rows, stats.Batches, stats.Tiles, stats.Markers, stats.Actors, v.message)
	v.canvas.DrawStatus(0, status, render.ColorStatus)
	v.screen.Show()
	return nil
}

// Snapshot renders the current view with the raster backend and writes it
// as WebP into SnapshotDir. It returns the file path.
func (v *Viewer) Snapshot(ctx context.Context) (string, error) {
	if v.opts.SnapshotDir == "" {
		return "", fmt.Errorf("snapshots disabled")
	}
	w, h := v.canvas.PixelSize()
	dst, err := render.NewCanvas(render.KindRaster, nil, v.sess.Map().TileSize, 0, w, h)
	if err != nil {
		return "", err
	}
	raster := dst.(*render.RasterCanvas)
	raster.Clear(render.ColorBackground)
	if _, err := v.sess.Frame(ctx, raster, w, h); err != nil {
		return "", err
	}

	v.snapshots++
	path := filepath.Join(v.opts.SnapshotDir, fmt.Sprintf("frame-%04d.webp", v.snapshots))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create snapshot: %w", err)
	}
	if err := raster.EncodeWebP(f); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close snapshot: %w", err)
	}
	return path, nil
}
