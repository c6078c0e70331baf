// Package resource is the image cache the sprite layers load through.
// Loads are asynchronous: Acquire returns a handle immediately and the image
// is filled in by a later Pump on the caller's goroutine, so handle state only
// ever changes on the render thread.
package resource

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"fringe-client/internal/render"
)

// ErrMissingAsset is reported by loaders when a path does not resolve.
var ErrMissingAsset = errors.New("missing asset")

// Loader turns a path into an image. It may be called from worker goroutines.
type Loader interface {
	Load(path string) (*render.Image, error)
}

// LoaderFunc adapts a function to Loader.
type LoaderFunc func(path string) (*render.Image, error)

// Load calls f(path).
func (f LoaderFunc) Load(path string) (*render.Image, error) { return f(path) }

// State is the load state of a handle.
type State uint8

const (
	StatePending State = iota
	StateReady
	StateFailed
)

// Handle is a reference-counted cache entry.
type Handle struct {
	path  string
	state State
	img   *render.Image
	err   error
	refs  int
}

// Path returns the requested path.
func (h *Handle) Path() string { return h.path }

// State returns the current load state.
func (h *Handle) State() State { return h.state }

// Image returns the loaded image, or nil while pending or after a failure.
func (h *Handle) Image() *render.Image { return h.img }

// Err returns the load error of a failed handle.
func (h *Handle) Err() error { return h.err }

type result struct {
	path string
	img  *render.Image
	err  error
}

// Options configures a Cache.
type Options struct {
	// Workers is the number of loader goroutines. Zero runs every queued
	// load synchronously inside Pump.
	Workers int
	// QueueSize bounds the request channel when Workers > 0.
	QueueSize int
}

// Cache deduplicates image loads by path and counts references.
type Cache struct {
	loader  Loader
	logger  *slog.Logger
	entries map[string]*Handle

	// synchronous mode
	queued []string

	// worker mode
	requests chan string
	results  chan result
	wg       sync.WaitGroup
	closed   bool
}

// NewCache creates a cache backed by loader.
func NewCache(loader Loader, opts Options, logger *slog.Logger) *Cache {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Cache{
		loader:  loader,
		logger:  logger,
		entries: make(map[string]*Handle),
	}
	if opts.Workers > 0 {
		size := opts.QueueSize
		if size <= 0 {
			size = 64
		}
		c.requests = make(chan string, size)
		c.results = make(chan result, size)
		for i := 0; i < opts.Workers; i++ {
			c.wg.Add(1)
			go c.work()
		}
	}
	return c
}

func (c *Cache) work() {
	defer c.wg.Done()
	for path := range c.requests {
		img, err := c.loader.Load(path)
		c.results <- result{path: path, img: img, err: err}
	}
}

// Acquire returns the handle for path, taking a reference. A new path
// enqueues a load and returns a pending handle.
func (c *Cache) Acquire(path string) *Handle {
	if h, ok := c.entries[path]; ok {
		h.refs++
		return h
	}
	h := &Handle{path: path, refs: 1}
	c.entries[path] = h
	c.enqueue(path)
	return h
}

func (c *Cache) enqueue(path string) {
	if c.requests == nil || c.closed {
		c.queued = append(c.queued, path)
		return
	}
	select {
	case c.requests <- path:
	default:
		// Queue full: fall back to loading on the next Pump.
		c.queued = append(c.queued, path)
	}
}

// Release drops a reference. The entry is evicted when no references remain.
func (c *Cache) Release(h *Handle) {
	if h == nil {
		return
	}
	cur, ok := c.entries[h.path]
	if !ok || cur != h {
		return
	}
	h.refs--
	if h.refs <= 0 {
		delete(c.entries, h.path)
	}
}

// Refs returns the reference count for path (0 when not cached).
func (c *Cache) Refs(path string) int {
	if h, ok := c.entries[path]; ok {
		return h.refs
	}
	return 0
}

// Len returns the number of cached entries.
func (c *Cache) Len() int { return len(c.entries) }

// Pump applies finished loads to their handles and returns how many changed
// state. Must be called from the goroutine that owns the cache.
func (c *Cache) Pump() int {
	n := 0
	if len(c.queued) > 0 {
		queued := c.queued
		c.queued = nil
		for _, path := range queued {
			img, err := c.loader.Load(path)
			n += c.apply(result{path: path, img: img, err: err})
		}
	}
	if c.results == nil {
		return n
	}
	for {
		select {
		case r := <-c.results:
			n += c.apply(r)
		default:
			return n
		}
	}
}

func (c *Cache) apply(r result) int {
	h, ok := c.entries[r.path]
	if !ok || h.state != StatePending {
		// Released before the load finished.
		return 0
	}
	if r.err == nil && r.img == nil {
		r.err = fmt.Errorf("%s: %w", r.path, ErrMissingAsset)
	}
	if r.err != nil {
		h.state = StateFailed
		h.err = r.err
		c.logger.Warn("resource load failed", "path", r.path, "error", r.err)
		return 1
	}
	h.state = StateReady
	h.img = r.img
	return 1
}

// Close stops the workers. Pending results are discarded.
func (c *Cache) Close() {
	if c.requests == nil || c.closed {
		return
	}
	c.closed = true
	close(c.requests)
	results := c.results
	go func() {
		for range results {
		}
	}()
	c.wg.Wait()
	close(results)
	c.requests, c.results = nil, nil
}
