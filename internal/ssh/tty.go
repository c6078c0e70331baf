// Package ssh adapts a gliderlabs SSH session into a tcell terminal so the
// viewer can draw to remote clients.
package ssh

import (
	"context"
	"sync"

	"github.com/gdamore/tcell/v2"
	gossh "github.com/gliderlabs/ssh"
)

// SessionTty implements tcell.Tty over one SSH session.
type SessionTty struct {
	session gossh.Session
	winCh   <-chan gossh.Window

	mu       sync.Mutex
	window   gossh.Window
	cb       func()
	watching bool
	closed   sync.Once
}

// NewSessionTty wraps s. pty holds the initial window size; winCh delivers
// later resizes.
func NewSessionTty(s gossh.Session, pty gossh.Pty, winCh <-chan gossh.Window) *SessionTty {
	return &SessionTty{
		session: s,
		window:  pty.Window,
		winCh:   winCh,
	}
}

// Read reads keyboard input from the client.
func (t *SessionTty) Read(b []byte) (int, error) { return t.session.Read(b) }

// Write sends rendered output to the client.
func (t *SessionTty) Write(b []byte) (int, error) { return t.session.Write(b) }

// Close closes the session channel once; later calls are no-ops.
func (t *SessionTty) Close() error {
	var err error
	t.closed.Do(func() { err = t.session.Close() })
	return err
}

// Start is a no-op; the channel is already open.
func (t *SessionTty) Start() error { return nil }

// Stop is a no-op; the server handler owns the channel.
func (t *SessionTty) Stop() error { return nil }

// Drain is a no-op; SSH writes are not buffered here.
func (t *SessionTty) Drain() error { return nil }

// WindowSize returns the last size the client reported.
func (t *SessionTty) WindowSize() (tcell.WindowSize, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return tcell.WindowSize{Width: t.window.Width, Height: t.window.Height}, nil
}

// NotifyResize registers cb for window changes. The first call starts a
// goroutine that follows the window channel until it closes or the session
// ends; later calls only swap the callback.
func (t *SessionTty) NotifyResize(cb func()) {
	t.mu.Lock()
	t.cb = cb
	start := !t.watching && t.winCh != nil
	t.watching = true
	t.mu.Unlock()

	if start {
		go t.watch(t.session.Context())
	}
}

func (t *SessionTty) watch(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case win, ok := <-t.winCh:
			if !ok {
				return
			}
			t.mu.Lock()
			t.window = win
			cb := t.cb
			t.mu.Unlock()
			if cb != nil {
				cb()
			}
		}
	}
}
