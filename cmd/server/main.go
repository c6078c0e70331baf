// fringe-server serves the demo viewer over SSH. Every connection gets its
// own town, seeded from the flag so all visitors see the same layout.
// Build:
//
//	go build -o fringe-server ./cmd/server
//
// Usage:
//
//	./fringe-server [--port 2222] [--key server_host_key] [--seed 1]
//
// Connect with:
//
//	ssh -t -p 2222 localhost
package main

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/pem"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"sync"
	"unicode"

	"fringe-client/internal/app"
	"fringe-client/internal/config"
	internalssh "fringe-client/internal/ssh"
	"fringe-client/internal/telemetry"
	"fringe-client/internal/viewer"

	"github.com/gdamore/tcell/v2"
	gossh "github.com/gliderlabs/ssh"
	xssh "golang.org/x/crypto/ssh"
)

func main() {
	port := flag.Int("port", 2222, "SSH server port")
	keyFile := flag.String("key", "server_host_key", "Path to the PEM-encoded host key (auto-generated if absent)")
	seed := flag.Int64("seed", 1, "demo map seed")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger, logs, err := cfg.Logger(os.Stderr)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logs.Close()

	shutdown, err := telemetry.Setup(context.Background(), "fringe-server", cfg.OTelEndpoint)
	if err != nil {
		log.Fatalf("telemetry: %v", err)
	}
	defer shutdown(context.Background())

	signer := loadOrCreateHostKey(*keyFile)
	h := &handler{cfg: cfg, seed: *seed, logger: logger}
	srv := &gossh.Server{
		Addr:    fmt.Sprintf(":%d", *port),
		Handler: h.handleSession,
		// Accept PTY requests from any client.
		PtyCallback: func(_ gossh.Context, _ gossh.Pty) bool { return true },
		// Accept any authentication; add gossh.PublicKeyAuth for real auth.
		HostSigners: []gossh.Signer{signer},
	}

	log.Printf("fringe SSH server listening on :%d", *port)
	log.Printf("Connect with:  ssh -t -p %d -o StrictHostKeyChecking=no localhost", *port)
	log.Fatal(srv.ListenAndServe())
}

// allowedTerms are the terminal types a client may request. Anything else
// falls back to xterm-256color so TERM never names an arbitrary terminfo file.
var allowedTerms = map[string]bool{
	"xterm":                 true,
	"xterm-256color":        true,
	"screen":                true,
	"screen-256color":       true,
	"tmux":                  true,
	"tmux-256color":         true,
	"linux":                 true,
	"vt100":                 true,
	"rxvt-unicode-256color": true,
}

// sanitizeName strips control characters from a client-supplied user name
// and caps it at 16 bytes without splitting a rune.
func sanitizeName(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsControl(r) {
			continue
		}
		if b.Len()+len(string(r)) > 16 {
			break
		}
		b.WriteRune(r)
	}
	return b.String()
}

type handler struct {
	cfg    config.Config
	seed   int64
	logger *slog.Logger
}

// handleSession is the gliderlabs SSH handler for one connection.
// It blocks for the duration of the connection so the SSH session stays open.
func (h *handler) handleSession(s gossh.Session) {
	pty, winCh, hasPTY := s.Pty()
	if !hasPTY {
		fmt.Fprintln(s, "This viewer requires a PTY. Connect with: ssh -t -p 2222 <host>")
		return
	}
	user := sanitizeName(s.User())
	logger := h.logger.With("user", user, "remote", s.RemoteAddr().String())

	term := "xterm-256color"
	for _, env := range s.Environ() {
		if t, ok := strings.CutPrefix(env, "TERM="); ok && allowedTerms[t] {
			term = t
			break
		}
	}

	// TERM must be set in the process environment before NewTerminfoScreenFromTty.
	tty := internalssh.NewSessionTty(s, pty, winCh)
	termMu.Lock()
	_ = os.Setenv("TERM", term)
	screen, err := tcell.NewTerminfoScreenFromTty(tty)
	termMu.Unlock()
	if err != nil {
		fmt.Fprintf(s, "Terminal setup failed: %v\n", err)
		return
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(s, "Screen init failed: %v\n", err)
		return
	}
	defer screen.Fini()

	demo, err := app.NewDemo(s.Context(), h.cfg, h.seed, logger)
	if err != nil {
		logger.Error("demo setup failed", "error", err)
		return
	}
	defer demo.Close()

	logger.Info("viewer connected", "term", term)
	v := viewer.New(screen, demo.Session, demo.NPCs, viewer.Options{Tick: h.cfg.Tick}, logger)
	if err := v.Run(s.Context()); err != nil {
		logger.Error("viewer stopped", "error", err)
	}
	logger.Info("viewer disconnected")
}

// termMu protects os.Setenv("TERM") around screen creation.
var termMu sync.Mutex

// loadOrCreateHostKey loads a PEM private key from path, or generates and
// persists a new ed25519 key if the file is absent or unreadable.
func loadOrCreateHostKey(path string) gossh.Signer {
	if data, err := os.ReadFile(path); err == nil {
		if signer, err := xssh.ParsePrivateKey(data); err == nil {
			log.Printf("Loaded host key from %s", path)
			return signer
		}
	}

	log.Printf("Generating new ed25519 host key → %s", path)
	_, key, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		log.Fatalf("generate host key: %v", err)
	}
	signer, err := xssh.NewSignerFromKey(key)
	if err != nil {
		log.Fatalf("create signer: %v", err)
	}
	// Persist for next run (non-fatal if it fails).
	if pemBlock, err := xssh.MarshalPrivateKey(key, "fringe server"); err == nil {
		_ = os.WriteFile(path, pem.EncodeToMemory(pemBlock), 0600)
	}
	return signer
}
