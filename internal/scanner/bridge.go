// internal/scanner/bridge.go

// Package scanner bridges an asynchronous stream of decoded QR tokens to the
// ledger's sale path. The decoder (a camera pipeline, a USB scanner, a
// websocket client) submits raw tokens; the bridge delivers them to its
// handler one at a time, in order, so sales never interleave.
package scanner

import (
	"context"
	"log/slog"
	"sync"

	"github.com/avasquez/stitchstock-be/internal/core/ports"
)

// TokenHandler consumes one decoded token. It is invoked serially.
type TokenHandler func(ctx context.Context, token string)

// Bridge is a start/stop controlled token pump. Start while running is a
// no-op; Stop is idempotent and safe when never started, so views can call it
// unconditionally on navigation away.
type Bridge struct {
	handler   TokenHandler
	queueSize int
	logger    *slog.Logger

	mu      sync.Mutex
	running bool
	tokens  chan string
	done    chan struct{}
	wg      sync.WaitGroup
}

// Statically assert that *Bridge implements the Scanner interface.
var _ ports.Scanner = (*Bridge)(nil)

// New creates a bridge delivering tokens to handler.
func New(handler TokenHandler, queueSize int, logger *slog.Logger) *Bridge {
	if queueSize <= 0 {
		queueSize = 16
	}
	return &Bridge{
		handler:   handler,
		queueSize: queueSize,
		logger:    logger.With(slog.String("component", "scanner")),
	}
}

// Start begins consuming tokens. Idempotent while running.
func (b *Bridge) Start(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.running {
		b.logger.DebugContext(ctx, "scanner already running")
		return nil
	}

	b.tokens = make(chan string, b.queueSize)
	b.done = make(chan struct{})
	b.running = true

	b.wg.Add(1)
	go b.loop(ctx, b.tokens, b.done)

	b.logger.InfoContext(ctx, "scanner started")
	return nil
}

// Stop halts token consumption. Tokens already queued are dropped; a frame
// decoded after the operator left the scanning view must not sell a unit.
func (b *Bridge) Stop() {
	b.mu.Lock()
	wasRunning := b.running
	if wasRunning {
		b.running = false
		close(b.done)
	}
	b.mu.Unlock()

	b.wg.Wait()
	if wasRunning {
		b.logger.Info("scanner stopped")
	}
}

// IsScanning reports whether the bridge is running.
func (b *Bridge) IsScanning() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.running
}

// Submit hands one decoded token to the bridge. Returns false when the bridge
// is not running or the token was dropped because the queue was full.
func (b *Bridge) Submit(token string) bool {
	b.mu.Lock()
	if !b.running {
		b.mu.Unlock()
		return false
	}
	tokens, done := b.tokens, b.done
	b.mu.Unlock()

	select {
	case tokens <- token:
		return true
	case <-done:
		return false
	default:
		b.logger.Warn("scan queue full, token dropped", slog.String("token", token))
		return false
	}
}

func (b *Bridge) loop(ctx context.Context, tokens chan string, done chan struct{}) {
	defer b.wg.Done()

	for {
		select {
		case <-done:
			return
		case <-ctx.Done():
			b.halt(done)
			return
		case token := <-tokens:
			b.handler(ctx, token)
		}
	}
}

// halt marks the session stopped when its context is cancelled, so IsScanning
// and Submit track the loop's actual lifetime. The done guard keeps a stale
// loop from touching a restarted session.
func (b *Bridge) halt(done chan struct{}) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.running || b.done != done {
		return
	}
	b.running = false
	close(b.done)
}
