// internal/core/ports/scanner.go
package ports

import "context"

// Scanner defines the decoded-token stream port. Start is idempotent while
// running; Stop is idempotent and safe to call when never started.
type Scanner interface {
	Start(ctx context.Context) error
	Stop()
	IsScanning() bool
	// Submit hands one decoded token to the scanner. Returns false when the
	// scanner is not running.
	Submit(token string) bool
}
