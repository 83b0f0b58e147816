// test/helpers/helpers.go
package helpers

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/avasquez/stitchstock-be/internal/core/domain"
	"github.com/avasquez/stitchstock-be/internal/core/ports"
	"github.com/avasquez/stitchstock-be/internal/core/services"
)

// TestRedis represents a test Redis instance
type TestRedis struct {
	Client *redis.Client
	Server *miniredis.Miniredis
}

// TestLogger returns a test logger
func TestLogger() *slog.Logger {
	if testing.Verbose() {
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
}

// SetupTestRedis creates an in-process Redis server for tests
func SetupTestRedis(t *testing.T) *TestRedis {
	t.Helper()

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{
		Addr: server.Addr(),
	})

	t.Cleanup(func() {
		client.Close()
	})

	return &TestRedis{Client: client, Server: server}
}

// MemStore is an in-memory BlobStore for service tests. SetErr, when
// non-nil, makes every Set fail while leaving stored values untouched.
type MemStore struct {
	mu     sync.Mutex
	blobs  map[string]string
	SetErr error
	GetErr error
}

var _ ports.BlobStore = (*MemStore)(nil)

func NewMemStore() *MemStore {
	return &MemStore{blobs: make(map[string]string)}
}

func (s *MemStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.GetErr != nil {
		return "", false, s.GetErr
	}
	v, ok := s.blobs[key]
	return v, ok, nil
}

func (s *MemStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.SetErr != nil {
		return s.SetErr
	}
	s.blobs[key] = value
	return nil
}

func (s *MemStore) Ping(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.GetErr != nil {
		return s.GetErr
	}
	return nil
}

// Blob returns the stored value for key, or "" when unset.
func (s *MemStore) Blob(key string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.blobs[key]
}

// Seed pre-populates a blob before ledger construction.
func (s *MemStore) Seed(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[key] = value
}

// NewTestLedger builds a ledger over a fresh MemStore.
func NewTestLedger(t *testing.T) (*services.Ledger, *MemStore) {
	t.Helper()

	store := NewMemStore()
	ledger, err := services.NewLedger(context.Background(), store, TestLogger())
	require.NoError(t, err)
	return ledger, store
}

// SalesEvent builds an event with a parseable RFC3339 date.
func SalesEvent(t *testing.T, sku string, date string) domain.SalesEvent {
	t.Helper()

	d, err := time.Parse(time.RFC3339, date)
	require.NoError(t, err)
	return domain.SalesEvent{SKU: domain.SKU(sku), Date: d}
}

// ErrStoreDown is a stand-in backend failure for persistence tests.
var ErrStoreDown = errors.New("store down")
