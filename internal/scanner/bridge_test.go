// internal/scanner/bridge_test.go
package scanner_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avasquez/stitchstock-be/internal/scanner"
	"github.com/avasquez/stitchstock-be/test/helpers"
)

// collector records handled tokens and signals each delivery.
type collector struct {
	mu        sync.Mutex
	tokens    []string
	delivered chan struct{}
}

func newCollector() *collector {
	return &collector{delivered: make(chan struct{}, 64)}
}

func (c *collector) handle(_ context.Context, token string) {
	c.mu.Lock()
	c.tokens = append(c.tokens, token)
	c.mu.Unlock()
	c.delivered <- struct{}{}
}

func (c *collector) await(t *testing.T, n int) []string {
	t.Helper()
	for i := 0; i < n; i++ {
		select {
		case <-c.delivered:
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for delivery %d of %d", i+1, n)
		}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.tokens))
	copy(out, c.tokens)
	return out
}

func TestBridge_DeliversInOrder(t *testing.T) {
	c := newCollector()
	bridge := scanner.New(c.handle, 8, helpers.TestLogger())

	require.NoError(t, bridge.Start(context.Background()))
	defer bridge.Stop()

	assert.True(t, bridge.Submit("100-SHIRT-RED-M"))
	assert.True(t, bridge.Submit("204-DRESS-BLUE-XL"))
	assert.True(t, bridge.Submit("100-SHIRT-RED-M"))

	tokens := c.await(t, 3)
	assert.Equal(t, []string{"100-SHIRT-RED-M", "204-DRESS-BLUE-XL", "100-SHIRT-RED-M"}, tokens)
}

func TestBridge_StartIsIdempotent(t *testing.T) {
	c := newCollector()
	bridge := scanner.New(c.handle, 8, helpers.TestLogger())

	ctx := context.Background()
	require.NoError(t, bridge.Start(ctx))
	require.NoError(t, bridge.Start(ctx))
	require.NoError(t, bridge.Start(ctx))
	defer bridge.Stop()

	assert.True(t, bridge.IsScanning())

	// A single consumer loop: one submit, one delivery.
	assert.True(t, bridge.Submit("A-A-A-A"))
	tokens := c.await(t, 1)
	assert.Equal(t, []string{"A-A-A-A"}, tokens)
}

func TestBridge_StopIsIdempotent(t *testing.T) {
	c := newCollector()
	bridge := scanner.New(c.handle, 8, helpers.TestLogger())

	// Stop before any Start is a no-op.
	bridge.Stop()
	assert.False(t, bridge.IsScanning())

	require.NoError(t, bridge.Start(context.Background()))
	assert.True(t, bridge.IsScanning())

	bridge.Stop()
	bridge.Stop()
	assert.False(t, bridge.IsScanning())
}

func TestBridge_SubmitAfterStopIsRejected(t *testing.T) {
	c := newCollector()
	bridge := scanner.New(c.handle, 8, helpers.TestLogger())

	assert.False(t, bridge.Submit("A-A-A-A"), "submit before start")

	require.NoError(t, bridge.Start(context.Background()))
	bridge.Stop()

	assert.False(t, bridge.Submit("A-A-A-A"), "submit after stop")

	c.mu.Lock()
	defer c.mu.Unlock()
	assert.Empty(t, c.tokens)
}

func TestBridge_Restart(t *testing.T) {
	c := newCollector()
	bridge := scanner.New(c.handle, 8, helpers.TestLogger())

	ctx := context.Background()
	require.NoError(t, bridge.Start(ctx))
	assert.True(t, bridge.Submit("A-A-A-A"))
	c.await(t, 1)
	bridge.Stop()

	require.NoError(t, bridge.Start(ctx))
	defer bridge.Stop()
	assert.True(t, bridge.Submit("B-B-B-B"))

	tokens := c.await(t, 1)
	assert.Equal(t, []string{"A-A-A-A", "B-B-B-B"}, tokens)
}

func TestBridge_ContextCancelStopsScanning(t *testing.T) {
	c := newCollector()
	bridge := scanner.New(c.handle, 8, helpers.TestLogger())

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, bridge.Start(ctx))
	defer bridge.Stop()

	assert.True(t, bridge.Submit("A-A-A-A"))
	c.await(t, 1)

	cancel()

	// The loop exit flips the scanning flag, so the bridge stops accepting
	// tokens instead of queueing ones that would never be delivered.
	require.Eventually(t, func() bool { return !bridge.IsScanning() },
		2*time.Second, 10*time.Millisecond)
	assert.False(t, bridge.Submit("B-B-B-B"))

	select {
	case <-c.delivered:
		t.Fatal("token delivered after context cancellation")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestBridge_RestartAfterContextCancel(t *testing.T) {
	c := newCollector()
	bridge := scanner.New(c.handle, 8, helpers.TestLogger())

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, bridge.Start(ctx))
	cancel()
	require.Eventually(t, func() bool { return !bridge.IsScanning() },
		2*time.Second, 10*time.Millisecond)

	require.NoError(t, bridge.Start(context.Background()))
	defer bridge.Stop()

	assert.True(t, bridge.IsScanning())
	assert.True(t, bridge.Submit("A-A-A-A"))
	tokens := c.await(t, 1)
	assert.Equal(t, []string{"A-A-A-A"}, tokens)
}
