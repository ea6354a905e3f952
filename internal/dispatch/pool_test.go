package dispatch

import (
	"context"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestSubmit_ExecutesTask(t *testing.T) {
	pool := NewPool(2, 8, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go pool.Run(ctx)

	done := make(chan struct{})
	id, err := pool.Submit("unit", func(ctx context.Context) {
		close(done)
	})
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("task was never executed")
	}
}

func TestSubmit_DistinctJobIDs(t *testing.T) {
	pool := NewPool(1, 8, testLogger())

	first, err := pool.Submit("a", func(ctx context.Context) {})
	require.NoError(t, err)
	second, err := pool.Submit("b", func(ctx context.Context) {})
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestSubmit_QueueFull(t *testing.T) {
	// No workers running, so the queue never drains.
	pool := NewPool(1, 2, testLogger())

	_, err := pool.Submit("a", func(ctx context.Context) {})
	require.NoError(t, err)
	_, err = pool.Submit("b", func(ctx context.Context) {})
	require.NoError(t, err)

	_, err = pool.Submit("c", func(ctx context.Context) {})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "queue full")
}

func TestRun_ProcessesConcurrently(t *testing.T) {
	pool := NewPool(4, 16, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go pool.Run(ctx)

	var wg sync.WaitGroup
	var mu sync.Mutex
	seen := make(map[string]bool)

	for i := 0; i < 10; i++ {
		wg.Add(1)
		id, err := pool.Submit("batch", func(ctx context.Context) {
			defer wg.Done()
		})
		require.NoError(t, err)

		mu.Lock()
		seen[id] = true
		mu.Unlock()
	}

	waited := make(chan struct{})
	go func() {
		wg.Wait()
		close(waited)
	}()

	select {
	case <-waited:
	case <-time.After(2 * time.Second):
		t.Fatal("tasks did not complete")
	}
	assert.Len(t, seen, 10, "every submission gets its own id")
}

func TestRun_StopsOnCancel(t *testing.T) {
	pool := NewPool(2, 8, testLogger())

	ctx, cancel := context.WithCancel(context.Background())

	stopped := make(chan struct{})
	go func() {
		pool.Run(ctx)
		close(stopped)
	}()

	cancel()

	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("pool did not shut down on cancel")
	}
}
