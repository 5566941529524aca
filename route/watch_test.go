package route

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchCSVReloadsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "route.csv")
	require.NoError(t, os.WriteFile(path, []byte("0,0,0,0\n10,0,0,0\n"), 0o644))

	var mu sync.Mutex
	loads := []Route{}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- WatchCSV(ctx, path, 3, func(r Route) {
			mu.Lock()
			defer mu.Unlock()
			loads = append(loads, r)
		})
	}()

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(loads) == 1
	}, time.Second, 5*time.Millisecond)

	// give the watcher time to register before changing the file
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("0,0,0,0\n10,0,0,0\n20,0,0,0\n"), 0o644))

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(loads) >= 2 && len(loads[len(loads)-1]) == 3
	}, 2*time.Second, 5*time.Millisecond)

	cancel()
	require.NoError(t, <-done)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 3.0, loads[0][1].Velocity)
}

func TestWatchCSVSkipsEmptyFileAtStartup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "route.csv")
	require.NoError(t, os.WriteFile(path, []byte("# x,y,z,yaw\n"), 0o644))

	var mu sync.Mutex
	loads := []Route{}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- WatchCSV(ctx, path, 0, func(r Route) {
			mu.Lock()
			defer mu.Unlock()
			loads = append(loads, r)
		})
	}()

	// the watcher keeps running and picks up the first real route
	time.Sleep(50 * time.Millisecond)
	mu.Lock()
	assert.Empty(t, loads)
	mu.Unlock()
	require.NoError(t, os.WriteFile(path, []byte("0,0,0,0\n10,0,0,0\n"), 0o644))

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(loads) >= 1
	}, 2*time.Second, 5*time.Millisecond)

	cancel()
	require.NoError(t, <-done)

	mu.Lock()
	defer mu.Unlock()
	for _, r := range loads {
		assert.Len(t, r, 2)
	}
}

func TestWatchCSVMissingFile(t *testing.T) {
	err := WatchCSV(context.Background(), filepath.Join(t.TempDir(), "nope.csv"), 0, func(Route) {})
	assert.Error(t, err)
}
