package route

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreEmpty(t *testing.T) {
	s := Store{}
	assert.Nil(t, s.Load())
	assert.Zero(t, s.Version())
}

func TestStoreReplace(t *testing.T) {
	s := Store{}
	snap, err := s.Replace(straightRoute(3, 10))
	require.NoError(t, err)
	assert.Equal(t, uint64(1), snap.Version)
	assert.Same(t, snap, s.Load())
	assert.Equal(t, 1, snap.SelectNext(5, 0))

	snap, err = s.Replace(Route{})
	require.NoError(t, err)
	assert.Equal(t, uint64(2), s.Version())
	assert.Equal(t, 0, snap.Route.Len())
	assert.Equal(t, None, snap.SelectNext(5, 0))
}

func TestStoreCopiesRoute(t *testing.T) {
	s := Store{}
	r := straightRoute(3, 10)
	_, err := s.Replace(r)
	require.NoError(t, err)

	r[0].X = 500
	assert.Equal(t, 0.0, s.Load().Route[0].X)
}

func TestStoreReplaceIsAtomic(t *testing.T) {
	s := Store{}
	_, err := s.Replace(straightRoute(2, 1))
	require.NoError(t, err)

	var wg sync.WaitGroup
	done := make(chan struct{})
	wg.Add(1)
	go func() {
		defer wg.Done()
		for n := 3; n < 400; n++ {
			_, err := s.Replace(straightRoute(n, 1))
			assert.NoError(t, err)
		}
		close(done)
	}()

	for reading := true; reading; {
		select {
		case <-done:
			reading = false
		default:
		}
		snap := s.Load()
		require.Equal(t, snap.Route.Len(), snap.Index.Len())
		next := snap.SelectNext(0.4, 0)
		require.True(t, next == None || next < snap.Route.Len())
	}
	wg.Wait()
	assert.Equal(t, uint64(398), s.Version())
}
