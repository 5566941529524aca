package utils

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	A, B int
}

func TestLatestEmpty(t *testing.T) {
	var l Latest[sample]
	v, ok := l.Get()
	assert.False(t, ok)
	assert.Equal(t, sample{}, v)
	assert.False(t, l.Present())
}

func TestLatestLastWriteWins(t *testing.T) {
	var l Latest[sample]
	l.Set(sample{1, 1})
	l.Set(sample{2, 2})
	v, ok := l.Get()
	require.True(t, ok)
	assert.Equal(t, sample{2, 2}, v)
}

func TestLatestConcurrentReadersSeeWholeValues(t *testing.T) {
	var l Latest[sample]
	var wg sync.WaitGroup
	stop := make(chan struct{})

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; ; i++ {
			select {
			case <-stop:
				return
			default:
				l.Set(sample{i, i})
			}
		}
	}()

	for range 10000 {
		if v, ok := l.Get(); ok {
			require.Equal(t, v.A, v.B)
		}
	}
	close(stop)
	wg.Wait()
}

func TestUpdateTrackerRate(t *testing.T) {
	mock := clock.NewMock()
	u := UpdateTracker{}
	u.Init(5, mock)
	assert.Zero(t, u.Rate())

	for range 10 {
		mock.Add(20 * time.Millisecond)
		u.Update()
	}
	assert.InDelta(t, 50, u.Rate(), 1e-6)
}

type closeRecorder struct {
	name   string
	closed *[]string
	err    error
}

func (c closeRecorder) Close() error {
	*c.closed = append(*c.closed, c.name)
	return c.err
}

func TestClosersCloseNewestFirst(t *testing.T) {
	var closed []string

	var c Closers
	c.Add(closeRecorder{name: "publisher", closed: &closed})
	c.Add(closeRecorder{name: "lane", closed: &closed, err: errors.New("busy")})
	c.Add(closeRecorder{name: "status", closed: &closed, err: errors.New("later")})

	err := c.Close()
	assert.Equal(t, []string{"status", "lane", "publisher"}, closed)
	assert.EqualError(t, err, "later")
	assert.Empty(t, c)

	// a second close has nothing left to release
	require.NoError(t, c.Close())
	assert.Len(t, closed, 3)
}
