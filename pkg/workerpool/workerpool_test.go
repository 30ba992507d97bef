package workerpool

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitReturnsValue(t *testing.T) {
	pool := New(2, 4)
	defer pool.Close()

	ch := pool.Submit(func() (any, error) {
		return 42, nil
	})

	res := <-ch
	require.NoError(t, res.Err)
	assert.Equal(t, 42, res.Value)
}

func TestSubmitReturnsError(t *testing.T) {
	pool := New(1, 1)
	defer pool.Close()

	wantErr := errors.New("boom")
	res := <-pool.Submit(func() (any, error) {
		return nil, wantErr
	})

	assert.Nil(t, res.Value)
	assert.ErrorIs(t, res.Err, wantErr)
}

func TestFanOutFanIn(t *testing.T) {
	pool := New(4, 16)
	defer pool.Close()

	// Submit everything first, collect later: results arrive in
	// submission order even though execution is concurrent.
	const n = 16
	channels := make([]<-chan Result, n)
	for i := 0; i < n; i++ {
		i := i
		channels[i] = pool.Submit(func() (any, error) {
			return i * i, nil
		})
	}

	for i, ch := range channels {
		res := <-ch
		require.NoError(t, res.Err)
		assert.Equal(t, i*i, res.Value)
	}
}

func TestTasksRunConcurrently(t *testing.T) {
	pool := New(4, 4)
	defer pool.Close()

	var running int32
	var peak int32

	channels := make([]<-chan Result, 4)
	for i := range channels {
		channels[i] = pool.Submit(func() (any, error) {
			cur := atomic.AddInt32(&running, 1)
			for {
				old := atomic.LoadInt32(&peak)
				if cur <= old || atomic.CompareAndSwapInt32(&peak, old, cur) {
					break
				}
			}
			time.Sleep(20 * time.Millisecond)
			atomic.AddInt32(&running, -1)
			return nil, nil
		})
	}
	for _, ch := range channels {
		<-ch
	}

	assert.Greater(t, atomic.LoadInt32(&peak), int32(1), "tasks should overlap")
}

func TestCloseStopsWorkers(t *testing.T) {
	pool := New(2, 2)

	res := <-pool.Submit(func() (any, error) { return "ok", nil })
	require.NoError(t, res.Err)

	// Close must not panic and must be safe to call once work is done.
	pool.Close()
}
