package parallel

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPoolRunsEveryTask(t *testing.T) {
	for _, workers := range []int{0, 1, 2, 8} {
		pool := Start(context.Background(), workers)

		var ran atomic.Int64
		taskCtx := make(chan context.Context, 1)
		pool.Do(func(ctx context.Context) { taskCtx <- ctx })
		for range 100 {
			pool.Do(func(context.Context) { ran.Add(1) })
		}
		pool.Wait()

		assert.Equal(t, int64(100), ran.Load(), "workers=%d", workers)
		assert.Error(t, (<-taskCtx).Err(), "context is released after Wait")
	}
}

func TestPoolSingleWorkerRunsInline(t *testing.T) {
	pool := Start(context.Background(), 1)
	defer pool.Wait()

	var order []int
	for i := range 5 {
		pool.Do(func(context.Context) { order = append(order, i) })
	}
	assert.Equal(t, []int{0, 1, 2, 3, 4}, order)
}

func TestPoolAbortDropsPendingTasks(t *testing.T) {
	for _, workers := range []int{1, 4} {
		pool := Start(context.Background(), workers)

		var ran atomic.Int64
		for i := range 50 {
			if i == 10 {
				pool.Abort()
			}
			pool.Do(func(context.Context) { ran.Add(1) })
		}
		pool.Wait()

		assert.LessOrEqual(t, ran.Load(), int64(10), "workers=%d", workers)
	}
}

func TestPoolTasksSeeCancellation(t *testing.T) {
	pool := Start(context.Background(), 2)

	var mu sync.Mutex
	var errs []error
	started := make(chan struct{})
	release := make(chan struct{})
	pool.Do(func(ctx context.Context) {
		close(started)
		<-release
		mu.Lock()
		errs = append(errs, ctx.Err())
		mu.Unlock()
	})

	<-started
	pool.Abort()
	close(release)
	pool.Wait()

	assert.Equal(t, []error{context.Canceled}, errs)
}

func TestPoolParentCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	pool := Start(ctx, 3)
	cancel()

	var ran atomic.Int64
	for range 10 {
		pool.Do(func(context.Context) { ran.Add(1) })
	}
	pool.Wait()
	assert.Zero(t, ran.Load())
}
