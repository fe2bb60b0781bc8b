package parallel

import (
	"context"
	"runtime"
	"sync"
)

type (
	Task       func(ctx context.Context)
	WorkerFunc func(Task)
	WaitFunc   func()
	AbortFunc  func()
)

// Pool runs tasks on a fixed number of workers. Once Abort is called,
// tasks that have not started yet are dropped.
type Pool struct {
	wg    sync.WaitGroup
	ctx   context.Context
	Do    WorkerFunc
	Wait  WaitFunc
	Abort AbortFunc
}

func Start(ctx context.Context, numWorkers int) *Pool {
	if numWorkers < 1 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	ctx, cancel := context.WithCancel(ctx)
	pool := &Pool{
		ctx:   ctx,
		Abort: AbortFunc(cancel),
	}

	if numWorkers == 1 {
		pool.Do = pool.run
		pool.Wait = func() { cancel() }
		return pool
	}

	workChan := make(chan Task, numWorkers)
	for range numWorkers {
		pool.wg.Go(func() {
			for task := range workChan {
				pool.run(task)
			}
		})
	}

	pool.Do = func(task Task) {
		workChan <- task
	}

	closeIntake := sync.OnceFunc(func() { close(workChan) })
	pool.Wait = func() {
		closeIntake()
		pool.wg.Wait()
		cancel()
	}

	return pool
}

func (p *Pool) run(task Task) {
	if p.ctx.Err() == nil {
		task(p.ctx)
	}
}
