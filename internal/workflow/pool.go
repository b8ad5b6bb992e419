package workflow

import (
	"context"
	"sync"
	"time"

	"github.com/nibzard/weatherdo/internal/todo"
)

// RefreshResult is the outcome of refreshing one task.
type RefreshResult struct {
	TaskID   string
	Task     todo.Task
	Err      error
	Duration time.Duration
}

// refreshPool runs refreshes with bounded concurrency. Each submitted job
// owns one result slot, so results keep submission order.
type refreshPool struct {
	ctx       context.Context
	semaphore chan struct{}
	wg        sync.WaitGroup
	results   []RefreshResult
}

func newRefreshPool(ctx context.Context, workers, jobs int) *refreshPool {
	return &refreshPool{
		ctx:       ctx,
		semaphore: make(chan struct{}, workers),
		results:   make([]RefreshResult, jobs),
	}
}

// submit runs fn once a worker slot is free. Jobs that have not started when
// ctx is done record ctx.Err() instead.
func (p *refreshPool) submit(slot int, taskID string, fn func(ctx context.Context) (todo.Task, error)) {
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		if err := p.ctx.Err(); err != nil {
			p.results[slot] = RefreshResult{TaskID: taskID, Err: err}
			return
		}

		select {
		case p.semaphore <- struct{}{}:
			defer func() { <-p.semaphore }()
		case <-p.ctx.Done():
			p.results[slot] = RefreshResult{TaskID: taskID, Err: p.ctx.Err()}
			return
		}

		start := time.Now()
		task, err := fn(p.ctx)
		p.results[slot] = RefreshResult{TaskID: taskID, Task: task, Err: err, Duration: time.Since(start)}
	}()
}

// wait blocks until every job has finished.
func (p *refreshPool) wait() []RefreshResult {
	p.wg.Wait()
	return p.results
}
