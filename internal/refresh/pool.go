// File path: internal/refresh/pool.go
package refresh

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/nicodishanthj/locache/internal/common"
)

const (
	DefaultWorkers   = 4
	DefaultQueueSize = 64
)

type task struct {
	key string
	run func(ctx context.Context)
}

// Pool executes fire-and-forget refresh tasks on a fixed set of workers
// with a bounded queue. The triggering request never waits on a task; when
// the queue is full the task is dropped and logged, capping concurrent load
// on the external provider.
type Pool struct {
	tasks   chan task
	workers int
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup

	started   atomic.Bool
	submitted atomic.Int64
	dropped   atomic.Int64
}

// NewPool constructs a Pool. Non-positive arguments fall back to the
// package defaults.
func NewPool(workers, queueSize int) *Pool {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Pool{
		tasks:   make(chan task, queueSize),
		workers: workers,
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Start launches the worker goroutines. Calling Start more than once is a
// no-op.
func (p *Pool) Start() {
	if !p.started.CompareAndSwap(false, true) {
		return
	}
	logger := common.Logger()
	logger.Info("refresh: pool starting", "workers", p.workers, "queue", cap(p.tasks))
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}
}

// Submit enqueues a task without blocking. It returns false when the queue
// is full or the pool is stopped; the task is dropped in either case.
func (p *Pool) Submit(key string, run func(ctx context.Context)) bool {
	if run == nil {
		return false
	}
	select {
	case <-p.ctx.Done():
		return false
	case p.tasks <- task{key: key, run: run}:
		p.submitted.Add(1)
		return true
	default:
		p.dropped.Add(1)
		common.Logger().Warn("refresh: queue full, dropping task", "key", key)
		return false
	}
}

// Stop prevents new submissions, discards anything still queued, and waits
// for in-flight tasks to finish.
func (p *Pool) Stop() {
	p.cancel()
	p.wg.Wait()
}

// Dropped returns the number of tasks rejected because the queue was full.
func (p *Pool) Dropped() int64 {
	return p.dropped.Load()
}

func (p *Pool) worker(id int) {
	defer p.wg.Done()
	logger := common.Logger()
	for {
		select {
		case <-p.ctx.Done():
			return
		case t := <-p.tasks:
			logger.Debug("refresh: running task", "worker", id, "key", t.key)
			t.run(p.ctx)
		}
	}
}
