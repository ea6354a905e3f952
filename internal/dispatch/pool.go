package dispatch

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
)

type job struct {
	id   string
	name string
	task func(ctx context.Context)
}

// Pool runs submitted jobs on a fixed set of workers fed from a bounded
// queue. Jobs are independent units of work; the pool never reports
// results back to submitters. Jobs still queued at shutdown are dropped.
type Pool struct {
	workers int
	jobs    chan job
	seq     atomic.Int64
	logger  *slog.Logger
}

func NewPool(workers, queueSize int, logger *slog.Logger) *Pool {
	return &Pool{
		workers: workers,
		jobs:    make(chan job, queueSize),
		logger:  logger.With("component", "dispatch"),
	}
}

// Submit enqueues a job and returns its handle without waiting for
// execution. A full queue is an error rather than a blocked caller.
func (p *Pool) Submit(name string, task func(ctx context.Context)) (string, error) {
	id := fmt.Sprintf("job-%d", p.seq.Add(1))

	select {
	case p.jobs <- job{id: id, name: name, task: task}:
		return id, nil
	default:
		return "", fmt.Errorf("dispatch queue full, dropping %s", name)
	}
}

// Run starts the workers and blocks until ctx is cancelled.
func (p *Pool) Run(ctx context.Context) {
	var wg sync.WaitGroup

	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case j := <-p.jobs:
					p.logger.Debug("running job", "job_id", j.id, "name", j.name, "worker", workerID)
					j.task(ctx)
				}
			}
		}(i)
	}

	wg.Wait()
}
