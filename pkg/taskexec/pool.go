package taskexec

import (
	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"

	"github.com/dentiny/duckdb-cache-prewarm/pkg/logutil"
)

// Pool is a bounded worker pool used to run prewarm tasks in parallel,
// matching the "schedule a task, wait-all" contract of the task-executor
// collaborator (spec §6). Two independently sized kinds of Pool are used:
// one supplied by the host and shared by the local BUFFER/READ strategies,
// and one of fixed size that each remote prewarm call creates for itself
// (spec §5, "a dedicated worker pool of bounded size for the remote
// strategy"). A single
// Pool is shared across concurrent Prewarm calls, so it tracks no job state
// of its own: each caller collects the *Job values its own Submit calls
// return and joins them with WaitAll. Tracking jobs on the Pool instead
// would race one call's Wait against another call still submitting.
type Pool struct {
	pool *ants.Pool
}

// NewPool creates a Pool with the given worker capacity. size is clamped to
// at least 1, so the pool always has a fixed, positive worker bound.
func NewPool(size int) (*Pool, error) {
	if size < 1 {
		size = 1
	}
	p, err := ants.NewPool(size, ants.WithPanicHandler(func(v any) {
		logutil.Error("taskexec: task panicked", zap.Any("panic", v))
	}))
	if err != nil {
		return nil, err
	}
	return &Pool{pool: p}, nil
}

// Submit schedules exec to run on the pool and returns its Job. The caller
// is responsible for collecting the Jobs from its own batch of Submit calls
// and joining them, typically with WaitAll.
func (p *Pool) Submit(exec func() error) *Job {
	job := NewJob(exec)
	if err := p.pool.Submit(job.run); err != nil {
		// Pool is closed or overloaded: run inline so the caller still gets
		// a result rather than a permanently blocked WaitDone.
		job.run()
	}
	return job
}

// WaitAll blocks until every job in jobs has completed and returns the
// first non-nil error encountered, if any. All jobs run to completion
// regardless of individual failures (spec §5: "All workers join before
// Execute returns"). Callers pass the Jobs their own Submit calls returned,
// so concurrent Prewarm calls sharing one Pool never observe each other's
// jobs.
func WaitAll(jobs []*Job) error {
	var firstErr error
	for _, job := range jobs {
		if res := job.WaitDone(); res.Err != nil && firstErr == nil {
			firstErr = res.Err
		}
	}
	return firstErr
}

// Release tears down the underlying pool. Safe to call once the strategy
// that owns the Pool is done with it.
func (p *Pool) Release() {
	p.pool.Release()
}
