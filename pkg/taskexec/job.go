// Package taskexec is the "task executor" collaborator the prewarm
// strategies schedule work on (spec §6). It is grounded on two teacher
// patterns: the Job/JobResult shape of
// pkg/vm/engine/tae/tasks (a WaitGroup-backed unit of work with a typed
// result) fronted by a github.com/panjf2000/ants worker pool, the same
// combination pkg/vm/engine/tae/logstore/driver/logservicedriver uses for
// its append pool.
package taskexec

import (
	"sync"
)

// JobResult is the outcome of one scheduled unit of work.
type JobResult struct {
	Err error
}

// Job is a single schedulable unit of work with a wait-for-completion
// handle, mirroring tasks.Job/JobResult from the teacher.
type Job struct {
	exec   func() error
	wg     sync.WaitGroup
	result JobResult
}

// NewJob wraps exec as a Job. The caller retains the Job to call WaitDone
// after submitting it to a Pool.
func NewJob(exec func() error) *Job {
	j := &Job{exec: exec}
	j.wg.Add(1)
	return j
}

func (j *Job) run() {
	defer j.wg.Done()
	j.result.Err = j.exec()
}

// WaitDone blocks until the job has run and returns its result.
func (j *Job) WaitDone() JobResult {
	j.wg.Wait()
	return j.result
}
