package taskexec

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJobWaitDoneReturnsResult(t *testing.T) {
	wantErr := errors.New("failure")
	job := NewJob(func() error { return wantErr })
	job.run()

	res := job.WaitDone()
	assert.Equal(t, wantErr, res.Err)
}

func TestJobWaitDoneBlocksUntilRun(t *testing.T) {
	job := NewJob(func() error { return nil })
	done := make(chan struct{})
	go func() {
		job.WaitDone()
		close(done)
	}()

	job.run()
	<-done
}
