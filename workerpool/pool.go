package workerpool

import (
	"sync"

	"github.com/lowaltitude/ladiprep/errors"
)

// Job is a unit of work executed by a Pool.
type Job func() error

// Pool runs jobs over a fixed number of goroutines. Errors returned by
// jobs are collected and reported by Wait.
type Pool struct {
	mu       sync.Mutex
	cond     *sync.Cond
	queue    []Job
	inflight int
	stopped  bool
	errs     errors.Errors
}

// New creates a pool with the given number of worker goroutines.
func New(numWorkers int) *Pool {
	if numWorkers < 1 {
		numWorkers = 1
	}
	p := &Pool{}
	p.cond = sync.NewCond(&p.mu)
	for i := 0; i < numWorkers; i++ {
		go p.work()
	}
	return p
}

func (p *Pool) work() {
	for {
		p.mu.Lock()
		for len(p.queue) == 0 && !p.stopped {
			p.cond.Wait()
		}
		if p.stopped {
			p.mu.Unlock()
			return
		}
		job := p.queue[0]
		p.queue = p.queue[1:]
		p.inflight++
		p.mu.Unlock()

		err := job()

		p.mu.Lock()
		p.inflight--
		p.errs = errors.Append(p.errs, err)
		p.cond.Broadcast()
		p.mu.Unlock()
	}
}

// Add enqueues jobs for execution.
func (p *Pool) Add(jobs []Job) {
	p.mu.Lock()
	p.queue = append(p.queue, jobs...)
	p.mu.Unlock()
	p.cond.Broadcast()
}

// Stop discards any jobs that have not started and shuts down the workers.
// Jobs already in flight run to completion.
func (p *Pool) Stop() {
	p.mu.Lock()
	p.stopped = true
	p.queue = nil
	p.mu.Unlock()
	p.cond.Broadcast()
}

// Wait blocks until all enqueued jobs have completed (or were discarded by
// Stop) and returns the combined error from any failed jobs.
func (p *Pool) Wait() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	for (len(p.queue) > 0 && !p.stopped) || p.inflight > 0 {
		p.cond.Wait()
	}
	if p.errs != nil {
		return p.errs
	}
	return nil
}
