// ABOUTME: Bounded worker pool for probing media files in parallel
// ABOUTME: Provides submit-and-wait plus an indexed Each helper that preserves result order

package pool

import (
	"runtime"
	"sync"
)

// WorkerPool runs submitted jobs on a fixed set of goroutines
type WorkerPool struct {
	workers  int
	jobs     chan func()
	workerWg sync.WaitGroup // worker goroutine lifetime
	jobWg    sync.WaitGroup // submitted job completion
}

// NewWorkerPool starts a pool. workers <= 0 means one per CPU.
// The bufferSize determines how many jobs may queue before Submit blocks.
func NewWorkerPool(workers, bufferSize int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	p := &WorkerPool{
		workers: workers,
		jobs:    make(chan func(), bufferSize),
	}

	for range workers {
		p.workerWg.Add(1)

		go func() {
			defer p.workerWg.Done()

			for job := range p.jobs {
				job()
				p.jobWg.Done()
			}
		}()
	}

	return p
}

// Workers returns the number of worker goroutines
func (p *WorkerPool) Workers() int {
	return p.workers
}

// Submit queues a job, blocking while the buffer is full
func (p *WorkerPool) Submit(job func()) {
	p.jobWg.Add(1)
	p.jobs <- job
}

// Wait blocks until every submitted job has finished
func (p *WorkerPool) Wait() {
	p.jobWg.Wait()
}

// Close stops accepting jobs and waits for the workers to exit
func (p *WorkerPool) Close() {
	close(p.jobs)
	p.workerWg.Wait()
}

// Each calls fn(i) for i in [0, n) on a temporary pool and returns when all calls are done.
// Callers write results into index i of a pre-sized slice to keep input order.
func Each(n, workers int, fn func(i int)) {
	if n <= 0 {
		return
	}

	if workers <= 0 || workers > n {
		workers = min(runtime.NumCPU(), n)
	}

	p := NewWorkerPool(workers, n)
	defer p.Close()

	for i := range n {
		p.Submit(func() { fn(i) })
	}

	p.Wait()
}
