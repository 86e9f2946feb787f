package worker

import (
	"sync"
)

type task func()

// Pool runs submitted tasks on a fixed number of goroutines.
type Pool struct {
	wg      sync.WaitGroup
	jobs    chan task
	mu      sync.RWMutex
	closed  bool
	onDepth func(depth int)
}

func NewPool(n, queue int) *Pool {
	if n <= 0 {
		n = 1
	}
	if queue <= 0 {
		queue = 1024
	}
	p := &Pool{jobs: make(chan task, queue)}
	for i := 0; i < n; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for job := range p.jobs {
				p.reportDepth()
				job()
			}
		}()
	}
	return p
}

// OnDepth registers a callback receiving the queue depth after every enqueue and dequeue.
// It must be set before the first Submit.
func (p *Pool) OnDepth(fn func(depth int)) { p.onDepth = fn }

// Submit enqueues f without waiting. It reports false when the queue is full or the pool
// has been stopped.
func (p *Pool) Submit(f task) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return false
	}
	select {
	case p.jobs <- f:
	default:
		return false
	}
	p.reportDepth()
	return true
}

// Stop rejects new work, runs what is already queued and waits for the workers to exit.
func (p *Pool) Stop() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	close(p.jobs)
	p.mu.Unlock()
	p.wg.Wait()
}

func (p *Pool) reportDepth() {
	if p.onDepth != nil {
		p.onDepth(len(p.jobs))
	}
}
