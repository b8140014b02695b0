package pkg

import (
	"sync"

	"github.com/eapache/queue"
)

// Pool is a fixed-size task pool: a bounded number of goroutines pulling
// work off a FIFO queue guarded by a mutex and condition variable, rather
// than a channel. This mirrors the original server's concurrency model,
// where the task queue is the one structure shared between the connection
// goroutines submitting work and the goroutines running it, synchronised
// with a lock-plus-condition-variable pattern.
type Pool struct {
	mu      sync.Mutex
	cond    *sync.Cond
	q       *queue.Queue
	closed  bool
}

// NewPool starts a Pool with size worker goroutines. size is clamped to at
// least 1.
func NewPool(size int) *Pool {
	if size <= 0 {
		size = 1
	}
	p := &Pool{q: queue.New()}
	p.cond = sync.NewCond(&p.mu)
	for i := 0; i < size; i++ {
		go p.loop()
	}
	return p
}

// Run submits fn to the pool and blocks until it has finished running.
// Connection handling is strictly request/response sequential per
// connection, so the caller always wants to wait for the result before
// reading the next request off the same socket.
func (p *Pool) Run(fn func()) {
	done := make(chan struct{})
	p.submit(func() {
		fn()
		close(done)
	})
	<-done
}

func (p *Pool) submit(fn func()) {
	p.mu.Lock()
	p.q.Add(fn)
	p.mu.Unlock()
	p.cond.Signal()
}

func (p *Pool) loop() {
	for {
		p.mu.Lock()
		for p.q.Length() == 0 && !p.closed {
			p.cond.Wait()
		}
		if p.closed && p.q.Length() == 0 {
			p.mu.Unlock()
			return
		}
		fn := p.q.Remove().(func())
		p.mu.Unlock()

		fn()
	}
}

// Close marks the pool closed and wakes its goroutines, which exit once
// the queue is empty; work already queued still runs and its Run calls
// complete normally. Submissions are not refused after Close: work handed
// to Run after the goroutines have exited is never run and that Run call
// does not return.
func (p *Pool) Close() {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()
	p.cond.Broadcast()
}
