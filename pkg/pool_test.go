package pkg

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestPoolRunsSubmittedWork(t *testing.T) {
	pool := NewPool(2)
	defer pool.Close()

	var ran int32
	pool.Run(func() {
		atomic.AddInt32(&ran, 1)
	})

	if atomic.LoadInt32(&ran) != 1 {
		t.Fatalf("expected work to have run exactly once")
	}
}

func TestPoolRunBlocksUntilDone(t *testing.T) {
	pool := NewPool(1)
	defer pool.Close()

	start := time.Now()
	pool.Run(func() {
		time.Sleep(20 * time.Millisecond)
	})

	if time.Since(start) < 20*time.Millisecond {
		t.Fatalf("expected Run to block until the task completed")
	}
}

func TestPoolBoundsConcurrency(t *testing.T) {
	const size = 3
	pool := NewPool(size)
	defer pool.Close()

	var active int32
	var maxActive int32
	var mu sync.Mutex
	var wg sync.WaitGroup

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			pool.Run(func() {
				n := atomic.AddInt32(&active, 1)
				mu.Lock()
				if n > maxActive {
					maxActive = n
				}
				mu.Unlock()
				time.Sleep(5 * time.Millisecond)
				atomic.AddInt32(&active, -1)
			})
		}()
	}
	wg.Wait()

	if maxActive > size {
		t.Fatalf("expected at most %d concurrent tasks, observed %d", size, maxActive)
	}
}
