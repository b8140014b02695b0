package pkg

import (
	"net"
	"sync/atomic"
)

// Worker owns a bounded slot table of live connections and a task pool for
// running handlers. Each accepted socket it receives runs its read/handle/
// write loop on its own goroutine — Go's blocking-I/O-per-goroutine model
// already gives every connection its own non-blocking share of the
// machine, so unlike the original's single-threaded epoll loop per
// worker, the slot table here exists purely to bound how many connections
// one Worker will hold at once (the reactor's backpressure signal) and the
// task pool bounds how many handlers run concurrently within it.
type Worker struct {
	incoming chan net.Conn
	slots    chan struct{}
	active   int64

	app    *App
	pool   *Pool
	logger Logger
}

// NewWorker creates a Worker with the given slot table and task pool
// sizes.
func NewWorker(app *App, slotTableSize, taskPoolSize int, logger Logger) *Worker {
	if slotTableSize <= 0 {
		slotTableSize = 1024
	}
	return &Worker{
		incoming: make(chan net.Conn, slotTableSize),
		slots:    make(chan struct{}, slotTableSize),
		app:      app,
		pool:     NewPool(taskPoolSize),
		logger:   logger,
	}
}

// ActiveConnections reports how many connections this worker currently
// holds, used by the reactor's least-active dispense policy.
func (w *Worker) ActiveConnections() int {
	return int(atomic.LoadInt64(&w.active))
}

// Dispatch hands an accepted socket to this worker, blocking if its
// incoming channel (bounded to the slot table size) is already full.
func (w *Worker) Dispatch(conn net.Conn) {
	w.incoming <- conn
}

// Run starts the worker's loop: for every socket received, claim a slot,
// spawn the connection's serve loop, and release the slot on completion.
func (w *Worker) Run() {
	for conn := range w.incoming {
		w.slots <- struct{}{}
		atomic.AddInt64(&w.active, 1)

		c := newConnection(conn, w.app, w.pool, w.logger)
		go func() {
			defer func() {
				<-w.slots
				atomic.AddInt64(&w.active, -1)
			}()
			c.serve()
		}()
	}
}
