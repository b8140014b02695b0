package pkg

import (
	"crypto/tls"
	"fmt"
	"net"
)

// DispensePolicy selects which Worker receives a newly accepted socket.
type DispensePolicy int

const (
	DispenseRoundRobin DispensePolicy = iota
	DispenseLeastActive
)

// ReactorConfig configures a Reactor.
type ReactorConfig struct {
	Network       string
	Address       string
	WorkerCount   int
	SlotTableSize int
	TaskPoolSize  int
	ReadBuffer    int
	WriteBuffer   int
	ReuseAddr     bool
	ReusePort     bool
	Policy        DispensePolicy
	App           *App
	TLSConfig     *tls.Config
	Logger        Logger
}

// Reactor owns one listening socket and dispenses every accepted
// connection to one of N Workers, each running on its own goroutine.
// Dispensing is either round-robin or least-active, ported from the
// original server's process dispense policy.
type Reactor struct {
	listener net.Listener
	workers  []*Worker
	policy   DispensePolicy
	next     int
}

// NewReactor builds a Reactor bound to cfg.Address with cfg.WorkerCount
// workers, ready to run.
func NewReactor(cfg ReactorConfig) (*Reactor, error) {
	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 4
	}
	if cfg.Logger == nil {
		cfg.Logger = NewLogger(nil)
	}

	ln, err := CreateListener(ListenerConfig{
		Network:     orDefault(cfg.Network, "tcp"),
		Address:     cfg.Address,
		ReuseAddr:   cfg.ReuseAddr,
		ReusePort:   cfg.ReusePort,
		ReadBuffer:  cfg.ReadBuffer,
		WriteBuffer: cfg.WriteBuffer,
	})
	if err != nil {
		return nil, fmt.Errorf("create listener: %w", err)
	}

	if cfg.TLSConfig != nil {
		ln = tls.NewListener(ln, cfg.TLSConfig)
	}

	workers := make([]*Worker, cfg.WorkerCount)
	for i := range workers {
		workers[i] = NewWorker(cfg.App, cfg.SlotTableSize, cfg.TaskPoolSize, cfg.Logger)
	}

	return &Reactor{listener: ln, workers: workers, policy: cfg.Policy}, nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// Run starts every worker, then accepts connections in a loop, dispensing
// each to a worker per the configured policy. It blocks until the
// listener is closed or Accept returns an unrecoverable error.
func (r *Reactor) Run() error {
	for _, w := range r.workers {
		go w.Run()
	}

	for {
		conn, err := r.listener.Accept()
		if err != nil {
			return err
		}
		r.dispense(conn)
	}
}

// Addr returns the reactor's bound network address.
func (r *Reactor) Addr() net.Addr {
	return r.listener.Addr()
}

// Close stops the reactor from accepting further connections.
func (r *Reactor) Close() error {
	return r.listener.Close()
}

func (r *Reactor) dispense(conn net.Conn) {
	if r.policy == DispenseLeastActive {
		r.dispenseLeastActive(conn)
		return
	}
	r.dispenseRoundRobin(conn)
}

func (r *Reactor) dispenseRoundRobin(conn net.Conn) {
	w := r.workers[r.next%len(r.workers)]
	r.next++
	w.Dispatch(conn)
}

// dispenseLeastActive picks the worker with the fewest active connections,
// ported from the original server's process::dispense.
func (r *Reactor) dispenseLeastActive(conn net.Conn) {
	best := r.workers[0]
	bestActive := best.ActiveConnections()
	for _, w := range r.workers[1:] {
		if active := w.ActiveConnections(); active < bestActive {
			best, bestActive = w, active
		}
	}
	best.Dispatch(conn)
}
