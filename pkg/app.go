package pkg

import (
	"crypto/tls"
)

// HTTP methods recognised by the router.
const (
	MethodGet     = "GET"
	MethodPost    = "POST"
	MethodPut     = "PUT"
	MethodPatch   = "PATCH"
	MethodDelete  = "DELETE"
	MethodHead    = "HEAD"
	MethodOptions = "OPTIONS"
	MethodTrace   = "TRACE"
	MethodConnect = "CONNECT"
)

// App is the framework's top-level router and server: it owns the
// method-indexed route table and the four fixed lifecycle phases (begin,
// before, after, finish), and Run/RunTLS start the reactor that drives
// requests through Handle.
type App struct {
	routes   map[string][]*Route
	notFound HandlerFunc

	begin  []HandlerFunc
	before []HandlerFunc
	after  []HandlerFunc
	finish []HandlerFunc

	logger Logger
}

// New creates an empty App with a default not-found handler and a default
// logger.
func New() *App {
	return &App{
		routes:   make(map[string][]*Route),
		notFound: defaultNotFound,
		logger:   NewLogger(nil),
	}
}

func defaultNotFound(ctx *Context) {
	ctx.Response.StatusCode(404).FromText("Not Found")
}

// SetLogger overrides the App's logger, used by the reactor/worker layer
// for connection and panic logging.
func (a *App) SetLogger(l Logger) *App {
	a.logger = l
	return a
}

// Begin registers a hook that runs at the very start of every request's
// dispatch, before route matching, unconditionally.
func (a *App) Begin(h HandlerFunc) *App { a.begin = append(a.begin, h); return a }

// Before registers a hook that runs after a route has matched but before
// its handler (and the route's own Before hooks).
func (a *App) Before(h HandlerFunc) *App { a.before = append(a.before, h); return a }

// After registers a hook that runs following a route's handler (and its
// own After hooks).
func (a *App) After(h HandlerFunc) *App { a.after = append(a.after, h); return a }

// Finish registers a hook that runs at the very end of every request's
// dispatch, unconditionally, regardless of whether Stop() was called.
func (a *App) Finish(h HandlerFunc) *App { a.finish = append(a.finish, h); return a }

// NotFound overrides the handler invoked when no route matches.
func (a *App) NotFound(h HandlerFunc) *App { a.notFound = h; return a }

func (a *App) add(method, pattern string, handler HandlerFunc) *Route {
	r := newRoute(method, pattern, handler)
	a.routes[method] = append(a.routes[method], r)
	return r
}

// Add registers h for method and pattern; the per-verb methods below are
// shorthands for it.
func (a *App) Add(method, pattern string, h HandlerFunc) *Route { return a.add(method, pattern, h) }

func (a *App) Get(pattern string, h HandlerFunc) *Route     { return a.add(MethodGet, pattern, h) }
func (a *App) Post(pattern string, h HandlerFunc) *Route    { return a.add(MethodPost, pattern, h) }
func (a *App) Put(pattern string, h HandlerFunc) *Route     { return a.add(MethodPut, pattern, h) }
func (a *App) Patch(pattern string, h HandlerFunc) *Route   { return a.add(MethodPatch, pattern, h) }
func (a *App) Delete(pattern string, h HandlerFunc) *Route  { return a.add(MethodDelete, pattern, h) }
func (a *App) Head(pattern string, h HandlerFunc) *Route    { return a.add(MethodHead, pattern, h) }
func (a *App) Options(pattern string, h HandlerFunc) *Route { return a.add(MethodOptions, pattern, h) }
func (a *App) Trace(pattern string, h HandlerFunc) *Route   { return a.add(MethodTrace, pattern, h) }
func (a *App) Connect(pattern string, h HandlerFunc) *Route { return a.add(MethodConnect, pattern, h) }

// Mount registers every route collected in g, prefixing nothing further
// (g's own prefix was already baked into each route's pattern at
// registration time) and wrapping each route's before/after hooks with the
// group's.
func (a *App) Mount(g *Group) *App {
	for method, routes := range g.routes {
		for _, r := range routes {
			r.before = append(append([]HandlerFunc{}, g.before...), r.before...)
			r.after = append(r.after, g.after...)
			a.routes[method] = append(a.routes[method], r)
		}
	}
	return a
}

// Handle runs one request through the app's full dispatch algorithm:
// begin hooks always, then (if a route matches) the app's before hooks,
// the route's own before/handler/after chain, and the app's after hooks —
// each individually gated on ctx.Next() — then finish hooks always.
func (a *App) Handle(ctx *Context) {
	for _, h := range a.begin {
		h(ctx)
	}

	route, params := a.matchRoute(ctx.Request.Method, ctx.Request.URI.Path)
	if route == nil {
		if ctx.Next() {
			a.notFound(ctx)
		}
	} else {
		ctx.Request.Params = params

		for _, h := range a.before {
			if !ctx.Next() {
				break
			}
			h(ctx)
		}

		if ctx.Next() {
			route.execute(ctx)
		}

		for _, h := range a.after {
			if !ctx.Next() {
				break
			}
			h(ctx)
		}
	}

	for _, h := range a.finish {
		h(ctx)
	}
}

func (a *App) matchRoute(method, path string) (*Route, map[string]string) {
	for _, r := range a.routes[method] {
		if params, ok := r.match(path); ok {
			return r, params
		}
	}
	return nil, nil
}

// ServerOptions configures Run/RunTLS.
type ServerOptions struct {
	Address       string
	WorkerCount   int
	SlotTableSize int
	TaskPoolSize  int
	ReadBuffer    int
	WriteBuffer   int
	ReuseAddr     bool
	ReusePort     bool
	Policy        DispensePolicy
}

// Run starts a Reactor bound to opts.Address and blocks serving plaintext
// HTTP/1.1 until it returns an error (typically from the listener closing).
func (a *App) Run(opts ServerOptions) error {
	return a.run(opts, nil)
}

// RunTLS is Run's TLS counterpart: every accepted connection is wrapped in
// a TLS server handshake using cfg before the App ever sees it.
func (a *App) RunTLS(opts ServerOptions, cfg *tls.Config) error {
	return a.run(opts, cfg)
}

func (a *App) run(opts ServerOptions, tlsCfg *tls.Config) error {
	reactor, err := NewReactor(ReactorConfig{
		Address:       opts.Address,
		WorkerCount:   opts.WorkerCount,
		SlotTableSize: opts.SlotTableSize,
		TaskPoolSize:  opts.TaskPoolSize,
		ReadBuffer:    opts.ReadBuffer,
		WriteBuffer:   opts.WriteBuffer,
		ReuseAddr:     opts.ReuseAddr,
		ReusePort:     opts.ReusePort,
		Policy:        opts.Policy,
		App:           a,
		TLSConfig:     tlsCfg,
		Logger:        a.logger,
	})
	if err != nil {
		return err
	}
	return reactor.Run()
}
