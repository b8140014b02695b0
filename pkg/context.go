package pkg

import "time"

// HandlerFunc is the framework's single handler shape: read from ctx.Request,
// write to ctx.Response, optionally call ctx.Stop() to short-circuit the
// remaining middleware chain.
type HandlerFunc func(ctx *Context)

// Context carries one request/response pair plus a per-request value bag
// through the App's dispatch, group/route hooks, and handler. It is not
// safe for concurrent use by more than one goroutine at a time: a single
// Context belongs to exactly one in-flight request.
type Context struct {
	App      *App
	Request  *Request
	Response *Response

	RequestID string
	StartTime time.Time

	stop bool
	bag  map[string]interface{}
}

// NewContext builds a fresh Context for an incoming request, with a ready
// Response to be filled in by middleware and handlers.
func NewContext(app *App, req *Request) *Context {
	return &Context{
		App:       app,
		Request:   req,
		Response:  NewResponse(),
		StartTime: TimeNow(),
		bag:       make(map[string]interface{}),
	}
}

// Stop latches the context so that no further before/after hooks or the
// route handler itself run for the remainder of this request's dispatch.
// begin and finish phases run regardless, per the app's fixed lifecycle.
func (c *Context) Stop() {
	c.stop = true
}

// Next reports whether dispatch should continue to the next hook or
// handler. Callers check it individually before each invocation in a
// before/after chain, not once per phase.
func (c *Context) Next() bool {
	return !c.stop
}

// Set stores a value in the per-request bag, for passing data between
// middleware and handlers (e.g. an authenticated user looked up by an
// auth middleware).
func (c *Context) Set(key string, value interface{}) {
	c.bag[key] = value
}

// Get retrieves a value previously stored with Set.
func (c *Context) Get(key string) (interface{}, bool) {
	v, ok := c.bag[key]
	return v, ok
}
