package pkg

// Route binds one HTTP method and compiled path pattern to a handler, plus
// any before/after hooks registered directly on it (as distinct from the
// hooks registered on its enclosing Group or the top-level App).
type Route struct {
	Method  string
	Pattern string

	compiled *CompiledPattern
	handler  HandlerFunc
	before   []HandlerFunc
	after    []HandlerFunc
}

func newRoute(method, pattern string, handler HandlerFunc) *Route {
	return &Route{
		Method:   method,
		Pattern:  pattern,
		compiled: CompilePattern(pattern),
		handler:  handler,
	}
}

// Before registers a hook that runs ahead of this route's handler.
func (r *Route) Before(h HandlerFunc) *Route {
	r.before = append(r.before, h)
	return r
}

// After registers a hook that runs following this route's handler.
func (r *Route) After(h HandlerFunc) *Route {
	r.after = append(r.after, h)
	return r
}

// match reports whether path satisfies the route's pattern, returning any
// named parameters captured along the way.
func (r *Route) match(path string) (map[string]string, bool) {
	return r.compiled.Match(path)
}

// execute runs the route's before hooks, its handler, then its after hooks,
// checking ctx.Next() individually before each call so a Stop() from any
// hook or the handler itself halts everything that would otherwise follow.
func (r *Route) execute(ctx *Context) {
	for _, before := range r.before {
		if !ctx.Next() {
			return
		}
		before(ctx)
	}

	if ctx.Next() {
		r.handler(ctx)
	}

	for _, after := range r.after {
		if !ctx.Next() {
			return
		}
		after(ctx)
	}
}
