package pkg

import "strings"

// Group collects routes under a shared path prefix and a shared set of
// before/after hooks, applied to every route added through it in addition
// to whatever hooks the App or the route itself carries.
type Group struct {
	prefix string
	routes map[string][]*Route
	before []HandlerFunc
	after  []HandlerFunc
}

// NewGroup creates a Group rooted at prefix (e.g. "/api/v1").
func NewGroup(prefix string) *Group {
	return &Group{
		prefix: strings.TrimRight(prefix, "/"),
		routes: make(map[string][]*Route),
	}
}

// Before registers a hook that runs ahead of every route in the group.
func (g *Group) Before(h HandlerFunc) *Group {
	g.before = append(g.before, h)
	return g
}

// After registers a hook that runs following every route in the group.
func (g *Group) After(h HandlerFunc) *Group {
	g.after = append(g.after, h)
	return g
}

func (g *Group) add(method, pattern string, handler HandlerFunc) *Route {
	full := g.prefix + pattern
	r := newRoute(method, full, handler)
	g.routes[method] = append(g.routes[method], r)
	return r
}

func (g *Group) Get(pattern string, h HandlerFunc) *Route     { return g.add(MethodGet, pattern, h) }
func (g *Group) Post(pattern string, h HandlerFunc) *Route    { return g.add(MethodPost, pattern, h) }
func (g *Group) Put(pattern string, h HandlerFunc) *Route     { return g.add(MethodPut, pattern, h) }
func (g *Group) Patch(pattern string, h HandlerFunc) *Route   { return g.add(MethodPatch, pattern, h) }
func (g *Group) Delete(pattern string, h HandlerFunc) *Route  { return g.add(MethodDelete, pattern, h) }
func (g *Group) Head(pattern string, h HandlerFunc) *Route    { return g.add(MethodHead, pattern, h) }
func (g *Group) Options(pattern string, h HandlerFunc) *Route { return g.add(MethodOptions, pattern, h) }
func (g *Group) Trace(pattern string, h HandlerFunc) *Route   { return g.add(MethodTrace, pattern, h) }
func (g *Group) Connect(pattern string, h HandlerFunc) *Route { return g.add(MethodConnect, pattern, h) }
