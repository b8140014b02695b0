package pkg

import "testing"

func newTestRequest(method, path string) *Request {
	return &Request{
		Method:  method,
		URI:     URI{Path: path},
		Headers: map[string]string{},
		Params:  map[string]string{},
	}
}

func TestAppDispatchesMatchingRoute(t *testing.T) {
	app := New()
	app.Get("/hello", func(ctx *Context) {
		ctx.Response.FromText("hi")
	})

	ctx := NewContext(app, newTestRequest(MethodGet, "/hello"))
	app.Handle(ctx)

	if string(ctx.Response.Body) != "hi" {
		t.Fatalf("unexpected body: %q", ctx.Response.Body)
	}
}

func TestAppBindsRouteParams(t *testing.T) {
	app := New()
	app.Get("/users/{id}", func(ctx *Context) {
		ctx.Response.FromText(ctx.Request.Params["id"])
	})

	ctx := NewContext(app, newTestRequest(MethodGet, "/users/99"))
	app.Handle(ctx)

	if string(ctx.Response.Body) != "99" {
		t.Fatalf("unexpected body: %q", ctx.Response.Body)
	}
}

func TestAppNotFound(t *testing.T) {
	app := New()
	ctx := NewContext(app, newTestRequest(MethodGet, "/nope"))
	app.Handle(ctx)

	if ctx.Response.Status != 404 {
		t.Fatalf("expected 404, got %d", ctx.Response.Status)
	}
}

func TestAppBeginAndFinishAlwaysRun(t *testing.T) {
	app := New()
	var beginRan, finishRan bool

	app.Begin(func(ctx *Context) {
		beginRan = true
		ctx.Stop() // even a Stop() from begin must not block finish
	})
	app.Finish(func(ctx *Context) {
		finishRan = true
	})
	app.Get("/x", func(ctx *Context) {
		t.Fatalf("handler should not run once Stop() was called")
	})

	ctx := NewContext(app, newTestRequest(MethodGet, "/x"))
	app.Handle(ctx)

	if !beginRan || !finishRan {
		t.Fatalf("expected begin and finish to run: begin=%v finish=%v", beginRan, finishRan)
	}
}

func TestAppBeforeStopSkipsHandlerAndAfter(t *testing.T) {
	app := New()
	var afterRan, handlerRan bool

	app.Before(func(ctx *Context) {
		ctx.Response.StatusCode(403).FromText("forbidden")
		ctx.Stop()
	})
	app.After(func(ctx *Context) {
		afterRan = true
	})
	app.Get("/secure", func(ctx *Context) {
		handlerRan = true
	})

	ctx := NewContext(app, newTestRequest(MethodGet, "/secure"))
	app.Handle(ctx)

	if handlerRan {
		t.Fatalf("handler should not have run")
	}
	if afterRan {
		t.Fatalf("after hook should not have run")
	}
	if ctx.Response.Status != 403 {
		t.Fatalf("expected 403, got %d", ctx.Response.Status)
	}
}

func TestAppMountAppliesGroupPrefixAndHooks(t *testing.T) {
	app := New()
	var beforeRan bool

	api := NewGroup("/api")
	api.Before(func(ctx *Context) {
		beforeRan = true
	})
	api.Get("/ping", func(ctx *Context) {
		ctx.Response.FromText("pong")
	})
	app.Mount(api)

	ctx := NewContext(app, newTestRequest(MethodGet, "/api/ping"))
	app.Handle(ctx)

	if !beforeRan {
		t.Fatalf("expected group before hook to run")
	}
	if string(ctx.Response.Body) != "pong" {
		t.Fatalf("unexpected body: %q", ctx.Response.Body)
	}
}

func TestRouteBeforeAfterOrderAndStop(t *testing.T) {
	app := New()
	var order []string

	route := app.Get("/order", func(ctx *Context) {
		order = append(order, "handler")
	})
	route.Before(func(ctx *Context) { order = append(order, "before1") })
	route.Before(func(ctx *Context) {
		order = append(order, "before2")
		ctx.Stop()
	})
	route.After(func(ctx *Context) { order = append(order, "after") })

	ctx := NewContext(app, newTestRequest(MethodGet, "/order"))
	app.Handle(ctx)

	want := []string{"before1", "before2"}
	if len(order) != len(want) {
		t.Fatalf("expected order %v, got %v", want, order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, order)
		}
	}
}
