package pkg

import "testing"

func TestContextStopLatchesNext(t *testing.T) {
	ctx := NewContext(New(), newTestRequest(MethodGet, "/"))

	if !ctx.Next() {
		t.Fatalf("expected Next() true before Stop()")
	}
	ctx.Stop()
	if ctx.Next() {
		t.Fatalf("expected Next() false after Stop()")
	}
}

func TestContextSetGet(t *testing.T) {
	ctx := NewContext(New(), newTestRequest(MethodGet, "/"))

	if _, ok := ctx.Get("user"); ok {
		t.Fatalf("expected no value before Set")
	}

	ctx.Set("user", "ada")
	v, ok := ctx.Get("user")
	if !ok || v != "ada" {
		t.Fatalf("expected user=ada, got %v ok=%v", v, ok)
	}
}
