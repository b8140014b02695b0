package pkg

import (
	"bytes"
	"strings"
	"testing"
)

func TestResponseWriteToIncludesStatusAndComputedContentLength(t *testing.T) {
	resp := NewResponse()
	resp.StatusCode(201).FromText("created")

	var buf bytes.Buffer
	if _, err := resp.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}

	out := buf.String()
	if !strings.HasPrefix(out, "HTTP/1.1 201 Created\r\n") {
		t.Fatalf("unexpected status line: %q", out)
	}
	if !strings.Contains(out, "Content-Length: 7\r\n") {
		t.Fatalf("expected computed content-length of 7, got: %q", out)
	}
	if !strings.HasSuffix(out, "created") {
		t.Fatalf("expected body to be appended, got: %q", out)
	}
}

func TestResponseWriteToIgnoresCallerSetContentLength(t *testing.T) {
	resp := NewResponse()
	resp.FromText("hi")
	resp.Header("Content-Length", "999")

	var buf bytes.Buffer
	if _, err := resp.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}

	out := buf.String()
	if strings.Contains(out, "999") {
		t.Fatalf("expected caller-set Content-Length to be discarded, got: %q", out)
	}
	if !strings.Contains(out, "Content-Length: 2\r\n") {
		t.Fatalf("expected the real computed content-length, got: %q", out)
	}
}

func TestResponseFromJSON(t *testing.T) {
	resp := NewResponse()
	if err := resp.FromJSON(map[string]int{"a": 1}); err != nil {
		t.Fatalf("FromJSON: %v", err)
	}
	if resp.Headers["Content-Type"] != "application/json" {
		t.Fatalf("expected json content type, got %q", resp.Headers["Content-Type"])
	}
	if string(resp.Body) != `{"a":1}` {
		t.Fatalf("unexpected body: %q", resp.Body)
	}
}

func TestResponseFromForm(t *testing.T) {
	resp := NewResponse()
	resp.FromForm([]KV{{Key: "a", Value: "1"}, {Key: "b", Value: "two words"}})

	if resp.Headers["Content-Type"] != "application/x-www-form-urlencoded" {
		t.Fatalf("unexpected content type: %q", resp.Headers["Content-Type"])
	}
	if string(resp.Body) != "a=1&b=two+words" {
		t.Fatalf("unexpected encoded body: %q", resp.Body)
	}
}

func TestResponseDefaultStatusIsOK(t *testing.T) {
	resp := NewResponse()
	resp.FromText("ok")

	var buf bytes.Buffer
	resp.WriteTo(&buf)

	if !strings.HasPrefix(buf.String(), "HTTP/1.1 200 OK\r\n") {
		t.Fatalf("expected default 200 status, got: %q", buf.String())
	}
}
