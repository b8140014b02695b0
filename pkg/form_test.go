package pkg

import "testing"

func TestParseURLEncoded(t *testing.T) {
	kvs := parseURLEncoded("name=Ada+Lovelace&lang=Go%2FGopher")
	if len(kvs) != 2 {
		t.Fatalf("expected 2 pairs, got %d", len(kvs))
	}
	if kvs[0].Key != "name" || kvs[0].Value != "Ada Lovelace" {
		t.Fatalf("unexpected pair 0: %+v", kvs[0])
	}
	if kvs[1].Key != "lang" || kvs[1].Value != "Go/Gopher" {
		t.Fatalf("unexpected pair 1: %+v", kvs[1])
	}
}

func TestParseURLEncodedEmpty(t *testing.T) {
	if kvs := parseURLEncoded(""); kvs != nil {
		t.Fatalf("expected nil for empty input, got %v", kvs)
	}
}

func TestEncodeURLEncodedRoundTrip(t *testing.T) {
	original := []KV{{Key: "q", Value: "hello world & friends"}, {Key: "page", Value: "2"}}
	encoded := encodeURLEncoded(original)
	decoded := parseURLEncoded(encoded)

	if len(decoded) != len(original) {
		t.Fatalf("expected %d pairs, got %d", len(original), len(decoded))
	}
	for i, kv := range original {
		if decoded[i] != kv {
			t.Fatalf("pair %d: expected %+v, got %+v", i, kv, decoded[i])
		}
	}
}

func TestBoundaryFromContentType(t *testing.T) {
	ct := `multipart/form-data; boundary="----WebKitFormBoundaryABC123"`
	if got := boundaryFromContentType(ct); got != "----WebKitFormBoundaryABC123" {
		t.Fatalf("unexpected boundary: %q", got)
	}

	ct2 := "multipart/form-data; boundary=xyz; charset=utf-8"
	if got := boundaryFromContentType(ct2); got != "xyz" {
		t.Fatalf("unexpected boundary: %q", got)
	}

	if got := boundaryFromContentType("text/plain"); got != "" {
		t.Fatalf("expected empty boundary, got %q", got)
	}
}
