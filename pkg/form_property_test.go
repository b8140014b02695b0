package pkg

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// TestProperty_URLEncodedRoundTrip checks parse(encode(kvs)) == kvs for
// arbitrary ordered key/value pairs, including ones that need percent
// escaping.
func TestProperty_URLEncodedRoundTrip(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("parse(encode(kv)) reproduces the original pair", prop.ForAll(
		func(key, value string) bool {
			if key == "" {
				return true
			}
			kvs := []KV{{Key: key, Value: value}}
			decoded := parseURLEncoded(encodeURLEncoded(kvs))
			return len(decoded) == 1 && decoded[0] == kvs[0]
		},
		gen.AnyString(),
		gen.AnyString(),
	))

	properties.Property("parse(encode(kvs)) preserves order and length for multi-pair input", prop.ForAll(
		func(keys []string, values []string) bool {
			n := len(keys)
			if len(values) < n {
				n = len(values)
			}
			var kvs []KV
			for i := 0; i < n; i++ {
				if keys[i] == "" {
					continue
				}
				kvs = append(kvs, KV{Key: keys[i], Value: values[i]})
			}
			if len(kvs) == 0 {
				return true
			}

			decoded := parseURLEncoded(encodeURLEncoded(kvs))
			if len(decoded) != len(kvs) {
				return false
			}
			for i := range kvs {
				if decoded[i] != kvs[i] {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.AlphaString()),
		gen.SliceOf(gen.AlphaString()),
	))

	params := gopter.DefaultTestParameters()
	params.MinSuccessfulTests = 100
	properties.TestingRun(t, params)
}
