package pkg

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// TestProperty_PatternMatchRoundTrip checks that a path built by
// substituting a generated value into a {name} parameter always matches
// the compiled pattern and yields that exact value back out.
func TestProperty_PatternMatchRoundTrip(t *testing.T) {
	properties := gopter.NewProperties(nil)
	cp := CompilePattern("/items/{id}/detail")

	properties.Property("substituted value round-trips through Match", prop.ForAll(
		func(id string) bool {
			if id == "" {
				return true
			}
			path := "/items/" + id + "/detail"
			params, ok := cp.Match(path)
			if !ok {
				return false
			}
			return params["id"] == id
		},
		gen.RegexMatch(`[a-zA-Z0-9_-]{1,20}`),
	))

	properties.Property("constrained numeric pattern rejects non-numeric ids", prop.ForAll(
		func(id string) bool {
			numeric := CompilePattern("/users/{id:[0-9]+}")
			_, ok := numeric.Match("/users/" + id)
			return ok == isAllDigits(id)
		},
		gen.RegexMatch(`[a-zA-Z0-9]{1,10}`),
	))

	params := gopter.DefaultTestParameters()
	params.MinSuccessfulTests = 100
	properties.TestingRun(t, params)
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
