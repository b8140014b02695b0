package pkg

import (
	"fmt"
	"regexp"
	"strings"
)

// CompiledPattern is a path pattern compiled once at route-registration time
// into either a plain literal (the common case, compared directly) or an
// anchored regular expression with named capture groups for parameters
// declared as {name} or {name:regex}.
type CompiledPattern struct {
	Source       string
	Literal      bool
	LiteralValue string // trailing slash trimmed once, at compile time
	Regexp       *regexp.Regexp
}

// CompilePattern compiles a route pattern. It panics with a *FrameworkError
// on an unbalanced parameter block or an invalid regular expression;
// patterns are only ever compiled at route registration time, never per
// request, so a panic here surfaces immediately during app setup.
func CompilePattern(pattern string) *CompiledPattern {
	if !strings.ContainsRune(pattern, '{') {
		return &CompiledPattern{
			Source:       pattern,
			Literal:      true,
			LiteralValue: trimTrailingSlash(pattern),
		}
	}

	reSource, err := compileToRegexSource(pattern)
	if err != nil {
		panic(&FrameworkError{Code: ErrCodeInvalidPattern, Message: err.Error(), Cause: err})
	}

	re, err := regexp.Compile("^" + reSource + "$")
	if err != nil {
		wrapped := fmt.Errorf("compile %q: %w", pattern, err)
		panic(&FrameworkError{Code: ErrCodeInvalidPattern, Message: wrapped.Error(), Cause: wrapped})
	}

	return &CompiledPattern{Source: pattern, Regexp: re}
}

// compileToRegexSource performs a single left-to-right scan over pattern,
// translating every {name} or {name:regex} block into a Go named capture
// group and passing every other byte through as a literal. Braces and
// parentheses nested inside a parameter's regex part (e.g. {n:\d{3}} or
// {id:(foo|bar)}) are tracked with depth counters so a block ends at its
// true matching close brace, not the first '}' encountered.
func compileToRegexSource(pattern string) (string, error) {
	var out strings.Builder
	runes := []rune(pattern)

	for i := 0; i < len(runes); i++ {
		c := runes[i]
		if c != '{' {
			out.WriteString(regexp.QuoteMeta(string(c)))
			continue
		}

		start := i + 1
		braceDepth := 1
		parenDepth := 0
		j := start
		closed := false
		for ; j < len(runes); j++ {
			switch runes[j] {
			case '{':
				braceDepth++
			case '}':
				if parenDepth == 0 {
					braceDepth--
					if braceDepth == 0 {
						closed = true
					}
				}
			case '(':
				parenDepth++
			case ')':
				if parenDepth > 0 {
					parenDepth--
				}
			}
			if closed {
				break
			}
		}
		if !closed {
			return "", fmt.Errorf("unterminated parameter block starting at position %d in %q", start-1, pattern)
		}

		item := string(runes[start:j])
		name, regexPart, err := parseParamItem(item)
		if err != nil {
			return "", err
		}

		if regexPart == "" {
			fmt.Fprintf(&out, "(?P<%s>[^/]+)", name)
		} else {
			fmt.Fprintf(&out, "(?P<%s>%s)", name, regexPart)
		}

		i = j
	}

	return out.String(), nil
}

// parseParamItem splits a {...} block's inner text on its first colon into
// a variable name and an optional regex part.
func parseParamItem(item string) (name, regexPart string, err error) {
	if colon := strings.IndexByte(item, ':'); colon >= 0 {
		name, regexPart = item[:colon], item[colon+1:]
	} else {
		name = item
	}

	if name == "" || !isValidParamName(name) {
		return "", "", fmt.Errorf("invalid parameter name %q", name)
	}

	return name, regexPart, nil
}

func isValidParamName(name string) bool {
	for i, r := range name {
		isAlpha := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '_'
		isDigit := r >= '0' && r <= '9'
		if i == 0 && !isAlpha {
			return false
		}
		if !isAlpha && !isDigit {
			return false
		}
	}
	return true
}

// Match reports whether path satisfies the pattern, returning any named
// parameters captured along the way.
func (cp *CompiledPattern) Match(path string) (map[string]string, bool) {
	if cp.Literal {
		return nil, trimTrailingSlash(path) == cp.LiteralValue
	}

	match := cp.Regexp.FindStringSubmatch(trimTrailingSlash(path))
	if match == nil {
		return nil, false
	}

	names := cp.Regexp.SubexpNames()
	params := make(map[string]string, len(names))
	for i, n := range names {
		if i == 0 || n == "" {
			continue
		}
		params[n] = match[i]
	}
	return params, true
}

func trimTrailingSlash(p string) string {
	if p == "/" || p == "" {
		return p
	}
	return strings.TrimRight(p, "/")
}
