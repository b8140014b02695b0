package pkg

import (
	"encoding/base64"
	"strings"
)

// Recover decorates a handler so a panic inside it is caught and passed to
// onPanic (or, when onPanic is nil, turned into a plain 500 response),
// instead of taking down the worker goroutine running it. Recover itself
// logs nothing. This is the ambient, opt-in counterpart to
// the mandatory task-boundary recovery the worker pool always applies;
// reach for it when a specific route wants custom panic formatting.
func Recover(onPanic func(ctx *Context, recovered interface{})) func(HandlerFunc) HandlerFunc {
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx *Context) {
			defer func() {
				if r := recover(); r != nil {
					if onPanic != nil {
						onPanic(ctx, r)
					} else {
						ctx.Response.StatusCode(500).FromText("Internal Server Error")
					}
				}
			}()
			next(ctx)
		}
	}
}

// BasicAuth returns a before-hook that enforces HTTP Basic authentication,
// calling verify with the decoded username/password and stopping dispatch
// with a 401 (plus a WWW-Authenticate challenge) when it returns false.
func BasicAuth(realm string, verify func(user, pass string) bool) HandlerFunc {
	return func(ctx *Context) {
		user, pass, ok := parseBasicAuth(ctx.Request.Header("Authorization"))
		if !ok || !verify(user, pass) {
			ctx.Response.StatusCode(401).
				Header("WWW-Authenticate", `Basic realm="`+realm+`"`).
				FromText("Unauthorized")
			ctx.Stop()
		}
	}
}

func parseBasicAuth(header string) (user, pass string, ok bool) {
	const prefix = "Basic "
	if !strings.HasPrefix(header, prefix) {
		return "", "", false
	}

	decoded, err := base64.StdEncoding.DecodeString(header[len(prefix):])
	if err != nil {
		return "", "", false
	}

	parts := strings.SplitN(string(decoded), ":", 2)
	if len(parts) != 2 {
		return "", "", false
	}
	return parts[0], parts[1], true
}

// VerifyBCryptPassword adapts a bcrypt-hash lookup function into the
// verify callback BasicAuth expects.
func VerifyBCryptPassword(lookupHash func(user string) (hash string, ok bool)) func(user, pass string) bool {
	return func(user, pass string) bool {
		hash, ok := lookupHash(user)
		if !ok {
			return false
		}
		return VerifyPassword(pass, hash)
	}
}
