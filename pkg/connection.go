package pkg

import (
	"bufio"
	"errors"
	"io"
	"net"
	"net/http"
)

// Connection owns one accepted socket and drives its request/response
// cycle to completion: read one full HTTP/1.1 request, hand it to the
// App through the worker's task pool, write the response, and repeat
// until the peer closes the connection, a read or write fails, or a
// request asks for the connection to be closed (Connection: close, or
// HTTP/1.0 without keep-alive). The same loop serves plain and TLS sockets
// alike — the *tls.Conn that reactor.go's tls.NewListener yields satisfies
// net.Conn like any other, so TLS is just a session filter applied before
// the Connection ever sees the socket.
type Connection struct {
	socket net.Conn
	app    *App
	pool   *Pool
	logger Logger
}

func newConnection(socket net.Conn, app *App, pool *Pool, logger Logger) *Connection {
	return &Connection{socket: socket, app: app, pool: pool, logger: logger}
}

// serve runs the read/handle/write loop until the connection ends.
func (c *Connection) serve() {
	defer c.socket.Close()

	reader := bufio.NewReader(c.socket)

	for {
		httpReq, err := http.ReadRequest(reader)
		if err != nil {
			if err != io.EOF {
				c.logger.Debug("connection read failed", "error", err)
			}
			// A request that could not be parsed gets a 501; a closed or
			// failed socket is just dropped.
			var netErr net.Error
			if err != io.EOF && err != io.ErrUnexpectedEOF && !errors.As(err, &netErr) {
				writeError(c.socket, 501, "Not Implemented")
			}
			return
		}

		req, err := requestFromHTTP(httpReq)
		if err != nil {
			writeError(c.socket, 400, "Bad Request")
			return
		}

		ctx := NewContext(c.app, req)

		c.pool.Run(func() {
			c.handle(ctx)
		})

		if _, err := ctx.Response.WriteTo(c.socket); err != nil {
			return
		}

		if httpReq.Close {
			return
		}
	}
}

// handle runs the app's dispatch for ctx, recovering any panic raised by a
// handler or hook so one bad request cannot take down the connection's
// goroutine — the task-boundary recovery spec.md requires, distinct from
// the optional Recover() decorator a route can additionally apply.
func (c *Connection) handle(ctx *Context) {
	defer func() {
		if r := recover(); r != nil {
			ctx.Response = NewResponse().StatusCode(500).FromText("Internal Server Error")
			c.logger.Error("handler panic recovered", "recovered", r, "path", ctx.Request.URI.Path)
		}
	}()
	c.app.Handle(ctx)
}

func writeError(w io.Writer, status int, text string) {
	NewResponse().StatusCode(status).FromText(text).WriteTo(w)
}

func requestFromHTTP(hr *http.Request) (*Request, error) {
	body, err := io.ReadAll(hr.Body)
	if err != nil {
		return nil, err
	}
	hr.Body.Close()

	headers := make(map[string]string, len(hr.Header))
	for k, v := range hr.Header {
		if len(v) > 0 {
			headers[k] = v[0]
		}
	}

	req := &Request{
		Method:  hr.Method,
		URI:     URI{Path: hr.URL.Path, RawQuery: hr.URL.RawQuery},
		Version: hr.Proto,
		Headers: headers,
		Params:  make(map[string]string),
		Body:    body,
		Query:   parseURLEncoded(hr.URL.RawQuery),
	}
	return req, nil
}
