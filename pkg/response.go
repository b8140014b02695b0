package pkg

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Response is the framework's response value: a status code, header map,
// and body bytes, built up by handler/middleware calls and finally
// serialised onto the connection by WriteTo.
type Response struct {
	Status  int
	Headers map[string]string
	Body    []byte
}

// NewResponse returns a Response defaulted to 200 OK with no headers set.
func NewResponse() *Response {
	return &Response{Status: 200, Headers: make(map[string]string)}
}

// StatusCode sets the response status and returns the Response for
// chaining (resp.StatusCode(404).FromText("not found")).
func (r *Response) StatusCode(code int) *Response {
	r.Status = code
	return r
}

// Header sets a response header and returns the Response for chaining.
func (r *Response) Header(key, value string) *Response {
	r.Headers[key] = value
	return r
}

// FromText sets the body to the given text with a text/plain content type.
func (r *Response) FromText(text string) *Response {
	r.Body = []byte(text)
	r.Headers["Content-Type"] = "text/plain; charset=utf-8"
	return r
}

// FromHTML sets the body to the given markup with an html content type.
func (r *Response) FromHTML(html string) *Response {
	r.Body = []byte(html)
	r.Headers["Content-Type"] = "text/html; charset=utf-8"
	return r
}

// FromJSON marshals v and sets the body with a json content type. Any
// marshalling error is returned unchanged so the caller can decide how to
// respond (normally by falling back to a 500).
func (r *Response) FromJSON(v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	r.Body = data
	r.Headers["Content-Type"] = "application/json"
	return nil
}

// FromData sets the body to raw bytes with an explicit content type.
func (r *Response) FromData(contentType string, data []byte) *Response {
	r.Body = data
	r.Headers["Content-Type"] = contentType
	return r
}

// FromForm encodes kvs as application/x-www-form-urlencoded, for handlers
// or tests that need to produce a form body.
func (r *Response) FromForm(kvs []KV) *Response {
	r.Body = []byte(encodeURLEncoded(kvs))
	r.Headers["Content-Type"] = "application/x-www-form-urlencoded"
	return r
}

// FromFile reads path's full contents into the body, guessing nothing
// about content type beyond what the caller sets separately with Header.
func (r *Response) FromFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return err
	}
	r.Body = data
	return nil
}

// WriteTo serialises the response as an HTTP/1.1 message onto w: status
// line, headers (Content-Length always computed, never trusted from a
// caller-set header), a blank line, then the body.
func (r *Response) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)

	status := r.Status
	if status == 0 {
		status = 200
	}

	if _, err := fmt.Fprintf(bw, "HTTP/1.1 %d %s\r\n", status, statusText(status)); err != nil {
		return 0, err
	}

	for k, v := range r.Headers {
		if k == "Content-Length" {
			continue
		}
		if _, err := fmt.Fprintf(bw, "%s: %s\r\n", k, v); err != nil {
			return 0, err
		}
	}

	if _, err := fmt.Fprintf(bw, "Content-Length: %d\r\n\r\n", len(r.Body)); err != nil {
		return 0, err
	}

	n, err := bw.Write(r.Body)
	if err != nil {
		return int64(n), err
	}

	return int64(n), bw.Flush()
}

var statusTexts = map[int]string{
	200: "OK",
	201: "Created",
	204: "No Content",
	301: "Moved Permanently",
	302: "Found",
	304: "Not Modified",
	400: "Bad Request",
	401: "Unauthorized",
	403: "Forbidden",
	404: "Not Found",
	405: "Method Not Allowed",
	409: "Conflict",
	413: "Request Entity Too Large",
	422: "Unprocessable Entity",
	429: "Too Many Requests",
	500: "Internal Server Error",
	501: "Not Implemented",
	503: "Service Unavailable",
}

func statusText(code int) string {
	if t, ok := statusTexts[code]; ok {
		return t
	}
	return "Unknown"
}
