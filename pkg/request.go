package pkg

import (
	"encoding/json"
	"net/url"
	"strings"
)

// URI is the decoded request-target: the path the router matches against,
// plus the raw (still encoded) query string.
type URI struct {
	Path     string
	RawQuery string
}

// KV is an ordered key/value pair. Query strings and urlencoded/multipart
// form bodies use a slice of these, rather than a map, so duplicate keys
// and declaration order survive a parse/encode round trip.
type KV struct {
	Key   string
	Value string
}

// FilePart is one uploaded file extracted from a multipart/form-data body.
type FilePart struct {
	FieldName   string
	Filename    string
	ContentType string
	Data        []byte
}

// Request is the framework's request value: method, URI, protocol version,
// headers, route parameters bound by the matched pattern, the decoded query
// string, and the raw body. Form and Files are populated lazily by
// ParseForm, not eagerly on every request.
type Request struct {
	Method  string
	URI     URI
	Version string
	Headers map[string]string
	Params  map[string]string
	Query   []KV
	Body    []byte

	Form  []KV
	Files []FilePart

	formParsed bool
}

// Header returns the first value of the named header, matched
// case-insensitively, or "" if the header is absent.
func (r *Request) Header(name string) string {
	for k, v := range r.Headers {
		if strings.EqualFold(k, name) {
			return v
		}
	}
	return ""
}

// FormValue returns the first form value for key, checking the parsed body
// form first and falling back to the query string. Callers must have
// called ParseForm first if they want body-encoded fields considered.
func (r *Request) FormValue(key string) string {
	for _, kv := range r.Form {
		if kv.Key == key {
			return kv.Value
		}
	}
	for _, kv := range r.Query {
		if kv.Key == key {
			return kv.Value
		}
	}
	return ""
}

// HasFiles reports whether the request's parsed form carries at least one
// uploaded file.
func (r *Request) HasFiles() bool {
	return len(r.Files) > 0
}

// ParseForm lazily parses Form (and Files, for multipart bodies) from the
// raw body according to Content-Type. It is idempotent: calling it more
// than once is a no-op after the first successful parse.
func (r *Request) ParseForm() error {
	if r.formParsed {
		return nil
	}

	ct := r.Header("Content-Type")

	switch {
	case strings.HasPrefix(ct, "application/x-www-form-urlencoded"):
		r.Form = parseURLEncoded(string(r.Body))

	case strings.HasPrefix(ct, "multipart/form-data"):
		boundary := boundaryFromContentType(ct)
		if boundary == "" {
			return &FrameworkError{Code: ErrCodeMalformedMultipart, Message: "missing boundary parameter in Content-Type"}
		}
		fields, files, err := ParseMultipart(r.Body, boundary)
		if err != nil {
			return err
		}
		r.Form = fields
		r.Files = files
	}

	r.formParsed = true
	return nil
}

// BindJSON deserialises the raw body into v, surfacing the decoder's error
// unchanged so callers can inspect it for field-level detail.
func (r *Request) BindJSON(v interface{}) error {
	return json.Unmarshal(r.Body, v)
}

// boundaryFromContentType extracts the boundary parameter from a
// multipart/form-data Content-Type header value.
func boundaryFromContentType(ct string) string {
	idx := strings.Index(ct, "boundary=")
	if idx < 0 {
		return ""
	}
	b := ct[idx+len("boundary="):]
	if semi := strings.IndexByte(b, ';'); semi >= 0 {
		b = b[:semi]
	}
	return strings.Trim(strings.TrimSpace(b), `"`)
}

// parseURLEncoded parses an application/x-www-form-urlencoded body (or a
// raw query string) into ordered, percent-decoded key/value pairs.
func parseURLEncoded(raw string) []KV {
	if raw == "" {
		return nil
	}

	var out []KV
	for _, pair := range strings.Split(raw, "&") {
		if pair == "" {
			continue
		}

		var k, v string
		if idx := strings.IndexByte(pair, '='); idx >= 0 {
			k, v = pair[:idx], pair[idx+1:]
		} else {
			k = pair
		}

		if dk, err := url.QueryUnescape(k); err == nil {
			k = dk
		}
		if dv, err := url.QueryUnescape(v); err == nil {
			v = dv
		}

		out = append(out, KV{Key: k, Value: v})
	}
	return out
}

// encodeURLEncoded is the inverse of parseURLEncoded, used by
// Response.FromForm and by the test suite's round-trip checks.
func encodeURLEncoded(kvs []KV) string {
	parts := make([]string, 0, len(kvs))
	for _, kv := range kvs {
		parts = append(parts, url.QueryEscape(kv.Key)+"="+url.QueryEscape(kv.Value))
	}
	return strings.Join(parts, "&")
}
