package pkg

import (
	"bytes"
	"strings"
)

// ParseMultipart parses a multipart/form-data body into its form fields and
// uploaded files. It is a hand-rolled boundary scanner rather than a
// wrapper over the standard library's mime/multipart reader, matching the
// byte-oriented delimiter search the original server used: a boundary
// marker is only ever recognised when it is preceded by a CRLF, so a field
// value that happens to contain the bare boundary string elsewhere can
// never be mistaken for a part separator.
func ParseMultipart(body []byte, boundary string) ([]KV, []FilePart, error) {
	delim := []byte("--" + boundary)

	start := bytes.Index(body, delim)
	if start < 0 {
		return nil, nil, &FrameworkError{Code: ErrCodeMalformedMultipart, Message: "opening boundary not found"}
	}

	var fields []KV
	var files []FilePart

	cursor := start + len(delim)
	for {
		if cursor+2 <= len(body) && body[cursor] == '-' && body[cursor+1] == '-' {
			break // closing boundary "--boundary--"
		}

		cursor = skipCRLF(body, cursor)

		next := findNextBoundary(body, cursor, delim)
		if next.offset < 0 {
			return nil, nil, &FrameworkError{Code: ErrCodeMalformedMultipart, Message: "unterminated part"}
		}

		partBody := body[cursor:next.offset]
		field, file, err := parsePart(partBody)
		if err != nil {
			return nil, nil, err
		}
		if file != nil {
			files = append(files, *file)
		} else if field != nil {
			fields = append(fields, *field)
		}

		cursor = next.offset + next.length
	}

	return fields, files, nil
}

type boundaryMatch struct {
	offset int // start of the "\r\n--boundary" sequence
	length int // length of that sequence
}

// findNextBoundary searches for the next occurrence of "\r\n"+delim at or
// after from, requiring the preceding CRLF so the delimiter can never match
// inside a part's raw content by coincidence.
func findNextBoundary(body []byte, from int, delim []byte) boundaryMatch {
	needle := append([]byte("\r\n"), delim...)
	idx := bytes.Index(body[from:], needle)
	if idx < 0 {
		return boundaryMatch{offset: -1}
	}
	return boundaryMatch{offset: from + idx, length: len(needle)}
}

func skipCRLF(body []byte, i int) int {
	if i+1 < len(body) && body[i] == '\r' && body[i+1] == '\n' {
		return i + 2
	}
	return i
}

// parsePart splits one part's bytes into its header block (up to the first
// blank line) and its raw content, then classifies it as a file or a plain
// field based on whether Content-Disposition carries a filename.
func parsePart(part []byte) (*KV, *FilePart, error) {
	sep := bytes.Index(part, []byte("\r\n\r\n"))
	if sep < 0 {
		return nil, nil, &FrameworkError{Code: ErrCodeMalformedMultipart, Message: "part missing header/body separator"}
	}

	headerBlock := string(part[:sep])
	content := part[sep+4:]

	var disposition, contentType string
	for _, line := range strings.Split(headerBlock, "\r\n") {
		if line == "" {
			continue
		}
		colon := strings.IndexByte(line, ':')
		if colon < 0 {
			continue
		}
		key := strings.TrimSpace(line[:colon])
		val := strings.TrimSpace(line[colon+1:])
		switch strings.ToLower(key) {
		case "content-disposition":
			disposition = val
		case "content-type":
			contentType = val
		}
	}

	if disposition == "" {
		return nil, nil, &FrameworkError{Code: ErrCodeMalformedMultipart, Message: "part missing Content-Disposition"}
	}

	name, filename := parseContentDisposition(disposition)

	if filename != "" {
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		return nil, &FilePart{FieldName: name, Filename: filename, ContentType: contentType, Data: content}, nil
	}

	return &KV{Key: name, Value: string(content)}, nil, nil
}

// parseContentDisposition extracts the name and filename parameters from a
// Content-Disposition header value such as:
//
//	form-data; name="file"; filename="photo.png"
func parseContentDisposition(value string) (name, filename string) {
	for _, p := range strings.Split(value, ";")[1:] {
		p = strings.TrimSpace(p)
		kv := strings.SplitN(p, "=", 2)
		if len(kv) != 2 {
			continue
		}
		key := strings.ToLower(strings.TrimSpace(kv[0]))
		val := strings.Trim(strings.TrimSpace(kv[1]), `"`)
		switch key {
		case "name":
			name = val
		case "filename":
			filename = val
		}
	}
	return name, filename
}

// EncodeMultipart renders fields and files back into a multipart/form-data
// body using boundary, the inverse of ParseMultipart. It exists to support
// round-trip tests and handlers that proxy uploads onward.
func EncodeMultipart(boundary string, fields []KV, files []FilePart) []byte {
	var buf bytes.Buffer
	delim := "--" + boundary

	for _, kv := range fields {
		buf.WriteString(delim + "\r\n")
		buf.WriteString("Content-Disposition: form-data; name=\"" + kv.Key + "\"\r\n\r\n")
		buf.WriteString(kv.Value)
		buf.WriteString("\r\n")
	}

	for _, f := range files {
		buf.WriteString(delim + "\r\n")
		buf.WriteString("Content-Disposition: form-data; name=\"" + f.FieldName + "\"; filename=\"" + f.Filename + "\"\r\n")
		ct := f.ContentType
		if ct == "" {
			ct = "application/octet-stream"
		}
		buf.WriteString("Content-Type: " + ct + "\r\n\r\n")
		buf.Write(f.Data)
		buf.WriteString("\r\n")
	}

	buf.WriteString(delim + "--\r\n")
	return buf.Bytes()
}
