package pkg

import (
	"bytes"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// TestProperty_MultipartRoundTrip checks that encoding fields and a file
// then parsing the result reproduces them exactly, for arbitrary field
// values and binary file contents.
func TestProperty_MultipartRoundTrip(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("encode/parse round trip preserves a single field", prop.ForAll(
		func(key, value string) bool {
			if key == "" {
				return true
			}
			body := EncodeMultipart("PropBoundary", []KV{{Key: key, Value: value}}, nil)
			fields, _, err := ParseMultipart(body, "PropBoundary")
			if err != nil {
				return false
			}
			return len(fields) == 1 && fields[0].Key == key && fields[0].Value == value
		},
		gen.AlphaString(),
		gen.AnyString(),
	))

	properties.Property("encode/parse round trip preserves arbitrary binary file data", prop.ForAll(
		func(filename string, data []byte) bool {
			if filename == "" {
				return true
			}
			file := FilePart{FieldName: "blob", Filename: filename, ContentType: "application/octet-stream", Data: data}
			body := EncodeMultipart("PropBoundary2", nil, []FilePart{file})
			_, files, err := ParseMultipart(body, "PropBoundary2")
			if err != nil {
				return false
			}
			return len(files) == 1 && files[0].Filename == filename && bytes.Equal(files[0].Data, data)
		},
		gen.AlphaString(),
		gen.SliceOf(gen.UInt8()),
	))

	params := gopter.DefaultTestParameters()
	params.MinSuccessfulTests = 50
	properties.TestingRun(t, params)
}
