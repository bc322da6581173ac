package gateway

import (
	"bytes"
	"encoding/json"
	"io"
	"mime"
	"strings"
)

// encodeBody returns the request body and the content type to announce.
// Multipart forms set their own boundary type; JSON is the default.
func encodeBody(body any) (io.Reader, string, error) {
	switch b := body.(type) {
	case nil:
		return nil, "", nil
	case *Multipart:
		return b.encode()
	case []byte:
		return bytes.NewReader(b), "application/octet-stream", nil
	case io.Reader:
		return b, "application/octet-stream", nil
	default:
		data, err := json.Marshal(b)
		if err != nil {
			return nil, "", err
		}
		return bytes.NewReader(data), "application/json", nil
	}
}

// parsePayload decodes JSON bodies and returns other bodies as text. A JSON
// body that fails to parse degrades to nil.
func parsePayload(contentType string, raw []byte) any {
	if !isJSON(contentType) {
		return string(raw)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil
	}
	return v
}

func isJSON(contentType string) bool {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mt == "application/json" || strings.HasSuffix(mt, "+json")
}

// messageFrom picks a human readable message out of an error payload.
func messageFrom(payload any) string {
	obj, ok := payload.(map[string]any)
	if !ok {
		return ""
	}
	for _, k := range []string{"message", "error"} {
		if s, ok := obj[k].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

// Decode converts a parsed payload into dst by round-tripping through JSON.
func Decode(payload any, dst any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dst)
}
