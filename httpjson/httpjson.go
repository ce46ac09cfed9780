// Package httpjson provides common helpers for JSON-based HTTP services
package httpjson

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
)

// JSON is a convenience alias for a generic JSON object
type JSON map[string]any

// ErrEmptyBody is returned by DecodeJSON when the request carries no body.
var ErrEmptyBody = errors.New("empty request body")

// encodeJSON encodes data to JSON with HTML escaping control
func encodeJSON(data any, escapeHTML bool) ([]byte, error) {
	buf := &bytes.Buffer{}
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(escapeHTML)
	if err := enc.Encode(data); err != nil {
		return nil, fmt.Errorf("json encoding failed: %w", err)
	}
	return buf.Bytes(), nil
}

// writeResponse writes JSON bytes with status code
func writeResponse(w http.ResponseWriter, data []byte, code int) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if code != 0 {
		w.WriteHeader(code)
	}
	_, _ = w.Write(data)
}

// WriteJSON encodes and writes JSON to the response with HTTP 200
func WriteJSON(w http.ResponseWriter, data any) {
	encoded, err := encodeJSON(data, true)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	writeResponse(w, encoded, 0)
}

// IsJSONContentType reports whether a Content-Type header value names
// application/json or a structured "+json" suffix type.
func IsJSONContentType(contentType string) bool {
	if contentType == "" {
		return false
	}
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	if mt == "application/json" {
		return true
	}
	return strings.HasPrefix(mt, "application/") && strings.HasSuffix(mt, "+json")
}

// DecodeJSON decodes JSON from request body into the given struct.
// The request body should be limited using the JSONBody middleware or
// http.MaxBytesReader to prevent DoS attacks via large JSON payloads.
func DecodeJSON[T any](r *http.Request, target *T) error {
	if r.Body == nil || r.Body == http.NoBody {
		return ErrEmptyBody
	}
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		if errors.Is(err, io.EOF) {
			return ErrEmptyBody
		}
		return fmt.Errorf("decode json: %w", err)
	}
	return nil
}
