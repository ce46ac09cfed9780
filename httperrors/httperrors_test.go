package httperrors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestErrorMessage(t *testing.T) {
	if got := NewError(http.StatusBadRequest, "bad").Error(); got != "bad" {
		t.Errorf("unexpected message %q", got)
	}
	if got := NewErrorWithDetails(http.StatusBadRequest, "bad", "field x").Error(); got != "bad: field x" {
		t.Errorf("unexpected message %q", got)
	}
}

func TestNewErrorWithErrUnwraps(t *testing.T) {
	cause := errors.New("unexpected EOF")
	e := NewErrorWithErr(http.StatusBadRequest, "invalid JSON body", cause)
	if !errors.Is(e, cause) {
		t.Fatalf("expected error chain to contain cause")
	}
	if e.Details != "unexpected EOF" {
		t.Fatalf("expected details from cause, got %q", e.Details)
	}

	if e := NewErrorWithErr(http.StatusInternalServerError, "boom", nil); e.Details != "" {
		t.Fatalf("expected empty details for nil cause, got %q", e.Details)
	}
}

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	NewErrorWithErr(http.StatusRequestEntityTooLarge, "request too large", errors.New("limit 10")).WriteJSON(rec)

	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Fatalf("unexpected content type %q", ct)
	}

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body["code"] != float64(413) || body["message"] != "request too large" || body["details"] != "limit 10" {
		t.Fatalf("unexpected body %v", body)
	}
	if _, ok := body["Err"]; ok {
		t.Fatalf("underlying error must not be serialized")
	}
}

func TestNotFound(t *testing.T) {
	r := httptest.NewRequest(http.MethodDelete, "/nowhere", nil)
	e := NotFound(r)
	if e.Code != http.StatusNotFound || e.Details != "DELETE /nowhere" {
		t.Fatalf("unexpected error %+v", e)
	}
}

func TestAsHTTPError(t *testing.T) {
	wrapped := fmt.Errorf("handler: %w", NewError(http.StatusConflict, "seat taken"))
	he, ok := AsHTTPError(wrapped)
	if !ok || he.Code != http.StatusConflict {
		t.Fatalf("expected wrapped *Error, got %v %v", he, ok)
	}
	if _, ok := AsHTTPError(errors.New("plain")); ok {
		t.Fatalf("plain error reported as HTTP error")
	}
}
