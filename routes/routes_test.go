package routes

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON %q: %v", rec.Body.String(), err)
	}
	return body
}

func TestGroupIndex(t *testing.T) {
	for name, h := range map[string]http.Handler{AdminGroup: Admin(nil), UserGroup: User(nil)} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		if rec.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", name, rec.Code)
		}
		body := decode(t, rec)
		if body["group"] != name || body["status"] != "ok" {
			t.Fatalf("%s: unexpected body %v", name, body)
		}
	}
}

func TestGroupUnknownPathNotImplemented(t *testing.T) {
	var logs bytes.Buffer
	h := Admin(slog.New(slog.NewTextHandler(&logs, nil)))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/trains", strings.NewReader(`{"a":1}`)))

	if rec.Code != http.StatusNotImplemented {
		t.Fatalf("expected 501, got %d", rec.Code)
	}
	body := decode(t, rec)
	if body["message"] != "not implemented" || body["details"] != "admin POST /trains" {
		t.Fatalf("unexpected body %v", body)
	}
	if !strings.Contains(logs.String(), "group=admin") {
		t.Fatalf("expected group attribute in log, got %q", logs.String())
	}
}

func TestGroupIndexWrongMethod(t *testing.T) {
	rec := httptest.NewRecorder()
	User(nil).ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/", nil))

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
}
