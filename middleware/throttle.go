package middleware

import (
	"log/slog"
	"net/http"

	"github.com/en9inerd/railway-server/httperrors"
	"github.com/en9inerd/railway-server/httpjson"
)

// MaxInFlight caps the number of requests being served at once across the
// whole server. Requests over the cap get 503 right away instead of
// queueing. A limit of zero or less disables the cap.
func MaxInFlight(limit int, logger *slog.Logger) func(http.Handler) http.Handler {
	if limit <= 0 {
		return func(h http.Handler) http.Handler { return h }
	}

	// one semaphore shared by every handler this middleware wraps
	slots := make(chan struct{}, limit)

	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case slots <- struct{}{}:
				defer func() { <-slots }()
				h.ServeHTTP(w, r)
			default:
				w.Header().Set("Retry-After", "1")
				httpjson.SendError(w, r, logger,
					httperrors.NewError(http.StatusServiceUnavailable, "server busy"))
			}
		})
	}
}
