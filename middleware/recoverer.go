package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/en9inerd/railway-server/httperrors"
)

// Recoverer is a middleware that recovers from panics, logs the panic and returns a HTTP 500 status if possible.
// If includeStack is true, full stack traces are logged. In production, set includeStack to false to prevent
// information disclosure if logs are exposed.
//
// A panic carrying an *httperrors.Error (possibly wrapped) is answered with that
// error's status and JSON body instead of 500.
//
// http.ErrAbortHandler is re-panicked so net/http can abort the connection as intended.
func Recoverer(logger *slog.Logger, includeStack bool) func(http.Handler) http.Handler {
	return func(h http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rvr := recover()
				if rvr == nil {
					return
				}
				if rvr == http.ErrAbortHandler {
					panic(rvr)
				}

				attrs := []any{
					slog.Any("panic", rvr),
					slog.String("method", r.Method),
					slog.String("url", r.URL.String()),
					slog.String("remote_addr", r.RemoteAddr),
				}
				if includeStack {
					attrs = append(attrs, slog.String("stack", string(debug.Stack())))
				}
				logger.Error("panic recovered", attrs...)

				// a handler may abort with a typed HTTP error
				if err, ok := rvr.(error); ok {
					if he, ok := httperrors.AsHTTPError(err); ok {
						he.WriteJSON(w)
						return
					}
				}
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			}()
			h.ServeHTTP(w, r)
		}
		return http.HandlerFunc(fn)
	}
}
