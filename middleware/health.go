package middleware

import (
	"net/http"

	"github.com/en9inerd/railway-server/httpjson"
)

// Health answers GET and HEAD requests for path with {"status":"ok"} and
// passes everything else on. An empty path disables it.
func Health(path string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if path == "" {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == path && (r.Method == http.MethodGet || r.Method == http.MethodHead) {
				httpjson.WriteJSON(w, httpjson.JSON{"status": "ok"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
