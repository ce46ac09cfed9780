// Package routes holds the route groups mounted under /admin and /user.
//
// The railway business endpoints behind these prefixes are not part of
// this server yet. Each group answers its index with a status document and
// every other path with 501 Not Implemented, so clients and load balancers
// can tell a reachable group from a missing route.
package routes

import (
	"log/slog"
	"net/http"

	"github.com/en9inerd/railway-server/httperrors"
	"github.com/en9inerd/railway-server/httpjson"
	"github.com/en9inerd/railway-server/router"
)

// Group names, also used as mount prefixes.
const (
	AdminGroup = "admin"
	UserGroup  = "user"
)

// Admin returns the handler for the admin route group.
func Admin(logger *slog.Logger) http.Handler {
	return newGroup(AdminGroup, logger)
}

// User returns the handler for the user route group.
func User(logger *slog.Logger) http.Handler {
	return newGroup(UserGroup, logger)
}

func newGroup(name string, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("group", name)

	g := router.New(http.NewServeMux())
	g.NotFoundHandler(func(w http.ResponseWriter, r *http.Request) {
		httpjson.SendError(w, r, logger,
			httperrors.NewErrorWithDetails(http.StatusNotImplemented, "not implemented", name+" "+r.Method+" "+r.URL.Path))
	})
	g.Route(func(r *router.Group) {
		r.HandleFunc("GET /", func(w http.ResponseWriter, _ *http.Request) {
			httpjson.WriteJSON(w, httpjson.JSON{"group": name, "status": "ok"})
		})
	})
	return g
}
