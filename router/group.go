package router

import (
	"net/http"
)

// Group is a collection of routes sharing a middleware stack.
type Group struct {
	mux         *http.ServeMux
	middlewares []func(http.Handler) http.Handler

	// optional custom 404 handler, only meaningful on the root group
	notFound http.HandlerFunc

	// root points to the root group for global middleware application.
	root *Group

	// routesLocked is set once anything is registered on the mux; root
	// middlewares may not change after that.
	routesLocked bool

	// rootCount is how many root middlewares existed when this group was
	// derived. Those run globally and must not be applied twice.
	rootCount int

	// mounts is keyed by full prefix and lives on the root group only.
	mounts map[string]*mountPoint
}

// New creates a new root Group bound to the given mux.
func New(mux *http.ServeMux) *Group {
	return &Group{mux: mux}
}

// ServeHTTP runs the root middleware stack and dispatches through the mux.
func (g *Group) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	root := g.rootGroup()

	_, pattern := g.mux.Handler(r)
	if pattern != "" {
		r2 := *r
		r2.Pattern = pattern
		r = &r2
	}

	muxHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if pattern == "" && root.notFound != nil {
			// the mux answers 405s and path-cleaning redirects without a
			// pattern too; only a genuine 404 goes to the custom handler
			probe := &statusRecorder{status: http.StatusOK}
			g.mux.ServeHTTP(probe, r)
			if probe.status != http.StatusNotFound {
				g.mux.ServeHTTP(w, r)
				return
			}
			root.notFound.ServeHTTP(w, r)
			return
		}
		g.mux.ServeHTTP(w, r)
	})

	root.wrapGlobal(muxHandler).ServeHTTP(w, r)
}

// Route configures the group inside the provided function.
func (g *Group) Route(fn func(*Group)) { fn(g) }

// NotFoundHandler sets a custom 404 handler on the root group.
func (g *Group) NotFoundHandler(handler http.HandlerFunc) {
	g.rootGroup().notFound = handler
}

func (g *Group) rootGroup() *Group {
	if g.root != nil {
		return g.root
	}
	return g
}
