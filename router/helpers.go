package router

import "net/http"

func (g *Group) clone() *Group {
	mws := make([]func(http.Handler) http.Handler, len(g.middlewares))
	copy(mws, g.middlewares)

	ng := &Group{
		mux:         g.mux,
		middlewares: mws,
		root:        g.root,
		rootCount:   g.rootCount,
	}
	if ng.root == nil {
		ng.root = g
		ng.rootCount = len(g.middlewares)
	}
	return ng
}

// lockRoot marks the root group as having routes. Subgroups share the mux,
// so registering anywhere freezes the global stack.
func (g *Group) lockRoot() {
	g.routesLocked = true
	g.rootGroup().routesLocked = true
}

// statusRecorder is used to probe mux responses.
type statusRecorder struct {
	status int
}

func (r *statusRecorder) Header() http.Header       { return make(http.Header) }
func (r *statusRecorder) Write([]byte) (int, error) { return 0, nil }
func (r *statusRecorder) WriteHeader(status int)    { r.status = status }
