package router

import "net/http"

// Use appends middleware(s) to the group. It panics once routes exist,
// since the stack would no longer cover every route.
func (g *Group) Use(mw func(http.Handler) http.Handler, more ...func(http.Handler) http.Handler) {
	if g.routesLocked {
		panic("router: Use called after routes were registered; add middleware before routes or use Group/With")
	}
	g.middlewares = append(g.middlewares, mw)
	g.middlewares = append(g.middlewares, more...)
}

// With returns a new group with appended middleware(s).
func (g *Group) With(mw func(http.Handler) http.Handler, more ...func(http.Handler) http.Handler) *Group {
	ng := g.clone()
	ng.middlewares = append(ng.middlewares, mw)
	ng.middlewares = append(ng.middlewares, more...)
	return ng
}

// wrapMiddleware applies the middlewares this group added on top of the
// root stack. The root stack itself runs in ServeHTTP.
func (g *Group) wrapMiddleware(handler http.Handler) http.Handler {
	if g.root == nil {
		return handler
	}
	start := min(g.rootCount, len(g.middlewares))
	for i := len(g.middlewares) - 1; i >= start; i-- {
		handler = g.middlewares[i](handler)
	}
	return handler
}

// wrapGlobal applies only the root middlewares.
func (g *Group) wrapGlobal(handler http.Handler) http.Handler {
	root := g.rootGroup()
	for i := len(root.middlewares) - 1; i >= 0; i-- {
		handler = root.middlewares[i](handler)
	}
	return handler
}
