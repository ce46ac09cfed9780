package router

import (
	"net/http"
	"regexp"
	"strings"
)

// matches "METHOD /path"
var reGo122 = regexp.MustCompile(`^(\S+)\s+(.+)$`)

// Handle registers a route with the group's middlewares applied. Patterns
// ending in "/" are registered as subtrees.
func (g *Group) Handle(pattern string, handler http.Handler) {
	g.lockRoot()

	if strings.HasSuffix(pattern, "/") && pattern != "/" && !reGo122.MatchString(pattern) {
		g.mux.Handle(pattern, g.wrapMiddleware(handler))
		return
	}
	g.register(pattern, handler.ServeHTTP)
}

// HandleFunc registers a route handler function.
func (g *Group) HandleFunc(pattern string, handler http.HandlerFunc) {
	g.register(pattern, handler)
}

func (g *Group) register(pattern string, handler http.HandlerFunc) {
	g.lockRoot()
	matches := reGo122.FindStringSubmatch(pattern)

	method, path := "", pattern
	if len(matches) > 2 {
		method, path = matches[1], matches[2]
	}

	if path == "/" {
		pattern = "/{$}"
		if method != "" {
			pattern = method + " " + pattern
		}
	}
	g.mux.HandleFunc(pattern, g.wrapMiddleware(handler).ServeHTTP)
}
