package router

import (
	"net/http"
	"net/url"
	"slices"
	"strings"
)

// mountPoint forwards to a handler that can be swapped until serving
// starts, which gives duplicate prefixes last-registration-wins semantics
// without re-registering the pattern on the mux.
type mountPoint struct {
	prefix  string
	handler http.Handler
}

// MountHandler hands every request for prefix, or any path below it, to
// handler with the prefix removed from the URL path. The handler is opaque
// to the router; it does its own dispatch on what remains of the path.
//
// Mounting the same prefix twice replaces the earlier handler. Mounting at
// the root panics; register a catch-all route instead.
func (g *Group) MountHandler(prefix string, handler http.Handler) {
	g.lockRoot()

	full := "/" + strings.Trim(prefix, "/")
	if full == "/" {
		panic("router: MountHandler needs a non-root prefix")
	}
	if strings.ContainsAny(full, "{} ") {
		panic("router: MountHandler prefix must be a literal path: " + full)
	}

	h := g.wrapMiddleware(handler)

	root := g.rootGroup()
	if mp, ok := root.mounts[full]; ok {
		mp.handler = h
		return
	}
	if root.mounts == nil {
		root.mounts = make(map[string]*mountPoint)
	}

	mp := &mountPoint{prefix: full, handler: h}
	root.mounts[full] = mp
	g.mux.Handle(full, mp)
	g.mux.Handle(full+"/", mp)
}

// Mounts returns the mounted prefixes, sorted.
func (g *Group) Mounts() []string {
	root := g.rootGroup()
	out := make([]string, 0, len(root.mounts))
	for p := range root.mounts {
		out = append(out, p)
	}
	slices.Sort(out)
	return out
}

func (m *mountPoint) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	r2 := new(http.Request)
	*r2 = *r
	r2.URL = new(url.URL)
	*r2.URL = *r.URL
	r2.URL.Path = stripPrefix(r.URL.Path, m.prefix)
	if r.URL.RawPath != "" {
		if raw, ok := strings.CutPrefix(r.URL.RawPath, m.prefix); ok {
			r2.URL.RawPath = ensureLeadingSlash(raw)
		} else {
			// prefix is escaped differently in the raw form; let url
			// re-derive it from Path
			r2.URL.RawPath = ""
		}
	}
	m.handler.ServeHTTP(w, r2)
}

func stripPrefix(path, prefix string) string {
	return ensureLeadingSlash(strings.TrimPrefix(path, prefix))
}

func ensureLeadingSlash(p string) string {
	if !strings.HasPrefix(p, "/") {
		return "/" + p
	}
	return p
}
