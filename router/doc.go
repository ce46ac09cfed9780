// Package router groups routes and applies middleware on top of Go's
// standard http.ServeMux (Go 1.22+). It supports:
//
//   - Attaching middleware stacks at the root or per derived group (With)
//   - Mounting opaque handlers behind a path prefix with the prefix stripped
//   - Registering handlers with or without HTTP method prefixes
//   - Defining custom NotFound (404) handlers
//
// Example usage:
//
//	mux := http.NewServeMux()
//	r := router.New(mux)
//
//	// global middleware
//	r.Use(loggingMiddleware)
//
//	r.HandleFunc("GET /", greet)
//
//	// hand everything under /admin to another handler
//	r.MountHandler("/admin", adminHandler)
//
//	http.ListenAndServe(":4080", r)
//
// Middleware added to the root group executes for every request, including
// requests that end in a 404. Middleware added to a subgroup executes only
// for that group's routes. First added runs outermost.
//
// Route patterns may be plain paths ("/foo") or include an HTTP method prefix
// ("GET /foo"). Root "/" patterns are normalized to "/{$}" to avoid acting as
// a catch-all.
//
// A mounted handler sees the request path with the mount prefix removed, so
// "/admin/trains" reaches it as "/trains" and "/admin" as "/". Prefixes match
// whole path segments: "/admin" never matches "/administrator".
package router
