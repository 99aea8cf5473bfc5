package web

import (
	"io/fs"
	"net/http"
)

// Route binds a method and pattern to a handler.
type Route struct {
	Method  string
	Pattern string
	Handler http.HandlerFunc
}

// PublicFileRoutes returns GET routes serving each named file from subdir of
// fsys at the site root, e.g. /favicon.svg.
func PublicFileRoutes(fsys fs.FS, subdir string, files ...string) []Route {
	sub, err := fs.Sub(fsys, subdir)
	if err != nil {
		return nil
	}

	routes := make([]Route, 0, len(files))
	for _, file := range files {
		name := file
		routes = append(routes, Route{
			Method:  http.MethodGet,
			Pattern: "/" + name,
			Handler: func(w http.ResponseWriter, r *http.Request) {
				http.ServeFileFS(w, r, sub, name)
			},
		})
	}
	return routes
}
