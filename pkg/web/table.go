package web

import (
	"fmt"
	"net/url"
	"path"
	"strings"
)

// ViewDef declares a single route entry: a URL path pattern and the view
// rendered when that path is active.
type ViewDef struct {
	Route    string
	Template string
	Title    string
	Bundle   string
	Content  string
}

// NavLink is a navigation entry built from the route table.
type NavLink struct {
	Route  string
	Title  string
	Href   string
	Active bool
}

// RouteTable is the immutable, validated mapping from route to view.
// It is built once at startup and is safe for concurrent reads.
type RouteTable struct {
	history  HistoryMode
	basePath string
	views    []ViewDef
	index    map[string]int
}

// NewRouteTable validates the declared views and returns a route table for
// the given history mode. Every route must be a clean absolute path with no
// query, fragment, or wildcard, and routes must be unique.
func NewRouteTable(history HistoryMode, basePath string, views []ViewDef) (*RouteTable, error) {
	if err := history.Validate(); err != nil {
		return nil, err
	}

	base, err := normalizeBase(basePath)
	if err != nil {
		return nil, err
	}

	if len(views) == 0 {
		return nil, ErrEmptyTable
	}

	t := &RouteTable{
		history:  history,
		basePath: base,
		views:    make([]ViewDef, len(views)),
		index:    make(map[string]int, len(views)),
	}
	copy(t.views, views)

	for i, v := range t.views {
		if err := ValidateRoute(v.Route); err != nil {
			return nil, err
		}
		if _, dup := t.index[v.Route]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateRoute, v.Route)
		}
		t.index[v.Route] = i
	}

	return t, nil
}

// ValidateRoute checks that route is a usable path pattern.
func ValidateRoute(route string) error {
	if route == "" || route[0] != '/' {
		return fmt.Errorf("%w: %q must start with /", ErrInvalidRoute, route)
	}
	if strings.ContainsAny(route, " \t\r\n?#{}") {
		return fmt.Errorf("%w: %q contains reserved characters", ErrInvalidRoute, route)
	}
	if path.Clean(route) != route {
		return fmt.Errorf("%w: %q is not in canonical form", ErrInvalidRoute, route)
	}
	return nil
}

// History returns the table's history mode.
func (t *RouteTable) History() HistoryMode {
	return t.history
}

// BasePath returns the prefix the table is mounted under ("" for the site root).
func (t *RouteTable) BasePath() string {
	return t.basePath
}

// Views returns the declared views in declaration order.
func (t *RouteTable) Views() []ViewDef {
	out := make([]ViewDef, len(t.views))
	copy(out, t.views)
	return out
}

// Lookup returns the view declared for route.
func (t *RouteTable) Lookup(route string) (ViewDef, bool) {
	i, ok := t.index[route]
	if !ok {
		return ViewDef{}, false
	}
	return t.views[i], true
}

// Resolve interprets target as a URL under the table's history mode and
// returns the matching view. In web mode the URL path selects the view; in
// hash mode the fragment does, and the path must be the shell root.
func (t *RouteTable) Resolve(target string) (ViewDef, bool) {
	u, err := url.Parse(target)
	if err != nil {
		return ViewDef{}, false
	}

	p, ok := t.stripBase(u.Path)
	if !ok {
		return ViewDef{}, false
	}

	if t.history == HistoryHash {
		if p != "/" {
			return ViewDef{}, false
		}
		p = u.Fragment
		if p == "" {
			p = "/"
		}
	}

	return t.Lookup(trimSlash(p))
}

// Href builds the link for route under the table's history mode. Links
// under a base path never end in a slash, e.g. /portfolio and
// /portfolio#/room-tour.
func (t *RouteTable) Href(route string) string {
	root := t.basePath
	if root == "" {
		root = "/"
	}
	if t.history == HistoryHash {
		return root + "#" + route
	}
	if route == "/" {
		return root
	}
	return t.basePath + route
}

// Nav builds navigation links for every view, marking active as current.
func (t *RouteTable) Nav(active string) []NavLink {
	links := make([]NavLink, len(t.views))
	for i, v := range t.views {
		links[i] = NavLink{
			Route:  v.Route,
			Title:  v.Title,
			Href:   t.Href(v.Route),
			Active: v.Route == active,
		}
	}
	return links
}

func (t *RouteTable) stripBase(p string) (string, bool) {
	if p == "" {
		return "/", true
	}
	if t.basePath == "" {
		return p, true
	}
	if p == t.basePath {
		return "/", true
	}
	if rest, ok := strings.CutPrefix(p, t.basePath+"/"); ok {
		return "/" + rest, true
	}
	return "", false
}

func normalizeBase(basePath string) (string, error) {
	if basePath == "" || basePath == "/" {
		return "", nil
	}
	if err := ValidateRoute(basePath); err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidBase, basePath)
	}
	return basePath, nil
}

func trimSlash(p string) string {
	if len(p) > 1 {
		return strings.TrimSuffix(p, "/")
	}
	return p
}
