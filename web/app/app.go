// Package app provides the portfolio site module with embedded templates,
// markdown content, and assets.
package app

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/evsalik/portfolio-web/pkg/module"
	"github.com/evsalik/portfolio-web/pkg/web"
)

//go:embed dist/*
var distFS embed.FS

//go:embed public/*
var publicFS embed.FS

//go:embed server/layouts/*
var layoutFS embed.FS

//go:embed server/views/*
var viewFS embed.FS

//go:embed content/*
var contentFS embed.FS

const layout = "app.html"

var publicFiles = []string{
	"favicon.svg",
	"site.webmanifest",
	"robots.txt",
}

var views = []web.ViewDef{
	{Route: "/", Template: "intro.html", Title: "Introduction", Bundle: "app", Content: "intro.md"},
	{Route: "/room-tour", Template: "room-tour.html", Title: "Room Tour", Bundle: "room-tour", Content: "room-tour.md"},
}

var errorViews = []web.ViewDef{
	{Template: "404.html", Title: "Not Found", Bundle: "app"},
}

// Views returns a copy of the declared site views in navigation order.
func Views() []web.ViewDef {
	out := make([]web.ViewDef, len(views))
	copy(out, views)
	return out
}

// PublicFiles returns the names of the files served at the site root.
func PublicFiles() []string {
	out := make([]string, len(publicFiles))
	copy(out, publicFiles)
	return out
}

// NewRoutes builds the site route table for the given history mode.
func NewRoutes(history web.HistoryMode, basePath string) (*web.RouteTable, error) {
	return web.NewRouteTable(history, basePath, views)
}

// Options configures the app module.
type Options struct {
	SiteTitle string
	BasePath  string
	History   web.HistoryMode
}

// NewModule creates the app module. It is mounted at the root unless a base
// path is configured. An empty History selects web history.
func NewModule(opts Options) (*module.Module, error) {
	history, err := web.ParseHistoryMode(string(opts.History))
	if err != nil {
		return nil, err
	}

	table, err := NewRoutes(history, opts.BasePath)
	if err != nil {
		return nil, err
	}

	allViews := append(Views(), errorViews...)
	ts, err := web.NewTemplateSet(
		layoutFS,
		viewFS,
		"server/layouts/*.html",
		"server/views",
		table.BasePath(),
		allViews,
	)
	if err != nil {
		return nil, err
	}

	content, err := renderContent(table.Views())
	if err != nil {
		return nil, err
	}

	router, err := buildRouter(ts, table, opts.SiteTitle, content)
	if err != nil {
		return nil, err
	}

	prefix := table.BasePath()
	if prefix == "" {
		prefix = "/"
	}
	return module.New(prefix, router), nil
}

func renderContent(views []web.ViewDef) (map[string]template.HTML, error) {
	md := web.NewMarkdown()
	content := make(map[string]template.HTML, len(views))
	for _, v := range views {
		if v.Content == "" {
			continue
		}
		html, err := md.RenderFile(contentFS, "content/"+v.Content)
		if err != nil {
			return nil, fmt.Errorf("render content for %s: %w", v.Route, err)
		}
		content[v.Route] = html
	}
	return content, nil
}

func buildRouter(ts *web.TemplateSet, table *web.RouteTable, siteTitle string, content map[string]template.HTML) (http.Handler, error) {
	pageData := func(route string) web.PageData {
		return web.PageData{
			SiteTitle: siteTitle,
			History:   table.History(),
			Nav:       table.Nav(route),
			Content:   content[route],
		}
	}

	r := web.NewRouter()
	r.SetFallback(ts.ErrorHandler(
		layout,
		errorViews[0],
		http.StatusNotFound,
		pageData(""),
	))

	switch table.History() {
	case web.HistoryHash:
		if err := handleShell(r, ts, table, pageData); err != nil {
			return nil, err
		}
	default:
		for _, view := range table.Views() {
			r.HandleFunc(web.Pattern(http.MethodGet, view.Route), ts.PageHandler(layout, view, pageData(view.Route)))
		}
	}

	r.Handle("GET /dist/", http.FileServer(http.FS(distFS)))

	for _, route := range web.PublicFileRoutes(publicFS, "public", publicFiles...) {
		r.HandleFunc(route.Method+" "+route.Pattern, route.Handler)
	}

	return r, nil
}

// handleShell registers the single page served in hash mode. Every view is
// rendered into the shell as a fragment; path deep links redirect to their
// fragment address.
func handleShell(r *web.Router, ts *web.TemplateSet, table *web.RouteTable, pageData func(string) web.PageData) error {
	all := table.Views()
	root, ok := table.Lookup("/")
	if !ok {
		root = all[0]
	}

	fragments := make([]web.ViewFragment, 0, len(all))
	for _, view := range all {
		body, err := ts.RenderFragment(view, "content", pageData(view.Route))
		if err != nil {
			return err
		}
		fragments = append(fragments, web.ViewFragment{
			Route:  view.Route,
			Title:  view.Title,
			Bundle: view.Bundle,
			Href:   table.Href(view.Route),
			Body:   body,
		})
	}

	shell := pageData(root.Route)
	shell.Views = fragments
	r.HandleFunc("GET /{$}", ts.PageHandler(layout, root, shell))

	for _, view := range all {
		if view.Route == "/" {
			continue
		}
		href := table.Href(view.Route)
		r.HandleFunc(web.Pattern(http.MethodGet, view.Route), func(w http.ResponseWriter, req *http.Request) {
			http.Redirect(w, req, href, http.StatusFound)
		})
	}
	return nil
}
