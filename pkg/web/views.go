package web

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
)

// ViewFragment is a pre-rendered view body embedded in a single-page shell.
type ViewFragment struct {
	Route  string
	Title  string
	Bundle string
	Href   string
	Body   template.HTML
}

// PageData contains the data passed to view templates during rendering.
// BasePath enables portable URL generation in templates via {{ .BasePath }}.
type PageData struct {
	SiteTitle string
	Title     string
	Bundle    string
	BasePath  string
	Route     string
	History   HistoryMode
	Nav       []NavLink
	Content   template.HTML
	Views     []ViewFragment
	Data      any
}

// TemplateSet holds pre-parsed templates keyed by view template file.
type TemplateSet struct {
	views    map[string]*template.Template
	basePath string
}

// NewTemplateSet parses the layout templates once and clones them for each
// view, so a broken template fails at startup rather than on a request.
func NewTemplateSet(layoutFS, viewFS fs.FS, layoutGlob, viewSubdir, basePath string, views []ViewDef) (*TemplateSet, error) {
	layouts, err := template.ParseFS(layoutFS, layoutGlob)
	if err != nil {
		return nil, fmt.Errorf("parse layouts: %w", err)
	}

	viewSub, err := fs.Sub(viewFS, viewSubdir)
	if err != nil {
		return nil, err
	}

	viewTemplates := make(map[string]*template.Template, len(views))
	for _, v := range views {
		if _, ok := viewTemplates[v.Template]; ok {
			continue
		}
		t, err := layouts.Clone()
		if err != nil {
			return nil, fmt.Errorf("clone layouts for %s: %w", v.Template, err)
		}
		if _, err := t.ParseFS(viewSub, v.Template); err != nil {
			return nil, fmt.Errorf("parse template: %s: %w", v.Template, err)
		}
		viewTemplates[v.Template] = t
	}

	return &TemplateSet{
		views:    viewTemplates,
		basePath: basePath,
	}, nil
}

// BasePath returns the base path included in rendered page data.
func (ts *TemplateSet) BasePath() string {
	return ts.basePath
}

// PageHandler returns an HTTP handler that renders view with data.
func (ts *TemplateSet) PageHandler(layout string, view ViewDef, data PageData) http.HandlerFunc {
	data = ts.fill(view, data)
	return func(w http.ResponseWriter, r *http.Request) {
		if err := ts.Render(w, http.StatusOK, layout, view.Template, data); err != nil {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}
	}
}

// ErrorHandler returns an HTTP handler that renders view with the given status.
func (ts *TemplateSet) ErrorHandler(layout string, view ViewDef, status int, data PageData) http.HandlerFunc {
	data = ts.fill(view, data)
	return func(w http.ResponseWriter, r *http.Request) {
		if err := ts.Render(w, status, layout, view.Template, data); err != nil {
			http.Error(w, http.StatusText(status), status)
		}
	}
}

// Render executes the named layout for the view template and writes the
// result with the given status. Nothing is written if execution fails.
func (ts *TemplateSet) Render(w http.ResponseWriter, status int, layout, viewTemplate string, data PageData) error {
	t, ok := ts.views[viewTemplate]
	if !ok {
		return fmt.Errorf("%w: %s", ErrViewNotFound, viewTemplate)
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, layout, data); err != nil {
		return fmt.Errorf("execute %s: %w", viewTemplate, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

// RenderFragment executes a single named block of the view template.
func (ts *TemplateSet) RenderFragment(view ViewDef, name string, data PageData) (template.HTML, error) {
	t, ok := ts.views[view.Template]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrViewNotFound, view.Template)
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, name, ts.fill(view, data)); err != nil {
		return "", fmt.Errorf("execute %s %s: %w", view.Template, name, err)
	}
	return template.HTML(buf.String()), nil
}

func (ts *TemplateSet) fill(view ViewDef, data PageData) PageData {
	if data.Title == "" {
		data.Title = view.Title
	}
	if data.Bundle == "" {
		data.Bundle = view.Bundle
	}
	if data.Route == "" {
		data.Route = view.Route
	}
	data.BasePath = ts.basePath
	return data
}
