package web_test

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/evsalik/portfolio-web/pkg/web"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"layouts/app.html": {Data: []byte(
			`<title>{{ .Title }}</title><base href="{{ .BasePath }}/">{{ block "content" . }}{{ end }}`,
		)},
		"views/intro.html":     {Data: []byte(`{{ define "content" }}<h1>intro {{ .Route }}</h1>{{ end }}`)},
		"views/room-tour.html": {Data: []byte(`{{ define "content" }}<h1>tour</h1>{{ .Content }}{{ end }}`)},
		"views/404.html":       {Data: []byte(`{{ define "content" }}<h1>not found</h1>{{ end }}`)},
		"views/broken.html":    {Data: []byte(`{{ define "content" }}{{ .Missing.Field }}{{ end }}`)},
	}
}

func newTestTemplateSet(t *testing.T, views ...web.ViewDef) *web.TemplateSet {
	t.Helper()
	fsys := testFS()
	ts, err := web.NewTemplateSet(fsys, fsys, "layouts/*.html", "views", "/site", views)
	if err != nil {
		t.Fatalf("NewTemplateSet() failed: %v", err)
	}
	return ts
}

func TestNewTemplateSet_ParseError(t *testing.T) {
	fsys := testFS()
	fsys["views/bad.html"] = &fstest.MapFile{Data: []byte(`{{ define "content" }}{{ if }}{{ end }}`)}

	_, err := web.NewTemplateSet(fsys, fsys, "layouts/*.html", "views", "", []web.ViewDef{
		{Route: "/", Template: "bad.html"},
	})
	if err == nil {
		t.Fatal("NewTemplateSet() returned nil error for broken template")
	}
}

func TestNewTemplateSet_MissingView(t *testing.T) {
	fsys := testFS()
	_, err := web.NewTemplateSet(fsys, fsys, "layouts/*.html", "views", "", []web.ViewDef{
		{Route: "/", Template: "absent.html"},
	})
	if err == nil {
		t.Fatal("NewTemplateSet() returned nil error for missing view")
	}
}

func TestTemplateSet_PageHandler(t *testing.T) {
	view := web.ViewDef{Route: "/", Template: "intro.html", Title: "Introduction"}
	ts := newTestTemplateSet(t, view)

	handler := ts.PageHandler("app.html", view, web.PageData{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	resp := w.Result()
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Errorf("Content-Type = %q", ct)
	}

	body, _ := io.ReadAll(resp.Body)
	for _, want := range []string{"<title>Introduction</title>", `<base href="/site/">`, "<h1>intro /</h1>"} {
		if !strings.Contains(string(body), want) {
			t.Errorf("body missing %q: %s", want, body)
		}
	}
}

func TestTemplateSet_ErrorHandler(t *testing.T) {
	view := web.ViewDef{Template: "404.html", Title: "Not Found"}
	ts := newTestTemplateSet(t, view)

	req := httptest.NewRequest(http.MethodGet, "/missing", nil)
	w := httptest.NewRecorder()
	ts.ErrorHandler("app.html", view, http.StatusNotFound, web.PageData{}).ServeHTTP(w, req)

	resp := w.Result()
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusNotFound)
	}

	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "not found") {
		t.Errorf("body = %s, want 404 view", body)
	}
}

func TestTemplateSet_Render_ExecutionError(t *testing.T) {
	view := web.ViewDef{Route: "/", Template: "broken.html"}
	ts := newTestTemplateSet(t, view)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	ts.PageHandler("app.html", view, web.PageData{Data: 1}).ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", w.Code, http.StatusInternalServerError)
	}
	if strings.Contains(w.Body.String(), "<title>") {
		t.Error("partial page written on execution error")
	}
}

func TestTemplateSet_Render_UnknownView(t *testing.T) {
	ts := newTestTemplateSet(t, web.ViewDef{Route: "/", Template: "intro.html"})

	w := httptest.NewRecorder()
	err := ts.Render(w, http.StatusOK, "app.html", "absent.html", web.PageData{})
	if !errors.Is(err, web.ErrViewNotFound) {
		t.Errorf("Render() error = %v, want %v", err, web.ErrViewNotFound)
	}
}

func TestTemplateSet_RenderFragment(t *testing.T) {
	view := web.ViewDef{Route: "/room-tour", Template: "room-tour.html", Title: "Room Tour"}
	ts := newTestTemplateSet(t, view)

	html, err := ts.RenderFragment(view, "content", web.PageData{Content: "<p>desk</p>"})
	if err != nil {
		t.Fatalf("RenderFragment() failed: %v", err)
	}

	if string(html) != "<h1>tour</h1><p>desk</p>" {
		t.Errorf("RenderFragment() = %q", html)
	}
}
