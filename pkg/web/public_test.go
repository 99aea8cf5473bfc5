package web_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/evsalik/portfolio-web/pkg/web"
)

func TestPublicFileRoutes(t *testing.T) {
	fsys := fstest.MapFS{
		"public/robots.txt":       {Data: []byte("User-agent: *\n")},
		"public/site.webmanifest": {Data: []byte(`{"name":"portfolio"}`)},
	}

	routes := web.PublicFileRoutes(fsys, "public", "robots.txt", "site.webmanifest")
	if len(routes) != 2 {
		t.Fatalf("len(routes) = %d, want 2", len(routes))
	}

	r := web.NewRouter()
	for _, route := range routes {
		if route.Method != http.MethodGet {
			t.Errorf("Method = %q, want GET", route.Method)
		}
		r.HandleFunc(route.Method+" "+route.Pattern, route.Handler)
	}

	req := httptest.NewRequest(http.MethodGet, "/robots.txt", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	resp := w.Result()
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	body, _ := io.ReadAll(resp.Body)
	if string(body) != "User-agent: *\n" {
		t.Errorf("body = %q", body)
	}
}
