package web_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/evsalik/portfolio-web/pkg/web"
)

var testViews = []web.ViewDef{
	{Route: "/", Template: "intro.html", Title: "Introduction", Bundle: "app"},
	{Route: "/room-tour", Template: "room-tour.html", Title: "Room Tour", Bundle: "room-tour"},
}

func TestNewRouteTable(t *testing.T) {
	table, err := web.NewRouteTable(web.HistoryWeb, "", testViews)
	if err != nil {
		t.Fatalf("NewRouteTable() failed: %v", err)
	}

	if table.History() != web.HistoryWeb {
		t.Errorf("History() = %q, want %q", table.History(), web.HistoryWeb)
	}

	if got := table.Views(); !reflect.DeepEqual(got, testViews) {
		t.Errorf("Views() = %+v, want %+v", got, testViews)
	}
}

func TestNewRouteTable_Errors(t *testing.T) {
	tests := []struct {
		name    string
		history web.HistoryMode
		base    string
		views   []web.ViewDef
		wantErr error
	}{
		{"empty table", web.HistoryWeb, "", nil, web.ErrEmptyTable},
		{"bad history", "memory", "", testViews, web.ErrInvalidHistory},
		{"bad base", web.HistoryWeb, "portfolio", testViews, web.ErrInvalidBase},
		{"relative route", web.HistoryWeb, "", []web.ViewDef{{Route: "room-tour"}}, web.ErrInvalidRoute},
		{"empty route", web.HistoryWeb, "", []web.ViewDef{{Route: ""}}, web.ErrInvalidRoute},
		{"trailing slash", web.HistoryWeb, "", []web.ViewDef{{Route: "/room-tour/"}}, web.ErrInvalidRoute},
		{"dot segment", web.HistoryWeb, "", []web.ViewDef{{Route: "/a/../b"}}, web.ErrInvalidRoute},
		{"wildcard", web.HistoryWeb, "", []web.ViewDef{{Route: "/rooms/{id}"}}, web.ErrInvalidRoute},
		{"fragment", web.HistoryWeb, "", []web.ViewDef{{Route: "/#/tour"}}, web.ErrInvalidRoute},
		{"whitespace", web.HistoryWeb, "", []web.ViewDef{{Route: "/room tour"}}, web.ErrInvalidRoute},
		{
			"duplicate",
			web.HistoryWeb,
			"",
			[]web.ViewDef{{Route: "/"}, {Route: "/room-tour"}, {Route: "/room-tour"}},
			web.ErrDuplicateRoute,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := web.NewRouteTable(tt.history, tt.base, tt.views)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRouteTable_Views_ReturnsCopy(t *testing.T) {
	table, err := web.NewRouteTable(web.HistoryWeb, "", testViews)
	if err != nil {
		t.Fatalf("NewRouteTable() failed: %v", err)
	}

	views := table.Views()
	views[0].Title = "mutated"

	if v, _ := table.Lookup("/"); v.Title != "Introduction" {
		t.Errorf("table mutated through Views(): Title = %q", v.Title)
	}
}

func TestRouteTable_Resolve_Web(t *testing.T) {
	table, err := web.NewRouteTable(web.HistoryWeb, "", testViews)
	if err != nil {
		t.Fatalf("NewRouteTable() failed: %v", err)
	}

	tests := []struct {
		target   string
		wantOK   bool
		wantView string
	}{
		{"/", true, "intro.html"},
		{"", true, "intro.html"},
		{"/room-tour", true, "room-tour.html"},
		{"/room-tour/", true, "room-tour.html"},
		{"/room-tour?angle=90", true, "room-tour.html"},
		{"https://example.com/room-tour", true, "room-tour.html"},
		{"/unknown", false, ""},
		{"/room-tour/extra", false, ""},
		{"/Room-Tour", false, ""},
		{"%zz", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			v, ok := table.Resolve(tt.target)
			if ok != tt.wantOK {
				t.Fatalf("Resolve(%q) ok = %v, want %v", tt.target, ok, tt.wantOK)
			}
			if v.Template != tt.wantView {
				t.Errorf("Resolve(%q) = %q, want %q", tt.target, v.Template, tt.wantView)
			}
		})
	}
}

func TestRouteTable_Resolve_Hash(t *testing.T) {
	table, err := web.NewRouteTable(web.HistoryHash, "", testViews)
	if err != nil {
		t.Fatalf("NewRouteTable() failed: %v", err)
	}

	tests := []struct {
		target   string
		wantOK   bool
		wantView string
	}{
		{"/", true, "intro.html"},
		{"/#/", true, "intro.html"},
		{"/#/room-tour", true, "room-tour.html"},
		{"#/room-tour", true, "room-tour.html"},
		{"/#/unknown", false, ""},
		{"/room-tour", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			v, ok := table.Resolve(tt.target)
			if ok != tt.wantOK {
				t.Fatalf("Resolve(%q) ok = %v, want %v", tt.target, ok, tt.wantOK)
			}
			if v.Template != tt.wantView {
				t.Errorf("Resolve(%q) = %q, want %q", tt.target, v.Template, tt.wantView)
			}
		})
	}
}

func TestRouteTable_Resolve_BasePath(t *testing.T) {
	table, err := web.NewRouteTable(web.HistoryWeb, "/portfolio", testViews)
	if err != nil {
		t.Fatalf("NewRouteTable() failed: %v", err)
	}

	if v, ok := table.Resolve("/portfolio/room-tour"); !ok || v.Route != "/room-tour" {
		t.Errorf("Resolve(/portfolio/room-tour) = %+v, %v", v, ok)
	}
	if v, ok := table.Resolve("/portfolio"); !ok || v.Route != "/" {
		t.Errorf("Resolve(/portfolio) = %+v, %v", v, ok)
	}
	if _, ok := table.Resolve("/room-tour"); ok {
		t.Error("Resolve(/room-tour) outside base path should not match")
	}
	if _, ok := table.Resolve("/portfolioroom-tour"); ok {
		t.Error("Resolve(/portfolioroom-tour) should not match")
	}
}

func TestRouteTable_Href(t *testing.T) {
	tests := []struct {
		history web.HistoryMode
		base    string
		route   string
		want    string
	}{
		{web.HistoryWeb, "", "/", "/"},
		{web.HistoryWeb, "", "/room-tour", "/room-tour"},
		{web.HistoryWeb, "/portfolio", "/", "/portfolio"},
		{web.HistoryWeb, "/portfolio", "/room-tour", "/portfolio/room-tour"},
		{web.HistoryHash, "", "/", "/#/"},
		{web.HistoryHash, "", "/room-tour", "/#/room-tour"},
		{web.HistoryHash, "/portfolio", "/", "/portfolio#/"},
		{web.HistoryHash, "/portfolio", "/room-tour", "/portfolio#/room-tour"},
	}

	for _, tt := range tests {
		t.Run(string(tt.history)+tt.base+tt.route, func(t *testing.T) {
			table, err := web.NewRouteTable(tt.history, tt.base, testViews)
			if err != nil {
				t.Fatalf("NewRouteTable() failed: %v", err)
			}
			if got := table.Href(tt.route); got != tt.want {
				t.Errorf("Href(%q) = %q, want %q", tt.route, got, tt.want)
			}
		})
	}
}

func TestRouteTable_Href_ResolvesBack(t *testing.T) {
	for _, mode := range []web.HistoryMode{web.HistoryWeb, web.HistoryHash} {
		table, err := web.NewRouteTable(mode, "/portfolio", testViews)
		if err != nil {
			t.Fatalf("NewRouteTable(%s) failed: %v", mode, err)
		}
		for _, v := range testViews {
			got, ok := table.Resolve(table.Href(v.Route))
			if !ok || got.Route != v.Route {
				t.Errorf("%s: Resolve(Href(%q)) = %q, %v", mode, v.Route, got.Route, ok)
			}
		}
	}
}

func TestRouteTable_Nav(t *testing.T) {
	table, err := web.NewRouteTable(web.HistoryWeb, "", testViews)
	if err != nil {
		t.Fatalf("NewRouteTable() failed: %v", err)
	}

	nav := table.Nav("/room-tour")
	if len(nav) != 2 {
		t.Fatalf("len(Nav) = %d, want 2", len(nav))
	}
	if nav[0].Active || !nav[1].Active {
		t.Errorf("Active flags = %v, %v; want false, true", nav[0].Active, nav[1].Active)
	}
	if nav[1].Href != "/room-tour" {
		t.Errorf("Href = %q, want %q", nav[1].Href, "/room-tour")
	}
}

func TestNewRouteTable_Idempotent(t *testing.T) {
	a, err := web.NewRouteTable(web.HistoryWeb, "", testViews)
	if err != nil {
		t.Fatalf("NewRouteTable() failed: %v", err)
	}
	b, err := web.NewRouteTable(web.HistoryWeb, "", testViews)
	if err != nil {
		t.Fatalf("NewRouteTable() failed: %v", err)
	}

	if !reflect.DeepEqual(a.Views(), b.Views()) {
		t.Error("tables built from the same declarations differ")
	}

	for _, target := range []string{"/", "/room-tour", "/unknown"} {
		va, oka := a.Resolve(target)
		vb, okb := b.Resolve(target)
		if oka != okb || va != vb {
			t.Errorf("Resolve(%q) differs: %+v/%v vs %+v/%v", target, va, oka, vb, okb)
		}
	}
}

func TestParseHistoryMode(t *testing.T) {
	tests := []struct {
		in      string
		want    web.HistoryMode
		wantErr bool
	}{
		{"", web.HistoryWeb, false},
		{"web", web.HistoryWeb, false},
		{"HASH", web.HistoryHash, false},
		{" hash ", web.HistoryHash, false},
		{"memory", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := web.ParseHistoryMode(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseHistoryMode(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseHistoryMode(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
