package application

import (
	"testing"

	"edge-gateway/routing/domain"
)

func mustTable(t *testing.T, routes ...domain.Route) *domain.Table {
	t.Helper()
	table, err := domain.NewTable(routes...)
	if err != nil {
		t.Fatalf("unexpected table error: %v", err)
	}
	return table
}

func TestResolver_CleansDotSegments(t *testing.T) {
	table := mustTable(t,
		domain.Route{Name: "admin", Prefix: "/admin/", Action: domain.ActionProxy},
		domain.Route{Name: "static", Prefix: "/static/", Action: domain.ActionStatic, Root: "/srv"},
	)
	res := Resolver{Table: table}

	// ".." não pode escapar da política: /static/../admin/ é admin
	if got := res.Resolve("/static/../admin/"); got.Name != "admin" {
		t.Fatalf("expected admin, got %q", got.Name)
	}
	if got := res.Resolve("//static//css/app.css"); got.Name != "static" {
		t.Fatalf("expected static, got %q", got.Name)
	}
}

func TestResolver_EmptyPathIsRoot(t *testing.T) {
	table := mustTable(t,
		domain.Route{Name: "root", Prefix: "/", Exact: true, Action: domain.ActionRedirect, RedirectTo: "/admin/"},
	)
	res := Resolver{Table: table}

	if got := res.Resolve(""); got.Name != "root" {
		t.Fatalf("expected root, got %q", got.Name)
	}
}

func TestCanonical_KeepsTrailingSlash(t *testing.T) {
	if got := Canonical("/admin/"); got != "/admin/" {
		t.Fatalf("expected /admin/, got %q", got)
	}
	if got := Canonical("/admin"); got != "/admin" {
		t.Fatalf("expected /admin, got %q", got)
	}
	if got := Canonical("/a/b/../c/"); got != "/a/c/" {
		t.Fatalf("expected /a/c/, got %q", got)
	}
}
