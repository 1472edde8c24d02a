package domain

import (
	"testing"
	"time"
)

func TestNewTable_OrdersMostSpecificFirst(t *testing.T) {
	table, err := NewTable(
		Route{Name: "api", Prefix: "/api/", Action: ActionProxy},
		Route{Name: "api-v2", Prefix: "/api/v2/", Action: ActionProxy},
		Route{Name: "root", Prefix: "/", Exact: true, Action: ActionRedirect, RedirectTo: "/admin/"},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// prefixo mais longo vence
	if got := table.Match("/api/v2/users"); got.Name != "api-v2" {
		t.Fatalf("expected api-v2, got %q", got.Name)
	}
	if got := table.Match("/api/users"); got.Name != "api" {
		t.Fatalf("expected api, got %q", got.Name)
	}
}

func TestNewTable_ExactBeatsPrefix(t *testing.T) {
	table, err := NewTable(
		Route{Name: "health", Prefix: "/health", Action: ActionProxy},
		Route{Name: "root", Prefix: "/", Exact: true, Action: ActionRedirect, RedirectTo: "/admin/"},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := table.Match("/"); got.Name != "root" {
		t.Fatalf("expected root for exact /, got %q", got.Name)
	}
	if got := table.Match("/health"); got.Name != "health" {
		t.Fatalf("expected health, got %q", got.Name)
	}
}

func TestNewTable_AppendsCatchAll(t *testing.T) {
	table, err := NewTable(
		Route{Name: "api", Prefix: "/api/", Action: ActionProxy},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := table.Match("/nada/a/ver")
	if got.Name != "default" {
		t.Fatalf("expected default catch-all, got %q", got.Name)
	}
	if got.Action != ActionNotFound {
		t.Fatalf("expected ActionNotFound, got %v", got.Action)
	}
}

func TestNewTable_RejectsDuplicateNames(t *testing.T) {
	_, err := NewTable(
		Route{Name: "api", Prefix: "/api/", Action: ActionProxy},
		Route{Name: "api", Prefix: "/api/v2/", Action: ActionProxy},
	)
	if err == nil {
		t.Fatalf("expected error for duplicate name")
	}
}

func TestNewTable_RejectsStaticWithoutRoot(t *testing.T) {
	_, err := NewTable(Route{Name: "static", Prefix: "/static/", Action: ActionStatic})
	if err == nil {
		t.Fatalf("expected error for static route without root")
	}
}

func TestNewTable_RejectsRateLimitedStatic(t *testing.T) {
	_, err := NewTable(Route{Name: "static", Prefix: "/static/", Action: ActionStatic, Root: "/srv", RateLimited: true})
	if err == nil {
		t.Fatalf("expected error for rate limited static route")
	}
}

func TestCachePolicy_Header(t *testing.T) {
	p := CachePolicy{MaxAge: 30 * 24 * time.Hour, Immutable: true}
	if got := p.Header(); got != "public, max-age=2592000, immutable" {
		t.Fatalf("unexpected header %q", got)
	}

	p = CachePolicy{MaxAge: 7 * 24 * time.Hour}
	if got := p.Header(); got != "public, max-age=604800" {
		t.Fatalf("unexpected header %q", got)
	}

	if got := (CachePolicy{}).Header(); got != "" {
		t.Fatalf("expected empty header for zero policy, got %q", got)
	}
}
