package goadmin_test

import (
	"context"
	"errors"
	"testing"

	core "github.com/goliatone/go-billing-console/components/console"
	"github.com/goliatone/go-billing-console/pkg/api"
	consolepkg "github.com/goliatone/go-billing-console/pkg/console"
	"github.com/goliatone/go-billing-console/pkg/goadmin"
)

type stubMenuBuilder struct {
	items []goadmin.MenuItem
	menu  string
	err   error
}

func (s *stubMenuBuilder) EnsureMenuItem(_ context.Context, menuCode string, item goadmin.MenuItem) error {
	s.menu = menuCode
	s.items = append(s.items, item)
	return s.err
}

func newService(t *testing.T) *consolepkg.Service {
	t.Helper()
	client, err := api.New(api.Config{BaseURL: "http://backend.test"})
	if err != nil {
		t.Fatalf("api.New returned error: %v", err)
	}
	reg, err := core.NewRegistry(core.UsersPage(client.Users), core.PlansPage(client.Plans))
	if err != nil {
		t.Fatalf("NewRegistry returned error: %v", err)
	}
	return consolepkg.NewService(core.Options{Registry: reg})
}

func TestAdminBootstrapSeedsMenu(t *testing.T) {
	builder := &stubMenuBuilder{}
	admin, err := goadmin.New(goadmin.Config{
		EnableConsole: true,
		Service:       newService(t),
		MenuBuilder:   builder,
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if err := admin.Bootstrap(context.Background()); err != nil {
		t.Fatalf("Bootstrap returned error: %v", err)
	}
	if len(builder.items) != 2 {
		t.Fatalf("expected 2 menu items, got %d", len(builder.items))
	}
	if builder.menu != "admin.main" {
		t.Fatalf("expected default menu code, got %q", builder.menu)
	}
	first := builder.items[0]
	if first.Route != "admin.console.plans" || first.Position != 1 || first.Label != "Plans" {
		t.Fatalf("unexpected first item %+v", first)
	}
	if admin.Console() == nil {
		t.Fatalf("expected console service")
	}
}

func TestAdminBootstrapJoinsErrors(t *testing.T) {
	builder := &stubMenuBuilder{err: errors.New("menu locked")}
	admin, err := goadmin.New(goadmin.Config{
		EnableConsole: true,
		Service:       newService(t),
		MenuBuilder:   builder,
		RoutePrefix:   "/admin/",
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if err := admin.Bootstrap(context.Background()); err == nil {
		t.Fatalf("expected builder error")
	}
	if builder.items[1].Route != "/admin/users" {
		t.Fatalf("expected custom route prefix, got %q", builder.items[1].Route)
	}
}

func TestAdminRequiresServiceWhenEnabled(t *testing.T) {
	if _, err := goadmin.New(goadmin.Config{EnableConsole: true}); err == nil {
		t.Fatalf("expected error without service")
	}
}

func TestAdminDisabledSkipsBootstrap(t *testing.T) {
	builder := &stubMenuBuilder{}
	admin, err := goadmin.New(goadmin.Config{
		EnableConsole: false,
		MenuBuilder:   builder,
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if err := admin.Bootstrap(context.Background()); err != nil {
		t.Fatalf("Bootstrap returned error: %v", err)
	}
	if len(builder.items) != 0 {
		t.Fatalf("expected 0 calls, got %d", len(builder.items))
	}
	if admin.Console() != nil {
		t.Fatalf("expected nil console when disabled")
	}
}
