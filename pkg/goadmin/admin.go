package goadmin

import (
	"context"
	"errors"

	core "github.com/goliatone/go-billing-console/components/console"
	consolepkg "github.com/goliatone/go-billing-console/pkg/console"
)

// MenuBuilder ensures console entries exist within the admin navigation.
type MenuBuilder interface {
	EnsureMenuItem(ctx context.Context, menuCode string, item MenuItem) error
}

// MenuItem captures console link metadata.
type MenuItem struct {
	Label    string
	Route    string
	Icon     string
	Group    string
	Position int
}

// Config wires the console service + feature flags into an admin shell.
type Config struct {
	EnableConsole bool
	MenuCode      string
	MenuBuilder   MenuBuilder
	Service       *consolepkg.Service
	// RoutePrefix is joined with the page code to build each Route.
	RoutePrefix string
	Locale      string
}

// Admin exposes helpers for go-admin style applications.
type Admin struct {
	cfg Config
}

// New creates an Admin helper that can seed console menus.
func New(cfg Config) (*Admin, error) {
	if cfg.EnableConsole && cfg.Service == nil {
		return nil, errors.New("goadmin: console service is required when enabled")
	}
	if cfg.MenuCode == "" {
		cfg.MenuCode = "admin.main"
	}
	if cfg.RoutePrefix == "" {
		cfg.RoutePrefix = "admin.console."
	}
	return &Admin{cfg: cfg}, nil
}

// Console exposes the configured console service when enabled.
func (a *Admin) Console() *consolepkg.Service {
	if !a.cfg.EnableConsole {
		return nil
	}
	return a.cfg.Service
}

// Bootstrap seeds one menu entry per visible console page.
func (a *Admin) Bootstrap(ctx context.Context) error {
	if !a.cfg.EnableConsole || a.cfg.MenuBuilder == nil {
		return nil
	}
	items := a.cfg.Service.Menu(ctx, core.ViewerContext{Locale: a.cfg.Locale})
	var errs []error
	for i, item := range items {
		entry := MenuItem{
			Label:    item.Title,
			Route:    a.cfg.RoutePrefix + item.Code,
			Icon:     item.Icon,
			Group:    item.Group,
			Position: i + 1,
		}
		if err := a.cfg.MenuBuilder.EnsureMenuItem(ctx, a.cfg.MenuCode, entry); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

