package queries

import (
	"context"

	gocommand "github.com/goliatone/go-command"

	"github.com/goliatone/go-billing-console/components/console"
)

type menuService interface {
	Menu(ctx context.Context, viewer console.ViewerContext) []console.MenuItem
}

// MenuQuery lists the navigation entries visible to a viewer.
type MenuQuery struct {
	service menuService
}

// NewMenuQuery builds the query.
func NewMenuQuery(service menuService) *MenuQuery {
	return &MenuQuery{service: service}
}

var _ gocommand.Querier[console.ViewerContext, []console.MenuItem] = (*MenuQuery)(nil)

// Query resolves the menu for the viewer.
func (q *MenuQuery) Query(ctx context.Context, viewer console.ViewerContext) ([]console.MenuItem, error) {
	return q.service.Menu(ctx, viewer), nil
}
