package queries

import (
	"context"

	gocommand "github.com/goliatone/go-command"

	"github.com/goliatone/go-billing-console/components/console"
)

// PageInput addresses one page for one viewer.
type PageInput struct {
	Viewer console.ViewerContext
	Page   string
}

type pageService interface {
	RenderPage(ctx context.Context, viewer console.ViewerContext, code string) (console.PageView, error)
	State(ctx context.Context, viewer console.ViewerContext, code string) (console.PageState, error)
}

// PageQuery renders a page with the viewer's state.
type PageQuery struct {
	service pageService
}

// NewPageQuery builds the query.
func NewPageQuery(service pageService) *PageQuery {
	return &PageQuery{service: service}
}

var _ gocommand.Querier[PageInput, console.PageView] = (*PageQuery)(nil)

// Query renders the page.
func (q *PageQuery) Query(ctx context.Context, in PageInput) (console.PageView, error) {
	return q.service.RenderPage(ctx, in.Viewer, in.Page)
}

// StateQuery returns the stored page state without fetching backend data.
type StateQuery struct {
	service pageService
}

// NewStateQuery builds the query.
func NewStateQuery(service pageService) *StateQuery {
	return &StateQuery{service: service}
}

var _ gocommand.Querier[PageInput, console.PageState] = (*StateQuery)(nil)

// Query loads the state.
func (q *StateQuery) Query(ctx context.Context, in PageInput) (console.PageState, error) {
	return q.service.State(ctx, in.Viewer, in.Page)
}
