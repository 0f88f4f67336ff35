package console

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/goliatone/go-billing-console/pkg/api"
)

var (
	// ErrPageNotFound is returned for unknown page codes.
	ErrPageNotFound = errors.New("console: page not found")
	// ErrActionNotAllowed is returned when a page does not declare a mutation.
	ErrActionNotAllowed = errors.New("console: action not allowed")
)

// Mutation actions a page may declare.
const (
	MutationCreate          = "create"
	MutationUpdate          = "update"
	MutationBulkUpdate      = "bulk_update"
	MutationSoftDelete      = "soft_delete"
	MutationBulkSoftDelete  = "bulk_soft_delete"
	MutationRestore         = "restore"
	MutationPermanentDelete = "permanent_delete"
)

// DefaultPageLimit is the list page size when none is configured.
const DefaultPageLimit = 20

// ReadOnlyActions is the action set for ledger style pages.
var ReadOnlyActions []string

// CRUDActions is the full action set for catalog pages.
var CRUDActions = []string{
	MutationCreate, MutationUpdate, MutationBulkUpdate, MutationSoftDelete,
	MutationBulkSoftDelete, MutationRestore, MutationPermanentDelete,
}

// PageDefinition is the static metadata of a console page.
type PageDefinition struct {
	Code                 string            `json:"code" yaml:"code"`
	Title                string            `json:"title" yaml:"title"`
	TitleLocalized       map[string]string `json:"title_localized,omitempty" yaml:"title_localized,omitempty"`
	Description          string            `json:"description,omitempty" yaml:"description,omitempty"`
	DescriptionLocalized map[string]string `json:"description_localized,omitempty" yaml:"description_localized,omitempty"`
	Icon                 string            `json:"icon,omitempty" yaml:"icon,omitempty"`
	Group                string            `json:"group,omitempty" yaml:"group,omitempty"`
	Order                int               `json:"order,omitempty" yaml:"order,omitempty"`
	Hidden               bool              `json:"hidden,omitempty" yaml:"hidden,omitempty"`
	// Path is the backend collection, e.g. /api/coupons.
	Path    string   `json:"path" yaml:"path,omitempty"`
	Actions []string `json:"actions,omitempty" yaml:"actions,omitempty"`
	// Schema validates create/update payloads.
	Schema map[string]any `json:"schema,omitempty" yaml:"schema,omitempty"`
	Limit  int            `json:"limit,omitempty" yaml:"limit,omitempty"`
}

// Allows reports whether action is declared.
func (d PageDefinition) Allows(action string) bool {
	return slices.Contains(d.Actions, action)
}

// PageRequest carries everything a page needs to render.
type PageRequest struct {
	Viewer    ViewerContext
	State     PageState
	Formatter NumberFormatter
	Charts    *ChartRenderer
}

// FilterView is a filter field with its current value.
type FilterView struct {
	FilterField
	Value string `json:"value"`
}

// Pagination describes the fetched list page.
type Pagination struct {
	Page      int  `json:"page"`
	Limit     int  `json:"limit"`
	Total     int  `json:"total"`
	TotalPage int  `json:"total_page"`
	Exact     bool `json:"exact"`
}

// PageView is the render-ready page.
type PageView struct {
	Definition  PageDefinition `json:"definition"`
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	Cards       []Card         `json:"cards"`
	Approximate bool           `json:"approximate"`
	Filters     []FilterView   `json:"filters"`
	Table       TableView      `json:"table"`
	Chart       *ChartView     `json:"chart,omitempty"`
	Pagination  Pagination     `json:"pagination"`
	State       PageState      `json:"state"`
	Message     string         `json:"message,omitempty"`
}

// MutationRequest asks a page to change backend data.
type MutationRequest struct {
	Action  string         `json:"action"`
	ID      string         `json:"id,omitempty"`
	IDs     []string       `json:"ids,omitempty"`
	Payload map[string]any `json:"payload,omitempty"`
}

// MutationResult reports what the backend did.
type MutationResult struct {
	Action   string   `json:"action"`
	ID       string   `json:"id,omitempty"`
	IDs      []string `json:"ids,omitempty"`
	Affected int      `json:"affected"`
	Record   any      `json:"record,omitempty"`
}

// Page is one console screen.
type Page interface {
	Definition() PageDefinition
	FilterFields() []FilterField
	Render(ctx context.Context, req PageRequest) (PageView, error)
	Mutate(ctx context.Context, req MutationRequest) (MutationResult, error)
	Lookup(ctx context.Context, id string) (any, error)
}

// Backend is the REST surface a resource page needs. *api.Resource[T] satisfies it.
type Backend[T any] interface {
	List(ctx context.Context, params api.ListParams) (api.ListResult[T], error)
	ListDeleted(ctx context.Context, params api.ListParams) (api.ListResult[T], error)
	Get(ctx context.Context, id string) (T, error)
	Create(ctx context.Context, payload any) (T, error)
	Update(ctx context.Context, id string, payload any) (T, error)
	BulkUpdate(ctx context.Context, ids []string, payload any) (api.BulkResult, error)
	SoftDelete(ctx context.Context, id string) error
	BulkSoftDelete(ctx context.Context, ids []string) (api.BulkResult, error)
	Restore(ctx context.Context, id string) (T, error)
	PermanentDelete(ctx context.Context, id string) error
}

// ResourcePage renders one backend collection with its section, filters, table and chart.
type ResourcePage[T any] struct {
	Def     PageDefinition
	Backend Backend[T]
	Section Section[T]
	Table   Table[T]
	Filters []FilterField
	Chart   *ChartSpec[T]
}

var _ Page = (*ResourcePage[api.Coupon])(nil)

// Definition returns the page metadata.
func (p *ResourcePage[T]) Definition() PageDefinition {
	return p.Def
}

// FilterFields returns the page's filter declarations.
func (p *ResourcePage[T]) FilterFields() []FilterField {
	return p.Filters
}

// Render fetches the list and builds the view.
func (p *ResourcePage[T]) Render(ctx context.Context, req PageRequest) (PageView, error) {
	state := req.State
	state.Normalize()
	filters := NewFilterSet(p.Filters, state.Filters)

	query := filters.Query()
	search := query[SearchFilterKey]
	delete(query, SearchFilterKey)
	params := api.ListParams{
		Page:    max(state.ListPage, 1),
		Limit:   p.limit(),
		Search:  search,
		Filters: query,
	}
	if p.Table.Sortable(state.Table.SortBy) {
		params.SortBy = state.Table.SortBy
		params.SortOrder = sortDirection(state.Table.SortOrder)
	}
	list := p.Backend.List
	if state.Deleted {
		list = p.Backend.ListDeleted
	}
	result, err := list(ctx, params)
	if err != nil {
		return PageView{}, fmt.Errorf("console: list %s: %w", p.Def.Code, err)
	}

	cards := p.Section.Compute(result.Items, result.Meta, req.Formatter)
	view := PageView{
		Definition:  p.Def,
		Title:       p.Def.TitleForLocale(req.Viewer.Locale),
		Description: p.Def.DescriptionForLocale(req.Viewer.Locale),
		Cards:       cards,
		Table:       p.Table.Build(result.Items, state.Table),
		Pagination:  paginationFor(params, result),
		State:       state,
		Message:     result.Message,
	}
	for _, card := range cards {
		if card.Approximate {
			view.Approximate = true
			break
		}
	}
	values := filters.Values()
	for _, field := range filters.Fields() {
		view.Filters = append(view.Filters, FilterView{FilterField: field, Value: values[field.Key]})
	}
	if p.Chart != nil && req.Charts != nil {
		chart, err := p.Chart.Render(req.Charts, p.Def.Code, result.Items, result.Meta, req.Viewer)
		if err != nil {
			return PageView{}, fmt.Errorf("console: chart %s: %w", p.Def.Code, err)
		}
		view.Chart = &chart
	}
	return view, nil
}

// Lookup fetches one record for a modal.
func (p *ResourcePage[T]) Lookup(ctx context.Context, id string) (any, error) {
	record, err := p.Backend.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("console: get %s/%s: %w", p.Def.Code, id, err)
	}
	return record, nil
}

// Mutate dispatches an action to the backend.
func (p *ResourcePage[T]) Mutate(ctx context.Context, req MutationRequest) (MutationResult, error) {
	if !p.Def.Allows(req.Action) {
		return MutationResult{}, fmt.Errorf("%w: %s on %s", ErrActionNotAllowed, req.Action, p.Def.Code)
	}
	out := MutationResult{Action: req.Action, ID: req.ID, IDs: req.IDs}
	var err error
	switch req.Action {
	case MutationCreate:
		out.Record, err = p.Backend.Create(ctx, req.Payload)
		out.Affected = 1
	case MutationUpdate:
		if err = requireID(req); err == nil {
			out.Record, err = p.Backend.Update(ctx, req.ID, req.Payload)
			out.Affected = 1
		}
	case MutationBulkUpdate:
		if err = requireIDs(req); err == nil {
			var res api.BulkResult
			res, err = p.Backend.BulkUpdate(ctx, req.IDs, req.Payload)
			out.Affected = bulkAffected(res, req.IDs)
		}
	case MutationSoftDelete:
		if err = requireID(req); err == nil {
			err = p.Backend.SoftDelete(ctx, req.ID)
			out.Affected = 1
		}
	case MutationBulkSoftDelete:
		if err = requireIDs(req); err == nil {
			var res api.BulkResult
			res, err = p.Backend.BulkSoftDelete(ctx, req.IDs)
			out.Affected = bulkAffected(res, req.IDs)
		}
	case MutationRestore:
		if err = requireID(req); err == nil {
			out.Record, err = p.Backend.Restore(ctx, req.ID)
			out.Affected = 1
		}
	case MutationPermanentDelete:
		if err = requireID(req); err == nil {
			err = p.Backend.PermanentDelete(ctx, req.ID)
			out.Affected = 1
		}
	default:
		return MutationResult{}, fmt.Errorf("%w: unknown action %s", ErrActionNotAllowed, req.Action)
	}
	if err != nil {
		return MutationResult{}, fmt.Errorf("console: %s %s: %w", req.Action, p.Def.Code, err)
	}
	return out, nil
}

func (p *ResourcePage[T]) limit() int {
	if p.Def.Limit > 0 {
		return p.Def.Limit
	}
	return DefaultPageLimit
}

func requireID(req MutationRequest) error {
	if req.ID == "" {
		return fmt.Errorf("%w: record id is required", ErrInvalidPayload)
	}
	return nil
}

func requireIDs(req MutationRequest) error {
	if len(req.IDs) == 0 {
		return fmt.Errorf("%w: at least one record id is required", ErrInvalidPayload)
	}
	return nil
}

func bulkAffected(res api.BulkResult, ids []string) int {
	if res.Affected > 0 {
		return res.Affected
	}
	return len(ids)
}

func paginationFor[T any](params api.ListParams, result api.ListResult[T]) Pagination {
	out := Pagination{Page: params.Page, Limit: params.Limit, Total: len(result.Items), TotalPage: 1}
	meta := result.Meta
	if meta == nil {
		out.Exact = true
		return out
	}
	if meta.Page > 0 {
		out.Page = meta.Page
	}
	if meta.Limit > 0 {
		out.Limit = meta.Limit
	}
	if meta.TotalPage > 0 {
		out.TotalPage = meta.TotalPage
	}
	out.Total = meta.TotalOr(len(result.Items))
	out.Exact = meta.Total != nil || !meta.Paginated(len(result.Items))
	return out
}
