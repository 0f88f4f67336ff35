package console

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-billing-console/pkg/api"
)

type fakeBackend[T any] struct {
	items      []T
	deleted    []T
	meta       *api.Meta
	record     T
	err        error
	lastParams api.ListParams
	calls      []string
	lastID     string
	lastIDs    []string
	payload    any
}

func (f *fakeBackend[T]) List(_ context.Context, params api.ListParams) (api.ListResult[T], error) {
	f.calls = append(f.calls, "list")
	f.lastParams = params
	return api.ListResult[T]{Items: f.items, Meta: f.meta}, f.err
}

func (f *fakeBackend[T]) ListDeleted(_ context.Context, params api.ListParams) (api.ListResult[T], error) {
	f.calls = append(f.calls, "list_deleted")
	f.lastParams = params
	return api.ListResult[T]{Items: f.deleted, Meta: f.meta}, f.err
}

func (f *fakeBackend[T]) Get(_ context.Context, id string) (T, error) {
	f.calls = append(f.calls, "get")
	f.lastID = id
	return f.record, f.err
}

func (f *fakeBackend[T]) Create(_ context.Context, payload any) (T, error) {
	f.calls = append(f.calls, "create")
	f.payload = payload
	return f.record, f.err
}

func (f *fakeBackend[T]) Update(_ context.Context, id string, payload any) (T, error) {
	f.calls = append(f.calls, "update")
	f.lastID = id
	f.payload = payload
	return f.record, f.err
}

func (f *fakeBackend[T]) BulkUpdate(_ context.Context, ids []string, payload any) (api.BulkResult, error) {
	f.calls = append(f.calls, "bulk_update")
	f.lastIDs = ids
	f.payload = payload
	return api.BulkResult{}, f.err
}

func (f *fakeBackend[T]) SoftDelete(_ context.Context, id string) error {
	f.calls = append(f.calls, "soft_delete")
	f.lastID = id
	return f.err
}

func (f *fakeBackend[T]) BulkSoftDelete(_ context.Context, ids []string) (api.BulkResult, error) {
	f.calls = append(f.calls, "bulk_soft_delete")
	f.lastIDs = ids
	return api.BulkResult{Affected: len(ids) - 1}, f.err
}

func (f *fakeBackend[T]) Restore(_ context.Context, id string) (T, error) {
	f.calls = append(f.calls, "restore")
	f.lastID = id
	return f.record, f.err
}

func (f *fakeBackend[T]) PermanentDelete(_ context.Context, id string) error {
	f.calls = append(f.calls, "permanent_delete")
	f.lastID = id
	return f.err
}

func testRequest(state PageState) PageRequest {
	return PageRequest{
		Viewer:    ViewerContext{UserID: "admin", Locale: "en"},
		State:     state,
		Formatter: NewNumberFormatter("en", "USD"),
	}
}

func TestResourcePageRenderBuildsView(t *testing.T) {
	backend := &fakeBackend[api.Coupon]{
		items: []api.Coupon{
			{ID: "c1", Code: "SPRING", DiscountType: "percentage", UsedCount: 3, MaxUses: 10, IsActive: true},
			{ID: "c2", Code: "BLACKFRIDAY", DiscountType: "fixed_amount", UsedCount: 7, MaxUses: 100},
		},
		meta: &api.Meta{Page: 1, Limit: 20, Total: intPtr(2), TotalPage: 1},
	}
	page := CouponsPage(backend)
	state := NewPageState("coupons")
	state.SetFilter("discount_type", "percentage")

	view, err := page.Render(context.Background(), testRequest(state))
	require.NoError(t, err)

	assert.Equal(t, "Coupons", view.Title)
	assert.Equal(t, "percentage", backend.lastParams.Filters["discount_type"])
	assert.NotContains(t, backend.lastParams.Filters, "is_active")
	assert.Equal(t, 1, backend.lastParams.Page)
	assert.Equal(t, DefaultPageLimit, backend.lastParams.Limit)

	require.Len(t, view.Table.Rows, 2)
	assert.Equal(t, "c1", view.Table.Rows[0].ID)
	assert.Equal(t, "3 / 10", view.Table.Rows[0].Cells[3])
	assert.Equal(t, "2", cardByKey(t, view.Cards, "total").Value)
	assert.True(t, view.Pagination.Exact)
	assert.False(t, view.Approximate)
	assert.Nil(t, view.Chart, "chart requires a renderer")

	values := map[string]string{}
	for _, f := range view.Filters {
		values[f.Key] = f.Value
	}
	assert.Equal(t, "percentage", values["discount_type"])
	assert.Equal(t, SentinelNull, values["is_active"])
}

func TestResourcePageRenderFlagsApproximateCards(t *testing.T) {
	backend := &fakeBackend[api.Coupon]{
		items: []api.Coupon{{ID: "c1", UsedCount: 2}},
		meta:  &api.Meta{Page: 1, Limit: 1, TotalPage: 5},
	}
	view, err := CouponsPage(backend).Render(context.Background(), testRequest(NewPageState("coupons")))
	require.NoError(t, err)
	assert.True(t, view.Approximate)
	assert.False(t, view.Pagination.Exact)
	assert.Equal(t, 5, view.Pagination.TotalPage)
}

func TestResourcePageRenderUsesRecycleBin(t *testing.T) {
	backend := &fakeBackend[api.Coupon]{
		deleted: []api.Coupon{{ID: "gone", IsDeleted: true}},
	}
	state := NewPageState("coupons")
	state.Deleted = true
	state.ListPage = 3

	view, err := CouponsPage(backend).Render(context.Background(), testRequest(state))
	require.NoError(t, err)
	assert.Equal(t, []string{"list_deleted"}, backend.calls)
	assert.Equal(t, 3, backend.lastParams.Page)

	require.Len(t, view.Table.Rows, 1)
	var names []string
	for _, action := range view.Table.Rows[0].Actions {
		names = append(names, action.Name)
	}
	assert.Equal(t, []string{ActionView, ActionRestore}, names)
}

func TestResourcePageRenderWrapsBackendError(t *testing.T) {
	backend := &fakeBackend[api.Coupon]{err: errors.New("boom")}
	_, err := CouponsPage(backend).Render(context.Background(), testRequest(NewPageState("coupons")))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "console: list coupons")
}

func TestResourcePageRenderDrawsChart(t *testing.T) {
	backend := &fakeBackend[api.User]{
		items: []api.User{{ID: "u1", Role: "admin"}, {ID: "u2", Role: "user"}, {ID: "u3", Role: "user"}},
	}
	req := testRequest(NewPageState("users"))
	req.Charts = NewChartRenderer()

	view, err := UsersPage(backend).Render(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, view.Chart)
	assert.Equal(t, "page", view.Chart.Source)
	assert.Equal(t, []ChartPoint{{Label: "user", Value: 2}, {Label: "admin", Value: 1}}, view.Chart.Points)
	assert.NotEmpty(t, view.Chart.HTML)
}

func TestResourcePageMutateDispatchesActions(t *testing.T) {
	ctx := context.Background()
	backend := &fakeBackend[api.User]{record: api.User{ID: "u1"}}
	page := UsersPage(backend)

	res, err := page.Mutate(ctx, MutationRequest{Action: MutationUpdate, ID: "u1", Payload: map[string]any{"role": "admin"}})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Affected)
	assert.Equal(t, api.User{ID: "u1"}, res.Record)

	res, err = page.Mutate(ctx, MutationRequest{Action: MutationBulkUpdate, IDs: []string{"u1", "u2"}})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Affected, "falls back to the number of ids")

	res, err = page.Mutate(ctx, MutationRequest{Action: MutationBulkSoftDelete, IDs: []string{"u1", "u2", "u3"}})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Affected, "prefers the backend count")

	_, err = page.Mutate(ctx, MutationRequest{Action: MutationRestore, ID: "u1"})
	require.NoError(t, err)
	_, err = page.Mutate(ctx, MutationRequest{Action: MutationPermanentDelete, ID: "u1"})
	require.NoError(t, err)

	assert.Equal(t, []string{"update", "bulk_update", "bulk_soft_delete", "restore", "permanent_delete"}, backend.calls)
}

func TestResourcePageMutateRejectsUndeclaredAction(t *testing.T) {
	backend := &fakeBackend[api.PaymentTransaction]{}
	_, err := PaymentTransactionsPage(backend).Mutate(context.Background(), MutationRequest{Action: MutationCreate})
	require.ErrorIs(t, err, ErrActionNotAllowed)
	assert.Empty(t, backend.calls)
}

func TestResourcePageMutateRequiresID(t *testing.T) {
	backend := &fakeBackend[api.User]{}
	_, err := UsersPage(backend).Mutate(context.Background(), MutationRequest{Action: MutationSoftDelete})
	require.ErrorIs(t, err, ErrInvalidPayload)
	_, err = UsersPage(backend).Mutate(context.Background(), MutationRequest{Action: MutationBulkUpdate})
	require.ErrorIs(t, err, ErrInvalidPayload)
	assert.Empty(t, backend.calls)
}

func TestResourcePageLookup(t *testing.T) {
	backend := &fakeBackend[api.Plan]{record: api.Plan{ID: "p1", Name: "Pro"}}
	record, err := PlansPage(backend).Lookup(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, api.Plan{ID: "p1", Name: "Pro"}, record)
	assert.Equal(t, "p1", backend.lastID)
}

func TestDefaultPagesCoverEveryResource(t *testing.T) {
	client, err := api.New(api.Config{BaseURL: "http://backend.test"})
	require.NoError(t, err)

	pages := DefaultPages(client)
	require.Len(t, pages, 22)

	seen := map[string]bool{}
	for _, page := range pages {
		def := page.Definition()
		assert.NotEmpty(t, def.Title, def.Code)
		assert.NotEmpty(t, def.Path, def.Code)
		assert.False(t, seen[def.Code], "duplicate page %s", def.Code)
		seen[def.Code] = true
		for _, action := range def.Actions {
			if action == MutationCreate || action == MutationUpdate {
				assert.NotEmpty(t, def.Schema, "%s declares %s without a schema", def.Code, action)
			}
		}
	}

	reg, err := NewRegistry(pages...)
	require.NoError(t, err)
	assert.Len(t, reg.Definitions(), 22)
}

func TestResourcePageRenderForwardsSearchAndSort(t *testing.T) {
	backend := &fakeBackend[api.User]{}
	state := NewPageState("users")
	state.SetFilter(SearchFilterKey, "ada")
	state.SetFilter("role", "admin")
	state.Table = TableOptions{SortBy: "email", SortOrder: "DESC"}

	_, err := UsersPage(backend).Render(context.Background(), testRequest(state))
	require.NoError(t, err)
	assert.Equal(t, "ada", backend.lastParams.Search)
	assert.Equal(t, "email", backend.lastParams.SortBy)
	assert.Equal(t, "desc", backend.lastParams.SortOrder)
	assert.Equal(t, map[string]string{"role": "admin"}, backend.lastParams.Filters)

	state.Table = TableOptions{SortBy: "is_verified"}
	_, err = UsersPage(backend).Render(context.Background(), testRequest(state))
	require.NoError(t, err)
	assert.Empty(t, backend.lastParams.SortBy, "unsortable columns are not forwarded")
	assert.Empty(t, backend.lastParams.SortOrder)
}
