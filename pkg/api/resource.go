package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// Resource maps one REST collection to typed calls.
type Resource[T any] struct {
	client *Client
	path   string
}

// NewResource binds a collection path (e.g. /api/coupons) to the client.
func NewResource[T any](client *Client, path string) *Resource[T] {
	return &Resource[T]{client: client, path: path}
}

// Path returns the collection path.
func (r *Resource[T]) Path() string {
	return r.path
}

// List fetches one page of the collection.
func (r *Resource[T]) List(ctx context.Context, params ListParams) (ListResult[T], error) {
	return r.list(ctx, r.path, params.Values())
}

// ListDeleted fetches the recycle bin (soft deleted records).
func (r *Resource[T]) ListDeleted(ctx context.Context, params ListParams) (ListResult[T], error) {
	values := params.Values()
	values.Set("is_deleted", "true")
	return r.list(ctx, r.path, values)
}

func (r *Resource[T]) list(ctx context.Context, path string, query url.Values) (ListResult[T], error) {
	env, err := call[[]T](ctx, r.client, request{method: http.MethodGet, path: path, query: query})
	if err != nil {
		return ListResult[T]{}, err
	}
	return ListResult[T]{Items: env.Data, Meta: env.Meta, Message: env.Message}, nil
}

// Get fetches a single record.
func (r *Resource[T]) Get(ctx context.Context, id string) (T, error) {
	return r.single(ctx, http.MethodGet, r.itemPath(id), nil)
}

// Create posts a new record.
func (r *Resource[T]) Create(ctx context.Context, payload any) (T, error) {
	return r.single(ctx, http.MethodPost, r.path, payload)
}

// Update patches a record.
func (r *Resource[T]) Update(ctx context.Context, id string, payload any) (T, error) {
	return r.single(ctx, http.MethodPatch, r.itemPath(id), payload)
}

// BulkUpdate patches several records with the same payload.
func (r *Resource[T]) BulkUpdate(ctx context.Context, ids []string, payload any) (BulkResult, error) {
	return r.bulk(ctx, http.MethodPatch, r.path+"/bulk", bulkRequest{IDs: ids, Data: payload})
}

// SoftDelete marks a record as deleted; it stays restorable.
func (r *Resource[T]) SoftDelete(ctx context.Context, id string) error {
	_, err := call[any](ctx, r.client, request{method: http.MethodDelete, path: r.itemPath(id)})
	return err
}

// BulkSoftDelete soft deletes several records.
func (r *Resource[T]) BulkSoftDelete(ctx context.Context, ids []string) (BulkResult, error) {
	return r.bulk(ctx, http.MethodDelete, r.path+"/bulk", bulkRequest{IDs: ids})
}

// Restore brings a soft deleted record back.
func (r *Resource[T]) Restore(ctx context.Context, id string) (T, error) {
	return r.single(ctx, http.MethodPost, r.itemPath(id)+"/restore", nil)
}

// PermanentDelete removes a record for good.
func (r *Resource[T]) PermanentDelete(ctx context.Context, id string) error {
	_, err := call[any](ctx, r.client, request{method: http.MethodDelete, path: r.itemPath(id) + "/permanent"})
	return err
}

func (r *Resource[T]) single(ctx context.Context, method, path string, payload any) (T, error) {
	env, err := call[T](ctx, r.client, request{method: method, path: path, payload: payload})
	if err != nil {
		var zero T
		return zero, err
	}
	return env.Data, nil
}

func (r *Resource[T]) bulk(ctx context.Context, method, path string, payload bulkRequest) (BulkResult, error) {
	if len(payload.IDs) == 0 {
		return BulkResult{}, fmt.Errorf("%w: %s %s: ids are required", ErrInvalidRequest, method, path)
	}
	env, err := call[BulkResult](ctx, r.client, request{method: method, path: path, payload: payload})
	if err != nil {
		return BulkResult{}, err
	}
	return env.Data, nil
}

func (r *Resource[T]) itemPath(id string) string {
	return r.path + "/" + url.PathEscape(id)
}
