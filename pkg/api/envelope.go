package api

import (
	"encoding/json"
	"net/url"
	"strconv"
	"strings"
)

// Envelope is the response body shape returned by every backend endpoint.
type Envelope[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    T      `json:"data"`
	Meta    *Meta  `json:"meta,omitempty"`
}

// Meta carries pagination details and optional server-side aggregates.
type Meta struct {
	Page       int        `json:"page"`
	Limit      int        `json:"limit"`
	Total      *int       `json:"total,omitempty"`
	TotalPage  int        `json:"totalPage"`
	Statistics Statistics `json:"statistics,omitempty"`
}

// TotalOr returns meta.total when the server supplied it, otherwise fallback.
func (m *Meta) TotalOr(fallback int) int {
	if m == nil || m.Total == nil {
		return fallback
	}
	return *m.Total
}

// Paginated reports whether the list spans more than the visible page.
func (m *Meta) Paginated(visible int) bool {
	if m == nil {
		return false
	}
	if m.TotalPage > 1 {
		return true
	}
	return m.Total != nil && *m.Total > visible
}

// Statistics holds server computed aggregates keyed by field name.
type Statistics map[string]any

// Number returns a numeric aggregate when present.
func (s Statistics) Number(key string) (float64, bool) {
	if s == nil {
		return 0, false
	}
	return toFloat(s[key])
}

// Breakdown returns a map aggregate (e.g. counts grouped by status).
func (s Statistics) Breakdown(key string) (map[string]float64, bool) {
	if s == nil {
		return nil, false
	}
	raw, ok := s[key].(map[string]any)
	if !ok || len(raw) == 0 {
		return nil, false
	}
	out := make(map[string]float64, len(raw))
	for k, v := range raw {
		if f, ok := toFloat(v); ok {
			out[k] = f
		}
	}
	return out, len(out) > 0
}

func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil
	}
	return 0, false
}

// ListParams are forwarded as query parameters on list endpoints.
type ListParams struct {
	Page      int
	Limit     int
	Search    string
	SortBy    string
	SortOrder string
	Filters   map[string]string
}

// Values encodes the params; empty values are omitted.
func (p ListParams) Values() url.Values {
	values := url.Values{}
	if p.Page > 0 {
		values.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		values.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Search != "" {
		values.Set("search", p.Search)
	}
	if p.SortBy != "" {
		values.Set("sort_by", p.SortBy)
	}
	if p.SortOrder != "" {
		values.Set("sort_order", p.SortOrder)
	}
	for key, value := range p.Filters {
		if key == "" || value == "" {
			continue
		}
		values.Set(key, value)
	}
	return values
}

// ListResult is a decoded list response.
type ListResult[T any] struct {
	Items   []T
	Meta    *Meta
	Message string
}

// BulkResult is returned by bulk mutations.
type BulkResult struct {
	Affected int      `json:"affected"`
	IDs      []string `json:"ids,omitempty"`
}

type bulkRequest struct {
	IDs  []string `json:"ids"`
	Data any      `json:"data,omitempty"`
}
