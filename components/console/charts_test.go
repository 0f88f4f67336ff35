package console

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-billing-console/pkg/api"
)

func TestChartSpecPrefersServerBreakdown(t *testing.T) {
	spec := ChartSpec[api.PaymentTransaction]{
		Kind: ChartPie, Key: "by_status",
		Group: func(p api.PaymentTransaction) string { return p.Status },
	}
	meta := &api.Meta{TotalPage: 4, Statistics: api.Statistics{
		"by_status": map[string]any{"completed": 90, "failed": 10},
	}}
	points, source, approximate := spec.Points([]api.PaymentTransaction{{Status: "pending"}}, meta)
	assert.Equal(t, "server", source)
	assert.False(t, approximate)
	assert.Equal(t, []ChartPoint{{Label: "completed", Value: 90}, {Label: "failed", Value: 10}}, points)
}

func TestChartSpecGroupsVisiblePage(t *testing.T) {
	spec := ChartSpec[api.CreditsUsage]{
		Key:   "credits_by_model",
		Group: func(u api.CreditsUsage) string { return u.ModelName },
		Value: func(u api.CreditsUsage) float64 { return u.Credits },
	}
	items := []api.CreditsUsage{
		{ModelName: "gpt-4o", Credits: 3},
		{ModelName: "claude", Credits: 5},
		{ModelName: "gpt-4o", Credits: 4},
		{ModelName: " ", Credits: 1},
	}
	points, source, approximate := spec.Points(items, &api.Meta{TotalPage: 2})
	assert.Equal(t, "page", source)
	assert.True(t, approximate)
	assert.Equal(t, []ChartPoint{
		{Label: "gpt-4o", Value: 7},
		{Label: "claude", Value: 5},
		{Label: "unknown", Value: 1},
	}, points)
}

func TestChartSpecRenderSkipsEmptyData(t *testing.T) {
	spec := ChartSpec[api.User]{Title: "Users by role", Group: func(u api.User) string { return u.Role }}
	view, err := spec.Render(NewChartRenderer(), "users", nil, nil, ViewerContext{})
	require.NoError(t, err)
	assert.Equal(t, ChartBar, view.Kind)
	assert.Empty(t, view.HTML)
}

func TestChartRendererKinds(t *testing.T) {
	renderer := NewChartRenderer(WithChartAssetsHost("https://cdn.example.com/echarts/"))
	points := []ChartPoint{{Label: "a", Value: 1}, {Label: "b", Value: 2}}
	for _, kind := range []string{ChartBar, ChartLine, ChartPie, "PIE"} {
		html, err := renderer.Render("coupons", kind, "Breakdown", points, ViewerContext{})
		require.NoError(t, err, kind)
		assert.Contains(t, html, "echarts", kind)
	}
	_, err := renderer.Render("coupons", "radar", "Breakdown", points, ViewerContext{})
	require.Error(t, err)
}

func TestChartRendererThemeResolver(t *testing.T) {
	renderer := NewChartRenderer(
		WithChartTheme("vintage"),
		WithChartThemeResolver(func(v ViewerContext) string {
			if v.UserID == "night-owl" {
				return "dark"
			}
			return ""
		}),
	)
	assert.Equal(t, "dark", renderer.resolveTheme(ViewerContext{UserID: "night-owl"}))
	assert.Equal(t, "vintage", renderer.resolveTheme(ViewerContext{UserID: "someone"}))
}

type countingCache struct {
	keys []string
}

func (c *countingCache) GetOrRender(key string, render func() (string, error)) (string, error) {
	c.keys = append(c.keys, key)
	return render()
}

func TestChartRendererCacheKeyIncludesData(t *testing.T) {
	cache := &countingCache{}
	renderer := NewChartRenderer(WithChartCache(cache))
	_, err := renderer.Render("users", ChartPie, "Roles", []ChartPoint{{Label: "a", Value: 1}}, ViewerContext{})
	require.NoError(t, err)
	_, err = renderer.Render("users", ChartPie, "Roles", []ChartPoint{{Label: "a", Value: 2}}, ViewerContext{})
	require.NoError(t, err)
	require.Len(t, cache.keys, 2)
	assert.NotEqual(t, cache.keys[0], cache.keys[1])
	assert.True(t, strings.HasPrefix(cache.keys[0], "users:pie:"))
}

func TestChartCacheStoresEntry(t *testing.T) {
	cache := NewChartCache(time.Minute)
	calls := 0
	render := func() (string, error) {
		calls++
		return "html", nil
	}
	first, err := cache.GetOrRender("key", render)
	require.NoError(t, err)
	second, err := cache.GetOrRender("key", render)
	require.NoError(t, err)
	assert.Equal(t, "html", first)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, calls)
}

func TestChartCacheExpires(t *testing.T) {
	cache := NewChartCache(2 * time.Millisecond)
	calls := 0
	render := func() (string, error) {
		calls++
		return "fresh", nil
	}
	_, err := cache.GetOrRender("key", render)
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)
	_, err = cache.GetOrRender("key", render)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestChartCachePurgeAndErrors(t *testing.T) {
	cache := NewChartCache(time.Minute)
	calls := 0
	render := func() (string, error) {
		calls++
		return "html", nil
	}
	_, _ = cache.GetOrRender("users:pie:1", render)
	_, _ = cache.GetOrRender("coupons:bar:1", render)
	cache.Purge("users:")
	_, _ = cache.GetOrRender("users:pie:1", render)
	_, _ = cache.GetOrRender("coupons:bar:1", render)
	assert.Equal(t, 3, calls)

	_, err := cache.GetOrRender("broken", func() (string, error) { return "", errors.New("render failed") })
	require.Error(t, err)
}

func TestChartRendererInvalidatePurgesOnlyThatPage(t *testing.T) {
	cache := NewChartCache(time.Minute)
	renderer := NewChartRenderer(WithChartCache(cache))
	calls := 0
	render := func() (string, error) {
		calls++
		return "html", nil
	}
	_, _ = cache.GetOrRender("users:pie:light:1", render)
	_, _ = cache.GetOrRender("users_roles:pie:light:1", render)
	renderer.Invalidate("users")
	_, _ = cache.GetOrRender("users:pie:light:1", render)
	_, _ = cache.GetOrRender("users_roles:pie:light:1", render)
	assert.Equal(t, 3, calls)

	var missing *ChartRenderer
	missing.Invalidate("users")
	NewChartRenderer(WithChartCache(&countingCache{})).Invalidate("users")
}

func TestBroadcastHookSubscribe(t *testing.T) {
	hook := NewBroadcastHook()
	ch, cancel := hook.Subscribe()
	assert.Equal(t, 1, hook.Subscribers())

	event := ResourceEvent{Page: "coupons", Action: MutationUpdate, IDs: []string{"c1"}}
	require.NoError(t, hook.ResourceChanged(context.Background(), event))
	select {
	case got := <-ch:
		assert.Equal(t, event, got)
	default:
		t.Fatalf("expected event to be delivered")
	}

	cancel()
	cancel()
	assert.Equal(t, 0, hook.Subscribers())
	_, open := <-ch
	assert.False(t, open)
}

func TestBroadcastHookDropsForSlowSubscribers(t *testing.T) {
	hook := NewBroadcastHook()
	_, cancel := hook.Subscribe()
	defer cancel()
	for i := 0; i < 20; i++ {
		require.NoError(t, hook.ResourceChanged(context.Background(), ResourceEvent{Page: "users"}))
	}
}

func TestLogTelemetryWritesAttributes(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	NewLogTelemetry(logger).Record(context.Background(), "console.mutation", map[string]any{
		"page":     "coupons",
		"affected": 2,
	})
	out := buf.String()
	assert.Contains(t, out, `"msg":"console.mutation"`)
	assert.Contains(t, out, `"component":"console"`)
	assert.Contains(t, out, `"page":"coupons"`)
	assert.Contains(t, out, `"affected":2`)
}
