package console_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	core "github.com/goliatone/go-billing-console/components/console"
	"github.com/goliatone/go-billing-console/pkg/config"
	"github.com/goliatone/go-billing-console/pkg/console"
)

type stubRenderer struct{}

func (stubRenderer) Render(_ string, data any, out ...io.Writer) (string, error) {
	page := data.(map[string]any)["page"].(core.PageView)
	html := "<h1>" + page.Title + "</h1>"
	if len(out) > 0 && out[0] != nil {
		io.WriteString(out[0], html)
	}
	return html, nil
}

func newBackend(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/users":
			_ = json.NewEncoder(w).Encode(map[string]any{
				"success": true,
				"data": []map[string]any{
					{"id": "u1", "name": "Ada", "email": "ada@example.com", "role": "admin", "status": "active"},
					{"id": "u2", "name": "Linus", "email": "linus@example.com", "role": "user", "status": "active"},
				},
				"meta": map[string]any{"page": 1, "limit": 20, "total": 2, "totalPage": 1},
			})
		default:
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "message": "not found"})
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func newApp(t *testing.T, extra map[string]string) *console.App {
	t.Helper()
	backend := newBackend(t)
	environment := map[string]string{"CONSOLE_API_BASE_URL": backend.URL}
	for k, v := range extra {
		environment[k] = v
	}
	cfg, err := config.LoadFrom(environment)
	require.NoError(t, err)
	app, err := console.Build(context.Background(), cfg, console.BuildOptions{Renderer: stubRenderer{}})
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })
	return app
}

func TestBuildWiresEveryPage(t *testing.T) {
	app := newApp(t, nil)
	menu := app.Service.Menu(context.Background(), core.ViewerContext{})
	assert.Len(t, menu, 22)
	assert.NotNil(t, app.Executor)
	assert.NotNil(t, app.Broadcast)
}

func TestBuildRequiresConfig(t *testing.T) {
	_, err := console.Build(context.Background(), nil, console.BuildOptions{})
	require.Error(t, err)
}

func TestBuildAppliesManifest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "console.yaml")
	manifest := "version: \"1\"\npages:\n  - code: users\n    order: 0\n    title: Accounts\n  - code: events\n    hidden: true\n"
	require.NoError(t, os.WriteFile(path, []byte(manifest), 0o600))

	app := newApp(t, map[string]string{"CONSOLE_MANIFEST": path})
	menu := app.Service.Menu(context.Background(), core.ViewerContext{})
	require.Len(t, menu, 21)
	assert.Equal(t, "Accounts", menu[0].Title)
}

func TestMountServesPagesAndAPI(t *testing.T) {
	app := newApp(t, nil)
	router := fiber.New()
	require.NoError(t, app.Mount(router, nil))

	resp, err := router.Test(httptest.NewRequest(http.MethodGet, "/admin/users", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "<h1>Users</h1>", string(body))

	resp, err = router.Test(httptest.NewRequest(http.MethodGet, "/admin/api/pages/users", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var view core.PageView
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&view))
	assert.Len(t, view.Table.Rows, 2)
	assert.True(t, view.Pagination.Exact)

	resp, err = router.Test(httptest.NewRequest(http.MethodGet, "/admin/api/pages/coupons", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode, "backend 4xx statuses pass through")

	resp, err = router.Test(httptest.NewRequest(http.MethodGet, "/admin/", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
}
