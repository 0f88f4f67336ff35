package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	core "github.com/goliatone/go-billing-console/components/console"
	"github.com/goliatone/go-billing-console/pkg/config"
)

func testRuntime(t *testing.T, environment map[string]string) (*runtime, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	return &runtime{
		ctx: context.Background(),
		out: &out,
		loadConfig: func() (*config.Config, error) {
			return config.LoadFrom(environment)
		},
	}, &out
}

type usersBackend struct {
	mu      sync.Mutex
	queries []string
}

func (b *usersBackend) serve(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path != "/api/users" {
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "message": "not found"})
			return
		}
		b.mu.Lock()
		b.queries = append(b.queries, r.URL.RawQuery)
		b.mu.Unlock()
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data": []map[string]any{
				{"id": "u1", "name": "Ada", "role": "admin", "status": "active", "is_verified": true},
				{"id": "u2", "name": "Linus", "role": "user", "status": "inactive"},
			},
			"meta": map[string]any{"page": 1, "limit": 2, "total": 6, "totalPage": 3},
		})
	}))
	t.Cleanup(server.Close)
	return server
}

func TestStatsPrintsCardsAndMarksApproximateValues(t *testing.T) {
	backend := &usersBackend{}
	server := backend.serve(t)
	rt, out := testRuntime(t, map[string]string{
		"CONSOLE_API_BASE_URL": server.URL,
		"LOG_LEVEL":            "error",
	})

	cmd := &statsCmd{Page: "users", Filter: map[string]string{"role": "admin"}, Format: "table"}
	require.NoError(t, cmd.Run(rt))

	text := out.String()
	assert.Contains(t, text, "Users")
	assert.Contains(t, text, "Admins")
	assert.Contains(t, text, "≈")
	assert.Contains(t, text, "computed from the visible page only")

	require.NotEmpty(t, backend.queries)
	assert.Contains(t, backend.queries[len(backend.queries)-1], "role=admin")
}

func TestStatsJSONOutput(t *testing.T) {
	server := (&usersBackend{}).serve(t)
	rt, out := testRuntime(t, map[string]string{"CONSOLE_API_BASE_URL": server.URL, "LOG_LEVEL": "error"})

	cmd := &statsCmd{Page: "users", Format: "json"}
	require.NoError(t, cmd.Run(rt))

	var decoded statsOutput
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
	assert.Equal(t, "users", decoded.Page)
	assert.True(t, decoded.Approximate)
	require.NotEmpty(t, decoded.Cards)
	assert.Equal(t, "total", decoded.Cards[0].Key)
	assert.False(t, decoded.Cards[0].Approximate, "the total comes from meta")
}

func TestStatsRejectsUnknownFilter(t *testing.T) {
	server := (&usersBackend{}).serve(t)
	rt, _ := testRuntime(t, map[string]string{"CONSOLE_API_BASE_URL": server.URL, "LOG_LEVEL": "error"})

	cmd := &statsCmd{Page: "users", Filter: map[string]string{"plan": "pro"}, Format: "table"}
	err := cmd.Run(rt)
	require.ErrorIs(t, err, core.ErrUnknownFilter)
}

func TestStatsUnknownPage(t *testing.T) {
	server := (&usersBackend{}).serve(t)
	rt, _ := testRuntime(t, map[string]string{"CONSOLE_API_BASE_URL": server.URL, "LOG_LEVEL": "error"})

	err := (&statsCmd{Page: "ledger", Format: "table"}).Run(rt)
	require.ErrorIs(t, err, core.ErrPageNotFound)
}

func TestPagesListsVisiblePages(t *testing.T) {
	manifest := filepath.Join(t.TempDir(), "console.yaml")
	require.NoError(t, os.WriteFile(manifest, []byte("version: \"1\"\npages:\n  - code: coupons\n    hidden: true\n  - code: users\n    title: Accounts\n"), 0o600))

	rt, out := testRuntime(t, nil)
	cmd := &pagesCmd{Manifest: manifest, APIBaseURL: "http://backend.test", Locale: "en"}
	require.NoError(t, cmd.Run(rt))

	text := out.String()
	assert.Contains(t, text, "credits_usages")
	assert.Contains(t, text, "Accounts")
	assert.NotContains(t, text, "coupons")

	out.Reset()
	cmd.All = true
	require.NoError(t, cmd.Run(rt))
	assert.Contains(t, out.String(), "coupons")
	assert.Equal(t, 23, strings.Count(out.String(), "\n"), "header plus one line per page")
}

func TestScaffoldCreatesAndUpdatesManifest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifests", "console.yaml")
	rt, out := testRuntime(t, nil)

	cmd := &scaffoldCmd{
		Code:           "CreditsUsages",
		ManifestPath:   path,
		Name:           "billing-ops",
		TitleLocalized: map[string]string{"es": "Uso de créditos"},
		Order:          3,
	}
	require.NoError(t, cmd.Run(rt))
	assert.Contains(t, out.String(), "✓ Added credits_usages")

	doc, err := core.ReadManifest(path)
	require.NoError(t, err)
	assert.Equal(t, "billing-ops", doc.Name)
	require.Len(t, doc.Pages, 1)
	page := doc.Pages[0]
	assert.Equal(t, "credits_usages", page.Code)
	assert.Equal(t, "Credits Usages", page.Title)
	assert.Equal(t, "Uso de créditos", page.TitleLocalized["es"])
	require.NotNil(t, page.Order)
	assert.Equal(t, 3, *page.Order)
	assert.Nil(t, page.Hidden)

	err = (&scaffoldCmd{Code: "credits_usages", ManifestPath: path}).Run(rt)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--overwrite")

	require.NoError(t, (&scaffoldCmd{Code: "coupons", ManifestPath: path, Hidden: true}).Run(rt))
	require.NoError(t, (&scaffoldCmd{Code: "credits_usages", ManifestPath: path, Title: "Usage", Overwrite: true}).Run(rt))
	assert.Contains(t, out.String(), "✓ Replaced credits_usages")

	doc, err = core.ReadManifest(path)
	require.NoError(t, err)
	require.Len(t, doc.Pages, 2)
	assert.Equal(t, "coupons", doc.Pages[0].Code)
	require.NotNil(t, doc.Pages[0].Hidden)
	assert.True(t, *doc.Pages[0].Hidden)
	assert.Equal(t, "Usage", doc.Pages[1].Title)
}

func TestScaffoldRejectsUnknownPage(t *testing.T) {
	rt, _ := testRuntime(t, nil)
	err := (&scaffoldCmd{Code: "ledger", ManifestPath: filepath.Join(t.TempDir(), "console.yaml")}).Run(rt)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown page")
}

func TestNewServerMountsConsole(t *testing.T) {
	server := (&usersBackend{}).serve(t)
	cfg, err := config.LoadFrom(map[string]string{"CONSOLE_API_BASE_URL": server.URL, "LOG_LEVEL": "error"})
	require.NoError(t, err)

	app, console, err := newServer(context.Background(), cfg, cfg.NewLogger(&bytes.Buffer{}))
	require.NoError(t, err)
	t.Cleanup(func() { _ = console.Close() })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/admin/api/pages/users/state", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}
