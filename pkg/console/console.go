// Package console assembles a ready to mount billing console from configuration.
package console

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	core "github.com/goliatone/go-billing-console/components/console"
	"github.com/goliatone/go-billing-console/components/console/fiberapi"
	"github.com/goliatone/go-billing-console/components/console/httpapi"
	"github.com/goliatone/go-billing-console/pkg/api"
	"github.com/goliatone/go-billing-console/pkg/config"
	"github.com/goliatone/go-billing-console/pkg/redisstate"
)

// Service exposes the underlying components/console.Service type.
type Service = core.Service

// Options re-export for convenience.
type Options = core.Options

// NewService proxies to the internal constructor.
func NewService(opts Options) *Service {
	return core.NewService(opts)
}

// App bundles the wired console parts.
type App struct {
	Config     *config.Config
	Client     *api.Client
	Service    *Service
	Controller *core.Controller
	Executor   *httpapi.CommandExecutor
	Broadcast  *core.BroadcastHook
	Logger     *slog.Logger

	closers []func() error
}

// BuildOptions overrides parts Build would otherwise create.
type BuildOptions struct {
	Logger     *slog.Logger
	Renderer   core.Renderer
	StateStore core.StateStore
	Translator core.TranslationService
}

// Build wires the REST client, pages, state store, charts and transports.
func Build(ctx context.Context, cfg *config.Config, opts BuildOptions) (*App, error) {
	if cfg == nil {
		return nil, errors.New("console: config is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	app := &App{Config: cfg, Logger: logger}

	client, err := api.New(api.Config{
		BaseURL:           cfg.APIBaseURL,
		Token:             cfg.APIToken,
		Timeout:           cfg.APITimeout,
		RequestsPerSecond: cfg.APIRPS,
		Burst:             cfg.APIBurst,
		Logger:            logger,
	})
	if err != nil {
		return nil, err
	}
	app.Client = client

	registry, err := core.NewRegistry(core.DefaultPages(client)...)
	if err != nil {
		return nil, err
	}
	if cfg.Manifest != "" {
		doc, err := registry.LoadManifestFile(cfg.Manifest)
		if err != nil {
			return nil, err
		}
		logger.Info("console manifest applied", slog.String("source", doc.Source), slog.Int("pages", len(doc.Pages)))
	}

	store := opts.StateStore
	if store == nil {
		store, err = app.stateStore(ctx)
		if err != nil {
			return nil, err
		}
	}

	chartOpts := []core.ChartRendererOption{core.WithChartAssetsHost(cfg.ChartAssetsHost)}
	if cfg.ChartCacheTTL > 0 {
		chartOpts = append(chartOpts, core.WithChartCache(core.NewChartCache(cfg.ChartCacheTTL)))
	}

	app.Broadcast = core.NewBroadcastHook()
	telemetry := core.NewLogTelemetry(logger)
	app.Service = core.NewService(core.Options{
		Registry:      registry,
		StateStore:    store,
		RefreshHook:   app.Broadcast,
		Telemetry:     telemetry,
		Charts:        core.NewChartRenderer(chartOpts...),
		Translator:    opts.Translator,
		Currency:      cfg.Currency,
		DefaultLocale: cfg.DefaultLocale,
	})

	renderer := opts.Renderer
	if renderer == nil {
		renderer, err = core.NewTemplateRenderer()
		if err != nil {
			return nil, fmt.Errorf("console: template renderer: %w", err)
		}
	}
	app.Controller = core.NewController(core.ControllerOptions{
		Service:  app.Service,
		Renderer: renderer,
		BasePath: cfg.BasePath,
	})
	app.Executor = httpapi.NewCommandExecutor(app.Service, telemetry)
	return app, nil
}

func (a *App) stateStore(ctx context.Context) (core.StateStore, error) {
	if !a.Config.UsesRedis() {
		return core.NewInMemoryStateStore(), nil
	}
	store, err := redisstate.New(ctx, a.Config.RedisURL, a.Config.StateTTL)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, store.Close)
	a.Logger.Info("connected to Redis", slog.String("component", "console.state"))
	return store, nil
}

// Mount registers the console routes on router.
func (a *App) Mount(router fiber.Router, resolver fiberapi.ViewerResolver) error {
	defaultPage := ""
	if menu := a.Service.Menu(context.Background(), core.ViewerContext{Locale: a.Config.DefaultLocale}); len(menu) > 0 {
		defaultPage = menu[0].Code
	}
	return fiberapi.Register(fiberapi.Config{
		Router:         router,
		Controller:     a.Controller,
		API:            a.Executor,
		Broadcast:      a.Broadcast,
		ViewerResolver: resolver,
		BasePath:       a.Config.BasePath,
		DefaultPage:    defaultPage,
		KeepAlive:      a.Config.SSEKeepAlive,
	})
}

// Close releases external connections.
func (a *App) Close() error {
	var errs []error
	for _, closer := range a.closers {
		errs = append(errs, closer())
	}
	return errors.Join(errs...)
}
