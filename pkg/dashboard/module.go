// Package dashboard assembles the deskboard components into an fx application.
package dashboard

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	core "github.com/goliatone/go-deskboard/components/dashboard"
	"github.com/goliatone/go-deskboard/components/dashboard/commands"
	"github.com/goliatone/go-deskboard/components/dashboard/httpapi"
	"github.com/goliatone/go-deskboard/components/dashboard/scheduler"
	"github.com/goliatone/go-deskboard/pkg/identity"
	"github.com/goliatone/go-deskboard/pkg/news"
	"github.com/goliatone/go-deskboard/pkg/sqlstore"
	"github.com/goliatone/go-deskboard/pkg/tasks"
	"github.com/goliatone/go-deskboard/pkg/weather"
)

// CoreModule provides storage, services, commands and the refresh scheduler.
var CoreModule = fx.Module("deskboard.core",
	fx.Provide(
		NewStore,
		NewTaskService,
		NewSources,
		NewRegistry,
		NewBroadcastHook,
		NewTelemetry,
		NewService,
		NewExecutor,
		NewController,
		NewVerifier,
	),
	fx.Invoke(StartScheduler),
)

// Module is the full application: core plus the HTTP server.
var Module = fx.Options(CoreModule, ServerModule)

// NewStore opens the configured database and migrates it on start.
func NewStore(lc fx.Lifecycle, cfg Config, logger *zap.Logger) (*sqlstore.Store, error) {
	store, err := sqlstore.Open(context.Background(), cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			logger.Info("migrating database", zap.String("driver", cfg.DatabaseDriver))
			return store.Migrate(ctx)
		},
		OnStop: func(context.Context) error {
			return store.Close()
		},
	})
	return store, nil
}

// NewTaskService backs tasks with the SQL store.
func NewTaskService(store *sqlstore.Store, logger *zap.Logger) *tasks.Service {
	return tasks.NewService(tasks.Options{Store: store, Logger: logger.Named("tasks")})
}

// NewSources builds the feed sources. Missing API keys serve demo data.
func NewSources(cfg Config, taskService *tasks.Service, logger *zap.Logger) core.Sources {
	return core.Sources{
		Tasks: taskService,
		Weather: weather.WithFallback(
			weather.NewHTTPClient(weather.HTTPConfig{APIKey: cfg.OpenWeatherAPIKey}),
			logger.Named("weather"),
		),
		News: news.WithFallback(
			news.NewHTTPClient(news.HTTPConfig{APIKey: cfg.GNewsAPIKey}),
			logger.Named("news"),
		),
		Cache: core.NewTTLCache(cfg.FeedTTL),
	}
}

// NewRegistry loads definitions, the optional manifest and the default providers.
func NewRegistry(cfg Config, sources core.Sources) (*core.Registry, error) {
	return core.NewDefaultRegistry(core.BootstrapOptions{
		ManifestPath: cfg.WidgetManifest,
		Sources:      sources,
	})
}

// NewBroadcastHook closes every event stream on stop.
func NewBroadcastHook(lc fx.Lifecycle) *core.BroadcastHook {
	hook := core.NewBroadcastHook()
	lc.Append(fx.StopHook(hook.Close))
	return hook
}

// NewTelemetry writes dashboard events to the application logger.
func NewTelemetry(logger *zap.Logger) *core.ZapTelemetry {
	return core.NewZapTelemetry(logger)
}

// NewService wires the dashboard service.
func NewService(cfg Config, store *sqlstore.Store, registry *core.Registry, hook *core.BroadcastHook, telemetry *core.ZapTelemetry, logger *zap.Logger) *core.Service {
	return core.NewService(core.Options{
		Layouts:     store,
		Providers:   registry,
		RefreshHook: hook,
		Telemetry:   telemetry,
		Columns:     cfg.GridColumns,
		Logger:      logger.Named("dashboard"),
	})
}

// NewExecutor exposes the service through commands and queries.
func NewExecutor(service *core.Service, telemetry *core.ZapTelemetry) *httpapi.CommandExecutor {
	return httpapi.NewCommandExecutor(service, telemetry)
}

// NewController renders the embedded dashboard page.
func NewController(service *core.Service) (*core.Controller, error) {
	renderer, err := core.NewTemplateRenderer()
	if err != nil {
		return nil, err
	}
	return core.NewController(core.ControllerOptions{Service: service, Renderer: renderer}), nil
}

// NewVerifier returns nil when authentication is skipped.
func NewVerifier(cfg Config) (*identity.Verifier, error) {
	if cfg.SkipAuth {
		return nil, nil
	}
	return identity.NewVerifier(cfg.JWTSecret, cfg.JWTIssuer)
}

// StartScheduler runs the feed refresh jobs for the lifetime of the app.
func StartScheduler(lc fx.Lifecycle, service *core.Service, telemetry *core.ZapTelemetry, logger *zap.Logger) error {
	s, err := scheduler.New(scheduler.Options{
		Refresh: commands.NewRefreshTypesCommand(service, telemetry),
		Logger:  logger,
	})
	if err != nil {
		return err
	}
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			s.Start()
			return nil
		},
		OnStop: s.Stop,
	})
	return nil
}
