// Package admin assembles the notify-admin console from a loaded config.
package admin

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	router "github.com/goliatone/go-router"
	"go.uber.org/zap"

	core "github.com/goliatone/go-notify-admin/components/admin"
	"github.com/goliatone/go-notify-admin/components/admin/commands"
	"github.com/goliatone/go-notify-admin/components/admin/gorouter"
	"github.com/goliatone/go-notify-admin/components/admin/httpapi"
	"github.com/goliatone/go-notify-admin/pkg/config"
	"github.com/goliatone/go-notify-admin/pkg/metrics"
	"github.com/goliatone/go-notify-admin/pkg/notifyapi"
)

// Service exposes the underlying components/admin.Service type.
type Service = core.Service

// Options re-export for convenience.
type Options = core.Options

// NewService proxies to the internal constructor.
func NewService(opts Options) *Service {
	return core.NewService(opts)
}

// App is a fully wired console: service, pages, JSON API and live events.
type App struct {
	Config     config.Config
	Logger     *zap.Logger
	Service    *Service
	Controller *core.Controller
	API        *httpapi.API
	Broadcast  *core.BroadcastHook
	// Metrics is nil unless metrics.enabled is set.
	Metrics *metrics.Telemetry
}

// New builds the console and loads the dataset.
func New(ctx context.Context, cfg config.Config, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	source, err := NewSource(cfg, logger)
	if err != nil {
		return nil, err
	}
	validator, err := core.NewDatasetValidator()
	if err != nil {
		return nil, fmt.Errorf("admin: compile dataset schema: %w", err)
	}

	app := &App{
		Config:    cfg,
		Logger:    logger,
		Broadcast: core.NewBroadcastHook(),
	}

	var telemetry core.Telemetry
	if cfg.Metrics.Enabled {
		app.Metrics = metrics.New()
		telemetry = app.Metrics
		hook := app.Broadcast
		if err := app.Metrics.Gauge("live_subscribers", "Open change streams (SSE and websocket).", func() float64 {
			return float64(hook.Subscribers())
		}); err != nil {
			return nil, fmt.Errorf("admin: register metrics: %w", err)
		}
	}

	app.Service = core.NewService(core.Options{
		Source:        source,
		Validator:     validator,
		Logger:        logger.Named("admin"),
		Telemetry:     telemetry,
		Hooks:         []core.RecordHook{app.Broadcast},
		BannerTimeout: cfg.UI.BannerTimeout,
		NoticeTimeout: cfg.UI.ToastTimeout,
	})
	if err := app.Service.Reset(ctx); err != nil {
		return nil, fmt.Errorf("admin: load dataset: %w", err)
	}

	renderer, err := core.NewTemplateRenderer()
	if err != nil {
		return nil, fmt.Errorf("admin: load templates: %w", err)
	}
	app.Controller = core.NewController(core.ControllerOptions{
		Service:  app.Service,
		Renderer: renderer,
		Logger:   logger.Named("controller"),
		BasePath: cfg.Server.BasePath,
		Actions:  commands.NewPageActions(app.Service, telemetry),
	})
	app.API = httpapi.New(app.Service, httpapi.Options{
		Telemetry: telemetry,
		Broadcast: app.Broadcast,
	})
	return app, nil
}

// NewSource picks the dataset source named by data.source. The api source
// loads templates, categories and channels through the fetch helpers and
// takes the other collections from the embedded document.
func NewSource(cfg config.Config, logger *zap.Logger) (core.DataSource, error) {
	switch cfg.Data.Source {
	case "", config.SourceEmbedded:
		return core.EmbeddedSource(), nil
	case config.SourceFile:
		if cfg.Data.Path == "" {
			return nil, errors.New("admin: data.path is required for the file source")
		}
		return core.FileSource{Path: cfg.Data.Path}, nil
	case config.SourceAPI:
		client, err := notifyapi.NewHTTPClient(notifyapi.HTTPConfig{
			BaseURL: cfg.API.BaseURL,
			APIKey:  cfg.API.APIKey,
			Timeout: cfg.API.Timeout,
			Logger:  logger.Named("notifyapi"),
		})
		if err != nil {
			return nil, err
		}
		return core.ChainSource{notifyapi.NewSource(client), core.EmbeddedSource()}, nil
	default:
		return nil, fmt.Errorf("admin: unknown data source %q", cfg.Data.Source)
	}
}

// Register mounts the pages, the JSON API and the websocket on r.
func Register[T any](app *App, r router.Router[T]) error {
	if app == nil {
		return errors.New("admin: app is required")
	}
	return gorouter.Register(gorouter.Config[T]{
		Router:     r,
		Controller: app.Controller,
		API:        app.API,
		Broadcast:  app.Broadcast,
		BasePath:   app.Config.Server.BasePath,
	})
}

// OpsHandler serves the JSON API, /api/events and /ws over net/http, plus
// /metrics when metrics are enabled.
func (a *App) OpsHandler() http.Handler {
	api := a.API.Handler()
	if a.Metrics == nil {
		return api
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", a.Metrics.Handler())
	mux.Handle("/", a.Metrics.Middleware(api))
	return mux
}

// OpsServer returns the ops listener configured by metrics.addr.
func (a *App) OpsServer() *http.Server {
	return &http.Server{
		Addr:              a.Config.Metrics.Addr,
		Handler:           a.OpsHandler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
}

// Close drops live subscribers and stops pending banner timers.
func (a *App) Close() {
	if a == nil {
		return
	}
	a.Broadcast.Close()
	if a.Service != nil {
		a.Service.Close()
	}
}
