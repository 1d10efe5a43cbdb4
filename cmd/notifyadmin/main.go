package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/ettle/strcase"
	"github.com/gofiber/fiber/v2"
	router "github.com/goliatone/go-router"
	"go.uber.org/zap"

	core "github.com/goliatone/go-notify-admin/components/admin"
	"github.com/goliatone/go-notify-admin/pkg/admin"
	"github.com/goliatone/go-notify-admin/pkg/config"
	"github.com/goliatone/go-notify-admin/pkg/logging"
)

type Globals struct {
	Config string `type:"path" help:"Explicit config file (yaml). Defaults to config.yaml in . and ./configs."`
	Env    string `help:"Config overlay to merge (config.<env>.yaml)." env:"NOTIFY_ADMIN_ENVIRONMENT"`
}

type cli struct {
	Globals

	Serve    serveCmd    `cmd:"" default:"withargs" help:"Run the admin console."`
	Validate validateCmd `cmd:"" help:"Validate a dataset file against the seed schema."`
	Export   exportCmd   `cmd:"" help:"Write the loaded dataset as yaml or json."`
}

func main() {
	var c cli
	ctx := kong.Parse(&c,
		kong.Name("notifyadmin"),
		kong.Description("Admin console for the notification platform."),
		kong.UsageOnError(),
		kong.BindTo(context.Background(), (*context.Context)(nil)),
	)
	err := ctx.Run(&c.Globals)
	ctx.FatalIfErrorf(err)
}

func (g *Globals) load() (config.Config, *zap.Logger, error) {
	cfg, err := config.Load(config.Options{
		File:        g.Config,
		Environment: g.Env,
		EnvFiles:    config.DefaultEnvFiles(),
	})
	if err != nil {
		return config.Config{}, nil, err
	}
	logger, err := logging.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("notifyadmin: build logger: %w", err)
	}
	return cfg, logger, nil
}

type serveCmd struct {
	Addr string `help:"Override server.addr."`
}

func (cmd *serveCmd) Run(parent context.Context, g *Globals) error {
	cfg, logger, err := g.load()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()
	if cmd.Addr != "" {
		cfg.Server.Addr = cmd.Addr
	}

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := admin.New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer app.Close()

	server := router.NewFiberAdapter()
	if err := admin.Register[*fiber.App](app, server.Router()); err != nil {
		return fmt.Errorf("notifyadmin: register routes: %w", err)
	}

	errs := make(chan error, 2)
	var ops *http.Server
	if cfg.Metrics.Enabled {
		ops = app.OpsServer()
		go func() {
			logger.Info("ops listener ready", zap.String("addr", ops.Addr))
			if err := ops.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errs <- fmt.Errorf("notifyadmin: ops server: %w", err)
			}
		}()
	}
	go func() {
		logger.Info("admin console ready",
			zap.String("addr", cfg.Server.Addr),
			zap.String("base_path", cfg.Server.BasePath),
			zap.String("data_source", cfg.Data.Source),
		)
		if err := server.Serve(cfg.Server.Addr); err != nil {
			errs <- fmt.Errorf("notifyadmin: server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
	case err = <-errs:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if ops != nil {
		_ = ops.Shutdown(shutdownCtx)
	}
	if shutdownErr := server.Shutdown(shutdownCtx); shutdownErr != nil {
		logger.Warn("server shutdown", zap.Error(shutdownErr))
	}
	return err
}

type validateCmd struct {
	Path string `arg:"" type:"existingfile" help:"Dataset file (json or yaml)."`
}

func (cmd *validateCmd) Run(g *Globals) error {
	return runValidate(os.Stdout, cmd.Path)
}

func runValidate(out io.Writer, path string) error {
	ds, raw, err := core.ReadDatasetFile(path)
	if err != nil {
		return err
	}
	validator, err := core.NewDatasetValidator()
	if err != nil {
		return err
	}
	if err := validator.ValidateDocument(raw); err != nil {
		return fmt.Errorf("notifyadmin: %s: %w", path, err)
	}
	counts := ds.Counts()
	parts := make([]string, 0, len(counts))
	for _, name := range core.CollectionNames() {
		parts = append(parts, fmt.Sprintf("%s=%d", name, counts[name]))
	}
	fmt.Fprintf(out, "✓ %s is valid (%s)\n", path, strings.Join(parts, ", "))
	return nil
}

type exportCmd struct {
	Format string `enum:"yaml,json" default:"yaml" help:"Output format (yaml or json)."`
	Out    string `type:"path" help:"Output file or directory. Defaults to stdout."`
	Name   string `default:"Notify Admin Dataset" help:"Dataset name used for the generated file name."`
}

func (cmd *exportCmd) Run(parent context.Context, g *Globals) error {
	cfg, logger, err := g.load()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()
	app, err := admin.New(parent, cfg, logger)
	if err != nil {
		return err
	}
	defer app.Close()
	return runExport(app.Service.Export(), cmd.Format, cmd.Out, cmd.Name, os.Stdout)
}

func runExport(ds core.Dataset, format, out, name string, stdout io.Writer) error {
	if out == "" {
		return core.WriteDataset(stdout, ds, format)
	}
	path := out
	if info, err := os.Stat(out); err == nil && info.IsDir() {
		path = filepath.Join(out, exportFileName(name, format))
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("notifyadmin: mkdir %s: %w", filepath.Dir(path), err)
	}
	file, err := os.Create(path) //nolint:gosec
	if err != nil {
		return fmt.Errorf("notifyadmin: create %s: %w", path, err)
	}
	defer file.Close()
	if err := core.WriteDataset(file, ds, format); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "✓ Wrote %s\n", path)
	return nil
}

// exportFileName turns a dataset name into e.g. notify_admin_dataset.yaml.
func exportFileName(name, format string) string {
	base := strcase.ToSnake(strings.TrimSpace(name))
	if base == "" {
		base = "dataset"
	}
	return base + "." + format
}
