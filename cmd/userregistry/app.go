package main

import (
	"context"
	"fmt"
	"log/slog"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"github.com/toyz/userregistry/internal/api"
	"github.com/toyz/userregistry/internal/config"
	"github.com/toyz/userregistry/internal/controllers"
	"github.com/toyz/userregistry/internal/logging"
	"github.com/toyz/userregistry/internal/metrics"
	"github.com/toyz/userregistry/internal/middleware"
	"github.com/toyz/userregistry/internal/registry"
	"github.com/toyz/userregistry/pkg/web"
	"github.com/toyz/userregistry/pkg/web/adapters"
)

// coreModule provides the registry stack shared by the server and the shell
func coreModule(cfg *config.Config) fx.Option {
	return fx.Module("core",
		fx.Supply(cfg),
		fx.Provide(
			logging.New,
			metrics.New,
			newRegistry,
			func(reg *registry.UserRegistry) *api.API { return api.New(reg) },
		),
	)
}

// serverModule adds the HTTP surface and its lifecycle
func serverModule() fx.Option {
	return fx.Module("server",
		fx.Provide(newWebServer, web.RecordRoutes, newUserController),
		fx.Invoke(registerRoutes, startServer, startMetricsServer),
	)
}

func fxLogger() fx.Option {
	return fx.WithLogger(func(l *logging.AppLogger) fxevent.Logger {
		fl := &fxevent.SlogLogger{Logger: l.Logger().With("component", "fx")}
		fl.UseLogLevel(slog.LevelDebug)
		return fl
	})
}

func newRegistry(cfg *config.Config, logger *logging.AppLogger, m *metrics.Metrics) *registry.UserRegistry {
	reg := registry.New(
		registry.WithLogger(logger.Logger().With("component", "registry")),
		registry.WithObserver(m),
	)
	for _, u := range cfg.Seed {
		reg.Insert(u)
	}
	if len(cfg.Seed) > 0 {
		logger.Info("seeded users", "count", len(cfg.Seed))
	}
	return reg
}

func newWebServer(cfg *config.Config) (web.WebServerInterface, error) {
	switch cfg.Adapter {
	case "echo":
		return adapters.NewDefaultEchoAdapter(), nil
	case "gin":
		return adapters.NewDefaultGinAdapter(), nil
	case "fiber":
		return adapters.NewDefaultFiberAdapter(), nil
	default:
		return nil, fmt.Errorf("unknown adapter %q", cfg.Adapter)
	}
}

func newUserController(cfg *config.Config, a *api.API) *controllers.UserController {
	return controllers.NewUserController(a, cfg.DefaultPageLimit, cfg.MaxPageLimit)
}

func registerRoutes(routes *web.RouteRecorder, c *controllers.UserController, logger *logging.AppLogger, m *metrics.Metrics) {
	routes.Use(middleware.Logging(logger.Logger().With("component", "http")))
	routes.Use(middleware.Metrics(m))
	c.RegisterRoutes(routes)
	for _, r := range routes.GetAllRoutes() {
		logger.Debug("registered route", "method", r.Method, "path", r.Path.Raw())
	}
}

func startServer(lc fx.Lifecycle, sd fx.Shutdowner, server web.WebServerInterface, cfg *config.Config, logger *logging.AppLogger) {
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			logger.Info("starting server", "adapter", server.Name(), "addr", cfg.Address())
			go func() {
				if err := server.Start(cfg.Address()); err != nil {
					logger.Error("server stopped", "error", err)
					_ = sd.Shutdown(fx.ExitCode(1))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("stopping server", "adapter", server.Name())
			return server.Stop(ctx)
		},
	})
}

func startMetricsServer(lc fx.Lifecycle, sd fx.Shutdowner, cfg *config.Config, m *metrics.Metrics, logger *logging.AppLogger) {
	if cfg.MetricsAddr == "" {
		return
	}
	srv := metrics.NewServer(cfg.MetricsAddr, m)
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			logger.Info("serving metrics", "addr", cfg.MetricsAddr)
			go func() {
				if err := srv.Start(); err != nil {
					logger.Error("metrics server stopped", "error", err)
					_ = sd.Shutdown(fx.ExitCode(1))
				}
			}()
			return nil
		},
		OnStop: srv.Stop,
	})
}
