package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/km-arc/go-inject/framework/config"
	"github.com/km-arc/go-inject/framework/container"
	gohttp "github.com/km-arc/go-inject/framework/http"
	"github.com/km-arc/go-inject/framework/metrics"
	"github.com/km-arc/go-inject/framework/providers"
	"github.com/km-arc/go-inject/framework/routing"
)

const shutdownTimeout = 5 * time.Second

// Application is the top-level application container.
// It embeds the Container and ProviderRegistry so user code can call
// app.Register(), app.Resolve() directly.
type Application struct {
	*container.Container
	Providers *container.ProviderRegistry
}

// New creates the application and registers the framework core providers.
// Every resolution is reported to a metrics.Collector bound as
// *metrics.Collector.
func New(envFiles ...string) *Application {
	collector := metrics.New("goinject")
	c := container.New(container.WithObserver(collector))
	registry := container.NewProviderRegistry(c)

	app := &Application{
		Container: c,
		Providers: registry,
	}

	// Not booted yet, so these cannot fail.
	_ = registry.Register(&providers.ConfigServiceProvider{EnvFiles: envFiles})
	_ = registry.Register(&providers.LoggingServiceProvider{})
	_ = registry.Register(&providers.RoutingServiceProvider{})
	_ = registry.Register(&providers.MetricsServiceProvider{Collector: collector})

	return app
}

// Register adds a ServiceProvider to the application.
func (a *Application) Register(provider container.ServiceProvider) error {
	return a.Providers.Register(provider)
}

// Boot runs the Boot() phase on all providers.
func (a *Application) Boot() error {
	return a.Providers.Boot()
}

// Config resolves *config.Config from the container.
func (a *Application) Config() (*config.Config, error) {
	return container.Resolve[*config.Config](a.Container)
}

// Logger resolves a new *zap.Logger from the container.
func (a *Application) Logger() (*zap.Logger, error) {
	return container.Resolve[*zap.Logger](a.Container)
}

// Router resolves a new *routing.Router from the container.
func (a *Application) Router() (*routing.Router, error) {
	return container.Resolve[*routing.Router](a.Container)
}

// Metrics resolves the *metrics.Collector from the container.
func (a *Application) Metrics() (*metrics.Collector, error) {
	return container.Resolve[*metrics.Collector](a.Container)
}

// Handler boots the application if needed and returns its router, with the
// metrics endpoint and the container inspector mounted when enabled.
func (a *Application) Handler() (http.Handler, error) {
	router, err := a.handler()
	if err != nil {
		return nil, err
	}
	return router, nil
}

func (a *Application) handler() (*routing.Router, error) {
	if !a.Providers.Booted() {
		if err := a.Boot(); err != nil {
			return nil, fmt.Errorf("boot application: %w", err)
		}
	}
	cfg, err := a.Config()
	if err != nil {
		return nil, err
	}
	router, err := a.Router()
	if err != nil {
		return nil, err
	}
	if cfg.Metrics.Enabled {
		collector, err := a.Metrics()
		if err != nil {
			return nil, err
		}
		router.Middleware(collector.Middleware)
		router.Get(cfg.Metrics.Path, collector.Handler().ServeHTTP)
	}
	if cfg.Inspector.Enabled {
		router.Prefix(cfg.Inspector.Prefix, gohttp.NewInspector(a.Container).Routes)
	}
	return router, nil
}

// Run serves Handler() on APP_PORT until ctx is cancelled, then shuts the
// server down gracefully. Server events go to the router's logger, which
// is flushed on return.
func (a *Application) Run(ctx context.Context) error {
	router, err := a.handler()
	if err != nil {
		return err
	}
	cfg, err := a.Config()
	if err != nil {
		return err
	}
	logger := router.Logger()
	defer func() { _ = logger.Sync() }()

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting",
			zap.String("app", cfg.App.Name),
			zap.String("env", cfg.App.Env),
			zap.String("addr", srv.Addr),
		)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	logger.Info("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
