package providers

import (
	"go.uber.org/zap"

	"github.com/km-arc/go-inject/framework/config"
	"github.com/km-arc/go-inject/framework/container"
	"github.com/km-arc/go-inject/framework/logging"
	"github.com/km-arc/go-inject/framework/metrics"
	"github.com/km-arc/go-inject/framework/routing"
)

// ── ConfigServiceProvider ─────────────────────────────────────────────────────

// ConfigServiceProvider loads and validates the configuration once, at
// registration, and binds it. An invalid configuration fails every
// resolution that needs it.
//
// Bound contracts:
//   - *config.Config
type ConfigServiceProvider struct {
	container.BaseProvider
	EnvFiles []string
}

func (p *ConfigServiceProvider) Register(app *container.Container) {
	cfg := config.Load(p.EnvFiles...)
	err := cfg.Validate()
	container.Register[*config.Config](app, func() (*config.Config, error) {
		if err != nil {
			return nil, err
		}
		return cfg, nil
	})
}

// ── LoggingServiceProvider ────────────────────────────────────────────────────

// LoggingServiceProvider binds the zap logger built from the "Log" section
// of the configuration.
//
// Bound contracts:
//   - *zap.Logger  (requires *config.Config)
type LoggingServiceProvider struct {
	container.BaseProvider
}

func (p *LoggingServiceProvider) Register(app *container.Container) {
	container.Register[*zap.Logger](app, newLogger)
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	return logging.New(cfg.Log, cfg.App.Env)
}

// ── RoutingServiceProvider ────────────────────────────────────────────────────

// RoutingServiceProvider registers the HTTP router.
//
// Bound contracts:
//   - *routing.Router  (requires *zap.Logger)
type RoutingServiceProvider struct {
	container.BaseProvider
}

func (p *RoutingServiceProvider) Register(app *container.Container) {
	container.Register[*routing.Router](app, routing.New)
}

// ── MetricsServiceProvider ────────────────────────────────────────────────────

// MetricsServiceProvider binds the collector the container reports its
// resolutions to.
//
// Bound contracts:
//   - *metrics.Collector
type MetricsServiceProvider struct {
	container.BaseProvider
	Collector *metrics.Collector
}

func (p *MetricsServiceProvider) Register(app *container.Container) {
	collector := p.Collector
	container.Register[*metrics.Collector](app, func() *metrics.Collector { return collector })
}
