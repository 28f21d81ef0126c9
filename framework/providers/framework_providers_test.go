package providers_test

import (
	"reflect"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/km-arc/go-inject/framework/config"
	"github.com/km-arc/go-inject/framework/container"
	"github.com/km-arc/go-inject/framework/metrics"
	"github.com/km-arc/go-inject/framework/providers"
	"github.com/km-arc/go-inject/framework/routing"
)

func registerAll(t *testing.T) *container.Container {
	t.Helper()
	c := container.New()
	reg := container.NewProviderRegistry(c)
	require.NoError(t, reg.Register(&providers.ConfigServiceProvider{EnvFiles: []string{"testdata/missing.env"}}))
	require.NoError(t, reg.Register(&providers.LoggingServiceProvider{}))
	require.NoError(t, reg.Register(&providers.RoutingServiceProvider{}))
	require.NoError(t, reg.Boot())
	return c
}

func TestConfigServiceProvider_SameConfigEveryResolve(t *testing.T) {
	c := registerAll(t)

	first, err := container.Resolve[*config.Config](c)
	require.NoError(t, err)
	second, err := container.Resolve[*config.Config](c)
	require.NoError(t, err)

	// the constructor closes over one loaded config
	assert.Same(t, first, second)
}

func TestLoggingServiceProvider_ResolvesFromConfig(t *testing.T) {
	t.Setenv("LOG_LEVEL", "error")
	c := registerAll(t)

	logger, err := container.Resolve[*zap.Logger](c)
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zap.WarnLevel))
}

func TestConfigServiceProvider_InvalidConfigFailsDependents(t *testing.T) {
	t.Setenv("LOG_LEVEL", "shouty")
	c := registerAll(t)

	_, err := container.Resolve[*zap.Logger](c)

	var construction *container.ConstructionError
	require.ErrorAs(t, err, &construction)
	assert.Equal(t, reflect.TypeFor[*config.Config](), construction.Contract)

	var fields validator.ValidationErrors
	assert.ErrorAs(t, err, &fields)
}

func TestMetricsServiceProvider_BindsGivenCollector(t *testing.T) {
	collector := metrics.New("test")
	c := container.New()
	reg := container.NewProviderRegistry(c)
	require.NoError(t, reg.Register(&providers.MetricsServiceProvider{Collector: collector}))

	got, err := container.Resolve[*metrics.Collector](c)
	require.NoError(t, err)
	assert.Same(t, collector, got)
}

func TestRoutingServiceProvider_RouterWiredWithLogger(t *testing.T) {
	c := registerAll(t)

	router, err := container.Resolve[*routing.Router](c)
	require.NoError(t, err)
	assert.NotNil(t, router)
	assert.NoError(t, c.Validate())
}
