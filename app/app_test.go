package app_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/km-arc/go-inject/app"
	"github.com/km-arc/go-inject/framework/container"
)

func boot(t *testing.T, c *container.Container, p *app.AppServiceProvider) {
	t.Helper()
	reg := container.NewProviderRegistry(c)
	require.NoError(t, reg.Register(p))
	require.NoError(t, reg.Boot())
}

func TestUserService_DoSomething_WritesToConsoleLogger(t *testing.T) {
	var out bytes.Buffer
	c := container.New()
	boot(t, c, &app.AppServiceProvider{Out: &out})

	svc, err := container.Resolve[*app.UserService](c)
	require.NoError(t, err)
	svc.DoSomething()

	assert.Equal(t, "Logging: Doing something...\n", out.String())
}

func TestAppServiceProvider_DefaultRegistersConsoleLoggerByType(t *testing.T) {
	c := container.New()
	boot(t, c, &app.AppServiceProvider{})

	logger, err := container.Resolve[app.Logger](c)
	require.NoError(t, err)
	assert.IsType(t, &app.ConsoleLogger{}, logger)
	assert.Nil(t, logger.(*app.ConsoleLogger).Out)
}

func TestAppServiceProvider_UseZap(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	c := container.New()
	container.Register[*zap.Logger](c, func() *zap.Logger { return zap.New(core) })
	boot(t, c, &app.AppServiceProvider{UseZap: true})

	svc, err := container.Resolve[*app.UserService](c)
	require.NoError(t, err)
	svc.DoSomething()

	assert.Equal(t, 1, logs.FilterMessage("Doing something...").Len())
}

func TestAppServiceProvider_UseZap_BootFailsWithoutLogger(t *testing.T) {
	c := container.New()
	reg := container.NewProviderRegistry(c)
	require.NoError(t, reg.Register(&app.AppServiceProvider{UseZap: true}))

	var lookup *container.LookupError
	assert.ErrorAs(t, reg.Boot(), &lookup)
}
