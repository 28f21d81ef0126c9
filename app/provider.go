package app

import (
	"io"
	"reflect"

	"github.com/km-arc/go-inject/framework/container"
)

// AppServiceProvider registers the example services.
//
// Bound contracts:
//   - Logger        → *ConsoleLogger, or *ZapLogger when UseZap is set
//   - *UserService  → NewUserService
type AppServiceProvider struct {
	container.BaseProvider

	// Out redirects ConsoleLogger output. Nil means stdout.
	Out io.Writer
	// UseZap logs through the application's *zap.Logger instead.
	UseZap bool
}

func (p *AppServiceProvider) Register(app *container.Container) {
	switch {
	case p.UseZap:
		container.Register[Logger](app, NewZapLogger)
	case p.Out != nil:
		out := p.Out
		container.Register[Logger](app, func() *ConsoleLogger { return &ConsoleLogger{Out: out} })
	default:
		container.Register[Logger](app, reflect.TypeFor[*ConsoleLogger]())
	}
	container.Register[*UserService](app, NewUserService)
}

// Boot fails fast if UserService cannot be wired.
func (p *AppServiceProvider) Boot(app *container.Container) error {
	_, err := container.Resolve[*UserService](app)
	return err
}
