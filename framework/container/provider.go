package container

import (
	"fmt"
	"reflect"
	"sync"
	"sync/atomic"
)

// ── ServiceProvider interface ─────────────────────────────────────────────────

// ServiceProvider groups related registrations.
//
// Register is called when the provider is added (or, for deferred
// providers, when one of its contracts is first resolved). Boot runs after
// every eager provider has registered, so it may resolve anything.
//
//	type AppServiceProvider struct{ container.BaseProvider }
//
//	func (p *AppServiceProvider) Register(app *container.Container) {
//	    container.Register[Logger](app, NewZapLogger)
//	}
type ServiceProvider interface {
	// Register adds registrations to the container.
	// Do NOT resolve here; use Boot for that.
	Register(app *Container)

	// Boot is called once all eager providers are registered.
	Boot(app *Container) error

	// Provides lists the contracts a deferred provider registers.
	Provides() []reflect.Type

	// IsDeferred reports whether registration waits until one of the
	// contracts from Provides is first resolved.
	IsDeferred() bool
}

// ── BaseProvider ──────────────────────────────────────────────────────────────

// BaseProvider is an embeddable struct with no-op Boot, Provides and
// IsDeferred.
type BaseProvider struct{}

func (p *BaseProvider) Boot(_ *Container) error    { return nil }
func (p *BaseProvider) Provides() []reflect.Type { return nil }
func (p *BaseProvider) IsDeferred() bool         { return false }

// ── ProviderRegistry ──────────────────────────────────────────────────────────

// ProviderRegistry registers and boots ServiceProviders against one
// container, including deferred ones.
type ProviderRegistry struct {
	app        *Container
	eager      []ServiceProvider
	booted     atomic.Bool
	registered map[ServiceProvider]bool
}

// NewProviderRegistry creates a registry bound to app.
func NewProviderRegistry(app *Container) *ProviderRegistry {
	return &ProviderRegistry{
		app:        app,
		registered: make(map[ServiceProvider]bool),
	}
}

// Register adds a provider. Eager providers register immediately and, if
// the registry has already booted, boot immediately too; the boot error is
// returned. Adding the same provider twice is a no-op.
func (r *ProviderRegistry) Register(provider ServiceProvider) error {
	if r.registered[provider] {
		return nil
	}
	r.registered[provider] = true

	if provider.IsDeferred() {
		r.registerDeferred(provider)
		return nil
	}

	provider.Register(r.app)
	r.eager = append(r.eager, provider)

	if r.booted.Load() {
		return bootProvider(provider, r.app)
	}
	return nil
}

// registerDeferred stands a shared loader in for every provided contract.
// The first resolution of any of them runs the real registration, then
// Boot if the registry has booted.
func (r *ProviderRegistry) registerDeferred(provider ServiceProvider) {
	loader := &deferredLoader{
		name:     providerName(provider),
		register: provider.Register,
		boot: func(c *Container) error {
			if r.booted.Load() {
				return bootProvider(provider, c)
			}
			return nil
		},
	}
	for _, contract := range provider.Provides() {
		r.app.Register(contract, loader)
	}
}

// Boot calls Boot on every eager provider in registration order and stops
// at the first error. Only the first call has any effect.
func (r *ProviderRegistry) Boot() error {
	if !r.booted.CompareAndSwap(false, true) {
		return nil
	}
	for _, provider := range r.eager {
		if err := bootProvider(provider, r.app); err != nil {
			return err
		}
	}
	return nil
}

// Booted returns true if Boot() has been called.
func (r *ProviderRegistry) Booted() bool { return r.booted.Load() }

// Providers returns all registered eager providers.
func (r *ProviderRegistry) Providers() []ServiceProvider { return r.eager }

func bootProvider(provider ServiceProvider, app *Container) error {
	if err := provider.Boot(app); err != nil {
		return fmt.Errorf("boot %s: %w", providerName(provider), err)
	}
	return nil
}

func providerName(provider ServiceProvider) string {
	return fmt.Sprintf("%T", provider)
}

// deferredLoader is the implementation registered for each contract of a
// deferred provider until the provider has been loaded. Registration and
// boot run once each, in that order. A contract that still maps to the
// loader after registration was never bound by the provider; resolving it
// fails without touching boot, so Boot may resolve the provider's own
// contracts.
type deferredLoader struct {
	name     string
	register func(c *Container)
	boot     func(c *Container) error

	registerOnce sync.Once
	bootOnce     sync.Once
	bootErr      error
}
