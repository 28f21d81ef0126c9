// Package container provides a small dependency-injection container and a
// Service Provider system for Go.
//
// # Overview
//
// A Container holds a registration table mapping contracts (reflect.Type,
// usually of an interface) to implementations. Resolving a contract looks up
// its implementation, resolves every constructor parameter as a contract of
// its own, then calls the constructor with the results. Nothing is cached:
// each resolution builds a fresh object graph. Fresh zero-size values
// (struct{} and the like) may still share an address, so identity checks
// only distinguish instances of types with fields.
//
// # Registering
//
//	c := container.New()
//
//	// Constructor function. Parameters are contracts; the result may be
//	// paired with an error.
//	container.Register[*UserService](c, NewUserService) // func(Logger) *UserService
//
//	// Type only. Struct and pointer-to-struct types are built zero-valued.
//	container.Register[Logger](c, reflect.TypeFor[*ConsoleLogger]())
//
// Registering a contract again replaces the earlier registration.
//
// # Resolving
//
//	svc, err := container.Resolve[*UserService](c)
//
//	var lookup *container.LookupError
//	if errors.As(err, &lookup) {
//	    // lookup.Contract was never registered
//	}
//
// Resolution fails with:
//   - *LookupError when a contract has no registration
//   - *ConstructionError when an implementation has no usable constructor or
//     its constructor returns an error, panics or returns nil
//   - *CycleError when a contract depends on itself, directly or not
//
// Errors from deep in the graph reach the caller unchanged.
//
// # Inspecting
//
//	node, err := c.Describe(reflect.TypeFor[*UserService]())
//	fmt.Print(node) // indented dependency tree
//
//	if err := c.Validate(); err != nil {
//	    // every broken registration, joined
//	}
//
// # Observing
//
// WithLogger adds zap debug logs for registration and construction.
// WithObserver reports every top-level Resolve, with its duration and
// error, to an Observer such as metrics.Collector.
//
// # Service Providers
//
//	type AppServiceProvider struct{ container.BaseProvider }
//
//	func (p *AppServiceProvider) Register(app *container.Container) {
//	    container.Register[Logger](app, NewZapLogger)
//	}
//
//	registry := container.NewProviderRegistry(c)
//	_ = registry.Register(&AppServiceProvider{})
//	err := registry.Boot()
//
// # Deferred Providers
//
//	type HeavyProvider struct{ container.BaseProvider }
//
//	func (p *HeavyProvider) IsDeferred() bool { return true }
//	func (p *HeavyProvider) Provides() []reflect.Type {
//	    return []reflect.Type{reflect.TypeFor[*Heavy]()}
//	}
//
// HeavyProvider.Register runs on the first Resolve of *Heavy.
package container
