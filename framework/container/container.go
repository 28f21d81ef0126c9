package container

import (
	"cmp"
	"fmt"
	"reflect"
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ── Container ─────────────────────────────────────────────────────────────────

// Container maps contracts to implementations and builds object graphs on
// demand.
//
// A contract is a reflect.Type, usually an interface obtained with
// reflect.TypeFor. An implementation is either a constructor function whose
// parameters are themselves contracts, or a reflect.Type of a struct (or
// pointer to struct) built from its zero value.
//
// The container never caches instances: every Resolve builds the whole
// dependency subtree again. Zero-size implementations such as struct{}
// are the exception to telling instances apart: Go may give every one of
// them the same address.
type Container struct {
	mu sync.RWMutex

	// contract → implementation
	registrations map[reflect.Type]any

	logger    *zap.Logger
	observers []Observer
}

// Observer is told about every top-level Resolve once it finishes. err is
// nil on success.
type Observer interface {
	ObserveResolve(contract reflect.Type, elapsed time.Duration, err error)
}

// Option configures a Container.
type Option func(*Container)

// WithLogger makes the container emit debug logs on registration and
// construction. Without it the container does not log.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Container) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithObserver adds an Observer.
func WithObserver(observer Observer) Option {
	return func(c *Container) {
		if observer != nil {
			c.observers = append(c.observers, observer)
		}
	}
}

// New creates an empty container.
func New(opts ...Option) *Container {
	c := &Container{
		registrations: make(map[reflect.Type]any),
		logger:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ── Registration ──────────────────────────────────────────────────────────────

// Register maps contract to implementation, replacing any previous mapping.
// Nothing is checked here; an unusable implementation is reported when it
// is first resolved. A nil contract can be stored but never resolves: it
// fails with a *LookupError.
//
//	c.Register(reflect.TypeFor[Logger](), reflect.TypeFor[*ConsoleLogger]())
//	c.Register(reflect.TypeFor[*UserService](), NewUserService)
func (c *Container) Register(contract reflect.Type, implementation any) {
	c.mu.Lock()
	c.registrations[contract] = implementation
	c.mu.Unlock()

	c.logger.Debug("registered contract",
		typeField("contract", contract),
		zap.String("implementation", fmt.Sprintf("%T", implementation)),
	)
}

// Register is the generic form of Container.Register using C as the contract.
//
//	container.Register[Logger](c, NewZapLogger)
func Register[C any](c *Container, implementation any) {
	c.Register(reflect.TypeFor[C](), implementation)
}

// ── Resolution ────────────────────────────────────────────────────────────────

// Resolve builds a fresh instance for contract, resolving every constructor
// parameter recursively. The first failure anywhere in the graph aborts the
// resolution and is returned as is: a *LookupError, *ConstructionError or
// *CycleError.
func (c *Container) Resolve(contract reflect.Type) (any, error) {
	start := time.Now()
	v, err := c.resolve(contract, nil)
	for _, o := range c.observers {
		o.ObserveResolve(contract, time.Since(start), err)
	}
	if err != nil {
		return nil, err
	}
	return v.Interface(), nil
}

// resolve builds contract. path holds the contracts currently being built
// by this call chain, outermost first.
func (c *Container) resolve(contract reflect.Type, path []reflect.Type) (reflect.Value, error) {
	if contract == nil {
		return reflect.Value{}, &LookupError{Path: slices.Clone(path)}
	}
	if slices.Contains(path, contract) {
		cycle := append(slices.Clone(path), contract)
		return reflect.Value{}, &CycleError{Path: cycle}
	}

	implementation, err := c.lookup(contract, path)
	if err != nil {
		return reflect.Value{}, err
	}

	d, err := describe(implementation)
	if err != nil {
		return reflect.Value{}, constructionError(contract, d, err)
	}

	path = append(path, contract)
	args := make([]reflect.Value, len(d.params))
	for i, param := range d.params {
		arg, err := c.resolve(param, path)
		if err != nil {
			return reflect.Value{}, err
		}
		args[i] = arg
	}

	v, err := d.build(args)
	if err == nil {
		v, err = checkInstance(v, contract)
	}
	if err != nil {
		return reflect.Value{}, constructionError(contract, d, err)
	}

	c.logger.Debug("constructed instance",
		typeField("contract", contract),
		typeField("implementation", d.implementation),
		zap.Int("depth", len(path)-1),
	)
	return v, nil
}

// lookup returns the implementation registered for contract, loading a
// deferred provider first when one stands in for it.
func (c *Container) lookup(contract reflect.Type, path []reflect.Type) (any, error) {
	implementation, ok := c.registration(contract)
	if !ok {
		return nil, &LookupError{Contract: contract, Path: slices.Clone(path)}
	}

	loader, ok := implementation.(*deferredLoader)
	if !ok {
		return implementation, nil
	}
	loader.registerOnce.Do(func() { loader.register(c) })

	implementation, ok = c.registration(contract)
	if !ok {
		return nil, &LookupError{Contract: contract, Path: slices.Clone(path)}
	}
	if _, still := implementation.(*deferredLoader); still {
		return nil, &ConstructionError{
			Contract: contract,
			Cause:    fmt.Errorf("%w: deferred provider %s did not register it", ErrNoConstructor, loader.name),
		}
	}

	loader.bootOnce.Do(func() { loader.bootErr = loader.boot(c) })
	if loader.bootErr != nil {
		return nil, &ConstructionError{Contract: contract, Cause: loader.bootErr}
	}
	return implementation, nil
}

func (c *Container) registration(contract reflect.Type) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	implementation, ok := c.registrations[contract]
	return implementation, ok
}

func constructionError(contract reflect.Type, d *descriptor, cause error) *ConstructionError {
	return &ConstructionError{
		Contract:       contract,
		Implementation: d.implementation,
		Constructor:    d.constructor,
		Cause:          cause,
	}
}

// ── Helpers ───────────────────────────────────────────────────────────────────

// Bound reports whether contract has a registration.
func (c *Container) Bound(contract reflect.Type) bool {
	_, ok := c.registration(contract)
	return ok
}

// Contracts returns every registered contract ordered by name.
func (c *Container) Contracts() []reflect.Type {
	c.mu.RLock()
	out := make([]reflect.Type, 0, len(c.registrations))
	for contract := range c.registrations {
		out = append(out, contract)
	}
	c.mu.RUnlock()

	slices.SortFunc(out, func(a, b reflect.Type) int {
		return cmp.Compare(fmt.Sprint(a), fmt.Sprint(b))
	})
	return out
}

// Forget removes the registration for contract.
func (c *Container) Forget(contract reflect.Type) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.registrations, contract)
}

// Flush removes every registration.
func (c *Container) Flush() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.registrations = make(map[reflect.Type]any)
}

func typeField(key string, t reflect.Type) zap.Field {
	return zap.String(key, fmt.Sprint(t))
}

// ── Generics helpers ──────────────────────────────────────────────────────────

// Resolve is the generic form of Container.Resolve.
//
//	svc, err := container.Resolve[*UserService](c)
func Resolve[C any](c *Container) (C, error) {
	var zero C
	instance, err := c.Resolve(reflect.TypeFor[C]())
	if err != nil {
		return zero, err
	}
	return instance.(C), nil
}

// MustResolve is like Resolve but panics on error. Intended for bootstrap
// code where a missing registration is a programming error.
func MustResolve[C any](c *Container) C {
	instance, err := Resolve[C](c)
	if err != nil {
		panic(err)
	}
	return instance
}
