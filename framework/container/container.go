package container

import (
	"fmt"
	"sync"
)

// ── Container ─────────────────────────────────────────────────────────────────

// Container is the public face of the module system: it owns one Registry
// and runs its boot sequence once.
//
//	c := container.New()
//	c.MustRegister("low", func() *Low { return &Low{Value: 1} }, false)
//	c.MustRegister("high", []any{"low", func(l *Low) *High { return &High{Value: l.Value + 1} }})
//	if err := c.Boot(ctx); err != nil { ... }
type Container struct {
	registry  *Registry
	observers []func(from, to State)

	mu    sync.Mutex
	state State
}

// Option configures a Container.
type Option func(*options)

type options struct {
	maxDepth  int
	observers []func(from, to State)
}

// WithMaxDepth overrides DefaultMaxDepth, the bound on nested module
// construction.
func WithMaxDepth(n int) Option {
	return func(o *options) { o.maxDepth = n }
}

// OnStateChange registers fn to be called on every boot state transition.
// fn runs synchronously on the booting goroutine.
func OnStateChange(fn func(from, to State)) Option {
	return func(o *options) {
		if fn != nil {
			o.observers = append(o.observers, fn)
		}
	}
}

// New creates a container with its registry bootstrapped.
func New(opts ...Option) *Container {
	o := options{maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(&o)
	}
	return &Container{
		registry:  NewRegistry(o.maxDepth),
		observers: o.observers,
	}
}

// ── Registration ──────────────────────────────────────────────────────────────

// Register adds a module. constructor is a func, Inject(fn, deps...) or
// []any{deps..., fn}; it must return an object (optionally with an error).
// loadOnStartup defaults to true.
func (c *Container) Register(name string, constructor any, loadOnStartup ...bool) error {
	startup := true
	if len(loadOnStartup) > 0 {
		startup = loadOnStartup[0]
	}
	return c.registry.Register(name, constructor, startup)
}

// MustRegister is Register that panics on error. It returns c for chaining.
func (c *Container) MustRegister(name string, constructor any, loadOnStartup ...bool) *Container {
	if err := c.Register(name, constructor, loadOnStartup...); err != nil {
		panic(err)
	}
	return c
}

// Use registers every module of the given providers, in order.
func (c *Container) Use(providers ...Provider) error {
	for _, p := range providers {
		if err := p.Register(c); err != nil {
			return fmt.Errorf("container: provider %T: %w", p, err)
		}
	}
	return nil
}

// Injector returns the registry, also resolvable as InjectorName.
func (c *Container) Injector() *Registry { return c.registry }

// ── Generics helper ───────────────────────────────────────────────────────────

// Resolve returns the named module's object as T, building it if needed.
//
//	router, err := container.Resolve[*routing.Router](c, "$router")
func Resolve[T any](c *Container, name string) (T, error) {
	var zero T

	m, ok := c.registry.Lookup(name)
	if !ok {
		return zero, DependencyNotFoundError{Dependency: name, Requester: "Resolve"}
	}
	inst, err := m.Instance()
	if err != nil {
		return zero, err
	}
	typed, ok := inst.(T)
	if !ok {
		return zero, DependencyTypeError{
			Dependency: name,
			Requester:  "Resolve",
			Want:       fmt.Sprintf("%T", &zero)[1:],
			Got:        typeName(inst),
		}
	}
	return typed, nil
}

// MustResolve is Resolve that panics on error.
func MustResolve[T any](c *Container, name string) T {
	v, err := Resolve[T](c, name)
	if err != nil {
		panic(err)
	}
	return v
}
