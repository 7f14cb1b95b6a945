package container

import "sync"

// InjectorName is the reserved name under which every registry registers
// itself, so modules can depend on the injector without registering it.
const InjectorName = "$injector"

// DefaultMaxDepth bounds nested module construction.
const DefaultMaxDepth = 1000

// Registry maps module names to their lifecycle wrappers, in registration
// order. Construction is lazy: registering a module never runs its
// constructor.
type Registry struct {
	mu       sync.RWMutex
	modules  map[string]*Module
	order    []string
	sealed   bool
	maxDepth int
}

// NewRegistry creates a registry holding only itself, under InjectorName,
// as an already built module that is not loaded on startup.
// A maxDepth <= 0 selects DefaultMaxDepth.
func NewRegistry(maxDepth int) *Registry {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	r := &Registry{
		modules:  make(map[string]*Module),
		maxDepth: maxDepth,
	}

	self := newModule(r, InjectorName, nil, false)
	self.instance = r
	self.built = true
	r.modules[InjectorName] = self
	r.order = append(r.order, InjectorName)

	return r
}

// ── Registration ──────────────────────────────────────────────────────────────

// Register adds a module definition. The constructor is only checked when
// the module is first built.
func (r *Registry) Register(name string, constructor any, loadOnStartup bool) error {
	if name == "" {
		return InvalidNameError{Name: name}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sealed {
		return ErrRegistrationClosed
	}
	if _, exists := r.modules[name]; exists {
		return DuplicateNameError{Name: name}
	}

	r.modules[name] = newModule(r, name, constructor, loadOnStartup)
	r.order = append(r.order, name)
	return nil
}

// Seal closes registration. Boot seals the registry before building anything.
func (r *Registry) Seal() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sealed = true
}

// Sealed reports whether registration is closed.
func (r *Registry) Sealed() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sealed
}

// ── Lookup ────────────────────────────────────────────────────────────────────

// Lookup returns the module registered under name.
func (r *Registry) Lookup(name string) (*Module, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.modules[name]
	return m, ok
}

// ForEachModule calls visit for every module in registration order, the
// injector itself included. It stops at the first error visit returns.
func (r *Registry) ForEachModule(visit func(m *Module) error) error {
	for _, m := range r.snapshot() {
		if err := visit(m); err != nil {
			return err
		}
	}
	return nil
}

// Names returns the registered names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.order...)
}

// Modules returns a snapshot of every module's state, in registration order.
func (r *Registry) Modules() []ModuleInfo {
	mods := r.snapshot()
	out := make([]ModuleInfo, 0, len(mods))
	for _, m := range mods {
		out = append(out, m.info())
	}
	return out
}

func (r *Registry) snapshot() []*Module {
	r.mu.RLock()
	defer r.mu.RUnlock()
	mods := make([]*Module, 0, len(r.order))
	for _, name := range r.order {
		mods = append(mods, r.modules[name])
	}
	return mods
}

// ── Injection ─────────────────────────────────────────────────────────────────

// Invoke calls fn with its dependencies resolved positionally. Names are
// looked up among the registered modules first (building them if needed),
// then in external. deps is used only when fn does not declare its own list
// (array form or Inject).
//
//	out, err := injector.Invoke([]any{"$logger", func(l *zap.Logger) { ... }}, nil, nil)
func (r *Registry) Invoke(fn any, deps []string, external map[string]any) (any, error) {
	return r.resolve(fn, deps, external, trail{}, InjectorName+".Invoke")
}
