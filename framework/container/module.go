package container

import (
	"slices"
	"sync"
)

// Module is the lifecycle wrapper of one registered module. It owns the
// "built yet" state and the cached instance; construction itself is
// delegated to the registry's resolver.
type Module struct {
	name          string
	constructor   any
	loadOnStartup bool
	registry      *Registry

	mu       sync.Mutex
	built    bool
	building chan struct{} // closed when the running build returns
	instance any
}

func newModule(r *Registry, name string, constructor any, loadOnStartup bool) *Module {
	return &Module{
		name:          name,
		constructor:   constructor,
		loadOnStartup: loadOnStartup,
		registry:      r,
	}
}

// Name returns the registered name.
func (m *Module) Name() string { return m.name }

// LoadOnStartup reports whether boot forces this module.
func (m *Module) LoadOnStartup() bool { return m.loadOnStartup }

// IsInstantiated reports whether the constructor already ran successfully.
func (m *Module) IsInstantiated() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.built
}

// Instance returns the module's object, building it (and its dependencies)
// on first use. Later calls return the cached object without running the
// constructor again. A caller arriving while another goroutine builds the
// module waits for that build. As with sync.Once, a constructor must not
// reach its own module through $injector.Invoke: that call blocks.
func (m *Module) Instance() (any, error) {
	return m.resolveInstance(trail{})
}

func (m *Module) resolveInstance(t trail) (any, error) {
	if slices.Contains(t.path, m.name) {
		return nil, CyclicDependencyError{Path: t.enter(m.name).path, Depth: t.depth}
	}

	for {
		m.mu.Lock()
		if m.built {
			inst := m.instance
			m.mu.Unlock()
			return inst, nil
		}
		if wait := m.building; wait != nil {
			m.mu.Unlock()
			<-wait
			continue
		}
		done := make(chan struct{})
		m.building = done
		m.mu.Unlock()

		return m.build(t, done)
	}
}

// build runs the constructor once. The build slot is released even when the
// constructor panics, so a later call retries.
func (m *Module) build(t trail, done chan struct{}) (any, error) {
	defer func() {
		m.mu.Lock()
		m.building = nil
		m.mu.Unlock()
		close(done)
	}()

	obj, err := m.registry.resolve(m.constructor, nil, nil, t.enter(m.name), m.name)
	if err != nil {
		return nil, err
	}
	if !IsObject(obj) {
		return nil, InvalidModuleResultError{Module: m.name, GotType: typeName(obj)}
	}

	m.mu.Lock()
	m.instance = obj
	m.built = true
	m.mu.Unlock()
	return obj, nil
}

// ModuleInfo is a read-only snapshot of a module's state.
type ModuleInfo struct {
	Name          string `json:"name"`
	LoadOnStartup bool   `json:"load_on_startup"`
	Instantiated  bool   `json:"instantiated"`
}

func (m *Module) info() ModuleInfo {
	return ModuleInfo{
		Name:          m.name,
		LoadOnStartup: m.loadOnStartup,
		Instantiated:  m.IsInstantiated(),
	}
}
