package container

import "context"

// State is the boot sequence position of a Container.
type State int

const (
	StateIdle State = iota
	StateInstantiating
	StateInitializing
	StateBuilding
	StateFinalizing
	StateBooted
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateInstantiating:
		return "instantiating"
	case StateInitializing:
		return "initializing"
	case StateBuilding:
		return "building"
	case StateFinalizing:
		return "finalizing"
	case StateBooted:
		return "booted"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// Boot runs the boot sequence once:
//
//  1. every module flagged loadOnStartup is built, in registration order,
//     pulling in its dependencies whatever their own flag;
//  2. the init, build and final phases run in turn over the modules that are
//     built at that moment, in registration order.
//
// Registration is closed as soon as Boot starts. The first error aborts the
// sequence, leaves the container in StateFailed and is returned as a
// *BootError. A second call returns ErrAlreadyBooted.
func (c *Container) Boot(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if !c.transition(StateIdle, StateInstantiating) {
		return ErrAlreadyBooted
	}
	c.registry.Seal()

	if err := c.instantiate(); err != nil {
		c.setState(StateFailed)
		return err
	}

	for _, p := range Phases {
		c.setState(p.state())
		if err := c.runPhase(ctx, p); err != nil {
			c.setState(StateFailed)
			return err
		}
	}

	c.setState(StateBooted)
	return nil
}

// BootOn waits for ready to be closed (or to deliver a value) and then
// boots. If ctx ends first, boot never starts and ctx.Err() is returned.
//
//	ready := make(chan struct{})
//	go func() { errc <- c.BootOn(ctx, ready) }()
//	ln, _ := net.Listen("tcp", addr)
//	close(ready)
func (c *Container) BootOn(ctx context.Context, ready <-chan struct{}) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-ready:
	}
	return c.Boot(ctx)
}

func (c *Container) instantiate() error {
	return c.registry.ForEachModule(func(m *Module) error {
		if !m.LoadOnStartup() {
			return nil
		}
		if _, err := m.Instance(); err != nil {
			return &BootError{Module: m.Name(), State: StateInstantiating, Err: err}
		}
		return nil
	})
}

func (c *Container) runPhase(ctx context.Context, p Phase) error {
	external := map[string]any{
		ContextName: ctx,
		PhaseName:   p,
	}

	return c.registry.ForEachModule(func(m *Module) error {
		if !m.IsInstantiated() {
			return nil
		}
		obj, err := m.Instance()
		if err != nil {
			return &BootError{Module: m.Name(), State: p.state(), Err: err}
		}
		hook, ok := p.hook(obj)
		if !ok {
			return nil
		}
		if _, err := c.registry.resolve(hook, nil, external, trail{}, m.Name()+"."+p.String()); err != nil {
			return &BootError{Module: m.Name(), State: p.state(), Err: err}
		}
		return nil
	})
}

// ── State bookkeeping ─────────────────────────────────────────────────────────

// State returns the current boot state.
func (c *Container) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Container) transition(from, to State) bool {
	c.mu.Lock()
	if c.state != from {
		c.mu.Unlock()
		return false
	}
	c.state = to
	c.mu.Unlock()

	c.notify(from, to)
	return true
}

func (c *Container) setState(to State) {
	c.mu.Lock()
	from := c.state
	c.state = to
	c.mu.Unlock()

	c.notify(from, to)
}

func (c *Container) notify(from, to State) {
	for _, fn := range c.observers {
		fn(from, to)
	}
}
