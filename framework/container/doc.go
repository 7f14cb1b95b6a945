// Package container provides a small module container: named, lazily built
// singletons wired by name, and a one-shot boot sequence.
//
// # Modules
//
// A module is a name plus a constructor. The constructor declares the names
// of the modules it needs, in argument order, in one of three equivalent
// ways:
//
//	// Array form: names first, the function last
//	c.Register("high", []any{"low", func(low *Low) *High { return &High{Low: low} }})
//
//	// Attached list
//	c.Register("high", container.Inject(func(low *Low) *High { return &High{Low: low} }, "low"))
//
//	// No dependencies
//	c.Register("low", func() *Low { return &Low{} }, false)
//
// Constructors return an object (a non-nil pointer, struct or map),
// optionally followed by an error. Each module is built at most once, the
// first time it is needed; the cached object is shared by every dependent.
//
// The registry registers itself as "$injector", so any module can depend on
// it and call Invoke.
//
// # Boot
//
//  1. Create: c := container.New()
//  2. Register modules: c.Register(...) or c.Use(providers...)
//  3. Boot: c.Boot(ctx), or c.BootOn(ctx, ready) to wait for a signal
//
// Boot builds every module registered with loadOnStartup (the default),
// which also builds their dependencies. It then runs the init, build and
// final phases over every built module, in registration order. A module
// takes part in a phase by implementing Initializer, Builder or Finalizer:
//
//	func (h *High) OnInit() any {
//	    return func() { h.Seen = true }
//	}
//
//	func (h *High) OnFinal() any {
//	    return []any{"$context", "$logger", func(ctx context.Context, log *zap.Logger) error {
//	        go h.watch(ctx, log)
//	        return nil
//	    }}
//	}
//
// # Errors
//
// Every failure is returned to the caller; the container never logs.
// Registration fails with InvalidNameError, DuplicateNameError or
// ErrRegistrationClosed. Construction fails with NotAFunctionError,
// InvalidDependencyListError, DependencyNotFoundError, DependencyTypeError,
// InvalidModuleResultError or CyclicDependencyError. Boot wraps the first
// failure in a *BootError.
package container
