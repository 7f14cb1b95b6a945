package container

// Phase is one of the three lifecycle passes run after startup modules are
// built.
type Phase int

const (
	PhaseInit Phase = iota
	PhaseBuild
	PhaseFinal
)

// Phases lists the lifecycle passes in the order boot runs them.
var Phases = []Phase{PhaseInit, PhaseBuild, PhaseFinal}

func (p Phase) String() string {
	switch p {
	case PhaseInit:
		return "init"
	case PhaseBuild:
		return "build"
	case PhaseFinal:
		return "final"
	}
	return "unknown"
}

// ── Optional module capabilities ──────────────────────────────────────────────
//
// A module object may implement any of these. The returned value is resolved
// like a constructor: a func, Inject(fn, deps...) or []any{deps..., fn}. On
// top of registered modules, phase hooks can ask for "$context" (the boot
// context.Context) and "$phase" (the running Phase).
//
//	func (h *Header) OnBuild() any {
//	    return []any{"$router", func(r *routing.Router) { r.Get("/header", h.serve) }}
//	}

// Initializer is implemented by modules with an init step.
type Initializer interface{ OnInit() any }

// Builder is implemented by modules with a build step.
type Builder interface{ OnBuild() any }

// Finalizer is implemented by modules with a final step.
type Finalizer interface{ OnFinal() any }

// Names of the external dependencies available to phase hooks.
const (
	ContextName = "$context"
	PhaseName   = "$phase"
)

// hook returns the phase callable exposed by obj, if any.
func (p Phase) hook(obj any) (any, bool) {
	switch p {
	case PhaseInit:
		if h, ok := obj.(Initializer); ok {
			return h.OnInit(), true
		}
	case PhaseBuild:
		if h, ok := obj.(Builder); ok {
			return h.OnBuild(), true
		}
	case PhaseFinal:
		if h, ok := obj.(Finalizer); ok {
			return h.OnFinal(), true
		}
	}
	return nil, false
}

func (p Phase) state() State {
	switch p {
	case PhaseInit:
		return StateInitializing
	case PhaseBuild:
		return StateBuilding
	}
	return StateFinalizing
}
