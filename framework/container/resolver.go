package container

import (
	"fmt"
	"reflect"
)

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// Injected is a function carrying its own ordered dependency list.
// It is equivalent to the array form []any{deps..., fn}.
type Injected struct {
	Fn   any
	Deps []string
}

// Inject attaches the dependency names to fn.
//
//	c.Register("high", container.Inject(func(low *Low) *High { ... }, "low"))
func Inject(fn any, deps ...string) Injected {
	return Injected{Fn: fn, Deps: deps}
}

// trail is threaded through nested construction: depth counts nested module
// builds, path lists the modules currently being built.
type trail struct {
	depth int
	path  []string
}

func (t trail) enter(name string) trail {
	path := make([]string, len(t.path), len(t.path)+1)
	copy(path, t.path)
	return trail{depth: t.depth, path: append(path, name)}
}

func (t trail) nested() trail {
	return trail{depth: t.depth + 1, path: t.path}
}

// resolve normalizes fn into a callable plus dependency names, resolves
// every name and calls it. The result is returned as is; validating it is
// up to the caller.
func (r *Registry) resolve(fn any, deps []string, external map[string]any, t trail, requester string) (any, error) {
	callable, names, err := normalize(fn, deps, requester)
	if err != nil {
		return nil, err
	}

	if t.depth > r.maxDepth {
		return nil, CyclicDependencyError{Depth: t.depth}
	}

	args := make([]any, 0, len(names))
	for _, name := range names {
		arg, err := r.dependency(name, external, t, requester)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}

	return call(callable, names, args, requester)
}

func (r *Registry) dependency(name string, external map[string]any, t trail, requester string) (any, error) {
	if m, ok := r.Lookup(name); ok {
		return m.resolveInstance(t.nested())
	}
	if v, ok := external[name]; ok {
		return v, nil
	}
	return nil, DependencyNotFoundError{Dependency: name, Requester: requester}
}

// normalize accepts the three declaration forms: []any{"a", "b", fn},
// Injected, or a bare func taking the explicit list.
func normalize(fn any, explicit []string, requester string) (reflect.Value, []string, error) {
	deps := explicit

	switch p := fn.(type) {
	case []any:
		if len(p) == 0 {
			return reflect.Value{}, nil, NotAFunctionError{Requester: requester, GotType: "empty []interface {}"}
		}
		fn = p[len(p)-1]
		if !IsFunction(fn) {
			return reflect.Value{}, nil, NotAFunctionError{Requester: requester, GotType: typeName(fn)}
		}
		deps = make([]string, 0, len(p)-1)
		for i, d := range p[:len(p)-1] {
			name, ok := d.(string)
			if !ok {
				return reflect.Value{}, nil, InvalidDependencyListError{
					Requester: requester,
					Reason:    fmt.Sprintf("element %d is %s, want string", i, typeName(d)),
				}
			}
			deps = append(deps, name)
		}

	case Injected:
		fn, deps = p.Fn, p.Deps

	case *Injected:
		if p == nil {
			return reflect.Value{}, nil, NotAFunctionError{Requester: requester, GotType: "nil *container.Injected"}
		}
		fn, deps = p.Fn, p.Deps
	}

	if !IsFunction(fn) {
		return reflect.Value{}, nil, NotAFunctionError{Requester: requester, GotType: typeName(fn)}
	}

	for i, d := range deps {
		if d == "" {
			return reflect.Value{}, nil, InvalidDependencyListError{
				Requester: requester,
				Reason:    fmt.Sprintf("name at position %d is empty", i),
			}
		}
	}

	return reflect.ValueOf(fn), deps, nil
}

// call invokes fn with args in declared order. Supported results are
// nothing, T, error, or (T, error).
func call(fn reflect.Value, names []string, args []any, requester string) (any, error) {
	ft := fn.Type()

	if !supportedResults(ft) {
		return nil, NotAFunctionError{Requester: requester, GotType: ft.String()}
	}

	in := ft.NumIn()
	switch {
	case ft.IsVariadic() && len(args) < in-1:
		return nil, InvalidDependencyListError{
			Requester: requester,
			Reason:    fmt.Sprintf("%s needs at least %d dependencies, %d declared", ft, in-1, len(args)),
		}
	case !ft.IsVariadic() && len(args) != in:
		return nil, InvalidDependencyListError{
			Requester: requester,
			Reason:    fmt.Sprintf("%s takes %d arguments, %d dependencies declared", ft, in, len(args)),
		}
	}

	values := make([]reflect.Value, len(args))
	for i, arg := range args {
		pt := paramType(ft, i)
		v, ok := argValue(arg, pt)
		if !ok {
			return nil, DependencyTypeError{
				Dependency: names[i],
				Requester:  requester,
				Want:       pt.String(),
				Got:        typeName(arg),
			}
		}
		values[i] = v
	}

	out := fn.Call(values)

	switch len(out) {
	case 0:
		return nil, nil
	case 1:
		if ft.Out(0) == errorType {
			return nil, asError(out[0])
		}
		return out[0].Interface(), nil
	default:
		if err := asError(out[1]); err != nil {
			return nil, err
		}
		return out[0].Interface(), nil
	}
}

func supportedResults(ft reflect.Type) bool {
	switch ft.NumOut() {
	case 0, 1:
		return true
	case 2:
		return ft.Out(1) == errorType
	}
	return false
}

func paramType(ft reflect.Type, i int) reflect.Type {
	if ft.IsVariadic() && i >= ft.NumIn()-1 {
		return ft.In(ft.NumIn() - 1).Elem()
	}
	return ft.In(i)
}

func argValue(arg any, pt reflect.Type) (reflect.Value, bool) {
	if arg == nil {
		switch pt.Kind() {
		case reflect.Interface, reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
			return reflect.Zero(pt), true
		}
		return reflect.Value{}, false
	}
	v := reflect.ValueOf(arg)
	if !v.Type().AssignableTo(pt) {
		return reflect.Value{}, false
	}
	return v, true
}

func asError(v reflect.Value) error {
	if v.IsNil() {
		return nil
	}
	return v.Interface().(error)
}

func typeName(v any) string {
	if v == nil {
		return "nil"
	}
	return reflect.TypeOf(v).String()
}
