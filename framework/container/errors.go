package container

import (
	"errors"
	"strconv"
	"strings"
)

var (
	// ErrRegistrationClosed is returned by Register once boot has started.
	ErrRegistrationClosed = errors.New("container: registration closed, boot already started")

	// ErrAlreadyBooted is returned when Boot is called a second time.
	ErrAlreadyBooted = errors.New("container: boot sequence already ran")
)

// ── Registration errors ───────────────────────────────────────────────────────

// InvalidNameError is returned when a module is registered without a name.
type InvalidNameError struct{ Name string }

func (e InvalidNameError) Error() string {
	return "container: invalid module name " + strconv.Quote(e.Name) + ", must be a non-empty string"
}

// DuplicateNameError is returned when a name is registered twice.
type DuplicateNameError struct{ Name string }

func (e DuplicateNameError) Error() string {
	return "container: module " + strconv.Quote(e.Name) + " is already registered"
}

// ── Resolution errors ─────────────────────────────────────────────────────────

// InvalidModuleResultError is returned when a module constructor does not
// return an object (non-nil pointer, struct or map).
type InvalidModuleResultError struct {
	Module  string
	GotType string
}

func (e InvalidModuleResultError) Error() string {
	return "container: module " + strconv.Quote(e.Module) +
		" constructor must return an object, got " + e.GotType
}

// InvalidDependencyListError is returned when a dependency declaration is
// not an ordered list of non-empty names, or does not match the function.
type InvalidDependencyListError struct {
	Requester string
	Reason    string
}

func (e InvalidDependencyListError) Error() string {
	return "container: invalid dependency list for " + strconv.Quote(e.Requester) + ": " + e.Reason
}

// NotAFunctionError is returned when a provider does not hold a callable
// function with a supported result shape.
type NotAFunctionError struct {
	Requester string
	GotType   string
}

func (e NotAFunctionError) Error() string {
	return "container: provider of " + strconv.Quote(e.Requester) + " is not a function (" + e.GotType + ")"
}

// DependencyNotFoundError is returned when a declared name is neither a
// registered module nor part of the external dependencies.
type DependencyNotFoundError struct {
	Dependency string
	Requester  string
}

func (e DependencyNotFoundError) Error() string {
	return "container: dependency " + strconv.Quote(e.Dependency) +
		" not found (required by " + strconv.Quote(e.Requester) + ")"
}

// DependencyTypeError is returned when a resolved value cannot be passed as
// the function parameter at the same position.
type DependencyTypeError struct {
	Dependency string
	Requester  string
	Want       string
	Got        string
}

func (e DependencyTypeError) Error() string {
	return "container: dependency " + strconv.Quote(e.Dependency) + " of " + strconv.Quote(e.Requester) +
		" is " + e.Got + ", want " + e.Want
}

// CyclicDependencyError is returned when module construction loops back
// onto a module still being built, or nests deeper than the depth bound.
type CyclicDependencyError struct {
	// Path lists the modules under construction, ending with the one that
	// was requested again. Empty when only the depth bound tripped.
	Path  []string
	Depth int
}

func (e CyclicDependencyError) Error() string {
	if len(e.Path) == 0 {
		return "container: loop in module dependencies detected (depth " + strconv.Itoa(e.Depth) + ")"
	}
	return "container: loop in module dependencies detected: " + strings.Join(e.Path, " -> ")
}

// ── Boot errors ───────────────────────────────────────────────────────────────

// BootError wraps the first failure of the boot sequence with the module and
// stage it happened in.
type BootError struct {
	Module string
	State  State
	Err    error
}

func (e *BootError) Error() string {
	return "container: boot failed while " + e.State.String() + " " + strconv.Quote(e.Module) + ": " + e.Err.Error()
}

func (e *BootError) Unwrap() error { return e.Err }
