package container

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

var (
	// ErrNoConstructor means an implementation exposes no usable constructor.
	ErrNoConstructor = errors.New("no usable constructor")

	// ErrNilInstance means a constructor returned a nil value.
	ErrNilInstance = errors.New("constructor returned nil")

	// ErrNotAssignable means the constructed value does not satisfy its contract.
	ErrNotAssignable = errors.New("instance is not assignable to contract")
)

// LookupError is returned when resolution reaches a contract that has no
// registration. Path holds the contracts that led to it, outermost first.
type LookupError struct {
	Contract reflect.Type
	Path     []reflect.Type
}

func (e *LookupError) Error() string {
	msg := fmt.Sprintf("container: no implementation registered for [%v]", e.Contract)
	if len(e.Path) > 0 {
		msg += " (required by " + joinPath(e.Path) + ")"
	}
	return msg
}

// ConstructionError is returned when an implementation cannot be built:
// it has no usable constructor, or its constructor failed.
type ConstructionError struct {
	Contract       reflect.Type
	Implementation reflect.Type
	// Constructor is the runtime name of the constructor function, if any.
	Constructor string
	Cause       error
}

func (e *ConstructionError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "container: cannot construct [%v] for [%v]", e.Implementation, e.Contract)
	if e.Constructor != "" {
		fmt.Fprintf(&b, " via %s", e.Constructor)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

func (e *ConstructionError) Unwrap() error { return e.Cause }

// CycleError is returned when a contract is requested again while it is
// still being resolved. Path ends with the repeated contract.
type CycleError struct {
	Path []reflect.Type
}

func (e *CycleError) Error() string {
	return "container: circular dependency detected: " + joinPath(e.Path)
}

func joinPath(path []reflect.Type) string {
	names := make([]string, len(path))
	for i, t := range path {
		names[i] = fmt.Sprint(t)
	}
	return strings.Join(names, " -> ")
}
