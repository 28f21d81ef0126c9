package container

import (
	"fmt"
	"reflect"
	"runtime"
)

var errorType = reflect.TypeFor[error]()

// descriptor is everything the resolver needs to build one implementation.
// It is derived on every resolution and never cached.
type descriptor struct {
	implementation reflect.Type
	constructor    string
	params         []reflect.Type
	build          func(args []reflect.Value) (reflect.Value, error)
}

// describe derives the descriptor of an implementation identity. The
// returned descriptor always carries the implementation type, even when
// err is non-nil, so that errors can name it.
func describe(implementation any) (*descriptor, error) {
	if implementation == nil {
		return &descriptor{}, ErrNoConstructor
	}
	if t, ok := implementation.(reflect.Type); ok {
		return describeType(t)
	}

	fn := reflect.ValueOf(implementation)
	d := &descriptor{implementation: fn.Type()}
	if fn.Kind() != reflect.Func || fn.IsNil() {
		return d, ErrNoConstructor
	}

	ft := fn.Type()
	if ft.IsVariadic() {
		return d, fmt.Errorf("%w: variadic constructor %v", ErrNoConstructor, ft)
	}
	switch {
	case ft.NumOut() == 1:
	case ft.NumOut() == 2 && ft.Out(1) == errorType:
	default:
		return d, fmt.Errorf("%w: constructor %v must return T or (T, error)", ErrNoConstructor, ft)
	}

	d.implementation = ft.Out(0)
	if f := runtime.FuncForPC(fn.Pointer()); f != nil {
		d.constructor = f.Name()
	}
	d.params = make([]reflect.Type, ft.NumIn())
	for i := range d.params {
		d.params[i] = ft.In(i)
	}
	d.build = func(args []reflect.Value) (v reflect.Value, err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("constructor panicked: %v", r)
			}
		}()
		out := fn.Call(args)
		if len(out) == 2 && !out[1].IsNil() {
			return reflect.Value{}, out[1].Interface().(error)
		}
		return out[0], nil
	}
	return d, nil
}

// describeType handles implementations registered by type alone. Only
// struct and pointer-to-struct types qualify; they are leaves built from
// their zero value.
func describeType(t reflect.Type) (*descriptor, error) {
	d := &descriptor{implementation: t}
	if t == nil {
		return d, ErrNoConstructor
	}
	switch {
	case t.Kind() == reflect.Struct:
		d.build = func([]reflect.Value) (reflect.Value, error) {
			return reflect.New(t).Elem(), nil
		}
	case t.Kind() == reflect.Pointer && t.Elem().Kind() == reflect.Struct:
		d.build = func([]reflect.Value) (reflect.Value, error) {
			return reflect.New(t.Elem()), nil
		}
	default:
		return d, fmt.Errorf("%w: %v is not a struct type", ErrNoConstructor, t)
	}
	return d, nil
}

// checkInstance verifies a constructed value against its contract and
// returns it unwrapped from any interface.
func checkInstance(v reflect.Value, contract reflect.Type) (reflect.Value, error) {
	if !v.IsValid() {
		return v, ErrNilInstance
	}
	switch v.Kind() {
	case reflect.Interface:
		if v.IsNil() {
			return v, ErrNilInstance
		}
		v = v.Elem()
	}
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		if v.IsNil() {
			return v, ErrNilInstance
		}
	}
	if !v.Type().AssignableTo(contract) {
		return v, fmt.Errorf("%w: %v does not satisfy %v", ErrNotAssignable, v.Type(), contract)
	}
	return v, nil
}
