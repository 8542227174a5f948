// Package polyval stores polymorphic values with value semantics. A
// Value owns one concrete implementation of a capability interface,
// can be deep-copied without the call site knowing the concrete type,
// and answers how its concrete type relates to another Value's. It is
// independent of the option system and usable on its own.
package polyval

import (
	"fmt"
	"reflect"
)

// Value owns a single concrete implementation of the capability
// interface C. The concrete object is reached only through C; its
// type is recovered for identity checks, never exposed for access.
//
// The zero Value is empty. Assigning a Value copies the handle, not
// the stored object; Clone produces an independent copy.
type Value[C any] struct {
	impl C
}

// Of wraps impl, which must be a non-nil pointer to a struct
// implementing C. Passing anything else is a programming error and
// panics.
func Of[C any](impl C) Value[C] {
	rv := reflect.ValueOf(impl)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		panic(fmt.Sprintf("polyval: Of requires a non-nil struct pointer, got %T", impl))
	}
	return Value[C]{impl: impl}
}

// Empty reports whether no value is stored.
func (v Value[C]) Empty() bool {
	return any(v.impl) == nil
}

// Get returns the stored object through the capability interface.
// Calling Get on an empty Value is a programming error and panics.
func (v Value[C]) Get() C {
	if v.Empty() {
		panic("polyval: Get on empty Value")
	}
	return v.impl
}

// Clone returns a Value owning a fresh copy of the stored object,
// with its dynamic type and every field preserved, unexported fields
// included. Cloning an empty Value yields an empty Value.
func (v Value[C]) Clone() Value[C] {
	if v.Empty() {
		return Value[C]{}
	}
	src := reflect.ValueOf(v.impl).Elem()
	dst := reflect.New(src.Type())
	dst.Elem().Set(src)
	return Value[C]{impl: dst.Interface().(C)}
}

// ConcreteType returns the struct type of the stored object, or nil
// for an empty Value.
func (v Value[C]) ConcreteType() reflect.Type {
	if v.Empty() {
		return nil
	}
	return reflect.TypeOf(v.impl).Elem()
}

// RelationTo classifies this Value's concrete type against other's.
func (v Value[C]) RelationTo(other Value[C]) Relation {
	return TypeRelation(v.ConcreteType(), other.ConcreteType())
}
