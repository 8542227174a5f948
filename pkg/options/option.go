package options

import (
	"errors"
	"fmt"

	"github.com/dobrovols/optkit/internal/flagparse"
)

// Option is the capability every declarable option satisfies. A
// concrete option type embeds Base (directly, or through another
// option type it extends) and implements Name on itself; Description
// and the unexported plumbing come promoted from Base, which seals
// the interface to types built that way.
type Option interface {
	// Name returns the declaration name: "long" or "long,S".
	Name() string
	// Description returns the free-text description; Base supplies "".
	Description() string
	// IsSet reports whether a value was explicitly supplied.
	IsSet() bool

	bind(self Option, owner *Registry)
	schema() (flagparse.Flag, error)
	setParsed(v any) error
	checkValid() error
}

// Base is the generic foundation of a concrete option type. Embed it
// by value and implement Name on the embedding type. Optional hooks,
// shadowed on the embedding type, refine behavior:
//
//	Description() string  help text, "" by default
//	Default() (T, bool)   default value, none by default
//	Resolve() (T, error)  post-processed value, Raw() by default
//
// Hooks are dispatched through the instance stored in the registry,
// so a hook shadowed by a more derived type wins even when the option
// is read through one of its ancestors. A Resolve implementation
// reads Raw (calling Value from inside Resolve would recurse) and
// may consult sibling options through Registry.
type Base[T any] struct {
	value T
	set   bool
	self  Option
	owner *Registry
}

// Set assigns the raw value. No validity check runs here; checks are
// deferred to Value reads or an explicit Registry.Validate.
func (b *Base[T]) Set(v T) {
	b.value = v
	b.set = true
}

// IsSet reports whether a value was explicitly supplied by Set or by
// parsing. A default alone does not count.
func (b *Base[T]) IsSet() bool {
	return b.set
}

// Raw returns the explicitly supplied value if present, else the
// default, else ErrNotSet.
func (b *Base[T]) Raw() (T, error) {
	if b.set {
		return b.value, nil
	}
	if v, ok := b.defaultValue(); ok {
		return v, nil
	}
	var zero T
	if b.self == nil {
		return zero, fmt.Errorf("%w: no value and no default", ErrNotSet)
	}
	return zero, fmt.Errorf("%w: --%s has no value and no default", ErrNotSet, optionLabel(b.self))
}

// Value returns the post-processed value: the outermost Resolve hook
// when the concrete type provides one, else the raw value. It is
// computed on every call, so a validity failure surfaces exactly at
// the read.
func (b *Base[T]) Value() (T, error) {
	if b.self != nil {
		if h, ok := b.self.(interface{ Resolve() (T, error) }); ok {
			return h.Resolve()
		}
	}
	return b.Raw()
}

// Default reports no default value. Embedding types shadow it to
// supply one.
func (b *Base[T]) Default() (T, bool) {
	var zero T
	return zero, false
}

// Description returns "". Embedding types shadow it to supply help
// text.
func (b *Base[T]) Description() string {
	return ""
}

// Registry returns the owning registry, or nil for an instance that
// was never declared. Resolve hooks use it to read sibling options.
func (b *Base[T]) Registry() *Registry {
	return b.owner
}

func (b *Base[T]) defaultValue() (T, bool) {
	if b.self != nil {
		if h, ok := b.self.(interface{ Default() (T, bool) }); ok {
			return h.Default()
		}
	}
	return b.Default()
}

// bind stores the outermost instance and the owning registry. The
// registry calls it at insertion and again after every clone; value
// reads and hook dispatch are undefined before the first bind.
func (b *Base[T]) bind(self Option, owner *Registry) {
	b.self = self
	b.owner = owner
}

func (b *Base[T]) schema() (flagparse.Flag, error) {
	long, short, err := SplitName(b.self.Name())
	if err != nil {
		return flagparse.Flag{}, err
	}
	return flagparse.Flag{
		Long:      long,
		Shorthand: short,
		Usage:     b.self.Description(),
		New:       flagparse.NewScalar[T],
	}, nil
}

func (b *Base[T]) setParsed(v any) error {
	tv, ok := v.(T)
	if !ok {
		return fmt.Errorf("option --%s: parsed value has type %T, want %T", optionLabel(b.self), v, tv)
	}
	b.Set(tv)
	return nil
}

// checkValid resolves the value once and reports failures other than
// plain absence: an unset option without a default is not invalid.
func (b *Base[T]) checkValid() error {
	if _, err := b.Value(); err != nil && !errors.Is(err, ErrNotSet) {
		return err
	}
	return nil
}
