package options

import (
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"slices"

	"github.com/dobrovols/optkit/pkg/polyval"
)

// Registry is an insertion-ordered collection of declared options,
// stored polymorphically and indexed by concrete type. A Registry is
// meant for one logical flow (construct, declare, parse, read) and
// provides no internal locking; treat it as read-only if shared
// between goroutines after parsing. Copy with Clone: plain struct
// assignment would alias the stored options.
type Registry struct {
	entries []entry
}

type entry struct {
	store polyval.Value[Option]
	long  string
	short string
}

func (e *entry) declaredName() string {
	return joinName(e.long, e.short)
}

// New returns an empty Registry.
func New() *Registry {
	return &Registry{}
}

// Declare registers option type O. Declaring the exact stored type
// again is a no-op. Declaring a type that embeds a stored one
// replaces the stored instance in place; declaring an ancestor of a
// stored type leaves the stored instance; in both cases the two
// types must agree on the name. An unrelated type whose long or short
// name collides with a stored one fails with ErrDeclarationConflict.
func Declare[O any, PO interface {
	*O
	Option
}](r *Registry) error {
	return r.declare(PO(new(O)))
}

// MustDeclare is Declare, panicking on error. Intended for wiring
// code whose option set is static.
func MustDeclare[O any, PO interface {
	*O
	Option
}](r *Registry) {
	if err := Declare[O, PO](r); err != nil {
		panic(err)
	}
}

// Group is an ordered bundle of option prototypes; compose groups
// with Merge and declare them with DeclareOptions.
type Group []Option

// Merge flattens groups into one, preserving order.
func Merge(groups ...Group) Group {
	var out Group
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

// DeclareOptions declares each prototype in order, stopping at the
// first error. Prototypes are cloned into the registry, so the
// caller's instances stay detached; state already set on a prototype,
// such as a pre-seeded value, is carried into the clone.
func (r *Registry) DeclareOptions(protos ...Option) error {
	for _, p := range protos {
		if err := r.declare(polyval.Of[Option](p).Clone().Get()); err != nil {
			return err
		}
	}
	return nil
}

// declare inserts inst, enforcing type uniqueness, name uniqueness,
// and more-specific-wins substitution independent of declaration
// order.
func (r *Registry) declare(inst Option) error {
	long, short, err := SplitName(inst.Name())
	if err != nil {
		return err
	}
	rt := reflect.TypeOf(inst)
	if rt.Kind() != reflect.Pointer || rt.Elem().Kind() != reflect.Struct {
		panic(fmt.Sprintf("options: declare requires a struct pointer, got %T", inst))
	}
	t := rt.Elem()

	related := -1
	relation := polyval.Unrelated
	for i := range r.entries {
		e := &r.entries[i]
		switch rel := polyval.TypeRelation(t, e.store.ConcreteType()); rel {
		case polyval.Unrelated:
			if e.long == long {
				return fmt.Errorf("%w: long name %q used by both %s and %s",
					ErrDeclarationConflict, long, e.store.ConcreteType(), t)
			}
			if short != "" && e.short == short {
				return fmt.Errorf("%w: short name %q used by both %s and %s",
					ErrDeclarationConflict, short, e.store.ConcreteType(), t)
			}
		default:
			if related >= 0 {
				return fmt.Errorf("%w: %s is related to multiple stored options",
					ErrDeclarationConflict, t)
			}
			if e.long != long || e.short != short {
				return fmt.Errorf("%w: %s and %s are related but declare different names %q and %q",
					ErrDeclarationConflict, t, e.store.ConcreteType(), joinName(long, short), e.declaredName())
			}
			related, relation = i, rel
		}
	}

	switch relation {
	case polyval.Identical, polyval.Ancestor:
		// The stored entry already covers inst.
		return nil
	case polyval.Descendant:
		e := &r.entries[related]
		e.store = polyval.Of[Option](inst)
		inst.bind(inst, r)
		slog.Debug("Replaced option with more specific type.", "name", long, "type", t.String())
		return nil
	default:
		r.entries = append(r.entries, entry{store: polyval.Of[Option](inst), long: long, short: short})
		inst.bind(inst, r)
		slog.Debug("Declared option.", "name", long, "type", t.String())
		return nil
	}
}

// find returns the index of the unique stored entry whose concrete
// type is O or embeds O.
func (r *Registry) find(t reflect.Type) (int, error) {
	found := -1
	for i := range r.entries {
		switch polyval.TypeRelation(r.entries[i].store.ConcreteType(), t) {
		case polyval.Identical, polyval.Descendant:
			if found >= 0 {
				return -1, fmt.Errorf("%w: multiple stored options match %s", ErrDeclarationConflict, t)
			}
			found = i
		}
	}
	if found < 0 {
		return -1, fmt.Errorf("%w: %s", ErrNotDeclared, t)
	}
	return found, nil
}

// Forget removes the stored option assignable to type O, failing with
// ErrNotDeclared when there is none.
func Forget[O any](r *Registry) error {
	i, err := r.find(reflect.TypeFor[O]())
	if err != nil {
		return err
	}
	name := r.entries[i].long
	r.entries = slices.Delete(r.entries, i, i+1)
	slog.Debug("Forgot option.", "name", name)
	return nil
}

// IsDeclared reports whether an option of type O, or one derived from
// it, is stored.
func IsDeclared[O any](r *Registry) bool {
	_, err := r.find(reflect.TypeFor[O]())
	return err == nil
}

// IsDeclaredAndSet reports whether O is declared and explicitly set.
// Unlike IsSet it never errors: an undeclared O reads as false.
func IsDeclaredAndSet[O any](r *Registry) bool {
	set, err := IsSet[O](r)
	return err == nil && set
}

// Get returns the stored option viewed as *O. When a more derived
// type is stored, the result points into that instance, so value
// reads through it still dispatch the derived hooks. The derived type
// must embed O through exported fields for this interior access.
func Get[O any](r *Registry) (*O, error) {
	want := reflect.TypeFor[O]()
	i, err := r.find(want)
	if err != nil {
		return nil, err
	}
	inst := r.entries[i].store.Get()
	rv := reflect.ValueOf(inst).Elem()
	if rv.Type() == want {
		return rv.Addr().Interface().(*O), nil
	}

	path, ok := polyval.EmbedPath(rv.Type(), want)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotDeclared, want)
	}
	cur := rv.Type()
	for _, fi := range path {
		f := cur.Field(fi)
		if f.PkgPath != "" {
			return nil, fmt.Errorf("option %s is stored as %s and only reachable through the unexported field %s; embed ancestor option types as exported fields",
				want, rv.Type(), f.Name)
		}
		cur = f.Type
	}
	return rv.FieldByIndex(path).Addr().Interface().(*O), nil
}

// GetValue returns the post-processed value of option type O. Both
// type arguments are spelled out at the call site, since O's value
// type cannot be inferred without an argument:
//
//	n, err := options.GetValue[NElectrons, int](reg)
func GetValue[O any, T any](r *Registry) (T, error) {
	var zero T
	o, err := Get[O](r)
	if err != nil {
		return zero, err
	}
	h, ok := any(o).(interface{ Value() (T, error) })
	if !ok {
		return zero, fmt.Errorf("option %s does not produce %T values", reflect.TypeFor[O](), zero)
	}
	return h.Value()
}

// GetValueOr returns the post-processed value of option type O, or
// fallback when the option is unset and has no default. Validity
// failures and ErrNotDeclared still surface.
func GetValueOr[O any, T any](r *Registry, fallback T) (T, error) {
	v, err := GetValue[O, T](r)
	if err != nil {
		if errors.Is(err, ErrNotSet) {
			return fallback, nil
		}
		var zero T
		return zero, err
	}
	return v, nil
}

// Set assigns v as the raw value of the stored option of type O. The
// type of v must match the option's value type exactly.
func Set[O any, T any](r *Registry, v T) error {
	i, err := r.find(reflect.TypeFor[O]())
	if err != nil {
		return err
	}
	h, ok := r.entries[i].store.Get().(interface{ Set(T) })
	if !ok {
		return fmt.Errorf("option %s cannot be set from %T", reflect.TypeFor[O](), v)
	}
	h.Set(v)
	return nil
}

// IsSet reports whether the stored option of type O holds an
// explicitly supplied value. A default alone does not count.
func IsSet[O any](r *Registry) (bool, error) {
	i, err := r.find(reflect.TypeFor[O]())
	if err != nil {
		return false, err
	}
	return r.entries[i].store.Get().IsSet(), nil
}

// DeclareAndSet declares option type O and assigns its value in one
// step, failing when O or a type derived from it is already declared.
func DeclareAndSet[O any, PO interface {
	*O
	Option
}, T any](r *Registry, v T) error {
	if IsDeclared[O](r) {
		return fmt.Errorf("%w: %s is already declared", ErrDeclarationConflict, reflect.TypeFor[O]())
	}
	if err := Declare[O, PO](r); err != nil {
		return err
	}
	return Set[O](r, v)
}

// Force assigns v to option type O, declaring O first when it is not
// declared yet.
func Force[O any, PO interface {
	*O
	Option
}, T any](r *Registry, v T) error {
	if !IsDeclared[O](r) {
		if err := Declare[O, PO](r); err != nil {
			return err
		}
	}
	return Set[O](r, v)
}

// Len returns the number of stored options.
func (r *Registry) Len() int {
	return len(r.entries)
}

// Validate eagerly resolves every option that has a value, explicit
// or defaulted, and returns the first failure. Options that are unset
// with no default are skipped: absence is not a validity error.
func (r *Registry) Validate() error {
	for i := range r.entries {
		if err := r.entries[i].store.Get().checkValid(); err != nil {
			return err
		}
	}
	return nil
}

// Clone returns a deep copy of the registry. Every stored option is
// cloned with its concrete type and state preserved, and every
// clone's back-reference is re-pointed at the new registry before
// Clone returns, so no partially repaired registry is ever
// observable. Mutating a copy never affects the original.
func (r *Registry) Clone() *Registry {
	out := &Registry{entries: make([]entry, len(r.entries))}
	for i := range r.entries {
		e := r.entries[i]
		e.store = e.store.Clone()
		inst := e.store.Get()
		inst.bind(inst, out)
		out.entries[i] = e
	}
	return out
}
