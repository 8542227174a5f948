package polyval

import "reflect"

// Relation describes how one concrete type relates to another through
// struct embedding.
type Relation int

const (
	// Unrelated means neither type embeds the other.
	Unrelated Relation = iota
	// Identical means both types are the same.
	Identical
	// Descendant means the first type embeds the second, possibly
	// through intermediate embedded structs.
	Descendant
	// Ancestor means the second type embeds the first.
	Ancestor
)

// String returns the relation name for logs and test output.
func (r Relation) String() string {
	switch r {
	case Identical:
		return "identical"
	case Descendant:
		return "descendant"
	case Ancestor:
		return "ancestor"
	default:
		return "unrelated"
	}
}

// TypeRelation classifies struct type a against struct type b. Only
// anonymous value fields count as embedding: a pointer embed shares
// state and cannot satisfy by-value clone semantics.
func TypeRelation(a, b reflect.Type) Relation {
	switch {
	case a == nil || b == nil:
		return Unrelated
	case a == b:
		return Identical
	case embeds(a, b):
		return Descendant
	case embeds(b, a):
		return Ancestor
	default:
		return Unrelated
	}
}

// EmbedPath returns the field index path from outer to the embedded
// inner type, suitable for reflect.Value.FieldByIndex. The second
// result is false when outer does not embed inner.
func EmbedPath(outer, inner reflect.Type) ([]int, bool) {
	if outer == nil || inner == nil || outer.Kind() != reflect.Struct {
		return nil, false
	}
	for i := 0; i < outer.NumField(); i++ {
		f := outer.Field(i)
		if !f.Anonymous || f.Type.Kind() != reflect.Struct {
			continue
		}
		if f.Type == inner {
			return []int{i}, true
		}
		if rest, ok := EmbedPath(f.Type, inner); ok {
			return append([]int{i}, rest...), true
		}
	}
	return nil, false
}

func embeds(outer, inner reflect.Type) bool {
	_, ok := EmbedPath(outer, inner)
	return ok
}
