package flagparse

import (
	"encoding"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/pflag"
)

// Value is a typed flag container: pflag's contract plus access to
// the parsed result.
type Value interface {
	pflag.Value
	Get() any
}

// Scalar holds a single value of type T parsed from its textual form.
type Scalar[T any] struct {
	val T
	ok  bool
}

// NewScalar returns an empty Scalar holder; its signature matches
// Flag.New so an instantiation can be used as the factory directly.
func NewScalar[T any]() Value {
	return &Scalar[T]{}
}

// Set parses raw and stores the result.
func (s *Scalar[T]) Set(raw string) error {
	v, err := parseText[T](raw)
	if err != nil {
		return err
	}
	s.val = v
	s.ok = true
	return nil
}

// Get returns the most recently parsed value.
func (s *Scalar[T]) Get() any { return s.val }

// String renders the current value, or "" before any Set.
func (s *Scalar[T]) String() string {
	if !s.ok {
		return ""
	}
	return fmt.Sprint(s.val)
}

// Type names the value type in pflag diagnostics.
func (s *Scalar[T]) Type() string {
	var zero T
	return fmt.Sprintf("%T", zero)
}

// parseText converts the textual form of a flag value into T. Types
// outside the supported set may implement encoding.TextUnmarshaler on
// their pointer to participate.
func parseText[T any](raw string) (T, error) {
	var out T
	switch p := any(&out).(type) {
	case *string:
		*p = raw
	case *bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return out, fmt.Errorf("invalid boolean %q", raw)
		}
		*p = b
	case *int:
		n, err := strconv.ParseInt(raw, 10, 0)
		if err != nil {
			return out, fmt.Errorf("invalid integer %q", raw)
		}
		*p = int(n)
	case *int32:
		n, err := strconv.ParseInt(raw, 10, 32)
		if err != nil {
			return out, fmt.Errorf("invalid integer %q", raw)
		}
		*p = int32(n)
	case *int64:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return out, fmt.Errorf("invalid integer %q", raw)
		}
		*p = n
	case *uint:
		n, err := strconv.ParseUint(raw, 10, 0)
		if err != nil {
			return out, fmt.Errorf("invalid unsigned integer %q", raw)
		}
		*p = uint(n)
	case *uint32:
		n, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return out, fmt.Errorf("invalid unsigned integer %q", raw)
		}
		*p = uint32(n)
	case *uint64:
		n, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return out, fmt.Errorf("invalid unsigned integer %q", raw)
		}
		*p = n
	case *float32:
		f, err := strconv.ParseFloat(raw, 32)
		if err != nil {
			return out, fmt.Errorf("invalid number %q", raw)
		}
		*p = float32(f)
	case *float64:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return out, fmt.Errorf("invalid number %q", raw)
		}
		*p = f
	case *time.Duration:
		d, err := time.ParseDuration(raw)
		if err != nil {
			return out, fmt.Errorf("invalid duration %q", raw)
		}
		*p = d
	default:
		if u, ok := any(&out).(encoding.TextUnmarshaler); ok {
			if err := u.UnmarshalText([]byte(raw)); err != nil {
				return out, err
			}
			return out, nil
		}
		return out, fmt.Errorf("unsupported option value type %T", out)
	}
	return out, nil
}
