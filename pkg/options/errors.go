package options

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by declaration, lookup, and read paths.
// Raise sites wrap them with context, so match with errors.Is.
var (
	// ErrNameFormat reports a malformed option name string.
	ErrNameFormat = errors.New("malformed option name")
	// ErrDeclarationConflict reports a name collision between
	// unrelated option types, or a declaration that would rename a
	// stored option.
	ErrDeclarationConflict = errors.New("option declaration conflict")
	// ErrNotDeclared reports access to an option type that was never
	// declared or was forgotten.
	ErrNotDeclared = errors.New("option not declared")
	// ErrNotSet reports a read of an option that has neither a value
	// nor a default.
	ErrNotSet = errors.New("option not set")
	// ErrInvalidValue is matched by every InvalidValueError.
	ErrInvalidValue = errors.New("invalid option value")
)

// InvalidValueError reports a Resolve hook rejecting an option's raw
// value, with a human-readable reason.
type InvalidValueError struct {
	Option string
	Reason string
}

// NewInvalidValue builds an InvalidValueError labeled with o's long
// name.
func NewInvalidValue(o Option, format string, args ...any) *InvalidValueError {
	return &InvalidValueError{Option: optionLabel(o), Reason: fmt.Sprintf(format, args...)}
}

// Error describes the rejected option and the reason.
func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("invalid value for option --%s: %s", e.Option, e.Reason)
}

// Is matches ErrInvalidValue, so callers can class-test with
// errors.Is without naming the concrete type.
func (e *InvalidValueError) Is(target error) bool {
	return target == ErrInvalidValue
}

// ParseError reports the external flag parser rejecting command-line
// or config-file input: an unknown name, a malformed value, or an
// unreadable file.
type ParseError struct {
	Err error
}

// Error describes the parse failure.
func (e *ParseError) Error() string {
	return "parse options: " + e.Err.Error()
}

// Unwrap exposes the parser's underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}
