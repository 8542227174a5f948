package options_test

import (
	"errors"
	"testing"

	"github.com/dobrovols/optkit/pkg/options"
)

type MinPt struct {
	options.Base[float64]
}

func (MinPt) Name() string             { return "min-pt" }
func (MinPt) Description() string      { return "minimum transverse momentum" }
func (MinPt) Default() (float64, bool) { return 15.0, true }

type TighterMinPt struct {
	MinPt
}

func (TighterMinPt) Default() (float64, bool) { return 25.4, true }

type NFrames struct {
	options.Base[int]
}

func (NFrames) Name() string         { return "n-frames" }
func (NFrames) Default() (int, bool) { return 1000, true }

func (o NFrames) Resolve() (int, error) {
	v, err := o.Raw()
	if err != nil {
		return 0, err
	}
	if v < 0 {
		return 0, options.NewInvalidValue(&o, "number of frames must be non-negative, got %d", v)
	}
	return v, nil
}

func TestValueWithoutDefaultIsNotSet(t *testing.T) {
	r := options.New()
	options.MustDeclare[InFile](r)

	set, err := options.IsSet[InFile](r)
	if err != nil {
		t.Fatalf("is set: %v", err)
	}
	if set {
		t.Fatalf("option must not be set before a value is supplied")
	}
	_, err = options.GetValue[InFile, string](r)
	if !errors.Is(err, options.ErrNotSet) {
		t.Fatalf("expected ErrNotSet, got %v", err)
	}
}

func TestSetOverwritesValue(t *testing.T) {
	r := options.New()
	options.MustDeclare[NElectrons](r)

	options.Set[NElectrons](r, 12)
	options.Set[NElectrons](r, 33)

	v, err := options.GetValue[NElectrons, int](r)
	if err != nil {
		t.Fatalf("get value: %v", err)
	}
	if v != 33 {
		t.Fatalf("expected 33, got %d", v)
	}
	set, err := options.IsSet[NElectrons](r)
	if err != nil {
		t.Fatalf("is set: %v", err)
	}
	if !set {
		t.Fatalf("option must report set after an explicit assignment")
	}
}

func TestDefaultDoesNotMarkSet(t *testing.T) {
	r := options.New()
	options.MustDeclare[MinMomentum](r)

	v, err := options.GetValue[MinMomentum, float64](r)
	if err != nil {
		t.Fatalf("get value: %v", err)
	}
	if v != 0.1 {
		t.Fatalf("expected default 0.1, got %v", v)
	}
	set, err := options.IsSet[MinMomentum](r)
	if err != nil {
		t.Fatalf("is set: %v", err)
	}
	if set {
		t.Fatalf("a default value must not count as set")
	}
}

func TestDerivedDefaultWinsThroughAncestorRead(t *testing.T) {
	r := options.New()
	options.MustDeclare[MinPt](r)

	v, err := options.GetValue[MinPt, float64](r)
	if err != nil {
		t.Fatalf("get value: %v", err)
	}
	if v != 15.0 {
		t.Fatalf("expected base default 15.0, got %v", v)
	}

	options.MustDeclare[TighterMinPt](r)

	v, err = options.GetValue[MinPt, float64](r)
	if err != nil {
		t.Fatalf("get value after substitution: %v", err)
	}
	if v != 25.4 {
		t.Fatalf("expected derived default 25.4, got %v", v)
	}
}

func TestResolveValidatesLazily(t *testing.T) {
	r := options.New()
	options.MustDeclare[NFrames](r)

	// Assigning an out-of-range value succeeds; the error surfaces on read.
	options.Set[NFrames](r, -5)

	o, err := options.Get[NFrames](r)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	raw, err := o.Raw()
	if err != nil {
		t.Fatalf("raw: %v", err)
	}
	if raw != -5 {
		t.Fatalf("raw value must bypass validation, got %d", raw)
	}

	_, err = options.GetValue[NFrames, int](r)
	if !errors.Is(err, options.ErrInvalidValue) {
		t.Fatalf("expected ErrInvalidValue, got %v", err)
	}

	options.Set[NFrames](r, 10)
	v, err := options.GetValue[NFrames, int](r)
	if err != nil {
		t.Fatalf("get value: %v", err)
	}
	if v != 10 {
		t.Fatalf("expected 10, got %d", v)
	}
}

func TestInvalidValueError(t *testing.T) {
	err := options.NewInvalidValue(&NFrames{}, "bad count %d", 7)
	if got, want := err.Error(), "invalid value for option --n-frames: bad count 7"; got != want {
		t.Fatalf("error message: got %q, want %q", got, want)
	}
	if !errors.Is(err, options.ErrInvalidValue) {
		t.Fatalf("expected errors.Is(ErrInvalidValue) to hold")
	}
	var ive *options.InvalidValueError
	if !errors.As(err, &ive) {
		t.Fatalf("expected an *InvalidValueError")
	}
	if ive.Reason != "bad count 7" {
		t.Fatalf("unexpected reason %q", ive.Reason)
	}
}

func TestSwitchDefaultsToFalse(t *testing.T) {
	r := options.New()
	options.MustDeclare[Batch](r)

	v, err := options.GetValue[Batch, bool](r)
	if err != nil {
		t.Fatalf("get value: %v", err)
	}
	if v {
		t.Fatalf("a switch must default to false")
	}
	if options.IsDeclaredAndSet[Batch](r) {
		t.Fatalf("a switch must not report set before parsing")
	}
}

func TestDescriptions(t *testing.T) {
	r := options.New()
	options.MustDeclare[NElectrons](r)
	options.MustDeclare[MinMomentum](r)

	o, err := options.Get[NElectrons](r)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if o.Description() != "number of electrons to simulate" {
		t.Fatalf("unexpected description %q", o.Description())
	}

	m, err := options.Get[MinMomentum](r)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if m.Description() != "" {
		t.Fatalf("expected empty default description, got %q", m.Description())
	}
}

func TestValidate(t *testing.T) {
	r := options.New()
	options.MustDeclare[NFrames](r)

	if err := r.Validate(); err != nil {
		t.Fatalf("default value must validate, got %v", err)
	}

	options.Set[NFrames](r, -1)
	if err := r.Validate(); !errors.Is(err, options.ErrInvalidValue) {
		t.Fatalf("expected ErrInvalidValue, got %v", err)
	}
}
