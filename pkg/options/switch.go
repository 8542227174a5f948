package options

import "github.com/dobrovols/optkit/internal/flagparse"

// Switch is a boolean option that is true when its name appears on
// the command line without a value: --batch and -b mean true,
// --batch=0 and -b0 mean false, absence means false.
type Switch struct {
	Base[bool]
}

// Default is false, so an absent switch reads as false rather than
// failing with ErrNotSet.
func (s Switch) Default() (bool, bool) {
	return false, true
}

func (s *Switch) schema() (flagparse.Flag, error) {
	f, err := s.Base.schema()
	if err != nil {
		return f, err
	}
	f.Switch = true
	return f, nil
}
