package options

import (
	"fmt"
	"strings"
)

// SplitName splits a declaration name of the form "long" or "long,S"
// into its long and short parts. The long part must be non-empty and
// the short part, when present, must be a single letter; short is ""
// when the name carries no comma.
func SplitName(name string) (long, short string, err error) {
	if name == "" {
		return "", "", fmt.Errorf("%w: empty name", ErrNameFormat)
	}
	long, short, found := strings.Cut(name, ",")
	if !found {
		return name, "", nil
	}
	if long == "" {
		return "", "", fmt.Errorf("%w: %q is missing the long name", ErrNameFormat, name)
	}
	if short == "" {
		return "", "", fmt.Errorf("%w: %q has a comma but no short name", ErrNameFormat, name)
	}
	if len(short) != 1 || !isLetter(short[0]) {
		return "", "", fmt.Errorf("%w: %q: short name must be a single letter", ErrNameFormat, name)
	}
	return long, short, nil
}

// LongName returns o's long name.
func LongName(o Option) (string, error) {
	long, _, err := SplitName(o.Name())
	return long, err
}

// Shorthand returns o's one-letter short name, or "" when o declares
// none.
func Shorthand(o Option) (string, error) {
	_, short, err := SplitName(o.Name())
	return short, err
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// optionLabel renders o's long name for error messages, falling back
// to the raw declaration string when it cannot be split.
func optionLabel(o Option) string {
	if o == nil {
		return "?"
	}
	long, _, err := SplitName(o.Name())
	if err != nil {
		return o.Name()
	}
	return long
}

func joinName(long, short string) string {
	if short == "" {
		return long
	}
	return long + "," + short
}
