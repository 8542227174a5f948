// Package options implements a typed, declarative option registry.
// Concrete option types describe themselves (name, description,
// default value, post-processing), and a Registry stores one instance
// per declared type behind a polymorphic value, feeds parsed
// command-line and config-file input into them, and hands values back
// through type-safe accessors.
//
// An option type embeds Base with its value type and implements Name:
//
//	type NElectrons struct {
//		options.Base[int]
//	}
//
//	func (NElectrons) Name() string        { return "n-electrons,N" }
//	func (NElectrons) Description() string { return "number of electrons to simulate" }
//
// Usage:
//
//	reg := options.New()
//	if err := options.Declare[NElectrons](reg); err != nil {
//		// ...
//	}
//	if err := reg.Parse(os.Args); err != nil {
//		// ...
//	}
//	opt, err := options.Get[NElectrons](reg)
//	if err != nil {
//		// ...
//	}
//	n, err := opt.Value()
//
// Option types may shadow Default to supply a default value and
// Resolve to post-process or validate the raw value; a Resolve hook
// can read sibling options through the owning registry. Declaring a
// type that embeds an already declared one replaces the stored
// instance while keeping the declared name, and the more specific
// type wins regardless of declaration order.
package options
