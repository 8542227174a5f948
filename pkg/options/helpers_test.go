package options_test

import "github.com/dobrovols/optkit/pkg/options"

// Option types shared across the test files in this package.

type NElectrons struct {
	options.Base[int]
}

func (NElectrons) Name() string        { return "n-electrons,N" }
func (NElectrons) Description() string { return "number of electrons to simulate" }

type MinMomentum struct {
	options.Base[float64]
}

func (MinMomentum) Name() string             { return "min-e-momentum" }
func (MinMomentum) Default() (float64, bool) { return 0.1, true }

type Batch struct {
	options.Switch
}

func (Batch) Name() string        { return "batch,b" }
func (Batch) Description() string { return "run in batch mode" }

type InFile struct {
	options.Base[string]
}

func (InFile) Name() string { return "in-file" }

type OutFile struct {
	options.Base[string]
}

func (OutFile) Name() string { return "out-file" }

// argv builds an os.Args-shaped argument vector.
func argv(args ...string) []string {
	return append([]string{"optkit-test"}, args...)
}
