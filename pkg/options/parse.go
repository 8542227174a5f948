package options

import (
	"log/slog"

	"github.com/dobrovols/optkit/internal/flagparse"
)

// Parse parses command-line arguments into the declared options.
// args is os.Args-shaped: the first element is the program name and
// is skipped. Options absent from the input stay unset; absence only
// surfaces as ErrNotSet when a value is later read without a default.
func (r *Registry) Parse(args []string) error {
	return r.ParseWithConfig(args, "")
}

// ParseWithConfig parses command-line arguments and, when configPath
// is non-empty, a config file. For the same option the command line
// wins over the file, silently. Names not declared in the registry
// fail with a *ParseError from either source.
func (r *Registry) ParseWithConfig(args []string, configPath string) error {
	flags := make([]flagparse.Flag, 0, len(r.entries))
	for i := range r.entries {
		f, err := r.entries[i].store.Get().schema()
		if err != nil {
			return err
		}
		flags = append(flags, f)
	}

	if len(args) > 0 {
		args = args[1:]
	}
	values, err := flagparse.Run(flags, args, configPath)
	if err != nil {
		return &ParseError{Err: err}
	}

	for i := range r.entries {
		e := &r.entries[i]
		v, ok := values[e.long]
		if !ok {
			continue
		}
		if err := e.store.Get().setParsed(v); err != nil {
			return err
		}
	}
	slog.Debug("Parsed options.", "provided", len(values), "declared", len(r.entries))
	return nil
}
