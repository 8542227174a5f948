// Package flagparse adapts declared option schemas to the pflag
// library: it turns a schema into a pflag.FlagSet, feeds it
// command-line tokens and optional config-file pairs, and returns the
// values that were actually provided.
package flagparse

import (
	"fmt"
	"io"

	"github.com/spf13/pflag"
)

// Flag describes one option in the parsing schema.
type Flag struct {
	Long      string
	Shorthand string
	Usage     string
	Switch    bool
	New       func() Value
}

// Run parses argv (program name already stripped) and, when configPath
// is non-empty, the config file, into a map keyed by long flag name.
// Command-line values win over file values, and only flags that were
// actually provided appear in the result; registered defaults are the
// caller's concern. Unknown names and leftover positional arguments
// fail.
func Run(flags []Flag, argv []string, configPath string) (map[string]any, error) {
	fs := pflag.NewFlagSet("options", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.SortFlags = false

	holders := make(map[string]Value, len(flags))
	for _, f := range flags {
		if f.New == nil {
			return nil, fmt.Errorf("flag %q has no value factory", f.Long)
		}
		v := f.New()
		holders[f.Long] = v
		pf := fs.VarPF(v, f.Long, f.Shorthand, f.Usage)
		if f.Switch {
			pf.NoOptDefVal = "true"
		}
	}

	if err := fs.Parse(rewriteStickyShorthands(flags, argv)); err != nil {
		return nil, fmt.Errorf("command line: %w", err)
	}
	if rest := fs.Args(); len(rest) > 0 {
		return nil, fmt.Errorf("command line: unexpected argument %q", rest[0])
	}
	if configPath != "" {
		if err := applyFile(fs, configPath); err != nil {
			return nil, err
		}
	}

	out := make(map[string]any, len(flags))
	fs.Visit(func(pf *pflag.Flag) {
		if h, ok := holders[pf.Name]; ok {
			out[pf.Name] = h.Get()
		}
	})
	return out, nil
}

// applyFile overlays config-file pairs onto fs. Flags already changed
// keep their command-line value; within the file the first occurrence
// of a key wins.
func applyFile(fs *pflag.FlagSet, path string) error {
	pairs, err := ReadFile(path)
	if err != nil {
		return err
	}
	for _, p := range pairs {
		pf := fs.Lookup(p.Key)
		if pf == nil {
			return fmt.Errorf("config file %s: unknown option %q", path, p.Key)
		}
		if pf.Changed {
			continue
		}
		if err := fs.Set(p.Key, p.Value); err != nil {
			return fmt.Errorf("config file %s: option %q: %w", path, p.Key, err)
		}
	}
	return nil
}

// rewriteStickyShorthands rewrites "-b0" into "--batch=0" for switch
// shorthands. pflag resolves a shorthand carrying an implicit value
// before it looks at trailing characters, so the sticky form would
// otherwise be read as further grouped shorthands.
func rewriteStickyShorthands(flags []Flag, argv []string) []string {
	switches := make(map[byte]string)
	for _, f := range flags {
		if f.Switch && len(f.Shorthand) == 1 {
			switches[f.Shorthand[0]] = f.Long
		}
	}
	if len(switches) == 0 {
		return argv
	}

	out := make([]string, len(argv))
	copy(out, argv)
	for i, arg := range out {
		if arg == "--" {
			break
		}
		if len(arg) > 2 && arg[0] == '-' && arg[1] != '-' && arg[2] != '=' {
			if long, ok := switches[arg[1]]; ok {
				out[i] = "--" + long + "=" + arg[2:]
			}
		}
	}
	return out
}
