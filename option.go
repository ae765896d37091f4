package abd

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"
)

// Option is a configurable behavior applied to a Wrapper at construction.
type Option func(*Wrapper) error

// Options is an aggregate Option that allows several options to be
// grouped together.
type Options []Option

func (o Options) apply(w *Wrapper) (err error) {
	for _, opt := range o {
		if opt != nil {
			err = multierr.Append(err, opt(w))
		}
	}

	return
}

// WithName overrides the metadata name, which otherwise defaults to the
// name the runtime reports for the function.
func WithName(name string) Option {
	return func(w *Wrapper) error {
		w.target.name = name
		return nil
	}
}

// WithDoc sets the documentation text for the decorated object.
func WithDoc(doc string) Option {
	return func(w *Wrapper) error {
		w.target.doc = doc
		return nil
	}
}

// WithParams declares the parameter names of the decorated function, in order.
// These names are what allow keyword arguments to be matched to positions.
//
// Fewer names than parameters may be given, in which case only the leading
// parameters may be passed by keyword.  A variadic parameter cannot be named.
func WithParams(names ...string) Option {
	return func(w *Wrapper) error {
		ft := w.target.Type()
		fixed := ft.NumIn()
		if ft.IsVariadic() {
			fixed--
		}

		if len(names) > fixed {
			return fmt.Errorf("%d parameter names given for %d parameters", len(names), fixed)
		}

		seen := make(map[string]bool, len(names))
		for _, n := range names {
			switch {
			case len(n) == 0:
				return errors.New("parameter names cannot be blank")

			case seen[n]:
				return fmt.Errorf("duplicate parameter name %q", n)
			}

			seen[n] = true
		}

		w.target.params = append([]string(nil), names...)
		return nil
	}
}

// WithArgs appends positional decorator options.
func WithArgs(args ...any) Option {
	return func(w *Wrapper) error {
		w.args = append(w.args, args...)
		return nil
	}
}

// WithKwargs sets keyword decorator options, overwriting any existing
// options with the same names.
func WithKwargs(kwargs map[string]any) Option {
	return func(w *Wrapper) error {
		for k, v := range kwargs {
			w.setOption(k, v)
		}

		return nil
	}
}

// WithKwarg sets a single keyword decorator option.
func WithKwarg(name string, value any) Option {
	return func(w *Wrapper) error {
		w.setOption(name, value)
		return nil
	}
}
