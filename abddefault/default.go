// Package abddefault supplies a decorator that fills in missing arguments
// from a set of defaults held as decorator options.
//
// Precedence, from highest to lowest, is:
//
//   - arguments given positionally
//   - arguments given by keyword
//   - the decorator's defaults
//
// Because Go has no runtime parameter names, the decorated function's
// parameters must be named with abd.WithParams.
package abddefault

import (
	"errors"

	"github.com/xmidt-org/abd"
)

// ErrNoParams is returned when the decorated function has no declared
// parameter names, which would leave no way to apply the defaults.
var ErrNoParams = errors.New("parameter names must be declared with abd.WithParams")

// Default is a decorated function with default arguments.  The defaults are
// the keyword decorator options, so they may be changed with SetOptions.
type Default struct {
	*abd.Wrapper
}

var _ abd.Invoker = (*Default)(nil)

// New decorates target so that any parameter not supplied by a call takes
// its value from defaults.  The wrapper options must include abd.WithParams.
func New(target any, defaults map[string]any, opts ...abd.Option) (*Default, error) {
	d := new(Default)

	var err error
	d.Wrapper, err = abd.New(
		target,
		d,
		append([]abd.Option{abd.WithKwargs(defaults)}, opts...)...,
	)

	if err != nil {
		return nil, err
	}

	if len(d.DecoratedObject().Params()) == 0 {
		return nil, ErrNoParams
	}

	return d, nil
}

// Invoke implements abd.Invoker.  Positional arguments are passed through as given.
// Every other declared parameter receives the call's keyword argument, if any, and
// otherwise the default, if any.
func (d *Default) Invoke(w *abd.Wrapper, c abd.Call) (abd.Results, error) {
	var (
		params      = w.DecoratedObject().Params()
		_, defaults = w.Options()
		kwargs      = make(map[string]any, len(defaults)+len(c.Kwargs))
	)

	for name, value := range defaults {
		kwargs[name] = value
	}

	for name, value := range c.Kwargs {
		kwargs[name] = value
	}

	// positional arguments take precedence over both keywords and defaults
	for i := 0; i < len(c.Args) && i < len(params); i++ {
		delete(kwargs, params[i])
	}

	return w.DecoratedObject().Call(abd.Call{
		Args:   c.Args,
		Kwargs: kwargs,
	})
}
