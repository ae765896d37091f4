// Package abdcontract supplies a decorator that enforces the types of the
// values flowing into and out of a decorated function.
//
// Go's static types already guarantee much of this for direct calls.  Calls
// through an abd.Wrapper, however, carry untyped arguments that would otherwise
// be converted where possible.  A Contract refuses anything that isn't exactly
// assignable to the parameter, and can further narrow interface-typed parameters
// and results to a union of allowed types.
package abdcontract

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/xmidt-org/abd"
	"github.com/xmidt-org/abd/internal/abdreflect"
	"go.uber.org/multierr"
)

const (
	// IncomingOption is the keyword decorator option that controls argument checks
	IncomingOption = "incoming"

	// OutgoingOption is the keyword decorator option that controls result checks
	OutgoingOption = "outgoing"
)

// Violation is the error returned when a value breaks the contract.
type Violation struct {
	Message string
}

func (v *Violation) Error() string {
	return v.Message
}

// Option is a configurable behavior for a Contract.
type Option func(*Contract) error

// Param narrows the allowed types of the positional parameter i.  Each type
// may be a reflect.Type or a prototype value, e.g. "" for string.
func Param(i int, types ...any) Option {
	return func(c *Contract) error {
		if i < 0 {
			return fmt.Errorf("invalid parameter index %d", i)
		}

		c.params[i] = append(c.params[i], typesOf(types)...)
		return nil
	}
}

// Named is like Param, but identifies the parameter by the name declared
// with abd.WithParams.
func Named(name string, types ...any) Option {
	return func(c *Contract) error {
		c.named[name] = append(c.named[name], typesOf(types)...)
		return nil
	}
}

// Return narrows the allowed dynamic types of result i.
func Return(i int, types ...any) Option {
	return func(c *Contract) error {
		if i < 0 {
			return fmt.Errorf("invalid result index %d", i)
		}

		c.returns[i] = append(c.returns[i], typesOf(types)...)
		return nil
	}
}

// Incoming toggles argument checks.  The default is true.
func Incoming(f bool) Option {
	return func(c *Contract) error {
		c.incoming = f
		return nil
	}
}

// Outgoing toggles result checks.  The default is true.
func Outgoing(f bool) Option {
	return func(c *Contract) error {
		c.outgoing = f
		return nil
	}
}

// WrapperOptions supplies options for the underlying *abd.Wrapper.
func WrapperOptions(opts ...abd.Option) Option {
	return func(c *Contract) error {
		c.wopts = append(c.wopts, opts...)
		return nil
	}
}

func typesOf(types []any) []reflect.Type {
	ts := make([]reflect.Type, 0, len(types))
	for _, t := range types {
		if rt := abdreflect.TypeOf(t); rt != nil {
			ts = append(ts, rt)
		}
	}

	return ts
}

// Contract is a decorated function that checks its arguments and results.
// The Incoming and Outgoing settings are kept as decorator options, so they
// may be changed afterward with SetOptions.
type Contract struct {
	*abd.Wrapper

	incoming bool
	outgoing bool
	wopts    []abd.Option

	params  map[int][]reflect.Type
	named   map[string][]reflect.Type
	returns map[int][]reflect.Type
}

var _ abd.Invoker = (*Contract)(nil)

// New decorates target with a Contract.
func New(target any, opts ...Option) (*Contract, error) {
	c := &Contract{
		incoming: true,
		outgoing: true,
		params:   make(map[int][]reflect.Type),
		named:    make(map[string][]reflect.Type),
		returns:  make(map[int][]reflect.Type),
	}

	var err error
	for _, o := range opts {
		err = multierr.Append(err, o(c))
	}

	if err != nil {
		return nil, err
	}

	c.Wrapper, err = abd.New(
		target,
		c,
		append(
			[]abd.Option{
				abd.WithKwarg(IncomingOption, c.incoming),
				abd.WithKwarg(OutgoingOption, c.outgoing),
			},
			c.wopts...,
		)...,
	)

	if err != nil {
		return nil, err
	}

	if err := c.resolve(); err != nil {
		return nil, err
	}

	return c, nil
}

// resolve moves named declarations to their positions and validates indices
// against the decorated function's type.
func (c *Contract) resolve() (err error) {
	var (
		t      = c.DecoratedObject()
		ft     = t.Type()
		params = t.Params()
	)

	for name, types := range c.named {
		i := indexOf(params, name)
		if i < 0 {
			err = multierr.Append(err, fmt.Errorf("no parameter named %q", name))
			continue
		}

		c.params[i] = append(c.params[i], types...)
	}

	for i := range c.params {
		if i >= ft.NumIn() && !ft.IsVariadic() {
			err = multierr.Append(err, fmt.Errorf("parameter index %d out of range for %s", i, ft))
		}
	}

	results := ft.NumOut()
	if abdreflect.ReturnsError(ft) {
		results--
	}

	for i := range c.returns {
		if i >= results {
			err = multierr.Append(err, fmt.Errorf("result index %d out of range for %s", i, ft))
		}
	}

	return
}

func indexOf(names []string, name string) int {
	for i, n := range names {
		if n == name {
			return i
		}
	}

	return -1
}

func enabled(w *abd.Wrapper, name string) bool {
	v, ok := w.Option(name)
	if !ok {
		return true
	}

	f, isBool := v.(bool)
	return !isBool || f
}

// Invoke implements abd.Invoker.  Argument violations prevent the call.
// Result violations are reported after the call has been made.
func (c *Contract) Invoke(w *abd.Wrapper, call abd.Call) (abd.Results, error) {
	t := w.DecoratedObject()
	if enabled(w, IncomingOption) {
		if err := c.checkArguments(t, call); err != nil {
			return nil, err
		}
	}

	results, err := t.Call(call)
	if err == nil && enabled(w, OutgoingOption) {
		err = c.checkResults(results)
	}

	return results, err
}

func (c *Contract) allowed(ft reflect.Type, i int) []reflect.Type {
	if types, ok := c.params[i]; ok && len(types) > 0 {
		return types
	}

	switch {
	case ft.IsVariadic() && i >= ft.NumIn()-1:
		return []reflect.Type{ft.In(ft.NumIn() - 1).Elem()}

	case i < ft.NumIn():
		return []reflect.Type{ft.In(i)}

	default:
		return nil
	}
}

func (c *Contract) checkArguments(t *abd.Target, call abd.Call) (err error) {
	var (
		ft     = t.Type()
		params = t.Params()
	)

	for i, arg := range call.Args {
		err = multierr.Append(err, c.checkArgument(t.Name(), paramName(params, i), arg, c.allowed(ft, i)))
	}

	for name, arg := range call.Kwargs {
		if i := indexOf(params, name); i >= 0 {
			err = multierr.Append(err, c.checkArgument(t.Name(), name, arg, c.allowed(ft, i)))
		}
	}

	return
}

func paramName(params []string, i int) string {
	if i < len(params) {
		return params[i]
	}

	return fmt.Sprintf("#%d", i)
}

func (c *Contract) checkArgument(name, param string, arg any, allowed []reflect.Type) error {
	if len(allowed) == 0 || matches(arg, allowed) {
		// arity problems are left to the decorated object
		return nil
	}

	return &Violation{
		Message: fmt.Sprintf("%s(%s: %s) received: %v (%T)", name, param, typeNames(allowed), arg, arg),
	}
}

func (c *Contract) checkResults(results abd.Results) (err error) {
	for i, r := range results {
		if allowed := c.returns[i]; len(allowed) > 0 && !matches(r, allowed) {
			err = multierr.Append(err, &Violation{
				Message: fmt.Sprintf("return type: %v, is not of type: %s", r, typeNames(allowed)),
			})
		}
	}

	return
}

func matches(v any, allowed []reflect.Type) bool {
	vt := reflect.TypeOf(v)
	for _, a := range allowed {
		if vt == nil {
			if abdreflect.Nilable(a) {
				return true
			}

			continue
		}

		if vt.AssignableTo(a) {
			return true
		}
	}

	return false
}

func typeNames(types []reflect.Type) string {
	names := make([]string, 0, len(types))
	for _, t := range types {
		names = append(names, t.String())
	}

	return strings.Join(names, " | ")
}
