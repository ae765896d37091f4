package abd

import (
	"fmt"
	"reflect"

	"github.com/xmidt-org/abd/internal/abdreflect"
	"go.uber.org/multierr"
)

// Target is the decorated object: a reference to the wrapped function
// together with the metadata a Wrapper forwards.  A Target never copies
// or takes ownership of the function.
//
// Calling a Target directly bypasses the interception of the Wrapper that
// owns it.  A Target taken from a Wrapper that decorates another Wrapper
// still calls through that inner Wrapper.
type Target struct {
	fv     reflect.Value
	name   string
	doc    string
	params []string

	// via is set when calls must pass through another Wrapper
	via *Wrapper
}

// newTarget reflects a callable.  The only callables supported are
// non-nil function values.
func newTarget(v any) (*Target, error) {
	fv := abdreflect.ValueOf(v)
	switch {
	case !fv.IsValid():
		return nil, &TargetError{
			Message: "cannot decorate a nil value",
		}

	case fv.Kind() != reflect.Func:
		return nil, &TargetError{
			Type:    fv.Type(),
			Message: "not a function",
		}

	case fv.IsNil():
		return nil, &TargetError{
			Type:    fv.Type(),
			Message: "nil function",
		}
	}

	return &Target{
		fv:   fv,
		name: abdreflect.FuncName(fv),
	}, nil
}

// Name is the metadata name of this target.  By default this is the
// name the runtime reports for the function.
func (t *Target) Name() string {
	return t.name
}

// Doc is the documentation text associated with this target.  Go has no runtime
// doc strings, so this is whatever was supplied via WithDoc.
func (t *Target) Doc() string {
	return t.doc
}

// Params returns a copy of the declared parameter names, which may be empty.
func (t *Target) Params() []string {
	return append([]string(nil), t.params...)
}

// Type is the function type of this target.
func (t *Target) Type() reflect.Type {
	return t.fv.Type()
}

// Value returns the function this target refers to.
func (t *Target) Value() any {
	return t.fv.Interface()
}

// Call invokes the function directly, without passing through the owning Wrapper's
// Invoker.  When this Target refers to an inner Wrapper with a different kind of
// Invoker, the call is made through that Wrapper instead.
//
// Arguments are passed as-is when assignable to the parameter type and converted
// when convertible.  A nil argument becomes the zero value for parameters that
// can be nil.  Keyword arguments are resolved to positions by the declared
// parameter names.  Any argument problems are returned as an aggregate of
// CallErrors and the function is not invoked.
//
// If the function's last return value is an error, it becomes the error
// returned by this method and is excluded from the Results.  Panics are
// not recovered.
func (t *Target) Call(c Call) (Results, error) {
	if t.via != nil {
		return t.via.Call(c)
	}

	inputs, err := t.inputs(c)
	if err != nil {
		return nil, err
	}

	return t.results(t.fv.Call(inputs))
}

func (t *Target) callError(format string, args ...any) error {
	return &CallError{
		Name:    t.name,
		Message: fmt.Sprintf(format, args...),
	}
}

// positions merges positional and keyword arguments into a single
// positional slice.  Slots that received no argument hold nil and
// have a false entry in set.
func (t *Target) positions(c Call) (args []any, set []bool, err error) {
	var (
		ft    = t.fv.Type()
		fixed = ft.NumIn()
	)

	if ft.IsVariadic() {
		fixed--
	}

	size := fixed
	if len(c.Args) > size {
		size = len(c.Args)
	}

	args = make([]any, size)
	set = make([]bool, size)
	copy(args, c.Args)
	for i := range c.Args {
		set[i] = true
	}

	if len(c.Args) > fixed && !ft.IsVariadic() {
		err = multierr.Append(err, t.callError("too many arguments: expected %d, got %d", fixed, len(c.Args)))
	}

	for name, value := range c.Kwargs {
		i := t.indexOf(name)
		switch {
		case i < 0:
			err = multierr.Append(err, t.callError("unexpected keyword argument %q", name))

		case i >= fixed:
			err = multierr.Append(err, t.callError("keyword argument %q refers to a variadic parameter", name))

		case set[i]:
			err = multierr.Append(err, t.callError("multiple values for argument %q", name))

		default:
			args[i] = value
			set[i] = true
		}
	}

	return
}

func (t *Target) indexOf(name string) int {
	for i, p := range t.params {
		if p == name {
			return i
		}
	}

	return -1
}

func (t *Target) paramName(i int) string {
	if i < len(t.params) {
		return t.params[i]
	}

	return fmt.Sprintf("#%d", i)
}

func (t *Target) inputs(c Call) ([]reflect.Value, error) {
	args, set, err := t.positions(c)

	var (
		ft     = t.fv.Type()
		inputs = make([]reflect.Value, 0, len(args))
	)

	for i, arg := range args {
		var inType reflect.Type
		switch {
		case ft.IsVariadic() && i >= ft.NumIn()-1:
			inType = ft.In(ft.NumIn() - 1).Elem()

		case i < ft.NumIn():
			inType = ft.In(i)

		default:
			// too many arguments, already reported
			continue
		}

		if !set[i] {
			err = multierr.Append(err, t.callError("missing argument %s", t.paramName(i)))
			continue
		}

		input, convErr := t.convert(i, arg, inType)
		err = multierr.Append(err, convErr)
		if convErr == nil {
			inputs = append(inputs, input)
		}
	}

	if err != nil {
		return nil, err
	}

	return inputs, nil
}

func (t *Target) convert(i int, arg any, inType reflect.Type) (reflect.Value, error) {
	if arg == nil {
		if abdreflect.Nilable(inType) {
			return reflect.Zero(inType), nil
		}

		return reflect.Value{}, t.callError("argument %s cannot be nil", t.paramName(i))
	}

	input := reflect.ValueOf(arg)
	switch {
	case input.Type().AssignableTo(inType):
		return input, nil

	case convertible(input.Type(), inType):
		return input.Convert(inType), nil

	default:
		return reflect.Value{}, t.callError(
			"argument %s is the wrong type: %s is not %s",
			t.paramName(i), input.Type(), inType,
		)
	}
}

func (t *Target) results(outputs []reflect.Value) (results Results, err error) {
	if abdreflect.ReturnsError(t.fv.Type()) {
		last := outputs[len(outputs)-1]
		outputs = outputs[:len(outputs)-1]
		if !last.IsNil() {
			err = last.Interface().(error)
		}
	}

	results = make(Results, 0, len(outputs))
	for _, o := range outputs {
		results = append(results, o.Interface())
	}

	return
}

// convertible is stricter than reflect's ConvertibleTo.  Only conversions
// between types of the same kind, e.g. uint32 to os.FileMode, or between
// numeric kinds are allowed.  This rules out surprises like int to string.
func convertible(from, to reflect.Type) bool {
	if !from.ConvertibleTo(to) {
		return false
	}

	return from.Kind() == to.Kind() || (numeric(from.Kind()) && numeric(to.Kind()))
}

func numeric(k reflect.Kind) bool {
	return (k >= reflect.Int && k <= reflect.Uint64) || k == reflect.Float32 || k == reflect.Float64
}
