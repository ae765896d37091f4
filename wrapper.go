package abd

import (
	"reflect"
	"strings"
)

// Invoker is the interception hook for a Wrapper.  Every call made through a
// Wrapper is passed to its Invoker, which may inspect or modify the call,
// invoke the decorated object through w.DecoratedObject() zero or more times,
// and return whatever results it likes.
//
// Invokers that carry state are responsible for their own synchronization.
type Invoker interface {
	Invoke(w *Wrapper, c Call) (Results, error)
}

// InvokerFunc is a closure type that implements Invoker.
type InvokerFunc func(*Wrapper, Call) (Results, error)

// Invoke implements Invoker
func (f InvokerFunc) Invoke(w *Wrapper, c Call) (Results, error) {
	return f(w, c)
}

// Passthrough is the most basic Invoker.  It forwards each call, unchanged, to
// the decorated object and returns its results.
type Passthrough struct{}

// Invoke implements Invoker
func (Passthrough) Invoke(w *Wrapper, c Call) (Results, error) {
	return w.DecoratedObject().Call(c)
}

// Wrapper intercepts calls to a decorated object.  Wrappers are created with New.
//
// A Wrapper forwards the decorated object's metadata, so that Name and Doc
// report the same values as the original.  The zero value of a Wrapper is
// usable only in the sense that every call fails with ErrNotImplemented.
type Wrapper struct {
	target  *Target
	invoker Invoker

	args   []any
	kwargs map[string]any
}

// New decorates a callable with the given Invoker.
//
// The target may be a function value or another *Wrapper.  When the inner Wrapper's
// Invoker has the same type as invoker, the new Wrapper decorates the original function
// rather than the Wrapper itself, so the same decorator is never applied twice.  Otherwise,
// calls through the new Wrapper reach the original function through the inner Wrapper.
// In either case the inner Wrapper's metadata, including anything set with its options,
// is carried over, while its decorator options are not.
//
// If target is not callable, the returned error is a *TargetError which wraps
// ErrInvalidTarget.  If invoker is nil, ErrNotImplemented is returned.
func New(target any, invoker Invoker, opts ...Option) (*Wrapper, error) {
	var (
		t   *Target
		err error
	)

	if inner, ok := target.(*Wrapper); ok && inner != nil && inner.target != nil {
		clone := *inner.target
		clone.params = inner.target.Params()
		if reflect.TypeOf(inner.invoker) != reflect.TypeOf(invoker) {
			clone.via = inner
		}

		t = &clone
	} else if t, err = newTarget(target); err != nil {
		return nil, err
	}

	if invoker == nil {
		return nil, ErrNotImplemented
	}

	w := &Wrapper{
		target:  t,
		invoker: invoker,
	}

	if err := Options(opts).apply(w); err != nil {
		return nil, err
	}

	return w, nil
}

// DecoratedObject returns the decorated object.  Calls made directly
// against the returned Target are not intercepted.
//
// This method returns nil for a zero-value Wrapper.
func (w *Wrapper) DecoratedObject() *Target {
	if w == nil {
		return nil
	}

	return w.target
}

// Name returns the name of the decorated object.
func (w *Wrapper) Name() string {
	if t := w.DecoratedObject(); t != nil {
		return t.Name()
	}

	return ""
}

// Doc returns the documentation text of the decorated object.
func (w *Wrapper) Doc() string {
	if t := w.DecoratedObject(); t != nil {
		return t.Doc()
	}

	return ""
}

// Invoker returns the interception hook for this Wrapper.
func (w *Wrapper) Invoker() Invoker {
	if w == nil {
		return nil
	}

	return w.invoker
}

// Options returns the decorator options, which are arbitrary values
// set at construction time or with SetOptions.  Invokers typically use these
// to alter their behavior.  The returned slice and map are copies.
func (w *Wrapper) Options() (args []any, kwargs map[string]any) {
	if w == nil {
		return []any{}, map[string]any{}
	}

	args = append([]any{}, w.args...)
	kwargs = make(map[string]any, len(w.kwargs))
	for k, v := range w.kwargs {
		kwargs[k] = v
	}

	return
}

// Option returns the single named keyword decorator option.
func (w *Wrapper) Option(name string) (v any, ok bool) {
	if w == nil {
		return
	}

	v, ok = w.kwargs[name]
	return
}

// SetOptions replaces the decorator options.  This method is not safe for
// concurrent use with calls through this Wrapper.
func (w *Wrapper) SetOptions(args []any, kwargs map[string]any) {
	w.args = append([]any(nil), args...)
	w.kwargs = nil
	for k, v := range kwargs {
		w.setOption(k, v)
	}
}

func (w *Wrapper) setOption(name string, value any) {
	if w.kwargs == nil {
		w.kwargs = make(map[string]any)
	}

	w.kwargs[name] = value
}

// Call routes a call through this Wrapper's Invoker and returns its results
// unchanged.  This is how a Wrapper stands in for its decorated object.
func (w *Wrapper) Call(c Call) (Results, error) {
	if w == nil || w.invoker == nil || w.target == nil {
		return nil, ErrNotImplemented
	}

	return w.invoker.Invoke(w, c)
}

// CallArgs is a convenience for Call(Args(args...)).
func (w *Wrapper) CallArgs(args ...any) (Results, error) {
	return w.Call(Args(args...))
}

// Decorator returns the name of the Invoker's type, e.g. Passthrough.
func (w *Wrapper) Decorator() string {
	if w == nil || w.invoker == nil {
		return "Wrapper"
	}

	t := reflect.TypeOf(w.invoker)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	if len(t.Name()) == 0 {
		return t.String()
	}

	return t.Name()
}

// String returns a representation of the form @Decorator(options) -> name.
// The options are omitted entirely when there are none.
func (w *Wrapper) String() string {
	var o strings.Builder
	if w.Name() != "" {
		o.WriteRune('@')
	}

	o.WriteString(w.Decorator())
	if w != nil && (len(w.args) > 0 || len(w.kwargs) > 0) {
		o.WriteRune('(')
		writeArguments(&o, w.args, w.kwargs)
		o.WriteRune(')')
	}

	if name := w.Name(); name != "" {
		o.WriteString(" -> ")
		o.WriteString(name)
	}

	return o.String()
}
