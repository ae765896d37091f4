package abd

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/xmidt-org/abd/internal/abdreflect"
	"go.uber.org/multierr"
)

// hookMethods are the methods the fmt package calls implicitly.  These are
// not proxied by default, so that printing a proxied object is not itself
// an intercepted call.
var hookMethods = map[string]bool{
	"String":   true,
	"GoString": true,
	"Format":   true,
	"Error":    true,
}

type proxyConfig struct {
	includeHooks bool
	only         map[string]bool
	exclude      map[string]bool
	methodOpts   map[string][]Option
	opts         []Option
}

// ProxyOption tailors how NewProxy selects and decorates methods.
type ProxyOption func(*proxyConfig) error

// IncludeHooks causes the String, GoString, Format, and Error methods to be
// proxied like any other method.
func IncludeHooks() ProxyOption {
	return func(pc *proxyConfig) error {
		pc.includeHooks = true
		return nil
	}
}

// Only restricts the proxied methods to the given names.  Every name
// must refer to an exported method of the object.
func Only(names ...string) ProxyOption {
	return func(pc *proxyConfig) error {
		if pc.only == nil {
			pc.only = make(map[string]bool, len(names))
		}

		for _, n := range names {
			pc.only[n] = true
		}

		return nil
	}
}

// Exclude prevents the given methods from being proxied.
func Exclude(names ...string) ProxyOption {
	return func(pc *proxyConfig) error {
		if pc.exclude == nil {
			pc.exclude = make(map[string]bool, len(names))
		}

		for _, n := range names {
			pc.exclude[n] = true
		}

		return nil
	}
}

// MethodOptions supplies Wrapper options for a single method, e.g. WithParams.
func MethodOptions(name string, opts ...Option) ProxyOption {
	return func(pc *proxyConfig) error {
		if pc.methodOpts == nil {
			pc.methodOpts = make(map[string][]Option)
		}

		pc.methodOpts[name] = append(pc.methodOpts[name], opts...)
		return nil
	}
}

// AllMethods supplies Wrapper options applied to every proxied method, before
// any MethodOptions.
func AllMethods(opts ...Option) ProxyOption {
	return func(pc *proxyConfig) error {
		pc.opts = append(pc.opts, opts...)
		return nil
	}
}

// Proxy decorates every selected method of an object.  One Wrapper is created
// per method, all sharing the same Invoker, so that calling any method through
// the Proxy is intercepted exactly once.
//
// The object itself is never modified.  Calls made directly on it, including
// calls an object makes on itself, are not intercepted.
type Proxy struct {
	object  reflect.Value
	name    string
	methods map[string]*Wrapper
	names   []string
}

// NewProxy enumerates the exported method set of object and wraps each method.
// Promoted methods of embedded fields are part of the method set and are proxied.
// Methods named by hookMethods are skipped unless IncludeHooks is used.
//
// Each method Wrapper's metadata name is Type.Method, e.g. abd.Calculator.Add.
func NewProxy(object any, invoker Invoker, opts ...ProxyOption) (*Proxy, error) {
	ov := reflect.ValueOf(object)
	if !ov.IsValid() || (abdreflect.Nilable(ov.Type()) && ov.IsNil()) {
		return nil, &TargetError{
			Type:    reflect.TypeOf(object),
			Message: "cannot proxy a nil object",
		}
	}

	if invoker == nil {
		return nil, ErrNotImplemented
	}

	var (
		pc  proxyConfig
		err error
	)

	for _, o := range opts {
		if o != nil {
			err = multierr.Append(err, o(&pc))
		}
	}

	if err != nil {
		return nil, err
	}

	p := &Proxy{
		object:  ov,
		name:    abdreflect.TypeName(ov.Type()),
		methods: make(map[string]*Wrapper),
	}

	ot := ov.Type()
	for i := 0; i < ot.NumMethod(); i++ {
		m := ot.Method(i)
		if !pc.selects(m.Name) {
			continue
		}

		wopts := append([]Option{WithName(p.name + "." + m.Name)}, pc.opts...)
		wopts = append(wopts, pc.methodOpts[m.Name]...)
		w, wErr := New(ov.Method(i).Interface(), invoker, wopts...)
		if wErr != nil {
			err = multierr.Append(err, fmt.Errorf("method %s: %w", m.Name, wErr))
			continue
		}

		p.methods[m.Name] = w
		p.names = append(p.names, m.Name)
	}

	for n := range pc.only {
		if _, ok := ot.MethodByName(n); !ok {
			err = multierr.Append(err, &TargetError{
				Type:    ot,
				Message: fmt.Sprintf("no such method %q", n),
			})
		}
	}

	for n := range pc.methodOpts {
		if _, ok := p.methods[n]; !ok {
			err = multierr.Append(err, &TargetError{
				Type:    ot,
				Message: fmt.Sprintf("options supplied for method %q, which is not proxied", n),
			})
		}
	}

	if err == nil && len(p.methods) == 0 {
		err = &TargetError{
			Type:    ot,
			Message: "no methods to proxy",
		}
	}

	if err != nil {
		return nil, err
	}

	sort.Strings(p.names)
	return p, nil
}

func (pc *proxyConfig) selects(name string) bool {
	switch {
	case pc.exclude[name]:
		return false

	case pc.only != nil:
		return pc.only[name]

	case hookMethods[name]:
		return pc.includeHooks

	default:
		return true
	}
}

// Object returns the object whose methods are proxied.
func (p *Proxy) Object() any {
	return p.object.Interface()
}

// Name is the short type name of the proxied object, e.g. abd.Calculator.
func (p *Proxy) Name() string {
	return p.name
}

// Names returns the sorted names of the proxied methods.
func (p *Proxy) Names() []string {
	return append([]string(nil), p.names...)
}

// Method returns the Wrapper for the given method.
func (p *Proxy) Method(name string) (w *Wrapper, ok bool) {
	w, ok = p.methods[name]
	return
}

// Call invokes a proxied method by name.  Unknown methods produce a *CallError.
func (p *Proxy) Call(name string, c Call) (Results, error) {
	w, ok := p.methods[name]
	if !ok {
		return nil, &CallError{
			Name:    p.name,
			Message: fmt.Sprintf("no proxied method %q", name),
		}
	}

	return w.Call(c)
}

// CallArgs is a convenience for Call(name, Args(args...)).
func (p *Proxy) CallArgs(name string, args ...any) (Results, error) {
	return p.Call(name, Args(args...))
}

// Decorated returns the proxied object as a T.
func Decorated[T any](p *Proxy) (t T, ok bool) {
	t, ok = p.object.Interface().(T)
	return
}
