package abd

import (
	"fmt"
	"reflect"

	"github.com/xmidt-org/abd/internal/abdreflect"
)

// Func produces a function of type F that routes every call through the given
// Wrapper.  This lets a decorated function be used anywhere the original could be.
//
// F must have the same parameters and results as the decorated function.  As a
// special case, F may declare an additional trailing error result when the decorated
// function does not, which receives any error produced by the Invoker.  When F has
// no trailing error result, an error from the Invoker causes the returned function
// to panic with that error.
func Func[F any](w *Wrapper) (F, error) {
	var (
		f  F
		ft = reflect.TypeOf(&f).Elem()
	)

	t := w.DecoratedObject()
	if t == nil {
		return f, ErrNotImplemented
	}

	if err := checkFuncType(ft, t.Type()); err != nil {
		return f, err
	}

	var (
		returnsError = abdreflect.ReturnsError(ft)
		resultCount  = ft.NumOut()
	)

	if returnsError {
		resultCount--
	}

	fv := reflect.MakeFunc(ft, func(in []reflect.Value) []reflect.Value {
		results, err := w.Call(Args(expand(ft, in)...))
		outputs := make([]reflect.Value, 0, ft.NumOut())
		if err == nil {
			outputs, err = toOutputs(ft, resultCount, results, outputs)
		}

		switch {
		case err != nil && !returnsError:
			panic(err)

		case err != nil:
			outputs = outputs[:0]
			for i := 0; i < resultCount; i++ {
				outputs = append(outputs, reflect.Zero(ft.Out(i)))
			}

			outputs = append(outputs, abdreflect.NewErrorValue(err))

		case returnsError:
			outputs = append(outputs, abdreflect.NewErrorValue(nil))
		}

		return outputs
	})

	return fv.Interface().(F), nil
}

// Decorate is a convenience that creates a Wrapper around f and then
// returns the result of Func.
func Decorate[F any](f F, invoker Invoker, opts ...Option) (F, error) {
	w, err := New(f, invoker, opts...)
	if err != nil {
		var zero F
		return zero, err
	}

	return Func[F](w)
}

func checkFuncType(ft, tt reflect.Type) error {
	if ft.Kind() != reflect.Func {
		return &TargetError{
			Type:    ft,
			Message: "not a function type",
		}
	}

	if ft.NumIn() != tt.NumIn() || ft.IsVariadic() != tt.IsVariadic() {
		return &TargetError{
			Type:    ft,
			Message: fmt.Sprintf("parameters do not match %s", tt),
		}
	}

	for i := 0; i < ft.NumIn(); i++ {
		if ft.In(i) != tt.In(i) {
			return &TargetError{
				Type:    ft,
				Message: fmt.Sprintf("parameter %d does not match %s", i, tt),
			}
		}
	}

	outs := ft.NumOut()
	if outs == tt.NumOut()+1 && !abdreflect.ReturnsError(tt) && abdreflect.ReturnsError(ft) {
		outs--
	} else if outs != tt.NumOut() {
		return &TargetError{
			Type:    ft,
			Message: fmt.Sprintf("results do not match %s", tt),
		}
	}

	for i := 0; i < outs; i++ {
		if ft.Out(i) != tt.Out(i) {
			return &TargetError{
				Type:    ft,
				Message: fmt.Sprintf("result %d does not match %s", i, tt),
			}
		}
	}

	return nil
}

// expand turns reflected inputs into positional arguments, flattening
// any variadic slice.
func expand(ft reflect.Type, in []reflect.Value) []any {
	args := make([]any, 0, len(in))
	for i, v := range in {
		if ft.IsVariadic() && i == len(in)-1 {
			for j := 0; j < v.Len(); j++ {
				args = append(args, v.Index(j).Interface())
			}

			break
		}

		args = append(args, v.Interface())
	}

	return args
}

func toOutputs(ft reflect.Type, count int, results Results, outputs []reflect.Value) ([]reflect.Value, error) {
	if len(results) != count {
		return outputs, fmt.Errorf("expected %d results, got %d", count, len(results))
	}

	for i, r := range results {
		outType := ft.Out(i)
		if r == nil {
			if !abdreflect.Nilable(outType) {
				return outputs, fmt.Errorf("result %d cannot be nil", i)
			}

			outputs = append(outputs, reflect.Zero(outType))
			continue
		}

		rv := reflect.ValueOf(r)
		switch {
		case rv.Type().AssignableTo(outType):
			outputs = append(outputs, rv)

		case convertible(rv.Type(), outType):
			outputs = append(outputs, rv.Convert(outType))

		default:
			return outputs, fmt.Errorf("result %d is the wrong type: %s is not %s", i, rv.Type(), outType)
		}
	}

	return outputs, nil
}
