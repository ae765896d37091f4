package abdreflect

import (
	"reflect"
	"runtime"
	"strings"
)

// errorType is the cached reflection lookup for the error type
var errorType reflect.Type = reflect.TypeOf((*error)(nil)).Elem()

// ErrorType returns the reflection type for the error interface
func ErrorType() reflect.Type {
	return errorType
}

// NewErrorValue is a convenience for safely producing a reflect.Value from an error.
// Useful when creating function stubs for reflect.MakeFunc.
func NewErrorValue(err error) reflect.Value {
	errPtr := reflect.New(ErrorType())
	if err != nil {
		errPtr.Elem().Set(reflect.ValueOf(err))
	}

	return errPtr.Elem()
}

// ValueOf is a convenient utility function for turning v into a reflect.Value.
// If v is already a reflect.Value, it is returned as is.  Otherwise, the result
// of reflect.ValueOf(v) is returned.
func ValueOf(v any) reflect.Value {
	if vv, ok := v.(reflect.Value); ok {
		return vv
	}

	return reflect.ValueOf(v)
}

// ReturnsError tests if the given function type's last return value is an error.
func ReturnsError(ft reflect.Type) bool {
	return ft.NumOut() > 0 && ft.Out(ft.NumOut()-1) == ErrorType()
}

// Nilable tests if the zero value of the given type can be compared to nil.
func Nilable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Ptr, reflect.Slice, reflect.UnsafePointer:
		return true

	default:
		return false
	}
}

// FuncName returns the fully qualified name of the function fv refers to,
// as reported by the runtime.  Closures receive compiler generated names,
// e.g. main.main.func1.  Method values carry a "-fm" suffix, which is trimmed.
//
// If fv is not a valid, non-nil function, this function returns the empty string.
func FuncName(fv reflect.Value) string {
	if !fv.IsValid() || fv.Kind() != reflect.Func || fv.IsNil() {
		return ""
	}

	f := runtime.FuncForPC(fv.Pointer())
	if f == nil {
		return ""
	}

	return strings.TrimSuffix(f.Name(), "-fm")
}

// TypeName returns a short, human readable name for t that uses the
// package name rather than the full import path, e.g. abd.Wrapper.
// Pointers are dereferenced, so *abd.Wrapper also yields abd.Wrapper.
func TypeName(t reflect.Type) string {
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	if t == nil {
		return ""
	}

	if len(t.Name()) == 0 {
		return t.String()
	}

	pkg := t.PkgPath()
	if i := strings.LastIndexByte(pkg, '/'); i >= 0 {
		pkg = pkg[i+1:]
	}

	if len(pkg) == 0 {
		return t.Name()
	}

	return pkg + "." + t.Name()
}

// TypeOf is a convenient utility function for turning a v into a reflect.Type.
// If v is already a reflect.Type, it is returned as is.  If v is a reflect.Value,
// v.Type() is returned.  Otherwise, the result of reflect.TypeOf(v) is returned.
func TypeOf(v any) reflect.Type {
	if vv, ok := v.(reflect.Value); ok {
		return vv.Type()
	} else if vt, ok := v.(reflect.Type); ok {
		return vt
	}

	return reflect.TypeOf(v)
}
