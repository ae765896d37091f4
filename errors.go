package abd

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	// ErrInvalidTarget indicates that something other than a callable was
	// offered for decoration.
	ErrInvalidTarget = errors.New("the decoration target is not callable")

	// ErrNotImplemented indicates that no Invoker was supplied for a Wrapper.
	// This is returned at construction by New and NewProxy, and by any call made
	// through a zero-value Wrapper.
	ErrNotImplemented = errors.New("no invoker has been implemented for this wrapper")
)

// TargetError describes why a particular value could not be decorated.
// All TargetErrors are ErrInvalidTarget errors as reported by errors.Is.
type TargetError struct {
	Type    reflect.Type
	Message string
}

func (te *TargetError) Error() string {
	return fmt.Sprintf("TARGET ERROR: [%v] %s", te.Type, te.Message)
}

// Unwrap allows errors.Is(err, ErrInvalidTarget) to succeed.
func (te *TargetError) Unwrap() error {
	return ErrInvalidTarget
}

// CallError represents a problem with the arguments of a call made to
// a decorated object.  Errors returned by the decorated object itself are
// never wrapped in a CallError.
type CallError struct {
	// Name is the metadata name of the decorated object
	Name    string
	Message string
}

func (ce *CallError) Error() string {
	return fmt.Sprintf("CALL ERROR: [%s] %s", ce.Name, ce.Message)
}
