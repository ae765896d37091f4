package abdreflect

import (
	"reflect"
)

// Safe returns a safe instance of T.  The candidate is used if it is
// a valid, non-nil instance.  Otherwise, the def value is used.
//
// A primary motivation for this function is optional collaborators,
// e.g. a logger that may not have been supplied:
//
//	var l *zap.Logger // uninitialized
//	l = abdreflect.Safe(l, zap.NewNop())
func Safe[T any](candidate, def T) (result T) {
	result = def
	defer func() {
		// allow IsNil to panic instead of trying all possible types
		if r := recover(); r != nil {
			// IsNil panicked, which means candidate wasn't a type that could be nil
			result = candidate
		}
	}()

	if cv := reflect.ValueOf(candidate); cv.IsValid() && !cv.IsNil() {
		result = candidate
	}

	return
}
