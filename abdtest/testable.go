package abdtest

import (
	"fmt"
	"testing"
)

// Testable is what the helpers in this package need from a test in order to
// report failures.  *testing.T, *testing.B, and fxtest.TB all satisfy it.
type Testable interface {
	Logf(string, ...interface{})
	Errorf(string, ...interface{})
	FailNow()
}

// AsTestable lets NewApp and NewErrApp accept either a test or a testify suite.
// The v parameter may be a Testable or anything with a
// T() *testing.T method, such as a suite.Suite or an embedding of Suite.
//
// Any other value causes a panic, since there is nowhere to report the failure.
func AsTestable(v any) Testable {
	if tt, ok := v.(Testable); ok {
		return tt
	}

	type suiteT interface {
		T() *testing.T
	}

	if st, ok := v.(suiteT); ok {
		return st.T()
	}

	panic(fmt.Errorf("%T cannot be used to report test failures", v))
}
