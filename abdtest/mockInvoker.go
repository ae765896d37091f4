package abdtest

import (
	"github.com/stretchr/testify/mock"
	"github.com/xmidt-org/abd"
)

// InvokeCall is a mocked Call that allows a clearer return declaration.
type InvokeCall struct {
	*mock.Call
}

// Results sets the Invoke return to the given results with no error.
// The underlying *mock.Call is returned to continue method chaining if desired.
func (ic InvokeCall) Results(results ...any) *mock.Call {
	return ic.Call.Return(abd.Results(results), error(nil))
}

// Error sets the Invoke return to the given error and nil results.
// The underlying *mock.Call is returned to continue method chaining if desired.
func (ic InvokeCall) Error(err error) *mock.Call {
	return ic.Call.Return(abd.Results(nil), err)
}

// Forward sets the Invoke behavior to call the decorated object, as
// abd.Passthrough would.
func (ic InvokeCall) Forward() *mock.Call {
	return ic.Call.Return(abd.InvokerFunc(abd.Passthrough{}.Invoke), error(nil))
}

// MockInvoker is a mocked abd.Invoker.
type MockInvoker struct {
	mock.Mock
}

// Invoke executes the appropriate mocked call.  The first return value may
// be an abd.InvokerFunc, in which case it is executed to produce the actual
// results and error.
func (m *MockInvoker) Invoke(w *abd.Wrapper, c abd.Call) (abd.Results, error) {
	args := m.Called(w, c)
	if f, ok := args.Get(0).(abd.InvokerFunc); ok {
		return f(w, c)
	}

	results, _ := args.Get(0).(abd.Results)
	return results, args.Error(1)
}

// Expect sets an expectation for a call with the given arguments, made through
// any Wrapper.
func (m *MockInvoker) Expect(c abd.Call) InvokeCall {
	return InvokeCall{
		Call: m.On("Invoke", mock.Anything, c),
	}
}

// ExpectAny sets an expectation for any call through any Wrapper.
func (m *MockInvoker) ExpectAny() InvokeCall {
	return InvokeCall{
		Call: m.On("Invoke", mock.Anything, mock.Anything),
	}
}
