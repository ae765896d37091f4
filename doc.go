// Package abd provides object-oriented decoration of Go callables.
//
// # Wrapping a function
//
// A Wrapper holds a reference to a function, its decorated object, and routes
// every call through an Invoker.  The Invoker decides whether and when to call
// the decorated object, and what to return in its place:
//
//	w, err := abd.New(add, abd.InvokerFunc(
//	  func(w *abd.Wrapper, c abd.Call) (abd.Results, error) {
//	    log.Println("calling", w.Name(), c)
//	    return w.DecoratedObject().Call(c)
//	  },
//	))
//
// Func and Decorate turn a Wrapper back into a function of the original type,
// so that decorated functions can be used anywhere the original can.
//
// # Decorating an object
//
// NewProxy wraps every exported method of an object with the same Invoker.
// Go cannot replace methods on a type, so calls are made through the Proxy instead.
//
// Subpackages supply a few example decorators: abdcontract, abddefault,
// abdlog, and abdredo.  Package abdfx integrates decoration with go.uber.org/fx.
package abd
