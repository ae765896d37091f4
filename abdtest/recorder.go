package abdtest

import (
	"sync"

	"github.com/xmidt-org/abd"
)

// Recorded is a single call observed by a Recorder.
type Recorded struct {
	// Name is the metadata name of the wrapper that was called
	Name string

	// Call holds the arguments exactly as the Invoker received them
	Call abd.Call

	Results abd.Results
	Err     error
}

// Recorder is an abd.Invoker that forwards every call to the decorated
// object and records what happened.  A Recorder is safe for concurrent use.
type Recorder struct {
	lock  sync.Mutex
	calls []Recorded
}

// Invoke implements abd.Invoker
func (r *Recorder) Invoke(w *abd.Wrapper, c abd.Call) (abd.Results, error) {
	results, err := w.DecoratedObject().Call(c)

	r.lock.Lock()
	r.calls = append(r.calls, Recorded{
		Name:    w.Name(),
		Call:    c,
		Results: results,
		Err:     err,
	})

	r.lock.Unlock()
	return results, err
}

// Calls returns a copy of the calls recorded so far, in order.
func (r *Recorder) Calls() []Recorded {
	r.lock.Lock()
	defer r.lock.Unlock()
	return append([]Recorded(nil), r.calls...)
}

// Len returns the number of recorded calls.
func (r *Recorder) Len() int {
	r.lock.Lock()
	defer r.lock.Unlock()
	return len(r.calls)
}

// Names returns the wrapper names of each recorded call, in order.
func (r *Recorder) Names() []string {
	r.lock.Lock()
	defer r.lock.Unlock()

	names := make([]string, 0, len(r.calls))
	for _, c := range r.calls {
		names = append(names, c.Name)
	}

	return names
}

// Reset discards all recorded calls.
func (r *Recorder) Reset() {
	r.lock.Lock()
	r.calls = nil
	r.lock.Unlock()
}
