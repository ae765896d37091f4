// Package abdredo supplies a decorator that remembers the calls made to
// a function so that they can be replayed later.
package abdredo

import (
	"errors"
	"sync"

	"github.com/xmidt-org/abd"
	"go.uber.org/multierr"
)

// DefaultMaxLen is the number of calls a Redo remembers when no MaxLen
// option is given.
const DefaultMaxLen = 100

// MaxLenOption is the name of the keyword decorator option holding the memory size.
const MaxLenOption = "maxlen"

// ErrInvalidMaxLen is returned when a nonpositive memory size is requested.
var ErrInvalidMaxLen = errors.New("maxlen must be positive")

// Option is a configurable behavior for a Redo.
type Option func(*Redo) error

// MaxLen sets the number of calls remembered.  Once full, the oldest
// call is forgotten as each new call is made.
func MaxLen(n int) Option {
	return func(r *Redo) error {
		if n < 1 {
			return ErrInvalidMaxLen
		}

		r.maxLen = n
		return nil
	}
}

// WrapperOptions supplies options for the underlying *abd.Wrapper, such as abd.WithName.
func WrapperOptions(opts ...abd.Option) Option {
	return func(r *Redo) error {
		r.wopts = append(r.wopts, opts...)
		return nil
	}
}

// Replay is the outcome of a single replayed call.
type Replay struct {
	Call    abd.Call
	Results abd.Results
	Err     error
}

// Redo is a decorated function that remembers its calls.  The embedded
// *abd.Wrapper is the means of calling the function.
//
// Redo is safe for concurrent use, though replays run outside the lock
// so that concurrent calls are not blocked by them.
type Redo struct {
	*abd.Wrapper

	lock   sync.Mutex
	maxLen int
	wopts  []abd.Option
	memory []abd.Call
	next   int
	full   bool
}

var _ abd.Invoker = (*Redo)(nil)

// New decorates target so that every call through the returned Redo is remembered.
func New(target any, opts ...Option) (*Redo, error) {
	r := &Redo{
		maxLen: DefaultMaxLen,
	}

	var err error
	for _, o := range opts {
		err = multierr.Append(err, o(r))
	}

	if err != nil {
		return nil, err
	}

	r.memory = make([]abd.Call, r.maxLen)
	r.Wrapper, err = abd.New(
		target,
		r,
		append([]abd.Option{abd.WithKwarg(MaxLenOption, r.maxLen)}, r.wopts...)...,
	)

	if err != nil {
		return nil, err
	}

	return r, nil
}

// Invoke implements abd.Invoker.  The call is remembered before the decorated
// object is invoked, so that calls which fail can still be replayed.
func (r *Redo) Invoke(w *abd.Wrapper, c abd.Call) (abd.Results, error) {
	r.lock.Lock()
	r.memory[r.next] = clone(c)
	r.next = (r.next + 1) % len(r.memory)
	r.full = r.full || r.next == 0
	r.lock.Unlock()

	return w.DecoratedObject().Call(c)
}

// Len returns the number of calls currently remembered.
func (r *Redo) Len() int {
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.lenLocked()
}

func (r *Redo) lenLocked() int {
	if r.full {
		return len(r.memory)
	}

	return r.next
}

// History returns the remembered calls, oldest first.
func (r *Redo) History() []abd.Call {
	r.lock.Lock()
	defer r.lock.Unlock()

	var (
		n     = r.lenLocked()
		start = 0
	)

	if r.full {
		start = r.next
	}

	history := make([]abd.Call, 0, n)
	for i := 0; i < n; i++ {
		history = append(history, clone(r.memory[(start+i)%len(r.memory)]))
	}

	return history
}

// RedoLast replays the most recent n calls, newest first.  Negative values of n
// are treated as their absolute value, and zero replays nothing.
//
// Replays call the decorated object directly, so they are neither intercepted
// nor remembered.
func (r *Redo) RedoLast(n int) []Replay {
	history := r.History()
	n = count(n, len(history))

	calls := make([]abd.Call, 0, n)
	for i := len(history) - 1; i >= len(history)-n; i-- {
		calls = append(calls, history[i])
	}

	return r.replay(calls)
}

// RedoFirst replays the oldest n remembered calls, oldest first.  Negative values of n
// are treated as their absolute value, and zero replays nothing.
func (r *Redo) RedoFirst(n int) []Replay {
	history := r.History()
	n = count(n, len(history))

	return r.replay(history[:n])
}

func (r *Redo) replay(calls []abd.Call) []Replay {
	if len(calls) == 0 {
		return nil
	}

	replays := make([]Replay, 0, len(calls))
	for _, c := range calls {
		results, err := r.DecoratedObject().Call(c)
		replays = append(replays, Replay{
			Call:    c,
			Results: results,
			Err:     err,
		})
	}

	return replays
}

// Firsts is a convenience for extracting the first result of each replay,
// which for single-valued functions is the return value.
func Firsts(replays []Replay) []any {
	firsts := make([]any, 0, len(replays))
	for _, r := range replays {
		firsts = append(firsts, r.Results.First())
	}

	return firsts
}

// count is the absolute value of n, capped at size.
func count(n, size int) int {
	if n < 0 {
		if n < -size {
			return size
		}

		n = -n
	}

	if n > size {
		n = size
	}

	return n
}

// clone copies the arguments of a call, so that remembered calls are not
// affected by anything a caller does with its own slice or map.
func clone(c abd.Call) abd.Call {
	cc := abd.Call{
		Args: append([]any(nil), c.Args...),
	}

	if c.Kwargs != nil {
		cc.Kwargs = make(map[string]any, len(c.Kwargs))
		for k, v := range c.Kwargs {
			cc.Kwargs[k] = v
		}
	}

	return cc
}
