// Package abdlog supplies a decorator that logs the input and output of
// every intercepted call using go.uber.org/zap.
//
// LogIO works both as a function decorator and, through Proxy, as a decorator
// for every method of an object:
//
//	l := abdlog.New(logger, abdlog.WithLevel(zapcore.InfoLevel))
//	p, err := l.Proxy(new(Recursive))
//	p.CallArgs("Func", 2)
package abdlog

import (
	"sync/atomic"

	"github.com/xmidt-org/abd"
	"github.com/xmidt-org/abd/internal/abdreflect"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LevelOption is the keyword decorator option that, when set to a zapcore.Level on
// a Wrapper, overrides the LogIO level for calls through that Wrapper.
const LevelOption = "level"

const (
	// InputMessage is the log message for an intercepted call's arguments
	InputMessage = "input"

	// OutputMessage is the log message for an intercepted call's results
	OutputMessage = "output"
)

// Option is a configurable behavior for a LogIO.
type Option func(*LogIO)

// WithLevel sets the level at which input and output is logged.  The
// default is zapcore.DebugLevel.
func WithLevel(level zapcore.Level) Option {
	return func(l *LogIO) {
		l.level = level
	}
}

// LogIO is an abd.Invoker that logs each call's input before invoking the
// decorated object and the results, or error, afterward.  All calls share
// a single counter, so that the input and output entries of nested calls can
// be matched up by the "call" field.
//
// A LogIO is safe for concurrent use.
type LogIO struct {
	logger *zap.Logger
	level  zapcore.Level
	count  atomic.Uint64
}

var _ abd.Invoker = (*LogIO)(nil)

// New creates a LogIO that writes to the given logger.  A nil logger
// results in a LogIO that discards its output.
func New(logger *zap.Logger, opts ...Option) *LogIO {
	l := &LogIO{
		logger: abdreflect.Safe(logger, zap.NewNop()),
		level:  zapcore.DebugLevel,
	}

	for _, o := range opts {
		o(l)
	}

	return l
}

// Level returns the default level of this LogIO.
func (l *LogIO) Level() zapcore.Level {
	return l.level
}

func (l *LogIO) levelFor(w *abd.Wrapper) zapcore.Level {
	if v, ok := w.Option(LevelOption); ok {
		if level, ok := v.(zapcore.Level); ok {
			return level
		}
	}

	return l.level
}

// Invoke implements abd.Invoker.  The decorated object's results and error
// are returned unchanged.
func (l *LogIO) Invoke(w *abd.Wrapper, c abd.Call) (abd.Results, error) {
	var (
		level = l.levelFor(w)
		call  = zap.Uint64("call", l.count.Add(1)-1)
		name  = zap.String("decorated", w.Name())
	)

	if ce := l.logger.Check(level, InputMessage); ce != nil {
		ce.Write(call, name, zap.Stringer("args", c))
	}

	results, err := w.DecoratedObject().Call(c)
	if ce := l.logger.Check(level, OutputMessage); ce != nil {
		fields := []zap.Field{call, name, zap.Any("results", []any(results))}
		if err != nil {
			fields = append(fields, zap.Error(err))
		}

		ce.Write(fields...)
	}

	return results, err
}

// Wrap decorates a function with this LogIO.
func (l *LogIO) Wrap(target any, opts ...abd.Option) (*abd.Wrapper, error) {
	return abd.New(target, l, opts...)
}

// Proxy decorates every method of an object with this LogIO.
func (l *LogIO) Proxy(object any, opts ...abd.ProxyOption) (*abd.Proxy, error) {
	return abd.NewProxy(object, l, opts...)
}
