package abdlog

import (
	"github.com/xmidt-org/abd"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config is the externally unmarshaled configuration for a LogIO.
// The Level field unmarshals from text such as "info" when the decoder
// honors encoding.TextUnmarshaler.
type Config struct {
	// Enabled turns on call logging.  When false, the decorator
	// simply forwards calls.
	Enabled bool `mapstructure:"enabled"`

	// Level is the level for input and output entries.  The zero value is
	// zapcore.InfoLevel.
	Level zapcore.Level `mapstructure:"level"`

	// Name is an optional sub-logger name
	Name string `mapstructure:"name"`
}

// NewInvoker creates the abd.Invoker described by this configuration.  If
// this configuration is not enabled, the returned Invoker is abd.Passthrough.
func (c Config) NewInvoker(logger *zap.Logger) abd.Invoker {
	if logger != nil && len(c.Name) > 0 {
		logger = logger.Named(c.Name)
	}

	return abd.If(c.Enabled).Then(
		New(logger, WithLevel(c.Level)),
	)
}
