package abdfx

import (
	"errors"

	"github.com/spf13/viper"
	"github.com/xmidt-org/abd"
	"github.com/xmidt-org/abd/abdlog"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// ErrNilViper is returned to the fx.App when the *viper.Viper component is nil.
var ErrNilViper = errors.New("the viper instance cannot be nil")

// LogIOIn is the set of dependencies for a configured LogIO.
type LogIOIn struct {
	fx.In

	// Viper is the required source of configuration
	Viper *viper.Viper

	// Logger is the optional logger for intercepted calls.  If not supplied,
	// calls are intercepted but nothing is logged.
	Logger *zap.Logger `optional:"true"`
}

// UnmarshalLogIO reads an abdlog.Config from the given key.  DefaultDecodeHooks
// is always applied first, so that opts may adjust it.
func UnmarshalLogIO(v *viper.Viper, key string, opts ...viper.DecoderConfigOption) (cfg abdlog.Config, err error) {
	if v == nil {
		err = ErrNilViper
		return
	}

	err = v.UnmarshalKey(
		key,
		&cfg,
		append([]viper.DecoderConfigOption{DefaultDecodeHooks}, opts...)...,
	)

	return
}

// ProvideLogIO provides the abd.Invoker described by the abdlog.Config at the
// given viper key.  When the configuration isn't enabled, the Invoker is
// abd.Passthrough.
func ProvideLogIO(key string, opts ...viper.DecoderConfigOption) fx.Option {
	return fx.Provide(
		func(in LogIOIn) (abd.Invoker, error) {
			cfg, err := UnmarshalLogIO(in.Viper, key, opts...)
			if err != nil {
				return nil, err
			}

			return cfg.NewInvoker(in.Logger), nil
		},
	)
}
