package abdfx

import (
	"encoding"
	"reflect"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// DefaultDecodeHooks is a viper option that sets the decode hooks to more useful defaults.
// This includes the ones set by viper itself, plus TextUnmarshalerHookFunc, which is what
// allows values like zapcore.Level to be unmarshaled from text.
//
// See https://pkg.go.dev/github.com/spf13/viper#DecodeHook
func DefaultDecodeHooks(dc *mapstructure.DecoderConfig) {
	dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
		TextUnmarshalerHookFunc,
	)
}

// ErrorUnused sets the DecoderConfig.ErrorUnused flag, which rejects
// configuration keys that have no corresponding field.
func ErrorUnused(f bool) viper.DecoderConfigOption {
	return func(dc *mapstructure.DecoderConfig) {
		dc.ErrorUnused = f
	}
}

var (
	textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()
)

// TextUnmarshalerHookFunc is a mapstructure.DecodeHookFunc that honors the destination
// type's encoding.TextUnmarshaler implementation, using it to convert the src.  The src
// parameter must be a string, or else this function does not attempt any conversion.
//
// The to type must be one of two kinds:
//
// First, to can be a non-pointer type which implements encoding.TextUnmarshaler through a
// pointer receiver.  zapcore.Level is an example of this.
//
// Second, to can be a pointer type which itself implements encoding.TextUnmarshaler.
//
// In any case where this function does no conversion, it returns src and a nil error.  This
// is the contract required by mapstructure.DecodeHookFunc.
func TextUnmarshalerHookFunc(_, to reflect.Type, src interface{}) (interface{}, error) {
	if text, ok := src.(string); ok {
		switch {
		case to.Kind() != reflect.Ptr && reflect.PtrTo(to).Implements(textUnmarshalerType):
			ptr := reflect.New(to)
			tu := ptr.Interface().(encoding.TextUnmarshaler)
			err := tu.UnmarshalText([]byte(text))
			return ptr.Elem().Interface(), err

		case to.Kind() == reflect.Ptr && to.Elem().Kind() != reflect.Ptr && to.Implements(textUnmarshalerType):
			ptr := reflect.New(to.Elem())
			tu := ptr.Interface().(encoding.TextUnmarshaler)
			err := tu.UnmarshalText([]byte(text))
			return tu, err
		}
	}

	return src, nil
}
