// Package hook holds mapstructure decode hooks for config values that are
// not plain strings.
package hook

import (
	"reflect"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap/zapcore"
)

var levelType = reflect.TypeOf(zapcore.InfoLevel)

// Level decodes a string such as "debug" or "warn" into a zapcore.Level.
func Level() mapstructure.DecodeHookFuncType {
	return func(in reflect.Type, out reflect.Type, val interface{}) (interface{}, error) {
		if in.Kind() != reflect.String || out != levelType {
			return val, nil
		}
		l := zapcore.InfoLevel
		if err := l.UnmarshalText([]byte(val.(string))); err != nil {
			return nil, err
		}
		return l, nil
	}
}
