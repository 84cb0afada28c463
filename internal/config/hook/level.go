package hook

import (
	"reflect"

	"github.com/mitchellh/mapstructure"
	"github.com/rs/zerolog"
)

var levelType = reflect.TypeOf(zerolog.InfoLevel)

// Level decodes strings such as "debug" or "warn" into a zerolog.Level.
func Level() mapstructure.DecodeHookFuncType {
	return func(in reflect.Type, out reflect.Type, val interface{}) (interface{}, error) {
		if in.Kind() == reflect.String && out == levelType {
			return zerolog.ParseLevel(val.(string))
		}
		return val, nil
	}
}
