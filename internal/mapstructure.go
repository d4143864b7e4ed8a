package internal

import (
	"reflect"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
)

// ParameterDecodeHookFunc decodes the flat parameter bag of a composition.
// Lists may be given as comma separated strings.
var ParameterDecodeHookFunc = mapstructure.ComposeDecodeHookFunc(
	splitValueBy(","),
	mapstructure.StringToBasicTypeHookFunc(),
)

// BindDecodeHookFunc decodes request values, which arrive as string slices.
var BindDecodeHookFunc = mapstructure.ComposeDecodeHookFunc(
	mapstructure.TextUnmarshallerHookFunc(),
	unboxIfElementSliceHasSingleElement,
	splitValueBy(","),
	mapstructure.StringToBasicTypeHookFunc(),
)

// ConfigDecodeHookFunc decodes environment values. Lists are separated by
// semicolons.
var ConfigDecodeHookFunc = mapstructure.ComposeDecodeHookFunc(
	splitValueBy(";"),
	mapstructure.TextUnmarshallerHookFunc(),
	mapstructure.StringToBasicTypeHookFunc(),
	mapstructure.StringToTimeDurationHookFunc(),
	mapstructure.StringToTimeHookFunc(time.RFC3339Nano),
)

func unboxIfElementSliceHasSingleElement(from reflect.Value, to reflect.Value) (any, error) {
	// convert single value slice to value
	if from.Kind() == reflect.Slice && from.Len() == 1 {
		toType := to.Type()
		for toType.Kind() == reflect.Ptr {
			toType = toType.Elem()
		}
		if toType.Kind() != reflect.Slice && toType.Kind() != reflect.Interface {
			return from.Index(0).Interface(), nil
		}
	}
	return from.Interface(), nil
}

func splitValueBy(separator string) mapstructure.DecodeHookFuncType {
	return func(from reflect.Type, to reflect.Type, data any) (any, error) {
		if from.Kind() != reflect.String {
			return data, nil
		}
		if to.Kind() != reflect.Slice {
			return data, nil
		}
		raw := data.(string)
		if raw == "" {
			return []string{}, nil
		}
		values := strings.Split(raw, separator)
		for index, value := range values {
			values[index] = strings.TrimSpace(value)
		}
		return values, nil
	}
}
