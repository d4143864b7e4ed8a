package log

import (
	"fmt"
	"path/filepath"
	"reflect"
	"runtime"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// Func names a handler for route dumps: "http.NewServer.func1 at server.go:42"
// for functions, the dynamic type for any other value such as a router or a
// metrics handler.
func Func(v any) fmt.Stringer {
	return handlerName{v: v}
}

// Funcs is Func for a slice, logged as an array.
func Funcs[S ~[]E, E any](v S) zerolog.LogArrayMarshaler {
	return handlerNames[S, E]{v: v}
}

type handlerName struct {
	v any
}

func (h handlerName) String() string {
	if h.v == nil {
		return "<nil>"
	}
	value := reflect.ValueOf(h.v)
	if value.Kind() != reflect.Func {
		return value.Type().String()
	}
	if value.IsNil() {
		return "<nil>"
	}
	function := runtime.FuncForPC(value.Pointer())
	if function == nil {
		return value.Type().String()
	}
	file, line := function.FileLine(function.Entry())
	return shortFuncName(function.Name()) + " at " + filepath.Base(file) + ":" + strconv.Itoa(line)
}

// shortFuncName drops the import path and the method value marker from a
// runtime function name.
func shortFuncName(name string) string {
	name = strings.TrimSuffix(name, "-fm")
	if index := strings.LastIndexByte(name, '/'); index >= 0 {
		name = name[index+1:]
	}
	return name
}

type handlerNames[S ~[]E, E any] struct {
	v S
}

func (h handlerNames[S, E]) MarshalZerologArray(array *zerolog.Array) {
	for _, v := range h.v {
		array.Str(handlerName{v: v}.String())
	}
}
