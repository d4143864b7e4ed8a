package exceptional

import (
	"strings"

	"github.com/thanhminhmr/go-exceptional/exception"
	"github.com/thanhminhmr/go-exceptional/internal"
)

// callerNamespace derives a namespace from the package of the function that
// frame belongs to: "github.com/acme/app/storage.(*Store).Get" gives
// "acme.app.storage". The host segment of the import path is dropped and
// characters not allowed in a kind name become "_".
//
// Frames of package main, package-level function literals and generated code
// have no namespace.
func callerNamespace(frame exception.StackFrame) string {
	if frame.Function == "" || frame.File == "<autogenerated>" {
		return ""
	}
	function := frame.Function
	// type arguments of generic functions may contain import paths
	if bracket := strings.IndexByte(function, '['); bracket >= 0 {
		function = function[:bracket]
	}
	slash := strings.LastIndexByte(function, '/')
	dot := strings.IndexByte(function[slash+1:], '.')
	if dot < 0 {
		return ""
	}
	path := function[:slash+1+dot]
	symbol := function[slash+1+dot+1:]
	if path == "main" || strings.HasPrefix(symbol, "glob.") {
		return ""
	}
	segments := strings.Split(path, "/")
	if len(segments) > 1 && strings.Contains(segments[0], ".") {
		segments = segments[1:]
	}
	for index, segment := range segments {
		segments[index] = strings.Map(kindRune, segment)
	}
	return strings.Join(segments, ".")
}

func kindRune(r rune) rune {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
		return r
	}
	return '_'
}

// explicitNamespace normalizes a namespace given by the caller. Leading
// separators are dropped and "/" is accepted in place of ".".
func explicitNamespace(namespace string) (string, error) {
	namespace = strings.ReplaceAll(strings.TrimLeft(strings.TrimSpace(namespace), "./"), "/", ".")
	if namespace != "" && !internal.KindPattern.MatchString(namespace) {
		return "", ErrInvalidInput.SetMessage("malformed namespace: %q", namespace)
	}
	return namespace, nil
}
