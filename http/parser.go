package http

import (
	"context"
	"net/http"
	"reflect"

	"github.com/thanhminhmr/go-exceptional/exception"
	"github.com/thanhminhmr/go-exceptional/exceptional"
	"github.com/thanhminhmr/go-exceptional/internal"

	"github.com/go-chi/chi/v5"
	"github.com/go-viper/mapstructure/v2"
	"github.com/rs/zerolog"
)

// ServerRequestHandler handles a request already bound to a ServerRequest.
// Returning a nil ServerResponse answers 204.
type ServerRequestHandler[ServerRequest any] func(ctx context.Context, request *ServerRequest) ServerResponse

// ServerRequestParser binds header, query and url values into a
// ServerRequest according to its field tags, validates it, then calls the
// handler. Binding and validation failures are answered with a composed
// BadRequest error.
func ServerRequestParser[ServerRequest any](handler ServerRequestHandler[ServerRequest]) http.HandlerFunc {
	tags := checkServerRequestConfiguration[ServerRequest]()
	return func(writer http.ResponseWriter, request *http.Request) {
		var parsed ServerRequest
		serverRequestHandler(writer, request, &parsed, tags, func() ServerResponse {
			return handler(request.Context(), &parsed)
		})
	}
}

func serverRequestHandler(
	writer http.ResponseWriter,
	request *http.Request,
	parsed any,
	tags uint,
	handler func() ServerResponse,
) {
	logger := zerolog.Ctx(request.Context())
	if err := parseServerRequest(request, parsed, tags); err != nil {
		logger.Debug().Err(err).Msg("Failed to parse request")
		if renderErr := (ServerErrorResponse{Cause: err}).Render(writer); renderErr != nil {
			logger.Error().Err(renderErr).Msg("Failed to render error")
		}
		return
	}
	logger.Trace().Any("request", parsed).Msg("Request parsed")
	if renderer := handler(); renderer != nil {
		logger.Trace().Any("response", renderer).Msg("Response returned")
		if err := renderer.Render(writer); err != nil {
			logger.Error().Err(err).Msg("Failed to render response")
		}
	} else {
		logger.Trace().Msg("Empty response returned")
		writer.WriteHeader(http.StatusNoContent)
	}
}

//region serverRequestConfiguration

const (
	tagHeader uint = 1 << iota
	tagQuery
	tagUrl
)

var serverRequestTags = []struct {
	name string
	flag uint
}{
	{name: "header", flag: tagHeader},
	{name: "query", flag: tagQuery},
	{name: "url", flag: tagUrl},
}

func checkServerRequestConfiguration[ServerRequest any]() uint {
	requestType := reflect.TypeFor[ServerRequest]()
	if requestType.Kind() != reflect.Struct {
		panic("BUG: ServerRequest must be a struct")
	}
	var flags uint
	for index := range requestType.NumField() {
		field := requestType.Field(index)
		for _, tag := range serverRequestTags {
			if _, exists := field.Tag.Lookup(tag.name); exists {
				flags |= tag.flag
			}
		}
	}
	return flags
}

//endregion serverRequestConfiguration

//region parseServerRequest

func parseServerRequest(request *http.Request, parsed any, tags uint) exception.Exception {
	// parse and bind request header
	if tags&tagHeader != 0 && len(request.Header) > 0 {
		if err := bind("header", request.Header, parsed); err != nil {
			return badRequest("Bind request header failed", err)
		}
	}
	// parse and bind url query values
	if tags&tagQuery != 0 {
		if values := request.URL.Query(); len(values) > 0 {
			if err := bind("query", values, parsed); err != nil {
				return badRequest("Bind query values failed", err)
			}
		}
	}
	// parse and bind url parameters
	if tags&tagUrl != 0 {
		if routeContext := chi.RouteContext(request.Context()); routeContext != nil && len(routeContext.URLParams.Keys) > 0 {
			urlParams := map[string]string{}
			for index, key := range routeContext.URLParams.Keys {
				urlParams[key] = routeContext.URLParams.Values[index]
			}
			if err := bind("url", urlParams, parsed); err != nil {
				return badRequest("Bind url params failed", err)
			}
		}
	}
	// validate the whole request
	if err := internal.Validator.Struct(parsed); err != nil {
		return badRequest("Request is not valid", err)
	}
	return nil
}

func bind(tag string, input any, output any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:           internal.BindDecodeHookFunc,
		WeaklyTypedInput:     true,
		Result:               output,
		TagName:              tag,
		IgnoreUntaggedFields: true,
	})
	if err != nil {
		panic("BUG: cannot create decoder: " + err.Error())
	}
	return decoder.Decode(input)
}

func badRequest(message string, cause error) exception.Exception {
	return exceptional.Create("/Exceptional/BadRequest", map[string]any{
		"message":  message,
		"previous": cause,
		"rewind":   1,
	})
}

//endregion parseServerRequest
