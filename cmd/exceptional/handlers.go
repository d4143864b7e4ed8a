package main

import (
	"context"
	"net/http"

	"github.com/thanhminhmr/go-exceptional/exceptional"
	server "github.com/thanhminhmr/go-exceptional/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// composeRequest composes the kinds of the path, comma separated, at the root
// namespace unless another one is given.
type composeRequest struct {
	Kinds     []string `url:"kinds" validate:"required,dive,kind"`
	Message   string   `query:"message"`
	Code      int      `query:"code"`
	Http      int      `query:"http" validate:"omitempty,min=100,max=599"`
	Severity  int      `query:"severity"`
	Namespace string   `query:"namespace" validate:"omitempty,kind"`
	Rewind    int      `query:"rewind" validate:"min=0,max=16"`
}

type composedError struct {
	Type      string         `json:"type"`
	Signature string         `json:"signature"`
	Base      string         `json:"base"`
	Kinds     []string       `json:"kinds"`
	Message   string         `json:"message"`
	Code      int            `json:"code"`
	Http      int            `json:"http"`
	Severity  int            `json:"severity"`
	File      string         `json:"file"`
	Line      int            `json:"line"`
	Context   map[string]any `json:"context,omitempty"`
}

type composedType struct {
	Name       string   `json:"name"`
	Signature  string   `json:"signature"`
	Base       string   `json:"base"`
	Interfaces []string `json:"interfaces"`
	Traits     []string `json:"traits"`
}

type inspector struct {
	composer *exceptional.Composer
}

func registerRoutes(router chi.Router, composer *exceptional.Composer, gatherer prometheus.Gatherer) {
	routes := inspector{composer: composer}
	router.Get("/compose/{kinds}", server.ServerRequestParser(routes.compose))
	router.Get("/types", server.ServerRequestParser(routes.types))
	router.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
}

func (i inspector) compose(_ context.Context, request *composeRequest) server.ServerResponse {
	err, failure := i.composer.Create(request.Kinds, &exceptional.Parameters{
		Message:   request.Message,
		Code:      request.Code,
		Http:      request.Http,
		Severity:  request.Severity,
		Namespace: &request.Namespace,
		Rewind:    request.Rewind,
	})
	if failure != nil {
		badRequest, _ := i.composer.CreateFrom("/Exceptional/BadRequest", map[string]any{
			"message":  failure.Error(),
			"previous": failure,
		})
		return server.ServerErrorResponse{Cause: badRequest}
	}
	status := err.GetHttpStatus()
	if status == 0 {
		status = http.StatusInternalServerError
	}
	shape := err.GetShape()
	return server.ServerJsonResponse{
		Status: status,
		Response: composedError{
			Type:      err.GetType(),
			Signature: shape.Signature(),
			Base:      shape.Base(),
			Kinds:     shape.Kinds(),
			Message:   err.GetMessage(),
			Code:      err.GetCode(),
			Http:      err.GetHttpStatus(),
			Severity:  err.GetSeverity(),
			File:      err.GetFile(),
			Line:      err.GetLine(),
			Context:   err.GetContext(),
		},
	}
}

func (i inspector) types(context.Context, *struct{}) server.ServerResponse {
	types := i.composer.Registry().Types()
	response := make([]composedType, 0, len(types))
	for _, shape := range types {
		response = append(response, describeType(shape))
	}
	return server.ServerJsonResponse{Status: http.StatusOK, Response: response}
}

func describeType(shape *exceptional.Type) composedType {
	return composedType{
		Name:       shape.Name(),
		Signature:  shape.Signature(),
		Base:       shape.Base(),
		Interfaces: shape.Interfaces(),
		Traits:     shape.Traits(),
	}
}
