package http

import (
	"encoding/json"
	"net/http"

	"github.com/thanhminhmr/go-exceptional/exception"

	"github.com/rs/zerolog"
)

type ServerResponse interface {
	Render(writer http.ResponseWriter) error
}

// ServerErrorResponse renders a composed error with its HTTP status, or 500
// when it has none.
type ServerErrorResponse struct {
	Cause exception.Exception
}

type serverErrorBody struct {
	Type    string   `json:"type"`
	Message string   `json:"message"`
	Kinds   []string `json:"kinds"`
	Code    int      `json:"code,omitempty"`
}

func (e ServerErrorResponse) Status() int {
	if status := e.Cause.GetHttpStatus(); status != 0 {
		return status
	}
	return http.StatusInternalServerError
}

func (e ServerErrorResponse) Render(writer http.ResponseWriter) error {
	header := writer.Header()
	header.Set("Content-Type", "application/json; charset=utf-8")
	header.Set("X-Content-Type-Options", "nosniff")
	writer.WriteHeader(e.Status())
	return json.NewEncoder(writer).Encode(serverErrorBody{
		Type:    e.Cause.GetType(),
		Message: e.Cause.GetMessage(),
		Kinds:   e.Cause.GetKinds(),
		Code:    e.Cause.GetCode(),
	})
}

func (e ServerErrorResponse) Error() string {
	return e.Cause.Error()
}

func (e ServerErrorResponse) MarshalZerologObject(event *zerolog.Event) {
	event.Err(e.Cause).Int("status", e.Status())
}

type ServerJsonResponse struct {
	Status   int
	Response any
}

func (r ServerJsonResponse) Render(writer http.ResponseWriter) error {
	writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	writer.WriteHeader(r.Status)
	return json.NewEncoder(writer).Encode(r.Response)
}
