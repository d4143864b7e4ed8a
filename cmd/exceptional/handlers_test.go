package main

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/thanhminhmr/go-exceptional/exceptional"
	server "github.com/thanhminhmr/go-exceptional/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	logger := zerolog.Nop()
	registry := prometheus.NewRegistry()
	metrics, err := exceptional.NewMetrics(registry)
	require.NoError(t, err)
	composer, err := exceptional.NewComposer(nil, &logger, metrics)
	require.NoError(t, err)
	router := server.NewServer(&logger, fxtest.NewLifecycle(t), &server.ServerConfig{Port: 8080}, &server.ServerExtraConfig{}, composer)
	registerRoutes(router, composer, registry)
	return router
}

func get(t *testing.T, router http.Handler, url string, body any) *httptest.ResponseRecorder {
	t.Helper()
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, url, nil))
	if body != nil {
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), body))
	}
	return recorder
}

func TestComposeRoute(t *testing.T) {
	router := newTestRouter(t)
	tests := []struct {
		name   string
		url    string
		status int
		want   composedError
	}{
		{
			name:   "standard kinds",
			url:    "/compose/ResourceNotFound,Io?message=gone&code=3",
			status: http.StatusNotFound,
			want: composedError{
				Type:    "Io | ResourceNotFound",
				Base:    "RuntimeException",
				Kinds:   []string{"Exceptional.IoException", "Exceptional.ResourceNotFoundException"},
				Message: "gone",
				Code:    3,
				Http:    http.StatusNotFound,
			},
		},
		{
			name:   "custom kind with status",
			url:    "/compose/App.PaymentFailed?http=402&severity=2",
			status: http.StatusPaymentRequired,
			want: composedError{
				Type:     "PaymentFailed",
				Base:     "Exception",
				Kinds:    []string{"App.PaymentFailedException"},
				Http:     http.StatusPaymentRequired,
				Severity: 2,
			},
		},
		{
			name:   "standard kind in a namespace",
			url:    "/compose/Runtime?namespace=App",
			status: http.StatusInternalServerError,
			want: composedError{
				Type:  "Runtime",
				Base:  "RuntimeException",
				Kinds: []string{"App.RuntimeException"},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got composedError
			recorder := get(t, router, tt.url, &got)
			require.Equal(t, tt.status, recorder.Code)
			require.Len(t, got.Signature, 16)
			require.Contains(t, got.File, "handlers.go")
			require.Positive(t, got.Line)
			got.Signature, got.File, got.Line = "", "", 0
			require.Equal(t, tt.want, got)
		})
	}
}

func TestComposeRouteRejects(t *testing.T) {
	router := newTestRouter(t)
	for _, url := range []string{
		"/compose/.Missing",
		"/compose/Not-Valid",
		"/compose/Io?http=42",
		"/compose/Io?namespace=a-b",
		"/compose/Io?rewind=-1",
	} {
		var body map[string]any
		recorder := get(t, router, url, &body)
		require.Equal(t, http.StatusBadRequest, recorder.Code, url)
		require.Equal(t, "BadRequest", body["type"], url)
	}
}

func TestTypesRoute(t *testing.T) {
	router := newTestRouter(t)
	get(t, router, "/compose/Io", nil)
	get(t, router, "/compose/Io", nil)
	get(t, router, "/compose/Runtime", nil)

	var types []composedType
	recorder := get(t, router, "/types", &types)
	require.Equal(t, http.StatusOK, recorder.Code)
	require.Len(t, types, 2)
	require.Equal(t, "Io", types[0].Name)
	require.Equal(t, "Runtime", types[1].Name)
	require.Contains(t, types[0].Interfaces, "Exceptional.IoException")
}

func TestMetricsRoute(t *testing.T) {
	router := newTestRouter(t)
	get(t, router, "/compose/Io", nil)
	recorder := get(t, router, "/metrics", nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	body, err := io.ReadAll(recorder.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), `exceptional_compositions_total{result="miss"} 1`)
	require.Contains(t, string(body), "exceptional_composite_types 1")
}
