package exceptional

import (
	"testing"

	"github.com/thanhminhmr/go-exceptional/exception"

	"github.com/stretchr/testify/require"
)

func TestCallerNamespace(t *testing.T) {
	tests := []struct {
		name      string
		frame     exception.StackFrame
		namespace string
	}{
		{
			name:      "function",
			frame:     exception.StackFrame{Function: "github.com/acme/app/storage.Get", File: "get.go"},
			namespace: "acme.app.storage",
		},
		{
			name:      "method",
			frame:     exception.StackFrame{Function: "github.com/acme/app/storage.(*Store).Get", File: "store.go"},
			namespace: "acme.app.storage",
		},
		{
			name:      "closure",
			frame:     exception.StackFrame{Function: "github.com/acme/app/storage.(*Store).Get.func1", File: "store.go"},
			namespace: "acme.app.storage",
		},
		{
			name:      "generic",
			frame:     exception.StackFrame{Function: "github.com/acme/app/storage.Load[go.shape.*github.com/acme/app/model.User]", File: "load.go"},
			namespace: "acme.app.storage",
		},
		{
			name:      "invalid characters",
			frame:     exception.StackFrame{Function: "github.com/acme/go-app/v2.Run", File: "run.go"},
			namespace: "acme.go_app.v2",
		},
		{
			name:      "no host",
			frame:     exception.StackFrame{Function: "app/storage.Get", File: "get.go"},
			namespace: "app.storage",
		},
		{
			name:      "single segment",
			frame:     exception.StackFrame{Function: "storage.Get", File: "get.go"},
			namespace: "storage",
		},
		{
			name:  "main",
			frame: exception.StackFrame{Function: "main.main", File: "main.go"},
		},
		{
			name:  "package level closure",
			frame: exception.StackFrame{Function: "github.com/acme/app/storage.glob..func1", File: "store.go"},
		},
		{
			name:  "generated",
			frame: exception.StackFrame{Function: "github.com/acme/app/storage.(*Store).Get", File: "<autogenerated>"},
		},
		{
			name:  "unknown",
			frame: exception.StackFrame{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.namespace, callerNamespace(tt.frame))
		})
	}
}

func TestExplicitNamespace(t *testing.T) {
	tests := map[string]string{
		"":             "",
		"App":          "App",
		".App.Storage": "App.Storage",
		"/App/Storage": "App.Storage",
		"  App ":       "App",
		"//":           "",
	}
	for input, expected := range tests {
		namespace, err := explicitNamespace(input)
		require.NoError(t, err, input)
		require.Equal(t, expected, namespace, input)
	}
	_, err := explicitNamespace("App Storage")
	require.ErrorIs(t, err, ErrInvalidInput)
}
