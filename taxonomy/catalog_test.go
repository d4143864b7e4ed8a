package taxonomy_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/thanhminhmr/go-exceptional/taxonomy"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		name   string
		kind   string
		entry  taxonomy.Entry
		exists bool
	}{
		{name: "root with type", kind: "Runtime", entry: taxonomy.Entry{Type: "RuntimeException"}, exists: true},
		{name: "http status", kind: "ResourceNotFound", entry: taxonomy.Entry{Extend: "NotFound", Http: 404}, exists: true},
		{name: "extend and type", kind: "BadMethodCall", entry: taxonomy.Entry{Extend: "BadFunctionCall", Type: "BadMethodCallException"}, exists: true},
		{name: "unknown", kind: "CustomLogicError", exists: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry, exists := taxonomy.Lookup(tt.kind)
			require.Equal(t, tt.exists, exists)
			require.Equal(t, tt.entry, entry)
		})
	}
}

func TestAncestorsTerminateAtRoot(t *testing.T) {
	roots := map[string]bool{"Logic": true, "Runtime": true, "Error": true}
	for _, name := range taxonomy.Names() {
		ancestors := taxonomy.Ancestors(name)
		if roots[name] {
			require.Empty(t, ancestors, name)
			continue
		}
		require.NotEmpty(t, ancestors, name)
		require.True(t, roots[ancestors[len(ancestors)-1]], "%s ends at %v", name, ancestors)
	}
	require.Equal(t, []string{"NotFound", "Runtime"}, taxonomy.Ancestors("ResourceNotFound"))
	require.Equal(t, []string{"Unauthorized", "Runtime"}, taxonomy.Ancestors("Forbidden"))
}

func TestEntryTypesAreBaseTypes(t *testing.T) {
	for _, name := range taxonomy.Names() {
		entry, _ := taxonomy.Lookup(name)
		if entry.Type == "" {
			continue
		}
		_, exists := taxonomy.BaseType(entry.Type)
		require.True(t, exists, "%s declares unknown base type %s", name, entry.Type)
	}
}

func TestIdentifierRoundTrip(t *testing.T) {
	require.Equal(t, "Exceptional.NotFoundException", taxonomy.Identifier("NotFound"))
	name, ok := taxonomy.Name("Exceptional.NotFoundException")
	require.True(t, ok)
	require.Equal(t, "NotFound", name)
	_, ok = taxonomy.Name("App.NotFoundException")
	require.False(t, ok)
	_, ok = taxonomy.Name("Exceptional.MissingException")
	require.False(t, ok)
}

func TestKindIsError(t *testing.T) {
	var err error = taxonomy.NotFound
	require.Equal(t, "NotFound", err.Error())
}
