package exceptional

import (
	"strconv"
	"strings"

	"github.com/thanhminhmr/go-exceptional/exception"
	"github.com/thanhminhmr/go-exceptional/taxonomy"

	"github.com/cespare/xxhash/v2"
	"github.com/rs/zerolog"
)

// definition is the canonical form of a composite type: the base type, the
// minimal interface set and the trait set, both sorted.
type definition struct {
	base       string
	interfaces []string
	traits     []string
}

func (d definition) String() string {
	return d.base + "|" + strings.Join(d.interfaces, ",") + "|" + strings.Join(d.traits, ",")
}

func (d definition) signature() string {
	signature := strconv.FormatUint(xxhash.Sum64String(d.String()), 16)
	return strings.Repeat("0", 16-len(signature)) + signature
}

// Type is a composite error type. It is built once per distinct definition
// and shared by every error composed from that definition, so two errors of
// the same shape have the same *Type.
type Type struct {
	name       string
	signature  string
	base       string
	interfaces []string
	kinds      []string
	traitNames []string
	traits     []Trait
	ids        map[string]struct{}
	names      map[string]struct{}
}

func newType(d definition, signature string, closure map[string]struct{}, traits []Trait) *Type {
	kinds := make([]string, 0, len(d.interfaces))
	for _, id := range d.interfaces {
		if id != RootInterface && id != InspectableInterface {
			kinds = append(kinds, id)
		}
	}
	names := make(map[string]struct{}, len(closure))
	for id := range closure {
		names[lastSegment(id)] = struct{}{}
	}
	return &Type{
		name:       displayName(d.base, kinds),
		signature:  signature,
		base:       d.base,
		interfaces: d.interfaces,
		kinds:      kinds,
		traitNames: d.traits,
		traits:     traits,
		ids:        closure,
		names:      names,
	}
}

// Name is the display name, the short names of the kinds joined by " | ".
// A type without kinds is named after its base type.
func (t *Type) Name() string {
	return t.name
}

// Signature is the hash identifying the definition of this Type.
func (t *Type) Signature() string {
	return t.signature
}

// Base is the concrete base type, for example "RuntimeException".
func (t *Type) Base() string {
	return t.base
}

// Kinds returns the minimal set of kind identifiers, without the universal
// roots, sorted.
func (t *Type) Kinds() []string {
	return append([]string(nil), t.kinds...)
}

// Interfaces returns the minimal interface set, roots included, sorted.
func (t *Type) Interfaces() []string {
	return append([]string(nil), t.interfaces...)
}

// Traits returns the identifiers of the attached traits, sorted.
func (t *Type) Traits() []string {
	return append([]string(nil), t.traitNames...)
}

// Satisfies reports whether this Type is of the given kind. A dotted kind such
// as "App.Storage.Missing" must match an identifier exactly, a bare kind such
// as "NotFound" matches any identifier with that last segment. The suffix
// "Exception" and leading separators are optional.
func (t *Type) Satisfies(kind string) bool {
	kind = strings.ReplaceAll(strings.TrimLeft(strings.TrimSpace(kind), "./"), "/", ".")
	if kind == "" {
		return false
	}
	candidates := []string{kind}
	if !strings.HasSuffix(kind, taxonomy.Suffix) {
		candidates = append(candidates, kind+taxonomy.Suffix)
	}
	lookup := t.names
	if strings.Contains(kind, ".") {
		lookup = t.ids
	}
	for _, candidate := range candidates {
		if _, exists := lookup[candidate]; exists {
			return true
		}
	}
	return false
}

func (t *Type) MarshalZerologObject(event *zerolog.Event) {
	event.Str("name", t.name).
		Str("signature", t.signature).
		Str("base", t.base).
		Strs("kinds", t.kinds)
	if len(t.traitNames) > 0 {
		event.Strs("traits", t.traitNames)
	}
}

func (t *Type) instantiate(properties exception.Properties, caller exception.StackFrame) exception.Exception {
	if len(t.traits) > 0 {
		if properties.Context == nil {
			properties.Context = make(map[string]any)
		}
		for _, trait := range t.traits {
			trait(properties.Context, caller)
		}
	}
	return exception.New(t, properties)
}

func lastSegment(id string) string {
	return id[strings.LastIndexByte(id, '.')+1:]
}

func shortName(id string) string {
	if name := strings.TrimSuffix(lastSegment(id), taxonomy.Suffix); name != "" {
		return name
	}
	// a namespace interface is named after its namespace
	if namespace, found := strings.CutSuffix(id, "."+taxonomy.Suffix); found {
		return namespace
	}
	return id
}

func displayName(base string, kinds []string) string {
	if len(kinds) == 0 {
		return shortName(base)
	}
	names := make([]string, len(kinds))
	for index, kind := range kinds {
		names[index] = shortName(kind)
	}
	return strings.Join(names, " | ")
}
