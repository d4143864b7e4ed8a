package exceptional

import (
	"slices"
	"strings"

	"github.com/thanhminhmr/go-exceptional/internal"
	"github.com/thanhminhmr/go-exceptional/taxonomy"
)

// resolution is the state of one composition: the requested interfaces and
// traits, the concrete base type and the index of interfaces to their direct
// parents. It is owned by a single call and never shared.
type resolution struct {
	registry  *Registry
	namespace string
	base      string
	http      int

	interfaces []string
	requested  map[string]struct{}
	traits     map[string]struct{}
	index      map[string][]string
}

func newResolution(registry *Registry, namespace string, http int) *resolution {
	return &resolution{
		registry:  registry,
		namespace: namespace,
		http:      http,
		requested: make(map[string]struct{}),
		traits:    make(map[string]struct{}),
		index: map[string][]string{
			RootInterface:        nil,
			InspectableInterface: nil,
		},
	}
}

//region import

func (r *resolution) importTypes(names []string) error {
	for _, name := range names {
		if err := r.importType(name); err != nil {
			return err
		}
	}
	return nil
}

func (r *resolution) importType(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	if err := internal.Validator.Var(name, "kind"); err != nil {
		return ErrInvalidInput.SetMessage("malformed kind name: %q", name).AddCause(err)
	}
	isTrait := strings.HasSuffix(name, "Trait")
	if !isTrait && !strings.HasSuffix(name, taxonomy.Suffix) {
		name += taxonomy.Suffix
	}
	id, err := r.resolvePath(name)
	if err != nil {
		return err
	}
	if isTrait {
		if !r.registry.IsTrait(id) {
			return ErrUnknownReference.SetMessage("trait not found: %s", id)
		}
		r.traits[id] = struct{}{}
		return nil
	}
	if r.registry.IsBaseType(id) {
		if err := r.mergeBase(id); err != nil {
			return err
		}
	}
	r.addInterface(id)
	return nil
}

func (r *resolution) resolvePath(name string) (string, error) {
	switch {
	case strings.HasPrefix(name, "./"), strings.HasPrefix(name, "../"):
		if r.namespace == "" {
			return "", errNotInNamespace(name)
		}
		return r.dereference(name)
	case strings.HasPrefix(name, "/"):
		return strings.ReplaceAll(name[1:], "/", "."), nil
	case strings.HasPrefix(name, "."):
		if r.namespace == "" {
			return "", errNotInNamespace(name)
		}
		return r.namespace + "." + strings.ReplaceAll(name[1:], "/", "."), nil
	case strings.ContainsAny(name, "./"):
		return strings.ReplaceAll(name, "/", "."), nil
	case r.namespace != "":
		return r.namespace + "." + name, nil
	}
	// a bare standard kind at the root namespace is the standard kind itself
	if standardName := strings.TrimSuffix(name, taxonomy.Suffix); standardName != name {
		if _, standard := taxonomy.Lookup(standardName); standard {
			return taxonomy.Identifier(standardName), nil
		}
	}
	return name, nil
}

func (r *resolution) dereference(name string) (string, error) {
	segments := strings.Split(r.namespace, ".")
	for _, token := range strings.Split(name, "/") {
		switch token {
		case ".":
		case "..":
			if len(segments) == 0 {
				return "", ErrDefinition.SetMessage("path escapes the root namespace: %s", name)
			}
			segments = segments[:len(segments)-1]
		default:
			segments = append(segments, strings.Split(token, ".")...)
		}
	}
	return strings.Join(segments, "."), nil
}

func errNotInNamespace(name string) error {
	return ErrDefinition.SetMessage("stack context is not within a namespace for path dereferencing: %s", name)
}

// importBase handles a base type named explicitly.
func (r *resolution) importBase(name string) error {
	id := normalizeIdentifier(name)
	if id == "" {
		return nil
	}
	if !r.registry.IsBaseType(id) {
		return ErrUnknownReference.SetMessage("%s is not a base type", id)
	}
	return r.mergeBase(id)
}

func (r *resolution) importInterfaces(names []string) error {
	for _, name := range names {
		id := normalizeIdentifier(name)
		if id == "" {
			continue
		}
		if !r.registry.IsInterface(id) {
			return ErrUnknownReference.SetMessage("%s is not an interface", id)
		}
		r.addInterface(id)
	}
	return nil
}

func (r *resolution) importTraits(names []string) error {
	for _, name := range names {
		id := normalizeIdentifier(name)
		if id == "" {
			continue
		}
		if !r.registry.IsTrait(id) {
			return ErrUnknownReference.SetMessage("%s is not a trait", id)
		}
		r.traits[id] = struct{}{}
	}
	return nil
}

func (r *resolution) addInterface(id string) {
	if _, exists := r.requested[id]; exists {
		return
	}
	r.requested[id] = struct{}{}
	r.interfaces = append(r.interfaces, id)
}

// mergeBase puts candidate in the base type slot. Two candidates are
// compatible when one descends from the other, the most derived one is kept.
func (r *resolution) mergeBase(candidate string) error {
	switch {
	case r.base == "", r.base == candidate:
		r.base = candidate
	case r.registry.baseDescends(candidate, r.base):
		r.base = candidate
	case r.registry.baseDescends(r.base, candidate):
	default:
		return ErrConflict.SetMessage("already defined base type: %s", r.base)
	}
	return nil
}

// dropImpliedLocalKinds removes a requested namespace-local standard kind such
// as App.NotFoundException when another requested kind of the same namespace,
// App.ResourceNotFoundException, extends it in the catalog. Only kinds that
// carry nothing beyond their default parents are removed, so the result is the
// one of the more derived kind alone.
func (r *resolution) dropImpliedLocalKinds() {
	implied := make(map[string]struct{})
	for _, id := range r.interfaces {
		namespace, name, local := localStandardKind(id)
		if !local || r.registry.IsBaseType(id) {
			continue
		}
		for _, ancestor := range taxonomy.Ancestors(name) {
			implied[namespace+"."+ancestor+taxonomy.Suffix] = struct{}{}
		}
	}
	if len(implied) == 0 {
		return
	}
	kept := r.interfaces[:0]
	for _, id := range r.interfaces {
		if _, exists := implied[id]; exists && r.hasDefaultParents(id) {
			delete(r.requested, id)
			continue
		}
		kept = append(kept, id)
	}
	r.interfaces = kept
}

// hasDefaultParents reports whether a namespace-local standard kind extends
// nothing but its standard kind and namespace interfaces.
func (r *resolution) hasDefaultParents(id string) bool {
	if r.registry.IsBaseType(id) || r.registry.IsTrait(id+"Trait") {
		return false
	}
	parents, declared := r.registry.interfaceParents(id)
	if !declared {
		return true
	}
	namespace, name, _ := localStandardKind(id)
	for _, parent := range parents {
		if parent != taxonomy.Identifier(name) && !isNamespaceInterface(parent, namespace) {
			return false
		}
	}
	return true
}

// localStandardKind splits App.Storage.NotFoundException into its namespace
// and standard name. Standard identifiers themselves are not local.
func localStandardKind(id string) (namespace string, name string, local bool) {
	index := strings.LastIndexByte(id, '.')
	if index <= 0 {
		return "", "", false
	}
	namespace = id[:index]
	if namespace == taxonomy.Package {
		return "", "", false
	}
	name, found := strings.CutSuffix(id[index+1:], taxonomy.Suffix)
	if !found || name == "" {
		return "", "", false
	}
	if _, standard := taxonomy.Lookup(name); !standard {
		return "", "", false
	}
	return namespace, name, true
}

// isNamespaceInterface reports whether id is the root or the interface of
// namespace or of one of its enclosing namespaces.
func isNamespaceInterface(id string, namespace string) bool {
	if id == RootInterface {
		return true
	}
	enclosing, found := strings.CutSuffix(id, "."+taxonomy.Suffix)
	if !found {
		return false
	}
	return namespace == enclosing || strings.HasPrefix(namespace, enclosing+".")
}

func normalizeIdentifier(name string) string {
	return strings.ReplaceAll(strings.TrimLeft(strings.TrimSpace(name), "./"), "/", ".")
}

//endregion import

//region index

func (r *resolution) indexInterfaces() error {
	for _, id := range r.interfaces {
		if err := r.indexInterface(id); err != nil {
			return err
		}
	}
	return nil
}

func (r *resolution) indexInterface(id string) error {
	segments := strings.Split(id, ".")
	// a trait named after the interface is attached with it
	if trait := id + "Trait"; r.registry.IsTrait(trait) {
		r.traits[trait] = struct{}{}
	}
	namespaceParent := r.indexNamespace(segments[:len(segments)-1])
	concrete := r.registry.IsBaseType(id)
	if concrete {
		if err := r.mergeBase(id); err != nil {
			return err
		}
	}
	name := strings.TrimSuffix(segments[len(segments)-1], taxonomy.Suffix)
	_, standard := taxonomy.Lookup(name)
	if standard {
		if err := r.indexPackage(name); err != nil {
			return err
		}
	}
	if concrete {
		return nil
	}
	if _, indexed := r.index[id]; indexed {
		return nil
	}
	if parents, declared := r.registry.interfaceParents(id); declared {
		r.index[id] = parents
		return r.inheritDefaults(parents)
	}
	var parents []string
	if standard {
		parents = append(parents, taxonomy.Identifier(name))
	}
	if namespaceParent != "" {
		parents = append(parents, namespaceParent)
	}
	if len(parents) == 0 {
		parents = append(parents, RootInterface)
	}
	r.index[id] = parents
	return nil
}

// indexNamespace indexes the chain App.Exception <- App.Storage.Exception for
// the segments [App Storage] and returns its last element, or an empty string
// when the chain is empty.
func (r *resolution) indexNamespace(segments []string) string {
	last := RootInterface
	for count := range segments {
		id := strings.Join(segments[:count+1], ".") + "." + taxonomy.Suffix
		if r.registry.IsBaseType(id) {
			continue
		}
		if _, indexed := r.index[id]; indexed {
			last = id
			continue
		}
		if parents, declared := r.registry.interfaceParents(id); declared {
			r.index[id] = parents
			last = id
			continue
		}
		r.index[id] = []string{last}
		last = id
	}
	if last == RootInterface {
		return ""
	}
	return last
}

// indexPackage indexes a standard kind and its ancestors, taking the base type
// and HTTP status they define on the way.
func (r *resolution) indexPackage(name string) error {
	entry, _ := taxonomy.Lookup(name)
	if entry.Type != "" {
		if err := r.mergeBase(entry.Type); err != nil {
			return err
		}
	}
	if entry.Http != 0 && r.http == 0 {
		r.http = entry.Http
	}
	id := taxonomy.Identifier(name)
	if entry.Extend == "" {
		r.index[id] = []string{RootInterface}
		return nil
	}
	if err := r.indexPackage(entry.Extend); err != nil {
		return err
	}
	r.index[id] = []string{taxonomy.Identifier(entry.Extend)}
	return nil
}

// inheritDefaults takes the defaults of the standard kinds a declared
// interface descends from, nearest first.
func (r *resolution) inheritDefaults(parents []string) error {
	visited := make(map[string]struct{})
	pending := slices.Clone(parents)
	for len(pending) > 0 {
		id := pending[0]
		pending = pending[1:]
		if _, seen := visited[id]; seen {
			continue
		}
		visited[id] = struct{}{}
		if name, standard := taxonomy.Name(id); standard {
			if err := r.indexPackage(name); err != nil {
				return err
			}
			continue
		}
		if grandparents, declared := r.registry.interfaceParents(id); declared {
			pending = append(pending, grandparents...)
		}
	}
	return nil
}

//endregion index

//region definition

func (r *resolution) parents(id string) []string {
	if parents, indexed := r.index[id]; indexed {
		return parents
	}
	parents, _ := r.registry.interfaceParents(id)
	return parents
}

func (r *resolution) collectAncestors(id string, ancestors map[string]struct{}) {
	for _, parent := range r.parents(id) {
		if _, seen := ancestors[parent]; seen {
			continue
		}
		ancestors[parent] = struct{}{}
		r.collectAncestors(parent, ancestors)
	}
}

// minimize returns the indexed interfaces that are not an ancestor of another
// indexed interface, sorted.
func (r *resolution) minimize() []string {
	implied := make(map[string]struct{})
	for id := range r.index {
		r.collectAncestors(id, implied)
	}
	minimal := make([]string, 0, len(r.index))
	for id := range r.index {
		if _, exists := implied[id]; !exists {
			minimal = append(minimal, id)
		}
	}
	slices.Sort(minimal)
	return minimal
}

func (r *resolution) definition() definition {
	base := r.base
	if base == "" {
		base = taxonomy.RootType
	}
	traits := make([]string, 0, len(r.traits))
	for trait := range r.traits {
		traits = append(traits, trait)
	}
	slices.Sort(traits)
	return definition{
		base:       base,
		interfaces: r.minimize(),
		traits:     traits,
	}
}

// closure returns every identifier the composite type satisfies: its
// interfaces, their ancestors and the base type ancestry.
func (r *resolution) closure(d definition) map[string]struct{} {
	closure := make(map[string]struct{})
	for _, id := range d.interfaces {
		closure[id] = struct{}{}
		r.collectAncestors(id, closure)
	}
	for _, base := range r.registry.baseAncestry(d.base) {
		closure[base] = struct{}{}
	}
	return closure
}

//endregion definition
