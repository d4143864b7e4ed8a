package exceptional

import (
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/thanhminhmr/go-exceptional/helper"
	"github.com/thanhminhmr/go-exceptional/internal"
	"github.com/thanhminhmr/go-exceptional/taxonomy"
)

const (
	// RootInterface is satisfied by every composed error.
	RootInterface = taxonomy.Package + "." + taxonomy.Suffix
	// InspectableInterface marks errors that can be dumped for inspection. Every
	// composed error satisfies it.
	InspectableInterface = taxonomy.Package + ".Inspectable"
	// IncompleteInterface marks code that is not finished yet.
	IncompleteInterface = taxonomy.Package + ".Incomplete" + taxonomy.Suffix
	// IncompleteTraitName is attached to every composite type satisfying
	// IncompleteInterface.
	IncompleteTraitName = IncompleteInterface + "Trait"
)

// Registry is the type environment a Composer works against: concrete base
// types, declared interfaces with their parents, traits and the cache of
// composite types. It only grows.
type Registry struct {
	mutex      sync.RWMutex
	baseTypes  map[string]string
	interfaces map[string][]string
	traits     map[string]Trait
	loader     func(id string)

	types helper.SyncMap[string, *Type]
}

// NewRegistry returns a Registry holding the built-in base types, both roots,
// the standard kinds and the Incomplete interface with its trait.
func NewRegistry() *Registry {
	registry := &Registry{
		baseTypes:  make(map[string]string),
		interfaces: make(map[string][]string),
		traits:     make(map[string]Trait),
	}
	for _, name := range taxonomy.BaseTypes() {
		parent, _ := taxonomy.BaseType(name)
		registry.baseTypes[name] = parent
	}
	registry.interfaces[RootInterface] = nil
	registry.interfaces[InspectableInterface] = nil
	for _, name := range taxonomy.Names() {
		entry, _ := taxonomy.Lookup(name)
		if entry.Extend != "" {
			registry.interfaces[taxonomy.Identifier(name)] = []string{taxonomy.Identifier(entry.Extend)}
		} else {
			registry.interfaces[taxonomy.Identifier(name)] = []string{RootInterface}
		}
	}
	registry.interfaces[IncompleteInterface] = []string{RootInterface}
	registry.traits[IncompleteTraitName] = IncompleteTrait
	return registry
}

// RegisterBaseType declares a concrete base type. An empty parent means the
// root type "Exception".
func (r *Registry) RegisterBaseType(id string, parent string) error {
	if !isIdentifier(id) || !strings.HasSuffix(id, taxonomy.Suffix) {
		return ErrInvalidInput.SetMessage("invalid base type identifier: %q", id)
	}
	if parent == "" {
		parent = taxonomy.RootType
	}
	r.mutex.Lock()
	defer r.mutex.Unlock()
	if _, exists := r.baseTypes[parent]; !exists {
		return ErrUnknownReference.SetMessage("%s is not a base type", parent)
	}
	if existing, exists := r.baseTypes[id]; exists {
		if existing != parent {
			return ErrConflict.SetMessage("base type %s already extends %s", id, existing)
		}
		return nil
	}
	if err := r.checkUnusedLocked(id); err != nil {
		return err
	}
	r.baseTypes[id] = parent
	return nil
}

// RegisterInterface declares an interface. Without parents, the interface
// extends RootInterface.
func (r *Registry) RegisterInterface(id string, parents ...string) error {
	if !isIdentifier(id) {
		return ErrInvalidInput.SetMessage("invalid interface identifier: %q", id)
	}
	if len(parents) == 0 {
		parents = []string{RootInterface}
	}
	parents = slices.Compact(slices.Sorted(slices.Values(parents)))
	// checked before locking, the loader may declare missing parents
	for _, parent := range parents {
		if parent == id {
			return ErrDefinition.SetMessage("interface %s cannot extend itself", id)
		}
		if !r.IsInterface(parent) {
			return ErrUnknownReference.SetMessage("%s is not an interface", parent)
		}
	}
	r.mutex.Lock()
	defer r.mutex.Unlock()
	if existing, exists := r.interfaces[id]; exists {
		if !slices.Equal(slices.Sorted(slices.Values(existing)), parents) {
			return ErrConflict.SetMessage("interface %s is already declared with other parents", id)
		}
		return nil
	}
	if err := r.checkUnusedLocked(id); err != nil {
		return err
	}
	r.interfaces[id] = parents
	return nil
}

// RegisterTrait declares a trait. Trait identifiers end with "Trait".
func (r *Registry) RegisterTrait(id string, trait Trait) error {
	if !isIdentifier(id) || !strings.HasSuffix(id, "Trait") {
		return ErrInvalidInput.SetMessage("invalid trait identifier: %q", id)
	}
	if trait == nil {
		return ErrInvalidInput.SetMessage("trait %s is nil", id)
	}
	r.mutex.Lock()
	defer r.mutex.Unlock()
	if _, exists := r.traits[id]; exists {
		return ErrConflict.SetMessage("trait %s is already declared", id)
	}
	if err := r.checkUnusedLocked(id); err != nil {
		return err
	}
	r.traits[id] = trait
	return nil
}

// Exists reports whether id names a base type, an interface or a trait.
func (r *Registry) Exists(id string) bool {
	return r.IsBaseType(id) || r.IsInterface(id) || r.IsTrait(id)
}

func (r *Registry) IsBaseType(id string) bool {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	_, exists := r.baseTypes[id]
	return exists
}

// IsInterface reports whether id is a declared interface. When a loader is
// installed, it gets a chance to declare an unknown id first.
func (r *Registry) IsInterface(id string) bool {
	if _, exists := r.interfaceParents(id); exists {
		return true
	}
	r.mutex.RLock()
	loader := r.loader
	r.mutex.RUnlock()
	if loader == nil {
		return false
	}
	loader(id)
	_, exists := r.interfaceParents(id)
	return exists
}

func (r *Registry) IsTrait(id string) bool {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	_, exists := r.traits[id]
	return exists
}

// Types returns every cached composite type, sorted by name then signature.
func (r *Registry) Types() []*Type {
	var types []*Type
	r.types.ForEach(func(_ string, value *Type) bool {
		types = append(types, value)
		return true
	})
	slices.SortFunc(types, func(a, b *Type) int {
		if compare := strings.Compare(a.name, b.name); compare != 0 {
			return compare
		}
		return strings.Compare(a.signature, b.signature)
	})
	return types
}

// Len returns the number of cached composite types.
func (r *Registry) Len() int {
	return r.types.Len()
}

func (r *Registry) setLoader(loader func(id string)) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.loader = loader
}

func (r *Registry) interfaceParents(id string) ([]string, bool) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	parents, exists := r.interfaces[id]
	return parents, exists
}

func (r *Registry) trait(id string) Trait {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	return r.traits[id]
}

// baseDescends reports whether base is ancestor or one of its descendants.
func (r *Registry) baseDescends(base string, ancestor string) bool {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	for current := base; current != ""; current = r.baseTypes[current] {
		if current == ancestor {
			return true
		}
	}
	return false
}

// baseAncestry returns base followed by its ancestors up to the root type.
func (r *Registry) baseAncestry(base string) []string {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	var ancestry []string
	for current := base; current != ""; current = r.baseTypes[current] {
		ancestry = append(ancestry, current)
	}
	return ancestry
}

func (r *Registry) checkUnusedLocked(id string) error {
	if _, exists := r.baseTypes[id]; exists {
		return ErrConflict.SetMessage("%s is already declared as a base type", id)
	}
	if _, exists := r.interfaces[id]; exists {
		return ErrConflict.SetMessage("%s is already declared as an interface", id)
	}
	if _, exists := r.traits[id]; exists {
		return ErrConflict.SetMessage("%s is already declared as a trait", id)
	}
	return nil
}

// isIdentifier reports whether id is canonical: dotted, absolute and without
// a leading separator.
func isIdentifier(id string) bool {
	return !strings.ContainsRune(id, '/') && !strings.HasPrefix(id, ".") && internal.KindPattern.MatchString(id)
}

// store declares the interfaces of index that are not known yet, then caches
// the composite type made by build under signature unless another composition
// cached it first. build runs with the registry locked.
func (r *Registry) store(signature string, index map[string][]string, build func() *Type) (stored *Type, declared []string, created bool) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	for _, id := range slices.Sorted(maps.Keys(index)) {
		parents := index[id]
		if len(parents) == 0 {
			continue
		}
		if _, exists := r.interfaces[id]; exists {
			continue
		}
		if _, exists := r.baseTypes[id]; exists {
			continue
		}
		r.interfaces[id] = slices.Clone(parents)
		declared = append(declared, id)
	}
	if cached, exists := r.types.Get(signature); exists {
		return cached, declared, false
	}
	stored, exists := r.types.PutIfAbsent(signature, build())
	return stored, declared, !exists
}
