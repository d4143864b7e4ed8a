package exceptional

import (
	"maps"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// Definitions declare user kinds ahead of any composition:
//
//	types:
//	  App.Storage.DriverException: RuntimeException
//	interfaces:
//	  App.Storage.MissingException:
//	    - Exceptional.NotFoundException
//	traits:
//	  App.Storage.MissingExceptionTrait:
//	    retryable: true
//
// Types are concrete base types with their parent, interfaces list their
// parents and traits are static traits with the context values they add.
type Definitions struct {
	Types      map[string]string         `yaml:"types"`
	Interfaces map[string][]string       `yaml:"interfaces"`
	Traits     map[string]map[string]any `yaml:"traits"`
}

// LoadDefinitions reads a YAML definitions file into the Registry.
func (r *Registry) LoadDefinitions(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return ErrDefinition.SetMessage("read definitions file %s failed", path).AddCause(err)
	}
	var definitions Definitions
	if err := yaml.Unmarshal(content, &definitions); err != nil {
		return ErrDefinition.SetMessage("parse definitions file %s failed", path).AddCause(err)
	}
	return r.Define(&definitions)
}

// Define registers the definitions. Entries may reference each other in any
// order.
func (r *Registry) Define(definitions *Definitions) error {
	err := registerInOrder(definitions.Types, func(parent string) []string {
		return []string{parent}
	}, r.IsBaseType, func(id string, parent string) error {
		return r.RegisterBaseType(id, parent)
	})
	if err != nil {
		return err
	}
	err = registerInOrder(definitions.Interfaces, func(parents []string) []string {
		return parents
	}, r.isDeclaredInterface, func(id string, parents []string) error {
		return r.RegisterInterface(id, parents...)
	})
	if err != nil {
		return err
	}
	for _, id := range slices.Sorted(maps.Keys(definitions.Traits)) {
		if err := r.RegisterTrait(id, StaticTrait(definitions.Traits[id])); err != nil {
			return err
		}
	}
	return nil
}

func (r *Registry) isDeclaredInterface(id string) bool {
	_, exists := r.interfaceParents(id)
	return exists
}

// registerInOrder registers the entries whose references are known first,
// then the rest, so an entry may appear before the entries it references.
// What is left after no more progress is registered anyway and fails there.
func registerInOrder[Value any](
	entries map[string]Value,
	references func(Value) []string,
	known func(id string) bool,
	register func(id string, value Value) error,
) error {
	pending := make([]string, 0, len(entries))
	for id := range entries {
		pending = append(pending, strings.TrimLeft(id, "./"))
	}
	slices.Sort(pending)
	values := make(map[string]Value, len(entries))
	for id, value := range entries {
		values[strings.TrimLeft(id, "./")] = value
	}
	for len(pending) > 0 {
		var next []string
		for _, id := range pending {
			ready := true
			for _, reference := range references(values[id]) {
				if reference != "" && !known(reference) && slices.Contains(pending, reference) {
					ready = false
					break
				}
			}
			if !ready {
				next = append(next, id)
				continue
			}
			if err := register(id, values[id]); err != nil {
				return err
			}
		}
		if len(next) == len(pending) {
			// a cycle: the first entry goes anyway and fails unless its
			// references resolve elsewhere
			if err := register(next[0], values[next[0]]); err != nil {
				return err
			}
			next = next[1:]
		}
		pending = next
	}
	return nil
}
