package coercible

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	cmap "github.com/orcaman/concurrent-map/v2"
)

// DefaultSeparator separates segments of a qualified constant name.
const DefaultSeparator = "::"

// Namespace resolves a single name segment to an entity. An entity that is
// itself a Namespace can be descended into by the next segment.
type Namespace interface {
	Lookup(name string) (any, bool)
}

// NamespaceFunc is a function adapter for Namespace.
type NamespaceFunc func(name string) (any, bool)

func (f NamespaceFunc) Lookup(name string) (any, bool) {
	return f(name)
}

// Registry errors.
var (
	// ErrAlreadyDefined is returned when a path is defined twice.
	ErrAlreadyDefined = errors.New("coercible: name already defined")

	// ErrNotNamespace is returned when a path descends through a plain entity.
	ErrNotNamespace = errors.New("coercible: name is not a namespace")

	// ErrEmptyName is returned for paths with an empty segment.
	ErrEmptyName = errors.New("coercible: empty name segment")
)

// Registry is an in-memory Namespace tree. It is safe for concurrent Define
// and Lookup.
type Registry struct {
	sep      string
	children cmap.ConcurrentMap[string, any]
}

// NewRegistry creates an empty registry whose paths are split on sep.
// An empty sep selects DefaultSeparator.
func NewRegistry(sep string) *Registry {
	if sep == "" {
		sep = DefaultSeparator
	}
	return &Registry{
		sep:      sep,
		children: cmap.New[any](),
	}
}

// Lookup returns the direct child called name.
func (r *Registry) Lookup(name string) (any, bool) {
	return r.children.Get(name)
}

// Names returns the direct children, sorted.
func (r *Registry) Names() []string {
	names := r.children.Keys()
	sort.Strings(names)
	return names
}

// Define binds value at path, creating intermediate registries as needed.
// A leading separator is ignored.
func (r *Registry) Define(path string, value any) error {
	names := splitQualified(path, r.sep)
	if len(names) == 0 {
		return fmt.Errorf("define %q: %w", path, ErrEmptyName)
	}

	current := r
	for i, name := range names {
		if name == "" {
			return fmt.Errorf("define %q: %w", path, ErrEmptyName)
		}

		if i == len(names)-1 {
			if !current.children.SetIfAbsent(name, value) {
				return fmt.Errorf("define %q: %w", path, ErrAlreadyDefined)
			}
			return nil
		}

		child := current.children.Upsert(name, nil, func(exist bool, inMap any, _ any) any {
			if exist {
				return inMap
			}
			return NewRegistry(r.sep)
		})

		next, ok := child.(*Registry)
		if !ok {
			return fmt.Errorf("define %q at %q: %w", path, name, ErrNotNamespace)
		}
		current = next
	}
	return nil
}

// splitQualified splits a qualified name and drops one leading empty segment,
// which marks the name as absolute.
func splitQualified(value, sep string) []string {
	names := strings.Split(value, sep)
	if len(names) > 0 && names[0] == "" {
		names = names[1:]
	}
	return names
}
