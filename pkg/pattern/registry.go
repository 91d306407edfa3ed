package pattern

import (
	"errors"
	"fmt"
	"maps"
	"regexp"
	"slices"
	"sync"
)

// ErrUnknownPattern is returned when a pattern name is not registered.
var ErrUnknownPattern = errors.New("unknown pattern")

// Registry maps pattern names to regular-expression source text.
// The zero value and a nil *Registry are valid empty registries.
type Registry struct {
	patterns map[string]string
}

// New builds a registry from the given table. The map is copied.
func New(patterns map[string]string) *Registry {
	return &Registry{patterns: maps.Clone(patterns)}
}

var defaultRegistry = sync.OnceValue(func() *Registry {
	return New(defaultPatterns)
})

// Default returns the built-in registry. It is shared and read-only.
func Default() *Registry {
	return defaultRegistry()
}

// Lookup returns the source registered under name. Names are case-sensitive.
func (r *Registry) Lookup(name string) (string, bool) {
	if r == nil {
		return "", false
	}
	src, ok := r.patterns[name]
	return src, ok
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(r.patterns))
}

// Len reports the number of registered patterns.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.patterns)
}

// Merge returns a new registry holding r's patterns overlaid with overrides.
// r itself is not modified.
func (r *Registry) Merge(overrides map[string]string) *Registry {
	merged := make(map[string]string, r.Len()+len(overrides))
	if r != nil {
		maps.Copy(merged, r.patterns)
	}
	maps.Copy(merged, overrides)
	return &Registry{patterns: merged}
}

// Pattern compiles the named pattern. It is the equivalent of
// Compile("<" + name + ">") except that an unknown name is an error
// instead of a literal match on "<name>".
func (r *Registry) Pattern(name string) (*regexp.Regexp, error) {
	if _, ok := r.Lookup(name); !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPattern, name)
	}
	return r.Compile("<" + name + ">")
}
