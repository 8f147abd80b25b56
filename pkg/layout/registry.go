package layout

import (
	"fmt"
	"sync"

	"github.com/tidwall/btree"
)

// Registry holds named layouts ordered by name.
type Registry struct {
	mu      sync.RWMutex
	layouts btree.Map[string, *Layout]
}

// NewRegistry creates a registry from the given layouts.
func NewRegistry(layouts ...*Layout) (*Registry, error) {
	r := &Registry{}
	for _, l := range layouts {
		if err := r.Add(l); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Add registers a layout. Names must be unique and non-empty.
func (r *Registry) Add(l *Layout) error {
	if l.Name == "" {
		return fmt.Errorf("layout name cannot be empty")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.layouts.Get(l.Name); exists {
		return fmt.Errorf("layout %q already registered", l.Name)
	}
	r.layouts.Set(l.Name, l)
	return nil
}

// Get returns the layout registered under name.
func (r *Registry) Get(name string) (*Layout, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	l, ok := r.layouts.Get(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLayout, name)
	}
	return l, nil
}

// Names returns the registered layout names in ascending order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.layouts.Keys()
}

// Len returns the number of registered layouts.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.layouts.Len()
}

// Each calls fn for every layout in name order until fn returns false.
func (r *Registry) Each(fn func(*Layout) bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	r.layouts.Scan(func(_ string, l *Layout) bool {
		return fn(l)
	})
}
