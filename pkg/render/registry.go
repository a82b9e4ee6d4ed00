package render

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// ErrRendererNotFound is returned when no renderer matches a name.
var ErrRendererNotFound = errors.New("render: renderer not found")

// Registry stores renderers by name and alias. It is safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	renderers map[string]Renderer
	aliases   map[string]string
}

// NewRegistry creates an empty registry instance.
func NewRegistry() *Registry {
	return &Registry{
		renderers: make(map[string]Renderer),
		aliases:   make(map[string]string),
	}
}

// Register adds a renderer under its Name() plus any aliases (for example
// "html" for the vanilla renderer). Duplicate names return an error.
func (r *Registry) Register(renderer Renderer, aliases ...string) error {
	if renderer == nil {
		return fmt.Errorf("render: renderer is required")
	}
	name := strings.TrimSpace(renderer.Name())
	if name == "" {
		return fmt.Errorf("render: renderer name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.taken(name) {
		return fmt.Errorf("render: renderer %q already registered", name)
	}
	for _, alias := range aliases {
		alias = strings.TrimSpace(alias)
		if alias == "" || alias == name {
			continue
		}
		if r.taken(alias) {
			return fmt.Errorf("render: alias %q already registered", alias)
		}
	}

	r.renderers[name] = renderer
	for _, alias := range aliases {
		alias = strings.TrimSpace(alias)
		if alias == "" || alias == name {
			continue
		}
		r.aliases[alias] = name
	}
	return nil
}

func (r *Registry) taken(name string) bool {
	if _, ok := r.renderers[name]; ok {
		return true
	}
	_, ok := r.aliases[name]
	return ok
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(renderer Renderer, aliases ...string) {
	if err := r.Register(renderer, aliases...); err != nil {
		panic(err)
	}
}

// Get retrieves a renderer by name or alias.
func (r *Registry) Get(name string) (Renderer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	key := strings.TrimSpace(name)
	if target, ok := r.aliases[key]; ok {
		key = target
	}
	renderer, ok := r.renderers[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrRendererNotFound, name)
	}
	return renderer, nil
}

// Resolve returns the renderer for name. An empty name falls back to
// fallback and then to the first registered renderer in name order; an
// explicit unknown name is an error.
func (r *Registry) Resolve(name, fallback string) (Renderer, error) {
	if name != "" {
		return r.Get(name)
	}
	if fallback != "" {
		if renderer, err := r.Get(fallback); err == nil {
			return renderer, nil
		}
	}
	names := r.List()
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: no renderers registered", ErrRendererNotFound)
	}
	return r.Get(names[0])
}

// List returns a sorted list of renderer names, excluding aliases.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.renderers))
	for name := range r.renderers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether a renderer or alias is registered under name.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.taken(strings.TrimSpace(name))
}
