package dashboard

import (
	"fmt"
	"sort"
	"sync"
)

// Registry implements ProviderRegistry as a lookup table keyed by widget type, so a
// renderer capability is a registration rather than a branch.
type Registry struct {
	mu          sync.RWMutex
	definitions map[WidgetType]WidgetDefinition
	providers   map[WidgetType]Provider
}

// NewRegistry builds a registry holding the default definitions and no providers.
func NewRegistry() *Registry {
	reg := &Registry{
		definitions: map[WidgetType]WidgetDefinition{},
		providers:   map[WidgetType]Provider{},
	}
	for _, def := range DefaultWidgetDefinitions() {
		_ = reg.RegisterDefinition(def)
	}
	return reg
}

// RegisterDefinition stores widget metadata, replacing any previous entry.
func (r *Registry) RegisterDefinition(def WidgetDefinition) error {
	if !def.Type.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownWidgetType, def.Type)
	}
	if !def.Footprint.valid() {
		def.Footprint = FootprintFor(def.Type)
	}
	if def.Name == "" {
		def.Name = displayName(def.Type)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.definitions[def.Type] = def
	return nil
}

// RegisterProvider associates a provider with a registered definition.
func (r *Registry) RegisterProvider(t WidgetType, provider Provider) error {
	if provider == nil {
		return fmt.Errorf("dashboard: provider for %s cannot be nil", t)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.definitions[t]; !ok {
		return fmt.Errorf("dashboard: widget definition %s not found", t)
	}
	r.providers[t] = provider
	return nil
}

// Definition fetches a widget definition by type.
func (r *Registry) Definition(t WidgetType) (WidgetDefinition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.definitions[t]
	return def, ok
}

// Provider fetches a widget provider by type.
func (r *Registry) Provider(t WidgetType) (Provider, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	provider, ok := r.providers[t]
	return provider, ok
}

// Definitions returns all registered definitions in enumeration order.
func (r *Registry) Definitions() []WidgetDefinition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	defs := make([]WidgetDefinition, 0, len(r.definitions))
	for _, def := range r.definitions {
		defs = append(defs, def)
	}
	sort.Slice(defs, func(i, j int) bool {
		return defs[i].Type.order() < defs[j].Type.order()
	})
	return defs
}

// Footprints returns the footprint table derived from the registered definitions.
func (r *Registry) Footprints() map[WidgetType]Footprint {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[WidgetType]Footprint, len(r.definitions))
	for t, def := range r.definitions {
		out[t] = def.Footprint
	}
	return out
}
