package tab

import (
	"sort"
	"sync"

	"github.com/tabhost/tabhost/engine/core"
	"github.com/tabhost/tabhost/engine/diagnostic"
)

// Known container kinds. The set is extensible through KindRegistry.Register.
const (
	KindWidgets    = "widgets-container"
	KindGrid       = "grid-container"
	KindNavSection = "nav-section"
)

// ContainerValidator checks the kind-specific shape of a container value.
// Validators report details to the collector and return false to reject the
// record; they may have side effects independent of their verdict.
type ContainerValidator func(value any, src core.ExtensionIdentity, c *diagnostic.Collector) bool

// KindRegistry maps container kinds to their validators.
type KindRegistry struct {
	mu    sync.RWMutex
	kinds map[string]ContainerValidator
}

// NewKindRegistry creates an empty kind registry.
func NewKindRegistry() *KindRegistry {
	return &KindRegistry{kinds: make(map[string]ContainerValidator)}
}

// DefaultKinds returns a registry preloaded with the built-in container
// kinds.
func DefaultKinds() *KindRegistry {
	r := NewKindRegistry()
	r.Register(KindWidgets, validateWidgetsContainer)
	r.Register(KindGrid, validateGridContainer)
	r.Register(KindNavSection, validateNavSection)
	return r
}

// Register adds or replaces the validator for a kind.
func (r *KindRegistry) Register(kind string, v ContainerValidator) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.kinds[kind] = v
}

// Lookup returns the validator for a kind.
func (r *KindRegistry) Lookup(kind string) (ContainerValidator, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.kinds[kind]
	return v, ok
}

// Kinds returns the registered kind names, sorted.
func (r *KindRegistry) Kinds() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.kinds))
	for k := range r.kinds {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// validateWidgetsContainer checks a widgets container: a list of widget
// entries, each a mapping whose "widget" value names exactly one widget.
func validateWidgetsContainer(value any, src core.ExtensionIdentity, c *diagnostic.Collector) bool {
	entries, ok := value.([]any)
	if !ok {
		c.Errorf("%s expects a list of widget entries, got %T", KindWidgets, value)
		return false
	}
	for i, entry := range entries {
		m, ok := entry.(map[string]any)
		if !ok {
			c.Errorf("%s entry %d must be a mapping, got %T", KindWidgets, i, entry)
			return false
		}
		widget, present := m["widget"]
		if !present {
			c.Errorf("%s entry %d is missing the widget field", KindWidgets, i)
			return false
		}
		ref, ok := widget.(map[string]any)
		if !ok || len(ref) != 1 {
			c.Errorf("%s entry %d must reference exactly one widget", KindWidgets, i)
			return false
		}
	}
	return true
}

// validateGridContainer checks a grid container: a list of positioned widget
// entries. Position fields are optional, but every entry must be a mapping.
func validateGridContainer(value any, src core.ExtensionIdentity, c *diagnostic.Collector) bool {
	entries, ok := value.([]any)
	if !ok {
		c.Errorf("%s expects a list of positioned widget entries, got %T", KindGrid, value)
		return false
	}
	for i, entry := range entries {
		if _, ok := entry.(map[string]any); !ok {
			c.Errorf("%s entry %d must be a mapping, got %T", KindGrid, i, entry)
			return false
		}
	}
	return true
}

// validateNavSection checks a navigation section container: a non-empty list
// of sections, each with a title and a nested container holding exactly one
// kind.
func validateNavSection(value any, src core.ExtensionIdentity, c *diagnostic.Collector) bool {
	sections, ok := value.([]any)
	if !ok {
		c.Errorf("%s expects a list of sections, got %T", KindNavSection, value)
		return false
	}
	if len(sections) == 0 {
		c.Errorf("%s must define at least one section", KindNavSection)
		return false
	}
	for i, section := range sections {
		m, ok := section.(map[string]any)
		if !ok {
			c.Errorf("%s section %d must be a mapping, got %T", KindNavSection, i, section)
			return false
		}
		title, _ := m["title"].(string)
		if title == "" {
			c.Errorf("%s section %d has no title", KindNavSection, i)
			return false
		}
		container, ok := m["container"].(map[string]any)
		if !ok {
			c.Errorf("%s section %q has no container", KindNavSection, title)
			return false
		}
		if len(container) != 1 {
			c.Errorf("%s section %q must define exactly one container", KindNavSection, title)
			return false
		}
	}
	return true
}
