// Package registry stores accepted dashboard tab records and tab groups for
// the lifetime of the process. It is the registration sink consumed by the
// tab processor and the extension loader.
package registry

import (
	"sync"

	"github.com/tabhost/tabhost/engine/core"
	"github.com/tabhost/tabhost/engine/tab"
	"github.com/tabhost/tabhost/pkg/logger"
)

// TabRegistry is a mutex-guarded, insertion-ordered store of normalized tab
// records and tab groups. Registering a record under an existing key replaces
// it in place, keeping the original position; registration is idempotent-safe
// for the callers' purposes.
type TabRegistry struct {
	mu     sync.RWMutex
	tabs   map[string]*tab.Record
	order  []string
	groups []tab.Group
}

// New creates an empty TabRegistry.
func New() *TabRegistry {
	return &TabRegistry{
		tabs: make(map[string]*tab.Record),
	}
}

// Register stores a normalized record. A duplicate key replaces the earlier
// record and is logged; the processor has already guaranteed validity.
func (r *TabRegistry) Register(record *tab.Record) {
	if record == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	key := record.Key()
	if _, exists := r.tabs[key]; exists {
		logger.Warn("replacing previously registered dashboard tab",
			"tab", key, "publisher", record.Publisher)
	} else {
		r.order = append(r.order, key)
	}
	r.tabs[key] = record
}

// RegisterGroup stores a tab group. Duplicate group ids are ignored; the
// group set is static host data registered once at startup.
func (r *TabRegistry) RegisterGroup(group tab.Group) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.groups {
		if existing.ID == group.ID {
			return
		}
	}
	r.groups = append(r.groups, group)
}

// Get returns the record registered under key.
func (r *TabRegistry) Get(key string) (*tab.Record, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	record, ok := r.tabs[key]
	return record, ok
}

// Tabs returns all records in registration order.
func (r *TabRegistry) Tabs() []*tab.Record {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*tab.Record, 0, len(r.order))
	for _, key := range r.order {
		out = append(out, r.tabs[key])
	}
	return out
}

// TabsForProvider returns the records whose provider list contains name, in
// registration order.
func (r *TabRegistry) TabsForProvider(name string) []*tab.Record {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*tab.Record
	for _, key := range r.order {
		record := r.tabs[key]
		for _, provider := range record.Provider {
			if provider == name {
				out = append(out, record)
				break
			}
		}
	}
	return out
}

// Groups returns the registered tab groups in registration order.
func (r *TabRegistry) Groups() []tab.Group {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]tab.Group, len(r.groups))
	copy(out, r.groups)
	return out
}

// Count returns the number of registered tab records.
func (r *TabRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tabs)
}

// RemoveExtension drops every record contributed by the given extension.
// Called when an extension is unloaded.
func (r *TabRegistry) RemoveExtension(src core.ExtensionIdentity) int {
	return r.RemoveByPublisher(src.Publisher)
}

// RemoveByPublisher drops every record from the given publisher and returns
// how many were removed.
func (r *TabRegistry) RemoveByPublisher(publisher string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	removed := 0
	kept := r.order[:0]
	for _, key := range r.order {
		if r.tabs[key].Publisher == publisher {
			delete(r.tabs, key)
			removed++
			continue
		}
		kept = append(kept, key)
	}
	r.order = kept
	return removed
}

// Clear removes all tabs and groups. Intended for reloads and tests. Lookups
// racing a reload may observe an empty or partially repopulated registry, but
// records already returned to callers stay valid.
func (r *TabRegistry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tabs = make(map[string]*tab.Record)
	r.order = nil
	r.groups = nil
}
