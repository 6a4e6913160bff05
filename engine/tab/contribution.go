// Package tab implements the dashboard tab contribution pipeline: raw
// extension-provided descriptors are validated, normalized, and handed to a
// registration sink, with per-extension diagnostics for everything rejected.
package tab

import "encoding/json"

// ProviderList is the connection providers a tab applies to. Extensions may
// contribute either a single provider name or a list; both decode into this
// type.
type ProviderList []string

func (p *ProviderList) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*p = ProviderList{single}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*p = ProviderList(many)
	return nil
}

func (p ProviderList) MarshalJSON() ([]byte, error) {
	if len(p) == 1 {
		return json.Marshal(p[0])
	}
	return json.Marshal([]string(p))
}

// RawContribution is the untrusted tab descriptor as handed over by an
// extension. Shape checks happen against ContributionSchema before this
// struct is populated; the Processor enforces the semantic invariants on top.
//
// AlwaysShow and Icon stay untyped on purpose: AlwaysShow is strict-bool
// coerced during processing and Icon may be a path string or a light/dark
// pair, validated by the icon resolver.
type RawContribution struct {
	ID          string         `json:"id,omitempty"          yaml:"id,omitempty"          mapstructure:"id,omitempty"`
	Title       string         `json:"title"                 yaml:"title"                 mapstructure:"title"`
	Description string         `json:"description,omitempty" yaml:"description,omitempty" mapstructure:"description,omitempty"`
	Provider    ProviderList   `json:"provider,omitempty"    yaml:"provider,omitempty"    mapstructure:"provider,omitempty"`
	Container   map[string]any `json:"container,omitempty"   yaml:"container,omitempty"   mapstructure:"container,omitempty"`
	When        string         `json:"when,omitempty"        yaml:"when,omitempty"        mapstructure:"when,omitempty"`
	AlwaysShow  any            `json:"alwaysShow,omitempty"  yaml:"alwaysShow,omitempty"  mapstructure:"alwaysShow,omitempty"`
	IsHomeTab   bool           `json:"isHomeTab,omitempty"   yaml:"isHomeTab,omitempty"   mapstructure:"isHomeTab,omitempty"`
	Group       string         `json:"group,omitempty"       yaml:"group,omitempty"       mapstructure:"group,omitempty"`
	Icon        any            `json:"icon,omitempty"        yaml:"icon,omitempty"        mapstructure:"icon,omitempty"`
}

// Record is a validated, normalized tab ready for the registry. Records are
// built once at registration time and never mutated afterwards.
type Record struct {
	ID          string         `json:"id,omitempty"`
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	Provider    ProviderList   `json:"provider"`
	Container   map[string]any `json:"container"`
	When        string         `json:"when,omitempty"`
	AlwaysShow  bool           `json:"alwaysShow"`
	IsHomeTab   bool           `json:"isHomeTab"`
	Group       string         `json:"group,omitempty"`
	Publisher   string         `json:"publisher"`
	IconClass   string         `json:"iconClass,omitempty"`
}

// Key returns the identifier the registry stores the record under. Tabs
// without an explicit id fall back to their title.
func (r *Record) Key() string {
	if r.ID != "" {
		return r.ID
	}
	return r.Title
}

// Group is a static dashboard tab group. The fixed set is registered once at
// startup and never mutated.
type Group struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}
