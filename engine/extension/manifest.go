// Package extension implements the host-side driver loop: it discovers
// extension manifests, shape-checks their dashboard tab contributions, and
// feeds them through the tab processor into the registry.
package extension

import (
	"context"
	"fmt"
	"os"
	"reflect"
	"regexp"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/goccy/go-yaml"

	"github.com/tabhost/tabhost/engine/core"
	"github.com/tabhost/tabhost/engine/schema"
	"github.com/tabhost/tabhost/engine/tab"
)

// Manifest is the declarative descriptor of one extension. Manifests are
// YAML or JSON files; publisher and name form the extension identity.
type Manifest struct {
	Publisher   string      `json:"publisher"             yaml:"publisher"             mapstructure:"publisher"             validate:"required,identifier"`
	Name        string      `json:"name"                  yaml:"name"                  mapstructure:"name"                  validate:"required,identifier"`
	Version     string      `json:"version,omitempty"     yaml:"version,omitempty"     mapstructure:"version,omitempty"`
	Contributes Contributes `json:"contributes,omitempty" yaml:"contributes,omitempty" mapstructure:"contributes,omitempty"`
}

// Contributes holds the contribution sections of a manifest. Only the
// dashboard section is modeled here.
type Contributes struct {
	Dashboard DashboardContributes `json:"dashboard,omitempty" yaml:"dashboard,omitempty" mapstructure:"dashboard,omitempty"`
}

// DashboardContributes carries the raw dashboard.tab section. It stays
// untyped until the extension-point schema has seen it; the loader decodes it
// record by record afterwards.
type DashboardContributes struct {
	Tab any `json:"tab,omitempty" yaml:"tab,omitempty" mapstructure:"tab,omitempty"`
}

// Identity returns the extension identity declared by the manifest.
func (m *Manifest) Identity() core.ExtensionIdentity {
	return core.ExtensionIdentity{
		Publisher: m.Publisher,
		Name:      m.Name,
		Version:   m.Version,
	}
}

// LoadManifest reads and decodes a manifest file, then validates its
// required fields.
func LoadManifest(ctx context.Context, path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, core.NewError(err, "MANIFEST_READ_FAILED", map[string]any{"file": path})
	}
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, core.NewError(err, "MANIFEST_PARSE_FAILED", map[string]any{"file": path})
	}
	manifest := &Manifest{}
	if err := decode(raw, manifest); err != nil {
		return nil, core.NewError(err, "MANIFEST_DECODE_FAILED", map[string]any{"file": path})
	}
	if err := validateManifest(ctx, manifest); err != nil {
		return nil, core.NewError(err, "MANIFEST_INVALID", map[string]any{"file": path})
	}
	return manifest, nil
}

// identifierPattern is the charset accepted for publisher and extension names;
// both end up embedded in icon-class tokens and registry keys.
var identifierPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// validateManifest composes the struct-tag checks with the semantic checks
// tags cannot express: identifier charset and the shape of the dashboard.tab
// section.
func validateManifest(ctx context.Context, m *Manifest) error {
	structValidator := schema.NewStructValidator(m)
	if err := structValidator.RegisterValidation("identifier", func(fl validator.FieldLevel) bool {
		return identifierPattern.MatchString(fl.Field().String())
	}); err != nil {
		return err
	}
	return schema.NewCompositeValidator(
		structValidator,
		&tabSectionValidator{section: m.Contributes.Dashboard.Tab},
	).Validate(ctx)
}

// tabSectionValidator rejects dashboard.tab sections that are neither a single
// descriptor nor a list of them. Anything else is manifest-level breakage, not
// a per-record problem.
type tabSectionValidator struct {
	section any
}

func (v *tabSectionValidator) Validate(_ context.Context) error {
	switch v.section.(type) {
	case nil, map[string]any, []any:
		return nil
	default:
		return fmt.Errorf("dashboard.tab must be a tab descriptor or a list of them, got %T", v.section)
	}
}

// DecodeContributions normalizes a raw dashboard.tab section into typed
// contributions. The section may be a single descriptor or a list; records
// decode independently so one malformed record never drops its siblings.
func DecodeContributions(raw any) ([]tab.RawContribution, []error) {
	if raw == nil {
		return nil, nil
	}
	items, ok := raw.([]any)
	if !ok {
		items = []any{raw}
	}
	var contributions []tab.RawContribution
	var errs []error
	for i, item := range items {
		var contribution tab.RawContribution
		if err := decode(item, &contribution); err != nil {
			errs = append(errs, fmt.Errorf("tab contribution %d: %w", i, err))
			continue
		}
		contributions = append(contributions, contribution)
	}
	return contributions, errs
}

// decode maps loosely-typed manifest data onto structs, allowing a lone
// provider string where a list is expected.
func decode(input, output any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:     output,
		TagName:    "mapstructure",
		DecodeHook: providerListHook,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(input)
}

func providerListHook(_ reflect.Type, to reflect.Type, data any) (any, error) {
	if to != reflect.TypeOf(tab.ProviderList(nil)) {
		return data, nil
	}
	if s, ok := data.(string); ok {
		return tab.ProviderList{s}, nil
	}
	return data, nil
}
