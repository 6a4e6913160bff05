package tab

import (
	"strings"

	"github.com/tabhost/tabhost/engine/core"
	"github.com/tabhost/tabhost/engine/diagnostic"
	"github.com/tabhost/tabhost/engine/icon"
)

// DefaultProviderName is assigned to contributions that do not name a
// connection provider.
const DefaultProviderName = "MSSQL"

// RegistrationSink receives accepted records. The sink owns identity and
// overwrite semantics; the processor never deduplicates or retries.
type RegistrationSink interface {
	Register(record *Record)
}

// IconResolver validates icon references and mints icon-class tokens.
// Implemented by engine/icon.Resolver.
type IconResolver interface {
	IsValid(raw any, src core.ExtensionIdentity, c *diagnostic.Collector) bool
	ClassToken(raw any, src core.ExtensionIdentity) (string, bool)
}

// Result is the outcome of processing one contribution batch. Accepted
// preserves input order; Diagnostics carries every error and warning reported
// for the batch.
type Result struct {
	Accepted    []*Record
	Diagnostics []diagnostic.Entry
}

// HasErrors reports whether any record in the batch was rejected or reported
// an error-severity diagnostic.
func (r *Result) HasErrors() bool {
	for _, e := range r.Diagnostics {
		if e.Severity == diagnostic.SeverityError {
			return true
		}
	}
	return false
}

// Processor validates and normalizes tab contributions. It is stateless
// across batches; all per-batch state lives in the Result.
type Processor struct {
	kinds           *KindRegistry
	icons           IconResolver
	defaultProvider string
}

// Option configures a Processor.
type Option func(*Processor)

// WithDefaultProvider overrides the provider assigned to contributions that
// name none.
func WithDefaultProvider(name string) Option {
	return func(p *Processor) { p.defaultProvider = name }
}

// WithKinds replaces the container kind registry.
func WithKinds(kinds *KindRegistry) Option {
	return func(p *Processor) { p.kinds = kinds }
}

// WithIconResolver replaces the icon resolver.
func WithIconResolver(r IconResolver) Option {
	return func(p *Processor) { p.icons = r }
}

// NewProcessor creates a Processor with the built-in container kinds and the
// default icon resolver.
func NewProcessor(opts ...Option) *Processor {
	p := &Processor{
		kinds:           DefaultKinds(),
		icons:           icon.NewResolver(),
		defaultProvider: DefaultProviderName,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Process validates a batch of raw contributions from one extension. Records
// are independent: a rejected record never blocks its siblings, and accepted
// records keep their input order.
func (p *Processor) Process(batch []RawContribution, src core.ExtensionIdentity) *Result {
	collector := diagnostic.NewCollector(src)
	result := &Result{}
	for i := range batch {
		if record := p.processOne(&batch[i], src, collector); record != nil {
			result.Accepted = append(result.Accepted, record)
		}
	}
	result.Diagnostics = collector.Entries()
	return result
}

// ProcessInto runs Process and forwards each accepted record to the sink,
// exactly once per record.
func (p *Processor) ProcessInto(batch []RawContribution, src core.ExtensionIdentity, sink RegistrationSink) *Result {
	result := p.Process(batch, src)
	for _, record := range result.Accepted {
		sink.Register(record)
	}
	return result
}

// processOne applies the full validation pipeline to a single contribution.
// A nil return means the record was rejected; the reason is on the collector.
func (p *Processor) processOne(raw *RawContribution, src core.ExtensionIdentity, c *diagnostic.Collector) *Record {
	// Strict bool check: anything that is not a bool, including absence,
	// means the tab is always shown.
	alwaysShow, isBool := raw.AlwaysShow.(bool)
	if !isBool {
		alwaysShow = true
	}

	if strings.TrimSpace(raw.Title) == "" {
		c.Error("no title specified for the tab contribution")
		return nil
	}

	if raw.Description == "" {
		c.Warn("no description specified for the tab contribution")
	}

	if raw.Container == nil {
		c.Errorf("no container specified for tab %q", raw.Title)
		return nil
	}

	providers := raw.Provider
	isHomeTab := raw.IsHomeTab
	if len(providers) == 0 {
		// A home tab without an explicit provider is structurally invalid,
		// so the override applies even when the input said otherwise.
		providers = ProviderList{p.defaultProvider}
		isHomeTab = false
	}

	if len(raw.Container) != 1 {
		c.Errorf("exactly one container must be defined for tab %q", raw.Title)
		return nil
	}

	var kind string
	var value any
	for k, v := range raw.Container {
		kind, value = k, v
	}

	accepted := true
	if validate, known := p.kinds.Lookup(kind); known {
		accepted = validate(value, src, c)
	} else {
		c.Warnf("unknown container kind %q for tab %q; accepting without validation", kind, raw.Title)
	}

	iconClass := ""
	if raw.Icon != nil && p.icons.IsValid(raw.Icon, src, c) {
		if token, ok := p.icons.ClassToken(raw.Icon, src); ok {
			iconClass = token
		}
	}

	if !accepted {
		return nil
	}

	return &Record{
		ID:          raw.ID,
		Title:       raw.Title,
		Description: raw.Description,
		Provider:    providers,
		Container:   raw.Container,
		When:        raw.When,
		AlwaysShow:  alwaysShow,
		IsHomeTab:   isHomeTab,
		Group:       raw.Group,
		Publisher:   src.Publisher,
		IconClass:   iconClass,
	}
}
