package extension

import (
	"context"

	"github.com/tabhost/tabhost/engine/core"
	"github.com/tabhost/tabhost/engine/diagnostic"
	"github.com/tabhost/tabhost/engine/schema"
	"github.com/tabhost/tabhost/engine/tab"
	"github.com/tabhost/tabhost/pkg/logger"
)

// DefaultIncludes are the manifest patterns searched when none are
// configured.
var DefaultIncludes = []string{"**/extension.yaml", "**/extension.json", "**/package.json"}

// Config controls manifest discovery and failure handling.
type Config struct {
	Include []string `json:"include,omitempty" yaml:"include,omitempty" koanf:"include" mapstructure:"include,omitempty"`
	Exclude []string `json:"exclude,omitempty" yaml:"exclude,omitempty" koanf:"exclude" mapstructure:"exclude,omitempty"`
	// Strict aborts the whole load on the first manifest-level failure.
	// Contribution-level rejections are always per-record and never abort.
	Strict bool `json:"strict,omitempty" yaml:"strict,omitempty" koanf:"strict" mapstructure:"strict,omitempty"`
}

// NewConfig returns a Config with the default include patterns.
func NewConfig() *Config {
	return &Config{Include: DefaultIncludes}
}

// LoadError records a manifest that could not be read or decoded.
type LoadError struct {
	File string
	Err  error
}

// LoadResult summarizes one load pass.
type LoadResult struct {
	ManifestsProcessed int
	TabsRegistered     int
	Diagnostics        []diagnostic.Entry
	Errors             []LoadError
}

// HasErrors reports whether the pass produced manifest failures or
// error-severity diagnostics.
func (r *LoadResult) HasErrors() bool {
	if len(r.Errors) > 0 {
		return true
	}
	for _, e := range r.Diagnostics {
		if e.Severity == diagnostic.SeverityError {
			return true
		}
	}
	return false
}

// Loader drives the contribution pipeline: discover manifests, shape-check
// the dashboard.tab section, decode, process, register.
type Loader struct {
	root       string
	config     *Config
	sink       tab.RegistrationSink
	processor  *tab.Processor
	discoverer FileDiscoverer
	compiled   *schema.Compiled
}

// New creates a Loader rooted at root that registers accepted tabs into sink.
func New(root string, config *Config, sink tab.RegistrationSink, processor *tab.Processor) *Loader {
	if config == nil {
		config = NewConfig()
	}
	if processor == nil {
		processor = tab.NewProcessor()
	}
	return &Loader{
		root:       root,
		config:     config,
		sink:       sink,
		processor:  processor,
		discoverer: NewFileDiscoverer(root),
		compiled:   schema.MustCompile(tab.ContributionSchema),
	}
}

// Load discovers and processes every manifest under the root. Extensions are
// independent: a failing manifest only aborts the pass in strict mode.
func (l *Loader) Load(ctx context.Context) (*LoadResult, error) {
	result := &LoadResult{}
	files, err := l.discoverer.Discover(l.config.Include, l.config.Exclude)
	if err != nil {
		logger.Error("manifest discovery failed", "error", err)
		return result, core.NewError(err, "DISCOVERY_FAILED", nil)
	}
	logger.Info("discovered extension manifests", "count", len(files))
	for _, file := range files {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}
		result.ManifestsProcessed++
		if err := l.loadManifest(ctx, file, result); err != nil {
			result.Errors = append(result.Errors, LoadError{File: file, Err: err})
			if l.config.Strict {
				return result, core.NewError(err, "MANIFEST_LOAD_FAILED", map[string]any{
					"file": file,
				})
			}
			logger.Warn("skipping unreadable extension manifest", "file", file, "error", err)
		}
	}
	logger.Info("extension load completed",
		"manifests_processed", result.ManifestsProcessed,
		"tabs_registered", result.TabsRegistered,
		"diagnostics", len(result.Diagnostics),
		"errors", len(result.Errors))
	return result, nil
}

// loadManifest runs one manifest through the pipeline. Returned errors are
// manifest-level (unreadable, unparseable, missing identity); everything
// contribution-level lands in diagnostics instead.
func (l *Loader) loadManifest(ctx context.Context, file string, result *LoadResult) error {
	manifest, err := LoadManifest(ctx, file)
	if err != nil {
		return err
	}
	raw := manifest.Contributes.Dashboard.Tab
	if raw == nil {
		logger.Debug("manifest contributes no dashboard tabs", "file", file)
		return nil
	}
	identity := manifest.Identity()
	collector := diagnostic.NewCollector(identity)

	// The extension-point schema is advisory: violations surface as warnings
	// for the extension author while the semantic pipeline stays the sole
	// owner of accept/reject verdicts.
	for _, violation := range l.compiled.Violations(raw) {
		collector.Warnf("dashboard.tab schema: %s", violation)
	}

	batch, decodeErrs := DecodeContributions(raw)
	for _, decodeErr := range decodeErrs {
		collector.Errorf("undecodable dashboard.tab contribution: %v", decodeErr)
	}

	processed := l.processor.ProcessInto(batch, identity, l.sink)
	result.TabsRegistered += len(processed.Accepted)
	result.Diagnostics = append(result.Diagnostics, collector.Entries()...)
	result.Diagnostics = append(result.Diagnostics, processed.Diagnostics...)
	logger.Debug("processed extension manifest",
		"file", file,
		"extension", identity.String(),
		"accepted", len(processed.Accepted),
		"rejected", len(batch)-len(processed.Accepted))
	return nil
}
