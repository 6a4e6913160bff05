// Package icon resolves extension-contributed icon references into renderable
// class tokens. An icon reference is either a single path used for both
// themes, or an object with explicit light and dark paths.
package icon

import (
	"fmt"
	"strings"

	"github.com/segmentio/ksuid"

	"github.com/tabhost/tabhost/engine/core"
	"github.com/tabhost/tabhost/engine/diagnostic"
)

// Paths holds the per-theme icon paths after shape validation.
type Paths struct {
	Light string `json:"light"`
	Dark  string `json:"dark"`
}

// ParsePaths extracts theme paths from a raw icon reference. It accepts a
// plain string (used for both themes) or a map with "light" and "dark" string
// entries. The second return is false when the shape is unrecognized.
func ParsePaths(raw any) (Paths, bool) {
	switch v := raw.(type) {
	case string:
		return Paths{Light: v, Dark: v}, true
	case map[string]any:
		light, lightOK := v["light"].(string)
		dark, darkOK := v["dark"].(string)
		if !lightOK || !darkOK {
			return Paths{}, false
		}
		return Paths{Light: light, Dark: dark}, true
	case Paths:
		return v, true
	case *Paths:
		if v == nil {
			return Paths{}, false
		}
		return *v, true
	default:
		return Paths{}, false
	}
}

// Resolver validates icon references and mints icon-class tokens scoped to
// the contributing extension.
type Resolver struct{}

func NewResolver() *Resolver {
	return &Resolver{}
}

// IsValid checks the icon reference shape. A malformed reference is reported
// as a warning on the collector; callers degrade to "no icon" rather than
// rejecting the whole record.
func (r *Resolver) IsValid(raw any, src core.ExtensionIdentity, c *diagnostic.Collector) bool {
	if raw == nil {
		return false
	}
	paths, ok := ParsePaths(raw)
	if !ok {
		if c != nil {
			c.Warnf("invalid icon reference of type %T; expected a path or {light, dark} paths", raw)
		}
		return false
	}
	if strings.TrimSpace(paths.Light) == "" || strings.TrimSpace(paths.Dark) == "" {
		if c != nil {
			c.Warn("icon reference contains an empty path")
		}
		return false
	}
	return true
}

// ClassToken mints a unique icon-class token for a validated reference. The
// second return is false when no token could be produced.
func (r *Resolver) ClassToken(raw any, src core.ExtensionIdentity) (string, bool) {
	paths, ok := ParsePaths(raw)
	if !ok {
		return "", false
	}
	if strings.TrimSpace(paths.Light) == "" || strings.TrimSpace(paths.Dark) == "" {
		return "", false
	}
	return fmt.Sprintf("tab-icon-%s-%s", sanitize(src.ID()), ksuid.New().String()), true
}

// sanitize maps an extension ID onto the CSS class-name charset.
func sanitize(id string) string {
	var sb strings.Builder
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			sb.WriteRune(r)
		default:
			sb.WriteRune('-')
		}
	}
	return sb.String()
}
