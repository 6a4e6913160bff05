package core

import (
	"fmt"
	"strings"
)

// ExtensionIdentity identifies the extension that contributed a record.
// Publisher and Name together form the stable extension ID; Version is
// informational only and never participates in identity comparisons.
type ExtensionIdentity struct {
	Publisher string `json:"publisher"         yaml:"publisher"         mapstructure:"publisher"`
	Name      string `json:"name"              yaml:"name"              mapstructure:"name"`
	Version   string `json:"version,omitempty" yaml:"version,omitempty" mapstructure:"version,omitempty"`
}

// ID returns the canonical "publisher.name" extension identifier.
func (e ExtensionIdentity) ID() string {
	return fmt.Sprintf("%s.%s", e.Publisher, e.Name)
}

func (e ExtensionIdentity) String() string {
	if e.Version == "" {
		return e.ID()
	}
	return fmt.Sprintf("%s@%s", e.ID(), e.Version)
}

// IsZero reports whether the identity carries no publisher or name.
func (e ExtensionIdentity) IsZero() bool {
	return strings.TrimSpace(e.Publisher) == "" && strings.TrimSpace(e.Name) == ""
}
