package schema

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/kaptinlin/jsonschema"
)

// Schema is a JSON-schema document expressed as a plain map so extension-point
// schemas can live as Go literals.
type Schema map[string]any

// Compile turns the document into an evaluable schema. A nil receiver compiles
// to nil, meaning "no schema, nothing to check".
func (s *Schema) Compile() (*jsonschema.Schema, error) {
	if s == nil {
		return nil, nil
	}
	bytes, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	compiled, err := compiler.Compile(bytes)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}
	return compiled, nil
}

// Compiled wraps a pre-compiled schema for repeated validation. Compiling once
// and reusing matters when the same extension-point schema is checked against
// every discovered manifest.
type Compiled struct {
	schema *jsonschema.Schema
}

// MustCompile compiles the schema or panics. Intended for package-level
// extension-point schema literals that are exercised by tests.
func MustCompile(s Schema) *Compiled {
	compiled, err := s.Compile()
	if err != nil {
		panic(err)
	}
	return &Compiled{schema: compiled}
}

// Violations validates value and returns one human-readable message per
// violated constraint, sorted for deterministic reporting. A nil return means
// the value conforms.
func (c *Compiled) Violations(value any) []string {
	if c == nil || c.schema == nil {
		return nil
	}
	result := c.schema.Validate(value)
	if result.Valid {
		return nil
	}
	messages := make([]string, 0, len(result.Errors))
	for keyword, evalErr := range result.Errors {
		messages = append(messages, fmt.Sprintf("%s: %v", keyword, evalErr))
	}
	sort.Strings(messages)
	return messages
}
