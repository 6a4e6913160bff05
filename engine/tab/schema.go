package tab

import "github.com/tabhost/tabhost/engine/schema"

// tabObjectSchema describes one tab descriptor. Shape violations are
// advisory: the host reports them as warnings and still runs the semantic
// pipeline, which owns the hard accept/reject verdicts.
var tabObjectSchema = map[string]any{
	"type":     "object",
	"required": []any{"title", "container"},
	"properties": map[string]any{
		"id":          map[string]any{"type": "string"},
		"title":       map[string]any{"type": "string"},
		"description": map[string]any{"type": "string"},
		"provider": map[string]any{
			"anyOf": []any{
				map[string]any{"type": "string"},
				map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
			},
		},
		"container":  map[string]any{"type": "object"},
		"when":       map[string]any{"type": "string"},
		"alwaysShow": map[string]any{"type": "boolean"},
		"isHomeTab":  map[string]any{"type": "boolean"},
		"group":      map[string]any{"type": "string"},
		"icon": map[string]any{
			"anyOf": []any{
				map[string]any{"type": "string"},
				map[string]any{
					"type":     "object",
					"required": []any{"light", "dark"},
					"properties": map[string]any{
						"light": map[string]any{"type": "string"},
						"dark":  map[string]any{"type": "string"},
					},
				},
			},
		},
	},
}

// ContributionSchema is the extension-point schema for dashboard tab
// contributions: a single tab descriptor or an array of them.
var ContributionSchema = schema.Schema{
	"oneOf": []any{
		tabObjectSchema,
		map[string]any{"type": "array", "items": tabObjectSchema},
	},
}
