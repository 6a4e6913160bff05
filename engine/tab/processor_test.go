package tab

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tabhost/tabhost/engine/core"
	"github.com/tabhost/tabhost/engine/diagnostic"
)

var testIdentity = core.ExtensionIdentity{
	Publisher: "contoso",
	Name:      "sql-tools",
	Version:   "1.2.0",
}

func widgetsContainer() map[string]any {
	return map[string]any{
		KindWidgets: []any{
			map[string]any{"widget": map[string]any{"tasks-widget": map[string]any{}}},
		},
	}
}

func countSeverity(entries []diagnostic.Entry, severity diagnostic.Severity) int {
	n := 0
	for _, e := range entries {
		if e.Severity == severity {
			n++
		}
	}
	return n
}

type captureSink struct {
	records []*Record
}

func (s *captureSink) Register(record *Record) {
	s.records = append(s.records, record)
}

func TestProcessor_Process(t *testing.T) {
	t.Run("Should reject a record without a title", func(t *testing.T) {
		p := NewProcessor()
		result := p.Process([]RawContribution{{
			Description: "has everything but a title",
			Container:   widgetsContainer(),
		}}, testIdentity)
		assert.Empty(t, result.Accepted)
		assert.Equal(t, 1, countSeverity(result.Diagnostics, diagnostic.SeverityError))
	})

	t.Run("Should reject a record without a container", func(t *testing.T) {
		p := NewProcessor()
		result := p.Process([]RawContribution{{
			Title:       "Tasks",
			Description: "a task tab",
		}}, testIdentity)
		assert.Empty(t, result.Accepted)
		assert.Equal(t, 1, countSeverity(result.Diagnostics, diagnostic.SeverityError))
	})

	t.Run("Should warn but continue when description is missing", func(t *testing.T) {
		p := NewProcessor()
		result := p.Process([]RawContribution{{
			Title:     "Tasks",
			Container: widgetsContainer(),
		}}, testIdentity)
		assert.Len(t, result.Accepted, 1)
		assert.Equal(t, 0, countSeverity(result.Diagnostics, diagnostic.SeverityError))
		assert.GreaterOrEqual(t, countSeverity(result.Diagnostics, diagnostic.SeverityWarning), 1)
	})

	t.Run("Should reject a container with zero kinds", func(t *testing.T) {
		p := NewProcessor()
		result := p.Process([]RawContribution{{
			Title:       "Tasks",
			Description: "a task tab",
			Container:   map[string]any{},
		}}, testIdentity)
		assert.Empty(t, result.Accepted)
		assert.Equal(t, 1, countSeverity(result.Diagnostics, diagnostic.SeverityError))
	})

	t.Run("Should reject a container with two kinds", func(t *testing.T) {
		p := NewProcessor()
		container := widgetsContainer()
		container[KindGrid] = []any{}
		result := p.Process([]RawContribution{{
			Title:       "Tasks",
			Description: "a task tab",
			Container:   container,
		}}, testIdentity)
		assert.Empty(t, result.Accepted)
		assert.Equal(t, 1, countSeverity(result.Diagnostics, diagnostic.SeverityError))
	})

	t.Run("Should default the provider and force isHomeTab false", func(t *testing.T) {
		p := NewProcessor()
		result := p.Process([]RawContribution{{
			Title:       "Home",
			Description: "claims to be a home tab without a provider",
			Container:   widgetsContainer(),
			IsHomeTab:   true,
		}}, testIdentity)
		require.Len(t, result.Accepted, 1)
		record := result.Accepted[0]
		assert.Equal(t, ProviderList{DefaultProviderName}, record.Provider)
		assert.False(t, record.IsHomeTab)
	})

	t.Run("Should preserve isHomeTab when a provider is given", func(t *testing.T) {
		p := NewProcessor()
		result := p.Process([]RawContribution{{
			Title:       "Home",
			Description: "a home tab",
			Provider:    ProviderList{"MSSQL"},
			Container:   widgetsContainer(),
			IsHomeTab:   true,
		}}, testIdentity)
		require.Len(t, result.Accepted, 1)
		assert.True(t, result.Accepted[0].IsHomeTab)
	})

	t.Run("Should use a configured default provider", func(t *testing.T) {
		p := NewProcessor(WithDefaultProvider("PGSQL"))
		result := p.Process([]RawContribution{{
			Title:       "Tasks",
			Description: "a task tab",
			Container:   widgetsContainer(),
		}}, testIdentity)
		require.Len(t, result.Accepted, 1)
		assert.Equal(t, ProviderList{"PGSQL"}, result.Accepted[0].Provider)
	})

	t.Run("Should coerce alwaysShow to true unless strictly boolean", func(t *testing.T) {
		p := NewProcessor()
		cases := []struct {
			name     string
			input    any
			expected bool
		}{
			{"absent", nil, true},
			{"string", "false", true},
			{"number", 0, true},
			{"explicit false", false, false},
			{"explicit true", true, true},
		}
		for _, tc := range cases {
			result := p.Process([]RawContribution{{
				Title:       "Tasks",
				Description: "a task tab",
				Container:   widgetsContainer(),
				AlwaysShow:  tc.input,
			}}, testIdentity)
			require.Len(t, result.Accepted, 1, tc.name)
			assert.Equal(t, tc.expected, result.Accepted[0].AlwaysShow, tc.name)
		}
	})

	t.Run("Should process batch records independently and in order", func(t *testing.T) {
		p := NewProcessor()
		batch := []RawContribution{
			{Title: "First", Description: "d", Container: widgetsContainer()},
			{Description: "no title here", Container: widgetsContainer()},
			{Title: "Second", Description: "d", Container: widgetsContainer()},
			{Title: "No container", Description: "d"},
			{Title: "Third", Description: "d", Container: widgetsContainer()},
		}
		result := p.Process(batch, testIdentity)
		require.Len(t, result.Accepted, 3)
		assert.Equal(t, "First", result.Accepted[0].Title)
		assert.Equal(t, "Second", result.Accepted[1].Title)
		assert.Equal(t, "Third", result.Accepted[2].Title)
		assert.Equal(t, 2, countSeverity(result.Diagnostics, diagnostic.SeverityError))
	})

	t.Run("Should resolve a light/dark icon pair into a class token", func(t *testing.T) {
		p := NewProcessor()
		result := p.Process([]RawContribution{{
			Title:       "Tasks",
			Description: "a task tab",
			Container:   widgetsContainer(),
			Icon:        map[string]any{"light": "a.svg", "dark": "b.svg"},
		}}, testIdentity)
		require.Len(t, result.Accepted, 1)
		assert.NotEmpty(t, result.Accepted[0].IconClass)
		assert.Contains(t, result.Accepted[0].IconClass, "contoso-sql-tools")
	})

	t.Run("Should register without an icon when the icon shape is invalid", func(t *testing.T) {
		p := NewProcessor()
		result := p.Process([]RawContribution{{
			Title:       "Tasks",
			Description: "a task tab",
			Container:   widgetsContainer(),
			Icon:        42,
		}}, testIdentity)
		require.Len(t, result.Accepted, 1)
		assert.Empty(t, result.Accepted[0].IconClass)
		assert.Equal(t, 0, countSeverity(result.Diagnostics, diagnostic.SeverityError))
		assert.GreaterOrEqual(t, countSeverity(result.Diagnostics, diagnostic.SeverityWarning), 1)
	})

	t.Run("Should accept the MSSQL tasks scenario unchanged", func(t *testing.T) {
		p := NewProcessor()
		result := p.Process([]RawContribution{{
			Title:       "Tasks",
			Description: "task widgets",
			Provider:    ProviderList{"MSSQL"},
			Container:   widgetsContainer(),
		}}, testIdentity)
		require.Len(t, result.Accepted, 1)
		record := result.Accepted[0]
		assert.Equal(t, ProviderList{"MSSQL"}, record.Provider)
		assert.False(t, record.IsHomeTab)
		assert.True(t, record.AlwaysShow)
		assert.Equal(t, "contoso", record.Publisher)
	})

	t.Run("Should accept an unknown container kind with a warning", func(t *testing.T) {
		p := NewProcessor()
		result := p.Process([]RawContribution{{
			Title:       "Custom",
			Description: "a custom layout",
			Container:   map[string]any{"my-container": map[string]any{}},
		}}, testIdentity)
		require.Len(t, result.Accepted, 1)
		assert.Equal(t, 0, countSeverity(result.Diagnostics, diagnostic.SeverityError))
		assert.GreaterOrEqual(t, countSeverity(result.Diagnostics, diagnostic.SeverityWarning), 1)
	})

	t.Run("Should reject the record when the container validator fails", func(t *testing.T) {
		p := NewProcessor()
		result := p.Process([]RawContribution{{
			Title:       "Broken",
			Description: "widgets value is not a list",
			Container:   map[string]any{KindWidgets: "not-a-list"},
		}}, testIdentity)
		assert.Empty(t, result.Accepted)
		assert.Equal(t, 1, countSeverity(result.Diagnostics, diagnostic.SeverityError))
	})
}

func TestProcessor_ProcessInto(t *testing.T) {
	t.Run("Should call the sink exactly once per accepted record", func(t *testing.T) {
		p := NewProcessor()
		sink := &captureSink{}
		batch := []RawContribution{
			{Title: "A", Description: "d", Container: widgetsContainer()},
			{Description: "rejected"},
			{Title: "B", Description: "d", Container: widgetsContainer()},
		}
		result := p.ProcessInto(batch, testIdentity, sink)
		require.Len(t, sink.records, 2)
		assert.Equal(t, "A", sink.records[0].Title)
		assert.Equal(t, "B", sink.records[1].Title)
		assert.Len(t, result.Accepted, 2)
	})
}
