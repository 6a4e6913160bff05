package tab

// GroupSink receives tab group registrations.
type GroupSink interface {
	RegisterGroup(group Group)
}

// DefaultGroups returns the fixed dashboard tab groups in registration order.
func DefaultGroups() []Group {
	return []Group{
		{ID: "administration", Title: "Administration"},
		{ID: "monitoring", Title: "Monitoring"},
		{ID: "performance", Title: "Performance"},
		{ID: "security", Title: "Security"},
		{ID: "troubleshooting", Title: "Troubleshooting"},
		{ID: "settings", Title: "Settings"},
	}
}

// RegisterGroups registers the fixed groups exactly once, in order. There is
// no validation and no failure path; groups are static host data.
func RegisterGroups(sink GroupSink) {
	for _, group := range DefaultGroups() {
		sink.RegisterGroup(group)
	}
}
