package models

// Priority values understood by the server. Anything else is kept as received.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Priorities lists the known priorities in ascending order
var Priorities = []string{PriorityLow, PriorityMedium, PriorityHigh}
