package triage

// Priority is the urgency level assigned to a help request.
type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// IsValid reports whether p is one of the four known priority levels.
func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

// classifyOrder is the evaluation order for fallback matching. On score ties
// the earlier level wins, biasing ambiguous input toward caution.
var classifyOrder = []Priority{PriorityCritical, PriorityHigh, PriorityMedium, PriorityLow}

// severityAdjective maps a priority to the adjective used in generated
// descriptions. Unknown values read as moderate.
func severityAdjective(p Priority) string {
	switch p {
	case PriorityCritical:
		return "critical"
	case PriorityHigh:
		return "serious"
	case PriorityMedium:
		return "moderate"
	case PriorityLow:
		return "mild"
	}
	return "moderate"
}
