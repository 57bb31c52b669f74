package models

// ItemType classifies a backlog item as addressing an opportunity or a threat.
type ItemType string

const (
	ItemPositive ItemType = "positive"
	ItemNegative ItemType = "negative"
)

// Priority is the triage level assigned to a backlog item.
type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// Impact names one sustainability dimension touched by a backlog item.
type Impact string

const (
	ImpactSocial        Impact = "social"
	ImpactEconomic      Impact = "economic"
	ImpactEnvironmental Impact = "environmental"
	ImpactIndividual    Impact = "individual"
	ImpactTechnical     Impact = "technical"
)

// StatusToDo is the only status a freshly generated backlog item carries.
const StatusToDo = "To Do"

// BacklogItem is a normalized work item derived from a sustainability
// analysis. It is output-only and never persisted.
type BacklogItem struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Type        ItemType `json:"type"`
	Impact      []Impact `json:"impact"`
	Priority    Priority `json:"priority"`
	Status      string   `json:"status"`
	// Metrics is reserved for future population; the generator always
	// attaches an empty list.
	Metrics []string `json:"metrics"`
}
