package model

import "time"

// Priority orders not-done items when the list runs in prioritized mode.
type Priority int

const (
	PriorityLow    Priority = 1
	PriorityMedium Priority = 2
	PriorityHigh   Priority = 3
)

// ValidPriorities returns all priority values, highest first.
func ValidPriorities() []Priority {
	return []Priority{PriorityHigh, PriorityMedium, PriorityLow}
}

// IsValid returns true if the priority is a known value.
func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

func (p Priority) String() string {
	switch p {
	case PriorityLow:
		return "low"
	case PriorityMedium:
		return "medium"
	case PriorityHigh:
		return "high"
	default:
		return "unknown"
	}
}

// ParsePriority parses the CLI spelling of a priority.
func ParsePriority(s string) (Priority, bool) {
	switch s {
	case "low", "l":
		return PriorityLow, true
	case "medium", "med", "m":
		return PriorityMedium, true
	case "high", "h":
		return PriorityHigh, true
	}
	return 0, false
}

// Mode selects which section catalog the list is projected through.
type Mode int

const (
	ModeSimple      Mode = 0
	ModePrioritized Mode = 1
)

func (m Mode) IsValid() bool { return m == ModeSimple || m == ModePrioritized }

func (m Mode) String() string {
	if m == ModePrioritized {
		return "prioritized"
	}
	return "simple"
}

// ParseMode parses the CLI spelling of a mode.
func ParseMode(s string) (Mode, bool) {
	switch s {
	case "simple":
		return ModeSimple, true
	case "prioritized", "prio":
		return ModePrioritized, true
	}
	return 0, false
}

// Item is a single to-do entry.
//
// SectionKey is derived from (Done, Priority, mode) and persisted so the
// store can return rows grouped and sorted without recomputing membership
// per read. It must never be written directly; mutations go through
// internal/mutate so the key is recomputed in the same step.
type Item struct {
	ID string `json:"id"`

	Title    string   `json:"title"`
	Done     bool     `json:"done"`
	Priority Priority `json:"priority"`

	// ManualOrder is the sole source of truth for ordering within a
	// section. Higher values sort earlier. Values are dense but not
	// necessarily contiguous; a reorder rewrites them for every item.
	ManualOrder int `json:"manualOrder"`

	SectionKey string `json:"sectionKey"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ListConfiguration is the singleton per-store display configuration.
type ListConfiguration struct {
	Mode Mode `json:"mode"`
}
