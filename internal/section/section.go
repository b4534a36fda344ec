// Package section defines the fixed catalog of list sections and the pure
// derivation of an item's section from its state and the active mode.
package section

import "triage-cli/internal/model"

// Section identifies a named bucket in the displayed list.
//
// The raw values double as sort keys: the store orders rows by section key
// ascending, so the keys encode catalog rank. Not-done buckets live in the
// "1x" range and done in "20" so that every catalog stays in rank order
// under plain string comparison.
type Section string

const (
	ToDo           Section = "10"
	HighPriority   Section = "11"
	MediumPriority Section = "12"
	LowPriority    Section = "13"
	Done           Section = "20"
)

// Title returns the human-readable section header.
func (s Section) Title() string {
	switch s {
	case ToDo:
		return "Left to do"
	case HighPriority:
		return "High priority"
	case MediumPriority:
		return "Medium priority"
	case LowPriority:
		return "Low priority"
	case Done:
		return "Done"
	default:
		return ""
	}
}

// IsValid returns true if s is a known section key.
func (s Section) IsValid() bool {
	switch s {
	case ToDo, HighPriority, MediumPriority, LowPriority, Done:
		return true
	}
	return false
}

// For computes the section an item belongs to. It is total: any
// (done, priority, mode) combination maps to a section, with unknown
// priorities treated as low.
func For(done bool, priority model.Priority, mode model.Mode) Section {
	if done {
		return Done
	}
	if mode == model.ModeSimple {
		return ToDo
	}
	switch priority {
	case model.PriorityHigh:
		return HighPriority
	case model.PriorityMedium:
		return MediumPriority
	default:
		return LowPriority
	}
}

// Catalog returns the fixed, ordered set of sections valid for a mode.
// The order is catalog rank, which every projection must preserve.
func Catalog(mode model.Mode) []Section {
	if mode == model.ModePrioritized {
		return []Section{HighPriority, MediumPriority, LowPriority, Done}
	}
	return []Section{ToDo, Done}
}

// CanonicalState returns the (done, priority) state an item takes on when
// it is dropped into s, given its current priority. ToDo keeps the item's
// priority; the priority sections pin it.
func (s Section) CanonicalState(current model.Priority) (done bool, priority model.Priority) {
	switch s {
	case Done:
		return true, current
	case ToDo:
		return false, current
	case HighPriority:
		return false, model.PriorityHigh
	case MediumPriority:
		return false, model.PriorityMedium
	case LowPriority:
		return false, model.PriorityLow
	default:
		return false, current
	}
}
