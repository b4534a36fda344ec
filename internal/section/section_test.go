package section

import (
	"reflect"
	"testing"

	"triage-cli/internal/model"
)

func TestFor(t *testing.T) {
	tests := []struct {
		name string
		done bool
		prio model.Priority
		mode model.Mode
		want Section
	}{
		{"done wins in simple", true, model.PriorityHigh, model.ModeSimple, Done},
		{"done wins in prioritized", true, model.PriorityLow, model.ModePrioritized, Done},
		{"simple not done", false, model.PriorityHigh, model.ModeSimple, ToDo},
		{"prioritized high", false, model.PriorityHigh, model.ModePrioritized, HighPriority},
		{"prioritized medium", false, model.PriorityMedium, model.ModePrioritized, MediumPriority},
		{"prioritized low", false, model.PriorityLow, model.ModePrioritized, LowPriority},
		{"unknown priority falls back to low", false, model.Priority(0), model.ModePrioritized, LowPriority},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := For(tt.done, tt.prio, tt.mode); got != tt.want {
				t.Fatalf("For(%v, %v, %v) = %v, want %v", tt.done, tt.prio, tt.mode, got, tt.want)
			}
		})
	}
}

func TestCatalogOrder(t *testing.T) {
	if got, want := Catalog(model.ModeSimple), []Section{ToDo, Done}; !reflect.DeepEqual(got, want) {
		t.Fatalf("simple catalog = %v, want %v", got, want)
	}
	if got, want := Catalog(model.ModePrioritized), []Section{HighPriority, MediumPriority, LowPriority, Done}; !reflect.DeepEqual(got, want) {
		t.Fatalf("prioritized catalog = %v, want %v", got, want)
	}
}

func TestCatalogKeysSortInRankOrder(t *testing.T) {
	// The keys double as the store's sort keys, so lexicographic order
	// must equal catalog order in every mode.
	for _, mode := range []model.Mode{model.ModeSimple, model.ModePrioritized} {
		cat := Catalog(mode)
		for i := 1; i < len(cat); i++ {
			if !(cat[i-1] < cat[i]) {
				t.Fatalf("mode %v: key %q not < %q", mode, cat[i-1], cat[i])
			}
		}
	}
}

func TestCanonicalState(t *testing.T) {
	if done, prio := Done.CanonicalState(model.PriorityHigh); !done || prio != model.PriorityHigh {
		t.Fatalf("Done canonical = (%v, %v)", done, prio)
	}
	if done, prio := ToDo.CanonicalState(model.PriorityLow); done || prio != model.PriorityLow {
		t.Fatalf("ToDo canonical = (%v, %v)", done, prio)
	}
	if done, prio := MediumPriority.CanonicalState(model.PriorityHigh); done || prio != model.PriorityMedium {
		t.Fatalf("MediumPriority canonical = (%v, %v)", done, prio)
	}
}

func TestTitles(t *testing.T) {
	for _, s := range []Section{ToDo, HighPriority, MediumPriority, LowPriority, Done} {
		if s.Title() == "" {
			t.Fatalf("empty title for %q", s)
		}
	}
}
