package catalog

import (
	"slices"
	"strings"
	"time"

	"github.com/lowaak/flowlift/internal/workout"
)

// Id and description of plans assembled by a PlanBuilder.
const (
	CustomPlanID          = "custom-mixed"
	CustomPlanDescription = "Custom Mixed Program"
)

// RestStepSeconds is how far one rest adjustment moves.
const RestStepSeconds = 5

// Field is an adjustable exercise target.
type Field int

const (
	FieldSets Field = iota
	FieldReps
	FieldRest
)

// PlanBuilder holds the customizer state: the merged exercises of the chosen
// programs with their edited targets, and the ordered selection. It is not
// safe for concurrent use.
type PlanBuilder struct {
	programs []Program
	entries  []Entry
	index    map[string]int
	selected []string
}

// NewPlanBuilder merges programs with nothing selected.
func NewPlanBuilder(programs []Program) *PlanBuilder {
	b := &PlanBuilder{
		programs: append([]Program(nil), programs...),
		entries:  Merge(programs),
	}
	b.index = make(map[string]int, len(b.entries))
	for i, e := range b.entries {
		b.index[e.ID] = i
	}
	return b
}

func (b *PlanBuilder) Programs() []Program {
	return append([]Program(nil), b.programs...)
}

// Entries returns every merged exercise in name order.
func (b *PlanBuilder) Entries() []Entry {
	return append([]Entry(nil), b.entries...)
}

func (b *PlanBuilder) Entry(id string) (Entry, bool) {
	i, ok := b.index[id]
	if !ok {
		return Entry{}, false
	}
	return b.entries[i], true
}

// Toggle adds id to the end of the selection or removes it. It reports
// whether id is selected afterwards.
func (b *PlanBuilder) Toggle(id string) bool {
	if _, ok := b.index[id]; !ok {
		return false
	}
	if i := slices.Index(b.selected, id); i >= 0 {
		b.selected = slices.Delete(b.selected, i, i+1)
		return false
	}
	b.selected = append(b.selected, id)
	return true
}

// SelectionIndex returns the position of id in the selection, or -1.
func (b *PlanBuilder) SelectionIndex(id string) int {
	return slices.Index(b.selected, id)
}

func (b *PlanBuilder) IsSelected(id string) bool {
	return b.SelectionIndex(id) >= 0
}

func (b *PlanBuilder) ClearSelection() {
	b.selected = nil
}

// Selected returns the selected entries in selection order.
func (b *PlanBuilder) Selected() []Entry {
	out := make([]Entry, 0, len(b.selected))
	for _, id := range b.selected {
		out = append(out, b.entries[b.index[id]])
	}
	return out
}

// Adjust moves one target of an exercise. Sets and reps move by delta and
// stay at least 1; rest moves by delta steps of RestStepSeconds and stays at
// least 0. It reports whether id exists.
func (b *PlanBuilder) Adjust(id string, field Field, delta int) bool {
	i, ok := b.index[id]
	if !ok {
		return false
	}
	e := &b.entries[i]
	switch field {
	case FieldSets:
		e.DefaultSets = max(1, e.DefaultSets+delta)
	case FieldReps:
		e.DefaultReps = max(1, e.DefaultReps+delta)
	case FieldRest:
		e.DefaultRest = max(0, e.DefaultRest+delta*RestStepSeconds)
	default:
		return false
	}
	return true
}

// Visible filters the entries and orders them for display: selected ones
// first in selection order, then the rest by name.
func (b *PlanBuilder) Visible(equipment []workout.Equipment, query string) []Entry {
	out := Filter(b.entries, equipment, query)
	slices.SortStableFunc(out, func(x, y Entry) int {
		xi, yi := b.SelectionIndex(x.ID), b.SelectionIndex(y.ID)
		switch {
		case xi >= 0 && yi >= 0:
			return xi - yi
		case xi >= 0:
			return -1
		case yi >= 0:
			return 1
		default:
			return strings.Compare(strings.ToLower(x.Name), strings.ToLower(y.Name))
		}
	})
	return out
}

// Build assembles the selection into a plan. An empty selection gives a
// program with no exercises, which a session refuses to start.
func (b *PlanBuilder) Build() Program {
	names := make([]string, 0, len(b.programs))
	for _, p := range b.programs {
		names = append(names, p.Name)
	}

	selected := b.Selected()
	exercises := make([]workout.ExerciseDescriptor, 0, len(selected))
	for _, e := range selected {
		exercises = append(exercises, e.ExerciseDescriptor)
	}
	return Program{
		ID:          CustomPlanID,
		Name:        strings.Join(names, " + "),
		Description: CustomPlanDescription,
		Exercises:   exercises,
	}
}

// Estimate is EstimateDuration over the current selection.
func (b *PlanBuilder) Estimate(pattern workout.BreathingPattern) time.Duration {
	return EstimateDuration(b.Build().Exercises, pattern)
}

// EstimateDuration approximates a plan's length: every repetition takes one
// breathing cycle and every set is followed by its rest.
func EstimateDuration(exercises []workout.ExerciseDescriptor, pattern workout.BreathingPattern) time.Duration {
	cycle := pattern.CycleDuration()
	var total time.Duration
	for _, ex := range exercises {
		sets := time.Duration(max(0, ex.DefaultSets))
		reps := time.Duration(max(0, ex.DefaultReps))
		rest := time.Duration(max(0, ex.DefaultRest)) * time.Second
		total += sets*reps*cycle + sets*rest
	}
	return total
}
