package catalog

import (
	"fmt"
	"slices"
	"strings"

	"github.com/lowaak/flowlift/internal/workout"
)

// Entry is an exercise taken from a program, with an id unique across the
// merged list.
type Entry struct {
	workout.ExerciseDescriptor
	ProgramID   string
	ProgramName string
}

// Merge flattens programs into one list sorted by name. Ids take the form
// <program>-<exercise>-<n>, n counting across all programs, so the same
// exercise in two programs yields two entries.
func Merge(programs []Program) []Entry {
	var out []Entry
	n := 0
	for _, p := range programs {
		for _, ex := range p.Exercises {
			e := Entry{ExerciseDescriptor: ex, ProgramID: p.ID, ProgramName: p.Name}
			e.ID = fmt.Sprintf("%s-%s-%d", p.ID, ex.ID, n)
			e.Equipment = append([]workout.Equipment(nil), ex.Equipment...)
			out = append(out, e)
			n++
		}
	}
	slices.SortStableFunc(out, func(a, b Entry) int {
		return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	})
	return out
}

// Filter keeps entries that use any of the given equipment and whose name or
// description contains query, ignoring case. An empty query matches all.
func Filter(entries []Entry, equipment []workout.Equipment, query string) []Entry {
	tags := make(map[workout.Equipment]bool, len(equipment))
	for _, eq := range equipment {
		tags[eq] = true
	}
	q := strings.ToLower(strings.TrimSpace(query))

	var out []Entry
	for _, e := range entries {
		if !e.HasEquipment(tags) {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(e.Name), q) &&
			!strings.Contains(strings.ToLower(e.Description), q) {
			continue
		}
		out = append(out, e)
	}
	return out
}
