package catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lowaak/flowlift/internal/workout"
)

func samplePrograms() []Program {
	return []Program{
		{ID: "push", Name: "Push", Exercises: []workout.ExerciseDescriptor{
			{ID: "pushup", Name: "Push-up", Description: "floor press", Equipment: []workout.Equipment{workout.EquipmentBodyweight}, DefaultSets: 3, DefaultReps: 10, DefaultRest: 60},
			{ID: "fly", Name: "Cable Fly", Description: "chest", Equipment: []workout.Equipment{workout.EquipmentCable}, DefaultSets: 3, DefaultReps: 12, DefaultRest: 45},
		}},
		{ID: "upper", Name: "Upper Body", Exercises: []workout.ExerciseDescriptor{
			{ID: "pushup", Name: "Push-up", Description: "floor press", Equipment: []workout.Equipment{workout.EquipmentBodyweight}, DefaultSets: 2, DefaultReps: 8, DefaultRest: 30},
			{ID: "row", Name: "Dumbbell Row", Description: "back", Equipment: []workout.Equipment{workout.EquipmentDumbbell, workout.EquipmentBench}, DefaultSets: 3, DefaultReps: 10, DefaultRest: 60},
		}},
	}
}

func entryIDs(entries []Entry) []string {
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.ID)
	}
	return ids
}

func TestMerge_UniqueIdsSortedByName(t *testing.T) {
	entries := Merge(samplePrograms())

	assert.Equal(t, []string{"push-fly-1", "upper-row-3", "push-pushup-0", "upper-pushup-2"}, entryIDs(entries))
	assert.Equal(t, "Upper Body", entries[3].ProgramName)
	assert.Equal(t, 2, entries[3].DefaultSets)
}

func TestFilter(t *testing.T) {
	entries := Merge(samplePrograms())

	got := Filter(entries, []workout.Equipment{workout.EquipmentBodyweight}, "")
	assert.Equal(t, []string{"push-pushup-0", "upper-pushup-2"}, entryIDs(got))

	got = Filter(entries, workout.AllEquipment, "BACK")
	assert.Equal(t, []string{"upper-row-3"}, entryIDs(got))

	got = Filter(entries, nil, "")
	assert.Empty(t, got)
}

func TestPlanBuilder_ToggleKeepsSelectionOrder(t *testing.T) {
	b := NewPlanBuilder(samplePrograms())

	assert.True(t, b.Toggle("upper-row-3"))
	assert.True(t, b.Toggle("push-pushup-0"))
	assert.True(t, b.Toggle("push-fly-1"))
	assert.False(t, b.Toggle("push-pushup-0"))
	assert.False(t, b.Toggle("unknown"))

	assert.Equal(t, []string{"upper-row-3", "push-fly-1"}, entryIDs(b.Selected()))
	assert.Equal(t, 1, b.SelectionIndex("push-fly-1"))
	assert.False(t, b.IsSelected("push-pushup-0"))

	b.ClearSelection()
	assert.Empty(t, b.Selected())
}

func TestPlanBuilder_VisiblePutsSelectionFirst(t *testing.T) {
	b := NewPlanBuilder(samplePrograms())
	b.Toggle("upper-pushup-2")
	b.Toggle("upper-row-3")

	got := b.Visible(workout.AllEquipment, "")
	assert.Equal(t, []string{"upper-pushup-2", "upper-row-3", "push-fly-1", "push-pushup-0"}, entryIDs(got))

	got = b.Visible([]workout.Equipment{workout.EquipmentCable}, "")
	assert.Equal(t, []string{"push-fly-1"}, entryIDs(got))
}

func TestPlanBuilder_AdjustClamps(t *testing.T) {
	b := NewPlanBuilder(samplePrograms())
	id := "push-pushup-0"

	require.True(t, b.Adjust(id, FieldSets, -10))
	require.True(t, b.Adjust(id, FieldReps, 2))
	require.True(t, b.Adjust(id, FieldRest, -1))
	e, _ := b.Entry(id)
	assert.Equal(t, 1, e.DefaultSets)
	assert.Equal(t, 12, e.DefaultReps)
	assert.Equal(t, 55, e.DefaultRest)

	b.Adjust(id, FieldRest, -100)
	e, _ = b.Entry(id)
	assert.Equal(t, 0, e.DefaultRest)

	assert.False(t, b.Adjust("missing", FieldSets, 1))
	assert.False(t, b.Adjust(id, Field(9), 1))
}

func TestPlanBuilder_Build(t *testing.T) {
	b := NewPlanBuilder(samplePrograms())
	b.Toggle("upper-row-3")
	b.Adjust("upper-row-3", FieldSets, 1)
	b.Toggle("push-pushup-0")

	p := b.Build()
	assert.Equal(t, CustomPlanID, p.ID)
	assert.Equal(t, "Push + Upper Body", p.Name)
	assert.Equal(t, CustomPlanDescription, p.Description)
	require.Len(t, p.Exercises, 2)
	assert.Equal(t, "upper-row-3", p.Exercises[0].ID)
	assert.Equal(t, 4, p.Exercises[0].DefaultSets)

	empty := NewPlanBuilder(samplePrograms()).Build()
	assert.Empty(t, empty.Exercises)
}

func TestEstimateDuration(t *testing.T) {
	exercises := []workout.ExerciseDescriptor{
		{DefaultSets: 2, DefaultReps: 2, DefaultRest: 10},
		{DefaultSets: 3, DefaultReps: 1, DefaultRest: -5},
	}
	// 2*2*7 + 2*10 + 3*1*7 + 0
	assert.Equal(t, 69*time.Second, EstimateDuration(exercises, workout.DefaultBreathingPattern))
	assert.Zero(t, EstimateDuration(nil, workout.DefaultBreathingPattern))

	b := NewPlanBuilder(samplePrograms())
	b.Toggle("push-fly-1")
	// 3*12*7 + 3*45
	assert.Equal(t, 387*time.Second, b.Estimate(workout.DefaultBreathingPattern))
}
