package player

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lowaak/flowlift/internal/catalog"
	"github.com/lowaak/flowlift/internal/workout"
)

type controllerFixture struct {
	*managerFixture
	controller *UIController
}

func newControllerFixture(t *testing.T) *controllerFixture {
	t.Helper()
	f := newManagerFixture(t, 0)
	c := NewUIController(f.model, catalog.Default(), f.manager, testLogger())
	t.Cleanup(c.Shutdown)
	c.SetStartDefaults(catalog.LocationGym, nil, workout.ModeTimed)
	return &controllerFixture{managerFixture: f, controller: c}
}

func (f *controllerFixture) entryIDs() []string {
	var ids []string
	for _, e := range f.model.GetCustomizerState().Entries {
		ids = append(ids, e.ID)
	}
	return ids
}

func TestNewUIController_PanicsOnNilDeps(t *testing.T) {
	f := newManagerFixture(t, 0)
	cat := catalog.Default()

	assert.Panics(t, func() { NewUIController(nil, cat, f.manager, testLogger()) })
	assert.Panics(t, func() { NewUIController(f.model, nil, f.manager, testLogger()) })
	assert.Panics(t, func() { NewUIController(f.model, cat, nil, testLogger()) })
	assert.Panics(t, func() { NewUIController(f.model, cat, f.manager, nil) })
}

func TestUIController_ToggleProgramKeepsCatalogOrder(t *testing.T) {
	f := newControllerFixture(t)

	f.controller.ToggleProgram("legs")
	f.controller.ToggleProgram("push")
	f.controller.ToggleProgram("nope")
	assert.Equal(t, []string{"push", "legs"}, f.model.GetSelectionState().Selected)

	f.controller.ToggleProgram("legs")
	assert.Equal(t, []string{"push"}, f.model.GetSelectionState().Selected)
}

func TestUIController_ContinueRequiresSelection(t *testing.T) {
	f := newControllerFixture(t)

	f.controller.ContinueToCustomizer()
	assert.Equal(t, ScreenProgramSelection, f.model.GetUIState().Screen)
}

func TestUIController_CustomizerShowsMergedExercises(t *testing.T) {
	f := newControllerFixture(t)
	f.controller.ToggleProgram("push")
	f.controller.ToggleProgram("pull")

	f.controller.ContinueToCustomizer()

	assert.Equal(t, ScreenCustomizer, f.model.GetUIState().Screen)
	state := f.model.GetCustomizerState()
	assert.Equal(t, "Push + Pull", state.PlanName)
	assert.Len(t, state.Entries, 10)
	assert.Equal(t, 0, state.SelectedCount)
	assert.Equal(t, time.Duration(0), state.Estimate)
	assert.Equal(t, "Band Pull-apart", state.Entries[0].Name)
}

func TestUIController_EquipmentAndSearchFilter(t *testing.T) {
	f := newControllerFixture(t)
	f.controller.ToggleProgram("push")
	f.controller.ContinueToCustomizer()

	f.controller.SetLocation(catalog.LocationHome)
	state := f.model.GetCustomizerState()
	assert.Equal(t, catalog.LocationHome, state.Location)
	assert.ElementsMatch(t, catalog.LocationHome.DefaultEquipment(), state.Equipment)
	// overhead press and cable fly need gym equipment
	assert.Len(t, state.Entries, 3)

	f.controller.ToggleEquipment(workout.EquipmentCable)
	assert.Len(t, f.model.GetCustomizerState().Entries, 4)
	f.controller.ToggleEquipment(workout.EquipmentCable)
	assert.Len(t, f.model.GetCustomizerState().Entries, 3)

	f.controller.SetSearchQuery("  DIP ")
	state = f.model.GetCustomizerState()
	require.Len(t, state.Entries, 1)
	assert.Equal(t, "Bench Dip", state.Entries[0].Name)
}

func TestUIController_SelectionOrderAndAdjust(t *testing.T) {
	f := newControllerFixture(t)
	f.controller.ToggleProgram("push")
	f.controller.ContinueToCustomizer()

	f.controller.ToggleExercise("push-pushup-0")
	f.controller.ToggleExercise("push-bench-dip-3")
	f.controller.ToggleExercise("unknown")

	state := f.model.GetCustomizerState()
	assert.Equal(t, 2, state.SelectedCount)
	require.GreaterOrEqual(t, len(state.Entries), 2)
	assert.Equal(t, "push-pushup-0", state.Entries[0].ID)
	assert.Equal(t, 0, state.Entries[0].SelectionIndex)
	assert.Equal(t, "push-bench-dip-3", state.Entries[1].ID)
	assert.Equal(t, 1, state.Entries[1].SelectionIndex)

	f.controller.AdjustExercise("push-pushup-0", catalog.FieldSets, -5)
	f.controller.AdjustExercise("push-pushup-0", catalog.FieldRest, -1)
	entry := f.model.GetCustomizerState().Entries[0]
	assert.Equal(t, 1, entry.DefaultSets)
	assert.Equal(t, 55, entry.DefaultRest)

	f.controller.ToggleExercise("push-pushup-0")
	state = f.model.GetCustomizerState()
	assert.Equal(t, 1, state.SelectedCount)
	assert.Equal(t, "push-bench-dip-3", state.Entries[0].ID)
}

func TestUIController_StartPlan(t *testing.T) {
	f := newControllerFixture(t)
	f.controller.ToggleProgram("push")
	f.controller.ToggleProgram("legs")
	f.controller.ContinueToCustomizer()
	f.controller.CycleMode()
	assert.Equal(t, workout.ModeManual, f.model.GetCustomizerState().Mode)

	f.controller.StartPlan()
	assert.Equal(t, ScreenCustomizer, f.model.GetUIState().Screen, "empty plan must not start")

	f.controller.ToggleExercise("push-pushup-0")
	f.controller.StartPlan()

	assert.Equal(t, ScreenPlayer, f.model.GetUIState().Screen)
	state := f.model.GetPlayerState()
	assert.Equal(t, PlayerStatusManual, state.Status)
	require.NotNil(t, state.Program)
	assert.Equal(t, catalog.CustomPlanID, state.Program.ID)
	assert.Equal(t, "Push + Legs", state.Program.Name)
	assert.Equal(t, "Push-up", state.View.Exercise.Name)
}

func TestUIController_PlayerControls(t *testing.T) {
	f := newControllerFixture(t)
	f.controller.ToggleProgram("push")
	f.controller.ContinueToCustomizer()
	f.controller.ToggleExercise("push-pushup-0")
	f.controller.ToggleExercise("push-bench-dip-3")
	f.controller.StartPlan()

	f.controller.TogglePlay()
	assert.Equal(t, PlayerStatusRunning, f.model.GetPlayerState().Status)

	f.controller.NextExercise()
	assert.Equal(t, "Bench Dip", f.model.GetPlayerState().View.Exercise.Name)
	assert.Equal(t, PlayerStatusRunning, f.model.GetPlayerState().Status)

	f.controller.PrevExercise()
	assert.Equal(t, PlayerStatusReady, f.model.GetPlayerState().Status)

	f.controller.FinishWorkout()
	assert.Equal(t, PlayerStatusFinished, f.model.GetPlayerState().Status)
}

func TestUIController_EscapeWalksBack(t *testing.T) {
	f := newControllerFixture(t)
	closeCh := make(chan struct{}, 1)
	unregister := f.model.ListenToCloseApplication(closeCh)
	defer unregister()

	f.controller.ToggleProgram("push")
	f.controller.ContinueToCustomizer()
	f.controller.ToggleExercise("push-pushup-0")
	f.controller.StartPlan()
	require.Equal(t, ScreenPlayer, f.model.GetUIState().Screen)

	f.controller.OnEscapeKey()
	assert.Equal(t, ScreenProgramSelection, f.model.GetUIState().Screen)
	assert.Equal(t, PlayerStatusIdle, f.model.GetPlayerState().Status)
	assert.Len(t, closeCh, 0)

	f.controller.ContinueToCustomizer()
	f.controller.OnEscapeKey()
	assert.Equal(t, ScreenProgramSelection, f.model.GetUIState().Screen)

	f.controller.OnEscapeKey()
	assert.Len(t, closeCh, 1)
}

func TestUIController_AdjustBreathingUpdatesEstimate(t *testing.T) {
	f := newControllerFixture(t)
	f.controller.ToggleProgram("push")
	f.controller.ContinueToCustomizer()
	f.controller.ToggleExercise("push-pushup-0")
	// 3 sets x 10 reps x 7s + 3 x 60s rest
	assert.Equal(t, 390*time.Second, f.model.GetCustomizerState().Estimate)

	f.controller.AdjustBreathing(workout.PhaseInhale, 2)
	assert.Equal(t, 3.0, f.model.GetBreathingPattern().Inhale)

	// one more second per rep
	require.Eventually(t, func() bool {
		return f.model.GetCustomizerState().Estimate == 420*time.Second
	}, time.Second, 5*time.Millisecond)
}

func TestUIController_RestoreActiveSession(t *testing.T) {
	f := newControllerFixture(t)
	program := testProgram()
	snap := workout.Snapshot{
		SelectedPrograms:     []string{"pull", "bogus"},
		ActiveProgram:        program.Ref(),
		ActiveMode:           workout.ModeManual,
		CurrentExerciseIndex: 1,
		Location:             "home",
	}

	f.controller.RestoreFrom(snap)

	assert.Equal(t, ScreenPlayer, f.model.GetUIState().Screen)
	assert.Equal(t, []string{"pull"}, f.model.GetSelectionState().Selected)
	assert.Equal(t, catalog.LocationHome, f.model.GetCustomizerState().Location)
	state := f.model.GetPlayerState()
	assert.Equal(t, PlayerStatusManual, state.Status)
	assert.Equal(t, 1, state.View.Index)
}

func TestUIController_RestoreCustomizer(t *testing.T) {
	f := newControllerFixture(t)
	snap := workout.Snapshot{
		SelectedPrograms:  []string{"legs"},
		IsCustomizing:     true,
		Location:          "gym",
		SelectedEquipment: []workout.Equipment{workout.EquipmentBarbell},
	}

	f.controller.RestoreFrom(snap)

	assert.Equal(t, ScreenCustomizer, f.model.GetUIState().Screen)
	state := f.model.GetCustomizerState()
	assert.Equal(t, []workout.Equipment{workout.EquipmentBarbell}, state.Equipment)
	require.NotEmpty(t, state.Entries)
	for _, e := range state.Entries {
		assert.Contains(t, e.Equipment, workout.EquipmentBarbell)
	}
}

func TestUIController_RestoreInvalidSessionFallsBackToMenu(t *testing.T) {
	f := newControllerFixture(t)
	snap := workout.Snapshot{
		ActiveProgram: &workout.ProgramRef{ID: "x", Name: "Broken", Exercises: []workout.ExerciseDescriptor{{ID: "a", Name: "A"}}},
	}

	f.controller.RestoreFrom(snap)

	assert.Equal(t, ScreenProgramSelection, f.model.GetUIState().Screen)
	assert.Equal(t, PlayerStatusIdle, f.model.GetPlayerState().Status)
}
