package player

import (
	"errors"
	"io"
	"log"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lowaak/flowlift/internal/catalog"
	"github.com/lowaak/flowlift/internal/timer"
	"github.com/lowaak/flowlift/internal/workout"
)

func testLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

// memoryStore is a SnapshotStore that keeps every saved snapshot
type memoryStore struct {
	mu      sync.Mutex
	saved   []workout.Snapshot
	current *workout.Snapshot
	saveErr error
	closed  bool
}

func (s *memoryStore) Load() (workout.Snapshot, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return workout.Snapshot{}, false, nil
	}
	return *s.current, true, nil
}

func (s *memoryStore) Save(snap workout.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saved = append(s.saved, snap)
	s.current = &snap
	return nil
}

func (s *memoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func (s *memoryStore) last() (workout.Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return workout.Snapshot{}, false
	}
	return *s.current, true
}

type managerFixture struct {
	sched   *timer.VirtualScheduler
	model   *UIModel
	store   *memoryStore
	manager *WorkoutManager
}

func newManagerFixture(t *testing.T, countdown int) *managerFixture {
	t.Helper()
	logChan := make(chan string, 16)
	model := NewUIModel(catalog.Default().All(), workout.DefaultBreathingPattern, testLogger(), logChan)
	t.Cleanup(model.Shutdown)

	f := &managerFixture{
		sched: timer.NewVirtualScheduler(),
		model: model,
		store: &memoryStore{},
	}
	f.manager = NewWorkoutManager(f.sched, model, f.store, countdown, testLogger())
	t.Cleanup(f.manager.Shutdown)
	return f
}

func testProgram() catalog.Program {
	return catalog.Program{
		ID:   "test",
		Name: "Test Plan",
		Exercises: []workout.ExerciseDescriptor{
			{ID: "push-pushup-1", Name: "Push-up", DefaultSets: 1, DefaultReps: 1, DefaultRest: 3},
			{ID: "pull-row-2", Name: "Row", DefaultSets: 2, DefaultReps: 1, DefaultRest: 2},
		},
	}
}

// droppingExecutor never runs posted work, like a loop that was shut down
type droppingExecutor struct{}

func (droppingExecutor) Post(func()) {}

func (droppingExecutor) AfterFunc(time.Duration, func()) timer.Timer {
	return stoppedTimer{}
}

type stoppedTimer struct{}

func (stoppedTimer) Stop() bool { return false }

func TestNewWorkoutManager_PanicsOnNilDeps(t *testing.T) {
	model := NewUIModel(nil, workout.DefaultBreathingPattern, testLogger(), make(chan string))
	defer model.Shutdown()
	sched := timer.NewVirtualScheduler()

	assert.Panics(t, func() { NewWorkoutManager(nil, model, &memoryStore{}, 0, testLogger()) })
	assert.Panics(t, func() { NewWorkoutManager(sched, nil, &memoryStore{}, 0, testLogger()) })
	assert.Panics(t, func() { NewWorkoutManager(sched, model, nil, 0, testLogger()) })
	assert.Panics(t, func() { NewWorkoutManager(sched, model, &memoryStore{}, 0, nil) })
}

func TestWorkoutManager_StartPlanPublishesReadyState(t *testing.T) {
	f := newManagerFixture(t, 0)

	require.NoError(t, f.manager.StartPlan(testProgram(), workout.ModeTimed))

	state := f.model.GetPlayerState()
	assert.Equal(t, PlayerStatusReady, state.Status)
	require.NotNil(t, state.Program)
	assert.Equal(t, "Test Plan", state.Program.Name)
	assert.Equal(t, 0, state.View.Index)
	assert.Equal(t, 2, state.View.Total)
	assert.Equal(t, "Push-up", state.View.Exercise.Name)
	assert.Equal(t, 2*time.Second, state.PhaseDuration)
	require.NotNil(t, state.NextExercise)
	assert.Equal(t, "Row", state.NextExercise.Name)
	// two sets of one 7s cycle plus 2s rest each
	assert.Equal(t, 18*time.Second, state.Remaining)
	assert.NotEmpty(t, state.View.SessionID)
}

func TestWorkoutManager_StartPlanRejectsEmptyPlan(t *testing.T) {
	f := newManagerFixture(t, 0)

	err := f.manager.StartPlan(catalog.Program{ID: "empty", Name: "Empty"}, workout.ModeTimed)
	require.Error(t, err)
	assert.True(t, errors.Is(err, workout.ErrInvalidPlan))
	assert.Equal(t, PlayerStatusIdle, f.model.GetPlayerState().Status)
}

func TestWorkoutManager_CallAfterShutdown(t *testing.T) {
	model := NewUIModel(nil, workout.DefaultBreathingPattern, testLogger(), make(chan string))
	defer model.Shutdown()
	m := NewWorkoutManager(droppingExecutor{}, model, &memoryStore{}, 0, testLogger())
	m.Shutdown()
	m.Shutdown()

	err := m.StartPlan(testProgram(), workout.ModeTimed)
	assert.ErrorIs(t, err, ErrManagerShutdown)
}

func TestWorkoutManager_ShutdownCancelsSessionTimers(t *testing.T) {
	f := newManagerFixture(t, 0)
	require.NoError(t, f.manager.StartPlan(testProgram(), workout.ModeTimed))
	f.manager.TogglePlay()
	require.Positive(t, f.sched.PendingCount())

	f.manager.Shutdown()

	assert.Equal(t, 0, f.sched.PendingCount())
	_, ok := f.store.last()
	assert.True(t, ok)
}

func TestWorkoutManager_TimedRunThroughWorkout(t *testing.T) {
	f := newManagerFixture(t, 0)
	require.NoError(t, f.manager.StartPlan(testProgram(), workout.ModeTimed))

	f.manager.TogglePlay()
	assert.Equal(t, PlayerStatusRunning, f.model.GetPlayerState().Status)

	// Push-up: one rep (5s), then a 3s rest, then the Row starts active
	f.sched.AdvanceSeconds(6)
	state := f.model.GetPlayerState()
	assert.Equal(t, workout.PhaseRest, state.View.Run.Phase)
	assert.Equal(t, 2, state.View.Run.RestTimeLeft)

	f.sched.AdvanceSeconds(3)
	state = f.model.GetPlayerState()
	assert.Equal(t, 1, state.View.Index)
	assert.Equal(t, PlayerStatusRunning, state.Status)
	assert.Nil(t, state.NextExercise)
	assert.Equal(t, time.Duration(0), state.Remaining)

	f.sched.AdvanceSeconds(20)
	state = f.model.GetPlayerState()
	assert.Equal(t, PlayerStatusFinished, state.Status)
	assert.True(t, state.View.Finished)
	assert.Equal(t, 0, f.sched.PendingCount())
}

func TestWorkoutManager_CountdownStatus(t *testing.T) {
	f := newManagerFixture(t, 3)
	require.NoError(t, f.manager.StartPlan(testProgram(), workout.ModeTimed))

	f.manager.TogglePlay()
	state := f.model.GetPlayerState()
	assert.Equal(t, PlayerStatusCountingDown, state.Status)
	require.NotNil(t, state.View.Run.Countdown)
	assert.Equal(t, 3, *state.View.Run.Countdown)

	f.sched.AdvanceSeconds(3)
	assert.Equal(t, PlayerStatusRunning, f.model.GetPlayerState().Status)
}

func TestWorkoutManager_PauseAndReset(t *testing.T) {
	f := newManagerFixture(t, 0)
	require.NoError(t, f.manager.StartPlan(testProgram(), workout.ModeTimed))

	f.manager.TogglePlay()
	f.sched.AdvanceSeconds(2)
	f.manager.TogglePlay()
	state := f.model.GetPlayerState()
	assert.Equal(t, PlayerStatusPaused, state.Status)
	assert.Equal(t, workout.PhaseHoldIn, state.View.Run.Phase)
	assert.Equal(t, time.Second, state.PhaseDuration)

	f.manager.Reset()
	state = f.model.GetPlayerState()
	assert.Equal(t, PlayerStatusReady, state.Status)
	assert.Equal(t, workout.PhaseInhale, state.View.Run.Phase)
}

func TestWorkoutManager_SkipRest(t *testing.T) {
	f := newManagerFixture(t, 0)
	require.NoError(t, f.manager.StartPlan(testProgram(), workout.ModeTimed))

	f.manager.TogglePlay()
	f.sched.AdvanceSeconds(5)
	require.Equal(t, workout.PhaseRest, f.model.GetPlayerState().View.Run.Phase)

	f.manager.SkipRest()
	f.sched.Advance(0)
	state := f.model.GetPlayerState()
	assert.Equal(t, 1, state.View.Index)
	assert.Equal(t, PlayerStatusRunning, state.Status)
}

func TestWorkoutManager_ManualMode(t *testing.T) {
	f := newManagerFixture(t, 0)
	require.NoError(t, f.manager.StartPlan(testProgram(), workout.ModeManual))
	assert.Equal(t, PlayerStatusManual, f.model.GetPlayerState().Status)

	f.manager.CompleteSet()
	assert.Equal(t, 1, f.model.GetPlayerState().View.Index)

	f.manager.CompleteSet()
	assert.Equal(t, 1, f.model.GetPlayerState().View.Run.CurrentSet)
	f.manager.CompleteSet()
	assert.Equal(t, PlayerStatusFinished, f.model.GetPlayerState().Status)
}

func TestWorkoutManager_NextPrevPersistIndex(t *testing.T) {
	f := newManagerFixture(t, 0)
	require.NoError(t, f.manager.StartPlan(testProgram(), workout.ModeTimed))

	f.manager.Next()
	assert.Equal(t, 1, f.model.GetPlayerState().View.Index)
	f.manager.Next()
	assert.Equal(t, 1, f.model.GetPlayerState().View.Index)

	f.manager.Shutdown()
	snap, ok := f.store.last()
	require.True(t, ok)
	require.NotNil(t, snap.ActiveProgram)
	assert.Equal(t, "Test Plan", snap.ActiveProgram.Name)
	assert.Equal(t, 1, snap.CurrentExerciseIndex)
	assert.Equal(t, workout.ModeTimed, snap.ActiveMode)
	assert.NotEmpty(t, snap.SessionID)
	assert.False(t, snap.SavedAt.IsZero())
}

func TestWorkoutManager_PrevStartsIdle(t *testing.T) {
	f := newManagerFixture(t, 0)
	require.NoError(t, f.manager.StartPlan(testProgram(), workout.ModeTimed))

	f.manager.Next()
	f.manager.TogglePlay()
	f.manager.Prev()
	state := f.model.GetPlayerState()
	assert.Equal(t, 0, state.View.Index)
	assert.Equal(t, PlayerStatusReady, state.Status)
}

func TestWorkoutManager_FinishedSessionIsNotResumable(t *testing.T) {
	f := newManagerFixture(t, 0)
	require.NoError(t, f.manager.StartPlan(testProgram(), workout.ModeTimed))

	f.manager.Finish()
	assert.Equal(t, PlayerStatusFinished, f.model.GetPlayerState().Status)

	f.manager.Shutdown()
	snap, ok := f.store.last()
	require.True(t, ok)
	assert.False(t, snap.HasActiveSession())
	require.NotNil(t, snap.BreathingPattern)
}

func TestWorkoutManager_ExitToMenu(t *testing.T) {
	f := newManagerFixture(t, 0)
	require.NoError(t, f.manager.StartPlan(testProgram(), workout.ModeTimed))
	f.manager.TogglePlay()

	f.manager.ExitToMenu()
	state := f.model.GetPlayerState()
	assert.Equal(t, PlayerStatusIdle, state.Status)
	assert.Nil(t, state.Program)
	assert.Equal(t, 0, f.sched.PendingCount())

	// controls without a session are ignored
	f.manager.TogglePlay()
	f.manager.Next()
	assert.Equal(t, PlayerStatusIdle, f.model.GetPlayerState().Status)
}

func TestWorkoutManager_SetBreathingPattern(t *testing.T) {
	f := newManagerFixture(t, 0)
	require.NoError(t, f.manager.StartPlan(testProgram(), workout.ModeTimed))

	p := workout.BreathingPattern{Inhale: 4, HoldIn: 0, Exhale: 4, HoldOut: 0}
	f.manager.SetBreathingPattern(p)

	assert.Equal(t, p, f.model.GetBreathingPattern())
	state := f.model.GetPlayerState()
	assert.Equal(t, p, state.Pattern)
	assert.Equal(t, 4*time.Second, state.PhaseDuration)

	// one rep takes inhale + hold + exhale = 8s with the new pattern
	f.manager.TogglePlay()
	f.sched.AdvanceSeconds(7)
	assert.Equal(t, 0, f.model.GetPlayerState().View.Run.Reps)
	f.sched.AdvanceSeconds(1)
	assert.Equal(t, workout.PhaseRest, f.model.GetPlayerState().View.Run.Phase)
}

func TestWorkoutManager_Restore(t *testing.T) {
	f := newManagerFixture(t, 0)
	program := testProgram()
	p := workout.BreathingPattern{Inhale: 3, HoldIn: 1, Exhale: 3, HoldOut: 1}
	snap := workout.Snapshot{
		ActiveProgram:        program.Ref(),
		ActiveMode:           "timer",
		CurrentExerciseIndex: 1,
		BreathingPattern:     &p,
		SessionID:            "saved-session",
	}

	require.NoError(t, f.manager.Restore(snap))

	state := f.model.GetPlayerState()
	assert.Equal(t, PlayerStatusReady, state.Status)
	assert.Equal(t, 1, state.View.Index)
	assert.Equal(t, "saved-session", state.View.SessionID)
	assert.Equal(t, workout.ModeTimed, state.View.Mode)
	assert.Equal(t, p, f.model.GetBreathingPattern())
}

func TestWorkoutManager_RestoreWithoutSession(t *testing.T) {
	f := newManagerFixture(t, 0)
	p := workout.BreathingPattern{Inhale: 1, HoldIn: 1, Exhale: 1, HoldOut: 1}

	require.NoError(t, f.manager.Restore(workout.Snapshot{BreathingPattern: &p}))
	assert.Equal(t, PlayerStatusIdle, f.model.GetPlayerState().Status)
	assert.Equal(t, p, f.model.GetBreathingPattern())
}

func TestWorkoutManager_SaveErrorIsLogged(t *testing.T) {
	f := newManagerFixture(t, 0)
	f.store.saveErr = errors.New("disk full")

	require.NoError(t, f.manager.StartPlan(testProgram(), workout.ModeTimed))
	f.manager.Shutdown()

	_, ok := f.store.last()
	assert.False(t, ok)
}

func TestWorkoutManager_LoadSnapshot(t *testing.T) {
	f := newManagerFixture(t, 0)
	_, ok := f.manager.LoadSnapshot()
	assert.False(t, ok)

	want := workout.Snapshot{SelectedPrograms: []string{"push"}}
	require.NoError(t, f.store.Save(want))
	got, ok := f.manager.LoadSnapshot()
	require.True(t, ok)
	assert.Equal(t, want, got)
}
