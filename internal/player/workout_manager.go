package player

import (
	"errors"
	"log"
	"sync"
	"time"

	"github.com/lowaak/flowlift/internal/catalog"
	"github.com/lowaak/flowlift/internal/go_func_utils"
	"github.com/lowaak/flowlift/internal/store"
	"github.com/lowaak/flowlift/internal/timer"
	"github.com/lowaak/flowlift/internal/workout"
)

// ErrManagerShutdown is returned by calls made after Shutdown.
var ErrManagerShutdown = errors.New("workout manager is shut down")

// teardownTimeout bounds how long Shutdown waits for the executor to
// cancel the session's wake-ups.
const teardownTimeout = 500 * time.Millisecond

// WorkoutManager owns the workout session. Everything that touches the
// session runs on the executor; the public methods post work to it.
type WorkoutManager struct {
	exec      timer.Executor
	uiModel   *UIModel
	store     store.SnapshotStore
	logger    *log.Logger
	countdown int

	// executor-owned
	session     *workout.Session
	program     *workout.ProgramRef
	pattern     workout.BreathingPattern
	unsubscribe []func()

	saveMu       sync.Mutex
	pendingSave  *workout.Snapshot
	saveSignal   chan struct{}
	doneChan     chan struct{}
	wg           sync.WaitGroup
	shutdownOnce sync.Once
}

func NewWorkoutManager(exec timer.Executor, uiModel *UIModel, snapshotStore store.SnapshotStore, countdownSeconds int, logger *log.Logger) *WorkoutManager {
	if exec == nil {
		panic("WorkoutManager: executor cannot be nil")
	}
	if uiModel == nil {
		panic("WorkoutManager: uiModel cannot be nil")
	}
	if snapshotStore == nil {
		panic("WorkoutManager: store cannot be nil")
	}
	if logger == nil {
		panic("WorkoutManager: logger cannot be nil")
	}

	m := &WorkoutManager{
		exec:       exec,
		uiModel:    uiModel,
		store:      snapshotStore,
		logger:     logger,
		countdown:  countdownSeconds,
		pattern:    uiModel.GetBreathingPattern(),
		saveSignal: make(chan struct{}, 1),
		doneChan:   make(chan struct{}),
	}

	m.wg.Add(1)
	go_func_utils.SafeGo(logger, "WorkoutManager snapshot writer", func() { m.runSnapshotWriter() })

	return m
}

// Shutdown closes the session, cancelling its pending wake-ups, then stops
// the snapshot writer after flushing the last pending snapshot. Safe to call
// multiple times.
func (m *WorkoutManager) Shutdown() {
	m.shutdownOnce.Do(func() {
		m.logger.Println("WorkoutManager: Shutting down")
		torndown := make(chan struct{})
		m.exec.Post(func() {
			m.uninstall()
			close(torndown)
		})
		select {
		case <-torndown:
		case <-time.After(teardownTimeout):
			m.logger.Println("WorkoutManager: Executor did not close the session in time")
		}
		close(m.doneChan)
		m.wg.Wait()
		m.logger.Println("WorkoutManager: Shutdown complete")
	})
}

// LoadSnapshot reads the saved snapshot from the store. It is meant for
// startup, before the executor is busy.
func (m *WorkoutManager) LoadSnapshot() (workout.Snapshot, bool) {
	snap, ok, err := m.store.Load()
	if err != nil {
		m.logger.Printf("WorkoutManager: Error loading snapshot: %v", err)
		return workout.Snapshot{}, false
	}
	return snap, ok
}

// StartPlan starts a new session over the program's exercises.
func (m *WorkoutManager) StartPlan(program catalog.Program, mode workout.Mode) error {
	return m.call(func() error {
		session := workout.NewSession(m.sessionOptions())
		if err := session.Start(program.Exercises, mode); err != nil {
			return err
		}
		m.install(session, program.Ref())
		m.logger.Printf("WorkoutManager: Started %q (%d exercises, %s)", program.Name, len(program.Exercises), mode)
		return nil
	})
}

// Restore resumes the session saved in snap at its saved exercise.
func (m *WorkoutManager) Restore(snap workout.Snapshot) error {
	return m.call(func() error {
		if snap.BreathingPattern != nil {
			m.setPattern(*snap.BreathingPattern)
		}
		if !snap.HasActiveSession() {
			return nil
		}
		opts := m.sessionOptions()
		session, err := workout.RestoreSession(snap, opts)
		if err != nil {
			return err
		}
		ref := *snap.ActiveProgram
		m.install(session, &ref)
		return nil
	})
}

// TogglePlay starts, pauses or resumes the current exercise.
func (m *WorkoutManager) TogglePlay() {
	m.withEngine(func(e *workout.Engine) { e.TogglePlay() })
}

// Reset puts the current exercise back to its initial state.
func (m *WorkoutManager) Reset() {
	m.withEngine(func(e *workout.Engine) { e.Reset() })
}

// SkipRest ends the running rest period.
func (m *WorkoutManager) SkipRest() {
	m.withEngine(func(e *workout.Engine) { e.SkipRest() })
}

// CompleteSet records a set in manual mode.
func (m *WorkoutManager) CompleteSet() {
	m.withEngine(func(e *workout.Engine) { e.CompleteSet() })
}

// Next moves to the following exercise.
func (m *WorkoutManager) Next() {
	m.exec.Post(func() {
		if m.session != nil {
			m.session.Next()
		}
	})
}

// Prev moves to the previous exercise.
func (m *WorkoutManager) Prev() {
	m.exec.Post(func() {
		if m.session != nil {
			m.session.Prev()
		}
	})
}

// Finish ends the session early.
func (m *WorkoutManager) Finish() {
	m.exec.Post(func() {
		if m.session != nil {
			m.session.Finish()
		}
	})
}

// ExitToMenu drops the session without finishing it.
func (m *WorkoutManager) ExitToMenu() {
	m.exec.Post(func() {
		if m.session == nil {
			return
		}
		m.logger.Printf("WorkoutManager: Leaving session %s", m.session.ID())
		m.uninstall()
		m.publish()
		m.persist()
	})
}

// SetBreathingPattern replaces the breathing pattern of the current and any
// later session.
func (m *WorkoutManager) SetBreathingPattern(p workout.BreathingPattern) {
	m.exec.Post(func() {
		m.setPattern(p)
		m.publish()
		m.persist()
	})
}

// Persist queues a snapshot of the current state for saving.
func (m *WorkoutManager) Persist() {
	m.exec.Post(m.persist)
}

func (m *WorkoutManager) call(fn func() error) error {
	errCh := make(chan error, 1)
	m.exec.Post(func() { errCh <- fn() })
	select {
	case err := <-errCh:
		return err
	case <-m.doneChan:
		return ErrManagerShutdown
	}
}

func (m *WorkoutManager) withEngine(fn func(*workout.Engine)) {
	m.exec.Post(func() {
		if m.session == nil || m.session.Engine() == nil {
			return
		}
		fn(m.session.Engine())
	})
}

func (m *WorkoutManager) sessionOptions() workout.SessionOptions {
	return workout.SessionOptions{
		Scheduler:        m.exec,
		Logger:           m.logger,
		Pattern:          m.pattern,
		CountdownSeconds: m.countdown,
	}
}

func (m *WorkoutManager) install(session *workout.Session, program *workout.ProgramRef) {
	m.uninstall()
	m.session = session
	m.program = program
	m.unsubscribe = []func(){
		session.OnChange(func(workout.SessionView) { m.publish() }),
		session.OnNext(func(workout.SessionView) { m.persist() }),
		session.OnPrev(func(workout.SessionView) { m.persist() }),
		session.OnFinish(func(v workout.SessionView) {
			m.logger.Printf("WorkoutManager: Workout %s complete (%d exercises)", v.SessionID, v.Total)
			m.persist()
		}),
	}
	m.publish()
	m.persist()
}

func (m *WorkoutManager) uninstall() {
	for _, unsub := range m.unsubscribe {
		unsub()
	}
	m.unsubscribe = nil
	if m.session != nil {
		m.session.Close()
	}
	m.session = nil
	m.program = nil
}

func (m *WorkoutManager) setPattern(p workout.BreathingPattern) {
	m.pattern = p
	if m.session != nil {
		m.session.SetBreathingPattern(p)
	}
	m.uiModel.SetBreathingPattern(p)
}

// publish pushes the derived player state to the model.
func (m *WorkoutManager) publish() {
	m.uiModel.SetPlayerState(m.playerState())
}

func (m *WorkoutManager) playerState() PlayerState {
	state := PlayerState{Status: PlayerStatusIdle, Pattern: m.pattern}
	if m.session == nil || !m.session.Started() {
		return state
	}

	view := m.session.View()
	state.View = view
	if m.program != nil {
		ref := *m.program
		state.Program = &ref
	}
	state.Status = derivePlayerStatus(view, m.session.Engine())

	if view.Run.Phase.IsBreathing() {
		if d, err := m.pattern.Duration(view.Run.Phase); err == nil {
			state.PhaseDuration = d
		}
	}

	plan := m.session.Plan()
	if view.Index+1 < len(plan) {
		next := plan[view.Index+1]
		state.NextExercise = &next
		state.Remaining = catalog.EstimateDuration(plan[view.Index+1:], m.pattern)
	}
	return state
}

func derivePlayerStatus(view workout.SessionView, engine *workout.Engine) PlayerStatus {
	switch {
	case view.Finished || engine.Finished():
		return PlayerStatusFinished
	case view.Mode == workout.ModeManual:
		return PlayerStatusManual
	case view.Run.CountingDown():
		return PlayerStatusCountingDown
	case view.Run.Active:
		return PlayerStatusRunning
	case engine.Started():
		return PlayerStatusPaused
	default:
		return PlayerStatusReady
	}
}

// persist captures the current state and hands it to the snapshot writer.
// A finished or abandoned session is saved without its program so the next
// start goes back to the menu.
func (m *WorkoutManager) persist() {
	base := m.uiModel.BaseSnapshot()
	var snap workout.Snapshot
	if m.session != nil && !m.session.Finished() {
		base.ActiveProgram = m.program
		snap = m.session.Capture(base)
	} else {
		pattern := m.pattern
		snap = base
		snap.BreathingPattern = &pattern
	}
	snap.SavedAt = time.Now().UTC()
	m.requestSave(snap)
}

func (m *WorkoutManager) requestSave(snap workout.Snapshot) {
	m.saveMu.Lock()
	m.pendingSave = &snap
	m.saveMu.Unlock()

	select {
	case m.saveSignal <- struct{}{}:
	default:
	}
}

// runSnapshotWriter saves the latest requested snapshot off the executor.
// Older unsaved snapshots are superseded by newer ones.
func (m *WorkoutManager) runSnapshotWriter() {
	defer m.wg.Done()

	for {
		select {
		case <-m.doneChan:
			m.flushSnapshot()
			return
		case <-m.saveSignal:
			m.flushSnapshot()
		}
	}
}

func (m *WorkoutManager) flushSnapshot() {
	m.saveMu.Lock()
	snap := m.pendingSave
	m.pendingSave = nil
	m.saveMu.Unlock()

	if snap == nil {
		return
	}
	if err := m.store.Save(*snap); err != nil {
		m.logger.Printf("WorkoutManager: Error saving snapshot: %v", err)
	}
}
