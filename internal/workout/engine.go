package workout

import (
	"log"
	"time"

	"github.com/lowaak/flowlift/internal/timer"
)

// DefaultCountdownSeconds is the length of the "get ready" pre-roll.
const DefaultCountdownSeconds = 5

const tick = time.Second

// EngineHooks are called by the engine on its scheduler's thread.
type EngineHooks struct {
	// OnChange receives every new RunState.
	OnChange func(RunState)
	// OnExerciseComplete is called when the exercise is done and it is not
	// the last one of the plan. The engine does nothing further afterwards.
	OnExerciseComplete func()
	// OnWorkoutComplete is called when the final set of the final exercise
	// is done.
	OnWorkoutComplete func()
}

// EngineConfig describes the exercise an Engine runs.
type EngineConfig struct {
	Exercise         ExerciseDescriptor
	Mode             Mode
	IsLast           bool
	CountdownSeconds int // 0 starts immediately
	Pattern          PatternSource
	Hooks            EngineHooks
}

// Engine runs one exercise: the breathing phase machine, rest countdowns and
// the pre-start countdown in timed mode, set counting in manual mode.
//
// All methods must be called on the scheduler's execution thread. The engine
// keeps at most one pending wake-up at any time.
type Engine struct {
	logger *log.Logger
	alarm  *timer.Alarm
	cfg    EngineConfig

	state    RunState
	started  bool
	finished bool
	stopped  bool
}

func NewEngine(sched timer.Scheduler, logger *log.Logger, cfg EngineConfig) *Engine {
	if sched == nil {
		panic("Engine: scheduler cannot be nil")
	}
	if logger == nil {
		panic("Engine: logger cannot be nil")
	}
	if cfg.Pattern == nil {
		cfg.Pattern = func() BreathingPattern { return DefaultBreathingPattern }
	}
	if cfg.Mode == "" {
		cfg.Mode = ModeTimed
	}
	if cfg.CountdownSeconds < 0 {
		cfg.CountdownSeconds = 0
	}

	return &Engine{
		logger: logger,
		alarm:  timer.NewAlarm(sched),
		cfg:    cfg,
		state:  InitialRunState(),
	}
}

func (e *Engine) State() RunState {
	return e.state
}

func (e *Engine) Exercise() ExerciseDescriptor {
	return e.cfg.Exercise
}

func (e *Engine) Mode() Mode {
	return e.cfg.Mode
}

// Started reports whether the run was activated since creation or the last Reset.
func (e *Engine) Started() bool {
	return e.started
}

// Finished reports whether the workout completed on this engine and no
// Reset happened since.
func (e *Engine) Finished() bool {
	return e.finished
}

// Start begins the countdown on an idle run. While counting down or active
// it pauses instead.
func (e *Engine) Start() {
	if !e.timedControl("Start") {
		return
	}
	if e.state.Running() {
		e.Pause()
		return
	}
	if e.cfg.CountdownSeconds == 0 {
		e.activate()
		return
	}

	e.logger.Printf("Engine: Countdown started for %s (%ds)", e.cfg.Exercise.Name, e.cfg.CountdownSeconds)
	e.setState(e.state.withCountdown(e.cfg.CountdownSeconds))
	e.alarm.Set(tick, e.onCountdownTick)
}

// Pause cancels any pending wake-up and clears the countdown. Phase, reps,
// set and rest time are kept.
func (e *Engine) Pause() {
	if e.stopped || !e.state.Running() {
		return
	}
	e.alarm.Cancel()
	s := e.state.withoutCountdown()
	s.Active = false
	e.logger.Printf("Engine: Paused in %s (set %d, reps %d)", s.Phase, s.CurrentSet+1, s.Reps)
	e.setState(s)
}

// Resume continues a paused run without a countdown. The current phase is
// re-armed for its full duration.
func (e *Engine) Resume() {
	if !e.timedControl("Resume") || e.state.Active {
		return
	}
	e.activate()
}

// TogglePlay pauses a running run, starts a fresh one with the countdown and
// resumes a paused one directly.
func (e *Engine) TogglePlay() {
	switch {
	case e.state.Running():
		e.Pause()
	case !e.started:
		e.Start()
	default:
		e.Resume()
	}
}

// Reset returns the run to its initial state and cancels any wake-up.
func (e *Engine) Reset() {
	if e.stopped {
		return
	}
	e.alarm.Cancel()
	e.started = false
	e.finished = false
	e.logger.Printf("Engine: Reset %s", e.cfg.Exercise.Name)
	e.setState(InitialRunState())
}

// SkipRest ends the current rest; the rest-expiry policy runs on the next
// tick. Outside rest it does nothing.
func (e *Engine) SkipRest() {
	if e.stopped || e.state.Phase != PhaseRest {
		return
	}
	s := e.state
	s.RestTimeLeft = 0
	e.setState(s)
	if s.Active {
		e.alarm.Set(0, e.onRestExpired)
	}
}

// CompleteSet records a completed set in manual mode.
func (e *Engine) CompleteSet() {
	if e.stopped || e.finished {
		return
	}
	if e.cfg.Mode != ModeManual {
		e.logger.Printf("Engine: CompleteSet ignored in %s mode", e.cfg.Mode)
		return
	}

	out := Decide(TriggerSetCompleted, e.state, e.cfg.Exercise, e.cfg.IsLast)
	e.logger.Printf("Engine: Set %d/%d completed for %s", out.State.CurrentSet, e.cfg.Exercise.DefaultSets, e.cfg.Exercise.Name)
	e.apply(out)
}

// Stop cancels any wake-up and detaches the hooks. A stopped engine ignores
// every control.
func (e *Engine) Stop() {
	e.alarm.Cancel()
	e.stopped = true
	e.cfg.Hooks = EngineHooks{}
}

// begin puts a fresh engine straight into the active state, skipping the
// countdown. Used when a timed session moves on to the next exercise.
func (e *Engine) begin() {
	if e.cfg.Mode != ModeTimed {
		return
	}
	e.activate()
}

func (e *Engine) timedControl(name string) bool {
	if e.stopped {
		return false
	}
	if e.cfg.Mode != ModeTimed {
		e.logger.Printf("Engine: %s ignored in %s mode", name, e.cfg.Mode)
		return false
	}
	if e.finished {
		e.logger.Printf("Engine: %s ignored, workout finished", name)
		return false
	}
	return true
}

func (e *Engine) activate() {
	s := e.state.withoutCountdown()
	s.Active = true
	e.started = true
	e.logger.Printf("Engine: Running %s in %s", e.cfg.Exercise.Name, s.Phase)
	e.setState(s)
	e.arm()
}

// arm schedules the wake-up for the current phase.
func (e *Engine) arm() {
	if e.state.Phase == PhaseRest {
		if e.state.RestTimeLeft > 0 {
			e.alarm.Set(tick, e.onRestTick)
		} else {
			e.alarm.Set(0, e.onRestExpired)
		}
		return
	}
	e.alarm.Set(e.phaseDuration(e.state.Phase), e.onPhaseElapsed)
}

func (e *Engine) phaseDuration(phase Phase) time.Duration {
	d, err := e.cfg.Pattern().Duration(phase)
	if err != nil {
		e.logger.Printf("Engine: %v, using 0", err)
	}
	return d
}

func (e *Engine) onCountdownTick() {
	if e.state.Countdown == nil {
		return
	}
	left := *e.state.Countdown - 1
	if left <= 0 {
		e.activate()
		return
	}
	e.setState(e.state.withCountdown(left))
	e.alarm.Set(tick, e.onCountdownTick)
}

func (e *Engine) onPhaseElapsed() {
	s := e.state
	if s.Phase != PhaseExhale {
		s.Phase = s.Phase.next()
		e.setState(s)
		e.arm()
		return
	}

	s.Reps++
	if s.Reps < e.targetReps() {
		s.Phase = PhaseHoldOut
		e.setState(s)
		e.arm()
		return
	}

	e.apply(Decide(TriggerRepsDone, s, e.cfg.Exercise, e.cfg.IsLast))
}

func (e *Engine) onRestTick() {
	s := e.state
	if s.RestTimeLeft > 0 {
		s.RestTimeLeft--
	}
	e.setState(s)
	if s.RestTimeLeft > 0 {
		e.alarm.Set(tick, e.onRestTick)
		return
	}
	e.onRestExpired()
}

func (e *Engine) onRestExpired() {
	e.apply(Decide(TriggerRestExpired, e.state, e.cfg.Exercise, e.cfg.IsLast))
}

func (e *Engine) apply(out Outcome) {
	switch out.Decision {
	case DecisionRest:
		s := out.State
		if s.RestTimeLeft < 0 {
			e.logger.Printf("Engine: %v, using 0", &InvalidDurationError{Field: "rest", Value: float64(s.RestTimeLeft)})
			s.RestTimeLeft = 0
		}
		e.logger.Printf("Engine: Set %d of %s complete, resting %ds", s.CurrentSet+1, e.cfg.Exercise.Name, s.RestTimeLeft)
		e.setState(s)
		e.arm()

	case DecisionNextSet:
		e.setState(out.State)
		if e.cfg.Mode == ModeTimed && out.State.Active {
			e.arm()
		}

	case DecisionNextExercise:
		e.alarm.Cancel()
		e.setState(out.State)
		e.logger.Printf("Engine: Exercise %s complete", e.cfg.Exercise.Name)
		if hook := e.cfg.Hooks.OnExerciseComplete; hook != nil {
			hook()
		}

	case DecisionFinish:
		e.alarm.Cancel()
		e.finished = true
		e.setState(out.State)
		e.logger.Printf("Engine: Workout complete on %s", e.cfg.Exercise.Name)
		if hook := e.cfg.Hooks.OnWorkoutComplete; hook != nil {
			hook()
		}
	}
}

func (e *Engine) targetReps() int {
	if e.cfg.Exercise.DefaultReps < 1 {
		return 1
	}
	return e.cfg.Exercise.DefaultReps
}

func (e *Engine) setState(s RunState) {
	e.state = s
	if e.stopped {
		return
	}
	if hook := e.cfg.Hooks.OnChange; hook != nil {
		hook(s)
	}
}
