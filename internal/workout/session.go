package workout

import (
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/lowaak/flowlift/internal/events"
	"github.com/lowaak/flowlift/internal/timer"
)

// SessionView is what observers of a session see after every change.
type SessionView struct {
	SessionID string
	Exercise  ExerciseDescriptor
	Index     int
	Total     int
	IsFirst   bool
	IsLast    bool
	Mode      Mode
	Run       RunState
	Finished  bool
}

// SessionOptions configure a Session.
type SessionOptions struct {
	Scheduler        timer.Scheduler
	Logger           *log.Logger
	Pattern          BreathingPattern
	CountdownSeconds int
}

// Session walks an ordered plan of exercises, one Engine per exercise.
// Like the engine, it must only be used on its scheduler's thread.
type Session struct {
	logger    *log.Logger
	sched     timer.Scheduler
	countdown int

	id       string
	plan     []ExerciseDescriptor
	index    int
	mode     Mode
	pattern  BreathingPattern
	engine   *Engine
	finished bool

	onNext   *events.CallbackEvent[SessionView]
	onPrev   *events.CallbackEvent[SessionView]
	onFinish *events.CallbackEvent[SessionView]
	onChange *events.CallbackEvent[SessionView]
}

func NewSession(opts SessionOptions) *Session {
	if opts.Scheduler == nil {
		panic("Session: scheduler cannot be nil")
	}
	if opts.Logger == nil {
		panic("Session: logger cannot be nil")
	}

	return &Session{
		logger:    opts.Logger,
		sched:     opts.Scheduler,
		countdown: opts.CountdownSeconds,
		pattern:   opts.Pattern,
		onNext:    events.NewCallbackEvent[SessionView](false),
		onPrev:    events.NewCallbackEvent[SessionView](false),
		onFinish:  events.NewCallbackEvent[SessionView](false),
		onChange:  events.NewCallbackEvent[SessionView](true),
	}
}

// Start begins a new session over plan at its first exercise. Any previous
// session on this controller is torn down first. The first exercise starts
// idle; in timed mode the caller starts it through the engine.
func (s *Session) Start(plan []ExerciseDescriptor, mode Mode) error {
	if len(plan) == 0 {
		return &InvalidPlanError{Reason: "session start requested with an empty plan"}
	}
	for i, ex := range plan {
		if err := ex.Validate(); err != nil {
			return &InvalidPlanError{Reason: fmt.Sprintf("exercise %d: %v", i, err)}
		}
	}
	if mode != ModeTimed && mode != ModeManual {
		return &InvalidPlanError{Reason: fmt.Sprintf("unknown mode %q", mode)}
	}

	s.teardown()
	s.id = uuid.NewString()
	s.plan = append([]ExerciseDescriptor(nil), plan...)
	s.mode = mode
	s.finished = false

	s.logger.Printf("Session: Started %s with %d exercises in %s mode", s.id, len(plan), mode)
	s.switchTo(0, false)
	return nil
}

// Next moves to the following exercise. In timed mode an active run stays
// active on the new exercise. It does nothing on the last exercise.
func (s *Session) Next() {
	if !s.Started() || s.finished || s.IsLast() {
		return
	}
	keepActive := s.mode == ModeTimed && s.engine.State().Active
	s.switchTo(s.index+1, keepActive)
	s.onNext.Notify(s.View())
}

// Prev moves to the previous exercise, idle. It does nothing on the first.
func (s *Session) Prev() {
	if !s.Started() || s.finished || s.IsFirst() {
		return
	}
	s.switchTo(s.index-1, false)
	s.onPrev.Notify(s.View())
}

// Finish ends the session. The finish listeners run once per session no
// matter how often Finish is called or how the workout completed.
func (s *Session) Finish() {
	if !s.Started() || s.finished {
		return
	}
	s.finished = true
	s.engine.Pause()
	s.logger.Printf("Session: Finished %s", s.id)
	view := s.View()
	s.onChange.Notify(view)
	s.onFinish.Notify(view)
}

// Close tears the session down and cancels every pending wake-up.
func (s *Session) Close() {
	s.teardown()
}

// SetBreathingPattern replaces the pattern. Running engines read it on their
// next phase transition.
func (s *Session) SetBreathingPattern(p BreathingPattern) {
	if err := p.Validate(); err != nil {
		s.logger.Printf("Session: Breathing pattern out of range: %v", err)
	}
	s.pattern = p
}

func (s *Session) BreathingPattern() BreathingPattern {
	return s.pattern
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) Started() bool {
	return s.engine != nil
}

func (s *Session) Finished() bool {
	return s.finished
}

func (s *Session) Mode() Mode {
	return s.mode
}

func (s *Session) Plan() []ExerciseDescriptor {
	return append([]ExerciseDescriptor(nil), s.plan...)
}

func (s *Session) Index() int {
	return s.index
}

func (s *Session) IsFirst() bool {
	return s.index == 0
}

func (s *Session) IsLast() bool {
	return s.index == len(s.plan)-1
}

// Current returns the exercise at the current index.
func (s *Session) Current() (ExerciseDescriptor, bool) {
	if !s.Started() {
		return ExerciseDescriptor{}, false
	}
	return s.plan[s.index], true
}

// Engine returns the engine of the current exercise, nil before Start.
func (s *Session) Engine() *Engine {
	return s.engine
}

// Progress is the fraction of exercises before the current one.
func (s *Session) Progress() float64 {
	if len(s.plan) == 0 {
		return 0
	}
	return float64(s.index) / float64(len(s.plan))
}

func (s *Session) View() SessionView {
	v := SessionView{
		SessionID: s.id,
		Index:     s.index,
		Total:     len(s.plan),
		Mode:      s.mode,
		Finished:  s.finished,
	}
	if s.Started() {
		v.Exercise = s.plan[s.index]
		v.IsFirst = s.IsFirst()
		v.IsLast = s.IsLast()
		v.Run = s.engine.State()
	}
	return v
}

// OnNext registers a listener for Next.
func (s *Session) OnNext(fn func(SessionView)) func() {
	return s.onNext.Listen(fn)
}

// OnPrev registers a listener for Prev.
func (s *Session) OnPrev(fn func(SessionView)) func() {
	return s.onPrev.Listen(fn)
}

// OnFinish registers a listener for the end of the session.
func (s *Session) OnFinish(fn func(SessionView)) func() {
	return s.onFinish.Listen(fn)
}

// OnChange registers a listener for every observable change. The latest view
// is replayed to new listeners.
func (s *Session) OnChange(fn func(SessionView)) func() {
	return s.onChange.Listen(fn)
}

func (s *Session) switchTo(index int, active bool) {
	if s.engine != nil {
		s.engine.Stop()
	}
	s.index = index

	s.engine = NewEngine(s.sched, s.logger, EngineConfig{
		Exercise:         s.plan[index],
		Mode:             s.mode,
		IsLast:           index == len(s.plan)-1,
		CountdownSeconds: s.countdown,
		Pattern:          s.BreathingPattern,
		Hooks: EngineHooks{
			OnChange:           func(RunState) { s.onChange.Notify(s.View()) },
			OnExerciseComplete: s.Next,
			OnWorkoutComplete:  s.Finish,
		},
	})
	s.logger.Printf("Session: Exercise %d/%d: %s", index+1, len(s.plan), s.plan[index].Name)
	s.onChange.Notify(s.View())
	if active {
		s.engine.begin()
	}
}

func (s *Session) teardown() {
	if s.engine != nil {
		s.engine.Stop()
		s.engine = nil
	}
	s.plan = nil
	s.index = 0
}
