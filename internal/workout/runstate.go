package workout

// RunState is the observable state of one exercise run. It is a value:
// the engine replaces it wholesale on every change, and the Countdown
// pointer is never written through once published.
type RunState struct {
	Phase        Phase `json:"phase"`
	Reps         int   `json:"reps"`         // completed repetitions in the current set
	CurrentSet   int   `json:"currentSet"`   // zero-based in timed mode, completed sets in manual mode
	RestTimeLeft int   `json:"restTimeLeft"` // whole seconds
	Countdown    *int  `json:"countdown,omitempty"`
	Active       bool  `json:"isActive"`
}

// InitialRunState is the state of a fresh run.
func InitialRunState() RunState {
	return RunState{Phase: PhaseInhale}
}

// CountingDown reports whether a pre-start countdown is showing.
func (s RunState) CountingDown() bool {
	return s.Countdown != nil
}

// Running reports whether the run is counting down or active.
func (s RunState) Running() bool {
	return s.Active || s.Countdown != nil
}

func (s RunState) withCountdown(n int) RunState {
	s.Countdown = &n
	return s
}

func (s RunState) withoutCountdown() RunState {
	s.Countdown = nil
	return s
}
