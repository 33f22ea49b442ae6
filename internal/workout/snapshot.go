package workout

import "time"

// ProgramRef is the plan a snapshot was taken from.
type ProgramRef struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	Description string               `json:"description,omitempty"`
	Exercises   []ExerciseDescriptor `json:"exercises"`
}

// Snapshot is the persisted shape of the application state, enough to come
// back to the same exercise after a restart.
type Snapshot struct {
	SelectedPrograms     []string          `json:"selectedPrograms"`
	IsCustomizing        bool              `json:"isCustomizing"`
	ActiveProgram        *ProgramRef       `json:"activeProgram,omitempty"`
	ActiveMode           Mode              `json:"activeMode,omitempty"`
	CurrentExerciseIndex int               `json:"currentExerciseIndex"`
	BreathingPattern     *BreathingPattern `json:"breathingPattern,omitempty"`
	Location             string            `json:"location,omitempty"`
	SelectedEquipment    []Equipment       `json:"selectedEquipment,omitempty"`
	SessionID            string            `json:"sessionId,omitempty"`
	SavedAt              time.Time         `json:"savedAt"`
}

// HasActiveSession reports whether the snapshot carries a plan to resume.
func (s Snapshot) HasActiveSession() bool {
	return s.ActiveProgram != nil && len(s.ActiveProgram.Exercises) > 0
}

// Capture copies the session's part of the state onto base.
func (s *Session) Capture(base Snapshot) Snapshot {
	out := base
	pattern := s.pattern
	out.BreathingPattern = &pattern
	if !s.Started() {
		out.ActiveProgram = nil
		out.ActiveMode = ""
		out.CurrentExerciseIndex = 0
		out.SessionID = ""
		return out
	}

	ref := ProgramRef{}
	if base.ActiveProgram != nil {
		ref = *base.ActiveProgram
	}
	ref.Exercises = s.Plan()
	out.ActiveProgram = &ref
	out.ActiveMode = s.mode
	out.CurrentExerciseIndex = s.index
	out.SessionID = s.id
	return out
}

// RestoreSession starts a session from a snapshot at its saved exercise. An
// out-of-range index is clamped into the plan. The run starts idle.
func RestoreSession(snap Snapshot, opts SessionOptions) (*Session, error) {
	if !snap.HasActiveSession() {
		return nil, &InvalidPlanError{Reason: "snapshot has no active program"}
	}
	if snap.BreathingPattern != nil {
		opts.Pattern = *snap.BreathingPattern
	}
	mode := ModeTimed
	if snap.ActiveMode != "" {
		parsed, err := ParseMode(string(snap.ActiveMode))
		if err != nil {
			return nil, &InvalidPlanError{Reason: err.Error()}
		}
		mode = parsed
	}

	s := NewSession(opts)
	if err := s.Start(snap.ActiveProgram.Exercises, mode); err != nil {
		return nil, err
	}
	if snap.SessionID != "" {
		s.id = snap.SessionID
	}

	index := snap.CurrentExerciseIndex
	if index < 0 {
		index = 0
	}
	if last := len(s.plan) - 1; index > last {
		index = last
	}
	if index != 0 {
		s.switchTo(index, false)
	}
	s.logger.Printf("Session: Restored %s at exercise %d/%d", s.id, index+1, len(s.plan))
	return s, nil
}
