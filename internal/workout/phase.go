package workout

// Phase is the breathing/rest state of a run.
type Phase string

const (
	PhaseInhale  Phase = "inhale"
	PhaseHoldIn  Phase = "holdIn"
	PhaseExhale  Phase = "exhale"
	PhaseHoldOut Phase = "holdOut"
	PhaseRest    Phase = "rest"
)

// BreathingPhases lists the breathing cycle in order.
var BreathingPhases = []Phase{PhaseInhale, PhaseHoldIn, PhaseExhale, PhaseHoldOut}

func (p Phase) String() string {
	return string(p)
}

// DisplayName is the instruction shown to the user for the phase.
func (p Phase) DisplayName() string {
	switch p {
	case PhaseInhale:
		return "Inhale"
	case PhaseHoldIn:
		return "Hold (full)"
	case PhaseExhale:
		return "Exhale"
	case PhaseHoldOut:
		return "Hold (empty)"
	case PhaseRest:
		return "Rest"
	default:
		return string(p)
	}
}

// IsBreathing reports whether p is one of the four breathing phases.
func (p Phase) IsBreathing() bool {
	switch p {
	case PhaseInhale, PhaseHoldIn, PhaseExhale, PhaseHoldOut:
		return true
	}
	return false
}

// next returns the breathing phase that follows p in the cycle. Exhale is
// special-cased by the engine because it completes a repetition.
func (p Phase) next() Phase {
	switch p {
	case PhaseInhale:
		return PhaseHoldIn
	case PhaseHoldIn:
		return PhaseExhale
	case PhaseExhale:
		return PhaseHoldOut
	default:
		return PhaseInhale
	}
}
