package workout

import "fmt"

// Trigger is the event the completion policy is evaluated for.
type Trigger int

const (
	// TriggerRepsDone fires in timed mode when the last repetition of a set ends.
	TriggerRepsDone Trigger = iota
	// TriggerRestExpired fires in timed mode when the rest countdown reaches zero.
	TriggerRestExpired
	// TriggerSetCompleted fires in manual mode when the user completes a set.
	TriggerSetCompleted
)

func (t Trigger) String() string {
	switch t {
	case TriggerRepsDone:
		return "reps-done"
	case TriggerRestExpired:
		return "rest-expired"
	case TriggerSetCompleted:
		return "set-completed"
	default:
		return fmt.Sprintf("trigger(%d)", int(t))
	}
}

// Decision is what a run does next.
type Decision int

const (
	// DecisionRest enters the rest phase.
	DecisionRest Decision = iota
	// DecisionNextSet starts the next set of the same exercise.
	DecisionNextSet
	// DecisionNextExercise hands control to the session to advance the plan.
	DecisionNextExercise
	// DecisionFinish completes the workout.
	DecisionFinish
)

func (d Decision) String() string {
	switch d {
	case DecisionRest:
		return "rest"
	case DecisionNextSet:
		return "next-set"
	case DecisionNextExercise:
		return "next-exercise"
	case DecisionFinish:
		return "finish"
	default:
		return fmt.Sprintf("decision(%d)", int(d))
	}
}

// Outcome pairs a decision with the run state it produces.
type Outcome struct {
	Decision Decision
	State    RunState
}

// Decide is the single completion policy shared by both modes. It is pure:
// it never touches timers or hooks, the engine applies the outcome.
//
// In timed mode a set ends in rest unless it is the final set of the final
// exercise. Rest is followed by the next set, or otherwise by the next
// exercise, or otherwise by the end of the workout. In manual mode each
// completed set is counted, and reaching the target moves on to the next
// exercise or finishes the workout.
func Decide(trigger Trigger, run RunState, ex ExerciseDescriptor, isLast bool) Outcome {
	sets := ex.DefaultSets
	next := run

	switch trigger {
	case TriggerRepsDone:
		if run.CurrentSet < sets-1 || !isLast {
			next.Phase = PhaseRest
			next.RestTimeLeft = ex.DefaultRest
			return Outcome{Decision: DecisionRest, State: next}
		}
		return Outcome{Decision: DecisionFinish, State: finished(next)}

	case TriggerRestExpired:
		next.RestTimeLeft = 0
		if run.CurrentSet < sets-1 {
			next.CurrentSet++
			next.Reps = 0
			next.Phase = PhaseInhale
			return Outcome{Decision: DecisionNextSet, State: next}
		}
		if !isLast {
			return Outcome{Decision: DecisionNextExercise, State: next}
		}
		return Outcome{Decision: DecisionFinish, State: finished(next)}

	case TriggerSetCompleted:
		if next.CurrentSet < sets {
			next.CurrentSet++
		}
		if next.CurrentSet < sets {
			return Outcome{Decision: DecisionNextSet, State: next}
		}
		if !isLast {
			return Outcome{Decision: DecisionNextExercise, State: next}
		}
		return Outcome{Decision: DecisionFinish, State: finished(next)}
	}

	panic(fmt.Sprintf("workout: unknown trigger %v", trigger))
}

func finished(s RunState) RunState {
	s.Active = false
	s.Countdown = nil
	return s
}
