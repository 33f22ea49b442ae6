package workout

import "fmt"

// Equipment is a tag naming what an exercise needs.
type Equipment string

const (
	EquipmentBodyweight Equipment = "bodyweight"
	EquipmentDumbbell   Equipment = "dumbbell"
	EquipmentBarbell    Equipment = "barbell"
	EquipmentMachine    Equipment = "machine"
	EquipmentCable      Equipment = "cable"
	EquipmentBand       Equipment = "band"
	EquipmentBench      Equipment = "bench"
	EquipmentNone       Equipment = "none"
)

// AllEquipment lists every known equipment tag.
var AllEquipment = []Equipment{
	EquipmentBodyweight,
	EquipmentDumbbell,
	EquipmentBarbell,
	EquipmentMachine,
	EquipmentCable,
	EquipmentBand,
	EquipmentBench,
	EquipmentNone,
}

// ExerciseDescriptor describes one exercise of a plan and its targets.
type ExerciseDescriptor struct {
	ID          string      `json:"id" yaml:"id"`
	Name        string      `json:"name" yaml:"name"`
	Description string      `json:"description" yaml:"description"`
	Equipment   []Equipment `json:"equipment" yaml:"equipment"`
	DefaultSets int         `json:"defaultSets" yaml:"sets"`
	DefaultReps int         `json:"defaultReps" yaml:"reps"`
	DefaultRest int         `json:"defaultRest" yaml:"rest"` // seconds
}

// Validate checks the set and repetition targets. A negative rest is not an
// error here; the engine treats it as no rest.
func (e ExerciseDescriptor) Validate() error {
	if e.DefaultSets < 1 {
		return fmt.Errorf("exercise %q: sets must be at least 1, got %d", e.ID, e.DefaultSets)
	}
	if e.DefaultReps < 1 {
		return fmt.Errorf("exercise %q: reps must be at least 1, got %d", e.ID, e.DefaultReps)
	}
	return nil
}

// HasEquipment reports whether the exercise carries any of the given tags.
func (e ExerciseDescriptor) HasEquipment(tags map[Equipment]bool) bool {
	for _, eq := range e.Equipment {
		if tags[eq] {
			return true
		}
	}
	return false
}
