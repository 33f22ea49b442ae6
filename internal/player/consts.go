package player

import (
	"time"

	"github.com/lowaak/flowlift/internal/catalog"
	"github.com/lowaak/flowlift/internal/workout"
)

// Screen represents the current UI screen
type Screen int

const (
	ScreenProgramSelection Screen = iota // Pick one or more programs
	ScreenCustomizer                     // Pick and tune exercises, location, mode
	ScreenPlayer                         // Run the workout
)

// ScreenInfo contains display information for a screen
type ScreenInfo struct {
	Screen      Screen
	DisplayName string
}

// AllScreens defines all screens in navigation order
var AllScreens = []ScreenInfo{
	{Screen: ScreenProgramSelection, DisplayName: "Programs"},
	{Screen: ScreenCustomizer, DisplayName: "Customize"},
	{Screen: ScreenPlayer, DisplayName: "Workout"},
}

// GetScreenInfo returns the info for a given screen
func GetScreenInfo(screen Screen) (ScreenInfo, bool) {
	for _, info := range AllScreens {
		if info.Screen == screen {
			return info, true
		}
	}
	return ScreenInfo{}, false
}

// UIState holds the current state of the UI that views need to render
type UIState struct {
	Screen Screen
}

// PlayerStatus represents the current status of the workout player
type PlayerStatus int

const (
	PlayerStatusIdle         PlayerStatus = iota // No session
	PlayerStatusReady                            // Session loaded, run not started
	PlayerStatusCountingDown                     // Get-ready countdown showing
	PlayerStatusRunning                          // Phases advancing
	PlayerStatusPaused                           // Run halted mid-way
	PlayerStatusManual                           // Manual mode, waiting for completed sets
	PlayerStatusFinished                         // Workout complete
)

func (s PlayerStatus) DisplayName() string {
	switch s {
	case PlayerStatusIdle:
		return "Idle"
	case PlayerStatusReady:
		return "Ready"
	case PlayerStatusCountingDown:
		return "Get ready"
	case PlayerStatusRunning:
		return "Running"
	case PlayerStatusPaused:
		return "Paused"
	case PlayerStatusManual:
		return "Manual"
	case PlayerStatusFinished:
		return "Finished"
	default:
		return "Unknown"
	}
}

// PlayerState holds what the player screen renders
type PlayerState struct {
	Status        PlayerStatus
	Program       *workout.ProgramRef // nil when no session
	View          workout.SessionView
	Pattern       workout.BreathingPattern
	PhaseDuration time.Duration // length of the current breathing phase
	NextExercise  *workout.ExerciseDescriptor
	Remaining     time.Duration // estimate for the exercises after the current one
}

// SelectionState holds the program selection screen
type SelectionState struct {
	Programs []catalog.Program
	Selected []string // program ids in catalog order
}

// IsSelected reports whether the program id is selected
func (s SelectionState) IsSelected(id string) bool {
	for _, sel := range s.Selected {
		if sel == id {
			return true
		}
	}
	return false
}

// CustomizerEntry is one row of the customizer exercise list
type CustomizerEntry struct {
	catalog.Entry
	SelectionIndex int // -1 when not selected
}

// CustomizerState holds the customizer screen
type CustomizerState struct {
	PlanName      string
	Location      catalog.Location
	Equipment     []workout.Equipment
	Query         string
	Mode          workout.Mode
	Entries       []CustomizerEntry
	SelectedCount int
	Estimate      time.Duration
}

// HasEquipment reports whether the equipment filter contains eq
func (s CustomizerState) HasEquipment(eq workout.Equipment) bool {
	for _, e := range s.Equipment {
		if e == eq {
			return true
		}
	}
	return false
}

// EquipmentInfo describes an equipment filter toggle
type EquipmentInfo struct {
	Equipment   workout.Equipment
	DisplayName string
	KeyBinding  rune
}

// AllEquipmentToggles defines the equipment filter toggles in display order
var AllEquipmentToggles = []EquipmentInfo{
	{Equipment: workout.EquipmentBodyweight, DisplayName: "Bodyweight", KeyBinding: '1'},
	{Equipment: workout.EquipmentDumbbell, DisplayName: "Dumbbell", KeyBinding: '2'},
	{Equipment: workout.EquipmentBarbell, DisplayName: "Barbell", KeyBinding: '3'},
	{Equipment: workout.EquipmentBench, DisplayName: "Bench", KeyBinding: '4'},
	{Equipment: workout.EquipmentMachine, DisplayName: "Machine", KeyBinding: '5'},
	{Equipment: workout.EquipmentCable, DisplayName: "Cable", KeyBinding: '6'},
	{Equipment: workout.EquipmentBand, DisplayName: "Band", KeyBinding: '7'},
	{Equipment: workout.EquipmentNone, DisplayName: "None", KeyBinding: '8'},
}

// GetEquipmentByKey returns the equipment for a given key binding
func GetEquipmentByKey(key rune) (workout.Equipment, bool) {
	for _, info := range AllEquipmentToggles {
		if info.KeyBinding == key {
			return info.Equipment, true
		}
	}
	return "", false
}

// BreathingKey binds a pair of keys to a breathing phase adjustment
type BreathingKey struct {
	Phase    workout.Phase
	Increase rune
	Decrease rune
}

// AllBreathingKeys defines the breathing pattern edit keys
var AllBreathingKeys = []BreathingKey{
	{Phase: workout.PhaseInhale, Increase: 'i', Decrease: 'I'},
	{Phase: workout.PhaseHoldIn, Increase: 'h', Decrease: 'H'},
	{Phase: workout.PhaseExhale, Increase: 'x', Decrease: 'X'},
	{Phase: workout.PhaseHoldOut, Increase: 'o', Decrease: 'O'},
}

// GetBreathingAdjustByKey returns the phase and step direction for a key
func GetBreathingAdjustByKey(key rune) (workout.Phase, int, bool) {
	for _, b := range AllBreathingKeys {
		switch key {
		case b.Increase:
			return b.Phase, 1, true
		case b.Decrease:
			return b.Phase, -1, true
		}
	}
	return "", 0, false
}
