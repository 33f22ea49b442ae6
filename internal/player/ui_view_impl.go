package player

import "github.com/lowaak/flowlift/internal/workout"

// UIViewImpl defines the interface for framework-specific UI implementations
type UIViewImpl interface {
	// Initialize is called after construction to set up framework-specific widgets
	// controller is used to handle UI events
	Initialize(controller *UIController)

	// SetupKeyboardHandlers sets up keyboard event handlers
	// controller is used to handle keyboard events
	SetupKeyboardHandlers(controller *UIController)

	// Run starts the UI framework and blocks until it exits
	Run() error

	// Stop stops the UI framework
	Stop()

	// Draw refreshes/redraws the UI
	Draw() error

	// --- Screen Management ---

	// SetScreen switches the UI to the specified screen
	SetScreen(screen Screen)

	// GetCurrentScreen returns the currently shown screen
	GetCurrentScreen() Screen

	// --- Log View (shared across screens) ---

	// GetLogViewHeight returns the visible height of the log view
	GetLogViewHeight() int

	// ClearLogView clears the log view
	ClearLogView()

	// WriteLogLine writes a line to the log view
	WriteLogLine(line string) error

	// --- Program Selection Screen ---

	UpdateSelection(state SelectionState)

	// --- Customizer Screen ---

	UpdateCustomizer(state CustomizerState)

	// UpdateBreathingPattern updates the breathing settings shown on the customizer and player
	UpdateBreathingPattern(pattern workout.BreathingPattern)

	// --- Player Screen ---

	UpdatePlayerState(state PlayerState)
}
