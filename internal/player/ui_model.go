package player

import (
	"context"
	"log"
	"sync"

	"github.com/lowaak/flowlift/internal/catalog"
	"github.com/lowaak/flowlift/internal/events"
	"github.com/lowaak/flowlift/internal/go_func_utils"
	"github.com/lowaak/flowlift/internal/workout"
)

type UIModel struct {
	logEvent              *events.ChannelEvent[string]
	closeApplicationEvent *events.ChannelEvent[struct{}]
	uiStateEvent          *events.ChannelEvent[UIState]
	uiState               UIState
	selectionEvent        *events.ChannelEvent[SelectionState]
	selectionState        SelectionState
	customizerEvent       *events.ChannelEvent[CustomizerState]
	customizerState       CustomizerState
	patternEvent          *events.ChannelEvent[workout.BreathingPattern]
	pattern               workout.BreathingPattern
	playerStateEvent      *events.ChannelEvent[PlayerState]
	playerState           PlayerState
	logLines              []string
	logMu                 sync.RWMutex
	mu                    sync.RWMutex
	ctx                   context.Context
	cancel                context.CancelFunc
	wg                    sync.WaitGroup
	logger                *log.Logger
}

const maxLogLines = 1000

func NewUIModel(programs []catalog.Program, pattern workout.BreathingPattern, logger *log.Logger, uiLogChan <-chan string) *UIModel {
	if logger == nil {
		panic("UIModel: logger cannot be nil")
	}
	if uiLogChan == nil {
		panic("UIModel: uiLogChan cannot be nil")
	}
	ctx, cancel := context.WithCancel(context.Background())
	model := &UIModel{
		logEvent:              events.NewChannelEvent[string](false),
		closeApplicationEvent: events.NewChannelEvent[struct{}](true),
		uiStateEvent:          events.NewChannelEvent[UIState](true),
		uiState:               UIState{Screen: ScreenProgramSelection},
		selectionEvent:        events.NewChannelEvent[SelectionState](true),
		selectionState:        SelectionState{Programs: append([]catalog.Program(nil), programs...)},
		customizerEvent:       events.NewChannelEvent[CustomizerState](true),
		customizerState:       CustomizerState{Location: catalog.LocationHome, Mode: workout.ModeTimed},
		patternEvent:          events.NewChannelEvent[workout.BreathingPattern](true),
		pattern:               pattern,
		playerStateEvent:      events.NewChannelEvent[PlayerState](true),
		playerState:           PlayerState{Status: PlayerStatusIdle, Pattern: pattern},
		logLines:              make([]string, 0, maxLogLines),
		ctx:                   ctx,
		cancel:                cancel,
		logger:                logger,
	}

	// Read from the UI log channel and populate logLines
	model.wg.Add(1)
	go_func_utils.SafeGo(model.logger, "UIModel log reader", func() { model.readFromLogChannel(ctx, uiLogChan) })

	return model
}

// Shutdown stops all goroutines and waits for them to finish
func (m *UIModel) Shutdown() {
	m.logger.Println("UIModel: Shutting down")
	m.cancel()
	m.wg.Wait()
	m.logger.Println("UIModel: Shutdown complete")
}

// ListenToLog registers a channel to receive log messages
// Returns a deregistration function that can be called to remove the listener
func (m *UIModel) ListenToLog(ch chan<- string) func() {
	return m.logEvent.Listen(ch)
}

// ListenToCloseApplication registers a channel to receive close application signals
func (m *UIModel) ListenToCloseApplication(ch chan<- struct{}) func() {
	return m.closeApplicationEvent.Listen(ch)
}

// RequestCloseApplication signals that the application should close
func (m *UIModel) RequestCloseApplication() {
	m.closeApplicationEvent.Notify(struct{}{})
}

// ListenToUIState registers a channel to receive UI state changes
func (m *UIModel) ListenToUIState(ch chan<- UIState) func() {
	return m.uiStateEvent.Listen(ch)
}

func (m *UIModel) GetUIState() UIState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.uiState
}

// SetScreen sets the current screen and notifies listeners
func (m *UIModel) SetScreen(screen Screen) {
	m.mu.Lock()
	m.uiState.Screen = screen
	state := m.uiState
	m.mu.Unlock()

	m.uiStateEvent.Notify(state)
}

// ListenToSelection registers a channel to receive program selection changes
func (m *UIModel) ListenToSelection(ch chan<- SelectionState) func() {
	return m.selectionEvent.Listen(ch)
}

func (m *UIModel) GetSelectionState() SelectionState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return copySelection(m.selectionState)
}

// SetSelectedPrograms replaces the selected program ids
func (m *UIModel) SetSelectedPrograms(ids []string) {
	m.mu.Lock()
	m.selectionState.Selected = append([]string(nil), ids...)
	state := copySelection(m.selectionState)
	m.mu.Unlock()

	m.selectionEvent.Notify(state)
}

// ListenToCustomizer registers a channel to receive customizer changes
func (m *UIModel) ListenToCustomizer(ch chan<- CustomizerState) func() {
	return m.customizerEvent.Listen(ch)
}

func (m *UIModel) GetCustomizerState() CustomizerState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.customizerState
}

func (m *UIModel) SetCustomizerState(state CustomizerState) {
	m.mu.Lock()
	m.customizerState = state
	m.mu.Unlock()

	m.customizerEvent.Notify(state)
}

// ListenToBreathingPattern registers a channel to receive breathing pattern changes
func (m *UIModel) ListenToBreathingPattern(ch chan<- workout.BreathingPattern) func() {
	return m.patternEvent.Listen(ch)
}

func (m *UIModel) GetBreathingPattern() workout.BreathingPattern {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.pattern
}

func (m *UIModel) SetBreathingPattern(p workout.BreathingPattern) {
	m.mu.Lock()
	m.pattern = p
	m.mu.Unlock()

	m.patternEvent.Notify(p)
}

// ListenToPlayerState registers a channel to receive player state changes
func (m *UIModel) ListenToPlayerState(ch chan<- PlayerState) func() {
	return m.playerStateEvent.Listen(ch)
}

func (m *UIModel) GetPlayerState() PlayerState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.playerState
}

func (m *UIModel) SetPlayerState(state PlayerState) {
	m.mu.Lock()
	m.playerState = state
	stateCopy := m.playerState
	m.mu.Unlock()

	m.playerStateEvent.Notify(stateCopy)
}

// BaseSnapshot returns the screen-level part of the persisted state. The
// workout manager fills in the session part.
func (m *UIModel) BaseSnapshot() workout.Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return workout.Snapshot{
		SelectedPrograms:  append([]string(nil), m.selectionState.Selected...),
		IsCustomizing:     m.uiState.Screen == ScreenCustomizer,
		Location:          string(m.customizerState.Location),
		SelectedEquipment: append([]workout.Equipment(nil), m.customizerState.Equipment...),
	}
}

// readFromLogChannel reads log lines from the channel and populates logLines
func (m *UIModel) readFromLogChannel(ctx context.Context, logChan <-chan string) {
	defer m.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case line, ok := <-logChan:
			if !ok {
				return
			}

			m.logMu.Lock()
			m.logLines = append(m.logLines, line)
			if len(m.logLines) > maxLogLines {
				m.logLines = m.logLines[len(m.logLines)-maxLogLines:]
			}
			m.logMu.Unlock()

			m.logEvent.Notify(line)
		}
	}
}

// GetLogTail returns the last n log lines
func (m *UIModel) GetLogTail(n int) []string {
	m.logMu.RLock()
	defer m.logMu.RUnlock()

	if n <= 0 {
		return nil
	}
	if n > len(m.logLines) {
		n = len(m.logLines)
	}
	result := make([]string, n)
	copy(result, m.logLines[len(m.logLines)-n:])
	return result
}

func copySelection(s SelectionState) SelectionState {
	return SelectionState{
		Programs: append([]catalog.Program(nil), s.Programs...),
		Selected: append([]string(nil), s.Selected...),
	}
}
