package player

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/lowaak/flowlift/internal/catalog"
	"github.com/lowaak/flowlift/internal/workout"
)

// Page names for tview.Pages
const (
	pageProgramSelection = "program_selection"
	pageCustomizer       = "customizer"
	pagePlayer           = "player"
)

const progressBarWidth = 30

// CursesUIViewImpl implements UIViewImpl using tview (curses-based terminal UI)
type CursesUIViewImpl struct {
	logger        *log.Logger
	app           *tview.Application
	model         *UIModel
	currentScreen Screen

	// Root container that holds all pages
	pages *tview.Pages

	// Shared components (visible on all screens)
	logView  *tview.TextView
	mainFlex *tview.Flex // Main layout: screen content on left, logs on right

	// Program selection screen components
	selectionFlex       *tview.Flex
	selectionTabWidgets []tview.Primitive
	programList         *tview.List
	programDetailsPanel *tview.TextView
	selection           SelectionState

	// Customizer screen components
	customizerFlex       *tview.Flex
	customizerTabWidgets []tview.Primitive
	customizerHeader     *tview.TextView
	searchField          *tview.InputField
	exerciseList         *tview.List
	customizer           CustomizerState

	// Player screen components
	playerFlex       *tview.Flex
	playerTabWidgets []tview.Primitive
	playerPanel      *tview.TextView
	breathingPanel   *tview.TextView
	pattern          workout.BreathingPattern
	playerState      PlayerState
}

func NewCursesUIView(logger *log.Logger, app *tview.Application, model *UIModel) *CursesUIViewImpl {
	return &CursesUIViewImpl{
		logger:        logger,
		app:           app,
		model:         model,
		currentScreen: ScreenProgramSelection,
		pattern:       model.GetBreathingPattern(),
	}
}

// Initialize sets up the tview widgets
func (ui *CursesUIViewImpl) Initialize(controller *UIController) {
	// Don't use SetChangedFunc with app.Draw() on the log view, it can hang
	// during shutdown. BaseUIView's listeners call Draw() after updating content.
	ui.logView = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(false)
	ui.logView.SetBorder(true).SetTitle(" Logs ")

	ui.pages = tview.NewPages()

	ui.initProgramSelectionScreen(controller)
	ui.initCustomizerScreen(controller)
	ui.initPlayerScreen()

	ui.pages.AddPage(pageProgramSelection, ui.selectionFlex, true, true)
	ui.pages.AddPage(pageCustomizer, ui.customizerFlex, true, false)
	ui.pages.AddPage(pagePlayer, ui.playerFlex, true, false)

	ui.mainFlex = tview.NewFlex().
		AddItem(ui.pages, 0, 2, true).
		AddItem(ui.logView, 0, 1, false)

	ui.setFocusForCurrentScreen()
}

// initProgramSelectionScreen sets up the program selection UI
func (ui *CursesUIViewImpl) initProgramSelectionScreen(controller *UIController) {
	instructionsText := tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter)
	instructionsText.SetText("[yellow]Enter[white] Select/Deselect  |  [yellow]C[white] Customize  |  [yellow]Esc[white] Quit")

	ui.programList = tview.NewList().
		ShowSecondaryText(true).
		SetSelectedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
			if index < len(ui.selection.Programs) {
				controller.ToggleProgram(ui.selection.Programs[index].ID)
			}
		}).
		SetChangedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
			ui.updateProgramDetailsDisplay(index)
		})
	ui.programList.SetBorder(true).SetTitle(" Programs ")

	ui.programDetailsPanel = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignLeft)
	ui.programDetailsPanel.SetBorder(true).SetTitle(" Program Details ")
	ui.updateProgramDetailsDisplay(-1)

	ui.selectionTabWidgets = append(ui.selectionTabWidgets, ui.programList)
	ui.selectionTabWidgets = append(ui.selectionTabWidgets, ui.programDetailsPanel)

	content := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(ui.programList, 0, 1, true).
		AddItem(ui.programDetailsPanel, 0, 1, false)

	ui.selectionFlex = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(instructionsText, 1, 0, false).
		AddItem(content, 0, 1, true)
}

// initCustomizerScreen sets up the plan customizer UI
func (ui *CursesUIViewImpl) initCustomizerScreen(controller *UIController) {
	instructionsText := tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter)
	instructionsText.SetText("[yellow]Enter[white] Add/Remove  |  [yellow]s/S[white] Sets  |  [yellow]r/R[white] Reps  |  [yellow]t/T[white] Rest  |  [yellow]/[white] Search\n" +
		"[yellow]L[white] Location  |  [yellow]1-8[white] Equipment  |  [yellow]M[white] Mode  |  [yellow]i h x o[white] Breathing  |  [yellow]G[white] Start  |  [yellow]Esc[white] Back")

	ui.customizerHeader = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignLeft)
	ui.customizerHeader.SetBorder(true).SetTitle(" Plan ")

	ui.searchField = tview.NewInputField().
		SetLabel(" Search: ").
		SetChangedFunc(func(text string) {
			controller.SetSearchQuery(text)
		})
	ui.searchField.SetDoneFunc(func(key tcell.Key) {
		ui.app.SetFocus(ui.exerciseList)
	})

	ui.exerciseList = tview.NewList().
		ShowSecondaryText(true).
		SetSelectedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
			if index < len(ui.customizer.Entries) {
				controller.ToggleExercise(ui.customizer.Entries[index].ID)
			}
		})
	ui.exerciseList.SetBorder(true).SetTitle(" Exercises ")

	ui.customizerTabWidgets = append(ui.customizerTabWidgets, ui.exerciseList)
	ui.customizerTabWidgets = append(ui.customizerTabWidgets, ui.searchField)

	ui.customizerFlex = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(instructionsText, 2, 0, false).
		AddItem(ui.customizerHeader, 8, 0, false).
		AddItem(ui.searchField, 1, 0, false).
		AddItem(ui.exerciseList, 0, 1, true)
}

// initPlayerScreen sets up the workout player UI
func (ui *CursesUIViewImpl) initPlayerScreen() {
	ui.playerPanel = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignLeft)
	ui.playerPanel.SetBorder(true).SetTitle(" Workout ")
	ui.updatePlayerDisplay()

	ui.breathingPanel = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignLeft)
	ui.breathingPanel.SetBorder(true).SetTitle(" Breathing ")
	ui.updateBreathingDisplay()

	ui.playerTabWidgets = append(ui.playerTabWidgets, ui.playerPanel)
	ui.playerTabWidgets = append(ui.playerTabWidgets, ui.breathingPanel)

	ui.playerFlex = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(ui.playerPanel, 0, 3, true).
		AddItem(ui.breathingPanel, 8, 0, false)
}

// UpdateSelection repopulates the program list, keeping the cursor in place
func (ui *CursesUIViewImpl) UpdateSelection(state SelectionState) {
	ui.selection = state
	current := ui.programList.GetCurrentItem()
	ui.programList.Clear()

	for _, p := range state.Programs {
		mark := " "
		if state.IsSelected(p.ID) {
			mark = "[green]✓[white]"
		}
		secondary := fmt.Sprintf("    %d exercises, ~%s", len(p.Exercises), formatDuration(catalog.EstimateDuration(p.Exercises, ui.pattern)))
		ui.programList.AddItem(fmt.Sprintf("%s %s", mark, p.Name), secondary, 0, nil)
	}
	if current >= 0 && current < len(state.Programs) {
		ui.programList.SetCurrentItem(current)
	}
	ui.updateProgramDetailsDisplay(ui.programList.GetCurrentItem())
}

// updateProgramDetailsDisplay formats and displays the program under the cursor
func (ui *CursesUIViewImpl) updateProgramDetailsDisplay(index int) {
	if ui.programDetailsPanel == nil {
		return
	}

	var text string
	if index < 0 || index >= len(ui.selection.Programs) {
		text = "\n\n  [yellow]Choose your programs[white]\n\n"
		text += "  Select one or more programs, then press C\n"
		text += "  to pick the exercises for today.\n"
	} else {
		p := ui.selection.Programs[index]
		text = "\n"
		text += fmt.Sprintf("  [yellow]%s[white]\n", p.Name)
		if p.Description != "" {
			text += fmt.Sprintf("  [gray]%s[white]\n", p.Description)
		}
		text += "\n  [gray]Exercises:[white]\n"
		for i, ex := range p.Exercises {
			text += fmt.Sprintf("    %d. %s [gray](%d x %d, rest %ds)[white]\n", i+1, ex.Name, ex.DefaultSets, ex.DefaultReps, ex.DefaultRest)
		}
		if n := len(ui.selection.Selected); n > 0 {
			text += fmt.Sprintf("\n  [green]%d program(s) selected - press C to continue[white]\n", n)
		}
	}
	ui.programDetailsPanel.SetText(text)
}

// UpdateCustomizer redraws the plan header and the exercise list
func (ui *CursesUIViewImpl) UpdateCustomizer(state CustomizerState) {
	var focusedID string
	if i := ui.exerciseList.GetCurrentItem(); i >= 0 && i < len(ui.customizer.Entries) {
		focusedID = ui.customizer.Entries[i].ID
	}
	ui.customizer = state

	ui.exerciseList.Clear()
	focused := 0
	for i, e := range state.Entries {
		mark := "   "
		if e.SelectionIndex >= 0 {
			mark = fmt.Sprintf("%2d.", e.SelectionIndex+1)
		}
		main := fmt.Sprintf("%s %s [gray](%s)[white]", mark, e.Name, e.ProgramName)
		secondary := fmt.Sprintf("      %d sets x %d reps, rest %ds  [gray]%s[white]", e.DefaultSets, e.DefaultReps, e.DefaultRest, formatEquipment(e.Equipment))
		ui.exerciseList.AddItem(main, secondary, 0, nil)
		if e.ID == focusedID {
			focused = i
		}
	}
	if len(state.Entries) > 0 {
		ui.exerciseList.SetCurrentItem(focused)
	}
	ui.updateCustomizerHeader()
}

func (ui *CursesUIViewImpl) updateCustomizerHeader() {
	if ui.customizerHeader == nil {
		return
	}
	state := ui.customizer

	var toggles []string
	for _, info := range AllEquipmentToggles {
		color := "gray"
		if state.HasEquipment(info.Equipment) {
			color = "green"
		}
		toggles = append(toggles, fmt.Sprintf("[yellow]%c[white] [%s]%s[white]", info.KeyBinding, color, info.DisplayName))
	}

	text := fmt.Sprintf(" [yellow]%s[white]\n", state.PlanName)
	text += fmt.Sprintf(" [gray]Location:[white] %s   [gray]Mode:[white] %s\n", state.Location.DisplayName(), state.Mode.DisplayName())
	text += fmt.Sprintf(" %s\n", strings.Join(toggles, "  "))
	text += fmt.Sprintf(" [gray]Selected:[white] %d   [gray]Estimated:[white] %s\n", state.SelectedCount, formatDuration(state.Estimate))
	text += fmt.Sprintf(" [gray]Breathing:[white] %s\n", formatPattern(ui.pattern))
	ui.customizerHeader.SetText(text)
}

// UpdateBreathingPattern updates the breathing settings shown on the customizer and player
func (ui *CursesUIViewImpl) UpdateBreathingPattern(pattern workout.BreathingPattern) {
	ui.pattern = pattern
	ui.updateCustomizerHeader()
	ui.updateBreathingDisplay()
}

// UpdatePlayerState updates the workout player display
func (ui *CursesUIViewImpl) UpdatePlayerState(state PlayerState) {
	ui.playerState = state
	ui.pattern = state.Pattern
	ui.updatePlayerDisplay()
	ui.updateBreathingDisplay()
}

// updatePlayerDisplay formats and displays the player state
func (ui *CursesUIViewImpl) updatePlayerDisplay() {
	if ui.playerPanel == nil {
		return
	}
	state := ui.playerState
	view := state.View
	run := view.Run

	if state.Status == PlayerStatusIdle {
		ui.playerPanel.SetText("\n  [gray]No workout loaded[white]\n\n  Pick programs and exercises, then press G to start.\n")
		return
	}

	text := "\n"
	if state.Program != nil {
		text += fmt.Sprintf("  [yellow]%s[white]  [gray](%s)[white]\n", state.Program.Name, state.Status.DisplayName())
	}
	text += fmt.Sprintf("  %s %d/%d\n\n", progressBar(view.Index, view.Total), view.Index+1, view.Total)

	if state.Status == PlayerStatusFinished {
		text += "  [green]Workout complete![white]\n\n"
		text += fmt.Sprintf("  %d exercises done.\n\n", view.Total)
		text += "  [yellow]Esc[white] Back to menu\n"
		ui.playerPanel.SetText(text)
		return
	}

	ex := view.Exercise
	text += fmt.Sprintf("  [cyan]%s[white]\n", ex.Name)
	if ex.Description != "" {
		text += fmt.Sprintf("  [gray]%s[white]\n", ex.Description)
	}
	text += "\n"
	text += fmt.Sprintf("  [gray]Set:[white]  [yellow]%d[white] / %d\n", min(run.CurrentSet+1, ex.DefaultSets), ex.DefaultSets)
	if view.Mode == workout.ModeTimed {
		text += fmt.Sprintf("  [gray]Reps:[white] [yellow]%d[white] / %d\n\n", run.Reps, ex.DefaultReps)
	} else {
		text += fmt.Sprintf("  [gray]Reps:[white] %d per set\n\n", ex.DefaultReps)
	}

	switch {
	case run.CountingDown():
		text += fmt.Sprintf("  [yellow]Get ready... %d[white]\n", *run.Countdown)
	case run.Phase == workout.PhaseRest:
		text += fmt.Sprintf("  [green]Rest[white] %s\n", formatDurationMMSS(time.Duration(run.RestTimeLeft)*time.Second))
	case view.Mode == workout.ModeTimed:
		text += fmt.Sprintf("  [green]%s[white] %s\n", run.Phase.DisplayName(), formatSeconds(state.PhaseDuration))
	}

	text += "\n"
	if state.NextExercise != nil {
		text += fmt.Sprintf("  [gray]Next:[white] %s [gray](%d x %d)[white]\n", state.NextExercise.Name, state.NextExercise.DefaultSets, state.NextExercise.DefaultReps)
		text += fmt.Sprintf("  [gray]Remaining after this:[white] ~%s\n", formatDuration(state.Remaining))
	} else {
		text += "  [gray]Next:[white] [green]Finish![white]\n"
	}

	text += "\n  [gray]─────────────────────────[white]\n"
	switch state.Status {
	case PlayerStatusManual:
		text += "  [yellow]Enter[white] Set done  |  [yellow]N/P[white] Next/Prev  |  [yellow]F[white] Finish  |  [yellow]Esc[white] Menu\n"
	case PlayerStatusRunning, PlayerStatusCountingDown:
		text += "  [yellow]Space[white] Pause  |  [yellow]K[white] Skip rest  |  [yellow]R[white] Reset  |  [yellow]N/P[white] Next/Prev  |  [yellow]Esc[white] Menu\n"
	case PlayerStatusPaused:
		text += "  [yellow]Space[white] Resume  |  [yellow]R[white] Reset  |  [yellow]N/P[white] Next/Prev  |  [yellow]Esc[white] Menu\n"
	default:
		text += "  [yellow]Space[white] Start  |  [yellow]N/P[white] Next/Prev  |  [yellow]Esc[white] Menu\n"
	}

	ui.playerPanel.SetText(text)
}

// updateBreathingDisplay shows the breathing pattern with the current phase highlighted
func (ui *CursesUIViewImpl) updateBreathingDisplay() {
	if ui.breathingPanel == nil {
		return
	}
	current := ui.playerState.View.Run.Phase
	running := ui.playerState.Status == PlayerStatusRunning

	text := "\n"
	for _, key := range AllBreathingKeys {
		marker := " "
		color := "white"
		if running && key.Phase == current {
			marker = ">"
			color = "green"
		}
		text += fmt.Sprintf(" %s [%s]%-13s[white] %4.1fs   [gray]%c/%c[white]\n", marker, color, key.Phase.DisplayName(), ui.pattern.Seconds(key.Phase), key.Increase, key.Decrease)
	}
	text += fmt.Sprintf("   [gray]Cycle:[white] %s\n", formatSeconds(ui.pattern.CycleDuration()))
	ui.breathingPanel.SetText(text)
}

// SetScreen switches the UI to the specified screen
func (ui *CursesUIViewImpl) SetScreen(screen Screen) {
	if ui.currentScreen == screen {
		return
	}

	ui.currentScreen = screen

	switch screen {
	case ScreenProgramSelection:
		ui.pages.SwitchToPage(pageProgramSelection)
	case ScreenCustomizer:
		ui.pages.SwitchToPage(pageCustomizer)
	case ScreenPlayer:
		ui.pages.SwitchToPage(pagePlayer)
	}

	ui.setFocusForCurrentScreen()
	ui.app.Draw()
}

// GetCurrentScreen returns the currently shown screen
func (ui *CursesUIViewImpl) GetCurrentScreen() Screen {
	return ui.currentScreen
}

// setFocusForCurrentScreen sets focus to the first widget of the current screen
func (ui *CursesUIViewImpl) setFocusForCurrentScreen() {
	if widgets := ui.getTabWidgetsForCurrentScreen(); len(widgets) > 0 {
		ui.app.SetFocus(widgets[0])
	}
}

func (ui *CursesUIViewImpl) getTabWidgetsForCurrentScreen() []tview.Primitive {
	switch ui.currentScreen {
	case ScreenProgramSelection:
		return ui.selectionTabWidgets
	case ScreenCustomizer:
		return ui.customizerTabWidgets
	case ScreenPlayer:
		return ui.playerTabWidgets
	default:
		return nil
	}
}

// focusedExerciseID returns the id of the exercise under the cursor, or empty string if none
func (ui *CursesUIViewImpl) focusedExerciseID() string {
	i := ui.exerciseList.GetCurrentItem()
	if i < 0 || i >= len(ui.customizer.Entries) {
		return ""
	}
	return ui.customizer.Entries[i].ID
}

// SetupKeyboardHandlers sets up keyboard event handlers
func (ui *CursesUIViewImpl) SetupKeyboardHandlers(controller *UIController) {
	ui.app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		// Typing into the search field goes to the field
		if ui.currentScreen == ScreenCustomizer && ui.searchField.HasFocus() {
			if event.Key() == tcell.KeyEscape {
				ui.app.SetFocus(ui.exerciseList)
				return nil
			}
			return event
		}

		// Tab to switch focus between widgets on the current screen
		if event.Key() == tcell.KeyTab {
			widgets := ui.getTabWidgetsForCurrentScreen()
			widgetCount := len(widgets)
			if widgetCount > 0 {
				for i := 0; i < widgetCount+1; i++ {
					idx := i % widgetCount
					if widgets[idx].HasFocus() {
						nextIdx := (idx + 1) % widgetCount
						ui.app.SetFocus(widgets[nextIdx])
						break
					}
				}
			}
			return nil
		}

		// Escape goes back, quitting from the first screen
		if event.Key() == tcell.KeyEscape {
			controller.OnEscapeKey()
			return nil
		}

		// Breathing pattern edits work on the customizer and the player
		if event.Key() == tcell.KeyRune && ui.currentScreen != ScreenProgramSelection {
			if phase, steps, ok := GetBreathingAdjustByKey(event.Rune()); ok {
				controller.AdjustBreathing(phase, steps)
				return nil
			}
		}

		switch ui.currentScreen {
		case ScreenProgramSelection:
			if event.Key() == tcell.KeyRune && (event.Rune() == 'c' || event.Rune() == 'C') {
				controller.ContinueToCustomizer()
				return nil
			}
		case ScreenCustomizer:
			return ui.handleCustomizerKey(controller, event)
		case ScreenPlayer:
			return ui.handlePlayerKey(controller, event)
		}

		return event
	})
}

func (ui *CursesUIViewImpl) handleCustomizerKey(controller *UIController, event *tcell.EventKey) *tcell.EventKey {
	if event.Key() != tcell.KeyRune {
		return event
	}
	r := event.Rune()

	if eq, ok := GetEquipmentByKey(r); ok {
		controller.ToggleEquipment(eq)
		return nil
	}

	adjust := func(field catalog.Field, delta int) *tcell.EventKey {
		if id := ui.focusedExerciseID(); id != "" {
			controller.AdjustExercise(id, field, delta)
		}
		return nil
	}

	switch r {
	case 's':
		return adjust(catalog.FieldSets, 1)
	case 'S':
		return adjust(catalog.FieldSets, -1)
	case 'r':
		return adjust(catalog.FieldReps, 1)
	case 'R':
		return adjust(catalog.FieldReps, -1)
	case 't':
		return adjust(catalog.FieldRest, 1)
	case 'T':
		return adjust(catalog.FieldRest, -1)
	case 'l', 'L':
		controller.ToggleLocation()
		return nil
	case 'm', 'M':
		controller.CycleMode()
		return nil
	case 'g', 'G':
		controller.StartPlan()
		return nil
	case '/':
		ui.app.SetFocus(ui.searchField)
		return nil
	}
	return event
}

func (ui *CursesUIViewImpl) handlePlayerKey(controller *UIController, event *tcell.EventKey) *tcell.EventKey {
	if event.Key() == tcell.KeyEnter {
		controller.CompleteSet()
		return nil
	}
	if event.Key() != tcell.KeyRune {
		return event
	}

	switch event.Rune() {
	case ' ':
		controller.TogglePlay()
	case 'r', 'R':
		controller.ResetExercise()
	case 'k', 'K':
		controller.SkipRest()
	case 'n', 'N':
		controller.NextExercise()
	case 'p', 'P':
		controller.PrevExercise()
	case 'f', 'F':
		controller.FinishWorkout()
	default:
		return event
	}
	return nil
}

// GetLogViewHeight returns the visible height of the log view
func (ui *CursesUIViewImpl) GetLogViewHeight() int {
	_, _, _, height := ui.logView.GetInnerRect()
	return height
}

// ClearLogView clears the log view
func (ui *CursesUIViewImpl) ClearLogView() {
	ui.logView.Clear()
}

// WriteLogLine writes a line to the log view
func (ui *CursesUIViewImpl) WriteLogLine(line string) error {
	_, err := fmt.Fprint(ui.logView, tview.Escape(line))
	return err
}

// Draw refreshes/redraws the UI
func (ui *CursesUIViewImpl) Draw() error {
	ui.app.Draw()
	return nil
}

// Run starts the UI and blocks until it exits
func (ui *CursesUIViewImpl) Run() error {
	// SetRoot must be called before setting focus, otherwise focus may be reset
	ui.app.SetRoot(ui.mainFlex, true)
	ui.setFocusForCurrentScreen()
	return ui.app.Run()
}

// Stop stops the UI framework
func (ui *CursesUIViewImpl) Stop() {
	ui.app.Stop()
}

// formatDuration formats a duration for display
func formatDuration(d time.Duration) string {
	minutes := int(d.Round(time.Minute).Minutes())
	if minutes >= 60 {
		hours := minutes / 60
		mins := minutes % 60
		if mins > 0 {
			return fmt.Sprintf("%dh %dm", hours, mins)
		}
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%d min", minutes)
}

// formatDurationMMSS formats a duration as MM:SS
func formatDurationMMSS(d time.Duration) string {
	totalSeconds := int(d.Seconds())
	minutes := totalSeconds / 60
	seconds := totalSeconds % 60
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

// formatSeconds formats a sub-minute duration with one decimal, like "2.5s"
func formatSeconds(d time.Duration) string {
	return fmt.Sprintf("%.1fs", d.Seconds())
}

func formatPattern(p workout.BreathingPattern) string {
	return fmt.Sprintf("in %.1f / hold %.1f / out %.1f / hold %.1f", p.Inhale, p.HoldIn, p.Exhale, p.HoldOut)
}

func formatEquipment(equipment []workout.Equipment) string {
	names := make([]string, 0, len(equipment))
	for _, eq := range equipment {
		names = append(names, string(eq))
	}
	return strings.Join(names, ", ")
}

// progressBar renders done out of total as a fixed-width bar
func progressBar(done, total int) string {
	if total <= 0 {
		return ""
	}
	filled := done * progressBarWidth / total
	return "[green]" + strings.Repeat("█", filled) + "[gray]" + strings.Repeat("░", progressBarWidth-filled) + "[white]"
}
