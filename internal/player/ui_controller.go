package player

import (
	"context"
	"log"
	"slices"
	"strings"
	"sync"

	"github.com/lowaak/flowlift/internal/catalog"
	"github.com/lowaak/flowlift/internal/go_func_utils"
	"github.com/lowaak/flowlift/internal/workout"
)

// UIController handles UI events and coordinates the UIModel with the WorkoutManager
type UIController struct {
	model          *UIModel
	catalog        *catalog.Catalog
	workoutManager *WorkoutManager
	logger         *log.Logger

	mu      sync.Mutex
	builder *catalog.PlanBuilder // nil outside the customizer

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewUIController creates a new UIController with the given dependencies
func NewUIController(model *UIModel, cat *catalog.Catalog, workoutManager *WorkoutManager, logger *log.Logger) *UIController {
	if model == nil {
		panic("UIController: model cannot be nil")
	}
	if cat == nil {
		panic("UIController: catalog cannot be nil")
	}
	if workoutManager == nil {
		panic("UIController: workoutManager cannot be nil")
	}
	if logger == nil {
		panic("UIController: logger cannot be nil")
	}

	ctx, cancel := context.WithCancel(context.Background())
	c := &UIController{
		model:          model,
		catalog:        cat,
		workoutManager: workoutManager,
		logger:         logger,
		ctx:            ctx,
		cancel:         cancel,
	}

	c.wg.Add(1)
	go_func_utils.SafeGo(logger, "UIController pattern listener", func() { c.listenToBreathingPattern() })

	return c
}

// Shutdown stops the controller goroutines and the workout manager
func (c *UIController) Shutdown() {
	c.cancel()
	c.wg.Wait()
	c.workoutManager.Shutdown()
}

// listenToBreathingPattern keeps the customizer estimate in step with pattern edits
func (c *UIController) listenToBreathingPattern() {
	defer c.wg.Done()

	ch := make(chan workout.BreathingPattern, 1)
	unregister := c.model.ListenToBreathingPattern(ch)
	defer unregister()

	for {
		select {
		case <-c.ctx.Done():
			return
		case _, ok := <-ch:
			if !ok {
				return
			}
			c.mu.Lock()
			c.refreshCustomizerLocked()
			c.mu.Unlock()
		}
	}
}

// RestoreFrom puts the UI back where the snapshot left it
func (c *UIController) RestoreFrom(snap workout.Snapshot) {
	c.model.SetSelectedPrograms(c.knownProgramIDs(snap.SelectedPrograms))

	state := c.model.GetCustomizerState()
	if loc, err := catalog.ParseLocation(snap.Location); err == nil {
		state.Location = loc
		state.Equipment = loc.DefaultEquipment()
	}
	if len(snap.SelectedEquipment) > 0 {
		state.Equipment = append([]workout.Equipment(nil), snap.SelectedEquipment...)
	}
	if snap.ActiveMode != "" {
		if mode, err := workout.ParseMode(string(snap.ActiveMode)); err == nil {
			state.Mode = mode
		}
	}
	c.model.SetCustomizerState(state)

	if err := c.workoutManager.Restore(snap); err != nil {
		c.logger.Printf("UIController: Could not restore session: %v", err)
	}

	switch {
	case snap.HasActiveSession() && c.model.GetPlayerState().Program != nil:
		c.logger.Printf("Resuming %q at exercise %d", snap.ActiveProgram.Name, snap.CurrentExerciseIndex+1)
		c.model.SetScreen(ScreenPlayer)
	case snap.IsCustomizing && len(c.model.GetSelectionState().Selected) > 0:
		c.ContinueToCustomizer()
	default:
		c.model.SetScreen(ScreenProgramSelection)
	}
}

// SetStartDefaults applies configured defaults before any snapshot is restored
func (c *UIController) SetStartDefaults(loc catalog.Location, equipment []workout.Equipment, mode workout.Mode) {
	state := c.model.GetCustomizerState()
	state.Location = loc
	state.Equipment = append([]workout.Equipment(nil), equipment...)
	if len(state.Equipment) == 0 {
		state.Equipment = loc.DefaultEquipment()
	}
	state.Mode = mode
	c.model.SetCustomizerState(state)
}

// OnEscapeKey goes one screen back, quitting from the program selection
func (c *UIController) OnEscapeKey() {
	switch c.model.GetUIState().Screen {
	case ScreenPlayer:
		c.BackToMenu()
	case ScreenCustomizer:
		c.BackToSelection()
	default:
		c.model.RequestCloseApplication()
	}
}

// --- Program Selection Methods ---

// ToggleProgram adds or removes a program from the selection
func (c *UIController) ToggleProgram(id string) {
	p, ok := c.catalog.Find(id)
	if !ok {
		c.logger.Printf("Unknown program: %s", id)
		return
	}

	selected := c.model.GetSelectionState().Selected
	if i := slices.Index(selected, id); i >= 0 {
		selected = slices.Delete(selected, i, i+1)
		c.logger.Printf("Program deselected: %s", p.Name)
	} else {
		selected = append(selected, id)
		c.logger.Printf("Program selected: %s", p.Name)
	}
	c.model.SetSelectedPrograms(c.knownProgramIDs(selected))
	c.workoutManager.Persist()
}

// ContinueToCustomizer merges the selected programs and opens the customizer
func (c *UIController) ContinueToCustomizer() {
	programs := c.catalog.Select(c.model.GetSelectionState().Selected)
	if len(programs) == 0 {
		c.logger.Printf("Select at least one program first")
		return
	}

	c.mu.Lock()
	c.builder = catalog.NewPlanBuilder(programs)
	c.refreshCustomizerLocked()
	c.mu.Unlock()

	c.model.SetScreen(ScreenCustomizer)
	c.workoutManager.Persist()
}

// BackToSelection leaves the customizer
func (c *UIController) BackToSelection() {
	c.mu.Lock()
	c.builder = nil
	c.mu.Unlock()

	c.model.SetScreen(ScreenProgramSelection)
	c.workoutManager.Persist()
}

// --- Customizer Methods ---

// ToggleExercise adds or removes an exercise from the plan
func (c *UIController) ToggleExercise(id string) {
	c.withBuilder(func(b *catalog.PlanBuilder) {
		if _, ok := b.Entry(id); !ok {
			c.logger.Printf("Unknown exercise: %s", id)
			return
		}
		b.Toggle(id)
	})
}

// AdjustExercise moves the sets, reps or rest of an exercise
func (c *UIController) AdjustExercise(id string, field catalog.Field, delta int) {
	c.withBuilder(func(b *catalog.PlanBuilder) {
		if !b.Adjust(id, field, delta) {
			c.logger.Printf("Unknown exercise: %s", id)
		}
	})
}

// SetLocation switches location and resets the equipment filter to its defaults
func (c *UIController) SetLocation(loc catalog.Location) {
	c.mu.Lock()
	state := c.model.GetCustomizerState()
	state.Location = loc
	state.Equipment = loc.DefaultEquipment()
	c.model.SetCustomizerState(state)
	c.refreshCustomizerLocked()
	c.mu.Unlock()

	c.logger.Printf("Location: %s", loc.DisplayName())
	c.workoutManager.Persist()
}

// ToggleLocation switches between home and gym
func (c *UIController) ToggleLocation() {
	if c.model.GetCustomizerState().Location == catalog.LocationGym {
		c.SetLocation(catalog.LocationHome)
	} else {
		c.SetLocation(catalog.LocationGym)
	}
}

// ToggleEquipment adds or removes an equipment tag from the filter
func (c *UIController) ToggleEquipment(eq workout.Equipment) {
	c.mu.Lock()
	state := c.model.GetCustomizerState()
	equipment := slices.Clone(state.Equipment)
	if i := slices.Index(equipment, eq); i >= 0 {
		equipment = slices.Delete(equipment, i, i+1)
	} else {
		equipment = append(equipment, eq)
	}
	state.Equipment = equipment
	c.model.SetCustomizerState(state)
	c.refreshCustomizerLocked()
	c.mu.Unlock()

	c.workoutManager.Persist()
}

// SetSearchQuery filters the exercise list by name or description
func (c *UIController) SetSearchQuery(query string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	state := c.model.GetCustomizerState()
	state.Query = query
	c.model.SetCustomizerState(state)
	c.refreshCustomizerLocked()
}

// CycleMode switches the execution mode for the next start
func (c *UIController) CycleMode() {
	c.mu.Lock()
	state := c.model.GetCustomizerState()
	i := slices.Index(workout.AllModes, state.Mode)
	state.Mode = workout.AllModes[(i+1)%len(workout.AllModes)]
	c.model.SetCustomizerState(state)
	c.mu.Unlock()

	c.logger.Printf("Mode: %s", state.Mode.DisplayName())
}

// AdjustBreathing moves one phase of the breathing pattern by steps of 0.5s
func (c *UIController) AdjustBreathing(phase workout.Phase, steps int) {
	pattern := c.model.GetBreathingPattern().Adjust(phase, steps)
	c.model.SetBreathingPattern(pattern)
	c.workoutManager.SetBreathingPattern(pattern)
}

// StartPlan builds the customized plan and starts the player on it
func (c *UIController) StartPlan() {
	c.mu.Lock()
	if c.builder == nil {
		c.mu.Unlock()
		c.logger.Printf("No programs selected")
		return
	}
	program := c.builder.Build()
	c.mu.Unlock()

	mode := c.model.GetCustomizerState().Mode
	if err := c.workoutManager.StartPlan(program, mode); err != nil {
		c.logger.Printf("Cannot start plan: %v", err)
		return
	}
	c.model.SetScreen(ScreenPlayer)
	c.workoutManager.Persist()
}

// --- Player Methods ---

// TogglePlay starts, pauses or resumes the current exercise
func (c *UIController) TogglePlay() {
	switch c.model.GetPlayerState().Status {
	case PlayerStatusIdle:
		c.logger.Printf("No workout loaded")
	case PlayerStatusManual:
		c.logger.Printf("Manual mode: press Enter when a set is done")
	case PlayerStatusFinished:
		c.logger.Printf("Workout finished - press Esc for the menu")
	default:
		c.workoutManager.TogglePlay()
	}
}

func (c *UIController) ResetExercise() {
	c.workoutManager.Reset()
}

func (c *UIController) SkipRest() {
	c.workoutManager.SkipRest()
}

func (c *UIController) CompleteSet() {
	c.workoutManager.CompleteSet()
}

func (c *UIController) NextExercise() {
	c.workoutManager.Next()
}

func (c *UIController) PrevExercise() {
	c.workoutManager.Prev()
}

func (c *UIController) FinishWorkout() {
	c.workoutManager.Finish()
}

// BackToMenu drops the session and returns to the program selection
func (c *UIController) BackToMenu() {
	c.workoutManager.ExitToMenu()

	c.mu.Lock()
	c.builder = nil
	c.mu.Unlock()

	c.model.SetScreen(ScreenProgramSelection)
	c.workoutManager.Persist()
}

func (c *UIController) withBuilder(fn func(*catalog.PlanBuilder)) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.builder == nil {
		c.logger.Printf("Customizer is not open")
		return
	}
	fn(c.builder)
	c.refreshCustomizerLocked()
}

// refreshCustomizerLocked recomputes the customizer view; c.mu must be held
func (c *UIController) refreshCustomizerLocked() {
	if c.builder == nil {
		return
	}
	state := c.model.GetCustomizerState()
	plan := c.builder.Build()
	state.PlanName = plan.Name

	visible := c.builder.Visible(state.Equipment, strings.TrimSpace(state.Query))
	state.Entries = make([]CustomizerEntry, 0, len(visible))
	for _, e := range visible {
		state.Entries = append(state.Entries, CustomizerEntry{Entry: e, SelectionIndex: c.builder.SelectionIndex(e.ID)})
	}
	state.SelectedCount = len(plan.Exercises)
	state.Estimate = c.builder.Estimate(c.model.GetBreathingPattern())
	c.model.SetCustomizerState(state)
}

// knownProgramIDs drops unknown ids and returns the rest in catalog order
func (c *UIController) knownProgramIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, p := range c.catalog.All() {
		if slices.Contains(ids, p.ID) {
			out = append(out, p.ID)
		}
	}
	return out
}
