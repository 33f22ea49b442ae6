package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/rivo/tview"
	"github.com/spf13/pflag"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/lowaak/flowlift/internal/catalog"
	"github.com/lowaak/flowlift/internal/config"
	"github.com/lowaak/flowlift/internal/player"
	"github.com/lowaak/flowlift/internal/store"
	"github.com/lowaak/flowlift/internal/timer"
)

const uiLogBuffer = 256

// uiLogWriter hands every log line to the UI. Lines are dropped while the UI
// is not keeping up.
type uiLogWriter struct {
	ch chan<- string
}

func (w uiLogWriter) Write(p []byte) (int, error) {
	select {
	case w.ch <- string(p):
	default:
	}
	return len(p), nil
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "flowlift: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := config.Load(args)
	if errors.Is(err, pflag.ErrHelp) {
		return nil
	}
	if err != nil {
		return err
	}

	rotating := &lumberjack.Logger{
		Filename:   cfg.Log.File,
		MaxSize:    cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAge:     cfg.Log.MaxAgeDays,
	}
	defer rotating.Close()

	uiLogChan := make(chan string, uiLogBuffer)
	logger := log.New(io.MultiWriter(rotating, uiLogWriter{ch: uiLogChan}), "", log.Ltime)
	if cfg.File != "" {
		logger.Printf("Using config %s", cfg.File)
	}

	cat := catalog.Default()
	if cfg.Catalog.Path != "" {
		if cat, err = catalog.LoadFile(cfg.Catalog.Path); err != nil {
			return err
		}
		logger.Printf("Loaded %d programs from %s", len(cat.All()), cfg.Catalog.Path)
	}

	backend := cfg.StoreBackend()
	statePath := cfg.Store.Path
	if statePath == "" {
		statePath = store.DefaultPath(backend)
	}
	snapshotStore, err := store.Open(backend, statePath, logger)
	if err != nil {
		return fmt.Errorf("opening %s store: %w", backend, err)
	}
	defer func() {
		if err := snapshotStore.Close(); err != nil {
			logger.Printf("Error closing store: %v", err)
		}
	}()

	loop := timer.NewLoop(logger)
	defer loop.Shutdown()

	model := player.NewUIModel(cat.All(), cfg.Breathing, logger, uiLogChan)
	defer model.Shutdown()

	manager := player.NewWorkoutManager(loop, model, snapshotStore, cfg.Player.CountdownSeconds, logger)
	controller := player.NewUIController(model, cat, manager, logger)
	controller.SetStartDefaults(cfg.StartLocation(), cfg.StartEquipment(), cfg.Mode())
	if snap, ok := manager.LoadSnapshot(); ok {
		controller.RestoreFrom(snap)
	}

	app := tview.NewApplication()
	view := player.NewCursesUIView(logger, app, model)
	baseView := player.NewBaseUIView(player.NewBaseUIViewArg{
		UIViewImpl:   view,
		UIModel:      model,
		UIController: controller,
		Logger:       logger,
	})

	logger.Printf("FlowLift ready: %d programs, %s store at %s", len(cat.All()), backend, statePath)
	runErr := baseView.Run()

	baseView.Shutdown()
	// let posted work run so the last snapshot reaches the writer
	manager.Persist()
	loop.Call(func() {})
	controller.Shutdown()

	if runErr != nil {
		return fmt.Errorf("running UI: %w", runErr)
	}
	return nil
}
