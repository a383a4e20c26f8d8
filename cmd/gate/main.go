package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"parking-gate/domain"
	"parking-gate/internal"
	"parking-gate/presentation"
	"parking-gate/repositories"
	"parking-gate/runtime"
	"parking-gate/runtime/workers"
	"parking-gate/scanner"
	"parking-gate/services"

	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
)

// Exit codes to provide meaningful status to the operating system or service manager (e.g., systemd).
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

func main() {
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Gate terminated with error: %v\n", err)
	}
	os.Exit(code)
}

func run() (int, error) {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	config, err := internal.LoadConfig()
	if err != nil {
		return exitConfig, err
	}
	logger := logs.GetLoggerFromString(config.LogLevel)

	// 2. Audit log (BadgerDB)
	db, err := badger.Open(buildBadgerOpts(config, logger))
	if err != nil {
		return exitRuntime, fmt.Errorf("database opening failed: %w", err)
	}
	defer func() {
		logger.Info("Closing BadgerDB...")
		_ = db.Close()
	}()
	scanEvents := repositories.NewScanEventRepository(db, logger)

	// 3. Workflow
	counters := domain.NewWorkflowCounters()
	httpClient := services.NewHTTPClient(config.HTTPTimeout)
	gate := services.NewGateActuator(logger, httpClient, config.GateURL, config.GateCloseDelay, config.HTTPTimeout, counters)
	board := presentation.NewBoard(os.Stdout, config.Colours)
	camera := scanner.NewCameraSource(logger, config.CameraDir, config.CameraPollInterval, scanner.NewQRDecoder())

	controller := runtime.NewController(
		logger,
		camera,
		services.NewValidationClient(logger, httpClient, config.BackendURL),
		services.NewVehicleClient(logger, httpClient, config.BackendURL),
		gate,
		board,
		scanEvents,
		counters,
		runtime.ControllerConfig{
			WorkflowTimeout: config.WorkflowTimeout,
			RearmDelay:      config.RearmDelay,
		},
	)
	camera.Attach(controller)
	if config.AutoStartCamera {
		camera.Start()
		board.SetVisible(domain.ElementReader, true)
	}

	// 4. Supervision
	heartbeat := workers.NewHeartbeatWorker(logger, config.HeartbeatInterval, controller.Counters)
	statusRouter := runtime.NewStatusRouter(logger, runtime.StatusDeps{
		Controller:   controller,
		Board:        board,
		Store:        scanEvents,
		Camera:       camera,
		Process:      heartbeat.Latest,
		RecentEvents: config.RecentEvents,
	})
	sup := workers.NewSupervisor(logger, config.RestartInterval)
	sup.Add(
		camera,
		heartbeat,
		workers.NewHTTPServerWorker(logger, config.Address(), statusRouter),
	)

	// 5. Context & Signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("Gate terminal ready",
		"backend", config.BackendURL,
		"gate", config.GateURL,
		"close_delay", config.GateCloseDelay,
		"camera_dir", config.CameraDir,
		"status", config.Address())

	// Blocks until a signal cancels the context and every worker returned
	sup.Run(ctx)

	// 6. Pending auto-close timers are not cancellable, let them fire
	logger.Info("Waiting for pending gate commands...")
	gate.Wait()
	logger.Info("Program stopped cleanly")
	return exitOK, nil
}

func buildBadgerOpts(config internal.Config, logger *slog.Logger) badger.Options {
	options := badger.DefaultOptions(config.BadgerFilepath)
	if logger.Enabled(context.Background(), slog.LevelDebug) {
		return options.WithLoggingLevel(badger.DEBUG)
	}
	return options.WithLoggingLevel(badger.WARNING)
}
