package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"parking-gate/internal"
	"parking-gate/serialmock"

	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
	"go.bug.st/serial"
)

const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

func main() {
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Mock Arduino terminated with error: %v\n", err)
	}
	os.Exit(code)
}

func run() (int, error) {
	_ = godotenv.Load()
	config, err := internal.LoadSerialConfig()
	if err != nil {
		return exitConfig, err
	}
	logger := logs.GetLoggerFromString(config.LogLevel)

	port, err := serial.Open(config.SerialPort, &serial.Mode{BaudRate: config.SerialBaud})
	if err != nil {
		return exitRuntime, fmt.Errorf("open %s: %w", config.SerialPort, err)
	}
	logger.Info("Mock Arduino port is open.", "port", config.SerialPort, "baud", config.SerialBaud)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Closing the port unblocks the pending read on shutdown
	go func() {
		<-ctx.Done()
		_ = port.Close()
	}()

	if err := serialmock.NewEcho(logger).Serve(ctx, port); err != nil {
		return exitRuntime, err
	}
	return exitOK, nil
}
