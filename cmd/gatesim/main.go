package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"parking-gate/gatesim"
	"parking-gate/serialmock"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/mama165/sdk-go/logs"
	"go.bug.st/serial"
)

type Config struct {
	Port       int    `envconfig:"GATESIM_PORT" default:"5000"`
	SerialPort string `envconfig:"SERIAL_PORT"`
	SerialBaud int    `envconfig:"SERIAL_BAUD" default:"9600"`
	LogLevel   string `envconfig:"LOG_LEVEL" default:"INFO"`
}

const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

func main() {
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Gate simulator terminated with error: %v\n", err)
	}
	os.Exit(code)
}

func run() (int, error) {
	_ = godotenv.Load()
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}
	logger := logs.GetLoggerFromString(config.LogLevel)

	var link io.Writer
	if config.SerialPort != "" {
		port, err := serial.Open(config.SerialPort, &serial.Mode{BaudRate: config.SerialBaud})
		if err != nil {
			return exitRuntime, fmt.Errorf("open %s: %w", config.SerialPort, err)
		}
		defer port.Close()
		go logReplies(logger, port)
		link = port
		logger.Info("Serial link open", "port", config.SerialPort, "baud", config.SerialBaud)
	}

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", config.Port),
		Handler:           gatesim.NewRouter(gatesim.NewGate(logger, link)),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errChan := make(chan error, 1)
	go func() {
		logger.Info("Gate simulator listening", "address", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	case err := <-errChan:
		return exitRuntime, err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return exitRuntime, err
	}
	return exitOK, nil
}

func logReplies(logger *slog.Logger, r io.Reader) {
	scanner := bufio.NewScanner(r)
	scanner.Split(serialmock.ScanCRLF)
	for scanner.Scan() {
		logger.Info("Board replied", "data", scanner.Text())
	}
}
