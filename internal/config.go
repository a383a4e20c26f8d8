package internal

import (
	"fmt"
	"time"

	"github.com/Netflix/go-env"
	"github.com/go-playground/validator/v10"
)

type Config struct {
	BackendURL         string        `env:"BACKEND_URL,required=true" validate:"required,url"`
	GateURL            string        `env:"GATE_URL,default=http://localhost:5000" validate:"required,url"`
	GateCloseDelay     time.Duration `env:"GATE_CLOSE_DELAY,default=10s" validate:"gt=0"`
	HTTPTimeout        time.Duration `env:"HTTP_TIMEOUT,default=10s" validate:"gt=0"`
	WorkflowTimeout    time.Duration `env:"WORKFLOW_TIMEOUT,default=30s" validate:"gte=0"`
	RearmDelay         time.Duration `env:"REARM_DELAY,default=3s" validate:"gte=0"`
	RestartInterval    time.Duration `env:"RESTART_INTERVAL,default=200ms" validate:"gt=0"`
	HeartbeatInterval  time.Duration `env:"HEARTBEAT_INTERVAL,default=30s" validate:"gt=0"`
	CameraDir          string        `env:"CAMERA_DIR,default=./frames" validate:"required"`
	CameraPollInterval time.Duration `env:"CAMERA_POLL_INTERVAL,default=100ms" validate:"gt=0"`
	AutoStartCamera    bool          `env:"AUTO_START_CAMERA,default=true"`
	BadgerFilepath     string        `env:"BADGER_FILEPATH,default=./data/badger" validate:"required"`
	RecentEvents       int           `env:"RECENT_EVENTS,default=50" validate:"gt=0"`
	LogLevel           string        `env:"LOG_LEVEL,default=INFO" validate:"oneof=DEBUG INFO WARN ERROR"`
	Colours            bool          `env:"COLOURS,default=true"`
	Host               string        `env:"HOST,default=localhost" validate:"required"`
	Port               int           `env:"PORT,default=8080" validate:"gt=0,lte=65535"`
}

// SerialConfig is shared by the serial mock and the gate simulator.
type SerialConfig struct {
	SerialPort string `env:"SERIAL_PORT,default=/tmp/mock" validate:"required"`
	SerialBaud int    `env:"SERIAL_BAUD,default=9600" validate:"gt=0"`
	LogLevel   string `env:"LOG_LEVEL,default=INFO" validate:"oneof=DEBUG INFO WARN ERROR"`
}

var validate = validator.New()

func LoadConfig() (Config, error) {
	var config Config
	if err := load(&config); err != nil {
		return Config{}, err
	}
	return config, nil
}

func LoadSerialConfig() (SerialConfig, error) {
	var config SerialConfig
	if err := load(&config); err != nil {
		return SerialConfig{}, err
	}
	return config, nil
}

func load(config any) error {
	if _, err := env.UnmarshalFromEnviron(config); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if err := validate.Struct(config); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func (c Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
