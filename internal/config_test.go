package internal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	req := require.New(t)
	t.Setenv("BACKEND_URL", "https://parking.example.com")

	config, err := LoadConfig()

	req.NoError(err)
	req.Equal("https://parking.example.com", config.BackendURL)
	req.Equal("http://localhost:5000", config.GateURL)
	req.Equal(10*time.Second, config.GateCloseDelay)
	req.Equal(3*time.Second, config.RearmDelay)
	req.True(config.AutoStartCamera)
	req.Equal("localhost:8080", config.Address())
}

func TestLoadConfig_Overrides(t *testing.T) {
	req := require.New(t)
	t.Setenv("BACKEND_URL", "https://parking.example.com")
	t.Setenv("GATE_CLOSE_DELAY", "3s")
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "DEBUG")

	config, err := LoadConfig()

	req.NoError(err)
	req.Equal(3*time.Second, config.GateCloseDelay)
	req.Equal(9090, config.Port)
	req.Equal("DEBUG", config.LogLevel)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		description string
		env         map[string]string
	}{
		{"Should fail without backend", map[string]string{}},
		{"Should fail on a backend that is not a URL", map[string]string{"BACKEND_URL": "not a url"}},
		{"Should fail on an unknown log level", map[string]string{"BACKEND_URL": "https://x.io", "LOG_LEVEL": "LOUD"}},
		{"Should fail on a zero close delay", map[string]string{"BACKEND_URL": "https://x.io", "GATE_CLOSE_DELAY": "0s"}},
	}
	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			t.Setenv("BACKEND_URL", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := LoadConfig()
			require.Error(t, err, tt.description)
		})
	}
}

func TestLoadSerialConfig_Defaults(t *testing.T) {
	req := require.New(t)

	config, err := LoadSerialConfig()

	req.NoError(err)
	req.Equal("/tmp/mock", config.SerialPort)
	req.Equal(9600, config.SerialBaud)
}
