package main

import (
	"fmt"

	"github.com/Netflix/go-env"
)

// Config only holds what a read-only dump needs, the gate settings are not required here.
type Config struct {
	BadgerFilepath string `env:"BADGER_FILEPATH,default=./data/badger"`
	LogLevel       string `env:"LOG_LEVEL,default=INFO"`
}

func loadConfig() (Config, error) {
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return Config{}, fmt.Errorf("config error: %w", err)
	}
	return config, nil
}
