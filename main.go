package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/ehealth-ke/facility-registry/config"
	"github.com/ehealth-ke/facility-registry/internal/api"
)

func main() {
	cfg := config.LoadConfig()

	logger := zerolog.New(os.Stdout).With().
		Timestamp().
		Str("service", "facility-registry").
		Logger()
	if cfg.Env != "prod" {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen})
	}

	api.StartServer(cfg, logger)
}
