package main

import (
	"errors"
	"fleetdesk/config"
	"fleetdesk/helper"
	"fleetdesk/shared/logger"
	"os"

	"github.com/rs/zerolog/log"
)

const (
	argLength = 2
)

func main() {
	if len(os.Args) < argLength {
		log.Fatal().Msg("Migration action (up/down/step-up/drop/version/force <version>) is required")
	}

	cfg := config.Get()

	logger.InitLogger(cfg, logger.ComponentMigrate)

	if err := helper.Runner(cfg, os.Args[1], os.Args[argLength:]...); err != nil {
		if errors.Is(err, helper.ErrUnknownAction) {
			log.Fatal().Err(err).Msg("Use 'up', 'down', 'step-up', 'drop', 'version' or 'force <version>'")
		}

		log.Fatal().Err(err).Str("action", os.Args[1]).Msg("Migration failed")
	}
}
