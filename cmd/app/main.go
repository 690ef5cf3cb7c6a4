package main

import (
	"fleetdesk/config"
	"fleetdesk/di"
	"fleetdesk/helper"
	"fleetdesk/shared/logger"

	"github.com/rs/zerolog/log"
)

// @title Fleetdesk API
// @version 1.0
// @description Vehicle rental back office: bookings, balances, compliance, maintenance and dashboard.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Get()

	logger.InitLogger(cfg, logger.ComponentAPI)

	if cfg.DB.Postgres.AutoMigrate {
		if err := helper.Up(cfg); err != nil {
			log.Fatal().Err(err).Msg("Failed to apply database migrations")
		}
	}

	http := di.InitializeService()
	http.Serve()
}
