package main

import (
	"context"
	"flag"
	"fleetdesk/config"
	"fleetdesk/di"
	"fleetdesk/infras/otel"
	"fleetdesk/shared/logger"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
)

const stopTimeout = 5 * time.Minute

func main() {
	runOnce := flag.String("run-once", "", "run a single job (sweep or report) and exit")
	flag.Parse()

	cfg := config.Get()

	logger.InitLogger(cfg, logger.ComponentScheduler)

	scheduler := di.InitializeScheduler()

	if *runOnce != "" {
		err := scheduler.Run(context.Background(), *runOnce)
		otel.Shutdown(context.Background())

		if err != nil {
			log.Fatal().Err(err).Str("job", *runOnce).Msg("Job failed")
		}

		return
	}

	if !cfg.Scheduler.Enable {
		log.Warn().Msg("Scheduler is disabled. Set SCHEDULER_ENABLE=true to run cron jobs.")

		return
	}

	if err := scheduler.Register(); err != nil {
		log.Fatal().Err(err).Msg("Failed to register scheduled jobs")
	}

	scheduler.Start()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	log.Info().Msg("Received shutdown signal. Waiting for running jobs.")

	stopCtx, cancel := context.WithTimeout(context.Background(), stopTimeout)
	defer cancel()

	scheduler.Stop(stopCtx)
	otel.Shutdown(stopCtx)
}
