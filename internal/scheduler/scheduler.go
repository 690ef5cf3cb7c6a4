// Package scheduler runs the nightly sweep and the report archive on cron
// specs from the Scheduler config section.
package scheduler

import (
	"context"
	"fleetdesk/config"
	"fleetdesk/infras/metrics"
	"fleetdesk/infras/otel"
	sweepService "fleetdesk/internal/domains/sweep/service"
	"fleetdesk/shared/constant"
	"fleetdesk/shared/timezone"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

var ErrUnknownJob = errors.New("unknown job")

type Scheduler struct {
	cron    *cron.Cron
	sweep   sweepService.Sweep
	metrics *metrics.Metrics
	cfg     *config.Config
	otel    otel.Otel
	now     func() time.Time
}

func New(sweep sweepService.Sweep, metrics *metrics.Metrics, cfg *config.Config, otel otel.Otel) *Scheduler {
	logger := cronLogger{}

	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(timezone.GetLocation()),
			cron.WithSeconds(),
			cron.WithLogger(logger),
			cron.WithChain(cron.SkipIfStillRunning(logger)),
		),
		sweep:   sweep,
		metrics: metrics,
		cfg:     cfg,
		otel:    otel,
		now:     timezone.Today,
	}
}

// Register adds both jobs. An invalid spec is returned rather than skipped.
func (s *Scheduler) Register() error {
	jobs := map[string]string{
		sweepService.JobSweep:  s.cfg.Scheduler.SweepSpec,
		sweepService.JobReport: s.cfg.Scheduler.ReportSpec,
	}

	for job, spec := range jobs {
		name := job

		if _, err := s.cron.AddFunc(spec, func() { _ = s.Run(context.Background(), name) }); err != nil {
			log.Error().Err(err).Str("job", name).Str("spec", spec).Msg("failed to register job")

			return fmt.Errorf("failed to register %s job: %w", name, err)
		}

		log.Info().Str("job", name).Str("spec", spec).Msg("job registered")
	}

	return nil
}

func (s *Scheduler) Start() {
	log.Info().Int("jobs", len(s.cron.Entries())).Msg("starting scheduler")
	s.cron.Start()
}

// Stop waits for running jobs until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) {
	log.Info().Msg("stopping scheduler")

	select {
	case <-s.cron.Stop().Done():
		log.Info().Msg("scheduler stopped")
	case <-ctx.Done():
		log.Warn().Msg("scheduler stop timed out with jobs still running")
	}
}

// Run executes one job for today in the app timezone. A panic inside the job
// is recovered, logged and counted as a failure.
func (s *Scheduler) Run(ctx context.Context, job string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelSchedulerScopeName, constant.OtelSchedulerScopeName+"."+job)
	defer scope.End()

	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("job %s panicked: %v", job, r)

			log.Error().Stack().Err(err).Str("job", job).Msg("recovered from job panic")
		}

		scope.TraceIfError(err)

		if s.metrics != nil {
			s.metrics.ObserveJob(job, err)
		}
	}()

	today := s.now()
	start := time.Now()

	switch job {
	case sweepService.JobSweep:
		_, err = s.sweep.Run(ctx, today)
	case sweepService.JobReport:
		_, err = s.sweep.ArchiveReport(ctx, today)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownJob, job)
	}

	if err != nil {
		log.Error().Err(err).Str("job", job).Dur("took", time.Since(start)).Msg("job finished with errors")

		return err
	}

	log.Info().Str("job", job).Dur("took", time.Since(start)).Msg("job finished")

	return nil
}

// cronLogger routes robfig/cron output to zerolog.
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...any) {
	log.Debug().Fields(keysAndValues).Msg(msg)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...any) {
	log.Error().Err(err).Fields(keysAndValues).Msg(msg)
}
