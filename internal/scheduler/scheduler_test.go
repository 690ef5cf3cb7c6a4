package scheduler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fleetdesk/config"
	"fleetdesk/infras/metrics"
	otelMocks "fleetdesk/infras/otel/mocks"
	"fleetdesk/internal/domains/sweep/model/dto"
	sweepService "fleetdesk/internal/domains/sweep/service"
	sweepMocks "fleetdesk/internal/domains/sweep/service/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var today = time.Date(2024, 6, 10, 0, 30, 0, 0, time.UTC)

func newScheduler(t *testing.T, cfg *config.Config) (*Scheduler, *sweepMocks.MockSweep, *metrics.Metrics) {
	t.Helper()

	sweep := sweepMocks.NewMockSweep(gomock.NewController(t))
	m := metrics.New()

	s := New(sweep, m, cfg, otelMocks.NewOtel())
	s.now = func() time.Time { return today }

	return s, sweep, m
}

func jobRuns(t *testing.T, m *metrics.Metrics) string {
	t.Helper()

	body := httptest.NewRecorder()
	m.Handler().ServeHTTP(body, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	return body.Body.String()
}

func TestRun(t *testing.T) {
	t.Run("sweep", func(t *testing.T) {
		s, sweep, m := newScheduler(t, &config.Config{})

		sweep.EXPECT().Run(gomock.Any(), today).Return(dto.SweepResult{AsOf: "2024-06-10"}, nil)

		require.NoError(t, s.Run(context.Background(), sweepService.JobSweep))
		assert.Contains(t, jobRuns(t, m), `fleetdesk_scheduler_runs_total{job="sweep",result="success"} 1`)
	})

	t.Run("report failure is counted", func(t *testing.T) {
		s, sweep, m := newScheduler(t, &config.Config{})

		sweep.EXPECT().ArchiveReport(gomock.Any(), today).Return("", errors.New("access denied"))

		require.Error(t, s.Run(context.Background(), sweepService.JobReport))
		assert.Contains(t, jobRuns(t, m), `fleetdesk_scheduler_runs_total{job="report",result="failure"} 1`)
	})

	t.Run("panic is recovered", func(t *testing.T) {
		s, sweep, m := newScheduler(t, &config.Config{})

		sweep.EXPECT().Run(gomock.Any(), today).DoAndReturn(func(context.Context, time.Time) (dto.SweepResult, error) {
			panic("nil map")
		})

		var err error

		assert.NotPanics(t, func() {
			err = s.Run(context.Background(), sweepService.JobSweep)
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "nil map")
		assert.Contains(t, jobRuns(t, m), `fleetdesk_scheduler_runs_total{job="sweep",result="failure"} 1`)
	})

	t.Run("unknown job", func(t *testing.T) {
		s, _, _ := newScheduler(t, &config.Config{})

		assert.ErrorIs(t, s.Run(context.Background(), "vacuum"), ErrUnknownJob)
	})
}

func TestRegister(t *testing.T) {
	t.Run("both jobs", func(t *testing.T) {
		cfg := &config.Config{}
		cfg.Scheduler.SweepSpec = "0 30 0 * * *"
		cfg.Scheduler.ReportSpec = "0 0 1 * * *"

		s, _, _ := newScheduler(t, cfg)

		require.NoError(t, s.Register())
		assert.Len(t, s.cron.Entries(), 2)
	})

	t.Run("invalid spec", func(t *testing.T) {
		cfg := &config.Config{}
		cfg.Scheduler.SweepSpec = "every night"
		cfg.Scheduler.ReportSpec = "0 0 1 * * *"

		s, _, _ := newScheduler(t, cfg)

		assert.Error(t, s.Register())
	})
}
