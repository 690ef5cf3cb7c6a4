package service_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"fleetdesk/config"
	"fleetdesk/infras/kafka"
	kafkaMocks "fleetdesk/infras/kafka/mocks"
	"fleetdesk/infras/metrics"
	otelMocks "fleetdesk/infras/otel/mocks"
	s3Mocks "fleetdesk/infras/s3/mocks"
	bookingDto "fleetdesk/internal/domains/booking/model/dto"
	bookingMocks "fleetdesk/internal/domains/booking/service/mocks"
	complianceDto "fleetdesk/internal/domains/compliance/model/dto"
	complianceMocks "fleetdesk/internal/domains/compliance/service/mocks"
	"fleetdesk/internal/domains/dashboard/export"
	dashboardDto "fleetdesk/internal/domains/dashboard/model/dto"
	dashboardMocks "fleetdesk/internal/domains/dashboard/service/mocks"
	"fleetdesk/internal/domains/sweep/model/dto"
	"fleetdesk/internal/domains/sweep/service"
	"fleetdesk/internal/reconcile"
	gDto "fleetdesk/shared/dto"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var today = time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)

type fixture struct {
	dashboard  *dashboardMocks.MockDashboard
	booking    *bookingMocks.MockBooking
	compliance *complianceMocks.MockCompliance
	kafka      *kafkaMocks.MockClient
	storage    *s3Mocks.MockStorage
	metrics    *metrics.Metrics
	svc        service.Sweep
}

func setup(t *testing.T) fixture {
	t.Helper()

	return setupWith(t, func(*config.Config) {})
}

func setupWith(t *testing.T, mutate func(cfg *config.Config)) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.Kafka.Topics.Alerts = "fleet.alerts"
	cfg.Scheduler.ReportDir = "reports/outstanding"
	cfg.External.S3.PublicDomain = "https://cdn.fleet.test"
	mutate(cfg)

	f := fixture{
		dashboard:  dashboardMocks.NewMockDashboard(ctrl),
		booking:    bookingMocks.NewMockBooking(ctrl),
		compliance: complianceMocks.NewMockCompliance(ctrl),
		kafka:      kafkaMocks.NewMockClient(ctrl),
		storage:    s3Mocks.NewMockStorage(ctrl),
		metrics:    metrics.New(),
	}

	f.svc = service.New(f.dashboard, f.booking, f.compliance, f.kafka, f.storage, f.metrics, cfg, otelMocks.NewOtel())

	return f
}

func summary() dashboardDto.SummaryResponse {
	return dashboardDto.SummaryResponse{
		AsOf:     "2024-06-10",
		Bookings: reconcile.BookingCounts{ByTag: map[reconcile.Tag]int{reconcile.TagOverdue: 1, reconcile.TagDueToday: 1}},
		Totals:   reconcile.Totals{Outstanding: decimal.NewFromInt(1600)},
	}
}

func overdue() bookingDto.GetOverdueResponse {
	return bookingDto.GetOverdueResponse{
		AsOf: "2024-06-10",
		Bookings: []bookingDto.OverdueBookingResponse{
			{BookingID: "b1", VehicleID: "v1", EndDate: "2024-06-05", Tag: string(reconcile.TagOverdue), DaysOverdue: 5, Outstanding: decimal.NewFromInt(1100)},
			{BookingID: "b2", VehicleID: "v2", EndDate: "2024-06-10", Tag: string(reconcile.TagDueToday), IsDueToday: true},
		},
		TotalData: 2,
	}
}

func compliance() complianceDto.GetCompliancesResponse {
	return complianceDto.GetCompliancesResponse{
		AsOf: "2024-06-10",
		Records: []complianceDto.ComplianceResponse{
			{ID: "c1", VehicleID: "v1", ExpiryDate: "2024-06-09", Status: string(reconcile.ComplianceExpired), DaysUntilExpiry: -1},
			{ID: "c2", VehicleID: "v2", ExpiryDate: "2024-06-20", Status: string(reconcile.ComplianceExpiringSoon), DaysUntilExpiry: 10},
		},
	}
}

func scrape(t *testing.T, m *metrics.Metrics) string {
	t.Helper()

	body := httptest.NewRecorder()
	m.Handler().ServeHTTP(body, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	return body.Body.String()
}

func TestSweepService_Run(t *testing.T) {
	t.Run("publishes gauges and alerts", func(t *testing.T) {
		f := setup(t)

		f.dashboard.EXPECT().Summary(gomock.Any(), today).Return(summary(), nil)
		f.booking.EXPECT().Overdue(gomock.Any(), today).Return(overdue(), nil)
		f.compliance.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any(), today).
			DoAndReturn(func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup, _ time.Time) (complianceDto.GetCompliancesResponse, error) {
				where, args := filter.GetWhereClause()

				assert.True(t, strings.HasPrefix(where, "(compliance_records.expiry_date <= :expiry_date AND (NOT EXISTS ("))
				assert.Contains(t, where, "renewal.vehicle_id = compliance_records.vehicle_id")
				assert.Contains(t, where, "renewal.record_type = compliance_records.record_type")
				assert.Contains(t, where, "renewal.expiry_date > compliance_records.expiry_date")
				assert.Equal(t, "2024-07-10", args["expiry_date"])

				return compliance(), nil
			})
		f.kafka.EXPECT().
			SendMessages(gomock.Any(), "fleet.alerts", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, msgs ...kafka.Message) error {
				require.Len(t, msgs, 4)

				types := make([]string, len(msgs))
				for i, msg := range msgs {
					alert, ok := msg.Value.(dto.Alert)
					require.True(t, ok)

					types[i] = alert.Type
				}

				assert.Equal(t, []string{
					dto.AlertBookingOverdue,
					dto.AlertBookingDueToday,
					dto.AlertComplianceExpired,
					dto.AlertComplianceExpiring,
				}, types)
				assert.Equal(t, "b1", msgs[0].Key)
				assert.Equal(t, "c2", msgs[3].Key)

				return nil
			})

		res, err := f.svc.Run(context.Background(), today)

		require.NoError(t, err)
		assert.Equal(t, 2, res.BookingAlerts)
		assert.Equal(t, 2, res.ComplianceAlerts)
		assert.True(t, res.Published)
		assert.Contains(t, scrape(t, f.metrics), `fleetdesk_ledger_amount{kind="outstanding"} 1600`)
	})

	t.Run("quiet night sends nothing", func(t *testing.T) {
		f := setup(t)

		f.dashboard.EXPECT().Summary(gomock.Any(), today).Return(summary(), nil)
		f.booking.EXPECT().Overdue(gomock.Any(), today).Return(bookingDto.GetOverdueResponse{AsOf: "2024-06-10"}, nil)
		f.compliance.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any(), today).Return(complianceDto.GetCompliancesResponse{}, nil)

		res, err := f.svc.Run(context.Background(), today)

		require.NoError(t, err)
		assert.False(t, res.Published)
	})

	t.Run("failed step does not stop the others", func(t *testing.T) {
		f := setup(t)

		f.dashboard.EXPECT().Summary(gomock.Any(), today).Return(dashboardDto.SummaryResponse{}, errors.New("database error"))
		f.booking.EXPECT().Overdue(gomock.Any(), today).Return(overdue(), nil)
		f.compliance.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any(), today).Return(complianceDto.GetCompliancesResponse{}, errors.New("database error"))
		f.kafka.EXPECT().SendMessages(gomock.Any(), "fleet.alerts", gomock.Any()).Return(nil)

		res, err := f.svc.Run(context.Background(), today)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to build dashboard summary")
		assert.Contains(t, err.Error(), "failed to get expiring compliance records")
		assert.Equal(t, 2, res.BookingAlerts)
		assert.True(t, res.Published)
	})

	t.Run("kafka failure", func(t *testing.T) {
		f := setup(t)

		f.dashboard.EXPECT().Summary(gomock.Any(), today).Return(summary(), nil)
		f.booking.EXPECT().Overdue(gomock.Any(), today).Return(overdue(), nil)
		f.compliance.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any(), today).Return(compliance(), nil)
		f.kafka.EXPECT().SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("broker down"))

		res, err := f.svc.Run(context.Background(), today)

		require.Error(t, err)
		assert.False(t, res.Published)
	})
}

func TestSweepService_ArchiveReport(t *testing.T) {
	t.Run("uploads one workbook per day", func(t *testing.T) {
		f := setup(t)

		f.dashboard.EXPECT().OutstandingReport(gomock.Any(), today).Return([]byte("xlsx"), nil)
		f.storage.EXPECT().
			UploadBytes(gomock.Any(), "reports/outstanding", "2024-06-10.xlsx", export.ContentType, []byte("xlsx")).
			Return("https://cdn.fleet.test/reports/outstanding/2024-06-10.xlsx", nil)

		url, err := f.svc.ArchiveReport(context.Background(), today)

		require.NoError(t, err)
		assert.Equal(t, "https://cdn.fleet.test/reports/outstanding/2024-06-10.xlsx", url)
	})

	t.Run("private bucket returns a signed link", func(t *testing.T) {
		f := setupWith(t, func(cfg *config.Config) { cfg.External.S3.PublicDomain = "" })

		f.dashboard.EXPECT().OutstandingReport(gomock.Any(), today).Return([]byte("xlsx"), nil)
		f.storage.EXPECT().UploadBytes(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return("/reports/outstanding/2024-06-10.xlsx", nil)
		f.storage.EXPECT().
			PresignURL(gomock.Any(), "reports/outstanding", "2024-06-10.xlsx", 7*24*time.Hour).
			Return("https://bucket.test/reports/outstanding/2024-06-10.xlsx?X-Amz-Signature=abc", nil)

		url, err := f.svc.ArchiveReport(context.Background(), today)

		require.NoError(t, err)
		assert.Contains(t, url, "X-Amz-Signature")
	})

	t.Run("prunes the report outside retention", func(t *testing.T) {
		f := setupWith(t, func(cfg *config.Config) { cfg.Scheduler.ReportRetentionDays = 30 })

		f.dashboard.EXPECT().OutstandingReport(gomock.Any(), today).Return([]byte("xlsx"), nil)
		f.storage.EXPECT().UploadBytes(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return("https://cdn.fleet.test/x", nil)
		f.storage.EXPECT().DeleteFile(gomock.Any(), "reports/outstanding", "2024-05-11.xlsx").Return(errors.New("no such key"))

		url, err := f.svc.ArchiveReport(context.Background(), today)

		require.NoError(t, err, "a failed prune does not fail the archive")
		assert.Equal(t, "https://cdn.fleet.test/x", url)
	})

	t.Run("report error skips the upload", func(t *testing.T) {
		f := setup(t)

		f.dashboard.EXPECT().OutstandingReport(gomock.Any(), today).Return(nil, errors.New("database error"))

		_, err := f.svc.ArchiveReport(context.Background(), today)

		assert.Error(t, err)
	})

	t.Run("upload error", func(t *testing.T) {
		f := setup(t)

		f.dashboard.EXPECT().OutstandingReport(gomock.Any(), today).Return([]byte("xlsx"), nil)
		f.storage.EXPECT().UploadBytes(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return("", errors.New("access denied"))

		_, err := f.svc.ArchiveReport(context.Background(), today)

		assert.Error(t, err)
	})
}
