package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fleetdesk/config"
	"fleetdesk/infras/kafka"
	"fleetdesk/infras/metrics"
	"fleetdesk/infras/otel"
	"fleetdesk/infras/s3"
	bookingService "fleetdesk/internal/domains/booking/service"
	complianceModel "fleetdesk/internal/domains/compliance/model"
	complianceService "fleetdesk/internal/domains/compliance/service"
	"fleetdesk/internal/domains/dashboard/export"
	dashboardService "fleetdesk/internal/domains/dashboard/service"
	"fleetdesk/internal/domains/sweep/model/dto"
	"fleetdesk/internal/reconcile"
	"fleetdesk/shared"
	"fleetdesk/shared/constant"
	gDto "fleetdesk/shared/dto"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	JobSweep  = "sweep"
	JobReport = "report"

	reportLinkExpiry = 7 * 24 * time.Hour
)

// Sweep is the nightly housekeeping run. Each step logs and carries on when it
// fails; the joined error is returned at the end.
type Sweep interface {
	Run(ctx context.Context, today time.Time) (dto.SweepResult, error)
	ArchiveReport(ctx context.Context, today time.Time) (string, error)
}

type serviceImpl struct {
	dashboard  dashboardService.Dashboard
	booking    bookingService.Booking
	compliance complianceService.Compliance
	kafka      kafka.Client
	storage    s3.Storage
	metrics    *metrics.Metrics
	cfg        *config.Config
	otel       otel.Otel
}

func New(
	dashboard dashboardService.Dashboard,
	booking bookingService.Booking,
	compliance complianceService.Compliance,
	kafka kafka.Client,
	storage s3.Storage,
	metrics *metrics.Metrics,
	cfg *config.Config,
	otel otel.Otel,
) Sweep {
	return &serviceImpl{
		dashboard:  dashboard,
		booking:    booking,
		compliance: compliance,
		kafka:      kafka,
		storage:    storage,
		metrics:    metrics,
		cfg:        cfg,
		otel:       otel,
	}
}

func (s *serviceImpl) Run(ctx context.Context, today time.Time) (res dto.SweepResult, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Sweep.Run")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	res.AsOf = shared.FormatDate(reconcile.Date(today))

	var errs []error

	summary, err := s.dashboard.Summary(ctx, today)
	if err != nil {
		log.Error().Err(err).Msg("failed to build dashboard summary for sweep")

		errs = append(errs, fmt.Errorf("failed to build dashboard summary: %w", err))
	} else if s.metrics != nil {
		s.metrics.ObserveFleet(summary.Bookings, summary.Compliance, summary.Maintenance, summary.Totals)
	}

	alerts := []dto.Alert{}

	overdue, err := s.booking.Overdue(ctx, today)
	if err != nil {
		log.Error().Err(err).Msg("failed to get overdue bookings for sweep")

		errs = append(errs, fmt.Errorf("failed to get overdue bookings: %w", err))
	} else {
		bookingAlerts := dto.BookingAlerts(overdue)
		res.BookingAlerts = len(bookingAlerts)
		alerts = append(alerts, bookingAlerts...)
	}

	records, err := s.compliance.GetAll(ctx, gDto.QueryParams{}, ExpiringFilter(today), today)
	if err != nil {
		log.Error().Err(err).Msg("failed to get expiring compliance records for sweep")

		errs = append(errs, fmt.Errorf("failed to get expiring compliance records: %w", err))
	} else {
		complianceAlerts := dto.ComplianceAlerts(records)
		res.ComplianceAlerts = len(complianceAlerts)
		alerts = append(alerts, complianceAlerts...)
	}

	scope.SetAttribute("sweep.alerts", len(alerts))

	if len(alerts) > 0 {
		if err = s.kafka.SendMessages(ctx, s.cfg.Kafka.Topics.Alerts, dto.ToMessages(alerts)...); err != nil {
			log.Error().Err(err).Int("alerts", len(alerts)).Msg("failed to publish sweep alerts")

			errs = append(errs, fmt.Errorf("failed to publish alerts: %w", err))
		} else {
			res.Published = true
		}
	}

	err = errors.Join(errs...)

	log.Info().
		Str("asOf", res.AsOf).
		Int("bookingAlerts", res.BookingAlerts).
		Int("complianceAlerts", res.ComplianceAlerts).
		Bool("published", res.Published).
		Msg("sweep finished")

	return res, err
}

// ArchiveReport uploads the outstanding workbook under the report directory,
// one file per day, and prunes the file that fell out of the retention window.
func (s *serviceImpl) ArchiveReport(ctx context.Context, today time.Time) (url string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Sweep.ArchiveReport")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	data, err := s.dashboard.OutstandingReport(ctx, today)
	if err != nil {
		log.Error().Err(err).Msg("failed to build outstanding report for archive")

		return constant.Empty, fmt.Errorf("failed to build outstanding report: %w", err)
	}

	fileName := ReportFileName(today)
	directory := s.cfg.Scheduler.ReportDir

	url, err = s.storage.UploadBytes(ctx, directory, fileName, export.ContentType, data)
	if err != nil {
		log.Error().Err(err).Str("file", fileName).Msg("failed to archive outstanding report")

		return constant.Empty, fmt.Errorf("failed to archive outstanding report: %w", err)
	}

	// Private buckets have no public domain; hand out a signed link instead.
	if s.cfg.External.S3.PublicDomain == constant.Empty {
		url, err = s.storage.PresignURL(ctx, directory, fileName, reportLinkExpiry)
		if err != nil {
			log.Error().Err(err).Str("file", fileName).Msg("failed to sign archived report link")

			return constant.Empty, fmt.Errorf("failed to sign archived report link: %w", err)
		}
	}

	if retention := s.cfg.Scheduler.ReportRetentionDays; retention > 0 {
		expired := ReportFileName(reconcile.Date(today).AddDate(0, 0, -retention))
		if delErr := s.storage.DeleteFile(ctx, directory, expired); delErr != nil {
			log.Warn().Err(delErr).Str("file", expired).Msg("failed to prune expired report")
		}
	}

	log.Info().Str("url", url).Msg("outstanding report archived")

	return url, nil
}

func ReportFileName(today time.Time) string {
	return shared.FormatDate(reconcile.Date(today)) + ".xlsx"
}

// supersededClause drops records that a later renewal of the same vehicle and
// record type has replaced.
var supersededClause = fmt.Sprintf(
	"NOT EXISTS (SELECT 1 FROM %[1]s renewal WHERE renewal.%[2]s = %[1]s.%[2]s AND renewal.%[3]s = %[1]s.%[3]s AND renewal.%[4]s > %[1]s.%[4]s)",
	complianceModel.TableName, complianceModel.FieldVehicleID, complianceModel.FieldRecordType, complianceModel.FieldExpiryDate,
)

// ExpiringFilter selects current records whose expiry falls inside the warning
// window or has already passed.
func ExpiringFilter(today time.Time) gDto.FilterGroup {
	horizon := reconcile.Date(today).AddDate(0, 0, reconcile.ExpiringSoonWindowDays)

	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    complianceModel.FieldExpiryDate,
				Value:    shared.FormatDate(horizon),
				Operator: gDto.FilterOperatorLessEq,
				Table:    complianceModel.TableName,
			},
			gDto.Filter{Operator: gDto.FilterPlainQuery, Value: supersededClause},
		},
	}
}
