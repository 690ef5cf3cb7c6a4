package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fleetdesk/config"
	"fleetdesk/infras/otel"
	complianceModel "fleetdesk/internal/domains/compliance/model"
	complianceRepo "fleetdesk/internal/domains/compliance/repository"
	"fleetdesk/internal/domains/dashboard/export"
	"fleetdesk/internal/domains/dashboard/model/dto"
	ledgerModel "fleetdesk/internal/domains/ledger/model"
	ledgerService "fleetdesk/internal/domains/ledger/service"
	maintenanceModel "fleetdesk/internal/domains/maintenance/model"
	maintenanceRepo "fleetdesk/internal/domains/maintenance/repository"
	vehicleModel "fleetdesk/internal/domains/vehicle/model"
	vehicleRepo "fleetdesk/internal/domains/vehicle/repository"
	"fleetdesk/internal/reconcile"
	"fleetdesk/shared"
	"fleetdesk/shared/cache"
	"fleetdesk/shared/constant"
	gDto "fleetdesk/shared/dto"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

var cacheGetSummary = constant.CachePrefixLedger + ":dashboard"

type Dashboard interface {
	Summary(ctx context.Context, today time.Time) (dto.SummaryResponse, error)
	OutstandingReport(ctx context.Context, today time.Time) ([]byte, error)
}

type serviceImpl struct {
	ledger          ledgerService.Ledger
	complianceRepo  complianceRepo.Compliance
	maintenanceRepo maintenanceRepo.Maintenance
	vehicleRepo     vehicleRepo.Vehicle
	cfg             *config.Config
	cache           cache.RedisCache
	otel            otel.Otel
}

func New(
	ledger ledgerService.Ledger,
	complianceRepo complianceRepo.Compliance,
	maintenanceRepo maintenanceRepo.Maintenance,
	vehicleRepo vehicleRepo.Vehicle,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Dashboard {
	return &serviceImpl{
		ledger:          ledger,
		complianceRepo:  complianceRepo,
		maintenanceRepo: maintenanceRepo,
		vehicleRepo:     vehicleRepo,
		cfg:             cfg,
		cache:           cache,
		otel:            otel,
	}
}

// Summary loads every booking, compliance record, maintenance task and vehicle
// at once and folds them into the dashboard counters.
func (s *serviceImpl) Summary(ctx context.Context, today time.Time) (res dto.SummaryResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Dashboard.Summary")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetSummary, shared.FormatDate(reconcile.Date(today)))

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for dashboard summary")

		return res, nil
	}

	var (
		snapshot ledgerModel.Snapshot
		records  []complianceModel.Record
		tasks    []maintenanceModel.Task
		vehicles []vehicleModel.Vehicle
	)

	group, gctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		loaded, err := s.ledger.Load(gctx, gDto.FilterGroup{})
		if err != nil {
			return fmt.Errorf("failed to load ledger for dashboard: %w", err)
		}

		snapshot = loaded

		return nil
	})

	group.Go(func() error {
		rows, err := s.complianceRepo.GetAll(gctx, gDto.QueryParams{}, gDto.FilterGroup{})
		if err != nil {
			return fmt.Errorf("failed to get compliance records for dashboard: %w", err)
		}

		records = rows

		return nil
	})

	group.Go(func() error {
		rows, err := s.maintenanceRepo.GetAll(gctx, gDto.QueryParams{}, gDto.FilterGroup{})
		if err != nil {
			return fmt.Errorf("failed to get maintenance tasks for dashboard: %w", err)
		}

		tasks = rows

		return nil
	})

	group.Go(func() error {
		rows, err := s.vehicleRepo.GetAll(gctx, gDto.QueryParams{}, gDto.FilterGroup{}, vehicleModel.FieldID, vehicleModel.FieldStatus)
		if err != nil {
			return fmt.Errorf("failed to get vehicles for dashboard: %w", err)
		}

		vehicles = rows

		return nil
	})

	if err = group.Wait(); err != nil {
		log.Error().Err(err).Msg("failed to load dashboard")

		return res, err
	}

	res.Build(snapshot, records, tasks, vehicles, today)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save dashboard summary to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) OutstandingReport(ctx context.Context, today time.Time) (res []byte, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Dashboard.OutstandingReport")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	snapshot, err := s.ledger.Load(ctx, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to load ledger for outstanding report")

		return nil, fmt.Errorf("failed to load ledger for outstanding report: %w", err)
	}

	rows := export.Rows(snapshot, today)
	scope.SetAttribute("report.rows", len(rows))

	res, err = export.Workbook(rows, today)
	if err != nil {
		log.Error().Err(err).Msg("failed to build outstanding workbook")

		return nil, fmt.Errorf("failed to build outstanding workbook: %w", err)
	}

	return res, nil
}
