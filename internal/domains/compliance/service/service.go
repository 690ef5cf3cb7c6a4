package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fleetdesk/config"
	"fleetdesk/infras/otel"
	"fleetdesk/internal/domains/compliance/model"
	"fleetdesk/internal/domains/compliance/model/dto"
	"fleetdesk/internal/domains/compliance/repository"
	vehicleModel "fleetdesk/internal/domains/vehicle/model"
	vehicleRepo "fleetdesk/internal/domains/vehicle/repository"
	"fleetdesk/internal/reconcile"
	"fleetdesk/shared"
	"fleetdesk/shared/cache"
	"fleetdesk/shared/constant"
	gDto "fleetdesk/shared/dto"
	"fleetdesk/shared/failure"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetCompliance    = "compliance:get"
	cacheGetAllCompliance = "compliance:gets"
	cacheCountCompliance  = "compliance:count"
)

type Compliance interface {
	Create(ctx context.Context, req dto.CreateComplianceRequest) error
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup, today time.Time) (dto.GetCompliancesResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string, today time.Time) (dto.ComplianceResponse, error)
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo        repository.Compliance
	vehicleRepo vehicleRepo.Vehicle
	cfg         *config.Config
	cache       cache.RedisCache
	otel        otel.Otel
}

func New(repo repository.Compliance, vehicleRepo vehicleRepo.Vehicle, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Compliance {
	return &serviceImpl{
		repo:        repo,
		vehicleRepo: vehicleRepo,
		cfg:         cfg,
		cache:       cache,
		otel:        otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateComplianceRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Compliance.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	record, err := req.ToModel(user)
	if err != nil {
		return failure.BadRequest(err) // nolint:wrapcheck
	}

	if record.ExpiryDate.Before(record.DateRenewed) {
		return failure.InvalidDateRange("expiry_date", "date_renewed") // nolint:wrapcheck
	}

	exist, err := s.vehicleRepo.Exist(ctx, shared.FilterByID(record.VehicleID, vehicleModel.FieldID, vehicleModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if vehicle exists")

		return fmt.Errorf("failed to check if vehicle exists: %w", err)
	}

	if !exist {
		return failure.MissingReference("vehicle") // nolint:wrapcheck
	}

	if err = s.repo.Insert(ctx, record); err != nil {
		log.Error().Err(err).Msg("failed to create compliance record")

		return fmt.Errorf("failed to create compliance record: %w", err)
	}

	s.invalidate(ctx, constant.Empty)

	return nil
}

// GetAll derives each record's tier against today, so the cache key carries the date.
func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup, today time.Time) (res dto.GetCompliancesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Compliance.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(shared.BuildCacheKey(cacheGetAllCompliance, shared.FormatDate(reconcile.Date(today))), req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for compliance records")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count compliance records")

		return res, fmt.Errorf("failed to count compliance records: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get compliance records")

		return res, fmt.Errorf("failed to get compliance records: %w", err)
	}

	res.FromModels(models, total, req.Limit, today)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save compliance records to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Compliance.Count")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountCompliance, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count compliance records")

		return res, fmt.Errorf("failed to count compliance records: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save compliance count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string, today time.Time) (res dto.ComplianceResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Compliance.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetCompliance, id, shared.FormatDate(reconcile.Date(today)))

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for compliance record")

		return res, nil
	}

	record, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get compliance record")

		return res, fmt.Errorf("failed to get compliance record: %w", err)
	}

	if record.ID == constant.Empty {
		return res, failure.NotFound(model.EntityName) // nolint:wrapcheck
	}

	res.FromModel(record, today)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save compliance record to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Compliance.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if compliance record exists")

		return fmt.Errorf("failed to check if compliance record exists: %w", err)
	}

	if !exist {
		return failure.NotFound(model.EntityName) // nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete compliance record")

		return fmt.Errorf("failed to delete compliance record: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if id != constant.Empty {
			shared.InvalidateCaches(c, s.cache, shared.BuildCacheKey(cacheGetCompliance, id))
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllCompliance)
		shared.InvalidateCaches(c, s.cache, cacheCountCompliance)
		shared.InvalidateCaches(c, s.cache, constant.CachePrefixLedger)
	}()
}
