package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fleetdesk/config"
	"fleetdesk/infras/otel"
	"fleetdesk/internal/domains/booking/model"
	"fleetdesk/internal/domains/booking/model/dto"
	"fleetdesk/internal/domains/booking/repository"
	chargeRepo "fleetdesk/internal/domains/charge/repository"
	customerModel "fleetdesk/internal/domains/customer/model"
	customerRepo "fleetdesk/internal/domains/customer/repository"
	extensionRepo "fleetdesk/internal/domains/extension/repository"
	ledgerService "fleetdesk/internal/domains/ledger/service"
	retrievalRepo "fleetdesk/internal/domains/retrieval/repository"
	vehicleModel "fleetdesk/internal/domains/vehicle/model"
	vehicleRepo "fleetdesk/internal/domains/vehicle/repository"
	"fleetdesk/shared"
	"fleetdesk/shared/cache"
	"fleetdesk/shared/constant"
	gDto "fleetdesk/shared/dto"
	"fleetdesk/shared/failure"
	gRepo "fleetdesk/shared/repository"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetBooking    = "booking:get"
	cacheGetAllBooking = "booking:gets"
	cacheCountBooking  = "booking:count"
)

var cacheGetBalance = constant.CachePrefixLedger + ":balance"

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) error
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	Update(ctx context.Context, req dto.UpdateBookingRequest, id string) error
	Delete(ctx context.Context, id string) error

	Balance(ctx context.Context, id string, today time.Time) (dto.BalanceResponse, error)
	Statement(ctx context.Context, id string, today time.Time) ([]byte, error)
	Overdue(ctx context.Context, today time.Time) (dto.GetOverdueResponse, error)

	AddExtension(ctx context.Context, id string, req dto.CreateExtensionRequest) error
	GetExtensions(ctx context.Context, id string) (dto.GetExtensionsResponse, error)
	AddCharge(ctx context.Context, id string, req dto.CreateChargeRequest) error
	GetCharges(ctx context.Context, id string) (dto.GetChargesResponse, error)
	Return(ctx context.Context, id string, req dto.ReturnVehicleRequest) (dto.ReturnResponse, error)
}

type serviceImpl struct {
	repo          repository.Booking
	customerRepo  customerRepo.Customer
	vehicleRepo   vehicleRepo.Vehicle
	extensionRepo extensionRepo.Extension
	chargeRepo    chargeRepo.Charge
	retrievalRepo retrievalRepo.Retrieval
	ledger        ledgerService.Ledger
	transactor    gRepo.Transactor
	cfg           *config.Config
	cache         cache.RedisCache
	otel          otel.Otel
}

func New(
	repo repository.Booking,
	customerRepo customerRepo.Customer,
	vehicleRepo vehicleRepo.Vehicle,
	extensionRepo extensionRepo.Extension,
	chargeRepo chargeRepo.Charge,
	retrievalRepo retrievalRepo.Retrieval,
	ledger ledgerService.Ledger,
	transactor gRepo.Transactor,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Booking {
	return &serviceImpl{
		repo:          repo,
		customerRepo:  customerRepo,
		vehicleRepo:   vehicleRepo,
		extensionRepo: extensionRepo,
		chargeRepo:    chargeRepo,
		retrievalRepo: retrievalRepo,
		ledger:        ledger,
		transactor:    transactor,
		cfg:           cfg,
		cache:         cache,
		otel:          otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Booking.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	booking, err := req.ToModel(user)
	if err != nil {
		return failure.BadRequest(err) // nolint:wrapcheck
	}

	if booking.EndDate.Before(booking.StartDate) {
		return failure.InvalidDateRange("end_date", "start_date") // nolint:wrapcheck
	}

	if err = s.checkParties(ctx, booking.CustomerID, booking.VehicleID); err != nil {
		return err
	}

	if err = s.repo.Insert(ctx, booking); err != nil {
		log.Error().Err(err).Msg("failed to create booking")

		return fmt.Errorf("failed to create booking: %w", err)
	}

	s.invalidate(ctx, constant.Empty)

	return nil
}

func (s *serviceImpl) checkParties(ctx context.Context, customerID, vehicleID string) error {
	if customerID != constant.Empty {
		exist, err := s.customerRepo.Exist(ctx, shared.FilterByID(customerID, customerModel.FieldID, customerModel.TableName))
		if err != nil {
			log.Error().Err(err).Msg("failed to check if customer exists")

			return fmt.Errorf("failed to check if customer exists: %w", err)
		}

		if !exist {
			return failure.MissingReference("customer") // nolint:wrapcheck
		}
	}

	if vehicleID != constant.Empty {
		exist, err := s.vehicleRepo.Exist(ctx, shared.FilterByID(vehicleID, vehicleModel.FieldID, vehicleModel.TableName))
		if err != nil {
			log.Error().Err(err).Msg("failed to check if vehicle exists")

			return fmt.Errorf("failed to check if vehicle exists: %w", err)
		}

		if !exist {
			return failure.MissingReference("vehicle") // nolint:wrapcheck
		}
	}

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Booking.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Booking.Count")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Booking.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetBooking, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking")

		return res, nil
	}

	booking, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(booking)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking to cache")
		}
	}()

	return res, nil
}

// find loads a booking or reports it as not found.
func (s *serviceImpl) find(ctx context.Context, id string) (model.Booking, error) {
	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return booking, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, failure.NotFound(model.EntityName) // nolint:wrapcheck
	}

	return booking, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateBookingRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Booking.Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req == (dto.UpdateBookingRequest{}) {
		return failure.EmptyUpdate
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	booking, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	startDate, endDate := booking.StartDate, booking.EndDate

	if req.StartDate != constant.Empty {
		if startDate, err = shared.ParseDate(req.StartDate); err != nil {
			return failure.BadRequest(err) // nolint:wrapcheck
		}
	}

	if req.EndDate != constant.Empty {
		if endDate, err = shared.ParseDate(req.EndDate); err != nil {
			return failure.BadRequest(err) // nolint:wrapcheck
		}
	}

	if endDate.Before(startDate) {
		return failure.InvalidDateRange("end_date", "start_date") // nolint:wrapcheck
	}

	if err = s.checkParties(ctx, constant.Empty, req.VehicleID); err != nil {
		return err
	}

	req.Normalize()

	updatedFields := shared.TransformFields(req, user)
	if err = s.repo.Update(ctx, updatedFields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update booking")

		return fmt.Errorf("failed to update booking: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Booking.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if booking exists")

		return fmt.Errorf("failed to check if booking exists: %w", err)
	}

	if !exist {
		return failure.NotFound(model.EntityName) // nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete booking")

		return fmt.Errorf("failed to delete booking: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

// invalidate drops the listing caches, the cached booking when id is set, and
// everything derived from the ledger.
func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if id != constant.Empty {
			if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBooking, id)); err != nil {
				log.Error().Err(err).Msg("failed to delete booking from cache")
			}
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)
		shared.InvalidateCaches(c, s.cache, constant.CachePrefixLedger)
	}()
}
