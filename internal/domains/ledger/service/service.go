package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fleetdesk/infras/otel"
	bookingModel "fleetdesk/internal/domains/booking/model"
	bookingRepo "fleetdesk/internal/domains/booking/repository"
	chargeModel "fleetdesk/internal/domains/charge/model"
	chargeRepo "fleetdesk/internal/domains/charge/repository"
	extensionModel "fleetdesk/internal/domains/extension/model"
	extensionRepo "fleetdesk/internal/domains/extension/repository"
	"fleetdesk/internal/domains/ledger/model"
	retrievalModel "fleetdesk/internal/domains/retrieval/model"
	retrievalRepo "fleetdesk/internal/domains/retrieval/repository"
	"fleetdesk/internal/reconcile"
	"fleetdesk/shared"
	"fleetdesk/shared/constant"
	gDto "fleetdesk/shared/dto"
	"fmt"
	"slices"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const childBatchSize = 1000

// Ledger assembles reconciliation snapshots from storage. Bookings are selected
// by filter; their extensions, extra charges and return entries are fetched in
// parallel.
type Ledger interface {
	Load(ctx context.Context, filter gDto.FilterGroup) (model.Snapshot, error)
}

type serviceImpl struct {
	bookingRepo   bookingRepo.Booking
	extensionRepo extensionRepo.Extension
	chargeRepo    chargeRepo.Charge
	retrievalRepo retrievalRepo.Retrieval
	otel          otel.Otel
}

func New(
	bookingRepo bookingRepo.Booking,
	extensionRepo extensionRepo.Extension,
	chargeRepo chargeRepo.Charge,
	retrievalRepo retrievalRepo.Retrieval,
	otel otel.Otel,
) Ledger {
	return &serviceImpl{
		bookingRepo:   bookingRepo,
		extensionRepo: extensionRepo,
		chargeRepo:    chargeRepo,
		retrievalRepo: retrievalRepo,
		otel:          otel,
	}
}

func (s *serviceImpl) Load(ctx context.Context, filter gDto.FilterGroup) (res model.Snapshot, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Ledger.Load")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	bookings, err := s.bookingRepo.GetAll(ctx, gDto.QueryParams{}, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings for ledger")

		return res, fmt.Errorf("failed to get bookings for ledger: %w", err)
	}

	res = model.Snapshot{
		Bookings:   bookingModel.ToLedgers(bookings),
		Extensions: map[string][]reconcile.Extension{},
		Charges:    map[string][]reconcile.ExtraCharge{},
		Returned:   map[string]bool{},
	}

	ids := res.IDs()
	if len(ids) == 0 {
		return res, nil
	}

	scope.SetAttribute("ledger.bookings", len(ids))

	var (
		extensions []extensionModel.Extension
		charges    []chargeModel.Charge
		retrievals []retrievalModel.Retrieval
	)

	group, gctx := errgroup.WithContext(ctx)

	group.Go(func() (err error) {
		extensions, err = fetch(gctx, childFilters(filter, ids, extensionModel.FieldBookingID, extensionModel.TableName), s.extensionRepo.GetAll)
		if err != nil {
			return fmt.Errorf("failed to get extensions for ledger: %w", err)
		}

		return nil
	})

	group.Go(func() (err error) {
		charges, err = fetch(gctx, childFilters(filter, ids, chargeModel.FieldBookingID, chargeModel.TableName), s.chargeRepo.GetAll)
		if err != nil {
			return fmt.Errorf("failed to get charges for ledger: %w", err)
		}

		return nil
	})

	group.Go(func() (err error) {
		retrievals, err = fetch(gctx, childFilters(filter, ids, retrievalModel.FieldBookingID, retrievalModel.TableName), s.retrievalRepo.GetAll)
		if err != nil {
			return fmt.Errorf("failed to get returns for ledger: %w", err)
		}

		return nil
	})

	if err = group.Wait(); err != nil {
		log.Error().Err(err).Msg("failed to load ledger")

		return res, err
	}

	res.Extensions = reconcile.GroupExtensions(extensionModel.ToLedgers(extensions))
	res.Charges = reconcile.GroupCharges(chargeModel.ToLedgers(charges))
	res.Returned = retrievalModel.ReturnedSet(retrievals)

	return res, nil
}

// childFilters scopes a child table to the loaded bookings. An unfiltered load
// reads the whole table; otherwise ids are bound in batches so no statement
// comes near the Postgres limit of 65535 parameters.
func childFilters(filter gDto.FilterGroup, ids []string, field, table string) []gDto.FilterGroup {
	if where, _ := filter.GetWhereClause(); where == "" {
		return []gDto.FilterGroup{{}}
	}

	filters := make([]gDto.FilterGroup, 0, len(ids)/childBatchSize+1)
	for batch := range slices.Chunk(ids, childBatchSize) {
		filters = append(filters, shared.FilterByIDs(batch, field, table))
	}

	return filters
}

func fetch[T any](
	ctx context.Context,
	filters []gDto.FilterGroup,
	getAll func(context.Context, gDto.QueryParams, gDto.FilterGroup, ...string) ([]T, error),
) ([]T, error) {
	var rows []T

	for _, filter := range filters {
		batch, err := getAll(ctx, gDto.QueryParams{}, filter)
		if err != nil {
			return nil, err
		}

		rows = append(rows, batch...)
	}

	return rows, nil
}
