package service

import (
	"context"
	"fleetdesk/internal/domains/booking/model"
	"fleetdesk/internal/domains/booking/model/dto"
	"fleetdesk/internal/domains/booking/statement"
	chargeModel "fleetdesk/internal/domains/charge/model"
	customerModel "fleetdesk/internal/domains/customer/model"
	extensionModel "fleetdesk/internal/domains/extension/model"
	ledgerModel "fleetdesk/internal/domains/ledger/model"
	vehicleModel "fleetdesk/internal/domains/vehicle/model"
	"fleetdesk/internal/reconcile"
	"fleetdesk/shared"
	"fleetdesk/shared/constant"
	gDto "fleetdesk/shared/dto"
	"fleetdesk/shared/failure"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

func (s *serviceImpl) Balance(ctx context.Context, id string, today time.Time) (res dto.BalanceResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Booking.Balance")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetBalance, id, shared.FormatDate(reconcile.Date(today)))

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking balance")

		return res, nil
	}

	snapshot, booking, err := s.loadOne(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromLedger(booking, snapshot.Breakdown(booking), snapshot.Returned[id], today)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking balance to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) loadOne(ctx context.Context, id string) (ledgerModel.Snapshot, reconcile.Booking, error) {
	snapshot, err := s.ledger.Load(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Str("booking", id).Msg("failed to load booking ledger")

		return snapshot, reconcile.Booking{}, fmt.Errorf("failed to load booking ledger: %w", err)
	}

	if len(snapshot.Bookings) == 0 {
		return snapshot, reconcile.Booking{}, failure.NotFound(model.EntityName) // nolint:wrapcheck
	}

	return snapshot, snapshot.Bookings[0], nil
}

func (s *serviceImpl) Statement(ctx context.Context, id string, today time.Time) (res []byte, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Booking.Statement")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	snapshot, booking, err := s.loadOne(ctx, id)
	if err != nil {
		return nil, err
	}

	customer, err := s.customerRepo.Get(ctx, shared.FilterByID(booking.CustomerID, customerModel.FieldID, customerModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get customer for statement")

		return nil, fmt.Errorf("failed to get customer for statement: %w", err)
	}

	vehicle, err := s.vehicleRepo.Get(ctx, shared.FilterByID(booking.VehicleID, vehicleModel.FieldID, vehicleModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get vehicle for statement")

		return nil, fmt.Errorf("failed to get vehicle for statement: %w", err)
	}

	extensions, err := s.extensionRepo.GetAll(ctx, sortByCreatedAsc, shared.FilterByID(id, extensionModel.FieldBookingID, extensionModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get extensions for statement")

		return nil, fmt.Errorf("failed to get extensions for statement: %w", err)
	}

	charges, err := s.chargeRepo.GetAll(ctx, sortByCreatedAsc, shared.FilterByID(id, chargeModel.FieldBookingID, chargeModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get charges for statement")

		return nil, fmt.Errorf("failed to get charges for statement: %w", err)
	}

	returned := snapshot.Returned[id]

	res, err = statement.BuildPDF(statement.Statement{
		Issuer:         s.cfg.App.Name,
		Locale:         s.cfg.App.Locale,
		AsOf:           reconcile.Date(today),
		Booking:        booking,
		CustomerName:   customer.FullName,
		VehicleLabel:   fmt.Sprintf("%s %s %s", vehicle.PlateNumber, vehicle.Make, vehicle.Model),
		Breakdown:      snapshot.Breakdown(booking),
		Classification: reconcile.ClassifyBooking(booking, today, returned),
		Returned:       returned,
		Lines:          statementLines(booking, extensions, charges),
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to build statement")

		return nil, fmt.Errorf("failed to build statement: %w", err)
	}

	return res, nil
}

func statementLines(booking reconcile.Booking, extensions []extensionModel.Extension, charges []chargeModel.Charge) []statement.Line {
	principal := reconcile.PrincipalOutstanding(booking)

	lines := []statement.Line{{
		Date:        booking.StartDate,
		Description: "Rental",
		Amount:      booking.TotalAmount,
		Paid:        booking.TotalAmount.Sub(principal),
		Owed:        principal,
	}}

	for _, extension := range extensions {
		ledger := extension.ToLedger()

		description := "Extension to " + shared.FormatDate(extension.NewEndDate)
		if ledger.Settled() {
			description += " (receipt " + extension.ReceiptNo + ")"
		}

		lines = append(lines, statement.Line{
			Date:        extension.PreviousEndDate,
			Description: description,
			Amount:      ledger.AmountPaid,
			Paid:        ledger.AmountPaid.Sub(ledger.Owed()),
			Owed:        ledger.Owed(),
		})
	}

	for _, charge := range charges {
		ledger := charge.ToLedger()

		// Paid never exceeds Amount on a line; any excess is named instead.
		description := charge.Description
		paid := ledger.AmountPaid
		if excess := paid.Sub(ledger.Amount); excess.IsPositive() {
			description += " (overpaid " + excess.StringFixed(2) + ")"
			paid = ledger.Amount
		}

		lines = append(lines, statement.Line{
			Date:        charge.CreatedAt,
			Description: description,
			Amount:      ledger.Amount,
			Paid:        paid,
			Owed:        ledger.Shortfall(),
		})
	}

	return lines
}

// Overdue lists eligible bookings that end on or before today and are either
// overdue or due back today.
func (s *serviceImpl) Overdue(ctx context.Context, today time.Time) (res dto.GetOverdueResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Booking.Overdue")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	snapshot, err := s.ledger.Load(ctx, DueFilter(today))
	if err != nil {
		log.Error().Err(err).Msg("failed to load overdue bookings")

		return res, fmt.Errorf("failed to load overdue bookings: %w", err)
	}

	res.FromClassified(snapshot.Flagged(today), today)

	return res, nil
}

// DueFilter selects bookings still out on the road whose end date is today or
// earlier.
func DueFilter(today time.Time) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldStatus,
				Value:    []string{string(reconcile.BookingConfirmed), string(reconcile.BookingActive), string(reconcile.BookingExtended)},
				Operator: gDto.FilterOperatorIn,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldEndDate,
				Value:    shared.FormatDate(reconcile.Date(today)),
				Operator: gDto.FilterOperatorLessEq,
				Table:    model.TableName,
			},
		},
	}
}
