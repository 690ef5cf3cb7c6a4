package service

import (
	"context"
	"fleetdesk/internal/domains/booking/model"
	"fleetdesk/internal/domains/booking/model/dto"
	chargeModel "fleetdesk/internal/domains/charge/model"
	extensionModel "fleetdesk/internal/domains/extension/model"
	retrievalModel "fleetdesk/internal/domains/retrieval/model"
	"fleetdesk/internal/reconcile"
	"fleetdesk/shared"
	"fleetdesk/shared/constant"
	gDto "fleetdesk/shared/dto"
	"fleetdesk/shared/failure"
	gRepo "fleetdesk/shared/repository"
	"fleetdesk/shared/timezone"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

var sortByCreatedAsc = gDto.QueryParams{SortBy: constant.FieldCreatedAt, SortDir: gDto.SortDirAsc}

// AddExtension records the extension and moves the booking end date in one
// transaction. Bookings already on the road switch to extended.
func (s *serviceImpl) AddExtension(ctx context.Context, id string, req dto.CreateExtensionRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Booking.AddExtension")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	booking, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	status := reconcile.ParseBookingStatus(booking.Status)
	if status == reconcile.BookingCompleted {
		return failure.BadRequestFromString("cannot extend a completed booking") // nolint:wrapcheck
	}

	extension, err := req.ToModel(id, booking.EndDate, user)
	if err != nil {
		return failure.BadRequest(err) // nolint:wrapcheck
	}

	if !extension.NewEndDate.After(booking.EndDate) {
		return failure.BadRequestFromString("new_end_date must be after the current end_date") // nolint:wrapcheck
	}

	update := map[string]any{
		model.FieldEndDate:       extension.NewEndDate,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	switch status {
	case reconcile.BookingActive, reconcile.BookingOverdue, reconcile.BookingExtended:
		update[model.FieldStatus] = string(reconcile.BookingExtended)
	}

	err = s.transactor.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := s.extensionRepo.InsertTx(ctx, tx, extension); err != nil {
			return fmt.Errorf("failed to insert extension: %w", err)
		}

		if err := s.repo.UpdateTx(ctx, tx, update, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
			return fmt.Errorf("failed to move booking end date: %w", err)
		}

		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("booking", id).Msg("failed to extend booking")

		return fmt.Errorf("failed to extend booking: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) GetExtensions(ctx context.Context, id string) (res dto.GetExtensionsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Booking.GetExtensions")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = s.mustExist(ctx, id); err != nil {
		return res, err
	}

	extensions, err := s.extensionRepo.GetAll(ctx, sortByCreatedAsc, shared.FilterByID(id, extensionModel.FieldBookingID, extensionModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get extensions")

		return res, fmt.Errorf("failed to get extensions: %w", err)
	}

	res.FromModels(extensions)

	return res, nil
}

func (s *serviceImpl) AddCharge(ctx context.Context, id string, req dto.CreateChargeRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Booking.AddCharge")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if err = s.mustExist(ctx, id); err != nil {
		return err
	}

	if err = s.chargeRepo.Insert(ctx, req.ToModel(id, user)); err != nil {
		log.Error().Err(err).Msg("failed to create extra charge")

		return fmt.Errorf("failed to create extra charge: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) GetCharges(ctx context.Context, id string) (res dto.GetChargesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Booking.GetCharges")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = s.mustExist(ctx, id); err != nil {
		return res, err
	}

	charges, err := s.chargeRepo.GetAll(ctx, sortByCreatedAsc, shared.FilterByID(id, chargeModel.FieldBookingID, chargeModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get extra charges")

		return res, fmt.Errorf("failed to get extra charges: %w", err)
	}

	res.FromModels(charges)

	return res, nil
}

// Return appends the booking to the return log. A booking can only be returned
// once.
func (s *serviceImpl) Return(ctx context.Context, id string, req dto.ReturnVehicleRequest) (res dto.ReturnResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Booking.Return")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if err = s.mustExist(ctx, id); err != nil {
		return res, err
	}

	returned, err := s.retrievalRepo.Exist(ctx, shared.FilterByID(id, retrievalModel.FieldBookingID, retrievalModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check return log")

		return res, fmt.Errorf("failed to check return log: %w", err)
	}

	if returned {
		return res, failure.Conflict("vehicle for this booking has already been returned") // nolint:wrapcheck
	}

	retrieval := req.ToModel(id, user)

	if err = s.retrievalRepo.Insert(ctx, retrieval); err != nil {
		if gRepo.IsPqError(err, constant.PqErrorCodeUniqueViolation) {
			return res, failure.Conflict("vehicle for this booking has already been returned") // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to record vehicle return")

		return res, fmt.Errorf("failed to record vehicle return: %w", err)
	}

	res.FromModel(retrieval)

	s.invalidate(ctx, id)

	return res, nil
}

func (s *serviceImpl) mustExist(ctx context.Context, id string) error {
	exist, err := s.repo.Exist(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if booking exists")

		return fmt.Errorf("failed to check if booking exists: %w", err)
	}

	if !exist {
		return failure.NotFound(model.EntityName) // nolint:wrapcheck
	}

	return nil
}
