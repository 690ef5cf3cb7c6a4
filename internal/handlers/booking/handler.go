package booking

import (
	"fleetdesk/infras/otel"
	"fleetdesk/internal/domains/booking/model"
	"fleetdesk/internal/domains/booking/model/dto"
	"fleetdesk/internal/domains/booking/service"
	"fleetdesk/shared"
	"fleetdesk/shared/constant"
	gDto "fleetdesk/shared/dto"
	"fleetdesk/shared/validator"
	"fleetdesk/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Booking
	otel    otel.Otel
}

func New(service service.Booking, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/bookings", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateBooking)
		routerGroup.Get("/", handler.GetBookings)
		routerGroup.Get("/overdue", handler.GetOverdueBookings)
		routerGroup.Get("/{id}", handler.GetBookingByID)
		routerGroup.Patch("/{id}", handler.UpdateBooking)
		routerGroup.Delete("/{id}", handler.DeleteBooking)
		routerGroup.Get("/{id}/balance", handler.GetBalance)
		routerGroup.Get("/{id}/statement.pdf", handler.GetStatement)
		routerGroup.Post("/{id}/extensions", handler.AddExtension)
		routerGroup.Get("/{id}/extensions", handler.GetExtensions)
		routerGroup.Post("/{id}/charges", handler.AddCharge)
		routerGroup.Get("/{id}/charges", handler.GetCharges)
		routerGroup.Post("/{id}/return", handler.ReturnVehicle)
	})
}

// CreateBooking handles the creation of a new booking.
// @Summary Create a new booking
// @Description Book a vehicle for a customer over an inclusive date range.
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body dto.CreateBookingRequest true "Create Booking Request"
// @Success 201 {object} response.Message "Booking created successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings [post]
// @Security BearerAuth
func (handler *Handler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateBooking")
	defer scope.End()

	req := dto.CreateBookingRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create booking")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Booking created successfully by user " + user)

	response.WithMessage(w, http.StatusCreated, "Booking created successfully")
}

// GetBookings retrieves all bookings based on query parameters.
// @Summary Get all bookings
// @Description Retrieve bookings with optional filtering and pagination.
// @Tags Booking
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param customer_id query string false "Filter by customer ID"
// @Param vehicle_id query string false "Filter by vehicle ID"
// @Param status query string false "Filter by status (confirmed, pending_pickup, active, extended, completed, overdue)"
// @Param payment_status query string false "Filter by payment status (unpaid, partial, paid)"
// @Success 200 {object} response.Data[dto.GetBookingsResponse] "List of bookings"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings [get]
// @Security BearerAuth
func (handler *Handler) GetBookings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookings")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	query := r.URL.Query()

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}
	filterGroup.AddEq(model.FieldCustomerID, model.TableName, query.Get(model.FieldCustomerID))
	filterGroup.AddEq(model.FieldVehicleID, model.TableName, query.Get(model.FieldVehicleID))
	filterGroup.AddEq(model.FieldStatus, model.TableName, query.Get(model.FieldStatus))
	filterGroup.AddEq(model.FieldPaymentStatus, model.TableName, query.Get(model.FieldPaymentStatus))

	bookings, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get bookings")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Bookings retrieved successfully")

	response.WithJSON(w, http.StatusOK, bookings)
}

// GetOverdueBookings lists bookings past their effective end date that were never returned.
// @Summary Get overdue bookings
// @Description Bookings whose effective end date is before as_of and that have no return record, most overdue first.
// @Tags Booking
// @Produce json
// @Param as_of query string false "Reference date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} response.Data[dto.GetOverdueResponse] "Overdue bookings"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/overdue [get]
// @Security BearerAuth
func (handler *Handler) GetOverdueBookings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetOverdueBookings")
	defer scope.End()

	today, err := shared.ResolveToday(r.URL.Query().Get(constant.RequestParamAsOf))
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	overdue, err := handler.service.Overdue(ctx, today)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get overdue bookings")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Overdue bookings retrieved successfully")

	response.WithJSON(w, http.StatusOK, overdue)
}

// GetBookingByID retrieves a booking by its ID.
// @Summary Get a booking by ID
// @Description Retrieve a booking by its unique identifier.
// @Tags Booking
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Data[dto.BookingResponse] "Booking details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetBookingByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookingByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	booking, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get booking by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Booking retrieved successfully")

	response.WithJSON(w, http.StatusOK, booking)
}

// UpdateBooking updates an existing booking.
// @Summary Update a booking
// @Description Update dates, status, payment status or total of a booking.
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body dto.UpdateBookingRequest true "Update Booking Request"
// @Success 200 {object} response.Message "Booking updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateBooking")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)
	req := dto.UpdateBookingRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update booking")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Booking updated successfully")

	response.WithMessage(w, http.StatusOK, "Booking updated successfully")
}

// DeleteBooking deletes a booking.
// @Summary Delete a booking
// @Description Delete a booking together with its extensions, charges and return record.
// @Tags Booking
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Message "Booking deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteBooking")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete booking")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Booking deleted successfully")

	response.WithMessage(w, http.StatusOK, "Booking deleted successfully")
}

// GetBalance returns the charge breakdown and temporal state of a booking.
// @Summary Get booking balance
// @Description Base, extensions, extra charges, late fee and outstanding balance as of a date.
// @Tags Booking
// @Produce json
// @Param id path string true "Booking ID"
// @Param as_of query string false "Reference date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} response.Data[dto.BalanceResponse] "Booking balance"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id}/balance [get]
// @Security BearerAuth
func (handler *Handler) GetBalance(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBalance")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	today, err := shared.ResolveToday(r.URL.Query().Get(constant.RequestParamAsOf))
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	balance, err := handler.service.Balance(ctx, id, today)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("booking_id", id).Msg("failed to get booking balance")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Booking balance retrieved successfully")

	response.WithJSON(w, http.StatusOK, balance)
}

// GetStatement renders the booking statement as a PDF.
// @Summary Download booking statement
// @Description PDF statement with the charge breakdown of a booking as of a date.
// @Tags Booking
// @Produce application/pdf
// @Param id path string true "Booking ID"
// @Param as_of query string false "Reference date (YYYY-MM-DD), defaults to today"
// @Success 200 {file} file "Statement PDF"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id}/statement.pdf [get]
// @Security BearerAuth
func (handler *Handler) GetStatement(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetStatement")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	today, err := shared.ResolveToday(r.URL.Query().Get(constant.RequestParamAsOf))
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	data, err := handler.service.Statement(ctx, id, today)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("booking_id", id).Msg("failed to render booking statement")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Booking statement rendered successfully")

	response.WithFile(w, constant.ContentTypePDF, "statement-"+id+".pdf", data)
}

// AddExtension extends a booking's end date.
// @Summary Extend a booking
// @Description Record an extension with its new end date and additional cost.
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body dto.CreateExtensionRequest true "Create Extension Request"
// @Success 201 {object} response.Message "Booking extended successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id}/extensions [post]
// @Security BearerAuth
func (handler *Handler) AddExtension(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AddExtension")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)
	req := dto.CreateExtensionRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.AddExtension(ctx, id, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("booking_id", id).Msg("failed to extend booking")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Booking extended successfully")

	response.WithMessage(w, http.StatusCreated, "Booking extended successfully")
}

// GetExtensions lists a booking's extensions.
// @Summary Get booking extensions
// @Tags Booking
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Data[dto.GetExtensionsResponse] "Extensions"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id}/extensions [get]
// @Security BearerAuth
func (handler *Handler) GetExtensions(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetExtensions")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	extensions, err := handler.service.GetExtensions(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("booking_id", id).Msg("failed to get booking extensions")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, extensions)
}

// AddCharge records an extra charge against a booking.
// @Summary Add an extra charge
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body dto.CreateChargeRequest true "Create Charge Request"
// @Success 201 {object} response.Message "Charge added successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id}/charges [post]
// @Security BearerAuth
func (handler *Handler) AddCharge(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AddCharge")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)
	req := dto.CreateChargeRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.AddCharge(ctx, id, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("booking_id", id).Msg("failed to add charge")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Charge added successfully")

	response.WithMessage(w, http.StatusCreated, "Charge added successfully")
}

// GetCharges lists a booking's extra charges.
// @Summary Get booking charges
// @Tags Booking
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Data[dto.GetChargesResponse] "Charges"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id}/charges [get]
// @Security BearerAuth
func (handler *Handler) GetCharges(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCharges")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	charges, err := handler.service.GetCharges(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("booking_id", id).Msg("failed to get booking charges")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, charges)
}

// ReturnVehicle records the vehicle coming back for a booking.
// @Summary Return a vehicle
// @Description Record the return of a booked vehicle. A booking can only be returned once.
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body dto.ReturnVehicleRequest true "Return Vehicle Request"
// @Success 201 {object} response.Data[dto.ReturnResponse] "Return recorded"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id}/return [post]
// @Security BearerAuth
func (handler *Handler) ReturnVehicle(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ReturnVehicle")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)
	req := dto.ReturnVehicleRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Return(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("booking_id", id).Msg("failed to record vehicle return")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Vehicle returned successfully")

	response.WithJSON(w, http.StatusCreated, res)
}
