package compliance

import (
	"fleetdesk/infras/otel"
	"fleetdesk/internal/domains/compliance/model"
	"fleetdesk/internal/domains/compliance/model/dto"
	"fleetdesk/internal/domains/compliance/service"
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
	service service.Compliance
	otel    otel.Otel
}

func New(service service.Compliance, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/compliance", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateCompliance)
		routerGroup.Get("/", handler.GetCompliances)
		routerGroup.Get("/{id}", handler.GetComplianceByID)
		routerGroup.Delete("/{id}", handler.DeleteCompliance)
	})
}

// CreateCompliance handles the creation of a new compliance record.
// @Summary Create a new compliance record
// @Description Record a renewed insurance, registration or safety sticker document for a vehicle.
// @Tags Compliance
// @Accept json
// @Produce json
// @Param request body dto.CreateComplianceRequest true "Create Compliance Request"
// @Success 201 {object} response.Message "Compliance created successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/compliance [post]
// @Security BearerAuth
func (handler *Handler) CreateCompliance(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateCompliance")
	defer scope.End()

	req := dto.CreateComplianceRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create compliance record")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Compliance record created successfully by user " + user)

	response.WithMessage(w, http.StatusCreated, "Compliance created successfully")
}

// GetCompliances retrieves all compliance records based on query parameters.
// @Summary Get all compliance records
// @Description Retrieve compliance records with their status as of a date.
// @Tags Compliance
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param vehicle_id query string false "Filter by vehicle ID"
// @Param record_type query string false "Filter by record type (insurance, registration, safety_sticker)"
// @Param as_of query string false "Reference date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} response.Data[dto.GetCompliancesResponse] "List of compliance records"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/compliance [get]
// @Security BearerAuth
func (handler *Handler) GetCompliances(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCompliances")
	defer scope.End()

	today, err := shared.ResolveToday(r.URL.Query().Get(constant.RequestParamAsOf))
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	query := r.URL.Query()

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}
	filterGroup.AddEq(model.FieldVehicleID, model.TableName, query.Get(model.FieldVehicleID))
	filterGroup.AddEq(model.FieldRecordType, model.TableName, query.Get(model.FieldRecordType))

	records, err := handler.service.GetAll(ctx, queryParams, filterGroup, today)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get compliance records")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Compliance records retrieved successfully")

	response.WithJSON(w, http.StatusOK, records)
}

// GetComplianceByID retrieves a compliance record by its ID.
// @Summary Get a compliance record by ID
// @Tags Compliance
// @Produce json
// @Param id path string true "Compliance ID"
// @Param as_of query string false "Reference date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} response.Data[dto.ComplianceResponse] "Compliance details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/compliance/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetComplianceByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetComplianceByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	today, err := shared.ResolveToday(r.URL.Query().Get(constant.RequestParamAsOf))
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	record, err := handler.service.Get(ctx, id, today)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to get compliance record by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Compliance retrieved successfully")

	response.WithJSON(w, http.StatusOK, record)
}

// DeleteCompliance deletes a compliance record.
// @Summary Delete a compliance record
// @Tags Compliance
// @Produce json
// @Param id path string true "Compliance ID"
// @Success 200 {object} response.Message "Compliance deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/compliance/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteCompliance(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteCompliance")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete compliance record")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Compliance deleted successfully")

	response.WithMessage(w, http.StatusOK, "Compliance deleted successfully")
}
