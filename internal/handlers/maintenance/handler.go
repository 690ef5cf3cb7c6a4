package maintenance

import (
	"fleetdesk/infras/otel"
	"fleetdesk/internal/domains/maintenance/model"
	"fleetdesk/internal/domains/maintenance/model/dto"
	"fleetdesk/internal/domains/maintenance/service"
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
	service service.Maintenance
	otel    otel.Otel
}

func New(service service.Maintenance, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/maintenance", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateMaintenance)
		routerGroup.Get("/", handler.GetMaintenances)
		routerGroup.Get("/{id}", handler.GetMaintenanceByID)
		routerGroup.Patch("/{id}", handler.UpdateMaintenance)
		routerGroup.Delete("/{id}", handler.DeleteMaintenance)
	})
}

// CreateMaintenance handles the creation of a new maintenance task.
// @Summary Create a new maintenance task
// @Description Schedule a maintenance task for a vehicle.
// @Tags Maintenance
// @Accept json
// @Produce json
// @Param request body dto.CreateMaintenanceRequest true "Create Maintenance Request"
// @Success 201 {object} response.Message "Maintenance created successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/maintenance [post]
// @Security BearerAuth
func (handler *Handler) CreateMaintenance(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateMaintenance")
	defer scope.End()

	req := dto.CreateMaintenanceRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create maintenance task")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Maintenance created successfully by user " + user)

	response.WithMessage(w, http.StatusCreated, "Maintenance created successfully")
}

// GetMaintenances retrieves all maintenance tasks based on query parameters.
// @Summary Get all maintenance tasks
// @Description Retrieve maintenance tasks with their effective status as of a date.
// @Tags Maintenance
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param vehicle_id query string false "Filter by vehicle ID"
// @Param status query string false "Filter by stored status as entered"
// @Param assignee query string false "Filter by assignee"
// @Param as_of query string false "Reference date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} response.Data[dto.GetMaintenancesResponse] "List of maintenance tasks"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/maintenance [get]
// @Security BearerAuth
func (handler *Handler) GetMaintenances(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMaintenances")
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
	filterGroup.AddEq(model.FieldStatus, model.TableName, query.Get(model.FieldStatus))
	filterGroup.AddEq(model.FieldAssignee, model.TableName, query.Get(model.FieldAssignee))

	tasks, err := handler.service.GetAll(ctx, queryParams, filterGroup, today)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get maintenance tasks")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Maintenance tasks retrieved successfully")

	response.WithJSON(w, http.StatusOK, tasks)
}

// GetMaintenanceByID retrieves a maintenance task by its ID.
// @Summary Get a maintenance task by ID
// @Tags Maintenance
// @Produce json
// @Param id path string true "Maintenance ID"
// @Param as_of query string false "Reference date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} response.Data[dto.MaintenanceResponse] "Maintenance details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/maintenance/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetMaintenanceByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMaintenanceByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	today, err := shared.ResolveToday(r.URL.Query().Get(constant.RequestParamAsOf))
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	task, err := handler.service.Get(ctx, id, today)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to get maintenance task by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Maintenance retrieved successfully")

	response.WithJSON(w, http.StatusOK, task)
}

// UpdateMaintenance updates an existing maintenance task.
// @Summary Update a maintenance task
// @Tags Maintenance
// @Accept json
// @Produce json
// @Param id path string true "Maintenance ID"
// @Param request body dto.UpdateMaintenanceRequest true "Update Maintenance Request"
// @Success 200 {object} response.Message "Maintenance updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/maintenance/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateMaintenance(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateMaintenance")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)
	req := dto.UpdateMaintenanceRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update maintenance task")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Maintenance updated successfully")

	response.WithMessage(w, http.StatusOK, "Maintenance updated successfully")
}

// DeleteMaintenance deletes a maintenance task.
// @Summary Delete a maintenance task
// @Tags Maintenance
// @Produce json
// @Param id path string true "Maintenance ID"
// @Success 200 {object} response.Message "Maintenance deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/maintenance/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteMaintenance(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteMaintenance")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete maintenance task")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Maintenance deleted successfully")

	response.WithMessage(w, http.StatusOK, "Maintenance deleted successfully")
}
