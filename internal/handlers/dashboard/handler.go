package dashboard

import (
	"fleetdesk/infras/otel"
	"fleetdesk/internal/domains/dashboard/export"
	"fleetdesk/internal/domains/dashboard/model/dto"
	"fleetdesk/internal/domains/dashboard/service"
	"fleetdesk/shared"
	"fleetdesk/shared/constant"
	"fleetdesk/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Dashboard
	otel    otel.Otel
}

func New(service service.Dashboard, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/dashboard", func(routerGroup chi.Router) {
		routerGroup.Get("/summary", handler.GetSummary)
		routerGroup.Get("/reports/outstanding.xlsx", handler.GetOutstandingReport)
	})
}

// GetSummary returns the fleet-wide snapshot for a date.
// @Summary Get dashboard summary
// @Description Booking status counts, compliance and maintenance tallies, money totals and fleet status counts as of a date.
// @Tags Dashboard
// @Produce json
// @Param as_of query string false "Reference date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} response.Data[dto.SummaryResponse] "Dashboard summary"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/dashboard/summary [get]
// @Security BearerAuth
func (handler *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSummary")
	defer scope.End()

	today, err := shared.ResolveToday(r.URL.Query().Get(constant.RequestParamAsOf))
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	var summary dto.SummaryResponse

	summary, err = handler.service.Summary(ctx, today)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get dashboard summary")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Dashboard summary retrieved successfully")

	response.WithJSON(w, http.StatusOK, summary)
}

// GetOutstandingReport downloads the outstanding balance workbook.
// @Summary Download outstanding report
// @Description Spreadsheet of every booking with a positive balance, most overdue first.
// @Tags Dashboard
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param as_of query string false "Reference date (YYYY-MM-DD), defaults to today"
// @Success 200 {file} file "Outstanding report"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/dashboard/reports/outstanding.xlsx [get]
// @Security BearerAuth
func (handler *Handler) GetOutstandingReport(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetOutstandingReport")
	defer scope.End()

	today, err := shared.ResolveToday(r.URL.Query().Get(constant.RequestParamAsOf))
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	data, err := handler.service.OutstandingReport(ctx, today)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to build outstanding report")

		response.WithError(w, err)

		return
	}

	response.WithFile(w, export.ContentType, "outstanding-"+shared.FormatDate(today)+".xlsx", data)
}
