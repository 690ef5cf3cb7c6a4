package health

import (
	"context"
	"fleetdesk/infras/otel"
	"fleetdesk/shared/cache"
	"fleetdesk/shared/constant"
	"fleetdesk/transport/http/response"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const (
	PathLiveness  = "/healthz"
	PathReadiness = "/readyz"

	pingTimeout = 3 * time.Second
)

// Pinger is satisfied by the postgres connection pair.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	db    Pinger
	cache cache.RedisCache
	otel  otel.Otel
}

func New(db Pinger, cache cache.RedisCache, otel otel.Otel) Handler {
	return Handler{
		db:    db,
		cache: cache,
		otel:  otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Get(PathLiveness, handler.Liveness)
	router.Get(PathReadiness, handler.Readiness)
}

// Liveness reports that the process is serving.
// @Summary Liveness probe
// @Tags Health
// @Produce json
// @Success 200 {object} response.Message
// @Router /healthz [get]
func (handler *Handler) Liveness(w http.ResponseWriter, _ *http.Request) {
	response.WithMessage(w, http.StatusOK, "OK")
}

// Readiness checks postgres and redis.
// @Summary Readiness probe
// @Tags Health
// @Produce json
// @Success 200 {object} response.Message
// @Failure 503 {object} response.Message
// @Router /readyz [get]
func (handler *Handler) Readiness(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Readiness")
	defer scope.End()

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := handler.db.Ping(ctx); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("readiness: database unavailable")

		response.WithUnhealthy(w)

		return
	}

	if err := handler.cache.Ping(ctx); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("readiness: cache unavailable")

		response.WithUnhealthy(w)

		return
	}

	response.WithMessage(w, http.StatusOK, "READY")
}
