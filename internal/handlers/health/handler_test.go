package health_test

import (
	"context"
	"errors"
	otelMocks "fleetdesk/infras/otel/mocks"
	"fleetdesk/internal/handlers/health"
	cacheMocks "fleetdesk/shared/cache/mocks"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

type pinger struct {
	err error
}

func (p pinger) Ping(context.Context) error {
	return p.err
}

func serve(t *testing.T, db health.Pinger, cache *cacheMocks.MockRedisCache, path string) *httptest.ResponseRecorder {
	t.Helper()

	handler := health.New(db, cache, otelMocks.NewOtel())
	router := chi.NewRouter()
	handler.Router(router)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

	return rec
}

func TestLiveness(t *testing.T) {
	ctrl := gomock.NewController(t)

	rec := serve(t, pinger{}, cacheMocks.NewMockRedisCache(ctrl), health.PathLiveness)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestReadiness(t *testing.T) {
	t.Run("ready", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		cache := cacheMocks.NewMockRedisCache(ctrl)
		cache.EXPECT().Ping(gomock.Any()).Return(nil)

		rec := serve(t, pinger{}, cache, health.PathReadiness)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "READY")
	})

	t.Run("database down", func(t *testing.T) {
		ctrl := gomock.NewController(t)

		rec := serve(t, pinger{err: errors.New("connection refused")}, cacheMocks.NewMockRedisCache(ctrl), health.PathReadiness)

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})

	t.Run("cache down", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		cache := cacheMocks.NewMockRedisCache(ctrl)
		cache.EXPECT().Ping(gomock.Any()).Return(errors.New("i/o timeout"))

		rec := serve(t, pinger{}, cache, health.PathReadiness)

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})
}
