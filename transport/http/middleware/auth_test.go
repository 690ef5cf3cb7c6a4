package middleware_test

import (
	"fleetdesk/config"
	"fleetdesk/infras/jwt"
	jwtMocks "fleetdesk/infras/jwt/mocks"
	otelMocks "fleetdesk/infras/otel/mocks"
	"fleetdesk/permissions"
	"fleetdesk/shared/constant"
	"fleetdesk/transport/http/middleware"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func newRouter(t *testing.T) (*chi.Mux, *jwtMocks.MockJWT) {
	t.Helper()

	ctrl := gomock.NewController(t)
	jwtService := jwtMocks.NewMockJWT(ctrl)

	cfg := &config.Config{}
	cfg.App.APIKey = "internal-key"

	authRole := middleware.NewAuthRoleMiddleware(jwtService, otelMocks.NewOtel(), &permissions.PermissionData{
		Endpoints: []permissions.Permission{
			{Path: "/v1/auth/login", Method: http.MethodPost, Skip: true},
			{Path: "/v1/staff/", Method: http.MethodGet, Permissions: []string{constant.RoleSuperAdmin, constant.RoleAdmin}},
		},
	}, cfg)

	ok := func(w http.ResponseWriter, r *http.Request) {
		user, _ := r.Context().Value(constant.ContextKeyUserID).(string)
		w.Header().Set("X-User", user)
		w.WriteHeader(http.StatusOK)
	}

	router := chi.NewRouter()
	router.Route("/v1", func(v1 chi.Router) {
		v1.Use(authRole.APIKey, authRole.Auth, authRole.RBAC)
		v1.Post("/auth/login", ok)
		v1.Route("/staff", func(staff chi.Router) {
			staff.Get("/", ok)
		})
	})

	return router, jwtService
}

func request(router http.Handler, method, target string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	return rec
}

func TestAuth(t *testing.T) {
	t.Run("public endpoint skips the token check", func(t *testing.T) {
		router, _ := newRouter(t)

		rec := request(router, http.MethodPost, "/v1/auth/login", nil)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("missing header", func(t *testing.T) {
		router, _ := newRouter(t)

		rec := request(router, http.MethodGet, "/v1/staff/", nil)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("expired token", func(t *testing.T) {
		router, jwtService := newRouter(t)
		jwtService.EXPECT().ValidateToken(gomock.Any(), "old", jwt.AccessToken).Return(nil, jwt.ErrExpiredToken)

		rec := request(router, http.MethodGet, "/v1/staff/", map[string]string{constant.RequestHeaderAuthorization: "Bearer old"})

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "Token has expired")
	})

	t.Run("claims without a user are rejected", func(t *testing.T) {
		router, jwtService := newRouter(t)
		jwtService.EXPECT().ValidateToken(gomock.Any(), "t", jwt.AccessToken).Return(&jwt.Claims{Email: "a@b.c"}, nil)

		rec := request(router, http.MethodGet, "/v1/staff/", map[string]string{constant.RequestHeaderAuthorization: "Bearer t"})

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("unknown role is rejected", func(t *testing.T) {
		router, jwtService := newRouter(t)
		jwtService.EXPECT().ValidateToken(gomock.Any(), "t", jwt.AccessToken).
			Return(&jwt.Claims{UserID: "staff-9", Email: "x@b.c", Role: "customer"}, nil)

		rec := request(router, http.MethodGet, "/v1/staff/", map[string]string{constant.RequestHeaderAuthorization: "Bearer t"})

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("admin passes role check", func(t *testing.T) {
		router, jwtService := newRouter(t)
		jwtService.EXPECT().ValidateToken(gomock.Any(), "t", jwt.AccessToken).
			Return(&jwt.Claims{UserID: "staff-1", Email: "a@b.c", Role: constant.RoleAdmin}, nil)

		rec := request(router, http.MethodGet, "/v1/staff/", map[string]string{constant.RequestHeaderAuthorization: "Bearer t"})

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "staff-1", rec.Header().Get("X-User"))
	})

	t.Run("mechanic is forbidden", func(t *testing.T) {
		router, jwtService := newRouter(t)
		jwtService.EXPECT().ValidateToken(gomock.Any(), "t", jwt.AccessToken).
			Return(&jwt.Claims{UserID: "staff-2", Email: "m@b.c", Role: constant.RoleMechanic}, nil)

		rec := request(router, http.MethodGet, "/v1/staff/", map[string]string{constant.RequestHeaderAuthorization: "Bearer t"})

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestAPIKey(t *testing.T) {
	t.Run("valid key bypasses auth", func(t *testing.T) {
		router, _ := newRouter(t)

		rec := request(router, http.MethodGet, "/v1/staff/", map[string]string{constant.RequestHeaderAPIKey: "internal-key"})

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("wrong key is forbidden", func(t *testing.T) {
		router, _ := newRouter(t)

		rec := request(router, http.MethodGet, "/v1/staff/", map[string]string{constant.RequestHeaderAPIKey: "guess"})

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}
