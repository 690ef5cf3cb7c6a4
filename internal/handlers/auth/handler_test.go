package auth_test

import (
	"bytes"
	"context"
	"encoding/json"
	otelMocks "fleetdesk/infras/otel/mocks"
	"fleetdesk/internal/domains/auth/model/dto"
	serviceMocks "fleetdesk/internal/domains/auth/service/mocks"
	"fleetdesk/internal/handlers/auth"
	"fleetdesk/shared/constant"
	"fleetdesk/shared/failure"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newRouter(t *testing.T) (*chi.Mux, *serviceMocks.MockAuth) {
	t.Helper()

	svc := serviceMocks.NewMockAuth(gomock.NewController(t))

	handler := auth.New(svc, otelMocks.NewOtel())
	router := chi.NewRouter()
	handler.Router(router)

	return router, svc
}

func do(router http.Handler, req *http.Request) *httptest.ResponseRecorder {
	req.Header.Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	return rec
}

func signedIn(req *http.Request) *http.Request {
	ctx := context.WithValue(req.Context(), constant.ContextKeyUserID, "staff-1")
	ctx = context.WithValue(ctx, constant.ContextKeyUserEmail, "ops@fleet.test")
	ctx = context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleManager)
	ctx = context.WithValue(ctx, constant.ContextKeyTokenID, "jti-1")

	return req.WithContext(ctx)
}

func TestLogin(t *testing.T) {
	t.Run("returns the token pair and role", func(t *testing.T) {
		router, svc := newRouter(t)
		svc.EXPECT().Login(gomock.Any(), dto.LoginRequest{Email: "ops@fleet.test", Password: "secret123"}).
			Return(dto.LoginResponse{TokenResponse: dto.TokenResponse{AccessToken: "a", RefreshToken: "r", TokenType: "Bearer"}, Role: constant.RoleManager}, nil)

		rec := do(router, httptest.NewRequest(http.MethodPost, "/auth/login",
			bytes.NewBufferString(`{"email":"ops@fleet.test","password":"secret123"}`)))

		require.Equal(t, http.StatusOK, rec.Code)

		var body struct {
			Data dto.LoginResponse `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "a", body.Data.AccessToken)
		assert.Equal(t, constant.RoleManager, body.Data.Role)
	})

	t.Run("malformed email never reaches the service", func(t *testing.T) {
		router, _ := newRouter(t)

		rec := do(router, httptest.NewRequest(http.MethodPost, "/auth/login",
			bytes.NewBufferString(`{"email":"ops","password":"secret123"}`)))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("bad credentials", func(t *testing.T) {
		router, svc := newRouter(t)
		svc.EXPECT().Login(gomock.Any(), gomock.Any()).Return(dto.LoginResponse{}, failure.Unauthorized("invalid email or password"))

		rec := do(router, httptest.NewRequest(http.MethodPost, "/auth/login",
			bytes.NewBufferString(`{"email":"ops@fleet.test","password":"wrong"}`)))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "invalid email or password")
	})
}

func TestChangePassword(t *testing.T) {
	t.Run("uses the staff id from the token", func(t *testing.T) {
		router, svc := newRouter(t)
		svc.EXPECT().ChangePassword(gomock.Any(), gomock.Any(), "staff-1").Return(nil)

		req := httptest.NewRequest(http.MethodPost, "/auth/change-password",
			bytes.NewBufferString(`{"current_password":"old-secret","new_password":"new-secret"}`))

		rec := do(router, signedIn(req))

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("no session", func(t *testing.T) {
		router, _ := newRouter(t)

		rec := do(router, httptest.NewRequest(http.MethodPost, "/auth/change-password",
			bytes.NewBufferString(`{"current_password":"old-secret","new_password":"new-secret"}`)))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestMe(t *testing.T) {
	router, _ := newRouter(t)

	rec := do(router, signedIn(httptest.NewRequest(http.MethodGet, "/auth/me", nil)))

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data dto.SessionResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, dto.SessionResponse{StaffID: "staff-1", Email: "ops@fleet.test", Role: constant.RoleManager, TokenID: "jti-1"}, body.Data)
}
