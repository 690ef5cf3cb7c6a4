package service_test

import (
	"context"
	"net/http"
	"testing"

	"fleetdesk/config"
	otelMocks "fleetdesk/infras/otel/mocks"
	"fleetdesk/internal/domains/staff/mocks"
	"fleetdesk/internal/domains/staff/model"
	"fleetdesk/internal/domains/staff/model/dto"
	"fleetdesk/internal/domains/staff/service"
	"fleetdesk/shared/cache"
	"fleetdesk/shared/constant"
	gDto "fleetdesk/shared/dto"
	"fleetdesk/shared/failure"
	"fleetdesk/shared/password"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func setup(t *testing.T) (*mocks.MockStaff, service.Staff) {
	t.Helper()

	ctrl := gomock.NewController(t)
	mr := miniredis.RunT(t)
	otel := otelMocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 60

	repo := mocks.NewMockStaff(ctrl)

	return repo, service.New(repo, cfg, cache.NewRedisCache(redis.NewClient(&redis.Options{Addr: mr.Addr()}), otel), otel)
}

func TestStaffService_Create(t *testing.T) {
	req := dto.CreateStaffRequest{Email: "desk@fleet.test", Password: "s3cretpass", FullName: "Front Desk"}

	t.Run("hashes the password and defaults the role", func(t *testing.T) {
		repo, svc := setup(t)

		repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
		repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, staff model.Staff) error {
				assert.Equal(t, constant.RoleMechanic, staff.Role)
				assert.True(t, staff.Active)
				assert.NotEqual(t, req.Password, staff.Password)
				assert.NoError(t, password.Verify(req.Password, staff.Password))

				return nil
			})

		assert.NoError(t, svc.Create(context.Background(), req))
	})

	t.Run("duplicate email", func(t *testing.T) {
		repo, svc := setup(t)

		repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)

		assert.Equal(t, http.StatusConflict, failure.GetCode(svc.Create(context.Background(), req)))
	})
}

func TestStaffService_Get(t *testing.T) {
	repo, svc := setup(t)

	repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Staff{ID: "s1", Email: "desk@fleet.test", Password: "hash", Role: constant.RoleAdmin}, nil)

	res, err := svc.Get(context.Background(), "s1")

	require.NoError(t, err)
	assert.Equal(t, constant.RoleAdmin, res.Role)
	assert.Empty(t, res.LastLogin)
}

func TestStaffService_Update(t *testing.T) {
	t.Run("deactivate", func(t *testing.T) {
		repo, svc := setup(t)
		inactive := false

		repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, &inactive, fields[model.FieldActive])

				return nil
			})

		assert.NoError(t, svc.Update(context.Background(), dto.UpdateStaffRequest{Active: &inactive}, "s1"))
	})

	t.Run("not found", func(t *testing.T) {
		repo, svc := setup(t)

		repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		err := svc.Update(context.Background(), dto.UpdateStaffRequest{Role: constant.RoleManager}, "s1")

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestStaffService_Delete(t *testing.T) {
	t.Run("own account", func(t *testing.T) {
		_, svc := setup(t)
		ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "s1")

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(svc.Delete(ctx, "s1")))
	})

	t.Run("success", func(t *testing.T) {
		repo, svc := setup(t)
		ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "s1")

		repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)

		assert.NoError(t, svc.Delete(ctx, "s2"))
	})
}
