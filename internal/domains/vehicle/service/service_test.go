package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"fleetdesk/config"
	otelMocks "fleetdesk/infras/otel/mocks"
	complianceMocks "fleetdesk/internal/domains/compliance/mocks"
	complianceModel "fleetdesk/internal/domains/compliance/model"
	"fleetdesk/internal/domains/vehicle/mocks"
	"fleetdesk/internal/domains/vehicle/model"
	"fleetdesk/internal/domains/vehicle/model/dto"
	"fleetdesk/internal/domains/vehicle/service"
	"fleetdesk/shared/cache"
	gDto "fleetdesk/shared/dto"
	"fleetdesk/shared/failure"

	"github.com/alicebob/miniredis/v2"
	"github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const vehicleID = "9e1d2c3b-4a5f-4e6d-8c7b-1a2b3c4d5e33"

func setup(t *testing.T) (*mocks.MockVehicle, *complianceMocks.MockCompliance, service.Vehicle) {
	t.Helper()

	ctrl := gomock.NewController(t)
	mr := miniredis.RunT(t)
	otel := otelMocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 60

	repo := mocks.NewMockVehicle(ctrl)
	complianceRepo := complianceMocks.NewMockCompliance(ctrl)

	return repo, complianceRepo, service.New(repo, complianceRepo, cfg, cache.NewRedisCache(redis.NewClient(&redis.Options{Addr: mr.Addr()}), otel), otel)
}

func TestVehicleService_Create(t *testing.T) {
	req := dto.CreateVehicleRequest{
		PlateNumber: "B 1234 XYZ",
		Make:        "Toyota",
		Model:       "Avanza",
		DailyRate:   decimal.NewFromInt(350000),
	}

	t.Run("defaults to available", func(t *testing.T) {
		repo, _, svc := setup(t)

		repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, vehicle model.Vehicle) error {
				assert.Equal(t, model.StatusAvailable, vehicle.Status)
				assert.True(t, decimal.NewFromInt(350000).Equal(vehicle.DailyRate))

				return nil
			})

		assert.NoError(t, svc.Create(context.Background(), req))
	})

	t.Run("duplicate plate", func(t *testing.T) {
		repo, _, svc := setup(t)

		repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(&pq.Error{Code: "23505"})

		assert.Equal(t, http.StatusConflict, failure.GetCode(svc.Create(context.Background(), req)))
	})

	t.Run("repository error", func(t *testing.T) {
		repo, _, svc := setup(t)

		repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("database error"))

		assert.Equal(t, http.StatusInternalServerError, failure.GetCode(svc.Create(context.Background(), req)))
	})
}

func TestVehicleService_Get(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		repo, _, svc := setup(t)

		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Vehicle{ID: vehicleID, PlateNumber: "B 1234 XYZ"}, nil)

		res, err := svc.Get(context.Background(), vehicleID)

		require.NoError(t, err)
		assert.Equal(t, "B 1234 XYZ", res.PlateNumber)
	})

	t.Run("not found", func(t *testing.T) {
		repo, _, svc := setup(t)

		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Vehicle{}, nil)

		_, err := svc.Get(context.Background(), vehicleID)

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestVehicleService_GetAll(t *testing.T) {
	repo, _, svc := setup(t)

	repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(1, nil)
	repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Vehicle{{ID: vehicleID}}, nil)

	res, err := svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 10}, gDto.FilterGroup{})

	require.NoError(t, err)
	assert.Equal(t, 1, res.TotalData)
	assert.Len(t, res.Vehicles, 1)
}

func TestVehicleService_Update(t *testing.T) {
	t.Run("empty request", func(t *testing.T) {
		_, _, svc := setup(t)

		err := svc.Update(context.Background(), dto.UpdateVehicleRequest{}, vehicleID)

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("updates status", func(t *testing.T) {
		repo, _, svc := setup(t)

		repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, model.StatusMaintenance, fields[model.FieldStatus])

				return nil
			})

		assert.NoError(t, svc.Update(context.Background(), dto.UpdateVehicleRequest{Status: model.StatusMaintenance}, vehicleID))
	})
}

func TestVehicleService_Delete(t *testing.T) {
	t.Run("referenced by bookings", func(t *testing.T) {
		repo, _, svc := setup(t)

		repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(&pq.Error{Code: "23503"})

		assert.Equal(t, http.StatusConflict, failure.GetCode(svc.Delete(context.Background(), vehicleID)))
	})

	t.Run("not found", func(t *testing.T) {
		repo, _, svc := setup(t)

		repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		assert.Equal(t, http.StatusNotFound, failure.GetCode(svc.Delete(context.Background(), vehicleID)))
	})
}

func TestVehicleService_Compliance(t *testing.T) {
	today := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)

	t.Run("derives the tier of each record", func(t *testing.T) {
		repo, complianceRepo, svc := setup(t)

		repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		complianceRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, params gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]complianceModel.Record, error) {
				where, _ := filter.GetWhereClause()

				assert.Equal(t, "(compliance_records.vehicle_id = :vehicle_id)", where)
				assert.Equal(t, complianceModel.FieldExpiryDate, params.SortBy)

				return []complianceModel.Record{
					{ID: "r1", RecordType: "registration", ExpiryDate: today.AddDate(0, 0, -1)},
					{ID: "r2", RecordType: "insurance", ExpiryDate: today.AddDate(0, 0, 30)},
					{ID: "r3", RecordType: "safety_sticker", ExpiryDate: today.AddDate(0, 2, 0)},
				}, nil
			})

		res, err := svc.Compliance(context.Background(), vehicleID, today)

		require.NoError(t, err)
		require.Len(t, res.Records, 3)
		assert.Equal(t, "expired", res.Records[0].Status)
		assert.Equal(t, "expiring_soon", res.Records[1].Status)
		assert.Equal(t, "valid", res.Records[2].Status)
		assert.Equal(t, 3, res.TotalData)
	})

	t.Run("unknown vehicle", func(t *testing.T) {
		repo, _, svc := setup(t)

		repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		_, err := svc.Compliance(context.Background(), vehicleID, today)

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}
