package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"fleetdesk/config"
	otelMocks "fleetdesk/infras/otel/mocks"
	bookingModel "fleetdesk/internal/domains/booking/model"
	"fleetdesk/internal/domains/customer/mocks"
	"fleetdesk/internal/domains/customer/model"
	"fleetdesk/internal/domains/customer/model/dto"
	"fleetdesk/internal/domains/customer/service"
	ledgerMocks "fleetdesk/internal/domains/ledger/mocks"
	ledgerModel "fleetdesk/internal/domains/ledger/model"
	"fleetdesk/internal/reconcile"
	"fleetdesk/shared/cache"
	"fleetdesk/shared/constant"
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

const customerID = "3c0a8f43-7d7e-4d0f-8a57-0c3e7f1d2b22"

func setup(t *testing.T) (*mocks.MockCustomer, *ledgerMocks.MockLedger, *miniredis.Miniredis, service.Customer) {
	t.Helper()

	ctrl := gomock.NewController(t)
	mr := miniredis.RunT(t)
	otel := otelMocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 60

	repo := mocks.NewMockCustomer(ctrl)
	ledger := ledgerMocks.NewMockLedger(ctrl)
	svc := service.New(repo, ledger, cfg, cache.NewRedisCache(redis.NewClient(&redis.Options{Addr: mr.Addr()}), otel), otel)

	return repo, ledger, mr, svc
}

func TestCustomerService_Create(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		repo, _, _, svc := setup(t)
		ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "staff-1")

		repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, customer model.Customer) error {
				assert.NotEmpty(t, customer.ID)
				assert.Equal(t, "Rina Hartono", customer.FullName)
				assert.Equal(t, "staff-1", customer.CreatedBy)

				return nil
			})

		err := svc.Create(ctx, dto.CreateCustomerRequest{FullName: "Rina Hartono", Phone: "0812"})

		assert.NoError(t, err)
	})

	t.Run("repository error", func(t *testing.T) {
		repo, _, _, svc := setup(t)

		repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("database error"))

		err := svc.Create(context.Background(), dto.CreateCustomerRequest{FullName: "Rina Hartono", Phone: "0812"})

		assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
	})
}

func TestCustomerService_GetAll(t *testing.T) {
	repo, _, _, svc := setup(t)
	params := gDto.QueryParams{Page: 1, Limit: 10}

	repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(11, nil)
	repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Customer{
		{ID: "c1", FullName: "Rina"},
		{ID: "c2", FullName: "Budi"},
	}, nil)

	res, err := svc.GetAll(context.Background(), params, gDto.FilterGroup{})

	require.NoError(t, err)
	assert.Equal(t, 11, res.TotalData)
	assert.Equal(t, 2, res.TotalPage)
	assert.Len(t, res.Customers, 2)
}

func TestCustomerService_Get(t *testing.T) {
	t.Run("served from cache on second read", func(t *testing.T) {
		repo, _, mr, svc := setup(t)

		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Customer{ID: customerID, FullName: "Rina"}, nil).Times(1)

		res, err := svc.Get(context.Background(), customerID)
		require.NoError(t, err)
		assert.Equal(t, "Rina", res.FullName)

		require.Eventually(t, func() bool {
			return mr.Exists("customer:get:" + customerID)
		}, time.Second, 10*time.Millisecond)

		res, err = svc.Get(context.Background(), customerID)
		require.NoError(t, err)
		assert.Equal(t, "Rina", res.FullName)
	})

	t.Run("not found", func(t *testing.T) {
		repo, _, _, svc := setup(t)

		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Customer{}, nil)

		_, err := svc.Get(context.Background(), customerID)

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestCustomerService_Update(t *testing.T) {
	t.Run("empty request", func(t *testing.T) {
		_, _, _, svc := setup(t)

		err := svc.Update(context.Background(), dto.UpdateCustomerRequest{}, customerID)

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("updates populated fields", func(t *testing.T) {
		repo, _, _, svc := setup(t)

		repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, "0813", fields[model.FieldPhone])
				assert.NotContains(t, fields, model.FieldFullName)

				return nil
			})

		err := svc.Update(context.Background(), dto.UpdateCustomerRequest{Phone: "0813"}, customerID)

		assert.NoError(t, err)
	})
}

func TestCustomerService_Delete(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(repo *mocks.MockCustomer)
		wantCode  int
	}{
		{
			name: "success",
			setupMock: func(repo *mocks.MockCustomer) {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name: "not found",
			setupMock: func(repo *mocks.MockCustomer) {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "still has bookings",
			setupMock: func(repo *mocks.MockCustomer) {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(&pq.Error{Code: constant.PqErrorCodeFkViolation})
			},
			wantCode: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, _, _, svc := setup(t)
			tt.setupMock(repo)

			err := svc.Delete(context.Background(), customerID)

			if tt.wantCode == 0 {
				assert.NoError(t, err)

				return
			}

			assert.Equal(t, tt.wantCode, failure.GetCode(err))
		})
	}
}

func TestCustomerService_Outstanding(t *testing.T) {
	day := func(value string) time.Time {
		d, _ := time.Parse(time.DateOnly, value)

		return d
	}

	t.Run("sums every booking", func(t *testing.T) {
		repo, ledger, _, svc := setup(t)

		repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		ledger.EXPECT().
			Load(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) (ledgerModel.Snapshot, error) {
				where, args := filter.GetWhereClause()

				assert.Equal(t, "(bookings.customer_id = :customer_id)", where)
				assert.Equal(t, customerID, args[bookingModel.FieldCustomerID])

				return ledgerModel.Snapshot{
					Bookings: []reconcile.Booking{
						{ID: "b1", EndDate: day("2024-06-05"), Status: reconcile.BookingActive, PaymentStatus: reconcile.PaymentPartial, TotalAmount: decimal.NewFromInt(1000)},
						{ID: "b2", EndDate: day("2024-05-01"), Status: reconcile.BookingCompleted, PaymentStatus: reconcile.PaymentPaid, TotalAmount: decimal.NewFromInt(400)},
					},
					Extensions: map[string][]reconcile.Extension{"b1": {{BookingID: "b1", AmountPaid: decimal.NewFromInt(250)}}},
					Charges:    map[string][]reconcile.ExtraCharge{"b2": {{BookingID: "b2", Amount: decimal.NewFromInt(75)}}},
					Returned:   map[string]bool{"b2": true},
				}, nil
			})

		res, err := svc.Outstanding(context.Background(), customerID, day("2024-06-10"))

		require.NoError(t, err)
		assert.Equal(t, "1325", res.Outstanding.String())
		require.Len(t, res.Bookings, 2)
		assert.Equal(t, string(reconcile.TagOverdue), res.Bookings[0].Tag)
		assert.Equal(t, 5, res.Bookings[0].DaysOverdue)
		assert.Equal(t, "1250", res.Bookings[0].Breakdown.Total.String())
		assert.Equal(t, string(reconcile.TagOnTime), res.Bookings[1].Tag)
	})

	t.Run("customer without bookings owes nothing", func(t *testing.T) {
		repo, ledger, _, svc := setup(t)

		repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		ledger.EXPECT().Load(gomock.Any(), gomock.Any()).Return(ledgerModel.Snapshot{}, nil)

		res, err := svc.Outstanding(context.Background(), customerID, day("2024-06-10"))

		require.NoError(t, err)
		assert.True(t, decimal.Zero.Equal(res.Outstanding))
		assert.Empty(t, res.Bookings)
	})

	t.Run("unknown customer", func(t *testing.T) {
		repo, _, _, svc := setup(t)

		repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		_, err := svc.Outstanding(context.Background(), customerID, day("2024-06-10"))

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}
