package service_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"fleetdesk/config"
	otelMocks "fleetdesk/infras/otel/mocks"
	"fleetdesk/internal/domains/booking/mocks"
	"fleetdesk/internal/domains/booking/model"
	"fleetdesk/internal/domains/booking/model/dto"
	"fleetdesk/internal/domains/booking/service"
	chargeMocks "fleetdesk/internal/domains/charge/mocks"
	chargeModel "fleetdesk/internal/domains/charge/model"
	customerMocks "fleetdesk/internal/domains/customer/mocks"
	customerModel "fleetdesk/internal/domains/customer/model"
	extensionMocks "fleetdesk/internal/domains/extension/mocks"
	extensionModel "fleetdesk/internal/domains/extension/model"
	ledgerMocks "fleetdesk/internal/domains/ledger/mocks"
	ledgerModel "fleetdesk/internal/domains/ledger/model"
	retrievalMocks "fleetdesk/internal/domains/retrieval/mocks"
	retrievalModel "fleetdesk/internal/domains/retrieval/model"
	vehicleMocks "fleetdesk/internal/domains/vehicle/mocks"
	vehicleModel "fleetdesk/internal/domains/vehicle/model"
	"fleetdesk/internal/reconcile"
	"fleetdesk/shared/cache"
	"fleetdesk/shared/constant"
	gDto "fleetdesk/shared/dto"
	"fleetdesk/shared/failure"
	repoMocks "fleetdesk/shared/repository/mocks"

	"github.com/alicebob/miniredis/v2"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	bookingID  = "0b7f5f5e-4f4e-4c59-9d8e-2f0c5a9b1a11"
	customerID = "3c0a8f43-7d7e-4d0f-8a57-0c3e7f1d2b22"
	vehicleID  = "9e1d2c3b-4a5f-4e6d-8c7b-1a2b3c4d5e33"
)

type fixture struct {
	repo          *mocks.MockBooking
	customerRepo  *customerMocks.MockCustomer
	vehicleRepo   *vehicleMocks.MockVehicle
	extensionRepo *extensionMocks.MockExtension
	chargeRepo    *chargeMocks.MockCharge
	retrievalRepo *retrievalMocks.MockRetrieval
	ledger        *ledgerMocks.MockLedger
	transactor    *repoMocks.MockTransactor
	svc           service.Booking
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	mr := miniredis.RunT(t)
	otel := otelMocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 60
	cfg.App.Name = "Fleetdesk"
	cfg.App.Locale = "en-US"

	f := &fixture{
		repo:          mocks.NewMockBooking(ctrl),
		customerRepo:  customerMocks.NewMockCustomer(ctrl),
		vehicleRepo:   vehicleMocks.NewMockVehicle(ctrl),
		extensionRepo: extensionMocks.NewMockExtension(ctrl),
		chargeRepo:    chargeMocks.NewMockCharge(ctrl),
		retrievalRepo: retrievalMocks.NewMockRetrieval(ctrl),
		ledger:        ledgerMocks.NewMockLedger(ctrl),
		transactor:    repoMocks.NewMockTransactor(ctrl),
	}

	f.svc = service.New(
		f.repo,
		f.customerRepo,
		f.vehicleRepo,
		f.extensionRepo,
		f.chargeRepo,
		f.retrievalRepo,
		f.ledger,
		f.transactor,
		cfg,
		cache.NewRedisCache(redis.NewClient(&redis.Options{Addr: mr.Addr()}), otel),
		otel,
	)

	return f
}

func userContext() context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, "staff-1")
}

func day(value string) time.Time {
	t, err := time.Parse(time.DateOnly, value)
	if err != nil {
		panic(err)
	}

	return t
}

func dec(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func storedBooking(status string) model.Booking {
	return model.Booking{
		ID:            bookingID,
		CustomerID:    customerID,
		VehicleID:     vehicleID,
		StartDate:     day("2024-06-01"),
		EndDate:       day("2024-06-10"),
		Status:        status,
		PaymentStatus: string(reconcile.PaymentUnpaid),
		TotalAmount:   decimal.NewNullDecimal(dec("1000")),
	}
}

func TestBookingService_Create(t *testing.T) {
	validRequest := dto.CreateBookingRequest{
		CustomerID: customerID,
		VehicleID:  vehicleID,
		StartDate:  "2024-06-01",
		EndDate:    "2024-06-10",
	}

	tests := []struct {
		name      string
		req       dto.CreateBookingRequest
		setupMock func(f *fixture)
		wantCode  int
	}{
		{
			name: "defaults to confirmed and unpaid",
			req:  validRequest,
			setupMock: func(f *fixture) {
				f.customerRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.vehicleRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, booking model.Booking) error {
						assert.Equal(t, string(reconcile.BookingConfirmed), booking.Status)
						assert.Equal(t, string(reconcile.PaymentUnpaid), booking.PaymentStatus)
						assert.Equal(t, "staff-1", booking.CreatedBy)
						assert.False(t, booking.TotalAmount.Valid)

						return nil
					})
			},
		},
		{
			name: "same day booking is allowed",
			req: dto.CreateBookingRequest{
				CustomerID: customerID,
				VehicleID:  vehicleID,
				StartDate:  "2024-06-10",
				EndDate:    "2024-06-10",
				Status:     "PendingPickup",
			},
			setupMock: func(f *fixture) {
				f.customerRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.vehicleRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, booking model.Booking) error {
						assert.Equal(t, string(reconcile.BookingPendingPickup), booking.Status)

						return nil
					})
			},
		},
		{
			name: "end before start is rejected",
			req: dto.CreateBookingRequest{
				CustomerID: customerID,
				VehicleID:  vehicleID,
				StartDate:  "2024-06-10",
				EndDate:    "2024-06-09",
			},
			setupMock: func(*fixture) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "unknown customer",
			req:  validRequest,
			setupMock: func(f *fixture) {
				f.customerRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "unknown vehicle",
			req:  validRequest,
			setupMock: func(f *fixture) {
				f.customerRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.vehicleRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "repository error",
			req:  validRequest,
			setupMock: func(f *fixture) {
				f.customerRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.vehicleRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("database error"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			err := f.svc.Create(userContext(), tt.req)

			if tt.wantCode == 0 {
				assert.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.Equal(t, tt.wantCode, failure.GetCode(err))
		})
	}
}

func TestBookingService_Get(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(storedBooking("active"), nil)

		res, err := f.svc.Get(context.Background(), bookingID)

		require.NoError(t, err)
		assert.Equal(t, bookingID, res.ID)
		assert.Equal(t, "2024-06-10", res.EndDate)
		assert.Equal(t, "1000", res.TotalAmount.Decimal.String())
	})

	t.Run("not found", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{}, nil)

		_, err := f.svc.Get(context.Background(), bookingID)

		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
		assert.Equal(t, "booking not found", err.Error())
	})
}

func TestBookingService_Update(t *testing.T) {
	tests := []struct {
		name      string
		req       dto.UpdateBookingRequest
		setupMock func(f *fixture)
		wantCode  int
	}{
		{
			name:      "empty request",
			req:       dto.UpdateBookingRequest{},
			setupMock: func(*fixture) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "new end date before stored start date",
			req:  dto.UpdateBookingRequest{EndDate: "2024-05-31"},
			setupMock: func(f *fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(storedBooking("active"), nil)
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "statuses are stored in canonical spelling",
			req:  dto.UpdateBookingRequest{Status: "Pending-Pickup", PaymentStatus: "PAID"},
			setupMock: func(f *fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(storedBooking("confirmed"), nil)
				f.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, "pending_pickup", fields[model.FieldStatus])
						assert.Equal(t, "paid", fields[model.FieldPaymentStatus])
						assert.Equal(t, "staff-1", fields[constant.FieldModifiedBy])

						return nil
					})
			},
		},
		{
			name: "missing booking",
			req:  dto.UpdateBookingRequest{Notes: "late pickup"},
			setupMock: func(f *fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			err := f.svc.Update(userContext(), tt.req, bookingID)

			if tt.wantCode == 0 {
				assert.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.Equal(t, tt.wantCode, failure.GetCode(err))
		})
	}
}

func TestBookingService_Delete(t *testing.T) {
	t.Run("deletes existing booking", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)

		assert.NoError(t, f.svc.Delete(context.Background(), bookingID))
	})

	t.Run("missing booking", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		err := f.svc.Delete(context.Background(), bookingID)

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func snapshotFor(booking model.Booking, returned bool) ledgerModel.Snapshot {
	ledger := booking.ToLedger()

	return ledgerModel.Snapshot{
		Bookings: []reconcile.Booking{ledger},
		Extensions: map[string][]reconcile.Extension{
			booking.ID: {
				{BookingID: booking.ID, AmountPaid: dec("200")},
				{BookingID: booking.ID, AmountPaid: dec("150"), ReceiptNo: "R-9"},
			},
		},
		Charges: map[string][]reconcile.ExtraCharge{
			booking.ID: {{BookingID: booking.ID, Amount: dec("100"), AmountPaid: dec("40")}},
		},
		Returned: map[string]bool{booking.ID: returned},
	}
}

func TestBookingService_Balance(t *testing.T) {
	t.Run("breakdown and overdue classification", func(t *testing.T) {
		f := newFixture(t)
		f.ledger.EXPECT().Load(gomock.Any(), gomock.Any()).Return(snapshotFor(storedBooking("active"), false), nil)

		res, err := f.svc.Balance(context.Background(), bookingID, day("2024-06-15"))

		require.NoError(t, err)
		assert.True(t, dec("1000").Equal(res.Breakdown.Principal))
		assert.True(t, dec("200").Equal(res.Breakdown.Extensions))
		assert.True(t, dec("60").Equal(res.Breakdown.Charges))
		assert.True(t, dec("1260").Equal(res.Breakdown.Total))
		assert.Equal(t, reconcile.TagOverdue, res.Classification.Tag)
		assert.Equal(t, 5, res.Classification.DaysOverdue)
		assert.Equal(t, "2024-06-15", res.AsOf)
	})

	t.Run("returned vehicle is on time", func(t *testing.T) {
		f := newFixture(t)
		f.ledger.EXPECT().Load(gomock.Any(), gomock.Any()).Return(snapshotFor(storedBooking("active"), true), nil)

		res, err := f.svc.Balance(context.Background(), bookingID, day("2024-06-15"))

		require.NoError(t, err)
		assert.True(t, res.Returned)
		assert.Equal(t, reconcile.TagOnTime, res.Classification.Tag)
	})

	t.Run("not found", func(t *testing.T) {
		f := newFixture(t)
		f.ledger.EXPECT().Load(gomock.Any(), gomock.Any()).Return(ledgerModel.Snapshot{}, nil)

		_, err := f.svc.Balance(context.Background(), bookingID, day("2024-06-15"))

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("ledger error", func(t *testing.T) {
		f := newFixture(t)
		f.ledger.EXPECT().Load(gomock.Any(), gomock.Any()).Return(ledgerModel.Snapshot{}, errors.New("database error"))

		_, err := f.svc.Balance(context.Background(), bookingID, day("2024-06-15"))

		assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
	})
}

func TestBookingService_Statement(t *testing.T) {
	f := newFixture(t)
	booking := storedBooking("active")

	f.ledger.EXPECT().Load(gomock.Any(), gomock.Any()).Return(snapshotFor(booking, false), nil)
	f.customerRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(customerModel.Customer{ID: customerID, FullName: "Rina Hartono"}, nil)
	f.vehicleRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(vehicleModel.Vehicle{ID: vehicleID, PlateNumber: "B 1234 XYZ", Make: "Toyota", Model: "Avanza"}, nil)
	f.extensionRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]extensionModel.Extension{
		{ID: "ext-1", BookingID: bookingID, PreviousEndDate: day("2024-06-08"), NewEndDate: day("2024-06-10"), AmountPaid: decimal.NewNullDecimal(dec("200"))},
	}, nil)
	f.chargeRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]chargeModel.Charge{
		{ID: "chg-1", BookingID: bookingID, Description: "Cleaning", Amount: decimal.NewNullDecimal(dec("100")), AmountPaid: decimal.NewNullDecimal(dec("40"))},
	}, nil)

	out, err := f.svc.Statement(context.Background(), bookingID, day("2024-06-15"))

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestBookingService_Overdue(t *testing.T) {
	f := newFixture(t)
	today := day("2024-06-10")

	late := storedBooking("active")
	late.ID = "late"
	late.EndDate = day("2024-06-07")

	dueToday := storedBooking("confirmed")
	dueToday.ID = "due-today"

	returned := storedBooking("extended")
	returned.ID = "returned"
	returned.EndDate = day("2024-06-01")

	f.ledger.EXPECT().
		Load(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) (ledgerModel.Snapshot, error) {
			where, args := filter.GetWhereClause()

			assert.Contains(t, where, "bookings.status IN")
			assert.Contains(t, where, "bookings.end_date <= :end_date")
			assert.Equal(t, "2024-06-10", args[model.FieldEndDate])

			return ledgerModel.Snapshot{
				Bookings: model.ToLedgers([]model.Booking{late, dueToday, returned}),
				Returned: map[string]bool{"returned": true},
			}, nil
		})

	res, err := f.svc.Overdue(context.Background(), today)

	require.NoError(t, err)
	require.Equal(t, 2, res.TotalData)
	assert.Equal(t, "late", res.Bookings[0].BookingID)
	assert.Equal(t, 3, res.Bookings[0].DaysOverdue)
	assert.Equal(t, "due-today", res.Bookings[1].BookingID)
	assert.True(t, res.Bookings[1].IsDueToday)
	assert.True(t, dec("1000").Equal(res.Bookings[1].Outstanding))
}

func TestBookingService_AddExtension(t *testing.T) {
	runInTx := func(_ context.Context, fn func(tx *sqlx.Tx) error) error {
		return fn(nil)
	}

	tests := []struct {
		name      string
		stored    string
		req       dto.CreateExtensionRequest
		setupMock func(f *fixture)
		wantCode  int
	}{
		{
			name:   "active booking becomes extended",
			stored: "active",
			req:    dto.CreateExtensionRequest{NewEndDate: "2024-06-12", AmountPaid: decimal.NewNullDecimal(dec("300"))},
			setupMock: func(f *fixture) {
				f.transactor.EXPECT().WithTx(gomock.Any(), gomock.Any()).DoAndReturn(runInTx)
				f.extensionRepo.EXPECT().
					InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *sqlx.Tx, extension extensionModel.Extension) error {
						assert.Equal(t, day("2024-06-10"), extension.PreviousEndDate)
						assert.Equal(t, day("2024-06-12"), extension.NewEndDate)

						return nil
					})
				f.repo.EXPECT().
					UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, string(reconcile.BookingExtended), fields[model.FieldStatus])
						assert.Equal(t, day("2024-06-12"), fields[model.FieldEndDate])

						return nil
					})
			},
		},
		{
			name:   "confirmed booking keeps its status",
			stored: "confirmed",
			req:    dto.CreateExtensionRequest{NewEndDate: "2024-06-11"},
			setupMock: func(f *fixture) {
				f.transactor.EXPECT().WithTx(gomock.Any(), gomock.Any()).DoAndReturn(runInTx)
				f.extensionRepo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				f.repo.EXPECT().
					UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ gDto.FilterGroup) error {
						assert.NotContains(t, fields, model.FieldStatus)

						return nil
					})
			},
		},
		{
			name:      "completed booking cannot be extended",
			stored:    "completed",
			req:       dto.CreateExtensionRequest{NewEndDate: "2024-06-12"},
			setupMock: func(*fixture) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name:      "new end date must move forward",
			stored:    "active",
			req:       dto.CreateExtensionRequest{NewEndDate: "2024-06-10"},
			setupMock: func(*fixture) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name:   "transaction failure",
			stored: "active",
			req:    dto.CreateExtensionRequest{NewEndDate: "2024-06-12"},
			setupMock: func(f *fixture) {
				f.transactor.EXPECT().WithTx(gomock.Any(), gomock.Any()).DoAndReturn(runInTx)
				f.extensionRepo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("database error"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(storedBooking(tt.stored), nil)
			tt.setupMock(f)

			err := f.svc.AddExtension(userContext(), bookingID, tt.req)

			if tt.wantCode == 0 {
				assert.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.Equal(t, tt.wantCode, failure.GetCode(err))
		})
	}
}

func TestBookingService_GetExtensions(t *testing.T) {
	f := newFixture(t)
	f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
	f.extensionRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]extensionModel.Extension{
		{ID: "e1", BookingID: bookingID, AmountPaid: decimal.NewNullDecimal(dec("200"))},
		{ID: "e2", BookingID: bookingID, AmountPaid: decimal.NewNullDecimal(dec("150")), ReceiptNo: "R-1"},
		{ID: "e3", BookingID: bookingID, ReceiptNo: "  "},
	}, nil)

	res, err := f.svc.GetExtensions(context.Background(), bookingID)

	require.NoError(t, err)
	require.Len(t, res.Extensions, 3)
	assert.False(t, res.Extensions[0].Settled)
	assert.True(t, res.Extensions[1].Settled)
	assert.False(t, res.Extensions[2].Settled)
	assert.True(t, dec("200").Equal(res.Owed))
}

func TestBookingService_Charges(t *testing.T) {
	t.Run("add charge to missing booking", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		err := f.svc.AddCharge(userContext(), bookingID, dto.CreateChargeRequest{Description: "Fuel", Amount: decimal.NewNullDecimal(dec("50"))})

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("add charge", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.chargeRepo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, charge chargeModel.Charge) error {
				assert.Equal(t, bookingID, charge.BookingID)
				assert.Equal(t, "Fuel", charge.Description)

				return nil
			})

		err := f.svc.AddCharge(userContext(), bookingID, dto.CreateChargeRequest{Description: "Fuel", Amount: decimal.NewNullDecimal(dec("50"))})

		assert.NoError(t, err)
	})

	t.Run("list charges with clamped shortfall", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.chargeRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]chargeModel.Charge{
			{ID: "c1", Amount: decimal.NewNullDecimal(dec("100")), AmountPaid: decimal.NewNullDecimal(dec("40"))},
			{ID: "c2", Amount: decimal.NewNullDecimal(dec("50")), AmountPaid: decimal.NewNullDecimal(dec("80"))},
		}, nil)

		res, err := f.svc.GetCharges(context.Background(), bookingID)

		require.NoError(t, err)
		assert.True(t, decimal.Zero.Equal(res.Charges[1].Shortfall))
		assert.True(t, dec("60").Equal(res.Shortfall))
	})
}

func TestBookingService_Return(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(f *fixture)
		wantCode  int
	}{
		{
			name: "first return is logged",
			setupMock: func(f *fixture) {
				f.retrievalRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				f.retrievalRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, retrieval retrievalModel.Retrieval) error {
						assert.Equal(t, bookingID, retrieval.BookingID)
						assert.Equal(t, 42000, retrieval.Odometer)

						return nil
					})
			},
		},
		{
			name: "second return conflicts",
			setupMock: func(f *fixture) {
				f.retrievalRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantCode: http.StatusConflict,
		},
		{
			name: "concurrent return hits the unique index",
			setupMock: func(f *fixture) {
				f.retrievalRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				f.retrievalRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(&pq.Error{Code: constant.PqErrorCodeUniqueViolation})
			},
			wantCode: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
			tt.setupMock(f)

			res, err := f.svc.Return(userContext(), bookingID, dto.ReturnVehicleRequest{Odometer: 42000, FuelLevel: "full"})

			if tt.wantCode == 0 {
				require.NoError(t, err)
				assert.Equal(t, bookingID, res.BookingID)

				return
			}

			require.Error(t, err)
			assert.Equal(t, tt.wantCode, failure.GetCode(err))
		})
	}
}
