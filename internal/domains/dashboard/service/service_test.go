package service_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"fleetdesk/config"
	otelMocks "fleetdesk/infras/otel/mocks"
	complianceMocks "fleetdesk/internal/domains/compliance/mocks"
	complianceModel "fleetdesk/internal/domains/compliance/model"
	"fleetdesk/internal/domains/dashboard/export"
	"fleetdesk/internal/domains/dashboard/service"
	ledgerMocks "fleetdesk/internal/domains/ledger/mocks"
	ledgerModel "fleetdesk/internal/domains/ledger/model"
	maintenanceMocks "fleetdesk/internal/domains/maintenance/mocks"
	maintenanceModel "fleetdesk/internal/domains/maintenance/model"
	vehicleMocks "fleetdesk/internal/domains/vehicle/mocks"
	vehicleModel "fleetdesk/internal/domains/vehicle/model"
	"fleetdesk/internal/reconcile"
	"fleetdesk/shared/cache"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	ledger      *ledgerMocks.MockLedger
	compliance  *complianceMocks.MockCompliance
	maintenance *maintenanceMocks.MockMaintenance
	vehicle     *vehicleMocks.MockVehicle
	mr          *miniredis.Miniredis
	svc         service.Dashboard
}

func setup(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	mr := miniredis.RunT(t)
	otel := otelMocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 60

	f := fixture{
		ledger:      ledgerMocks.NewMockLedger(ctrl),
		compliance:  complianceMocks.NewMockCompliance(ctrl),
		maintenance: maintenanceMocks.NewMockMaintenance(ctrl),
		vehicle:     vehicleMocks.NewMockVehicle(ctrl),
		mr:          mr,
	}

	f.svc = service.New(
		f.ledger,
		f.compliance,
		f.maintenance,
		f.vehicle,
		cfg,
		cache.NewRedisCache(redis.NewClient(&redis.Options{Addr: mr.Addr()}), otel),
		otel,
	)

	return f
}

func day(value string) time.Time {
	d, _ := time.Parse(time.DateOnly, value)

	return d
}

func fleetSnapshot() ledgerModel.Snapshot {
	return ledgerModel.Snapshot{
		Bookings: []reconcile.Booking{
			{ID: "b1", EndDate: day("2024-06-05"), Status: reconcile.BookingActive, PaymentStatus: reconcile.PaymentUnpaid, TotalAmount: decimal.NewFromInt(1000)},
			{ID: "b2", EndDate: day("2024-06-10"), Status: reconcile.BookingConfirmed, PaymentStatus: reconcile.PaymentPaid, TotalAmount: decimal.NewFromInt(300)},
			{ID: "b3", EndDate: day("2024-06-01"), Status: reconcile.BookingActive, PaymentStatus: reconcile.PaymentPartial, TotalAmount: decimal.NewFromInt(500)},
			{ID: "b4", EndDate: day("2024-05-20"), Status: reconcile.BookingCompleted, PaymentStatus: reconcile.PaymentPaid, TotalAmount: decimal.NewFromInt(200)},
		},
		Extensions: map[string][]reconcile.Extension{
			"b1": {{BookingID: "b1", AmountPaid: decimal.NewFromInt(100)}, {BookingID: "b1", AmountPaid: decimal.NewFromInt(80), ReceiptNo: "R-1"}},
		},
		Charges: map[string][]reconcile.ExtraCharge{
			"b4": {{BookingID: "b4", Amount: decimal.NewFromInt(50), AmountPaid: decimal.NewFromInt(70)}},
		},
		Returned: map[string]bool{"b3": true, "b4": true},
	}
}

func TestDashboardService_Summary(t *testing.T) {
	today := day("2024-06-10")

	t.Run("folds every data set", func(t *testing.T) {
		f := setup(t)

		f.ledger.EXPECT().Load(gomock.Any(), gomock.Any()).Return(fleetSnapshot(), nil)
		f.compliance.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]complianceModel.Record{
			{ID: "c1", VehicleID: "v1", RecordType: "insurance", ExpiryDate: day("2024-06-09")},
			{ID: "c2", VehicleID: "v2", RecordType: "insurance", ExpiryDate: day("2024-07-10")},
			{ID: "c3", VehicleID: "v2", RecordType: "registration", ExpiryDate: day("2024-07-11")},
		}, nil)
		f.maintenance.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]maintenanceModel.Task{
			{ID: "m1", Status: "In Progress", ScheduledDate: day("2024-06-01")},
			{ID: "m2", Status: "scheduled", ScheduledDate: day("2024-06-01")},
			{ID: "m3", Status: "completed", ScheduledDate: day("2024-06-01")},
		}, nil)
		f.vehicle.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any(), vehicleModel.FieldID, vehicleModel.FieldStatus).Return([]vehicleModel.Vehicle{
			{ID: "v1", Status: vehicleModel.StatusRented},
			{ID: "v2", Status: vehicleModel.StatusAvailable},
			{ID: "v3", Status: vehicleModel.StatusRented},
		}, nil)

		res, err := f.svc.Summary(context.Background(), today)

		require.NoError(t, err)
		assert.Equal(t, "2024-06-10", res.AsOf)

		assert.Equal(t, 4, res.Bookings.Total)
		assert.Equal(t, 2, res.Bookings.ByStatus[reconcile.BookingActive])
		assert.Equal(t, 0, res.Bookings.ByStatus[reconcile.BookingOverdue])
		assert.Equal(t, 1, res.Bookings.ByTag[reconcile.TagOverdue])
		assert.Equal(t, 1, res.Bookings.ByTag[reconcile.TagDueToday])
		assert.Equal(t, 2, res.Bookings.ByTag[reconcile.TagOnTime])

		assert.Equal(t, 1, res.Compliance.Expired)
		assert.Equal(t, 1, res.Compliance.ExpiringSoon)
		assert.Equal(t, 1, res.Compliance.Valid)

		assert.Equal(t, 1, res.Maintenance.InShop)
		assert.Equal(t, 1, res.Maintenance.Scheduled)
		assert.Equal(t, 1, res.Maintenance.Done)
		assert.Equal(t, 1, res.Maintenance.PastDue)

		assert.Equal(t, "2000", res.Totals.Billed.String())
		assert.Equal(t, "1500", res.Totals.UnpaidPrincipal.String())
		assert.Equal(t, "1600", res.Totals.Outstanding.String())

		assert.Equal(t, 3, res.Fleet.Total)
		assert.Equal(t, 2, res.Fleet.ByStatus[vehicleModel.StatusRented])
		assert.Equal(t, 0, res.Fleet.ByStatus[vehicleModel.StatusRetired])
	})

	t.Run("renewed records count once", func(t *testing.T) {
		f := setup(t)

		f.ledger.EXPECT().Load(gomock.Any(), gomock.Any()).Return(ledgerModel.Snapshot{}, nil)
		f.compliance.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]complianceModel.Record{
			{ID: "old", VehicleID: "v1", RecordType: "insurance", DateRenewed: day("2022-06-11"), ExpiryDate: day("2023-06-11")},
			{ID: "renewal", VehicleID: "v1", RecordType: "insurance", DateRenewed: day("2023-06-10"), ExpiryDate: day("2025-06-10")},
			{ID: "sticker", VehicleID: "v1", RecordType: "safety_sticker", ExpiryDate: day("2024-06-01")},
		}, nil)
		f.maintenance.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
		f.vehicle.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)

		res, err := f.svc.Summary(context.Background(), today)

		require.NoError(t, err)
		assert.Equal(t, 1, res.Compliance.Valid)
		assert.Equal(t, 1, res.Compliance.Expired)
		assert.Zero(t, res.Compliance.ExpiringSoon)
	})

	t.Run("empty fleet", func(t *testing.T) {
		f := setup(t)

		f.ledger.EXPECT().Load(gomock.Any(), gomock.Any()).Return(ledgerModel.Snapshot{}, nil)
		f.compliance.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
		f.maintenance.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
		f.vehicle.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)

		res, err := f.svc.Summary(context.Background(), today)

		require.NoError(t, err)
		assert.Zero(t, res.Bookings.Total)
		assert.True(t, res.Totals.Outstanding.IsZero())
		assert.Zero(t, res.Compliance)
		assert.Zero(t, res.Maintenance)
	})

	t.Run("second read is served from cache", func(t *testing.T) {
		f := setup(t)

		f.ledger.EXPECT().Load(gomock.Any(), gomock.Any()).Return(fleetSnapshot(), nil).Times(1)
		f.compliance.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil).Times(1)
		f.maintenance.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil).Times(1)
		f.vehicle.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil).Times(1)

		_, err := f.svc.Summary(context.Background(), today)
		require.NoError(t, err)

		require.Eventually(t, func() bool {
			return f.mr.Exists("ledger:dashboard:2024-06-10")
		}, time.Second, 10*time.Millisecond)

		res, err := f.svc.Summary(context.Background(), today)

		require.NoError(t, err)
		assert.Equal(t, "1600", res.Totals.Outstanding.String())
	})

	t.Run("one failing load fails the summary", func(t *testing.T) {
		f := setup(t)

		f.ledger.EXPECT().Load(gomock.Any(), gomock.Any()).Return(ledgerModel.Snapshot{}, nil).AnyTimes()
		f.compliance.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("database error"))
		f.maintenance.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
		f.vehicle.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()

		_, err := f.svc.Summary(context.Background(), today)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to get compliance records for dashboard")
	})
}

func TestDashboardService_OutstandingReport(t *testing.T) {
	today := day("2024-06-10")

	t.Run("renders bookings with a balance", func(t *testing.T) {
		f := setup(t)

		f.ledger.EXPECT().Load(gomock.Any(), gomock.Any()).Return(fleetSnapshot(), nil)

		data, err := f.svc.OutstandingReport(context.Background(), today)
		require.NoError(t, err)

		book, err := excelize.OpenReader(bytes.NewReader(data))
		require.NoError(t, err)

		defer book.Close()

		rows, err := book.GetRows(export.SheetOutstanding)
		require.NoError(t, err)
		require.Len(t, rows, 3)
		assert.Equal(t, "b1", rows[1][0])
		assert.Equal(t, "b3", rows[2][0])
	})

	t.Run("ledger error", func(t *testing.T) {
		f := setup(t)

		f.ledger.EXPECT().Load(gomock.Any(), gomock.Any()).Return(ledgerModel.Snapshot{}, errors.New("database error"))

		_, err := f.svc.OutstandingReport(context.Background(), today)

		assert.Error(t, err)
	})
}
