package export_test

import (
	"bytes"
	"fleetdesk/internal/domains/dashboard/export"
	ledgerModel "fleetdesk/internal/domains/ledger/model"
	"fleetdesk/internal/reconcile"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var today = time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)

func day(d int) time.Time {
	return time.Date(2024, 6, d, 0, 0, 0, 0, time.UTC)
}

func snapshot() ledgerModel.Snapshot {
	return ledgerModel.Snapshot{
		Bookings: []reconcile.Booking{
			{
				ID: "settled", CustomerID: "c1", VehicleID: "v1", EndDate: day(1),
				Status: reconcile.BookingCompleted, PaymentStatus: reconcile.PaymentPaid,
				TotalAmount: decimal.NewFromInt(500),
			},
			{
				ID: "due-today", CustomerID: "c1", VehicleID: "v2", EndDate: day(10),
				Status: reconcile.BookingActive, PaymentStatus: reconcile.PaymentUnpaid,
				TotalAmount: decimal.NewFromInt(300),
			},
			{
				ID: "late", CustomerID: "c2", VehicleID: "v3", EndDate: day(5),
				Status: reconcile.BookingActive, PaymentStatus: reconcile.PaymentPartial,
				TotalAmount: decimal.NewFromInt(1000),
			},
		},
		Extensions: map[string][]reconcile.Extension{
			"late": {{BookingID: "late", AmountPaid: decimal.NewFromInt(200)}},
		},
		Charges: map[string][]reconcile.ExtraCharge{
			"late": {{BookingID: "late", Amount: decimal.NewFromInt(100), AmountPaid: decimal.NewFromInt(40)}},
		},
		Returned: map[string]bool{},
	}
}

func TestRows(t *testing.T) {
	rows := export.Rows(snapshot(), today)

	require.Len(t, rows, 2)
	assert.Equal(t, "late", rows[0].Booking.ID)
	assert.Equal(t, 5, rows[0].Classification.DaysOverdue)
	assert.Equal(t, "1260", rows[0].Breakdown.Total.String())
	assert.Equal(t, "due-today", rows[1].Booking.ID)
}

func TestRows_Empty(t *testing.T) {
	assert.Empty(t, export.Rows(ledgerModel.Snapshot{}, today))
}

func TestWorkbook(t *testing.T) {
	data, err := export.Workbook(export.Rows(snapshot(), today), today)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)

	defer f.Close()

	assert.Equal(t, []string{export.SheetOutstanding, export.SheetSummary}, f.GetSheetList())

	raw := excelize.Options{RawCellValue: true}

	cell, err := f.GetCellValue(export.SheetOutstanding, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Booking", cell)

	cell, err = f.GetCellValue(export.SheetOutstanding, "A2")
	require.NoError(t, err)
	assert.Equal(t, "late", cell)

	cell, err = f.GetCellValue(export.SheetOutstanding, "G2")
	require.NoError(t, err)
	assert.Equal(t, string(reconcile.TagOverdue), cell)

	cell, err = f.GetCellValue(export.SheetOutstanding, "L2", raw)
	require.NoError(t, err)
	assert.Equal(t, "1260", cell)

	cell, err = f.GetCellValue(export.SheetOutstanding, "A3")
	require.NoError(t, err)
	assert.Equal(t, "due-today", cell)

	cell, err = f.GetCellValue(export.SheetSummary, "B1")
	require.NoError(t, err)
	assert.Equal(t, "2024-06-10", cell)

	cell, err = f.GetCellValue(export.SheetSummary, "B4", raw)
	require.NoError(t, err)
	assert.Equal(t, "1560", cell)
}

func TestWorkbook_NoRows(t *testing.T) {
	data, err := export.Workbook(nil, today)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)

	defer f.Close()

	rows, err := f.GetRows(export.SheetOutstanding)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
