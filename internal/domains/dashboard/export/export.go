// Package export renders the outstanding balances workbook.
package export

import (
	"bytes"
	"cmp"
	ledgerModel "fleetdesk/internal/domains/ledger/model"
	"fleetdesk/internal/reconcile"
	"fleetdesk/shared"
	"fleetdesk/shared/constant"
	"fmt"
	"slices"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const (
	SheetOutstanding = "Outstanding"
	SheetSummary     = "Summary"

	ContentType = constant.ContentTypeXLSX

	// #,##0.00
	amountFormat = 4
)

var header = []any{
	"Booking", "Customer", "Vehicle", "End date", "Status", "Payment",
	"Tag", "Days overdue", "Principal", "Extensions", "Charges", "Outstanding",
}

type Row struct {
	Booking        reconcile.Booking
	Classification reconcile.BookingClassification
	Breakdown      reconcile.Breakdown
}

// Rows keeps the bookings that still owe money, the most overdue first.
func Rows(snapshot ledgerModel.Snapshot, today time.Time) []Row {
	res := []Row{}

	for _, booking := range snapshot.Classify(today) {
		if !booking.Outstanding.IsPositive() {
			continue
		}

		res = append(res, Row{
			Booking:        booking.Booking,
			Classification: booking.Classification,
			Breakdown:      snapshot.Breakdown(booking.Booking),
		})
	}

	slices.SortStableFunc(res, func(a, b Row) int {
		if c := cmp.Compare(b.Classification.DaysOverdue, a.Classification.DaysOverdue); c != 0 {
			return c
		}

		if c := b.Breakdown.Total.Cmp(a.Breakdown.Total); c != 0 {
			return c
		}

		return cmp.Compare(a.Booking.ID, b.Booking.ID)
	})

	return res
}

// Workbook writes a summary sheet and one line per booking with a balance.
func Workbook(rows []Row, today time.Time) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetOutstanding); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}

	if _, err := f.NewSheet(SheetSummary); err != nil {
		return nil, fmt.Errorf("failed to create summary sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	amount, err := f.NewStyle(&excelize.Style{NumFmt: amountFormat})
	if err != nil {
		return nil, fmt.Errorf("failed to create amount style: %w", err)
	}

	if err = writeOutstanding(f, rows, bold, amount); err != nil {
		return nil, err
	}

	if err = writeSummary(f, rows, today, bold, amount); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err = f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}

	return buf.Bytes(), nil
}

func writeOutstanding(f *excelize.File, rows []Row, bold, amount int) error {
	if err := f.SetSheetRow(SheetOutstanding, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	if err := f.SetCellStyle(SheetOutstanding, "A1", "L1", bold); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to resolve cell: %w", err)
		}

		values := []any{
			row.Booking.ID,
			row.Booking.CustomerID,
			row.Booking.VehicleID,
			shared.FormatDate(row.Booking.EndDate),
			string(row.Booking.Status),
			string(row.Booking.PaymentStatus),
			string(row.Classification.Tag),
			row.Classification.DaysOverdue,
			row.Breakdown.Principal.InexactFloat64(),
			row.Breakdown.Extensions.InexactFloat64(),
			row.Breakdown.Charges.InexactFloat64(),
			row.Breakdown.Total.InexactFloat64(),
		}

		if err = f.SetSheetRow(SheetOutstanding, cell, &values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if len(rows) > 0 {
		last := fmt.Sprintf("L%d", len(rows)+1)
		if err := f.SetCellStyle(SheetOutstanding, "I2", last, amount); err != nil {
			return fmt.Errorf("failed to style amounts: %w", err)
		}
	}

	if err := f.SetColWidth(SheetOutstanding, "A", "C", 38); err != nil {
		return fmt.Errorf("failed to size columns: %w", err)
	}

	return nil
}

func writeSummary(f *excelize.File, rows []Row, today time.Time, bold, amount int) error {
	total := decimal.Zero
	overdue := 0

	for _, row := range rows {
		total = total.Add(row.Breakdown.Total)

		if row.Classification.IsOverdue {
			overdue++
		}
	}

	lines := [][]any{
		{"As of", shared.FormatDate(reconcile.Date(today))},
		{"Bookings with a balance", len(rows)},
		{"Overdue", overdue},
		{"Outstanding", total.InexactFloat64()},
	}

	for i, line := range lines {
		if err := f.SetSheetRow(SheetSummary, fmt.Sprintf("A%d", i+1), &line); err != nil {
			return fmt.Errorf("failed to write summary: %w", err)
		}
	}

	if err := f.SetCellStyle(SheetSummary, "A1", fmt.Sprintf("A%d", len(lines)), bold); err != nil {
		return fmt.Errorf("failed to style summary: %w", err)
	}

	if err := f.SetCellStyle(SheetSummary, "B4", "B4", amount); err != nil {
		return fmt.Errorf("failed to style summary total: %w", err)
	}

	return nil
}
