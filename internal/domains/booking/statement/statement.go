// Package statement renders the printable balance statement of a booking.
package statement

import (
	"bytes"
	"fleetdesk/internal/reconcile"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const (
	fontFamily = "Arial"
	dateLayout = "02 Jan 2006"
)

type Line struct {
	Date        time.Time
	Description string
	Amount      decimal.Decimal
	Paid        decimal.Decimal
	Owed        decimal.Decimal
}

type Statement struct {
	Issuer         string
	Locale         string
	AsOf           time.Time
	Booking        reconcile.Booking
	CustomerName   string
	VehicleLabel   string
	Breakdown      reconcile.Breakdown
	Classification reconcile.BookingClassification
	Returned       bool
	Lines          []Line
}

type amountFormatter struct {
	printer *message.Printer
}

func newAmountFormatter(locale string) amountFormatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.AmericanEnglish
	}

	return amountFormatter{printer: message.NewPrinter(tag)}
}

func (f amountFormatter) format(amount decimal.Decimal) string {
	return f.printer.Sprint(number.Decimal(amount.Round(2).InexactFloat64(), number.Scale(2)))
}

// BuildPDF lays out one A4 page: header, booking facts, ledger lines and the
// breakdown totals.
func BuildPDF(stmt Statement) ([]byte, error) {
	amounts := newAmountFormatter(stmt.Locale)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Statement %s", stmt.Booking.ID), true)
	pdf.AddPage()

	pdf.SetFont(fontFamily, "B", 14)
	pdf.Cell(0, 8, fmt.Sprintf("%s - Booking Statement", stmt.Issuer))
	pdf.Ln(10)

	pdf.SetFont(fontFamily, "", 10)

	facts := [][2]string{
		{"Booking", stmt.Booking.ID},
		{"Customer", stmt.CustomerName},
		{"Vehicle", stmt.VehicleLabel},
		{"Period", fmt.Sprintf("%s - %s", stmt.Booking.StartDate.Format(dateLayout), stmt.Booking.EndDate.Format(dateLayout))},
		{"Status", string(stmt.Booking.Status)},
		{"Payment", string(stmt.Booking.PaymentStatus)},
		{"As of", stmt.AsOf.Format(dateLayout)},
	}

	for _, fact := range facts {
		pdf.CellFormat(35, 6, fact[0], "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 6, fact[1], "", 0, "L", false, 0, "")
		pdf.Ln(-1)
	}

	switch {
	case stmt.Classification.IsOverdue:
		pdf.SetTextColor(180, 0, 0)
		pdf.Cell(0, 6, fmt.Sprintf("OVERDUE by %d day(s)", stmt.Classification.DaysOverdue))
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(6)
	case stmt.Classification.IsDueToday && !stmt.Returned:
		pdf.Cell(0, 6, "Due for return today")
		pdf.Ln(6)
	}

	pdf.Ln(4)

	pdf.SetFont(fontFamily, "B", 10)
	pdf.CellFormat(28, 6, "Date", "1", 0, "C", false, 0, "")
	pdf.CellFormat(72, 6, "Description", "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 6, "Amount", "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 6, "Paid", "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 6, "Owed", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)

	pdf.SetFont(fontFamily, "", 10)

	for _, line := range stmt.Lines {
		pdf.CellFormat(28, 6, line.Date.Format(time.DateOnly), "1", 0, "C", false, 0, "")
		pdf.CellFormat(72, 6, line.Description, "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 6, amounts.format(line.Amount), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 6, amounts.format(line.Paid), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 6, amounts.format(line.Owed), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	pdf.Ln(4)

	totals := [][2]string{
		{"Principal outstanding", amounts.format(stmt.Breakdown.Principal)},
		{"Unsettled extensions", amounts.format(stmt.Breakdown.Extensions)},
		{"Extra charge shortfall", amounts.format(stmt.Breakdown.Charges)},
	}

	for _, total := range totals {
		pdf.CellFormat(160, 6, total[0], "", 0, "R", false, 0, "")
		pdf.CellFormat(30, 6, total[1], "", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	pdf.SetFont(fontFamily, "B", 11)
	pdf.CellFormat(160, 8, "Total outstanding", "T", 0, "R", false, 0, "")
	pdf.CellFormat(30, 8, amounts.format(stmt.Breakdown.Total), "T", 0, "R", false, 0, "")
	pdf.Ln(-1)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render statement pdf: %w", err)
	}

	return buf.Bytes(), nil
}
