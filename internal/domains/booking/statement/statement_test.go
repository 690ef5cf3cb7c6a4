package statement

import (
	"bytes"
	"testing"
	"time"

	"fleetdesk/internal/reconcile"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAmountFormatter(t *testing.T) {
	tests := []struct {
		locale   string
		amount   string
		expected string
	}{
		{locale: "en-US", amount: "1500000", expected: "1,500,000.00"},
		{locale: "en-US", amount: "12.345", expected: "12.35"},
		{locale: "id-ID", amount: "1500000.5", expected: "1.500.000,50"},
		{locale: "not a locale", amount: "0", expected: "0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.locale+"/"+tt.amount, func(t *testing.T) {
			assert.Equal(t, tt.expected, newAmountFormatter(tt.locale).format(decimal.RequireFromString(tt.amount)))
		})
	}
}

func TestBuildPDF(t *testing.T) {
	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	booking := reconcile.Booking{
		ID:            "bk-1",
		StartDate:     start,
		EndDate:       end,
		Status:        reconcile.BookingActive,
		PaymentStatus: reconcile.PaymentPartial,
		TotalAmount:   decimal.NewFromInt(1000),
	}

	out, err := BuildPDF(Statement{
		Issuer:         "Fleetdesk",
		Locale:         "en-US",
		AsOf:           end.AddDate(0, 0, 3),
		Booking:        booking,
		CustomerName:   "Rina Hartono",
		VehicleLabel:   "B 1234 XYZ Toyota Avanza",
		Breakdown:      reconcile.BreakdownForBooking(booking, nil, nil),
		Classification: reconcile.ClassifyBooking(booking, end.AddDate(0, 0, 3), false),
		Lines: []Line{
			{Date: start, Description: "Rental", Amount: decimal.NewFromInt(1000), Owed: decimal.NewFromInt(1000)},
		},
	})

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}
