package reconcile_test

import (
	"testing"

	"fleetdesk/internal/reconcile"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func TestOutstandingForBooking(t *testing.T) {
	tests := []struct {
		name       string
		booking    reconcile.Booking
		extensions []reconcile.Extension
		charges    []reconcile.ExtraCharge
		expected   string
	}{
		{
			name:     "paid booking without extras owes nothing",
			booking:  reconcile.Booking{ID: "b1", PaymentStatus: reconcile.PaymentPaid, TotalAmount: dec("450.00")},
			expected: "0",
		},
		{
			name:     "unpaid booking owes full principal",
			booking:  reconcile.Booking{ID: "b1", PaymentStatus: reconcile.PaymentUnpaid, TotalAmount: dec("450.00")},
			expected: "450",
		},
		{
			name:     "partial payment does not reduce principal",
			booking:  reconcile.Booking{ID: "b1", PaymentStatus: reconcile.PaymentPartial, TotalAmount: dec("450.00")},
			expected: "450",
		},
		{
			name:     "absent total is zero",
			booking:  reconcile.Booking{ID: "b1", PaymentStatus: reconcile.PaymentUnpaid},
			expected: "0",
		},
		{
			name:    "unreceipted extension adds its amount",
			booking: reconcile.Booking{ID: "b1", PaymentStatus: reconcile.PaymentPaid, TotalAmount: dec("100")},
			extensions: []reconcile.Extension{
				{BookingID: "b1", AmountPaid: dec("75.50")},
			},
			expected: "75.5",
		},
		{
			name:    "receipted extension adds nothing",
			booking: reconcile.Booking{ID: "b1", PaymentStatus: reconcile.PaymentPaid, TotalAmount: dec("100")},
			extensions: []reconcile.Extension{
				{BookingID: "b1", AmountPaid: dec("75.50"), ReceiptNo: "R-1001"},
			},
			expected: "0",
		},
		{
			name:    "blank receipt number counts as absent",
			booking: reconcile.Booking{ID: "b1", PaymentStatus: reconcile.PaymentPaid},
			extensions: []reconcile.Extension{
				{BookingID: "b1", AmountPaid: dec("20"), ReceiptNo: "   "},
			},
			expected: "20",
		},
		{
			name:    "overpaid charge is clamped at zero",
			booking: reconcile.Booking{ID: "b1", PaymentStatus: reconcile.PaymentPaid},
			charges: []reconcile.ExtraCharge{
				{BookingID: "b1", Amount: dec("50"), AmountPaid: dec("80")},
				{BookingID: "b1", Amount: dec("30"), AmountPaid: dec("10")},
			},
			expected: "20",
		},
		{
			name:    "all three sources combine",
			booking: reconcile.Booking{ID: "b1", PaymentStatus: reconcile.PaymentPartial, TotalAmount: dec("300")},
			extensions: []reconcile.Extension{
				{BookingID: "b1", AmountPaid: dec("60")},
				{BookingID: "b1", AmountPaid: dec("90"), ReceiptNo: "R-7"},
			},
			charges: []reconcile.ExtraCharge{
				{BookingID: "b1", Amount: dec("40"), AmountPaid: dec("15")},
			},
			expected: "385",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := reconcile.OutstandingForBooking(tt.booking, tt.extensions, tt.charges)

			assert.True(t, dec(tt.expected).Equal(got), "expected %s, got %s", tt.expected, got)
			assert.False(t, got.IsNegative())
		})
	}
}

func TestOutstandingForBooking_NeverBelowPrincipalWhenUnsettled(t *testing.T) {
	for _, status := range []reconcile.PaymentStatus{reconcile.PaymentUnpaid, reconcile.PaymentPartial} {
		booking := reconcile.Booking{ID: "b1", PaymentStatus: status, TotalAmount: dec("120")}
		charges := []reconcile.ExtraCharge{{BookingID: "b1", Amount: dec("5"), AmountPaid: dec("500")}}

		got := reconcile.OutstandingForBooking(booking, nil, charges)

		assert.True(t, got.GreaterThanOrEqual(booking.TotalAmount), "status %s", status)
	}
}

func TestBreakdownForBooking(t *testing.T) {
	booking := reconcile.Booking{ID: "b1", PaymentStatus: reconcile.PaymentUnpaid, TotalAmount: dec("200")}
	extensions := []reconcile.Extension{{BookingID: "b1", AmountPaid: dec("25")}}
	charges := []reconcile.ExtraCharge{{BookingID: "b1", Amount: dec("12.5"), AmountPaid: dec("2.5")}}

	got := reconcile.BreakdownForBooking(booking, extensions, charges)

	assert.Equal(t, "200", got.Principal.String())
	assert.Equal(t, "25", got.Extensions.String())
	assert.Equal(t, "10", got.Charges.String())
	assert.Equal(t, "235", got.Total.String())
}

func TestRollup(t *testing.T) {
	bookings := []reconcile.Booking{
		{ID: "b1", PaymentStatus: reconcile.PaymentUnpaid, TotalAmount: dec("100")},
		{ID: "b2", PaymentStatus: reconcile.PaymentPaid, TotalAmount: dec("250")},
		{ID: "b3", PaymentStatus: reconcile.PaymentPartial, TotalAmount: dec("80")},
	}
	extensions := reconcile.GroupExtensions([]reconcile.Extension{
		{BookingID: "b2", AmountPaid: dec("30")},
		{BookingID: "b3", AmountPaid: dec("999"), ReceiptNo: "R-1"},
	})
	charges := reconcile.GroupCharges([]reconcile.ExtraCharge{
		{BookingID: "b1", Amount: dec("10"), AmountPaid: dec("0")},
		{BookingID: "b3", Amount: dec("5"), AmountPaid: dec("9")},
	})

	t.Run("equals the sum of individual balances", func(t *testing.T) {
		expected := decimal.Zero
		for _, b := range bookings {
			expected = expected.Add(reconcile.OutstandingForBooking(b, extensions[b.ID], charges[b.ID]))
		}

		got := reconcile.Rollup(bookings, extensions, charges)

		assert.True(t, expected.Equal(got))
		assert.Equal(t, "220", got.String())
	})

	t.Run("order does not matter", func(t *testing.T) {
		reversed := []reconcile.Booking{bookings[2], bookings[1], bookings[0]}

		assert.True(t, reconcile.Rollup(bookings, extensions, charges).Equal(reconcile.Rollup(reversed, extensions, charges)))
	})

	t.Run("duplicates are not removed", func(t *testing.T) {
		doubled := append([]reconcile.Booking{bookings[0]}, bookings[0])

		assert.Equal(t, "220", reconcile.Rollup(doubled, extensions, charges).String())
	})

	t.Run("empty input is zero", func(t *testing.T) {
		assert.True(t, reconcile.Rollup(nil, nil, nil).IsZero())
	})
}

func TestParseBookingStatus(t *testing.T) {
	tests := []struct {
		raw      string
		expected reconcile.BookingStatus
	}{
		{raw: "active", expected: reconcile.BookingActive},
		{raw: "Active", expected: reconcile.BookingActive},
		{raw: "PendingPickup", expected: reconcile.BookingPendingPickup},
		{raw: "pending-pickup", expected: reconcile.BookingPendingPickup},
		{raw: " pending_pickup ", expected: reconcile.BookingPendingPickup},
		{raw: "Cancelled", expected: reconcile.BookingStatus("cancelled")},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.expected, reconcile.ParseBookingStatus(tt.raw))
		})
	}
}

func TestParsePaymentStatus(t *testing.T) {
	assert.Equal(t, reconcile.PaymentPaid, reconcile.ParsePaymentStatus("PAID"))
	assert.Equal(t, reconcile.PaymentPartial, reconcile.ParsePaymentStatus("Partial"))
	assert.Equal(t, reconcile.PaymentUnpaid, reconcile.ParsePaymentStatus(""))
	assert.Equal(t, reconcile.PaymentUnpaid, reconcile.ParsePaymentStatus("refunded"))
}
