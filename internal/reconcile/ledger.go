package reconcile

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type BookingStatus string

const (
	BookingConfirmed     BookingStatus = "confirmed"
	BookingPendingPickup BookingStatus = "pending_pickup"
	BookingActive        BookingStatus = "active"
	BookingExtended      BookingStatus = "extended"
	BookingCompleted     BookingStatus = "completed"
	BookingOverdue       BookingStatus = "overdue"
)

// BookingStatuses lists every known status in display order.
var BookingStatuses = []BookingStatus{
	BookingConfirmed,
	BookingPendingPickup,
	BookingActive,
	BookingExtended,
	BookingCompleted,
	BookingOverdue,
}

type PaymentStatus string

const (
	PaymentUnpaid  PaymentStatus = "unpaid"
	PaymentPartial PaymentStatus = "partial"
	PaymentPaid    PaymentStatus = "paid"
)

var PaymentStatuses = []PaymentStatus{PaymentUnpaid, PaymentPartial, PaymentPaid}

type Booking struct {
	ID            string
	CustomerID    string
	VehicleID     string
	StartDate     time.Time
	EndDate       time.Time
	Status        BookingStatus
	PaymentStatus PaymentStatus
	TotalAmount   decimal.Decimal
}

// Extension is a charge for lengthening a rental. Without a receipt number the
// AmountPaid figure is still owed.
type Extension struct {
	BookingID  string
	AmountPaid decimal.Decimal
	ReceiptNo  string
}

// Settled reports whether a receipt has been issued for the extension.
func (e Extension) Settled() bool {
	return strings.TrimSpace(e.ReceiptNo) != ""
}

// Owed is the amount the extension adds to the booking balance.
func (e Extension) Owed() decimal.Decimal {
	if e.Settled() {
		return decimal.Zero
	}

	return e.AmountPaid
}

type ExtraCharge struct {
	BookingID  string
	Amount     decimal.Decimal
	AmountPaid decimal.Decimal
}

// Shortfall is amount minus amount paid, never below zero.
func (c ExtraCharge) Shortfall() decimal.Decimal {
	short := c.Amount.Sub(c.AmountPaid)
	if short.IsNegative() {
		return decimal.Zero
	}

	return short
}

// Breakdown splits a booking balance into its three sources.
type Breakdown struct {
	Principal  decimal.Decimal `json:"principal"`
	Extensions decimal.Decimal `json:"extensions"`
	Charges    decimal.Decimal `json:"charges"`
	Total      decimal.Decimal `json:"total"`
}

// PrincipalOutstanding is all or nothing: a partial payment does not reduce it.
func PrincipalOutstanding(b Booking) decimal.Decimal {
	if b.PaymentStatus == PaymentPaid {
		return decimal.Zero
	}

	return b.TotalAmount
}

func BreakdownForBooking(b Booking, extensions []Extension, charges []ExtraCharge) Breakdown {
	res := Breakdown{
		Principal:  PrincipalOutstanding(b),
		Extensions: decimal.Zero,
		Charges:    decimal.Zero,
	}

	for _, ext := range extensions {
		res.Extensions = res.Extensions.Add(ext.Owed())
	}

	for _, charge := range charges {
		res.Charges = res.Charges.Add(charge.Shortfall())
	}

	res.Total = res.Principal.Add(res.Extensions).Add(res.Charges)

	return res
}

// OutstandingForBooking returns what is still owed on one booking.
func OutstandingForBooking(b Booking, extensions []Extension, charges []ExtraCharge) decimal.Decimal {
	return BreakdownForBooking(b, extensions, charges).Total
}

// Rollup sums OutstandingForBooking across bookings. Duplicate IDs are counted
// as many times as they appear.
func Rollup(bookings []Booking, extensionsByBooking map[string][]Extension, chargesByBooking map[string][]ExtraCharge) decimal.Decimal {
	total := decimal.Zero

	for _, b := range bookings {
		total = total.Add(OutstandingForBooking(b, extensionsByBooking[b.ID], chargesByBooking[b.ID]))
	}

	return total
}

func GroupExtensions(extensions []Extension) map[string][]Extension {
	res := make(map[string][]Extension)
	for _, ext := range extensions {
		res[ext.BookingID] = append(res[ext.BookingID], ext)
	}

	return res
}

func GroupCharges(charges []ExtraCharge) map[string][]ExtraCharge {
	res := make(map[string][]ExtraCharge)
	for _, charge := range charges {
		res[charge.BookingID] = append(res[charge.BookingID], charge)
	}

	return res
}

// ParseBookingStatus accepts the stored spellings (pending_pickup, pending-pickup,
// PendingPickup). Unknown values are returned lower-cased and are never eligible
// for overdue tracking.
func ParseBookingStatus(raw string) BookingStatus {
	key := compact(raw)

	for _, status := range BookingStatuses {
		if compact(string(status)) == key {
			return status
		}
	}

	return BookingStatus(strings.ToLower(strings.TrimSpace(raw)))
}

// ParsePaymentStatus treats anything it does not recognize as unpaid, which
// keeps the principal on the books.
func ParsePaymentStatus(raw string) PaymentStatus {
	key := compact(raw)

	for _, status := range PaymentStatuses {
		if string(status) == key {
			return status
		}
	}

	return PaymentUnpaid
}

func compact(raw string) string {
	return strings.NewReplacer("_", "", "-", "", " ", "").Replace(strings.ToLower(strings.TrimSpace(raw)))
}
