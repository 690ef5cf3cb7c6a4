package dto

import (
	ledgerModel "fleetdesk/internal/domains/ledger/model"
	"fleetdesk/internal/reconcile"
	"fleetdesk/shared"
	"time"

	"github.com/shopspring/decimal"
)

type BookingOutstanding struct {
	BookingID     string              `json:"booking_id"`
	VehicleID     string              `json:"vehicle_id"`
	EndDate       string              `json:"end_date"`
	Status        string              `json:"status"`
	PaymentStatus string              `json:"payment_status"`
	Tag           string              `json:"tag"`
	DaysOverdue   int                 `json:"days_overdue"`
	Breakdown     reconcile.Breakdown `json:"breakdown"`
}

type OutstandingResponse struct {
	CustomerID  string               `json:"customer_id"`
	AsOf        string               `json:"as_of"`
	Outstanding decimal.Decimal      `json:"outstanding"`
	Bookings    []BookingOutstanding `json:"bookings"`
}

// FromSnapshot lists every booking of the customer with its breakdown. The
// headline figure is the rollup over the same bookings.
func (r *OutstandingResponse) FromSnapshot(customerID string, snapshot ledgerModel.Snapshot, today time.Time) {
	r.CustomerID = customerID
	r.AsOf = shared.FormatDate(reconcile.Date(today))
	r.Outstanding = snapshot.Outstanding()

	classified := snapshot.Classify(today)

	r.Bookings = make([]BookingOutstanding, len(classified))
	for i, booking := range classified {
		r.Bookings[i] = BookingOutstanding{
			BookingID:     booking.Booking.ID,
			VehicleID:     booking.Booking.VehicleID,
			EndDate:       shared.FormatDate(booking.Booking.EndDate),
			Status:        string(booking.Booking.Status),
			PaymentStatus: string(booking.Booking.PaymentStatus),
			Tag:           string(booking.Classification.Tag),
			DaysOverdue:   booking.Classification.DaysOverdue,
			Breakdown:     snapshot.Breakdown(booking.Booking),
		}
	}
}
