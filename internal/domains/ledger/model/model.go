package model

import (
	"fleetdesk/internal/reconcile"
	"time"

	"github.com/shopspring/decimal"
)

// Snapshot is a set of bookings together with everything the reconciliation
// engine needs to price and classify them.
type Snapshot struct {
	Bookings   []reconcile.Booking
	Extensions map[string][]reconcile.Extension
	Charges    map[string][]reconcile.ExtraCharge
	Returned   map[string]bool
}

func (s Snapshot) Outstanding() decimal.Decimal {
	return reconcile.Rollup(s.Bookings, s.Extensions, s.Charges)
}

func (s Snapshot) Breakdown(booking reconcile.Booking) reconcile.Breakdown {
	return reconcile.BreakdownForBooking(booking, s.Extensions[booking.ID], s.Charges[booking.ID])
}

func (s Snapshot) Classify(today time.Time) []reconcile.ClassifiedBooking {
	return reconcile.ClassifyBookings(s.Bookings, s.Extensions, s.Charges, s.Returned, today)
}

// Flagged keeps the bookings tagged overdue or due today.
func (s Snapshot) Flagged(today time.Time) []reconcile.ClassifiedBooking {
	res := []reconcile.ClassifiedBooking{}

	for _, booking := range s.Classify(today) {
		if booking.Classification.Tag != reconcile.TagOnTime {
			res = append(res, booking)
		}
	}

	return res
}

func (s Snapshot) IDs() []string {
	ids := make([]string, len(s.Bookings))
	for i, booking := range s.Bookings {
		ids[i] = booking.ID
	}

	return ids
}
