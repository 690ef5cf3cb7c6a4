package dto

import (
	"fleetdesk/internal/reconcile"
	"fleetdesk/shared"
	"time"

	"github.com/shopspring/decimal"
)

type BalanceResponse struct {
	BookingID      string                          `json:"booking_id"`
	AsOf           string                          `json:"as_of"`
	Returned       bool                            `json:"returned"`
	Breakdown      reconcile.Breakdown             `json:"breakdown"`
	Classification reconcile.BookingClassification `json:"classification"`
}

func (r *BalanceResponse) FromLedger(booking reconcile.Booking, breakdown reconcile.Breakdown, returned bool, today time.Time) {
	r.BookingID = booking.ID
	r.AsOf = shared.FormatDate(reconcile.Date(today))
	r.Returned = returned
	r.Breakdown = breakdown
	r.Classification = reconcile.ClassifyBooking(booking, today, returned)
}

type OverdueBookingResponse struct {
	BookingID     string          `json:"booking_id"`
	CustomerID    string          `json:"customer_id"`
	VehicleID     string          `json:"vehicle_id"`
	EndDate       string          `json:"end_date"`
	Status        string          `json:"status"`
	PaymentStatus string          `json:"payment_status"`
	Tag           string          `json:"tag"`
	IsDueToday    bool            `json:"is_due_today"`
	DaysOverdue   int             `json:"days_overdue"`
	Outstanding   decimal.Decimal `json:"outstanding"`
}

type GetOverdueResponse struct {
	AsOf      string                   `json:"as_of"`
	Bookings  []OverdueBookingResponse `json:"bookings"`
	TotalData int                      `json:"total_data"`
}

func (r *GetOverdueResponse) FromClassified(bookings []reconcile.ClassifiedBooking, today time.Time) {
	r.AsOf = shared.FormatDate(reconcile.Date(today))
	r.TotalData = len(bookings)

	r.Bookings = make([]OverdueBookingResponse, len(bookings))
	for i, booking := range bookings {
		r.Bookings[i] = OverdueBookingResponse{
			BookingID:     booking.Booking.ID,
			CustomerID:    booking.Booking.CustomerID,
			VehicleID:     booking.Booking.VehicleID,
			EndDate:       shared.FormatDate(booking.Booking.EndDate),
			Status:        string(booking.Booking.Status),
			PaymentStatus: string(booking.Booking.PaymentStatus),
			Tag:           string(booking.Classification.Tag),
			IsDueToday:    booking.Classification.IsDueToday,
			DaysOverdue:   booking.Classification.DaysOverdue,
			Outstanding:   booking.Outstanding,
		}
	}
}
