package model

import (
	"fleetdesk/internal/reconcile"
	"fleetdesk/shared/model"
	"time"

	"github.com/shopspring/decimal"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID            = "id"
	FieldCustomerID    = "customer_id"
	FieldVehicleID     = "vehicle_id"
	FieldStartDate     = "start_date"
	FieldEndDate       = "end_date"
	FieldStatus        = "status"
	FieldPaymentStatus = "payment_status"
	FieldTotalAmount   = "total_amount"
)

type Booking struct {
	ID            string              `db:"id"`
	CustomerID    string              `db:"customer_id"`
	VehicleID     string              `db:"vehicle_id"`
	StartDate     time.Time           `db:"start_date"`
	EndDate       time.Time           `db:"end_date"`
	Status        string              `db:"status"`
	PaymentStatus string              `db:"payment_status"`
	TotalAmount   decimal.NullDecimal `db:"total_amount"`
	Notes         string              `db:"notes"`
	model.Metadata
}

// ToLedger maps the stored row onto the reconciliation input. A NULL total
// counts as zero.
func (b Booking) ToLedger() reconcile.Booking {
	return reconcile.Booking{
		ID:            b.ID,
		CustomerID:    b.CustomerID,
		VehicleID:     b.VehicleID,
		StartDate:     b.StartDate,
		EndDate:       b.EndDate,
		Status:        reconcile.ParseBookingStatus(b.Status),
		PaymentStatus: reconcile.ParsePaymentStatus(b.PaymentStatus),
		TotalAmount:   b.TotalAmount.Decimal,
	}
}

func ToLedgers(bookings []Booking) []reconcile.Booking {
	res := make([]reconcile.Booking, len(bookings))
	for i, booking := range bookings {
		res[i] = booking.ToLedger()
	}

	return res
}
