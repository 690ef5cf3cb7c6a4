package model

import (
	"fleetdesk/internal/reconcile"
	"fleetdesk/shared/model"
	"time"

	"github.com/shopspring/decimal"
)

const (
	TableName  = "booking_extensions"
	EntityName = "extension"

	FieldID        = "id"
	FieldBookingID = "booking_id"
)

type Extension struct {
	ID              string              `db:"id"`
	BookingID       string              `db:"booking_id"`
	PreviousEndDate time.Time           `db:"previous_end_date"`
	NewEndDate      time.Time           `db:"new_end_date"`
	AmountPaid      decimal.NullDecimal `db:"amount_paid"`
	ReceiptNo       string              `db:"receipt_no"`
	model.Metadata
}

func (e Extension) ToLedger() reconcile.Extension {
	return reconcile.Extension{
		BookingID:  e.BookingID,
		AmountPaid: e.AmountPaid.Decimal,
		ReceiptNo:  e.ReceiptNo,
	}
}

func ToLedgers(extensions []Extension) []reconcile.Extension {
	res := make([]reconcile.Extension, len(extensions))
	for i, extension := range extensions {
		res[i] = extension.ToLedger()
	}

	return res
}
