package model

import (
	"fleetdesk/internal/reconcile"
	"fleetdesk/shared/model"

	"github.com/shopspring/decimal"
)

const (
	TableName  = "booking_charges"
	EntityName = "charge"

	FieldID        = "id"
	FieldBookingID = "booking_id"
)

type Charge struct {
	ID          string              `db:"id"`
	BookingID   string              `db:"booking_id"`
	Description string              `db:"description"`
	Amount      decimal.NullDecimal `db:"amount"`
	AmountPaid  decimal.NullDecimal `db:"amount_paid"`
	model.Metadata
}

func (c Charge) ToLedger() reconcile.ExtraCharge {
	return reconcile.ExtraCharge{
		BookingID:  c.BookingID,
		Amount:     c.Amount.Decimal,
		AmountPaid: c.AmountPaid.Decimal,
	}
}

func ToLedgers(charges []Charge) []reconcile.ExtraCharge {
	res := make([]reconcile.ExtraCharge, len(charges))
	for i, charge := range charges {
		res[i] = charge.ToLedger()
	}

	return res
}
