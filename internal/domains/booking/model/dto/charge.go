package dto

import (
	"fleetdesk/internal/domains/charge/model"
	gDto "fleetdesk/shared/dto"
	gModel "fleetdesk/shared/model"
	"fleetdesk/shared/timezone"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateChargeRequest accepts a zero amount for a waived charge; a missing
// amount is rejected by gte because NULL decimals fail numeric tags.
type CreateChargeRequest struct {
	Description string              `json:"description" validate:"required,max=255"`
	Amount      decimal.NullDecimal `json:"amount"      validate:"gte=0"`
	AmountPaid  decimal.NullDecimal `json:"amount_paid" validate:"omitempty,gte=0"`
}

func (c *CreateChargeRequest) ToModel(bookingID, user string) model.Charge {
	return model.Charge{
		ID:          uuid.NewString(),
		BookingID:   bookingID,
		Description: c.Description,
		Amount:      c.Amount,
		AmountPaid:  c.AmountPaid,
		Metadata:    gModel.NewMetadata(user, timezone.Now()),
	}
}

type ChargeResponse struct {
	ID          string              `json:"id"`
	BookingID   string              `json:"booking_id"`
	Description string              `json:"description"`
	Amount      decimal.NullDecimal `json:"amount"      swaggertype:"string"`
	AmountPaid  decimal.NullDecimal `json:"amount_paid" swaggertype:"string"`
	Shortfall   decimal.Decimal     `json:"shortfall"`
	gDto.Metadata
}

func (r *ChargeResponse) FromModel(model model.Charge) {
	r.ID = model.ID
	r.BookingID = model.BookingID
	r.Description = model.Description
	r.Amount = model.Amount
	r.AmountPaid = model.AmountPaid
	r.Shortfall = model.ToLedger().Shortfall()
	r.Metadata.FromModel(model.Metadata)
}

type GetChargesResponse struct {
	Charges   []ChargeResponse `json:"charges"`
	Shortfall decimal.Decimal  `json:"shortfall"`
}

func (r *GetChargesResponse) FromModels(models []model.Charge) {
	r.Shortfall = decimal.Zero

	r.Charges = make([]ChargeResponse, len(models))
	for i, mod := range models {
		r.Charges[i].FromModel(mod)
		r.Shortfall = r.Shortfall.Add(r.Charges[i].Shortfall)
	}
}
