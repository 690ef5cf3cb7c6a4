package dto

import (
	"fleetdesk/internal/domains/extension/model"
	"fleetdesk/shared"
	gDto "fleetdesk/shared/dto"
	gModel "fleetdesk/shared/model"
	"fleetdesk/shared/timezone"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateExtensionRequest struct {
	NewEndDate string              `json:"new_end_date" validate:"required,datetime=2006-01-02"`
	AmountPaid decimal.NullDecimal `json:"amount_paid"  validate:"omitempty,gte=0"`
	ReceiptNo  string              `json:"receipt_no"   validate:"omitempty,max=50"`
}

func (c *CreateExtensionRequest) ToModel(bookingID string, previousEndDate time.Time, user string) (model.Extension, error) {
	newEndDate, err := shared.ParseDate(c.NewEndDate)
	if err != nil {
		return model.Extension{}, fmt.Errorf("new_end_date: %w", err)
	}

	return model.Extension{
		ID:              uuid.NewString(),
		BookingID:       bookingID,
		PreviousEndDate: previousEndDate,
		NewEndDate:      newEndDate,
		AmountPaid:      c.AmountPaid,
		ReceiptNo:       c.ReceiptNo,
		Metadata:        gModel.NewMetadata(user, timezone.Now()),
	}, nil
}

type ExtensionResponse struct {
	ID              string              `json:"id"`
	BookingID       string              `json:"booking_id"`
	PreviousEndDate string              `json:"previous_end_date"`
	NewEndDate      string              `json:"new_end_date"`
	AmountPaid      decimal.NullDecimal `json:"amount_paid" swaggertype:"string"`
	ReceiptNo       string              `json:"receipt_no"`
	Settled         bool                `json:"settled"`
	Owed            decimal.Decimal     `json:"owed"`
	gDto.Metadata
}

func (r *ExtensionResponse) FromModel(model model.Extension) {
	ledger := model.ToLedger()

	r.ID = model.ID
	r.BookingID = model.BookingID
	r.PreviousEndDate = shared.FormatDate(model.PreviousEndDate)
	r.NewEndDate = shared.FormatDate(model.NewEndDate)
	r.AmountPaid = model.AmountPaid
	r.ReceiptNo = model.ReceiptNo
	r.Settled = ledger.Settled()
	r.Owed = ledger.Owed()
	r.Metadata.FromModel(model.Metadata)
}

type GetExtensionsResponse struct {
	Extensions []ExtensionResponse `json:"extensions"`
	Owed       decimal.Decimal     `json:"owed"`
}

func (r *GetExtensionsResponse) FromModels(models []model.Extension) {
	r.Owed = decimal.Zero

	r.Extensions = make([]ExtensionResponse, len(models))
	for i, mod := range models {
		r.Extensions[i].FromModel(mod)
		r.Owed = r.Owed.Add(r.Extensions[i].Owed)
	}
}
