package dto

import (
	"fleetdesk/internal/domains/retrieval/model"
	"fleetdesk/shared/constant"
	gDto "fleetdesk/shared/dto"
	gModel "fleetdesk/shared/model"
	"fleetdesk/shared/timezone"
	"time"

	"github.com/google/uuid"
)

type ReturnVehicleRequest struct {
	ReturnedAt     string `json:"returned_at"     validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	Odometer       int    `json:"odometer"        validate:"gte=0"`
	FuelLevel      string `json:"fuel_level"      validate:"omitempty,oneof=empty quarter half three_quarters full"`
	ConditionNotes string `json:"condition_notes" validate:"omitempty,max=1000"`
}

// ToModel stamps the return with the current time when returned_at is empty.
func (c *ReturnVehicleRequest) ToModel(bookingID, user string) model.Retrieval {
	now := timezone.Now()

	returnedAt := now
	if parsed, err := time.Parse(constant.DateFormat, c.ReturnedAt); err == nil {
		returnedAt = parsed
	}

	return model.Retrieval{
		ID:             uuid.NewString(),
		BookingID:      bookingID,
		ReturnedAt:     returnedAt,
		Odometer:       c.Odometer,
		FuelLevel:      c.FuelLevel,
		ConditionNotes: c.ConditionNotes,
		Metadata:       gModel.NewMetadata(user, now),
	}
}

type ReturnResponse struct {
	ID             string `json:"id"`
	BookingID      string `json:"booking_id"`
	ReturnedAt     string `json:"returned_at"`
	Odometer       int    `json:"odometer"`
	FuelLevel      string `json:"fuel_level"`
	ConditionNotes string `json:"condition_notes"`
	gDto.Metadata
}

func (r *ReturnResponse) FromModel(model model.Retrieval) {
	r.ID = model.ID
	r.BookingID = model.BookingID
	r.ReturnedAt = timezone.Format(model.ReturnedAt, constant.DateFormat)
	r.Odometer = model.Odometer
	r.FuelLevel = model.FuelLevel
	r.ConditionNotes = model.ConditionNotes
	r.Metadata.FromModel(model.Metadata)
}
