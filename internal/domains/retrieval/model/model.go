package model

import (
	"fleetdesk/shared/model"
	"time"
)

const (
	TableName  = "booking_returns"
	EntityName = "retrieval"

	FieldID        = "id"
	FieldBookingID = "booking_id"
)

// Retrieval is one entry of the vehicle return log. A booking with a row here
// is never reported overdue.
type Retrieval struct {
	ID             string    `db:"id"`
	BookingID      string    `db:"booking_id"`
	ReturnedAt     time.Time `db:"returned_at"`
	Odometer       int       `db:"odometer"`
	FuelLevel      string    `db:"fuel_level"`
	ConditionNotes string    `db:"condition_notes"`
	model.Metadata
}

// ReturnedSet indexes the log by booking id.
func ReturnedSet(retrievals []Retrieval) map[string]bool {
	res := make(map[string]bool, len(retrievals))
	for _, retrieval := range retrievals {
		res[retrieval.BookingID] = true
	}

	return res
}
