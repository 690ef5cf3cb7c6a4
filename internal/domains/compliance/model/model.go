package model

import (
	"fleetdesk/shared/model"
	"time"

	"github.com/shopspring/decimal"
)

const (
	TableName  = "compliance_records"
	EntityName = "compliance"

	FieldID          = "id"
	FieldVehicleID   = "vehicle_id"
	FieldRecordType  = "record_type"
	FieldExpiryDate  = "expiry_date"
	FieldDateRenewed = "date_renewed"
)

type Record struct {
	ID           string              `db:"id"`
	VehicleID    string              `db:"vehicle_id"`
	RecordType   string              `db:"record_type"`
	DateRenewed  time.Time           `db:"date_renewed"`
	ExpiryDate   time.Time           `db:"expiry_date"`
	Provider     string              `db:"provider"`
	PolicyNumber string              `db:"policy_number"`
	Cost         decimal.NullDecimal `db:"cost"`
	Notes        string              `db:"notes"`
	model.Metadata
}

func (r Record) slot() string {
	return r.VehicleID + "|" + r.RecordType
}

// supersedes orders renewals of the same slot: later expiry first, then the
// later renewal date, then the id so the pick is stable.
func (r Record) supersedes(other Record) bool {
	if !r.ExpiryDate.Equal(other.ExpiryDate) {
		return r.ExpiryDate.After(other.ExpiryDate)
	}

	if !r.DateRenewed.Equal(other.DateRenewed) {
		return r.DateRenewed.After(other.DateRenewed)
	}

	return r.ID > other.ID
}

// Current keeps the newest record of each vehicle and record type. Renewals
// are stored as new rows, so everything older is history and must not count
// as expired. Input order is preserved.
func Current(records []Record) []Record {
	latest := make(map[string]int, len(records))

	for i, record := range records {
		if j, ok := latest[record.slot()]; !ok || record.supersedes(records[j]) {
			latest[record.slot()] = i
		}
	}

	current := make([]Record, 0, len(latest))

	for i, record := range records {
		if latest[record.slot()] == i {
			current = append(current, record)
		}
	}

	return current
}
