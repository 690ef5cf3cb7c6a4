package model

import (
	"fleetdesk/shared/model"
	"time"

	"github.com/shopspring/decimal"
)

const (
	TableName  = "maintenance_tasks"
	EntityName = "maintenance"

	FieldID            = "id"
	FieldVehicleID     = "vehicle_id"
	FieldStatus        = "status"
	FieldScheduledDate = "scheduled_date"
	FieldAssignee      = "assignee"
)

// Task keeps the status exactly as it was entered. Legacy rows carry spellings
// like "In Progress" or "completed"; normalization happens on read.
type Task struct {
	ID            string              `db:"id"`
	VehicleID     string              `db:"vehicle_id"`
	ServiceType   string              `db:"service_type"`
	Description   string              `db:"description"`
	ScheduledDate time.Time           `db:"scheduled_date"`
	Status        string              `db:"status"`
	CostEstimate  decimal.NullDecimal `db:"cost_estimate"`
	Assignee      string              `db:"assignee"`
	Notes         string              `db:"notes"`
	model.Metadata
}
