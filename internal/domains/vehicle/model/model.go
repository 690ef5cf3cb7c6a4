package model

import (
	"fleetdesk/shared/model"

	"github.com/shopspring/decimal"
)

const (
	TableName  = "vehicles"
	EntityName = "vehicle"

	FieldID          = "id"
	FieldPlateNumber = "plate_number"
	FieldMake        = "make"
	FieldModel       = "model"
	FieldStatus      = "status"

	StatusAvailable   = "available"
	StatusRented      = "rented"
	StatusMaintenance = "maintenance"
	StatusRetired     = "retired"
)

type Vehicle struct {
	ID          string          `db:"id"`
	PlateNumber string          `db:"plate_number"`
	Make        string          `db:"make"`
	Model       string          `db:"model"`
	Year        int             `db:"year"`
	VIN         string          `db:"vin"`
	Color       string          `db:"color"`
	DailyRate   decimal.Decimal `db:"daily_rate"`
	Odometer    int             `db:"odometer"`
	Status      string          `db:"status"`
	model.Metadata
}
