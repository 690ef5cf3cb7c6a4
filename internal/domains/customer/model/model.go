package model

import "fleetdesk/shared/model"

const (
	TableName  = "customers"
	EntityName = "customer"

	FieldID            = "id"
	FieldFullName      = "full_name"
	FieldEmail         = "email"
	FieldPhone         = "phone"
	FieldLicenseNumber = "license_number"
)

type Customer struct {
	ID            string `db:"id"`
	FullName      string `db:"full_name"`
	Email         string `db:"email"`
	Phone         string `db:"phone"`
	LicenseNumber string `db:"license_number"`
	Address       string `db:"address"`
	Notes         string `db:"notes"`
	model.Metadata
}
