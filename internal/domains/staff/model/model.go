package model

import (
	"database/sql"
	"fleetdesk/shared/model"
)

const (
	TableName  = "staff"
	EntityName = "staff"

	FieldID        = "id"
	FieldEmail     = "email"
	FieldPassword  = "password"
	FieldRole      = "role"
	FieldFullName  = "full_name"
	FieldLastLogin = "last_login"
	FieldActive    = "active"
)

type Staff struct {
	ID        string       `db:"id"`
	Email     string       `db:"email"`
	Password  string       `db:"password"`
	Role      string       `db:"role"`
	FullName  string       `db:"full_name"`
	Phone     string       `db:"phone"`
	LastLogin sql.NullTime `db:"last_login"`
	Active    bool         `db:"active"`
	model.Metadata
}
