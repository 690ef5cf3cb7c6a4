package dto

import (
	"fleetdesk/internal/domains/customer/model"
	"fleetdesk/shared"
	gDto "fleetdesk/shared/dto"
	gModel "fleetdesk/shared/model"
	"fleetdesk/shared/timezone"

	"github.com/google/uuid"
)

type CreateCustomerRequest struct {
	FullName      string `json:"full_name"      validate:"required,max=150"`
	Email         string `json:"email"          validate:"omitempty,email,max=150"`
	Phone         string `json:"phone"          validate:"required,max=30"`
	LicenseNumber string `json:"license_number" validate:"omitempty,max=50"`
	Address       string `json:"address"        validate:"omitempty,max=255"`
	Notes         string `json:"notes"          validate:"omitempty,max=1000"`
}

func (c *CreateCustomerRequest) ToModel(user string) model.Customer {
	return model.Customer{
		ID:            uuid.NewString(),
		FullName:      c.FullName,
		Email:         c.Email,
		Phone:         c.Phone,
		LicenseNumber: c.LicenseNumber,
		Address:       c.Address,
		Notes:         c.Notes,
		Metadata:      gModel.NewMetadata(user, timezone.Now()),
	}
}

type UpdateCustomerRequest struct {
	FullName      string `db:"full_name"      json:"full_name"      validate:"omitempty,max=150"`
	Email         string `db:"email"          json:"email"          validate:"omitempty,email,max=150"`
	Phone         string `db:"phone"          json:"phone"          validate:"omitempty,max=30"`
	LicenseNumber string `db:"license_number" json:"license_number" validate:"omitempty,max=50"`
	Address       string `db:"address"        json:"address"        validate:"omitempty,max=255"`
	Notes         string `db:"notes"          json:"notes"          validate:"omitempty,max=1000"`
}

type CustomerResponse struct {
	ID            string `json:"id"`
	FullName      string `json:"full_name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	LicenseNumber string `json:"license_number"`
	Address       string `json:"address"`
	Notes         string `json:"notes"`
	gDto.Metadata
}

func (r *CustomerResponse) FromModel(model model.Customer) {
	r.ID = model.ID
	r.FullName = model.FullName
	r.Email = model.Email
	r.Phone = model.Phone
	r.LicenseNumber = model.LicenseNumber
	r.Address = model.Address
	r.Notes = model.Notes
	r.Metadata.FromModel(model.Metadata)
}

type GetCustomersResponse struct {
	Customers []CustomerResponse `json:"customers"`
	TotalPage int                `json:"total_page"`
	TotalData int                `json:"total_data"`
}

func (r *GetCustomersResponse) FromModels(models []model.Customer, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Customers = make([]CustomerResponse, len(models))
	for i, mod := range models {
		r.Customers[i].FromModel(mod)
	}
}
