package dto

import (
	"fleetdesk/internal/domains/staff/model"
	"fleetdesk/shared"
	"fleetdesk/shared/constant"
	gDto "fleetdesk/shared/dto"
	gModel "fleetdesk/shared/model"
	"fleetdesk/shared/timezone"

	"github.com/google/uuid"
)

type CreateStaffRequest struct {
	Email    string `json:"email"     validate:"required,email,max=150"`
	Password string `json:"password"  validate:"required,min=8,max=72"`
	Role     string `json:"role"      validate:"omitempty,oneof=superadmin admin manager mechanic"`
	FullName string `json:"full_name" validate:"required,max=150"`
	Phone    string `json:"phone"     validate:"omitempty,max=30"`
}

// ToModel defaults new accounts to the mechanic role.
func (r *CreateStaffRequest) ToModel(user, hashedPassword string) model.Staff {
	role := r.Role
	if role == "" {
		role = constant.RoleMechanic
	}

	return model.Staff{
		ID:       uuid.NewString(),
		Email:    r.Email,
		Password: hashedPassword,
		Role:     role,
		FullName: r.FullName,
		Phone:    r.Phone,
		Active:   true,
		Metadata: gModel.NewMetadata(user, timezone.Now()),
	}
}

type UpdateStaffRequest struct {
	Role     string `db:"role"      json:"role"      validate:"omitempty,oneof=superadmin admin manager mechanic"`
	FullName string `db:"full_name" json:"full_name" validate:"omitempty,max=150"`
	Phone    string `db:"phone"     json:"phone"     validate:"omitempty,max=30"`
	Active   *bool  `db:"active"    json:"active,omitempty"`
}

type StaffResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	FullName  string `json:"full_name"`
	Phone     string `json:"phone"`
	LastLogin string `json:"last_login,omitempty"`
	Active    bool   `json:"active"`
	gDto.Metadata
}

func (r *StaffResponse) FromModel(model model.Staff) {
	r.ID = model.ID
	r.Email = model.Email
	r.Role = model.Role
	r.FullName = model.FullName
	r.Phone = model.Phone
	r.Active = model.Active

	if model.LastLogin.Valid {
		r.LastLogin = timezone.Format(model.LastLogin.Time, constant.DateFormat)
	}

	r.Metadata.FromModel(model.Metadata)
}

type GetStaffResponse struct {
	Staff     []StaffResponse `json:"staff"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetStaffResponse) FromModels(models []model.Staff, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Staff = make([]StaffResponse, len(models))
	for i, mod := range models {
		r.Staff[i].FromModel(mod)
	}
}
