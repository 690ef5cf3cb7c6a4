package dto

import (
	"fleetdesk/internal/domains/vehicle/model"
	"fleetdesk/shared"
	gDto "fleetdesk/shared/dto"
	gModel "fleetdesk/shared/model"
	"fleetdesk/shared/timezone"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateVehicleRequest struct {
	PlateNumber string          `json:"plate_number" validate:"required,max=20"`
	Make        string          `json:"make"         validate:"required,max=50"`
	Model       string          `json:"model"        validate:"required,max=50"`
	Year        int             `json:"year"         validate:"omitempty,gte=1950,lte=2100"`
	VIN         string          `json:"vin"          validate:"omitempty,max=32"`
	Color       string          `json:"color"        validate:"omitempty,max=30"`
	DailyRate   decimal.Decimal `json:"daily_rate"   validate:"gte=0"`
	Odometer    int             `json:"odometer"     validate:"gte=0"`
	Status      string          `json:"status"       validate:"omitempty,oneof=available rented maintenance retired"`
}

func (c *CreateVehicleRequest) ToModel(user string) model.Vehicle {
	status := model.StatusAvailable
	if c.Status != "" {
		status = c.Status
	}

	return model.Vehicle{
		ID:          uuid.NewString(),
		PlateNumber: c.PlateNumber,
		Make:        c.Make,
		Model:       c.Model,
		Year:        c.Year,
		VIN:         c.VIN,
		Color:       c.Color,
		DailyRate:   c.DailyRate,
		Odometer:    c.Odometer,
		Status:      status,
		Metadata:    gModel.NewMetadata(user, timezone.Now()),
	}
}

type UpdateVehicleRequest struct {
	PlateNumber string              `db:"plate_number" json:"plate_number" validate:"omitempty,max=20"`
	Make        string              `db:"make"         json:"make"         validate:"omitempty,max=50"`
	Model       string              `db:"model"        json:"model"        validate:"omitempty,max=50"`
	Year        int                 `db:"year"         json:"year"         validate:"omitempty,gte=1950,lte=2100"`
	VIN         string              `db:"vin"          json:"vin"          validate:"omitempty,max=32"`
	Color       string              `db:"color"        json:"color"        validate:"omitempty,max=30"`
	DailyRate   decimal.NullDecimal `db:"daily_rate"   json:"daily_rate"   validate:"omitempty,gte=0"`
	Odometer    int                 `db:"odometer"     json:"odometer"     validate:"omitempty,gte=0"`
	Status      string              `db:"status"       json:"status"       validate:"omitempty,oneof=available rented maintenance retired"`
}

type VehicleResponse struct {
	ID          string          `json:"id"`
	PlateNumber string          `json:"plate_number"`
	Make        string          `json:"make"`
	Model       string          `json:"model"`
	Year        int             `json:"year"`
	VIN         string          `json:"vin"`
	Color       string          `json:"color"`
	DailyRate   decimal.Decimal `json:"daily_rate"`
	Odometer    int             `json:"odometer"`
	Status      string          `json:"status"`
	gDto.Metadata
}

func (r *VehicleResponse) FromModel(model model.Vehicle) {
	r.ID = model.ID
	r.PlateNumber = model.PlateNumber
	r.Make = model.Make
	r.Model = model.Model
	r.Year = model.Year
	r.VIN = model.VIN
	r.Color = model.Color
	r.DailyRate = model.DailyRate
	r.Odometer = model.Odometer
	r.Status = model.Status
	r.Metadata.FromModel(model.Metadata)
}

type GetVehiclesResponse struct {
	Vehicles  []VehicleResponse `json:"vehicles"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetVehiclesResponse) FromModels(models []model.Vehicle, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Vehicles = make([]VehicleResponse, len(models))
	for i, mod := range models {
		r.Vehicles[i].FromModel(mod)
	}
}
