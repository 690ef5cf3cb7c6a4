package dto

import (
	"fleetdesk/internal/domains/booking/model"
	"fleetdesk/internal/reconcile"
	"fleetdesk/shared"
	gDto "fleetdesk/shared/dto"
	gModel "fleetdesk/shared/model"
	"fleetdesk/shared/timezone"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateBookingRequest struct {
	CustomerID    string              `json:"customer_id"    validate:"required,uuid"`
	VehicleID     string              `json:"vehicle_id"     validate:"required,uuid"`
	StartDate     string              `json:"start_date"     validate:"required,datetime=2006-01-02"`
	EndDate       string              `json:"end_date"       validate:"required,datetime=2006-01-02"`
	Status        string              `json:"status"         validate:"omitempty,bookingstatus"`
	PaymentStatus string              `json:"payment_status" validate:"omitempty,paymentstatus"`
	TotalAmount   decimal.NullDecimal `json:"total_amount"   validate:"omitempty,gte=0"`
	Notes         string              `json:"notes"          validate:"omitempty,max=1000"`
}

// ToModel defaults a new booking to confirmed and unpaid.
func (c *CreateBookingRequest) ToModel(user string) (model.Booking, error) {
	startDate, err := shared.ParseDate(c.StartDate)
	if err != nil {
		return model.Booking{}, fmt.Errorf("start_date: %w", err)
	}

	endDate, err := shared.ParseDate(c.EndDate)
	if err != nil {
		return model.Booking{}, fmt.Errorf("end_date: %w", err)
	}

	status := reconcile.BookingConfirmed
	if c.Status != "" {
		status = reconcile.ParseBookingStatus(c.Status)
	}

	paymentStatus := reconcile.PaymentUnpaid
	if c.PaymentStatus != "" {
		paymentStatus = reconcile.ParsePaymentStatus(c.PaymentStatus)
	}

	return model.Booking{
		ID:            uuid.NewString(),
		CustomerID:    c.CustomerID,
		VehicleID:     c.VehicleID,
		StartDate:     startDate,
		EndDate:       endDate,
		Status:        string(status),
		PaymentStatus: string(paymentStatus),
		TotalAmount:   c.TotalAmount,
		Notes:         c.Notes,
		Metadata:      gModel.NewMetadata(user, timezone.Now()),
	}, nil
}

type UpdateBookingRequest struct {
	VehicleID     string              `db:"vehicle_id"     json:"vehicle_id"     validate:"omitempty,uuid"`
	StartDate     string              `db:"start_date"     json:"start_date"     validate:"omitempty,datetime=2006-01-02"`
	EndDate       string              `db:"end_date"       json:"end_date"       validate:"omitempty,datetime=2006-01-02"`
	Status        string              `db:"status"         json:"status"         validate:"omitempty,bookingstatus"`
	PaymentStatus string              `db:"payment_status" json:"payment_status" validate:"omitempty,paymentstatus"`
	TotalAmount   decimal.NullDecimal `db:"total_amount"   json:"total_amount"   validate:"omitempty,gte=0"`
	Notes         string              `db:"notes"          json:"notes"          validate:"omitempty,max=1000"`
}

// Normalize stores statuses in their canonical spelling.
func (u *UpdateBookingRequest) Normalize() {
	if u.Status != "" {
		u.Status = string(reconcile.ParseBookingStatus(u.Status))
	}

	if u.PaymentStatus != "" {
		u.PaymentStatus = string(reconcile.ParsePaymentStatus(u.PaymentStatus))
	}
}

type BookingResponse struct {
	ID            string              `json:"id"`
	CustomerID    string              `json:"customer_id"`
	VehicleID     string              `json:"vehicle_id"`
	StartDate     string              `json:"start_date"`
	EndDate       string              `json:"end_date"`
	Status        string              `json:"status"`
	PaymentStatus string              `json:"payment_status"`
	TotalAmount   decimal.NullDecimal `json:"total_amount" swaggertype:"string"`
	Notes         string              `json:"notes"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.CustomerID = model.CustomerID
	r.VehicleID = model.VehicleID
	r.StartDate = shared.FormatDate(model.StartDate)
	r.EndDate = shared.FormatDate(model.EndDate)
	r.Status = model.Status
	r.PaymentStatus = model.PaymentStatus
	r.TotalAmount = model.TotalAmount
	r.Notes = model.Notes
	r.Metadata.FromModel(model.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}
