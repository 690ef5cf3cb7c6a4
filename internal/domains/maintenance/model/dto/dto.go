package dto

import (
	"fleetdesk/internal/domains/maintenance/model"
	"fleetdesk/internal/reconcile"
	"fleetdesk/shared"
	gDto "fleetdesk/shared/dto"
	gModel "fleetdesk/shared/model"
	"fleetdesk/shared/timezone"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateMaintenanceRequest struct {
	VehicleID     string              `json:"vehicle_id"     validate:"required,uuid"`
	ServiceType   string              `json:"service_type"   validate:"required,max=100"`
	Description   string              `json:"description"    validate:"omitempty,max=1000"`
	ScheduledDate string              `json:"scheduled_date" validate:"required,datetime=2006-01-02"`
	Status        string              `json:"status"         validate:"omitempty,max=30"`
	CostEstimate  decimal.NullDecimal `json:"cost_estimate"  validate:"omitempty,gte=0"`
	Assignee      string              `json:"assignee"       validate:"omitempty,max=100"`
	Notes         string              `json:"notes"          validate:"omitempty,max=1000"`
}

// ToModel keeps the status as typed. An empty status is stored as scheduled.
func (c *CreateMaintenanceRequest) ToModel(user string) (model.Task, error) {
	scheduledDate, err := shared.ParseDate(c.ScheduledDate)
	if err != nil {
		return model.Task{}, fmt.Errorf("scheduled_date: %w", err)
	}

	status := c.Status
	if status == "" {
		status = string(reconcile.MaintenanceScheduled)
	}

	return model.Task{
		ID:            uuid.NewString(),
		VehicleID:     c.VehicleID,
		ServiceType:   c.ServiceType,
		Description:   c.Description,
		ScheduledDate: scheduledDate,
		Status:        status,
		CostEstimate:  c.CostEstimate,
		Assignee:      c.Assignee,
		Notes:         c.Notes,
		Metadata:      gModel.NewMetadata(user, timezone.Now()),
	}, nil
}

type UpdateMaintenanceRequest struct {
	ServiceType   string              `db:"service_type"   json:"service_type"   validate:"omitempty,max=100"`
	Description   string              `db:"description"    json:"description"    validate:"omitempty,max=1000"`
	ScheduledDate string              `db:"scheduled_date" json:"scheduled_date" validate:"omitempty,datetime=2006-01-02"`
	Status        string              `db:"status"         json:"status"         validate:"omitempty,max=30"`
	CostEstimate  decimal.NullDecimal `db:"cost_estimate"  json:"cost_estimate"  validate:"omitempty,gte=0"`
	Assignee      string              `db:"assignee"       json:"assignee"       validate:"omitempty,max=100"`
	Notes         string              `db:"notes"          json:"notes"          validate:"omitempty,max=1000"`
}

type MaintenanceResponse struct {
	ID            string              `json:"id"`
	VehicleID     string              `json:"vehicle_id"`
	ServiceType   string              `json:"service_type"`
	Description   string              `json:"description"`
	ScheduledDate string              `json:"scheduled_date"`
	Status        string              `json:"status"`
	CostEstimate  decimal.NullDecimal `json:"cost_estimate" swaggertype:"string"`
	Assignee      string              `json:"assignee"`
	Notes         string              `json:"notes"`
	Tag           string              `json:"tag"`
	DaysUntilDue  int                 `json:"days_until_due"`
	PastDue       bool                `json:"past_due"`
	gDto.Metadata
}

func (r *MaintenanceResponse) FromModel(model model.Task, today time.Time) {
	classification := reconcile.ClassifyMaintenance(model.Status, model.ScheduledDate, today)

	r.ID = model.ID
	r.VehicleID = model.VehicleID
	r.ServiceType = model.ServiceType
	r.Description = model.Description
	r.ScheduledDate = shared.FormatDate(model.ScheduledDate)
	r.Status = model.Status
	r.CostEstimate = model.CostEstimate
	r.Assignee = model.Assignee
	r.Notes = model.Notes
	r.Tag = string(classification.Tag)
	r.DaysUntilDue = classification.DaysUntilDue
	r.PastDue = classification.PastDue
	r.Metadata.FromModel(model.Metadata)
}

type GetMaintenancesResponse struct {
	AsOf      string                `json:"as_of"`
	Tasks     []MaintenanceResponse `json:"tasks"`
	TotalPage int                   `json:"total_page"`
	TotalData int                   `json:"total_data"`
}

func (r *GetMaintenancesResponse) FromModels(models []model.Task, totalData, limit int, today time.Time) {
	r.AsOf = shared.FormatDate(reconcile.Date(today))
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Tasks = make([]MaintenanceResponse, len(models))
	for i, mod := range models {
		r.Tasks[i].FromModel(mod, today)
	}
}

func ToClassifications(models []model.Task, today time.Time) []reconcile.MaintenanceClassification {
	res := make([]reconcile.MaintenanceClassification, len(models))
	for i, mod := range models {
		res[i] = reconcile.ClassifyMaintenance(mod.Status, mod.ScheduledDate, today)
	}

	return res
}
