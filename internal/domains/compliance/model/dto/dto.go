package dto

import (
	"fleetdesk/internal/domains/compliance/model"
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

type CreateComplianceRequest struct {
	VehicleID    string              `json:"vehicle_id"    validate:"required,uuid"`
	RecordType   string              `json:"record_type"   validate:"required,recordtype"`
	DateRenewed  string              `json:"date_renewed"  validate:"required,datetime=2006-01-02"`
	ExpiryDate   string              `json:"expiry_date"   validate:"required,datetime=2006-01-02"`
	Provider     string              `json:"provider"      validate:"omitempty,max=100"`
	PolicyNumber string              `json:"policy_number" validate:"omitempty,max=100"`
	Cost         decimal.NullDecimal `json:"cost"          validate:"omitempty,gte=0"`
	Notes        string              `json:"notes"         validate:"omitempty,max=1000"`
}

// ToModel stores the record type in its canonical spelling.
func (c *CreateComplianceRequest) ToModel(user string) (model.Record, error) {
	recordType, ok := reconcile.ParseRecordType(c.RecordType)
	if !ok {
		return model.Record{}, fmt.Errorf("unknown record_type %q", c.RecordType)
	}

	dateRenewed, err := shared.ParseDate(c.DateRenewed)
	if err != nil {
		return model.Record{}, fmt.Errorf("date_renewed: %w", err)
	}

	expiryDate, err := shared.ParseDate(c.ExpiryDate)
	if err != nil {
		return model.Record{}, fmt.Errorf("expiry_date: %w", err)
	}

	return model.Record{
		ID:           uuid.NewString(),
		VehicleID:    c.VehicleID,
		RecordType:   string(recordType),
		DateRenewed:  dateRenewed,
		ExpiryDate:   expiryDate,
		Provider:     c.Provider,
		PolicyNumber: c.PolicyNumber,
		Cost:         c.Cost,
		Notes:        c.Notes,
		Metadata:     gModel.NewMetadata(user, timezone.Now()),
	}, nil
}

type ComplianceResponse struct {
	ID              string              `json:"id"`
	VehicleID       string              `json:"vehicle_id"`
	RecordType      string              `json:"record_type"`
	DateRenewed     string              `json:"date_renewed"`
	ExpiryDate      string              `json:"expiry_date"`
	Provider        string              `json:"provider"`
	PolicyNumber    string              `json:"policy_number"`
	Cost            decimal.NullDecimal `json:"cost" swaggertype:"string"`
	Notes           string              `json:"notes"`
	Status          string              `json:"status"`
	DaysUntilExpiry int                 `json:"days_until_expiry"`
	gDto.Metadata
}

func (r *ComplianceResponse) FromModel(model model.Record, today time.Time) {
	classification := reconcile.ClassifyCompliance(model.ExpiryDate, today)

	r.ID = model.ID
	r.VehicleID = model.VehicleID
	r.RecordType = model.RecordType
	r.DateRenewed = shared.FormatDate(model.DateRenewed)
	r.ExpiryDate = shared.FormatDate(model.ExpiryDate)
	r.Provider = model.Provider
	r.PolicyNumber = model.PolicyNumber
	r.Cost = model.Cost
	r.Notes = model.Notes
	r.Status = string(classification.Status)
	r.DaysUntilExpiry = classification.DaysUntilExpiry
	r.Metadata.FromModel(model.Metadata)
}

type GetCompliancesResponse struct {
	AsOf      string               `json:"as_of"`
	Records   []ComplianceResponse `json:"records"`
	TotalPage int                  `json:"total_page"`
	TotalData int                  `json:"total_data"`
}

func (r *GetCompliancesResponse) FromModels(models []model.Record, totalData, limit int, today time.Time) {
	r.AsOf = shared.FormatDate(reconcile.Date(today))
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Records = make([]ComplianceResponse, len(models))
	for i, mod := range models {
		r.Records[i].FromModel(mod, today)
	}
}

// ToClassifications feeds stored records to the dashboard counters.
func ToClassifications(models []model.Record, today time.Time) []reconcile.ComplianceClassification {
	res := make([]reconcile.ComplianceClassification, len(models))
	for i, mod := range models {
		res[i] = reconcile.ClassifyCompliance(mod.ExpiryDate, today)
	}

	return res
}
