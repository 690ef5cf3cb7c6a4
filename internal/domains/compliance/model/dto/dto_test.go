package dto_test

import (
	"testing"
	"time"

	"fleetdesk/internal/domains/compliance/model"
	"fleetdesk/internal/domains/compliance/model/dto"
	"fleetdesk/internal/reconcile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateComplianceRequest_ToModel(t *testing.T) {
	t.Run("canonical record type", func(t *testing.T) {
		req := dto.CreateComplianceRequest{
			VehicleID:   "veh-1",
			RecordType:  "Safety-Sticker",
			DateRenewed: "2024-01-01",
			ExpiryDate:  "2025-01-01",
		}

		record, err := req.ToModel("staff-1")

		require.NoError(t, err)
		assert.Equal(t, string(reconcile.RecordSafetySticker), record.RecordType)
		assert.Equal(t, "staff-1", record.CreatedBy)
		assert.NotEmpty(t, record.ID)
	})

	t.Run("unknown record type", func(t *testing.T) {
		req := dto.CreateComplianceRequest{RecordType: "emissions", DateRenewed: "2024-01-01", ExpiryDate: "2025-01-01"}

		_, err := req.ToModel("staff-1")

		assert.Error(t, err)
	})
}

func TestComplianceResponse_FromModel(t *testing.T) {
	today := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		expiry   time.Time
		status   reconcile.ComplianceStatus
		daysLeft int
	}{
		{name: "expired yesterday", expiry: today.AddDate(0, 0, -1), status: reconcile.ComplianceExpired, daysLeft: -1},
		{name: "expires today", expiry: today, status: reconcile.ComplianceExpiringSoon, daysLeft: 0},
		{name: "last day of the window", expiry: today.AddDate(0, 0, 30), status: reconcile.ComplianceExpiringSoon, daysLeft: 30},
		{name: "outside the window", expiry: today.AddDate(0, 0, 31), status: reconcile.ComplianceValid, daysLeft: 31},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var res dto.ComplianceResponse
			res.FromModel(model.Record{ID: "rec-1", ExpiryDate: tt.expiry}, today)

			assert.Equal(t, string(tt.status), res.Status)
			assert.Equal(t, tt.daysLeft, res.DaysUntilExpiry)
		})
	}
}
