package dto

import (
	"cmp"
	"fleetdesk/infras/kafka"
	bookingDto "fleetdesk/internal/domains/booking/model/dto"
	complianceDto "fleetdesk/internal/domains/compliance/model/dto"
	"fleetdesk/internal/reconcile"

	"github.com/shopspring/decimal"
)

const (
	AlertBookingOverdue     = "booking.overdue"
	AlertBookingDueToday    = "booking.due_today"
	AlertComplianceExpiring = "compliance.expiring"
	AlertComplianceExpired  = "compliance.expired"
)

// Alert is the event body published on the alerts topic.
type Alert struct {
	Type            string           `json:"type"`
	AsOf            string           `json:"as_of"`
	BookingID       string           `json:"booking_id,omitempty"`
	CustomerID      string           `json:"customer_id,omitempty"`
	RecordID        string           `json:"record_id,omitempty"`
	RecordType      string           `json:"record_type,omitempty"`
	VehicleID       string           `json:"vehicle_id"`
	DueDate         string           `json:"due_date"`
	DaysOverdue     int              `json:"days_overdue,omitempty"`
	DaysUntilExpiry *int             `json:"days_until_expiry,omitempty"`
	Outstanding     *decimal.Decimal `json:"outstanding,omitempty"`
}

func (a Alert) Key() string {
	if a.BookingID != "" {
		return a.BookingID
	}

	return a.RecordID
}

func (a Alert) ToMessage() kafka.Message {
	return kafka.Message{Key: a.Key(), Value: a}
}

// BookingAlerts turns the flagged bookings into overdue or due today alerts.
func BookingAlerts(res bookingDto.GetOverdueResponse) []Alert {
	alerts := make([]Alert, 0, len(res.Bookings))

	for _, booking := range res.Bookings {
		alertType := AlertBookingDueToday
		if booking.Tag == string(reconcile.TagOverdue) {
			alertType = AlertBookingOverdue
		}

		outstanding := booking.Outstanding

		alerts = append(alerts, Alert{
			Type:        alertType,
			AsOf:        res.AsOf,
			BookingID:   booking.BookingID,
			CustomerID:  booking.CustomerID,
			VehicleID:   booking.VehicleID,
			DueDate:     booking.EndDate,
			DaysOverdue: booking.DaysOverdue,
			Outstanding: &outstanding,
		})
	}

	return alerts
}

// ComplianceAlerts keeps the records that expired or expire within the window.
// Only the newest record of a vehicle and record type can raise an alert.
func ComplianceAlerts(res complianceDto.GetCompliancesResponse) []Alert {
	alerts := []Alert{}

	for _, record := range currentRecords(res.Records) {
		var alertType string

		switch record.Status {
		case string(reconcile.ComplianceExpired):
			alertType = AlertComplianceExpired
		case string(reconcile.ComplianceExpiringSoon):
			alertType = AlertComplianceExpiring
		default:
			continue
		}

		days := record.DaysUntilExpiry

		alerts = append(alerts, Alert{
			Type:            alertType,
			AsOf:            res.AsOf,
			RecordID:        record.ID,
			RecordType:      record.RecordType,
			VehicleID:       record.VehicleID,
			DueDate:         record.ExpiryDate,
			DaysUntilExpiry: &days,
		})
	}

	return alerts
}

func currentRecords(records []complianceDto.ComplianceResponse) []complianceDto.ComplianceResponse {
	slot := func(r complianceDto.ComplianceResponse) string { return r.VehicleID + "|" + r.RecordType }

	// Dates are YYYY-MM-DD, so string order is date order.
	newer := func(a, b complianceDto.ComplianceResponse) bool {
		return cmp.Or(
			cmp.Compare(a.ExpiryDate, b.ExpiryDate),
			cmp.Compare(a.DateRenewed, b.DateRenewed),
			cmp.Compare(a.ID, b.ID),
		) > 0
	}

	latest := make(map[string]int, len(records))

	for i, record := range records {
		if j, ok := latest[slot(record)]; !ok || newer(record, records[j]) {
			latest[slot(record)] = i
		}
	}

	current := make([]complianceDto.ComplianceResponse, 0, len(latest))

	for i, record := range records {
		if latest[slot(record)] == i {
			current = append(current, record)
		}
	}

	return current
}

func ToMessages(alerts []Alert) []kafka.Message {
	msgs := make([]kafka.Message, len(alerts))
	for i, alert := range alerts {
		msgs[i] = alert.ToMessage()
	}

	return msgs
}

type SweepResult struct {
	AsOf             string `json:"as_of"`
	BookingAlerts    int    `json:"booking_alerts"`
	ComplianceAlerts int    `json:"compliance_alerts"`
	Published        bool   `json:"published"`
}
