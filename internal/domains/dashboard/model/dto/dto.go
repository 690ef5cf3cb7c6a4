package dto

import (
	complianceModel "fleetdesk/internal/domains/compliance/model"
	complianceDto "fleetdesk/internal/domains/compliance/model/dto"
	ledgerModel "fleetdesk/internal/domains/ledger/model"
	maintenanceModel "fleetdesk/internal/domains/maintenance/model"
	maintenanceDto "fleetdesk/internal/domains/maintenance/model/dto"
	vehicleModel "fleetdesk/internal/domains/vehicle/model"
	"fleetdesk/internal/reconcile"
	"fleetdesk/shared"
	"time"
)

type FleetCounts struct {
	ByStatus map[string]int `json:"by_status"`
	Total    int            `json:"total"`
}

type SummaryResponse struct {
	AsOf        string                      `json:"as_of"`
	Bookings    reconcile.BookingCounts     `json:"bookings"`
	Compliance  reconcile.ComplianceCounts  `json:"compliance"`
	Maintenance reconcile.MaintenanceCounts `json:"maintenance"`
	Totals      reconcile.Totals            `json:"totals"`
	Fleet       FleetCounts                 `json:"fleet"`
}

// Build folds the loaded data sets into the dashboard figures as of today.
func (r *SummaryResponse) Build(
	snapshot ledgerModel.Snapshot,
	records []complianceModel.Record,
	tasks []maintenanceModel.Task,
	vehicles []vehicleModel.Vehicle,
	today time.Time,
) {
	classified := snapshot.Classify(today)

	r.AsOf = shared.FormatDate(reconcile.Date(today))
	r.Bookings = reconcile.CountBookings(classified)
	r.Compliance = reconcile.CountCompliance(complianceDto.ToClassifications(complianceModel.Current(records), today))
	r.Maintenance = reconcile.CountMaintenance(maintenanceDto.ToClassifications(tasks, today))
	r.Totals = reconcile.SumTotals(classified)
	r.Fleet = CountFleet(vehicles)
}

func CountFleet(vehicles []vehicleModel.Vehicle) FleetCounts {
	res := FleetCounts{
		ByStatus: map[string]int{
			vehicleModel.StatusAvailable:   0,
			vehicleModel.StatusRented:      0,
			vehicleModel.StatusMaintenance: 0,
			vehicleModel.StatusRetired:     0,
		},
	}

	for _, vehicle := range vehicles {
		res.ByStatus[vehicle.Status]++
		res.Total++
	}

	return res
}
