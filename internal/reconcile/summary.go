package reconcile

import (
	"time"

	"github.com/shopspring/decimal"
)

// ClassifiedBooking pairs a booking with its classification and balance.
type ClassifiedBooking struct {
	Booking        Booking
	Classification BookingClassification
	Outstanding    decimal.Decimal
}

type BookingCounts struct {
	ByStatus map[BookingStatus]int `json:"by_status"`
	ByTag    map[Tag]int           `json:"by_tag"`
	Total    int                   `json:"total"`
}

type ComplianceCounts struct {
	Valid        int `json:"valid"`
	ExpiringSoon int `json:"expiring_soon"`
	Expired      int `json:"expired"`
}

type MaintenanceCounts struct {
	Scheduled int `json:"scheduled"`
	InShop    int `json:"in_shop"`
	Overdue   int `json:"overdue"`
	Done      int `json:"done"`
	PastDue   int `json:"past_due"`
}

type Totals struct {
	Billed          decimal.Decimal `json:"billed"`
	UnpaidPrincipal decimal.Decimal `json:"unpaid_principal"`
	Outstanding     decimal.Decimal `json:"outstanding"`
}

// ClassifyBookings runs the ledger and the overdue rules over a batch. returned
// holds the IDs of bookings whose vehicle is back.
func ClassifyBookings(bookings []Booking, extensionsByBooking map[string][]Extension, chargesByBooking map[string][]ExtraCharge, returned map[string]bool, today time.Time) []ClassifiedBooking {
	res := make([]ClassifiedBooking, 0, len(bookings))

	for _, b := range bookings {
		res = append(res, ClassifiedBooking{
			Booking:        b,
			Classification: ClassifyBooking(b, today, returned[b.ID]),
			Outstanding:    OutstandingForBooking(b, extensionsByBooking[b.ID], chargesByBooking[b.ID]),
		})
	}

	return res
}

func CountBookings(bookings []ClassifiedBooking) BookingCounts {
	res := BookingCounts{
		ByStatus: make(map[BookingStatus]int, len(BookingStatuses)),
		ByTag:    map[Tag]int{TagOverdue: 0, TagDueToday: 0, TagOnTime: 0},
	}

	for _, status := range BookingStatuses {
		res.ByStatus[status] = 0
	}

	for _, b := range bookings {
		res.ByStatus[b.Booking.Status]++
		res.ByTag[b.Classification.Tag]++
		res.Total++
	}

	return res
}

func CountCompliance(records []ComplianceClassification) ComplianceCounts {
	var res ComplianceCounts

	for _, rec := range records {
		switch rec.Status {
		case ComplianceValid:
			res.Valid++
		case ComplianceExpiringSoon:
			res.ExpiringSoon++
		case ComplianceExpired:
			res.Expired++
		}
	}

	return res
}

func CountMaintenance(tasks []MaintenanceClassification) MaintenanceCounts {
	var res MaintenanceCounts

	for _, task := range tasks {
		switch task.Tag {
		case MaintenanceScheduled:
			res.Scheduled++
		case MaintenanceInShop:
			res.InShop++
		case MaintenanceOverdue:
			res.Overdue++
		case MaintenanceDone:
			res.Done++
		}

		if task.PastDue {
			res.PastDue++
		}
	}

	return res
}

func SumTotals(bookings []ClassifiedBooking) Totals {
	res := Totals{
		Billed:          decimal.Zero,
		UnpaidPrincipal: decimal.Zero,
		Outstanding:     decimal.Zero,
	}

	for _, b := range bookings {
		res.Billed = res.Billed.Add(b.Booking.TotalAmount)
		res.UnpaidPrincipal = res.UnpaidPrincipal.Add(PrincipalOutstanding(b.Booking))
		res.Outstanding = res.Outstanding.Add(b.Outstanding)
	}

	return res
}
