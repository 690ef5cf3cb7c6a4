package reconcile

import (
	"strings"
	"time"
)

// ExpiringSoonWindowDays is the last day count still flagged for renewal.
const ExpiringSoonWindowDays = 30

type Tag string

const (
	TagOverdue  Tag = "overdue"
	TagDueToday Tag = "due_today"
	TagOnTime   Tag = "on_time"
)

type BookingClassification struct {
	IsOverdue   bool `json:"is_overdue"`
	DaysOverdue int  `json:"days_overdue"`
	IsDueToday  bool `json:"is_due_today"`
	Tag         Tag  `json:"tag"`
}

type ComplianceStatus string

const (
	ComplianceValid        ComplianceStatus = "valid"
	ComplianceExpiringSoon ComplianceStatus = "expiring_soon"
	ComplianceExpired      ComplianceStatus = "expired"
)

type ComplianceClassification struct {
	Status          ComplianceStatus `json:"status"`
	DaysUntilExpiry int              `json:"days_until_expiry"`
}

type MaintenanceTag string

const (
	MaintenanceScheduled MaintenanceTag = "scheduled"
	MaintenanceInShop    MaintenanceTag = "in_shop"
	MaintenanceOverdue   MaintenanceTag = "overdue"
	MaintenanceDone      MaintenanceTag = "done"
)

var maintenanceSynonyms = map[string]MaintenanceTag{
	"done":        MaintenanceDone,
	"completed":   MaintenanceDone,
	"in_shop":     MaintenanceInShop,
	"in-shop":     MaintenanceInShop,
	"in progress": MaintenanceInShop,
	"overdue":     MaintenanceOverdue,
}

type MaintenanceClassification struct {
	Tag          MaintenanceTag `json:"tag"`
	DaysUntilDue int            `json:"days_until_due"`
	PastDue      bool           `json:"past_due"`
}

// Eligible reports whether a booking in this status can be flagged overdue.
func (s BookingStatus) Eligible() bool {
	switch s {
	case BookingActive, BookingExtended, BookingConfirmed:
		return true
	default:
		return false
	}
}

func ClassifyBooking(b Booking, today time.Time, isReturned bool) BookingClassification {
	lateBy := DaysBetween(b.EndDate, today)

	res := BookingClassification{
		IsDueToday: b.Status != BookingCompleted && lateBy == 0,
		IsOverdue:  !isReturned && lateBy > 0 && b.Status.Eligible(),
		Tag:        TagOnTime,
	}

	switch {
	case res.IsOverdue:
		res.DaysOverdue = lateBy
		res.Tag = TagOverdue
	case res.IsDueToday:
		res.Tag = TagDueToday
	}

	return res
}

func ClassifyCompliance(expiryDate, today time.Time) ComplianceClassification {
	days := DaysBetween(today, expiryDate)

	status := ComplianceValid

	switch {
	case days < 0:
		status = ComplianceExpired
	case days <= ExpiringSoonWindowDays:
		status = ComplianceExpiringSoon
	}

	return ComplianceClassification{Status: status, DaysUntilExpiry: days}
}

// NormalizeMaintenanceStatus maps every stored spelling onto one of the four
// tags. Unknown and empty values are Scheduled.
func NormalizeMaintenanceStatus(raw string) MaintenanceTag {
	if tag, ok := maintenanceSynonyms[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return tag
	}

	return MaintenanceScheduled
}

// ClassifyMaintenance adds the schedule distance to the normalized tag. The tag
// is never changed by dates; PastDue only marks scheduled work whose date has gone by.
func ClassifyMaintenance(rawStatus string, scheduledDate, today time.Time) MaintenanceClassification {
	tag := NormalizeMaintenanceStatus(rawStatus)
	days := DaysBetween(today, scheduledDate)

	return MaintenanceClassification{
		Tag:          tag,
		DaysUntilDue: days,
		PastDue:      tag == MaintenanceScheduled && days < 0,
	}
}

// DaysBetween counts calendar days from one date to another. Time of day and
// zone offsets are dropped first, so the result is whole days.
func DaysBetween(from, to time.Time) int {
	const day = 24 * time.Hour

	return int(Date(to).Sub(Date(from)) / day)
}

// Date truncates t to midnight of its own calendar day, expressed in UTC.
func Date(t time.Time) time.Time {
	y, m, d := t.Date()

	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
