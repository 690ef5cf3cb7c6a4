// Package timezone pins the clock to the depot's timezone (APP_TIMEZONE).
//
// Rental days roll over at local midnight, so anything that asks "what is
// today" (overdue checks, compliance expiry, the nightly sweep) goes through
// Today rather than time.Now:
//
//	today := timezone.Today()       // 2024-06-11 00:00 UTC while it is 06:00 in Jakarta
//	stamp := timezone.Now()         // full timestamp for audit columns
//
// Use IANA names ("Asia/Jakarta", "UTC", "Europe/London"). Unknown names fall
// back to UTC with an error log.
package timezone
