// Package reconcile holds the booking ledger and the date-driven status rules
// shared by every screen, export and scheduled sweep.
//
// Everything here is a pure function of its arguments. The reference day is
// always passed in by the caller; nothing in this package reads a clock.
//
// Usage Examples:
//
//  1. Outstanding balance of one booking:
//     owed := reconcile.OutstandingForBooking(booking, extensions, charges)
//
//  2. Customer or fleet total:
//     total := reconcile.Rollup(bookings, reconcile.GroupExtensions(exts), reconcile.GroupCharges(charges))
//
//  3. Status tiers:
//     info := reconcile.ClassifyBooking(booking, today, returned)
//     comp := reconcile.ClassifyCompliance(record.ExpiryDate, today)
//     tag := reconcile.NormalizeMaintenanceStatus(task.Status)
package reconcile
