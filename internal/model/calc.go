package model

import (
	"math"
	"time"
)

// Derived-field calculators. Pure arithmetic over timestamps and
// money-as-integer-minor-units; everything else in the API is plumbing
// around these.

// LegalRepairDeadlineDays is the statutory repair window for consumer
// appliances, counted from the day a service call is received.
const LegalRepairDeadlineDays = 30

// ComputeTax returns the tax amount for a subtotal in minor units.
// taxRate is basis points of a percent: 2000 means 20%.
func ComputeTax(subtotal, taxRate int64) int64 {
	return int64(math.Round(float64(subtotal) * float64(taxRate) / 10000))
}

// InvoiceTotals returns (taxAmount, total) for a subtotal and tax rate.
// The invariant total == subtotal + taxAmount always holds.
func InvoiceTotals(subtotal, taxRate int64) (int64, int64) {
	tax := ComputeTax(subtotal, taxRate)
	return tax, subtotal + tax
}

// WorkOrderSubtotal sums part usages at current part prices plus labor and
// service fee.
func WorkOrderSubtotal(wo *WorkOrder) int64 {
	var partsTotal int64
	for _, u := range wo.PartsUsed {
		partsTotal += u.Part.Price * int64(u.Quantity)
	}
	return partsTotal + wo.LaborCost + wo.ServiceFee
}

// ServiceCallSubtotal sums billable part usages at their recorded unit price
// plus labor, transport and diagnostic fees. Warranty-covered lines cost the
// customer nothing; a warranty-covered call bills no labor at all.
func ServiceCallSubtotal(call *ServiceCall) int64 {
	var partsTotal int64
	for _, u := range call.PartsUsed {
		if u.IsWarrantyCovered {
			continue
		}
		partsTotal += u.UnitPrice * int64(u.Quantity)
	}
	if call.IsWarrantyCovered {
		return partsTotal
	}
	return partsTotal + call.LaborCost + call.TransportCost + call.DiagnosticFee
}

// WarrantyEnd returns the warranty end date for a purchase date and a
// warranty duration in years.
func WarrantyEnd(purchaseDate time.Time, warrantyYears int) time.Time {
	return purchaseDate.AddDate(warrantyYears, 0, 0)
}

// WarrantyDaysLeft returns the number of days (rounded up) until the warranty
// ends, negative when already expired.
func WarrantyDaysLeft(warrantyEnd, now time.Time) int {
	return int(math.Ceil(warrantyEnd.Sub(now).Hours() / 24))
}

// NextDue advances a due date by periodMonths calendar months from the given
// completion time.
func NextDue(doneAt time.Time, periodMonths int) time.Time {
	return doneAt.AddDate(0, periodMonths, 0)
}

// DaysSince returns whole elapsed days between then and now.
func DaysSince(then, now time.Time) int {
	return int(now.Sub(then).Hours() / 24)
}

// LegalDeadlineBreached reports whether an open service call has exceeded the
// statutory repair window.
func LegalDeadlineBreached(receivedAt, now time.Time, status string) bool {
	if status == CallCompleted || status == CallCanceled {
		return false
	}
	return DaysSince(receivedAt, now) > LegalRepairDeadlineDays
}

// TrialDaysLeft returns the number of days (rounded up, never negative) until
// the trial expires.
func TrialDaysLeft(trialEndsAt, now time.Time) int {
	days := int(math.Ceil(trialEndsAt.Sub(now).Hours() / 24))
	if days < 0 {
		return 0
	}
	return days
}
