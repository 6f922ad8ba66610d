package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestComputeTax(t *testing.T) {
	// 20% of 100.00 TRY
	assert.Equal(t, int64(2000), ComputeTax(10000, 2000))
	// 18% of 99.99 TRY rounds half up
	assert.Equal(t, int64(1800), ComputeTax(9999, 1800))
	assert.Equal(t, int64(0), ComputeTax(0, 2000))
	assert.Equal(t, int64(0), ComputeTax(10000, 0))
}

func TestInvoiceTotalsInvariant(t *testing.T) {
	subtotals := []int64{0, 1, 99, 10000, 123456789}
	rates := []int64{0, 100, 1800, 2000, 10000}
	for _, s := range subtotals {
		for _, r := range rates {
			tax, total := InvoiceTotals(s, r)
			assert.Equal(t, s+tax, total, "subtotal=%d rate=%d", s, r)
			assert.GreaterOrEqual(t, tax, int64(0))
		}
	}
}

func TestWorkOrderSubtotal(t *testing.T) {
	wo := &WorkOrder{
		LaborCost:  50000,
		ServiceFee: 10000,
		PartsUsed: []PartUsage{
			{Quantity: 2, Part: Part{Price: 4500}},
			{Quantity: 1, Part: Part{Price: 120000}},
		},
	}
	assert.Equal(t, int64(2*4500+120000+50000+10000), WorkOrderSubtotal(wo))
}

func TestServiceCallSubtotalExcludesWarrantyLines(t *testing.T) {
	call := &ServiceCall{
		LaborCost:     30000,
		TransportCost: 5000,
		DiagnosticFee: 2500,
		PartsUsed: []ServicePartUsage{
			{Quantity: 1, UnitPrice: 20000},
			{Quantity: 3, UnitPrice: 1000, IsWarrantyCovered: true},
		},
	}
	assert.Equal(t, int64(20000+30000+5000+2500), ServiceCallSubtotal(call))
}

func TestServiceCallSubtotalWarrantyCoveredCall(t *testing.T) {
	call := &ServiceCall{
		IsWarrantyCovered: true,
		LaborCost:         30000,
		TransportCost:     5000,
		PartsUsed: []ServicePartUsage{
			{Quantity: 1, UnitPrice: 20000},
			{Quantity: 1, UnitPrice: 8000, IsWarrantyCovered: true},
		},
	}
	// Warranty covers labor and fees, only the non-covered part is billed
	assert.Equal(t, int64(20000), ServiceCallSubtotal(call))
}

func TestWarrantyEnd(t *testing.T) {
	purchase := time.Date(2023, 3, 15, 0, 0, 0, 0, time.UTC)
	end := WarrantyEnd(purchase, 2)
	assert.Equal(t, time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC), end)
}

func TestWarrantyDaysLeft(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, 10, WarrantyDaysLeft(now.AddDate(0, 0, 10), now))
	assert.Equal(t, 1, WarrantyDaysLeft(now.Add(2*time.Hour), now))
	assert.Negative(t, WarrantyDaysLeft(now.AddDate(0, 0, -5), now))
}

func TestNextDue(t *testing.T) {
	done := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 2, 15, 10, 0, 0, 0, time.UTC), NextDue(done, 1))

	done = time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 11, 10, 0, 0, 0, 0, time.UTC), NextDue(done, 6))
	assert.Equal(t, time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC), NextDue(done, 12))
}

func TestLegalDeadlineBreached(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	assert.False(t, LegalDeadlineBreached(now.AddDate(0, 0, -30), now, CallInProgress))
	assert.True(t, LegalDeadlineBreached(now.AddDate(0, 0, -31), now, CallInProgress))
	// Closed calls never count as breached
	assert.False(t, LegalDeadlineBreached(now.AddDate(0, 0, -60), now, CallCompleted))
	assert.False(t, LegalDeadlineBreached(now.AddDate(0, 0, -60), now, CallCanceled))
}

func TestTrialDaysLeft(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, 14, TrialDaysLeft(now.AddDate(0, 0, 14), now))
	assert.Equal(t, 1, TrialDaysLeft(now.Add(30*time.Minute), now))
	assert.Equal(t, 0, TrialDaysLeft(now.AddDate(0, 0, -1), now))
}

func TestLabelForResult(t *testing.T) {
	assert.Equal(t, LabelGreen, LabelForResult(ResultNoDefect))
	assert.Equal(t, LabelBlue, LabelForResult(ResultMinorDefect))
	assert.Equal(t, LabelYellow, LabelForResult(ResultDefective))
	assert.Equal(t, LabelRed, LabelForResult(ResultUnsafe))
	assert.Empty(t, LabelForResult("SOMETHING_ELSE"))
}
