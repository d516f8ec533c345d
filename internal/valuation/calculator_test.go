package valuation

import (
	"math"
	"testing"
)

func approx(t *testing.T, name string, got, want, tol float64) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Errorf("%s = %v, want %v (±%v)", name, got, want, tol)
	}
}

// TestCalculateScenario walks the reference scenario end to end.
func TestCalculateScenario(t *testing.T) {
	lease := LeaseTerms{LeaseValueM: 100, LeaseYears: 10, NoiPct: 85}
	rates := RateInputs{
		CapRate:            0.075,
		ExitCapRate:        0.08,
		TerminalGrowthRate: 0.025,
		DiscountRate:       0.10,
	}

	b := Calculate(lease, rates, 1.0, 0.75)

	approx(t, "annualRevenueM", b.AnnualRevenueM, 10.0, 1e-9)
	approx(t, "noiAnnualM", b.NoiAnnualM, 8.5, 1e-9)
	approx(t, "baseValueM", b.BaseValueM, 113.33, 0.01)
	approx(t, "capRateDiff", b.CapRateDiff, 0.055, 1e-12)
	approx(t, "terminalNoiM", b.TerminalNoiM, 10.88, 0.05)
	approx(t, "terminalValueM", b.TerminalValueM, 57.2, 0.5)
	approx(t, "grossValueM", b.GrossValueM, 170.6, 0.5)

	// factor = 1.0, so adjusted equals gross
	if b.AdjustedValueM != b.GrossValueM {
		t.Errorf("adjusted %v != gross %v with factor 1.0", b.AdjustedValueM, b.GrossValueM)
	}
}

// TestCalculateLeaseYearsFloor verifies a degenerate lease length never
// produces an unbounded annual revenue.
func TestCalculateLeaseYearsFloor(t *testing.T) {
	rates := RateInputs{CapRate: 0.075, ExitCapRate: 0.08, TerminalGrowthRate: 0.025, DiscountRate: 0.1}

	for _, years := range []float64{0, -5, 0.0001, 0.1} {
		b := Calculate(LeaseTerms{LeaseValueM: 100, LeaseYears: years, NoiPct: 85}, rates, 1.0, 0.75)
		if math.IsNaN(b.AnnualRevenueM) || math.IsInf(b.AnnualRevenueM, 0) {
			t.Fatalf("leaseYears=%v produced non-finite annual revenue", years)
		}
		if b.AnnualRevenueM > 100/minLeaseYears {
			t.Errorf("leaseYears=%v produced unbounded revenue %v", years, b.AnnualRevenueM)
		}
	}
}

// TestCalculateIdempotent verifies identical inputs produce identical outputs.
func TestCalculateIdempotent(t *testing.T) {
	lease := LeaseTerms{LeaseValueM: 42.5, LeaseYears: 7, NoiPct: 80}
	rates := RateInputs{CapRate: 0.07, ExitCapRate: 0.085, TerminalGrowthRate: 0.02, DiscountRate: 0.09}

	first := Calculate(lease, rates, 0.92, 0.8)
	second := Calculate(lease, rates, 0.92, 0.8)
	if first != second {
		t.Errorf("repeated Calculate diverged: %+v vs %+v", first, second)
	}
}

// TestCalculateZeroInputs verifies zero lease economics yield a zero, not
// NaN, valuation.
func TestCalculateZeroInputs(t *testing.T) {
	b := Calculate(LeaseTerms{}, RateInputs{}, 1.0, 0.75)
	for name, v := range map[string]float64{
		"annualRevenueM": b.AnnualRevenueM,
		"noiAnnualM":     b.NoiAnnualM,
		"baseValueM":     b.BaseValueM,
		"terminalValueM": b.TerminalValueM,
		"grossValueM":    b.GrossValueM,
		"adjustedValueM": b.AdjustedValueM,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Errorf("%s is non-finite: %v", name, v)
		}
	}
	if b.BaseValueM != 0 {
		t.Errorf("baseValueM with zero cap rate = %v, want 0", b.BaseValueM)
	}
}

// TestCalculateNegativeExitSpread verifies the exit-cap/growth spread is
// floored so the terminal denominator stays positive.
func TestCalculateNegativeExitSpread(t *testing.T) {
	rates := RateInputs{CapRate: 0.075, ExitCapRate: 0.02, TerminalGrowthRate: 0.05, DiscountRate: 0.1}
	b := Calculate(LeaseTerms{LeaseValueM: 100, LeaseYears: 10, NoiPct: 85}, rates, 1.0, 0.75)
	if b.CapRateDiff != 0.001 {
		t.Errorf("capRateDiff = %v, want floored 0.001", b.CapRateDiff)
	}
	if b.TerminalValueM <= 0 || math.IsInf(b.TerminalValueM, 0) {
		t.Errorf("terminal value with floored spread = %v", b.TerminalValueM)
	}
}
