package valuation

import "math"

// LeaseTerms are the lease economics of the building's contracted use period.
// Values are in millions of dollars; NoiPct is a percentage (85 = 85%).
type LeaseTerms struct {
	LeaseValueM float64 `json:"leaseValueM"`
	LeaseYears  float64 `json:"leaseYears"`
	NoiPct      float64 `json:"noiPct"`
}

// RateInputs are the resolved cap-rate assumptions, each a decimal fraction
// (0.075 = 7.5%).
type RateInputs struct {
	CapRate            float64 `json:"capRate"`
	ExitCapRate        float64 `json:"exitCapRate"`
	TerminalGrowthRate float64 `json:"terminalGrowthRate"`
	DiscountRate       float64 `json:"discountRate"`
}

// Breakdown is the full valuation output. Dollar figures are in millions.
type Breakdown struct {
	AnnualRevenueM     float64 `json:"annualRevenueM"`
	NoiAnnualM         float64 `json:"noiAnnualM"`
	BaseValueM         float64 `json:"baseValueM"`
	TerminalNoiM       float64 `json:"terminalNoiM"`
	CapRateDiff        float64 `json:"capRateDiff"`
	TerminalValueM     float64 `json:"terminalValueM"`
	GrossValueM        float64 `json:"grossValueM"`
	AdjustedValueM     float64 `json:"adjustedValueM"`
	CombinedFactor     float64 `json:"combinedFactor"`
	RenewalProbability float64 `json:"renewalProbability"`
}

// minLeaseYears floors every divisor use of leaseYears so a zero or
// near-zero lease length cannot produce an unbounded annual revenue.
const minLeaseYears = 0.1

// Calculate turns lease terms, rate assumptions, and the combined adjustment
// factor into a valuation breakdown.
//
// This function is pure: identical inputs always produce identical outputs.
// It is the single code path behind both the persisted calculation and the
// live preview, so the two can never drift. Any intermediate that degenerates
// to NaN or ±Inf is coerced to 0 (the combined factor alone coerces to 1, in
// Combined) rather than surfaced to a caller.
func Calculate(lease LeaseTerms, rates RateInputs, combinedFactor, renewalProbability float64) Breakdown {
	years := math.Max(lease.LeaseYears, minLeaseYears)

	annualRevenue := finite(lease.LeaseValueM / years)
	noiAnnual := finite(annualRevenue * (lease.NoiPct / 100))

	baseValue := 0.0
	if noiAnnual > 0 && rates.CapRate > 0 {
		baseValue = finite(noiAnnual / rates.CapRate)
	}

	capRateDiff := math.Max(rates.ExitCapRate-rates.TerminalGrowthRate, 0.001)
	terminalNoi := finite(noiAnnual * math.Pow(1+rates.TerminalGrowthRate, years))
	terminalValueAtEnd := finite(terminalNoi / capRateDiff)
	terminalValue := finite(terminalValueAtEnd / math.Pow(1+rates.DiscountRate, years) * renewalProbability)

	grossValue := finite(baseValue + terminalValue)
	adjustedValue := finite(grossValue * combinedFactor)

	return Breakdown{
		AnnualRevenueM:     annualRevenue,
		NoiAnnualM:         noiAnnual,
		BaseValueM:         baseValue,
		TerminalNoiM:       terminalNoi,
		CapRateDiff:        capRateDiff,
		TerminalValueM:     terminalValue,
		GrossValueM:        grossValue,
		AdjustedValueM:     adjustedValue,
		CombinedFactor:     combinedFactor,
		RenewalProbability: renewalProbability,
	}
}

// finite coerces NaN and ±Inf to 0 so degenerate arithmetic never escapes
// the calculator.
func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
