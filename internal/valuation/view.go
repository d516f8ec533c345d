package valuation

import "time"

// GlobalAssumptions are the portfolio-wide defaults supplied by configuration.
// They are passed explicitly into every computation so a result is fully
// determined by its arguments.
type GlobalAssumptions struct {
	HpcCapRate         float64 `json:"hpcCapRate"`
	HpcExitCapRate     float64 `json:"hpcExitCapRate"`
	TerminalGrowthRate float64 `json:"terminalGrowthRate"`
	RenewalProbability float64 `json:"renewalProbability"`
	DiscountRate       float64 `json:"discountRate"`
	DefaultLeaseYears  float64 `json:"defaultLeaseYears"`
}

// BuildingInputs is everything the engine needs to know about a building.
// Pointer fields are per-building overrides against the global defaults.
type BuildingInputs struct {
	ItMw             *float64
	GrossMw          *float64
	DevelopmentPhase string
	Grid             string
	OwnershipStatus  string
	DatacenterTier   string
	EnergizationDate *time.Time
	FidoodleFactor   float64

	CapRate            *float64
	ExitCapRate        *float64
	TerminalGrowthRate *float64
	DiscountRate       *float64

	FactorOverrides map[FactorName]*float64
}

// PeriodInputs is the engine's view of one use period.
type PeriodInputs struct {
	ID             uint64
	UseType        string
	Tenant         *string
	IsCurrent      bool
	MwAllocation   *float64
	StartDate      *time.Time
	EndDate        *time.Time
	LeaseValueM    *float64
	LeaseYears     *float64
	NoiPct         *float64
	LeaseStart     *time.Time
	LeaseStructure string
}

// ValuationModel groups the resolved inputs with the computed results.
type ValuationModel struct {
	Inputs  RateInputs `json:"inputs"`
	Results Breakdown  `json:"results"`
}

// View is the composed read model served to both the authoritative path and
// the live preview.
type View struct {
	FactorDetails       map[FactorName]FactorDetail `json:"factorDetails"`
	Valuation           ValuationModel              `json:"valuation"`
	CapacityAllocation  Allocation                  `json:"capacityAllocation"`
	RemainingLeaseYears float64                     `json:"remainingLeaseYears"`
}

// ComposeView runs the full pipeline: resolve factors, compute the valuation,
// compute the capacity allocation. Both the server's persisted calculation and
// the client's preview call this one function, which is what keeps "preview"
// and "saved" numbers identical for identical inputs.
func ComposeView(b BuildingInputs, periods []PeriodInputs, globals GlobalAssumptions, now time.Time) View {
	factors := resolveFactors(b, periods, now)
	combined := factors.Combined()

	rates := resolveRates(b, globals)
	remaining := remainingLeaseYears(periods, globals, now)
	lease := selectLease(periods, remaining)

	results := Calculate(lease, rates, combined, globals.RenewalProbability)

	capacities := make([]PeriodCapacity, len(periods))
	for i, p := range periods {
		capacities[i] = PeriodCapacity{IsCurrent: p.IsCurrent, MwAllocation: p.MwAllocation}
	}

	return View{
		FactorDetails:       factors.Details(),
		Valuation:           ValuationModel{Inputs: rates, Results: results},
		CapacityAllocation:  Allocate(deref(b.ItMw), capacities),
		RemainingLeaseYears: remaining,
	}
}

func resolveFactors(b BuildingInputs, periods []PeriodInputs, now time.Time) FactorSet {
	lease := primaryPeriod(periods)

	ctx := DeriveContext{
		DevelopmentPhase: b.DevelopmentPhase,
		Grid:             b.Grid,
		OwnershipStatus:  b.OwnershipStatus,
		DatacenterTier:   b.DatacenterTier,
		EnergizationDate: b.EnergizationDate,
		ItMw:             b.ItMw,
		FidoodleFactor:   b.FidoodleFactor,
		Now:              now,
	}
	if lease != nil {
		ctx.LeaseStructure = lease.LeaseStructure
		ctx.HasTenant = lease.Tenant != nil && *lease.Tenant != ""
	}

	autos := DeriveAutoFactors(ctx)
	set := make(FactorSet, len(FactorNames))
	for _, name := range FactorNames {
		set[name] = Override{Auto: autos[name], Override: b.FactorOverrides[name]}
	}
	return set
}

func resolveRates(b BuildingInputs, globals GlobalAssumptions) RateInputs {
	return RateInputs{
		CapRate:            coalesce(b.CapRate, globals.HpcCapRate),
		ExitCapRate:        coalesce(b.ExitCapRate, globals.HpcExitCapRate),
		TerminalGrowthRate: coalesce(b.TerminalGrowthRate, globals.TerminalGrowthRate),
		DiscountRate:       coalesce(b.DiscountRate, globals.DiscountRate),
	}
}

// primaryPeriod picks the current use period whose lease terms drive the
// valuation: the first current period carrying a lease value, falling back
// to the first current period.
func primaryPeriod(periods []PeriodInputs) *PeriodInputs {
	var firstCurrent *PeriodInputs
	for i := range periods {
		p := &periods[i]
		if !p.IsCurrent {
			continue
		}
		if p.LeaseValueM != nil {
			return p
		}
		if firstCurrent == nil {
			firstCurrent = p
		}
	}
	return firstCurrent
}

// remainingLeaseYears estimates how much lease term is left on the primary
// period: years to the recorded end date when one exists, otherwise the lease
// length less what has elapsed since lease start, otherwise the configured
// default.
func remainingLeaseYears(periods []PeriodInputs, globals GlobalAssumptions, now time.Time) float64 {
	p := primaryPeriod(periods)
	if p == nil {
		return globals.DefaultLeaseYears
	}

	const hoursPerYear = 24 * 365.25

	if p.EndDate != nil {
		years := p.EndDate.Sub(now).Hours() / hoursPerYear
		if years > 0 {
			return years
		}
		return minLeaseYears
	}

	if p.LeaseStart != nil && p.LeaseYears != nil {
		elapsed := now.Sub(*p.LeaseStart).Hours() / hoursPerYear
		if years := *p.LeaseYears - elapsed; years > 0 {
			return years
		}
		return minLeaseYears
	}

	if p.LeaseYears != nil {
		return *p.LeaseYears
	}

	return globals.DefaultLeaseYears
}

// selectLease builds the calculator input from the primary period, with the
// remaining-lease-years estimate standing in for an unset lease length.
func selectLease(periods []PeriodInputs, remainingYears float64) LeaseTerms {
	p := primaryPeriod(periods)
	if p == nil {
		return LeaseTerms{LeaseYears: remainingYears}
	}
	return LeaseTerms{
		LeaseValueM: deref(p.LeaseValueM),
		LeaseYears:  coalesce(p.LeaseYears, remainingYears),
		NoiPct:      deref(p.NoiPct),
	}
}

func coalesce(v *float64, fallback float64) float64 {
	if v != nil {
		return *v
	}
	return fallback
}

func deref(v *float64) float64 {
	if v != nil {
		return *v
	}
	return 0
}
