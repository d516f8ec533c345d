package valuation

import (
	"strings"
	"time"
)

// Categorical lookup tables for auto baselines. The resolution rule in
// factors.go is uniform; only these derivations differ per factor.

var phaseProbabilities = map[string]float64{
	"operational":        1.0,
	"under_construction": 0.9,
	"permitted":          0.75,
	"planned":            0.55,
	"rumored":            0.3,
}

var gridRegulatoryRisk = map[string]float64{
	"ERCOT": 0.97,
	"PJM":   1.0,
	"MISO":  0.99,
	"SPP":   0.98,
	"CAISO": 0.95,
	"NYISO": 0.96,
	"WECC":  0.97,
}

var gridAuthorityFactor = map[string]float64{
	"ERCOT": 1.02,
	"PJM":   1.0,
	"MISO":  0.99,
	"SPP":   0.99,
	"CAISO": 0.97,
	"NYISO": 0.98,
	"WECC":  0.99,
}

var ownershipFactors = map[string]float64{
	"owned":         1.0,
	"ground_lease":  0.96,
	"leased":        0.92,
	"joint_venture": 0.97,
}

var tierFactors = map[string]float64{
	"tier4": 1.05,
	"tier3": 1.0,
	"tier2": 0.92,
	"tier1": 0.85,
}

var leaseStructureFactors = map[string]float64{
	"triple_net":     1.05,
	"modified_gross": 1.0,
	"gross":          0.95,
	"uncontracted":   0.85,
}

// DeriveContext carries the categorical and contextual attributes the auto
// baselines are computed from. Now is explicit so derivation stays
// reproducible for a given input.
type DeriveContext struct {
	DevelopmentPhase string
	Grid             string
	OwnershipStatus  string
	DatacenterTier   string
	LeaseStructure   string
	HasTenant        bool
	EnergizationDate *time.Time
	ItMw             *float64
	FidoodleFactor   float64
	Now              time.Time
}

// DeriveAutoFactors computes the auto baseline for every factor in the set.
func DeriveAutoFactors(ctx DeriveContext) map[FactorName]float64 {
	return map[FactorName]float64{
		FactorPhaseProbability: lookup(phaseProbabilities, ctx.DevelopmentPhase, 0.5),
		FactorRegulatoryRisk:   lookup(gridRegulatoryRisk, ctx.Grid, 1.0),
		FactorSizeMultiplier:   sizeMultiplier(ctx.ItMw),
		FactorPowerAuthority:   lookup(gridAuthorityFactor, ctx.Grid, 1.0),
		FactorOwnership:        lookup(ownershipFactors, ctx.OwnershipStatus, 1.0),
		FactorDatacenterTier:   lookup(tierFactors, ctx.DatacenterTier, 1.0),
		FactorLeaseStructure:   lookup(leaseStructureFactors, ctx.LeaseStructure, 1.0),
		FactorTenantCredit:     tenantCredit(ctx.HasTenant),
		FactorEnergization:     energizationFactor(ctx.EnergizationDate, ctx.Now),
		FactorFidoodle:         fidoodleAuto(ctx.FidoodleFactor),
	}
}

func lookup(table map[string]float64, key string, fallback float64) float64 {
	if v, ok := table[normalizeKey(key)]; ok {
		return v
	}
	// Grid codes are stored upper-case
	if v, ok := table[strings.ToUpper(strings.TrimSpace(key))]; ok {
		return v
	}
	return fallback
}

func normalizeKey(key string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(key)), " ", "_")
}

// sizeMultiplier rewards scale: bigger usable capacity trades at a premium.
func sizeMultiplier(itMw *float64) float64 {
	if itMw == nil {
		return 1.0
	}
	switch mw := *itMw; {
	case mw >= 100:
		return 1.1
	case mw >= 50:
		return 1.05
	case mw >= 20:
		return 1.0
	case mw >= 5:
		return 0.95
	default:
		return 0.9
	}
}

func tenantCredit(hasTenant bool) float64 {
	if hasTenant {
		return 1.0
	}
	return 0.9
}

// energizationFactor discounts buildings the further their energization date
// sits in the future. An already-energized building carries no discount; an
// unknown date is treated like a distant one.
func energizationFactor(date *time.Time, now time.Time) float64 {
	if date == nil {
		return 0.8
	}
	if !date.After(now) {
		return 1.0
	}
	years := date.Sub(now).Hours() / (24 * 365.25)
	switch {
	case years <= 1:
		return 0.95
	case years <= 3:
		return 0.85
	default:
		return 0.75
	}
}

// fidoodleAuto passes the building's free-form manual multiplier through,
// defaulting to 1.0 when unset.
func fidoodleAuto(v float64) float64 {
	if v == 0 {
		return 1.0
	}
	return v
}
