package valuation

import "math"

// FactorName identifies one of the fixed adjustment factors applied to a
// building's gross valuation.
type FactorName string

const (
	FactorPhaseProbability FactorName = "phaseProbability"
	FactorRegulatoryRisk   FactorName = "regulatoryRisk"
	FactorSizeMultiplier   FactorName = "sizeMultiplier"
	FactorPowerAuthority   FactorName = "powerAuthority"
	FactorOwnership        FactorName = "ownership"
	FactorDatacenterTier   FactorName = "datacenterTier"
	FactorLeaseStructure   FactorName = "leaseStructure"
	FactorTenantCredit     FactorName = "tenantCredit"
	FactorEnergization     FactorName = "energization"
	FactorFidoodle         FactorName = "fidoodleFactor"
)

// FactorNames lists every factor in presentation order. The combined factor
// is the product over this exact set.
var FactorNames = []FactorName{
	FactorPhaseProbability,
	FactorRegulatoryRisk,
	FactorSizeMultiplier,
	FactorPowerAuthority,
	FactorOwnership,
	FactorDatacenterTier,
	FactorLeaseStructure,
	FactorTenantCredit,
	FactorEnergization,
	FactorFidoodle,
}

// Override pairs a system-computed baseline with an optional manual value.
// A nil Override means "use the auto value"; clearing an override is just
// setting it back to nil.
type Override struct {
	Auto     float64  `json:"auto"`
	Override *float64 `json:"override"`
}

// Final resolves the effective value: the manual override when present,
// otherwise the auto baseline.
func (o Override) Final() float64 {
	if o.Override != nil {
		return *o.Override
	}
	return o.Auto
}

// Reset clears the manual override.
func (o *Override) Reset() {
	o.Override = nil
}

// FactorDetail is the resolved state of a single factor as exposed to callers.
type FactorDetail struct {
	Auto     float64  `json:"auto"`
	Override *float64 `json:"override"`
	Final    float64  `json:"final"`
}

// FactorSet maps each factor name to its override state.
type FactorSet map[FactorName]Override

// Resolve returns the final multiplier for a single factor.
func Resolve(auto float64, override *float64) float64 {
	return Override{Auto: auto, Override: override}.Final()
}

// Combined multiplies the final values of every factor in the set. A missing
// entry contributes 1.0. If the running product ever degenerates to NaN or
// ±Inf (corrupt input), the combined factor resets to 1.0 so a usable number
// always reaches the caller.
func (fs FactorSet) Combined() float64 {
	combined := 1.0
	for _, name := range FactorNames {
		o, ok := fs[name]
		if !ok {
			continue
		}
		combined *= o.Final()
	}
	if math.IsNaN(combined) || math.IsInf(combined, 0) {
		return 1.0
	}
	return combined
}

// Details expands the set into the caller-facing form with finals resolved.
func (fs FactorSet) Details() map[FactorName]FactorDetail {
	details := make(map[FactorName]FactorDetail, len(FactorNames))
	for _, name := range FactorNames {
		o := fs[name]
		details[name] = FactorDetail{
			Auto:     o.Auto,
			Override: o.Override,
			Final:    o.Final(),
		}
	}
	return details
}
