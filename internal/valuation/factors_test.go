package valuation

import (
	"math"
	"math/rand"
	"testing"
	"time"
)

func fptr(v float64) *float64 { return &v }

// TestResolve verifies override-wins resolution over randomized pairs,
// including zero and negative overrides.
func TestResolve(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 200; i++ {
		auto := rng.Float64()*4 - 2

		if got := Resolve(auto, nil); got != auto {
			t.Fatalf("Resolve(%v, nil) = %v, want auto", auto, got)
		}

		override := rng.Float64()*4 - 2
		if got := Resolve(auto, &override); got != override {
			t.Fatalf("Resolve(%v, &%v) = %v, want override", auto, override, got)
		}
	}

	// Zero is a real override, not "unset"
	if got := Resolve(0.9, fptr(0)); got != 0 {
		t.Errorf("Resolve with zero override = %v, want 0", got)
	}
}

// TestReset verifies clearing an override falls back to the auto value.
func TestReset(t *testing.T) {
	o := Override{Auto: 0.85, Override: fptr(1.2)}
	if o.Final() != 1.2 {
		t.Fatalf("expected override to win, got %v", o.Final())
	}
	o.Reset()
	if o.Final() != 0.85 {
		t.Errorf("after Reset expected auto 0.85, got %v", o.Final())
	}
}

// TestCombinedProduct verifies the combined factor is the product of the
// finals and that changing one override scales it by exactly new/old.
func TestCombinedProduct(t *testing.T) {
	set := make(FactorSet)
	expected := 1.0
	for i, name := range FactorNames {
		v := 0.8 + float64(i)*0.05
		set[name] = Override{Auto: v}
		expected *= v
	}

	got := set.Combined()
	if math.Abs(got-expected) > 1e-12 {
		t.Fatalf("Combined() = %v, want %v", got, expected)
	}

	// Override one factor and check the ratio
	old := set[FactorTenantCredit].Final()
	set[FactorTenantCredit] = Override{Auto: old, Override: fptr(0.5)}
	ratio := set.Combined() / got
	if math.Abs(ratio-0.5/old) > 1e-12 {
		t.Errorf("combined ratio after override = %v, want %v", ratio, 0.5/old)
	}
}

// TestCombinedNonFinite verifies a corrupt input resets the combined factor
// to 1.0 instead of propagating NaN.
func TestCombinedNonFinite(t *testing.T) {
	cases := []float64{math.NaN(), math.Inf(1), math.Inf(-1)}
	for _, bad := range cases {
		set := FactorSet{
			FactorPhaseProbability: {Auto: 0.9},
			FactorRegulatoryRisk:   {Auto: bad},
		}
		if got := set.Combined(); got != 1.0 {
			t.Errorf("Combined() with %v input = %v, want 1.0", bad, got)
		}
	}
}

// TestDeriveAutoFactors spot-checks the categorical tables.
func TestDeriveAutoFactors(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	energized := now.AddDate(-1, 0, 0)
	itMw := 120.0

	autos := DeriveAutoFactors(DeriveContext{
		DevelopmentPhase: "operational",
		Grid:             "ERCOT",
		OwnershipStatus:  "owned",
		DatacenterTier:   "tier3",
		LeaseStructure:   "triple_net",
		HasTenant:        true,
		EnergizationDate: &energized,
		ItMw:             &itMw,
		FidoodleFactor:   1.0,
		Now:              now,
	})

	want := map[FactorName]float64{
		FactorPhaseProbability: 1.0,
		FactorRegulatoryRisk:   0.97,
		FactorSizeMultiplier:   1.1,
		FactorPowerAuthority:   1.02,
		FactorOwnership:        1.0,
		FactorDatacenterTier:   1.0,
		FactorLeaseStructure:   1.05,
		FactorTenantCredit:     1.0,
		FactorEnergization:     1.0,
		FactorFidoodle:         1.0,
	}
	for name, w := range want {
		if got := autos[name]; got != w {
			t.Errorf("%s auto = %v, want %v", name, got, w)
		}
	}

	// Unknown categories fall back to neutral values
	autos = DeriveAutoFactors(DeriveContext{DevelopmentPhase: "???", Grid: "???", Now: now})
	if autos[FactorPhaseProbability] != 0.5 {
		t.Errorf("unknown phase auto = %v, want 0.5", autos[FactorPhaseProbability])
	}
	if autos[FactorRegulatoryRisk] != 1.0 {
		t.Errorf("unknown grid auto = %v, want 1.0", autos[FactorRegulatoryRisk])
	}
	if autos[FactorEnergization] != 0.8 {
		t.Errorf("nil energization date auto = %v, want 0.8", autos[FactorEnergization])
	}
}
