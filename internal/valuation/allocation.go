package valuation

import "fmt"

// PeriodCapacity is the slice of a use period the allocator cares about.
// A nil MwAllocation means "the whole remaining capacity of the building".
type PeriodCapacity struct {
	IsCurrent    bool
	MwAllocation *float64
}

// Allocation is the derived capacity split for a building. It is computed,
// never persisted.
type Allocation struct {
	TotalItMw     float64  `json:"totalItMw"`
	AllocatedMw   float64  `json:"allocatedMw"`
	UnallocatedMw float64  `json:"unallocatedMw"`
	Warnings      []string `json:"warnings,omitempty"`
}

// Allocate sums the current use periods against the building's usable
// capacity. Over-commitment is reported as a warning rather than rejected,
// since historical rows may already violate the invariant; writes are
// validated separately before they land.
func Allocate(totalItMw float64, periods []PeriodCapacity) Allocation {
	allocated := 0.0
	openEnded := 0

	for _, p := range periods {
		if !p.IsCurrent {
			continue
		}
		if p.MwAllocation == nil {
			openEnded++
			continue
		}
		allocated += *p.MwAllocation
	}

	// Each open-ended period consumes whatever remains after the explicit
	// allocations; only the first can actually receive anything.
	if openEnded > 0 && totalItMw > allocated {
		allocated = totalItMw
	}

	alloc := Allocation{
		TotalItMw:     totalItMw,
		AllocatedMw:   allocated,
		UnallocatedMw: 0,
	}
	if remaining := totalItMw - allocated; remaining > 0 {
		alloc.UnallocatedMw = remaining
	}
	if allocated > totalItMw {
		alloc.Warnings = append(alloc.Warnings,
			fmt.Sprintf("allocated %.2f MW exceeds usable capacity %.2f MW", allocated, totalItMw))
	}

	return alloc
}

// RemainingCapacity is the headroom an additional current allocation may
// claim. Open-ended periods already consume everything, so their presence
// leaves no headroom.
func RemainingCapacity(totalItMw float64, periods []PeriodCapacity) float64 {
	return Allocate(totalItMw, periods).UnallocatedMw
}
