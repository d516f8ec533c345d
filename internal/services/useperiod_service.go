package services

import (
	"time"

	"github.com/gridbase/siteval/internal/models"
	"github.com/gridbase/siteval/internal/types"
	"github.com/gridbase/siteval/internal/valuation"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UsePeriodInput carries the fields accepted when creating a use period.
// IsSplit=true creates a concurrent current allocation; IsSplit=false creates
// a future transition record that does not affect current allocation totals.
type UsePeriodInput struct {
	IsSplit          bool                `json:"isSplit"`
	UseType          string              `json:"useType"`
	Tenant           *string             `json:"tenant"`
	MwAllocation     *types.FlexFloat64  `json:"mwAllocation"`
	StartDate        *time.Time          `json:"startDate"`
	EndDate          *time.Time          `json:"endDate"`
	LeaseValueM      *types.FlexFloat64  `json:"leaseValueM"`
	LeaseYears       *types.FlexFloat64  `json:"leaseYears"`
	NoiPct           *types.FlexFloat64  `json:"noiPct"`
	LeaseStart       *time.Time          `json:"leaseStart"`
	LeaseStructure   string              `json:"leaseStructure"`
	LeaseNotes       string              `json:"leaseNotes"`
	AllocationMethod string              `json:"allocationMethod"`
}

// CreateUsePeriod validates and persists a new use period for a building.
// A split may not claim more than the building's remaining unallocated
// capacity; omitting mwAllocation means "whole remaining capacity" and
// always succeeds.
func CreateUsePeriod(db *gorm.DB, buildingID uint64, in UsePeriodInput) (*models.UsePeriod, error) {
	if in.UseType == "" {
		return nil, &types.ValidationError{Message: "useType is required"}
	}

	var created models.UsePeriod
	err := db.Transaction(func(tx *gorm.DB) error {
		var building models.Building
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&building, buildingID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return &types.NotFoundError{Resource: "building", ID: buildingID}
			}
			return err
		}

		var periods []models.UsePeriod
		if err := usePeriodListing(tx).
			Where("building_id = ?", buildingID).
			Find(&periods).Error; err != nil {
			return err
		}

		created = models.UsePeriod{
			BuildingID:       buildingID,
			UseType:          in.UseType,
			Tenant:           in.Tenant,
			MwAllocation:     flexPtr(in.MwAllocation),
			StartDate:        in.StartDate,
			EndDate:          in.EndDate,
			LeaseValueM:      flexPtr(in.LeaseValueM),
			LeaseYears:       flexPtr(in.LeaseYears),
			NoiPct:           flexPtr(in.NoiPct),
			LeaseStart:       in.LeaseStart,
			LeaseStructure:   in.LeaseStructure,
			LeaseNotes:       in.LeaseNotes,
			AllocationMethod: in.AllocationMethod,
		}

		if in.IsSplit {
			created.IsCurrent = true
			if created.MwAllocation != nil {
				if *created.MwAllocation <= 0 {
					return &types.ValidationError{Message: "mwAllocation must be positive"}
				}
				remaining := valuation.RemainingCapacity(derefFloat(building.ItMw), periodCapacities(periods))
				if *created.MwAllocation > remaining {
					return &types.ValidationError{
						Message: "requested allocation exceeds the building's remaining unallocated capacity",
					}
				}
			}
		} else {
			// Transition: a planned future record. It never counts toward
			// current allocation, so no capacity check applies.
			created.IsCurrent = false
			if in.StartDate == nil {
				return &types.ValidationError{Message: "a transition requires a startDate"}
			}
		}

		if err := tx.Create(&created).Error; err != nil {
			return err
		}

		building.RowVersion++
		return tx.Save(&building).Error
	})
	if err != nil {
		return nil, err
	}

	notifyValuationChanged(buildingID)
	return &created, nil
}

// DeleteUsePeriod removes a use period. The last remaining period of a
// building is protected: deletion fails with LastPeriodError and the row
// count is unchanged.
func DeleteUsePeriod(db *gorm.DB, usePeriodID uint64) error {
	var buildingID uint64
	err := db.Transaction(func(tx *gorm.DB) error {
		var period models.UsePeriod
		if err := tx.First(&period, usePeriodID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return &types.NotFoundError{Resource: "use period", ID: usePeriodID}
			}
			return err
		}
		buildingID = period.BuildingID

		var building models.Building
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&building, period.BuildingID).Error; err != nil {
			return err
		}

		var count int64
		if err := tx.Model(&models.UsePeriod{}).
			Where("building_id = ?", period.BuildingID).
			Count(&count).Error; err != nil {
			return err
		}
		if count <= 1 {
			return &types.LastPeriodError{BuildingID: period.BuildingID}
		}

		if err := tx.Delete(&period).Error; err != nil {
			return err
		}

		building.RowVersion++
		return tx.Save(&building).Error
	})
	if err != nil {
		return err
	}

	notifyValuationChanged(buildingID)
	return nil
}

func periodCapacities(periods []models.UsePeriod) []valuation.PeriodCapacity {
	caps := make([]valuation.PeriodCapacity, len(periods))
	for i, p := range periods {
		caps[i] = valuation.PeriodCapacity{IsCurrent: p.IsCurrent, MwAllocation: p.MwAllocation}
	}
	return caps
}

func derefFloat(v *float64) float64 {
	if v != nil {
		return *v
	}
	return 0
}
