package services

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/gridbase/siteval/internal/config"
	"github.com/gridbase/siteval/internal/models"
	"github.com/gridbase/siteval/internal/types"
	"github.com/gridbase/siteval/internal/valuation"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/hints"
)

// ComposedView is the full read model served for a building: the persisted
// records plus the computed valuation and capacity allocation.
type ComposedView struct {
	Building            *models.Building                                `json:"building"`
	Site                *models.Site                                    `json:"site,omitempty"`
	Campus              *models.Campus                                  `json:"campus,omitempty"`
	UsePeriods          []models.UsePeriod                              `json:"usePeriods"`
	FactorDetails       map[valuation.FactorName]valuation.FactorDetail `json:"factorDetails"`
	GlobalFactors       valuation.GlobalAssumptions                     `json:"globalFactors"`
	Valuation           valuation.ValuationModel                        `json:"valuation"`
	CapacityAllocation  valuation.Allocation                            `json:"capacityAllocation"`
	RemainingLeaseYears float64                                         `json:"remainingLeaseYears"`
}

// ValuationUpdate is a partial update: only supplied sub-objects change.
// Map entries follow the null-to-clear / value-to-set convention: a key
// present with a null value clears the override, a key present with a value
// sets it, an absent key leaves it untouched.
type ValuationUpdate struct {
	Version   *types.FlexUint64              `json:"version"`
	Lease     map[string]*types.FlexFloat64  `json:"lease"`
	Valuation map[string]*types.FlexFloat64  `json:"valuation"`
	Factors   map[string]*types.FlexFloat64  `json:"factors"`
}

// usePeriodListing starts the hot use-period query. USE INDEX is MySQL
// syntax, so the hint only applies on that dialect; sqlite and postgres run
// the plain query.
func usePeriodListing(db *gorm.DB) *gorm.DB {
	if db.Dialector.Name() == "mysql" {
		return db.Clauses(hints.UseIndex("idx_use_periods_building"))
	}
	return db
}

// GlobalAssumptions bundles the configured valuation defaults for the engine.
func GlobalAssumptions(cfg *config.Config) valuation.GlobalAssumptions {
	return valuation.GlobalAssumptions{
		HpcCapRate:         cfg.HpcCapRate,
		HpcExitCapRate:     cfg.HpcExitCapRate,
		TerminalGrowthRate: cfg.TerminalGrowthRate,
		RenewalProbability: cfg.RenewalProbability,
		DiscountRate:       cfg.DiscountRate,
		DefaultLeaseYears:  cfg.DefaultLeaseYears,
	}
}

// GetValuation loads a building with its site, campus, and use periods and
// composes the authoritative valuation view.
func GetValuation(db *gorm.DB, cfg *config.Config, buildingID uint64) (*ComposedView, error) {
	building, periods, err := loadBuilding(db, buildingID)
	if err != nil {
		return nil, err
	}
	return composeView(building, periods, GlobalAssumptions(cfg), time.Now().UTC())
}

// PreviewValuation composes the view a building WOULD have after the given
// update, without persisting anything. It applies the same patch logic and
// calls the same engine functions as UpdateValuationDetails, so the preview
// numbers match the saved ones exactly.
func PreviewValuation(db *gorm.DB, cfg *config.Config, buildingID uint64, upd ValuationUpdate) (*ComposedView, error) {
	building, periods, err := loadBuilding(db, buildingID)
	if err != nil {
		return nil, err
	}
	if err := applyUpdate(building, periods, upd); err != nil {
		return nil, err
	}
	return composeView(building, periods, GlobalAssumptions(cfg), time.Now().UTC())
}

// UpdateValuationDetails applies a partial update to a building's lease
// terms, valuation inputs, and factor overrides, then returns the updated
// composed view. Writes are last-write-wins; a supplied version stamp turns
// on the optimistic conflict check.
func UpdateValuationDetails(db *gorm.DB, cfg *config.Config, buildingID uint64, upd ValuationUpdate) (*ComposedView, error) {
	err := db.Transaction(func(tx *gorm.DB) error {
		var building models.Building
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&building, buildingID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return &types.NotFoundError{Resource: "building", ID: buildingID}
			}
			return err
		}

		if upd.Version != nil && building.RowVersion != upd.Version.Uint64() {
			return fmt.Errorf("E_VERSION")
		}

		var periods []models.UsePeriod
		if err := usePeriodListing(tx).
			Where("building_id = ?", buildingID).
			Order("use_period_id").
			Find(&periods).Error; err != nil {
			return err
		}

		if err := applyUpdate(&building, periods, upd); err != nil {
			return err
		}

		building.RowVersion++
		if err := tx.Save(&building).Error; err != nil {
			return err
		}
		for i := range periods {
			if err := tx.Save(&periods[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	notifyValuationChanged(buildingID)
	return GetValuation(db, cfg, buildingID)
}

// loadBuilding fetches the building with its ownership chain and use
// periods. The use-period listing is the hot query; the index hint keeps
// the planner honest on large portfolios.
func loadBuilding(db *gorm.DB, buildingID uint64) (*models.Building, []models.UsePeriod, error) {
	var building models.Building
	if err := db.Preload("Site").Preload("Site.Campus").
		First(&building, buildingID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil, &types.NotFoundError{Resource: "building", ID: buildingID}
		}
		return nil, nil, err
	}

	var periods []models.UsePeriod
	if err := usePeriodListing(db).
		Where("building_id = ?", buildingID).
		Order("use_period_id").
		Find(&periods).Error; err != nil {
		return nil, nil, err
	}

	return &building, periods, nil
}

// composeView maps persisted records into engine inputs and runs the single
// shared computation path.
func composeView(building *models.Building, periods []models.UsePeriod, globals valuation.GlobalAssumptions, now time.Time) (*ComposedView, error) {
	overrides, err := decodeFactorOverrides(building.FactorOverrides)
	if err != nil {
		return nil, err
	}

	inputs := valuation.BuildingInputs{
		ItMw:               building.ItMw,
		GrossMw:            building.GrossMw,
		DevelopmentPhase:   building.DevelopmentPhase,
		Grid:               building.Grid,
		OwnershipStatus:    building.OwnershipStatus,
		DatacenterTier:     building.DatacenterTier,
		EnergizationDate:   building.EnergizationDate,
		FidoodleFactor:     building.FidoodleFactor,
		CapRate:            building.CapRate,
		ExitCapRate:        building.ExitCapRate,
		TerminalGrowthRate: building.TerminalGrowthRate,
		DiscountRate:       building.DiscountRate,
		FactorOverrides:    overrides,
	}

	periodInputs := make([]valuation.PeriodInputs, len(periods))
	for i, p := range periods {
		periodInputs[i] = valuation.PeriodInputs{
			ID:             p.UsePeriodID,
			UseType:        p.UseType,
			Tenant:         p.Tenant,
			IsCurrent:      p.IsCurrent,
			MwAllocation:   p.MwAllocation,
			StartDate:      p.StartDate,
			EndDate:        p.EndDate,
			LeaseValueM:    p.LeaseValueM,
			LeaseYears:     p.LeaseYears,
			NoiPct:         p.NoiPct,
			LeaseStart:     p.LeaseStart,
			LeaseStructure: p.LeaseStructure,
		}
	}

	view := valuation.ComposeView(inputs, periodInputs, globals, now)

	composed := &ComposedView{
		Building:            building,
		UsePeriods:          periods,
		FactorDetails:       view.FactorDetails,
		GlobalFactors:       globals,
		Valuation:           view.Valuation,
		CapacityAllocation:  view.CapacityAllocation,
		RemainingLeaseYears: view.RemainingLeaseYears,
	}
	if building.Site != nil {
		composed.Site = building.Site
		composed.Campus = building.Site.Campus
	}
	return composed, nil
}

// applyUpdate mutates the in-memory records per the partial update. Both the
// preview path and the persisted path run exactly this code.
func applyUpdate(building *models.Building, periods []models.UsePeriod, upd ValuationUpdate) error {
	for key, v := range upd.Valuation {
		target, ok := map[string]**float64{
			"capRate":            &building.CapRate,
			"exitCapRate":        &building.ExitCapRate,
			"terminalGrowthRate": &building.TerminalGrowthRate,
			"discountRate":       &building.DiscountRate,
		}[key]
		if !ok {
			if key == "fidoodleFactor" {
				if v == nil {
					building.FidoodleFactor = 1.0
				} else {
					building.FidoodleFactor = v.Float64()
				}
				continue
			}
			return &types.ValidationError{Message: fmt.Sprintf("unknown valuation input %q", key)}
		}
		*target = flexPtr(v)
	}

	if len(upd.Factors) > 0 {
		overrides, err := decodeFactorOverrides(building.FactorOverrides)
		if err != nil {
			return err
		}
		for key, v := range upd.Factors {
			name := valuation.FactorName(key)
			if !knownFactor(name) {
				return &types.ValidationError{Message: fmt.Sprintf("unknown factor %q", key)}
			}
			if v == nil {
				delete(overrides, name)
			} else {
				overrides[name] = flexPtr(v)
			}
		}
		encoded, err := encodeFactorOverrides(overrides)
		if err != nil {
			return err
		}
		building.FactorOverrides = encoded
	}

	if len(upd.Lease) > 0 {
		period := primaryLeasePeriod(periods)
		if period == nil {
			return &types.ValidationError{Message: "building has no current use period to carry lease terms"}
		}
		for key, v := range upd.Lease {
			target, ok := map[string]**float64{
				"leaseValueM": &period.LeaseValueM,
				"leaseYears":  &period.LeaseYears,
				"noiPct":      &period.NoiPct,
				"annualRevM":  &period.AnnualRevM,
				"noiAnnualM":  &period.NoiAnnualM,
			}[key]
			if !ok {
				return &types.ValidationError{Message: fmt.Sprintf("unknown lease field %q", key)}
			}
			*target = flexPtr(v)
		}
	}

	return nil
}

// primaryLeasePeriod mirrors the engine's selection: the first current
// period carrying lease value, else the first current period.
func primaryLeasePeriod(periods []models.UsePeriod) *models.UsePeriod {
	var firstCurrent *models.UsePeriod
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

func knownFactor(name valuation.FactorName) bool {
	for _, n := range valuation.FactorNames {
		if n == name {
			return true
		}
	}
	return false
}

func decodeFactorOverrides(raw models.JSON) (map[valuation.FactorName]*float64, error) {
	overrides := make(map[valuation.FactorName]*float64)
	if len(raw.JSON) == 0 {
		return overrides, nil
	}
	var stored map[valuation.FactorName]float64
	if err := json.Unmarshal(raw.JSON, &stored); err != nil {
		return nil, &types.ValidationError{Message: fmt.Sprintf("corrupt factor overrides: %v", err)}
	}
	for name, v := range stored {
		value := v
		overrides[name] = &value
	}
	return overrides, nil
}

func encodeFactorOverrides(overrides map[valuation.FactorName]*float64) (models.JSON, error) {
	stored := make(map[valuation.FactorName]float64, len(overrides))
	for name, v := range overrides {
		if v != nil {
			stored[name] = *v
		}
	}
	encoded, err := json.Marshal(stored)
	if err != nil {
		return models.JSON{}, err
	}
	return models.JSON{JSON: encoded}, nil
}

func flexPtr(v *types.FlexFloat64) *float64 {
	if v == nil {
		return nil
	}
	f := v.Float64()
	return &f
}
