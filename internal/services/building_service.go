package services

import (
	"time"

	"github.com/gridbase/siteval/internal/models"
	"github.com/gridbase/siteval/internal/types"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BuildingInput carries the fields accepted when creating a building.
type BuildingInput struct {
	SiteID           uint64              `json:"siteId"`
	BuildingName     string              `json:"buildingName"`
	GrossMw          *types.FlexFloat64  `json:"grossMw"`
	ItMw             *types.FlexFloat64  `json:"itMw"`
	Pue              *types.FlexFloat64  `json:"pue"`
	Grid             string              `json:"grid"`
	OwnershipStatus  string              `json:"ownershipStatus"`
	DevelopmentPhase string              `json:"developmentPhase"`
	Confidence       string              `json:"confidence"`
	DatacenterTier   string              `json:"datacenterTier"`
	EnergizationDate *time.Time          `json:"energizationDate"`
	FidoodleFactor   *types.FlexFloat64  `json:"fidoodleFactor"`
}

// CreateBuilding persists a new building and seeds its default use period:
// every building carries at least one, from birth to deletion.
func CreateBuilding(db *gorm.DB, in BuildingInput) (*models.Building, error) {
	if in.BuildingName == "" {
		return nil, &types.ValidationError{Message: "buildingName is required"}
	}

	var building models.Building
	err := db.Transaction(func(tx *gorm.DB) error {
		var site models.Site
		if err := tx.First(&site, in.SiteID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return &types.NotFoundError{Resource: "site", ID: in.SiteID}
			}
			return err
		}

		building = models.Building{
			SiteID:           in.SiteID,
			BuildingName:     in.BuildingName,
			GrossMw:          flexPtr(in.GrossMw),
			ItMw:             flexPtr(in.ItMw),
			Pue:              flexPtr(in.Pue),
			Grid:             in.Grid,
			OwnershipStatus:  in.OwnershipStatus,
			DevelopmentPhase: in.DevelopmentPhase,
			Confidence:       in.Confidence,
			DatacenterTier:   in.DatacenterTier,
			EnergizationDate: in.EnergizationDate,
			FidoodleFactor:   1.0,
		}
		if in.FidoodleFactor != nil {
			building.FidoodleFactor = in.FidoodleFactor.Float64()
		}
		if building.Grid == "" {
			building.Grid = site.Grid
		}
		if err := tx.Create(&building).Error; err != nil {
			return err
		}

		// Default current, uncontracted use period spanning the whole
		// building (nil allocation).
		seed := models.UsePeriod{
			BuildingID: building.BuildingID,
			UseType:    "uncontracted",
			IsCurrent:  true,
		}
		return tx.Create(&seed).Error
	})
	if err != nil {
		return nil, err
	}

	return &building, nil
}

// DeleteBuilding removes a building and all of its use periods. This is an
// administrative operation; the last-period guard does not apply because the
// whole asset goes with them.
func DeleteBuilding(db *gorm.DB, buildingID uint64) error {
	err := db.Transaction(func(tx *gorm.DB) error {
		var building models.Building
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&building, buildingID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return &types.NotFoundError{Resource: "building", ID: buildingID}
			}
			return err
		}

		if err := tx.Where("building_id = ?", buildingID).
			Delete(&models.UsePeriod{}).Error; err != nil {
			return err
		}
		return tx.Delete(&building).Error
	})
	if err != nil {
		return err
	}

	notifyValuationChanged(buildingID)
	return nil
}

// GetBuilding loads one building with its use periods.
func GetBuilding(db *gorm.DB, buildingID uint64) (*models.Building, error) {
	var building models.Building
	if err := db.Preload("UsePeriods").Preload("Site").
		First(&building, buildingID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, &types.NotFoundError{Resource: "building", ID: buildingID}
		}
		return nil, err
	}
	return &building, nil
}

// ListBuildings returns every building with its use periods.
func ListBuildings(db *gorm.DB) ([]models.Building, error) {
	var buildings []models.Building
	if err := db.Preload("UsePeriods").Order("building_id").Find(&buildings).Error; err != nil {
		return nil, err
	}
	return buildings, nil
}
