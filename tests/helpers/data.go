package helpers

import (
	"testing"

	"github.com/gridbase/siteval/internal/models"
	"gorm.io/gorm"
)

// CreateTestCampus creates a campus and returns its ID.
func CreateTestCampus(t *testing.T, db *gorm.DB, name string) uint64 {
	t.Helper()
	campus := models.Campus{
		CampusName: name,
		Market:     "Northern Virginia",
	}
	if err := db.Create(&campus).Error; err != nil {
		t.Fatalf("Failed to create campus: %v", err)
	}
	return campus.CampusID
}

// CreateTestSite creates a site under a campus and returns its ID.
func CreateTestSite(t *testing.T, db *gorm.DB, campusID uint64, name, grid string) uint64 {
	t.Helper()
	site := models.Site{
		CampusID: campusID,
		SiteName: name,
		Grid:     grid,
	}
	if err := db.Create(&site).Error; err != nil {
		t.Fatalf("Failed to create site: %v", err)
	}
	return site.SiteID
}

// CreateTestBuilding creates a building with the given IT capacity and a
// default current use period, mirroring what the service does on create.
func CreateTestBuilding(t *testing.T, db *gorm.DB, siteID uint64, name string, itMw float64) uint64 {
	t.Helper()
	building := models.Building{
		SiteID:           siteID,
		BuildingName:     name,
		ItMw:             &itMw,
		Grid:             "PJM",
		OwnershipStatus:  "owned",
		DevelopmentPhase: "operational",
		DatacenterTier:   "tier3",
		FidoodleFactor:   1.0,
	}
	if err := db.Create(&building).Error; err != nil {
		t.Fatalf("Failed to create building: %v", err)
	}

	seed := models.UsePeriod{
		BuildingID: building.BuildingID,
		UseType:    "uncontracted",
		IsCurrent:  true,
	}
	if err := db.Create(&seed).Error; err != nil {
		t.Fatalf("Failed to create default use period: %v", err)
	}
	return building.BuildingID
}

// SetTestLease puts lease terms on a building's first current use period.
func SetTestLease(t *testing.T, db *gorm.DB, buildingID uint64, leaseValueM, leaseYears, noiPct float64) {
	t.Helper()
	var period models.UsePeriod
	if err := db.Where("building_id = ? AND is_current = ?", buildingID, true).
		Order("use_period_id").First(&period).Error; err != nil {
		t.Fatalf("Failed to find current use period: %v", err)
	}
	period.LeaseValueM = &leaseValueM
	period.LeaseYears = &leaseYears
	period.NoiPct = &noiPct
	if err := db.Save(&period).Error; err != nil {
		t.Fatalf("Failed to set lease terms: %v", err)
	}
}

// CreateTestUsePeriod adds a current use period with an explicit allocation.
func CreateTestUsePeriod(t *testing.T, db *gorm.DB, buildingID uint64, useType string, mwAllocation float64) uint64 {
	t.Helper()
	period := models.UsePeriod{
		BuildingID:   buildingID,
		UseType:      useType,
		IsCurrent:    true,
		MwAllocation: &mwAllocation,
	}
	if err := db.Create(&period).Error; err != nil {
		t.Fatalf("Failed to create use period: %v", err)
	}
	return period.UsePeriodID
}
