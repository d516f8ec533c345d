package handlers_test

import (
	"bytes"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gridbase/siteval/internal/handlers"
	"github.com/gridbase/siteval/internal/models"
	"github.com/gridbase/siteval/tests/helpers"
	"gorm.io/gorm"
)

// setupUsePeriodApp wires the use-period routes the way the server does
func setupUsePeriodApp(db *gorm.DB) *fiber.App {
	app := fiber.New()
	handler := &handlers.UsePeriodHandler{DB: db}
	app.Post("/api/buildings/:building/use-periods", handler.CreateUsePeriods)
	app.Delete("/api/use-periods/:id", handler.DeleteUsePeriod)
	return app
}

// TestCreateSplitWithinCapacity tests creating a concurrent allocation that
// fits inside the remaining capacity
func TestCreateSplitWithinCapacity(t *testing.T) {
	db := setupTestDB(t)
	campusID := helpers.CreateTestCampus(t, db, "testcampus")
	siteID := helpers.CreateTestSite(t, db, campusID, "testsite", "PJM")
	buildingID := helpers.CreateTestBuilding(t, db, siteID, "DC-1", 60)

	// Pin the default open-ended period down so there is headroom
	var seed models.UsePeriod
	if err := db.Where("building_id = ?", buildingID).First(&seed).Error; err != nil {
		t.Fatalf("Failed to load seeded period: %v", err)
	}
	pinned := 20.0
	seed.MwAllocation = &pinned
	if err := db.Save(&seed).Error; err != nil {
		t.Fatalf("Failed to pin seeded period: %v", err)
	}

	app := setupUsePeriodApp(db)

	body := []byte(`{"isSplit":true,"useType":"colo","tenant":"hyperscaler-a","mwAllocation":30}`)
	req := httptest.NewRequest("POST", "/api/buildings/1/use-periods", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, 200)

	var result map[string]interface{}
	helpers.ParseJSON(t, resp, &result)
	if result["ok"] != true {
		t.Error("Expected ok=true in response")
	}

	var count int64
	db.Model(&models.UsePeriod{}).Where("building_id = ?", buildingID).Count(&count)
	if count != 2 {
		t.Errorf("Expected 2 use periods, got %d", count)
	}
}

// TestCreateSplitExceedingCapacity tests the remaining-capacity guard
func TestCreateSplitExceedingCapacity(t *testing.T) {
	db := setupTestDB(t)
	campusID := helpers.CreateTestCampus(t, db, "testcampus")
	siteID := helpers.CreateTestSite(t, db, campusID, "testsite", "PJM")
	buildingID := helpers.CreateTestBuilding(t, db, siteID, "DC-1", 60)

	var seed models.UsePeriod
	if err := db.Where("building_id = ?", buildingID).First(&seed).Error; err != nil {
		t.Fatalf("Failed to load seeded period: %v", err)
	}
	pinned := 50.0
	seed.MwAllocation = &pinned
	if err := db.Save(&seed).Error; err != nil {
		t.Fatalf("Failed to pin seeded period: %v", err)
	}

	app := setupUsePeriodApp(db)

	// Only 10 MW remain; asking for 30 must fail and persist nothing
	body := []byte(`{"isSplit":true,"useType":"colo","mwAllocation":30}`)
	req := httptest.NewRequest("POST", "/api/buildings/1/use-periods", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, 400)

	var count int64
	db.Model(&models.UsePeriod{}).Where("building_id = ?", buildingID).Count(&count)
	if count != 1 {
		t.Errorf("Expected the rejected split to persist nothing, got %d periods", count)
	}
}

// TestCreateTransitionRequiresStartDate tests the transition validation
func TestCreateTransitionRequiresStartDate(t *testing.T) {
	db := setupTestDB(t)
	campusID := helpers.CreateTestCampus(t, db, "testcampus")
	siteID := helpers.CreateTestSite(t, db, campusID, "testsite", "PJM")
	buildingID := helpers.CreateTestBuilding(t, db, siteID, "DC-1", 60)

	// Pin the seeded period so remaining capacity is measurable below
	var seed models.UsePeriod
	if err := db.Where("building_id = ?", buildingID).First(&seed).Error; err != nil {
		t.Fatalf("Failed to load seeded period: %v", err)
	}
	pinned := 20.0
	seed.MwAllocation = &pinned
	if err := db.Save(&seed).Error; err != nil {
		t.Fatalf("Failed to pin seeded period: %v", err)
	}

	app := setupUsePeriodApp(db)

	body := []byte(`{"isSplit":false,"useType":"hyperscale"}`)
	req := httptest.NewRequest("POST", "/api/buildings/1/use-periods", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, 400)

	// With a start date the transition is accepted and stays non-current
	body = []byte(`{"isSplit":false,"useType":"hyperscale","startDate":"2027-01-01T00:00:00Z"}`)
	req = httptest.NewRequest("POST", "/api/buildings/1/use-periods", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, 200)

	var transition models.UsePeriod
	if err := db.Where("use_type = ?", "hyperscale").First(&transition).Error; err != nil {
		t.Fatalf("Failed to load transition period: %v", err)
	}
	if transition.IsCurrent {
		t.Error("Expected transition period to be non-current")
	}

	// The transition counts for nothing in the allocation: the full 40 MW
	// of headroom is still available to a split
	body = []byte(`{"isSplit":true,"useType":"colo","mwAllocation":40}`)
	req = httptest.NewRequest("POST", "/api/buildings/1/use-periods", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, 200)
}

// TestCreateUsePeriodsArrayBody tests that an array body creates each entry
func TestCreateUsePeriodsArrayBody(t *testing.T) {
	db := setupTestDB(t)
	campusID := helpers.CreateTestCampus(t, db, "testcampus")
	siteID := helpers.CreateTestSite(t, db, campusID, "testsite", "PJM")
	buildingID := helpers.CreateTestBuilding(t, db, siteID, "DC-1", 60)

	var seed models.UsePeriod
	if err := db.Where("building_id = ?", buildingID).First(&seed).Error; err != nil {
		t.Fatalf("Failed to load seeded period: %v", err)
	}
	pinned := 10.0
	seed.MwAllocation = &pinned
	if err := db.Save(&seed).Error; err != nil {
		t.Fatalf("Failed to pin seeded period: %v", err)
	}

	app := setupUsePeriodApp(db)

	body := []byte(`[{"isSplit":true,"useType":"colo","mwAllocation":20},{"isSplit":true,"useType":"hpc","mwAllocation":25}]`)
	req := httptest.NewRequest("POST", "/api/buildings/1/use-periods", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, 200)

	var count int64
	db.Model(&models.UsePeriod{}).Where("building_id = ?", buildingID).Count(&count)
	if count != 3 {
		t.Errorf("Expected 3 use periods, got %d", count)
	}
}

// TestDeleteUsePeriod tests deletion and the last-period guard
func TestDeleteUsePeriod(t *testing.T) {
	db := setupTestDB(t)
	campusID := helpers.CreateTestCampus(t, db, "testcampus")
	siteID := helpers.CreateTestSite(t, db, campusID, "testsite", "PJM")
	buildingID := helpers.CreateTestBuilding(t, db, siteID, "DC-1", 60)
	extraID := helpers.CreateTestUsePeriod(t, db, buildingID, "colo", 15)

	app := setupUsePeriodApp(db)

	// Two periods: deleting one succeeds
	req := httptest.NewRequest("DELETE", "/api/use-periods/2", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, 200)

	var gone models.UsePeriod
	if err := db.First(&gone, extraID).Error; err != gorm.ErrRecordNotFound {
		t.Errorf("Expected period %d to be deleted, got err=%v", extraID, err)
	}

	// One period left: deleting it is refused with a conflict
	req = httptest.NewRequest("DELETE", "/api/use-periods/1", nil)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, 409)

	var count int64
	db.Model(&models.UsePeriod{}).Where("building_id = ?", buildingID).Count(&count)
	if count != 1 {
		t.Errorf("Expected the sole period to survive, got %d periods", count)
	}
}

// TestDeleteUsePeriodNotFound tests 404 on unknown period
func TestDeleteUsePeriodNotFound(t *testing.T) {
	db := setupTestDB(t)
	app := setupUsePeriodApp(db)

	req := httptest.NewRequest("DELETE", "/api/use-periods/999", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, 404)
}
