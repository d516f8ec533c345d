package integration_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/gridbase/siteval/internal/config"
	"github.com/gridbase/siteval/internal/database"
	"github.com/gridbase/siteval/internal/models"
	"github.com/gridbase/siteval/internal/services"
	"github.com/gridbase/siteval/internal/types"
	"github.com/gridbase/siteval/tests/helpers"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"
)

// TestWithMariaDB tests the service with a real MariaDB container
func TestWithMariaDB(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()

	// Start MariaDB container
	mariadbContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        os.Getenv("DB_IMAGE"),
			ExposedPorts: []string{"3306/tcp"},
			Env: map[string]string{
				"MYSQL_ROOT_PASSWORD": "rootpass",
				"MYSQL_DATABASE":      "testdb",
				"MYSQL_USER":          "testuser",
				"MYSQL_PASSWORD":      "testpass",
			},
			WaitingFor: wait.ForLog("ready for connections").WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("Failed to start MariaDB container: %v", err)
	}
	defer func() {
		if err := mariadbContainer.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate MariaDB container: %v", err)
		}
	}()

	// Get container host and port
	host, err := mariadbContainer.Host(ctx)
	if err != nil {
		t.Fatalf("Failed to get container host: %v", err)
	}

	port, err := mariadbContainer.MappedPort(ctx, "3306")
	if err != nil {
		t.Fatalf("Failed to get container port: %v", err)
	}

	// Create config
	cfg := testIntegrationConfig()
	cfg.DBType = "mysql"
	cfg.DBHost = host
	cfg.DBPort = port.Port()

	// Wait for database to be ready
	time.Sleep(5 * time.Second)

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		t.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	// Run migrations
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	// Run tests
	t.Run("ValuationRoundTrip", func(t *testing.T) {
		testValuationRoundTrip(t, db, cfg)
	})

	t.Run("VersionControl", func(t *testing.T) {
		testVersionControl(t, db, cfg)
	})

	t.Run("UsePeriodLifecycle", func(t *testing.T) {
		testUsePeriodLifecycle(t, db)
	})
}

// TestWithPostgreSQL tests the service with a real PostgreSQL container
func TestWithPostgreSQL(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()

	// Start PostgreSQL container
	postgresContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        os.Getenv("POSTGRES_IMAGE"),
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_PASSWORD": "testpass",
				"POSTGRES_USER":     "testuser",
				"POSTGRES_DB":       "testdb",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("Failed to start PostgreSQL container: %v", err)
	}
	defer func() {
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate container: %v", err)
		}
	}()

	// Get container host and port
	host, err := postgresContainer.Host(ctx)
	if err != nil {
		t.Fatalf("Failed to get container host: %v", err)
	}

	port, err := postgresContainer.MappedPort(ctx, "5432")
	if err != nil {
		t.Fatalf("Failed to get container port: %v", err)
	}

	// Create config
	cfg := testIntegrationConfig()
	cfg.DBType = "postgres"
	cfg.DBHost = host
	cfg.DBPort = port.Port()

	// Wait for database to be ready
	time.Sleep(2 * time.Second)

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		t.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	// Run migrations
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	// Run tests
	t.Run("ValuationRoundTrip", func(t *testing.T) {
		testValuationRoundTrip(t, db, cfg)
	})

	t.Run("VersionControl", func(t *testing.T) {
		testVersionControl(t, db, cfg)
	})

	t.Run("UsePeriodLifecycle", func(t *testing.T) {
		testUsePeriodLifecycle(t, db)
	})
}

func testIntegrationConfig() *config.Config {
	return &config.Config{
		DBDatabase:        "testdb",
		DBUser:            "testuser",
		DBPassword:        "testpass",
		DBConnectionLimit: 5,

		HpcCapRate:         0.075,
		HpcExitCapRate:     0.08,
		TerminalGrowthRate: 0.025,
		RenewalProbability: 0.75,
		DiscountRate:       0.10,
		DefaultLeaseYears:  10,
	}
}

// testValuationRoundTrip tests writing lease terms and reading back the
// composed valuation
func testValuationRoundTrip(t *testing.T, db *gorm.DB, cfg *config.Config) {
	campusID := helpers.CreateTestCampus(t, db, "int-campus-roundtrip")
	siteID := helpers.CreateTestSite(t, db, campusID, "int-site-roundtrip", "PJM")
	buildingID := helpers.CreateTestBuilding(t, db, siteID, "int-dc-roundtrip", 60)

	leaseValueM := types.FlexFloat64(100)
	leaseYears := types.FlexFloat64(10)
	noiPct := types.FlexFloat64(85)
	view, err := services.UpdateValuationDetails(db, cfg, buildingID, services.ValuationUpdate{
		Lease: map[string]*types.FlexFloat64{
			"leaseValueM": &leaseValueM,
			"leaseYears":  &leaseYears,
			"noiPct":      &noiPct,
		},
	})
	if err != nil {
		t.Fatalf("Failed to update valuation details: %v", err)
	}

	results := view.Valuation.Results
	if results.AnnualRevenueM != 10 {
		t.Errorf("Expected annualRevenueM 10, got %v", results.AnnualRevenueM)
	}
	if results.NoiAnnualM != 8.5 {
		t.Errorf("Expected noiAnnualM 8.5, got %v", results.NoiAnnualM)
	}
	if results.BaseValueM < 113.3 || results.BaseValueM > 113.4 {
		t.Errorf("Expected baseValueM ~113.33, got %v", results.BaseValueM)
	}

	// Reading back composes the same numbers
	reread, err := services.GetValuation(db, cfg, buildingID)
	if err != nil {
		t.Fatalf("Failed to get valuation: %v", err)
	}
	if reread.Valuation.Results != results {
		t.Errorf("Read-back results differ from saved results:\nsaved: %+v\nread:  %+v",
			results, reread.Valuation.Results)
	}
	if reread.Building.RowVersion != 1 {
		t.Errorf("Expected rowVersion 1, got %d", reread.Building.RowVersion)
	}
}

// testVersionControl tests the optional optimistic version check
func testVersionControl(t *testing.T, db *gorm.DB, cfg *config.Config) {
	campusID := helpers.CreateTestCampus(t, db, "int-campus-version")
	siteID := helpers.CreateTestSite(t, db, campusID, "int-site-version", "PJM")
	buildingID := helpers.CreateTestBuilding(t, db, siteID, "int-dc-version", 60)

	capRate := types.FlexFloat64(0.09)
	wrongVersion := types.FlexUint64(7)
	_, err := services.UpdateValuationDetails(db, cfg, buildingID, services.ValuationUpdate{
		Version:   &wrongVersion,
		Valuation: map[string]*types.FlexFloat64{"capRate": &capRate},
	})
	if err == nil {
		t.Fatal("Expected version conflict error")
	}
	if err.Error() != "E_VERSION" {
		t.Errorf("Expected E_VERSION error, got: %v", err)
	}

	// Correct version succeeds and bumps the stamp
	rightVersion := types.FlexUint64(0)
	view, err := services.UpdateValuationDetails(db, cfg, buildingID, services.ValuationUpdate{
		Version:   &rightVersion,
		Valuation: map[string]*types.FlexFloat64{"capRate": &capRate},
	})
	if err != nil {
		t.Fatalf("Failed to update with correct version: %v", err)
	}
	if view.Building.RowVersion != 1 {
		t.Errorf("Expected rowVersion 1, got %d", view.Building.RowVersion)
	}
}

// testUsePeriodLifecycle tests split creation, capacity enforcement, and the
// last-period guard
func testUsePeriodLifecycle(t *testing.T, db *gorm.DB) {
	campusID := helpers.CreateTestCampus(t, db, "int-campus-periods")
	siteID := helpers.CreateTestSite(t, db, campusID, "int-site-periods", "PJM")
	buildingID := helpers.CreateTestBuilding(t, db, siteID, "int-dc-periods", 60)

	// Pin the seeded open-ended period so a split has headroom
	var seed models.UsePeriod
	if err := db.Where("building_id = ?", buildingID).First(&seed).Error; err != nil {
		t.Fatalf("Failed to load seeded period: %v", err)
	}
	pinned := 20.0
	seed.MwAllocation = &pinned
	if err := db.Save(&seed).Error; err != nil {
		t.Fatalf("Failed to pin seeded period: %v", err)
	}

	within := types.FlexFloat64(30)
	split, err := services.CreateUsePeriod(db, buildingID, services.UsePeriodInput{
		IsSplit:      true,
		UseType:      "colo",
		MwAllocation: &within,
	})
	if err != nil {
		t.Fatalf("Failed to create split: %v", err)
	}

	// 10 MW remain; asking for 30 must fail
	over := types.FlexFloat64(30)
	_, err = services.CreateUsePeriod(db, buildingID, services.UsePeriodInput{
		IsSplit:      true,
		UseType:      "hpc",
		MwAllocation: &over,
	})
	if err == nil {
		t.Fatal("Expected capacity validation error")
	}

	// Delete down to one period, then verify the guard
	if err := services.DeleteUsePeriod(db, split.UsePeriodID); err != nil {
		t.Fatalf("Failed to delete split: %v", err)
	}
	err = services.DeleteUsePeriod(db, seed.UsePeriodID)
	if err == nil {
		t.Fatal("Expected last-period error")
	}

	var count int64
	db.Model(&models.UsePeriod{}).Where("building_id = ?", buildingID).Count(&count)
	if count != 1 {
		t.Errorf("Expected the sole period to survive, got %d", count)
	}
}

// TestHealthCheck tests the health check functionality
func TestHealthCheck(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()

	// Start MariaDB container
	mariadbContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        os.Getenv("DB_IMAGE"),
			ExposedPorts: []string{"3306/tcp"},
			Env: map[string]string{
				"MYSQL_ROOT_PASSWORD": "rootpass",
				"MYSQL_DATABASE":      "testdb",
				"MYSQL_USER":          "testuser",
				"MYSQL_PASSWORD":      "testpass",
			},
			WaitingFor: wait.ForLog("ready for connections").WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("Failed to start MariaDB container: %v", err)
	}
	defer func() {
		if err := mariadbContainer.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate MariaDB container: %v", err)
		}
	}()

	host, err := mariadbContainer.Host(ctx)
	if err != nil {
		t.Fatalf("Failed to get container host: %v", err)
	}

	port, err := mariadbContainer.MappedPort(ctx, "3306")
	if err != nil {
		t.Fatalf("Failed to get container port: %v", err)
	}

	cfg := testIntegrationConfig()
	cfg.DBType = "mysql"
	cfg.DBHost = host
	cfg.DBPort = port.Port()
	cfg.AuthzURL = "http://localhost:9999" // Non-existent service

	time.Sleep(5 * time.Second)

	db, err := database.Connect(cfg)
	if err != nil {
		t.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	// Run health check
	result := services.HealthCheck(cfg, db)

	// Database should be healthy
	if result.Database != "ok" {
		t.Errorf("Expected database to be ok, got: %s", result.Database)
	}

	// Authorizer should be unreachable
	if result.Authorizer != "unreachable" {
		t.Errorf("Expected authorizer to be unreachable, got: %s", result.Authorizer)
	}

	// Overall status should be unhealthy
	if result.Status != "unhealthy" {
		t.Errorf("Expected status to be unhealthy, got: %s", result.Status)
	}
}
