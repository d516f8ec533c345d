package main

import (
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	swagger "github.com/gofiber/swagger"
	"github.com/gridbase/siteval/internal/config"
	"github.com/gridbase/siteval/internal/database"
	"github.com/gridbase/siteval/internal/handlers"
	"github.com/gridbase/siteval/internal/middleware"
	"github.com/gridbase/siteval/internal/types"

	_ "github.com/gridbase/siteval/docs/api" // Swagger docs
)

// @title Siteval API
// @version 1.0.0
// @description Data-center asset valuation and capacity-allocation service

// @contact.name API Support
// @contact.url https://github.com/gridbase/siteval

// @host localhost:3000
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name cookie_session

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())

	// Prometheus metrics
	prometheus := fiberprometheus.New("siteval")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API routes under /api
	api := app.Group("/api")

	// Version middleware
	api.Use(middleware.VersionMiddleware())

	// Create handlers
	buildingHandler := &handlers.BuildingHandler{DB: db}
	valuationHandler := &handlers.ValuationHandler{DB: db, Cfg: cfg}
	usePeriodHandler := &handlers.UsePeriodHandler{DB: db}

	// Building routes (public GET, user-authenticated mutations)
	api.Get("/buildings", buildingHandler.ListBuildings)
	api.Get("/buildings/:building", buildingHandler.GetBuilding)
	api.Post("/buildings", middleware.AuthUser(cfg), buildingHandler.CreateBuilding)
	api.Delete("/buildings/:building", middleware.AuthAdmin(cfg), buildingHandler.DeleteBuilding)

	// Valuation routes. Preview is a read in POST clothing: it computes
	// without persisting, so it stays public alongside the GET.
	api.Get("/buildings/:building/valuation", valuationHandler.GetValuation)
	api.Post("/buildings/:building/valuation/preview", valuationHandler.PreviewValuation)
	api.Patch("/buildings/:building/valuation", middleware.AuthUser(cfg), valuationHandler.UpdateValuation)

	// Use period routes
	api.Post("/buildings/:building/use-periods", middleware.AuthUser(cfg), usePeriodHandler.CreateUsePeriods)
	api.Delete("/use-periods/:id", middleware.AuthUser(cfg), usePeriodHandler.DeleteUsePeriod)

	// 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":    fiber.StatusNotFound,
			"message":   "[404] Resource Not Found",
			"ok":        false,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"url":       c.OriginalURL(),
		})
	})

	// Authorizer is initialized lazily on the first authenticated request
	log.Printf("Authorizer will be initialized on first authenticated request")

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("Gracefully shutting down...")
		_ = app.Shutdown()
	}()

	// Start server
	port := cfg.Port
	log.Printf("Starting server on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}

	log.Println("Server stopped")
}

// customErrorHandler handles errors globally
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := err.Error()
	errorType := "unknown"

	// Check if it's a Fiber error
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Check for an application error carrying its own status and type
	var customErr *types.CustomError
	if errors.As(err, &customErr) {
		code = customErr.Code
		message = customErr.Message
		errorType = customErr.Type
	}

	// Check for version errors
	versionError := false
	if code == fiber.StatusConflict || (len(message) >= 9 && message[:9] == "E_VERSION") {
		versionError = true
		errorType = "version"
		code = fiber.StatusConflict
	}

	return c.Status(code).JSON(fiber.Map{
		"status":       code,
		"message":      message,
		"ok":           false,
		"versionError": versionError,
		"timestamp":    time.Now().UTC().Format(time.RFC3339),
		"url":          c.OriginalURL(),
		"type":         errorType,
	})
}
