package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gridbase/siteval/internal/services"
	"github.com/gridbase/siteval/internal/utils"
	"gorm.io/gorm"
)

// BuildingHandler manages building records
type BuildingHandler struct {
	DB *gorm.DB
}

// ListBuildings handles GET /api/buildings
// @Summary List buildings
// @Description List all buildings with their use periods
// @Tags Buildings
// @Accept json
// @Produce json
// @Success 200 {array} models.Building
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /buildings [get]
func (h *BuildingHandler) ListBuildings(c *fiber.Ctx) error {
	buildings, err := services.ListBuildings(h.DB)
	if err != nil {
		return serviceErrorResponse(c, err, "listBuildings")
	}
	return c.Status(fiber.StatusOK).JSON(buildings)
}

// GetBuilding handles GET /api/buildings/:building
// @Summary Get a building
// @Description Get a building with its use periods
// @Tags Buildings
// @Accept json
// @Produce json
// @Param building path int true "Building ID"
// @Success 200 {object} models.Building
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /buildings/{building} [get]
func (h *BuildingHandler) GetBuilding(c *fiber.Ctx) error {
	buildingID, err := parseID(c, "building")
	if err != nil {
		return serviceErrorResponse(c, err, "getBuilding")
	}

	building, err := services.GetBuilding(h.DB, buildingID)
	if err != nil {
		return serviceErrorResponse(c, err, "getBuilding")
	}
	return c.Status(fiber.StatusOK).JSON(building)
}

// CreateBuilding handles POST /api/buildings
// @Summary Create a building
// @Description Create a building and seed its default current use period
// @Tags Buildings
// @Accept json
// @Produce json
// @Param body body services.BuildingInput true "Building to create"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /buildings [post]
func (h *BuildingHandler) CreateBuilding(c *fiber.Ctx) error {
	var in services.BuildingInput
	if err := c.BodyParser(&in); err != nil {
		return utils.ValidationErrorResponse(c, "Invalid input")
	}

	building, err := services.CreateBuilding(h.DB, in)
	if err != nil {
		return serviceErrorResponse(c, err, "createBuilding")
	}

	return utils.MutationSuccessResponse(c, building)
}

// DeleteBuilding handles DELETE /api/buildings/:building
// @Summary Delete a building
// @Description Delete a building and all of its use periods (admin only)
// @Tags Buildings
// @Accept json
// @Produce json
// @Param building path int true "Building ID"
// @Security CookieAuth
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /buildings/{building} [delete]
func (h *BuildingHandler) DeleteBuilding(c *fiber.Ctx) error {
	buildingID, err := parseID(c, "building")
	if err != nil {
		return serviceErrorResponse(c, err, "deleteBuilding")
	}

	if err := services.DeleteBuilding(h.DB, buildingID); err != nil {
		return serviceErrorResponse(c, err, "deleteBuilding")
	}
	return utils.MutationSuccessResponse(c, fiber.Map{"buildingId": buildingID})
}
