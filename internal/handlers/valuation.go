package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gridbase/siteval/internal/config"
	"github.com/gridbase/siteval/internal/services"
	"github.com/gridbase/siteval/internal/utils"
	"gorm.io/gorm"
)

// ValuationHandler serves the composed valuation views for buildings
type ValuationHandler struct {
	DB  *gorm.DB
	Cfg *config.Config
}

// GetValuation handles GET /api/buildings/:building/valuation
// @Summary Get building valuation
// @Description Get the composed valuation view for a building: factors, valuation breakdown, capacity allocation, use periods
// @Tags Valuation
// @Accept json
// @Produce json
// @Param building path int true "Building ID"
// @Success 200 {object} services.ComposedView
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /buildings/{building}/valuation [get]
func (h *ValuationHandler) GetValuation(c *fiber.Ctx) error {
	buildingID, err := parseID(c, "building")
	if err != nil {
		return serviceErrorResponse(c, err, "getValuation")
	}

	view, err := services.GetValuation(h.DB, h.Cfg, buildingID)
	if err != nil {
		return serviceErrorResponse(c, err, "getValuation")
	}

	return c.Status(fiber.StatusOK).JSON(view)
}

// PreviewValuation handles POST /api/buildings/:building/valuation/preview
// @Summary Preview building valuation
// @Description Compute the valuation view a building would have after the supplied partial update, without persisting. Runs the same calculation path as the authoritative update.
// @Tags Valuation
// @Accept json
// @Produce json
// @Param building path int true "Building ID"
// @Param body body services.ValuationUpdate true "Partial update to preview"
// @Success 200 {object} services.ComposedView
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /buildings/{building}/valuation/preview [post]
func (h *ValuationHandler) PreviewValuation(c *fiber.Ctx) error {
	buildingID, err := parseID(c, "building")
	if err != nil {
		return serviceErrorResponse(c, err, "previewValuation")
	}

	var upd services.ValuationUpdate
	if err := c.BodyParser(&upd); err != nil {
		return utils.ValidationErrorResponse(c, "Invalid input")
	}

	view, err := services.PreviewValuation(h.DB, h.Cfg, buildingID, upd)
	if err != nil {
		return serviceErrorResponse(c, err, "previewValuation")
	}

	return c.Status(fiber.StatusOK).JSON(view)
}

// UpdateValuation handles PATCH /api/buildings/:building/valuation
// @Summary Update building valuation details
// @Description Partially update a building's lease terms, valuation inputs, and factor overrides. Factor entries follow null-to-clear / value-to-set. Returns the updated composed view.
// @Tags Valuation
// @Accept json
// @Produce json
// @Param building path int true "Building ID"
// @Param body body services.ValuationUpdate true "Partial update"
// @Success 200 {object} services.ComposedView
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /buildings/{building}/valuation [patch]
func (h *ValuationHandler) UpdateValuation(c *fiber.Ctx) error {
	buildingID, err := parseID(c, "building")
	if err != nil {
		return serviceErrorResponse(c, err, "updateValuation")
	}

	var upd services.ValuationUpdate
	if err := c.BodyParser(&upd); err != nil {
		return utils.ValidationErrorResponse(c, "Invalid input")
	}

	view, err := services.UpdateValuationDetails(h.DB, h.Cfg, buildingID, upd)
	if err != nil {
		return serviceErrorResponse(c, err, "updateValuation")
	}

	return c.Status(fiber.StatusOK).JSON(view)
}
