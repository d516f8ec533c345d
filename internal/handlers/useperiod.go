package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gridbase/siteval/internal/services"
	"github.com/gridbase/siteval/internal/types"
	"github.com/gridbase/siteval/internal/utils"
	"gorm.io/gorm"
)

// UsePeriodHandler manages a building's use periods
type UsePeriodHandler struct {
	DB *gorm.DB
}

// CreateUsePeriods handles POST /api/buildings/:building/use-periods
// @Summary Create use periods
// @Description Create one or more use periods for a building. isSplit=true creates a concurrent current allocation validated against remaining capacity; isSplit=false creates a future transition record.
// @Tags UsePeriods
// @Accept json
// @Produce json
// @Param building path int true "Building ID"
// @Param body body services.UsePeriodInput true "Use period(s) to create; a single object or an array"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /buildings/{building}/use-periods [post]
func (h *UsePeriodHandler) CreateUsePeriods(c *fiber.Ctx) error {
	buildingID, err := parseID(c, "building")
	if err != nil {
		return serviceErrorResponse(c, err, "createUsePeriod")
	}

	var body types.FlexList[services.UsePeriodInput]
	if err := c.BodyParser(&body); err != nil {
		return utils.ValidationErrorResponse(c, "Invalid input")
	}
	inputs := body.Slice()
	if len(inputs) == 0 {
		return utils.ValidationErrorResponse(c, "Invalid input")
	}

	created := make([]interface{}, 0, len(inputs))
	for _, in := range inputs {
		period, err := services.CreateUsePeriod(h.DB, buildingID, in)
		if err != nil {
			return serviceErrorResponse(c, err, "createUsePeriod")
		}
		created = append(created, period)
	}

	return utils.MutationSuccessResponse(c, created)
}

// DeleteUsePeriod handles DELETE /api/use-periods/:id
// @Summary Delete a use period
// @Description Delete a use period. A building's sole remaining use period cannot be deleted.
// @Tags UsePeriods
// @Accept json
// @Produce json
// @Param id path int true "Use period ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /use-periods/{id} [delete]
func (h *UsePeriodHandler) DeleteUsePeriod(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return serviceErrorResponse(c, err, "deleteUsePeriod")
	}

	if err := services.DeleteUsePeriod(h.DB, id); err != nil {
		return serviceErrorResponse(c, err, "deleteUsePeriod")
	}

	return utils.MutationSuccessResponse(c, fiber.Map{"deleted": id})
}
