package handlers

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gridbase/siteval/internal/types"
	"github.com/gridbase/siteval/internal/utils"
)

// parseID extracts a numeric path parameter.
func parseID(c *fiber.Ctx, name string) (uint64, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil {
		return 0, &types.ValidationError{Message: "invalid " + name}
	}
	return id, nil
}

// serviceErrorResponse maps service-layer errors onto the standard response
// shapes. Validation and not-found errors pass through untouched; anything
// else is a 500.
func serviceErrorResponse(c *fiber.Ctx, err error, errorType string) error {
	var validationErr *types.ValidationError
	if errors.As(err, &validationErr) {
		return utils.ValidationErrorResponse(c, validationErr.Message)
	}

	var notFoundErr *types.NotFoundError
	if errors.As(err, &notFoundErr) {
		return utils.NotFoundResponse(c, notFoundErr.Error())
	}

	var lastPeriodErr *types.LastPeriodError
	if errors.As(err, &lastPeriodErr) {
		return utils.LastPeriodErrorResponse(c, lastPeriodErr.Error())
	}

	if strings.Contains(err.Error(), "E_VERSION") {
		return utils.VersionErrorResponse(c)
	}

	return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, errorType)
}
