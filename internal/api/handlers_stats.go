package api

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/tally/internal/services"
)

func (handler *Handler) GetHabitStats(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	now := time.Now().In(handler.location)
	reports, err := handler.statsService.FetchHabitStats(user.ID, now)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to fetch stats")
	}
	return c.JSON(reports)
}

func (handler *Handler) GetSingleHabitStats(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	habitID, err := parseIDParam(c.Params("id"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid habit id")
	}

	now := time.Now().In(handler.location)
	report, err := handler.statsService.FetchSingleHabitStats(user.ID, habitID, now)
	if err != nil {
		if errors.Is(err, services.ErrHabitNotFound) {
			return apiError(c, fiber.StatusNotFound, "habit not found")
		}
		return apiError(c, fiber.StatusInternalServerError, "failed to fetch stats")
	}
	return c.JSON(report)
}

func (handler *Handler) GetUnits(c *fiber.Ctx) error {
	return c.JSON(services.UnitCatalog())
}
