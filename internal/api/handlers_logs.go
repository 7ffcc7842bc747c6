package api

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/tally/internal/services"
)

type logPayload struct {
	Date           string  `json:"date"`
	UnitsCompleted float64 `json:"units_completed"`
}

type logUpdatePayload struct {
	UnitsCompleted *float64 `json:"units_completed"`
	TargetDate     string   `json:"target_date"`
}

func (handler *Handler) ListHabitLogs(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	habitID, err := parseIDParam(c.Params("id"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid habit id")
	}

	logs, err := handler.logService.ListLogs(user.ID, habitID)
	if err != nil {
		if errors.Is(err, services.ErrHabitNotFound) {
			return apiError(c, fiber.StatusNotFound, "habit not found")
		}
		return apiError(c, fiber.StatusInternalServerError, "failed to list logs")
	}
	return c.JSON(logs)
}

func (handler *Handler) CreateHabitLog(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	habitID, err := parseIDParam(c.Params("id"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid habit id")
	}

	payload := logPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	day, err := parseDayParam(strings.TrimSpace(payload.Date), handler.location)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	}

	entry, err := handler.logService.CreateLog(user.ID, habitID, services.LogInput{
		Date:           day,
		UnitsCompleted: payload.UnitsCompleted,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrHabitNotFound):
			return apiError(c, fiber.StatusNotFound, "habit not found")
		case errors.Is(err, services.ErrDuplicateLog):
			return apiError(c, fiber.StatusConflict, "already logged for this day")
		case errors.Is(err, services.ErrNegativeUnits):
			return apiError(c, fiber.StatusBadRequest, "units completed must not be negative")
		case errors.Is(err, services.ErrLogBeforeStart):
			return apiError(c, fiber.StatusBadRequest, "log date precedes habit start date")
		default:
			return apiError(c, fiber.StatusInternalServerError, "failed to create log")
		}
	}
	return c.Status(fiber.StatusCreated).JSON(entry)
}

func (handler *Handler) UpdateHabitLog(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	logID, err := parseIDParam(c.Params("id"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid log id")
	}

	payload := logUpdatePayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	input := services.LogUpdateInput{UnitsCompleted: payload.UnitsCompleted}
	if raw := strings.TrimSpace(payload.TargetDate); raw != "" {
		target, err := parseDayParam(raw, handler.location)
		if err != nil {
			return apiError(c, fiber.StatusBadRequest, "invalid target date")
		}
		input.TargetDate = &target
	}

	entry, err := handler.logService.UpdateLog(user.ID, logID, input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrLogNotFound):
			return apiError(c, fiber.StatusNotFound, "log not found")
		case errors.Is(err, services.ErrHabitNotFound):
			return apiError(c, fiber.StatusNotFound, "habit not found")
		case errors.Is(err, services.ErrDateMismatch):
			return apiError(c, fiber.StatusConflict, "log date mismatch")
		case errors.Is(err, services.ErrNegativeUnits):
			return apiError(c, fiber.StatusBadRequest, "units completed must not be negative")
		default:
			return apiError(c, fiber.StatusInternalServerError, "failed to update log")
		}
	}
	return c.JSON(entry)
}
