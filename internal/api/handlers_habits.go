package api

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/tally/internal/services"
)

type habitPayload struct {
	Name           string   `json:"name"`
	Unit           string   `json:"unit"`
	UnitValue      float64  `json:"unit_value"`
	RepeatType     string   `json:"repeat_type"`
	DailyRepeat    []string `json:"daily_repeat"`
	MonthlyRepeat  []int    `json:"monthly_repeat"`
	IntervalRepeat int      `json:"interval_repeat"`
	StartDate      string   `json:"start_date"`
}

func (handler *Handler) parseHabitInput(c *fiber.Ctx) (services.HabitInput, error) {
	payload := habitPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return services.HabitInput{}, err
	}

	startDate := time.Now().In(handler.location)
	if raw := strings.TrimSpace(payload.StartDate); raw != "" {
		parsed, err := parseDayParam(raw, handler.location)
		if err != nil {
			return services.HabitInput{}, err
		}
		startDate = parsed
	}

	return services.HabitInput{
		Name:           payload.Name,
		Unit:           payload.Unit,
		UnitValue:      payload.UnitValue,
		RepeatType:     strings.ToLower(strings.TrimSpace(payload.RepeatType)),
		DailyRepeat:    payload.DailyRepeat,
		MonthlyRepeat:  payload.MonthlyRepeat,
		IntervalRepeat: payload.IntervalRepeat,
		StartDate:      startDate,
	}, nil
}

func habitInputErrorMessage(err error) (int, string, bool) {
	switch {
	case errors.Is(err, services.ErrHabitNameRequired):
		return fiber.StatusBadRequest, "habit name is required", true
	case errors.Is(err, services.ErrInvalidUnitValue):
		return fiber.StatusBadRequest, "unit value must be positive", true
	case errors.Is(err, services.ErrInvalidRepeatRule):
		return fiber.StatusBadRequest, "invalid repeat rule", true
	case errors.Is(err, services.ErrHabitNotFound):
		return fiber.StatusNotFound, "habit not found", true
	default:
		return 0, "", false
	}
}

func (handler *Handler) ListHabits(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	habits, err := handler.habitService.ListHabits(user.ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to list habits")
	}
	return c.JSON(habits)
}

func (handler *Handler) GetHabit(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	habitID, err := parseIDParam(c.Params("id"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid habit id")
	}

	habit, err := handler.habitService.FetchHabit(user.ID, habitID)
	if err != nil {
		if errors.Is(err, services.ErrHabitNotFound) {
			return apiError(c, fiber.StatusNotFound, "habit not found")
		}
		return apiError(c, fiber.StatusInternalServerError, "failed to load habit")
	}
	return c.JSON(habit)
}

func (handler *Handler) CreateHabit(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	input, err := handler.parseHabitInput(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	habit, err := handler.habitService.CreateHabit(user.ID, input)
	if err != nil {
		if status, message, known := habitInputErrorMessage(err); known {
			return apiError(c, status, message)
		}
		return apiError(c, fiber.StatusInternalServerError, "failed to create habit")
	}
	return c.Status(fiber.StatusCreated).JSON(habit)
}

func (handler *Handler) UpdateHabit(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	habitID, err := parseIDParam(c.Params("id"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid habit id")
	}

	input, err := handler.parseHabitInput(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	habit, err := handler.habitService.UpdateHabit(user.ID, habitID, input)
	if err != nil {
		if status, message, known := habitInputErrorMessage(err); known {
			return apiError(c, status, message)
		}
		return apiError(c, fiber.StatusInternalServerError, "failed to update habit")
	}
	return c.JSON(habit)
}

func (handler *Handler) DeleteHabit(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	habitID, err := parseIDParam(c.Params("id"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid habit id")
	}

	if err := handler.habitService.DeleteHabit(user.ID, habitID); err != nil {
		if errors.Is(err, services.ErrHabitNotFound) {
			return apiError(c, fiber.StatusNotFound, "habit not found")
		}
		return apiError(c, fiber.StatusInternalServerError, "failed to delete habit")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
