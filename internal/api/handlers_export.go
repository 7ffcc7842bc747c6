package api

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/tally/internal/models"
	"github.com/terraincognita07/tally/internal/services"
)

var exportCSVHeaders = []string{"date", "habit", "units_completed", "target", "unit", "is_complete"}

func (handler *Handler) exportRange(c *fiber.Ctx) (*time.Time, *time.Time, error) {
	var fromStart *time.Time
	var toEnd *time.Time

	if raw := c.Query("from"); raw != "" {
		parsed, err := parseDayParam(raw, handler.location)
		if err != nil {
			return nil, nil, err
		}
		start, _ := services.DayRange(parsed, handler.location)
		fromStart = &start
	}
	if raw := c.Query("to"); raw != "" {
		parsed, err := parseDayParam(raw, handler.location)
		if err != nil {
			return nil, nil, err
		}
		_, end := services.DayRange(parsed, handler.location)
		toEnd = &end
	}
	if fromStart != nil && toEnd != nil && !fromStart.Before(*toEnd) {
		return nil, nil, fmt.Errorf("empty export range")
	}

	return fromStart, toEnd, nil
}

func (handler *Handler) fetchExportData(userID uint, fromStart *time.Time, toEnd *time.Time) ([]models.HabitLog, []models.Habit, error) {
	logs, err := handler.repositories.HabitLogs.ListByUserRange(userID, fromStart, toEnd)
	if err != nil {
		return nil, nil, err
	}

	habits, err := handler.repositories.Habits.ListByUser(userID)
	if err != nil {
		return nil, nil, err
	}

	return logs, habits, nil
}

func (handler *Handler) ExportCSV(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	fromStart, toEnd, err := handler.exportRange(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid export range")
	}

	logs, habits, err := handler.fetchExportData(user.ID, fromStart, toEnd)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to fetch logs")
	}
	habitByID := make(map[uint]models.Habit, len(habits))
	for _, habit := range habits {
		habitByID[habit.ID] = habit
	}
	now := time.Now().In(handler.location)

	var output bytes.Buffer
	writer := csv.NewWriter(&output)
	if err := writer.Write(exportCSVHeaders); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to build export")
	}

	for _, entry := range logs {
		habit := habitByID[entry.HabitID]
		if err := writer.Write([]string{
			services.DateAtLocation(entry.Date, handler.location).Format("2006-01-02"),
			habit.Name,
			strconv.FormatFloat(entry.UnitsCompleted, 'f', -1, 64),
			strconv.FormatFloat(habit.UnitValue, 'f', -1, 64),
			habit.Unit,
			csvYesNo(entry.IsComplete),
		}); err != nil {
			return apiError(c, fiber.StatusInternalServerError, "failed to build export")
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to build export")
	}

	setExportAttachmentHeaders(c, "text/csv", buildExportFilename(now, "csv"))
	return c.Send(output.Bytes())
}

func (handler *Handler) ExportJSON(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	fromStart, toEnd, err := handler.exportRange(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid export range")
	}

	logs, habits, err := handler.fetchExportData(user.ID, fromStart, toEnd)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to fetch logs")
	}
	now := time.Now().In(handler.location)

	payload := fiber.Map{
		"exported_at": now.Format(time.RFC3339),
		"habits":      habits,
		"logs":        logs,
	}

	serialized, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to build export")
	}

	setExportAttachmentHeaders(c, fiber.MIMEApplicationJSON, buildExportFilename(now, "json"))
	return c.Send(serialized)
}

func csvYesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}

func buildExportFilename(now time.Time, extension string) string {
	return fmt.Sprintf("tally_export_%s.%s", now.Format("2006-01-02"), extension)
}

func setExportAttachmentHeaders(c *fiber.Ctx, contentType string, filename string) {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
}
