package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"testing"

	"github.com/terraincognita07/tally/internal/models"
)

func TestHabitTrackingFlowSmoke(t *testing.T) {
	t.Parallel()

	app := newTestApp(t)
	token := registerTestUser(t, app, "smoke@example.com")

	habitID := createTestHabit(t, app, token, weekdayHabitPayload())

	// Log progress for two days; the target of 30 marks one complete and one
	// partial.
	logRequest := jsonRequest(t, http.MethodPost, habitLogsPath(habitID), map[string]any{
		"date":            "2026-03-09",
		"units_completed": 30,
	}, token)
	status, body := performRequest(t, app, logRequest)
	if status != http.StatusCreated {
		t.Fatalf("create log expected status 201, got %d: %s", status, body)
	}

	firstLog := models.HabitLog{}
	decodeJSONBody(t, body, &firstLog)
	if !firstLog.IsComplete {
		t.Fatalf("expected log at target to be complete: %s", body)
	}
	if firstLog.ClientRef == "" {
		t.Fatalf("expected log to carry a client ref: %s", body)
	}

	partialRequest := jsonRequest(t, http.MethodPost, habitLogsPath(habitID), map[string]any{
		"date":            "2026-03-10",
		"units_completed": 15,
	}, token)
	status, body = performRequest(t, app, partialRequest)
	if status != http.StatusCreated {
		t.Fatalf("create partial log expected status 201, got %d: %s", status, body)
	}
	partialLog := models.HabitLog{}
	decodeJSONBody(t, body, &partialLog)
	if partialLog.IsComplete {
		t.Fatalf("expected partial log to stay incomplete: %s", body)
	}

	// Second log for the same day must conflict.
	duplicateRequest := jsonRequest(t, http.MethodPost, habitLogsPath(habitID), map[string]any{
		"date":            "2026-03-09",
		"units_completed": 5,
	}, token)
	status, body = performRequest(t, app, duplicateRequest)
	if status != http.StatusConflict {
		t.Fatalf("duplicate log expected status 409, got %d: %s", status, body)
	}

	// Topping up the partial day flips its completion flag.
	patchRequest := jsonRequest(t, http.MethodPatch, "/api/logs/"+strconv.FormatUint(uint64(partialLog.ID), 10), map[string]any{
		"units_completed": 35,
		"target_date":     "2026-03-10",
	}, token)
	status, body = performRequest(t, app, patchRequest)
	if status != http.StatusOK {
		t.Fatalf("update log expected status 200, got %d: %s", status, body)
	}
	updatedLog := models.HabitLog{}
	decodeJSONBody(t, body, &updatedLog)
	if !updatedLog.IsComplete || updatedLog.UnitsCompleted != 35 {
		t.Fatalf("expected updated log complete with 35 units: %s", body)
	}

	listRequest := jsonRequest(t, http.MethodGet, habitLogsPath(habitID), nil, token)
	status, body = performRequest(t, app, listRequest)
	if status != http.StatusOK {
		t.Fatalf("list logs expected status 200, got %d: %s", status, body)
	}
	logs := []models.HabitLog{}
	decodeJSONBody(t, body, &logs)
	if len(logs) != 2 {
		t.Fatalf("expected 2 logs, got %d", len(logs))
	}

	statsRequest := jsonRequest(t, http.MethodGet, fmt.Sprintf("/api/habits/%d/stats", habitID), nil, token)
	status, body = performRequest(t, app, statsRequest)
	if status != http.StatusOK {
		t.Fatalf("habit stats expected status 200, got %d: %s", status, body)
	}
	report := struct {
		HabitID uint    `json:"habit_id"`
		Total   float64 `json:"total"`
	}{}
	decodeJSONBody(t, body, &report)
	if report.HabitID != habitID {
		t.Fatalf("stats report for wrong habit: %s", body)
	}
	if report.Total != 65 {
		t.Fatalf("expected total 65 units, got %v", report.Total)
	}

	allStatsRequest := jsonRequest(t, http.MethodGet, "/api/stats", nil, token)
	status, body = performRequest(t, app, allStatsRequest)
	if status != http.StatusOK {
		t.Fatalf("stats expected status 200, got %d: %s", status, body)
	}
	reports := []struct {
		HabitID uint `json:"habit_id"`
	}{}
	decodeJSONBody(t, body, &reports)
	if len(reports) != 1 || reports[0].HabitID != habitID {
		t.Fatalf("expected one report for the habit, got %s", body)
	}
}

func TestExportFlowSmoke(t *testing.T) {
	t.Parallel()

	app := newTestApp(t)
	token := registerTestUser(t, app, "export@example.com")
	habitID := createTestHabit(t, app, token, weekdayHabitPayload())

	logRequest := jsonRequest(t, http.MethodPost, habitLogsPath(habitID), map[string]any{
		"date":            "2026-03-09",
		"units_completed": 30,
	}, token)
	if status, body := performRequest(t, app, logRequest); status != http.StatusCreated {
		t.Fatalf("create log expected status 201, got %d: %s", status, body)
	}

	csvRequest := jsonRequest(t, http.MethodGet, "/api/export/csv?from=2026-03-01&to=2026-03-31", nil, token)
	response, err := app.Test(csvRequest, -1)
	if err != nil {
		t.Fatalf("export csv failed: %v", err)
	}
	defer response.Body.Close()
	if response.StatusCode != http.StatusOK {
		t.Fatalf("export csv expected status 200, got %d", response.StatusCode)
	}
	if contentType := response.Header.Get("Content-Type"); !strings.Contains(contentType, "text/csv") {
		t.Fatalf("expected csv content type, got %q", contentType)
	}
	if disposition := response.Header.Get("Content-Disposition"); !strings.Contains(disposition, "attachment") {
		t.Fatalf("expected attachment disposition, got %q", disposition)
	}

	csvBody := readAllBody(t, response.Body)
	if !strings.Contains(csvBody, "2026-03-09") || !strings.Contains(csvBody, "Deep work") {
		t.Fatalf("expected exported csv to include the log row, got: %s", csvBody)
	}
	if !strings.HasPrefix(csvBody, "date,habit,units_completed,target,unit,is_complete") {
		t.Fatalf("unexpected csv header: %s", csvBody)
	}

	jsonExportRequest := jsonRequest(t, http.MethodGet, "/api/export/json", nil, token)
	status, body := performRequest(t, app, jsonExportRequest)
	if status != http.StatusOK {
		t.Fatalf("export json expected status 200, got %d: %s", status, body)
	}
	exported := struct {
		ExportedAt string            `json:"exported_at"`
		Habits     []models.Habit    `json:"habits"`
		Logs       []models.HabitLog `json:"logs"`
	}{}
	decodeJSONBody(t, body, &exported)
	if exported.ExportedAt == "" || len(exported.Habits) != 1 || len(exported.Logs) != 1 {
		t.Fatalf("unexpected json export: %s", body)
	}

	// An inverted range is rejected before any data access.
	invertedRequest := jsonRequest(t, http.MethodGet, "/api/export/csv?from=2026-03-31&to=2026-03-01", nil, token)
	if status, body := performRequest(t, app, invertedRequest); status != http.StatusBadRequest {
		t.Fatalf("inverted range expected status 400, got %d: %s", status, body)
	}
}

func TestHabitCRUDFlow(t *testing.T) {
	t.Parallel()

	app := newTestApp(t)
	token := registerTestUser(t, app, "crud@example.com")
	habitID := createTestHabit(t, app, token, weekdayHabitPayload())

	updatePayload := weekdayHabitPayload()
	updatePayload["name"] = "Focused reading"
	updatePayload["repeat_type"] = "interval"
	updatePayload["interval_repeat"] = 2
	delete(updatePayload, "daily_repeat")

	updateRequest := jsonRequest(t, http.MethodPut, "/api/habits/"+strconv.FormatUint(uint64(habitID), 10), updatePayload, token)
	status, body := performRequest(t, app, updateRequest)
	if status != http.StatusOK {
		t.Fatalf("update habit expected status 200, got %d: %s", status, body)
	}
	updated := models.Habit{}
	decodeJSONBody(t, body, &updated)
	if updated.Name != "Focused reading" || updated.RepeatType != models.RepeatInterval {
		t.Fatalf("unexpected updated habit: %s", body)
	}
	if len(updated.DailyRepeat) != 0 {
		t.Fatalf("expected daily variant cleared after switching to interval: %s", body)
	}

	invalidPayload := weekdayHabitPayload()
	invalidPayload["unit_value"] = 0
	invalidRequest := jsonRequest(t, http.MethodPost, "/api/habits", invalidPayload, token)
	if status, body := performRequest(t, app, invalidRequest); status != http.StatusBadRequest {
		t.Fatalf("invalid habit expected status 400, got %d: %s", status, body)
	}

	deleteRequest := jsonRequest(t, http.MethodDelete, "/api/habits/"+strconv.FormatUint(uint64(habitID), 10), nil, token)
	if status, body := performRequest(t, app, deleteRequest); status != http.StatusNoContent {
		t.Fatalf("delete habit expected status 204, got %d: %s", status, body)
	}

	getRequest := jsonRequest(t, http.MethodGet, "/api/habits/"+strconv.FormatUint(uint64(habitID), 10), nil, token)
	if status, body := performRequest(t, app, getRequest); status != http.StatusNotFound {
		t.Fatalf("deleted habit expected status 404, got %d: %s", status, body)
	}
}

func habitLogsPath(habitID uint) string {
	return fmt.Sprintf("/api/habits/%d/logs", habitID)
}
