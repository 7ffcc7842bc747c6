package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", handler.Register)
	auth.Post("/login", handler.Login)
	auth.Post("/logout", handler.AuthRequired, handler.Logout)
	auth.Delete("/account", handler.AuthRequired, handler.DeleteAccount)

	habits := api.Group("/habits", handler.AuthRequired)
	habits.Get("", handler.ListHabits)
	habits.Post("", handler.CreateHabit)
	habits.Get("/:id", handler.GetHabit)
	habits.Put("/:id", handler.UpdateHabit)
	habits.Delete("/:id", handler.DeleteHabit)
	habits.Get("/:id/logs", handler.ListHabitLogs)
	habits.Post("/:id/logs", handler.CreateHabitLog)
	habits.Get("/:id/stats", handler.GetSingleHabitStats)

	logs := api.Group("/logs", handler.AuthRequired)
	logs.Patch("/:id", handler.UpdateHabitLog)

	stats := api.Group("/stats", handler.AuthRequired)
	stats.Get("", handler.GetHabitStats)

	export := api.Group("/export", handler.AuthRequired)
	export.Get("/csv", handler.ExportCSV)
	export.Get("/json", handler.ExportJSON)

	api.Get("/units", handler.AuthRequired, handler.GetUnits)
}
