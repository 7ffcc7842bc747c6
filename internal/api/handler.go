package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/tally/internal/db"
	"github.com/terraincognita07/tally/internal/models"
	"github.com/terraincognita07/tally/internal/services"
	"gorm.io/gorm"
)

const (
	authCookieName = "tally_auth"
	contextUserKey = "current_user"

	defaultAuthTokenTTL  = 7 * 24 * time.Hour
	rememberAuthTokenTTL = 30 * 24 * time.Hour
)

type Handler struct {
	db           *gorm.DB
	repositories *db.Repositories
	authService  *services.AuthService
	habitService *services.HabitService
	logService   *services.LogService
	statsService *services.StatsService
	secretKey    []byte
	location     *time.Location
	cookieSecure bool
}

func NewHandler(database *gorm.DB, secretKey string, location *time.Location, cookieSecure bool) *Handler {
	if location == nil {
		location = time.UTC
	}

	repositories := db.NewRepositories(database)
	return &Handler{
		db:           database,
		repositories: repositories,
		authService:  services.NewAuthService(repositories.Users),
		habitService: services.NewHabitService(repositories.Habits, location),
		logService:   services.NewLogService(repositories.Habits, repositories.HabitLogs, location),
		statsService: services.NewStatsService(repositories.Habits, repositories.HabitLogs, location),
		secretKey:    []byte(secretKey),
		location:     location,
		cookieSecure: cookieSecure,
	}
}

func (handler *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func currentUser(c *fiber.Ctx) (*models.User, bool) {
	user, ok := c.Locals(contextUserKey).(*models.User)
	return user, ok
}
