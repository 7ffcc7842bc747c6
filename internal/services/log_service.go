package services

import (
	"errors"
	"time"

	"github.com/terraincognita07/tally/internal/models"
	"github.com/terraincognita07/tally/internal/security"
)

var (
	ErrDuplicateLog    = errors.New("log already exists for this day")
	ErrLogNotFound     = errors.New("log not found")
	ErrDateMismatch    = errors.New("log date mismatch")
	ErrNegativeUnits   = errors.New("units completed must not be negative")
	ErrLogBeforeStart  = errors.New("log date precedes habit start date")
	ErrClientRefFailed = errors.New("generate client reference failed")
)

const clientRefAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
const clientRefLength = 12

type LogHabitReader interface {
	FindByUserAndID(userID uint, habitID uint) (models.Habit, bool, error)
}

type LogRepository interface {
	ListByHabit(habitID uint) ([]models.HabitLog, error)
	FindByHabitAndDayRange(habitID uint, dayStart time.Time, dayEnd time.Time) (models.HabitLog, bool, error)
	FindByUserAndID(userID uint, logID uint) (models.HabitLog, bool, error)
	Create(entry *models.HabitLog) error
	Save(entry *models.HabitLog) error
}

type LogService struct {
	habits   LogHabitReader
	logs     LogRepository
	location *time.Location
}

func NewLogService(habits LogHabitReader, logs LogRepository, location *time.Location) *LogService {
	return &LogService{
		habits:   habits,
		logs:     logs,
		location: location,
	}
}

// CompletionReached derives the completion flag from raw progress. The flag
// is recomputed on every write so stored logs can never disagree with their
// own units.
func CompletionReached(unitsCompleted float64, unitValue float64) bool {
	return unitValue > 0 && unitsCompleted >= unitValue
}

type LogInput struct {
	Date           time.Time
	UnitsCompleted float64
}

type LogUpdateInput struct {
	UnitsCompleted *float64
	// TargetDate, when set, must match the stored day. It exists to catch a
	// client updating yesterday's log with today's form state.
	TargetDate *time.Time
}

// ListLogs returns a habit's logs in ascending date order.
func (service *LogService) ListLogs(userID uint, habitID uint) ([]models.HabitLog, error) {
	habit, found, err := service.habits.FindByUserAndID(userID, habitID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrHabitNotFound
	}
	return service.logs.ListByHabit(habit.ID)
}

// CreateLog records first progress for a (habit, day) pair. A second create
// for the same day fails with ErrDuplicateLog; the unique index on
// (habit_id, date) backs the check against concurrent creates.
func (service *LogService) CreateLog(userID uint, habitID uint, input LogInput) (models.HabitLog, error) {
	if input.UnitsCompleted < 0 {
		return models.HabitLog{}, ErrNegativeUnits
	}

	habit, found, err := service.habits.FindByUserAndID(userID, habitID)
	if err != nil {
		return models.HabitLog{}, err
	}
	if !found {
		return models.HabitLog{}, ErrHabitNotFound
	}

	dayStart, dayEnd := DayRange(input.Date, service.location)
	if dayStart.Before(DateAtLocation(habit.StartDate, service.location)) {
		return models.HabitLog{}, ErrLogBeforeStart
	}

	_, exists, err := service.logs.FindByHabitAndDayRange(habit.ID, dayStart, dayEnd)
	if err != nil {
		return models.HabitLog{}, err
	}
	if exists {
		return models.HabitLog{}, ErrDuplicateLog
	}

	clientRef, err := security.RandomString(clientRefLength, clientRefAlphabet)
	if err != nil {
		return models.HabitLog{}, ErrClientRefFailed
	}

	entry := models.HabitLog{
		HabitID:        habit.ID,
		UserID:         userID,
		Date:           dayStart,
		UnitsCompleted: input.UnitsCompleted,
		IsComplete:     CompletionReached(input.UnitsCompleted, habit.UnitValue),
		ClientRef:      clientRef,
	}
	if err := service.logs.Create(&entry); err != nil {
		// The unique index won the race with another create for this day.
		if _, raced, checkErr := service.logs.FindByHabitAndDayRange(habit.ID, dayStart, dayEnd); checkErr == nil && raced {
			return models.HabitLog{}, ErrDuplicateLog
		}
		return models.HabitLog{}, err
	}
	return entry, nil
}

// UpdateLog records further progress on an already-logged day.
func (service *LogService) UpdateLog(userID uint, logID uint, input LogUpdateInput) (models.HabitLog, error) {
	entry, found, err := service.logs.FindByUserAndID(userID, logID)
	if err != nil {
		return models.HabitLog{}, err
	}
	if !found {
		return models.HabitLog{}, ErrLogNotFound
	}

	if input.TargetDate != nil {
		target := DateAtLocation(*input.TargetDate, service.location)
		stored := DateAtLocation(entry.Date, service.location)
		if !SameDay(target, stored) {
			return models.HabitLog{}, ErrDateMismatch
		}
	}

	habit, habitFound, err := service.habits.FindByUserAndID(userID, entry.HabitID)
	if err != nil {
		return models.HabitLog{}, err
	}
	if !habitFound {
		return models.HabitLog{}, ErrHabitNotFound
	}

	if input.UnitsCompleted != nil {
		if *input.UnitsCompleted < 0 {
			return models.HabitLog{}, ErrNegativeUnits
		}
		entry.UnitsCompleted = *input.UnitsCompleted
	}
	entry.IsComplete = CompletionReached(entry.UnitsCompleted, habit.UnitValue)

	if err := service.logs.Save(&entry); err != nil {
		return models.HabitLog{}, err
	}
	return entry, nil
}
