package services

import (
	"errors"
	"strings"
	"time"

	"github.com/terraincognita07/tally/internal/models"
)

var (
	ErrHabitNameRequired = errors.New("habit name is required")
	ErrInvalidUnitValue  = errors.New("unit value must be positive")
	ErrInvalidRepeatRule = errors.New("repeat rule does not match repeat type")
)

type HabitRepository interface {
	ListByUser(userID uint) ([]models.Habit, error)
	FindByUserAndID(userID uint, habitID uint) (models.Habit, bool, error)
	Create(habit *models.Habit) error
	Save(habit *models.Habit) error
	DeleteWithLogs(userID uint, habitID uint) error
}

type HabitService struct {
	habits   HabitRepository
	location *time.Location
}

func NewHabitService(habits HabitRepository, location *time.Location) *HabitService {
	return &HabitService{
		habits:   habits,
		location: location,
	}
}

type HabitInput struct {
	Name           string
	Unit           string
	UnitValue      float64
	RepeatType     string
	DailyRepeat    []string
	MonthlyRepeat  []int
	IntervalRepeat int
	StartDate      time.Time
}

var weekdayNames = map[string]struct{}{
	time.Sunday.String():    {},
	time.Monday.String():    {},
	time.Tuesday.String():   {},
	time.Wednesday.String(): {},
	time.Thursday.String():  {},
	time.Friday.String():    {},
	time.Saturday.String():  {},
}

// ValidateHabitInput checks the schedule invariant: the repeat variant named
// by RepeatType must be present and well-formed. Stored rows that slip past
// this (legacy data) still resolve to an empty due-date set rather than an
// error.
func ValidateHabitInput(input HabitInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return ErrHabitNameRequired
	}
	if input.UnitValue <= 0 {
		return ErrInvalidUnitValue
	}

	switch input.RepeatType {
	case models.RepeatDaily:
		if len(input.DailyRepeat) == 0 {
			return ErrInvalidRepeatRule
		}
		for _, weekday := range input.DailyRepeat {
			if _, known := weekdayNames[weekday]; !known {
				return ErrInvalidRepeatRule
			}
		}
	case models.RepeatMonthly:
		if len(input.MonthlyRepeat) == 0 {
			return ErrInvalidRepeatRule
		}
		for _, dayOfMonth := range input.MonthlyRepeat {
			if dayOfMonth < 1 || dayOfMonth > 31 {
				return ErrInvalidRepeatRule
			}
		}
	case models.RepeatInterval:
		if input.IntervalRepeat < 1 {
			return ErrInvalidRepeatRule
		}
	default:
		return ErrInvalidRepeatRule
	}

	return nil
}

// applyInput copies the validated input onto the habit, clearing the repeat
// variants the chosen type does not use so exactly one stays active.
func applyInput(habit *models.Habit, input HabitInput, location *time.Location) {
	habit.Name = strings.TrimSpace(input.Name)
	habit.Unit = strings.TrimSpace(input.Unit)
	habit.UnitValue = input.UnitValue
	habit.RepeatType = input.RepeatType
	habit.StartDate = DateAtLocation(input.StartDate, location)

	habit.DailyRepeat = nil
	habit.MonthlyRepeat = nil
	habit.IntervalRepeat = 0
	switch input.RepeatType {
	case models.RepeatDaily:
		habit.DailyRepeat = input.DailyRepeat
	case models.RepeatMonthly:
		habit.MonthlyRepeat = input.MonthlyRepeat
	case models.RepeatInterval:
		habit.IntervalRepeat = input.IntervalRepeat
	}
}

func (service *HabitService) ListHabits(userID uint) ([]models.Habit, error) {
	return service.habits.ListByUser(userID)
}

func (service *HabitService) FetchHabit(userID uint, habitID uint) (models.Habit, error) {
	habit, found, err := service.habits.FindByUserAndID(userID, habitID)
	if err != nil {
		return models.Habit{}, err
	}
	if !found {
		return models.Habit{}, ErrHabitNotFound
	}
	return habit, nil
}

func (service *HabitService) CreateHabit(userID uint, input HabitInput) (models.Habit, error) {
	if err := ValidateHabitInput(input); err != nil {
		return models.Habit{}, err
	}

	habit := models.Habit{UserID: userID}
	applyInput(&habit, input, service.location)
	if err := service.habits.Create(&habit); err != nil {
		return models.Habit{}, err
	}
	return habit, nil
}

func (service *HabitService) UpdateHabit(userID uint, habitID uint, input HabitInput) (models.Habit, error) {
	if err := ValidateHabitInput(input); err != nil {
		return models.Habit{}, err
	}

	habit, err := service.FetchHabit(userID, habitID)
	if err != nil {
		return models.Habit{}, err
	}

	applyInput(&habit, input, service.location)
	if err := service.habits.Save(&habit); err != nil {
		return models.Habit{}, err
	}
	return habit, nil
}

func (service *HabitService) DeleteHabit(userID uint, habitID uint) error {
	if _, err := service.FetchHabit(userID, habitID); err != nil {
		return err
	}
	return service.habits.DeleteWithLogs(userID, habitID)
}
