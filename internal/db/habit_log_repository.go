package db

import (
	"time"

	"github.com/terraincognita07/tally/internal/models"
	"gorm.io/gorm"
)

type HabitLogRepository struct {
	database *gorm.DB
}

func NewHabitLogRepository(database *gorm.DB) *HabitLogRepository {
	return &HabitLogRepository{database: database}
}

func (repo *HabitLogRepository) ListByHabit(habitID uint) ([]models.HabitLog, error) {
	logs := make([]models.HabitLog, 0)
	if err := repo.database.Where("habit_id = ?", habitID).Order("date ASC, id ASC").Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

func (repo *HabitLogRepository) ListByUser(userID uint) ([]models.HabitLog, error) {
	logs := make([]models.HabitLog, 0)
	if err := repo.database.Where("user_id = ?", userID).Order("date ASC, id ASC").Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

func (repo *HabitLogRepository) ListByUserRange(userID uint, fromStart *time.Time, toEnd *time.Time) ([]models.HabitLog, error) {
	query := repo.database.Model(&models.HabitLog{}).Where("user_id = ?", userID)
	if fromStart != nil {
		query = query.Where("date >= ?", *fromStart)
	}
	if toEnd != nil {
		query = query.Where("date < ?", *toEnd)
	}

	logs := make([]models.HabitLog, 0)
	if err := query.Order("date ASC, id ASC").Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

func (repo *HabitLogRepository) FindByHabitAndDayRange(habitID uint, dayStart time.Time, dayEnd time.Time) (models.HabitLog, bool, error) {
	entry := models.HabitLog{}
	result := repo.database.
		Where("habit_id = ? AND date >= ? AND date < ?", habitID, dayStart, dayEnd).
		Order("date DESC, id DESC").
		Limit(1).
		Find(&entry)
	if result.Error != nil {
		return models.HabitLog{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.HabitLog{}, false, nil
	}
	return entry, true, nil
}

func (repo *HabitLogRepository) FindByUserAndID(userID uint, logID uint) (models.HabitLog, bool, error) {
	entry := models.HabitLog{}
	result := repo.database.
		Where("user_id = ? AND id = ?", userID, logID).
		Limit(1).
		Find(&entry)
	if result.Error != nil {
		return models.HabitLog{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.HabitLog{}, false, nil
	}
	return entry, true, nil
}

func (repo *HabitLogRepository) Create(entry *models.HabitLog) error {
	return repo.database.Create(entry).Error
}

func (repo *HabitLogRepository) Save(entry *models.HabitLog) error {
	return repo.database.Save(entry).Error
}
