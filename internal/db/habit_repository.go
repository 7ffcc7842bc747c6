package db

import (
	"github.com/terraincognita07/tally/internal/models"
	"gorm.io/gorm"
)

type HabitRepository struct {
	database *gorm.DB
}

func NewHabitRepository(database *gorm.DB) *HabitRepository {
	return &HabitRepository{database: database}
}

func (repo *HabitRepository) ListByUser(userID uint) ([]models.Habit, error) {
	habits := make([]models.Habit, 0)
	if err := repo.database.Where("user_id = ?", userID).Order("created_at ASC, id ASC").Find(&habits).Error; err != nil {
		return nil, err
	}
	return habits, nil
}

func (repo *HabitRepository) FindByUserAndID(userID uint, habitID uint) (models.Habit, bool, error) {
	habit := models.Habit{}
	result := repo.database.
		Where("user_id = ? AND id = ?", userID, habitID).
		Limit(1).
		Find(&habit)
	if result.Error != nil {
		return models.Habit{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.Habit{}, false, nil
	}
	return habit, true, nil
}

func (repo *HabitRepository) Create(habit *models.Habit) error {
	return repo.database.Create(habit).Error
}

func (repo *HabitRepository) Save(habit *models.Habit) error {
	return repo.database.Save(habit).Error
}

// DeleteWithLogs removes the habit and every log that references it.
func (repo *HabitRepository) DeleteWithLogs(userID uint, habitID uint) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("habit_id = ? AND user_id = ?", habitID, userID).Delete(&models.HabitLog{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ? AND user_id = ?", habitID, userID).Delete(&models.Habit{}).Error
	})
}
