package models

import "time"

// HabitLog is one recorded progress entry for a habit on one calendar day.
// The (habit_id, date) pair is unique: progress for an already-logged day is
// recorded by updating the existing row, never by inserting a second one.
type HabitLog struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	HabitID        uint      `gorm:"not null;uniqueIndex:uidx_habit_date" json:"habit_id"`
	UserID         uint      `gorm:"not null;index" json:"user_id"`
	Date           time.Time `gorm:"type:date;not null;uniqueIndex:uidx_habit_date" json:"date"`
	UnitsCompleted float64   `gorm:"not null;default:0" json:"units_completed"`
	IsComplete     bool      `gorm:"not null;default:false" json:"is_complete"`
	ClientRef      string    `gorm:"not null;default:''" json:"client_ref"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
