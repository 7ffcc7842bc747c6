package models

import "time"

const (
	RepeatDaily    = "daily"
	RepeatMonthly  = "monthly"
	RepeatInterval = "interval"
)

// Habit is a recurring activity with a per-occurrence target. Exactly one of
// DailyRepeat, MonthlyRepeat, IntervalRepeat is active, selected by RepeatType.
type Habit struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	UserID         uint      `gorm:"not null;index" json:"user_id"`
	Name           string    `gorm:"not null" json:"name"`
	Unit           string    `gorm:"not null;default:''" json:"unit"`
	UnitValue      float64   `gorm:"not null;default:1" json:"unit_value"`
	RepeatType     string    `gorm:"not null" json:"repeat_type"`
	DailyRepeat    []string  `gorm:"serializer:json" json:"daily_repeat"`
	MonthlyRepeat  []int     `gorm:"serializer:json" json:"monthly_repeat"`
	IntervalRepeat int       `gorm:"not null;default:0" json:"interval_repeat"`
	StartDate      time.Time `gorm:"type:date;not null" json:"start_date"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func IsValidRepeatType(value string) bool {
	switch value {
	case RepeatDaily, RepeatMonthly, RepeatInterval:
		return true
	default:
		return false
	}
}
