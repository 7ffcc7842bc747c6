package services

import (
	"time"

	"github.com/terraincognita07/tally/internal/models"
)

// DueClassification partitions a habit's historical due dates by outcome.
// Completed and Skipped carry the due days themselves; Failed carries the log
// rows, since a failure is defined by what was recorded on the day.
type DueClassification struct {
	Completed []time.Time
	Failed    []models.HabitLog
	Skipped   []time.Time
}

// ClassifyDueDates assigns each due date to exactly one bucket:
//
//   - skipped: no log, or a log with zero recorded units
//   - failed: a past log with partial progress that never reached the target
//   - completed: a log marked complete
//
// The current day is never classified, regardless of its log state. Logs with
// no matching due date (ad hoc entries) are ignored here; aggregation still
// counts them.
func ClassifyDueDates(dueDates []time.Time, logs []models.HabitLog, today time.Time, location *time.Location) DueClassification {
	classification := DueClassification{
		Completed: make([]time.Time, 0, len(dueDates)),
		Failed:    make([]models.HabitLog, 0),
		Skipped:   make([]time.Time, 0),
	}

	logByDay := make(map[string]models.HabitLog, len(logs))
	for _, entry := range logs {
		logByDay[DayKey(DateAtLocation(entry.Date, location))] = entry
	}

	todayKey := DayKey(DateAtLocation(today, location))
	for _, dueDate := range dueDates {
		key := DayKey(dueDate)
		if key == todayKey {
			continue
		}

		entry, logged := logByDay[key]
		switch {
		case !logged || entry.UnitsCompleted == 0:
			classification.Skipped = append(classification.Skipped, dueDate)
		case entry.IsComplete:
			classification.Completed = append(classification.Completed, dueDate)
		case key < todayKey:
			classification.Failed = append(classification.Failed, entry)
		}
	}

	return classification
}
