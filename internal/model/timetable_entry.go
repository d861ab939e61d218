package model

import (
	"time"

	"github.com/google/uuid"
)

// TimetableEntry is one cell of a timetable: a time slot instantiated on a
// specific weekday. A cell may be empty or hold exactly one scheduled subject.
// (class_timetable_id, day_of_week, time_slot_id) is unique.
type TimetableEntry struct {
	ID               uuid.UUID `json:"id"`
	ClassTimetableID uuid.UUID `json:"class_timetable_id"`
	DayOfWeek        int       `json:"day_of_week"` // 0 = Sunday .. 6 = Saturday
	TimeSlotID       uuid.UUID `json:"time_slot_id"`
	CreatedAt        time.Time `json:"created_at"`
}
