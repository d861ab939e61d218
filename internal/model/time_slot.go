package model

import (
	"time"

	"github.com/google/uuid"
)

// TimeSlot is one named period in a school's daily grid (a lesson or a break).
// Slots are shared by every class of the school and ordered by (Order, StartTime).
type TimeSlot struct {
	ID        uuid.UUID `json:"id"`
	SchoolID  uuid.UUID `json:"school_id"`
	Name      string    `json:"name"`
	StartTime string    `json:"start_time"` // "HH:MM"
	EndTime   string    `json:"end_time"`   // "HH:MM"
	Order     int       `json:"order"`
	IsBreak   bool      `json:"is_break"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
