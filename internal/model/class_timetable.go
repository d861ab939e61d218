package model

import (
	"time"

	"github.com/google/uuid"
)

// ClassTimetable is one revision of a class's schedule for an academic year.
// At most one revision per (school_class_id, academic_year_id) is active;
// the rest are drafts.
type ClassTimetable struct {
	ID             uuid.UUID `json:"id"`
	SchoolClassID  uuid.UUID `json:"school_class_id"`
	AcademicYearID uuid.UUID `json:"academic_year_id"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
}
