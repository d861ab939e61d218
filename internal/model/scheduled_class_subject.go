package model

import (
	"time"

	"github.com/google/uuid"
)

// ScheduledClassSubject binds a class-subject (subject + teacher pairing from
// the external catalog) into one timetable cell. A cell holds at most one.
type ScheduledClassSubject struct {
	ID               uuid.UUID `json:"id"`
	TimetableEntryID uuid.UUID `json:"timetable_entry_id"`
	ClassSubjectID   uuid.UUID `json:"class_subject_id"`
	Notes            *string   `json:"notes,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

// TeacherClash describes the existing assignment that blocks scheduling a
// teacher into a cell: which class and subject already claim the teacher at
// that day and slot.
type TeacherClash struct {
	SchoolClassID uuid.UUID `json:"school_class_id"`
	ClassName     string    `json:"class_name"`
	SubjectName   string    `json:"subject_name"`
}
