package model

import "github.com/google/uuid"

// ScheduleCell is one cell of a class schedule view: the entry, its slot,
// and the assignment sitting in it (nil for an empty cell).
type ScheduleCell struct {
	Entry      TimetableEntry       `json:"entry"`
	Slot       TimeSlot             `json:"slot"`
	Assignment *ScheduledAssignment `json:"assignment,omitempty"`
}

// ScheduledAssignment is a ScheduledClassSubject enriched with catalog names
// for display.
type ScheduledAssignment struct {
	ScheduledClassSubject
	SubjectName string    `json:"subject_name"`
	TeacherID   uuid.UUID `json:"teacher_id"`
	TeacherName string    `json:"teacher_name"`
}

// ClassScheduleView is the per-class projection: one timetable revision with
// its cells ordered by (day_of_week, slot order).
type ClassScheduleView struct {
	Timetable ClassTimetable `json:"timetable"`
	Cells     []ScheduleCell `json:"cells"`
}

// TeacherScheduleRow is one row of a teacher's agenda, flattened across every
// active timetable of an academic year.
type TeacherScheduleRow struct {
	ScheduledClassSubjectID uuid.UUID `json:"scheduled_class_subject_id"`
	DayOfWeek               int       `json:"day_of_week"`
	SlotName                string    `json:"slot_name"`
	StartTime               string    `json:"start_time"`
	EndTime                 string    `json:"end_time"`
	SlotOrder               int       `json:"slot_order"`
	SubjectName             string    `json:"subject_name"`
	SchoolClassID           uuid.UUID `json:"school_class_id"`
	ClassName               string    `json:"class_name"`
	Notes                   *string   `json:"notes,omitempty"`
}
