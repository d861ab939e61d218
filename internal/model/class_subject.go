package model

import "github.com/google/uuid"

// ClassSubject is the resolved shape of a class-subject catalog row:
// a (subject, teacher, class) tuple owned by the catalog, not by this core.
// Display names come along so conflict errors and views can name things.
type ClassSubject struct {
	ID            uuid.UUID `json:"id"`
	SchoolClassID uuid.UUID `json:"school_class_id"`
	SubjectID     uuid.UUID `json:"subject_id"`
	TeacherID     uuid.UUID `json:"teacher_id"`
	SubjectName   string    `json:"subject_name"`
	TeacherName   string    `json:"teacher_name"`
	ClassName     string    `json:"class_name"`
}
