package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/skooli/timetable-backend/internal/model"
)

// ScheduleViewStore is the read surface of the view projector.
type ScheduleViewStore interface {
	ActiveTimetable(ctx context.Context, schoolClassID, academicYearID uuid.UUID) (*model.ClassTimetable, error)
	TimetableByID(ctx context.Context, id uuid.UUID) (*model.ClassTimetable, error)
	CellsForTimetable(ctx context.Context, classTimetableID uuid.UUID) ([]model.ScheduleCell, error)
	TeacherAgenda(ctx context.Context, teacherID, academicYearID uuid.UUID) ([]model.TeacherScheduleRow, error)
}

// ScheduleViewRepository implements the read projections with single joined
// queries; no write ever happens here.
type ScheduleViewRepository struct {
	db DBTX
}

var _ ScheduleViewStore = (*ScheduleViewRepository)(nil)

// NewScheduleViewRepository creates a new ScheduleViewRepository.
func NewScheduleViewRepository(db DBTX) *ScheduleViewRepository {
	return &ScheduleViewRepository{db: db}
}

// ActiveTimetable returns the single active revision of a class+year.
func (r *ScheduleViewRepository) ActiveTimetable(ctx context.Context, schoolClassID, academicYearID uuid.UUID) (*model.ClassTimetable, error) {
	t := &model.ClassTimetable{}
	err := r.db.QueryRow(ctx,
		`SELECT id, school_class_id, academic_year_id, is_active, created_at
		 FROM class_timetables
		 WHERE school_class_id = $1 AND academic_year_id = $2 AND is_active`,
		schoolClassID, academicYearID,
	).Scan(&t.ID, &t.SchoolClassID, &t.AcademicYearID, &t.IsActive, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// TimetableByID returns any revision, draft or active, by id.
func (r *ScheduleViewRepository) TimetableByID(ctx context.Context, id uuid.UUID) (*model.ClassTimetable, error) {
	return (&ClassTimetableRepository{db: r.db}).GetByID(ctx, id)
}

// CellsForTimetable returns every cell of a revision with its slot and any
// assignment, ordered by (day_of_week, slot order, start_time).
func (r *ScheduleViewRepository) CellsForTimetable(ctx context.Context, classTimetableID uuid.UUID) ([]model.ScheduleCell, error) {
	rows, err := r.db.Query(ctx,
		`SELECT e.id, e.class_timetable_id, e.day_of_week, e.time_slot_id, e.created_at,
		        s.id, s.school_id, s.name, to_char(s.start_time, 'HH24:MI'), to_char(s.end_time, 'HH24:MI'),
		        s.sort_order, s.is_break, s.created_at, s.updated_at,
		        a.id, a.class_subject_id, a.notes, a.created_at,
		        sub.name, cs.teacher_id, t.name
		 FROM timetable_entries e
		 JOIN time_slots s ON s.id = e.time_slot_id
		 LEFT JOIN scheduled_class_subjects a ON a.timetable_entry_id = e.id
		 LEFT JOIN class_subjects cs ON cs.id = a.class_subject_id
		 LEFT JOIN subjects sub      ON sub.id = cs.subject_id
		 LEFT JOIN teachers t        ON t.id = cs.teacher_id
		 WHERE e.class_timetable_id = $1
		 ORDER BY e.day_of_week, s.sort_order, s.start_time`, classTimetableID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cells []model.ScheduleCell
	for rows.Next() {
		var (
			c           model.ScheduleCell
			aID         *uuid.UUID
			aSubjectID  *uuid.UUID
			aNotes      *string
			aCreatedAt  *time.Time
			subjectName *string
			teacherID   *uuid.UUID
			teacherName *string
		)
		err := rows.Scan(
			&c.Entry.ID, &c.Entry.ClassTimetableID, &c.Entry.DayOfWeek, &c.Entry.TimeSlotID, &c.Entry.CreatedAt,
			&c.Slot.ID, &c.Slot.SchoolID, &c.Slot.Name, &c.Slot.StartTime, &c.Slot.EndTime,
			&c.Slot.Order, &c.Slot.IsBreak, &c.Slot.CreatedAt, &c.Slot.UpdatedAt,
			&aID, &aSubjectID, &aNotes, &aCreatedAt,
			&subjectName, &teacherID, &teacherName,
		)
		if err != nil {
			return nil, err
		}
		if aID != nil {
			c.Assignment = &model.ScheduledAssignment{
				ScheduledClassSubject: model.ScheduledClassSubject{
					ID:               *aID,
					TimetableEntryID: c.Entry.ID,
					ClassSubjectID:   *aSubjectID,
					Notes:            aNotes,
					CreatedAt:        *aCreatedAt,
				},
				SubjectName: deref(subjectName),
				TeacherID:   derefUUID(teacherID),
				TeacherName: deref(teacherName),
			}
		}
		cells = append(cells, c)
	}
	return cells, rows.Err()
}

// TeacherAgenda returns a teacher's flattened schedule across every ACTIVE
// timetable of the year, ordered by (day_of_week, slot order).
func (r *ScheduleViewRepository) TeacherAgenda(ctx context.Context, teacherID, academicYearID uuid.UUID) ([]model.TeacherScheduleRow, error) {
	rows, err := r.db.Query(ctx,
		`SELECT a.id, e.day_of_week, s.name, to_char(s.start_time, 'HH24:MI'), to_char(s.end_time, 'HH24:MI'),
		        s.sort_order, sub.name, ct.school_class_id, sc.name, a.notes
		 FROM scheduled_class_subjects a
		 JOIN timetable_entries e ON e.id = a.timetable_entry_id
		 JOIN class_timetables ct ON ct.id = e.class_timetable_id
		 JOIN time_slots s        ON s.id = e.time_slot_id
		 JOIN class_subjects cs   ON cs.id = a.class_subject_id
		 JOIN subjects sub        ON sub.id = cs.subject_id
		 JOIN school_classes sc   ON sc.id = ct.school_class_id
		 WHERE cs.teacher_id = $1 AND ct.academic_year_id = $2 AND ct.is_active
		 ORDER BY e.day_of_week, s.sort_order, s.start_time`, teacherID, academicYearID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var agenda []model.TeacherScheduleRow
	for rows.Next() {
		var row model.TeacherScheduleRow
		err := rows.Scan(&row.ScheduledClassSubjectID, &row.DayOfWeek, &row.SlotName,
			&row.StartTime, &row.EndTime, &row.SlotOrder, &row.SubjectName,
			&row.SchoolClassID, &row.ClassName, &row.Notes)
		if err != nil {
			return nil, err
		}
		agenda = append(agenda, row)
	}
	return agenda, rows.Err()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefUUID(id *uuid.UUID) uuid.UUID {
	if id == nil {
		return uuid.Nil
	}
	return *id
}
