package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/skooli/timetable-backend/internal/model"
)

// ScheduleStore is the persistence surface of the assignment engine and the
// bulk scheduler. Every read and write the engine performs goes through this
// interface so the conflict checks and the final insert can share one
// serializable transaction.
type ScheduleStore interface {
	// InTx runs fn against a transaction-bound store under serializable
	// isolation. fn returning an error rolls everything back.
	InTx(ctx context.Context, fn func(ScheduleStore) error) error

	EntryByID(ctx context.Context, id uuid.UUID) (*model.TimetableEntry, error)
	TimetableByID(ctx context.Context, id uuid.UUID) (*model.ClassTimetable, error)
	SlotByID(ctx context.Context, id uuid.UUID) (*model.TimeSlot, error)
	SlotsBySchool(ctx context.Context, schoolID uuid.UUID) ([]model.TimeSlot, error)
	ResolveClassSubject(ctx context.Context, id uuid.UUID) (*model.ClassSubject, error)

	// FindEntry returns the cell at (timetable, day, slot), or nil when the
	// cell does not exist yet.
	FindEntry(ctx context.Context, classTimetableID uuid.UUID, dayOfWeek int, timeSlotID uuid.UUID) (*model.TimetableEntry, error)
	CreateEntry(ctx context.Context, e *model.TimetableEntry) error

	// AssignmentForEntry returns the assignment occupying a cell, or nil for
	// an empty cell.
	AssignmentForEntry(ctx context.Context, entryID uuid.UUID) (*model.ScheduledClassSubject, error)
	// TeacherClashAt reports the assignment that already places the teacher
	// at (day, slot) in any other class's timetable of the year, or nil when
	// the teacher is free.
	TeacherClashAt(ctx context.Context, academicYearID, teacherID uuid.UUID, dayOfWeek int, timeSlotID, excludeClassID uuid.UUID) (*model.TeacherClash, error)
	CreateAssignment(ctx context.Context, a *model.ScheduledClassSubject) error
	DeleteAssignment(ctx context.Context, id uuid.UUID) error
}

// ScheduleRepository implements ScheduleStore on PostgreSQL.
type ScheduleRepository struct {
	pool      *pgxpool.Pool
	db        DBTX
	txTimeout time.Duration
}

var _ ScheduleStore = (*ScheduleRepository)(nil)

// NewScheduleRepository creates a new ScheduleRepository. txTimeout bounds
// each serializable transaction opened by InTx.
func NewScheduleRepository(pool *pgxpool.Pool, txTimeout time.Duration) *ScheduleRepository {
	return &ScheduleRepository{pool: pool, db: pool, txTimeout: txTimeout}
}

// InTx opens a serializable transaction and hands fn a store bound to it.
// Serialization failures (SQLSTATE 40001) bubble up to the caller untouched.
func (r *ScheduleRepository) InTx(ctx context.Context, fn func(ScheduleStore) error) error {
	txCtx, cancel := context.WithTimeout(ctx, r.txTimeout)
	defer cancel()

	tx, err := r.pool.BeginTx(txCtx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return err
	}
	defer tx.Rollback(txCtx) //nolint:errcheck // no-op after commit

	bound := &ScheduleRepository{pool: r.pool, db: tx, txTimeout: r.txTimeout}
	if err := fn(bound); err != nil {
		return err
	}
	return tx.Commit(txCtx)
}

// EntryByID retrieves a cell by its ID.
func (r *ScheduleRepository) EntryByID(ctx context.Context, id uuid.UUID) (*model.TimetableEntry, error) {
	return NewTimetableEntryRepository(r.db).GetByID(ctx, id)
}

// TimetableByID retrieves a timetable revision by its ID.
func (r *ScheduleRepository) TimetableByID(ctx context.Context, id uuid.UUID) (*model.ClassTimetable, error) {
	return (&ClassTimetableRepository{db: r.db}).GetByID(ctx, id)
}

// SlotByID retrieves a time slot by its ID.
func (r *ScheduleRepository) SlotByID(ctx context.Context, id uuid.UUID) (*model.TimeSlot, error) {
	return NewTimeSlotRepository(r.db).GetByID(ctx, id)
}

// SlotsBySchool retrieves a school's slots ordered by (sort_order, start_time).
func (r *ScheduleRepository) SlotsBySchool(ctx context.Context, schoolID uuid.UUID) ([]model.TimeSlot, error) {
	return NewTimeSlotRepository(r.db).ListBySchool(ctx, schoolID)
}

// ResolveClassSubject looks up a class-subject catalog row.
func (r *ScheduleRepository) ResolveClassSubject(ctx context.Context, id uuid.UUID) (*model.ClassSubject, error) {
	return NewCatalogRepository(r.db).ResolveClassSubject(ctx, id)
}

// FindEntry returns the cell at (timetable, day, slot), nil when absent.
func (r *ScheduleRepository) FindEntry(ctx context.Context, classTimetableID uuid.UUID, dayOfWeek int, timeSlotID uuid.UUID) (*model.TimetableEntry, error) {
	e := &model.TimetableEntry{}
	err := r.db.QueryRow(ctx,
		`SELECT id, class_timetable_id, day_of_week, time_slot_id, created_at
		 FROM timetable_entries
		 WHERE class_timetable_id = $1 AND day_of_week = $2 AND time_slot_id = $3`,
		classTimetableID, dayOfWeek, timeSlotID,
	).Scan(&e.ID, &e.ClassTimetableID, &e.DayOfWeek, &e.TimeSlotID, &e.CreatedAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

// CreateEntry inserts a new cell.
func (r *ScheduleRepository) CreateEntry(ctx context.Context, e *model.TimetableEntry) error {
	return NewTimetableEntryRepository(r.db).Create(ctx, e)
}

// AssignmentForEntry returns the assignment occupying a cell, nil when empty.
func (r *ScheduleRepository) AssignmentForEntry(ctx context.Context, entryID uuid.UUID) (*model.ScheduledClassSubject, error) {
	a := &model.ScheduledClassSubject{}
	err := r.db.QueryRow(ctx,
		`SELECT id, timetable_entry_id, class_subject_id, notes, created_at
		 FROM scheduled_class_subjects WHERE timetable_entry_id = $1`, entryID,
	).Scan(&a.ID, &a.TimetableEntryID, &a.ClassSubjectID, &a.Notes, &a.CreatedAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

// TeacherClashAt finds an assignment placing the teacher at the same
// (day, slot) in a different class within the same academic year. Drafts
// count too: a draft that goes active later must not carry latent clashes.
func (r *ScheduleRepository) TeacherClashAt(ctx context.Context, academicYearID, teacherID uuid.UUID, dayOfWeek int, timeSlotID, excludeClassID uuid.UUID) (*model.TeacherClash, error) {
	clash := &model.TeacherClash{}
	err := r.db.QueryRow(ctx,
		`SELECT ct.school_class_id, sc.name, sub.name
		 FROM scheduled_class_subjects a
		 JOIN timetable_entries e   ON e.id = a.timetable_entry_id
		 JOIN class_timetables ct   ON ct.id = e.class_timetable_id
		 JOIN class_subjects cs     ON cs.id = a.class_subject_id
		 JOIN school_classes sc     ON sc.id = ct.school_class_id
		 JOIN subjects sub          ON sub.id = cs.subject_id
		 WHERE ct.academic_year_id = $1
		   AND cs.teacher_id = $2
		   AND e.day_of_week = $3
		   AND e.time_slot_id = $4
		   AND ct.school_class_id <> $5
		 LIMIT 1`,
		academicYearID, teacherID, dayOfWeek, timeSlotID, excludeClassID,
	).Scan(&clash.SchoolClassID, &clash.ClassName, &clash.SubjectName)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return clash, nil
}

// CreateAssignment inserts an assignment into a cell.
func (r *ScheduleRepository) CreateAssignment(ctx context.Context, a *model.ScheduledClassSubject) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO scheduled_class_subjects (timetable_entry_id, class_subject_id, notes)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at`,
		a.TimetableEntryID, a.ClassSubjectID, a.Notes,
	).Scan(&a.ID, &a.CreatedAt)
}

// DeleteAssignment removes an assignment.
func (r *ScheduleRepository) DeleteAssignment(ctx context.Context, id uuid.UUID) error {
	ct, err := r.db.Exec(ctx, `DELETE FROM scheduled_class_subjects WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
