package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/skooli/timetable-backend/internal/model"
)

// ClassTimetableStore is the persistence surface of the version manager.
type ClassTimetableStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.ClassTimetable, error)
	List(ctx context.Context, schoolClassID, academicYearID uuid.UUID) ([]model.ClassTimetable, error)
	Create(ctx context.Context, t *model.ClassTimetable) error
	SetActive(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ErrLastActiveRevision is returned by Delete when the revision is active and
// has no sibling revision that could take over.
var ErrLastActiveRevision = errors.New("active revision has no sibling to replace it")

// ClassTimetableRepository handles timetable revision data access. SetActive
// and Delete open their own transaction on the pool; a repository constructed
// over an already-open transaction (pool == nil) runs them on that
// transaction instead.
type ClassTimetableRepository struct {
	pool *pgxpool.Pool
	db   DBTX
}

var _ ClassTimetableStore = (*ClassTimetableRepository)(nil)

// NewClassTimetableRepository creates a new ClassTimetableRepository.
func NewClassTimetableRepository(pool *pgxpool.Pool) *ClassTimetableRepository {
	return &ClassTimetableRepository{pool: pool, db: pool}
}

// GetByID retrieves a timetable revision by its ID.
func (r *ClassTimetableRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.ClassTimetable, error) {
	t := &model.ClassTimetable{}
	err := r.db.QueryRow(ctx,
		`SELECT id, school_class_id, academic_year_id, is_active, created_at
		 FROM class_timetables WHERE id = $1`, id,
	).Scan(&t.ID, &t.SchoolClassID, &t.AcademicYearID, &t.IsActive, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// List retrieves every revision (active and drafts) for a class and year,
// newest first.
func (r *ClassTimetableRepository) List(ctx context.Context, schoolClassID, academicYearID uuid.UUID) ([]model.ClassTimetable, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, school_class_id, academic_year_id, is_active, created_at
		 FROM class_timetables
		 WHERE school_class_id = $1 AND academic_year_id = $2
		 ORDER BY created_at DESC`, schoolClassID, academicYearID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var timetables []model.ClassTimetable
	for rows.Next() {
		var t model.ClassTimetable
		if err := rows.Scan(&t.ID, &t.SchoolClassID, &t.AcademicYearID, &t.IsActive, &t.CreatedAt); err != nil {
			return nil, err
		}
		timetables = append(timetables, t)
	}
	return timetables, rows.Err()
}

// Create inserts a new draft revision (is_active = false).
func (r *ClassTimetableRepository) Create(ctx context.Context, t *model.ClassTimetable) error {
	t.IsActive = false
	return r.db.QueryRow(ctx,
		`INSERT INTO class_timetables (school_class_id, academic_year_id, is_active)
		 VALUES ($1, $2, false)
		 RETURNING id, created_at`,
		t.SchoolClassID, t.AcademicYearID,
	).Scan(&t.ID, &t.CreatedAt)
}

// SetActive flips one revision to active and every sibling of the same
// class+year to draft. The partial unique index on active revisions is
// checked per modified row, so the flip runs as two statements inside one
// transaction: siblings are demoted before the target is promoted.
func (r *ClassTimetableRepository) SetActive(ctx context.Context, id uuid.UUID) error {
	if r.pool == nil {
		return setActiveOn(ctx, r.db, id)
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	if err := setActiveOn(ctx, tx, id); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func setActiveOn(ctx context.Context, db DBTX, id uuid.UUID) error {
	var classID, yearID uuid.UUID
	err := db.QueryRow(ctx,
		`SELECT school_class_id, academic_year_id
		 FROM class_timetables WHERE id = $1 FOR UPDATE`, id,
	).Scan(&classID, &yearID)
	if err != nil {
		return err
	}

	if _, err := db.Exec(ctx,
		`UPDATE class_timetables
		 SET is_active = false
		 WHERE school_class_id = $1 AND academic_year_id = $2
		   AND is_active AND id <> $3`,
		classID, yearID, id); err != nil {
		return err
	}
	_, err = db.Exec(ctx,
		`UPDATE class_timetables SET is_active = true WHERE id = $1`, id)
	return err
}

// Delete removes a revision; entries and assignments cascade. The delete and
// its last-active guard share one transaction: the target and every sibling
// are row-locked first, so two concurrent deletes of a class's revisions
// serialize and the second sees the first's result.
func (r *ClassTimetableRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if r.pool == nil {
		return deleteOn(ctx, r.db, id)
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	if err := deleteOn(ctx, tx, id); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func deleteOn(ctx context.Context, db DBTX, id uuid.UUID) error {
	var classID, yearID uuid.UUID
	var isActive bool
	err := db.QueryRow(ctx,
		`SELECT school_class_id, academic_year_id, is_active
		 FROM class_timetables WHERE id = $1 FOR UPDATE`, id,
	).Scan(&classID, &yearID, &isActive)
	if err != nil {
		return err
	}

	if isActive {
		rows, err := db.Query(ctx,
			`SELECT id FROM class_timetables
			 WHERE school_class_id = $1 AND academic_year_id = $2 FOR UPDATE`,
			classID, yearID)
		if err != nil {
			return err
		}
		n := 0
		for rows.Next() {
			n++
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return err
		}
		if n <= 1 {
			return ErrLastActiveRevision
		}
	}

	_, err = db.Exec(ctx, `DELETE FROM class_timetables WHERE id = $1`, id)
	return err
}
