package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/skooli/timetable-backend/internal/model"
)

// TimetableEntryStore is the persistence surface of the entry store.
type TimetableEntryStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.TimetableEntry, error)
	ListByTimetable(ctx context.Context, classTimetableID uuid.UUID) ([]model.TimetableEntry, error)
	Create(ctx context.Context, e *model.TimetableEntry) error
	Update(ctx context.Context, e *model.TimetableEntry) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// TimetableEntryRepository handles timetable cell data access.
type TimetableEntryRepository struct {
	db DBTX
}

var _ TimetableEntryStore = (*TimetableEntryRepository)(nil)

// NewTimetableEntryRepository creates a new TimetableEntryRepository.
func NewTimetableEntryRepository(db DBTX) *TimetableEntryRepository {
	return &TimetableEntryRepository{db: db}
}

// GetByID retrieves an entry by its ID.
func (r *TimetableEntryRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.TimetableEntry, error) {
	e := &model.TimetableEntry{}
	err := r.db.QueryRow(ctx,
		`SELECT id, class_timetable_id, day_of_week, time_slot_id, created_at
		 FROM timetable_entries WHERE id = $1`, id,
	).Scan(&e.ID, &e.ClassTimetableID, &e.DayOfWeek, &e.TimeSlotID, &e.CreatedAt)
	if err != nil {
		return nil, err
	}
	return e, nil
}

// ListByTimetable retrieves every cell of a revision ordered by day then
// slot order.
func (r *TimetableEntryRepository) ListByTimetable(ctx context.Context, classTimetableID uuid.UUID) ([]model.TimetableEntry, error) {
	rows, err := r.db.Query(ctx,
		`SELECT e.id, e.class_timetable_id, e.day_of_week, e.time_slot_id, e.created_at
		 FROM timetable_entries e
		 JOIN time_slots s ON s.id = e.time_slot_id
		 WHERE e.class_timetable_id = $1
		 ORDER BY e.day_of_week, s.sort_order, s.start_time`, classTimetableID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []model.TimetableEntry
	for rows.Next() {
		var e model.TimetableEntry
		if err := rows.Scan(&e.ID, &e.ClassTimetableID, &e.DayOfWeek, &e.TimeSlotID, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Create inserts a new cell. The unique index on
// (class_timetable_id, day_of_week, time_slot_id) rejects duplicates.
func (r *TimetableEntryRepository) Create(ctx context.Context, e *model.TimetableEntry) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO timetable_entries (class_timetable_id, day_of_week, time_slot_id)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at`,
		e.ClassTimetableID, e.DayOfWeek, e.TimeSlotID,
	).Scan(&e.ID, &e.CreatedAt)
}

// Update moves a cell to another day/slot position.
func (r *TimetableEntryRepository) Update(ctx context.Context, e *model.TimetableEntry) error {
	ct, err := r.db.Exec(ctx,
		`UPDATE timetable_entries SET day_of_week = $1, time_slot_id = $2 WHERE id = $3`,
		e.DayOfWeek, e.TimeSlotID, e.ID,
	)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Delete removes a cell. Any assignment in it cascades.
func (r *TimetableEntryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	ct, err := r.db.Exec(ctx, `DELETE FROM timetable_entries WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
