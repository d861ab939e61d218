package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/skooli/timetable-backend/internal/model"
)

// TimeSlotStore is the persistence surface of the time-slot registry.
type TimeSlotStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.TimeSlot, error)
	ListBySchool(ctx context.Context, schoolID uuid.UUID) ([]model.TimeSlot, error)
	Create(ctx context.Context, s *model.TimeSlot) error
	Update(ctx context.Context, s *model.TimeSlot) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountEntriesForSlot(ctx context.Context, slotID uuid.UUID) (int, error)
}

// TimeSlotRepository handles time slot data access.
type TimeSlotRepository struct {
	db DBTX
}

var _ TimeSlotStore = (*TimeSlotRepository)(nil)

// NewTimeSlotRepository creates a new TimeSlotRepository.
func NewTimeSlotRepository(db DBTX) *TimeSlotRepository {
	return &TimeSlotRepository{db: db}
}

const timeSlotColumns = `id, school_id, name, to_char(start_time, 'HH24:MI'), to_char(end_time, 'HH24:MI'), sort_order, is_break, created_at, updated_at`

func scanTimeSlot(row pgx.Row, s *model.TimeSlot) error {
	return row.Scan(&s.ID, &s.SchoolID, &s.Name, &s.StartTime, &s.EndTime, &s.Order, &s.IsBreak, &s.CreatedAt, &s.UpdatedAt)
}

// GetByID retrieves a time slot by its ID.
func (r *TimeSlotRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.TimeSlot, error) {
	s := &model.TimeSlot{}
	err := scanTimeSlot(r.db.QueryRow(ctx,
		`SELECT `+timeSlotColumns+` FROM time_slots WHERE id = $1`, id), s)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// ListBySchool retrieves all slots of a school ordered for display.
func (r *TimeSlotRepository) ListBySchool(ctx context.Context, schoolID uuid.UUID) ([]model.TimeSlot, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+timeSlotColumns+` FROM time_slots
		 WHERE school_id = $1
		 ORDER BY sort_order, start_time`, schoolID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var slots []model.TimeSlot
	for rows.Next() {
		var s model.TimeSlot
		if err := scanTimeSlot(rows, &s); err != nil {
			return nil, err
		}
		slots = append(slots, s)
	}
	return slots, rows.Err()
}

// Create inserts a new time slot.
func (r *TimeSlotRepository) Create(ctx context.Context, s *model.TimeSlot) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO time_slots (school_id, name, start_time, end_time, sort_order, is_break)
		 VALUES ($1, $2, $3::time, $4::time, $5, $6)
		 RETURNING id, created_at, updated_at`,
		s.SchoolID, s.Name, s.StartTime, s.EndTime, s.Order, s.IsBreak,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
}

// Update modifies an existing time slot.
func (r *TimeSlotRepository) Update(ctx context.Context, s *model.TimeSlot) error {
	ct, err := r.db.Exec(ctx,
		`UPDATE time_slots
		 SET name = $1, start_time = $2::time, end_time = $3::time, sort_order = $4, is_break = $5, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $6`,
		s.Name, s.StartTime, s.EndTime, s.Order, s.IsBreak, s.ID,
	)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Delete removes a time slot by its ID.
func (r *TimeSlotRepository) Delete(ctx context.Context, id uuid.UUID) error {
	ct, err := r.db.Exec(ctx, `DELETE FROM time_slots WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// CountEntriesForSlot counts timetable entries referencing a slot. A nonzero
// count freezes the slot (delete and non-cosmetic edits are rejected).
func (r *TimeSlotRepository) CountEntriesForSlot(ctx context.Context, slotID uuid.UUID) (int, error) {
	var n int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM timetable_entries WHERE time_slot_id = $1`, slotID,
	).Scan(&n)
	return n, err
}
