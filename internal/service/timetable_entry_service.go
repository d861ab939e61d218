package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/skooli/timetable-backend/internal/model"
	"github.com/skooli/timetable-backend/internal/repository"
)

// TimetableEntryService is the entry store: it instantiates time slots onto
// (timetable, weekday) pairs, producing the addressable cells that
// assignments land in.
type TimetableEntryService struct {
	entries repository.TimetableEntryStore
}

// NewTimetableEntryService creates a new TimetableEntryService.
func NewTimetableEntryService(entries repository.TimetableEntryStore) *TimetableEntryService {
	return &TimetableEntryService{entries: entries}
}

// GetByID retrieves one cell.
func (s *TimetableEntryService) GetByID(ctx context.Context, id uuid.UUID) (*model.TimetableEntry, error) {
	e, err := s.entries.GetByID(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return e, err
}

// List retrieves every cell of a revision in display order.
func (s *TimetableEntryService) List(ctx context.Context, classTimetableID uuid.UUID) ([]model.TimetableEntry, error) {
	return s.entries.ListByTimetable(ctx, classTimetableID)
}

// Create adds an empty cell at (timetable, day, slot). Each position exists
// at most once per revision.
func (s *TimetableEntryService) Create(ctx context.Context, classTimetableID uuid.UUID, dayOfWeek int, timeSlotID uuid.UUID) (*model.TimetableEntry, error) {
	if dayOfWeek < 0 || dayOfWeek > 6 {
		return nil, ErrInvalidOperation
	}
	e := &model.TimetableEntry{
		ClassTimetableID: classTimetableID,
		DayOfWeek:        dayOfWeek,
		TimeSlotID:       timeSlotID,
	}
	if err := s.entries.Create(ctx, e); err != nil {
		return nil, translateEntryErr(err)
	}
	return e, nil
}

// Update moves a cell to another (day, slot) position within its revision.
func (s *TimetableEntryService) Update(ctx context.Context, id uuid.UUID, dayOfWeek int, timeSlotID uuid.UUID) (*model.TimetableEntry, error) {
	if dayOfWeek < 0 || dayOfWeek > 6 {
		return nil, ErrInvalidOperation
	}
	e := &model.TimetableEntry{ID: id, DayOfWeek: dayOfWeek, TimeSlotID: timeSlotID}
	if err := s.entries.Update(ctx, e); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, translateEntryErr(err)
	}
	return s.GetByID(ctx, id)
}

// Delete removes a cell; any assignment in it goes with it.
func (s *TimetableEntryService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.entries.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// translateEntryErr maps constraint violations from the entries table:
// the (timetable, day, slot) unique index means a duplicate cell, a foreign
// key failure means the timetable or slot does not exist.
func translateEntryErr(err error) error {
	switch pgErrCode(err) {
	case "23505":
		return ErrDuplicateCell
	case "23503":
		return ErrNotFound
	}
	return err
}
