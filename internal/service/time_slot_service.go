package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/skooli/timetable-backend/internal/model"
	"github.com/skooli/timetable-backend/internal/repository"
)

// TimeSlotService is the time-slot registry: it owns the ordered daily grid
// of periods and breaks shared by a school.
type TimeSlotService struct {
	slots repository.TimeSlotStore
}

// NewTimeSlotService creates a new TimeSlotService.
func NewTimeSlotService(slots repository.TimeSlotStore) *TimeSlotService {
	return &TimeSlotService{slots: slots}
}

// List retrieves a school's slots ordered by (order, start_time).
func (s *TimeSlotService) List(ctx context.Context, schoolID uuid.UUID) ([]model.TimeSlot, error) {
	return s.slots.ListBySchool(ctx, schoolID)
}

// GetByID retrieves a single slot.
func (s *TimeSlotService) GetByID(ctx context.Context, id uuid.UUID) (*model.TimeSlot, error) {
	slot, err := s.slots.GetByID(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return slot, err
}

// Create registers a new slot in the school's grid.
func (s *TimeSlotService) Create(ctx context.Context, slot *model.TimeSlot) error {
	if slot.StartTime >= slot.EndTime {
		return ErrInvalidOperation
	}
	return s.slots.Create(ctx, slot)
}

// Update edits a slot. Once any timetable entry references the slot, only
// the name remains editable; timing, order and break status are frozen so
// existing schedules keep their meaning.
func (s *TimeSlotService) Update(ctx context.Context, slot *model.TimeSlot) error {
	if slot.StartTime >= slot.EndTime {
		return ErrInvalidOperation
	}

	current, err := s.slots.GetByID(ctx, slot.ID)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	structural := current.StartTime != slot.StartTime ||
		current.EndTime != slot.EndTime ||
		current.Order != slot.Order ||
		current.IsBreak != slot.IsBreak
	if structural {
		n, err := s.slots.CountEntriesForSlot(ctx, slot.ID)
		if err != nil {
			return err
		}
		if n > 0 {
			return ErrReferentialConflict
		}
	}

	slot.SchoolID = current.SchoolID
	if err := s.slots.Update(ctx, slot); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// Delete removes an unreferenced slot. Referenced slots cannot be deleted;
// administrators deactivate them by leaving them out of new timetables.
func (s *TimeSlotService) Delete(ctx context.Context, id uuid.UUID) error {
	n, err := s.slots.CountEntriesForSlot(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return ErrReferentialConflict
	}
	if err := s.slots.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
