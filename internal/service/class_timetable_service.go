package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/skooli/timetable-backend/internal/model"
	"github.com/skooli/timetable-backend/internal/repository"
)

// ClassTimetableService is the version manager: it groups cells into
// per-class, per-year timetable revisions and keeps exactly one of them
// active at a time.
type ClassTimetableService struct {
	timetables repository.ClassTimetableStore
}

// NewClassTimetableService creates a new ClassTimetableService.
func NewClassTimetableService(timetables repository.ClassTimetableStore) *ClassTimetableService {
	return &ClassTimetableService{timetables: timetables}
}

// GetByID retrieves one revision.
func (s *ClassTimetableService) GetByID(ctx context.Context, id uuid.UUID) (*model.ClassTimetable, error) {
	t, err := s.timetables.GetByID(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return t, err
}

// List retrieves every revision of a class+year, newest first.
func (s *ClassTimetableService) List(ctx context.Context, schoolClassID, academicYearID uuid.UUID) ([]model.ClassTimetable, error) {
	return s.timetables.List(ctx, schoolClassID, academicYearID)
}

// Create opens a new draft revision. Drafts can exist in any number; none of
// them is visible to views until activated.
func (s *ClassTimetableService) Create(ctx context.Context, schoolClassID, academicYearID uuid.UUID) (*model.ClassTimetable, error) {
	t := &model.ClassTimetable{
		SchoolClassID:  schoolClassID,
		AcademicYearID: academicYearID,
	}
	if err := s.timetables.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// SetActive publishes one revision and implicitly demotes every sibling of
// the same class+year to draft, atomically.
func (s *ClassTimetableService) SetActive(ctx context.Context, id uuid.UUID) (*model.ClassTimetable, error) {
	if err := s.timetables.SetActive(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, translateActivateErr(err)
	}
	return s.GetByID(ctx, id)
}

// Delete removes a revision with its cells and assignments. Deleting the
// active revision is refused while it is the only one for its class+year:
// callers must create a replacement first so the class never silently loses
// its published schedule. The guard is enforced by the store inside the
// delete's own transaction.
func (s *ClassTimetableService) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.timetables.Delete(ctx, id)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return ErrNotFound
	case errors.Is(err, repository.ErrLastActiveRevision):
		return ErrInvalidOperation
	}
	return err
}
