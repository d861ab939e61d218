package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/skooli/timetable-backend/internal/model"
	"github.com/skooli/timetable-backend/internal/repository"
)

// ScheduleService is the conflict-checked assignment engine plus the
// multi-period bulk scheduler. Every write runs inside one serializable
// transaction: the occupancy and teacher-clash checks are read-then-write,
// and two concurrent calls that would both pass them must not both commit.
type ScheduleService struct {
	store repository.ScheduleStore
	log   zerolog.Logger
}

// NewScheduleService creates a new ScheduleService.
func NewScheduleService(store repository.ScheduleStore, log zerolog.Logger) *ScheduleService {
	return &ScheduleService{store: store, log: log}
}

// Schedule binds a class-subject into one cell after the full invariant
// check: catalog resolution, class ownership, cell emptiness, teacher
// availability across the academic year, and slot assignability.
func (s *ScheduleService) Schedule(ctx context.Context, entryID, classSubjectID uuid.UUID, notes *string) (*model.ScheduledClassSubject, error) {
	var created *model.ScheduledClassSubject

	err := s.store.InTx(ctx, func(tx repository.ScheduleStore) error {
		entry, err := tx.EntryByID(ctx, entryID)
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		target, err := s.resolveTarget(ctx, tx, entry, classSubjectID)
		if err != nil {
			return err
		}

		created, err = s.assign(ctx, tx, entry, target, notes)
		return err
	})
	if err != nil {
		return nil, translateWriteErr(err)
	}

	s.log.Info().
		Str("entry_id", entryID.String()).
		Str("class_subject_id", classSubjectID.String()).
		Msg("subject scheduled")
	return created, nil
}

// Unschedule removes one assignment. A missing id is reported as NotFound
// rather than swallowed, so callers can tell "already removed" from "never
// existed".
func (s *ScheduleService) Unschedule(ctx context.Context, id uuid.UUID) error {
	err := s.store.DeleteAssignment(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// UnscheduleMany removes a set of assignments, typically the rows returned
// by one ScheduleBlock call, as a unit. Any missing id fails the whole batch.
func (s *ScheduleService) UnscheduleMany(ctx context.Context, ids []uuid.UUID) error {
	err := s.store.InTx(ctx, func(tx repository.ScheduleStore) error {
		for _, id := range ids {
			if err := tx.DeleteAssignment(ctx, id); err != nil {
				if errors.Is(err, pgx.ErrNoRows) {
					return ErrNotFound
				}
				return err
			}
		}
		return nil
	})
	return translateWriteErr(err)
}

// ScheduleBlock schedules the same class-subject into periodCount contiguous
// teaching slots starting at startSlotID, creating missing cells on the way.
// Breaks between periods are stepped over and do not count. The block is
// all-or-nothing: every cell is validated with the full Schedule rules before
// anything commits, and a single conflict rejects the whole block naming the
// failing period.
func (s *ScheduleService) ScheduleBlock(ctx context.Context, classTimetableID uuid.UUID, dayOfWeek int, startSlotID uuid.UUID, periodCount int, classSubjectID uuid.UUID, notes *string) ([]model.ScheduledClassSubject, error) {
	if dayOfWeek < 0 || dayOfWeek > 6 || periodCount < 1 {
		return nil, ErrInvalidOperation
	}

	var created []model.ScheduledClassSubject

	err := s.store.InTx(ctx, func(tx repository.ScheduleStore) error {
		timetable, err := tx.TimetableByID(ctx, classTimetableID)
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		subject, err := tx.ResolveClassSubject(ctx, classSubjectID)
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrUpstreamNotFound
		}
		if err != nil {
			return err
		}

		block, err := s.resolveBlockSlots(ctx, tx, startSlotID, periodCount)
		if err != nil {
			return err
		}

		created = created[:0]
		for i, slot := range block {
			slot := slot
			entry, err := tx.FindEntry(ctx, classTimetableID, dayOfWeek, slot.ID)
			if err != nil {
				return err
			}
			if entry == nil {
				entry = &model.TimetableEntry{
					ClassTimetableID: classTimetableID,
					DayOfWeek:        dayOfWeek,
					TimeSlotID:       slot.ID,
				}
				if err := tx.CreateEntry(ctx, entry); err != nil {
					return err
				}
			}

			a, err := s.assignResolved(ctx, tx, entry, timetable, &slot, subject, notes)
			if err != nil {
				return &BlockConflictError{Period: i + 1, Err: err}
			}
			created = append(created, *a)
		}
		return nil
	})
	if err != nil {
		return nil, translateWriteErr(err)
	}

	s.log.Info().
		Str("class_timetable_id", classTimetableID.String()).
		Int("day_of_week", dayOfWeek).
		Int("periods", periodCount).
		Msg("block scheduled")
	return created, nil
}

// scheduleTarget bundles everything the invariant checks need about one
// schedule request.
type scheduleTarget struct {
	timetable *model.ClassTimetable
	slot      *model.TimeSlot
	subject   *model.ClassSubject
}

func (s *ScheduleService) resolveTarget(ctx context.Context, tx repository.ScheduleStore, entry *model.TimetableEntry, classSubjectID uuid.UUID) (*scheduleTarget, error) {
	timetable, err := tx.TimetableByID(ctx, entry.ClassTimetableID)
	if err != nil {
		return nil, err
	}
	slot, err := tx.SlotByID(ctx, entry.TimeSlotID)
	if err != nil {
		return nil, err
	}
	subject, err := tx.ResolveClassSubject(ctx, classSubjectID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUpstreamNotFound
	}
	if err != nil {
		return nil, err
	}
	return &scheduleTarget{timetable: timetable, slot: slot, subject: subject}, nil
}

func (s *ScheduleService) assign(ctx context.Context, tx repository.ScheduleStore, entry *model.TimetableEntry, target *scheduleTarget, notes *string) (*model.ScheduledClassSubject, error) {
	return s.assignResolved(ctx, tx, entry, target.timetable, target.slot, target.subject, notes)
}

// assignResolved runs the four invariant checks against one cell and inserts
// the assignment. Callers hold the serializable transaction.
func (s *ScheduleService) assignResolved(ctx context.Context, tx repository.ScheduleStore, entry *model.TimetableEntry, timetable *model.ClassTimetable, slot *model.TimeSlot, subject *model.ClassSubject, notes *string) (*model.ScheduledClassSubject, error) {
	if subject.SchoolClassID != timetable.SchoolClassID {
		return nil, ErrClassMismatch
	}
	if slot.IsBreak {
		return nil, ErrSlotIsBreak
	}

	occupant, err := tx.AssignmentForEntry(ctx, entry.ID)
	if err != nil {
		return nil, err
	}
	if occupant != nil {
		return nil, ErrCellOccupied
	}

	clash, err := tx.TeacherClashAt(ctx, timetable.AcademicYearID, subject.TeacherID,
		entry.DayOfWeek, entry.TimeSlotID, timetable.SchoolClassID)
	if err != nil {
		return nil, err
	}
	if clash != nil {
		return nil, &TeacherConflictError{
			TeacherName: subject.TeacherName,
			DayOfWeek:   entry.DayOfWeek,
			SlotName:    slot.Name,
			ClassName:   clash.ClassName,
			SubjectName: clash.SubjectName,
		}
	}

	a := &model.ScheduledClassSubject{
		TimetableEntryID: entry.ID,
		ClassSubjectID:   subject.ID,
		Notes:            notes,
	}
	if err := tx.CreateAssignment(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// resolveBlockSlots walks the school's slot grid from the starting slot and
// collects periodCount teaching slots, stepping over breaks.
func (s *ScheduleService) resolveBlockSlots(ctx context.Context, tx repository.ScheduleStore, startSlotID uuid.UUID, periodCount int) ([]model.TimeSlot, error) {
	start, err := tx.SlotByID(ctx, startSlotID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if start.IsBreak {
		return nil, ErrSlotIsBreak
	}

	all, err := tx.SlotsBySchool(ctx, start.SchoolID)
	if err != nil {
		return nil, err
	}

	block := make([]model.TimeSlot, 0, periodCount)
	collecting := false
	for _, slot := range all {
		if slot.ID == start.ID {
			collecting = true
		}
		if !collecting || slot.IsBreak {
			continue
		}
		block = append(block, slot)
		if len(block) == periodCount {
			return block, nil
		}
	}
	return nil, &InsufficientSlotsError{Requested: periodCount, Available: len(block)}
}
