package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/skooli/timetable-backend/internal/config"
	"github.com/skooli/timetable-backend/internal/model"
	"github.com/skooli/timetable-backend/internal/repository"
)

// ScheduleViewService is the read-only projector producing the class,
// teacher and student views. Class and teacher views of ACTIVE timetables
// are cached with a short TTL; schedules change rarely and clients refetch,
// so a slightly stale snapshot is fine. Draft views are always read fresh
// because they are editing surfaces.
type ScheduleViewService struct {
	views   repository.ScheduleViewStore
	catalog repository.Catalog
	cache   ViewCache
	ttl     time.Duration
	log     zerolog.Logger
}

// NewScheduleViewService creates a new ScheduleViewService. cache may be nil
// to disable caching entirely.
func NewScheduleViewService(views repository.ScheduleViewStore, catalog repository.Catalog, cache ViewCache, ttl time.Duration, log zerolog.Logger) *ScheduleViewService {
	return &ScheduleViewService{views: views, catalog: catalog, cache: cache, ttl: ttl, log: log}
}

// ClassView returns the active timetable of a class+year with its cells in
// (day, slot order) order. No active timetable means NotFound.
func (s *ScheduleViewService) ClassView(ctx context.Context, schoolClassID, academicYearID uuid.UUID) (*model.ClassScheduleView, error) {
	key := config.CacheKey.ClassViewKey(schoolClassID, academicYearID)
	if view, ok := s.cached(ctx, key); ok {
		return view, nil
	}

	timetable, err := s.views.ActiveTimetable(ctx, schoolClassID, academicYearID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	view, err := s.buildClassView(ctx, timetable)
	if err != nil {
		return nil, err
	}
	s.store(ctx, key, view)
	return view, nil
}

// TimetableView returns the same shape for an explicitly named revision,
// draft or active.
func (s *ScheduleViewService) TimetableView(ctx context.Context, classTimetableID uuid.UUID) (*model.ClassScheduleView, error) {
	timetable, err := s.views.TimetableByID(ctx, classTimetableID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return s.buildClassView(ctx, timetable)
}

// TeacherView returns a teacher's flattened agenda across every class's
// active timetable of the year. An empty agenda is a valid result.
func (s *ScheduleViewService) TeacherView(ctx context.Context, teacherID, academicYearID uuid.UUID) ([]model.TeacherScheduleRow, error) {
	key := config.CacheKey.TeacherViewKey(teacherID, academicYearID)
	if s.cache != nil {
		if raw, ok := s.cache.Get(ctx, key); ok {
			var rows []model.TeacherScheduleRow
			if err := json.Unmarshal(raw, &rows); err == nil {
				return rows, nil
			}
		}
	}

	rows, err := s.views.TeacherAgenda(ctx, teacherID, academicYearID)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if raw, err := json.Marshal(rows); err == nil {
			s.cache.Set(ctx, key, raw, s.ttl)
		}
	}
	return rows, nil
}

// StudentView resolves the student's enrollment for the year and returns the
// enrolled class's view.
func (s *ScheduleViewService) StudentView(ctx context.Context, studentID, academicYearID uuid.UUID) (*model.ClassScheduleView, error) {
	classID, err := s.catalog.ClassForStudent(ctx, studentID, academicYearID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUpstreamNotFound
	}
	if err != nil {
		return nil, err
	}
	return s.ClassView(ctx, classID, academicYearID)
}

func (s *ScheduleViewService) buildClassView(ctx context.Context, timetable *model.ClassTimetable) (*model.ClassScheduleView, error) {
	cells, err := s.views.CellsForTimetable(ctx, timetable.ID)
	if err != nil {
		return nil, err
	}
	return &model.ClassScheduleView{Timetable: *timetable, Cells: cells}, nil
}

func (s *ScheduleViewService) cached(ctx context.Context, key string) (*model.ClassScheduleView, bool) {
	if s.cache == nil {
		return nil, false
	}
	raw, ok := s.cache.Get(ctx, key)
	if !ok {
		return nil, false
	}
	view := &model.ClassScheduleView{}
	if err := json.Unmarshal(raw, view); err != nil {
		return nil, false
	}
	return view, true
}

func (s *ScheduleViewService) store(ctx context.Context, key string, view *model.ClassScheduleView) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(view)
	if err != nil {
		s.log.Warn().Err(err).Msg("view marshal failed")
		return
	}
	s.cache.Set(ctx, key, raw, s.ttl)
}
