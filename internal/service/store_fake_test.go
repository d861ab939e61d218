package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/skooli/timetable-backend/internal/model"
	"github.com/skooli/timetable-backend/internal/repository"
)

// fakeStore is an in-memory stand-in for every repository interface the
// services consume. InTx snapshots the maps and restores them when fn fails,
// mimicking a rollback; the mutex serializes writers the way serializable
// isolation would.
type fakeStore struct {
	mu sync.Mutex

	slots         map[uuid.UUID]model.TimeSlot
	timetables    map[uuid.UUID]model.ClassTimetable
	entries       map[uuid.UUID]model.TimetableEntry
	assignments   map[uuid.UUID]model.ScheduledClassSubject
	classSubjects map[uuid.UUID]model.ClassSubject
	// enrollments maps (studentID, yearID) to a class.
	enrollments map[[2]uuid.UUID]uuid.UUID
	classNames  map[uuid.UUID]string
}

var (
	_ repository.ScheduleStore       = (*fakeStore)(nil)
	_ repository.TimeSlotStore       = (*fakeStore)(nil)
	_ repository.ScheduleViewStore   = (*fakeStore)(nil)
	_ repository.Catalog             = (*fakeStore)(nil)
	_ repository.ClassTimetableStore = timetableStoreFake{}
	_ repository.TimetableEntryStore = entryStoreFake{}
)

func newFakeStore() *fakeStore {
	return &fakeStore{
		slots:         make(map[uuid.UUID]model.TimeSlot),
		timetables:    make(map[uuid.UUID]model.ClassTimetable),
		entries:       make(map[uuid.UUID]model.TimetableEntry),
		assignments:   make(map[uuid.UUID]model.ScheduledClassSubject),
		classSubjects: make(map[uuid.UUID]model.ClassSubject),
		enrollments:   make(map[[2]uuid.UUID]uuid.UUID),
		classNames:    make(map[uuid.UUID]string),
	}
}

// ─── seeding helpers ────────────────────────────────────────────────────────

func (f *fakeStore) addSlot(schoolID uuid.UUID, name, start, end string, order int, isBreak bool) model.TimeSlot {
	s := model.TimeSlot{
		ID: uuid.New(), SchoolID: schoolID, Name: name,
		StartTime: start, EndTime: end, Order: order, IsBreak: isBreak,
		CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}
	f.slots[s.ID] = s
	return s
}

func (f *fakeStore) addTimetable(classID, yearID uuid.UUID, active bool) model.ClassTimetable {
	t := model.ClassTimetable{
		ID: uuid.New(), SchoolClassID: classID, AcademicYearID: yearID,
		IsActive: active, CreatedAt: time.Now(),
	}
	f.timetables[t.ID] = t
	return t
}

func (f *fakeStore) addEntry(timetableID uuid.UUID, day int, slotID uuid.UUID) model.TimetableEntry {
	e := model.TimetableEntry{
		ID: uuid.New(), ClassTimetableID: timetableID, DayOfWeek: day,
		TimeSlotID: slotID, CreatedAt: time.Now(),
	}
	f.entries[e.ID] = e
	return e
}

func (f *fakeStore) addClassSubject(classID uuid.UUID, className string, teacherID uuid.UUID, teacherName, subjectName string) model.ClassSubject {
	cs := model.ClassSubject{
		ID: uuid.New(), SchoolClassID: classID, SubjectID: uuid.New(),
		TeacherID: teacherID, SubjectName: subjectName,
		TeacherName: teacherName, ClassName: className,
	}
	f.classSubjects[cs.ID] = cs
	f.classNames[classID] = className
	return cs
}

// ─── ScheduleStore ──────────────────────────────────────────────────────────

func (f *fakeStore) InTx(_ context.Context, fn func(repository.ScheduleStore) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	entries := cloneMap(f.entries)
	assignments := cloneMap(f.assignments)
	if err := fn(f); err != nil {
		f.entries = entries
		f.assignments = assignments
		return err
	}
	return nil
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (f *fakeStore) EntryByID(_ context.Context, id uuid.UUID) (*model.TimetableEntry, error) {
	if e, ok := f.entries[id]; ok {
		return &e, nil
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeStore) TimetableByID(_ context.Context, id uuid.UUID) (*model.ClassTimetable, error) {
	if t, ok := f.timetables[id]; ok {
		return &t, nil
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeStore) SlotByID(_ context.Context, id uuid.UUID) (*model.TimeSlot, error) {
	if s, ok := f.slots[id]; ok {
		return &s, nil
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeStore) SlotsBySchool(_ context.Context, schoolID uuid.UUID) ([]model.TimeSlot, error) {
	var slots []model.TimeSlot
	for _, s := range f.slots {
		if s.SchoolID == schoolID {
			slots = append(slots, s)
		}
	}
	sort.Slice(slots, func(i, j int) bool {
		if slots[i].Order != slots[j].Order {
			return slots[i].Order < slots[j].Order
		}
		return slots[i].StartTime < slots[j].StartTime
	})
	return slots, nil
}

func (f *fakeStore) ResolveClassSubject(_ context.Context, id uuid.UUID) (*model.ClassSubject, error) {
	if cs, ok := f.classSubjects[id]; ok {
		return &cs, nil
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeStore) FindEntry(_ context.Context, timetableID uuid.UUID, day int, slotID uuid.UUID) (*model.TimetableEntry, error) {
	for _, e := range f.entries {
		if e.ClassTimetableID == timetableID && e.DayOfWeek == day && e.TimeSlotID == slotID {
			return &e, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) CreateEntry(_ context.Context, e *model.TimetableEntry) error {
	if _, ok := f.timetables[e.ClassTimetableID]; !ok {
		return &pgconn.PgError{Code: "23503"}
	}
	if _, ok := f.slots[e.TimeSlotID]; !ok {
		return &pgconn.PgError{Code: "23503"}
	}
	for _, other := range f.entries {
		if other.ClassTimetableID == e.ClassTimetableID && other.DayOfWeek == e.DayOfWeek && other.TimeSlotID == e.TimeSlotID {
			return &pgconn.PgError{Code: "23505"}
		}
	}
	e.ID = uuid.New()
	e.CreatedAt = time.Now()
	f.entries[e.ID] = *e
	return nil
}

func (f *fakeStore) AssignmentForEntry(_ context.Context, entryID uuid.UUID) (*model.ScheduledClassSubject, error) {
	for _, a := range f.assignments {
		if a.TimetableEntryID == entryID {
			return &a, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) TeacherClashAt(_ context.Context, yearID, teacherID uuid.UUID, day int, slotID, excludeClassID uuid.UUID) (*model.TeacherClash, error) {
	for _, a := range f.assignments {
		entry, okE := f.entries[a.TimetableEntryID]
		if !okE || entry.DayOfWeek != day || entry.TimeSlotID != slotID {
			continue
		}
		timetable, okT := f.timetables[entry.ClassTimetableID]
		if !okT || timetable.AcademicYearID != yearID || timetable.SchoolClassID == excludeClassID {
			continue
		}
		cs, okS := f.classSubjects[a.ClassSubjectID]
		if !okS || cs.TeacherID != teacherID {
			continue
		}
		return &model.TeacherClash{
			SchoolClassID: timetable.SchoolClassID,
			ClassName:     f.classNames[timetable.SchoolClassID],
			SubjectName:   cs.SubjectName,
		}, nil
	}
	return nil, nil
}

func (f *fakeStore) CreateAssignment(_ context.Context, a *model.ScheduledClassSubject) error {
	for _, other := range f.assignments {
		if other.TimetableEntryID == a.TimetableEntryID {
			return &pgconn.PgError{Code: "23505"}
		}
	}
	a.ID = uuid.New()
	a.CreatedAt = time.Now()
	f.assignments[a.ID] = *a
	return nil
}

func (f *fakeStore) DeleteAssignment(_ context.Context, id uuid.UUID) error {
	if _, ok := f.assignments[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.assignments, id)
	return nil
}

// ─── TimeSlotStore ──────────────────────────────────────────────────────────

func (f *fakeStore) GetByID(ctx context.Context, id uuid.UUID) (*model.TimeSlot, error) {
	return f.SlotByID(ctx, id)
}

func (f *fakeStore) ListBySchool(ctx context.Context, schoolID uuid.UUID) ([]model.TimeSlot, error) {
	return f.SlotsBySchool(ctx, schoolID)
}

func (f *fakeStore) Create(_ context.Context, s *model.TimeSlot) error {
	s.ID = uuid.New()
	s.CreatedAt = time.Now()
	s.UpdatedAt = time.Now()
	f.slots[s.ID] = *s
	return nil
}

func (f *fakeStore) Update(_ context.Context, s *model.TimeSlot) error {
	if _, ok := f.slots[s.ID]; !ok {
		return pgx.ErrNoRows
	}
	s.UpdatedAt = time.Now()
	f.slots[s.ID] = *s
	return nil
}

func (f *fakeStore) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.slots[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.slots, id)
	return nil
}

func (f *fakeStore) CountEntriesForSlot(_ context.Context, slotID uuid.UUID) (int, error) {
	n := 0
	for _, e := range f.entries {
		if e.TimeSlotID == slotID {
			n++
		}
	}
	return n, nil
}

// ─── ClassTimetableStore ────────────────────────────────────────────────────

// timetableStoreFake adapts fakeStore to ClassTimetableStore: the method sets
// collide with TimeSlotStore's, so the timetable CRUD lives on a wrapper.
type timetableStoreFake struct{ *fakeStore }

func (f *fakeStore) timetableStore() repository.ClassTimetableStore { return timetableStoreFake{f} }

func (f timetableStoreFake) GetByID(ctx context.Context, id uuid.UUID) (*model.ClassTimetable, error) {
	return f.TimetableByID(ctx, id)
}

func (f timetableStoreFake) List(_ context.Context, classID, yearID uuid.UUID) ([]model.ClassTimetable, error) {
	var out []model.ClassTimetable
	for _, t := range f.timetables {
		if t.SchoolClassID == classID && t.AcademicYearID == yearID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f timetableStoreFake) Create(_ context.Context, t *model.ClassTimetable) error {
	t.ID = uuid.New()
	t.IsActive = false
	t.CreatedAt = time.Now()
	f.timetables[t.ID] = *t
	return nil
}

func (f timetableStoreFake) SetActive(_ context.Context, id uuid.UUID) error {
	target, ok := f.timetables[id]
	if !ok {
		return pgx.ErrNoRows
	}
	for tid, t := range f.timetables {
		if t.SchoolClassID == target.SchoolClassID && t.AcademicYearID == target.AcademicYearID {
			t.IsActive = tid == id
			f.timetables[tid] = t
		}
	}
	return nil
}

func (f timetableStoreFake) Delete(_ context.Context, id uuid.UUID) error {
	target, ok := f.timetables[id]
	if !ok {
		return pgx.ErrNoRows
	}
	if target.IsActive {
		siblings := 0
		for _, t := range f.timetables {
			if t.SchoolClassID == target.SchoolClassID && t.AcademicYearID == target.AcademicYearID {
				siblings++
			}
		}
		if siblings <= 1 {
			return repository.ErrLastActiveRevision
		}
	}
	for eid, e := range f.entries {
		if e.ClassTimetableID == id {
			for aid, a := range f.assignments {
				if a.TimetableEntryID == eid {
					delete(f.assignments, aid)
				}
			}
			delete(f.entries, eid)
		}
	}
	delete(f.timetables, id)
	return nil
}

// ─── TimetableEntryStore ────────────────────────────────────────────────────

// entryStoreFake adapts fakeStore to TimetableEntryStore; the CRUD names
// collide with the slot store's.
type entryStoreFake struct{ *fakeStore }

func (f *fakeStore) entryStore() repository.TimetableEntryStore { return entryStoreFake{f} }

func (f entryStoreFake) GetByID(ctx context.Context, id uuid.UUID) (*model.TimetableEntry, error) {
	return f.EntryByID(ctx, id)
}

func (f entryStoreFake) ListByTimetable(_ context.Context, timetableID uuid.UUID) ([]model.TimetableEntry, error) {
	var out []model.TimetableEntry
	for _, e := range f.entries {
		if e.ClassTimetableID == timetableID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DayOfWeek != out[j].DayOfWeek {
			return out[i].DayOfWeek < out[j].DayOfWeek
		}
		return f.slots[out[i].TimeSlotID].Order < f.slots[out[j].TimeSlotID].Order
	})
	return out, nil
}

func (f entryStoreFake) Create(ctx context.Context, e *model.TimetableEntry) error {
	return f.CreateEntry(ctx, e)
}

func (f entryStoreFake) Update(_ context.Context, e *model.TimetableEntry) error {
	current, ok := f.entries[e.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	for _, other := range f.entries {
		if other.ID != e.ID && other.ClassTimetableID == current.ClassTimetableID &&
			other.DayOfWeek == e.DayOfWeek && other.TimeSlotID == e.TimeSlotID {
			return &pgconn.PgError{Code: "23505"}
		}
	}
	current.DayOfWeek = e.DayOfWeek
	current.TimeSlotID = e.TimeSlotID
	f.entries[e.ID] = current
	return nil
}

func (f entryStoreFake) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.entries[id]; !ok {
		return pgx.ErrNoRows
	}
	for aid, a := range f.assignments {
		if a.TimetableEntryID == id {
			delete(f.assignments, aid)
		}
	}
	delete(f.entries, id)
	return nil
}

// ─── ScheduleViewStore ──────────────────────────────────────────────────────

func (f *fakeStore) ActiveTimetable(_ context.Context, classID, yearID uuid.UUID) (*model.ClassTimetable, error) {
	for _, t := range f.timetables {
		if t.SchoolClassID == classID && t.AcademicYearID == yearID && t.IsActive {
			return &t, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeStore) CellsForTimetable(_ context.Context, timetableID uuid.UUID) ([]model.ScheduleCell, error) {
	var cells []model.ScheduleCell
	for _, e := range f.entries {
		if e.ClassTimetableID != timetableID {
			continue
		}
		cell := model.ScheduleCell{Entry: e, Slot: f.slots[e.TimeSlotID]}
		for _, a := range f.assignments {
			if a.TimetableEntryID == e.ID {
				cs := f.classSubjects[a.ClassSubjectID]
				cell.Assignment = &model.ScheduledAssignment{
					ScheduledClassSubject: a,
					SubjectName:           cs.SubjectName,
					TeacherID:             cs.TeacherID,
					TeacherName:           cs.TeacherName,
				}
			}
		}
		cells = append(cells, cell)
	}
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].Entry.DayOfWeek != cells[j].Entry.DayOfWeek {
			return cells[i].Entry.DayOfWeek < cells[j].Entry.DayOfWeek
		}
		return cells[i].Slot.Order < cells[j].Slot.Order
	})
	return cells, nil
}

func (f *fakeStore) TeacherAgenda(_ context.Context, teacherID, yearID uuid.UUID) ([]model.TeacherScheduleRow, error) {
	var rows []model.TeacherScheduleRow
	for _, a := range f.assignments {
		cs, ok := f.classSubjects[a.ClassSubjectID]
		if !ok || cs.TeacherID != teacherID {
			continue
		}
		entry := f.entries[a.TimetableEntryID]
		timetable := f.timetables[entry.ClassTimetableID]
		if timetable.AcademicYearID != yearID || !timetable.IsActive {
			continue
		}
		slot := f.slots[entry.TimeSlotID]
		rows = append(rows, model.TeacherScheduleRow{
			ScheduledClassSubjectID: a.ID,
			DayOfWeek:               entry.DayOfWeek,
			SlotName:                slot.Name,
			StartTime:               slot.StartTime,
			EndTime:                 slot.EndTime,
			SlotOrder:               slot.Order,
			SubjectName:             cs.SubjectName,
			SchoolClassID:           timetable.SchoolClassID,
			ClassName:               cs.ClassName,
			Notes:                   a.Notes,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].DayOfWeek != rows[j].DayOfWeek {
			return rows[i].DayOfWeek < rows[j].DayOfWeek
		}
		return rows[i].SlotOrder < rows[j].SlotOrder
	})
	return rows, nil
}

// ─── Catalog ────────────────────────────────────────────────────────────────

func (f *fakeStore) ClassForStudent(_ context.Context, studentID, yearID uuid.UUID) (uuid.UUID, error) {
	if classID, ok := f.enrollments[[2]uuid.UUID{studentID, yearID}]; ok {
		return classID, nil
	}
	return uuid.Nil, pgx.ErrNoRows
}
