package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/skooli/timetable-backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mapViewCache is an in-memory ViewCache without expiry.
type mapViewCache struct {
	data map[string][]byte
	sets int
}

func newMapViewCache() *mapViewCache {
	return &mapViewCache{data: make(map[string][]byte)}
}

func (c *mapViewCache) Get(_ context.Context, key string) ([]byte, bool) {
	raw, ok := c.data[key]
	return raw, ok
}

func (c *mapViewCache) Set(_ context.Context, key string, raw []byte, _ time.Duration) {
	c.data[key] = raw
	c.sets++
}

type viewFixture struct {
	store *fakeStore
	svc   *ScheduleViewService
	cache *mapViewCache

	schoolID uuid.UUID
	yearID   uuid.UUID
	classID  uuid.UUID
}

func newViewFixture(t *testing.T) *viewFixture {
	t.Helper()
	f := &viewFixture{
		store:    newFakeStore(),
		cache:    newMapViewCache(),
		schoolID: uuid.New(),
		yearID:   uuid.New(),
		classID:  uuid.New(),
	}
	f.svc = NewScheduleViewService(f.store, f.store, f.cache, 30*time.Second, zerolog.Nop())
	return f
}

func TestClassViewNoActiveTimetable(t *testing.T) {
	f := newViewFixture(t)

	// A draft alone does not feed the class view.
	f.store.addTimetable(f.classID, f.yearID, false)

	_, err := f.svc.ClassView(context.Background(), f.classID, f.yearID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClassViewCellOrdering(t *testing.T) {
	f := newViewFixture(t)
	ctx := context.Background()

	p1 := f.store.addSlot(f.schoolID, "P1", "08:00", "09:00", 1, false)
	p2 := f.store.addSlot(f.schoolID, "P2", "09:00", "10:00", 2, false)
	timetable := f.store.addTimetable(f.classID, f.yearID, true)
	cs := f.store.addClassSubject(f.classID, "10A", uuid.New(), "Amos", "Mathematics")

	// Seed out of display order.
	f.store.addEntry(timetable.ID, 2, p2.ID)
	f.store.addEntry(timetable.ID, 2, p1.ID)
	monday := f.store.addEntry(timetable.ID, 1, p2.ID)

	sched := NewScheduleService(f.store, zerolog.Nop())
	_, err := sched.Schedule(ctx, monday.ID, cs.ID, nil)
	require.NoError(t, err)

	view, err := f.svc.ClassView(ctx, f.classID, f.yearID)
	require.NoError(t, err)
	require.Len(t, view.Cells, 3)

	assert.Equal(t, 1, view.Cells[0].Entry.DayOfWeek)
	assert.Equal(t, "P1", view.Cells[1].Slot.Name)
	assert.Equal(t, "P2", view.Cells[2].Slot.Name)

	// The assigned Monday cell carries its subject, the empty ones do not.
	require.NotNil(t, view.Cells[0].Assignment)
	assert.Equal(t, "Mathematics", view.Cells[0].Assignment.SubjectName)
	assert.Nil(t, view.Cells[1].Assignment)
}

func TestClassViewCacheHit(t *testing.T) {
	f := newViewFixture(t)
	ctx := context.Background()

	f.store.addTimetable(f.classID, f.yearID, true)

	_, err := f.svc.ClassView(ctx, f.classID, f.yearID)
	require.NoError(t, err)
	assert.Equal(t, 1, f.cache.sets)

	// Second read is served from the cache even after the timetable is gone.
	f.store.timetables = map[uuid.UUID]model.ClassTimetable{}
	_, err = f.svc.ClassView(ctx, f.classID, f.yearID)
	assert.NoError(t, err)
	assert.Equal(t, 1, f.cache.sets)
}

func TestClassViewNilCache(t *testing.T) {
	f := newViewFixture(t)
	f.svc = NewScheduleViewService(f.store, f.store, nil, 0, zerolog.Nop())

	f.store.addTimetable(f.classID, f.yearID, true)
	view, err := f.svc.ClassView(context.Background(), f.classID, f.yearID)
	require.NoError(t, err)
	assert.NotNil(t, view)
}

func TestTimetableViewShowsDraftUncached(t *testing.T) {
	f := newViewFixture(t)

	draft := f.store.addTimetable(f.classID, f.yearID, false)
	view, err := f.svc.TimetableView(context.Background(), draft.ID)
	require.NoError(t, err)
	assert.Equal(t, draft.ID, view.Timetable.ID)
	assert.False(t, view.Timetable.IsActive)
	assert.Empty(t, f.cache.data)
}

func TestTimetableViewNotFound(t *testing.T) {
	f := newViewFixture(t)

	_, err := f.svc.TimetableView(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTeacherViewOnlyActiveTimetables(t *testing.T) {
	f := newViewFixture(t)
	ctx := context.Background()
	sched := NewScheduleService(f.store, zerolog.Nop())

	p1 := f.store.addSlot(f.schoolID, "P1", "08:00", "09:00", 1, false)
	teacherID := uuid.New()

	active := f.store.addTimetable(f.classID, f.yearID, true)
	csActive := f.store.addClassSubject(f.classID, "10A", teacherID, "Amos", "Mathematics")
	entryActive := f.store.addEntry(active.ID, 1, p1.ID)
	_, err := sched.Schedule(ctx, entryActive.ID, csActive.ID, nil)
	require.NoError(t, err)

	// The same teacher also sits in another class's draft; it must not show.
	classB := uuid.New()
	draft := f.store.addTimetable(classB, f.yearID, false)
	csDraft := f.store.addClassSubject(classB, "10B", teacherID, "Amos", "Mathematics")
	entryDraft := f.store.addEntry(draft.ID, 2, p1.ID)
	_, err = sched.Schedule(ctx, entryDraft.ID, csDraft.ID, nil)
	require.NoError(t, err)

	rows, err := f.svc.TeacherView(ctx, teacherID, f.yearID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 1, rows[0].DayOfWeek)
	assert.Equal(t, "P1", rows[0].SlotName)
	assert.Equal(t, "10A", rows[0].ClassName)
}

func TestTeacherViewEmptyAgenda(t *testing.T) {
	f := newViewFixture(t)

	rows, err := f.svc.TeacherView(context.Background(), uuid.New(), f.yearID)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestStudentViewFollowsEnrollment(t *testing.T) {
	f := newViewFixture(t)
	studentID := uuid.New()

	f.store.addTimetable(f.classID, f.yearID, true)
	f.store.enrollments[[2]uuid.UUID{studentID, f.yearID}] = f.classID

	view, err := f.svc.StudentView(context.Background(), studentID, f.yearID)
	require.NoError(t, err)
	assert.Equal(t, f.classID, view.Timetable.SchoolClassID)
}

func TestStudentViewUnknownStudent(t *testing.T) {
	f := newViewFixture(t)

	_, err := f.svc.StudentView(context.Background(), uuid.New(), f.yearID)
	assert.ErrorIs(t, err, ErrUpstreamNotFound)
}
