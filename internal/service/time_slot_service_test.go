package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/skooli/timetable-backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTimeSlot(t *testing.T) {
	store := newFakeStore()
	svc := NewTimeSlotService(store)

	slot := &model.TimeSlot{
		SchoolID: uuid.New(), Name: "P1",
		StartTime: "08:00", EndTime: "09:00", Order: 1,
	}
	require.NoError(t, svc.Create(context.Background(), slot))
	assert.NotEqual(t, uuid.Nil, slot.ID)
}

func TestCreateTimeSlotInvalidTimes(t *testing.T) {
	store := newFakeStore()
	svc := NewTimeSlotService(store)

	slot := &model.TimeSlot{
		SchoolID: uuid.New(), Name: "P1",
		StartTime: "09:00", EndTime: "08:00", Order: 1,
	}
	err := svc.Create(context.Background(), slot)
	assert.ErrorIs(t, err, ErrInvalidOperation)
	assert.Empty(t, store.slots)
}

func TestListTimeSlotsOrdered(t *testing.T) {
	store := newFakeStore()
	svc := NewTimeSlotService(store)
	schoolID := uuid.New()

	store.addSlot(schoolID, "P2", "09:00", "10:00", 2, false)
	store.addSlot(schoolID, "P1", "08:00", "09:00", 1, false)
	store.addSlot(uuid.New(), "Other", "08:00", "09:00", 1, false)

	slots, err := svc.List(context.Background(), schoolID)
	require.NoError(t, err)
	require.Len(t, slots, 2)
	assert.Equal(t, "P1", slots[0].Name)
	assert.Equal(t, "P2", slots[1].Name)
}

func TestUpdateReferencedSlotStructuralChangeRefused(t *testing.T) {
	store := newFakeStore()
	svc := NewTimeSlotService(store)
	ctx := context.Background()

	slot := store.addSlot(uuid.New(), "P1", "08:00", "09:00", 1, false)
	timetable := store.addTimetable(uuid.New(), uuid.New(), false)
	store.addEntry(timetable.ID, 1, slot.ID)

	moved := slot
	moved.StartTime = "08:30"
	moved.EndTime = "09:30"
	err := svc.Update(ctx, &moved)
	assert.ErrorIs(t, err, ErrReferentialConflict)

	flipped := slot
	flipped.IsBreak = true
	flipped.EndTime = "09:00"
	err = svc.Update(ctx, &flipped)
	assert.ErrorIs(t, err, ErrReferentialConflict)
}

func TestUpdateReferencedSlotRenameAllowed(t *testing.T) {
	store := newFakeStore()
	svc := NewTimeSlotService(store)

	slot := store.addSlot(uuid.New(), "P1", "08:00", "09:00", 1, false)
	timetable := store.addTimetable(uuid.New(), uuid.New(), false)
	store.addEntry(timetable.ID, 1, slot.ID)

	renamed := slot
	renamed.Name = "Period 1"
	require.NoError(t, svc.Update(context.Background(), &renamed))
	assert.Equal(t, "Period 1", store.slots[slot.ID].Name)
}

func TestUpdateTimeSlotNotFound(t *testing.T) {
	store := newFakeStore()
	svc := NewTimeSlotService(store)

	slot := &model.TimeSlot{ID: uuid.New(), Name: "P1", StartTime: "08:00", EndTime: "09:00"}
	err := svc.Update(context.Background(), slot)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteReferencedSlotRefused(t *testing.T) {
	store := newFakeStore()
	svc := NewTimeSlotService(store)

	slot := store.addSlot(uuid.New(), "P1", "08:00", "09:00", 1, false)
	timetable := store.addTimetable(uuid.New(), uuid.New(), false)
	store.addEntry(timetable.ID, 1, slot.ID)

	err := svc.Delete(context.Background(), slot.ID)
	assert.ErrorIs(t, err, ErrReferentialConflict)
	assert.Contains(t, store.slots, slot.ID)
}

func TestDeleteUnreferencedSlot(t *testing.T) {
	store := newFakeStore()
	svc := NewTimeSlotService(store)

	slot := store.addSlot(uuid.New(), "P1", "08:00", "09:00", 1, false)
	require.NoError(t, svc.Delete(context.Background(), slot.ID))
	assert.Empty(t, store.slots)
}

func TestDeleteTimeSlotNotFound(t *testing.T) {
	store := newFakeStore()
	svc := NewTimeSlotService(store)

	err := svc.Delete(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}
