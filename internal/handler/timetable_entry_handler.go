package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/skooli/timetable-backend/internal/response"
	"github.com/skooli/timetable-backend/internal/service"
	"github.com/skooli/timetable-backend/internal/validator"
)

// TimetableEntryHandler handles timetable cell management.
type TimetableEntryHandler struct {
	entryService *service.TimetableEntryService
}

// NewTimetableEntryHandler creates a new TimetableEntryHandler.
func NewTimetableEntryHandler(entryService *service.TimetableEntryService) *TimetableEntryHandler {
	return &TimetableEntryHandler{entryService: entryService}
}

// ListEntries godoc
// GET /api/v1/class-timetables/:id/entries
// Lists a revision's cells in display order.
func (h *TimetableEntryHandler) ListEntries(c *gin.Context) {
	timetableID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	entries, err := h.entryService.List(c.Request.Context(), timetableID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"timetable_entries": entries})
}

// EntryPositionRequest is the payload for placing or moving a cell.
type EntryPositionRequest struct {
	DayOfWeek  *int      `json:"day_of_week" binding:"required,min=0,max=6"`
	TimeSlotID uuid.UUID `json:"time_slot_id" binding:"required"`
}

// CreateEntry godoc
// POST /api/v1/class-timetables/:id/entries
// Adds an empty cell at (day, slot).
func (h *TimetableEntryHandler) CreateEntry(c *gin.Context) {
	timetableID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req EntryPositionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	entry, err := h.entryService.Create(c.Request.Context(), timetableID, *req.DayOfWeek, req.TimeSlotID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"timetable_entry": entry})
}

// UpdateEntry godoc
// PUT /api/v1/timetable-entries/:id
// Moves a cell to another (day, slot) position.
func (h *TimetableEntryHandler) UpdateEntry(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req EntryPositionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	entry, err := h.entryService.Update(c.Request.Context(), id, *req.DayOfWeek, req.TimeSlotID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"timetable_entry": entry})
}

// DeleteEntry godoc
// DELETE /api/v1/timetable-entries/:id
// Removes a cell; its assignment cascades.
func (h *TimetableEntryHandler) DeleteEntry(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.entryService.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "timetable entry deleted successfully"})
}
