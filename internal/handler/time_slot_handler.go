package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/skooli/timetable-backend/internal/model"
	"github.com/skooli/timetable-backend/internal/response"
	"github.com/skooli/timetable-backend/internal/service"
	"github.com/skooli/timetable-backend/internal/validator"
)

// TimeSlotHandler handles time slot registry management (CRUD).
type TimeSlotHandler struct {
	slotService *service.TimeSlotService
}

// NewTimeSlotHandler creates a new TimeSlotHandler.
func NewTimeSlotHandler(slotService *service.TimeSlotService) *TimeSlotHandler {
	return &TimeSlotHandler{slotService: slotService}
}

// ListTimeSlots godoc
// GET /api/v1/schools/:schoolId/time-slots
// Lists a school's slots ordered by (order, start_time).
func (h *TimeSlotHandler) ListTimeSlots(c *gin.Context) {
	schoolID, err := uuid.Parse(c.Param("schoolId"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	slots, err := h.slotService.List(c.Request.Context(), schoolID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"time_slots": slots})
}

// TimeSlotRequest is the payload for creating or updating a time slot.
type TimeSlotRequest struct {
	Name      string `json:"name" binding:"required,min=1,max=100"`
	StartTime string `json:"start_time" binding:"required,datetime=15:04"`
	EndTime   string `json:"end_time" binding:"required,datetime=15:04"`
	Order     int    `json:"order" binding:"required,min=1"`
	IsBreak   bool   `json:"is_break"`
}

// CreateTimeSlot godoc
// POST /api/v1/schools/:schoolId/time-slots
// Creates a new slot in the school's grid.
func (h *TimeSlotHandler) CreateTimeSlot(c *gin.Context) {
	schoolID, err := uuid.Parse(c.Param("schoolId"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req TimeSlotRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	slot := &model.TimeSlot{
		SchoolID:  schoolID,
		Name:      req.Name,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Order:     req.Order,
		IsBreak:   req.IsBreak,
	}

	if err := h.slotService.Create(c.Request.Context(), slot); err != nil {
		respondServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"time_slot": slot})
}

// UpdateTimeSlot godoc
// PUT /api/v1/time-slots/:id
// Updates a slot. Structural fields are frozen once the slot is referenced.
func (h *TimeSlotHandler) UpdateTimeSlot(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req TimeSlotRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	slot := &model.TimeSlot{
		ID:        id,
		Name:      req.Name,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Order:     req.Order,
		IsBreak:   req.IsBreak,
	}

	if err := h.slotService.Update(c.Request.Context(), slot); err != nil {
		respondServiceError(c, err)
		return
	}

	updated, err := h.slotService.GetByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"time_slot": updated})
}

// DeleteTimeSlot godoc
// DELETE /api/v1/time-slots/:id
// Deletes a slot. Fails while any timetable entry references it.
func (h *TimeSlotHandler) DeleteTimeSlot(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.slotService.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "time slot deleted successfully"})
}
