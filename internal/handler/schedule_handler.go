package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/skooli/timetable-backend/internal/response"
	"github.com/skooli/timetable-backend/internal/service"
	"github.com/skooli/timetable-backend/internal/validator"
)

// ScheduleHandler exposes the assignment engine and the bulk scheduler.
type ScheduleHandler struct {
	scheduleService *service.ScheduleService
}

// NewScheduleHandler creates a new ScheduleHandler.
func NewScheduleHandler(scheduleService *service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{scheduleService: scheduleService}
}

// ScheduleRequest is the payload for scheduling a subject into one cell.
type ScheduleRequest struct {
	ClassSubjectID uuid.UUID `json:"class_subject_id" binding:"required"`
	Notes          *string   `json:"notes" binding:"omitempty,max=500"`
}

// ScheduleSubject godoc
// POST /api/v1/timetable-entries/:id/schedule
// Binds a class-subject into a cell after the full conflict check.
func (h *ScheduleHandler) ScheduleSubject(c *gin.Context) {
	entryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req ScheduleRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	scheduled, err := h.scheduleService.Schedule(c.Request.Context(), entryID, req.ClassSubjectID, req.Notes)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"scheduled_class_subject": scheduled})
}

// UnscheduleSubject godoc
// DELETE /api/v1/scheduled-subjects/:id
// Removes one assignment. A missing id is a 404, never a silent success.
func (h *ScheduleHandler) UnscheduleSubject(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.scheduleService.Unschedule(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "subject unscheduled successfully"})
}

// UnscheduleManyRequest is the payload for removing a batch of assignments,
// typically the rows one schedule-block call returned.
type UnscheduleManyRequest struct {
	IDs []uuid.UUID `json:"ids" binding:"required,min=1,max=50"`
}

// UnscheduleMany godoc
// DELETE /api/v1/scheduled-subjects
// Removes a batch of assignments as a unit.
func (h *ScheduleHandler) UnscheduleMany(c *gin.Context) {
	var req UnscheduleManyRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := h.scheduleService.UnscheduleMany(c.Request.Context(), req.IDs); err != nil {
		respondServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "subjects unscheduled successfully"})
}

// ScheduleBlockRequest is the payload for scheduling a multi-period block.
type ScheduleBlockRequest struct {
	DayOfWeek       *int      `json:"day_of_week" binding:"required,min=0,max=6"`
	StartTimeSlotID uuid.UUID `json:"start_time_slot_id" binding:"required"`
	PeriodCount     int       `json:"period_count" binding:"required,min=1,max=12"`
	ClassSubjectID  uuid.UUID `json:"class_subject_id" binding:"required"`
	Notes           *string   `json:"notes" binding:"omitempty,max=500"`
}

// ScheduleBlock godoc
// POST /api/v1/class-timetables/:id/schedule-block
// Schedules the same subject into contiguous periods, all-or-nothing.
func (h *ScheduleHandler) ScheduleBlock(c *gin.Context) {
	timetableID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req ScheduleBlockRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	scheduled, err := h.scheduleService.ScheduleBlock(c.Request.Context(),
		timetableID, *req.DayOfWeek, req.StartTimeSlotID, req.PeriodCount, req.ClassSubjectID, req.Notes)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"scheduled_class_subjects": scheduled})
}
