package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/skooli/timetable-backend/internal/model"
	"github.com/skooli/timetable-backend/internal/response"
	"github.com/skooli/timetable-backend/internal/service"
)

// ScheduleViewHandler exposes the three read projections.
type ScheduleViewHandler struct {
	viewService *service.ScheduleViewService
}

// NewScheduleViewHandler creates a new ScheduleViewHandler.
func NewScheduleViewHandler(viewService *service.ScheduleViewService) *ScheduleViewHandler {
	return &ScheduleViewHandler{viewService: viewService}
}

// ClassView godoc
// GET /api/v1/views/class/:classId?academic_year_id=
// Returns the class's active timetable grid.
func (h *ScheduleViewHandler) ClassView(c *gin.Context) {
	classID, err := uuid.Parse(c.Param("classId"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}
	yearID, err := uuid.Parse(c.Query("academic_year_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	view, err := h.viewService.ClassView(c.Request.Context(), classID, yearID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"schedule": view})
}

// TimetableView godoc
// GET /api/v1/views/timetable/:id
// Returns the grid of an explicitly named revision, draft or active.
func (h *ScheduleViewHandler) TimetableView(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	view, err := h.viewService.TimetableView(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"schedule": view})
}

// TeacherView godoc
// GET /api/v1/views/teacher/:teacherId?academic_year_id=
// Returns the teacher's agenda across all classes' active timetables.
func (h *ScheduleViewHandler) TeacherView(c *gin.Context) {
	teacherID, err := uuid.Parse(c.Param("teacherId"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}
	yearID, err := uuid.Parse(c.Query("academic_year_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	rows, err := h.viewService.TeacherView(c.Request.Context(), teacherID, yearID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if rows == nil {
		rows = []model.TeacherScheduleRow{}
	}

	response.Success(c, http.StatusOK, gin.H{"schedule": rows})
}

// StudentView godoc
// GET /api/v1/views/student/:studentId?academic_year_id=
// Resolves the student's enrollment and returns that class's grid.
func (h *ScheduleViewHandler) StudentView(c *gin.Context) {
	studentID, err := uuid.Parse(c.Param("studentId"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}
	yearID, err := uuid.Parse(c.Query("academic_year_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	view, err := h.viewService.StudentView(c.Request.Context(), studentID, yearID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"schedule": view})
}
