package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/skooli/timetable-backend/internal/response"
	"github.com/skooli/timetable-backend/internal/service"
	"github.com/skooli/timetable-backend/internal/validator"
)

// ClassTimetableHandler handles timetable revision management.
type ClassTimetableHandler struct {
	timetableService *service.ClassTimetableService
}

// NewClassTimetableHandler creates a new ClassTimetableHandler.
func NewClassTimetableHandler(timetableService *service.ClassTimetableService) *ClassTimetableHandler {
	return &ClassTimetableHandler{timetableService: timetableService}
}

// ListClassTimetables godoc
// GET /api/v1/class-timetables?school_class_id=&academic_year_id=
// Lists every revision (active and drafts) of a class+year.
func (h *ClassTimetableHandler) ListClassTimetables(c *gin.Context) {
	classID, err1 := uuid.Parse(c.Query("school_class_id"))
	yearID, err2 := uuid.Parse(c.Query("academic_year_id"))
	if err1 != nil || err2 != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	timetables, err := h.timetableService.List(c.Request.Context(), classID, yearID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"class_timetables": timetables})
}

// GetClassTimetable godoc
// GET /api/v1/class-timetables/:id
func (h *ClassTimetableHandler) GetClassTimetable(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	timetable, err := h.timetableService.GetByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"class_timetable": timetable})
}

// CreateClassTimetableRequest is the payload for opening a draft revision.
type CreateClassTimetableRequest struct {
	SchoolClassID  uuid.UUID `json:"school_class_id" binding:"required"`
	AcademicYearID uuid.UUID `json:"academic_year_id" binding:"required"`
}

// CreateClassTimetable godoc
// POST /api/v1/class-timetables
// Opens a new draft revision.
func (h *ClassTimetableHandler) CreateClassTimetable(c *gin.Context) {
	var req CreateClassTimetableRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	timetable, err := h.timetableService.Create(c.Request.Context(), req.SchoolClassID, req.AcademicYearID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"class_timetable": timetable})
}

// ActivateClassTimetable godoc
// POST /api/v1/class-timetables/:id/activate
// Publishes a revision; every sibling of the class+year becomes a draft.
func (h *ClassTimetableHandler) ActivateClassTimetable(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	timetable, err := h.timetableService.SetActive(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"class_timetable": timetable})
}

// DeleteClassTimetable godoc
// DELETE /api/v1/class-timetables/:id
// Deletes a revision with its cells and assignments. The last active
// revision of a class+year cannot be deleted.
func (h *ClassTimetableHandler) DeleteClassTimetable(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.timetableService.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "class timetable deleted successfully"})
}
