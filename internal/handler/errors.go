package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/skooli/timetable-backend/internal/response"
	"github.com/skooli/timetable-backend/internal/service"
)

// respondServiceError translates a service-layer error into the API error
// envelope. Conflict errors that carry detail (teacher clashes, failed block
// periods, short blocks) keep their specific message; everything else uses
// the code's generic one.
func respondServiceError(c *gin.Context, err error) {
	var (
		teacherConflict   *service.TeacherConflictError
		insufficientSlots *service.InsufficientSlotsError
		blockConflict     *service.BlockConflictError
	)

	switch {
	case errors.As(err, &blockConflict):
		// Identify the failing period but classify by the underlying cause.
		response.FailWithMessage(c, blockStatus(blockConflict.Err), blockCode(blockConflict.Err), blockConflict.Error())
	case errors.As(err, &teacherConflict):
		response.FailWithMessage(c, http.StatusConflict, response.ErrTeacherConflict, teacherConflict.Error())
	case errors.As(err, &insufficientSlots):
		response.FailWithMessage(c, http.StatusUnprocessableEntity, response.ErrInsufficientSlots, insufficientSlots.Error())
	case errors.Is(err, service.ErrNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	case errors.Is(err, service.ErrDuplicateCell):
		response.Fail(c, http.StatusConflict, response.ErrDuplicateCell)
	case errors.Is(err, service.ErrCellOccupied):
		response.Fail(c, http.StatusConflict, response.ErrCellOccupied)
	case errors.Is(err, service.ErrClassMismatch):
		response.Fail(c, http.StatusUnprocessableEntity, response.ErrClassMismatch)
	case errors.Is(err, service.ErrSlotIsBreak):
		response.Fail(c, http.StatusUnprocessableEntity, response.ErrSlotIsBreak)
	case errors.Is(err, service.ErrReferentialConflict):
		response.Fail(c, http.StatusConflict, response.ErrReferentialConflict)
	case errors.Is(err, service.ErrInvalidOperation):
		response.Fail(c, http.StatusUnprocessableEntity, response.ErrInvalidOperation)
	case errors.Is(err, service.ErrUpstreamNotFound):
		response.Fail(c, http.StatusUnprocessableEntity, response.ErrUpstreamNotFound)
	case errors.Is(err, service.ErrTxConflict):
		response.Fail(c, http.StatusConflict, response.ErrTxConflict)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}

func blockCode(inner error) response.ErrCode {
	var teacherConflict *service.TeacherConflictError
	switch {
	case errors.As(inner, &teacherConflict):
		return response.ErrTeacherConflict
	case errors.Is(inner, service.ErrCellOccupied):
		return response.ErrCellOccupied
	case errors.Is(inner, service.ErrSlotIsBreak):
		return response.ErrSlotIsBreak
	case errors.Is(inner, service.ErrClassMismatch):
		return response.ErrClassMismatch
	default:
		return response.ErrInvalidOperation
	}
}

func blockStatus(inner error) int {
	switch blockCode(inner) {
	case response.ErrTeacherConflict, response.ErrCellOccupied:
		return http.StatusConflict
	default:
		return http.StatusUnprocessableEntity
	}
}
