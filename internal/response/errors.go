package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidID      ErrCode = "INVALID_ID"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound            ErrCode = "NOT_FOUND"
	ErrReferentialConflict ErrCode = "REFERENTIAL_CONFLICT"
	ErrInvalidOperation    ErrCode = "INVALID_OPERATION"
	ErrUpstreamNotFound    ErrCode = "UPSTREAM_NOT_FOUND"

	// ─── Scheduling ────────────────────────────────────────────────────
	ErrDuplicateCell     ErrCode = "DUPLICATE_CELL"
	ErrCellOccupied      ErrCode = "CELL_OCCUPIED"
	ErrTeacherConflict   ErrCode = "TEACHER_CONFLICT"
	ErrClassMismatch     ErrCode = "CLASS_MISMATCH"
	ErrInsufficientSlots ErrCode = "INSUFFICIENT_SLOTS"
	ErrSlotIsBreak       ErrCode = "SLOT_IS_BREAK"
	// ErrTxConflict is transient: the request lost a race with a concurrent
	// write and may be retried with backoff.
	ErrTxConflict ErrCode = "TX_CONFLICT"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	// ─── Validation ────────────────────────────────────────────────────
	case ErrValidation:
		return "Validation failed. Please check your input."
	case ErrInvalidID:
		return "Invalid ID format."
	case ErrInvalidPayload:
		return "Invalid request payload."

	// ─── Resources ─────────────────────────────────────────────────────
	case ErrNotFound:
		return "Resource not found."
	case ErrReferentialConflict:
		return "The record is still referenced by existing timetable entries."
	case ErrInvalidOperation:
		return "This operation is not allowed in the current state."
	case ErrUpstreamNotFound:
		return "A referenced catalog record does not exist."

	// ─── Scheduling ────────────────────────────────────────────────────
	case ErrDuplicateCell:
		return "A timetable cell already exists at this day and slot."
	case ErrCellOccupied:
		return "This cell already has a subject scheduled."
	case ErrTeacherConflict:
		return "The teacher is already scheduled elsewhere at this time."
	case ErrClassMismatch:
		return "The class subject belongs to a different class."
	case ErrInsufficientSlots:
		return "Not enough assignable slots remain in the day for this block."
	case ErrSlotIsBreak:
		return "Subjects cannot be scheduled into break slots."
	case ErrTxConflict:
		return "The request conflicted with a concurrent change. Please retry."

	// ─── Server ────────────────────────────────────────────────────────
	case ErrInternal:
		return "An internal server error occurred."
	default:
		return "An unexpected error occurred."
	}
}
