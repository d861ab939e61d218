package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// Sentinel errors for rule violations the scheduling core detects itself.
// Handlers translate these into API error codes.
var (
	ErrNotFound            = errors.New("record not found")
	ErrDuplicateCell       = errors.New("a cell already exists at this timetable, day and slot")
	ErrCellOccupied        = errors.New("the cell already holds a scheduled subject")
	ErrClassMismatch       = errors.New("the class subject belongs to a different class than the timetable")
	ErrSlotIsBreak         = errors.New("break slots cannot hold a scheduled subject")
	ErrReferentialConflict = errors.New("the record is referenced by dependent rows")
	ErrInvalidOperation    = errors.New("the operation violates a business rule")
	ErrUpstreamNotFound    = errors.New("the referenced catalog record does not exist")
	// ErrTxConflict marks a transient serialization failure between two
	// concurrent writes. The core never retries; callers may, with backoff.
	ErrTxConflict = errors.New("concurrent scheduling conflict, retry the request")
)

var dayNames = [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

// TeacherConflictError reports a teacher double-booking: the teacher already
// has an assignment in another class at the same day and slot of the year.
type TeacherConflictError struct {
	TeacherName string
	DayOfWeek   int
	SlotName    string
	ClassName   string
	SubjectName string
}

func (e *TeacherConflictError) Error() string {
	day := "?"
	if e.DayOfWeek >= 0 && e.DayOfWeek < len(dayNames) {
		day = dayNames[e.DayOfWeek]
	}
	return fmt.Sprintf("teacher %s already teaches %s to %s on %s at %s",
		e.TeacherName, e.SubjectName, e.ClassName, day, e.SlotName)
}

// InsufficientSlotsError reports that a bulk block does not fit into the
// remaining assignable slots of the day.
type InsufficientSlotsError struct {
	Requested int
	Available int
}

func (e *InsufficientSlotsError) Error() string {
	return fmt.Sprintf("block needs %d assignable slots but only %d remain in the day", e.Requested, e.Available)
}

// BlockConflictError wraps a per-period failure of a bulk block, identifying
// which period (1-based) could not be scheduled. No period of the block is
// persisted when this is returned.
type BlockConflictError struct {
	Period int
	Err    error
}

func (e *BlockConflictError) Error() string {
	return fmt.Sprintf("period %d of the block cannot be scheduled: %v", e.Period, e.Err)
}

func (e *BlockConflictError) Unwrap() error { return e.Err }

// pgErrCode extracts the SQLSTATE from a pgconn error, or "" for other errors.
func pgErrCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// translateWriteErr maps low-level transaction failures onto domain errors:
// serialization failures and deadline-bounded transactions both surface as
// the retryable ErrTxConflict, unique-violation backstops as ErrCellOccupied.
func translateWriteErr(err error) error {
	if err == nil {
		return nil
	}
	switch pgErrCode(err) {
	case "40001": // serialization_failure
		return ErrTxConflict
	case "23505": // unique_violation on the assignment backstop index
		return ErrCellOccupied
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrTxConflict
	}
	return err
}

// translateActivateErr maps failures of the activation flip. A serialization
// failure and a unique violation on the single-active index both mean two
// activations raced; both surface as the retryable ErrTxConflict and never as
// a cell-level conflict.
func translateActivateErr(err error) error {
	switch pgErrCode(err) {
	case "40001", "23505":
		return ErrTxConflict
	}
	return err
}
