package apperrors

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates that the requested operation clashes with existing state.
var ErrConflict = errors.New("operation conflicts with current state")

// AppError wraps an underlying error with an HTTP-ish status code and message.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

// NewAppError creates a new AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// ConfigurationError indicates that the layout descriptor or mapping
// configuration is missing pieces required for the requested export.
// It always fails closed: no file is written when it is returned.
type ConfigurationError struct {
	Missing []string // e.g. "layout descriptor", "debit account for CARD"
}

func (e *ConfigurationError) Error() string {
	return "configuration incomplete: " + strings.Join(e.Missing, ", ")
}

func (e *ConfigurationError) Unwrap() error { return ErrValidation }

// DataIntegrityError reports payment records that cannot be accounted for.
// Every offending booking reference is listed so the operator can fix them
// in bulk rather than one retry at a time.
type DataIntegrityError struct {
	Reason      string
	BookingRefs []string
}

func (e *DataIntegrityError) Error() string {
	return fmt.Sprintf("%s: bookings [%s]", e.Reason, strings.Join(e.BookingRefs, ", "))
}

func (e *DataIntegrityError) Unwrap() error { return ErrValidation }

// BalanceError indicates the assembled journal does not balance. This is an
// internal defect; it is surfaced rather than silently corrected.
type BalanceError struct {
	DebitTotal  decimal.Decimal
	CreditTotal decimal.Decimal
}

func (e *BalanceError) Error() string {
	return fmt.Sprintf("journal does not balance: debits %s, credits %s",
		e.DebitTotal.StringFixed(2), e.CreditTotal.StringFixed(2))
}

// ConflictError indicates an export was attempted for a date that already
// has exported ledger entries and force was not set.
type ConflictError struct {
	Date     string
	BatchRef string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("date %s already exported under batch %s", e.Date, e.BatchRef)
}

func (e *ConflictError) Unwrap() error { return ErrConflict }
