package person

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes. The update operation's not-found outcome is discriminated by
// code, not by matching substrings of a localized message.
const (
	CodeNotFound         = "PERSON_NOT_FOUND"
	CodeValidationFailed = "VALIDATION_FAILED"
	CodeStoreFault       = "STORE_FAULT"
)

// PersonError is the tagged error crossing the domain boundary.
type PersonError struct {
	Code    string
	Message string
	Err     error
}

func (e *PersonError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *PersonError) Unwrap() error {
	return e.Err
}

func NewPersonNotFound(id int) *PersonError {
	return &PersonError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("Person with ID %d was not found", id),
	}
}

func NewValidationError(err error) *PersonError {
	return &PersonError{
		Code:    CodeValidationFailed,
		Message: "Validation failed",
		Err:     err,
	}
}

func NewStoreFault(op string, err error) *PersonError {
	return &PersonError{
		Code:    CodeStoreFault,
		Message: fmt.Sprintf("Failed to %s person data", op),
		Err:     err,
	}
}

func IsNotFound(err error) bool {
	var pe *PersonError
	return errors.As(err, &pe) && pe.Code == CodeNotFound
}

func IsValidationFailed(err error) bool {
	var pe *PersonError
	return errors.As(err, &pe) && pe.Code == CodeValidationFailed
}

func IsStoreFault(err error) bool {
	var pe *PersonError
	return errors.As(err, &pe) && pe.Code == CodeStoreFault
}

// GetErrorResponse maps a domain error to an HTTP status, a user-facing
// message, and the detail strings for the envelope's errors list.
func GetErrorResponse(err error) (int, string, []string) {
	var pe *PersonError
	if !errors.As(err, &pe) {
		return http.StatusInternalServerError, "Internal server error", []string{err.Error()}
	}

	details := []string{}
	if pe.Err != nil {
		details = append(details, pe.Err.Error())
	}

	switch pe.Code {
	case CodeNotFound:
		return http.StatusNotFound, pe.Message, details
	case CodeValidationFailed:
		return http.StatusBadRequest, pe.Message, details
	default:
		return http.StatusInternalServerError, pe.Message, details
	}
}
