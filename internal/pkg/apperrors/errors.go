package apperrors

import (
	"errors"
	"fmt"
	"strings"
)

// Common errors
var (
	// Resource errors
	ErrResourceNotFound = errors.New("resource not found")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
)

// Course Errors
var (
	ErrInvalidPrerequisite = errors.New("invalid prerequisite")
	ErrDuplicateID         = errors.New("course ID already exists")
	ErrDependencyConflict  = errors.New("course is a prerequisite of other courses")
)

// Course Instance Errors
var (
	ErrUnknownCourse     = errors.New("unknown course")
	ErrDuplicateInstance = errors.New("course instance already exists")
)

// NewInvalidPrerequisiteError reports prerequisite IDs that do not resolve to existing courses
func NewInvalidPrerequisiteError(ids []string) *CustomError {
	return NewCustomError(ErrInvalidPrerequisite,
		fmt.Sprintf("Invalid prerequisites: %s. These courses do not exist in the system.", strings.Join(ids, ", "))).
		WithDetails(map[string]interface{}{"courseIds": ids})
}

// NewDuplicateIDError reports a course ID that is already in use
func NewDuplicateIDError(id string) *CustomError {
	return NewCustomError(ErrDuplicateID,
		fmt.Sprintf("Course with ID %s already exists. Please choose a different course ID.", id)).
		WithDetails(map[string]interface{}{"courseId": id})
}

// NewDependencyConflictError reports the courses that still list id as a prerequisite
func NewDependencyConflictError(id string, dependents []string) *CustomError {
	return NewCustomError(ErrDependencyConflict,
		fmt.Sprintf("Cannot delete course %s. It is a prerequisite for the following courses: %s. Please remove this course as a prerequisite from these courses first.",
			id, strings.Join(dependents, ", "))).
		WithDetails(map[string]interface{}{"courseId": id, "dependents": dependents})
}

// NewCourseNotFoundError reports a course ID with no matching course
func NewCourseNotFoundError(id string) *CustomError {
	return NewCustomError(ErrResourceNotFound, fmt.Sprintf("Course with ID %s not found", id)).
		WithDetails(map[string]interface{}{"courseId": id})
}

// NewUnknownCourseError reports an instance referencing a course that does not exist
func NewUnknownCourseError(courseID string) *CustomError {
	return NewCustomError(ErrUnknownCourse,
		fmt.Sprintf("Course with ID %s does not exist. Please select a valid course.", courseID)).
		WithDetails(map[string]interface{}{"courseId": courseID})
}

// NewDuplicateInstanceError reports a (course, year, semester) triple that is already scheduled
func NewDuplicateInstanceError(courseID string, year, semester int) *CustomError {
	return NewCustomError(ErrDuplicateInstance,
		fmt.Sprintf("Course instance already exists for %s in %d semester %d. Each course can only be scheduled once per semester.",
			courseID, year, semester)).
		WithDetails(map[string]interface{}{"courseId": courseID, "year": year, "semester": semester})
}

// NewInstanceNotFoundError reports a (course, year, semester) triple with no matching instance
func NewInstanceNotFoundError(courseID string, year, semester int) *CustomError {
	return NewCustomError(ErrResourceNotFound,
		fmt.Sprintf("Instance not found for course %s in %d semester %d", courseID, year, semester)).
		WithDetails(map[string]interface{}{"courseId": courseID, "year": year, "semester": semester})
}

// NewValidationError creates a new custom error for invalid input with a message
func NewValidationError(message string) *CustomError {
	return NewCustomError(ErrValidationFailed, message)
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Details map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// DetailsOf extracts the details of a CustomError anywhere in err's chain
func DetailsOf(err error) map[string]interface{} {
	var customErr *CustomError
	if errors.As(err, &customErr) {
		return customErr.Details
	}
	return nil
}
