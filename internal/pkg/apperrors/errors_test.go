package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvalidPrerequisiteErrorNamesAllIDs(t *testing.T) {
	err := NewInvalidPrerequisiteError([]string{"CS999", "MATH999"})

	assert.True(t, errors.Is(err, ErrInvalidPrerequisite))
	assert.Equal(t, "Invalid prerequisites: CS999, MATH999. These courses do not exist in the system.", err.Error())
	assert.Equal(t, []string{"CS999", "MATH999"}, err.Details["courseIds"])
}

func TestDependencyConflictErrorNamesDependents(t *testing.T) {
	err := NewDependencyConflictError("CS101", []string{"CS201", "CS301"})

	assert.True(t, errors.Is(err, ErrDependencyConflict))
	assert.Contains(t, err.Error(), "Cannot delete course CS101")
	assert.Contains(t, err.Error(), "CS201, CS301")
}

func TestWrappedCustomErrorKeepsSentinelAndDetails(t *testing.T) {
	wrapped := fmt.Errorf("creating instance: %w", NewDuplicateInstanceError("CS101", 2024, 1))

	assert.ErrorIs(t, wrapped, ErrDuplicateInstance)
	assert.NotErrorIs(t, wrapped, ErrUnknownCourse)

	details := DetailsOf(wrapped)
	require.NotNil(t, details)
	assert.Equal(t, "CS101", details["courseId"])
	assert.Equal(t, 2024, details["year"])
}

func TestCustomErrorFallsBackToSentinelMessage(t *testing.T) {
	err := &CustomError{Err: ErrResourceNotFound}
	assert.Equal(t, "resource not found", err.Error())

	assert.Equal(t, "unknown error", (&CustomError{}).Error())
	assert.Nil(t, DetailsOf(errors.New("plain")))
}
