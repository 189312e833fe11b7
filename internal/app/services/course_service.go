package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/yigit/coursecatalog/internal/app/models"
	"github.com/yigit/coursecatalog/internal/app/repositories"
	"github.com/yigit/coursecatalog/internal/pkg/apperrors"
	"github.com/yigit/coursecatalog/internal/pkg/logger"
	"github.com/yigit/coursecatalog/internal/pkg/validation"
)

// CourseService defines the interface for course-related operations
type CourseService interface {
	ListCourses(ctx context.Context) ([]*models.Course, error)
	GetCourse(ctx context.Context, id string) (*models.Course, error)
	CreateCourse(ctx context.Context, data models.CreateCourseData) (*models.Course, error)
	DeleteCourse(ctx context.Context, id string) error
	CanDelete(ctx context.Context, id string) (bool, error)
	DependentsOf(ctx context.Context, id string) ([]string, error)
}

// courseServiceImpl implements the CourseService interface
type courseServiceImpl struct {
	courseRepo repositories.CourseRepository
	mu         *sync.RWMutex
}

// NewCourseService creates a new course service instance.
// A nil mu gives the service a private lock.
func NewCourseService(courseRepo repositories.CourseRepository, mu *sync.RWMutex) CourseService {
	if mu == nil {
		mu = &sync.RWMutex{}
	}
	return &courseServiceImpl{
		courseRepo: courseRepo,
		mu:         mu,
	}
}

// NormalizeCourseID trims and uppercases a caller-supplied course ID
func NormalizeCourseID(id string) string {
	return strings.ToUpper(strings.TrimSpace(id))
}

// validateCourse normalizes and validates the caller-supplied fields
func validateCourse(data models.CreateCourseData) (*models.Course, error) {
	course := &models.Course{
		ID:            NormalizeCourseID(data.ID),
		Title:         strings.TrimSpace(data.Title),
		Description:   strings.TrimSpace(data.Description),
		Prerequisites: make([]string, 0, len(data.Prerequisites)),
	}

	if course.ID == "" {
		return nil, apperrors.NewValidationError("Course ID cannot be empty")
	}
	if !validation.IsValidCourseID(course.ID) {
		return nil, apperrors.NewValidationError(fmt.Sprintf(
			"Course ID %s is invalid: use up to %d letters and digits, optionally separated by - or _",
			course.ID, validation.CourseIDMaxLength))
	}

	if !validation.NewStringValidation(course.Title).
		WithMinLength(validation.TitleMinLength).
		WithMaxLength(validation.TitleMaxLength).
		Validate() {
		return nil, apperrors.NewValidationError(fmt.Sprintf(
			"Course title is required and must be at most %d characters", validation.TitleMaxLength))
	}

	if !validation.NewStringValidation(course.Description).
		WithRequired(false).
		WithMaxLength(validation.DescriptionMaxLength).
		Validate() {
		return nil, apperrors.NewValidationError(fmt.Sprintf(
			"Course description must be at most %d characters", validation.DescriptionMaxLength))
	}

	seen := make(map[string]struct{}, len(data.Prerequisites))
	for _, prerequisiteID := range data.Prerequisites {
		prerequisiteID = strings.TrimSpace(prerequisiteID)
		if prerequisiteID == "" {
			return nil, apperrors.NewValidationError("Prerequisite IDs cannot be empty")
		}
		if _, dup := seen[prerequisiteID]; dup {
			continue
		}
		seen[prerequisiteID] = struct{}{}
		course.Prerequisites = append(course.Prerequisites, prerequisiteID)
	}

	return course, nil
}

// ListCourses retrieves all courses in insertion order
func (s *courseServiceImpl) ListCourses(ctx context.Context) ([]*models.Course, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	courses, err := s.courseRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving courses: %w", err)
	}
	return courses, nil
}

// GetCourse retrieves a course by its exact ID
func (s *courseServiceImpl) GetCourse(ctx context.Context, id string) (*models.Course, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	course, err := s.courseRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrCourseNotFound) {
			return nil, apperrors.NewCourseNotFoundError(id)
		}
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}
	return course, nil
}

// CreateCourse validates prerequisites, then ID uniqueness, then stores the course
func (s *courseServiceImpl) CreateCourse(ctx context.Context, data models.CreateCourseData) (*models.Course, error) {
	course, err := validateCourse(data)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkPrerequisites(ctx, course.Prerequisites); err != nil {
		return nil, err
	}

	exists, err := s.courseRepo.Exists(ctx, course.ID)
	if err != nil {
		return nil, fmt.Errorf("error checking course ID: %w", err)
	}
	if exists {
		return nil, apperrors.NewDuplicateIDError(course.ID)
	}

	if err := s.courseRepo.Create(ctx, course); err != nil {
		if errors.Is(err, repositories.ErrCourseAlreadyExists) {
			return nil, apperrors.NewDuplicateIDError(course.ID)
		}
		if errors.Is(err, repositories.ErrPrerequisiteNotFound) {
			// A prerequisite vanished between the check and the insert
			if checkErr := s.checkPrerequisites(ctx, course.Prerequisites); checkErr != nil {
				return nil, checkErr
			}
		}
		return nil, fmt.Errorf("error creating course: %w", err)
	}

	logger.Info().
		Str("courseId", course.ID).
		Strs("prerequisites", course.Prerequisites).
		Msg("Course created")

	return course.Clone(), nil
}

// DeleteCourse refuses while other courses depend on id, then removes it
func (s *courseServiceImpl) DeleteCourse(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dependents, err := s.dependents(ctx, id)
	if err != nil {
		return err
	}
	if len(dependents) > 0 {
		logger.Debug().Str("courseId", id).Strs("dependents", dependents).Msg("Course deletion refused")
		return apperrors.NewDependencyConflictError(id, dependents)
	}

	if err := s.courseRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrCourseNotFound) {
			return apperrors.NewCourseNotFoundError(id)
		}
		if errors.Is(err, repositories.ErrCourseReferenced) {
			if dependents, depErr := s.dependents(ctx, id); depErr == nil && len(dependents) > 0 {
				return apperrors.NewDependencyConflictError(id, dependents)
			}
		}
		return fmt.Errorf("error deleting course: %w", err)
	}

	logger.Info().Str("courseId", id).Msg("Course deleted")
	return nil
}

// CanDelete reports whether no course lists id as a prerequisite
func (s *courseServiceImpl) CanDelete(ctx context.Context, id string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	dependents, err := s.dependents(ctx, id)
	if err != nil {
		return false, err
	}
	return len(dependents) == 0, nil
}

// DependentsOf returns the IDs of courses listing id as a prerequisite, in insertion order
func (s *courseServiceImpl) DependentsOf(ctx context.Context, id string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.dependents(ctx, id)
}

// checkPrerequisites fails with InvalidPrerequisite naming every ID that does not resolve.
// Callers must hold mu.
func (s *courseServiceImpl) checkPrerequisites(ctx context.Context, prerequisites []string) error {
	var missing []string
	for _, prerequisiteID := range prerequisites {
		exists, err := s.courseRepo.Exists(ctx, prerequisiteID)
		if err != nil {
			return fmt.Errorf("error checking prerequisite %s: %w", prerequisiteID, err)
		}
		if !exists {
			missing = append(missing, prerequisiteID)
		}
	}
	if len(missing) > 0 {
		return apperrors.NewInvalidPrerequisiteError(missing)
	}
	return nil
}

// dependents is the single dependency computation behind DeleteCourse, CanDelete and DependentsOf.
// Callers must hold mu.
func (s *courseServiceImpl) dependents(ctx context.Context, id string) ([]string, error) {
	dependents, err := s.courseRepo.FindDependents(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error finding dependents of course %s: %w", id, err)
	}
	if dependents == nil {
		dependents = []string{}
	}
	return dependents, nil
}
