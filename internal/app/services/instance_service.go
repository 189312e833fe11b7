package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/yigit/coursecatalog/internal/app/models"
	"github.com/yigit/coursecatalog/internal/app/repositories"
	"github.com/yigit/coursecatalog/internal/pkg/apperrors"
	"github.com/yigit/coursecatalog/internal/pkg/logger"
	"github.com/yigit/coursecatalog/internal/pkg/validation"
)

// InstanceService defines the interface for course instance operations
type InstanceService interface {
	ListInstances(ctx context.Context, filter models.InstanceFilter) ([]*models.CourseInstance, error)
	GetInstance(ctx context.Context, key models.InstanceKey) (*models.CourseInstance, error)
	CreateInstance(ctx context.Context, data models.CreateInstanceData) (*models.CourseInstance, error)
	DeleteInstance(ctx context.Context, key models.InstanceKey) error
}

// instanceServiceImpl implements the InstanceService interface
type instanceServiceImpl struct {
	instanceRepo repositories.InstanceRepository
	courseRepo   repositories.CourseRepository
	mu           *sync.RWMutex
	newID        func() string
}

// NewInstanceService creates a new instance service.
// mu should be the lock shared with the course service; nil gives a private lock.
func NewInstanceService(instanceRepo repositories.InstanceRepository, courseRepo repositories.CourseRepository, mu *sync.RWMutex) InstanceService {
	if mu == nil {
		mu = &sync.RWMutex{}
	}
	return &instanceServiceImpl{
		instanceRepo: instanceRepo,
		courseRepo:   courseRepo,
		mu:           mu,
		newID:        uuid.NewString,
	}
}

// ListInstances retrieves instances matching filter, each joined with a copy of its course.
// Instances whose course no longer exists are returned without one.
func (s *instanceServiceImpl) ListInstances(ctx context.Context, filter models.InstanceFilter) ([]*models.CourseInstance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	instances, err := s.instanceRepo.GetAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error retrieving instances: %w", err)
	}
	if len(instances) == 0 {
		return instances, nil
	}

	courses, err := s.courseRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving courses for instances: %w", err)
	}
	byID := make(map[string]*models.Course, len(courses))
	for _, course := range courses {
		byID[course.ID] = course
	}

	for _, instance := range instances {
		instance.Course = byID[instance.CourseID].Clone()
	}
	return instances, nil
}

// GetInstance retrieves the instance matching the exact (course, year, semester) triple
func (s *instanceServiceImpl) GetInstance(ctx context.Context, key models.InstanceKey) (*models.CourseInstance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	instance, err := s.instanceRepo.GetByKey(ctx, key)
	if err != nil {
		if errors.Is(err, repositories.ErrInstanceNotFound) {
			return nil, apperrors.NewInstanceNotFoundError(key.CourseID, key.Year, int(key.Semester))
		}
		return nil, fmt.Errorf("error retrieving instance: %w", err)
	}

	if err := s.attachCourse(ctx, instance); err != nil {
		return nil, err
	}
	return instance, nil
}

// CreateInstance validates the course reference, then triple uniqueness, then stores the instance
func (s *instanceServiceImpl) CreateInstance(ctx context.Context, data models.CreateInstanceData) (*models.CourseInstance, error) {
	courseID := strings.TrimSpace(data.CourseID)
	if courseID == "" {
		return nil, apperrors.NewValidationError("Course ID cannot be empty")
	}
	if !validation.IsValidYear(data.Year) {
		return nil, apperrors.NewValidationError(fmt.Sprintf(
			"Year %d is invalid: must be between %d and %d", data.Year, validation.YearMin, validation.YearMax))
	}
	if !data.Semester.IsValid() {
		return nil, apperrors.NewValidationError(fmt.Sprintf("Semester %d is invalid: must be 1 or 2", data.Semester))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, repositories.ErrCourseNotFound) {
			return nil, apperrors.NewUnknownCourseError(courseID)
		}
		return nil, fmt.Errorf("error resolving course: %w", err)
	}

	instance := &models.CourseInstance{
		ID:       s.newID(),
		CourseID: courseID,
		Year:     data.Year,
		Semester: data.Semester,
	}
	key := instance.Key()

	if _, err := s.instanceRepo.GetByKey(ctx, key); err == nil {
		return nil, apperrors.NewDuplicateInstanceError(courseID, data.Year, int(data.Semester))
	} else if !errors.Is(err, repositories.ErrInstanceNotFound) {
		return nil, fmt.Errorf("error checking instance uniqueness: %w", err)
	}

	if err := s.instanceRepo.Create(ctx, instance); err != nil {
		if errors.Is(err, repositories.ErrInstanceAlreadyExists) {
			return nil, apperrors.NewDuplicateInstanceError(courseID, data.Year, int(data.Semester))
		}
		return nil, fmt.Errorf("error creating instance: %w", err)
	}

	logger.Info().
		Str("instanceId", instance.ID).
		Stringer("instance", key).
		Msg("Course instance created")

	instance.Course = course
	return instance, nil
}

// DeleteInstance removes the instance matching the exact (course, year, semester) triple
func (s *instanceServiceImpl) DeleteInstance(ctx context.Context, key models.InstanceKey) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.instanceRepo.Delete(ctx, key); err != nil {
		if errors.Is(err, repositories.ErrInstanceNotFound) {
			return apperrors.NewInstanceNotFoundError(key.CourseID, key.Year, int(key.Semester))
		}
		return fmt.Errorf("error deleting instance: %w", err)
	}

	logger.Info().Stringer("instance", key).Msg("Course instance deleted")
	return nil
}

// attachCourse joins the instance with a copy of its course when the course still exists
func (s *instanceServiceImpl) attachCourse(ctx context.Context, instance *models.CourseInstance) error {
	course, err := s.courseRepo.GetByID(ctx, instance.CourseID)
	if err != nil {
		if errors.Is(err, repositories.ErrCourseNotFound) {
			instance.Course = nil
			return nil
		}
		return fmt.Errorf("error resolving course for instance: %w", err)
	}
	instance.Course = course
	return nil
}
